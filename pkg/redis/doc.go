// Package redis provides the Redis connection helpers used by the usage
// snapshot mirror: a Connect with retry and connect timeout, an
// env-tagged Config, and a healthcheck for readiness probes.
//
// The mirror holds denormalized copies of monthly usage counters for
// quick dashboard reads; losing the Redis connection never affects
// access decisions, which read the subscription store directly.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		// terminate; the mirror is optional, wiring it is not
//	}
//	defer client.Close()
package redis
