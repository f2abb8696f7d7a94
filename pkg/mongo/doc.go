// Package mongo provides the MongoDB connection helpers for the
// subscription store: an env-tagged Config, retrying connect, and a
// readiness healthcheck.
//
// The subscription store relies on server-side $inc updates, so retryable
// writes stay enabled by default.
//
//	var cfg mongo.Config
//	config.MustLoad(&cfg)
//	db, err := mongo.NewWithDatabase(ctx, cfg, "crm")
//	if err != nil {
//		// terminate, the store is authoritative state
//	}
//	store, err := subscription.NewMongoStore(ctx, db.Collection("subscriptions"))
package mongo
