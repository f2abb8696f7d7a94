// Package pg provides the PostgreSQL plumbing for the subscription
// store: a pgxpool-based Connect with retry, goose migrations routed
// through the application logger, a readiness healthcheck and error
// classification helpers.
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		// terminate, the store is authoritative state
//	}
//	if err := pg.Migrate(ctx, pool, cfg, slog.Default()); err != nil {
//		// schema out of date, refuse to serve
//	}
//	store := subscription.NewPostgresStore(pool)
package pg
