// Package logger provides a thin factory around log/slog with JSON and text
// output formats and a set of attribute helpers shared across crmkit packages.
//
// Usage:
//
//	log := logger.New(
//		logger.WithService("crm-api"),
//		logger.WithLevel(slog.LevelDebug),
//	)
//	log.Info("subscription upgraded", logger.UserID(userID), logger.Plan("gold"))
package logger
