// Package logger builds the application's structured logger.
//
// It wraps log/slog with two additions:
//   - context extractors that stamp request-scoped values (request id,
//     client correlation id) onto every record without threading them
//     through call sites;
//   - optional Sentry fan-out, enabled only when a DSN is configured.
//
// Typical wiring:
//
//	log := logger.New(cfg.Log,
//		middlewares.RequestIDExtractor(),
//		contact.ClientRequestIDExtractor(),
//	)
//	log.InfoContext(ctx, "inquiry email sent", slog.String("mail_id", id))
//
// Without a DSN the logger writes to stdout only, so development and
// production share one code path.
package logger
