// Package middlewares provides the HTTP middleware used by the site.
//
// # Request ID
//
// RequestID assigns a fresh correlation ID to every request. Incoming
// request-id headers are never trusted: each submission attempt gets its own
// ID, which is echoed in the X-Request-ID response header and stored in the
// request context.
//
//	app := internal.New(
//	    internal.WithLogger(logger.New(cfg, middlewares.RequestIDExtractor())),
//	    internal.WithMiddleware(middlewares.RequestID()),
//	)
//
// # Recover
//
// Recover turns panics into a *PanicError handled by the app's ErrorHandler.
// PanicError and TimeoutError implement PublicError, so an error handler
// can map them to a status and a safe message without knowing either type.
//
// # Timeout
//
// Timeout installs a deadline on the request context and returns a
// *TimeoutError when the handler does not finish in time.
//
// # Order
//
//	internal.WithMiddleware(
//	    middlewares.RequestID(),
//	    middlewares.Recover(),
//	    middlewares.Timeout(45*time.Second),
//	)
package middlewares
