// Package internal is the site's thin HTTP runtime on top of chi.
//
//   - App: routing, middleware, health endpoints, static files, graceful shutdown
//   - Context: request/response access with JSON, Render and Log helpers;
//     it also implements context.Context
//   - Router and Handler: handlers declare their routes in Routes(r Router)
//   - Middleware: func(next HandlerFunc) HandlerFunc
//   - HTTPError: a status code plus a visitor-facing message for the ErrorHandler
//
// Example:
//
//	app := internal.New(
//	    internal.WithLogger(log),
//	    internal.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    internal.WithHandlers(handlers.NewContactHandler(service)),
//	    internal.WithHealthChecks(internal.WithReadinessCheck("mailer", check)),
//	)
//	err := app.Run(":8080", internal.ShutdownHook(logger.Flush()))
//
// For HTMX requests the response writer sends error statuses as 200 so
// that error fragments are swapped into the page.
package internal
