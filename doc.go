// Package site assembles the Packwood Plates web server.
//
// New wires configuration into the contact pipeline: a Resend-backed
// mailer, the contact service, page and API handlers, the request
// middlewares and the health probes. Run serves until a signal arrives
// or the context is cancelled, then flushes buffered log events.
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	s, err := site.New(cfg)
//	if err != nil {
//	    return err
//	}
//	return s.Run(ctx)
//
// Server implements http.Handler, so tests can drive it with httptest
// without binding a port.
package site
