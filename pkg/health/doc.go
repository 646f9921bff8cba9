// Package health provides HTTP handlers for liveness and readiness probes.
//
// [LivenessHandler] always answers OK while the process runs.
// [ReadinessHandler] runs a set of named [Checks] in parallel and answers
// 503 when any of them fails:
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//		"mailer":    mailerConfigured,
//		"templates": renderer.Preload,
//	}, health.WithTimeout(3*time.Second), health.WithLogger(log)))
//
// Responses are plain text ("OK" or "Service Unavailable") unless the client
// asks for JSON with an Accept header or ?format=json:
//
//	{"status":"unhealthy","checks":{"mailer":{"status":"unhealthy","error":"RESEND_API_KEY is not set"}}}
package health
