// Package health serves liveness and readiness probes.
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Handle("/health/ready", health.ReadinessHandler(health.Checks{
//		"db": db.Healthcheck(handle.DB),
//	}))
//
// Readiness runs every check concurrently and answers 503 when any fails.
package health
