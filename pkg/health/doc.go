// Package health provides HTTP handlers for health probes.
//
// [LivenessHandler] always answers OK while the process runs.
// [ReadinessHandler] runs a set of named [Checks] concurrently and answers
// 503 when any of them fails. [Run] exposes the same aggregation for use
// outside HTTP.
//
// # Quick Start
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "postgres": db.Healthcheck(pool),
//	    "redis":    redis.Healthcheck(client),
//	}, health.WithTimeout(3*time.Second)))
//
// zenith.WithHealthChecks mounts both handlers on the application.
//
// # Response Formats
//
// Plain text by default ("OK" or "Service Unavailable"). JSON when the
// request sets Accept: application/json or ?format=json:
//
//	{
//	  "status": "unhealthy",
//	  "checks": {
//	    "postgres": {"status": "healthy"},
//	    "redis": {"status": "unhealthy", "error": "connection refused"}
//	  }
//	}
//
// # Errors
//
//   - [ErrCheckFailed] - One or more checks failed
//   - [ErrCheckTimeout] - A check failed after the shared deadline passed
package health
