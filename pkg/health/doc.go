// Package health provides the liveness and readiness handlers of lingo serve.
//
// [LivenessHandler] always answers OK. [ReadinessHandler] runs a set of named
// [Checks] concurrently under a shared timeout and reports 503 when any of
// them fails:
//
//	r.Get("/healthz", health.LivenessHandler())
//	r.Get("/readyz", health.ReadinessHandler(health.Checks{
//		"postgres": db.Healthcheck(pool),
//		"redis":    redis.Healthcheck(client),
//		"source":   source.Healthcheck(src),
//	}, health.WithTimeout(3*time.Second), health.WithLogger(log)))
//
// Responses are plain text ("OK" or "Service Unavailable") unless the client
// sends Accept: application/json or ?format=json:
//
//	{
//	  "status": "unhealthy",
//	  "checks": {
//	    "postgres": {"status": "healthy"},
//	    "redis": {"status": "unhealthy", "error": "redis: healthcheck failed\ndial tcp: connection refused"}
//	  }
//	}
//
// A check that outlives the timeout is reported with [ErrCheckTimeout].
package health
