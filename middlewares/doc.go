// Package middlewares provides ready-made middleware for zenith applications.
//
// Every constructor returns a zenith.Middleware. Register it globally or on a
// route through zenith.Use:
//
//	app := zenith.New(
//	    zenith.WithMiddleware(
//	        zenith.Use(middlewares.Recover()),
//	        zenith.Use(middlewares.RequestID()),
//	        zenith.Use(middlewares.Logger(log)),
//	    ),
//	)
//
// or by name, so routes files can refer to it:
//
//	zenith.WithNamedMiddleware("csrf", func() zenith.Middleware {
//	    return middlewares.CSRF()
//	})
//
// A middleware that refuses a request either writes the response itself or
// calls Request.Abort with an error and returns false. Aborted errors reach
// the App's error handler, so Recover, Timeout and CSRF failures render like
// any handler error. Use IsPanicError and IsTimeoutError to tell them apart.
//
// Logs gain a request_id attribute when the logger is built with
// RequestIDExtractor:
//
//	log := logger.New(cfg.Log, middlewares.RequestIDExtractor())
package middlewares
