// Package httpserver runs the portal's net/http server with graceful
// shutdown, timeouts that suit long-lived SSE streams, and health probes.
//
// Run listens before it serves, so Addr reports the bound address even when
// the configured address uses port 0. Shutdown first fires the callbacks
// registered with WithOnShutdown, which is where open event streams are
// closed, and then waits for in-flight requests within the shutdown timeout.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP,
//		httpserver.WithLogger(log),
//		httpserver.WithOnShutdown(registry.Close),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//		return err
//	}
//
// Run wraps listen and serve failures with ErrStart; Shutdown wraps failures
// with ErrShutdown.
package httpserver
