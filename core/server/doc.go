// Package server runs an http.Handler with production timeouts and graceful shutdown.
//
// Serve and ListenAndServe block until the context is cancelled, then shut the
// server down within the configured timeout. Run adapts ListenAndServe to
// errgroup:
//
//	srv, err := server.NewFromConfig(cfg, server.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, handler))
//	return g.Wait()
//
// TLS is enabled when SERVER_TLS_CERT_FILE and SERVER_TLS_KEY_FILE are set.
package server
