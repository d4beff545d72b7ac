// Package server provides an HTTP server with graceful shutdown, configurable
// timeouts and optional TLS. It wraps the standard http.Server.
//
// # Basic Usage
//
//	import (
//		"context"
//		"net/http"
//		"github.com/dmitrymomot/fileserver/core/server"
//	)
//
//	func main() {
//		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//		defer stop()
//
//		if err := server.Run(ctx, ":8080", http.FileServer(http.Dir("."))); err != nil {
//			log.Fatal(err)
//		}
//	}
//
// # Configuration
//
// Options configure a server directly:
//
//	srv := server.New(":8080",
//		server.WithShutdownTimeout(60*time.Second),
//		server.WithReadTimeout(10*time.Second),
//		server.WithLogger(log),
//	)
//
// Config loads the same settings from SERVER_* environment variables:
//
//	var cfg server.Config
//	config.MustLoad(&cfg)
//	srv, err := server.NewFromConfig(cfg, server.WithLogger(log))
//
// The write timeout defaults to zero because file downloads can run long.
// Setting SERVER_TLS_CERT_FILE and SERVER_TLS_KEY_FILE enables HTTPS with
// DefaultTLSConfig.
//
// # Lifecycle
//
// Run returns a function for errgroup that serves until the context is
// canceled and then shuts down gracefully:
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, handler))
//	if err := g.Wait(); err != nil {
//		log.Fatal(err)
//	}
//
// Addr reports the bound address once Ready is closed, which makes ":0"
// usable in tests.
package server
