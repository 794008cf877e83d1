// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pdiddy/spacefrontiers-mcp/internal/auth"
	"github.com/pdiddy/spacefrontiers-mcp/internal/searchapi"
	"github.com/pdiddy/spacefrontiers-mcp/internal/server"
)

const defaultAddr = ":8000"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the agent-protocol server",
	Long: `Serve runs the tool server over streamable HTTP (default) or stdio.

Over HTTP, per-request credentials are read from the X-User-Id,
Authorization and X-Api-Key headers; requests without credentials fall
back to the configured API key. Over stdio the configured key is used
for every call.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", defaultAddr, "listen address for the HTTP transport")
	serveCmd.Flags().String("transport", "http", "transport to serve on: http or stdio")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	addr, _ := cmd.Flags().GetString("addr")

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	cfg := clientConfig()

	srv := server.New(
		searchapi.New(cfg),
		auth.Resolver{DefaultAPIKey: cfg.APIKey},
		version,
		log,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch transport {
	case "stdio":
		log.Info().Str("transport", "stdio").Msg("server starting")
		return srv.RunStdio(ctx)
	case "http":
		httpSrv := &http.Server{
			Addr:    addr,
			Handler: srv.HTTPHandler(),
		}

		errc := make(chan error, 1)
		go func() {
			errc <- httpSrv.ListenAndServe()
		}()
		log.Info().Str("transport", "http").Str("addr", addr).Str("endpoint", cfg.BaseURL).Msg("server starting")

		select {
		case err := <-errc:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info().Msg("server shutting down")
		return httpSrv.Shutdown(shutdownCtx)
	default:
		return fmt.Errorf("unsupported transport %q: use http or stdio", transport)
	}
}
