package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vnykmshr/pantry/internal/transport"
	"github.com/vnykmshr/pantry/pkg/profile/warmer"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the checker and profile store over HTTP",
		Long: `Serve exposes POST /check, the /profiles resource, /health and /metrics.
Cached profiles are refreshed on the configured warm schedule until the
process receives SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Server.Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}

			wcfg := warmer.DefaultConfig()
			wcfg.Schedule = a.cfg.Profile.WarmSchedule
			wcfg.Metrics = a.metrics
			wcfg.Logger = a.logger
			w, err := warmer.New(store, wcfg)
			if err != nil {
				return err
			}
			w.Start()
			defer w.Stop()

			server := transport.NewHTTPServer(addr, transport.NewEndpoints(a.checker, store), a.registry, a.logger)

			errCh := make(chan error, 1)
			go func() {
				errCh <- server.Serve()
			}()
			fmt.Fprintf(a.out, "serving on %s\n", addr)

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return err
			}
			return <-errCh
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}
