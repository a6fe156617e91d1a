package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bnema/agentgate/internal/adapters/transport/httpapi"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(app *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP gateway",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if addr == "" {
				addr = app.cfg.Addr
			}
			return app.serve(ctx, addr, func(bound net.Addr) {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "agentgate listening on http://%s\n", bound)
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to server.addr)")

	return cmd
}

// serve runs the HTTP server, its shutdown watcher and the replay sweeper
// until ctx is done or one of them fails.
func (a *app) serve(ctx context.Context, addr string, ready func(net.Addr)) error {
	gateway, replay, err := a.buildGateway(ctx)
	if err != nil {
		return err
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           httpapi.NewHandler(gateway, a.logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	health := gateway.Health()
	a.logger.InfoContext(ctx, "gateway started",
		"addr", listener.Addr().String(),
		"broker", health.Broker,
		"summarizer", health.Summarizer,
		"replay_window", replay.Window(),
	)
	if ready != nil {
		ready(listener.Addr())
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		a.logger.InfoContext(shutdownCtx, "shutting down gateway")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(max(replay.Window()/2, time.Second))
		defer ticker.Stop()

		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if removed := replay.Sweep(); removed > 0 {
					a.logger.DebugContext(gctx, "evicted expired nonces", "removed", removed, "remaining", replay.Len())
				}
			}
		}
	})

	return g.Wait()
}
