package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/iudanet/commentfeed/internal/client/render"
	"github.com/iudanet/commentfeed/internal/metrics"
	"github.com/iudanet/commentfeed/internal/server"
	"github.com/iudanet/commentfeed/internal/server/middleware"
)

const shutdownTimeout = 10 * time.Second

func (c *Cli) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the sync engine behind an HTTP API",
		Long: heredoc.Doc(`
			Runs the sync engine and exposes the rendered feed over HTTP:

			  GET  /api/v1/comments     current list, blocked comments excluded
			  POST /api/v1/submissions  report a completed form submission
			  GET  /api/v1/download     200 once unlocked, 403 before
			  GET  /api/v1/health       liveness
			  GET  /metrics             Prometheus metrics
		`),
		Example: heredoc.Doc(`
			$ commentfeed serve --feed-url "https://example.com/pub?output=csv" --listen :9090
			$ commentfeed serve -c commentfeed.yaml --storage sqlite --db feed.sqlite
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.loadConfig(false)
			if err != nil {
				return err
			}
			logger := newLogger(cfg.Log, c.logOut)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			receipts, err := openStorage(ctx, cfg.Storage)
			if err != nil {
				return err
			}
			defer closeStorage(receipts, logger)

			reg := metrics.NewRegistry()
			m := metrics.New(reg)
			list := render.NewList()

			engine := newEngine(cfg, receipts, list, m, logger, func() {
				logger.Info("Download available")
			})
			defer engine.Close()

			limiter := middleware.NewRateLimiter(
				rate.Limit(cfg.Server.SubmitRate),
				cfg.Server.SubmitBurst,
				middleware.DefaultIdleTTL,
				logger,
			)
			defer limiter.Stop()

			httpServer := &http.Server{
				Addr: cfg.Server.Address,
				Handler: server.NewRouter(server.Config{
					Lister:        list,
					Engine:        engine,
					Gatherer:      reg,
					Metrics:       m,
					Logger:        logger,
					SubmitLimiter: limiter,
					Version:       c.build.Version,
				}),
				ReadHeaderTimeout: 10 * time.Second,
			}

			engineDone := make(chan error, 1)
			go func() {
				engineDone <- engine.Run(ctx)
			}()

			serverErr := make(chan error, 1)
			go func() {
				logger.Info("HTTP server listening", "address", cfg.Server.Address)
				if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
				close(serverErr)
			}()

			var runErr error
			select {
			case <-ctx.Done():
				logger.Info("Shutting down")
			case err, ok := <-serverErr:
				if ok {
					runErr = fmt.Errorf("http server failed: %w", err)
				}
				stop()
			}

			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger.Error("HTTP server shutdown failed", "error", err)
			}

			<-engineDone
			return runErr
		},
	}

	cmd.Flags().StringVar(&c.flags.listen, "listen", "", "HTTP listen address (overrides server.address)")

	return cmd
}
