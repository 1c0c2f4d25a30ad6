package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/iudanet/commentfeed/internal/client/render"
)

func (c *Cli) watchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow the feed in the terminal",
		Long: heredoc.Doc(`
			Loads the whole feed, restores a recent submission from the local
			receipt log and then polls for new rows until interrupted.
		`),
		Example: heredoc.Doc(`
			$ commentfeed watch --feed-url "https://example.com/pub?output=csv"
			$ COMMENTFEED_POLL_INTERVAL=10s commentfeed watch -c commentfeed.yaml
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

			view := render.NewTerminal(c.io, "Comments")
			engine := newEngine(cfg, receipts, view, nil, logger, func() {
				logger.Info("Download available")
			})
			defer engine.Close()

			return engine.Run(ctx)
		},
	}
}
