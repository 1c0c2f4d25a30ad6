package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/commentfeed/internal/client/render"
)

func (c *Cli) receiptsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "receipts",
		Short: "Print the local submission receipt log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.loadConfig(true)
			if err != nil {
				return err
			}
			logger := newLogger(cfg.Log, c.logOut)

			store, err := openStorage(cmd.Context(), cfg.Storage)
			if err != nil {
				return err
			}
			defer closeStorage(store, logger)

			receipts, err := store.GetReceipts(cmd.Context())
			if err != nil {
				return err
			}

			if len(receipts) == 0 {
				c.io.Println("No receipts")
				return nil
			}

			now := time.Now()
			for _, r := range receipts {
				marker := ""
				if r.IsRecent(now, cfg.RecencyWindow) {
					marker = " (recent)"
				}
				c.io.Printf("%s  %s  %s  %s%s\n",
					r.SubmittedAt.Format(time.RFC3339), r.ID, r.ClientTimestamp, render.Sanitize(r.Name), marker)
			}
			c.io.Printf("Total: %d\n", len(receipts))
			return nil
		},
	}
}
