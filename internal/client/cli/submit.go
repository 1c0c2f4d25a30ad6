package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/iudanet/commentfeed/internal/client/api"
	"github.com/iudanet/commentfeed/internal/models"
	pkgapi "github.com/iudanet/commentfeed/pkg/api"
)

type submitOptions struct {
	name            string
	comment         string
	clientTimestamp string
	serverURL       string
}

func (c *Cli) submitCommand() *cobra.Command {
	opts := &submitOptions{}

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Record a submitted comment",
		Long: heredoc.Doc(`
			Reports a comment that was just submitted through the form.

			With --server the running "commentfeed serve" shows it immediately and
			unlocks the download. Without --server the receipt is only appended to
			the local log, so the next watch or serve within the recency window
			shows it as pending.

			Missing --name or --comment are asked for interactively.
		`),
		Example: heredoc.Doc(`
			$ commentfeed submit --server http://localhost:8080 --name Ann --comment "hello"
			$ commentfeed submit --db commentfeed.db --name Ann --comment "hello"
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.promptMissing(opts); err != nil {
				return err
			}

			if opts.serverURL != "" {
				return c.submitRemote(cmd, opts)
			}
			return c.submitLocal(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.name, "name", "", "author name")
	f.StringVar(&opts.comment, "comment", "", "comment text")
	f.StringVar(&opts.clientTimestamp, "client-timestamp", "", "ISO-8601 submission id (generated when empty)")
	f.StringVar(&opts.serverURL, "server", "", "URL of a running commentfeed serve")

	return cmd
}

// promptMissing запрашивает незаданные поля. Пустые значения допустимы:
// содержимое комментария не проверяется.
func (c *Cli) promptMissing(opts *submitOptions) error {
	var err error
	if opts.name == "" {
		if opts.name, err = c.io.ReadInput("Name: "); err != nil {
			return fmt.Errorf("failed to read name: %w", err)
		}
	}
	if opts.comment == "" {
		if opts.comment, err = c.io.ReadInput("Comment: "); err != nil {
			return fmt.Errorf("failed to read comment: %w", err)
		}
	}
	return nil
}

func (c *Cli) submitRemote(cmd *cobra.Command, opts *submitOptions) error {
	client := api.NewClient(opts.serverURL)

	resp, err := client.Submit(cmd.Context(), pkgapi.SubmissionRequest{
		Name:            opts.name,
		Comment:         opts.comment,
		ClientTimestamp: strings.TrimSpace(opts.clientTimestamp),
	})
	if err != nil {
		return err
	}

	c.io.Printf("Submitted %s (client timestamp %s)\n", resp.ID, resp.ClientTimestamp)

	status, err := client.DownloadStatus(cmd.Context())
	if err != nil {
		return err
	}
	if status.Available {
		c.io.Println("Download available")
	}
	return nil
}

func (c *Cli) submitLocal(cmd *cobra.Command, opts *submitOptions) error {
	cfg, err := c.loadConfig(true)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Log, c.logOut)

	receipts, err := openStorage(cmd.Context(), cfg.Storage)
	if err != nil {
		return err
	}
	defer closeStorage(receipts, logger)

	now := time.Now()
	clientTimestamp := strings.TrimSpace(opts.clientTimestamp)
	if clientTimestamp == "" {
		clientTimestamp = models.FormatClientTimestamp(now)
	}

	receipt := models.NewSubmissionReceipt(opts.name, opts.comment, clientTimestamp, now)
	if err := receipts.AppendReceipt(cmd.Context(), receipt); err != nil {
		return fmt.Errorf("failed to save receipt: %w", err)
	}

	c.io.Printf("Saved receipt %s (client timestamp %s)\n", receipt.ID, receipt.ClientTimestamp)
	c.io.Printf("It will be shown as pending by watch or serve started within %s\n", cfg.RecencyWindow)
	return nil
}
