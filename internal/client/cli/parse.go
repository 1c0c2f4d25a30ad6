package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/iudanet/commentfeed/internal/client/render"
	"github.com/iudanet/commentfeed/internal/sheet"
)

func (c *Cli) parseCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Parse a saved feed export offline",
		Long: heredoc.Doc(`
			Parses a CSV export the same way the sync engine does and prints the
			resolved columns and records. Use "-" to read standard input.
		`),
		Example: heredoc.Doc(`
			$ commentfeed parse export.csv
			$ curl -s "$FEED_URL" | commentfeed parse --json -
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			text, err := readSource(args[0])
			if err != nil {
				return err
			}

			table := sheet.Parse(text)
			records := sheet.Records(table)

			if asJSON {
				data, err := json.MarshalIndent(records, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode records: %w", err)
				}
				_, err = c.io.Write(append(data, '\n'))
				return err
			}

			if len(table) == 0 {
				c.io.Println("Empty feed")
				return nil
			}

			cols := sheet.ResolveColumns(table[0])
			c.io.Printf("Columns: timestamp=%d client_timestamp=%d name=%d comment=%d blocked=%d\n",
				cols.Timestamp, cols.ClientTimestamp, cols.Name, cols.Comment, cols.Blocked)
			c.io.Printf("Rows: %d\n\n", len(records))

			for _, rec := range records {
				if rec.IsEmpty() {
					continue
				}
				el := render.NewElement(rec.Key(), rec)
				if el == nil {
					c.io.Printf("[blocked] %s\n", render.Sanitize(rec.Key()))
					continue
				}
				_, _ = c.io.Write([]byte(render.FormatElement(*el, c.io.Width())))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print records as JSON")

	return cmd
}

func readSource(path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
