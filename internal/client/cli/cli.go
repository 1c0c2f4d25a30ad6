// Package cli реализует команды commentfeed на cobra.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/iudanet/commentfeed/internal/client/comments"
	"github.com/iudanet/commentfeed/internal/client/feed"
	"github.com/iudanet/commentfeed/internal/client/iocli"
	"github.com/iudanet/commentfeed/internal/client/render"
	"github.com/iudanet/commentfeed/internal/client/storage"
	"github.com/iudanet/commentfeed/internal/client/storage/boltdb"
	"github.com/iudanet/commentfeed/internal/client/storage/sqlite"
	"github.com/iudanet/commentfeed/internal/client/sync"
	"github.com/iudanet/commentfeed/internal/config"
	"github.com/iudanet/commentfeed/internal/metrics"
)

// BuildInfo is set via ldflags in cmd/commentfeed.
type BuildInfo struct {
	Version   string
	BuildDate string
	GitCommit string
}

// globalFlags переопределяют значения из конфигурации
type globalFlags struct {
	configPath string
	feedURL    string
	dbPath     string
	driver     string
	listen     string
}

type Cli struct {
	io     iocli.IO
	logOut io.Writer
	flags  globalFlags
	build  BuildInfo
}

// New creates the CLI. Command output goes to out, logs go to logOut.
func New(out iocli.IO, logOut io.Writer, build BuildInfo) *Cli {
	return &Cli{
		io:     out,
		logOut: logOut,
		build:  build,
	}
}

// Execute runs the command line given in args.
func (c *Cli) Execute(ctx context.Context, args []string) error {
	root := c.RootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// RootCommand builds the command tree.
func (c *Cli) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "commentfeed",
		Short: "Live comment feed backed by a published spreadsheet",
		Long: heredoc.Doc(`
			commentfeed polls a spreadsheet published as CSV, keeps an ordered
			list of comments and shows your own submissions immediately, before
			the spreadsheet confirms them.
		`),
		Example: heredoc.Doc(`
			$ commentfeed watch --feed-url "https://docs.google.com/.../pub?output=csv"
			$ commentfeed serve --config commentfeed.yaml --listen :8080
			$ commentfeed submit --server http://localhost:8080 --name Ann --comment "hello"
		`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(c.io)
	root.SetErr(c.logOut)

	pf := root.PersistentFlags()
	pf.StringVarP(&c.flags.configPath, "config", "c", "", "path to YAML config file")
	pf.StringVar(&c.flags.feedURL, "feed-url", "", "published CSV feed URL (overrides feed_url)")
	pf.StringVar(&c.flags.dbPath, "db", "", "path to local receipt database (overrides storage.path)")
	pf.StringVar(&c.flags.driver, "storage", "", "receipt storage driver: bolt or sqlite (overrides storage.driver)")

	root.AddCommand(
		c.watchCommand(),
		c.serveCommand(),
		c.submitCommand(),
		c.receiptsCommand(),
		c.parseCommand(),
		c.versionCommand(),
	)

	return root
}

// loadConfig читает конфигурацию и применяет глобальные флаги.
// offline пропускает проверку feed_url для команд, работающих только с журналом.
func (c *Cli) loadConfig(offline bool) (*config.Config, error) {
	cfg, err := config.Load(c.flags.configPath)
	if err != nil {
		return nil, err
	}

	if c.flags.feedURL != "" {
		cfg.FeedURL = c.flags.feedURL
	}
	if c.flags.dbPath != "" {
		cfg.Storage.Path = c.flags.dbPath
	}
	if c.flags.driver != "" {
		cfg.Storage.Driver = c.flags.driver
	}
	if c.flags.listen != "" {
		cfg.Server.Address = c.flags.listen
	}

	if offline {
		err = cfg.ValidateOffline()
	} else {
		err = cfg.Validate()
	}
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// newLogger создает slog.Logger по секции log конфигурации
func newLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(cfg.Level))); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// openStorage открывает журнал квитанций выбранным драйвером
func openStorage(ctx context.Context, cfg config.StorageConfig) (storage.ReceiptStore, error) {
	switch cfg.Driver {
	case "sqlite":
		s, err := sqlite.New(ctx, cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite storage: %w", err)
		}
		return s, nil
	case "bolt", "":
		s, err := boltdb.New(ctx, cfg.Path, cfg.LockTimeout)
		if err != nil {
			return nil, fmt.Errorf("failed to open bolt storage: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// newEngine собирает движок синхронизации из конфигурации
func newEngine(
	cfg *config.Config,
	receipts storage.ReceiptStorage,
	view render.View,
	m *metrics.Metrics,
	logger *slog.Logger,
	onUnlock func(),
) *sync.Service {
	fetcher := feed.NewFetcher(feed.Config{
		FeedURL:  cfg.FeedURL,
		RelayURL: cfg.RelayPrefix(),
		Timeout:  cfg.FetchTimeout,
		Rate:     cfg.FetchRate,
		Burst:    cfg.FetchBurst,
	}, logger)

	return sync.NewService(
		fetcher,
		receipts,
		comments.NewStore(cfg.NewestFirst),
		view,
		m,
		logger,
		sync.Options{
			OnUnlock:        onUnlock,
			PollInterval:    cfg.PollInterval,
			SubmitPollDelay: cfg.SubmitPollDelay,
			RecencyWindow:   cfg.RecencyWindow,
		},
	)
}

// closeStorage закрывает хранилище, логируя ошибку
func closeStorage(s storage.ReceiptStore, logger *slog.Logger) {
	if err := s.Close(); err != nil {
		logger.Error("failed to close database", "error", err)
	}
}
