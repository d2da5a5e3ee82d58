// Command viewer is a terminal candidate list viewer.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/okian/candidateview/internal/adapters/loader"
	"github.com/okian/candidateview/internal/adapters/repository"
	"github.com/okian/candidateview/internal/adapters/tui"
	"github.com/okian/candidateview/internal/config"
	"github.com/okian/candidateview/internal/domain/candidate"
	"github.com/okian/candidateview/pkg/logger"
)

const logFilePermission = 0o600

type options struct {
	apiURL  string
	timeout time.Duration
	logFile string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "viewer",
		Short: "Browse candidates in the terminal",
		Long: `Loads the candidate collection once from <api-url>/api/candidates and shows it
as a table that can be filtered by name or skills and sorted by years of experience.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}

	defaultURL := config.DefaultAPIURL
	if cfg, err := config.Load(context.Background()); err == nil {
		defaultURL = cfg.APIURL
	}

	cmd.Flags().StringVar(&opts.apiURL, "api-url", defaultURL, "base URL of the candidate API")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "bound each load (0 = no bound)")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "write logs to this file instead of discarding them")
	return cmd
}

func run(ctx context.Context, opts *options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var out io.Writer = io.Discard
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}
	if err := logger.InitWithWriter(out); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	store := repository.NewMemoryStore()
	l, err := loader.NewHTTPLoader(opts.apiURL, store, loader.WithTimeout(opts.timeout))
	if err != nil {
		return err
	}

	fetch := func(ctx context.Context) ([]candidate.Record, error) {
		err := l.Load(ctx)
		return store.Get(ctx), err
	}

	p := tea.NewProgram(tui.NewModel(ctx, fetch), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("run viewer: %w", err)
	}
	return nil
}
