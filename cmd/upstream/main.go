// Command upstream serves a generated candidate collection at /api/candidates,
// standing in for the candidate API during local development.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/candidateview/internal/fixture"
	"github.com/okian/candidateview/pkg/logger"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

type options struct {
	addr  string
	count int
	seed  uint64
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "upstream",
		Short:        "Serve generated candidates at /api/candidates",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.Init(); err != nil {
				return err
			}
			return run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":5000", "listen address")
	cmd.Flags().IntVar(&opts.count, "count", 50, "number of candidates to generate")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 1, "generator seed")
	return cmd
}

func run(ctx context.Context, opts *options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logger.Named("upstream")

	mux := http.NewServeMux()
	fixture.NewServer(fixture.Generate(opts.count, fixture.WithSeed(opts.seed))).Register(mux)

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "serving candidates",
			logger.String("addr", opts.addr),
			logger.Int("count", opts.count),
			logger.Uint64("seed", opts.seed),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "shutdown failed", logger.Error(err))
		return err
	}
	log.Info(ctx, "stopped")
	return nil
}
