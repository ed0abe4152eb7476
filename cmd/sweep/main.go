// cmd/sweep runs one scheduled-publish sweep and prints the result as JSON.
// Useful from an external cron when the worker is not deployed.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"bloghub-backend/internal/domains/blog/model"
	"bloghub-backend/pkg/container"
	"bloghub-backend/pkg/logger"
)

// sweeper is the slice of the blog service this command needs.
type sweeper interface {
	PublishScheduled(ctx context.Context, now time.Time) (*model.SweepResult, error)
	CountScheduledDue(ctx context.Context, now time.Time) (int64, error)
}

type options struct {
	now    time.Time
	dryRun bool
}

func parseFlags(args []string) (*options, error) {
	fs := pflag.NewFlagSet("sweep", pflag.ContinueOnError)
	nowFlag := fs.String("now", "", "evaluate due posts at this RFC3339 instant instead of the current time")
	dryRun := fs.Bool("dry-run", false, "count due posts without publishing them")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	opts := &options{dryRun: *dryRun}
	if *nowFlag != "" {
		t, err := time.Parse(time.RFC3339, *nowFlag)
		if err != nil {
			return nil, fmt.Errorf("invalid --now: %w", err)
		}
		opts.now = t.UTC()
	}
	return opts, nil
}

func run(ctx context.Context, svc sweeper, opts *options, out io.Writer) error {
	var (
		result *model.SweepResult
		err    error
	)

	if opts.dryRun {
		var count int64
		count, err = svc.CountScheduledDue(ctx, opts.now)
		if err == nil {
			result = &model.SweepResult{
				Success:        true,
				PublishedCount: count,
				Message:        fmt.Sprintf("%d scheduled blog(s) due.", count),
				DryRun:         true,
			}
		}
	} else {
		result, err = svc.PublishScheduled(ctx, opts.now)
	}

	if err != nil {
		log.Error().Err(err).Msg("Scheduled sweep failed")
		result = model.NewSweepFailure("Failed to publish scheduled blogs")
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if encErr := enc.Encode(result); encErr != nil {
		return encErr
	}
	return err
}

func main() {
	_ = godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))

	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	c, err := container.NewContainer()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize container")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	err = run(ctx, c.BlogService, opts, os.Stdout)
	cancel()
	c.Cleanup()

	if err != nil {
		os.Exit(1)
	}
}
