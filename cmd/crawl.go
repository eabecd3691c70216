package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/newsburst/headline-crawler/internal/crawler"
	"github.com/newsburst/headline-crawler/internal/sink"
)

const flagDateLayout = "2006-01-02"

// newCrawlCmd creates and configures the 'crawl' subcommand.
func newCrawlCmd() *cobra.Command {
	var (
		startFlag  string
		endFlag    string
		outputFlag string
	)

	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Crawls headlines for a date range",
		Long: `Fetches every listing page for each date in [--start, --end], retrying
failed pages, and prints or saves the deduplicated headline set.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCrawl(startFlag, endFlag, outputFlag)
		},
	}

	cmd.Flags().StringVar(&startFlag, "start", "", "first date to crawl (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endFlag, "end", "", "last date to crawl (YYYY-MM-DD)")
	cmd.Flags().StringVar(&outputFlag, "output", "", "snapshot file path (overrides output.path)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func runCrawl(startFlag, endFlag, outputFlag string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // best-effort flush

	start, err := time.Parse(flagDateLayout, startFlag)
	if err != nil {
		return fmt.Errorf("parse --start: %w", err)
	}
	end, err := time.Parse(flagDateLayout, endFlag)
	if err != nil {
		return fmt.Errorf("parse --end: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := crawler.New(cfg.EngineConfig(), logger)
	set, err := engine.Run(ctx, start, end, crawler.NaverHeadlines)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("run crawl: %w", err)
	}
	if err != nil {
		logger.Warn("crawl interrupted, writing partial results", zap.Error(err))
	}

	headlines := set.Slice()
	outPath := outputFlag
	if outPath == "" {
		outPath = cfg.Output.Path
	}
	if outPath == "" {
		for _, title := range headlines {
			fmt.Println(title)
		}
		return nil
	}

	snap := sink.Snapshot{
		RunID:     uuid.NewString(),
		StartDate: startFlag,
		EndDate:   endFlag,
		Headlines: headlines,
	}
	if err := sink.NewFileSink(outPath, logger).Save(context.Background(), snap); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}
