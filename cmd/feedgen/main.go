package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/commons-feeds/committee-rss/internal/app"
	"github.com/commons-feeds/committee-rss/internal/config"
	"github.com/commons-feeds/committee-rss/internal/feed"
	"github.com/commons-feeds/committee-rss/internal/logger"
	"github.com/commons-feeds/committee-rss/pkg/sources"
)

const (
	adHocSourceID     = "commons-reports"
	adHocSourceName   = "House of Commons Select Committee Reports"
	defaultOutputPath = "docs/feed.xml"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "feedgen failed: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync(log)

	log.InfoObj("feedgen starting", "config", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gen, err := newGenerator(ctx, cfg, args, log)
	if err != nil {
		log.ErrorObj("failed to initialize generator", "error", err)
		return err
	}

	if err := gen.Run(ctx); err != nil {
		return fmt.Errorf("feedgen run: %w", err)
	}

	return nil
}

// newGenerator picks the runtime mode from the command line. With positional
// arguments ("feedgen <api-url> [output-path]") it generates one ad-hoc feed
// for House of Commons select committee reports; with no arguments it loads
// the sources and sinks registry files.
func newGenerator(ctx context.Context, cfg *config.Config, args []string, log logger.Logger) (*app.Generator, error) {
	if len(args) == 0 {
		return app.NewGenerator(ctx, cfg, log)
	}
	if len(args) > 2 {
		return nil, fmt.Errorf("usage: feedgen [API_URL [OUTPUT_PATH]]")
	}

	outputPath := defaultOutputPath
	if len(args) == 2 {
		outputPath = args[1]
	}

	src := sources.Source{
		ID:         adHocSourceID,
		Name:       adHocSourceName,
		Type:       sources.TypeCommitteesAPI,
		SourceURL:  args[0],
		OutputPath: outputPath,
		Channel: feed.ChannelInfo{
			Title:       "House of Commons Select Committee Reports",
			Link:        "https://committees.parliament.uk/publications/",
			Description: "Latest reports from House of Commons select committees",
		},
	}
	return app.NewSingleSourceGenerator(ctx, cfg, src, log)
}
