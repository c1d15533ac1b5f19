package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/commons-feeds/committee-rss/internal/config"
	"github.com/commons-feeds/committee-rss/internal/feed"
	"github.com/commons-feeds/committee-rss/internal/logger"
	"github.com/commons-feeds/committee-rss/internal/storage"
	"github.com/commons-feeds/committee-rss/pkg/sinks"
	"github.com/commons-feeds/committee-rss/pkg/sources"
)

// Generator represents the feed generation runtime. It coordinates source
// fetchers, the feed builder, and delivery sinks, and owns the optional
// seen-publication cache.
type Generator struct {
	cfg        *config.Config
	sourceReg  *sources.Registry
	fetcherReg sources.FetcherRegistry
	fanout     *sinks.Fanout
	refresh    time.Duration
	log        logger.Logger
	store      storage.Store
	now        func() time.Time
}

// NewGenerator builds a generator runtime from the configured sources and
// sinks registry files.
func NewGenerator(ctx context.Context, cfg *config.Config, log logger.Logger) (*Generator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	sourceReg, err := sources.LoadRegistry(cfg.SourcesFile)
	if err != nil {
		return nil, fmt.Errorf("load sources registry: %w", err)
	}

	sinkReg, err := sinks.LoadRegistry(cfg.SinksFile)
	if err != nil {
		return nil, fmt.Errorf("load sinks registry: %w", err)
	}

	return assemble(ctx, cfg, log, sourceReg, sinkReg.Enabled())
}

// NewSingleSourceGenerator builds a generator for one ad-hoc source delivered
// to a file sink, bypassing the registry files. This backs the
// "feedgen <api-url> [output-path]" invocation.
func NewSingleSourceGenerator(ctx context.Context, cfg *config.Config, src sources.Source, log logger.Logger) (*Generator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	sourceReg, err := sources.NewRegistry([]sources.Source{src})
	if err != nil {
		return nil, fmt.Errorf("build source registry: %w", err)
	}

	return assemble(ctx, cfg, log, sourceReg, []sinks.SinkConfig{
		{ID: "feed-file", Type: sinks.TypeFile},
	})
}

// assemble wires the shared runtime pieces from materialized registries.
func assemble(ctx context.Context, cfg *config.Config, log logger.Logger, sourceReg *sources.Registry, sinkCfgs []sinks.SinkConfig) (*Generator, error) {
	sourceList := sourceReg.All()
	sourceIDs := make([]string, 0, len(sourceList))
	for _, s := range sourceList {
		sourceIDs = append(sourceIDs, s.ID)
	}
	log.InfoObj("sources registry loaded", "sources_meta", map[string]any{
		"count": len(sourceIDs),
		"ids":   sourceIDs,
	})

	if len(sinkCfgs) == 0 {
		return nil, fmt.Errorf("no sinks configured")
	}

	sinkRegistry := sinks.DefaultRegistry()
	sinkClients, err := sinks.BuildAll(ctx, sinkRegistry, sinkCfgs, log)
	if err != nil {
		return nil, fmt.Errorf("build sinks: %w", err)
	}
	fanout := sinks.NewFanout(sinkClients)
	sinkSummaries := make([]map[string]string, 0, len(sinkCfgs))
	for _, sinkCfg := range sinkCfgs {
		sinkSummaries = append(sinkSummaries, map[string]string{
			"id":   sinkCfg.ID,
			"type": sinkCfg.Type,
		})
	}
	log.InfoObj("sinks registry loaded", "sinks_meta", map[string]any{
		"count": len(sinkSummaries),
		"sinks": sinkSummaries,
	})

	storeOpts := storage.Options{
		PublicationTTL:  cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	}
	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storeOpts)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	fetcherReg := sources.DefaultFetcherRegistry(sources.DefaultHTTPClient(cfg.HTTPTimeout))

	return &Generator{
		cfg:        cfg,
		sourceReg:  sourceReg,
		fetcherReg: fetcherReg,
		fanout:     fanout,
		refresh:    cfg.RefreshInterval,
		log:        log,
		store:      store,
		now:        time.Now,
	}, nil
}

// Run executes one generation pass, or keeps regenerating on the configured
// refresh interval until the context is cancelled.
func (g *Generator) Run(ctx context.Context) error {
	if g == nil || g.fetcherReg == nil {
		return fmt.Errorf("generator is not initialized")
	}
	defer g.closeStore()

	srcs := g.sourceReg.All()
	if len(srcs) == 0 {
		return fmt.Errorf("no sources configured")
	}

	g.log.InfoObj("generator starting", "generator_state", map[string]any{
		"sources_count":    len(srcs),
		"sinks_count":      g.fanout.Size(),
		"refresh_interval": g.refresh.String(),
	})

	if g.refresh <= 0 {
		return g.runOnce(ctx, srcs)
	}

	if err := g.runOnce(ctx, srcs); err != nil {
		g.log.ErrorObj("initial generation failed", "error", err)
	}

	ticker := time.NewTicker(g.refresh)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			g.log.InfoObj("generator exiting", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			if err := g.runOnce(ctx, srcs); err != nil {
				g.log.ErrorObj("scheduled generation failed", "error", err)
			}
		}
	}
}

// runOnce performs a single generation pass across all sources.
func (g *Generator) runOnce(ctx context.Context, srcs []sources.Source) error {
	start := time.Now()
	g.log.InfoObj("generation started", "generation_meta", map[string]any{
		"sources_count": len(srcs),
		"started_at":    start.UTC(),
	})

	errs := make([]error, 0, len(srcs))
	for _, src := range srcs {
		if err := g.generateSource(ctx, src); err != nil {
			errs = append(errs, err)
			g.log.ErrorObj("source generation failed", "source_error", map[string]any{
				"source_id": src.ID,
				"error":     err.Error(),
			})
		}
	}

	g.log.InfoObj("generation completed", "generation_meta", map[string]any{
		"sources_count": len(srcs),
		"failed_count":  len(errs),
		"elapsed_ms":    time.Since(start).Milliseconds(),
	})
	return errors.Join(errs...)
}

// generateSource runs the full pipeline for one source: fetch, assemble,
// render, deliver, then account for newly seen publications.
func (g *Generator) generateSource(ctx context.Context, src sources.Source) error {
	fetcher, err := g.fetcherReg.FetcherFor(src)
	if err != nil {
		return fmt.Errorf("resolve fetcher for source %s: %w", src.ID, err)
	}

	pubs, err := fetcher.Fetch(ctx, src)
	if err != nil {
		return fmt.Errorf("fetch source %s: %w", src.ID, err)
	}

	doc := feed.BuildFeed(src.Channel, pubs, g.now())
	raw, err := feed.Render(doc)
	if err != nil {
		return fmt.Errorf("render feed for source %s: %w", src.ID, err)
	}

	art := sinks.NewArtifact(src.ID, src.Name, src.OutputPath, len(doc.Channel.Items), raw)
	delivered, err := g.fanout.Write(ctx, art)
	if err != nil {
		return fmt.Errorf("deliver feed for source %s: %w", src.ID, err)
	}

	newCount := g.markNewPublications(src.ID, doc.Channel.Items)

	g.log.InfoObj("feed generated", "feed_result", map[string]any{
		"source_id":   src.ID,
		"items":       len(doc.Channel.Items),
		"new_items":   newCount,
		"skipped":     len(pubs) - len(doc.Channel.Items),
		"delivered":   delivered,
		"output_path": src.OutputPath,
		"bytes":       len(raw),
	})
	return nil
}

// markNewPublications records accepted item GUIDs in the seen cache and
// returns how many were new. Cache trouble is logged, never fatal.
func (g *Generator) markNewPublications(sourceID string, items []feed.Item) int {
	newCount := 0
	for _, item := range items {
		if item.GUID == "" {
			continue
		}
		seen, err := g.store.SeenPublication(item.GUID)
		if err != nil {
			g.log.WarnObj("seen cache lookup failed", "cache_error", map[string]any{
				"source_id": sourceID,
				"guid":      item.GUID,
				"error":     err.Error(),
			})
			continue
		}
		if seen {
			continue
		}
		if err := g.store.MarkPublication(item.GUID); err != nil {
			g.log.WarnObj("seen cache mark failed", "cache_error", map[string]any{
				"source_id": sourceID,
				"guid":      item.GUID,
				"error":     err.Error(),
			})
			continue
		}
		newCount++
	}
	return newCount
}

// closeStore safely closes the storage backend, logging any errors encountered.
func (g *Generator) closeStore() {
	if g == nil || g.store == nil {
		return
	}
	if err := g.store.Close(); err != nil {
		g.log.ErrorObj("storage close failed", "error", err)
	}
}
