package sources

import (
	"context"

	"github.com/commons-feeds/committee-rss/internal/domain"
	"github.com/commons-feeds/committee-rss/pkg/httpclient"
)

// Fetcher retrieves the raw publication records for a source.
// Concrete implementations live in source-specific files (e.g., committees.go).
type Fetcher interface {
	ID() string
	Fetch(ctx context.Context, cfg Source) ([]domain.Publication, error)
}

// FetcherRegistry resolves the fetcher implementation for a given source config.
type FetcherRegistry interface {
	FetcherFor(cfg Source) (Fetcher, error)
}

// HTTPClient aliases the shared httpclient.Client interface for clarity within sources.
type HTTPClient = httpclient.Client
