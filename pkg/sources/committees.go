package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/commons-feeds/committee-rss/internal/domain"
)

// committeesFetcher implements Fetcher for the parliamentary committees
// publications API, which serves JSON with a top-level "items" array.
type committeesFetcher struct {
	client HTTPClient
}

// NewCommitteesFetcher builds a fetcher for committees publications sources.
func NewCommitteesFetcher(client HTTPClient) Fetcher {
	if client == nil {
		client = DefaultHTTPClient(0)
	}
	return &committeesFetcher{client: client}
}

func (f *committeesFetcher) ID() string {
	return TypeCommitteesAPI
}

// publicationsEnvelope is the top-level API response shape. A missing items
// key decodes to a nil slice and yields an empty feed rather than an error.
type publicationsEnvelope struct {
	Items []domain.Publication `json:"items"`
}

func (f *committeesFetcher) Fetch(ctx context.Context, cfg Source) ([]domain.Publication, error) {
	if !strings.EqualFold(cfg.Type, TypeCommitteesAPI) {
		return nil, fmt.Errorf("committees fetcher received incompatible source type %q", cfg.Type)
	}
	if strings.TrimSpace(cfg.SourceURL) == "" {
		return nil, fmt.Errorf("source %q source_url is empty", cfg.ID)
	}

	headers := Headers(cfg)

	resp, err := f.client.Get(ctx, cfg.SourceURL, headers)
	if err != nil {
		return nil, fmt.Errorf("fetch %s publications: %w", cfg.ID, err)
	}

	body := resp.Body()
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%s publications returned status %d body: %s",
			cfg.ID, resp.StatusCode(), responseSnippet(body))
	}

	var envelope publicationsEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode %s publications: %w", cfg.ID, err)
	}
	return envelope.Items, nil
}
