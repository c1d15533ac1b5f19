package storage

import (
	"fmt"
	"strings"
	"time"
)

// Package storage provides the seen-publication cache abstraction. The cache
// only feeds run logging (new vs. already-seen items); feed contents never
// depend on it.

// Store tracks publication GUIDs that have already appeared in generated feeds.
type Store interface {
	Close() error
	SeenPublication(guid string) (bool, error)
	MarkPublication(guid string) error
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	PublicationTTL  time.Duration
	CleanupInterval time.Duration
}

const (
	defaultPublicationTTL  = 30 * 24 * time.Hour
	defaultCleanupInterval = 12 * time.Hour
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.PublicationTTL <= 0 {
		opts.PublicationTTL = defaultPublicationTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                         { return nil }
func (noopStore) SeenPublication(string) (bool, error) { return false, nil }
func (noopStore) MarkPublication(string) error         { return nil }
