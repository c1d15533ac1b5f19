package sinks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// fileSink writes the rendered document to disk, fully replacing any
// previous content.
type fileSink struct {
	id   string
	typ  string
	path string
	log  Logger
}

func newFileSink(_ context.Context, cfg SinkConfig, log Logger) (Sink, error) {
	path := ""
	if cfg.File != nil {
		path = cfg.File.Path
	}
	return &fileSink{
		id:   cfg.ID,
		typ:  TypeFile,
		path: path,
		log:  ensureLogger(log),
	}, nil
}

func (f *fileSink) ID() string   { return f.id }
func (f *fileSink) Type() string { return f.typ }

// Write stores the artifact's XML at the configured path, falling back to the
// artifact's own output path. Parent directories are created as needed.
func (f *fileSink) Write(_ context.Context, art Artifact) error {
	path := f.path
	if path == "" {
		path = art.OutputPath
	}
	if path == "" {
		return fmt.Errorf("sink %q has no output path for source %q", f.id, art.SourceID)
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, art.XML, 0o644); err != nil {
		return fmt.Errorf("write feed file: %w", err)
	}

	f.log.DebugObj("file sink wrote feed", "file_sink_write", map[string]any{
		"sink_id":   f.id,
		"source_id": art.SourceID,
		"path":      path,
		"bytes":     len(art.XML),
	})
	return nil
}
