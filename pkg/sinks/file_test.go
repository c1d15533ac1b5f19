package sinks

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileSinkWritesArtifactPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "docs", "feed.xml")

	sink, err := newFileSink(context.Background(), SinkConfig{ID: "feed-file", Type: TypeFile}, nil)
	if err != nil {
		t.Fatalf("newFileSink: %v", err)
	}

	art := NewArtifact("commons-reports", "Commons Reports", path, 2, []byte("<rss/>"))
	if err := sink.Write(context.Background(), art); err != nil {
		t.Fatalf("Write: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(raw) != "<rss/>" {
		t.Errorf("unexpected content %q", raw)
	}
}

func TestFileSinkConfiguredPathOverridesArtifact(t *testing.T) {
	dir := t.TempDir()
	configured := filepath.Join(dir, "override.xml")

	sink, err := newFileSink(context.Background(), SinkConfig{
		ID:   "feed-file",
		Type: TypeFile,
		File: &FileSinkConfig{Path: configured},
	}, nil)
	if err != nil {
		t.Fatalf("newFileSink: %v", err)
	}

	art := NewArtifact("commons-reports", "Commons Reports", filepath.Join(dir, "ignored.xml"), 0, []byte("x"))
	if err := sink.Write(context.Background(), art); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if _, err := os.Stat(configured); err != nil {
		t.Fatalf("expected configured path written: %v", err)
	}
}

func TestFileSinkOverwritesExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "feed.xml")
	if err := os.WriteFile(path, []byte("stale content"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	sink, err := newFileSink(context.Background(), SinkConfig{ID: "feed-file", Type: TypeFile}, nil)
	if err != nil {
		t.Fatalf("newFileSink: %v", err)
	}

	art := NewArtifact("commons-reports", "Commons Reports", path, 1, []byte("fresh"))
	if err := sink.Write(context.Background(), art); err != nil {
		t.Fatalf("Write: %v", err)
	}

	raw, _ := os.ReadFile(path)
	if string(raw) != "fresh" {
		t.Errorf("expected full overwrite, got %q", raw)
	}
}

func TestFileSinkErrorsWithoutAnyPath(t *testing.T) {
	sink, err := newFileSink(context.Background(), SinkConfig{ID: "feed-file", Type: TypeFile}, nil)
	if err != nil {
		t.Fatalf("newFileSink: %v", err)
	}
	if err := sink.Write(context.Background(), Artifact{SourceID: "s"}); err == nil {
		t.Fatal("expected error without output path")
	}
}
