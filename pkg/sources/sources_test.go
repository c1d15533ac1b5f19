package sources

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRegistryFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sources.yaml")
	raw := `
sources:
  - id: commons-reports
    name: House of Commons Select Committee Reports
    type: committees_api
    source_url: https://committees-api.test/api/Publications
    channel:
      title: House of Commons Select Committee Reports
      link: https://committees.parliament.uk/publications/
      description: Latest reports from House of Commons select committees
      language: en-gb
    config:
      user_agent: feedgen/1.0
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}

	all := reg.All()
	if len(all) != 1 {
		t.Fatalf("expected 1 source, got %d", len(all))
	}
	src := all[0]
	if src.OutputPath != "docs/feed.xml" {
		t.Errorf("expected default output path, got %q", src.OutputPath)
	}
	if src.Channel.Language != "en-gb" {
		t.Errorf("channel language = %q", src.Channel.Language)
	}
	if got := ConfigString(src, ConfigUserAgentKey, ""); got != "feedgen/1.0" {
		t.Errorf("user agent = %q", got)
	}

	if _, ok := reg.ByID("commons-reports"); !ok {
		t.Errorf("expected lookup by id to succeed")
	}
}

func TestShippedSourcesConfigHeaders(t *testing.T) {
	reg, err := LoadRegistry(filepath.Join("..", "..", "configs", "sources.yaml"))
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}

	src, ok := reg.ByID("commons-reports")
	if !ok {
		t.Fatal("expected commons-reports source in shipped config")
	}

	headers := Headers(src)
	if headers["Accept"] != "application/json" {
		t.Errorf("Accept header = %q", headers["Accept"])
	}
	if headers["User-Agent"] != "committee-rss-feedgen/1.0" {
		t.Errorf("User-Agent header = %q", headers["User-Agent"])
	}
}

func TestLoadRegistryRejectsDuplicateIDs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sources.yaml")
	raw := `
sources:
  - id: dup
    name: One
    type: committees_api
    source_url: https://a.test
  - id: dup
    name: Two
    type: committees_api
    source_url: https://b.test
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if _, err := LoadRegistry(path); err == nil {
		t.Fatal("expected duplicate id error")
	}
}

func TestValidateSourceRequiresURL(t *testing.T) {
	if _, err := NewRegistry([]Source{{ID: "x", Name: "X", Type: TypeCommitteesAPI}}); err == nil {
		t.Fatal("expected validation error for missing source_url")
	}
}

func TestFetcherRegistryResolvesByType(t *testing.T) {
	reg := DefaultFetcherRegistry(nil)

	f, err := reg.FetcherFor(Source{ID: "anything", Type: TypeCommitteesAPI})
	if err != nil {
		t.Fatalf("FetcherFor: %v", err)
	}
	if f.ID() != TypeCommitteesAPI {
		t.Errorf("fetcher id = %q", f.ID())
	}

	if _, err := reg.FetcherFor(Source{ID: "unknown", Type: "sitemap"}); err == nil {
		t.Fatal("expected error for unregistered type")
	}
}
