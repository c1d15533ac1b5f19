package sinks

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRegistryEnabledFilter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sinks.yaml")
	raw := `
sinks:
  - id: feed-file
    type: file
  - id: hook
    type: http
    enabled: false
    http:
      url: https://example.com
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	enabled := reg.Enabled()
	if len(enabled) != 1 || enabled[0].ID != "feed-file" {
		t.Fatalf("expected only feed-file enabled, got %#v", enabled)
	}
}

func TestValidateSinkConfigRejectsMissingBlocks(t *testing.T) {
	cases := []SinkConfig{
		{ID: "h", Type: TypeHTTP},
		{ID: "q", Type: TypeSQS},
		{ID: "q2", Type: TypeSQS, SQS: &SQSSinkConfig{QueueURL: "https://sqs.test/q"}},
		{ID: "t", Type: TypeSNS},
		{ID: "p", Type: TypePubSub},
		{ID: "p2", Type: TypePubSub, PubSub: &PubSubSinkConfig{ProjectID: "proj"}},
	}

	for _, cfg := range cases {
		if err := validateSinkConfig(sanitizeSinkConfig(cfg)); err == nil {
			t.Errorf("expected validation error for %s sink %q", cfg.Type, cfg.ID)
		}
	}
}

func TestValidateSinkConfigAllowsBareFileSink(t *testing.T) {
	if err := validateSinkConfig(sanitizeSinkConfig(SinkConfig{ID: "f", Type: TypeFile})); err != nil {
		t.Fatalf("expected bare file sink to validate, got %v", err)
	}
}
