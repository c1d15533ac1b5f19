package sinks

import (
	"encoding/json"
	"fmt"
	"time"
)

// Artifact is one rendered RSS document on its way to the configured sinks.
// XML is the full document; queue-style sinks send the metadata notification
// instead of the document body.
type Artifact struct {
	SourceID    string    `json:"source_id"`
	SourceName  string    `json:"source_name"`
	OutputPath  string    `json:"output_path"`
	ItemCount   int       `json:"item_count"`
	ByteSize    int       `json:"byte_size"`
	GeneratedAt time.Time `json:"generated_at"`
	XML         []byte    `json:"-"`
}

// NewArtifact constructs an Artifact for the given source and rendered document.
func NewArtifact(sourceID, sourceName, outputPath string, itemCount int, xml []byte) Artifact {
	return Artifact{
		SourceID:    sourceID,
		SourceName:  sourceName,
		OutputPath:  outputPath,
		ItemCount:   itemCount,
		ByteSize:    len(xml),
		GeneratedAt: time.Now().UTC(),
		XML:         xml,
	}
}

// Notification renders the artifact metadata as a JSON payload for queue sinks.
func (a Artifact) Notification() ([]byte, error) {
	payload, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshal artifact notification: %w", err)
	}
	return payload, nil
}
