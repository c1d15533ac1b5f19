package sinks

import "context"

// Sink delivers a rendered feed artifact to a destination (file, HTTP, queue).
type Sink interface {
	ID() string
	Type() string
	Write(ctx context.Context, art Artifact) error
}
