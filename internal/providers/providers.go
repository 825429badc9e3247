package providers

import (
	"context"
)

// Config represents the configuration for a vision provider call
type Config struct {
	Model       string
	Temperature float64
	Prompt      string
	// Image is the raw image the prompt refers to
	Image []byte
	// MIMEType of Image, e.g. "image/jpeg"
	MIMEType string
}

// Provider defines the interface for a vision-capable LLM provider
type Provider interface {
	ExtractText(ctx context.Context, config Config) (string, error)
}
