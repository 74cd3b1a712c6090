// Package textgen abstracts the text-generation backend used to produce
// company profiles. Two interchangeable implementations exist: a cloud
// chat-completions endpoint and a local Ollama server.
package textgen

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dtnitsch/site-profiler/models"
)

// DefaultTimeout bounds a single generation call. Long-context prompts on
// local models routinely take over a minute.
const DefaultTimeout = 120 * time.Second

// Generator produces text from a prompt. Implementations return an error on
// any non-success outcome; they never panic on transport failures.
type Generator interface {
	// Generate submits one prompt and returns the generated text.
	Generate(ctx context.Context, prompt string) (string, error)
	// Name identifies the backend for logs and reports.
	Name() string
}

// FromConfig builds the Generator selected by cfg.
func FromConfig(cfg models.GeneratorConfig) (Generator, error) {
	timeout := cfg.Timeout.Std()
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	switch cfg.Provider {
	case "ollama":
		return NewOllama(cfg.Ollama.BaseURL, cfg.Ollama.Model, timeout), nil
	case "cloud":
		apiKey := ""
		if cfg.Cloud.APIKeyEnv != "" {
			apiKey = os.Getenv(cfg.Cloud.APIKeyEnv)
		}
		return NewCloud(CloudOptions{
			Endpoint:    cfg.Cloud.Endpoint,
			Model:       cfg.Cloud.Model,
			APIKey:      apiKey,
			MaxTokens:   cfg.Cloud.MaxTokens,
			Temperature: cfg.Cloud.Temperature,
			Timeout:     timeout,
		}), nil
	default:
		return nil, fmt.Errorf("unknown generator provider %q", cfg.Provider)
	}
}
