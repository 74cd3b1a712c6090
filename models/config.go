package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings like "30s"
// or "24h".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the standard library representation.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// GeneratorConfig selects and parameterizes the text-generation backend.
type GeneratorConfig struct {
	// Provider is "ollama" or "cloud".
	Provider string `yaml:"provider"`

	Ollama struct {
		BaseURL string `yaml:"base_url"`
		Model   string `yaml:"model"`
	} `yaml:"ollama"`

	Cloud struct {
		Endpoint    string  `yaml:"endpoint"`
		Model       string  `yaml:"model"`
		APIKeyEnv   string  `yaml:"api_key_env"`
		MaxTokens   int     `yaml:"max_tokens"`
		Temperature float64 `yaml:"temperature"`
	} `yaml:"cloud"`

	Timeout Duration `yaml:"timeout"`
}

// Config holds runtime configuration for analyze and batch operations.
// Values come from a YAML file; CLI flags override individual fields.
type Config struct {
	// Sites is the batch worklist, processed strictly in order.
	Sites []string `yaml:"sites"`

	MaxPriorityURLs int `yaml:"max_priority_urls"`
	PageContentCap  int `yaml:"page_content_cap"`
	MainContentCap  int `yaml:"main_content_cap"`

	OutputDir      string   `yaml:"output_dir"`
	CheckpointPath string   `yaml:"checkpoint_path"`
	CacheDir       string   `yaml:"cache_dir"`
	CacheMaxAge    Duration `yaml:"cache_max_age"`

	PageTimeout     Duration `yaml:"page_timeout"`
	MetadataTimeout Duration `yaml:"metadata_timeout"`

	Generator GeneratorConfig `yaml:"generator"`
}

// DefaultConfig returns a Config with the documented defaults applied.
func DefaultConfig() *Config {
	cfg := &Config{
		MaxPriorityURLs: 15,
		PageContentCap:  4000,
		MainContentCap:  8000,
		OutputDir:       "profiler-results",
		CheckpointPath:  "profiler-results/checkpoint.json",
		PageTimeout:     Duration(15 * time.Second),
		MetadataTimeout: Duration(10 * time.Second),
	}
	cfg.Generator.Provider = "ollama"
	cfg.Generator.Ollama.BaseURL = "http://localhost:11434"
	cfg.Generator.Ollama.Model = "llama3.2:3b"
	cfg.Generator.Cloud.MaxTokens = 3000
	cfg.Generator.Cloud.Temperature = 0.1
	cfg.Generator.Timeout = Duration(120 * time.Second)
	return cfg
}

// LoadConfig reads a YAML config file on top of the defaults.
// An empty path returns the defaults unchanged.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail deep inside the pipeline.
func (c *Config) Validate() error {
	if c.MaxPriorityURLs <= 0 {
		return fmt.Errorf("max_priority_urls must be positive, got %d", c.MaxPriorityURLs)
	}
	switch c.Generator.Provider {
	case "ollama", "cloud":
	default:
		return fmt.Errorf("unknown generator provider %q (want ollama or cloud)", c.Generator.Provider)
	}
	if c.Generator.Provider == "cloud" && c.Generator.Cloud.Endpoint == "" {
		return fmt.Errorf("generator.cloud.endpoint is required for the cloud provider")
	}
	return nil
}
