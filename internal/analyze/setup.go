package analyze

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dtnitsch/site-profiler/models"
	"github.com/dtnitsch/site-profiler/pkg/analyzer"
	"github.com/dtnitsch/site-profiler/pkg/caching"
	"github.com/dtnitsch/site-profiler/pkg/fetcher"
	"github.com/dtnitsch/site-profiler/pkg/frontier"
	"github.com/dtnitsch/site-profiler/pkg/langid"
	"github.com/dtnitsch/site-profiler/pkg/sitemap"
	"github.com/dtnitsch/site-profiler/pkg/techdetect"
	"github.com/dtnitsch/site-profiler/pkg/textgen"
	"github.com/urfave/cli/v2"
)

// NewLogger builds the JSON logger all commands share. Diagnostics go to
// stderr so stdout stays parseable.
func NewLogger(quiet bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if quiet {
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// LoadConfig reads the YAML config named by --config and applies flag
// overrides on top of it.
func LoadConfig(c *cli.Context) (*models.Config, error) {
	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("output-dir") {
		cfg.OutputDir = c.String("output-dir")
		cfg.CheckpointPath = cfg.OutputDir + "/checkpoint.json"
	}
	if c.IsSet("checkpoint") {
		cfg.CheckpointPath = c.String("checkpoint")
	}
	if c.IsSet("cache-dir") {
		cfg.CacheDir = c.String("cache-dir")
	}
	if c.Bool("force-fetch") {
		cfg.CacheMaxAge = 0
	} else if c.IsSet("max-age") {
		maxAge, err := time.ParseDuration(c.String("max-age"))
		if err != nil {
			return nil, fmt.Errorf("invalid max-age duration: %w", err)
		}
		cfg.CacheMaxAge = models.Duration(maxAge)
	}
	if c.IsSet("max-urls") {
		cfg.MaxPriorityURLs = c.Int("max-urls")
	}
	if c.IsSet("provider") {
		cfg.Generator.Provider = c.String("provider")
	}
	if c.IsSet("ollama-model") {
		cfg.Generator.Ollama.Model = c.String("ollama-model")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// BuildAnalyzer assembles the analysis pipeline from config.
func BuildAnalyzer(cfg *models.Config, logger *slog.Logger) (*analyzer.Analyzer, error) {
	generator, err := textgen.FromConfig(cfg.Generator)
	if err != nil {
		return nil, fmt.Errorf("failed to configure generator: %w", err)
	}

	var cache *caching.Cache
	if cfg.CacheDir != "" {
		cache, err = caching.NewCache(cfg.CacheDir, cfg.CacheMaxAge.Std())
		if err != nil {
			return nil, fmt.Errorf("failed to initialize cache: %w", err)
		}
	}

	f := fetcher.NewFetcher(cfg.PageTimeout.Std())
	resolver := sitemap.NewResolver(f, cfg.MetadataTimeout.Std())

	return analyzer.New(analyzer.Options{
		Logger:          logger,
		Fetcher:         f,
		Frontier:        frontier.New(f, resolver),
		Detector:        techdetect.New(f),
		LangID:          langid.New(),
		Generator:       generator,
		Cache:           cache,
		MaxPriorityURLs: cfg.MaxPriorityURLs,
		MainContentCap:  cfg.MainContentCap,
		PageContentCap:  cfg.PageContentCap,
		MetadataTimeout: cfg.MetadataTimeout.Std(),
	}), nil
}
