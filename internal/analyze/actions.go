package analyze

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dtnitsch/site-profiler/internal/common"
	"github.com/dtnitsch/site-profiler/pkg/db"
	"github.com/dtnitsch/site-profiler/pkg/storage"
	"github.com/urfave/cli/v2"
)

// AnalyzeAction profiles a single site and prints the result to stdout.
func AnalyzeAction(c *cli.Context) error {
	logger := NewLogger(c.Bool("quiet"))

	rawURL := c.Args().First()
	if rawURL == "" {
		rawURL = c.String("url")
	}
	if rawURL == "" {
		return fmt.Errorf("no URL provided (pass it as an argument or via --url)")
	}

	sanitized, invalid := common.SanitizeAndValidateURLs([]string{rawURL})
	if len(invalid) > 0 || len(sanitized) == 0 {
		logger.Error("invalid URL", "url", rawURL)
		os.Exit(2)
	}
	siteURL := sanitized[0]

	cfg, err := LoadConfig(c)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(2)
	}

	a, err := BuildAnalyzer(cfg, logger)
	if err != nil {
		logger.Error("failed to build analyzer", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := a.Analyze(ctx, siteURL)
	if err != nil {
		logger.Error("analysis failed", "url", siteURL, "error", err)
		os.Exit(2)
	}

	store, err := storage.NewStore(cfg.OutputDir)
	if err != nil {
		logger.Error("failed to prepare output directory", "error", err)
		os.Exit(2)
	}
	if err := store.SaveResult(result); err != nil {
		logger.Warn("failed to save result file", "url", siteURL, "error", err)
	}

	// Database is best effort for single-site runs; the JSON on stdout is the
	// primary output.
	if database, dbErr := db.Open(); dbErr == nil {
		defer database.Close()
		if siteID, insErr := database.InsertSite(siteURL); insErr == nil {
			if _, insErr = database.InsertAnalysis(siteID, 0, result); insErr != nil {
				logger.Warn("failed to record analysis", "url", siteURL, "error", insErr)
			}
		} else {
			logger.Warn("failed to record site", "url", siteURL, "error", insErr)
		}
	} else {
		logger.Warn("failed to open database", "error", dbErr)
	}

	outputData, err := common.EncodeOutput(result, c.String("format"))
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	fmt.Println(string(outputData))
	return nil
}
