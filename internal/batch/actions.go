package batch

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dtnitsch/site-profiler/internal/analyze"
	"github.com/dtnitsch/site-profiler/internal/common"
	"github.com/dtnitsch/site-profiler/models"
	runner "github.com/dtnitsch/site-profiler/pkg/batch"
	"github.com/dtnitsch/site-profiler/pkg/db"
	"github.com/dtnitsch/site-profiler/pkg/storage"
	"github.com/urfave/cli/v2"
)

// BatchAction profiles a worklist of sites sequentially with checkpointed
// resumability, then prints the batch summary to stdout.
func BatchAction(c *cli.Context) error {
	logger := analyze.NewLogger(c.Bool("quiet"))

	cfg, err := analyze.LoadConfig(c)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(2)
	}

	sites, err := gatherSites(c, cfg)
	if err != nil {
		logger.Error("failed to gather site list", "error", err)
		os.Exit(2)
	}

	sanitized, invalid := common.SanitizeAndValidateURLs(sites)
	for _, bad := range invalid {
		logger.Warn("skipping invalid URL", "url", bad)
	}
	if len(sanitized) == 0 {
		logger.Error("no valid URLs to process")
		os.Exit(2)
	}

	a, err := analyze.BuildAnalyzer(cfg, logger)
	if err != nil {
		logger.Error("failed to build analyzer", "error", err)
		os.Exit(2)
	}

	store, err := storage.NewStore(cfg.OutputDir)
	if err != nil {
		logger.Error("failed to prepare output directory", "error", err)
		os.Exit(2)
	}

	database, err := db.Open()
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(2)
	}
	defer database.Close()

	runID, err := database.CreateRun(len(sanitized), cfg.OutputDir)
	if err != nil {
		logger.Error("failed to create run", "error", err)
		os.Exit(2)
	}

	recorder := &runRecorder{store: store, database: database, runID: runID, logger: logger}
	orch := runner.New(logger, a, recorder, cfg.CheckpointPath)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, runErr := orch.Run(ctx, sanitized)

	recordRun(logger, database, runID, summary)

	outputData, err := common.EncodeOutput(summary, c.String("format"))
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	fmt.Println(string(outputData))

	switch {
	case runErr != nil && !summary.Interrupted:
		logger.Error("batch aborted", "error", runErr)
		os.Exit(2)
	case summary.Interrupted:
		logger.Warn("batch interrupted, resume with the same checkpoint", "checkpoint", cfg.CheckpointPath)
		os.Exit(1)
	case summary.Failed > 0 && summary.Completed == 0 && summary.Skipped == 0:
		os.Exit(2)
	case summary.Failed > 0:
		os.Exit(1)
	}
	return nil
}

// gatherSites collects the worklist from --sites, --sites-file, or config.
func gatherSites(c *cli.Context, cfg *models.Config) ([]string, error) {
	if sitesStr := c.String("sites"); sitesStr != "" {
		return strings.Split(sitesStr, ","), nil
	}

	if path := c.String("sites-file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read sites file: %w", err)
		}
		var sites []string
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			sites = append(sites, line)
		}
		return sites, nil
	}

	if len(cfg.Sites) > 0 {
		return cfg.Sites, nil
	}

	return nil, fmt.Errorf("no sites provided (use --sites, --sites-file, or the config file)")
}

// runRecorder persists results to both the output directory and the database.
// A database insert failure fails the save so the orchestrator halts rather
// than silently diverging from the files on disk.
type runRecorder struct {
	store    *storage.Store
	database *db.DB
	runID    int64
	logger   *slog.Logger
}

func (r *runRecorder) SaveResult(result *models.SiteResult) error {
	if err := r.store.SaveResult(result); err != nil {
		return err
	}
	siteID, err := r.database.InsertSite(result.URL)
	if err != nil {
		return err
	}
	_, err = r.database.InsertAnalysis(siteID, r.runID, result)
	return err
}

func (r *runRecorder) SaveSummary(summary *models.BatchSummary) error {
	return r.store.SaveSummary(summary)
}

// recordRun writes final stats and per-site failures for the run.
func recordRun(logger *slog.Logger, database *db.DB, runID int64, summary *models.BatchSummary) {
	if err := database.UpdateRunStats(runID, summary.Completed, summary.Failed, summary.Skipped, summary.Interrupted); err != nil {
		logger.Warn("failed to update run stats", "error", err)
	}
	for _, failure := range summary.Failures {
		if err := database.InsertRunFailure(runID, failure.URL, failure.ErrorType, failure.Error); err != nil {
			logger.Warn("failed to record failure", "url", failure.URL, "error", err)
		}
	}
}
