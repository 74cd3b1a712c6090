// Package batch drives site analysis over a worklist with checkpointed
// resumability and per-item failure isolation.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dtnitsch/site-profiler/models"
	"github.com/dtnitsch/site-profiler/pkg/checkpoint"
)

// SiteAnalyzer analyzes one site. Implemented by pkg/analyzer; faked in tests.
type SiteAnalyzer interface {
	Analyze(ctx context.Context, siteURL string) (*models.SiteResult, error)
}

// Recorder persists per-site results and the final batch summary.
type Recorder interface {
	// SaveResult persists one completed site analysis.
	SaveResult(result *models.SiteResult) error
	// SaveSummary persists the batch summary.
	SaveSummary(summary *models.BatchSummary) error
}

// Orchestrator runs one batch. It owns the checkpoint and the result
// accumulators; nothing else touches them during a run.
type Orchestrator struct {
	logger   *slog.Logger
	analyzer SiteAnalyzer
	recorder Recorder
	cp       *checkpoint.Checkpoint
}

// New builds an Orchestrator resuming from the checkpoint at checkpointPath.
// A missing or corrupt checkpoint means a fresh run.
func New(logger *slog.Logger, analyzer SiteAnalyzer, recorder Recorder, checkpointPath string) *Orchestrator {
	return &Orchestrator{
		logger:   logger,
		analyzer: analyzer,
		recorder: recorder,
		cp:       checkpoint.Load(checkpointPath),
	}
}

// Run processes worklist strictly in order, one site at a time. Sites already
// in the checkpoint are skipped. Each completed site is persisted and the
// checkpoint flushed before the next site starts. A cancelled context stops
// the run between items after a final flush. One site's failure never halts
// the batch; an error in the run's own bookkeeping does, with state flushed.
//
// The returned summary is always non-nil. A non-nil error means the run ended
// abnormally (interrupt or fatal bookkeeping failure) and the checkpoint file
// was kept for resumption.
func (o *Orchestrator) Run(ctx context.Context, worklist []string) (*models.BatchSummary, error) {
	summary := &models.BatchSummary{StartedAt: time.Now()}

	// Interrupt or crash between flushes must not lose completed work.
	defer func() {
		if err := o.cp.Flush(); err != nil {
			o.logger.Error("Final checkpoint flush failed", "error", err)
		}
	}()

	remaining := o.dedupRemaining(worklist, summary)
	o.logger.Info("Batch starting",
		"worklist", len(worklist),
		"already_completed", summary.Skipped,
		"remaining", len(remaining))

	for i, siteURL := range remaining {
		if err := ctx.Err(); err != nil {
			o.logger.Warn("Batch interrupted, flushing checkpoint", "completed", summary.Completed)
			summary.Interrupted = true
			o.finishSummary(summary)
			return summary, err
		}

		o.logger.Info("Processing site", "n", i+1, "total", len(remaining), "url", siteURL)
		summary.Attempted++

		result, err := o.analyzeSite(ctx, siteURL)
		if err != nil {
			o.logger.Error("Site analysis failed", "url", siteURL, "error", err)
			summary.Failed++
			summary.FailedURLs = append(summary.FailedURLs, siteURL)
			summary.Failures = append(summary.Failures, models.SiteFailure{
				URL:       siteURL,
				ErrorType: classifyError(err),
				Error:     err.Error(),
			})
			continue
		}

		// Bookkeeping failures are fatal: continuing without durable progress
		// would reprocess this site on resume.
		if err := o.recorder.SaveResult(result); err != nil {
			o.finishSummary(summary)
			return summary, fmt.Errorf("failed to persist result for %s: %w", siteURL, err)
		}
		o.cp.Mark(siteURL)
		if err := o.cp.Flush(); err != nil {
			o.finishSummary(summary)
			return summary, fmt.Errorf("failed to flush checkpoint after %s: %w", siteURL, err)
		}

		summary.Completed++
		summary.Results = append(summary.Results, result)
	}

	o.finishSummary(summary)
	if err := o.recorder.SaveSummary(summary); err != nil {
		o.logger.Warn("Failed to persist batch summary", "error", err)
	}

	// Nothing left to resume: the absent checkpoint tells the next invocation
	// to start fresh. Failed sites stay eligible because they were never
	// marked completed.
	if err := o.cp.Remove(); err != nil {
		o.logger.Warn("Failed to remove checkpoint", "error", err)
	}

	return summary, nil
}

// analyzeSite invokes the analyzer with panic isolation, so a programming
// error in one site's processing is recorded as that site's failure.
func (o *Orchestrator) analyzeSite(ctx context.Context, siteURL string) (result *models.SiteResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("panic during analysis: %v", r)
		}
	}()
	return o.analyzer.Analyze(ctx, siteURL)
}

// dedupRemaining removes worklist duplicates (first occurrence wins) and
// filters out sites already completed per the checkpoint.
func (o *Orchestrator) dedupRemaining(worklist []string, summary *models.BatchSummary) []string {
	seen := make(map[string]bool, len(worklist))
	var remaining []string
	for _, siteURL := range worklist {
		if seen[siteURL] {
			continue
		}
		seen[siteURL] = true
		if o.cp.Done(siteURL) {
			summary.Skipped++
			continue
		}
		remaining = append(remaining, siteURL)
	}
	return remaining
}

func (o *Orchestrator) finishSummary(summary *models.BatchSummary) {
	summary.FinishedAt = time.Now()
}

// classifyError gives failures a coarse type for the summary report.
func classifyError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "could not fetch main page"):
		return "fetch_error"
	case strings.Contains(msg, "profile generation"):
		return "generation_error"
	case strings.Contains(msg, "panic during analysis"):
		return "internal_error"
	default:
		return "analysis_error"
	}
}
