package batch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/dtnitsch/site-profiler/models"
	"github.com/dtnitsch/site-profiler/pkg/checkpoint"
)

type fakeAnalyzer struct {
	calls   []string
	failOn  map[string]error
	panicOn string
	// cancelAfter cancels the context once this many sites have been analyzed.
	cancelAfter int
	cancel      context.CancelFunc
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, siteURL string) (*models.SiteResult, error) {
	f.calls = append(f.calls, siteURL)
	if f.cancel != nil && len(f.calls) >= f.cancelAfter {
		f.cancel()
	}
	if siteURL == f.panicOn {
		panic("boom")
	}
	if err := f.failOn[siteURL]; err != nil {
		return nil, err
	}
	return &models.SiteResult{URL: siteURL, Analysis: "profile of " + siteURL}, nil
}

type fakeRecorder struct {
	results   []string
	summaries int
	failOn    string
}

func (f *fakeRecorder) SaveResult(result *models.SiteResult) error {
	if result.URL == f.failOn {
		return errors.New("disk full")
	}
	f.results = append(f.results, result.URL)
	return nil
}

func (f *fakeRecorder) SaveSummary(summary *models.BatchSummary) error {
	f.summaries++
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func checkpointPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "checkpoint.json")
}

func TestRun_AllSucceed(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	recorder := &fakeRecorder{}
	cpPath := checkpointPath(t)

	orch := New(testLogger(), analyzer, recorder, cpPath)
	summary, err := orch.Run(context.Background(), []string{"https://a.com", "https://b.com"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if summary.Completed != 2 || summary.Failed != 0 || summary.Attempted != 2 {
		t.Errorf("summary = completed %d failed %d attempted %d, want 2/0/2",
			summary.Completed, summary.Failed, summary.Attempted)
	}
	if !reflect.DeepEqual(recorder.results, []string{"https://a.com", "https://b.com"}) {
		t.Errorf("persisted results = %v", recorder.results)
	}
	if recorder.summaries != 1 {
		t.Errorf("summaries persisted = %d, want 1", recorder.summaries)
	}
	if _, err := os.Stat(cpPath); !os.IsNotExist(err) {
		t.Error("checkpoint file not removed after clean completion")
	}
}

func TestRun_FailureIsolation(t *testing.T) {
	analyzer := &fakeAnalyzer{failOn: map[string]error{
		"https://b.com": errors.New("could not fetch main page: connection refused"),
	}}
	recorder := &fakeRecorder{}
	cpPath := checkpointPath(t)

	orch := New(testLogger(), analyzer, recorder, cpPath)
	summary, err := orch.Run(context.Background(), []string{"https://a.com", "https://b.com", "https://c.com"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if summary.Completed != 2 || summary.Failed != 1 {
		t.Errorf("completed %d failed %d, want 2/1", summary.Completed, summary.Failed)
	}
	if !reflect.DeepEqual(summary.FailedURLs, []string{"https://b.com"}) {
		t.Errorf("FailedURLs = %v", summary.FailedURLs)
	}
	if len(summary.Failures) != 1 || summary.Failures[0].ErrorType != "fetch_error" {
		t.Errorf("Failures = %+v", summary.Failures)
	}
	// The failed site was processed after the failure too.
	if !reflect.DeepEqual(analyzer.calls, []string{"https://a.com", "https://b.com", "https://c.com"}) {
		t.Errorf("analyzer calls = %v", analyzer.calls)
	}
	// The run finished with nothing pending, so the checkpoint goes away even
	// though one site failed.
	if _, err := os.Stat(cpPath); !os.IsNotExist(err) {
		t.Error("checkpoint file not removed")
	}
}

func TestRun_ResumeSkipsCompleted(t *testing.T) {
	cpPath := checkpointPath(t)

	// Simulate a previous run that completed a.com.
	cp := checkpoint.Load(cpPath)
	cp.Mark("https://a.com")
	if err := cp.Flush(); err != nil {
		t.Fatal(err)
	}

	analyzer := &fakeAnalyzer{}
	orch := New(testLogger(), analyzer, &fakeRecorder{}, cpPath)
	summary, err := orch.Run(context.Background(), []string{"https://a.com", "https://b.com"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if summary.Skipped != 1 || summary.Completed != 1 {
		t.Errorf("skipped %d completed %d, want 1/1", summary.Skipped, summary.Completed)
	}
	if !reflect.DeepEqual(analyzer.calls, []string{"https://b.com"}) {
		t.Errorf("analyzer calls = %v, want only b.com", analyzer.calls)
	}
}

func TestRun_DedupWorklist(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	orch := New(testLogger(), analyzer, &fakeRecorder{}, checkpointPath(t))

	summary, err := orch.Run(context.Background(), []string{
		"https://a.com", "https://b.com", "https://a.com",
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !reflect.DeepEqual(analyzer.calls, []string{"https://a.com", "https://b.com"}) {
		t.Errorf("analyzer calls = %v, want deduplicated worklist", analyzer.calls)
	}
	if summary.Attempted != 2 {
		t.Errorf("Attempted = %d, want 2", summary.Attempted)
	}
}

func TestRun_InterruptStopsBetweenItems(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	analyzer := &fakeAnalyzer{cancelAfter: 1, cancel: cancel}
	cpPath := checkpointPath(t)

	orch := New(testLogger(), analyzer, &fakeRecorder{}, cpPath)
	summary, err := orch.Run(ctx, []string{"https://a.com", "https://b.com", "https://c.com"})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if !summary.Interrupted {
		t.Error("summary.Interrupted = false")
	}
	// The in-flight site finished; the rest were never started.
	if len(analyzer.calls) != 1 {
		t.Errorf("analyzer calls = %v, want just the first site", analyzer.calls)
	}

	// Checkpoint survives for resumption and holds the completed site.
	resumed := checkpoint.Load(cpPath)
	if !resumed.Done("https://a.com") {
		t.Error("completed site missing from checkpoint after interrupt")
	}
}

func TestRun_PanicRecordedAsFailure(t *testing.T) {
	analyzer := &fakeAnalyzer{panicOn: "https://b.com"}
	orch := New(testLogger(), analyzer, &fakeRecorder{}, checkpointPath(t))

	summary, err := orch.Run(context.Background(), []string{"https://a.com", "https://b.com", "https://c.com"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if summary.Completed != 2 || summary.Failed != 1 {
		t.Errorf("completed %d failed %d, want 2/1", summary.Completed, summary.Failed)
	}
	if len(summary.Failures) != 1 || summary.Failures[0].ErrorType != "internal_error" {
		t.Errorf("Failures = %+v, want one internal_error", summary.Failures)
	}
}

func TestRun_RecorderErrorIsFatal(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	recorder := &fakeRecorder{failOn: "https://b.com"}
	cpPath := checkpointPath(t)

	orch := New(testLogger(), analyzer, recorder, cpPath)
	summary, err := orch.Run(context.Background(), []string{"https://a.com", "https://b.com", "https://c.com"})
	if err == nil {
		t.Fatal("Run() error = nil, want persistence failure")
	}

	if summary.Completed != 1 {
		t.Errorf("Completed = %d, want 1", summary.Completed)
	}
	// c.com never ran.
	if len(analyzer.calls) != 2 {
		t.Errorf("analyzer calls = %v", analyzer.calls)
	}
	// a.com's progress survived the abort.
	if !checkpoint.Load(cpPath).Done("https://a.com") {
		t.Error("completed site missing from checkpoint after fatal error")
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{errors.New("could not fetch main page: timeout"), "fetch_error"},
		{errors.New("profile generation failed: ollama unreachable"), "generation_error"},
		{errors.New("panic during analysis: nil deref"), "internal_error"},
		{errors.New("something else"), "analysis_error"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := classifyError(tt.err); got != tt.want {
				t.Errorf("classifyError(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}
