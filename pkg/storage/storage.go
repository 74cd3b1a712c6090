// Package storage writes analysis output files under a results directory.
package storage

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dtnitsch/site-profiler/models"
)

type Store struct {
	dir string
}

// NewStore creates the output directory if needed and returns a Store for it.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("error creating output directory: %s", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// SaveResult writes one site profile as analysis_<domain>.json.
func (s *Store) SaveResult(result *models.SiteResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding result: %s", err)
	}

	name := fmt.Sprintf("analysis_%s.json", domainSlug(result.URL))
	return s.SaveFile(filepath.Join(s.dir, name), data)
}

// SaveSummary writes the batch summary as batch_summary.json.
func (s *Store) SaveSummary(summary *models.BatchSummary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding summary: %s", err)
	}
	return s.SaveFile(filepath.Join(s.dir, "batch_summary.json"), data)
}

func (s *Store) SaveFile(filePath string, content []byte) error {
	err := os.WriteFile(filePath, content, 0644)
	if err != nil {
		return fmt.Errorf("error saving file: %s", err)
	}

	return nil
}

func (s *Store) ReadFile(filePath string) ([]byte, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %s", err)
	}
	return data, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !os.IsNotExist(err)
}

func (s *Store) HasFile(fn string) bool {
	return fileExists(fn)
}

// FileStats holds metadata about a file without reading its contents.
type FileStats struct {
	SizeBytes int64
	ModTime   time.Time
}

// GetFileStats returns metadata about a file using os.Stat (no I/O overhead).
func (s *Store) GetFileStats(filePath string) (*FileStats, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error getting file stats: %s", err)
	}

	return &FileStats{
		SizeBytes: info.Size(),
		ModTime:   info.ModTime(),
	}, nil
}

// domainSlug turns a site URL into a filename-safe domain string.
func domainSlug(siteURL string) string {
	host := siteURL
	if parsed, err := url.Parse(siteURL); err == nil && parsed.Host != "" {
		host = parsed.Host
	}
	host = strings.TrimPrefix(strings.ToLower(host), "www.")
	var b strings.Builder
	for _, r := range host {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
