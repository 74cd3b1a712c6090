package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/dtnitsch/site-profiler/models"
)

// InsertSite inserts a site by its URL, returning the site_id.
// If the site already exists, returns the existing site_id.
func (db *DB) InsertSite(siteURL string) (int64, error) {
	parsed, err := url.Parse(siteURL)
	if err != nil {
		return 0, fmt.Errorf("failed to parse URL: %w", err)
	}

	// Check if site already exists
	var existingID int64
	err = db.QueryRow("SELECT site_id FROM sites WHERE url = ?", siteURL).Scan(&existingID)
	if err == nil {
		_, err = db.Exec("UPDATE sites SET updated_at = CURRENT_TIMESTAMP WHERE site_id = ?", existingID)
		if err != nil {
			return 0, fmt.Errorf("failed to touch site: %w", err)
		}
		return existingID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to check existing site: %w", err)
	}

	result, err := db.Exec(`
		INSERT INTO sites (url, domain)
		VALUES (?, ?)
	`, siteURL, parsed.Host)
	if err != nil {
		return 0, fmt.Errorf("failed to insert site: %w", err)
	}

	siteID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get site ID: %w", err)
	}

	return siteID, nil
}

// Analysis is an analyses row joined with its site URL.
type Analysis struct {
	AnalysisID          int64
	SiteURL             string
	RunID               sql.NullInt64
	Language            string
	LanguageConfidence  float64
	TotalURLsDiscovered int
	PriorityURLCount    int
	URLCategories       map[string]int
	Technologies        map[string][]string
	TopKeywords         []string
	MetadataFiles       []string
	Analysis            string
	CreatedAt           time.Time
}

// InsertAnalysis records a completed site profile, returning the analysis_id.
// runID may be 0 for single-site invocations outside a batch.
func (db *DB) InsertAnalysis(siteID, runID int64, result *models.SiteResult) (int64, error) {
	categories, err := json.Marshal(result.URLCategories)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal categories: %w", err)
	}
	technologies, err := json.Marshal(result.Technologies)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal technologies: %w", err)
	}
	keywords, err := json.Marshal(result.TopKeywords)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal keywords: %w", err)
	}
	metadata, err := json.Marshal(result.MetadataFilesFound)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal metadata file names: %w", err)
	}

	var runArg interface{}
	if runID > 0 {
		runArg = runID
	}

	res, err := db.Exec(`
		INSERT INTO analyses (
			site_id, run_id, language, language_confidence,
			total_urls_discovered, priority_url_count,
			url_categories, technologies, top_keywords, metadata_files, analysis
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, siteID, runArg, result.Language, result.LanguageConfidence,
		result.TotalURLsDiscovered, len(result.PriorityURLs),
		string(categories), string(technologies), string(keywords), string(metadata), result.Analysis)
	if err != nil {
		return 0, fmt.Errorf("failed to insert analysis: %w", err)
	}

	analysisID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get analysis ID: %w", err)
	}

	return analysisID, nil
}

// GetAnalysis retrieves the most recent analysis for a site URL.
func (db *DB) GetAnalysis(siteURL string) (*Analysis, error) {
	row := db.QueryRow(`
		SELECT a.analysis_id, s.url, a.run_id, a.language, a.language_confidence,
		       a.total_urls_discovered, a.priority_url_count,
		       a.url_categories, a.technologies, a.top_keywords, a.metadata_files,
		       a.analysis, a.created_at
		FROM analyses a
		JOIN sites s ON s.site_id = a.site_id
		WHERE s.url = ?
		ORDER BY a.created_at DESC, a.analysis_id DESC
		LIMIT 1
	`, siteURL)

	analysis, err := scanAnalysis(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no analysis found for %s", siteURL)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	return analysis, nil
}

// GetRunAnalyses retrieves all analyses recorded for a run, oldest first.
func (db *DB) GetRunAnalyses(runID int64) ([]*Analysis, error) {
	rows, err := db.Query(`
		SELECT a.analysis_id, s.url, a.run_id, a.language, a.language_confidence,
		       a.total_urls_discovered, a.priority_url_count,
		       a.url_categories, a.technologies, a.top_keywords, a.metadata_files,
		       a.analysis, a.created_at
		FROM analyses a
		JOIN sites s ON s.site_id = a.site_id
		WHERE a.run_id = ?
		ORDER BY a.analysis_id ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query run analyses: %w", err)
	}
	defer rows.Close()

	var analyses []*Analysis
	for rows.Next() {
		analysis, err := scanAnalysis(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		analyses = append(analyses, analysis)
	}
	return analyses, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAnalysis(row rowScanner) (*Analysis, error) {
	var a Analysis
	var categories, technologies, keywords, metadata sql.NullString
	err := row.Scan(&a.AnalysisID, &a.SiteURL, &a.RunID, &a.Language, &a.LanguageConfidence,
		&a.TotalURLsDiscovered, &a.PriorityURLCount,
		&categories, &technologies, &keywords, &metadata,
		&a.Analysis, &a.CreatedAt)
	if err != nil {
		return nil, err
	}

	if categories.Valid && categories.String != "" {
		if err := json.Unmarshal([]byte(categories.String), &a.URLCategories); err != nil {
			return nil, fmt.Errorf("failed to unmarshal categories: %w", err)
		}
	}
	if technologies.Valid && technologies.String != "" {
		if err := json.Unmarshal([]byte(technologies.String), &a.Technologies); err != nil {
			return nil, fmt.Errorf("failed to unmarshal technologies: %w", err)
		}
	}
	if keywords.Valid && keywords.String != "" {
		if err := json.Unmarshal([]byte(keywords.String), &a.TopKeywords); err != nil {
			return nil, fmt.Errorf("failed to unmarshal keywords: %w", err)
		}
	}
	if metadata.Valid && metadata.String != "" {
		if err := json.Unmarshal([]byte(metadata.String), &a.MetadataFiles); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata files: %w", err)
		}
	}

	return &a, nil
}
