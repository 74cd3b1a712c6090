package techdetect

import (
	"net/http"
	"testing"
	"time"

	"github.com/dtnitsch/site-profiler/pkg/fetcher"
)

func TestMapName(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"aliased", "Amazon EC2", "AWS"},
		{"aliased with different target", "Google Cloud", "Google Cloud Platform (GCP)"},
		{"passthrough", "SomethingObscure", "SomethingObscure"},
		{"version suffix on alias", "Nginx:1.25.3", "Nginx"},
		{"version suffix passthrough", "Obscure:2.0", "Obscure"},
		{"express renamed", "Express", "Express.js"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapName(tt.raw); got != tt.want {
				t.Errorf("mapName(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestClassifyName(t *testing.T) {
	tests := []struct {
		name string
		tech string
		want string
	}{
		{"hosting", "Vercel", "hosting"},
		{"server", "Nginx", "server"},
		{"framework", "Next.js", "framework"},
		{"database", "Supabase", "database"},
		{"unknown", "Matomo", "other"},
		// Substring matching runs in both directions, so a name containing a
		// table entry matches too.
		{"superstring of entry", "AWS Elastic Beanstalk", "hosting"},
		// Cloudflare appears under hosting before cdn; first category wins.
		{"first category wins", "Cloudflare", "hosting"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyName(tt.tech); got != tt.want {
				t.Errorf("classifyName(%q) = %q, want %q", tt.tech, got, tt.want)
			}
		})
	}
}

func TestClassify_ServerHeader(t *testing.T) {
	d := New(fetcher.NewFetcher(5 * time.Second))
	if d.client == nil {
		t.Skip("fingerprint engine unavailable")
	}

	headers := http.Header{"Server": []string{"nginx/1.18.0"}}
	got := d.Classify(headers, []byte("<html><body>hi</body></html>"))

	found := false
	for _, name := range got["server"] {
		if name == "Nginx" {
			found = true
		}
	}
	if !found {
		t.Errorf("Classify() = %v, want Nginx under server", got)
	}
}

func TestClassify_GroupsAreSorted(t *testing.T) {
	d := New(fetcher.NewFetcher(5 * time.Second))
	if d.client == nil {
		t.Skip("fingerprint engine unavailable")
	}

	body := []byte(`<html><head><meta name="generator" content="WordPress 6.4"></head><body></body></html>`)
	got := d.Classify(http.Header{"Server": []string{"nginx"}}, body)

	for category, names := range got {
		for i := 1; i < len(names); i++ {
			if names[i-1] > names[i] {
				t.Errorf("category %q not sorted: %v", category, names)
			}
		}
	}
}

func TestDetect_NilSafety(t *testing.T) {
	var d *Detector
	if got := d.Detect(nil, "https://example.com"); len(got) != 0 {
		t.Errorf("nil Detector Detect() = %v, want empty", got)
	}
	if got := d.Classify(nil, nil); len(got) != 0 {
		t.Errorf("nil Detector Classify() = %v, want empty", got)
	}
}
