package checkpoint

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoad_MissingFileStartsEmpty(t *testing.T) {
	cp := Load(filepath.Join(t.TempDir(), "checkpoint.json"))
	if cp.Len() != 0 {
		t.Errorf("Len() = %d, want 0 for missing file", cp.Len())
	}
}

func TestLoad_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoint.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	cp := Load(path)
	if cp.Len() != 0 {
		t.Errorf("Len() = %d, want 0 for corrupt file", cp.Len())
	}
}

func TestMarkAndDone(t *testing.T) {
	cp := Load(filepath.Join(t.TempDir(), "checkpoint.json"))

	if cp.Done("https://a.com") {
		t.Error("Done() = true before Mark()")
	}

	cp.Mark("https://a.com")
	if !cp.Done("https://a.com") {
		t.Error("Done() = false after Mark()")
	}

	// Marking twice must not duplicate the entry.
	cp.Mark("https://a.com")
	if got := cp.Completed(); len(got) != 1 {
		t.Errorf("Completed() = %v, want single entry", got)
	}
}

func TestFlushAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "checkpoint.json")

	cp := Load(path)
	cp.Mark("https://a.com")
	cp.Mark("https://b.com")
	if err := cp.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	reloaded := Load(path)
	want := []string{"https://a.com", "https://b.com"}
	if got := reloaded.Completed(); !reflect.DeepEqual(got, want) {
		t.Errorf("Completed() after reload = %v, want %v", got, want)
	}
}

func TestFlush_FileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoint.json")

	cp := Load(path)
	cp.Mark("https://a.com")
	if err := cp.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var parsed struct {
		Completed []string `json:"completed"`
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("checkpoint file is not valid JSON: %v", err)
	}
	if !reflect.DeepEqual(parsed.Completed, []string{"https://a.com"}) {
		t.Errorf(`"completed" = %v, want ["https://a.com"]`, parsed.Completed)
	}
}

func TestFlush_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	cp := Load(filepath.Join(dir, "checkpoint.json"))
	cp.Mark("https://a.com")
	if err := cp.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "checkpoint.json" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory contains %v, want only checkpoint.json", names)
	}
}

func TestRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoint.json")

	cp := Load(path)
	cp.Mark("https://a.com")
	if err := cp.Flush(); err != nil {
		t.Fatal(err)
	}

	if err := cp.Remove(); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("checkpoint file still exists after Remove()")
	}

	// Removing a missing file is not an error.
	if err := cp.Remove(); err != nil {
		t.Errorf("second Remove() error = %v", err)
	}
}

func TestFlushAfterRemoveDoesNotRecreateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoint.json")

	cp := Load(path)
	cp.Mark("https://a.com")
	if err := cp.Flush(); err != nil {
		t.Fatal(err)
	}
	if err := cp.Remove(); err != nil {
		t.Fatal(err)
	}

	// A deferred flush may still run after clean completion; it must not
	// bring the file back.
	if err := cp.Flush(); err != nil {
		t.Errorf("Flush() after Remove() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("checkpoint file recreated by Flush() after Remove()")
	}
}

func TestResume_PreservesOrderAcrossSessions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoint.json")

	cp := Load(path)
	cp.Mark("https://a.com")
	if err := cp.Flush(); err != nil {
		t.Fatal(err)
	}

	resumed := Load(path)
	resumed.Mark("https://b.com")
	if err := resumed.Flush(); err != nil {
		t.Fatal(err)
	}

	final := Load(path)
	want := []string{"https://a.com", "https://b.com"}
	if got := final.Completed(); !reflect.DeepEqual(got, want) {
		t.Errorf("Completed() = %v, want %v", got, want)
	}
}
