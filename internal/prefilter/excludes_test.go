package prefilter

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExcludesRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "excludes.json")

	excludes := &Excludes{}
	excludes.Append(&Excludes{Items: []*Exclude{
		{Company: "Shady Staffing", ExcludedAt: time.Now().UTC()},
		{URL: "https://example.com/jobs/1"},
	}})

	if err := excludes.ToFile(path); err != nil {
		t.Fatalf("writing excludes: %v", err)
	}

	loaded, err := GetExcludesFromFile(path)
	if err != nil {
		t.Fatalf("loading excludes: %v", err)
	}
	if len(loaded.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(loaded.Items))
	}

	if !loaded.Matches("  shady   staffing ", "") {
		t.Fatalf("expected company match to ignore case and whitespace")
	}
	if !loaded.Matches("Other", "https://example.com/jobs/1") {
		t.Fatalf("expected url match")
	}
	if loaded.Matches("Acme", "https://example.com/jobs/2") {
		t.Fatalf("unexpected match")
	}
}

func TestAppendToFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "excludes.json")

	if err := AppendToFile(path, []*Exclude{{Company: "Shady Staffing"}}); err != nil {
		t.Fatalf("appending to a missing file: %v", err)
	}
	if err := AppendToFile(path, []*Exclude{{URL: "https://example.com/jobs/9"}}); err != nil {
		t.Fatalf("appending to an existing file: %v", err)
	}

	loaded, err := GetExcludesFromFile(path)
	if err != nil {
		t.Fatalf("loading excludes: %v", err)
	}
	if len(loaded.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(loaded.Items))
	}
	if !loaded.Matches("Shady Staffing", "") || !loaded.Matches("", "https://example.com/jobs/9") {
		t.Fatalf("expected both appended entries to match, got %+v", loaded.Items)
	}
}

func TestGetExcludesFromEmptyFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("touch file: %v", err)
	}

	excludes, err := GetExcludesFromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(excludes.Items) != 0 {
		t.Fatalf("expected empty blocklist, got %d items", len(excludes.Items))
	}
	if excludes.Matches("Anyone", "any") {
		t.Fatalf("empty blocklist must not match")
	}
}

func TestExcludesMatchesNil(t *testing.T) {
	t.Parallel()

	var excludes *Excludes
	if excludes.Matches("Acme", "url") {
		t.Fatalf("nil blocklist must not match")
	}
}
