package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/RajputKashish/endee-rag-search/internal/domain"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScan_PicksUpSupportedExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "getting-started.md", "# Getting started\nRun the server.")
	writeFile(t, dir, "notes.txt", "plain notes")
	writeFile(t, dir, "index.rst", "restructured text")
	writeFile(t, dir, "image.png", "binary")
	writeFile(t, dir, "script.go", "package main")
	if err := os.Mkdir(filepath.Join(dir, "subdir"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "subdir"), "nested.md", "should be skipped")

	docs, skipped, err := Scan(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(docs))
	}
	if len(skipped) != 0 {
		t.Errorf("expected nothing skipped, got %v", skipped)
	}

	// sorted by filename: getting-started.md, index.rst, notes.txt
	ids := []string{docs[0].ID, docs[1].ID, docs[2].ID}
	want := []string{"getting-started", "index", "notes"}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("expected id %q at position %d, got %q", want[i], i, ids[i])
		}
	}
}

func TestScan_DocumentMetadata(t *testing.T) {
	dir := t.TempDir()
	text := "API reference for the search endpoints."
	writeFile(t, dir, "api_reference-guide.md", text)

	docs, _, err := Scan(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}

	doc := docs[0]
	if doc.ID != "api_reference-guide" {
		t.Errorf("unexpected id %q", doc.ID)
	}
	if doc.Text != text {
		t.Errorf("unexpected text %q", doc.Text)
	}
	if got := doc.Meta["title"]; got != "Api Reference Guide" {
		t.Errorf("unexpected title %v", got)
	}
	if got := doc.Meta["source"]; got != "api_reference-guide.md" {
		t.Errorf("unexpected source %v", got)
	}
	if got := doc.Meta[domain.MetaKeySnippet]; got != text {
		t.Errorf("unexpected snippet %v", got)
	}
}

func TestScan_SnippetTruncatesLongFiles(t *testing.T) {
	dir := t.TempDir()
	long := strings.Repeat("a", 500)
	writeFile(t, dir, "long.txt", long)

	docs, _, err := Scan(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snippet, ok := docs[0].Meta[domain.MetaKeySnippet].(string)
	if !ok {
		t.Fatalf("snippet missing or not a string: %v", docs[0].Meta)
	}
	if want := strings.Repeat("a", domain.SnippetLength) + "..."; snippet != want {
		t.Errorf("unexpected snippet length %d, suffix %q", len(snippet), snippet[len(snippet)-3:])
	}
}

func TestScan_MissingDirectory(t *testing.T) {
	_, _, err := Scan(filepath.Join(t.TempDir(), "does-not-exist"))
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestScan_EmptyFileSkippedNotFatal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "empty.md", "")
	writeFile(t, dir, "real.md", "actual content")

	docs, skipped, err := Scan(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != "real" {
		t.Fatalf("expected only the non-empty document, got %+v", docs)
	}
	if len(skipped) != 1 || skipped[0] != "empty.md" {
		t.Errorf("expected empty.md reported as skipped, got %v", skipped)
	}
}

func TestTitleFromStem(t *testing.T) {
	tests := []struct {
		stem string
		want string
	}{
		{"getting-started", "Getting Started"},
		{"api_reference", "Api Reference"},
		{"mixed-sep_stem", "Mixed Sep Stem"},
		{"single", "Single"},
		{"my-DOC", "My Doc"},
		{"ALLCAPS_notes", "Allcaps Notes"},
	}
	for _, tc := range tests {
		if got := titleFromStem(tc.stem); got != tc.want {
			t.Errorf("titleFromStem(%q) = %q, want %q", tc.stem, got, tc.want)
		}
	}
}
