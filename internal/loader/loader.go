// Package loader builds ingest payloads from a local docs directory and
// submits them to the rag-search API.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/RajputKashish/endee-rag-search/internal/domain"
)

// allowedExtensions are the plain-text-like file types picked up by Scan.
var allowedExtensions = map[string]struct{}{
	".md":  {},
	".txt": {},
	".rst": {},
}

// Scan reads all matching files from dir (sorted by name) and builds one
// document per file. The document ID is the filename stem; metadata
// carries a human-readable title, the source filename, and a snippet.
// Subdirectories and non-matching extensions are ignored. Empty files
// cannot become documents; their names come back in skipped so the
// caller can report them without failing the whole run.
func Scan(dir string) (docs []domain.Document, skipped []string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("read docs dir %s: %w", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if _, ok := allowedExtensions[ext]; !ok {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, nil, fmt.Errorf("read %s: %w", name, err)
		}
		if len(data) == 0 {
			skipped = append(skipped, name)
			continue
		}

		stem := strings.TrimSuffix(name, filepath.Ext(name))
		text := string(data)
		doc, err := domain.NewDocument(stem, text, map[string]any{
			"title":   titleFromStem(stem),
			"source":  name,
			"snippet": domain.Snippet(text),
		})
		if err != nil {
			return nil, nil, fmt.Errorf("build document from %s: %w", name, err)
		}
		docs = append(docs, doc)
	}
	return docs, skipped, nil
}

// titleFromStem derives a display title from a filename stem:
// separators become spaces and each word is title-cased, so an
// all-caps stem still yields "My Doc" rather than "My DOC".
func titleFromStem(stem string) string {
	replaced := strings.NewReplacer("-", " ", "_", " ").Replace(stem)
	words := strings.Fields(replaced)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
