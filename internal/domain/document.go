package domain

import "fmt"

// MetaKeySnippet is the reserved metadata key for the derived display snippet.
const MetaKeySnippet = "snippet"

// SnippetLength is the maximum snippet length in characters.
const SnippetLength = 200

// Document is an ingestable document. Meta carries arbitrary caller keys.
type Document struct {
	ID   string
	Text string
	Meta map[string]any
}

// NewDocument validates and creates a Document.
// ID and Text are required; Meta may be nil.
func NewDocument(id, text string, meta map[string]any) (Document, error) {
	if id == "" {
		return Document{}, fmt.Errorf("document ID is required")
	}
	if text == "" {
		return Document{}, fmt.Errorf("document %q: text is required", id)
	}
	return Document{ID: id, Text: text, Meta: meta}, nil
}

// Snippet returns the display snippet for text: the first SnippetLength
// characters with an ellipsis appended when truncation occurred.
// Truncation counts runes, not bytes, so multibyte text stays intact.
func Snippet(text string) string {
	runes := []rune(text)
	if len(runes) <= SnippetLength {
		return text
	}
	return string(runes[:SnippetLength]) + "..."
}

// MetaWithSnippet returns a copy of meta with the derived snippet merged
// under MetaKeySnippet. The input map is not mutated; a caller-supplied
// snippet key is overwritten.
func MetaWithSnippet(meta map[string]any, text string) map[string]any {
	merged := make(map[string]any, len(meta)+1)
	for k, v := range meta {
		merged[k] = v
	}
	merged[MetaKeySnippet] = Snippet(text)
	return merged
}
