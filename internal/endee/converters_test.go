package endee

import (
	"testing"

	"github.com/RajputKashish/endee-rag-search/internal/domain"
)

func TestNormalizeFilter_SingleEqualityClause(t *testing.T) {
	clauses := normalizeFilter(domain.Filter{"source": "a.md"})

	if len(clauses) != 1 {
		t.Fatalf("expected 1 clause, got %d", len(clauses))
	}
	eq, ok := clauses[0]["source"]
	if !ok {
		t.Fatalf("expected clause keyed on source, got %v", clauses[0])
	}
	if len(eq) != 1 || eq["$eq"] != "a.md" {
		t.Errorf("expected exact-match condition, got %v", eq)
	}
}

func TestNormalizeFilter_MultipleKeysSorted(t *testing.T) {
	clauses := normalizeFilter(domain.Filter{
		"source": "a.md",
		"lang":   "en",
	})

	if len(clauses) != 2 {
		t.Fatalf("expected 2 clauses, got %d", len(clauses))
	}
	// deterministic order: lang before source
	if _, ok := clauses[0]["lang"]; !ok {
		t.Errorf("expected lang clause first, got %v", clauses[0])
	}
	if _, ok := clauses[1]["source"]; !ok {
		t.Errorf("expected source clause second, got %v", clauses[1])
	}
}

func TestNormalizeFilter_NonStringValue(t *testing.T) {
	clauses := normalizeFilter(domain.Filter{"year": 2024})

	if clauses[0]["year"]["$eq"] != 2024 {
		t.Errorf("expected non-string values kept as-is, got %v", clauses[0])
	}
}

func TestNormalizeFilter_Empty(t *testing.T) {
	if got := normalizeFilter(nil); got != nil {
		t.Errorf("expected nil for nil filter, got %v", got)
	}
	if got := normalizeFilter(domain.Filter{}); got != nil {
		t.Errorf("expected nil for empty filter, got %v", got)
	}
}
