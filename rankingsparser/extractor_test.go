package rankingsparser

import (
	"strings"
	"testing"

	"github.com/openranks/rankings-api/rankingsparser/entities"
)

// testSource is a minimal two-column source used to exercise the pipeline
// independently of the real source definitions.
func testSource() Source[entities.JournalABS] {
	return Source[entities.JournalABS]{
		Name:      "test",
		Comma:     ',',
		HasHeader: true,
		Row: func(fields []string) (string, entities.JournalABS, error) {
			if len(fields) < 2 {
				return "", entities.JournalABS{}, errRowExcluded
			}
			return normalizeTitle(fields[0]), entities.JournalABS{Abs: fields[1]}, nil
		},
	}
}

func TestExtractSkipsHeaderAndNormalizes(t *testing.T) {
	input := "Title,Rank\n  Alpha ,1\nBETA,2\n"

	table, stats, err := Extract(strings.NewReader(input), testSource())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if stats.Accepted != 2 {
		t.Errorf("Accepted = %d, want 2", stats.Accepted)
	}
	if _, ok := table.Get("alpha"); !ok {
		t.Error("Expected trimmed lowercased key 'alpha'")
	}
	if _, ok := table.Get("beta"); !ok {
		t.Error("Expected lowercased key 'beta'")
	}
	if _, ok := table.Get("title"); ok {
		t.Error("Header row should not be in the table")
	}
}

func TestExtractDropsEmptyTitles(t *testing.T) {
	input := "Title,Rank\n   ,1\nAlpha,2\n"

	table, stats, err := Extract(strings.NewReader(input), testSource())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if table.Len() != 1 {
		t.Errorf("Len() = %d, want 1", table.Len())
	}
	if stats.EmptyTitle != 1 {
		t.Errorf("EmptyTitle = %d, want 1", stats.EmptyTitle)
	}
}

func TestExtractEmptyInput(t *testing.T) {
	table, stats, err := Extract(strings.NewReader(""), testSource())
	if err != nil {
		t.Fatalf("Extract on empty input failed: %v", err)
	}
	if table.Len() != 0 || stats.Rows != 0 {
		t.Errorf("Expected empty table and zero rows, got len=%d rows=%d", table.Len(), stats.Rows)
	}
}

func TestExtractQuotedFieldsWithDelimiter(t *testing.T) {
	input := "Title,Rank\n\"Economics, Politics and Policy\",3\n"

	table, _, err := Extract(strings.NewReader(input), testSource())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if _, ok := table.Get("economics, politics and policy"); !ok {
		t.Errorf("Quoted title containing the delimiter should parse as one field, keys: %v", table.Keys())
	}
}
