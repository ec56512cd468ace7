package rankingsparser

import (
	"fmt"
	"strings"

	"github.com/openranks/rankings-api/rankingsparser/entities"
)

// ABSSource describes the Association of Business Schools journal list:
// comma-delimited with a header line, title in the second column and the
// quality tier in the third.
func ABSSource() Source[entities.JournalABS] {
	return Source[entities.JournalABS]{
		Name:      "abs",
		Comma:     ',',
		HasHeader: true,
		Row: func(fields []string) (string, entities.JournalABS, error) {
			if len(fields) < 3 {
				return "", entities.JournalABS{}, fmt.Errorf("expected at least 3 columns, got %d", len(fields))
			}
			title := normalizeTitle(fields[1])
			rank := strings.TrimSpace(fields[2])
			return title, entities.JournalABS{Abs: rank}, nil
		},
	}
}
