package rankingsparser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/openranks/rankings-api/rankingsparser/entities"
)

// SJRSource describes the SCImago journal export: semicolon-delimited with
// named columns. The SJR score uses a comma as decimal separator and is
// normalized to a dot before parsing; an unparsable score skips the row with
// a warning. A missing quartile defaults to "-".
func SJRSource() Source[entities.JournalSJR] {
	cols := struct {
		title    int
		sjr      int
		quartile int
	}{-1, -1, -1}

	return Source[entities.JournalSJR]{
		Name:      "sjr",
		Comma:     ';',
		HasHeader: true,
		Header: func(header []string) error {
			for i, name := range header {
				switch strings.TrimSpace(name) {
				case "Title":
					cols.title = i
				case "SJR":
					cols.sjr = i
				case "SJR Best Quartile":
					cols.quartile = i
				}
			}
			if cols.title < 0 || cols.sjr < 0 || cols.quartile < 0 {
				return fmt.Errorf("missing required columns Title/SJR/SJR Best Quartile in %v", header)
			}
			return nil
		},
		Row: func(fields []string) (string, entities.JournalSJR, error) {
			if len(fields) <= cols.title || len(fields) <= cols.sjr || len(fields) <= cols.quartile {
				return "", entities.JournalSJR{}, fmt.Errorf("expected at least %d columns, got %d", cols.quartile+1, len(fields))
			}

			title := normalizeTitle(strings.Trim(fields[cols.title], `"`))

			rawScore := strings.TrimSpace(fields[cols.sjr])
			score, err := strconv.ParseFloat(strings.ReplaceAll(rawScore, ",", "."), 64)
			if err != nil {
				return "", entities.JournalSJR{}, fmt.Errorf("could not convert SJR value %q for journal %q", rawScore, title)
			}

			quartile := strings.TrimSpace(fields[cols.quartile])
			if quartile == "" {
				quartile = "-"
			}

			return title, entities.JournalSJR{SJR: score, Quartile: quartile}, nil
		},
	}
}
