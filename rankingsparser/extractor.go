// Package rankingsparser turns the ABS, CORE and SJR source files into
// insertion-ordered lookup tables. Every source goes through the same
// pipeline: read delimited rows, normalize the title and fields, accumulate
// into a table keyed by normalized title. Row-level problems are counted and
// logged, never fatal; only a missing source file aborts a run.
package rankingsparser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/openranks/rankings-api/logging"
	"github.com/openranks/rankings-api/rankingsparser/entities"
)

// errRowExcluded marks rows that are intentionally left out of the table,
// such as CORE entries with a rank outside the known classifications. These
// are not anomalies and are skipped without a warning.
var errRowExcluded = errors.New("row excluded")

// Source describes one tabular ranking source for the extraction pipeline.
type Source[V entities.Value] struct {
	Name      string
	Comma     rune
	HasHeader bool

	// Header, when set, receives the header row before any data rows. The
	// SJR source uses it to resolve its named columns.
	Header func(header []string) error

	// Row transforms one record into a table entry. Returning an empty key
	// with a nil error drops the row (empty normalized title). Returning
	// errRowExcluded drops it silently; any other error is logged as a
	// malformed row and the run continues.
	Row func(fields []string) (string, V, error)
}

// Stats counts the fate of every row in one extraction run.
type Stats struct {
	Rows       int
	Accepted   int
	Malformed  int
	Excluded   int
	EmptyTitle int
}

// Extract runs the pipeline for one source over r and returns the resulting
// table together with row statistics. The reader is consumed fully.
func Extract[V entities.Value](r io.Reader, src Source[V]) (*entities.Table[V], Stats, error) {
	reader := csv.NewReader(r)
	reader.Comma = src.Comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var stats Stats
	table := entities.NewTable[V]()

	if src.HasHeader {
		header, err := reader.Read()
		if err == io.EOF {
			return table, stats, nil
		}
		if err != nil {
			return nil, stats, fmt.Errorf("failed to read %s header: %w", src.Name, err)
		}
		if src.Header != nil {
			if err := src.Header(header); err != nil {
				return nil, stats, fmt.Errorf("unusable %s header: %w", src.Name, err)
			}
		}
	}

	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			stats.Rows++
			stats.Malformed++
			logging.Warn("Skipping unreadable row", "source", src.Name, "error", err)
			continue
		}
		stats.Rows++

		key, value, err := src.Row(fields)
		switch {
		case errors.Is(err, errRowExcluded):
			stats.Excluded++
		case err != nil:
			stats.Malformed++
			logging.Warn("Skipping malformed row", "source", src.Name, "error", err)
		case key == "":
			stats.EmptyTitle++
		default:
			table.Set(key, value)
			stats.Accepted++
		}
	}

	if stats.Malformed > 0 || stats.Excluded > 0 || stats.EmptyTitle > 0 {
		logging.Info("Row skip statistics",
			"source", src.Name,
			"total_rows", stats.Rows,
			"accepted", stats.Accepted,
			"malformed", stats.Malformed,
			"excluded", stats.Excluded,
			"empty_title", stats.EmptyTitle)
	}

	return table, stats, nil
}

// normalizeTitle applies the shared key normalization: trim then lowercase.
func normalizeTitle(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
