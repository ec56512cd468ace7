package rankingsparser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

func TestABSRows(t *testing.T) {
	input := "Field,Journal Title,AJG 2024\n" +
		"ACCT, Accounting Review ,4*\n" +
		"ECON,Alpha,1\n"

	table, stats, err := Extract(strings.NewReader(input), ABSSource())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if stats.Accepted != 2 {
		t.Errorf("Accepted = %d, want 2", stats.Accepted)
	}

	entry, ok := table.Get("accounting review")
	if !ok {
		t.Fatalf("Expected 'accounting review' in table, keys: %v", table.Keys())
	}
	if entry.Abs != "4*" {
		t.Errorf("Abs = %q, want 4*", entry.Abs)
	}

	if entry, _ := table.Get("alpha"); entry.Abs != "1" {
		t.Errorf("Abs for alpha = %q, want 1", entry.Abs)
	}
}

func TestABSShortRowIsMalformed(t *testing.T) {
	input := "Field,Journal Title,AJG 2024\nonly-one-column\n"

	table, stats, err := Extract(strings.NewReader(input), ABSSource())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if table.Len() != 0 {
		t.Errorf("Len() = %d, want 0", table.Len())
	}
	if stats.Malformed != 1 {
		t.Errorf("Malformed = %d, want 1", stats.Malformed)
	}
}

// coreRow builds a well-formed nine-column CORE row.
func coreRow(title, rank2023, rank2021 string) string {
	return strings.Join([]string{"1", title, "ACRO", "src", rank2023, rank2021, "x", "y", "z"}, ",")
}

func TestCoreRankSelection(t *testing.T) {
	tests := []struct {
		name     string
		row      string
		wantKey  string
		wantRank string
	}{
		{"2023 rank preferred", coreRow("ICSE", "A*", "B"), "icse", "A* [2023]"},
		{"2021 fallback", coreRow("OldConf", "", "B"), "oldconf", "B [2021]"},
		{"australasian rewritten", coreRow("AusConf", "Australasian B", ""), "ausconf", "Au B"},
		{"national rewritten", coreRow("NatConf", "National: USA", ""), "natconf", "Nat: USA"},
		{"tbr verbatim", coreRow("NewConf", "TBR", ""), "newconf", "TBR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			table, _, err := Extract(strings.NewReader(tc.row+"\n"), CORESource())
			if err != nil {
				t.Fatalf("Extract failed: %v", err)
			}

			rank, ok := table.Get(tc.wantKey)
			if !ok {
				t.Fatalf("Expected key %q, keys: %v", tc.wantKey, table.Keys())
			}
			if string(rank) != tc.wantRank {
				t.Errorf("Rank = %q, want %q", rank, tc.wantRank)
			}
		})
	}
}

func TestCoreUnclassifiedRankExcluded(t *testing.T) {
	input := coreRow("Mystery Conference", "Regional", "") + "\n"

	table, stats, err := Extract(strings.NewReader(input), CORESource())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if table.Len() != 0 {
		t.Errorf("Unclassified rank should be excluded, keys: %v", table.Keys())
	}
	if stats.Excluded != 1 {
		t.Errorf("Excluded = %d, want 1", stats.Excluded)
	}
}

func TestCoreShortRowSkipped(t *testing.T) {
	input := "1,Short Conference,ACRO,src,A\n" + coreRow("Good Conference", "B", "") + "\n"

	table, stats, err := Extract(strings.NewReader(input), CORESource())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if _, ok := table.Get("short conference"); ok {
		t.Error("Row with fewer than 9 columns must never appear in the table")
	}
	if _, ok := table.Get("good conference"); !ok {
		t.Error("Well-formed row should still be accepted after a short row")
	}
	if stats.Malformed != 1 {
		t.Errorf("Malformed = %d, want 1", stats.Malformed)
	}
}

const sjrHeader = "Rank;Sourceid;Title;Type;SJR;SJR Best Quartile;H index\n"

func TestSJRCommaDecimalSeparator(t *testing.T) {
	input := sjrHeader + `1;100;"Nature";journal;1,234;Q1;500` + "\n"

	table, _, err := Extract(strings.NewReader(input), SJRSource())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	entry, ok := table.Get("nature")
	if !ok {
		t.Fatalf("Expected 'nature' in table, keys: %v", table.Keys())
	}
	if entry.SJR != 1.234 {
		t.Errorf("SJR = %v, want 1.234 (comma decimal separator)", entry.SJR)
	}
	if entry.Quartile != "Q1" {
		t.Errorf("Quartile = %q, want Q1", entry.Quartile)
	}
}

func TestSJRUnparsableScoreSkipsRow(t *testing.T) {
	input := sjrHeader +
		"1;100;Bad Journal;journal;n/a;Q1;1\n" +
		"2;101;Good Journal;journal;0,5;Q2;2\n"

	table, stats, err := Extract(strings.NewReader(input), SJRSource())
	if err != nil {
		t.Fatalf("Run must not fail on an unparsable score: %v", err)
	}

	if _, ok := table.Get("bad journal"); ok {
		t.Error("Row with unparsable SJR score should be skipped")
	}
	if stats.Malformed != 1 {
		t.Errorf("Malformed = %d, want 1", stats.Malformed)
	}
	if entry, _ := table.Get("good journal"); entry.SJR != 0.5 {
		t.Errorf("SJR = %v, want 0.5", entry.SJR)
	}
}

func TestSJRMissingQuartileDefaults(t *testing.T) {
	input := sjrHeader + "1;100;Quiet Journal;journal;2,0;;1\n"

	table, _, err := Extract(strings.NewReader(input), SJRSource())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	entry, ok := table.Get("quiet journal")
	if !ok {
		t.Fatalf("Expected 'quiet journal' in table, keys: %v", table.Keys())
	}
	if entry.Quartile != "-" {
		t.Errorf("Quartile = %q, want -", entry.Quartile)
	}
}

func TestSJRMissingRequiredColumn(t *testing.T) {
	input := "Rank;Name;Score\n1;x;2\n"

	if _, _, err := Extract(strings.NewReader(input), SJRSource()); err == nil {
		t.Error("Expected an error for a header without the required columns")
	}
}

func TestExtractFileMissingSource(t *testing.T) {
	_, _, err := ExtractFile(filepath.Join(t.TempDir(), "nope.csv"), ABSSource())
	if err == nil {
		t.Error("Expected an error for a missing source file")
	}
}

func TestExtractFileLatinOneFallback(t *testing.T) {
	encoded, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte("Field,Journal Title,AJG\nECON,Économie Générale,2\n"))
	if err != nil {
		t.Fatalf("Failed to encode fixture: %v", err)
	}

	path := filepath.Join(t.TempDir(), "abs.csv")
	if err := os.WriteFile(path, encoded, 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	table, _, err := ExtractFile(path, ABSSource())
	if err != nil {
		t.Fatalf("ExtractFile failed: %v", err)
	}

	if _, ok := table.Get("économie générale"); !ok {
		t.Errorf("Expected ISO-8859-1 source to be decoded, keys: %v", table.Keys())
	}
}

func TestExtractFileStripsBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abs.csv")
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Field,Journal Title,AJG\nECON,Alpha,1\n")...)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	table, _, err := ExtractFile(path, ABSSource())
	if err != nil {
		t.Fatalf("ExtractFile failed: %v", err)
	}
	if table.Len() != 1 {
		t.Errorf("Len() = %d, want 1", table.Len())
	}
}
