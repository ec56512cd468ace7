package entities

import (
	"fmt"
	"strconv"
)

// Value is the common contract for ranking values stored in a Table.
// ScriptValue renders the value as a JavaScript object-literal fragment
// for the embeddable script artifact.
type Value interface {
	ScriptValue() string
}

// JournalABS holds the ABS quality tier for a journal.
type JournalABS struct {
	Abs string `json:"abs"`
}

func (j JournalABS) ScriptValue() string {
	return fmt.Sprintf("{abs: %q}", j.Abs)
}

// JournalSJR holds the SCImago Journal Rank score and best quartile.
type JournalSJR struct {
	SJR      float64 `json:"sjr"`
	Quartile string  `json:"quartile"`
}

func (j JournalSJR) ScriptValue() string {
	return fmt.Sprintf("{sjr: %s, quartile: %q}", FormatScore(j.SJR), j.Quartile)
}

// ConferenceRank is the composed CORE rank string, e.g. "A* [2023]",
// "Au B", "Nat: USA", or "TBR".
type ConferenceRank string

func (r ConferenceRank) ScriptValue() string {
	return strconv.Quote(string(r))
}

// FormatScore renders a score with the shortest representation that
// round-trips, matching the JSON encoding of the same float.
func FormatScore(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// RankingSet bundles the three tables produced by one extraction run.
type RankingSet struct {
	ABS  *Table[JournalABS]
	Core *Table[ConferenceRank]
	SJR  *Table[JournalSJR]
}
