// Package validation checks extracted ranking tables for integrity before
// they are swapped into the data container, and builds a small quality
// report on the CORE rank distribution.
package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/openranks/rankings-api/logging"
	"github.com/openranks/rankings-api/rankingsparser/entities"
)

var quartileRegex = regexp.MustCompile(`^(Q[1-4]|-)$`)

// ValidateRankings performs integrity checks on a complete extraction run.
// An error here means the run's output should not replace the current data.
func ValidateRankings(set *entities.RankingSet) error {
	if set == nil {
		return fmt.Errorf("ranking set is nil")
	}

	if set.ABS.Len() == 0 {
		return fmt.Errorf("no ABS journals found")
	}
	if set.Core.Len() == 0 {
		return fmt.Errorf("no CORE conferences found")
	}
	if set.SJR.Len() == 0 {
		return fmt.Errorf("no SJR journals found")
	}

	for _, key := range set.ABS.Keys() {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("empty normalized title in ABS table")
		}
		entry, _ := set.ABS.Get(key)
		if strings.TrimSpace(entry.Abs) == "" {
			return fmt.Errorf("empty ABS rank for journal %q", key)
		}
	}

	for _, key := range set.SJR.Keys() {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("empty normalized title in SJR table")
		}
		entry, _ := set.SJR.Get(key)
		if entry.SJR < 0 {
			return fmt.Errorf("negative SJR score %v for journal %q", entry.SJR, key)
		}
		if !quartileRegex.MatchString(entry.Quartile) {
			return fmt.Errorf("unexpected quartile %q for journal %q", entry.Quartile, key)
		}
	}

	for _, key := range set.Core.Keys() {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("empty normalized title in CORE table")
		}
		rank, _ := set.Core.Get(key)
		if strings.TrimSpace(string(rank)) == "" {
			return fmt.Errorf("empty CORE rank for conference %q", key)
		}
	}

	return nil
}

// RankDistribution counts CORE conferences by base rank (the first token of
// the stored rank string: A*, A, B, C, Au, Nat, TBR).
func RankDistribution(core *entities.Table[entities.ConferenceRank]) map[string]int {
	counts := make(map[string]int)
	for _, key := range core.Keys() {
		rank, _ := core.Get(key)
		base := string(rank)
		if idx := strings.IndexByte(base, ' '); idx > 0 {
			base = base[:idx]
		}
		counts[strings.TrimSuffix(base, ":")]++
	}
	return counts
}

// ReportDistribution logs the CORE rank distribution in a stable order.
func ReportDistribution(core *entities.Table[entities.ConferenceRank]) {
	counts := RankDistribution(core)

	ranks := make([]string, 0, len(counts))
	for rank := range counts {
		ranks = append(ranks, rank)
	}
	sort.Strings(ranks)

	attrs := make([]any, 0, 2*len(ranks))
	for _, rank := range ranks {
		attrs = append(attrs, rank, counts[rank])
	}
	logging.Info("CORE ranking distribution", attrs...)
}
