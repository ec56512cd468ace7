package rankingsparser

import (
	"fmt"
	"strings"

	"github.com/openranks/rankings-api/rankingsparser/entities"
)

// rankKind classifies a raw CORE rank value once per row; the stored string
// is derived from the kind afterwards.
type rankKind int

const (
	rankUnclassified rankKind = iota
	rankMainTier
	rankAustralasian
	rankNational
	rankToBeRanked
)

func classifyRank(raw string) rankKind {
	switch raw {
	case "A*", "A", "B", "C":
		return rankMainTier
	case "TBR":
		return rankToBeRanked
	}
	switch {
	case strings.HasPrefix(raw, "Australasian"):
		return rankAustralasian
	case strings.HasPrefix(raw, "National"):
		return rankNational
	}
	return rankUnclassified
}

// CORESource describes the full CORE conference export: comma-delimited,
// no header, at least nine columns per usable row. The 2023 rank is
// preferred and the 2021 rank is the fallback; the 2023 value always wins
// when present.
func CORESource() Source[entities.ConferenceRank] {
	return Source[entities.ConferenceRank]{
		Name:      "core",
		Comma:     ',',
		HasHeader: false,
		Row: func(fields []string) (string, entities.ConferenceRank, error) {
			if len(fields) < 9 {
				return "", "", fmt.Errorf("expected at least 9 columns, got %d", len(fields))
			}

			title := normalizeTitle(fields[1])
			rank2023 := strings.TrimSpace(fields[4])
			rank2021 := strings.TrimSpace(fields[5])

			primary := rank2023
			edition := "2023"
			if primary == "" {
				primary = rank2021
				edition = "2021"
			}

			switch classifyRank(primary) {
			case rankMainTier:
				return title, entities.ConferenceRank(fmt.Sprintf("%s [%s]", primary, edition)), nil
			case rankAustralasian:
				return title, entities.ConferenceRank(strings.Replace(primary, "Australasian", "Au", 1)), nil
			case rankNational:
				return title, entities.ConferenceRank(strings.Replace(primary, "National", "Nat", 1)), nil
			case rankToBeRanked:
				return title, entities.ConferenceRank("TBR"), nil
			}
			return "", "", errRowExcluded
		},
	}
}
