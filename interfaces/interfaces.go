// Package interfaces defines the contracts between the data container, the
// parser and the scheduler, so each can be exercised with fakes in tests.
package interfaces

import (
	"time"

	"github.com/openranks/rankings-api/rankingsparser/entities"
)

// DataStore provides thread-safe access to the current ranking tables.
type DataStore interface {
	GetABS() *entities.Table[entities.JournalABS]
	GetCore() *entities.Table[entities.ConferenceRank]
	GetSJR() *entities.Table[entities.JournalSJR]
	SetRankings(set *entities.RankingSet)
	GetLastUpdated() time.Time
	IsUpdating() bool
	BeginUpdate() bool
	EndUpdate()
}

// Parser produces a fresh RankingSet from the configured sources.
type Parser interface {
	ParseAll() (*entities.RankingSet, error)
}

// Scheduler drives periodic refreshes of the data store.
type Scheduler interface {
	Start() error
	Stop()
	UpdateData() error
}
