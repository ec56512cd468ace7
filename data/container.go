// Package data provides thread-safe storage for the ranking tables with
// atomic pointers, so a scheduled refresh swaps all three tables without
// readers ever seeing a partial update.
package data

import (
	"sync/atomic"
	"time"

	"github.com/openranks/rankings-api/interfaces"
	"github.com/openranks/rankings-api/logging"
	"github.com/openranks/rankings-api/rankingsparser/entities"
)

// Compile-time check to ensure DataContainer implements DataStore
var _ interfaces.DataStore = (*DataContainer)(nil)

// DataContainer holds the current ranking tables behind atomic values.
type DataContainer struct {
	abs         atomic.Value // *entities.Table[entities.JournalABS]
	core        atomic.Value // *entities.Table[entities.ConferenceRank]
	sjr         atomic.Value // *entities.Table[entities.JournalSJR]
	lastUpdated atomic.Value // time.Time
	updating    atomic.Bool
}

// NewDataContainer creates a container with empty tables.
func NewDataContainer() *DataContainer {
	dc := &DataContainer{}
	dc.abs.Store(entities.NewTable[entities.JournalABS]())
	dc.core.Store(entities.NewTable[entities.ConferenceRank]())
	dc.sjr.Store(entities.NewTable[entities.JournalSJR]())
	dc.lastUpdated.Store(time.Time{})
	return dc
}

// Thread-safe getters with type check

// GetABS returns the ABS journal table.
func (dc *DataContainer) GetABS() *entities.Table[entities.JournalABS] {
	if v := dc.abs.Load(); v != nil {
		if table, ok := v.(*entities.Table[entities.JournalABS]); ok {
			return table
		}
	}

	logging.Warn("ABS table is empty or invalid")
	return entities.NewTable[entities.JournalABS]()
}

// GetCore returns the CORE conference table.
func (dc *DataContainer) GetCore() *entities.Table[entities.ConferenceRank] {
	if v := dc.core.Load(); v != nil {
		if table, ok := v.(*entities.Table[entities.ConferenceRank]); ok {
			return table
		}
	}

	logging.Warn("CORE table is empty or invalid")
	return entities.NewTable[entities.ConferenceRank]()
}

// GetSJR returns the SJR journal table.
func (dc *DataContainer) GetSJR() *entities.Table[entities.JournalSJR] {
	if v := dc.sjr.Load(); v != nil {
		if table, ok := v.(*entities.Table[entities.JournalSJR]); ok {
			return table
		}
	}

	logging.Warn("SJR table is empty or invalid")
	return entities.NewTable[entities.JournalSJR]()
}

// SetRankings atomically swaps in the tables of a completed extraction run.
func (dc *DataContainer) SetRankings(set *entities.RankingSet) {
	dc.abs.Store(set.ABS)
	dc.core.Store(set.Core)
	dc.sjr.Store(set.SJR)
	dc.lastUpdated.Store(time.Now())
}

// GetLastUpdated returns the timestamp of the last table swap.
func (dc *DataContainer) GetLastUpdated() time.Time {
	if v := dc.lastUpdated.Load(); v != nil {
		if lastUpdated, ok := v.(time.Time); ok {
			return lastUpdated
		}
	}

	logging.Warn("Could not get the last updated value")
	return time.Time{}
}

// IsUpdating reports whether a refresh is currently running.
func (dc *DataContainer) IsUpdating() bool {
	return dc.updating.Load()
}

// BeginUpdate marks a refresh as started; it returns false when another
// refresh is already in progress.
func (dc *DataContainer) BeginUpdate() bool {
	return dc.updating.CompareAndSwap(false, true)
}

// EndUpdate marks the running refresh as finished.
func (dc *DataContainer) EndUpdate() {
	dc.updating.Store(false)
}
