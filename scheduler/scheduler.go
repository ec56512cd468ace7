// Package scheduler refreshes the ranking tables on a daily schedule and
// monitors data staleness. It coordinates the parser and the data container
// through the interfaces package.
package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/openranks/rankings-api/interfaces"
	"github.com/openranks/rankings-api/logging"
	"github.com/openranks/rankings-api/validation"
)

// Compile-time check to ensure Scheduler implements the Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// Scheduler handles data updates and staleness monitoring.
type Scheduler struct {
	dataStore interfaces.DataStore
	parser    interfaces.Parser
	scheduler *gocron.Scheduler
	refreshAt string
	stopCh    chan struct{}
}

// NewScheduler creates a scheduler with injected dependencies. refreshAt is
// the daily refresh time in HH:MM.
func NewScheduler(dataStore interfaces.DataStore, parser interfaces.Parser, refreshAt string) *Scheduler {
	return &Scheduler{
		dataStore: dataStore,
		parser:    parser,
		scheduler: gocron.NewScheduler(time.Local),
		refreshAt: refreshAt,
		stopCh:    make(chan struct{}),
	}
}

// Start performs the initial data load and schedules daily refreshes.
func (s *Scheduler) Start() error {
	if err := s.UpdateData(); err != nil {
		logging.Error("Failed to perform initial data load", "error", err)
		return fmt.Errorf("initial data load failed: %w", err)
	}

	_, err := s.scheduler.Every(1).Days().At(s.refreshAt).Do(func() {
		if err := s.UpdateData(); err != nil {
			logging.Error("Failed to update rankings", "error", err)
		}
	})
	if err != nil {
		logging.Error("Failed to schedule updates", "error", err)
		return fmt.Errorf("failed to schedule updates: %w", err)
	}

	s.scheduler.StartAsync()
	s.startStalenessMonitoring()

	return nil
}

// Stop stops the scheduler and the staleness monitor.
func (s *Scheduler) Stop() {
	close(s.stopCh)
	s.scheduler.Stop()
}

// UpdateData runs a full extraction and swaps the tables in when the result
// validates. Concurrent invocations are collapsed into one.
func (s *Scheduler) UpdateData() error {
	if !s.dataStore.BeginUpdate() {
		logging.Info("Update already in progress, skipping...")
		return nil
	}
	defer s.dataStore.EndUpdate()

	start := time.Now()

	set, err := s.parser.ParseAll()
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	if err := validation.ValidateRankings(set); err != nil {
		return fmt.Errorf("extracted rankings failed validation: %w", err)
	}
	validation.ReportDistribution(set.Core)

	s.dataStore.SetRankings(set)

	logging.Info("Rankings update completed",
		"duration", time.Since(start).String(),
		"abs_journals", set.ABS.Len(),
		"core_conferences", set.Core.Len(),
		"sjr_journals", set.SJR.Len())

	return nil
}

// startStalenessMonitoring warns when the data has not been refreshed for
// more than two scheduled cycles.
func (s *Scheduler) startStalenessMonitoring() {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-s.stopCh:
				return
			case <-ticker.C:
				lastUpdate := s.dataStore.GetLastUpdated()
				if time.Since(lastUpdate) > 49*time.Hour {
					logging.Warn("Rankings have not been updated in over 49 hours",
						"last_update", lastUpdate.Format(time.RFC3339))
				}
			}
		}
	}()
}

// NextUpdate returns the next scheduled refresh time for the given daily
// refresh hour.
func NextUpdate(refreshAt string, now time.Time) time.Time {
	at, err := time.Parse("15:04", refreshAt)
	if err != nil {
		return time.Time{}
	}

	next := time.Date(now.Year(), now.Month(), now.Day(), at.Hour(), at.Minute(), 0, 0, now.Location())
	if !now.Before(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
