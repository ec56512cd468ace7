package rankingsparser

import (
	"fmt"
	"os"
	"time"

	"github.com/openranks/rankings-api/config"
	"github.com/openranks/rankings-api/export"
	"github.com/openranks/rankings-api/logging"
	"github.com/openranks/rankings-api/metrics"
	"github.com/openranks/rankings-api/rankingsparser/entities"
)

// RankingsParser runs the full extraction: all three sources in parallel,
// artifacts written afterwards.
type RankingsParser struct {
	cfg *config.Config
}

// New creates a parser bound to the given configuration.
func New(cfg *config.Config) *RankingsParser {
	return &RankingsParser{cfg: cfg}
}

type sourceResult[V entities.Value] struct {
	table *entities.Table[V]
	stats Stats
	err   error
}

func runSource[V entities.Value](path string, src Source[V], out chan<- sourceResult[V]) {
	table, stats, err := src.extractFrom(path)
	out <- sourceResult[V]{table: table, stats: stats, err: err}
}

func (s Source[V]) extractFrom(path string) (*entities.Table[V], Stats, error) {
	start := time.Now()
	table, stats, err := ExtractFile(path, s)
	if err != nil {
		return nil, stats, err
	}

	metrics.ObserveExtraction(s.Name, stats.Accepted, stats.Malformed, stats.Excluded, stats.EmptyTitle, table.Len())
	logging.Info("Source extraction completed",
		"source", s.Name,
		"entries", table.Len(),
		"duration", time.Since(start).String())
	return table, stats, nil
}

// ParseAll refreshes configured downloadable sources, extracts the three
// tables concurrently, and writes the JSON/script artifact pairs. Any
// missing source file or unwritable artifact fails the whole run.
func (p *RankingsParser) ParseAll() (*entities.RankingSet, error) {
	// A failed download is not fatal: rankings change rarely, so the file
	// already on disk is still usable.
	if err := downloadSources(p.cfg.DataDir, p.cfg.DownloadTargets()); err != nil {
		logging.Warn("Source download failed, using existing files", "error", err)
	}

	absChan := make(chan sourceResult[entities.JournalABS], 1)
	coreChan := make(chan sourceResult[entities.ConferenceRank], 1)
	sjrChan := make(chan sourceResult[entities.JournalSJR], 1)

	go runSource(p.cfg.ABSPath(), ABSSource(), absChan)
	go runSource(p.cfg.CorePath(), CORESource(), coreChan)
	go runSource(p.cfg.SJRPath(), SJRSource(), sjrChan)

	absResult := <-absChan
	coreResult := <-coreChan
	sjrResult := <-sjrChan

	for _, err := range []error{absResult.err, coreResult.err, sjrResult.err} {
		if err != nil {
			return nil, err
		}
	}

	set := &entities.RankingSet{
		ABS:  absResult.table,
		Core: coreResult.table,
		SJR:  sjrResult.table,
	}

	if err := p.writeArtifacts(set); err != nil {
		return nil, err
	}

	metrics.LastRefreshTimestamp.SetToCurrentTime()
	logging.Info("All rankings parsed",
		"abs_journals", set.ABS.Len(),
		"core_conferences", set.Core.Len(),
		"sjr_journals", set.SJR.Len())

	return set, nil
}

func (p *RankingsParser) writeArtifacts(set *entities.RankingSet) error {
	if err := os.MkdirAll(p.cfg.OutDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := export.WritePair(set.ABS, export.ABSNames, p.cfg.OutDir); err != nil {
		return err
	}
	if err := export.WritePair(set.Core, export.CoreNames, p.cfg.OutDir); err != nil {
		return err
	}
	return export.WritePair(set.SJR, export.SJRNames, p.cfg.OutDir)
}
