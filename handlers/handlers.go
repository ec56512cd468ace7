// Package handlers provides the HTTP handlers for the rankings API: full
// table dumps, per-title journal and conference lookups, and the health
// check. Lookup titles go through the same normalization the extractor
// applies, so any title that appears in a source file is addressable.
package handlers

import (
	"encoding/json"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/openranks/rankings-api/interfaces"
	"github.com/openranks/rankings-api/logging"
	"github.com/openranks/rankings-api/scheduler"
)

var serverStartTime = time.Now()

// RespondWithJSON writes a JSON response
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
	w.WriteHeader(code)
	w.Write(data)
}

// normalizeTitle mirrors the extractor's key normalization.
func normalizeTitle(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// ServeRankings returns the full table for one source (abs, core or sjr).
func ServeRankings(store interfaces.DataStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch chi.URLParam(r, "source") {
		case "abs":
			RespondWithJSON(w, http.StatusOK, store.GetABS())
		case "core":
			RespondWithJSON(w, http.StatusOK, store.GetCore())
		case "sjr":
			RespondWithJSON(w, http.StatusOK, store.GetSJR())
		default:
			http.Error(w, "Unknown ranking source", http.StatusNotFound)
		}
	}
}

// JournalResponse combines the ABS tier and SJR metrics known for a journal.
type JournalResponse struct {
	Title    string   `json:"title"`
	Abs      string   `json:"abs,omitempty"`
	SJR      *float64 `json:"sjr,omitempty"`
	Quartile string   `json:"quartile,omitempty"`
}

// LookupJournal returns the combined ABS/SJR view for one journal title.
func LookupJournal(store interfaces.DataStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		title := normalizeTitle(chi.URLParam(r, "title"))
		if title == "" {
			http.Error(w, "Missing journal title", http.StatusBadRequest)
			return
		}

		response := JournalResponse{Title: title}
		found := false

		if entry, ok := store.GetABS().Get(title); ok {
			response.Abs = entry.Abs
			found = true
		}
		if entry, ok := store.GetSJR().Get(title); ok {
			score := entry.SJR
			response.SJR = &score
			response.Quartile = entry.Quartile
			found = true
		}

		if !found {
			http.Error(w, "Journal not found", http.StatusNotFound)
			return
		}

		RespondWithJSON(w, http.StatusOK, response)
	}
}

// ConferenceResponse holds the CORE rank for a conference.
type ConferenceResponse struct {
	Title string `json:"title"`
	Rank  string `json:"rank"`
}

// LookupConference returns the CORE rank string for one conference title.
func LookupConference(store interfaces.DataStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		title := normalizeTitle(chi.URLParam(r, "title"))
		if title == "" {
			http.Error(w, "Missing conference title", http.StatusBadRequest)
			return
		}

		rank, ok := store.GetCore().Get(title)
		if !ok {
			http.Error(w, "Conference not found", http.StatusNotFound)
			return
		}

		RespondWithJSON(w, http.StatusOK, ConferenceResponse{Title: title, Rank: string(rank)})
	}
}

// HealthResponse defines the health check payload with stable field order.
type HealthResponse struct {
	Status          string `json:"status"`
	Uptime          string `json:"uptime"`
	MemoryUsageMB   int    `json:"memory_usage_mb"`
	LastUpdate      string `json:"last_update"`
	NextUpdate      string `json:"next_update"`
	IsUpdating      bool   `json:"is_updating"`
	ABSJournals     int    `json:"abs_journals"`
	CoreConferences int    `json:"core_conferences"`
	SJRJournals     int    `json:"sjr_journals"`
}

// HealthCheck returns server health information.
func HealthCheck(store interfaces.DataStore, refreshAt string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		RespondWithJSON(w, http.StatusOK, HealthResponse{
			Status:          "healthy",
			Uptime:          time.Since(serverStartTime).Round(time.Second).String(),
			MemoryUsageMB:   int(m.Alloc / 1024 / 1024),
			LastUpdate:      store.GetLastUpdated().Format(time.RFC3339),
			NextUpdate:      scheduler.NextUpdate(refreshAt, time.Now()).Format(time.RFC3339),
			IsUpdating:      store.IsUpdating(),
			ABSJournals:     store.GetABS().Len(),
			CoreConferences: store.GetCore().Len(),
			SJRJournals:     store.GetSJR().Len(),
		})
	}
}
