package ingest

import (
	"time"
)

// Sync tiers. Listing-based sync and mirror enumeration are mutually
// exclusive within one cycle.
const (
	TierListing = "listing"
	TierMirror  = "mirror"
)

// Run records one refresh cycle for logging and API responses.
type Run struct {
	ID              string    `json:"run_id"`
	StartedAt       time.Time `json:"started_at"`
	FinishedAt      time.Time `json:"finished_at"`
	Forced          bool      `json:"forced"`
	Tier            string    `json:"tier,omitempty"`
	FilesChecked    int       `json:"files_checked"`
	FilesDownloaded int       `json:"files_downloaded"`
	Changed         bool      `json:"changed"`
	Rebuilt         bool      `json:"rebuilt"`
	Error           string    `json:"error,omitempty"`
}
