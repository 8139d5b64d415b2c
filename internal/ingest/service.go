package ingest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"holidayapi/internal/holiday"
	"holidayapi/internal/platform/github"

	"github.com/google/uuid"
)

// earliestYear is the first year published upstream.
const earliestYear = 2007

type Config struct {
	DataDir string
	Repo    github.Repo
}

// Service runs the refresh cycle: sync yearly files from the upstream
// repository, rebuild the dense index when anything changed, and
// publish it to the store.
type Service struct {
	source ContentSource
	store  *holiday.Store
	cfg    Config
	now    func() time.Time
}

func NewService(source ContentSource, store *holiday.Store, cfg Config) *Service {
	return &Service{
		source: source,
		store:  store,
		cfg:    cfg,
		now:    time.Now,
	}
}

// SyncAll brings the local yearly files up to date and reports whether
// any file was written.
//
// It tries the Contents API listing first and falls back to year
// enumeration against the direct mirrors only when the listing itself
// is unobtainable. Individual download failures in listing mode are
// non-fatal and do not trigger the fallback; those files keep their
// previous state.
func (s *Service) SyncAll(ctx context.Context, force bool) (bool, error) {
	var run Run
	err := s.syncAll(ctx, force, &run)
	return run.Changed, err
}

func (s *Service) syncAll(ctx context.Context, force bool, run *Run) error {
	fp := loadFingerprints(s.cfg.DataDir)

	// Attempt timeouts live inside the source; the cycle context only
	// carries cancellation.
	entries, listErr := s.source.ListContents(ctx, s.cfg.Repo)

	if listErr == nil {
		run.Tier = TierListing
		for _, e := range entries {
			if !holiday.IsYearFile(e.Name) {
				continue
			}
			run.FilesChecked++
			downloaded, err := s.downloadListed(ctx, e, fp, force)
			if err != nil {
				log.Printf("sync: %s: %v", e.Name, err)
				continue
			}
			if downloaded {
				run.FilesDownloaded++
				run.Changed = true
			}
		}
		// Rewritten even with zero changes so fingerprints from entries
		// removed upstream don't outlive the listing.
		if err := saveFingerprints(s.cfg.DataDir, fp); err != nil {
			return fmt.Errorf("saving fingerprint index: %w", err)
		}
		return nil
	}

	log.Printf("sync: listing unavailable (%v), enumerating years against mirrors", listErr)
	run.Tier = TierMirror
	for _, year := range s.fallbackYears() {
		local := filepath.Join(s.cfg.DataDir, fmt.Sprintf("%d.json", year))
		if !force {
			if _, err := os.Stat(local); err == nil {
				continue
			}
		}
		run.FilesChecked++
		if s.downloadFromMirrors(ctx, year, local) {
			run.FilesDownloaded++
			run.Changed = true
		}
	}
	// Mirror mode does no fingerprint bookkeeping, but the index is
	// still rewritten each cycle.
	if err := saveFingerprints(s.cfg.DataDir, fp); err != nil {
		return fmt.Errorf("saving fingerprint index: %w", err)
	}
	return nil
}

// downloadListed fetches one listing entry if forced, its upstream SHA
// moved, or the local copy is missing.
func (s *Service) downloadListed(ctx context.Context, e github.Entry, fp fingerprints, force bool) (bool, error) {
	local := filepath.Join(s.cfg.DataDir, e.Name)
	if !force && fp[e.Name] == e.SHA && fileExists(local) {
		return false, nil
	}
	if e.DownloadURL == "" {
		return false, fmt.Errorf("listing entry has no download url")
	}

	content, err := s.source.Fetch(ctx, e.DownloadURL)
	if err != nil {
		return false, err
	}
	if err := writeFileAtomic(local, content); err != nil {
		return false, err
	}
	fp[e.Name] = e.SHA
	log.Printf("sync: downloaded %s via listing", e.Name)
	return true, nil
}

// downloadFromMirrors tries each mirror in order and keeps the first
// success. A year absent from every mirror is simply skipped.
func (s *Service) downloadFromMirrors(ctx context.Context, year int, local string) bool {
	for _, url := range s.source.MirrorURLs(s.cfg.Repo, year) {
		content, err := s.source.Fetch(ctx, url)
		if err != nil {
			if !errors.Is(err, github.ErrNotFound) {
				log.Printf("sync: %d.json: %v", year, err)
			}
			continue
		}
		if err := writeFileAtomic(local, content); err != nil {
			log.Printf("sync: %d.json: %v", year, err)
			return false
		}
		log.Printf("sync: downloaded %d.json via mirror", year)
		return true
	}
	return false
}

// fallbackYears enumerates every plausible year. Next year is included
// because upstream sometimes publishes it ahead of time.
func (s *Service) fallbackYears() []int {
	last := s.now().Year() + 1
	years := make([]int, 0, last-earliestYear+1)
	for y := earliestYear; y <= last; y++ {
		years = append(years, y)
	}
	return years
}

// Refresh runs one full cycle: sync, rebuild if anything changed (or
// nothing was ever published), publish. A failed cycle leaves the
// previously published index untouched.
func (s *Service) Refresh(ctx context.Context, force bool) (*Run, error) {
	run := &Run{
		ID:        uuid.New().String(),
		StartedAt: s.now(),
		Forced:    force,
	}

	syncErr := s.syncAll(ctx, force, run)
	if syncErr != nil {
		run.Error = syncErr.Error()
		log.Printf("refresh run=%s sync failed: %v", run.ID, syncErr)
	}

	if run.Changed || !s.store.Published() {
		idx, err := holiday.Build(s.cfg.DataDir)
		if err != nil {
			run.Error = err.Error()
			run.FinishedAt = s.now()
			return run, err
		}
		s.store.Publish(idx)
		run.Rebuilt = true
	}

	run.FinishedAt = s.now()
	log.Printf("refresh run=%s tier=%s forced=%t changed=%t rebuilt=%t downloaded=%d duration_ms=%d",
		run.ID, run.Tier, run.Forced, run.Changed, run.Rebuilt, run.FilesDownloaded,
		run.FinishedAt.Sub(run.StartedAt).Milliseconds())
	return run, syncErr
}

// RunPeriodic refreshes on a fixed interval until ctx is cancelled.
// Overlap with an on-demand refresh costs redundant downloads, not
// corruption; the last publish wins.
func (s *Service) RunPeriodic(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := s.Refresh(ctx, false); err != nil {
				log.Printf("scheduled refresh: %v", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
