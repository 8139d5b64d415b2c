package holiday

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
)

// Build parses every yearly override file under dir and derives the
// dense calendar index. It is a pure function of the on-disk files: no
// network access, and the same files always produce the same index.
//
// Files that fail to parse or contain no override entries are skipped
// and their year is left out of the index. Only an unreadable dir is an
// error; an empty dir yields a valid empty index.
func Build(dir string) (*Index, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading data dir %s: %w", dir, err)
	}

	overrides := make(map[string]OverrideDay)
	var years []int
	seen := make(map[int]bool)

	// os.ReadDir sorts by filename, so on the (upstream-invalid) chance
	// that two yearly files claim the same date, the later year wins
	// deterministically.
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !IsYearFile(name) {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Printf("calendar build: skipping %s: %v", name, err)
			continue
		}
		var yf yearFile
		if err := json.Unmarshal(raw, &yf); err != nil {
			log.Printf("calendar build: skipping %s: %v", name, err)
			continue
		}
		if len(yf.Days) == 0 {
			log.Printf("calendar build: skipping %s: no override entries", name)
			continue
		}
		year, _ := strconv.Atoi(name[:4])
		if !seen[year] {
			seen[year] = true
			years = append(years, year)
		}
		for _, d := range yf.Days {
			if d.Date == "" {
				continue
			}
			overrides[d.Date] = d
		}
	}
	sort.Ints(years)

	days := make(map[string]CalendarDay, len(years)*366)
	for _, year := range years {
		cur := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
		for !cur.After(end) {
			key := cur.Format("2006-01-02")
			var ov *OverrideDay
			if o, ok := overrides[key]; ok {
				ov = &o
			}
			days[key] = classifyDay(cur, ov)
			cur = cur.AddDate(0, 0, 1)
		}
	}

	return &Index{days: days, years: years}, nil
}

// classifyDay resolves one date against its override, if any:
//
//	override, off day            -> statutory holiday, labelled
//	override, workday, weekend   -> adjusted workday, labelled
//	override, workday, weekday   -> ordinary working day
//	no override, weekend         -> weekend rest
//	no override, weekday         -> ordinary working day
func classifyDay(t time.Time, ov *OverrideDay) CalendarDay {
	weekday := (int(t.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	weekend := weekday >= 5

	day := CalendarDay{
		Date:           t.Format("2006-01-02"),
		Year:           t.Year(),
		Weekday:        weekday,
		Classification: TypeWorkingDay,
		Label:          NoLabel,
	}

	switch {
	case ov != nil && ov.IsOffDay:
		day.IsOffDay = true
		day.Classification = TypeStatutoryHoliday
		day.Label = ov.Name
	case ov != nil && weekend:
		day.Classification = TypeAdjustedWorkday
		day.Label = ov.Name
	case ov == nil && weekend:
		day.IsOffDay = true
		day.Classification = TypeWeekendRest
	}
	return day
}
