package holiday

import (
	"errors"
	"regexp"
	"strings"
)

// Classification values for a resolved calendar day.
const (
	TypeWorkingDay       = "working-day"
	TypeStatutoryHoliday = "statutory-holiday"
	TypeWeekendRest      = "weekend-rest"
	TypeAdjustedWorkday  = "adjusted-workday"
)

// NoLabel is the festival label for days without a named override.
const NoLabel = "none"

var (
	// ErrNotInitialized is returned when no index has ever been published.
	ErrNotInitialized = errors.New("calendar data not initialized")
	// ErrInvalidDate is returned for dates not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
	// ErrNotFound is returned for dates outside every covered year.
	ErrNotFound = errors.New("date outside the covered calendar span")
)

// OverrideDay is one explicit calendar exception from a yearly source
// file: a statutory rest day or a mandated make-up workday.
type OverrideDay struct {
	Date     string `json:"date"`
	Name     string `json:"name"`
	IsOffDay bool   `json:"isOffDay"`
}

// yearFile matches the upstream yearly JSON shape. Only the override
// entries matter here; the paper references are ignored.
type yearFile struct {
	Days []OverrideDay `json:"days"`
}

// CalendarDay is one fully resolved day of the dense index.
type CalendarDay struct {
	Date           string `json:"date"`
	Year           int    `json:"year"`
	Weekday        int    `json:"weekday"` // Monday=0 .. Sunday=6
	IsOffDay       bool   `json:"is_off_day"`
	Classification string `json:"type"`
	Label          string `json:"festival"`
}

// Index is an immutable date -> CalendarDay mapping covering Jan 1 to
// Dec 31 of every ingested year. Built once, never mutated.
type Index struct {
	days  map[string]CalendarDay
	years []int
}

// Lookup returns the resolved day for a YYYY-MM-DD date key.
func (idx *Index) Lookup(date string) (CalendarDay, bool) {
	d, ok := idx.days[date]
	return d, ok
}

// Len returns the number of days covered by the index.
func (idx *Index) Len() int { return len(idx.days) }

// Years returns the ingested years in ascending order.
func (idx *Index) Years() []int { return idx.years }

var yearFilePattern = regexp.MustCompile(`^\d{4}\.json$`)

// IsYearFile reports whether name looks like a yearly override file
// (YYYY.json), excluding AppleDouble and other hidden entries.
func IsYearFile(name string) bool {
	if strings.HasPrefix(name, "._") {
		return false
	}
	return yearFilePattern.MatchString(name)
}
