package incident

import (
	"regexp"
	"strings"
	"time"
)

// Record is one candidate incident as extracted from a crime log page,
// before reference resolution. All fields are free text as scraped.
type Record struct {
	number        string
	campusCode    string
	campusLabel   string
	location      string
	nature        string
	reported      string
	occurredStart string
	occurredEnd   string
	offenses      []string
}

// NewRecord creates a parsed page record.
func NewRecord(number, campusCode, campusLabel string) Record {
	return Record{
		number:      strings.TrimSpace(number),
		campusCode:  campusCode,
		campusLabel: campusLabel,
	}
}

// Number returns the incident number as scraped.
func (r Record) Number() string { return r.number }

// CampusCode returns the campus code, usually extracted from the incident
// number prefix.
func (r Record) CampusCode() string { return r.campusCode }

// CampusLabel returns the campus display name the page was fetched for.
func (r Record) CampusLabel() string { return r.campusLabel }

// Location returns the free-text location, or empty.
func (r Record) Location() string { return r.location }

// Nature returns the nature-of-incident text, or empty.
func (r Record) Nature() string { return r.nature }

// Reported returns the reported timestamp text.
func (r Record) Reported() string { return r.reported }

// OccurredStart returns the start of the occurred range text, or empty.
func (r Record) OccurredStart() string { return r.occurredStart }

// OccurredEnd returns the end of the occurred range text, or empty.
func (r Record) OccurredEnd() string { return r.occurredEnd }

// Offenses returns the offense description lines.
func (r Record) Offenses() []string {
	out := make([]string, len(r.offenses))
	copy(out, r.offenses)
	return out
}

// WithLocation returns a copy with the given location text.
func (r Record) WithLocation(location string) Record {
	r.location = strings.TrimSpace(location)
	return r
}

// WithNature returns a copy with the given nature text.
func (r Record) WithNature(nature string) Record {
	r.nature = strings.TrimSpace(nature)
	return r
}

// WithReported returns a copy with the given reported timestamp text.
func (r Record) WithReported(reported string) Record {
	r.reported = strings.TrimSpace(reported)
	return r
}

// WithOccurred returns a copy with the given occurred range text.
func (r Record) WithOccurred(start, end string) Record {
	r.occurredStart = strings.TrimSpace(start)
	r.occurredEnd = strings.TrimSpace(end)
	return r
}

// WithOffenses returns a copy with the given offense lines.
func (r Record) WithOffenses(offenses []string) Record {
	r.offenses = offenses
	return r
}

// IsJunk reports whether the record carries a sentinel incident number and
// should be silently excluded rather than stored or raised as an error.
func (r Record) IsJunk() bool {
	return !ValidIncidentNumber(r.number)
}

// campusCodePattern extracts the campus code from an incident number prefix,
// e.g. "24UP1234567" yields "UP". Alternate codes run up to four letters
// ("PSHI").
var campusCodePattern = regexp.MustCompile(`^\d{2}([A-Z]{2,4})`)

// CampusCodeFromNumber extracts the campus code embedded in an incident
// number, or returns empty if the number carries none.
func CampusCodeFromNumber(number string) string {
	m := campusCodePattern.FindStringSubmatch(strings.TrimSpace(number))
	if m == nil {
		return ""
	}
	return m[1]
}

var digitPattern = regexp.MustCompile(`\d`)

// ValidIncidentNumber reports whether an incident number is well formed.
// The source occasionally publishes placeholder rows whose incident number
// is empty or a lone punctuation character (":" has been observed); those
// are junk, not parse errors. A real number is at least two characters and
// contains at least one digit.
func ValidIncidentNumber(number string) bool {
	trimmed := strings.TrimSpace(number)
	if len(trimmed) < 2 {
		return false
	}
	return digitPattern.MatchString(trimmed)
}

// Reported timestamp layouts observed on the daily log pages.
var reportedLayouts = []string{
	"January 2, 2006 - 3:04pm",
	"January 2, 2006 - 3:04 pm",
	"01/02/2006 - 3:04pm",
	"01/02/2006 3:04 PM",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
}

// ParseReportedTime parses a reported/occurred timestamp as published on the
// log pages. The site has changed formats over the years, so several layouts
// are attempted in order.
func ParseReportedTime(s string) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	var firstErr error
	for _, layout := range reportedLayouts {
		t, err := time.Parse(layout, trimmed)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// SplitOccurredRange splits an occurred field that may be a single timestamp
// or a "start to end" range.
func SplitOccurredRange(s string) (start, end string) {
	parts := strings.SplitN(s, " to ", 2)
	start = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		end = strings.TrimSpace(parts[1])
	}
	return start, end
}
