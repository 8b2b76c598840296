package incident

import (
	"testing"
	"time"
)

func TestValidIncidentNumber(t *testing.T) {
	cases := []struct {
		number string
		want   bool
	}{
		{"24UP1234567", true},
		{"02-2019-00123", true},
		{":", false},
		{"", false},
		{"  ", false},
		{"-", false},
		{"X1", true},
		{"AB", false},
		{" 23HS0004521 ", true},
	}

	for _, tc := range cases {
		if got := ValidIncidentNumber(tc.number); got != tc.want {
			t.Errorf("ValidIncidentNumber(%q) = %v, want %v", tc.number, got, tc.want)
		}
	}
}

func TestCampusCodeFromNumber(t *testing.T) {
	cases := []struct {
		number string
		want   string
	}{
		{"24UP1234567", "UP"},
		{"23HS0004521", "HS"},
		{"22PSHI00012", "PSHI"},
		{"21BKT004", "BKT"},
		{"no-code-here", ""},
		{"1234567", ""},
		{"", ""},
	}

	for _, tc := range cases {
		if got := CampusCodeFromNumber(tc.number); got != tc.want {
			t.Errorf("CampusCodeFromNumber(%q) = %q, want %q", tc.number, got, tc.want)
		}
	}
}

func TestRecord_IsJunk(t *testing.T) {
	junk := NewRecord(":", "", "University Park")
	if !junk.IsJunk() {
		t.Error("colon-only incident number should be junk")
	}

	real := NewRecord("24UP1234567", "UP", "University Park")
	if real.IsJunk() {
		t.Error("well-formed incident number should not be junk")
	}
}

func TestParseReportedTime(t *testing.T) {
	got, err := ParseReportedTime("January 2, 2024 - 3:15pm")
	if err != nil {
		t.Fatalf("ParseReportedTime: %v", err)
	}
	want := time.Date(2024, time.January, 2, 15, 15, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if _, err := ParseReportedTime("not a timestamp"); err == nil {
		t.Error("expected error for unparseable timestamp")
	}
}

func TestSplitOccurredRange(t *testing.T) {
	start, end := SplitOccurredRange("January 1, 2024 - 9:00am to January 1, 2024 - 11:30am")
	if start != "January 1, 2024 - 9:00am" {
		t.Errorf("start = %q", start)
	}
	if end != "January 1, 2024 - 11:30am" {
		t.Errorf("end = %q", end)
	}

	start, end = SplitOccurredRange("January 1, 2024 - 9:00am")
	if start != "January 1, 2024 - 9:00am" || end != "" {
		t.Errorf("single timestamp split wrong: %q / %q", start, end)
	}
}

func TestRecordBuilders(t *testing.T) {
	rec := NewRecord(" 24UP0001 ", "UP", "University Park").
		WithLocation(" Beaver Stadium ").
		WithNature("Theft").
		WithOffenses([]string{"Theft of property"})

	if rec.Number() != "24UP0001" {
		t.Errorf("Number() = %q, trimming failed", rec.Number())
	}
	if rec.Location() != "Beaver Stadium" {
		t.Errorf("Location() = %q", rec.Location())
	}
	if len(rec.Offenses()) != 1 {
		t.Fatalf("Offenses() len = %d", len(rec.Offenses()))
	}

	// Returned slice is a copy.
	rec.Offenses()[0] = "mutated"
	if rec.Offenses()[0] != "Theft of property" {
		t.Error("Offenses() should return a defensive copy")
	}
}
