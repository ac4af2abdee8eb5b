package model

import (
	"testing"
	"time"
)

// TestParseDate verifies that every accepted layout canonicalizes to the same day.
func TestParseDate(t *testing.T) {
	want := NewDate(2020, time.March, 5)

	cases := []string{
		"05-03-2020",
		"2020-03-05",
		"2020/03/05",
		"05/03/2020",
		"05-Mar-2020",
		"  05-03-2020  ",
	}
	for _, in := range cases {
		t.Run(in, func(t *testing.T) {
			d, err := ParseDate(in)
			if err != nil {
				t.Fatalf("ParseDate(%q) error: %v", in, err)
			}
			if !d.Equal(want) {
				t.Errorf("ParseDate(%q) = %v, want %v", in, d, want)
			}
			if d.String() != "05-03-2020" {
				t.Errorf("String() = %q, want %q", d.String(), "05-03-2020")
			}
		})
	}

	t.Run("round trip", func(t *testing.T) {
		// Normalizing then re-parsing yields the same calendar day.
		for _, in := range cases {
			d := MustParseDate(in)
			again, err := ParseDate(d.String())
			if err != nil {
				t.Fatalf("re-parse %q: %v", d.String(), err)
			}
			if !again.Equal(d) {
				t.Errorf("round trip of %q changed the day: %v != %v", in, again, d)
			}
		}
	})

	t.Run("invalid", func(t *testing.T) {
		d, err := ParseDate("not-a-date")
		if err == nil {
			t.Fatal("expected error")
		}
		if !d.IsZero() {
			t.Errorf("invalid date should be the zero marker, got %v", d)
		}
		if d.String() != "" {
			t.Errorf("zero marker should render empty, got %q", d.String())
		}
	})
}

func TestDateForms(t *testing.T) {
	d := NewDate(2024, time.January, 2)

	if got := d.Compact(); got != "20240102" {
		t.Errorf("Compact() = %q, want %q", got, "20240102")
	}
	if got := d.Provider(); got != "02-Jan-2024" {
		t.Errorf("Provider() = %q, want %q", got, "02-Jan-2024")
	}
	if got := d.AddDays(-1).String(); got != "01-01-2024" {
		t.Errorf("AddDays(-1) = %q, want %q", got, "01-01-2024")
	}
	if !d.AddDays(-1).Before(d) {
		t.Error("yesterday should be before today")
	}
}

func TestDateRangeYears(t *testing.T) {
	r := DateRange{From: NewDate(1996, time.January, 1), To: NewDate(1999, time.December, 31)}
	years := r.Years()
	if len(years) != 4 || years[0] != 1996 || years[3] != 1999 {
		t.Errorf("Years() = %v, want [1996 1997 1998 1999]", years)
	}

	if got := (DateRange{}).Years(); got != nil {
		t.Errorf("zero range should have no years, got %v", got)
	}

	back := DateRange{From: NewDate(2000, time.June, 1), To: NewDate(1999, time.June, 1)}
	if got := back.Years(); got != nil {
		t.Errorf("backwards range should have no years, got %v", got)
	}
}
