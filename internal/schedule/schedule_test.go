package schedule

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	t.Run("empty map disables sharding", func(t *testing.T) {
		s, err := Parse(nil)
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if s.Enabled() {
			t.Error("empty shard should be disabled")
		}
		if !s.Contains("ANYTHING", time.Sunday) {
			t.Error("disabled shard contains everything")
		}
	})

	t.Run("unknown weekday", func(t *testing.T) {
		if _, err := Parse(map[string]string{"smonday": "A-D"}); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("bad range", func(t *testing.T) {
		for _, spec := range []string{"D-A", "ABC", ""} {
			if _, err := Parse(map[string]string{"monday": spec}); err == nil {
				t.Errorf("spec %q should not parse", spec)
			}
		}
	})
}

func TestContains(t *testing.T) {
	s, err := Parse(map[string]string{
		"monday":  "A-D",
		"tuesday": "E-H,0-9",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	cases := []struct {
		symbol string
		day    time.Weekday
		want   bool
	}{
		{"ABC", time.Monday, true},
		{"abc", time.Monday, true}, // case-insensitive
		{"DLF", time.Monday, true},
		{"EICHER", time.Monday, false},
		{"EICHER", time.Tuesday, true},
		{"20MICRONS", time.Tuesday, true},
		{"20MICRONS", time.Monday, false},
		{"ABC", time.Wednesday, false}, // day with no bucket
		{"", time.Monday, false},
	}
	for _, c := range cases {
		if got := s.Contains(c.symbol, c.day); got != c.want {
			t.Errorf("Contains(%q, %v) = %v, want %v", c.symbol, c.day, got, c.want)
		}
	}
}

func TestFilter(t *testing.T) {
	s, err := Parse(map[string]string{"friday": "S-T"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	got := s.Filter([]string{"SBIN", "TCS", "INFY", "TATASTEEL"}, time.Friday)
	if len(got) != 3 {
		t.Errorf("Filter = %v, want [SBIN TCS TATASTEEL]", got)
	}

	if got := s.Filter([]string{"SBIN", "INFY"}, time.Monday); len(got) != 0 {
		t.Errorf("Monday has no bucket, got %v", got)
	}
}
