// Package schedule partitions the security universe across days of the week.
//
// Gap filling costs one full-history fetch per deficient security, which is
// far more than the provider tolerates in one day for a large store. The
// shard assigns each security, by the first character of its symbol, to a
// weekday bucket; a scheduled run then only touches that day's bucket. This
// is deployment policy, configured independently of the engine.
package schedule

import (
	"fmt"
	"strings"
	"time"
)

// charRange is an inclusive span of first characters, e.g. A-D.
type charRange struct {
	lo, hi byte
}

func (r charRange) contains(c byte) bool { return c >= r.lo && c <= r.hi }

// Shard maps weekdays to the symbol buckets they process. The zero Shard is
// disabled: every symbol belongs to every day.
type Shard struct {
	buckets map[time.Weekday][]charRange
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Parse builds a Shard from a weekday-to-bucket-spec map, e.g.
// {"monday": "A-D", "tuesday": "E-H,0-9"}. A bucket spec is a comma-separated
// list of single characters or character ranges. An empty map disables
// sharding.
func Parse(buckets map[string]string) (*Shard, error) {
	s := &Shard{}
	if len(buckets) == 0 {
		return s, nil
	}
	s.buckets = make(map[time.Weekday][]charRange, len(buckets))
	for day, spec := range buckets {
		wd, ok := weekdays[strings.ToLower(strings.TrimSpace(day))]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", day)
		}
		ranges, err := parseSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("bucket for %s: %w", day, err)
		}
		s.buckets[wd] = ranges
	}
	return s, nil
}

func parseSpec(spec string) ([]charRange, error) {
	var ranges []charRange
	for _, part := range strings.Split(spec, ",") {
		part = strings.ToUpper(strings.TrimSpace(part))
		switch {
		case len(part) == 1:
			ranges = append(ranges, charRange{part[0], part[0]})
		case len(part) == 3 && part[1] == '-' && part[0] <= part[2]:
			ranges = append(ranges, charRange{part[0], part[2]})
		default:
			return nil, fmt.Errorf("bad bucket range %q", part)
		}
	}
	if len(ranges) == 0 {
		return nil, fmt.Errorf("empty bucket spec")
	}
	return ranges, nil
}

// Enabled reports whether the shard partitions anything.
func (s *Shard) Enabled() bool { return len(s.buckets) > 0 }

// Contains reports whether symbol belongs to day's bucket. A disabled shard
// contains every symbol every day.
func (s *Shard) Contains(symbol string, day time.Weekday) bool {
	if !s.Enabled() {
		return true
	}
	if symbol == "" {
		return false
	}
	c := strings.ToUpper(symbol)[0]
	for _, r := range s.buckets[day] {
		if r.contains(c) {
			return true
		}
	}
	return false
}

// Filter keeps the symbols in day's bucket.
func (s *Shard) Filter(symbols []string, day time.Weekday) []string {
	if !s.Enabled() {
		return symbols
	}
	out := symbols[:0:0]
	for _, sym := range symbols {
		if s.Contains(sym, day) {
			out = append(out, sym)
		}
	}
	return out
}
