// Package config holds the run configuration. One immutable Config is built
// at startup and handed to each component; nothing reads configuration from
// process-wide state after that.
package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings like "500ms"
// or plain integers (nanoseconds).
type Duration time.Duration

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("bad duration %q: %w", s, err)
		}
		*d = Duration(v)
		return nil
	}
	var n int64
	if err := value.Decode(&n); err != nil {
		return fmt.Errorf("bad duration %q", value.Value)
	}
	*d = Duration(n)
	return nil
}

// Config is the root configuration shared by all binaries.
type Config struct {
	Timezone string         `yaml:"timezone"`
	Dirs     DirsConfig     `yaml:"dirs"`
	NSE      NSEConfig      `yaml:"nse"`
	Pool     PoolConfig     `yaml:"pool"`
	Schedule ScheduleConfig `yaml:"schedule"`
}

// DirsConfig locates the persisted state.
type DirsConfig struct {
	SecurityData string `yaml:"security_data"` // per-security ledger files
	BhavData     string `yaml:"bhav_data"`     // cached daily batch files
	SymbolChange string `yaml:"symbol_change"` // rename-history snapshot
	FailureLog   string `yaml:"failure_log"`   // append-only failure log
}

// NSEConfig tunes the exchange client. The retry and pacing knobs exist so a
// deployment can stay inside the provider's throttling tolerance.
type NSEConfig struct {
	APIURL           string   `yaml:"api_url"`
	ArchiveURL       string   `yaml:"archive_url"`
	Timeout          Duration `yaml:"timeout"`
	MaxAttempts      int      `yaml:"max_attempts"`
	RetryDelay       Duration `yaml:"retry_delay"`
	RequestsPerSec   float64  `yaml:"requests_per_sec"`
	Burst            int      `yaml:"burst"`
	BreakerThreshold uint32   `yaml:"breaker_threshold"`
}

// PoolConfig sizes the worker pool. Zero means one worker per available
// processing unit.
type PoolConfig struct {
	Workers int `yaml:"workers"`
}

// ScheduleConfig assigns symbol buckets to weekdays for the gap filler, e.g.
// {"monday": "A-D"}. Empty disables sharding.
type ScheduleConfig struct {
	Buckets map[string]string `yaml:"buckets"`
}

// Location resolves the configured timezone. Batch availability follows the
// exchange's calendar, so "today" must be the exchange's today.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}
