package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultTimezone = "Asia/Kolkata"

	DefaultSecurityDataDir = "SecurityWiseData"
	DefaultBhavDataDir     = "BhavData"
	DefaultSymbolChange    = "symbolchange.csv"
	DefaultFailureLog      = "log.txt"

	DefaultAPIURL           = "https://www.nseindia.com/api"
	DefaultArchiveURL       = "https://nsearchives.nseindia.com"
	DefaultTimeout          = 10 * time.Second
	DefaultMaxAttempts      = 10
	DefaultRetryDelay       = 2 * time.Second
	DefaultRequestsPerSec   = 1.0
	DefaultBurst            = 1
	DefaultBreakerThreshold = 20
)

// DefaultBuckets spreads the symbol universe across the week for the gap
// filler. An explicit empty `buckets: {}` in the config disables sharding.
var DefaultBuckets = map[string]string{
	"sunday":    "0-9",
	"monday":    "A-C",
	"tuesday":   "D-H",
	"wednesday": "I-M",
	"thursday":  "N-R",
	"friday":    "S-T",
	"saturday":  "U-Z",
}

func (c *Config) applyDefaults() {
	if c.Timezone == "" {
		c.Timezone = DefaultTimezone
	}

	// Dirs defaults
	if c.Dirs.SecurityData == "" {
		c.Dirs.SecurityData = DefaultSecurityDataDir
	}
	if c.Dirs.BhavData == "" {
		c.Dirs.BhavData = DefaultBhavDataDir
	}
	if c.Dirs.SymbolChange == "" {
		c.Dirs.SymbolChange = DefaultSymbolChange
	}
	if c.Dirs.FailureLog == "" {
		c.Dirs.FailureLog = DefaultFailureLog
	}

	// Client defaults
	if c.NSE.APIURL == "" {
		c.NSE.APIURL = DefaultAPIURL
	}
	if c.NSE.ArchiveURL == "" {
		c.NSE.ArchiveURL = DefaultArchiveURL
	}
	if c.NSE.Timeout == 0 {
		c.NSE.Timeout = Duration(DefaultTimeout)
	}
	if c.NSE.MaxAttempts == 0 {
		c.NSE.MaxAttempts = DefaultMaxAttempts
	}
	if c.NSE.RetryDelay == 0 {
		c.NSE.RetryDelay = Duration(DefaultRetryDelay)
	}
	if c.NSE.RequestsPerSec == 0 {
		c.NSE.RequestsPerSec = DefaultRequestsPerSec
	}
	if c.NSE.Burst == 0 {
		c.NSE.Burst = DefaultBurst
	}
	if c.NSE.BreakerThreshold == 0 {
		c.NSE.BreakerThreshold = DefaultBreakerThreshold
	}

	// Pool.Workers zero is meaningful (GOMAXPROCS); no default applied.

	// A nil map means the schedule key was absent entirely.
	if c.Schedule.Buckets == nil {
		c.Schedule.Buckets = DefaultBuckets
	}
}
