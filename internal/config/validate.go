package config

import (
	"errors"
	"fmt"

	"github.com/rogeredwin/SecurityWiseNSEData/internal/schedule"
)

// Validate checks that all values are usable.
func (c *Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("timezone: %w", err)
	}

	if c.Dirs.SecurityData == "" {
		return errors.New("dirs.security_data is required")
	}
	if c.Dirs.BhavData == "" {
		return errors.New("dirs.bhav_data is required")
	}
	if c.Dirs.FailureLog == "" {
		return errors.New("dirs.failure_log is required")
	}

	if c.NSE.APIURL == "" || c.NSE.ArchiveURL == "" {
		return errors.New("nse.api_url and nse.archive_url are required")
	}
	if c.NSE.Timeout <= 0 {
		return errors.New("nse.timeout must be positive")
	}
	if c.NSE.MaxAttempts < 1 {
		return errors.New("nse.max_attempts must be >= 1")
	}
	if c.NSE.RetryDelay <= 0 {
		return errors.New("nse.retry_delay must be positive")
	}
	if c.NSE.RequestsPerSec <= 0 {
		return errors.New("nse.requests_per_sec must be positive")
	}
	if c.NSE.Burst < 1 {
		return errors.New("nse.burst must be >= 1")
	}

	if c.Pool.Workers < 0 {
		return fmt.Errorf("pool.workers must be >= 0, got %d", c.Pool.Workers)
	}

	if _, err := schedule.Parse(c.Schedule.Buckets); err != nil {
		return fmt.Errorf("schedule.buckets: %w", err)
	}

	return nil
}
