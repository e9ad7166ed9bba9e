package config

import (
	"fmt"
	"time"
)

// SchedulingConfig sizes the scheduling-block ledger.
type SchedulingConfig struct {
	// BlockMinutes is the discrete allocation unit of observing time.
	BlockMinutes int `json:"block_minutes"`
	// RetentionDays is how long expired blocks stay in the ledger.
	RetentionDays int `json:"retention_days"`
	// ExpiryIntervalMinutes is how often the retention pass runs in serve
	// mode.
	ExpiryIntervalMinutes int `json:"expiry_interval_minutes"`
}

// SetDefaults applies sane defaults.
func (c *SchedulingConfig) SetDefaults() {
	if c.BlockMinutes == 0 {
		c.BlockMinutes = 30
	}
	if c.RetentionDays == 0 {
		c.RetentionDays = 5
	}
	if c.ExpiryIntervalMinutes == 0 {
		c.ExpiryIntervalMinutes = 60
	}
}

// Validate checks mandatory fields.
func (c SchedulingConfig) Validate() error {
	if c.BlockMinutes <= 0 {
		return fmt.Errorf("scheduling: block_minutes %d not positive", c.BlockMinutes)
	}
	if c.RetentionDays <= 0 || c.RetentionDays > 365 {
		return fmt.Errorf("scheduling: retention_days %d out of range (0, 365]", c.RetentionDays)
	}
	if c.ExpiryIntervalMinutes <= 0 {
		return fmt.Errorf("scheduling: expiry_interval_minutes %d not positive", c.ExpiryIntervalMinutes)
	}
	return nil
}

// Retention returns the retention window as a duration.
func (c SchedulingConfig) Retention() time.Duration {
	return time.Duration(c.RetentionDays) * 24 * time.Hour
}

// ExpiryInterval returns the retention pass interval as a duration.
func (c SchedulingConfig) ExpiryInterval() time.Duration {
	return time.Duration(c.ExpiryIntervalMinutes) * time.Minute
}
