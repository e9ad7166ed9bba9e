package config

import (
	"fmt"
	"time"
)

// SiteConfig locates the telescope for visibility and solar calculations.
type SiteConfig struct {
	// Name identifies the site in logs and notifications.
	Name string `json:"name"`
	// LatitudeDeg is the geodetic latitude, positive north.
	LatitudeDeg float64 `json:"latitude_deg"`
	// LongitudeDeg is the longitude, positive east.
	LongitudeDeg float64 `json:"longitude_deg"`
	// Timezone is the IANA zone used for day-altitude sweeps.
	Timezone string `json:"timezone"`
	// DishID is the default dish identifier used when a submission does not
	// name one.
	DishID string `json:"dish_id"`
}

// SetDefaults applies sane defaults.
func (c *SiteConfig) SetDefaults() {
	if c.Name == "" {
		c.Name = "alston"
	}
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
	if c.DishID == "" {
		c.DishID = "DSH-001"
	}
}

// Validate checks the coordinate ranges.
func (c SiteConfig) Validate() error {
	if c.LatitudeDeg < -90 || c.LatitudeDeg > 90 {
		return fmt.Errorf("site: latitude %v out of range [-90, 90]", c.LatitudeDeg)
	}
	if c.LongitudeDeg < -180 || c.LongitudeDeg > 180 {
		return fmt.Errorf("site: longitude %v out of range [-180, 180]", c.LongitudeDeg)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("site: unknown timezone %q", c.Timezone)
	}
	return nil
}

// Location returns the parsed timezone.
func (c SiteConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
