package metrics

import "fmt"

// Config defines settings for metrics sinks.
type Config struct {
	PrometheusEnabled bool   `koanf:"prometheus_enabled" json:"prometheus_enabled"`
	PrometheusAddr    string `koanf:"prometheus_addr" json:"prometheus_addr"`
	InfluxEnabled     bool   `koanf:"influx_enabled" json:"influx_enabled"`
	InfluxURL         string `koanf:"influx_url" json:"influx_url"`
	InfluxToken       string `koanf:"influx_token" json:"influx_token"`
	InfluxOrg         string `koanf:"influx_org" json:"influx_org"`
	InfluxBucket      string `koanf:"influx_bucket" json:"influx_bucket"`
}

// SetDefaults fills unset fields with sensible values.
func (c *Config) SetDefaults() {
	if c.PrometheusAddr == "" {
		c.PrometheusAddr = ":9090"
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.InfluxEnabled && c.InfluxURL == "" {
		return fmt.Errorf("metrics: influx enabled without a url")
	}
	return nil
}
