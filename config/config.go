// Package config loads and validates the engine configuration from a YAML or
// JSON file with optional environment overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/rbrederode/odt/core/metrics"
	"github.com/rbrederode/odt/infra/catalog"
	"github.com/rbrederode/odt/infra/mqtt"
	"github.com/rbrederode/odt/infra/webhook"
)

type Config struct {
	Site        SiteConfig        `json:"site"`
	Scheduling  SchedulingConfig  `json:"scheduling"`
	Observation ObservationConfig `json:"observation"`
	Logging     LoggingConfig     `json:"logging"`
	Webhook     webhook.Config    `json:"webhook"`
	Catalog     catalog.Config    `json:"catalog"`
	Metrics     metrics.Config    `json:"metrics"`
	MQTT        mqtt.Config       `json:"mqtt"`
}

// Load reads the configuration file, applies ODT_* environment overrides
// (ODT_SITE__LATITUDE_DEG maps to site.latitude_deg), fills defaults and
// validates every section.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("ODT_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "odt_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults fills every section's unset fields.
func (c *Config) SetDefaults() {
	c.Site.SetDefaults()
	c.Scheduling.SetDefaults()
	c.Observation.SetDefaults()
	c.Logging.SetDefaults()
	c.Webhook.SetDefaults()
	c.Catalog.SetDefaults()
	c.Metrics.SetDefaults()
	c.MQTT.SetDefaults()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Site.Validate(); err != nil {
		return err
	}
	if err := c.Scheduling.Validate(); err != nil {
		return err
	}
	if err := c.Observation.Validate(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if err := c.Webhook.Validate(); err != nil {
		return err
	}
	if err := c.Metrics.Validate(); err != nil {
		return err
	}
	return c.MQTT.Validate()
}
