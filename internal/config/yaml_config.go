package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// YAMLConfig represents the structure of the config.yaml file: the
// hierarchical bits that are easier to manage in YAML than env vars.
type YAMLConfig struct {
	// MeetingDomains extends the built-in list of hostnames treated as
	// meeting links rather than physical places.
	MeetingDomains []string `yaml:"meeting_domains"`

	Nominatim NominatimConfig `yaml:"nominatim"`
}

// NominatimConfig controls the place autocomplete backend.
type NominatimConfig struct {
	// BaseURL of the Nominatim instance. Public Nominatim has strict rate
	// limits; production deployments should point this at their own.
	BaseURL string `yaml:"base_url"`
	// Limit is the maximum number of suggestions per query.
	Limit int `yaml:"limit"`
	// CacheTTLSeconds is how long lookups stay cached.
	CacheTTLSeconds int `yaml:"cache_ttl_seconds"`
}

// CacheTTL returns the lookup cache expiry as a duration.
func (n NominatimConfig) CacheTTL() time.Duration {
	return time.Duration(n.CacheTTLSeconds) * time.Second
}

// LoadYAMLConfig loads the YAML configuration file. Path is determined by
// the CONFIG_FILE env var, defaulting to "config.yaml". A missing file is
// not an error: defaults are returned.
func LoadYAMLConfig() (*YAMLConfig, error) {
	cfg := &YAMLConfig{}

	path := getEnv("CONFIG_FILE", "config.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	// Defaults
	if cfg.Nominatim.BaseURL == "" {
		cfg.Nominatim.BaseURL = "https://nominatim.openstreetmap.org"
	}
	if cfg.Nominatim.Limit <= 0 {
		cfg.Nominatim.Limit = 6
	}
	if cfg.Nominatim.CacheTTLSeconds <= 0 {
		cfg.Nominatim.CacheTTLSeconds = 600
	}

	return cfg, nil
}
