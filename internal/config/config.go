package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"locator/internal/eventbus"
)

// Config represents the application configuration
type Config struct {
	Version     int               `toml:"version" mapstructure:"version"`
	Backend     BackendConfig     `toml:"backend" mapstructure:"backend"`
	Cache       CacheConfig       `toml:"cache" mapstructure:"cache"`
	Locator     LocatorSettings   `toml:"locator" mapstructure:"locator"`
	Geolocation GeolocationConfig `toml:"geolocation" mapstructure:"geolocation"`
}

// BackendConfig selects and configures the search backend
type BackendConfig struct {
	Kind         string        `toml:"kind" mapstructure:"kind"` // "memory" or "meilisearch"
	DatasetPath  string        `toml:"dataset_path" mapstructure:"dataset_path"`
	MeiliURL     string        `toml:"meili_url" mapstructure:"meili_url"`
	MeiliKey     string        `toml:"meili_key" mapstructure:"meili_key"`
	Index        string        `toml:"index" mapstructure:"index"`
	QueryTimeout time.Duration `toml:"query_timeout" mapstructure:"query_timeout"`
	RateLimit    float64       `toml:"rate_limit" mapstructure:"rate_limit"` // queries per second, 0 disables
	RateBurst    int           `toml:"rate_burst" mapstructure:"rate_burst"`
}

// CacheConfig configures the optional Redis result cache
type CacheConfig struct {
	RedisURL string        `toml:"redis_url" mapstructure:"redis_url"` // empty disables caching
	TTL      time.Duration `toml:"ttl" mapstructure:"ttl"`
}

// LocatorSettings holds the locator's presentation and result-count policy
type LocatorSettings struct {
	Title                 string  `toml:"title" mapstructure:"title"`
	Subtitle              string  `toml:"subtitle" mapstructure:"subtitle"`
	Placeholder           string  `toml:"placeholder" mapstructure:"placeholder"`
	DisplayAllOnNoResults bool    `toml:"display_all_on_no_results" mapstructure:"display_all_on_no_results"`
	AllResultsOnLoad      bool    `toml:"all_results_on_load" mapstructure:"all_results_on_load"`
	VerticalLimit         int     `toml:"vertical_limit" mapstructure:"vertical_limit"`
	AllResultsLimit       int     `toml:"all_results_limit" mapstructure:"all_results_limit"`
	GeolocateRadius       float64 `toml:"geolocate_radius" mapstructure:"geolocate_radius"` // meters
}

// GeolocationConfig is the position reported by the geolocation button
type GeolocationConfig struct {
	Latitude  float64 `toml:"latitude" mapstructure:"latitude"`
	Longitude float64 `toml:"longitude" mapstructure:"longitude"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// EnvPrefix is the prefix for environment overrides, e.g. LOCATOR_BACKEND_KIND
const EnvPrefix = "LOCATOR"

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a new config service
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "locator", "config.toml"),
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	return cs
}

// Load loads the configuration from the default location.
// A missing file yields the defaults with env overrides applied.
func (cs *configService) Load() (*Config, error) {
	cfg, err := load(cs.filePath, true)
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}
	return cfg, nil
}

// Save saves the configuration to the default location
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}
	return load(path, false)
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func load(path string, optional bool) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	v.SetConfigFile(path)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_, statErr := os.Stat(path)
	if !optional || statErr == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.normalize()
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("version", d.Version)
	v.SetDefault("backend.kind", d.Backend.Kind)
	v.SetDefault("backend.dataset_path", d.Backend.DatasetPath)
	v.SetDefault("backend.meili_url", d.Backend.MeiliURL)
	v.SetDefault("backend.meili_key", d.Backend.MeiliKey)
	v.SetDefault("backend.index", d.Backend.Index)
	v.SetDefault("backend.query_timeout", d.Backend.QueryTimeout)
	v.SetDefault("backend.rate_limit", d.Backend.RateLimit)
	v.SetDefault("backend.rate_burst", d.Backend.RateBurst)
	v.SetDefault("cache.redis_url", d.Cache.RedisURL)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("locator.title", d.Locator.Title)
	v.SetDefault("locator.subtitle", d.Locator.Subtitle)
	v.SetDefault("locator.placeholder", d.Locator.Placeholder)
	v.SetDefault("locator.display_all_on_no_results", d.Locator.DisplayAllOnNoResults)
	v.SetDefault("locator.all_results_on_load", d.Locator.AllResultsOnLoad)
	v.SetDefault("locator.vertical_limit", d.Locator.VerticalLimit)
	v.SetDefault("locator.all_results_limit", d.Locator.AllResultsLimit)
	v.SetDefault("locator.geolocate_radius", d.Locator.GeolocateRadius)
	v.SetDefault("geolocation.latitude", d.Geolocation.Latitude)
	v.SetDefault("geolocation.longitude", d.Geolocation.Longitude)
}

// normalize replaces out-of-range values with defaults
func (c *Config) normalize() {
	d := DefaultConfig()
	if c.Locator.VerticalLimit <= 0 {
		c.Locator.VerticalLimit = d.Locator.VerticalLimit
	}
	if c.Locator.AllResultsLimit < c.Locator.VerticalLimit {
		c.Locator.AllResultsLimit = c.Locator.VerticalLimit
	}
	if c.Locator.GeolocateRadius <= 0 {
		c.Locator.GeolocateRadius = d.Locator.GeolocateRadius
	}
	if c.Backend.QueryTimeout <= 0 {
		c.Backend.QueryTimeout = d.Backend.QueryTimeout
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = d.Cache.TTL
	}
	if c.Backend.Kind == "" {
		c.Backend.Kind = d.Backend.Kind
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Backend: BackendConfig{
			Kind:         "memory",
			DatasetPath:  "data/locations.yaml",
			MeiliURL:     "http://localhost:7700",
			Index:        "locations",
			QueryTimeout: 10 * time.Second,
			RateBurst:    1,
		},
		Cache: CacheConfig{
			TTL: 5 * time.Minute,
		},
		Locator: LocatorSettings{
			Title:           "Find a location",
			Subtitle:        "Search by name, address or area",
			Placeholder:     "Search locations",
			VerticalLimit:   20,
			AllResultsLimit: 50,
			GeolocateRadius: 50000,
		},
		Geolocation: GeolocationConfig{
			Latitude:  35.6812,
			Longitude: 139.7671,
		},
	}
}
