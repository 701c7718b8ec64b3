package types

import "time"

// HTTPConfig holds shared HTTP settings used when fetching site assets.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero means no timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "labsite/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// SearchConfig holds settings for the site search engine.
type SearchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the root of the published site; the index is fetched from
	// BaseURL + "/searchindex.json".
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// IndexFile is a local searchindex.json, used instead of BaseURL when set.
	IndexFile string `json:"index_file" yaml:"index_file" mapstructure:"index_file"`

	// MaxResults caps the number of results (0 = unlimited).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// CompatHighlight selects sequential per-word highlighting, which wraps
	// overlapping matches more than once like the original site script.
	CompatHighlight bool `json:"compat_highlight" yaml:"compat_highlight" mapstructure:"compat_highlight"`

	// TimeZone is the IANA zone used to display numeric record dates
	// (empty = local time).
	TimeZone string `json:"time_zone" yaml:"time_zone" mapstructure:"time_zone"`
}

// ServeConfig holds settings for the HTTP server.
type ServeConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// RateLimit is the sustained number of /api/search requests per second
	// (0 disables limiting).
	RateLimit float64 `json:"rate_limit" yaml:"rate_limit" mapstructure:"rate_limit"`

	// RateBurst is the limiter burst size (default 2x RateLimit).
	RateBurst int `json:"rate_burst" yaml:"rate_burst" mapstructure:"rate_burst"`

	// CacheSize is the number of rendered queries kept in memory (default 256).
	CacheSize int `json:"cache_size" yaml:"cache_size" mapstructure:"cache_size"`

	// Watch reloads a local IndexFile whenever it changes on disk.
	Watch bool `json:"watch" yaml:"watch" mapstructure:"watch"`

	// CORSOrigin is sent as Access-Control-Allow-Origin on API responses
	// (empty = no CORS headers).
	CORSOrigin string `json:"cors_origin" yaml:"cors_origin" mapstructure:"cors_origin"`
}

// PapersConfig holds settings for the paper list.
type PapersConfig struct {
	// DataFile is the YAML paper list (default "data/papers.yaml").
	DataFile string `json:"data_file" yaml:"data_file" mapstructure:"data_file"`
}

// ResearchConfig holds settings for the research page.
type ResearchConfig struct {
	// TabsFile is the YAML list of research tabs (default "data/research.yaml").
	TabsFile string `json:"tabs_file" yaml:"tabs_file" mapstructure:"tabs_file"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is the minimum level: debug, info, warn or error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is "text" or "json".
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// SiteConfig groups all component configurations.
type SiteConfig struct {
	Search   SearchConfig   `json:"search" yaml:"search" mapstructure:"search"`
	Serve    ServeConfig    `json:"serve" yaml:"serve" mapstructure:"serve"`
	Papers   PapersConfig   `json:"papers" yaml:"papers" mapstructure:"papers"`
	Research ResearchConfig `json:"research" yaml:"research" mapstructure:"research"`
	Log      LogConfig      `json:"log" yaml:"log" mapstructure:"log"`
}
