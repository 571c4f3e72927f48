package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Limits  LimitsConfig  `yaml:"limits"`
	Routes  []RouteConfig `yaml:"routes"`
	Backoff BackoffConfig `yaml:"backoff"`
	Logging LogConfig     `yaml:"logging"`
}

// ServerConfig contains settings for the connection loop
type ServerConfig struct {
	ReadBufferSize int `yaml:"read_buffer_size"` // size of the single-receive buffer in bytes
}

// LimitsConfig contains the request parser truncation limits
type LimitsConfig struct {
	MaxMethodLen int `yaml:"max_method_len"` // maximum length of the request method
	MaxPathLen   int `yaml:"max_path_len"`   // maximum length of the request path
	MaxBodyLen   int `yaml:"max_body_len"`   // maximum number of body bytes retained
}

// RouteConfig maps a URL path to a file on disk
type RouteConfig struct {
	Path string `yaml:"path"`
	File string `yaml:"file"`
}

// BackoffConfig contains settings for the accept-failure backoff
type BackoffConfig struct {
	InitialDelay  int     `yaml:"initial_delay"`  // in milliseconds
	MaxDelay      int     `yaml:"max_delay"`      // in milliseconds
	BackoffFactor float64 `yaml:"backoff_factor"`
	JitterFactor  float64 `yaml:"jitter_factor"`
}

// LogConfig contains settings for logging
type LogConfig struct {
	LogToFile   bool   `yaml:"log_to_file"`
	LogFilePath string `yaml:"log_file_path"`
	MaxSize     int    `yaml:"max_size"`    // maximum size in megabytes
	MaxBackups  int    `yaml:"max_backups"` // maximum number of old log files to retain
	MaxAge      int    `yaml:"max_age"`     // maximum number of days to retain old log files
	Compress    bool   `yaml:"compress"`    // compress determines if the rotated log files should be compressed
}

// LoadDefault returns a configuration with default values
func LoadDefault() *Config {
	return &Config{
		Server: ServerConfig{
			ReadBufferSize: 30000,
		},
		Limits: LimitsConfig{
			MaxMethodLen: 9,
			MaxPathLen:   99,
			MaxBodyLen:   4095,
		},
		Routes: []RouteConfig{
			{Path: "/", File: "./public_html/index.html"},
			{Path: "/test", File: "./public_html/test.html"},
		},
		Backoff: BackoffConfig{
			InitialDelay:  100,
			MaxDelay:      5000,
			BackoffFactor: 2.0,
			JitterFactor:  0.2,
		},
		Logging: LogConfig{
			LogToFile:   false,
			LogFilePath: "tinyhttpd.log",
			MaxSize:     10,
			MaxBackups:  3,
			MaxAge:      28,
			Compress:    true,
		},
	}
}

// Default returns a configuration with default values
// This is an alias for LoadDefault for backward compatibility
func Default() *Config {
	return LoadDefault()
}

// Load reads configuration from a file and merges it with default values
func Load(configPath string) (*Config, error) {
	// Start with default configuration
	cfg := LoadDefault()

	// Read configuration file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Create a temporary config to parse the file
	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Merge server configuration
	if fileCfg.Server.ReadBufferSize > 0 {
		cfg.Server.ReadBufferSize = fileCfg.Server.ReadBufferSize
	}

	// Merge parser limits
	if fileCfg.Limits.MaxMethodLen > 0 {
		cfg.Limits.MaxMethodLen = fileCfg.Limits.MaxMethodLen
	}
	if fileCfg.Limits.MaxPathLen > 0 {
		cfg.Limits.MaxPathLen = fileCfg.Limits.MaxPathLen
	}
	if fileCfg.Limits.MaxBodyLen > 0 {
		cfg.Limits.MaxBodyLen = fileCfg.Limits.MaxBodyLen
	}

	// A route table in the file replaces the default table wholesale; merging
	// individual entries would make the first-match scan order ambiguous
	if len(fileCfg.Routes) > 0 {
		cfg.Routes = fileCfg.Routes
	}

	// Merge backoff configuration
	if fileCfg.Backoff.InitialDelay > 0 {
		cfg.Backoff.InitialDelay = fileCfg.Backoff.InitialDelay
	}
	if fileCfg.Backoff.MaxDelay > 0 {
		cfg.Backoff.MaxDelay = fileCfg.Backoff.MaxDelay
	}
	if fileCfg.Backoff.BackoffFactor > 0 {
		cfg.Backoff.BackoffFactor = fileCfg.Backoff.BackoffFactor
	}
	if fileCfg.Backoff.JitterFactor > 0 {
		cfg.Backoff.JitterFactor = fileCfg.Backoff.JitterFactor
	}

	// Merge logging configuration
	if fileCfg.Logging.LogToFile {
		cfg.Logging.LogToFile = fileCfg.Logging.LogToFile
	}
	if fileCfg.Logging.LogFilePath != "" {
		cfg.Logging.LogFilePath = fileCfg.Logging.LogFilePath
	}
	if fileCfg.Logging.MaxSize > 0 {
		cfg.Logging.MaxSize = fileCfg.Logging.MaxSize
	}
	if fileCfg.Logging.MaxBackups > 0 {
		cfg.Logging.MaxBackups = fileCfg.Logging.MaxBackups
	}
	if fileCfg.Logging.MaxAge > 0 {
		cfg.Logging.MaxAge = fileCfg.Logging.MaxAge
	}
	if fileCfg.Logging.Compress {
		cfg.Logging.Compress = fileCfg.Logging.Compress
	}

	return cfg, nil
}

// LoadOrDefault attempts to load configuration from a file
// If the file doesn't exist or can't be parsed, it returns default configuration
func LoadOrDefault(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		// Log the error but continue with defaults
		fmt.Fprintf(os.Stderr, "Warning: Failed to load config from %s: %v\n", configPath, err)
		fmt.Fprintf(os.Stderr, "Using default configuration\n")
		cfg = LoadDefault()
	}
	return cfg
}
