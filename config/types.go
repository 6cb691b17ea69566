package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Debug   DebugConfig   `mapstructure:"debug"`
	Logging LoggingConfig `mapstructure:"logging"`
	Output  OutputConfig  `mapstructure:"output"`

	// File is the config file that was read, empty when none was found
	File string `mapstructure:"-"`
}

// APIConfig holds stats API connection details
type APIConfig struct {
	Token     string        `mapstructure:"token"`
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// DebugConfig selects the client debug mode
type DebugConfig struct {
	Request  bool `mapstructure:"request"`
	Response bool `mapstructure:"response"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// OutputConfig controls how command results are printed
type OutputConfig struct {
	Format  string `mapstructure:"format"`
	Compact bool   `mapstructure:"compact"`
}
