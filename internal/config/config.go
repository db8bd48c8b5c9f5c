// Package config provides centralized configuration management for surveyci.
// It loads configuration from environment variables with defaults, optionally
// merges a YAML sampling-frame file, and validates all settings up front so a
// run fails before any data is read.
package config

import "github.com/JonMunkholm/surveyci/internal/survey"

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Survey  SurveyConfig
	Loader  LoaderConfig
	Output  OutputConfig
	Logging LoggingConfig
}

// SurveyConfig describes the input data and the sampling frame.
type SurveyConfig struct {
	// DataPath is the CSV file to analyse (default: dataset.csv)
	DataPath string `env:"SURVEY_DATA_PATH" default:"dataset.csv"`

	// TotalDistricts is N, the number of districts in the universe (default: 415)
	TotalDistricts int `env:"SURVEY_TOTAL_DISTRICTS" default:"415"`

	// ConfidenceZ is the z-score for the confidence interval (default: 1.96)
	ConfidenceZ float64 `env:"SURVEY_CONFIDENCE_Z" default:"1.96"`

	// FrameFile is an optional YAML file overriding TotalDistricts and ConfidenceZ
	FrameFile string `env:"SURVEY_FRAME_FILE"`
}

// LoaderConfig holds CSV parsing settings.
type LoaderConfig struct {
	// ParseMode is strict or lenient (default: strict)
	ParseMode string `env:"SURVEY_PARSE_MODE" default:"strict"`

	// MaxRows bounds the number of data rows; 0 disables the bound (default: 500)
	MaxRows int `env:"SURVEY_MAX_ROWS" default:"500"`
}

// OutputConfig holds report rendering settings.
type OutputConfig struct {
	// Format is text, json or html (default: text)
	Format string `env:"OUTPUT_FORMAT" default:"text"`

	// Currency prefixes money values in text and html output (default: Rp)
	Currency string `env:"OUTPUT_CURRENCY" default:"Rp"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Frame returns the population constants for the estimator.
func (c *Config) Frame() survey.Frame {
	return survey.Frame{
		TotalDistricts: c.Survey.TotalDistricts,
		ConfidenceZ:    c.Survey.ConfidenceZ,
	}
}

// LoadOptions returns the loader settings.
func (c *Config) LoadOptions() survey.LoadOptions {
	return survey.LoadOptions{
		Mode:    survey.ParseMode(c.Loader.ParseMode),
		MaxRows: c.Loader.MaxRows,
	}
}
