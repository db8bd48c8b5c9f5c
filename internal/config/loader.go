package config

import (
	"fmt"
	"math"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/JonMunkholm/surveyci/internal/survey"
)

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg, err := LoadEnv()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// LoadEnv reads configuration from environment variables, applies defaults
// for unset values and merges the frame file if one is configured. It does
// not validate, so callers can layer further overrides and call Validate
// once at the end.
func LoadEnv() (*Config, error) {
	cfg := &Config{}

	if err := loadStruct(reflect.ValueOf(cfg).Elem()); err != nil {
		return nil, fmt.Errorf("config load: %w: %w", survey.ErrInvalidConfig, err)
	}

	if cfg.Survey.FrameFile != "" {
		if err := cfg.ApplyFrameFile(cfg.Survey.FrameFile); err != nil {
			return nil, fmt.Errorf("config load: %w", err)
		}
	}

	return cfg, nil
}

// loadStruct recursively populates struct fields from environment variables.
func loadStruct(v reflect.Value) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldVal := v.Field(i)

		if !fieldVal.CanSet() {
			continue
		}

		if field.Type.Kind() == reflect.Struct {
			if err := loadStruct(fieldVal); err != nil {
				return err
			}
			continue
		}

		envName := field.Tag.Get("env")
		if envName == "" {
			continue
		}
		value := os.Getenv(envName)
		if value == "" {
			value = field.Tag.Get("default")
		}

		if value == "" {
			continue
		}

		if err := setField(fieldVal, value); err != nil {
			return fmt.Errorf("invalid value for %s=%q: %w", envName, value, err)
		}
	}

	return nil
}

// setField sets a reflect.Value from a string based on its type.
func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int64:
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer: %w", err)
		}
		field.SetInt(i)

	case reflect.Float64:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid number: %w", err)
		}
		field.SetFloat(f)

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	// Survey validation
	if strings.TrimSpace(c.Survey.DataPath) == "" {
		errs = append(errs, "SURVEY_DATA_PATH is required")
	}
	if c.Survey.TotalDistricts <= 0 {
		errs = append(errs, fmt.Sprintf("SURVEY_TOTAL_DISTRICTS (%d) must be positive", c.Survey.TotalDistricts))
	}
	if c.Survey.ConfidenceZ <= 0 || math.IsNaN(c.Survey.ConfidenceZ) || math.IsInf(c.Survey.ConfidenceZ, 0) {
		errs = append(errs, fmt.Sprintf("SURVEY_CONFIDENCE_Z (%v) must be a positive number", c.Survey.ConfidenceZ))
	}

	// Loader validation
	if !survey.ParseMode(strings.ToLower(c.Loader.ParseMode)).Valid() {
		errs = append(errs, fmt.Sprintf("SURVEY_PARSE_MODE (%q) must be one of: strict, lenient", c.Loader.ParseMode))
	}
	if c.Loader.MaxRows < 0 {
		errs = append(errs, "SURVEY_MAX_ROWS must be non-negative")
	}

	// Output validation
	validOutput := map[string]bool{"text": true, "json": true, "html": true}
	if !validOutput[strings.ToLower(c.Output.Format)] {
		errs = append(errs, fmt.Sprintf("OUTPUT_FORMAT (%q) must be one of: text, json, html", c.Output.Format))
	}

	// Logging validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: validation failed:\n  - %s", survey.ErrInvalidConfig, strings.Join(errs, "\n  - "))
	}

	// Enum values are compared lowercase from here on.
	c.Loader.ParseMode = strings.ToLower(c.Loader.ParseMode)
	c.Output.Format = strings.ToLower(c.Output.Format)
	return nil
}

// String returns a compact representation of the config for logging.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	b.WriteString(fmt.Sprintf("Survey: {DataPath: %q, TotalDistricts: %d, ConfidenceZ: %g, FrameFile: %q}, ",
		c.Survey.DataPath, c.Survey.TotalDistricts, c.Survey.ConfidenceZ, c.Survey.FrameFile))
	b.WriteString(fmt.Sprintf("Loader: {ParseMode: %q, MaxRows: %d}, ", c.Loader.ParseMode, c.Loader.MaxRows))
	b.WriteString(fmt.Sprintf("Output: {Format: %q, Currency: %q}, ", c.Output.Format, c.Output.Currency))
	b.WriteString(fmt.Sprintf("Logging: {Level: %q, Format: %q}", c.Logging.Level, c.Logging.Format))
	b.WriteString("}")
	return b.String()
}
