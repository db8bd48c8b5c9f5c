package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/JonMunkholm/surveyci/internal/survey"
)

// FrameFile is the YAML layout of a sampling-frame file:
//
//	name: City A delivery survey
//	total_districts: 415
//	confidence_level: 0.95
//
// confidence_z takes precedence over confidence_level when both are set.
type FrameFile struct {
	Name            string  `yaml:"name,omitempty"`
	TotalDistricts  int     `yaml:"total_districts"`
	ConfidenceZ     float64 `yaml:"confidence_z,omitempty"`
	ConfidenceLevel float64 `yaml:"confidence_level,omitempty"`
}

// zScores maps two-sided confidence levels to standard normal critical values.
var zScores = map[float64]float64{
	0.80: 1.2816,
	0.90: 1.6449,
	0.95: 1.96,
	0.98: 2.3263,
	0.99: 2.5758,
}

// ZForLevel returns the z-score for a supported two-sided confidence level.
func ZForLevel(level float64) (float64, error) {
	if z, ok := zScores[level]; ok {
		return z, nil
	}
	levels := make([]float64, 0, len(zScores))
	for l := range zScores {
		levels = append(levels, l)
	}
	sort.Float64s(levels)
	supported := make([]string, len(levels))
	for i, l := range levels {
		supported[i] = strconv.FormatFloat(l, 'f', 2, 64)
	}
	return 0, fmt.Errorf("unsupported confidence_level %v (supported: %s)", level, strings.Join(supported, ", "))
}

// ReadFrameFile parses a frame file from disk.
func ReadFrameFile(path string) (*FrameFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read frame file: %w", err)
	}

	var ff FrameFile
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return nil, fmt.Errorf("parse frame file %s: %w", path, err)
	}
	return &ff, nil
}

// ApplyFrameFile overrides the survey constants with those in the frame file
// at path. Fields left unset in the file keep their current values.
func (c *Config) ApplyFrameFile(path string) error {
	ff, err := ReadFrameFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", survey.ErrInvalidConfig, err)
	}

	if ff.TotalDistricts != 0 {
		c.Survey.TotalDistricts = ff.TotalDistricts
	}

	switch {
	case ff.ConfidenceZ != 0:
		c.Survey.ConfidenceZ = ff.ConfidenceZ
	case ff.ConfidenceLevel != 0:
		z, err := ZForLevel(ff.ConfidenceLevel)
		if err != nil {
			return fmt.Errorf("%w: frame file %s: %w", survey.ErrInvalidConfig, path, err)
		}
		c.Survey.ConfidenceZ = z
	}

	c.Survey.FrameFile = path
	return nil
}
