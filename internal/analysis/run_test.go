package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/surveyci/internal/config"
	"github.com/JonMunkholm/surveyci/internal/report"
	"github.com/JonMunkholm/surveyci/internal/survey"
)

func writeCSV(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.csv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func testConfig(path string) *config.Config {
	return &config.Config{
		Survey:  config.SurveyConfig{DataPath: path, TotalDistricts: 10, ConfidenceZ: 2},
		Loader:  config.LoaderConfig{ParseMode: "strict", MaxRows: 500},
		Output:  config.OutputConfig{Format: "json", Currency: "Rp"},
		Logging: config.LoggingConfig{Level: "info", Format: "text"},
	}
}

func TestRun(t *testing.T) {
	path := writeCSV(t, "district_id,people_count,total_spend\n1,10,100\n2,20,300\n3,30,200\n")
	cfg := testConfig(path)

	var buf bytes.Buffer
	res, err := Run(context.Background(), cfg, &buf)
	require.NoError(t, err)

	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, 3, res.Dataset.Len())
	assert.InDelta(t, 10.0, res.Report.MeanSpendPerPerson, 1e-9)

	var env report.Envelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
	assert.Equal(t, res.RunID, env.RunID)
	assert.Equal(t, path, env.Source)
	assert.InDelta(t, res.Report.MarginOfError, env.Report.MarginOfError, 1e-12)
}

func TestRun_Lenient(t *testing.T) {
	path := writeCSV(t, "h\n1,10abc,100\n2,20,300xyz\n")
	cfg := testConfig(path)
	cfg.Loader.ParseMode = "lenient"
	cfg.Output.Format = "text"

	var buf bytes.Buffer
	res, err := Run(context.Background(), cfg, &buf)
	require.NoError(t, err)
	assert.Equal(t, 30, res.Report.TotalPeople)
	assert.Contains(t, buf.String(), "Number of sampled districts: 2")
}

func TestRun_Failures(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		mutate  func(*config.Config)
		wantErr error
	}{
		{
			name:    "malformed row",
			body:    "h\n1,10\n",
			wantErr: survey.ErrMalformedRow,
		},
		{
			name:    "header only",
			body:    "h\n",
			wantErr: survey.ErrEmptyDataset,
		},
		{
			name:    "single district",
			body:    "h\n1,10,100\n",
			wantErr: survey.ErrInsufficientSample,
		},
		{
			name:    "no people",
			body:    "h\n1,0,100\n2,0,100\n",
			wantErr: survey.ErrNoPopulation,
		},
		{
			name:    "too many rows",
			body:    "h\n1,1,1\n2,2,2\n3,3,3\n",
			mutate:  func(c *config.Config) { c.Loader.MaxRows = 2 },
			wantErr: survey.ErrCapacityExceeded,
		},
		{
			name:    "more sampled than total districts",
			body:    "h\n1,10,100\n2,20,300\n3,30,200\n",
			mutate:  func(c *config.Config) { c.Survey.TotalDistricts = 2 },
			wantErr: survey.ErrInvalidFrame,
		},
		{
			name:    "missing file",
			mutate:  func(c *config.Config) { c.Survey.DataPath += ".missing" },
			wantErr: survey.ErrSourceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(writeCSV(t, tt.body))
			if tt.mutate != nil {
				tt.mutate(cfg)
			}

			var buf bytes.Buffer
			res, err := Run(context.Background(), cfg, &buf)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, res)
			assert.Zero(t, buf.Len(), "failed run must not write a report")
		})
	}
}

func TestRun_Cancelled(t *testing.T) {
	path := writeCSV(t, "h\n1,10,100\n2,20,300\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	_, err := Run(ctx, testConfig(path), &buf)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, buf.Len())
}
