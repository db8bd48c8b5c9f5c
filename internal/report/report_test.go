package report

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/surveyci/internal/survey"
)

func sampleReport() survey.Report {
	return survey.Report{
		SampledDistricts:      3,
		TotalDistricts:        10,
		ConfidenceZ:           2,
		TotalPeople:           60,
		TotalSpend:            600,
		MeanSpendPerPerson:    10,
		SampleVariance:        10000,
		TotalVariance:         250000,
		MeanPeoplePerDistrict: 20,
		EstimatedPopulation:   200,
		MeanVariance:          6.25,
		MarginOfError:         5,
		ConfidenceInterval:    survey.Interval{Lower: 5, Upper: 15},
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	err := WriteText(&buf, sampleReport(), Options{Currency: "Rp", Source: "dataset.csv"})
	require.NoError(t, err)

	out := buf.String()
	wantLines := []string{
		"Source: dataset.csv",
		"Number of all districts: 10",
		"Number of sampled districts: 3",
		"Total records: 4",
		"Total people across all districts: 60",
		"Total spend across all districts: 600.00",
		"Average spend per person: 10.00",
		"Sampled cluster variance (sc²): 10000.0000",
		"Variance of total pop. est.: (Rp 500)^2",
		"Mean people per district: 20",
		"Estimated total population: 200",
		"Variance of mean per person est.: (Rp 2)^2",
		"z-stat: 2.00",
		"Margin of error (d): Rp 5",
		"Confidence Interval: Rp 10.00 ± Rp 5",
		"(Rp 5 - Rp 15)",
	}
	for _, want := range wantLines {
		assert.Contains(t, out, want)
	}
}

func TestWriteText_NoCurrency(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sampleReport(), Options{}))

	out := buf.String()
	assert.NotContains(t, out, "Source:")
	assert.Contains(t, out, "Margin of error (d): 5\n")
	assert.Contains(t, out, "(5 - 15)")
}

func TestWriteJSON(t *testing.T) {
	rep := sampleReport()
	rep.MeanSpendPerPerson = 10.123456789

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, rep, Options{RunID: "run-1", Source: "dataset.csv"}))

	var got Envelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	want := Envelope{RunID: "run-1", Source: "dataset.csv", Report: rep}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("envelope mismatch (-want +got):\n%s", diff)
	}

	assert.Contains(t, buf.String(), `"meanSpendPerPerson": 10.123456789`)
	assert.Contains(t, buf.String(), `"confidenceInterval"`)
}

func TestPage(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{Currency: "Rp", Source: "<city>.csv", RunID: "abc"}
	require.NoError(t, Page(sampleReport(), opts).Render(context.Background(), &buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "&lt;city&gt;.csv")
	assert.NotContains(t, out, "<city>")
	assert.Contains(t, out, `<p class="run-id">Run abc</p>`)
	assert.Contains(t, out, `<table class="survey-summary">`)
	assert.Contains(t, out, "<th>Margin of error (d)</th><td>Rp 5</td>")
	assert.True(t, strings.HasSuffix(out, "</html>\n"))
}

func TestSummary_NoCurrency(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Summary(sampleReport(), "").Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), "<th>Total spend</th><td>600.00</td>")
}

func TestRender(t *testing.T) {
	tests := []struct {
		format string
		prefix string
	}{
		{"", "Number of all districts"},
		{"text", "Number of all districts"},
		{"TEXT", "Number of all districts"},
		{"json", "{"},
		{"html", "<!DOCTYPE html>"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			err := Render(context.Background(), &buf, sampleReport(), Options{Format: tt.format})
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(buf.String(), tt.prefix), "got %q", buf.String())
		})
	}
}

func TestRender_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Render(context.Background(), &buf, sampleReport(), Options{Format: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
	assert.Zero(t, buf.Len())
}
