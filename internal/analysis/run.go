// Package analysis wires loading, estimation and rendering into one run.
package analysis

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/JonMunkholm/surveyci/internal/config"
	"github.com/JonMunkholm/surveyci/internal/logging"
	"github.com/JonMunkholm/surveyci/internal/report"
	"github.com/JonMunkholm/surveyci/internal/survey"
)

// Result is what a successful run produced.
type Result struct {
	RunID   string
	Dataset *survey.Dataset
	Report  survey.Report
}

// Run loads cfg.Survey.DataPath, estimates the report against the configured
// frame and renders it to w. Load and estimation failures leave w untouched.
func Run(ctx context.Context, cfg *config.Config, w io.Writer) (*Result, error) {
	ctx, runID := logging.NewRunContext(ctx)
	logger := logging.WithFields(ctx, "path", cfg.Survey.DataPath)
	start := time.Now()

	logger.Debug("run started", "config", cfg.String())

	ds, err := survey.LoadFile(ctx, cfg.Survey.DataPath, cfg.LoadOptions())
	if err != nil {
		return nil, err
	}
	logger.Info("dataset loaded",
		"rows", ds.Len(),
		"bytes", ds.BytesRead,
		"header", strings.Join(ds.Header, ","),
		"parse_mode", cfg.Loader.ParseMode,
	)

	frame := cfg.Frame()
	logger.Info("sampling frame",
		"total_districts", frame.TotalDistricts,
		"sampled_districts", ds.Len(),
		"confidence_z", frame.ConfidenceZ,
	)

	rep, err := survey.Estimate(ds.Records, frame)
	if err != nil {
		return nil, err
	}

	opts := report.Options{
		Format:   cfg.Output.Format,
		Currency: cfg.Output.Currency,
		Source:   cfg.Survey.DataPath,
		RunID:    runID,
	}
	if err := report.Render(ctx, w, rep, opts); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}

	logger.Info("run complete",
		"mean_spend_per_person", rep.MeanSpendPerPerson,
		"margin_of_error", rep.MarginOfError,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &Result{RunID: runID, Dataset: ds, Report: rep}, nil
}
