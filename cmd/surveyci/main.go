package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/surveyci/internal/analysis"
	"github.com/JonMunkholm/surveyci/internal/config"
	"github.com/JonMunkholm/surveyci/internal/logging"
	"github.com/JonMunkholm/surveyci/internal/survey"
)

var version = "0.1.0"

// flagValues holds command-line overrides. A flag only applies when it was
// set explicitly; otherwise the environment/default value stands.
type flagValues struct {
	districts int
	z         float64
	frame     string
	lenient   bool
	maxRows   int
	format    string
	currency  string
	out       string
	logLevel  string
	logFormat string
}

func main() {
	// Load .env file if it exists; real environment variables win.
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	fv := &flagValues{}

	cmd := &cobra.Command{
		Use:   "surveyci [csv-file]",
		Short: "Estimate mean spend per person and its confidence interval from district survey data",
		Long: `surveyci reads a CSV of sampled districts (district_id,people_count,total_spend),
estimates mean spend per person with a cluster-sampling ratio estimator and prints
the estimate with its margin of error and confidence interval.

Population constants come from SURVEY_TOTAL_DISTRICTS / SURVEY_CONFIDENCE_Z,
a YAML frame file (--frame or SURVEY_FRAME_FILE), or the --districts / --z flags,
in increasing order of precedence.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			stderr := cmd.ErrOrStderr()

			cfg, err := buildConfig(cmd, fv, args)
			if err != nil {
				return fail(stderr, err)
			}

			logging.Setup(cfg.Logging.Level, cfg.Logging.Format, stderr)

			var buf bytes.Buffer
			if _, err := analysis.Run(cmd.Context(), cfg, &buf); err != nil {
				return fail(stderr, err)
			}

			if fv.out != "" {
				if err := os.WriteFile(fv.out, buf.Bytes(), 0o644); err != nil {
					return fail(stderr, fmt.Errorf("write output: %w", err))
				}
				slog.Info("report written", "path", fv.out)
				return nil
			}
			_, err = buf.WriteTo(cmd.OutOrStdout())
			return err
		},
	}

	f := cmd.Flags()
	f.IntVar(&fv.districts, "districts", 0, "total districts in the population (N)")
	f.Float64Var(&fv.z, "z", 0, "z-score for the confidence interval")
	f.StringVar(&fv.frame, "frame", "", "YAML sampling-frame file")
	f.BoolVar(&fv.lenient, "lenient", false, "read numeric prefixes instead of rejecting non-numeric cells")
	f.IntVar(&fv.maxRows, "max-rows", 0, "maximum data rows (0 = unbounded)")
	f.StringVar(&fv.format, "format", "", "output format: text, json, html")
	f.StringVar(&fv.currency, "currency", "", "currency prefix for money values")
	f.StringVarP(&fv.out, "out", "o", "", "write the report to a file instead of stdout")
	f.StringVar(&fv.logLevel, "log-level", "", "log level: debug, info, warn, error")
	f.StringVar(&fv.logFormat, "log-format", "", "log format: text, json")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and exit",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "surveyci %s\n", version)
		},
	}
}

// buildConfig loads the environment config, layers explicit flags on top
// and validates the merged result.
func buildConfig(cmd *cobra.Command, fv *flagValues, args []string) (*config.Config, error) {
	cfg, err := config.LoadEnv()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if len(args) == 1 {
		cfg.Survey.DataPath = args[0]
	}
	if flags.Changed("frame") {
		if err := cfg.ApplyFrameFile(fv.frame); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	}
	if flags.Changed("districts") {
		cfg.Survey.TotalDistricts = fv.districts
	}
	if flags.Changed("z") {
		cfg.Survey.ConfidenceZ = fv.z
	}
	if flags.Changed("lenient") && fv.lenient {
		cfg.Loader.ParseMode = string(survey.ParseLenient)
	}
	if flags.Changed("max-rows") {
		cfg.Loader.MaxRows = fv.maxRows
	}
	if flags.Changed("format") {
		cfg.Output.Format = fv.format
	}
	if flags.Changed("currency") {
		cfg.Output.Currency = fv.currency
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = fv.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = fv.logFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// fail prints the user-facing message for err and returns err so cobra
// exits non-zero.
func fail(w io.Writer, err error) error {
	msg := survey.MapError(err)
	if survey.IsUserFacing(err) {
		slog.Debug("run failed", "error", err, "code", msg.Code)
	} else {
		slog.Error("run failed", "error", err)
	}

	fmt.Fprintf(w, "Error [%s]: %s\n", msg.Code, msg.Message)
	fmt.Fprintf(w, "  %v\n", err)
	fmt.Fprintf(w, "  %s\n", msg.Action)
	return err
}
