package report

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/JonMunkholm/surveyci/internal/survey"
)

// WriteText writes the console layout of rep.
//
// Standard errors are printed as (Cur x)^2, i.e. the square root of each
// variance, to keep the figures in money units.
func WriteText(w io.Writer, rep survey.Report, opts Options) error {
	cur := opts.Currency
	if cur != "" {
		cur += " "
	}

	bw := bufio.NewWriter(w)
	p := func(format string, args ...any) {
		fmt.Fprintf(bw, format, args...)
	}

	if opts.Source != "" {
		p("Source: %s\n", opts.Source)
	}
	p("Number of all districts: %d\n", rep.TotalDistricts)
	p("Number of sampled districts: %d\n", rep.SampledDistricts)
	p("Total records: %d\n\n", rep.SampledDistricts+1) // header line included

	p("Total people across all districts: %d\n", rep.TotalPeople)
	p("Total spend across all districts: %.2f\n", rep.TotalSpend)
	p("\nAverage spend per person: %.2f\n", rep.MeanSpendPerPerson)

	p("\nVariance Calculations:\n")
	p("Sampled cluster variance (sc²): %.4f\n", rep.SampleVariance)
	p("Variance of total pop. est.: (%s%.0f)^2\n", cur, math.Sqrt(rep.TotalVariance))

	p("\nPopulation Estimates:\n")
	p("Mean people per district: %.0f\n", rep.MeanPeoplePerDistrict)
	p("Estimated total population: %.0f\n", rep.EstimatedPopulation)
	p("Variance of mean per person est.: (%s%.0f)^2\n", cur, math.Sqrt(rep.MeanVariance))

	p("\nConfidence Interval:\n")
	p("z-stat: %.2f\n", rep.ConfidenceZ)
	p("Margin of error (d): %s%.0f\n", cur, rep.MarginOfError)
	p("Confidence Interval: %s%.2f ± %s%.0f\n", cur, rep.MeanSpendPerPerson, cur, rep.MarginOfError)
	p("                     (%s%.0f - %s%.0f)\n", cur, rep.ConfidenceInterval.Lower, cur, rep.ConfidenceInterval.Upper)

	return bw.Flush()
}
