package report

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/surveyci/internal/survey"
)

// row is one label/value line of the HTML table.
type row struct {
	label string
	value string
}

// Page returns a standalone HTML page for rep.
func Page(rep survey.Report, opts Options) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := "Survey estimate"
		if opts.Source != "" {
			title += " - " + opts.Source
		}

		if _, err := io.WriteString(w, "<!DOCTYPE html>\n<html lang=\"en\"><head><meta charset=\"utf-8\"><title>"+
			templ.EscapeString(title)+"</title></head><body>"); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "<h1>"+templ.EscapeString(title)+"</h1>"); err != nil {
			return err
		}
		if opts.RunID != "" {
			if _, err := io.WriteString(w, "<p class=\"run-id\">Run "+templ.EscapeString(opts.RunID)+"</p>"); err != nil {
				return err
			}
		}

		if err := Summary(rep, opts.Currency).Render(ctx, w); err != nil {
			return err
		}

		_, err := io.WriteString(w, "</body></html>\n")
		return err
	})
}

// Summary renders the statistics table on its own, for embedding.
func Summary(rep survey.Report, currency string) templ.Component {
	money := func(format string, v float64) string {
		s := fmt.Sprintf(format, v)
		if currency != "" {
			s = currency + " " + s
		}
		return s
	}

	rows := []row{
		{"Districts (sampled / total)", fmt.Sprintf("%d / %d", rep.SampledDistricts, rep.TotalDistricts)},
		{"Total people", fmt.Sprintf("%d", rep.TotalPeople)},
		{"Total spend", money("%.2f", rep.TotalSpend)},
		{"Average spend per person", money("%.2f", rep.MeanSpendPerPerson)},
		{"Sampled cluster variance (sc²)", fmt.Sprintf("%.4f", rep.SampleVariance)},
		{"Std. error of total", money("%.0f", math.Sqrt(rep.TotalVariance))},
		{"Mean people per district", fmt.Sprintf("%.0f", rep.MeanPeoplePerDistrict)},
		{"Estimated total population", fmt.Sprintf("%.0f", rep.EstimatedPopulation)},
		{"Std. error of mean per person", money("%.0f", math.Sqrt(rep.MeanVariance))},
		{"z-stat", fmt.Sprintf("%.2f", rep.ConfidenceZ)},
		{"Margin of error (d)", money("%.0f", rep.MarginOfError)},
		{"Confidence interval", money("%.0f", rep.ConfidenceInterval.Lower) + " – " + money("%.0f", rep.ConfidenceInterval.Upper)},
	}

	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<table class=\"survey-summary\"><tbody>"); err != nil {
			return err
		}
		for _, r := range rows {
			if _, err := io.WriteString(w, "<tr><th>"+templ.EscapeString(r.label)+"</th><td>"+
				templ.EscapeString(r.value)+"</td></tr>"); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</tbody></table>")
		return err
	})
}
