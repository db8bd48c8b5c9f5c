// Package report renders a survey.Report for people and machines.
//
// Three formats are supported:
//   - text: the console layout, values rounded for reading
//   - json: every field at full float64 precision
//   - html: a standalone page built from a templ component
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/JonMunkholm/surveyci/internal/survey"
)

// Format names accepted by Render.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatHTML = "html"
)

// Options controls rendering.
type Options struct {
	Format   string // text, json or html (default: text)
	Currency string // Prefix for money values in text and html
	Source   string // Input file shown in the header
	RunID    string
}

// Envelope is the JSON document written for FormatJSON.
type Envelope struct {
	RunID  string        `json:"runId,omitempty"`
	Source string        `json:"source,omitempty"`
	Report survey.Report `json:"report"`
}

// Render writes rep to w in the requested format.
func Render(ctx context.Context, w io.Writer, rep survey.Report, opts Options) error {
	switch strings.ToLower(opts.Format) {
	case "", FormatText:
		return WriteText(w, rep, opts)
	case FormatJSON:
		return WriteJSON(w, rep, opts)
	case FormatHTML:
		return Page(rep, opts).Render(ctx, w)
	default:
		return fmt.Errorf("unknown output format %q", opts.Format)
	}
}

// WriteJSON writes rep wrapped in an Envelope as indented JSON.
func WriteJSON(w io.Writer, rep survey.Report, opts Options) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Envelope{
		RunID:  opts.RunID,
		Source: opts.Source,
		Report: rep,
	})
}
