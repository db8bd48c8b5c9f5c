package survey

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/JonMunkholm/surveyci/internal/logging"
)

// ContextCheckInterval is how often (in rows) to check for context cancellation.
var ContextCheckInterval = 100

// DefaultMaxRows is the row bound applied when no other limit is configured.
const DefaultMaxRows = 500

// Columns lists the fixed survey schema in file order.
var Columns = []string{"district_id", "people_count", "total_spend"}

// LoadFile opens path and loads it with Load. The file is closed on every
// return path.
func LoadFile(ctx context.Context, path string, opts LoadOptions) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Message: err.Error(), Err: ErrSourceUnavailable}
	}
	defer f.Close()

	ds, err := Load(ctx, f, opts)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		return nil, err
	}
	return ds, nil
}

// maxLineBytes bounds a single physical line.
const maxLineBytes = 1024 * 1024

// Load reads a header line followed by district_id,people_count,total_spend
// lines from r. The first physical line is the header and is discarded
// without inspection. Every later line is one record: it is split on ','
// and quotes have no special meaning. Records are returned in input order.
// A newline at the very end of the input is not a line; any other blank
// line is malformed.
func Load(ctx context.Context, r io.Reader, opts LoadOptions) (*Dataset, error) {
	mode := opts.Mode
	if mode == "" {
		mode = ParseStrict
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: unknown parse mode %q", ErrInvalidConfig, mode)
	}

	src, counter, err := wrapSource(r)
	if err != nil {
		return nil, &LoadError{Message: err.Error(), Err: ErrSourceUnavailable}
	}

	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	logger := logging.FromContext(ctx)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, scanError(err, 1)
		}
		return nil, &LoadError{Message: "input is empty", Err: ErrEmptyDataset}
	}

	ds := &Dataset{Header: strings.Split(scanner.Text(), ",")}

	lineNum := 1
	for scanner.Scan() {
		lineNum++
		if (lineNum-2)%ContextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("load cancelled after %d rows: %w", len(ds.Records), err)
			}
		}

		line := scanner.Text()

		if opts.MaxRows > 0 && len(ds.Records) >= opts.MaxRows {
			return nil, &LoadError{
				Line:    lineNum,
				Message: fmt.Sprintf("more than %d data rows", opts.MaxRows),
				Err:     ErrCapacityExceeded,
			}
		}

		rec, lerr := parseLine(line, mode)
		if lerr != nil {
			lerr.Line = lineNum
			return nil, lerr
		}

		logger.Debug("row parsed",
			"line", lineNum,
			"district", rec.DistrictID,
			"people", rec.People,
			"spend", rec.TotalSpend,
		)
		ds.Records = append(ds.Records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, scanError(err, lineNum+1)
	}

	if len(ds.Records) == 0 {
		return nil, &LoadError{Message: "no data rows after header", Err: ErrEmptyDataset}
	}

	ds.BytesRead = counter.bytesRead
	return ds, nil
}

// parseLine converts the first three fields of a data line. Extra fields
// are ignored.
func parseLine(line string, mode ParseMode) (Record, *LoadError) {
	if strings.TrimSpace(line) == "" {
		return Record{}, &LoadError{Message: "blank line", Err: ErrMalformedRow}
	}

	row := strings.Split(line, ",")
	if len(row) < len(Columns) {
		return Record{}, &LoadError{
			Message: fmt.Sprintf("row has %d fields, expected %d", len(row), len(Columns)),
			Err:     ErrMalformedRow,
		}
	}

	if mode == ParseLenient {
		return Record{
			DistrictID: PrefixInt(row[0]),
			People:     PrefixInt(row[1]),
			TotalSpend: PrefixFloat(row[2]),
		}, nil
	}

	var (
		rec Record
		ok  bool
	)
	if rec.DistrictID, ok = ToInt(row[0]); !ok {
		return Record{}, invalidCell(Columns[0], row[0], "invalid integer")
	}
	if rec.People, ok = ToInt(row[1]); !ok {
		return Record{}, invalidCell(Columns[1], row[1], "invalid integer")
	}
	if rec.TotalSpend, ok = ToFloat(row[2]); !ok {
		return Record{}, invalidCell(Columns[2], row[2], "invalid number")
	}
	return rec, nil
}

func invalidCell(column, value, message string) *LoadError {
	return &LoadError{
		Column:  column,
		Value:   value,
		Message: message,
		Err:     ErrMalformedRow,
	}
}

// scanError classifies a scanner failure. An over-long line is a row
// failure; anything else came from the underlying source.
func scanError(err error, line int) error {
	if errors.Is(err, bufio.ErrTooLong) {
		return &LoadError{
			Line:    line,
			Message: fmt.Sprintf("line longer than %d bytes", maxLineBytes),
			Err:     ErrMalformedRow,
		}
	}
	return &LoadError{Message: err.Error(), Err: ErrSourceUnavailable}
}
