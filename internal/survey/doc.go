// Package survey provides the ingestion and estimation logic for district
// survey data.
//
// This package has no CLI or output dependencies and can be used by any
// frontend. It is organized around two steps:
//
//   - Loading: [Load] and [LoadFile] turn a comma-separated source (one header
//     line, then one district_id,people_count,total_spend record per line)
//     into an ordered []Record. Quotes are ordinary characters.
//   - Estimation: [Estimate] applies the cluster-sampling ratio estimator to
//     the records and a [Frame] of population constants, producing a [Report].
//
// # Parse Modes
//
// Cells are converted in one of two modes:
//
//   - [ParseStrict] (default): every cell must be fully numeric. Spend accepts
//     currency symbols and accounting negatives "(12.50)".
//   - [ParseLenient]: numeric-prefix semantics. "12abc" reads as 12 and a cell
//     with no leading number reads as 0.
//
// # Error Handling
//
// Load and estimation failures wrap one of the sentinel errors ([ErrSourceUnavailable],
// [ErrMalformedRow], [ErrEmptyDataset], [ErrCapacityExceeded], [ErrNoPopulation],
// [ErrInsufficientSample], [ErrInvalidFrame], [ErrInvalidConfig]) so callers can branch with
// errors.Is. Load failures carry their line number in a [*LoadError].
// [MapError] converts any of them to a user-facing message with a support code:
//
//   - SRC001: input file cannot be opened or read
//   - ROW001-ROW002: malformed data rows
//   - DATA001-DATA002: empty dataset, row limit exceeded
//   - EST001-EST003: estimator preconditions
//   - CFG001: configuration problems
//   - RUN001: cancelled runs
package survey
