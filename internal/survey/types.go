package survey

// Record is one data row of the survey file.
type Record struct {
	DistrictID int     // Not unique, never used as a key
	People     int     // Respondents in the district's sample unit
	TotalSpend float64 // Aggregate spend reported for the unit
}

// Frame holds the population constants of the sampling frame.
// These are supplied by the caller; nothing here is derived from data.
type Frame struct {
	TotalDistricts int     // N: districts in the surveyed universe
	ConfidenceZ    float64 // z-score for the confidence level (1.96 for 95%)
}

// Interval is a closed confidence interval.
type Interval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Report contains every quantity derived by Estimate.
// Values are kept at full float64 precision; rounding is left to renderers.
type Report struct {
	SampledDistricts int     `json:"sampledDistricts"` // n
	TotalDistricts   int     `json:"totalDistricts"`   // N
	ConfidenceZ      float64 `json:"confidenceZ"`

	TotalPeople        int     `json:"totalPeople"`
	TotalSpend         float64 `json:"totalSpend"`
	MeanSpendPerPerson float64 `json:"meanSpendPerPerson"` // R̄

	SampleVariance float64 `json:"sampleVariance"` // sc²
	TotalVariance  float64 `json:"totalVariance"`  // V(Ŷ)

	MeanPeoplePerDistrict float64 `json:"meanPeoplePerDistrict"` // M̄
	EstimatedPopulation   float64 `json:"estimatedPopulation"`   // M̂

	MeanVariance       float64  `json:"meanVariance"` // V(R̄)
	MarginOfError      float64  `json:"marginOfError"`
	ConfidenceInterval Interval `json:"confidenceInterval"`
}

// ParseMode selects how numeric cells are converted.
type ParseMode string

const (
	ParseStrict  ParseMode = "strict"
	ParseLenient ParseMode = "lenient"
)

// Valid reports whether m is a known parse mode.
func (m ParseMode) Valid() bool {
	return m == ParseStrict || m == ParseLenient
}

// LoadOptions controls Load and LoadFile.
type LoadOptions struct {
	Mode    ParseMode // Empty means ParseStrict
	MaxRows int       // Upper bound on data rows; 0 disables the bound
}

// Dataset is the result of a successful load.
type Dataset struct {
	Header    []string // Discarded header line, kept for display only
	Records   []Record // Data rows in file order
	BytesRead int64    // Bytes consumed from the source
}

// Len returns the number of data rows (header excluded).
func (d *Dataset) Len() int {
	return len(d.Records)
}
