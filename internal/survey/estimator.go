package survey

import (
	"fmt"
	"math"
)

// Estimate computes the cluster-sampling ratio estimate of mean spend per
// person and its confidence interval.
//
// With n records, N = frame.TotalDistricts and z = frame.ConfidenceZ:
//
//	R̄     = Σ spend / Σ people
//	sc²   = Σ (spend_i − R̄·people_i)² / (n − 1)
//	V(Ŷ)  = N·(N − n)·sc²/n
//	M̄     = Σ people / n,  M̂ = N·M̄
//	V(R̄)  = V(Ŷ) / M̂²
//	d     = z·√V(R̄),  CI = [R̄ − d, R̄ + d]
//
// The sample must not be larger than the frame (n ≤ N). Sign of inputs is
// not checked; negative values propagate arithmetically.
func Estimate(records []Record, frame Frame) (Report, error) {
	if frame.TotalDistricts <= 0 {
		return Report{}, fmt.Errorf("%w: total districts must be positive, got %d",
			ErrInvalidFrame, frame.TotalDistricts)
	}
	if frame.ConfidenceZ <= 0 || math.IsNaN(frame.ConfidenceZ) || math.IsInf(frame.ConfidenceZ, 0) {
		return Report{}, fmt.Errorf("%w: confidence z must be a positive number, got %v",
			ErrInvalidFrame, frame.ConfidenceZ)
	}

	n := len(records)
	totalPeople, totalSpend := Totals(records)

	if totalPeople == 0 {
		return Report{}, fmt.Errorf("%w: people counts sum to zero over %d records",
			ErrNoPopulation, n)
	}
	if n < 2 {
		return Report{}, fmt.Errorf("%w: need at least 2 records, got %d",
			ErrInsufficientSample, n)
	}
	if n > frame.TotalDistricts {
		return Report{}, fmt.Errorf("%w: %d sampled districts exceed %d total districts",
			ErrInvalidFrame, n, frame.TotalDistricts)
	}

	rate := MeanRate(totalPeople, totalSpend)
	sc2 := residualVariance(records, rate)

	bigN := float64(frame.TotalDistricts)
	varTotal := bigN * (bigN - float64(n)) * (sc2 / float64(n))

	meanPeople := float64(totalPeople) / float64(n)
	estPopulation := bigN * meanPeople

	varMean := varTotal / (estPopulation * estPopulation)
	margin := frame.ConfidenceZ * math.Sqrt(varMean)

	return Report{
		SampledDistricts:      n,
		TotalDistricts:        frame.TotalDistricts,
		ConfidenceZ:           frame.ConfidenceZ,
		TotalPeople:           totalPeople,
		TotalSpend:            totalSpend,
		MeanSpendPerPerson:    rate,
		SampleVariance:        sc2,
		TotalVariance:         varTotal,
		MeanPeoplePerDistrict: meanPeople,
		EstimatedPopulation:   estPopulation,
		MeanVariance:          varMean,
		MarginOfError:         margin,
		ConfidenceInterval: Interval{
			Lower: rate - margin,
			Upper: rate + margin,
		},
	}, nil
}

// Totals returns Σ people and Σ spend over records.
func Totals(records []Record) (people int, spend float64) {
	for _, r := range records {
		people += r.People
		spend += r.TotalSpend
	}
	return people, spend
}

// MeanRate returns total spend per person. Callers guard people == 0.
func MeanRate(people int, spend float64) float64 {
	return spend / float64(people)
}

// residualVariance returns the sample variance of the per-district residuals
// spend_i − rate·people_i, with n − 1 in the denominator. Callers guard n < 2.
func residualVariance(records []Record, rate float64) float64 {
	sumSq := 0.0
	for _, r := range records {
		d := r.TotalSpend - rate*float64(r.People)
		sumSq += d * d
	}
	return sumSq / float64(len(records)-1)
}
