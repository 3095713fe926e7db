// Package pricing turns batches of scraped listing prices into summary
// statistics, fencing off outliers with Tukey's IQR rule first so a single
// mispriced ad doesn't skew the report.
package pricing

import (
	"log/slog"
	"slices"
)

// Quartile fencing needs at least this many samples to be meaningful.
const minSamplesForFencing = 4

type FilterResult struct {
	Filtered []float64
	Outliers []float64
}

// DetectOutliers splits prices into the values inside the IQR fences and the
// values outside them. Batches smaller than minSamplesForFencing are kept
// whole, and if fencing would discard every sample the original batch is
// returned untouched. The input slice is never mutated and the relative order
// of the filtered values is preserved.
func DetectOutliers(prices []float64) FilterResult {
	if len(prices) < minSamplesForFencing {
		return FilterResult{Filtered: slices.Clone(prices)}
	}

	sorted := slices.Clone(prices)
	slices.Sort(sorted)

	n := len(sorted)
	q1 := sorted[n*25/100]
	q3 := sorted[n*75/100]
	iqr := q3 - q1
	lower := q1 - 1.5*iqr
	upper := q3 + 1.5*iqr

	var out FilterResult
	for _, p := range prices {
		if p < lower || p > upper {
			out.Outliers = append(out.Outliers, p)
		} else {
			out.Filtered = append(out.Filtered, p)
		}
	}

	// Unreachable with finite inputs: q1 and q3 are sample points and
	// the inclusive fences always contain them. The guard keeps the
	// never-empty contract even under float pathologies.
	if len(out.Filtered) == 0 {
		slog.Warn(
			"every price would be fenced off as an outlier, keeping the original batch",
			"count", len(prices),
			"q1", q1,
			"q3", q3,
		)
		return FilterResult{Filtered: slices.Clone(prices)}
	}
	return out
}

type Result struct {
	Min             *float64 `json:"min"`
	Max             *float64 `json:"max"`
	Mean            *float64 `json:"mean"`
	Considered      int      `json:"considered"`
	OutliersRemoved int      `json:"outliers_removed"`
}

// Aggregate discards non-positive prices, fences outliers and reports the
// min, max and mean of what remains. An empty batch yields nil statistics.
func Aggregate(prices []float64) Result {
	var positive []float64
	for _, p := range prices {
		if p > 0 {
			positive = append(positive, p)
		}
	}
	if len(positive) == 0 {
		return Result{}
	}

	filtered := DetectOutliers(positive)

	var sum float64
	for _, p := range filtered.Filtered {
		sum += p
	}
	min := slices.Min(filtered.Filtered)
	max := slices.Max(filtered.Filtered)
	mean := sum / float64(len(filtered.Filtered))

	return Result{
		Min:             &min,
		Max:             &max,
		Mean:            &mean,
		Considered:      len(filtered.Filtered),
		OutliersRemoved: len(filtered.Outliers),
	}
}
