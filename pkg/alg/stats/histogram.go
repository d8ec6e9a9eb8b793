package stats

import "math"

// maxStepWidenings bounds the search for a step that fits the bin budget.
const maxStepWidenings = 64

// niceEpsilon absorbs floating point noise when classifying step mantissas.
const niceEpsilon = 1e-9

// Bin is one interval of a histogram. Bins are right-open except the last
// bin of a histogram, which also includes End.
type Bin struct {
	Start float64 `json:"binStart" yaml:"binStart"`
	End   float64 `json:"binEnd"   yaml:"binEnd"`
	Count int     `json:"count"    yaml:"count"`
}

// Histogram partitions values into contiguous equal-width bins covering
// [min(values), max(values)]. The width is a "nice" number (1, 2 or 5 times
// a power of ten) and never smaller than minStep; boundaries are multiples of
// the width. At most maxBins bins are produced. Every value lands in exactly
// one bin. An empty input yields an empty, non-nil slice.
//
// With minStep 1 and a budget of at least max-min+1, integer values get one
// bin each.
func Histogram(values []float64, maxBins int, minStep float64) []Bin {
	if len(values) == 0 {
		return []Bin{}
	}

	maxBins = max(maxBins, 1)

	lo, hi := Min(values), Max(values)

	step := max(NiceStep((hi-lo)/float64(maxBins)), minStep)
	if step <= 0 {
		step = 1
	}

	start, count := layout(lo, hi, step)

	for i := 0; count > maxBins && i < maxStepWidenings; i++ {
		step = nextNiceStep(step)
		start, count = layout(lo, hi, step)
	}

	// A maximum sitting on the last boundary gets a bin of its own when the
	// budget allows, so discrete values are not merged with their neighbor.
	if count < maxBins && math.Abs(start+float64(count)*step-hi) < niceEpsilon*step {
		count++
	}

	bins := make([]Bin, count)
	for i := range bins {
		bins[i] = Bin{
			Start: start + float64(i)*step,
			End:   start + float64(i+1)*step,
		}
	}

	for _, v := range values {
		idx := Clamp(int(math.Floor((v-start)/step)), 0, count-1)
		bins[idx].Count++
	}

	return bins
}

// layout aligns [lo, hi] to multiples of step and returns the first boundary
// and the number of bins needed.
func layout(lo, hi, step float64) (start float64, count int) {
	start = math.Floor(lo/step) * step
	end := math.Ceil(hi/step) * step

	if end <= start {
		end = start + step
	}

	return start, int(math.Round((end - start) / step))
}

// NiceStep rounds raw up to the nearest 1, 2 or 5 times a power of ten.
// Non-positive input yields 0.
func NiceStep(raw float64) float64 {
	if raw <= 0 || math.IsInf(raw, 0) || math.IsNaN(raw) {
		return 0
	}

	magnitude := math.Pow(10, math.Floor(math.Log10(raw)))
	mantissa := raw / magnitude

	switch {
	case mantissa <= 1+niceEpsilon:
		return magnitude
	case mantissa <= 2+niceEpsilon:
		return 2 * magnitude
	case mantissa <= 5+niceEpsilon:
		return 5 * magnitude
	default:
		return 10 * magnitude
	}
}

// nextNiceStep returns the next nice step strictly greater than step.
func nextNiceStep(step float64) float64 {
	magnitude := math.Pow(10, math.Floor(math.Log10(step)+niceEpsilon))
	mantissa := step / magnitude

	switch {
	case mantissa < 1.5:
		return 2 * magnitude
	case mantissa < 3.5:
		return 5 * magnitude
	default:
		return 10 * magnitude
	}
}
