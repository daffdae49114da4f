package stats

import (
	"math"
	"slices"
)

// DefaultBuckets is the bucket count Histogram uses for n observations when
// none is given, ⌈√n⌉.
func DefaultBuckets(n int) int {
	return max(1, int(math.Ceil(math.Sqrt(float64(n)))))
}

// Histogram returns the relative frequencies of x over buckets equal-width
// intervals spanning [min(x), max(x)].
func Histogram(x []float64, buckets int) ([]float64, error) {
	if len(x) == 0 {
		return nil, statErrorf(opHistogram, ErrEmpty)
	}
	if buckets < 1 {
		return nil, statErrorf(opHistogram, ErrBuckets)
	}
	lo, hi := slices.Min(x), slices.Max(x)
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil, statErrorf(opHistogram, ErrDomain)
	}
	if lo == hi {
		// Every observation is in the first bucket.
		r := make([]float64, buckets)
		r[0] = 1
		return r, nil
	}
	// Bucket indices come straight from the position within the range so
	// that a range only a few ulps wide still gets its buckets.
	span, half := hi-lo, false
	if math.IsInf(span, 0) {
		span, half = hi/2-lo/2, true
	}
	r := make([]float64, buckets)
	for _, v := range x {
		d := v - lo
		if half {
			d = v/2 - lo/2
		}
		k := int(d / span * float64(buckets))
		r[min(max(k, 0), buckets-1)]++
	}
	n := float64(len(x))
	for i := range r {
		r[i] /= n
	}
	return r, nil
}

// HistogramEdges returns the relative frequencies of x over the intervals
// [edges[i], edges[i+1]). The last interval also includes its upper edge.
// Observations outside every interval are not counted, but they still count
// toward the total. Edges must be strictly increasing.
func HistogramEdges(x []float64, edges []float64) ([]float64, error) {
	if len(x) == 0 {
		return nil, statErrorf(opHistogram, ErrEmpty)
	}
	if len(edges) < 2 {
		return nil, statErrorf(opHistogram, ErrBuckets)
	}
	for i := 1; i < len(edges); i++ {
		if !(edges[i-1] < edges[i]) {
			return nil, statErrorf(opHistogram, ErrBuckets)
		}
	}
	last := len(edges) - 2
	r := make([]float64, last+1)
	for _, v := range x {
		k, found := slices.BinarySearch(edges, v)
		if !found {
			k--
		}
		if k == last+1 && v == edges[len(edges)-1] {
			k = last
		}
		if k < 0 || k > last {
			continue
		}
		r[k]++
	}
	n := float64(len(x))
	for i := range r {
		r[i] /= n
	}
	return r, nil
}
