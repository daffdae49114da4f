package stats

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty indicates a statistic of a sample with no observations.
	ErrEmpty = errors.New("stats: empty sample")

	// ErrTooFew indicates a sample smaller than the statistic requires, e.g.
	// fewer than three observations for the sample skewness.
	ErrTooFew = errors.New("stats: not enough observations")

	// ErrLengthMismatch indicates paired samples of different lengths.
	ErrLengthMismatch = errors.New("stats: samples differ in length")

	// ErrDomain indicates an observation outside the domain of the statistic,
	// or a statistic that would divide by zero.
	ErrDomain = errors.New("stats: argument outside domain")

	// ErrBuckets indicates an unusable histogram bucket count or edge list.
	ErrBuckets = errors.New("stats: invalid histogram buckets")
)

// Operation tags for error wrapping.
const (
	opMean      = "Mean"
	opMedian    = "Median"
	opGMean     = "GeometricMean"
	opHMean     = "HarmonicMean"
	opMode      = "Mode"
	opVariance  = "Variance"
	opSkewness  = "Skewness"
	opKurtosis  = "Kurtosis"
	opMoment    = "Moment"
	opCov       = "Covariance"
	opCorr      = "Correlation"
	opHistogram = "Histogram"
)

func statErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
