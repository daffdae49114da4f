package complexpr

import (
	"github.com/zephyrtronium/complexpr/cmat"
	"github.com/zephyrtronium/complexpr/stats"
)

// Adapters from the statistics kernels to node behaviors. Every sample is
// the row-major list of a matrix's elements.

func sampleStat(f func([]complex128) (complex128, error)) func(Value) (Value, error) {
	return func(v Value) (Value, error) {
		x, err := v.Vector()
		if err != nil {
			return Value{}, argn(1, err)
		}
		r, err := f(x)
		if err != nil {
			return Value{}, kernelError(err)
		}
		return NewScalar(r), nil
	}
}

func spreadStat(f func([]complex128) (float64, error)) func(Value) (Value, error) {
	return sampleStat(func(x []complex128) (complex128, error) {
		r, err := f(x)
		return complex(r, 0), err
	})
}

func realStat(f func([]float64) (float64, error)) func(Value) (Value, error) {
	return func(v Value) (Value, error) {
		x, err := v.RealVector()
		if err != nil {
			return Value{}, argn(1, err)
		}
		r, err := f(x)
		if err != nil {
			return Value{}, kernelError(err)
		}
		return NewReal(r), nil
	}
}

func total1(f func([]complex128) complex128) func([]complex128) (complex128, error) {
	return func(x []complex128) (complex128, error) { return f(x), nil }
}

func pairedStat(f func(x, y []complex128) (complex128, error)) func(l, r Value) (Value, error) {
	return func(l, r Value) (Value, error) {
		x, err := l.Vector()
		if err != nil {
			return Value{}, argn(1, err)
		}
		y, err := r.Vector()
		if err != nil {
			return Value{}, argn(2, err)
		}
		z, err := f(x, y)
		if err != nil {
			return Value{}, kernelError(err)
		}
		return NewScalar(z), nil
	}
}

func momentStat(f func([]complex128, int) (complex128, error)) func(l, r Value) (Value, error) {
	return func(l, r Value) (Value, error) {
		x, err := l.Vector()
		if err != nil {
			return Value{}, argn(1, err)
		}
		k, err := r.Int()
		if err != nil {
			return Value{}, argn(2, err)
		}
		z, err := f(x, k)
		if err != nil {
			return Value{}, kernelError(err)
		}
		return NewScalar(z), nil
	}
}

// hist computes relative frequencies. Without a second argument, the bucket
// count is chosen from the sample size. The second argument is either a
// bucket count or a list of bucket edges.
func hist(l, r Value) (Value, error) {
	x, err := l.RealVector()
	if err != nil {
		return Value{}, argn(1, err)
	}
	var h []float64
	switch {
	case !r.Present():
		h, err = stats.Histogram(x, stats.DefaultBuckets(len(x)))
	case r.IsScalar():
		var n int
		n, err = r.Int()
		if err != nil {
			return Value{}, argn(2, err)
		}
		h, err = stats.Histogram(x, n)
	default:
		if m, _ := r.Matrix(); !m.IsVector() {
			return Value{}, argn(2, r.mismatch("real vector"))
		}
		var edges []float64
		edges, err = r.RealVector()
		if err != nil {
			return Value{}, argn(2, err)
		}
		h, err = stats.HistogramEdges(x, edges)
	}
	if err != nil {
		return Value{}, kernelError(err)
	}
	return NewMatrix(cmat.RealColumn(h)), nil
}

func registerStatistics(r *Registry) {
	m := []Signature{sig(matrixArg("m"))}
	rm := []Signature{sig(realMatrixArg("m"))}
	mk := []Signature{sig(matrixArg("m"), integerArg("order"))}
	mm := []Signature{sig(matrixArg("m1"), matrixArg("m2"))}
	type entry struct {
		name, display, section, desc string
		sigs                         []Signature
		f                            Factory
		examples                     []Example
	}
	funcs := []entry{
		{
			"median", "Median", sectionAverages,
			"Calculates the median of the elements of a real matrix.",
			rm, Monadic("median", realStat(stats.Median)),
			[]Example{
				{"median({2; 1; 5; 8; -11})", "2"},
				{"median({1, 5; -1.2, 16})", "3"},
			},
		},
		{
			"mean", "Mean", sectionAverages,
			"Calculates the arithmetic mean of the elements of a complex matrix.",
			m, Monadic("mean", sampleStat(stats.Mean)),
			[]Example{
				{"mean({2i; -1; 2.2; 0.6; -11})", "-1.84 + 0.4i"},
				{"mean({6, 5; -1.2 + 13i, 16})", "6.45 + 3.25i"},
			},
		},
		{
			"gmean", "Geometric mean", sectionAverages,
			"Calculates the geometric mean of the elements of a non-negative real matrix.",
			rm, Monadic("gmean", realStat(stats.GeometricMean)),
			[]Example{
				{"gmean({2; 26; 2.2; 1; 1.1})", "2.63004840706915"},
				{"gmean({0, 5; 1.2, 16})", "0"},
			},
		},
		{
			"hmean", "Harmonic mean", sectionAverages,
			"Calculates the harmonic mean of the elements of a nonzero real matrix.",
			rm, Monadic("hmean", realStat(stats.HarmonicMean)),
			[]Example{
				{"hmean({2; 26; 2.2; 1; 1.1})", "1.72289156626506"},
				{"hmean({1, 5; 1.2, 16})", "1.90854870775348"},
			},
		},
		{
			"mode", "Mode", sectionAverages,
			"Returns the most frequent element of a complex matrix. Ties go to the element that occurs first.",
			m, Monadic("mode", sampleStat(stats.Mode)),
			[]Example{
				{"mode({-2; 33; 22.2i; 15; 33})", "33"},
				{"mode({1, 5; 1, 16})", "1"},
			},
		},
		{
			"pvar", "Population variance", sectionMoments,
			"Calculates the population variance of the elements of a complex matrix.",
			m, Monadic("pvar", spreadStat(stats.PopVariance)),
			[]Example{
				{"pvar({2; 3; 6; 8})", "5.6875"},
				{"pvar({-2i, 18; 3.8, 3 - 6i})", "54.42"},
				{"pvar({5})", "0"},
			},
		},
		{
			"svar", "Sample variance", sectionMoments,
			"Calculates the sample variance of the elements of a complex matrix.",
			m, Monadic("svar", spreadStat(stats.SampleVariance)),
			[]Example{
				{"svar({2; -13; 0; 8})", "78.25"},
				{"svar({2, 2.8; -4.7, -2 - 3.5i})", "15.405"},
				{"svar({-8i})", "0"},
			},
		},
		{
			"pstdev", "Population std. deviation", sectionMoments,
			"Calculates the square root of the population variance of the elements of a complex matrix.",
			m, Monadic("pstdev", spreadStat(stats.PopStdDev)),
			[]Example{
				{"pstdev({2; 3; 6; 8})", "2.38484800354236"},
				{"pstdev({-2i, 18; 3.8, 3 - 6i})", "7.3769912566032"},
				{"pstdev({5})", "0"},
			},
		},
		{
			"sstdev", "Sample std. deviation", sectionMoments,
			"Calculates the square root of the sample variance of the elements of a complex matrix.",
			m, Monadic("sstdev", spreadStat(stats.SampleStdDev)),
			[]Example{
				{"sstdev({2; -13; 0; 8})", "8.84590300647707"},
				{"sstdev({2, 2.8; -4.7, -2 - 3.5i})", "3.92492038135807"},
				{"sstdev({12})", "0"},
			},
		},
		{
			"pskew", "Population skewness", sectionMoments,
			"Calculates the population skewness of the elements of a complex matrix.",
			m, Monadic("pskew", sampleStat(stats.PopSkewness)),
			[]Example{
				{"pskew({2.2; -6; 0; 6})", "-0.349105920180674"},
				{"pskew({-2i, 18; 3.8, 3 - 6i})", "1.32062163212182 - 0.0237370452000591i"},
			},
		},
		{
			"sskew", "Sample skewness", sectionMoments,
			"Calculates the sample skewness of the elements of a complex matrix.",
			m, Monadic("sskew", sampleStat(stats.SampleSkewness)),
			[]Example{
				{"sskew({0.4; -6; 4; 6})", "-0.984814784355962"},
				{"sskew({-4i + 5, 1.3; 13.1, 3 - 6i})", "4.03612644357173 + 0.295132430675187i"},
			},
		},
		{
			"pkurt", "Population kurtosis", sectionMoments,
			"Calculates the population excess kurtosis of the elements of a complex matrix.",
			m, Monadic("pkurt", sampleStat(stats.PopKurtosis)),
			[]Example{
				{"pkurt({-14; 13; 2; -66})", "-0.928968973993598"},
				{"pkurt({-22, 2 - 18.4i; 0, 3})", "-1.81674986052611 + 2.79477015182896i"},
			},
		},
		{
			"skurt", "Sample kurtosis", sectionMoments,
			"Calculates the sample excess kurtosis of the elements of a complex matrix.",
			m, Monadic("skurt", sampleStat(stats.SampleKurtosis)),
			[]Example{
				{"skurt({-14; 13; 2; -66})", "2.03273269504802"},
				{"skurt({-22, 2 - 18.4i; 0, 3})", "-4.62562395394586 + 20.9607761387172i"},
			},
		},
		{
			"moment", "Moment", sectionMoments,
			"Calculates the raw moment of a given order of the elements of a complex matrix.",
			mk, Dyadic("moment", momentStat(stats.Moment)),
			[]Example{
				{"moment({-14; 13; 2; -66}, 2)", "1181.25"},
				{"moment({-22, 2 - 18.4i; 0, 3}, 3)", "-3161.09 + 1502.176i"},
			},
		},
		{
			"cmoment", "Central moment", sectionMoments,
			"Calculates the central moment of a given order of the elements of a complex matrix.",
			mk, Dyadic("cmoment", momentStat(stats.CentralMoment)),
			[]Example{
				{"cmoment({-14; 13; 2; -66}, 2)", "917.1875"},
				{"cmoment({-22, 2 - 18.4i; 0, 3}, 3)", "-2016.09375 + 1510.341i"},
			},
		},
		{
			"pcov", "Population covariance", sectionCovariance,
			"Calculates the population covariance of two samples of equal size.",
			mm, Dyadic("pcov", pairedStat(stats.PopCovariance)),
			[]Example{
				{"pcov({-14; 13; 2; -66}, {1; 1.4; -111; 5.5})", "-564.04375"},
				{"pcov({-22, 2 - 18.4i; 0, 3}, {2.4i, 3.3; 44, -0.2})", "54.30375 + 49.635i"},
			},
		},
		{
			"scov", "Sample covariance", sectionCovariance,
			"Calculates the sample covariance of two samples of equal size.",
			mm, Dyadic("scov", pairedStat(stats.SampleCovariance)),
			[]Example{
				{"scov({-14; 13; 2; -66}, {1; 1.4; -111; 6.6})", "-770.3"},
				{"scov({-22, 2 - 18.4i; 0, 3}, {2.4i, 3.3; 44, -0.2})", "72.405 + 66.18i"},
			},
		},
		{
			"corr", "Correlation", sectionCovariance,
			"Calculates the Pearson correlation of two samples of equal size.",
			mm, Dyadic("corr", pairedStat(stats.Correlation)),
			[]Example{
				{"corr({-14; 13; 2; -66}, {1; 1.4; -111; 6.6})", "-0.3860576577199"},
				{"corr({-22, 2 - 18.4i; 0, 3}, {-21, 2.5 - 18.4i; 3, 2})", "0.993950652653727 + 0.0102431643927006i"},
			},
		},
		{
			"sum", "Sum", sectionSumProduct,
			"Calculates the sum of the elements of a complex matrix.",
			m, Monadic("sum", sampleStat(total1(stats.Sum))),
			[]Example{
				{"sum({-12; 15; 2; 6.6})", "11.6"},
				{"sum({-14i, 2 - 0.2i; 2, 3 - 3i})", "7 - 17.2i"},
			},
		},
		{
			"sumsq", "Sum of squares", sectionSumProduct,
			"Calculates the sum of the squares of the elements of a complex matrix.",
			m, Monadic("sumsq", sampleStat(total1(stats.SumSquares))),
			[]Example{
				{"sumsq({-12; 15; 2; 6.6})", "416.56"},
				{"sumsq({-14i, 2 - 0.2i; 2, 3 - 3i})", "-188.04 - 18.8i"},
			},
		},
		{
			"prod", "Product", sectionSumProduct,
			"Calculates the product of the elements of a complex matrix.",
			m, Monadic("prod", sampleStat(total1(stats.Product))),
			[]Example{
				{"prod({-12; 15; 2; 6.6})", "-2376"},
				{"prod({-12; 15; 0; 6.6})", "0"},
				{"prod({-14i, 2 - 0.2i; 2, 3 - 3i})", "-184.8 - 151.2i"},
			},
		},
		{
			"hist", "Histogram", sectionHistogram,
			"Returns the relative frequencies of the elements of a real vector in equal intervals, a given number of equal intervals, or intervals between given edges.",
			[]Signature{
				sig(realVectorArg("v")),
				sig(realVectorArg("v"), integerArg("intervals")),
				sig(realVectorArg("v"), realVectorArg("edges")),
			},
			Dyadic("hist", hist),
			[]Example{
				{"hist({15; 28; 6.6; 6; -12})", "{0.2; 0.4; 0.4}"},
				{"hist({-12; -3; 6.6; -10}, 2)", "{0.75; 0.25}"},
				{"hist({-12; 15; 0; 6.6}, {-15; 5; 30})", "{0.5; 0.5}"},
			},
		},
	}
	for _, f := range funcs {
		r.MustRegister(Descriptor{
			Name:        f.name,
			DisplayName: f.display,
			Category:    categoryStatistics,
			Section:     f.section,
			Description: f.desc,
			Signatures:  f.sigs,
			Examples:    f.examples,
		}, f.f)
	}
}
