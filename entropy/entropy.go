// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package entropy provides the information-theoretic analysis of BiNAM
recall results: per-sample error counts between a measured output matrix
and its binary reference, the storage-capacity entropy computed from
those error counts, and expected-value versions of the same formulas
used to auto-tune the sample geometry before any data is generated.

Error counts are real valued because the measured output matrix is on an
expected-activity scale (spike counts normalized by multiplicity and
burst size), not binary.  The entropy formula correspondingly uses the
generalized (real-argument) binomial coefficient.
*/
package entropy

import (
	"math"

	"github.com/emer/etable/etensor"
	"gonum.org/v1/gonum/stat/combin"
)

// SampleErrors holds the recall errors of one sample: the summed
// positive deviation (spurious activity) and negative deviation (missing
// activity) between the measured and the expected output row.
type SampleErrors struct {
	FalsePositives float64 `desc:"summed activity on bits that should be zero"`
	FalseNegatives float64 `desc:"summed missing activity on bits that should be one"`
}

// Errors computes the per-sample error counts between a measured output
// matrix (real valued, expected-activity scale) and the binary reference
// matrix.  Both must have the same shape.
func Errors(out *etensor.Float64, ref *etensor.Int) []SampleErrors {
	n := out.Dim(0)
	m := out.Dim(1)
	errs := make([]SampleErrors, n)
	for k := 0; k < n; k++ {
		for j := 0; j < m; j++ {
			d := out.Values[k*m+j] - float64(ref.Values[k*m+j])
			if d > 0 {
				errs[k].FalsePositives += d
			} else {
				errs[k].FalseNegatives -= d
			}
		}
	}
	return errs
}

// lnBinom is the natural log of the generalized binomial coefficient,
// with arguments clamped to the valid domain so that error counts
// slightly outside it (from activity overshoot) do not produce NaNs.
func lnBinom(n, k float64) float64 {
	if n <= 0 {
		return 0
	}
	if k < 0 {
		k = 0
	}
	if k > n {
		k = n
	}
	return combin.LogGeneralizedBinomial(n, k)
}

// Entropy computes the information in bits contained in the given recall
// error counts, for nBitsOut output bits with nOnesOut ones per sample.
// A sample recalled perfectly contributes log2 C(nBitsOut, nOnesOut)
// bits; errors reduce the contribution down to zero for an
// uninformative (e.g. all-ones) output.
func Entropy(errs []SampleErrors, nBitsOut, nOnesOut int) float64 {
	n := float64(nBitsOut)
	l := float64(nOnesOut)
	info := 0.0
	for _, e := range errs {
		// m1 is the total activity in the recalled vector
		m1 := l + e.FalsePositives - e.FalseNegatives
		info += (lnBinom(n, l) - lnBinom(m1, l-e.FalseNegatives) - lnBinom(n-m1, e.FalseNegatives)) / math.Ln2
	}
	return info
}

// ExpectedFalsePositives returns the expected number of false positives
// per sample after storing nSamples random samples in a BiNAM with the
// given geometry.
func ExpectedFalsePositives(nSamples, nBitsIn, nBitsOut, nOnesIn, nOnesOut int) float64 {
	m := float64(nBitsIn)
	n := float64(nBitsOut)
	lin := float64(nOnesIn)
	lout := float64(nOnesOut)
	// probability of a single storage matrix bit being set
	p := 1.0 - math.Pow(1.0-(lin*lout)/(m*n), float64(nSamples))
	return (n - lout) * math.Pow(p, lin)
}

// ExpectedEntropy returns the expected total information in bits for the
// given geometry, assuming the expected number of false positives on
// every sample and no false negatives.
func ExpectedEntropy(nSamples, nBitsIn, nBitsOut, nOnesIn, nOnesOut int) float64 {
	fp := ExpectedFalsePositives(nSamples, nBitsIn, nBitsOut, nOnesIn, nOnesOut)
	errs := make([]SampleErrors, nSamples)
	for k := range errs {
		errs[k].FalsePositives = fp
	}
	return Entropy(errs, nBitsOut, nOnesOut)
}

// OptimalSampleCount returns the sample count that maximizes the
// expected total information for the given geometry.  The expected
// entropy is unimodal in the sample count, so a linear scan with a
// safety margin past the best value suffices.
func OptimalSampleCount(nBitsIn, nBitsOut, nOnesIn, nOnesOut int) int {
	best := 0.0
	bestN := 1
	for n := 1; ; n++ {
		e := ExpectedEntropy(n, nBitsIn, nBitsOut, nOnesIn, nOnesOut)
		if e > best {
			best = e
			bestN = n
		} else if n > 2*bestN+16 {
			break
		}
	}
	return bestN
}

// OptimalParameters auto-tunes the number of ones (same for input and
// output) and, if nSamples <= 0, the sample count, maximizing the
// expected total information for the given bit counts.  Returns the
// chosen nOnes and nSamples.
func OptimalParameters(nSamples, nBitsIn, nBitsOut int) (nOnes, nSamplesOut int) {
	maxOnes := nBitsIn
	if nBitsOut < maxOnes {
		maxOnes = nBitsOut
	}
	best := 0.0
	nOnes = 1
	nSamplesOut = 1
	for l := 1; l <= maxOnes/2+1; l++ {
		ns := nSamples
		if ns <= 0 {
			ns = OptimalSampleCount(nBitsIn, nBitsOut, l, l)
		}
		e := ExpectedEntropy(ns, nBitsIn, nBitsOut, l, l)
		if e > best {
			best = e
			nOnes = l
			nSamplesOut = ns
		}
	}
	return
}
