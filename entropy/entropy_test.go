// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entropy

import (
	"math"
	"testing"

	"github.com/emer/etable/etensor"
)

func TestErrors(t *testing.T) {
	out := etensor.NewFloat64([]int{2, 4}, nil, []string{"Row", "Bit"})
	ref := etensor.NewInt([]int{2, 4}, nil, []string{"Row", "Bit"})
	copy(out.Values, []float64{
		1.0, 0.5, 0.0, 0.0,
		1.0, 1.0, 0.25, 0.0,
	})
	copy(ref.Values, []int{
		1, 0, 1, 0,
		1, 1, 0, 0,
	})
	errs := Errors(out, ref)
	if len(errs) != 2 {
		t.Fatalf("got %d error records, want 2", len(errs))
	}
	if errs[0].FalsePositives != 0.5 || errs[0].FalseNegatives != 1.0 {
		t.Errorf("sample 0: got fp=%g fn=%g, want fp=0.5 fn=1", errs[0].FalsePositives, errs[0].FalseNegatives)
	}
	if errs[1].FalsePositives != 0.25 || errs[1].FalseNegatives != 0 {
		t.Errorf("sample 1: got fp=%g fn=%g, want fp=0.25 fn=0", errs[1].FalsePositives, errs[1].FalseNegatives)
	}
}

// a perfect recall of N samples contributes N * log2 C(nBits, nOnes)
func TestEntropyPerfect(t *testing.T) {
	errs := make([]SampleErrors, 5)
	got := Entropy(errs, 16, 3)
	want := 5.0 * math.Log2(560) // C(16,3) = 560
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("perfect entropy = %g, want %g", got, want)
	}
}

// an all-ones output carries no information about the stored pattern
func TestEntropyAllOnes(t *testing.T) {
	errs := []SampleErrors{{FalsePositives: 13, FalseNegatives: 0}}
	got := Entropy(errs, 16, 3)
	if math.Abs(got) > 1e-9 {
		t.Errorf("all-ones entropy = %g, want 0", got)
	}
	if math.IsNaN(got) {
		t.Errorf("all-ones entropy is NaN")
	}
}

func TestEntropyMonotonic(t *testing.T) {
	prev := math.Inf(1)
	for fp := 0.0; fp <= 8; fp++ {
		e := Entropy([]SampleErrors{{FalsePositives: fp}}, 16, 3)
		if e > prev {
			t.Errorf("entropy increased from %g to %g at fp=%g", prev, e, fp)
		}
		prev = e
	}
}

func TestExpectedFalsePositives(t *testing.T) {
	// one stored sample, 4x4 bits, 2 ones: p = 1 - (1 - 4/16) = 0.25,
	// E[fp] = (4-2) * 0.25^2 = 0.125
	got := ExpectedFalsePositives(1, 4, 4, 2, 2)
	if math.Abs(got-0.125) > 1e-12 {
		t.Errorf("expected false positives = %g, want 0.125", got)
	}
	// more stored samples mean more false positives
	if ExpectedFalsePositives(10, 4, 4, 2, 2) <= got {
		t.Errorf("expected false positives should grow with sample count")
	}
}

func TestOptimalSampleCount(t *testing.T) {
	n := OptimalSampleCount(16, 16, 3, 3)
	if n < 1 {
		t.Fatalf("optimal sample count = %d", n)
	}
	best := ExpectedEntropy(n, 16, 16, 3, 3)
	if ExpectedEntropy(n+1, 16, 16, 3, 3) > best {
		t.Errorf("sample count %d is not a maximum (n+1 is better)", n)
	}
	if n > 1 && ExpectedEntropy(n-1, 16, 16, 3, 3) > best {
		t.Errorf("sample count %d is not a maximum (n-1 is better)", n)
	}
}

func TestOptimalParameters(t *testing.T) {
	ones, ns := OptimalParameters(-1, 16, 16)
	if ones < 1 || ones > 16 {
		t.Fatalf("optimal ones = %d", ones)
	}
	if ns < 1 {
		t.Fatalf("optimal sample count = %d", ns)
	}
	// fixed sample count: only the ones count is tuned
	ones2, ns2 := OptimalParameters(50, 16, 16)
	if ns2 != 50 {
		t.Errorf("fixed sample count changed to %d", ns2)
	}
	if ones2 < 1 {
		t.Errorf("optimal ones = %d for fixed samples", ones2)
	}
}
