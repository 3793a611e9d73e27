// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package binam

import (
	"testing"
)

func TestTrainEvaluate(t *testing.T) {
	bm := New(4, 4)
	if !bm.Empty() {
		t.Errorf("fresh memory should be empty")
	}
	err := bm.Train([]int{1, 1, 0, 0}, []int{1, 0, 1, 0})
	if err != nil {
		t.Fatal(err)
	}
	err = bm.Train([]int{0, 0, 1, 1}, []int{0, 1, 0, 1})
	if err != nil {
		t.Fatal(err)
	}
	if bm.Empty() {
		t.Errorf("trained memory should not be empty")
	}

	// trained patterns recall exactly (no false negatives by construction)
	out := bm.Evaluate([]int{1, 1, 0, 0})
	for j, want := range []int{1, 0, 1, 0} {
		if out[j] != want {
			t.Errorf("recall bit %d: got %d, want %d", j, out[j], want)
		}
	}
	out = bm.Evaluate([]int{0, 0, 1, 1})
	for j, want := range []int{0, 1, 0, 1} {
		if out[j] != want {
			t.Errorf("recall bit %d: got %d, want %d", j, out[j], want)
		}
	}

	// storage matrix has exactly the outer-product bits
	wantW := []int{
		1, 0, 1, 0,
		1, 0, 1, 0,
		0, 1, 0, 1,
		0, 1, 0, 1,
	}
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if bm.At(i, j) != wantW[i*4+j] {
				t.Errorf("W[%d,%d] = %d, want %d", i, j, bm.At(i, j), wantW[i*4+j])
			}
		}
	}
}

func TestTrainSizeMismatch(t *testing.T) {
	bm := New(4, 4)
	if err := bm.Train([]int{1, 0}, []int{1, 0, 0, 0}); err == nil {
		t.Errorf("expected error for wrong input width")
	}
	if err := bm.Train([]int{1, 0, 0, 0}, []int{1, 0}); err == nil {
		t.Errorf("expected error for wrong output width")
	}
}

func TestMatrixRoundTrip(t *testing.T) {
	in := NewMatrix(2, 4)
	out := NewMatrix(2, 4)
	copy(in.Values, []int{
		1, 1, 0, 0,
		0, 0, 1, 1,
	})
	copy(out.Values, []int{
		1, 0, 1, 0,
		0, 1, 0, 1,
	})
	bm := New(4, 4)
	if err := bm.TrainMatrix(in, out); err != nil {
		t.Fatal(err)
	}
	res, err := bm.EvaluateMatrix(in)
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range out.Values {
		if res.Values[i] != want {
			t.Errorf("recalled value %d = %d, want %d", i, res.Values[i], want)
		}
	}
}

func TestTrainMatrixRowMismatch(t *testing.T) {
	bm := New(4, 4)
	if err := bm.TrainMatrix(NewMatrix(2, 4), NewMatrix(3, 4)); err == nil {
		t.Errorf("expected error for mismatched sample counts")
	}
}

func TestRowOnes(t *testing.T) {
	mat := NewMatrix(2, 5)
	copy(mat.Values, []int{
		1, 0, 1, 0, 1,
		0, 0, 0, 0, 0,
	})
	if n := RowOnes(mat, 0); n != 3 {
		t.Errorf("row 0 ones = %d, want 3", n)
	}
	if n := RowOnes(mat, 1); n != 0 {
		t.Errorf("row 1 ones = %d, want 0", n)
	}
}
