// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package binam implements the binary neural associative memory (BiNAM,
also known as the Willshaw or Steinbuch matrix memory).

The memory is a binary storage matrix W of shape NIn x NOut.  Training
with an input / output bit-vector pair sets W[i,j] for every pair of set
bits (i in the input, j in the output).  Evaluation thresholds the
matrix-vector product at the number of ones in the input vector, so a
perfectly stored pattern is always recalled, and crosstalk between
patterns can only ever produce false positives, never false negatives.

Binary sample matrices (one row per sample, one column per bit) are
represented as etensor.Int tensors throughout.
*/
package binam

import (
	"fmt"

	"github.com/emer/etable/etensor"
)

// NewMatrix returns a rows x cols binary sample matrix, zero initialized.
func NewMatrix(rows, cols int) *etensor.Int {
	return etensor.NewInt([]int{rows, cols}, nil, []string{"Row", "Bit"})
}

// RowOnes returns the number of set bits in the given row of a binary
// sample matrix.
func RowOnes(mat *etensor.Int, row int) int {
	n := mat.Dim(1)
	ones := 0
	for j := 0; j < n; j++ {
		if mat.Values[row*n+j] != 0 {
			ones++
		}
	}
	return ones
}

// BiNAM is a binary associative memory storing hetero-associations from
// NIn-bit input vectors to NOut-bit output vectors.
type BiNAM struct {
	NIn  int         `desc:"number of input bits (rows of the storage matrix)"`
	NOut int         `desc:"number of output bits (columns of the storage matrix)"`
	W    etensor.Int `view:"no-inline" desc:"binary storage matrix, shape NIn x NOut, entry (i,j) set if any trained sample had input bit i and output bit j active together"`
}

// New returns a BiNAM for the given input / output bit counts.
func New(nIn, nOut int) *BiNAM {
	bm := &BiNAM{NIn: nIn, NOut: nOut}
	bm.W.SetShape([]int{nIn, nOut}, nil, []string{"In", "Out"})
	return bm
}

// At returns the binary weight between input bit i and output bit j.
func (bm *BiNAM) At(i, j int) int {
	return bm.W.Values[i*bm.NOut+j]
}

// Empty reports whether the memory has no set weights (nothing trained,
// or only all-zero samples trained).
func (bm *BiNAM) Empty() bool {
	for _, w := range bm.W.Values {
		if w != 0 {
			return false
		}
	}
	return true
}

// Train stores one input / output bit-vector pair.
func (bm *BiNAM) Train(in, out []int) error {
	if len(in) != bm.NIn || len(out) != bm.NOut {
		return fmt.Errorf("binam.Train: sample size %d x %d does not match memory %d x %d", len(in), len(out), bm.NIn, bm.NOut)
	}
	for i := 0; i < bm.NIn; i++ {
		if in[i] == 0 {
			continue
		}
		base := i * bm.NOut
		for j := 0; j < bm.NOut; j++ {
			if out[j] != 0 {
				bm.W.Values[base+j] = 1
			}
		}
	}
	return nil
}

// TrainMatrix stores every row pair of the given input / output sample
// matrices.  The matrices must have the same number of rows and widths
// matching the memory.
func (bm *BiNAM) TrainMatrix(in, out *etensor.Int) error {
	if in.Dim(0) != out.Dim(0) {
		return fmt.Errorf("binam.TrainMatrix: input has %d samples, output has %d", in.Dim(0), out.Dim(0))
	}
	n := in.Dim(0)
	m := in.Dim(1)
	no := out.Dim(1)
	for k := 0; k < n; k++ {
		err := bm.Train(in.Values[k*m:(k+1)*m], out.Values[k*no:(k+1)*no])
		if err != nil {
			return err
		}
	}
	return nil
}

// Evaluate recalls the output vector for the given input vector, using
// the number of ones in the input as the recall threshold.
func (bm *BiNAM) Evaluate(in []int) []int {
	thr := 0
	for _, v := range in {
		if v != 0 {
			thr++
		}
	}
	out := make([]int, bm.NOut)
	for j := 0; j < bm.NOut; j++ {
		sum := 0
		for i := 0; i < bm.NIn; i++ {
			if in[i] != 0 && bm.W.Values[i*bm.NOut+j] != 0 {
				sum++
			}
		}
		if sum >= thr {
			out[j] = 1
		}
	}
	return out
}

// EvaluateMatrix recalls an output matrix row-by-row for the given input
// sample matrix.
func (bm *BiNAM) EvaluateMatrix(in *etensor.Int) (*etensor.Int, error) {
	if in.Dim(1) != bm.NIn {
		return nil, fmt.Errorf("binam.EvaluateMatrix: input width %d does not match memory %d", in.Dim(1), bm.NIn)
	}
	n := in.Dim(0)
	m := in.Dim(1)
	res := NewMatrix(n, bm.NOut)
	for k := 0; k < n; k++ {
		out := bm.Evaluate(in.Values[k*m : (k+1)*m])
		copy(res.Values[k*bm.NOut:(k+1)*bm.NOut], out)
	}
	return res, nil
}
