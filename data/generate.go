// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package data generates the binary sample matrices stored in and recalled
from a BiNAM.  Each sample is one row with a fixed number of set bits.

Three generation algorithms are provided: random (independent draws),
balanced (keeps overall bit usage even) and unique (distinct rows
without the usage weighting).  All generation takes an explicit random
source so repeated builds cannot interfere with unrelated consumers of
randomness.
*/
package data

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/emer/etable/etensor"
)

// number of attempts at generating a row distinct from all previous ones
// before accepting a duplicate (the sample space may be exhausted)
const uniqueRetries = 64

// ForAlgorithm generates an nSamples x nBits sample matrix with nOnes
// set bits per row using the given generation algorithm.  An algorithm
// outside the defined set is a configuration error.
func ForAlgorithm(alg Algorithm, rnd *rand.Rand, nBits, nOnes, nSamples int) (*etensor.Int, error) {
	switch alg {
	case Random:
		return GenerateRandom(rnd, nBits, nOnes, nSamples), nil
	case Balanced:
		return Generate(rnd, nBits, nOnes, nSamples, true), nil
	case Unique:
		return Generate(rnd, nBits, nOnes, nSamples, false), nil
	}
	return nil, fmt.Errorf("data.ForAlgorithm: invalid algorithm %v, must be one of Random, Balanced, Unique", alg)
}

// GenerateRandom generates a sample matrix with nOnes set bits drawn
// independently at random for each row.
func GenerateRandom(rnd *rand.Rand, nBits, nOnes, nSamples int) *etensor.Int {
	mat := etensor.NewInt([]int{nSamples, nBits}, nil, []string{"Row", "Bit"})
	for k := 0; k < nSamples; k++ {
		for _, i := range rnd.Perm(nBits)[:nOnes] {
			mat.Values[k*nBits+i] = 1
		}
	}
	return mat
}

// Generate generates a sample matrix with nOnes set bits per row, with
// rows kept distinct from each other where possible.  With balance, the
// bits chosen for each row are those used least so far (random
// tie-break), keeping the overall usage of each bit as even as possible.
func Generate(rnd *rand.Rand, nBits, nOnes, nSamples int, balance bool) *etensor.Int {
	mat := etensor.NewInt([]int{nSamples, nBits}, nil, []string{"Row", "Bit"})
	usage := make([]int, nBits)
	seen := map[string]bool{}
	for k := 0; k < nSamples; k++ {
		var row []int
		for try := 0; try < uniqueRetries; try++ {
			row = drawRow(rnd, usage, nOnes, balance)
			if !seen[rowKey(row)] {
				break
			}
		}
		seen[rowKey(row)] = true
		for _, i := range row {
			usage[i]++
			mat.Values[k*nBits+i] = 1
		}
	}
	return mat
}

// drawRow picks nOnes bit indices, least-used first when balancing,
// with random tie-breaking from a shuffled base order.
func drawRow(rnd *rand.Rand, usage []int, nOnes int, balance bool) []int {
	ord := rnd.Perm(len(usage))
	if balance {
		sort.SliceStable(ord, func(a, b int) bool {
			return usage[ord[a]] < usage[ord[b]]
		})
	}
	row := append([]int{}, ord[:nOnes]...)
	sort.Ints(row)
	return row
}

func rowKey(row []int) string {
	return fmt.Sprint(row)
}
