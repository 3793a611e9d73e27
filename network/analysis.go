// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package network

import (
	"fmt"
	"math"
	"sort"

	"github.com/emer/etable/etensor"
	"github.com/emer/gonam/binam"
	"github.com/emer/gonam/entropy"
)

// Analysis holds the demultiplexed result of one experiment block:
// tagged input and output spikes plus everything needed to score them
// against the expected output.
type Analysis struct {
	InputTimes    [][]float64       `desc:"per source neuron spike times, tags rebased to this block"`
	InputIndices  [][]int           `desc:"per source neuron sample tags"`
	OutputTimes   [][]float64       `desc:"per output neuron spike times"`
	OutputIndices [][]int           `desc:"per output neuron sample tags from matching"`
	Input         InputParams       `desc:"input encoding of this block"`
	Data          DataParams        `desc:"sample geometry"`
	Topology      TopologyParams    `desc:"network topology parameters"`
	Meta          map[string]string `desc:"experiment annotations"`
	MatIn         *etensor.Int      `view:"no-inline" desc:"input sample matrix"`
	MatOut        *etensor.Int      `view:"no-inline" desc:"expected output sample matrix"`
}

// Latencies returns, per sample, the delay between the last input spike
// and the last output spike of that sample.  Samples without both an
// input and an output spike get +Inf.
func (na *Analysis) Latencies() ([]float64, error) {
	tIn, kIn, _, err := Flatten(na.InputTimes, na.InputIndices, true)
	if err != nil {
		return nil, err
	}
	tOut, kOut, _, err := Flatten(na.OutputTimes, na.OutputIndices, true)
	if err != nil {
		return nil, err
	}
	res := make([]float64, na.Data.NSamples)
	for k := range res {
		iIn := sort.Search(len(kIn), func(i int) bool { return kIn[i] > k }) - 1
		iOut := sort.Search(len(kOut), func(i int) bool { return kOut[i] > k }) - 1
		if iIn < 0 || iOut < 0 || kIn[iIn] != k || kOut[iOut] != k {
			res[k] = math.Inf(1)
			continue
		}
		res[k] = tOut[iOut] - tIn[iIn]
	}
	return res, nil
}

// OutputMatrix reconstructs the analog output sample matrix from the
// tagged output spikes: spike counts per (sample, logical bit),
// normalized by multiplicity times the expected output burst size.  A
// perfectly recalled one therefore scores exactly 1.
func (na *Analysis) OutputMatrix(op *OutputParams) (*etensor.Float64, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}
	_, kOut, nOut, err := Flatten(na.OutputTimes, na.OutputIndices, true)
	if err != nil {
		return nil, err
	}
	s := na.Topology.Multiplicity
	rows := na.Data.NSamples
	n := na.Data.NBitsOut
	res := etensor.NewFloat64([]int{rows, n}, nil, []string{"Row", "Bit"})
	for i := range kOut {
		k := kOut[i]
		if k < 0 || k >= rows {
			continue
		}
		bit := nOut[i] / s
		if bit >= n {
			continue
		}
		res.Values[k*n+bit]++
	}
	scale := 1.0 / float64(s*op.BurstSize)
	for i := range res.Values {
		res.Values[i] *= scale
	}
	return res, nil
}

// StorageCapacity scores the recalled output against the expected
// matrix: the information content in bits, along with the reconstructed
// output matrix and the per-sample error counts it was computed from.
func (na *Analysis) StorageCapacity(op *OutputParams) (float64, *etensor.Float64, []entropy.SampleErrors, error) {
	out, err := na.OutputMatrix(op)
	if err != nil {
		return 0, nil, nil, err
	}
	errs := entropy.Errors(out, na.MatOut)
	info := entropy.Entropy(errs, na.Data.NBitsOut, na.Data.NOnesOut)
	return info, out, errs, nil
}

// MaxStorageCapacity returns the information a perfectly implemented
// memory would reach on the same samples: the trained memory is
// evaluated directly, without any spiking dynamics.
func (na *Analysis) MaxStorageCapacity() (float64, *etensor.Float64, []entropy.SampleErrors, error) {
	if na.MatIn == nil || na.MatOut == nil {
		return 0, nil, nil, fmt.Errorf("network: analysis carries no sample matrices")
	}
	mem := binam.New(na.Data.NBitsIn, na.Data.NBitsOut)
	if err := mem.TrainMatrix(na.MatIn, na.MatOut); err != nil {
		return 0, nil, nil, err
	}
	refInt, err := mem.EvaluateMatrix(na.MatIn)
	if err != nil {
		return 0, nil, nil, err
	}
	ref := etensor.NewFloat64([]int{refInt.Dim(0), refInt.Dim(1)}, nil, []string{"Row", "Bit"})
	for i, v := range refInt.Values {
		ref.Values[i] = float64(v)
	}
	errs := entropy.Errors(ref, na.MatOut)
	info := entropy.Entropy(errs, na.Data.NBitsOut, na.Data.NOnesOut)
	return info, ref, errs, nil
}
