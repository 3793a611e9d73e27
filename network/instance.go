// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package network

import (
	"fmt"
	"sort"

	"github.com/emer/etable/etensor"
	"github.com/emer/gonam/simnet"
)

// Instance is one fully assembled experiment: the network description
// with input spike trains injected, plus the tagging and split
// descriptors needed to demultiplex the simulation result.
type Instance struct {
	Net          *simnet.Network   `desc:"network description, input already injected"`
	InputTimes   [][]float64       `desc:"per source neuron spike times in ms"`
	InputIndices [][]int           `desc:"per source neuron sample tags, aligned with InputTimes"`
	InputSplit   []int             `desc:"cumulative sample-tag count after each input-parameter block, the temporal split descriptor"`
	Input        []InputParams     `desc:"input encoding, one entry per temporal block"`
	Data         DataParams        `desc:"sample geometry"`
	Topology     TopologyParams    `desc:"network topology parameters"`
	Meta         map[string]string `desc:"free-form experiment annotations, carried through to the analysis"`
	MatIn        *etensor.Int      `view:"no-inline" desc:"input sample matrix"`
	MatOut       *etensor.Int      `view:"no-inline" desc:"expected output sample matrix"`
}

// NeuronCount returns the number of neurons in the experiment, see
// simnet.Network.NeuronCount.
func (ni *Instance) NeuronCount(countSources bool) int {
	return ni.Net.NeuronCount(countSources)
}

// EndTime returns the time of the last input spike, for sizing the
// simulation duration.
func (ni *Instance) EndTime() float64 {
	return endTime(ni.InputTimes)
}

func endTime(times [][]float64) float64 {
	last := 0.0
	for _, ts := range times {
		for _, t := range ts {
			if t > last {
				last = t
			}
		}
	}
	return last
}

// Flatten merges per-neuron spike trains into flat time, tag and neuron
// index slices.  With bySample set the result is ordered by sample tag
// first and time second; otherwise purely by time.  Sorting is stable,
// so equal keys keep their neuron order.
func Flatten(times [][]float64, indices [][]int, bySample bool) ([]float64, []int, []int, error) {
	if len(times) != len(indices) {
		return nil, nil, nil, fmt.Errorf("network: %d spike trains but %d tag lists", len(times), len(indices))
	}
	total := 0
	for i := range times {
		if len(times[i]) != len(indices[i]) {
			return nil, nil, nil, fmt.Errorf("network: neuron %d has %d spikes but %d tags", i, len(times[i]), len(indices[i]))
		}
		total += len(times[i])
	}
	tF := make([]float64, 0, total)
	kF := make([]int, 0, total)
	nF := make([]int, 0, total)
	for i := range times {
		for j := range times[i] {
			tF = append(tF, times[i][j])
			kF = append(kF, indices[i][j])
			nF = append(nF, i)
		}
	}
	ord := make([]int, total)
	for i := range ord {
		ord[i] = i
	}
	if bySample {
		sort.SliceStable(ord, func(a, b int) bool {
			if kF[ord[a]] != kF[ord[b]] {
				return kF[ord[a]] < kF[ord[b]]
			}
			return tF[ord[a]] < tF[ord[b]]
		})
	} else {
		sort.SliceStable(ord, func(a, b int) bool { return tF[ord[a]] < tF[ord[b]] })
	}
	rt := make([]float64, total)
	rk := make([]int, total)
	rn := make([]int, total)
	for i, o := range ord {
		rt[i] = tF[o]
		rk[i] = kF[o]
		rn[i] = nF[o]
	}
	return rt, rk, rn, nil
}

// Match tags output spike trains with sample indices: each output spike
// inherits the tag of the latest input spike at or before it.  Output
// spikes preceding all input activity fall back to the earliest input
// tag, or to tag 0 if there was no input at all.
func Match(inputTimes [][]float64, inputIndices [][]int, outputTimes [][]float64) ([][]float64, [][]int, error) {
	tIn, kIn, _, err := Flatten(inputTimes, inputIndices, false)
	if err != nil {
		return nil, nil, err
	}
	outIndices := make([][]int, len(outputTimes))
	for i, ts := range outputTimes {
		outIndices[i] = make([]int, len(ts))
		for j, t := range ts {
			idx := sort.SearchFloat64s(tIn, t)
			if idx > 0 {
				idx--
			}
			if idx < len(tIn) {
				outIndices[i][j] = kIn[idx]
			}
		}
	}
	return outputTimes, outIndices, nil
}

// Split extracts the spikes whose tags fall into [k0, k1) and rebases
// the tags to start at zero.
func Split(times [][]float64, indices [][]int, k0, k1 int) ([][]float64, [][]int, error) {
	if len(times) != len(indices) {
		return nil, nil, fmt.Errorf("network: %d spike trains but %d tag lists", len(times), len(indices))
	}
	rts := make([][]float64, len(times))
	rks := make([][]int, len(indices))
	for i := range times {
		if len(times[i]) != len(indices[i]) {
			return nil, nil, fmt.Errorf("network: neuron %d has %d spikes but %d tags", i, len(times[i]), len(indices[i]))
		}
		for j, k := range indices[i] {
			if k < k0 || k >= k1 {
				continue
			}
			rts[i] = append(rts[i], times[i][j])
			rks[i] = append(rks[i], k-k0)
		}
	}
	return rts, rks, nil
}

// Match tags this experiment's output spikes with sample indices, see
// the package-level Match.
func (ni *Instance) Match(outputTimes [][]float64) ([][]float64, [][]int, error) {
	return Match(ni.InputTimes, ni.InputIndices, outputTimes)
}

// BuildAnalysis demultiplexes a simulation result: the output recording
// is matched against the input, cut along the temporal split descriptor
// and wrapped into one Analysis per input-parameter block.
func (ni *Instance) BuildAnalysis(output []simnet.Recording) ([]*Analysis, error) {
	if len(output) < 2 {
		return nil, fmt.Errorf("network: expected recordings for 2 populations, got %d", len(output))
	}
	return buildAnalysis(ni.InputTimes, ni.InputIndices, output[1].Spikes, ni.InputSplit,
		ni.Input, ni.Data, ni.Topology, ni.Meta, ni.MatIn, ni.MatOut)
}

func buildAnalysis(inputTimes [][]float64, inputIndices [][]int, outputSpikes [][]float64, inputSplit []int,
	ips []InputParams, dp DataParams, tp TopologyParams, meta map[string]string,
	matIn, matOut *etensor.Int) ([]*Analysis, error) {
	outTimes, outIndices, err := Match(inputTimes, inputIndices, outputSpikes)
	if err != nil {
		return nil, err
	}
	split := inputSplit
	if len(split) == 0 {
		// no descriptor: treat everything as one block covering all
		// tags actually present
		maxTag := -1
		for _, ks := range inputIndices {
			for _, k := range ks {
				if k > maxTag {
					maxTag = k
				}
			}
		}
		if maxTag < 0 {
			split = []int{dp.NSamples}
		} else {
			split = []int{maxTag + 1}
		}
	}
	res := make([]*Analysis, 0, len(split))
	k0 := 0
	for i, k1 := range split {
		if k1 < k0 {
			return nil, fmt.Errorf("network: split descriptor not monotonic at block %d: %d after %d", i, k1, k0)
		}
		inT, inK, err := Split(inputTimes, inputIndices, k0, k1)
		if err != nil {
			return nil, err
		}
		outT, outK, err := Split(outTimes, outIndices, k0, k1)
		if err != nil {
			return nil, err
		}
		var ip InputParams
		ip.Defaults()
		if len(ips) > 0 {
			ii := i
			if ii >= len(ips) {
				ii = len(ips) - 1
			}
			ip = ips[ii]
		}
		res = append(res, &Analysis{
			InputTimes:    inT,
			InputIndices:  inK,
			OutputTimes:   outT,
			OutputIndices: outK,
			Input:         ip,
			Data:          dp,
			Topology:      tp,
			Meta:          meta,
			MatIn:         matIn,
			MatOut:        matOut,
		})
		k0 = k1
	}
	return res, nil
}
