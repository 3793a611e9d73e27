// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package network

import (
	"fmt"

	"github.com/emer/etable/etensor"
	"github.com/emer/gonam/simnet"
)

// SpatialSplit marks the end of one experiment inside a merged pool:
// the cumulative population and source-neuron counts after that
// experiment.
type SpatialSplit struct {
	Population int `desc:"cumulative population count after this experiment"`
	Input      int `desc:"cumulative source spike-train count after this experiment"`
}

// Pool merges multiple independent experiments into one network so a
// single simulator run evaluates all of them.  Population indices of
// later experiments are shifted, and the spatial split descriptor
// records where each experiment's populations and inputs end, so the
// combined recording can be cut apart again.
type Pool struct {
	Name           string              `desc:"pool name, used in reports"`
	Net            simnet.Network      `desc:"merged network"`
	InputTimes     [][]float64         `desc:"concatenated source spike trains of all experiments"`
	InputIndices   [][]int             `desc:"concatenated sample tags, aligned with InputTimes"`
	InputSplits    [][]int             `desc:"temporal split descriptor per experiment"`
	InputParams    [][]InputParams     `desc:"input encodings per experiment"`
	DataParams     []DataParams        `desc:"sample geometry per experiment"`
	TopologyParams []TopologyParams    `desc:"topology parameters per experiment"`
	Metas          []map[string]string `desc:"annotations per experiment"`
	MatIns         []*etensor.Int      `desc:"input sample matrix per experiment"`
	MatOuts        []*etensor.Int      `desc:"expected output matrix per experiment"`
	SpatialSplits  []SpatialSplit      `desc:"spatial split descriptor, one entry per experiment"`
}

// NewPool returns an empty named pool.
func NewPool(name string) *Pool {
	return &Pool{Name: name}
}

// Add appends experiments to the pool, shifting their connection
// population indices past the populations already merged.  The
// instances themselves are not modified.
func (np *Pool) Add(nis ...*Instance) {
	for _, ni := range nis {
		popOffs := len(np.Net.Populations)
		np.Net.Populations = append(np.Net.Populations, ni.Net.Populations...)
		for _, con := range ni.Net.Connections {
			con.Src.Pop += popOffs
			con.Tgt.Pop += popOffs
			np.Net.Connections = append(np.Net.Connections, con)
		}
		np.InputTimes = append(np.InputTimes, ni.InputTimes...)
		np.InputIndices = append(np.InputIndices, ni.InputIndices...)
		np.InputSplits = append(np.InputSplits, ni.InputSplit)
		np.InputParams = append(np.InputParams, ni.Input)
		np.DataParams = append(np.DataParams, ni.Data)
		np.TopologyParams = append(np.TopologyParams, ni.Topology)
		np.Metas = append(np.Metas, ni.Meta)
		np.MatIns = append(np.MatIns, ni.MatIn)
		np.MatOuts = append(np.MatOuts, ni.MatOut)
		np.SpatialSplits = append(np.SpatialSplits, SpatialSplit{
			Population: len(np.Net.Populations),
			Input:      len(np.InputTimes),
		})
	}
}

// NeuronCount returns the number of neurons in the merged network, see
// simnet.Network.NeuronCount.
func (np *Pool) NeuronCount(countSources bool) int {
	return np.Net.NeuronCount(countSources)
}

// EndTime returns the time of the last input spike across all merged
// experiments, for sizing the simulation duration.
func (np *Pool) EndTime() float64 {
	return endTime(np.InputTimes)
}

// BuildAnalysis demultiplexes the recording of a pooled run: the
// recording is cut along the spatial split descriptor, each slice is
// matched against its experiment's input and further cut along that
// experiment's temporal split descriptor.  The result holds one
// Analysis per (experiment, input-parameter block) pair, in order.
func (np *Pool) BuildAnalysis(output []simnet.Recording) ([]*Analysis, error) {
	var res []*Analysis
	last := SpatialSplit{}
	for i, sp := range np.SpatialSplits {
		if sp.Population > len(output) {
			return nil, fmt.Errorf("network: recording covers %d populations but experiment %d ends at %d", len(output), i, sp.Population)
		}
		part := output[last.Population:sp.Population]
		if len(part) < 2 {
			return nil, fmt.Errorf("network: experiment %d spans %d populations, expected 2", i, len(part))
		}
		recs, err := buildAnalysis(
			np.InputTimes[last.Input:sp.Input],
			np.InputIndices[last.Input:sp.Input],
			part[1].Spikes,
			np.InputSplits[i],
			np.InputParams[i], np.DataParams[i], np.TopologyParams[i],
			np.Metas[i], np.MatIns[i], np.MatOuts[i])
		if err != nil {
			return nil, err
		}
		res = append(res, recs...)
		last = sp
	}
	return res, nil
}
