// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package network

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/emer/etable/etensor"
	"github.com/emer/gonam/binam"
	"github.com/emer/gonam/data"
	"github.com/emer/gonam/simnet"
)

// Builder assembles one evaluation experiment from a pair of sample
// matrices: it trains the associative memory, expands it into a spiking
// network topology and encodes the input samples as spike trains.
type Builder struct {
	MatIn  *etensor.Int `view:"no-inline" desc:"input sample matrix, one row per sample"`
	MatOut *etensor.Int `view:"no-inline" desc:"expected output sample matrix, one row per sample"`
	Data   DataParams   `view:"inline" desc:"sample geometry, derived from the matrices or used to generate them"`
}

// NewBuilder wraps existing sample matrices.  The data parameters are
// derived from the matrix shapes.
func NewBuilder(matIn, matOut *etensor.Int) (*Builder, error) {
	if matIn.Dim(0) != matOut.Dim(0) {
		return nil, fmt.Errorf("network: input and output matrices disagree on sample count: %d vs %d", matIn.Dim(0), matOut.Dim(0))
	}
	dp := DataParams{
		NBitsIn:   matIn.Dim(1),
		NBitsOut:  matOut.Dim(1),
		NSamples:  matIn.Dim(0),
		Algorithm: data.Balanced,
	}
	if dp.NSamples > 0 {
		dp.NOnesIn = binam.RowOnes(matIn, 0)
		dp.NOnesOut = binam.RowOnes(matOut, 0)
	}
	return &Builder{MatIn: matIn, MatOut: matOut, Data: dp}, nil
}

// NewBuilderParams generates the sample matrices from the given data
// parameters, auto-tuning unset fields.  Input and output matrices are
// drawn from independent random streams derived from seed, so the same
// seed reproduces the same experiment.
func NewBuilderParams(dp *DataParams, seed int64) (*Builder, error) {
	d := *dp
	if err := d.Validate(); err != nil {
		return nil, err
	}
	d.Tune()
	if err := d.Validate(); err != nil {
		return nil, err
	}
	inRnd := rand.New(rand.NewSource(seed + 5))
	outRnd := rand.New(rand.NewSource((seed + 6) * 2))
	matIn, err := data.ForAlgorithm(d.Algorithm, inRnd, d.NBitsIn, d.NOnesIn, d.NSamples)
	if err != nil {
		return nil, err
	}
	matOut, err := data.ForAlgorithm(d.Algorithm, outRnd, d.NBitsOut, d.NOnesOut, d.NSamples)
	if err != nil {
		return nil, err
	}
	return &Builder{MatIn: matIn, MatOut: matOut, Data: d}, nil
}

// Train returns the associative memory trained on all sample pairs.
func (b *Builder) Train() (*binam.BiNAM, error) {
	mem := binam.New(b.Data.NBitsIn, b.Data.NBitsOut)
	if err := mem.TrainMatrix(b.MatIn, b.MatOut); err != nil {
		return nil, err
	}
	return mem, nil
}

// BuildTopology trains the memory and expands it into a two-population
// spiking network: population 0 holds Multiplicity spike sources per
// input bit, population 1 holds Multiplicity output neurons per output
// bit, and every set memory cell becomes an all-to-all bundle of
// Multiplicity^2 excitatory synapses.
func (b *Builder) BuildTopology(tp *TopologyParams, rnd *rand.Rand) (*simnet.Network, error) {
	if err := tp.Validate(); err != nil {
		return nil, err
	}
	if b.MatIn.Dim(0) == 0 {
		return nil, fmt.Errorf("network: cannot build a topology from an empty sample set")
	}
	mem, err := b.Train()
	if err != nil {
		return nil, err
	}
	s := tp.Multiplicity
	m := b.Data.NBitsIn
	n := b.Data.NBitsOut

	net := &simnet.Network{}
	net.AddPopulation(simnet.Population{
		Count:  m * s,
		Type:   simnet.SpikeSource,
		Params: make([]simnet.NeuronParams, m*s),
	})
	outPars := make([]simnet.NeuronParams, n*s)
	for i := range outPars {
		outPars[i] = tp.Draw(rnd)
	}
	net.AddPopulation(simnet.Population{
		Count:  n * s,
		Type:   tp.NeuronType,
		Params: outPars,
		Record: true,
	})

	var cons []simnet.Connection
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			if mem.At(i, j) == 0 {
				continue
			}
			for k := 0; k < s; k++ {
				for l := 0; l < s; l++ {
					cons = append(cons, simnet.Connection{
						Src:    simnet.Coord{Pop: 0, Nrn: i*s + k},
						Tgt:    simnet.Coord{Pop: 1, Nrn: j*s + l},
						Weight: tp.DrawWeight(rnd),
					})
				}
			}
		}
	}
	net.AddConnections(cons)
	return net, nil
}

// BuildSpikeTrains encodes the sample matrix as one spike train per
// source neuron, tagged with sample indices.  The whole matrix is
// repeated once per entry of ips, each repetition using that entry's
// encoding; blocks are separated by blockDelay sample windows.  All
// times are shifted so the earliest spike falls on timeOffs.  The
// returned split holds the cumulative sample-tag count after each
// block, describing where the result can later be cut apart in time.
func BuildSpikeTrains(mat *etensor.Int, timeOffs float64, tp *TopologyParams, ips []InputParams, blockDelay float64, rnd *rand.Rand) (times [][]float64, indices [][]int, split []int, err error) {
	if err := tp.Validate(); err != nil {
		return nil, nil, nil, err
	}
	if len(ips) == 0 {
		return nil, nil, nil, fmt.Errorf("network: at least one input parameter set is required")
	}
	for i := range ips {
		if err := ips[i].Validate(); err != nil {
			return nil, nil, nil, err
		}
	}
	s := tp.Multiplicity
	m := mat.Dim(1)
	rows := mat.Dim(0)

	times = make([][]float64, m*s)
	indices = make([][]int, m*s)
	t := 0.0
	tag := 0
	for bi := range ips {
		ip := &ips[bi]
		for l := 0; l < rows; l++ {
			for i := 0; i < m; i++ {
				v := mat.Values[l*m+i]
				for j := 0; j < s; j++ {
					train := ip.BuildSpikeTrain(v, t, rnd)
					idx := i*s + j
					times[idx] = append(times[idx], train...)
					for range train {
						indices[idx] = append(indices[idx], tag)
					}
				}
			}
			tag++
			t += ip.TimeWindow
		}
		t += ip.TimeWindow * blockDelay
		split = append(split, tag)
	}

	// shift so the earliest spike lands exactly on timeOffs; a fully
	// silent encoding (possible with extreme noise settings) is left
	// untouched
	minT := math.Inf(1)
	for _, ts := range times {
		for _, tv := range ts {
			if tv < minT {
				minT = tv
			}
		}
	}
	if !math.IsInf(minT, 1) {
		shift := timeOffs - minT
		for _, ts := range times {
			for i := range ts {
				ts[i] += shift
			}
		}
	}
	for i := range times {
		sortTrain(times[i], indices[i])
	}
	return times, indices, split, nil
}

// sortTrain sorts one neuron's spike times in place, carrying the
// aligned sample tags along.  Timing jitter can reorder spikes across
// sample windows, so this restores the per-neuron time ordering.
func sortTrain(ts []float64, ks []int) {
	ord := make([]int, len(ts))
	for i := range ord {
		ord[i] = i
	}
	sort.SliceStable(ord, func(a, b int) bool { return ts[ord[a]] < ts[ord[b]] })
	nts := make([]float64, len(ts))
	nks := make([]int, len(ks))
	for i, o := range ord {
		nts[i] = ts[o]
		nks[i] = ks[o]
	}
	copy(ts, nts)
	copy(ks, nks)
}

// BuildInput encodes this builder's input matrix, see BuildSpikeTrains.
func (b *Builder) BuildInput(timeOffs float64, tp *TopologyParams, ips []InputParams, blockDelay float64, rnd *rand.Rand) ([][]float64, [][]int, []int, error) {
	return BuildSpikeTrains(b.MatIn, timeOffs, tp, ips, blockDelay, rnd)
}

// InjectInput writes the spike trains into the source population of a
// network previously built by BuildTopology.
func InjectInput(net *simnet.Network, times [][]float64) error {
	if len(net.Populations) == 0 {
		return fmt.Errorf("network: cannot inject input into an empty network")
	}
	src := &net.Populations[0]
	if src.Type != simnet.SpikeSource {
		return fmt.Errorf("network: population 0 is %v, not a spike source", src.Type)
	}
	if len(times) != src.Count {
		return fmt.Errorf("network: %d spike trains for %d source neurons", len(times), src.Count)
	}
	for i := range times {
		src.Params[i].SpikeTimes = times[i]
	}
	return nil
}

// Build assembles the complete experiment: topology, encoded input and
// all descriptors needed to take the result apart again.  Topology and
// input encoding draw from independent random streams derived from
// seed.
func (b *Builder) Build(timeOffs float64, tp *TopologyParams, ips []InputParams, blockDelay float64, meta map[string]string, seed int64) (*Instance, error) {
	net, err := b.BuildTopology(tp, rand.New(rand.NewSource(seed+1)))
	if err != nil {
		return nil, err
	}
	times, indices, split, err := b.BuildInput(timeOffs, tp, ips, blockDelay, rand.New(rand.NewSource(seed+2)))
	if err != nil {
		return nil, err
	}
	if err := InjectInput(net, times); err != nil {
		return nil, err
	}
	return &Instance{
		Net:          net,
		InputTimes:   times,
		InputIndices: indices,
		InputSplit:   split,
		Input:        append([]InputParams{}, ips...),
		Data:         b.Data,
		Topology:     *tp,
		Meta:         meta,
		MatIn:        b.MatIn,
		MatOut:       b.MatOut,
	}, nil
}
