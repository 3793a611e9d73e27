// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package simnet holds the backend-neutral description of a spiking
network: homogeneous neuron populations with per-neuron parameters,
weighted directed connections between (population, neuron) coordinates,
and the Backend interface that simulation backends implement.

Recordings returned by a backend are indexed positionally against the
population layout, which is what allows a spatially multiplexed batch to
be sliced back into its constituent experiments.
*/
package simnet

import (
	"fmt"
)

// Coord addresses one neuron as a population index and a neuron index
// local to that population.
type Coord struct {
	Pop int `desc:"population index within the network"`
	Nrn int `desc:"neuron index within the population"`
}

// Connection is one weighted directed synapse between two neurons.
type Connection struct {
	Src    Coord   `desc:"presynaptic neuron"`
	Tgt    Coord   `desc:"postsynaptic neuron"`
	Weight float32 `desc:"synaptic weight in uS (conductance-based) or nA (current-based) -- negative weights are inhibitory"`
	Delay  float32 `desc:"synaptic transmission delay in ms"`
}

// Population is a homogeneous group of neurons sharing a neuron model,
// with an individual parameter set per neuron.
type Population struct {
	Count  int            `desc:"number of neurons"`
	Type   NeuronType     `desc:"neuron model for all neurons in this population"`
	Params []NeuronParams `view:"no-inline" desc:"per-neuron parameters, one entry per neuron"`
	Record bool           `desc:"record spike times for this population"`
}

// Network is a complete network description ready to be handed to a
// Backend.
type Network struct {
	Populations []Population `desc:"populations in index order -- population 0 is the input (spike source) population by convention"`
	Connections []Connection `desc:"all synaptic connections"`
}

// AddPopulation appends a population and returns its index.
func (nt *Network) AddPopulation(pop Population) int {
	nt.Populations = append(nt.Populations, pop)
	return len(nt.Populations) - 1
}

// AddConnections appends connections to the network.
func (nt *Network) AddConnections(cons []Connection) {
	nt.Connections = append(nt.Connections, cons...)
}

// NeuronCount returns the number of neurons in the network.  Spike
// sources are excluded unless countSources is set.
func (nt *Network) NeuronCount(countSources bool) int {
	n := 0
	for _, pop := range nt.Populations {
		if pop.Type == SpikeSource && !countSources {
			continue
		}
		n += pop.Count
	}
	return n
}

// Validate checks the structural integrity of the network: population
// parameter counts and connection coordinates.
func (nt *Network) Validate() error {
	for pi, pop := range nt.Populations {
		if len(pop.Params) != pop.Count {
			return fmt.Errorf("simnet: population %d has %d neurons but %d parameter sets", pi, pop.Count, len(pop.Params))
		}
	}
	for ci, con := range nt.Connections {
		for _, c := range []Coord{con.Src, con.Tgt} {
			if c.Pop < 0 || c.Pop >= len(nt.Populations) {
				return fmt.Errorf("simnet: connection %d references population %d of %d", ci, c.Pop, len(nt.Populations))
			}
			if c.Nrn < 0 || c.Nrn >= nt.Populations[c.Pop].Count {
				return fmt.Errorf("simnet: connection %d references neuron %d of %d in population %d", ci, c.Nrn, nt.Populations[c.Pop].Count, c.Pop)
			}
		}
	}
	return nil
}

// Recording holds the spikes recorded from one population: one ordered
// list of spike times per neuron.  Populations that were not recorded
// have nil Spikes.
type Recording struct {
	Spikes [][]float64 `desc:"per-neuron ordered spike times in ms"`
}

// Backend is a simulation backend.  Run executes the network once for
// the given duration in ms and returns one Recording per population, in
// population order.  Execution is a single blocking call; any partial
// failure must surface as an error, never as a truncated result.
type Backend interface {
	Run(net *Network, duration float64) ([]Recording, error)
}
