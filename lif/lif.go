// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package lif is a reference simulation backend: a fixed-timestep leaky
integrate-and-fire integrator with exponential synapses, supporting the
IfCondExp (conductance-based) and IfCurrExp (current-based) neuron
models of simnet.

It exists to exercise the complete multiplex / simulate / demultiplex
loop in tests and examples without an external simulator.  It is not a
replacement for a full simulator: integration is forward Euler and there
is no parallelism.
*/
package lif

import (
	"container/heap"
	"fmt"
	"sort"

	"github.com/emer/gonam/simnet"
	"github.com/goki/mat32"
)

// Sim is the reference backend.  The zero value is not usable; call
// Defaults or New.
type Sim struct {
	Dt       float32 `def:"0.1" desc:"integration time step in ms"`
	MinDelay float32 `def:"0.1" desc:"synaptic delay applied to connections with zero delay, in ms"`
}

// New returns a backend with default settings.
func New() *Sim {
	sm := &Sim{}
	sm.Defaults()
	return sm
}

func (sm *Sim) Defaults() {
	sm.Dt = 0.1
	sm.MinDelay = 0.1
}

// neuron is the integration state of one non-source neuron.
type neuron struct {
	params simnet.NeuronParams
	cond   bool    // conductance-based synapses
	decE   float32 // per-step synaptic decay factors
	decI   float32
	v      float32
	gE     float32 // conductance (uS) or current (nA) depending on cond
	gI     float32
	refrac float32 // remaining refractory time in ms
	spikes []float64
}

// event is one pending synaptic delivery.
type event struct {
	t   float64
	tgt int // flat target neuron index
	w   float32
}

type eventHeap []event

func (h eventHeap) Len() int            { return len(h) }
func (h eventHeap) Less(i, j int) bool  { return h[i].t < h[j].t }
func (h eventHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *eventHeap) Push(x interface{}) { *h = append(*h, x.(event)) }
func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// Run implements simnet.Backend.
func (sm *Sim) Run(net *simnet.Network, duration float64) ([]simnet.Recording, error) {
	if err := net.Validate(); err != nil {
		return nil, err
	}
	if duration <= 0 {
		return nil, fmt.Errorf("lif: non-positive duration %g", duration)
	}

	// flat neuron indexing across populations
	base := make([]int, len(net.Populations))
	total := 0
	for pi, pop := range net.Populations {
		base[pi] = total
		total += pop.Count
	}

	nrns := make([]*neuron, total)
	for pi, pop := range net.Populations {
		if pop.Type == simnet.SpikeSource {
			continue
		}
		for ni := 0; ni < pop.Count; ni++ {
			p := pop.Params[ni]
			nrns[base[pi]+ni] = &neuron{
				params: p,
				cond:   pop.Type == simnet.IfCondExp,
				decE:   mat32.Exp(-sm.Dt / p.TauSynE),
				decI:   mat32.Exp(-sm.Dt / p.TauSynI),
				v:      p.VRest,
			}
		}
	}

	// outgoing connection indices per flat neuron, sources included
	out := make([][]int, total)
	for ci, con := range net.Connections {
		src := base[con.Src.Pop] + con.Src.Nrn
		out[src] = append(out[src], ci)
	}

	pending := eventHeap{}
	heap.Init(&pending)
	emit := func(src int, t float64) {
		for _, ci := range out[src] {
			con := net.Connections[ci]
			d := con.Delay
			if d <= 0 {
				d = sm.MinDelay
			}
			heap.Push(&pending, event{
				t:   t + float64(d),
				tgt: base[con.Tgt.Pop] + con.Tgt.Nrn,
				w:   con.Weight,
			})
		}
	}

	// seed pending events from the spike sources
	for pi, pop := range net.Populations {
		if pop.Type != simnet.SpikeSource {
			continue
		}
		for ni := 0; ni < pop.Count; ni++ {
			for _, t := range pop.Params[ni].SpikeTimes {
				emit(base[pi]+ni, t)
			}
		}
	}

	dt := float64(sm.Dt)
	for t := 0.0; t < duration; t += dt {
		for len(pending) > 0 && pending[0].t < t+dt {
			ev := heap.Pop(&pending).(event)
			nr := nrns[ev.tgt]
			if nr == nil { // source targeted by a connection: no dynamics
				continue
			}
			if ev.w >= 0 {
				nr.gE += ev.w
			} else {
				nr.gI -= ev.w
			}
		}
		for fi, nr := range nrns {
			if nr == nil {
				continue
			}
			if sm.step(nr) {
				nr.spikes = append(nr.spikes, t)
				emit(fi, t)
			}
		}
	}

	recs := make([]simnet.Recording, len(net.Populations))
	for pi, pop := range net.Populations {
		if !pop.Record {
			continue
		}
		recs[pi].Spikes = make([][]float64, pop.Count)
		for ni := 0; ni < pop.Count; ni++ {
			if pop.Type == simnet.SpikeSource {
				st := append([]float64{}, pop.Params[ni].SpikeTimes...)
				sort.Float64s(st)
				recs[pi].Spikes[ni] = st
				continue
			}
			recs[pi].Spikes[ni] = nrns[base[pi]+ni].spikes
		}
	}
	return recs, nil
}

// step advances one neuron by one time step, returning true on a spike.
func (sm *Sim) step(nr *neuron) bool {
	p := &nr.params
	if nr.refrac > 0 {
		nr.refrac -= sm.Dt
		nr.v = p.VReset
		nr.gE *= nr.decE
		nr.gI *= nr.decI
		return false
	}
	var iSyn float32
	if nr.cond {
		iSyn = nr.gE*(p.ERevE-nr.v) + nr.gI*(p.ERevI-nr.v)
	} else {
		iSyn = nr.gE - nr.gI
	}
	nr.v += (p.GLeak*(p.VRest-nr.v) + iSyn + p.IOffset) / p.CM * sm.Dt
	nr.gE *= nr.decE
	nr.gI *= nr.decI
	if nr.v >= p.VThresh {
		nr.v = p.VReset
		nr.refrac = p.TauRefrac
		return true
	}
	return false
}
