// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lif

import (
	"testing"

	"github.com/emer/gonam/simnet"
)

// oneToOne builds a single source driving a single recorded neuron.
func oneToOne(typ simnet.NeuronType, w float32, spikes []float64) *simnet.Network {
	net := &simnet.Network{}
	src := simnet.NeuronParams{}
	src.SpikeTimes = spikes
	net.AddPopulation(simnet.Population{
		Count:  1,
		Type:   simnet.SpikeSource,
		Params: []simnet.NeuronParams{src},
		Record: true,
	})
	out := simnet.NeuronParams{}
	out.Defaults()
	net.AddPopulation(simnet.Population{
		Count:  1,
		Type:   typ,
		Params: []simnet.NeuronParams{out},
		Record: true,
	})
	net.AddConnections([]simnet.Connection{
		{Src: simnet.Coord{Pop: 0, Nrn: 0}, Tgt: simnet.Coord{Pop: 1, Nrn: 0}, Weight: w},
	})
	return net
}

func TestStrongInputSpikes(t *testing.T) {
	net := oneToOne(simnet.IfCondExp, 0.5, []float64{10})
	rec, err := New().Run(net, 50)
	if err != nil {
		t.Fatal(err)
	}
	if len(rec) != 2 {
		t.Fatalf("got %d recordings, want 2", len(rec))
	}
	if len(rec[0].Spikes[0]) != 1 || rec[0].Spikes[0][0] != 10 {
		t.Errorf("source recording = %v, want [10]", rec[0].Spikes[0])
	}
	out := rec[1].Spikes[0]
	if len(out) == 0 {
		t.Fatalf("strong input produced no output spike")
	}
	if out[0] <= 10 || out[0] > 20 {
		t.Errorf("output spike at %g, want shortly after 10", out[0])
	}
}

func TestNoInputNoSpikes(t *testing.T) {
	net := oneToOne(simnet.IfCondExp, 0.5, nil)
	rec, err := New().Run(net, 50)
	if err != nil {
		t.Fatal(err)
	}
	if len(rec[1].Spikes[0]) != 0 {
		t.Errorf("silent network spiked: %v", rec[1].Spikes[0])
	}
}

func TestWeakInputNoSpikes(t *testing.T) {
	net := oneToOne(simnet.IfCondExp, 0.001, []float64{10})
	rec, err := New().Run(net, 50)
	if err != nil {
		t.Fatal(err)
	}
	if len(rec[1].Spikes[0]) != 0 {
		t.Errorf("weak input caused a spike: %v", rec[1].Spikes[0])
	}
}

func TestCurrentBased(t *testing.T) {
	net := oneToOne(simnet.IfCurrExp, 8, []float64{10})
	rec, err := New().Run(net, 50)
	if err != nil {
		t.Fatal(err)
	}
	if len(rec[1].Spikes[0]) == 0 {
		t.Fatalf("current-based neuron did not spike")
	}
}

func TestRunErrors(t *testing.T) {
	net := oneToOne(simnet.IfCondExp, 0.5, []float64{10})
	if _, err := New().Run(net, 0); err == nil {
		t.Errorf("expected error for zero duration")
	}
	net.Populations[1].Params = nil
	if _, err := New().Run(net, 50); err == nil {
		t.Errorf("expected validation error")
	}
}
