// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simnet

import (
	"testing"
)

func testNet() *Network {
	net := &Network{}
	net.AddPopulation(Population{
		Count:  2,
		Type:   SpikeSource,
		Params: make([]NeuronParams, 2),
	})
	pars := make([]NeuronParams, 3)
	for i := range pars {
		pars[i].Defaults()
	}
	net.AddPopulation(Population{
		Count:  3,
		Type:   IfCondExp,
		Params: pars,
		Record: true,
	})
	net.AddConnections([]Connection{
		{Src: Coord{0, 0}, Tgt: Coord{1, 0}, Weight: 0.1},
		{Src: Coord{0, 1}, Tgt: Coord{1, 2}, Weight: 0.1},
	})
	return net
}

func TestValidate(t *testing.T) {
	net := testNet()
	if err := net.Validate(); err != nil {
		t.Fatal(err)
	}

	bad := testNet()
	bad.Populations[1].Params = bad.Populations[1].Params[:2]
	if err := bad.Validate(); err == nil {
		t.Errorf("expected error for short parameter list")
	}

	bad = testNet()
	bad.Connections[0].Tgt.Pop = 5
	if err := bad.Validate(); err == nil {
		t.Errorf("expected error for out-of-range population")
	}

	bad = testNet()
	bad.Connections[1].Src.Nrn = 2
	if err := bad.Validate(); err == nil {
		t.Errorf("expected error for out-of-range neuron")
	}
}

func TestNeuronCount(t *testing.T) {
	net := testNet()
	if n := net.NeuronCount(false); n != 3 {
		t.Errorf("without sources: %d, want 3", n)
	}
	if n := net.NeuronCount(true); n != 5 {
		t.Errorf("with sources: %d, want 5", n)
	}
}

func TestNeuronParamsClamp(t *testing.T) {
	np := NeuronParams{}
	np.Defaults()
	np.CM = -1
	np.TauSynE = -5
	np.VReset = -40 // above threshold
	np.Clamp()
	if np.CM <= 0 {
		t.Errorf("CM not clamped: %g", np.CM)
	}
	if np.TauSynE <= 0 {
		t.Errorf("TauSynE not clamped: %g", np.TauSynE)
	}
	if np.VReset > np.VThresh {
		t.Errorf("VReset %g above threshold %g", np.VReset, np.VThresh)
	}
}
