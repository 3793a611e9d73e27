// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package network

import (
	"math"
	"math/rand"
	"testing"

	"github.com/emer/emergent/params"
	"github.com/emer/gonam/simnet"
)

func TestDataParamsValidate(t *testing.T) {
	dp := DataParams{}
	dp.Defaults()
	if err := dp.Validate(); err != nil {
		t.Fatal(err)
	}
	dp.NBitsIn = 0
	if err := dp.Validate(); err == nil {
		t.Errorf("expected error for zero bits")
	}
	dp.Defaults()
	dp.Algorithm = 99
	if err := dp.Validate(); err == nil {
		t.Errorf("expected error for invalid algorithm")
	}
	dp.Defaults()
	dp.NOnesIn = 20
	if err := dp.Validate(); err == nil {
		t.Errorf("expected error for ones exceeding bits")
	}
}

func TestDataParamsTune(t *testing.T) {
	dp := DataParams{}
	dp.Defaults()
	dp.Tune()
	if dp.NSamples < 1 {
		t.Errorf("tuned sample count = %d", dp.NSamples)
	}
	dp2 := DataParams{}
	dp2.Defaults()
	dp2.NOnesIn = 0
	dp2.NOnesOut = 0
	dp2.Tune()
	if dp2.NOnesIn < 1 || dp2.NOnesOut < 1 || dp2.NSamples < 1 {
		t.Errorf("full tune gave ones %d/%d samples %d", dp2.NOnesIn, dp2.NOnesOut, dp2.NSamples)
	}
	// explicit values survive tuning
	dp3 := DataParams{}
	dp3.Defaults()
	dp3.NSamples = 42
	dp3.Tune()
	if dp3.NSamples != 42 || dp3.NOnesIn != 3 {
		t.Errorf("tune changed explicit values: samples %d ones %d", dp3.NSamples, dp3.NOnesIn)
	}
}

// noise-free encoding is fully deterministic: BurstSize spikes at
// offs + i*ISI for a one, nothing for a zero
func TestBuildSpikeTrainNoiseless(t *testing.T) {
	ip := InputParams{}
	ip.Defaults()
	ip.BurstSize = 3
	ip.ISI = 2
	rnd := rand.New(rand.NewSource(1))
	train := ip.BuildSpikeTrain(1, 100, rnd)
	want := []float64{100, 102, 104}
	if len(train) != len(want) {
		t.Fatalf("got %v, want %v", train, want)
	}
	for i := range want {
		if train[i] != want[i] {
			t.Errorf("spike %d at %g, want %g", i, train[i], want[i])
		}
	}
	if got := ip.BuildSpikeTrain(0, 100, rnd); len(got) != 0 {
		t.Errorf("zero bit emitted spikes: %v", got)
	}
}

func TestBuildSpikeTrainProbabilities(t *testing.T) {
	ip := InputParams{}
	ip.Defaults()
	ip.P0 = 1 // every spike of a one omitted
	rnd := rand.New(rand.NewSource(2))
	if got := ip.BuildSpikeTrain(1, 0, rnd); len(got) != 0 {
		t.Errorf("p0=1 emitted spikes: %v", got)
	}
	ip.Defaults()
	ip.P1 = 1 // every burst slot of a zero filled
	ip.BurstSize = 2
	if got := ip.BuildSpikeTrain(0, 0, rnd); len(got) != 2 {
		t.Errorf("p1=1 emitted %d spikes, want 2", len(got))
	}
}

func TestBuildSpikeTrainSorted(t *testing.T) {
	ip := InputParams{}
	ip.Defaults()
	ip.BurstSize = 8
	ip.SigmaT = 5
	rnd := rand.New(rand.NewSource(3))
	train := ip.BuildSpikeTrain(1, 50, rnd)
	for i := 1; i < len(train); i++ {
		if train[i] < train[i-1] {
			t.Fatalf("train not sorted: %v", train)
		}
	}
}

func TestTopologyDraw(t *testing.T) {
	tp := TopologyParams{}
	tp.Defaults()
	rnd := rand.New(rand.NewSource(4))

	// no noise: draws reproduce the base parameters and weight exactly
	np := tp.Draw(rnd)
	if np.CM != tp.Neuron.CM || np.VThresh != tp.Neuron.VThresh || np.TauSynE != tp.Neuron.TauSynE {
		t.Errorf("noise-free draw changed parameters")
	}
	if w := tp.DrawWeight(rnd); w != tp.W {
		t.Errorf("noise-free weight = %g, want %g", w, tp.W)
	}

	// heavy weight noise still never yields negative weights
	tp.SigmaW = 1
	for i := 0; i < 100; i++ {
		if w := tp.DrawWeight(rnd); w < 0 {
			t.Fatalf("negative weight %g", w)
		}
	}

	// parameter noise keeps the result in valid ranges
	tp.NeuronNoise.TauSynE = 100
	tp.NeuronNoise.CM = 100
	for i := 0; i < 100; i++ {
		np := tp.Draw(rnd)
		if np.TauSynE <= 0 || np.CM <= 0 {
			t.Fatalf("draw escaped clamping: %+v", np)
		}
	}
}

func TestTopologyValidate(t *testing.T) {
	tp := TopologyParams{}
	tp.Defaults()
	if err := tp.Validate(); err != nil {
		t.Fatal(err)
	}
	tp.Multiplicity = 0
	if err := tp.Validate(); err == nil {
		t.Errorf("expected error for zero multiplicity")
	}
	tp.Defaults()
	tp.NeuronType = simnet.SpikeSource
	if err := tp.Validate(); err == nil {
		t.Errorf("expected error for source output type")
	}
}

func TestApplyParams(t *testing.T) {
	sheet := &params.Sheet{
		{Sel: "Input", Desc: "", Params: params.Params{
			"Input.SigmaT":     "2.5",
			"Input.TimeWindow": "200",
		}},
		{Sel: "Topology", Desc: "", Params: params.Params{
			"Topology.W": "0.05",
		}},
	}
	ip := InputParams{}
	ip.Defaults()
	if _, err := ip.ApplyParams(sheet, false); err != nil {
		t.Fatal(err)
	}
	if ip.SigmaT != 2.5 || ip.TimeWindow != 200 {
		t.Errorf("applied params: SigmaT=%g TimeWindow=%g", ip.SigmaT, ip.TimeWindow)
	}
	tp := TopologyParams{}
	tp.Defaults()
	if _, err := tp.ApplyParams(sheet, false); err != nil {
		t.Fatal(err)
	}
	if math.Abs(float64(tp.W)-0.05) > 1e-6 {
		t.Errorf("applied W = %g", tp.W)
	}
	// burst size untouched by the sheet
	if ip.BurstSize != 1 {
		t.Errorf("unrelated field changed: %d", ip.BurstSize)
	}
}
