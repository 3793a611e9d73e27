// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simnet

import (
	"github.com/goki/ki/kit"
)

// NeuronType is the neuron model of a population.
type NeuronType int32

//go:generate stringer -type=NeuronType

var KiT_NeuronType = kit.Enums.AddEnum(NeuronTypeN, kit.NotBitFlag, nil)

func (ev NeuronType) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *NeuronType) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// SpikeSource neurons emit the spike times listed in their
	// per-neuron SpikeTimes parameter and have no dynamics.
	SpikeSource NeuronType = iota

	// IfCondExp is a leaky integrate-and-fire point neuron with
	// conductance-based exponential synapses.
	IfCondExp

	// IfCurrExp is a leaky integrate-and-fire point neuron with
	// current-based exponential synapses.
	IfCurrExp

	NeuronTypeN
)

// Valid reports whether the neuron type is one of the defined models.
func (ev NeuronType) Valid() bool {
	return ev >= 0 && ev < NeuronTypeN
}

// NeuronParams are the parameters of one neuron, in the standard
// point-neuron equivalent-circuit form.  Units follow the usual
// simulator conventions: ms for times, mV for potentials, nF for
// capacitance, uS for conductances, nA for currents.
type NeuronParams struct {
	CM        float32 `def:"1" desc:"membrane capacitance in nF"`
	GLeak     float32 `def:"0.05" desc:"leak conductance in uS -- CM / GLeak is the membrane time constant"`
	TauSynE   float32 `def:"5" desc:"excitatory synaptic decay time constant in ms"`
	TauSynI   float32 `def:"5" desc:"inhibitory synaptic decay time constant in ms"`
	ERevE     float32 `def:"0" desc:"excitatory reversal potential in mV"`
	ERevI     float32 `def:"-70" desc:"inhibitory reversal potential in mV"`
	VRest     float32 `def:"-65" desc:"resting potential in mV"`
	VReset    float32 `def:"-65" desc:"reset potential after a spike in mV"`
	VThresh   float32 `def:"-50" desc:"spike threshold in mV"`
	TauRefrac float32 `def:"0.1" desc:"absolute refractory period in ms"`
	IOffset   float32 `def:"0" desc:"constant input current in nA"`

	SpikeTimes []float64 `view:"-" desc:"for SpikeSource neurons only: the spike times this neuron emits -- this is the parameter slot input spike trains are injected into"`
}

func (np *NeuronParams) Defaults() {
	np.CM = 1
	np.GLeak = 0.05
	np.TauSynE = 5
	np.TauSynI = 5
	np.ERevE = 0
	np.ERevI = -70
	np.VRest = -65
	np.VReset = -65
	np.VThresh = -50
	np.TauRefrac = 0.1
	np.IOffset = 0
}

// Clamp forces the parameters into their valid ranges, for use after
// noise has been added to them.
func (np *NeuronParams) Clamp() {
	if np.CM < 0.001 {
		np.CM = 0.001
	}
	if np.GLeak < 0 {
		np.GLeak = 0
	}
	if np.TauSynE < 0.01 {
		np.TauSynE = 0.01
	}
	if np.TauSynI < 0.01 {
		np.TauSynI = 0.01
	}
	if np.TauRefrac < 0 {
		np.TauRefrac = 0
	}
	if np.VReset > np.VThresh {
		np.VReset = np.VThresh
	}
}
