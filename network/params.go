// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package network

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/emer/emergent/params"
	"github.com/emer/gonam/data"
	"github.com/emer/gonam/entropy"
	"github.com/emer/gonam/simnet"
)

// DataParams describes the sample geometry: bit counts, ones per
// sample, sample count and the generation algorithm.  Non-positive
// NOnes* / NSamples select information-optimal values (see Tune).
type DataParams struct {
	NBitsIn   int            `def:"16" desc:"number of input bits per sample"`
	NBitsOut  int            `def:"16" desc:"number of output bits per sample"`
	NOnesIn   int            `def:"3" desc:"number of set bits per input sample -- if both ones counts are <= 0, Tune selects them for maximum expected information"`
	NOnesOut  int            `def:"3" desc:"number of set bits per output sample"`
	NSamples  int            `def:"-1" desc:"number of samples -- <= 0 selects the count maximizing expected information"`
	Algorithm data.Algorithm `desc:"sample generation algorithm"`
}

func (dp *DataParams) Defaults() {
	dp.NBitsIn = 16
	dp.NBitsOut = 16
	dp.NOnesIn = 3
	dp.NOnesOut = 3
	dp.NSamples = -1
	dp.Algorithm = data.Balanced
}

// Validate eagerly checks the configuration.  Auto-tuned fields
// (non-positive ones / samples) are allowed; everything else must be
// consistent.
func (dp *DataParams) Validate() error {
	if dp.NBitsIn <= 0 || dp.NBitsOut <= 0 {
		return fmt.Errorf("network: DataParams bit counts must be positive, got %d x %d", dp.NBitsIn, dp.NBitsOut)
	}
	if !dp.Algorithm.Valid() {
		return fmt.Errorf("network: invalid data generation algorithm %d, must be one of Random, Balanced, Unique", int(dp.Algorithm))
	}
	if (dp.NOnesIn <= 0) != (dp.NOnesOut <= 0) {
		return fmt.Errorf("network: NOnesIn and NOnesOut must be auto-tuned together, got %d and %d", dp.NOnesIn, dp.NOnesOut)
	}
	if dp.NOnesIn > dp.NBitsIn || dp.NOnesOut > dp.NBitsOut {
		return fmt.Errorf("network: ones per sample (%d, %d) exceed bit counts (%d, %d)", dp.NOnesIn, dp.NOnesOut, dp.NBitsIn, dp.NBitsOut)
	}
	return nil
}

// Tune fills the auto-tuned fields: if both ones counts are
// non-positive they are selected (together with the sample count) for
// maximum expected information; otherwise a non-positive sample count
// alone is optimized for the given ones counts.
func (dp *DataParams) Tune() {
	if dp.NOnesIn <= 0 && dp.NOnesOut <= 0 {
		ones, ns := entropy.OptimalParameters(dp.NSamples, dp.NBitsIn, dp.NBitsOut)
		dp.NOnesIn = ones
		dp.NOnesOut = ones
		dp.NSamples = ns
	}
	if dp.NSamples <= 0 {
		dp.NSamples = entropy.OptimalSampleCount(dp.NBitsIn, dp.NBitsOut, dp.NOnesIn, dp.NOnesOut)
	}
}

// params.Styler interface
func (dp *DataParams) TypeName() string { return "Data" }
func (dp *DataParams) Name() string     { return "" }
func (dp *DataParams) Class() string    { return "" }

// ApplyParams applies the given parameter style sheet to these params.
func (dp *DataParams) ApplyParams(pars *params.Sheet, setMsg bool) (bool, error) {
	return pars.Apply(dp, setMsg)
}

// InputParams describe how one sample bit-vector is encoded as spike
// trains: a burst per set bit inside a fixed time window per sample,
// with optional timing noise and omission / injection probabilities.
type InputParams struct {
	BurstSize  int     `def:"1" desc:"number of spikes representing a one"`
	TimeWindow float64 `def:"100" desc:"time between the presentation of two samples in ms"`
	ISI        float64 `def:"1" desc:"inter-spike interval between the spikes of a burst in ms"`
	SigmaT     float64 `def:"0" desc:"standard deviation of per-spike jitter in ms"`
	SigmaTOffs float64 `def:"0" desc:"standard deviation of the whole-train offset jitter in ms"`
	P0         float64 `def:"0" desc:"probability of omitting an individual spike of a one"`
	P1         float64 `def:"0" desc:"probability of spuriously emitting an individual spike for a zero"`
}

func (ip *InputParams) Defaults() {
	ip.BurstSize = 1
	ip.TimeWindow = 100
	ip.ISI = 1
	ip.SigmaT = 0
	ip.SigmaTOffs = 0
	ip.P0 = 0
	ip.P1 = 0
}

func (ip *InputParams) Validate() error {
	if ip.BurstSize < 1 {
		return fmt.Errorf("network: InputParams.BurstSize must be >= 1, got %d", ip.BurstSize)
	}
	if ip.TimeWindow <= 0 {
		return fmt.Errorf("network: InputParams.TimeWindow must be positive, got %g", ip.TimeWindow)
	}
	if ip.ISI < 0 || ip.SigmaT < 0 || ip.SigmaTOffs < 0 {
		return fmt.Errorf("network: InputParams time constants must be non-negative")
	}
	if ip.P0 < 0 || ip.P0 > 1 || ip.P1 < 0 || ip.P1 > 1 {
		return fmt.Errorf("network: InputParams probabilities must be in [0,1], got p0=%g p1=%g", ip.P0, ip.P1)
	}
	return nil
}

// BuildSpikeTrain returns the spike times encoding one bit of one
// sample, offset by offs.  A one emits up to BurstSize spikes (each
// omitted with probability P0); a zero emits each burst spike only with
// probability P1.
func (ip *InputParams) BuildSpikeTrain(value int, offs float64, rnd *rand.Rand) []float64 {
	if ip.SigmaTOffs > 0 {
		offs += rnd.NormFloat64() * ip.SigmaTOffs
	}
	p := ip.P0
	if value == 0 {
		p = 1.0 - ip.P1
	}
	var res []float64
	for i := 0; i < ip.BurstSize; i++ {
		if rnd.Float64() < p {
			continue
		}
		jitter := 0.0
		if ip.SigmaT > 0 {
			jitter = rnd.NormFloat64() * ip.SigmaT
		}
		res = append(res, offs+float64(i)*ip.ISI+jitter)
	}
	sort.Float64s(res)
	return res
}

// params.Styler interface
func (ip *InputParams) TypeName() string { return "Input" }
func (ip *InputParams) Name() string     { return "" }
func (ip *InputParams) Class() string    { return "" }

func (ip *InputParams) ApplyParams(pars *params.Sheet, setMsg bool) (bool, error) {
	return pars.Apply(ip, setMsg)
}

// OutputParams describe the expected output encoding.
type OutputParams struct {
	BurstSize int `def:"1" desc:"number of output spikes expected per active output bit"`
}

func (op *OutputParams) Defaults() {
	op.BurstSize = 1
}

func (op *OutputParams) Validate() error {
	if op.BurstSize < 1 {
		return fmt.Errorf("network: OutputParams.BurstSize must be >= 1, got %d", op.BurstSize)
	}
	return nil
}

// params.Styler interface
func (op *OutputParams) TypeName() string { return "Output" }
func (op *OutputParams) Name() string     { return "" }
func (op *OutputParams) Class() string    { return "" }

func (op *OutputParams) ApplyParams(pars *params.Sheet, setMsg bool) (bool, error) {
	return pars.Apply(op, setMsg)
}

// TopologyParams describe the network topology: neuron model and
// parameters, per-parameter noise, neuron multiplicity and synaptic
// weight distribution.
type TopologyParams struct {
	Multiplicity int                 `def:"1" desc:"number of neurons (and spike trains) representing each logical bit"`
	NeuronType   simnet.NeuronType   `desc:"neuron model of the output population"`
	Neuron       simnet.NeuronParams `view:"inline" desc:"neuron parameters for the output population"`
	NeuronNoise  simnet.NeuronParams `desc:"standard deviation of gaussian noise added per neuron parameter -- zero fields are noise free"`
	W            float32             `def:"0.03" desc:"synaptic weight in uS"`
	SigmaW       float32             `def:"0" desc:"standard deviation of the synaptic weight"`
}

func (tp *TopologyParams) Defaults() {
	tp.Multiplicity = 1
	tp.NeuronType = simnet.IfCondExp
	tp.Neuron.Defaults()
	tp.NeuronNoise = simnet.NeuronParams{}
	tp.W = 0.03
	tp.SigmaW = 0
}

func (tp *TopologyParams) Validate() error {
	if tp.Multiplicity < 1 {
		return fmt.Errorf("network: TopologyParams.Multiplicity must be >= 1, got %d", tp.Multiplicity)
	}
	if !tp.NeuronType.Valid() || tp.NeuronType == simnet.SpikeSource {
		return fmt.Errorf("network: invalid output neuron type %v", tp.NeuronType)
	}
	return nil
}

func gauss(rnd *rand.Rand, mean, sigma float32) float32 {
	if sigma <= 0 {
		return mean
	}
	return mean + float32(rnd.NormFloat64())*sigma
}

// Draw returns one concrete neuron parameter set, with gaussian noise
// applied per NeuronNoise and the result clamped to valid ranges.
func (tp *TopologyParams) Draw(rnd *rand.Rand) simnet.NeuronParams {
	res := tp.Neuron
	ns := &tp.NeuronNoise
	res.CM = gauss(rnd, res.CM, ns.CM)
	res.GLeak = gauss(rnd, res.GLeak, ns.GLeak)
	res.TauSynE = gauss(rnd, res.TauSynE, ns.TauSynE)
	res.TauSynI = gauss(rnd, res.TauSynI, ns.TauSynI)
	res.ERevE = gauss(rnd, res.ERevE, ns.ERevE)
	res.ERevI = gauss(rnd, res.ERevI, ns.ERevI)
	res.VRest = gauss(rnd, res.VRest, ns.VRest)
	res.VReset = gauss(rnd, res.VReset, ns.VReset)
	res.VThresh = gauss(rnd, res.VThresh, ns.VThresh)
	res.TauRefrac = gauss(rnd, res.TauRefrac, ns.TauRefrac)
	res.IOffset = gauss(rnd, res.IOffset, ns.IOffset)
	res.Clamp()
	return res
}

// DrawWeight returns one synaptic weight, clipped to be non-negative.
func (tp *TopologyParams) DrawWeight(rnd *rand.Rand) float32 {
	if tp.SigmaW <= 0 {
		return tp.W
	}
	w := gauss(rnd, tp.W, tp.SigmaW)
	if w < 0 {
		w = 0
	}
	return w
}

// params.Styler interface
func (tp *TopologyParams) TypeName() string { return "Topology" }
func (tp *TopologyParams) Name() string     { return "" }
func (tp *TopologyParams) Class() string    { return "" }

func (tp *TopologyParams) ApplyParams(pars *params.Sheet, setMsg bool) (bool, error) {
	return pars.Apply(tp, setMsg)
}
