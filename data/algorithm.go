// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package data

import (
	"github.com/goki/ki/kit"
)

// Algorithm selects how binary sample matrices are generated.
type Algorithm int32

//go:generate stringer -type=Algorithm

var KiT_Algorithm = kit.Enums.AddEnum(AlgorithmN, kit.NotBitFlag, nil)

func (ev Algorithm) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Algorithm) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// Balanced selects the least-used bits per sample so that overall
	// bit usage stays as even as possible.  This is the default.
	Balanced Algorithm = iota

	// Random draws each sample's set bits independently at random.
	Random

	// Unique is the balanced selection without the usage weighting --
	// samples are only kept distinct from each other.
	Unique

	AlgorithmN
)

// Valid reports whether the algorithm is one of the defined generation
// algorithms.
func (ev Algorithm) Valid() bool {
	return ev >= 0 && ev < AlgorithmN
}
