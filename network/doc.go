// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package network builds binary associative memory evaluation experiments
as spiking networks and takes the simulation results apart again.

A Builder turns a pair of sample matrices into an Instance: the trained
memory expanded into a source and an output population, with the input
samples encoded as tagged spike trains.  Multiple encodings of the same
samples are multiplexed in time (consecutive blocks separated by a
configurable gap), and multiple independent experiments are multiplexed
in space by merging them into a Pool.  Both directions of multiplexing
record split descriptors, which BuildAnalysis uses to demultiplex one
combined recording into per-block Analysis values.

An Analysis matches output spikes back to sample indices, reconstructs
the analog output matrix, measures recall latencies and scores the
stored information against both the expected output and the ideal
(non-spiking) memory.
*/
package network
