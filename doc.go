// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package gonam is the overall repository for the GoNAM binary neural
associative memory (BiNAM) simulator and evaluator, implemented in the
Go language (golang).

GoNAM translates a trained binary associative memory plus binary sample
data into a spiking neural network description, multiplexes many such
experiments spatially (population ranges) and temporally (sample time
windows) into one executable network, runs it once on a simulation
backend, and demultiplexes the recorded spike events back into
per-experiment results (recall latency, reconstructed output matrix,
storage capacity).

This top-level of the repository has no functional code -- everything is
organized into the following sub-repositories:

* binam: the binary associative memory itself (training, evaluation,
weight-matrix indexing) over binary sample matrices.

* entropy: information-theoretic analysis -- per-sample error counts and
the storage-capacity entropy formulas, including expected-value versions
used to auto-tune sample geometry.

* data: random, balanced and unique generation of binary sample
matrices.

* simnet: the backend-neutral network description (populations,
connections, neuron parameters, recordings) and the Backend interface
that simulation backends implement.

* lif: a reference conductance-based leaky integrate-and-fire backend,
sufficient to exercise the full multiplex / simulate / demultiplex loop.

* network: the core -- parameter structs, the topology and spike-train
builder, the experiment unit (matching and temporal splitting), the
batch compositor (spatial multiplexing) and the result analyzer.

* report: etable-based result tables and summaries.

* examples: these compile into runnable programs -- examples/capacity
runs a complete storage-capacity experiment end to end.
*/
package gonam
