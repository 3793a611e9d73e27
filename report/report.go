// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package report collects the analysis results of evaluation runs into
etable tables, for aggregation and CSV export.
*/
package report

import (
	"math"

	"github.com/emer/etable/agg"
	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/emer/etable/split"
	"github.com/emer/gonam/network"
)

// numeric result columns, aggregated by Summary
var aggCols = []string{"NSamples", "LatAvg", "LatMin", "Info", "InfoRef", "FalsePos", "FalseNeg"}

// Table scores each analysis block and collects the results into a
// table with one row per block.  The Name column is taken from the
// "name" meta annotation of the block's experiment.
func Table(recs []*network.Analysis, op *network.OutputParams) (*etable.Table, error) {
	sch := etable.Schema{
		{Name: "Name", Type: etensor.STRING},
		{Name: "Rec", Type: etensor.INT64},
		{Name: "NSamples", Type: etensor.INT64},
		{Name: "LatAvg", Type: etensor.FLOAT64},
		{Name: "LatMin", Type: etensor.FLOAT64},
		{Name: "Info", Type: etensor.FLOAT64},
		{Name: "InfoRef", Type: etensor.FLOAT64},
		{Name: "FalsePos", Type: etensor.FLOAT64},
		{Name: "FalseNeg", Type: etensor.FLOAT64},
	}
	dt := &etable.Table{}
	dt.SetFromSchema(sch, len(recs))
	for ri, na := range recs {
		lats, err := na.Latencies()
		if err != nil {
			return nil, err
		}
		info, _, errs, err := na.StorageCapacity(op)
		if err != nil {
			return nil, err
		}
		infoRef, _, _, err := na.MaxStorageCapacity()
		if err != nil {
			return nil, err
		}
		fp, fn := 0.0, 0.0
		for _, e := range errs {
			fp += e.FalsePositives
			fn += e.FalseNegatives
		}
		dt.SetCellString("Name", ri, na.Meta["name"])
		dt.SetCellFloat("Rec", ri, float64(ri))
		dt.SetCellFloat("NSamples", ri, float64(na.Data.NSamples))
		dt.SetCellFloat("LatAvg", ri, finiteMean(lats))
		dt.SetCellFloat("LatMin", ri, finiteMin(lats))
		dt.SetCellFloat("Info", ri, info)
		dt.SetCellFloat("InfoRef", ri, infoRef)
		dt.SetCellFloat("FalsePos", ri, fp)
		dt.SetCellFloat("FalseNeg", ri, fn)
	}
	return dt, nil
}

// finiteMean averages the finite entries, returning +Inf when there are
// none (no sample produced both input and output spikes).
func finiteMean(vals []float64) float64 {
	sum, n := 0.0, 0
	for _, v := range vals {
		if math.IsInf(v, 0) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.Inf(1)
	}
	return sum / float64(n)
}

// finiteMin is the smallest finite entry, +Inf when there is none.
func finiteMin(vals []float64) float64 {
	res := math.Inf(1)
	for _, v := range vals {
		if !math.IsInf(v, 0) && v < res {
			res = v
		}
	}
	return res
}

// Summary aggregates a result table by experiment name, averaging the
// numeric result columns over the blocks of each experiment.
func Summary(dt *etable.Table) *etable.Table {
	ix := etable.NewIdxView(dt)
	spl := split.GroupBy(ix, []string{"Name"})
	for _, cl := range aggCols {
		split.Agg(spl, cl, agg.AggMean)
	}
	return spl.AggsToTable(etable.AddAggName)
}
