// This file is part of Nopits.
//
// Nopits is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Nopits is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Nopits.  If not, see <https://www.gnu.org/licenses/>.

// Package arcplot renders the arcs measured by the hostsim package as an
// HTML line chart. Each variant is a series showing the height of the player
// above the recovery threshold on every frame after an intervention.
package arcplot

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/jetsetilly/nopits/curated"
	"github.com/jetsetilly/nopits/hostsim"
	"github.com/jetsetilly/nopits/recovery"
)

// PlotError is the curated pattern for errors rendering a chart.
const PlotError = "arcplot: %v"

// Heights returns the height above the threshold for each frame of the arc.
// The first value is the frame of the intervention.
func Heights(arc hostsim.Arc, tuning recovery.Tuning) []int {
	threshold := recovery.Snapshot{Band: recovery.PlayArea, Position: tuning.Threshold}.Combined()
	h := []int{0}
	for _, f := range arc.Trace.Frames {
		h = append(h, threshold-f.Snapshot.Combined())
	}
	return h
}

// Plot renders the arcs to w.
func Plot(w io.Writer, arcs []hostsim.Arc, tuning recovery.Tuning) error {
	if len(arcs) == 0 {
		return curated.Errorf(PlotError, "nothing to plot")
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "nopits"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "recovery arcs",
			Subtitle: tuning.String(),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "frame"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "height"}),
	)

	var frames int
	for _, a := range arcs {
		frames = max(frames, len(a.Trace.Frames)+1)
	}
	x := make([]int, frames)
	for i := range x {
		x[i] = i
	}
	line.SetXAxis(x)

	for _, a := range arcs {
		var data []opts.LineData
		for _, h := range Heights(a, tuning) {
			data = append(data, opts.LineData{Value: h})
		}
		line.AddSeries(a.Variant.Name, data)
	}

	if err := line.Render(w); err != nil {
		return curated.Errorf(PlotError, fmt.Errorf("render: %w", err))
	}
	return nil
}
