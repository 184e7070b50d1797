// Copyright 2022 The fnirsi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package capture

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds statistics computed from the points of a channel.
// Voltages are in volts, durations in seconds.
type Summary struct {
	N        int     `json:"n"`
	Min      float64 `json:"vmin"`
	Max      float64 `json:"vmax"`
	Mean     float64 `json:"vavg"`
	RMS      float64 `json:"vrms"`
	StdDev   float64 `json:"vstddev"`
	PeakPeak float64 `json:"vpp"`
	Duration float64 `json:"duration"`
}

// Summarize computes the statistics of a series of points.
func Summarize(pts []Point) Summary {
	if len(pts) == 0 {
		return Summary{}
	}

	vs := make([]float64, len(pts))
	for i, p := range pts {
		vs[i] = float64(p.Voltage)
	}

	sum := Summary{
		N:        len(vs),
		Min:      floats.Min(vs),
		Max:      floats.Max(vs),
		Mean:     stat.Mean(vs, nil),
		RMS:      math.Sqrt(floats.Dot(vs, vs) / float64(len(vs))),
		Duration: float64(pts[len(pts)-1].Time - pts[0].Time),
	}
	sum.PeakPeak = sum.Max - sum.Min
	if len(vs) > 1 {
		sum.StdDev = stat.StdDev(vs, nil)
	}
	return sum
}

// Summaries holds the statistics of both channels of a Record.
type Summaries struct {
	Ch1 Summary `json:"channel1"`
	Ch2 Summary `json:"channel2"`
}

// Summarize computes the statistics of both channels of rec.
func (rec *Record) Summarize() Summaries {
	return Summaries{
		Ch1: Summarize(rec.Ch1.Points),
		Ch2: Summarize(rec.Ch2.Points),
	}
}
