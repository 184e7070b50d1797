// Copyright 2022 The fnirsi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package capture decodes binary waveform capture files saved by FNIRSI
// two-channel oscilloscopes.
//
// A capture is first decoded into a raw File, whose header fields hold the
// device codes verbatim, and then normalized into a Record holding
// physical quantities (volts, seconds) and time/voltage point series.
//
// The on-disk layout changed across firmware generations.
// Each generation is described by a Profile value: one Decoder drives any
// Profile over the same declarative field table.
package capture // import "github.com/yjv/fnirsi/capture"

const (
	NumCoarse = 1500 // number of samples in a coarse channel run
	NumFine   = 750  // number of samples in a fine channel run

	// Divisions is the number of screen grid units used to normalize
	// time and voltage.
	Divisions = 50

	// FullScale is the device code of a full-scale amplitude measurement.
	FullScale = 1024
)

// File is the canonical raw content of a capture file.
type File struct {
	Header  Header   `json:"header"`
	Ch1     []uint16 `json:"channel11"` // channel 1, coarse
	Ch2     []uint16 `json:"channel21"` // channel 2, coarse
	Ch1Fine []uint16 `json:"channel12"`
	Ch2Fine []uint16 `json:"channel22"`
}

// Header holds the device settings stored at the beginning of a capture.
// Scale and enumerated fields are raw device codes.
type Header struct {
	Ch1Scale       uint16 `json:"channel1_scale"`
	Ch1Coupling    uint16 `json:"channel1_coupling"`
	Ch1Probe       uint16 `json:"channel1_probe"`
	Ch2Scale       uint16 `json:"channel2_scale"`
	Ch2Coupling    uint16 `json:"channel2_coupling"`
	Ch2Probe       uint16 `json:"channel2_probe"`
	TimeScale      uint16 `json:"time_scale"`
	ScrollSpeed    uint16 `json:"scroll_speed"`
	TriggerType    uint16 `json:"trigger_type"`
	TriggerEdge    uint16 `json:"trigger_edge"`
	TriggerChannel uint16 `json:"trigger_channel"`
	Ch1Offset      uint16 `json:"channel1_offset"` // zero-level sample code
	Ch2Offset      uint16 `json:"channel2_offset"` // zero-level sample code
	ScreenBright   uint16 `json:"screen_brightness"`
	GridBright     uint16 `json:"grid_brightness"`
	Trigger50      uint16 `json:"trigger_50"`

	Ch1Measurements Measurements `json:"channel1_measurements"`
	Ch2Measurements Measurements `json:"channel2_measurements"`
}

// Measurements holds the summary statistics computed by the device
// for one channel.
// Depending on the MeasurementLayout, the frequency is stored either in
// FreqHigh/FreqLow or in Freq.
type Measurements struct {
	Vmax uint16 `json:"vmax"`
	Vmin uint16 `json:"vmin"`
	Vavg uint16 `json:"vavg"`
	Vrms uint16 `json:"vrms"`
	Vpp  uint16 `json:"vpp"`
	Vp   uint16 `json:"vp"`

	FreqHigh uint16 `json:"frequency_high"`
	FreqLow  uint16 `json:"frequency_low"`
	Freq     uint32 `json:"frequency"`

	CycleNs     uint32 `json:"cycle_ns"`
	TimePlusNs  uint32 `json:"time_plus_ns"`
	TimeMinusNs uint32 `json:"time_minus_ns"`
	DutyPlus    uint32 `json:"duty_plus_percentage"`
	DutyMinus   uint32 `json:"duty_minus_percentage"`
}

// Point is one sample of a channel in physical units.
type Point struct {
	Time    float32 `json:"time"`    // in seconds
	Voltage float32 `json:"voltage"` // in volts
}

// Record is the normalized content of a capture.
type Record struct {
	Trigger   Trigger `json:"trigger"`
	TimeScale Scale   `json:"time_scale"`
	Ch1       Channel `json:"channel1"`
	Ch2       Channel `json:"channel2"`
}

type Trigger struct {
	Type      TriggerType    `json:"trigger_type"`
	Edge      TriggerEdge    `json:"edge"`
	Channel   TriggerChannel `json:"channel"`
	Trigger50 Trigger50      `json:"trigger_50"`
}

type Channel struct {
	Scale        Scale             `json:"scale"`
	Coupling     Coupling          `json:"coupling"`
	Attenuation  Attenuation       `json:"attenuation"`
	Measurements ChannelStatistics `json:"measurements"`
	Points       []Point           `json:"points"`
}

// ChannelStatistics holds the device measurements of a channel,
// with amplitudes converted to volts.
type ChannelStatistics struct {
	Vmax float32 `json:"vmax"`
	Vmin float32 `json:"vmin"`
	Vavg float32 `json:"vavg"`
	Vrms float32 `json:"vrms"`
	Vpp  float32 `json:"vpp"`
	Vp   float32 `json:"vp"`

	Frequency uint32 `json:"frequency"`

	CycleNs     uint32 `json:"cycle_ns"`
	TimePlusNs  uint32 `json:"time_plus_ns"`
	TimeMinusNs uint32 `json:"time_minus_ns"`
	DutyPlus    uint32 `json:"duty_plus_percentage"`
	DutyMinus   uint32 `json:"duty_minus_percentage"`
}
