// Copyright 2022 The fnirsi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package capture

// field describes one header setting field.
type field struct {
	name  string
	pad   int // number of field slots skipped before the field
	ptr   func(h *Header) *uint16
	check func(code uint32) error // closed-set check, nil for free-form fields
}

// headerFields lists the header setting fields in on-disk order.
// Pads are expressed in slots of the profile field width.
var headerFields = []field{
	{"channel1_scale", 2, func(h *Header) *uint16 { return &h.Ch1Scale }, checkVolt},
	{"channel1_coupling", 1, func(h *Header) *uint16 { return &h.Ch1Coupling }, checkCoupling},
	{"channel1_probe", 0, func(h *Header) *uint16 { return &h.Ch1Probe }, checkAttenuation},
	{"channel2_scale", 1, func(h *Header) *uint16 { return &h.Ch2Scale }, checkVolt},
	{"channel2_coupling", 1, func(h *Header) *uint16 { return &h.Ch2Coupling }, checkCoupling},
	{"channel2_probe", 0, func(h *Header) *uint16 { return &h.Ch2Probe }, checkAttenuation},
	{"time_scale", 0, func(h *Header) *uint16 { return &h.TimeScale }, checkTime},
	{"scroll_speed", 0, func(h *Header) *uint16 { return &h.ScrollSpeed }, checkScrollSpeed},
	{"trigger_type", 0, func(h *Header) *uint16 { return &h.TriggerType }, checkTriggerType},
	{"trigger_edge", 0, func(h *Header) *uint16 { return &h.TriggerEdge }, checkTriggerEdge},
	{"trigger_channel", 0, func(h *Header) *uint16 { return &h.TriggerChannel }, checkTriggerChannel},
	{"channel1_offset", 26, func(h *Header) *uint16 { return &h.Ch1Offset }, nil},
	{"channel2_offset", 0, func(h *Header) *uint16 { return &h.Ch2Offset }, nil},
	{"screen_brightness", 16, func(h *Header) *uint16 { return &h.ScreenBright }, nil},
	{"grid_brightness", 0, func(h *Header) *uint16 { return &h.GridBright }, nil},
	{"trigger_50", 0, func(h *Header) *uint16 { return &h.Trigger50 }, checkTrigger50},
}

// measurementSize is the size in bytes of a Measurements block,
// for all measurement layouts.
const measurementSize = 48

// mfield describes one field of a Measurements block.
type mfield struct {
	name string
	pad  int // bytes skipped before the field
	size int // 2 or 4 bytes
	get  func(m *Measurements) uint32
	set  func(m *Measurements, v uint32)
}

func u16field(name string, pad int, ptr func(m *Measurements) *uint16) mfield {
	return mfield{
		name: name,
		pad:  pad,
		size: 2,
		get:  func(m *Measurements) uint32 { return uint32(*ptr(m)) },
		set:  func(m *Measurements, v uint32) { *ptr(m) = uint16(v) },
	}
}

func u32field(name string, pad, size int, ptr func(m *Measurements) *uint32) mfield {
	return mfield{
		name: name,
		pad:  pad,
		size: size,
		get:  func(m *Measurements) uint32 { return *ptr(m) },
		set:  func(m *Measurements, v uint32) { *ptr(m) = v },
	}
}

var amplitudeFields = []mfield{
	u16field("vmax", 2, func(m *Measurements) *uint16 { return &m.Vmax }),
	u16field("vmin", 2, func(m *Measurements) *uint16 { return &m.Vmin }),
	u16field("vavg", 2, func(m *Measurements) *uint16 { return &m.Vavg }),
	u16field("vrms", 2, func(m *Measurements) *uint16 { return &m.Vrms }),
	u16field("vpp", 2, func(m *Measurements) *uint16 { return &m.Vpp }),
	u16field("vp", 2, func(m *Measurements) *uint16 { return &m.Vp }),
}

// durationFields returns the duration/duty fields, each occupying 4 bytes:
// either a pad of 2 bytes followed by a 16-bit value, or a 32-bit value.
func durationFields(size int) []mfield {
	pad := 4 - size
	return []mfield{
		u32field("cycle_ns", pad, size, func(m *Measurements) *uint32 { return &m.CycleNs }),
		u32field("time_plus_ns", pad, size, func(m *Measurements) *uint32 { return &m.TimePlusNs }),
		u32field("time_minus_ns", pad, size, func(m *Measurements) *uint32 { return &m.TimeMinusNs }),
		u32field("duty_plus_percentage", pad, size, func(m *Measurements) *uint32 { return &m.DutyPlus }),
		u32field("duty_minus_percentage", pad, size, func(m *Measurements) *uint32 { return &m.DutyMinus }),
	}
}

func concat(blocks ...[]mfield) []mfield {
	var o []mfield
	for _, b := range blocks {
		o = append(o, b...)
	}
	return o
}

// measurementFields lists the Measurements fields in on-disk order,
// per measurement layout.
var measurementFields = map[MeasurementLayout][]mfield{
	Split16: concat(
		amplitudeFields,
		[]mfield{
			u16field("frequency_high", 0, func(m *Measurements) *uint16 { return &m.FreqHigh }),
			u16field("frequency_low", 0, func(m *Measurements) *uint16 { return &m.FreqLow }),
		},
		durationFields(2),
	),
	Native32: concat(
		amplitudeFields,
		[]mfield{
			u32field("frequency", 0, 4, func(m *Measurements) *uint32 { return &m.Freq }),
		},
		durationFields(4),
	),
}

func checkTime(code uint32) error {
	_, err := ResolveTimeScale(code)
	return err
}

func checkVolt(code uint32) error {
	_, err := ResolveVoltScale(code)
	return err
}

func checkCoupling(code uint32) error {
	_, err := CouplingFrom(code)
	return err
}

func checkAttenuation(code uint32) error {
	_, err := AttenuationFrom(code)
	return err
}

func checkScrollSpeed(code uint32) error {
	_, err := ScrollSpeedFrom(code)
	return err
}

func checkTriggerType(code uint32) error {
	_, err := TriggerTypeFrom(code)
	return err
}

func checkTriggerEdge(code uint32) error {
	_, err := TriggerEdgeFrom(code)
	return err
}

func checkTriggerChannel(code uint32) error {
	_, err := TriggerChannelFrom(code)
	return err
}

func checkTrigger50(code uint32) error {
	_, err := Trigger50From(code)
	return err
}
