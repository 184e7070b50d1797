// Copyright 2022 The fnirsi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package capture

import (
	"golang.org/x/xerrors"
)

// Option configures Normalize.
type Option func(*normalizer)

type normalizer struct {
	legacyCh2 bool
}

// WithLegacyChannel2 builds the points of channel 2 from the coarse samples
// of channel 1, as the historical decoder did.
func WithLegacyChannel2() Option {
	return func(n *normalizer) {
		n.legacyCh2 = true
	}
}

// Normalize converts the raw capture f, decoded with profile p, into
// physical quantities.
//
// Channel attenuation is reported as metadata only: it is not applied to
// the voltages of the points nor to the amplitude measurements.
func Normalize(f *File, p Profile, opts ...Option) (Record, error) {
	var cfg normalizer
	for _, opt := range opts {
		opt(&cfg)
	}

	var (
		rec Record
		hdr = &f.Header
		err error
	)

	rec.TimeScale, err = ResolveTimeScale(uint32(hdr.TimeScale))
	if err != nil {
		err = scaleField(err, "time_scale")
		return Record{}, xerrors.Errorf("capture: could not resolve time_scale: %w", err)
	}

	rec.Trigger, err = triggerFrom(hdr)
	if err != nil {
		return Record{}, err
	}

	ch2 := f.Ch2
	if cfg.legacyCh2 {
		ch2 = f.Ch1
	}

	rec.Ch1, err = channelFrom(
		"channel1", p.Measurements, rec.TimeScale,
		hdr.Ch1Scale, hdr.Ch1Coupling, hdr.Ch1Probe, hdr.Ch1Offset,
		&hdr.Ch1Measurements, f.Ch1,
	)
	if err != nil {
		return Record{}, err
	}

	rec.Ch2, err = channelFrom(
		"channel2", p.Measurements, rec.TimeScale,
		hdr.Ch2Scale, hdr.Ch2Coupling, hdr.Ch2Probe, hdr.Ch2Offset,
		&hdr.Ch2Measurements, ch2,
	)
	if err != nil {
		return Record{}, err
	}

	return rec, nil
}

func triggerFrom(hdr *Header) (Trigger, error) {
	var (
		trg Trigger
		err error
	)
	trg.Type, err = TriggerTypeFrom(uint32(hdr.TriggerType))
	if err != nil {
		return trg, xerrors.Errorf("capture: could not resolve trigger_type: %w", err)
	}
	trg.Edge, err = TriggerEdgeFrom(uint32(hdr.TriggerEdge))
	if err != nil {
		return trg, xerrors.Errorf("capture: could not resolve trigger_edge: %w", err)
	}
	trg.Channel, err = TriggerChannelFrom(uint32(hdr.TriggerChannel))
	if err != nil {
		return trg, xerrors.Errorf("capture: could not resolve trigger_channel: %w", err)
	}
	trg.Trigger50, err = Trigger50From(uint32(hdr.Trigger50))
	if err != nil {
		return trg, xerrors.Errorf("capture: could not resolve trigger_50: %w", err)
	}

	// scroll speed is not part of the record but must still decode.
	_, err = ScrollSpeedFrom(uint32(hdr.ScrollSpeed))
	if err != nil {
		return trg, xerrors.Errorf("capture: could not resolve scroll_speed: %w", err)
	}

	return trg, nil
}

func channelFrom(
	name string, layout MeasurementLayout, ts Scale,
	scale, coupling, probe, offset uint16,
	m *Measurements, samples []uint16,
) (Channel, error) {
	var (
		ch  Channel
		err error
	)

	ch.Scale, err = ResolveVoltScale(uint32(scale))
	if err != nil {
		err = scaleField(err, name+"_scale")
		return ch, xerrors.Errorf("capture: could not resolve %s_scale: %w", name, err)
	}
	ch.Coupling, err = CouplingFrom(uint32(coupling))
	if err != nil {
		return ch, xerrors.Errorf("capture: could not resolve %s_coupling: %w", name, err)
	}
	ch.Attenuation, err = AttenuationFrom(uint32(probe))
	if err != nil {
		return ch, xerrors.Errorf("capture: could not resolve %s_probe: %w", name, err)
	}

	ch.Measurements = statisticsFrom(layout, m)
	ch.Points = GeneratePoints(samples, ch.Scale, ts, offset)

	return ch, nil
}

func statisticsFrom(layout MeasurementLayout, m *Measurements) ChannelStatistics {
	return ChannelStatistics{
		Vmax:        Volts(m.Vmax),
		Vmin:        Volts(m.Vmin),
		Vavg:        Volts(m.Vavg),
		Vrms:        Volts(m.Vrms),
		Vpp:         Volts(m.Vpp),
		Vp:          Volts(m.Vp),
		Frequency:   Frequency(layout, m),
		CycleNs:     m.CycleNs,
		TimePlusNs:  m.TimePlusNs,
		TimeMinusNs: m.TimeMinusNs,
		DutyPlus:    m.DutyPlus,
		DutyMinus:   m.DutyMinus,
	}
}

// Volts converts a raw amplitude measurement to volts.
func Volts(code uint16) float32 {
	return float32(code) / FullScale
}

// Frequency returns the frequency held by m, according to layout.
func Frequency(layout MeasurementLayout, m *Measurements) uint32 {
	switch layout {
	case Native32:
		return m.Freq
	default:
		return uint32(m.FreqHigh)<<16 | uint32(m.FreqLow)
	}
}

// SetFrequency stores v into m, according to layout.
func SetFrequency(layout MeasurementLayout, m *Measurements, v uint32) {
	switch layout {
	case Native32:
		m.Freq = v
		m.FreqHigh = 0
		m.FreqLow = 0
	default:
		m.Freq = 0
		m.FreqHigh = uint16(v >> 16)
		m.FreqLow = uint16(v)
	}
}

// GeneratePoints converts samples into time/voltage points:
//
//	time[i]    = i * ts / Divisions
//	voltage[i] = (samples[i] - offset) * vs / Divisions
func GeneratePoints(samples []uint16, vs, ts Scale, offset uint16) []Point {
	var (
		pts  = make([]Point, len(samples))
		dt   = ts.Coeff()
		dv   = vs.Coeff()
		zero = float32(offset)
	)
	for i, v := range samples {
		pts[i] = Point{
			Time:    float32(i) * dt / Divisions,
			Voltage: (float32(v) - zero) * dv / Divisions,
		}
	}
	return pts
}
