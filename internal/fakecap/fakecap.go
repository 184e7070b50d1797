// Copyright 2022 The fnirsi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fakecap builds in-memory captures for tests.
package fakecap // import "github.com/yjv/fnirsi/internal/fakecap"

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/yjv/fnirsi/capture"
)

// File returns a well-formed capture, valid for all profiles.
// Frequencies are left to zero as their layout depends on the profile.
// seed shifts the sample values so distinct captures can be told apart.
func File(seed int) capture.File {
	f := capture.File{
		Header: capture.Header{
			Ch1Scale:       2,
			Ch1Coupling:    uint16(capture.AC),
			Ch1Probe:       uint16(capture.TenX),
			Ch2Scale:       3,
			Ch2Coupling:    uint16(capture.DC),
			Ch2Probe:       uint16(capture.OneX),
			TimeScale:      5,
			ScrollSpeed:    uint16(capture.Slow),
			TriggerType:    uint16(capture.Single),
			TriggerEdge:    uint16(capture.Falling),
			TriggerChannel: uint16(capture.Channel2),
			Ch1Offset:      200,
			Ch2Offset:      100,
			ScreenBright:   80,
			GridBright:     40,
			Trigger50:      uint16(capture.Off),
			Ch1Measurements: capture.Measurements{
				Vmax: 1024, Vmin: 0, Vavg: 512, Vrms: 600, Vpp: 1024, Vp: 512,
				CycleNs: 1000, TimePlusNs: 400, TimeMinusNs: 600,
				DutyPlus: 40, DutyMinus: 60,
			},
			Ch2Measurements: capture.Measurements{
				Vmax: 256, Vmin: 128, Vavg: 192, Vrms: 200, Vpp: 128, Vp: 64,
				CycleNs: 2000, TimePlusNs: 1000, TimeMinusNs: 1000,
				DutyPlus: 50, DutyMinus: 50,
			},
		},
		Ch1:     make([]uint16, capture.NumCoarse),
		Ch2:     make([]uint16, capture.NumCoarse),
		Ch1Fine: make([]uint16, capture.NumFine),
		Ch2Fine: make([]uint16, capture.NumFine),
	}
	for i := range f.Ch1 {
		f.Ch1[i] = uint16(200 + (i+seed)%50)
		f.Ch2[i] = uint16(100 - (i+seed)%50)
	}
	for i := range f.Ch1Fine {
		f.Ch1Fine[i] = uint16(i + seed)
		f.Ch2Fine[i] = uint16(2*i + seed)
	}
	return f
}

// Raw returns the encoding of File(seed) with profile p.
func Raw(p capture.Profile, seed int) []byte {
	f := File(seed)
	raw, err := capture.NewEncoder(p).Encode(&f)
	if err != nil {
		panic(fmt.Errorf("fakecap: could not encode capture: %w", err))
	}
	return raw
}

// Create writes the encoding of File(seed) with profile p under dir and
// returns the name of the new file.
func Create(dir string, p capture.Profile, seed int) (string, error) {
	fname := filepath.Join(dir, fmt.Sprintf("capture-%s-%03d.bin", p.Name, seed))
	err := os.WriteFile(fname, Raw(p, seed), 0644)
	if err != nil {
		return "", fmt.Errorf("fakecap: could not create %q: %w", fname, err)
	}
	return fname, nil
}
