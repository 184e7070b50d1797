// Copyright 2022 The fnirsi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package capture

import (
	"encoding/binary"
	"fmt"
	"sort"
	"strings"
)

// FieldWidth is the on-disk width of the header setting fields.
type FieldWidth uint8

const (
	Byte FieldWidth = 1
	Word FieldWidth = 2
)

func (w FieldWidth) String() string {
	switch w {
	case Byte:
		return "8-bit"
	case Word:
		return "16-bit"
	}
	return fmt.Sprintf("FieldWidth(%d)", uint8(w))
}

// ByteOrder selects the endianness of every multi-byte field of a capture.
type ByteOrder uint8

const (
	Little ByteOrder = iota
	Native           // byte order of the host decoding the capture
)

func (o ByteOrder) String() string {
	switch o {
	case Little:
		return "little-endian"
	case Native:
		return "native"
	}
	return fmt.Sprintf("ByteOrder(%d)", uint8(o))
}

func (o ByteOrder) binary() binary.ByteOrder {
	if o == Native {
		return binary.NativeEndian
	}
	return binary.LittleEndian
}

// MeasurementLayout describes how a Measurements block is stored.
type MeasurementLayout uint8

const (
	// Split16 stores the frequency as two 16-bit halves (high, low)
	// and the duration/duty statistics as 16-bit fields.
	Split16 MeasurementLayout = iota
	// Native32 stores the frequency and the duration/duty statistics
	// as 32-bit fields.
	Native32
)

func (m MeasurementLayout) String() string {
	switch m {
	case Split16:
		return "split-16"
	case Native32:
		return "native-32"
	}
	return fmt.Sprintf("MeasurementLayout(%d)", uint8(m))
}

// Offsets holds the absolute positions of the relocated blocks of a capture.
type Offsets struct {
	Ch1Measurements int64
	Ch2Measurements int64
	Samples         int64
}

// Profile describes the on-disk layout of one firmware generation.
// A profile is chosen once per capture and applies to the whole file.
type Profile struct {
	Name         string
	Width        FieldWidth
	Order        ByteOrder
	Measurements MeasurementLayout
	// Inline reports whether scale and enumerated codes are validated
	// while the header is read, instead of during normalization.
	Inline  bool
	Offsets Offsets
}

func (p Profile) String() string {
	return fmt.Sprintf("%s (%v fields, %v, %v measurements, inline=%v)",
		p.Name, p.Width, p.Order, p.Measurements, p.Inline,
	)
}

var defaultOffsets = Offsets{
	Ch1Measurements: 208,
	Ch2Measurements: 256,
	Samples:         1000,
}

var (
	V1 = Profile{
		Name:         "v1",
		Width:        Word,
		Order:        Little,
		Measurements: Split16,
		Offsets:      defaultOffsets,
	}

	V2 = Profile{
		Name:         "v2",
		Width:        Byte,
		Order:        Little,
		Measurements: Split16,
		Inline:       true,
		Offsets:      defaultOffsets,
	}

	V3 = Profile{
		Name:         "v3",
		Width:        Word,
		Order:        Native,
		Measurements: Native32,
		Inline:       true,
		Offsets:      defaultOffsets,
	}
)

var profiles = map[string]Profile{
	V1.Name: V1,
	V2.Name: V2,
	V3.Name: V3,
}

// Profiles returns the known profiles, sorted by name.
func Profiles() []Profile {
	ps := make([]Profile, 0, len(profiles))
	for _, p := range profiles {
		ps = append(ps, p)
	}
	sort.Slice(ps, func(i, j int) bool {
		return ps[i].Name < ps[j].Name
	})
	return ps
}

// ProfileByName returns the known profile with the provided name.
func ProfileByName(name string) (Profile, error) {
	p, ok := profiles[strings.ToLower(name)]
	if !ok {
		return Profile{}, fmt.Errorf("capture: unknown profile %q", name)
	}
	return p, nil
}

// Size returns the minimal length of a capture laid out with p.
func Size(p Profile) int64 {
	n := p.Offsets.Samples + 2*(2*NumCoarse+2*NumFine)
	for _, off := range []int64{p.Offsets.Ch1Measurements, p.Offsets.Ch2Measurements} {
		if end := off + measurementSize; end > n {
			n = end
		}
	}
	return n
}
