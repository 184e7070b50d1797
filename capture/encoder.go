// Copyright 2022 The fnirsi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package capture

import (
	"encoding/binary"

	"golang.org/x/xerrors"
)

// Encoder lays out a File according to a Profile.
// Padding bytes are written as zeros.
type Encoder struct {
	p   Profile
	ord binary.ByteOrder
	buf []byte
	pos int64
	err error
}

// NewEncoder returns a new Encoder for profile p.
func NewEncoder(p Profile) *Encoder {
	return &Encoder{
		p:   p,
		ord: p.Order.binary(),
	}
}

// Encode returns the on-disk representation of f.
func (enc *Encoder) Encode(f *File) ([]byte, error) {
	enc.buf = make([]byte, Size(enc.p))
	enc.pos = 0
	enc.err = nil

	width := int(enc.p.Width)
	for _, fd := range headerFields {
		enc.pos += int64(fd.pad * width)
		enc.write(fd.name, width, uint32(*fd.ptr(&f.Header)))
	}
	if enc.err != nil {
		return nil, xerrors.Errorf("capture: could not encode header: %w", enc.err)
	}

	enc.pos = enc.p.Offsets.Ch1Measurements
	enc.measurements("channel1", &f.Header.Ch1Measurements)
	enc.pos = enc.p.Offsets.Ch2Measurements
	enc.measurements("channel2", &f.Header.Ch2Measurements)
	if enc.err != nil {
		return nil, xerrors.Errorf("capture: could not encode measurements: %w", enc.err)
	}

	enc.pos = enc.p.Offsets.Samples
	enc.run("channel11", f.Ch1, NumCoarse)
	enc.run("channel21", f.Ch2, NumCoarse)
	enc.run("channel12", f.Ch1Fine, NumFine)
	enc.run("channel22", f.Ch2Fine, NumFine)
	if enc.err != nil {
		return nil, xerrors.Errorf("capture: could not encode samples: %w", enc.err)
	}

	return enc.buf, nil
}

func (enc *Encoder) measurements(ch string, m *Measurements) {
	for _, fd := range measurementFields[enc.p.Measurements] {
		enc.pos += int64(fd.pad)
		enc.write(ch+"_"+fd.name, fd.size, fd.get(m))
	}
}

// run writes exactly n samples: missing samples are written as zeros.
func (enc *Encoder) run(name string, vs []uint16, n int) {
	if enc.err != nil {
		return
	}
	if len(vs) > n {
		enc.err = xerrors.Errorf("%s holds %d samples (max=%d)", name, len(vs), n)
		return
	}
	for _, v := range vs {
		enc.ord.PutUint16(enc.buf[enc.pos:], v)
		enc.pos += 2
	}
	enc.pos += int64(2 * (n - len(vs)))
}

func (enc *Encoder) write(name string, n int, v uint32) {
	if enc.err != nil {
		return
	}
	if n < 4 && v>>(8*n) != 0 {
		enc.err = xerrors.Errorf("%s value %d overflows a %d-byte field", name, v, n)
		return
	}
	p := enc.buf[enc.pos : enc.pos+int64(n)]
	switch n {
	case 1:
		p[0] = uint8(v)
	case 2:
		enc.ord.PutUint16(p, uint16(v))
	case 4:
		enc.ord.PutUint32(p, v)
	default:
		panic(xerrors.Errorf("capture: invalid field size %d for %s", n, name))
	}
	enc.pos += int64(n)
}
