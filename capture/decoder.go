// Copyright 2022 The fnirsi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package capture

import (
	"encoding/binary"

	"golang.org/x/xerrors"
)

// Decoder reads a capture laid out according to a Profile from a byte buffer.
// The buffer is never modified.
type Decoder struct {
	p   Profile
	ord binary.ByteOrder
	buf []byte
	pos int64
	err error
}

// NewDecoder creates a decoder that reads a capture from buf, using profile p.
func NewDecoder(p Profile, buf []byte) *Decoder {
	return &Decoder{
		p:   p,
		ord: p.Order.binary(),
		buf: buf,
	}
}

// Decode decodes a capture into f.
// On error, f is left untouched: no partially decoded capture is ever
// returned.
func (dec *Decoder) Decode(f *File) error {
	dec.pos = 0
	dec.err = nil

	var (
		out   File
		width = int(dec.p.Width)
	)

	for _, fd := range headerFields {
		dec.skip(fd.pad * width)
		off := dec.pos
		v := dec.read(fd.name, width)
		if dec.err != nil {
			return xerrors.Errorf("capture: could not read header: %w", dec.err)
		}
		if dec.p.Inline && fd.check != nil {
			err := scaleField(fd.check(v), fd.name)
			if err != nil {
				return xerrors.Errorf(
					"capture: could not decode header field %s at offset %d: %w",
					fd.name, off, err,
				)
			}
		}
		*fd.ptr(&out.Header) = uint16(v)
	}

	dec.seek(dec.p.Offsets.Ch1Measurements)
	dec.measurements("channel1", &out.Header.Ch1Measurements)
	dec.seek(dec.p.Offsets.Ch2Measurements)
	dec.measurements("channel2", &out.Header.Ch2Measurements)
	if dec.err != nil {
		return xerrors.Errorf("capture: could not read measurements: %w", dec.err)
	}

	dec.seek(dec.p.Offsets.Samples)
	out.Ch1 = dec.run("channel11", NumCoarse)
	out.Ch2 = dec.run("channel21", NumCoarse)
	out.Ch1Fine = dec.run("channel12", NumFine)
	out.Ch2Fine = dec.run("channel22", NumFine)
	if dec.err != nil {
		return xerrors.Errorf("capture: could not read samples: %w", dec.err)
	}

	*f = out
	return nil
}

// Decode decodes the capture held in buf, using profile p.
func Decode(p Profile, buf []byte) (File, error) {
	var f File
	err := NewDecoder(p, buf).Decode(&f)
	return f, err
}

func (dec *Decoder) measurements(ch string, m *Measurements) {
	for _, fd := range measurementFields[dec.p.Measurements] {
		dec.skip(fd.pad)
		v := dec.read(ch+"_"+fd.name, fd.size)
		if dec.err != nil {
			return
		}
		fd.set(m, v)
	}
}

func (dec *Decoder) run(name string, n int) []uint16 {
	const size = 2
	if !dec.avail(name, n*size) {
		return nil
	}
	vs := make([]uint16, n)
	for i := range vs {
		vs[i] = dec.ord.Uint16(dec.buf[dec.pos:])
		dec.pos += size
	}
	return vs
}

func (dec *Decoder) skip(n int) {
	if dec.err != nil {
		return
	}
	dec.pos += int64(n)
}

func (dec *Decoder) seek(off int64) {
	if dec.err != nil {
		return
	}
	dec.pos = off
}

func (dec *Decoder) read(name string, n int) uint32 {
	if !dec.avail(name, n) {
		return 0
	}
	p := dec.buf[dec.pos : dec.pos+int64(n)]
	dec.pos += int64(n)
	switch n {
	case 1:
		return uint32(p[0])
	case 2:
		return uint32(dec.ord.Uint16(p))
	case 4:
		return dec.ord.Uint32(p)
	}
	panic(xerrors.Errorf("capture: invalid field size %d for %s", n, name))
}

func (dec *Decoder) avail(name string, n int) bool {
	if dec.err != nil {
		return false
	}
	if end := dec.pos + int64(n); end > int64(len(dec.buf)) {
		dec.err = &TruncatedError{
			Field:  name,
			Offset: dec.pos,
			Want:   int(end),
			Have:   len(dec.buf),
		}
		return false
	}
	return true
}
