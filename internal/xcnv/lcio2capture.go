// Copyright 2022 The fnirsi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xcnv

import (
	"encoding/binary"
	"fmt"
	"io"
	"log"

	"github.com/yjv/fnirsi/capture"
	"go-hep.org/x/hep/lcio"
)

// LCIO2Capture decodes the captures stored in r and hands them to fn,
// together with the profile they were encoded with.
func LCIO2Capture(r *lcio.Reader, fn func(p capture.Profile, f capture.File) error, freq int, msg *log.Logger) error {
	if freq <= 0 {
		freq = 1
	}

	i := 0
	for r.Next() {
		if i%freq == 0 {
			msg.Printf("processing evt %d...", i)
		}
		evt := r.Event()

		p, err := profileFrom(evt.Params)
		if err != nil {
			return fmt.Errorf("could not find profile of event %d: %w", i, err)
		}

		obj, ok := evt.Get(RawCollection).(*lcio.GenericObject)
		if !ok || len(obj.Data) == 0 {
			return fmt.Errorf("event %d has no %s collection", i, RawCollection)
		}
		raw := bytesFrom(obj.Data[0].I32s)
		vs := evt.Params.Ints["Size"]
		if len(vs) != 1 {
			return fmt.Errorf("event %d has no Size parameter", i)
		}
		if vs[0] < 0 || int(vs[0]) > len(raw) {
			return fmt.Errorf("event %d has invalid Size %d", i, vs[0])
		}
		raw = raw[:vs[0]]

		f, err := capture.Decode(p, raw)
		if err != nil {
			return fmt.Errorf("could not decode capture %d: %w", i, err)
		}

		err = fn(p, f)
		if err != nil {
			return err
		}
		i++
	}

	err := r.Err()
	if err != nil && err != io.EOF {
		return fmt.Errorf("could not read event %d: %w", i, err)
	}

	return nil
}

func profileFrom(params lcio.Params) (capture.Profile, error) {
	vs := params.Strings["Profile"]
	if len(vs) != 1 {
		return capture.Profile{}, fmt.Errorf("missing profile parameter")
	}
	return capture.ProfileByName(vs[0])
}

func bytesFrom(raw []int32) []byte {
	buf := make([]byte, len(raw)*i32sz)
	for i, v := range raw {
		binary.LittleEndian.PutUint32(buf[i*i32sz:], uint32(v))
	}
	return buf
}
