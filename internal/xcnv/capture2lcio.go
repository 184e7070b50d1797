// Copyright 2022 The fnirsi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xcnv

import (
	"encoding/binary"
	"fmt"
	"log"

	"github.com/yjv/fnirsi/capture"
	"go-hep.org/x/hep/lcio"
)

const (
	// RawCollection is the name of the LCIO collection holding the
	// encoded capture.
	RawCollection = "FNIRSI_RAW"

	detector = "FNIRSI"
	i32sz    = 4
)

// Capture2LCIO writes each capture as one LCIO event of the given run.
// Captures are re-encoded with profile p and stored as little-endian
// int32 words.
func Capture2LCIO(w *lcio.Writer, p capture.Profile, run int32, caps []capture.File, msg *log.Logger) error {
	err := w.WriteRunHeader(&lcio.RunHeader{
		RunNumber: run,
		Detector:  detector,
		Descr:     "oscilloscope captures",
		Params: lcio.Params{
			Strings: map[string][]string{
				"Profile": {p.Name},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("could not write run header: %w", err)
	}

	enc := capture.NewEncoder(p)
	for i := range caps {
		if i%100 == 0 {
			msg.Printf("processing evt %d...", i)
		}
		raw, err := enc.Encode(&caps[i])
		if err != nil {
			return fmt.Errorf("could not encode capture %d: %w", i, err)
		}

		evt := lcio.Event{
			RunNumber:   run,
			EventNumber: int32(i),
			Detector:    detector,
			Params: lcio.Params{
				Strings: map[string][]string{
					"Profile": {p.Name},
				},
				Ints: map[string][]int32{
					"Size": {int32(len(raw))},
				},
			},
		}
		evt.Add(RawCollection, &lcio.GenericObject{
			Data: []lcio.GenericObjectData{
				{I32s: i32sFrom(raw)},
			},
		})

		err = w.WriteEvent(&evt)
		if err != nil {
			return fmt.Errorf("could not write capture event %d: %w", i, err)
		}
	}

	return nil
}

func i32sFrom(raw []byte) []int32 {
	n := (len(raw) + i32sz - 1) / i32sz
	buf := make([]byte, n*i32sz)
	copy(buf, raw)

	sli := make([]int32, n)
	for i := range sli {
		sli[i] = int32(binary.LittleEndian.Uint32(buf[i*i32sz:]))
	}
	return sli
}
