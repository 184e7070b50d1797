// Copyright 2022 The fnirsi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/yjv/fnirsi/capture"
	"github.com/yjv/fnirsi/internal/fakecap"
)

func TestConv(t *testing.T) {
	tmp := t.TempDir()
	fname, err := fakecap.Create(tmp, capture.V1, 0)
	if err != nil {
		t.Fatal(err)
	}
	oname := filepath.Join(tmp, "out.bin")

	xmain([]string{"-p", "v1", "-t", "v3", "-o", oname, fname})

	raw, err := os.ReadFile(oname)
	if err != nil {
		t.Fatalf("could not read output file: %+v", err)
	}
	if got, want := int64(len(raw)), capture.Size(capture.V3); got != want {
		t.Fatalf("invalid output size: got=%d, want=%d", got, want)
	}
}

func TestProcess(t *testing.T) {
	tmp := t.TempDir()
	ctx := context.Background()

	for _, tc := range []struct {
		src, dst capture.Profile
	}{
		{capture.V1, capture.V2},
		{capture.V1, capture.V3},
		{capture.V2, capture.V1},
		{capture.V3, capture.V1},
		{capture.V3, capture.V3},
	} {
		t.Run(tc.src.Name+"-"+tc.dst.Name, func(t *testing.T) {
			want := fakecap.File(1)
			capture.SetFrequency(tc.src.Measurements, &want.Header.Ch1Measurements, 0x10002)
			raw, err := capture.NewEncoder(tc.src).Encode(&want)
			if err != nil {
				t.Fatalf("could not encode capture: %+v", err)
			}

			fname := filepath.Join(tmp, tc.src.Name+"-"+tc.dst.Name+".bin")
			err = os.WriteFile(fname, raw, 0644)
			if err != nil {
				t.Fatal(err)
			}

			oname := fname + ".out"
			err = process(ctx, oname, tc.dst, fname, tc.src)
			if err != nil {
				t.Fatalf("could not convert capture: %+v", err)
			}

			buf, err := os.ReadFile(oname)
			if err != nil {
				t.Fatalf("could not read output file: %+v", err)
			}
			got, err := capture.Decode(tc.dst, buf)
			if err != nil {
				t.Fatalf("could not decode output file: %+v", err)
			}

			if got, want := capture.Frequency(tc.dst.Measurements, &got.Header.Ch1Measurements), uint32(0x10002); got != want {
				t.Fatalf("invalid frequency: got=0x%x, want=0x%x", got, want)
			}

			convert(&want, tc.src, tc.dst)
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("invalid converted capture:\ngot= %+v\nwant=%+v", got.Header, want.Header)
			}
		})
	}
}

func TestProcessOverflow(t *testing.T) {
	tmp := t.TempDir()

	f := fakecap.File(0)
	f.Header.Ch1Measurements.CycleNs = 100000
	raw, err := capture.NewEncoder(capture.V3).Encode(&f)
	if err != nil {
		t.Fatalf("could not encode capture: %+v", err)
	}
	fname := filepath.Join(tmp, "v3.bin")
	err = os.WriteFile(fname, raw, 0644)
	if err != nil {
		t.Fatal(err)
	}

	oname := filepath.Join(tmp, "v1.bin")
	err = process(context.Background(), oname, capture.V1, fname, capture.V3)
	if err == nil {
		t.Fatalf("expected an error")
	}
	want := "could not encode capture with profile v1: capture: could not encode measurements: channel1_cycle_ns value 100000 overflows a 2-byte field"
	if got := err.Error(); got != want {
		t.Fatalf("invalid error:\ngot= %s\nwant=%s", got, want)
	}
	if _, err := os.Stat(oname); !os.IsNotExist(err) {
		t.Fatalf("output file created on failure: %+v", err)
	}

	err = process(context.Background(), oname, capture.V1, filepath.Join(tmp, "missing.bin"), capture.V3)
	if err == nil || !strings.HasPrefix(err.Error(), "could not open capture: ") {
		t.Fatalf("invalid error: %+v", err)
	}
}
