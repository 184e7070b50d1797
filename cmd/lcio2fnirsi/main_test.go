// Copyright 2022 The fnirsi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/yjv/fnirsi/capture"
	"github.com/yjv/fnirsi/internal/fakecap"
	"github.com/yjv/fnirsi/internal/xcnv"
	"go-hep.org/x/hep/lcio"
)

func TestLCIO2FNIRSI(t *testing.T) {
	tmp := t.TempDir()

	const run = 63
	caps := []capture.File{fakecap.File(0), fakecap.File(1)}

	fname := filepath.Join(tmp, "captures.lcio")
	lw, err := lcio.Create(fname)
	if err != nil {
		t.Fatalf("could not create LCIO file: %+v", err)
	}
	defer lw.Close()

	err = xcnv.Capture2LCIO(lw, capture.V3, run, caps, msg)
	if err != nil {
		t.Fatalf("could not convert to LCIO: %+v", err)
	}

	err = lw.Close()
	if err != nil {
		t.Fatalf("could not close LCIO file: %+v", err)
	}

	n, err := numEvents(fname)
	if err != nil {
		t.Fatalf("could not count events: %+v", err)
	}
	if got, want := n, int64(len(caps)); got != want {
		t.Fatalf("invalid number of events: got=%d, want=%d", got, want)
	}

	odir := filepath.Join(tmp, "out")
	onames, err := process(odir, fname, 1)
	if err != nil {
		t.Fatalf("could not convert LCIO file: %+v", err)
	}
	if got, want := len(onames), len(caps); got != want {
		t.Fatalf("invalid number of capture files: got=%d, want=%d", got, want)
	}

	for i, oname := range onames {
		got, err := os.ReadFile(oname)
		if err != nil {
			t.Fatalf("could not read capture file: %+v", err)
		}
		want := fakecap.Raw(capture.V3, i)
		if !bytes.Equal(got, want) {
			t.Fatalf("invalid capture file %d", i)
		}
	}

	xmain([]string{"-o", odir, fname})
}
