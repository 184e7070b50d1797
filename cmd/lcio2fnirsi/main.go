// Copyright 2022 The fnirsi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command lcio2fnirsi extracts the captures stored in an LCIO file,
// one capture file per event.
package main // import "github.com/yjv/fnirsi/cmd/lcio2fnirsi"

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/yjv/fnirsi/capture"
	"github.com/yjv/fnirsi/internal/xcnv"
	"go-hep.org/x/hep/lcio"
)

var (
	msg = log.New(os.Stdout, "lcio2fnirsi: ", 0)
)

func main() {
	xmain(os.Args[1:])
}

func xmain(args []string) {
	var (
		fset = pflag.NewFlagSet("lcio2fnirsi", pflag.ExitOnError)

		odir = fset.StringP("output", "o", ".", "output directory for capture files")
	)

	fset.Usage = func() {
		fmt.Printf(`Usage: lcio2fnirsi [OPTIONS] file.lcio

ex:
 $> lcio2fnirsi -o ./captures ./input.lcio

options:
`)
		fset.PrintDefaults()
	}

	err := fset.Parse(args)
	if err != nil {
		msg.Fatalf("could not parse input arguments: %+v", err)
	}

	if fset.NArg() != 1 {
		fset.Usage()
		msg.Fatalf("missing input LCIO file")
	}

	if *odir == "" {
		fset.Usage()
		msg.Fatalf("invalid output directory")
	}

	n, err := numEvents(fset.Arg(0))
	if err != nil {
		msg.Fatalf("could not assess number of events: %+v", err)
	}
	msg.Printf("input:  %s", fset.Arg(0))
	msg.Printf("events: %d", n)

	_, err = process(*odir, fset.Arg(0), int(n/10))
	if err != nil {
		msg.Fatalf("could not convert LCIO file: %+v", err)
	}
}

func numEvents(fname string) (int64, error) {
	r, err := lcio.Open(fname)
	if err != nil {
		return 0, fmt.Errorf("could not open %q: %w", fname, err)
	}
	defer r.Close()

	var n int64
	for r.Next() {
		n++
	}

	err = r.Err()
	if err != nil && err != io.EOF {
		return 0, fmt.Errorf("could not assess number of events in %q: %w", fname, err)
	}

	return n, nil
}

// process writes the captures of the LCIO file fname under odir and
// returns the names of the created files.
func process(odir, fname string, freq int) ([]string, error) {
	r, err := lcio.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("could not open LCIO file: %w", err)
	}
	defer r.Close()

	err = os.MkdirAll(odir, 0755)
	if err != nil {
		return nil, fmt.Errorf("could not create output directory: %w", err)
	}

	var onames []string
	err = xcnv.LCIO2Capture(r, func(p capture.Profile, f capture.File) error {
		raw, err := capture.NewEncoder(p).Encode(&f)
		if err != nil {
			return fmt.Errorf("could not re-encode capture: %w", err)
		}

		oname := filepath.Join(odir, fmt.Sprintf("capture-%03d.bin", len(onames)))
		err = os.WriteFile(oname, raw, 0644)
		if err != nil {
			return fmt.Errorf("could not write capture file: %w", err)
		}
		onames = append(onames, oname)
		return nil
	}, freq, msg)
	if err != nil {
		return onames, err
	}

	return onames, nil
}
