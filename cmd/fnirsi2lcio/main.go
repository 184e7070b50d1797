// Copyright 2022 The fnirsi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command fnirsi2lcio stores a set of capture files into an LCIO file,
// one event per capture.
package main // import "github.com/yjv/fnirsi/cmd/fnirsi2lcio"

import (
	"compress/flate"
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/pflag"
	"github.com/yjv/fnirsi/capture"
	"github.com/yjv/fnirsi/internal/source"
	"github.com/yjv/fnirsi/internal/xcnv"
	"go-hep.org/x/hep/lcio"
)

var (
	msg = log.New(os.Stdout, "fnirsi2lcio: ", 0)
)

func main() {
	xmain(os.Args[1:])
}

func xmain(args []string) {
	var (
		fset = pflag.NewFlagSet("fnirsi2lcio", pflag.ExitOnError)

		oname = fset.StringP("output", "o", "out.lcio", "path to output LCIO file")
		compr = fset.Int("lvl", flate.DefaultCompression, "compression level for output LCIO file")
		pname = fset.StringP("profile", "p", capture.V1.Name, "layout profile of the input files")
		run   = fset.Int32("run", 0, "run number of the output LCIO file")
	)

	fset.Usage = func() {
		fmt.Printf(`Usage: fnirsi2lcio [OPTIONS] FILE1 [FILE2 [FILE3 ...]]

ex:
 $> fnirsi2lcio -o out.lcio -lvl=9 -run=42 ./capture-001.bin ./capture-002.bin

options:
`)
		fset.PrintDefaults()
	}

	err := fset.Parse(args)
	if err != nil {
		msg.Fatalf("could not parse input arguments: %+v", err)
	}

	if fset.NArg() == 0 {
		fset.Usage()
		msg.Fatalf("missing input capture file")
	}

	if *oname == "" {
		fset.Usage()
		msg.Fatalf("invalid output LCIO file name")
	}

	p, err := capture.ProfileByName(*pname)
	if err != nil {
		msg.Fatalf("invalid profile: %+v", err)
	}

	err = process(context.Background(), *oname, *compr, p, *run, fset.Args())
	if err != nil {
		msg.Fatalf("could not convert captures: %+v", err)
	}
}

func process(ctx context.Context, oname string, lvl int, p capture.Profile, run int32, fnames []string) error {
	caps := make([]capture.File, len(fnames))
	for i, fname := range fnames {
		blob, err := source.Open(ctx, fname)
		if err != nil {
			return fmt.Errorf("could not open capture %q: %w", fname, err)
		}
		caps[i], err = capture.Decode(p, blob.Bytes())
		_ = blob.Close()
		if err != nil {
			return fmt.Errorf("could not decode capture %q: %w", fname, err)
		}
	}

	w, err := lcio.Create(oname)
	if err != nil {
		return fmt.Errorf("could not create output LCIO file: %w", err)
	}
	defer w.Close()

	w.SetCompressionLevel(lvl)

	err = xcnv.Capture2LCIO(w, p, run, caps, msg)
	if err != nil {
		return fmt.Errorf("could not convert captures to LCIO: %w", err)
	}

	err = w.Close()
	if err != nil {
		return fmt.Errorf("could not close output LCIO file: %w", err)
	}

	return nil
}
