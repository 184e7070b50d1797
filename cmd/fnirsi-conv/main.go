// Copyright 2022 The fnirsi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command fnirsi-conv converts a capture file from one layout profile to
// another.
//
// Usage: fnirsi-conv [OPTIONS] FILE
//
// Example:
//
//	$> fnirsi-conv -p v3 -t v1 -o out.bin ./capture.bin
package main // import "github.com/yjv/fnirsi/cmd/fnirsi-conv"

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/pflag"
	"github.com/yjv/fnirsi/capture"
	"github.com/yjv/fnirsi/internal/source"
)

var (
	msg = log.New(os.Stderr, "fnirsi-conv: ", 0)
)

func main() {
	xmain(os.Args[1:])
}

func xmain(args []string) {
	var (
		fset = pflag.NewFlagSet("fnirsi-conv", pflag.ExitOnError)

		from  = fset.StringP("profile", "p", capture.V1.Name, "layout profile of the input file")
		to    = fset.StringP("to", "t", capture.V1.Name, "layout profile of the output file")
		oname = fset.StringP("output", "o", "out.bin", "path to output capture file")
	)

	fset.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: fnirsi-conv [OPTIONS] FILE

ex:
 $> fnirsi-conv -p v3 -t v1 -o out.bin ./capture.bin

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
		msg.Fatalf("missing input capture file")
	}

	if *oname == "" {
		fset.Usage()
		msg.Fatalf("invalid output capture file name")
	}

	src, err := capture.ProfileByName(*from)
	if err != nil {
		msg.Fatalf("invalid input profile: %+v", err)
	}

	dst, err := capture.ProfileByName(*to)
	if err != nil {
		msg.Fatalf("invalid output profile: %+v", err)
	}

	err = process(context.Background(), *oname, dst, fset.Arg(0), src)
	if err != nil {
		msg.Fatalf("could not convert capture %q: %+v", fset.Arg(0), err)
	}
}

func process(ctx context.Context, oname string, dst capture.Profile, fname string, src capture.Profile) error {
	blob, err := source.Open(ctx, fname)
	if err != nil {
		return fmt.Errorf("could not open capture: %w", err)
	}
	defer blob.Close()

	f, err := capture.Decode(src, blob.Bytes())
	if err != nil {
		return err
	}

	convert(&f, src, dst)

	raw, err := capture.NewEncoder(dst).Encode(&f)
	if err != nil {
		return fmt.Errorf("could not encode capture with profile %s: %w", dst.Name, err)
	}

	err = os.WriteFile(oname, raw, 0644)
	if err != nil {
		return fmt.Errorf("could not write output capture file: %w", err)
	}

	return nil
}

// convert moves the frequencies of f to the measurement layout of dst.
func convert(f *capture.File, src, dst capture.Profile) {
	for _, m := range []*capture.Measurements{
		&f.Header.Ch1Measurements,
		&f.Header.Ch2Measurements,
	} {
		capture.SetFrequency(dst.Measurements, m, capture.Frequency(src.Measurements, m))
	}
}
