// Copyright 2022 The fnirsi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// fnirsi-dump decodes and displays FNIRSI oscilloscope capture files.
//
// Usage: fnirsi-dump [OPTIONS] MODE FILE1 [FILE2 [FILE3 ...]]
//
// MODE is one of:
//   - raw:    the decoded file, with device codes verbatim (JSON)
//   - parsed: the normalized record, in volts and seconds (JSON)
//   - stats:  statistics of the normalized point series (JSON)
//   - yoda:   the normalized point series as YODA scatters
//
// Files named s3://bucket/key are fetched from the object store described
// by the FNIRSI_S3_ENDPOINT, FNIRSI_S3_ACCESS_KEY, FNIRSI_S3_SECRET_KEY and
// FNIRSI_S3_SECURE environment variables.
//
// Example:
//
//	$> fnirsi-dump -p v1 parsed ./testdata/capture.bin
//	{"trigger":{"trigger_type":"Single","edge":"Falling",...},...}
package main // import "github.com/yjv/fnirsi/cmd/fnirsi-dump"

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/yjv/fnirsi"
	"github.com/yjv/fnirsi/capture"
	"github.com/yjv/fnirsi/internal/render"
	"github.com/yjv/fnirsi/internal/source"
	"golang.org/x/sync/errgroup"
)

var (
	msg = log.New(os.Stderr, "fnirsi-dump: ", 0)
)

func main() {
	xmain(os.Stdout, os.Args[1:])
}

func xmain(w io.Writer, args []string) {
	var (
		fset = pflag.NewFlagSet("fnirsi-dump", pflag.ExitOnError)

		pname  = fset.StringP("profile", "p", capture.V1.Name, "layout profile of the input files ("+profileNames()+")")
		jobs   = fset.IntP("jobs", "j", runtime.NumCPU(), "number of files decoded concurrently")
		legacy = fset.Bool("legacy-ch2", false, "build channel 2 points from channel 1 samples")
		vers   = fset.BoolP("version", "V", false, "print version and exit")
	)

	fset.Usage = func() {
		fmt.Fprintf(os.Stderr, `fnirsi-dump decodes and displays FNIRSI oscilloscope capture files.

Usage: fnirsi-dump [OPTIONS] MODE FILE1 [FILE2 [FILE3 ...]]

MODE is one of: %s.

Example:

 $> fnirsi-dump -p v1 parsed ./testdata/capture.bin

options:
`, strings.Join(modeNames(), ", "))
		fset.PrintDefaults()
	}

	err := fset.Parse(args)
	if err != nil {
		msg.Fatalf("could not parse input arguments: %+v", err)
	}

	if *vers {
		version, _ := fnirsi.Version()
		fmt.Fprintf(w, "fnirsi-dump %s\n", version)
		return
	}

	if fset.NArg() < 2 {
		fset.Usage()
		msg.Fatalf("missing output mode and path to input file")
	}

	p, err := capture.ProfileByName(*pname)
	if err != nil {
		msg.Fatalf("invalid profile: %+v", err)
	}

	var opts []capture.Option
	if *legacy {
		opts = append(opts, capture.WithLegacyChannel2())
	}

	err = process(context.Background(), w, fset.Arg(0), p, fset.Args()[1:], *jobs, opts...)
	if err != nil {
		msg.Fatalf("%+v", err)
	}
}

func modeNames() []string {
	var names []string
	for _, m := range render.Modes() {
		names = append(names, string(m))
	}
	return names
}

func profileNames() string {
	var names []string
	for _, p := range capture.Profiles() {
		names = append(names, p.Name)
	}
	return strings.Join(names, "|")
}

// process decodes all files concurrently and writes their rendering to w,
// in the order of files.
// Nothing is written to w if any of the files could not be processed.
func process(ctx context.Context, w io.Writer, name string, p capture.Profile, files []string, jobs int, opts ...capture.Option) error {
	m, err := render.ModeFrom(name)
	if err != nil {
		return err
	}

	if jobs < 1 {
		jobs = 1
	}

	var (
		outs      = make([]bytes.Buffer, len(files))
		grp, gctx = errgroup.WithContext(ctx)
	)
	grp.SetLimit(jobs)

	for i := range files {
		i := i
		grp.Go(func() error {
			fname := files[i]
			err := dump(gctx, &outs[i], m, p, fname, opts)
			if err != nil {
				return fmt.Errorf("could not dump file %q: %w", fname, err)
			}
			return nil
		})
	}

	err = grp.Wait()
	if err != nil {
		return err
	}

	for i := range outs {
		_, err = outs[i].WriteTo(w)
		if err != nil {
			return fmt.Errorf("could not write output: %w", err)
		}
	}

	return nil
}

func dump(ctx context.Context, w io.Writer, m render.Mode, p capture.Profile, fname string, opts []capture.Option) error {
	blob, err := source.Open(ctx, fname)
	if err != nil {
		return fmt.Errorf("could not open capture: %w", err)
	}
	defer blob.Close()

	return render.Render(w, m, nameFrom(fname), blob.Bytes(), p, opts...)
}

func nameFrom(fname string) string {
	name := filepath.Base(fname)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
