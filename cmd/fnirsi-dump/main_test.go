// Copyright 2022 The fnirsi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yjv/fnirsi/capture"
	"github.com/yjv/fnirsi/internal/fakecap"
	"github.com/yjv/fnirsi/internal/render"
)

func TestDump(t *testing.T) {
	tmp := t.TempDir()
	fname, err := fakecap.Create(tmp, capture.V2, 0)
	if err != nil {
		t.Fatal(err)
	}

	xmain(io.Discard, []string{"-p", "v2", "--jobs=2", "parsed", fname})

	out := new(strings.Builder)
	xmain(out, []string{"--version"})
	if !strings.HasPrefix(out.String(), "fnirsi-dump ") {
		t.Fatalf("invalid version output: %q", out.String())
	}
}

func TestProcess(t *testing.T) {
	tmp := t.TempDir()
	ctx := context.Background()

	var fnames []string
	for seed := 0; seed < 3; seed++ {
		fname, err := fakecap.Create(tmp, capture.V1, seed)
		if err != nil {
			t.Fatal(err)
		}
		fnames = append(fnames, fname)
	}

	t.Run("raw", func(t *testing.T) {
		out := new(strings.Builder)
		err := process(ctx, out, "raw", capture.V1, fnames, 2)
		if err != nil {
			t.Fatalf("could not dump files: %+v", err)
		}

		sc := bufio.NewScanner(strings.NewReader(out.String()))
		sc.Buffer(nil, 1<<20)
		i := 0
		for ; sc.Scan(); i++ {
			var f capture.File
			err := json.Unmarshal(sc.Bytes(), &f)
			if err != nil {
				t.Fatalf("could not decode JSON document %d: %+v", i, err)
			}
			// captures are emitted in the order of the input files.
			if got, want := f.Ch1[0], uint16(200+i); got != want {
				t.Fatalf("invalid document %d: got=%d, want=%d", i, got, want)
			}
			if got, want := f.Header.TimeScale, uint16(5); got != want {
				t.Fatalf("invalid time scale: got=%d, want=%d", got, want)
			}
		}
		if err := sc.Err(); err != nil {
			t.Fatalf("could not scan output: %+v", err)
		}
		if got, want := i, len(fnames); got != want {
			t.Fatalf("invalid number of documents: got=%d, want=%d", got, want)
		}
	})

	t.Run("parsed", func(t *testing.T) {
		out := new(strings.Builder)
		err := process(ctx, out, "parsed", capture.V1, fnames[:1], 1)
		if err != nil {
			t.Fatalf("could not dump files: %+v", err)
		}

		var rec struct {
			Trigger struct {
				Type    string `json:"trigger_type"`
				Channel string `json:"channel"`
			} `json:"trigger"`
			Ch1 struct {
				Coupling    string          `json:"coupling"`
				Attenuation string          `json:"attenuation"`
				Points      []capture.Point `json:"points"`
			} `json:"channel1"`
		}
		err = json.Unmarshal([]byte(out.String()), &rec)
		if err != nil {
			t.Fatalf("could not decode JSON: %+v", err)
		}
		if rec.Trigger.Type != "Single" || rec.Trigger.Channel != "Channel2" {
			t.Fatalf("invalid trigger: %+v", rec.Trigger)
		}
		if rec.Ch1.Coupling != "AC" || rec.Ch1.Attenuation != "TenX" {
			t.Fatalf("invalid channel1: coupling=%q, attenuation=%q", rec.Ch1.Coupling, rec.Ch1.Attenuation)
		}
		if got, want := len(rec.Ch1.Points), capture.NumCoarse; got != want {
			t.Fatalf("invalid number of points: got=%d, want=%d", got, want)
		}
	})

	t.Run("stats", func(t *testing.T) {
		out := new(strings.Builder)
		err := process(ctx, out, "stats", capture.V1, fnames[:1], 1)
		if err != nil {
			t.Fatalf("could not dump files: %+v", err)
		}

		var sum capture.Summaries
		err = json.Unmarshal([]byte(out.String()), &sum)
		if err != nil {
			t.Fatalf("could not decode JSON: %+v", err)
		}
		if sum.Ch1.N != capture.NumCoarse || sum.Ch2.N != capture.NumCoarse {
			t.Fatalf("invalid summaries: %+v", sum)
		}
	})

	t.Run("yoda", func(t *testing.T) {
		out := new(strings.Builder)
		err := process(ctx, out, "yoda", capture.V1, fnames[:2], 2)
		if err != nil {
			t.Fatalf("could not dump files: %+v", err)
		}
		name := strings.TrimSuffix(filepath.Base(fnames[1]), ".bin")
		if !strings.Contains(out.String(), name+"/channel2") {
			t.Fatalf("missing scatter %s/channel2 in output:\n%s", name, out.String())
		}
	})
}

func TestProcessErrors(t *testing.T) {
	tmp := t.TempDir()
	ctx := context.Background()

	valid, err := fakecap.Create(tmp, capture.V1, 0)
	if err != nil {
		t.Fatal(err)
	}

	short := filepath.Join(tmp, "short.bin")
	err = os.WriteFile(short, fakecap.Raw(capture.V1, 0)[:999], 0644)
	if err != nil {
		t.Fatal(err)
	}

	badscale := filepath.Join(tmp, "bad-scale.bin")
	raw := fakecap.Raw(capture.V1, 0)
	binary.LittleEndian.PutUint16(raw[22:], 40) // time_scale
	err = os.WriteFile(badscale, raw, 0644)
	if err != nil {
		t.Fatal(err)
	}

	for _, tc := range []struct {
		name  string
		mode  string
		files []string
		want  string
	}{
		{
			name:  "unsupported-mode",
			mode:  "xml",
			files: []string{filepath.Join(tmp, "not-there.bin")},
			want:  `unsupported output mode "xml"`,
		},
		{
			name:  "missing-file",
			mode:  "raw",
			files: []string{valid, filepath.Join(tmp, "not-there.bin")},
			want:  `could not dump file "` + filepath.Join(tmp, "not-there.bin") + `": could not open capture: mmap: could not open`,
		},
		{
			name:  "truncated",
			mode:  "raw",
			files: []string{valid, short},
			want:  `could not dump file "` + short + `": capture: could not read samples: truncated input reading channel11 at offset 1000 (want=4000 bytes, have=999 bytes)`,
		},
		{
			name:  "bad-scale",
			mode:  "parsed",
			files: []string{badscale},
			want:  `could not dump file "` + badscale + `": capture: could not resolve time_scale: time scale index 40 out of range (table length=33)`,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			out := new(strings.Builder)
			err := process(ctx, out, tc.mode, capture.V1, tc.files, 2)
			if err == nil {
				t.Fatalf("expected an error")
			}
			if got := err.Error(); !strings.HasPrefix(got, tc.want) {
				t.Fatalf("invalid error:\ngot= %s\nwant=%s", got, tc.want)
			}
			if out.Len() != 0 {
				t.Fatalf("output written on failure:\n%s", out.String())
			}
		})
	}

	err = process(ctx, io.Discard, "xml", capture.V1, []string{valid}, 1)
	var merr *render.UnsupportedModeError
	if !errors.As(err, &merr) || merr.Mode != "xml" {
		t.Fatalf("invalid error: %+v", err)
	}
}
