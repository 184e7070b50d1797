// Copyright 2022 The fnirsi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/yjv/fnirsi/capture"
	"github.com/yjv/fnirsi/internal/fakecap"
)

func TestModeFrom(t *testing.T) {
	for _, m := range Modes() {
		got, err := ModeFrom(string(m))
		if err != nil {
			t.Fatalf("could not find mode %q: %+v", m, err)
		}
		if got != m {
			t.Fatalf("invalid mode: got=%q, want=%q", got, m)
		}
	}

	for _, name := range []string{"", "xml", "RAW", "Parsed"} {
		_, err := ModeFrom(name)
		var merr *UnsupportedModeError
		if !errors.As(err, &merr) {
			t.Fatalf("name=%q: invalid error: %+v", name, err)
		}
		if merr.Mode != name {
			t.Fatalf("invalid mode in error: got=%q, want=%q", merr.Mode, name)
		}
	}

	if got, want := YODA.ContentType(), "text/plain; charset=utf-8"; got != want {
		t.Fatalf("invalid content type: got=%q, want=%q", got, want)
	}
	if got, want := Parsed.ContentType(), "application/json"; got != want {
		t.Fatalf("invalid content type: got=%q, want=%q", got, want)
	}
}

func TestRender(t *testing.T) {
	raw := fakecap.Raw(capture.V1, 0)

	for _, tc := range []struct {
		mode Mode
		want []string
	}{
		{Raw, []string{`"channel11":[200,201,`, `"time_scale":5`}},
		{Parsed, []string{`"trigger_type":"Single"`, `"coupling":"AC"`, `"attenuation":"TenX"`}},
		{Stats, []string{`"channel1":{"n":1500,`, `"vpp":`}},
		{YODA, []string{"capture/channel1", "capture/channel2"}},
	} {
		t.Run(string(tc.mode), func(t *testing.T) {
			o := new(strings.Builder)
			err := Render(o, tc.mode, "capture", raw, capture.V1)
			if err != nil {
				t.Fatalf("could not render capture: %+v", err)
			}
			for _, want := range tc.want {
				if !strings.Contains(o.String(), want) {
					t.Fatalf("missing %q in output", want)
				}
			}
			if tc.mode.ContentType() == "application/json" && !json.Valid([]byte(o.String())) {
				t.Fatalf("invalid JSON output")
			}
		})
	}
}

func TestRenderErrors(t *testing.T) {
	raw := fakecap.Raw(capture.V1, 0)

	o := new(strings.Builder)
	err := Render(o, Parsed, "capture", raw[:500], capture.V1)
	var terr *capture.TruncatedError
	if !errors.As(err, &terr) {
		t.Fatalf("invalid error: %+v", err)
	}
	if o.Len() != 0 {
		t.Fatalf("output written on failure")
	}

	err = Render(o, Mode("xml"), "capture", raw, capture.V1)
	var merr *UnsupportedModeError
	if !errors.As(err, &merr) {
		t.Fatalf("invalid error: %+v", err)
	}
	if o.Len() != 0 {
		t.Fatalf("output written on failure")
	}
}
