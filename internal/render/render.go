// Copyright 2022 The fnirsi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render decodes a capture and writes it in one of the supported
// output modes.
package render // import "github.com/yjv/fnirsi/internal/render"

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/yjv/fnirsi/capture"
	"github.com/yjv/fnirsi/internal/xcnv"
)

// Mode is an output mode.
type Mode string

const (
	Raw    Mode = "raw"    // decoded file, device codes verbatim
	Parsed Mode = "parsed" // normalized record
	Stats  Mode = "stats"  // statistics of the normalized points
	YODA   Mode = "yoda"   // normalized points as YODA scatters
)

var modes = []Mode{Raw, Parsed, Stats, YODA}

// Modes returns the supported output modes.
func Modes() []Mode {
	return append([]Mode(nil), modes...)
}

// ContentType returns the media type of the output of mode m.
func (m Mode) ContentType() string {
	if m == YODA {
		return "text/plain; charset=utf-8"
	}
	return "application/json"
}

// UnsupportedModeError is returned for unknown output modes.
type UnsupportedModeError struct {
	Mode string
}

func (err *UnsupportedModeError) Error() string {
	return fmt.Sprintf("unsupported output mode %q", err.Mode)
}

// ModeFrom returns the output mode with the provided name.
func ModeFrom(name string) (Mode, error) {
	for _, m := range modes {
		if string(m) == name {
			return m, nil
		}
	}
	return "", &UnsupportedModeError{Mode: name}
}

// Render decodes raw with profile p and writes it to w in mode m.
// name labels the YODA scatters.
// Nothing is written to w when raw could not be decoded.
func Render(w io.Writer, m Mode, name string, raw []byte, p capture.Profile, opts ...capture.Option) error {
	f, err := capture.Decode(p, raw)
	if err != nil {
		return err
	}

	if m == Raw {
		return encode(w, &f)
	}

	rec, err := capture.Normalize(&f, p, opts...)
	if err != nil {
		return err
	}

	switch m {
	case Parsed:
		return encode(w, &rec)
	case Stats:
		sum := rec.Summarize()
		return encode(w, &sum)
	case YODA:
		return xcnv.Record2YODA(w, name, &rec)
	default:
		return &UnsupportedModeError{Mode: string(m)}
	}
}

func encode(w io.Writer, v interface{}) error {
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		return fmt.Errorf("could not encode JSON: %w", err)
	}
	return nil
}
