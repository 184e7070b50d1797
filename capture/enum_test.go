// Copyright 2022 The fnirsi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package capture

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func TestEnums(t *testing.T) {
	for _, tc := range []struct {
		field  string
		names  []string
		decode func(code uint32) (fmt.Stringer, error)
	}{
		{
			field: "coupling",
			names: []string{"DC", "AC"},
			decode: func(code uint32) (fmt.Stringer, error) {
				return CouplingFrom(code)
			},
		},
		{
			field: "attenuation",
			names: []string{"OneX", "TenX", "OneHundredX"},
			decode: func(code uint32) (fmt.Stringer, error) {
				return AttenuationFrom(code)
			},
		},
		{
			field: "scroll speed",
			names: []string{"Fast", "Slow"},
			decode: func(code uint32) (fmt.Stringer, error) {
				return ScrollSpeedFrom(code)
			},
		},
		{
			field: "trigger type",
			names: []string{"Auto", "Single", "Normal"},
			decode: func(code uint32) (fmt.Stringer, error) {
				return TriggerTypeFrom(code)
			},
		},
		{
			field: "trigger edge",
			names: []string{"Rising", "Falling"},
			decode: func(code uint32) (fmt.Stringer, error) {
				return TriggerEdgeFrom(code)
			},
		},
		{
			field: "trigger channel",
			names: []string{"Channel1", "Channel2"},
			decode: func(code uint32) (fmt.Stringer, error) {
				return TriggerChannelFrom(code)
			},
		},
		{
			field: "trigger 50%",
			names: []string{"On", "Off"},
			decode: func(code uint32) (fmt.Stringer, error) {
				return Trigger50From(code)
			},
		},
	} {
		t.Run(tc.field, func(t *testing.T) {
			for i, name := range tc.names {
				v, err := tc.decode(uint32(i))
				if err != nil {
					t.Fatalf("could not decode code %d: %+v", i, err)
				}
				if got, want := v.String(), name; got != want {
					t.Fatalf("invalid variant for code %d: got=%q, want=%q", i, got, want)
				}
				raw, err := json.Marshal(v)
				if err != nil {
					t.Fatalf("could not marshal %v: %+v", v, err)
				}
				if got, want := string(raw), `"`+name+`"`; got != want {
					t.Fatalf("invalid JSON: got=%s, want=%s", got, want)
				}
			}

			for _, code := range []uint32{uint32(len(tc.names)), 0xff, 0xffff} {
				_, err := tc.decode(code)
				var eerr *EnumCodeError
				if !errors.As(err, &eerr) {
					t.Fatalf("code=%d: invalid error: %+v", code, err)
				}
				if eerr.Code != code || eerr.Field != tc.field {
					t.Fatalf("code=%d: invalid error content: %#v", code, eerr)
				}
			}
		})
	}
}

func TestAttenuationFactor(t *testing.T) {
	for _, tc := range []struct {
		v    Attenuation
		want float32
	}{
		{OneX, 1},
		{TenX, 10},
		{OneHundredX, 100},
	} {
		if got := tc.v.Factor(); got != tc.want {
			t.Fatalf("invalid factor for %v: got=%v, want=%v", tc.v, got, tc.want)
		}
	}
}
