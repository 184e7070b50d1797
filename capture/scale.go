// Copyright 2022 The fnirsi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package capture

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Unit is the physical unit of a Scale.
type Unit uint8

const (
	Volt Unit = iota
	Second
)

func (u Unit) String() string {
	switch u {
	case Volt:
		return "Volt"
	case Second:
		return "Second"
	}
	panic(fmt.Errorf("capture: invalid unit %d", uint8(u)))
}

// Symbol returns the SI symbol of the unit.
func (u Unit) Symbol() string {
	switch u {
	case Volt:
		return "V"
	case Second:
		return "s"
	}
	panic(fmt.Errorf("capture: invalid unit %d", uint8(u)))
}

func (u Unit) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

// Scale is a calibrated per-division coefficient, Value*10^Exp in Unit.
// Scales are only obtained from the TimeScales and VoltScales tables.
type Scale struct {
	Value float32 `json:"value"`
	Exp   int32   `json:"scale"`
	Unit  Unit    `json:"unit"`
}

// Coeff returns the physical coefficient of the scale.
func (s Scale) Coeff() float32 {
	return s.Value * float32(math.Pow10(int(s.Exp)))
}

func (s Scale) String() string {
	return strconv.FormatFloat(float64(s.Value), 'f', -1, 32) + prefix(s.Exp) + s.Unit.Symbol()
}

func prefix(exp int32) string {
	switch exp {
	case 0:
		return ""
	case -3:
		return "m"
	case -6:
		return "u"
	case -9:
		return "n"
	}
	panic(fmt.Errorf("capture: unexpected scale exponent %d", exp))
}

// TimeScales holds the time-per-division table, indexed by the on-disk code.
var TimeScales = []Scale{
	{50, 0, Second},
	{20, 0, Second},
	{10, 0, Second},
	{5, 0, Second},
	{2, 0, Second},
	{1, 0, Second},
	{500, -3, Second},
	{200, -3, Second},
	{100, -3, Second},
	{50, -3, Second},
	{20, -3, Second},
	{10, -3, Second},
	{5, -3, Second},
	{2, -3, Second},
	{1, -3, Second},
	{500, -6, Second},
	{200, -6, Second},
	{100, -6, Second},
	{50, -6, Second},
	{20, -6, Second},
	{10, -6, Second},
	{5, -6, Second},
	{2, -6, Second},
	{1, -6, Second},
	{500, -9, Second},
	{200, -9, Second},
	{100, -9, Second},
	{50, -9, Second},
	{20, -9, Second},
	{10, -9, Second},
	{5, -9, Second},
	{2, -9, Second},
	{1, -9, Second},
}

// VoltScales holds the voltage-per-division table, indexed by the on-disk code.
var VoltScales = []Scale{
	{5, 0, Volt},
	{2.5, 0, Volt},
	{1, 0, Volt},
	{500, -3, Volt},
	{200, -3, Volt},
	{100, -3, Volt},
	{50, -3, Volt},
}

// ResolveTimeScale returns the time-per-division scale for code.
func ResolveTimeScale(code uint32) (Scale, error) {
	return resolve(TimeScales, "time", code)
}

// ResolveVoltScale returns the voltage-per-division scale for code.
func ResolveVoltScale(code uint32) (Scale, error) {
	return resolve(VoltScales, "volt", code)
}

func resolve(table []Scale, name string, code uint32) (Scale, error) {
	if uint64(code) >= uint64(len(table)) {
		return Scale{}, &ScaleIndexError{
			Table: name,
			Index: code,
			Len:   len(table),
		}
	}
	return table[code], nil
}
