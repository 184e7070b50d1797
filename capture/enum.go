// Copyright 2022 The fnirsi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package capture

import (
	"encoding/json"
	"strconv"
)

// Coupling is the input coupling of a channel.
type Coupling uint8

const (
	DC Coupling = iota
	AC
)

var couplingNames = []string{"DC", "AC"}

func (v Coupling) String() string               { return name(couplingNames, uint8(v)) }
func (v Coupling) MarshalJSON() ([]byte, error) { return json.Marshal(v.String()) }

// CouplingFrom decodes a raw coupling code.
func CouplingFrom(code uint32) (Coupling, error) {
	v, err := decodeEnum("coupling", couplingNames, code)
	return Coupling(v), err
}

// Attenuation is the probe attenuation of a channel.
type Attenuation uint8

const (
	OneX Attenuation = iota
	TenX
	OneHundredX
)

var attenuationNames = []string{"OneX", "TenX", "OneHundredX"}

func (v Attenuation) String() string               { return name(attenuationNames, uint8(v)) }
func (v Attenuation) MarshalJSON() ([]byte, error) { return json.Marshal(v.String()) }

// Factor returns the probe multiplier (1, 10 or 100).
func (v Attenuation) Factor() float32 {
	switch v {
	case TenX:
		return 10
	case OneHundredX:
		return 100
	}
	return 1
}

// AttenuationFrom decodes a raw probe attenuation code.
func AttenuationFrom(code uint32) (Attenuation, error) {
	v, err := decodeEnum("attenuation", attenuationNames, code)
	return Attenuation(v), err
}

type ScrollSpeed uint8

const (
	Fast ScrollSpeed = iota
	Slow
)

var scrollSpeedNames = []string{"Fast", "Slow"}

func (v ScrollSpeed) String() string               { return name(scrollSpeedNames, uint8(v)) }
func (v ScrollSpeed) MarshalJSON() ([]byte, error) { return json.Marshal(v.String()) }

func ScrollSpeedFrom(code uint32) (ScrollSpeed, error) {
	v, err := decodeEnum("scroll speed", scrollSpeedNames, code)
	return ScrollSpeed(v), err
}

type TriggerType uint8

const (
	Auto TriggerType = iota
	Single
	Normal
)

var triggerTypeNames = []string{"Auto", "Single", "Normal"}

func (v TriggerType) String() string               { return name(triggerTypeNames, uint8(v)) }
func (v TriggerType) MarshalJSON() ([]byte, error) { return json.Marshal(v.String()) }

func TriggerTypeFrom(code uint32) (TriggerType, error) {
	v, err := decodeEnum("trigger type", triggerTypeNames, code)
	return TriggerType(v), err
}

type TriggerEdge uint8

const (
	Rising TriggerEdge = iota
	Falling
)

var triggerEdgeNames = []string{"Rising", "Falling"}

func (v TriggerEdge) String() string               { return name(triggerEdgeNames, uint8(v)) }
func (v TriggerEdge) MarshalJSON() ([]byte, error) { return json.Marshal(v.String()) }

func TriggerEdgeFrom(code uint32) (TriggerEdge, error) {
	v, err := decodeEnum("trigger edge", triggerEdgeNames, code)
	return TriggerEdge(v), err
}

type TriggerChannel uint8

const (
	Channel1 TriggerChannel = iota
	Channel2
)

var triggerChannelNames = []string{"Channel1", "Channel2"}

func (v TriggerChannel) String() string               { return name(triggerChannelNames, uint8(v)) }
func (v TriggerChannel) MarshalJSON() ([]byte, error) { return json.Marshal(v.String()) }

func TriggerChannelFrom(code uint32) (TriggerChannel, error) {
	v, err := decodeEnum("trigger channel", triggerChannelNames, code)
	return TriggerChannel(v), err
}

// Trigger50 is the state of the 50% trigger level function.
type Trigger50 uint8

const (
	On Trigger50 = iota
	Off
)

var trigger50Names = []string{"On", "Off"}

func (v Trigger50) String() string               { return name(trigger50Names, uint8(v)) }
func (v Trigger50) MarshalJSON() ([]byte, error) { return json.Marshal(v.String()) }

func Trigger50From(code uint32) (Trigger50, error) {
	v, err := decodeEnum("trigger 50%", trigger50Names, code)
	return Trigger50(v), err
}

func decodeEnum(field string, names []string, code uint32) (uint8, error) {
	if uint64(code) >= uint64(len(names)) {
		return 0, &EnumCodeError{Field: field, Code: code}
	}
	return uint8(code), nil
}

func name(names []string, v uint8) string {
	if int(v) < len(names) {
		return names[v]
	}
	return "invalid(" + strconv.Itoa(int(v)) + ")"
}
