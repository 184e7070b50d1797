// Copyright 2022 The fnirsi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package capture

import (
	"errors"
	"fmt"
)

// TruncatedError is returned when the input buffer ends before the
// layout of the profile is exhausted.
type TruncatedError struct {
	Field  string // field being read
	Offset int64  // byte offset of the field
	Want   int    // total number of bytes needed to read the field
	Have   int    // number of bytes available in the buffer
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf(
		"truncated input reading %s at offset %d (want=%d bytes, have=%d bytes)",
		e.Field, e.Offset, e.Want, e.Have,
	)
}

// ScaleIndexError is returned when a scale code does not index
// into its scale table.
type ScaleIndexError struct {
	Field string // header field holding the code, when known
	Table string // "time" or "volt"
	Index uint32
	Len   int
}

func (e *ScaleIndexError) Error() string {
	return fmt.Sprintf(
		"%s scale index %d out of range (table length=%d)",
		e.Table, e.Index, e.Len,
	)
}

// scaleField records the header field name on a *ScaleIndexError.
func scaleField(err error, name string) error {
	var serr *ScaleIndexError
	if errors.As(err, &serr) {
		serr.Field = name
	}
	return err
}

// EnumCodeError is returned when a raw code is outside of its closed set.
type EnumCodeError struct {
	Field string
	Code  uint32
}

func (e *EnumCodeError) Error() string {
	return fmt.Sprintf("unknown %s code %d", e.Field, e.Code)
}
