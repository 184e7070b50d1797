// Copyright 2022 The fnirsi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xcnv

import (
	"fmt"
	"io"

	"github.com/yjv/fnirsi/capture"
	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hbook/yodacnv"
)

// Record2YODA writes the points of both channels of rec as YODA 2D scatters
// named <name>/channel1 and <name>/channel2.
func Record2YODA(w io.Writer, name string, rec *capture.Record) error {
	var (
		ch1 = scatterFrom(name+"/channel1", &rec.Ch1)
		ch2 = scatterFrom(name+"/channel2", &rec.Ch2)
	)

	err := yodacnv.Write(w, ch1, ch2)
	if err != nil {
		return fmt.Errorf("could not write YODA scatters for %q: %w", name, err)
	}
	return nil
}

func scatterFrom(name string, ch *capture.Channel) *hbook.S2D {
	pts := make([]hbook.Point2D, len(ch.Points))
	for i, pt := range ch.Points {
		pts[i] = hbook.Point2D{X: float64(pt.Time), Y: float64(pt.Voltage)}
	}
	s := hbook.NewS2D(pts...)
	s.Annotation()["name"] = name
	s.Annotation()["title"] = fmt.Sprintf("%s (%v/div, %v)", name, ch.Scale, ch.Coupling)
	return s
}
