// Copyright 2022 The fnirsi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xcnv provides tools to convert captures to/from LCIO and to YODA.
package xcnv // import "github.com/yjv/fnirsi/internal/xcnv"
