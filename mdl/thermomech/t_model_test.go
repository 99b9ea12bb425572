// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thermomech

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_model01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model01")
}
