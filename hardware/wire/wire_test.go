// This file is part of Gopherboard.
//
// Gopherboard is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopherboard is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopherboard.  If not, see <https://www.gnu.org/licenses/>.

package wire_test

import (
	"testing"

	"github.com/hexaflop/gopherboard/hardware/wire"
	"github.com/hexaflop/gopherboard/test"
)

func TestEdges(t *testing.T) {
	tr := wire.NewTrace("SCLK", false)

	test.ExpectedSuccess(t, tr.Lo())
	test.ExpectedFailure(t, tr.Changed())

	tr.Tick(true)
	test.ExpectedSuccess(t, tr.Rising())
	test.ExpectedSuccess(t, tr.Hi())
	test.ExpectedFailure(t, tr.Falling())

	tr.Tick(true)
	test.ExpectedFailure(t, tr.Rising())
	test.ExpectedFailure(t, tr.Changed())

	tr.Tick(false)
	test.ExpectedSuccess(t, tr.Falling())
	test.ExpectedSuccess(t, tr.Lo())
}

func TestSnapshot(t *testing.T) {
	tr := wire.NewTrace("MOSI", false)
	tr.Tick(true)
	tr.Tick(false)

	cp := tr.Snapshot()
	test.Equate(t, cp.String(), tr.String())
	test.ExpectedSuccess(t, cp.Falling())

	// the copy and the original advance independently
	tr.Tick(true)
	test.ExpectedSuccess(t, tr.Rising())
	test.ExpectedSuccess(t, cp.Falling())
	if cp.String() == tr.String() {
		t.Errorf("snapshot shares history with the original")
	}
}

func TestIdleLevel(t *testing.T) {
	tr := wire.NewTrace("RX", true)
	test.ExpectedSuccess(t, tr.Hi())
	test.ExpectedFailure(t, tr.Changed())

	// the first low sample is a falling edge from the idle level
	tr.Tick(false)
	test.ExpectedSuccess(t, tr.Falling())
}
