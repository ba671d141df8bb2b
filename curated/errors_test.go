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

package curated_test

import (
	"errors"
	"testing"

	"github.com/hexaflop/gopherboard/curated"
	"github.com/hexaflop/gopherboard/test"
)

func TestIdentification(t *testing.T) {
	e := curated.Errorf("spi: ratio too small (%d)", 2)
	test.Equate(t, e.Error(), "spi: ratio too small (2)")
	test.ExpectedSuccess(t, curated.IsAny(e))
	test.ExpectedSuccess(t, curated.Is(e, "spi: ratio too small (%d)"))
	test.ExpectedFailure(t, curated.Is(e, "spi: some other pattern"))

	f := errors.New("uncurated")
	test.ExpectedFailure(t, curated.IsAny(f))
	test.ExpectedFailure(t, curated.Is(f, "uncurated"))
}

func TestWrapping(t *testing.T) {
	e := curated.Errorf("uart: framing error at bit %d", 3)
	w := curated.Errorf("board: %v", e)

	test.ExpectedFailure(t, curated.Is(w, "uart: framing error at bit %d"))
	test.ExpectedSuccess(t, curated.Has(w, "uart: framing error at bit %d"))
	test.ExpectedSuccess(t, curated.Has(w, "board: %v"))
}

func TestDeduplication(t *testing.T) {
	// adjacent duplicate message parts collapse
	e := curated.Errorf("regfile: %v", curated.Errorf("regfile: %v", curated.Errorf("bad address")))
	test.Equate(t, e.Error(), "regfile: bad address")
}
