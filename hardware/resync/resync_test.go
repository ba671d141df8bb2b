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

package resync_test

import (
	"testing"

	"github.com/hexaflop/gopherboard/hardware/resync"
	"github.com/hexaflop/gopherboard/test"
)

func TestLatency(t *testing.T) {
	sync, err := resync.NewSynchronizer(1, resync.DefaultDepth)
	test.ExpectedSuccess(t, err)

	// input change is not visible until it has passed through every stage
	sync.Tick(1)
	test.Equate(t, int(sync.Word()), 0)
	sync.Tick(1)
	test.Equate(t, int(sync.Word()), 1)

	// and the output holds once the input is stable
	sync.Tick(1)
	test.Equate(t, int(sync.Word()), 1)
}

func TestWideWord(t *testing.T) {
	sync, err := resync.NewSynchronizer(12, resync.DefaultDepth)
	test.ExpectedSuccess(t, err)

	sync.Reset(0x000)
	sync.Tick(0xabc)
	sync.Tick(0xabc)
	test.Equate(t, sync.Word(), uint16(0xabc))

	// an input change is delayed, not mixed into the current output word,
	// and the output settles once the input does
	sync.Tick(0x123)
	test.Equate(t, sync.Word(), uint16(0xabc))
	sync.Tick(0xabc)
	sync.Tick(0xabc)
	test.Equate(t, sync.Word(), uint16(0xabc))
}

func TestDeeperChain(t *testing.T) {
	sync, err := resync.NewSynchronizer(1, 3)
	test.ExpectedSuccess(t, err)

	sync.Tick(1)
	sync.Tick(1)
	test.Equate(t, int(sync.Word()), 0)
	sync.Tick(1)
	test.Equate(t, int(sync.Word()), 1)
}

func TestBadParameters(t *testing.T) {
	_, err := resync.NewSynchronizer(0, 2)
	test.ExpectedFailure(t, err)

	_, err = resync.NewSynchronizer(1, 1)
	test.ExpectedFailure(t, err)

	_, err = resync.NewSynchronizer(17, 2)
	test.ExpectedFailure(t, err)
}
