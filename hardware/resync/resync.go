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

// Package resync is the clock-domain-crossing primitive used wherever a value
// produced in one clock domain is consumed in another. Each bit of the input
// word passes through its own chain of registers clocked by the destination
// clock; the chains are independent and no combinatorial path exists between
// them.
//
// The contract: the input may change at any time, including between ticks of
// the destination clock; the output is stable and glitch-free once the input
// has been held for Depth destination-clock ticks. The synchronizer does not
// own the source value and never writes to it.
package resync

import (
	"github.com/hexaflop/gopherboard/curated"
)

// Synchronizer is a bank of per-bit register chains. The zero value is not
// usable; use NewSynchronizer.
type Synchronizer struct {
	width int
	depth int

	// chains[bit][stage]. stage 0 is closest to the input
	chains [][]bool
}

// DefaultDepth is the number of register stages used by the two flip-flop
// synchronizer found at every asynchronous input on the board.
const DefaultDepth = 2

// NewSynchronizer is the preferred method of initialisation for the
// Synchronizer type. Width is the number of bits in the word being crossed;
// depth is the number of register stages per bit.
func NewSynchronizer(width int, depth int) (*Synchronizer, error) {
	if width < 1 || width > 16 {
		return nil, curated.Errorf("resync: unsupported width (%d)", width)
	}
	if depth < 2 {
		return nil, curated.Errorf("resync: depth must be at least 2 (%d)", depth)
	}

	sync := &Synchronizer{
		width:  width,
		depth:  depth,
		chains: make([][]bool, width),
	}
	for i := range sync.chains {
		sync.chains[i] = make([]bool, depth)
	}

	return sync, nil
}

// Reset all register stages to the value of the word argument, bit 0 being
// the least significant bit.
func (sync *Synchronizer) Reset(word uint16) {
	for bit := range sync.chains {
		v := word&(1<<bit) != 0
		for stage := range sync.chains[bit] {
			sync.chains[bit][stage] = v
		}
	}
}

// Tick advances every register chain one destination-clock cycle, feeding in
// the current value of the input word.
func (sync *Synchronizer) Tick(word uint16) {
	for bit := range sync.chains {
		chain := sync.chains[bit]
		copy(chain[1:], chain[:len(chain)-1])
		chain[0] = word&(1<<bit) != 0
	}
}

// Word returns the synchronized output word.
func (sync *Synchronizer) Word() uint16 {
	var word uint16
	for bit := range sync.chains {
		if sync.chains[bit][sync.depth-1] {
			word |= 1 << bit
		}
	}
	return word
}

// Bit returns a single bit of the synchronized output word. Convenient for
// one-bit synchronizers, like the one on the serial receive line.
func (sync *Synchronizer) Bit(bit int) bool {
	return sync.chains[bit][sync.depth-1]
}
