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

package spi

// Slave is any device on the far end of the SPI wires. Step is called once
// per system clock cycle with the current master outputs and returns the
// level the slave puts on the MISO wire for the next cycle.
type Slave interface {
	Step(out Outputs) bool
}

// Loopback ties MISO directly to MOSI, so a transaction receives exactly the
// word it sent. The simplest possible slave and the default device on a
// freshly created board.
type Loopback struct{}

func (Loopback) Step(out Outputs) bool {
	return out.MOSIDriven && out.MOSI
}

// ShiftSlave is a mode-0 shift-register slave, in the manner of a 74x165
// with a latched parallel load. While chip select is deasserted it reloads
// its shift register from Load; while selected it presents bits on MISO most
// significant first, advancing on the falling SCLK edge. Bits arriving on
// MOSI accumulate in Recv.
type ShiftSlave struct {
	// Load is the word presented to the master during the next
	// transaction.
	Load uint16

	// Width of the shift register in bits.
	Width int

	// Recv accumulates bits sampled from MOSI on the rising SCLK edge.
	Recv uint16

	shift    uint16
	lastSCLK bool
}

func (sl *ShiftSlave) Step(out Outputs) bool {
	if sl.Width == 0 {
		sl.Width = 8
	}

	if out.CSn {
		sl.shift = sl.Load
		sl.lastSCLK = out.SCLK
		return false
	}

	rising := out.SCLK && !sl.lastSCLK
	falling := !out.SCLK && sl.lastSCLK
	sl.lastSCLK = out.SCLK

	if rising {
		b := uint16(0)
		if out.MOSI {
			b = 1
		}
		sl.Recv = sl.Recv<<1 | b
	}
	if falling {
		sl.shift <<= 1
	}

	return sl.shift&(1<<(sl.Width-1)) != 0
}
