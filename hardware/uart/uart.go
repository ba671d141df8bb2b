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

// Package uart implements the 8N1 serial engine on the board: a receiver
// and a transmitter, both clocked by the system clock through a baud-rate
// divider. Ratio is the number of system cycles per bit.
//
// The receiver passes the line through a two-register synchronizer before
// looking at it, detects the start bit on the falling edge and samples each
// bit at its centre. A frame with a bad stop bit is discarded without any
// fault signal; the event is noted in the central log.
package uart

import (
	"github.com/hexaflop/gopherboard/curated"
	"github.com/hexaflop/gopherboard/hardware/resync"
	"github.com/hexaflop/gopherboard/logger"
)

// sentinel errors for the uart package
const badRatio = "uart: baud ratio must be at least %d (%d)"

// minRatio leaves room for the synchronizer delay inside the first half bit.
const minRatio = 8

// Rx is the serial receiver. Call Step() once per system clock cycle with
// the current level of the line.
type Rx struct {
	ratio int
	sync  *resync.Synchronizer
	last  bool

	active bool
	count  int
	bitCnt int
	shift  uint8

	data  uint8
	valid bool
}

// NewRx is the preferred method of initialisation for the Rx type.
func NewRx(ratio int) (*Rx, error) {
	if ratio < minRatio {
		return nil, curated.Errorf(badRatio, minRatio, ratio)
	}

	sync, err := resync.NewSynchronizer(1, resync.DefaultDepth)
	if err != nil {
		return nil, curated.Errorf("uart: %v", err)
	}
	sync.Reset(1)

	return &Rx{
		ratio: ratio,
		sync:  sync,
		last:  true,
	}, nil
}

// Step advances the receiver by one system clock cycle.
func (rx *Rx) Step(line bool) {
	rx.valid = false

	w := uint16(0)
	if line {
		w = 1
	}
	rx.sync.Tick(w)
	v := rx.sync.Bit(0)
	falling := rx.last && !v
	rx.last = v

	if !rx.active {
		if falling {
			rx.active = true
			rx.count = 0
			rx.bitCnt = 0
			rx.shift = 0
		}
		return
	}

	rx.count++
	switch {
	case rx.count == rx.ratio/2:
		// centre of the start bit. if the line has already gone back
		// up the edge was a glitch, not a frame
		if v {
			rx.active = false
		}

	case rx.count == rx.ratio/2+(rx.bitCnt+1)*rx.ratio:
		if rx.bitCnt < 8 {
			// data bits arrive least significant first
			rx.shift >>= 1
			if v {
				rx.shift |= 0x80
			}
			rx.bitCnt++
		} else {
			// stop bit
			if v {
				rx.data = rx.shift
				rx.valid = true
			} else {
				logger.Logf("uart", "framing error (byte %02x discarded)", rx.shift)
			}
			rx.active = false
		}
	}
}

// Valid is true for the single cycle after a complete frame has been
// received.
func (rx *Rx) Valid() bool {
	return rx.valid
}

// Data is the byte from the most recently completed frame. Only stable
// while a new frame is not in its stop bit.
func (rx *Rx) Data() uint8 {
	return rx.data
}

// Busy is true while a frame is being received.
func (rx *Rx) Busy() bool {
	return rx.active
}

// Tx is the serial transmitter. Call Step() once per system clock cycle.
type Tx struct {
	ratio int

	shift uint16
	bits  int
	count int
	line  bool
}

// NewTx is the preferred method of initialisation for the Tx type.
func NewTx(ratio int) (*Tx, error) {
	if ratio < minRatio {
		return nil, curated.Errorf(badRatio, minRatio, ratio)
	}
	return &Tx{
		ratio: ratio,
		line:  true,
	}, nil
}

// Step advances the transmitter by one system clock cycle. A strobe
// presented while a frame is in flight is dropped.
func (tx *Tx) Step(strobe bool, data uint8) {
	if tx.bits == 0 {
		tx.line = true
		if strobe {
			// start bit, eight data bits LSB first, stop bit
			tx.shift = uint16(data)<<1 | 0x200
			tx.bits = 10
			tx.count = 0
			tx.line = false
		}
		return
	}

	tx.count++
	if tx.count == tx.ratio {
		tx.count = 0
		tx.bits--
		if tx.bits == 0 {
			tx.line = true
		} else {
			tx.shift >>= 1
			tx.line = tx.shift&1 == 1
		}
	}
}

// Line is the current level of the transmit wire. Idles high.
func (tx *Tx) Line() bool {
	return tx.line
}

// Busy is true while a frame is being shifted out.
func (tx *Tx) Busy() bool {
	return tx.bits > 0
}
