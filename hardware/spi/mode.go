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

import "fmt"

// Mode is one of the four standard SPI modes. The low bit is the clock
// phase (CPHA) and the next bit is the clock polarity (CPOL).
type Mode int

// List of valid Mode values.
const (
	Mode0 Mode = iota // CPOL=0 CPHA=0
	Mode1             // CPOL=0 CPHA=1
	Mode2             // CPOL=1 CPHA=0
	Mode3             // CPOL=1 CPHA=1
)

// ModeFor returns the Mode for a polarity/phase pair.
func ModeFor(cpol bool, cpha bool) Mode {
	m := Mode0
	if cpha {
		m |= 1
	}
	if cpol {
		m |= 2
	}
	return m
}

// CPOL is the idle level of the serial clock.
func (m Mode) CPOL() bool {
	return m&2 == 2
}

// CPHA selects which serial clock edge launches the next data bit.
func (m Mode) CPHA() bool {
	return m&1 == 1
}

func (m Mode) String() string {
	return fmt.Sprintf("mode %d (CPOL=%d CPHA=%d)", int(m),
		boolToInt(m.CPOL()), boolToInt(m.CPHA()))
}

// Edge identifies a transition direction on the serial clock wire.
type Edge bool

// List of valid Edge values.
const (
	Rising  Edge = true
	Falling Edge = false
)

func (e Edge) String() string {
	if e == Rising {
		return "rising"
	}
	return "falling"
}

// edgeLevels is the level of the internal (polarity-free) clock immediately
// after the toggle on which the named action happens.
type edgeLevels struct {
	launchHigh bool
	sampleHigh bool
}

// edgeTable is keyed on polarity and then phase. The internal clock does not
// change with polarity so the two polarity rows are identical; polarity only
// decides how the internal level maps onto the SCLK wire. The table is still
// two-dimensional so that every polarity/phase pair resolves through one
// lookup.
//
// Phase 0 launches on the internal falling toggle (the first bit is
// pre-driven during Init, half a period before any toggle) and samples on
// the internal rising toggle. Phase 1 is the opposite.
var edgeTable = [2][2]edgeLevels{
	{ // CPOL=0
		{launchHigh: false, sampleHigh: true}, // CPHA=0
		{launchHigh: true, sampleHigh: false}, // CPHA=1
	},
	{ // CPOL=1
		{launchHigh: false, sampleHigh: true}, // CPHA=0
		{launchHigh: true, sampleHigh: false}, // CPHA=1
	},
}

// Edges returns the SCLK wire edges on which the master drives MOSI and
// samples MISO. Useful for log and UI output; the engine itself works from
// edgeTable.
func (m Mode) Edges() (drive Edge, sample Edge) {
	lv := edgeTable[boolToInt(m.CPOL())][boolToInt(m.CPHA())]

	// an internal toggle to level v appears on the wire as a rising edge
	// when v != CPOL
	drive = Edge(lv.launchHigh != m.CPOL())
	sample = Edge(lv.sampleHigh != m.CPOL())
	return drive, sample
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
