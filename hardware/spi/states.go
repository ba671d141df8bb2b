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

// State records the phase of the transaction the master is currently in.
type State int

// List of valid State values.
const (
	// Idle is the rest state. Configuration changes are accepted and a
	// byte-valid strobe starts a new transaction.
	Idle State = iota

	// Init lasts one cycle. The transmit shifter is loaded and, for
	// phase-0 modes, the first bit is driven onto MOSI straight away.
	Init

	// SendBits is the shifting state. The serial clock runs only while
	// the master is in this state.
	SendBits

	// DeadTime holds chip-select asserted after the final bit so the
	// slave is not cut off mid-bit.
	DeadTime

	// Done lasts one cycle and is the only state in which the
	// received-word strobe is raised.
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Init:
		return "init"
	case SendBits:
		return "send bits"
	case DeadTime:
		return "dead time"
	case Done:
		return "done"
	}
	return "unknown"
}
