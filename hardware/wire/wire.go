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

// Package wire models the electrical lines between the board and the outside
// world, one sample per system clock cycle.
package wire

// Trace records the state of an electrical line, whether it is high or low,
// and also whether the immediately previous state is high or low.
//
// Moving from one state to the other is done with Tick(bool) where a boolean
// value of true indicates a high voltage state.
//
// The function Falling() returns true if the line voltage has moved from a
// high state to a low state; Rising() returns true if the opposite is true.
//
// Deriving conditions from two traces is convenient. For example, given two
// traces CLK and CS, a condition for event E might be:
//
//	if CS.Lo() && CLK.Rising() {
//		E()
//	}
type Trace struct {
	Label string

	// new values are added to the end of the array
	Activity []bool

	from bool
	to   bool
}

const activityLength = 64

// NewTrace is the preferred method of initialisation for the Trace type. The
// idle argument gives the level the line rests at; the activity history is
// preset to that level.
func NewTrace(label string, idle bool) Trace {
	tr := Trace{
		Label:    label,
		Activity: make([]bool, activityLength),
	}
	for i := range tr.Activity {
		tr.Activity[i] = idle
	}
	tr.from = idle
	tr.to = idle
	return tr
}

// Snapshot makes a copy of the Trace, including the activity history.
func (tr *Trace) Snapshot() *Trace {
	cp := *tr
	cp.Activity = make([]bool, len(tr.Activity))
	copy(cp.Activity, tr.Activity)
	return &cp
}

// Changed returns true if the most recent Tick() altered the line level.
func (tr *Trace) Changed() bool {
	return tr.from != tr.to
}

// Falling returns true if the line has moved from a high state to a low state.
func (tr *Trace) Falling() bool {
	return tr.from && !tr.to
}

// Rising returns true if the line has moved from a low state to a high state.
func (tr *Trace) Rising() bool {
	return !tr.from && tr.to
}

// Hi returns true if the line is in a high state.
func (tr *Trace) Hi() bool {
	return tr.to
}

// Lo returns true if the line is in a low state.
func (tr *Trace) Lo() bool {
	return !tr.to
}

// Tick advances the line one cycle.
func (tr *Trace) Tick(v bool) {
	tr.from = tr.to
	tr.to = v
	tr.Activity = append(tr.Activity[1:], v)
}

// String returns a single-line ASCII representation of the activity history,
// most recent sample to the right.
func (tr *Trace) String() string {
	b := make([]byte, len(tr.Activity))
	for i, v := range tr.Activity {
		if v {
			b[i] = '^'
		} else {
			b[i] = '_'
		}
	}
	return tr.Label + ": " + string(b)
}
