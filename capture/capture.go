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

// Package capture is the logic-analyzer side of the simulation: named wires
// are probed once per system clock cycle and their transitions stored as
// timestamps. A capture can be summarised statistically or written out as
// Saleae Logic 2 binary files, so the same third-party tooling that inspects
// a real board can inspect the simulator.
package capture

import (
	"github.com/hexaflop/gopherboard/curated"
	"github.com/hexaflop/gopherboard/hardware/wire"
)

// sentinel errors for the capture package
const (
	badRate     = "capture: sample rate must be at least 1Hz (%d)"
	unknownWire = "capture: no wire with the label %s"
)

type probe struct {
	label  string
	sample func() bool

	trace   *wire.Trace
	initial bool

	// seconds from the start of the capture, one entry per transition
	transitions []float64
}

// Recorder probes a set of wires once per system clock cycle.
type Recorder struct {
	sysHz  int
	cycle  uint64
	probes []*probe
}

// NewRecorder is the preferred method of initialisation for the Recorder
// type. sysHz is the rate Step() will be called at, in simulated terms.
func NewRecorder(sysHz int) (*Recorder, error) {
	if sysHz < 1 {
		return nil, curated.Errorf(badRate, sysHz)
	}
	return &Recorder{sysHz: sysHz}, nil
}

// AddWire attaches a probe. The sample function is called once per Step()
// and must be cheap.
func (rec *Recorder) AddWire(label string, sample func() bool) {
	rec.probes = append(rec.probes, &probe{
		label:  label,
		sample: sample,
	})
}

// Step samples every wire. Call once per system clock cycle, after the
// hardware has been stepped.
func (rec *Recorder) Step() {
	for _, p := range rec.probes {
		v := p.sample()

		// the first sample defines the initial state rather than a
		// transition
		if p.trace == nil {
			p.initial = v
			tr := wire.NewTrace(p.label, v)
			p.trace = &tr
		}

		p.trace.Tick(v)
		if p.trace.Changed() {
			p.transitions = append(p.transitions,
				float64(rec.cycle)/float64(rec.sysHz))
		}
	}
	rec.cycle++
}

// Duration of the capture so far, in seconds.
func (rec *Recorder) Duration() float64 {
	return float64(rec.cycle) / float64(rec.sysHz)
}

// Labels of the probed wires, in the order they were added.
func (rec *Recorder) Labels() []string {
	l := make([]string, 0, len(rec.probes))
	for _, p := range rec.probes {
		l = append(l, p.label)
	}
	return l
}

// Activity returns a copy of a wire's recent history, suitable for display.
// The copy is unaffected by further calls to Step().
func (rec *Recorder) Activity(label string) (*wire.Trace, error) {
	p := rec.find(label)
	if p == nil || p.trace == nil {
		return nil, curated.Errorf(unknownWire, label)
	}
	return p.trace.Snapshot(), nil
}

// Transitions returns the transition timestamps of a wire, along with its
// initial state.
func (rec *Recorder) Transitions(label string) (bool, []float64, error) {
	p := rec.find(label)
	if p == nil {
		return false, nil, curated.Errorf(unknownWire, label)
	}
	return p.initial, p.transitions, nil
}

func (rec *Recorder) find(label string) *probe {
	for _, p := range rec.probes {
		if p.label == label {
			return p
		}
	}
	return nil
}
