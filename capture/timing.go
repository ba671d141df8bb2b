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

package capture

import (
	"fmt"

	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/stat"

	"github.com/hexaflop/gopherboard/curated"
)

// sentinel errors raised by the Timing function
const notEnoughEdges = "capture: not enough edges on %s for timing statistics"

// Timing summarises the behaviour of a clock-like wire.
type Timing struct {
	Label string

	// number of transitions in the capture
	Edges int

	// mean period between consecutive rising edges, in seconds, and its
	// standard deviation
	Period       float64
	PeriodStddev float64

	// 1/Period
	Frequency float64

	// mean fraction of the period spent high
	DutyCycle float64
}

func (tm Timing) String() string {
	return fmt.Sprintf("%s: %d edges, %.3fus period (stddev %.3fus), %.3fkHz, %.1f%% duty",
		tm.Label, tm.Edges,
		tm.Period*1e6, tm.PeriodStddev*1e6,
		tm.Frequency/1e3, tm.DutyCycle*100)
}

// Timing measures the named wire. The wire must have at least two full
// periods in the capture.
func (rec *Recorder) Timing(label string) (Timing, error) {
	initial, trans, err := rec.Transitions(label)
	if err != nil {
		return Timing{}, err
	}

	// transitions strictly alternate, so with a low initial state the
	// even-numbered ones are rising
	var rises []float64
	var falls []float64
	for i, t := range trans {
		if (i%2 == 0) != initial {
			rises = append(rises, t)
		} else {
			falls = append(falls, t)
		}
	}

	if len(rises) < 3 {
		return Timing{}, curated.Errorf(notEnoughEdges, label)
	}

	periods := make([]float64, len(rises)-1)
	for i := range periods {
		periods[i] = rises[i+1] - rises[i]
	}
	mean, std := stat.MeanStdDev(periods, nil)

	// high time of each full period
	var highs []float64
	if len(falls) > 0 && falls[0] < rises[0] {
		falls = falls[1:]
	}
	for i := 0; i < min(len(rises), len(falls)); i++ {
		highs = append(highs, falls[i]-rises[i])
	}

	duty := 0.0
	if len(highs) > 0 && mean > 0 {
		duty = stat.Mean(highs, nil) / mean
	}

	return Timing{
		Label:        label,
		Edges:        len(trans),
		Period:       mean,
		PeriodStddev: std,
		Frequency:    1 / mean,
		DutyCycle:    duty,
	}, nil
}

func min[T constraints.Ordered](a T, b T) T {
	if a < b {
		return a
	}
	return b
}
