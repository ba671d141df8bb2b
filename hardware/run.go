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

package hardware

// A full continue check on every system cycle is expensive and, at fifty
// million cycles per simulated second, pointless. PerformanceBrake is the
// number of cycles between checks in the Run() functions.
const PerformanceBrake = 100

// Run sets the simulation running as quickly as possible. continueCheck is
// called periodically; the simulation stops when it returns false.
func (brd *Board) Run(continueCheck func() (bool, error)) error {
	if continueCheck == nil {
		continueCheck = func() (bool, error) { return true, nil }
	}

	running := true
	var err error

	for running {
		for i := 0; i < PerformanceBrake; i++ {
			if err = brd.Step(); err != nil {
				return err
			}
		}

		running, err = continueCheck()
		if err != nil {
			return err
		}
	}

	return nil
}

// RunForCycles runs the simulation for the specified number of system clock
// cycles. Useful for performance measurement and for tests.
func (brd *Board) RunForCycles(numCycles uint64, continueCheck func(cycles uint64) (bool, error)) error {
	if continueCheck == nil {
		continueCheck = func(_ uint64) (bool, error) { return true, nil }
	}

	target := brd.cycles + numCycles
	running := true

	for running && brd.cycles < target {
		n := target - brd.cycles
		if n > PerformanceBrake {
			n = PerformanceBrake
		}
		for i := uint64(0); i < n; i++ {
			if err := brd.Step(); err != nil {
				return err
			}
		}

		var err error
		running, err = continueCheck(brd.cycles)
		if err != nil {
			return err
		}
	}

	return nil
}
