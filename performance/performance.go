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

package performance

import (
	"fmt"
	"io"
	"time"

	"github.com/hexaflop/gopherboard/curated"
	"github.com/hexaflop/gopherboard/hardware"
	"github.com/hexaflop/gopherboard/hardware/clocks"
)

// Check the performance of the simulation.
//
// The board runs headless for the specified wall-clock duration and the
// result is reported as system cycles per second, alongside the ratio to the
// real board's clock.
func Check(output io.Writer, profile Profile, duration string) error {
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	brd, err := hardware.NewBoard(nil)
	if err != nil {
		return err
	}

	// simulate in chunks of 10ms of board time between clock checks
	const chunk = clocks.System / 100

	var elapsed float64

	runner := func() error {
		start := time.Now()
		end := start.Add(dur)
		for time.Now().Before(end) {
			err := brd.RunForCycles(chunk, nil)
			if err != nil {
				return err
			}
		}
		elapsed = time.Since(start).Seconds()
		return nil
	}

	err = RunProfiler(profile, "performance", runner)
	if err != nil {
		return err
	}

	cycles := brd.Cycles()
	rate := float64(cycles) / elapsed
	ratio := rate / clocks.System

	output.Write([]byte(fmt.Sprintf("%.2f million cycles/sec (%d cycles in %.2f seconds) %.3fx the real board, %d frames\n",
		rate/1e6, cycles, elapsed, ratio, brd.VGA.Frames())))

	return nil
}
