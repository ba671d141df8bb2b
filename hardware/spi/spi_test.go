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

package spi_test

import (
	"testing"

	"github.com/hexaflop/gopherboard/hardware/spi"
	"github.com/hexaflop/gopherboard/test"
)

// duration is the number of cycles between the byte-valid strobe and the
// cycle on which the received-word strobe is raised. it is the same for
// every word value and every mode: width bits of 2*ratio cycles each, half
// a period of dead time, one cycle each for the strobe, the shifter load
// and the exit from the shifting state.
func duration(ratio int, width int) int {
	return 2*width*ratio + ratio/2 + 3
}

// transact runs a single transaction to completion, wiring the slave's MISO
// return to the master's input on the following cycle. it returns the
// received word and the cycle count from the strobe to the received-word
// strobe.
func transact(t *testing.T, mas *spi.Master, sl spi.Slave, data uint16) (uint16, int) {
	miso := sl.Step(mas.Outputs())

	for mas.Busy() {
		mas.Step(spi.Inputs{MISO: miso})
		miso = sl.Step(mas.Outputs())
	}

	mas.Step(spi.Inputs{TxValid: true, TxData: data, MISO: miso})
	miso = sl.Step(mas.Outputs())
	ticks := 1

	for !mas.Outputs().RxValid {
		mas.Step(spi.Inputs{MISO: miso})
		miso = sl.Step(mas.Outputs())
		ticks++
		if ticks > 100000 {
			t.Fatalf("transaction did not complete")
		}
	}

	return mas.Outputs().RxData, ticks
}

func configure(t *testing.T, mas *spi.Master, mode spi.Mode) {
	mas.Step(spi.Inputs{CfgValid: true, CPOL: mode.CPOL(), CPHA: mode.CPHA()})
	test.Equate(t, int(mas.Mode()), int(mode))
}

func TestLoopback(t *testing.T) {
	for _, mode := range []spi.Mode{spi.Mode0, spi.Mode1, spi.Mode2, spi.Mode3} {
		mas, err := spi.NewMaster(spi.Spec{Ratio: 8})
		test.ExpectedSuccess(t, err)
		configure(t, mas, mode)

		for v := 0; v < 256; v++ {
			rx, ticks := transact(t, mas, spi.Loopback{}, uint16(v))
			test.Equate(t, rx, v)
			test.Equate(t, ticks, duration(8, 8))
		}
	}
}

func TestWaveform(t *testing.T) {
	const ratio = 8

	for _, mode := range []spi.Mode{spi.Mode0, spi.Mode1, spi.Mode2, spi.Mode3} {
		mas, err := spi.NewMaster(spi.Spec{Ratio: ratio})
		test.ExpectedSuccess(t, err)
		configure(t, mas, mode)

		idle := mode.CPOL()

		var rec []spi.Outputs
		mas.Step(spi.Inputs{TxValid: true, TxData: 0x55})
		rec = append(rec, mas.Outputs())
		for !mas.Outputs().RxValid {
			mas.Step(spi.Inputs{})
			rec = append(rec, mas.Outputs())
			if len(rec) > 100000 {
				t.Fatalf("%s: transaction did not complete", mode)
			}
		}

		test.Equate(t, len(rec), duration(ratio, 8))

		// chip select asserts with the strobe and releases on the cycle
		// the received word is raised; the wires return to idle with it
		test.Equate(t, rec[0].CSn, false)
		test.Equate(t, rec[len(rec)-2].CSn, false)
		test.Equate(t, rec[len(rec)-1].CSn, true)
		test.Equate(t, rec[len(rec)-1].MOSIDriven, false)
		test.Equate(t, rec[len(rec)-1].SCLK, idle)

		// away edges leave the idle level, back edges return to it. the
		// clock always leaves idle first so away[i] precedes back[i]
		var away []int
		var back []int
		for i := 1; i < len(rec); i++ {
			if rec[i].SCLK != rec[i-1].SCLK {
				if rec[i].SCLK != idle {
					away = append(away, i)
				} else {
					back = append(back, i)
				}
			}
		}
		test.Equate(t, len(away), 8)
		test.Equate(t, len(back), 8)

		// read MOSI at this mode's sampling edge of SCLK
		_, sample := mode.Edges()
		samples := back
		if (sample == spi.Rising) != idle {
			samples = away
		}

		var word uint16
		for _, s := range samples {
			word <<= 1
			if rec[s].MOSI {
				word |= 1
			}
		}
		test.Equate(t, word, 0x55)

		// sampling edges are spaced one full bit period apart and the
		// opposite edge splits each bit in half
		for i := 1; i < len(samples); i++ {
			test.Equate(t, samples[i]-samples[i-1], 2*ratio)
		}
		for i := range away {
			test.Equate(t, back[i]-away[i], ratio)
		}

		// each data bit is held stable from half a period before its
		// sampling edge to half a period after it
		for _, s := range samples {
			hold := s + ratio - 1
			if hold > len(rec)-2 {
				hold = len(rec) - 2
			}
			for i := s - ratio + 1; i <= hold; i++ {
				if rec[i].MOSI != rec[s].MOSI {
					t.Fatalf("%s: MOSI unstable at cycle %d around sampling edge %d", mode, i, s)
				}
			}
		}

		// chip select is held for the dead-time window after the final
		// edge
		test.Equate(t, len(rec)-1-back[7], ratio/2)
	}
}

func TestStrobeWhileBusy(t *testing.T) {
	mas, err := spi.NewMaster(spi.Spec{Ratio: 8})
	test.ExpectedSuccess(t, err)
	configure(t, mas, spi.Mode0)

	// hammer the strobe with a different word on every cycle of the
	// transaction. none of them take
	sl := spi.Loopback{}
	miso := sl.Step(mas.Outputs())
	mas.Step(spi.Inputs{TxValid: true, TxData: 0xa5, MISO: miso})
	miso = sl.Step(mas.Outputs())
	ticks := 1

	for !mas.Outputs().RxValid {
		mas.Step(spi.Inputs{TxValid: true, TxData: 0xff, MISO: miso})
		miso = sl.Step(mas.Outputs())
		ticks++
		if ticks > 100000 {
			t.Fatalf("transaction did not complete")
		}
	}

	test.Equate(t, mas.Outputs().RxData, 0xa5)
	test.Equate(t, ticks, duration(8, 8))

	// the cycle after completion is still inside the transaction and a
	// strobe on it is also dropped
	mas.Step(spi.Inputs{TxValid: true, TxData: 0x0f})
	test.Equate(t, mas.Busy(), false)

	// but once idle the next strobe is honoured
	mas.Step(spi.Inputs{TxValid: true, TxData: 0x0f})
	test.Equate(t, mas.Busy(), true)
}

func TestConfiguration(t *testing.T) {
	mas, err := spi.NewMaster(spi.Spec{Ratio: 8})
	test.ExpectedSuccess(t, err)
	test.Equate(t, int(mas.Mode()), int(spi.Mode0))

	// the clock wire follows the new polarity as soon as the
	// configuration is latched
	configure(t, mas, spi.Mode3)
	test.Equate(t, mas.Outputs().SCLK, true)

	// reconfiguration during a transaction is ignored
	mas.Step(spi.Inputs{TxValid: true, TxData: 0x81})
	mas.Step(spi.Inputs{CfgValid: true, CPOL: false, CPHA: false})
	test.Equate(t, int(mas.Mode()), int(spi.Mode3))

	sl := spi.Loopback{}
	miso := false
	for mas.Busy() {
		mas.Step(spi.Inputs{MISO: miso})
		miso = sl.Step(mas.Outputs())
	}
	test.Equate(t, int(mas.Mode()), int(spi.Mode3))
	test.Equate(t, mas.Outputs().RxData, 0x81)
}

func TestSpecValidation(t *testing.T) {
	_, err := spi.NewMaster(spi.Spec{Ratio: 3})
	test.ExpectedFailure(t, err)

	_, err = spi.NewMaster(spi.Spec{Ratio: 8, Width: 17})
	test.ExpectedFailure(t, err)

	mas, err := spi.NewMaster(spi.Spec{Ratio: 4})
	test.ExpectedSuccess(t, err)
	test.Equate(t, mas.Spec().Width, 8)
}

func TestWideWords(t *testing.T) {
	for _, mode := range []spi.Mode{spi.Mode0, spi.Mode1, spi.Mode2, spi.Mode3} {
		mas, err := spi.NewMaster(spi.Spec{Ratio: 8, Width: 16})
		test.ExpectedSuccess(t, err)
		configure(t, mas, mode)

		rx, ticks := transact(t, mas, spi.Loopback{}, 0xbeef)
		test.Equate(t, rx, 0xbeef)
		test.Equate(t, ticks, duration(8, 16))
	}
}

func TestShiftSlave(t *testing.T) {
	mas, err := spi.NewMaster(spi.Spec{Ratio: 8})
	test.ExpectedSuccess(t, err)
	configure(t, mas, spi.Mode0)

	sl := &spi.ShiftSlave{Load: 0x3c}
	rx, _ := transact(t, mas, sl, 0xc3)

	test.Equate(t, rx, 0x3c)
	test.Equate(t, sl.Recv, 0xc3)
}

func TestReset(t *testing.T) {
	mas, err := spi.NewMaster(spi.Spec{Ratio: 8})
	test.ExpectedSuccess(t, err)
	configure(t, mas, spi.Mode0)

	mas.Step(spi.Inputs{TxValid: true, TxData: 0x42})
	for i := 0; i < 20; i++ {
		mas.Step(spi.Inputs{})
	}
	test.Equate(t, mas.Busy(), true)

	mas.Reset()
	test.Equate(t, mas.Busy(), false)
	test.Equate(t, mas.Outputs().CSn, true)
	test.Equate(t, mas.Outputs().SCLK, false)
	test.Equate(t, int(mas.Mode()), int(spi.Mode0))

	rx, ticks := transact(t, mas, spi.Loopback{}, 0x42)
	test.Equate(t, rx, 0x42)
	test.Equate(t, ticks, duration(8, 8))
}
