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

package hardware_test

import (
	"testing"

	"github.com/hexaflop/gopherboard/hardware"
	"github.com/hexaflop/gopherboard/hardware/regfile"
	"github.com/hexaflop/gopherboard/hardware/spi"
	"github.com/hexaflop/gopherboard/hardware/vga"
	"github.com/hexaflop/gopherboard/test"
)

func TestScratchOverSerial(t *testing.T) {
	brd, err := hardware.NewBoard(nil)
	test.ExpectedSuccess(t, err)

	v, err := brd.ReadRegister(regfile.Scratch)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0x00)

	err = brd.WriteRegister(regfile.Scratch, 0xa5)
	test.ExpectedSuccess(t, err)

	v, err = brd.ReadRegister(regfile.Scratch)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0xa5)
}

func TestTransferLoopback(t *testing.T) {
	brd, err := hardware.NewBoard(nil)
	test.ExpectedSuccess(t, err)

	for _, mode := range []spi.Mode{spi.Mode0, spi.Mode1, spi.Mode2, spi.Mode3} {
		err = brd.SetMode(mode)
		test.ExpectedSuccess(t, err)

		for _, v := range []uint8{0x00, 0x55, 0xc3, 0xff} {
			got, err := brd.Transfer(v)
			test.ExpectedSuccess(t, err)
			test.Equate(t, got, v)
		}
	}
}

func TestTransferShiftSlave(t *testing.T) {
	brd, err := hardware.NewBoard(nil)
	test.ExpectedSuccess(t, err)

	sl := &spi.ShiftSlave{Load: 0x3c}
	brd.SetSlave(sl)

	got, err := brd.Transfer(0xc3)
	test.ExpectedSuccess(t, err)
	test.Equate(t, got, 0x3c)
	test.Equate(t, sl.Recv&0xff, 0xc3)
}

func TestStatusAcknowledge(t *testing.T) {
	brd, err := hardware.NewBoard(nil)
	test.ExpectedSuccess(t, err)

	_, err = brd.Transfer(0x42)
	test.ExpectedSuccess(t, err)

	// Transfer leaves the receive register read and the ready bit clear
	status, err := brd.ReadRegister(regfile.Status)
	test.ExpectedSuccess(t, err)
	test.Equate(t, status&regfile.StatusSPIRxReady, 0)

	// but the byte is still there
	v, err := brd.ReadRegister(regfile.SPIRx)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0x42)
}

func TestColourRegisters(t *testing.T) {
	brd, err := hardware.NewBoard(nil)
	test.ExpectedSuccess(t, err)

	err = brd.WriteRegister(regfile.VGARed, 0x0f)
	test.ExpectedSuccess(t, err)
	err = brd.WriteRegister(regfile.VGABlue, 0x03)
	test.ExpectedSuccess(t, err)

	// run the beam into the visible region and check the levels made it
	// through to the pixel pipeline
	for i := 0; i < 4*vga.HTotal*vga.VTotal; i++ {
		err = brd.Step()
		test.ExpectedSuccess(t, err)
		x, y := brd.VGA.Pos()
		if x > 10 && x < vga.HVisible && y < vga.VVisible {
			break
		}
	}

	sig := brd.VGA.Signal()
	test.Equate(t, sig.Blank, false)
	test.Equate(t, sig.Red, 0xff)
	test.Equate(t, sig.Green, 0x00)
	test.Equate(t, sig.Blue, 0x33)
}

func TestRunForCycles(t *testing.T) {
	brd, err := hardware.NewBoard(nil)
	test.ExpectedSuccess(t, err)

	err = brd.RunForCycles(10000, nil)
	test.ExpectedSuccess(t, err)
	test.Equate(t, int(brd.Cycles()), 10000)

	// an early stop from the continue check is not an error
	err = brd.RunForCycles(10000, func(_ uint64) (bool, error) {
		return false, nil
	})
	test.ExpectedSuccess(t, err)
	test.Equate(t, int(brd.Cycles()) < 20000, true)
}
