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

package regfile_test

import (
	"testing"

	"github.com/hexaflop/gopherboard/hardware/regfile"
	"github.com/hexaflop/gopherboard/test"
)

// present one received byte to the file, with an otherwise idle cycle
// either side.
func feed(fl *regfile.File, v uint8, in regfile.Inputs) {
	in.RxValid = true
	in.RxData = v
	fl.Step(in)
	in.RxValid = false
	fl.Step(in)
}

func writeReg(fl *regfile.File, addr uint8, v uint8) {
	feed(fl, regfile.WriteFlag|addr, regfile.Inputs{})
	feed(fl, v, regfile.Inputs{})
}

// readReg issues a read command and returns the reply byte.
func readReg(t *testing.T, fl *regfile.File, addr uint8, in regfile.Inputs) uint8 {
	in.RxValid = true
	in.RxData = addr
	fl.Step(in)
	if !fl.Outputs().TxValid {
		t.Fatalf("no reply to read of register %02x", addr)
	}
	return fl.Outputs().TxData
}

func TestScratch(t *testing.T) {
	fl := regfile.NewFile()

	test.Equate(t, readReg(t, fl, regfile.Scratch, regfile.Inputs{}), 0x00)
	writeReg(fl, regfile.Scratch, 0xa5)
	test.Equate(t, readReg(t, fl, regfile.Scratch, regfile.Inputs{}), 0xa5)
}

func TestStatus(t *testing.T) {
	fl := regfile.NewFile()

	test.Equate(t, readReg(t, fl, regfile.Status, regfile.Inputs{}), 0)
	test.Equate(t, readReg(t, fl, regfile.Status, regfile.Inputs{SPIBusy: true}),
		regfile.StatusSPIBusy)

	// a completed SPI transaction raises the ready bit. reading the
	// receive register acknowledges it
	fl.Step(regfile.Inputs{SPIRxValid: true, SPIRxData: 0x3c})
	test.Equate(t, readReg(t, fl, regfile.Status, regfile.Inputs{}),
		regfile.StatusSPIRxReady)
	test.Equate(t, readReg(t, fl, regfile.SPIRx, regfile.Inputs{}), 0x3c)
	test.Equate(t, readReg(t, fl, regfile.Status, regfile.Inputs{}), 0)

	// the byte itself remains readable after the acknowledge
	test.Equate(t, readReg(t, fl, regfile.SPIRx, regfile.Inputs{}), 0x3c)
}

func TestSPIControl(t *testing.T) {
	fl := regfile.NewFile()

	feed(fl, regfile.WriteFlag|regfile.SPICtrl, regfile.Inputs{})
	fl.Step(regfile.Inputs{RxValid: true, RxData: regfile.CtrlCPOL | regfile.CtrlCPHA})

	out := fl.Outputs()
	test.Equate(t, out.SPICfgValid, true)
	test.Equate(t, out.CPOL, true)
	test.Equate(t, out.CPHA, true)

	// the strobe lasts a single cycle
	fl.Step(regfile.Inputs{})
	test.Equate(t, fl.Outputs().SPICfgValid, false)

	test.Equate(t, readReg(t, fl, regfile.SPICtrl, regfile.Inputs{}),
		regfile.CtrlCPOL|regfile.CtrlCPHA)
}

func TestSPITransmit(t *testing.T) {
	fl := regfile.NewFile()

	feed(fl, regfile.WriteFlag|regfile.SPITx, regfile.Inputs{})
	fl.Step(regfile.Inputs{RxValid: true, RxData: 0x81})

	out := fl.Outputs()
	test.Equate(t, out.SPITxValid, true)
	test.Equate(t, out.SPITxData, 0x81)

	fl.Step(regfile.Inputs{})
	test.Equate(t, fl.Outputs().SPITxValid, false)
}

func TestColours(t *testing.T) {
	fl := regfile.NewFile()

	// colour registers keep the low nibble only
	writeReg(fl, regfile.VGARed, 0xff)
	writeReg(fl, regfile.VGAGreen, 0x07)
	writeReg(fl, regfile.VGABlue, 0x12)

	out := fl.Outputs()
	test.Equate(t, out.Red, 0x0f)
	test.Equate(t, out.Green, 0x07)
	test.Equate(t, out.Blue, 0x02)

	test.Equate(t, readReg(t, fl, regfile.VGARed, regfile.Inputs{}), 0x0f)
}

func TestUnknownRegisters(t *testing.T) {
	fl := regfile.NewFile()

	test.Equate(t, readReg(t, fl, 0x55, regfile.Inputs{}), 0)

	// an unknown write lands nowhere
	writeReg(fl, 0x55, 0xaa)
	test.Equate(t, readReg(t, fl, 0x55, regfile.Inputs{}), 0)
}

func TestReplyWaitsForTransmitter(t *testing.T) {
	fl := regfile.NewFile()
	writeReg(fl, regfile.Scratch, 0x77)

	// the reply is held back while the transmitter is busy
	fl.Step(regfile.Inputs{RxValid: true, RxData: regfile.Scratch, TxBusy: true})
	test.Equate(t, fl.Outputs().TxValid, false)
	fl.Step(regfile.Inputs{TxBusy: true})
	test.Equate(t, fl.Outputs().TxValid, false)

	fl.Step(regfile.Inputs{})
	test.Equate(t, fl.Outputs().TxValid, true)
	test.Equate(t, fl.Outputs().TxData, 0x77)
}
