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

import (
	"github.com/hexaflop/gopherboard/hardware/clocks"
	"github.com/hexaflop/gopherboard/hardware/regfile"
	"github.com/hexaflop/gopherboard/hardware/spi"
	"github.com/hexaflop/gopherboard/hardware/uart"
	"github.com/hexaflop/gopherboard/hardware/vga"
)

// Board is the main container for the simulated components of the board.
type Board struct {
	RegFile *regfile.File
	SPI     *spi.Master
	UARTRx  *uart.Rx
	UARTTx  *uart.Tx
	VGA     *vga.Generator

	// Slave is the device on the far end of the SPI wires. A loopback
	// is attached on creation; replace it with SetSlave().
	Slave spi.Slave

	// OnStep, when not nil, is called at the end of every Step(). The
	// capture recorder uses it to sample wires at the system clock rate.
	OnStep func()

	// level of the host-to-board serial line, as last set by SetRx()
	rxLine bool

	// MISO level for the next cycle, as returned by the slave
	miso bool

	cycles uint64
}

// NewBoard creates a new Board and everything associated with the hardware.
// The renderer may be nil for headless operation.
func NewBoard(renderer vga.PixelRenderer) (*Board, error) {
	var err error

	brd := &Board{
		RegFile: regfile.NewFile(),
		Slave:   spi.Loopback{},
		rxLine:  true,
	}

	brd.SPI, err = spi.NewMaster(spi.Spec{Ratio: clocks.SPIRatio})
	if err != nil {
		return nil, err
	}

	brd.UARTRx, err = uart.NewRx(clocks.BaudRatio)
	if err != nil {
		return nil, err
	}

	brd.UARTTx, err = uart.NewTx(clocks.BaudRatio)
	if err != nil {
		return nil, err
	}

	brd.VGA, err = vga.NewGenerator(clocks.PixelDiv, renderer)
	if err != nil {
		return nil, err
	}

	return brd, nil
}

// SetSlave attaches a device to the SPI wires, replacing whatever was there
// before.
func (brd *Board) SetSlave(sl spi.Slave) {
	brd.Slave = sl
}

// SetRx sets the level of the host-to-board serial line. The level holds
// until the next call.
func (brd *Board) SetRx(level bool) {
	brd.rxLine = level
}

// TxLine is the current level of the board-to-host serial line.
func (brd *Board) TxLine() bool {
	return brd.UARTTx.Line()
}

// Cycles is the number of system clock cycles simulated so far.
func (brd *Board) Cycles() uint64 {
	return brd.cycles
}

// Step advances the board by one system clock cycle.
func (brd *Board) Step() error {
	brd.UARTRx.Step(brd.rxLine)

	spiOut := brd.SPI.Outputs()
	brd.RegFile.Step(regfile.Inputs{
		RxValid:    brd.UARTRx.Valid(),
		RxData:     brd.UARTRx.Data(),
		TxBusy:     brd.UARTTx.Busy(),
		SPIBusy:    brd.SPI.Busy(),
		SPIRxValid: spiOut.RxValid,
		SPIRxData:  uint8(spiOut.RxData),
	})
	rf := brd.RegFile.Outputs()

	brd.UARTTx.Step(rf.TxValid, rf.TxData)

	brd.SPI.Step(spi.Inputs{
		CfgValid: rf.SPICfgValid,
		CPOL:     rf.CPOL,
		CPHA:     rf.CPHA,
		TxValid:  rf.SPITxValid,
		TxData:   rf.SPITxData,
		MISO:     brd.miso,
	})
	brd.miso = brd.Slave.Step(brd.SPI.Outputs())

	err := brd.VGA.Step(rf.Red, rf.Green, rf.Blue)
	if err != nil {
		return err
	}

	brd.cycles++

	if brd.OnStep != nil {
		brd.OnStep()
	}

	return nil
}
