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
	"github.com/hexaflop/gopherboard/curated"
	"github.com/hexaflop/gopherboard/hardware/clocks"
	"github.com/hexaflop/gopherboard/hardware/regfile"
	"github.com/hexaflop/gopherboard/hardware/spi"
)

// sentinel errors for the host end of the serial link
const (
	replyTimeout = "link: timed out waiting for the reply byte"
	replyFraming = "link: bad stop bit in the reply byte"
	spiTimeout   = "link: timed out waiting for the SPI transaction"
)

// The functions in this file play the part of the host end of the serial
// link: they drive the receive line bit by bit and watch the transmit line,
// stepping the board through the frames. They are what the run modes and
// the package tests use to talk to a simulated board; against real
// hardware the same job is done by the host package over a serial port.

// SendByte drives one 8N1 frame on the host-to-board serial line.
func (brd *Board) SendByte(v uint8) error {
	bits := []bool{false}
	for i := 0; i < 8; i++ {
		bits = append(bits, (v>>i)&1 == 1)
	}
	bits = append(bits, true)

	for _, b := range bits {
		brd.SetRx(b)
		for i := 0; i < clocks.BaudRatio; i++ {
			if err := brd.Step(); err != nil {
				return err
			}
		}
	}
	brd.SetRx(true)

	return nil
}

// RecvByte steps the board until a complete frame appears on the
// board-to-host serial line.
func (brd *Board) RecvByte() (uint8, error) {
	// the reply to a read command starts within a handful of cycles of
	// the command frame ending, so this limit is generous
	limit := 50 * clocks.BaudRatio

	for i := 0; brd.TxLine(); i++ {
		if i >= limit {
			return 0, curated.Errorf(replyTimeout)
		}
		if err := brd.Step(); err != nil {
			return 0, err
		}
	}

	// move from the leading edge of the start bit to its centre, then
	// sample each bit one period apart
	step := func(n int) error {
		for i := 0; i < n; i++ {
			if err := brd.Step(); err != nil {
				return err
			}
		}
		return nil
	}

	if err := step(clocks.BaudRatio / 2); err != nil {
		return 0, err
	}

	var v uint8
	for i := 0; i < 8; i++ {
		if err := step(clocks.BaudRatio); err != nil {
			return 0, err
		}
		v >>= 1
		if brd.TxLine() {
			v |= 0x80
		}
	}

	if err := step(clocks.BaudRatio); err != nil {
		return 0, err
	}
	if !brd.TxLine() {
		return 0, curated.Errorf(replyFraming)
	}

	return v, nil
}

// WriteRegister writes a value to a board register over the serial link.
func (brd *Board) WriteRegister(addr uint8, v uint8) error {
	if err := brd.SendByte(regfile.WriteFlag | addr); err != nil {
		return err
	}
	return brd.SendByte(v)
}

// ReadRegister reads a board register over the serial link.
func (brd *Board) ReadRegister(addr uint8) (uint8, error) {
	if err := brd.SendByte(addr); err != nil {
		return 0, err
	}
	return brd.RecvByte()
}

// SetMode latches an SPI mode through the control register.
func (brd *Board) SetMode(mode spi.Mode) error {
	var v uint8
	if mode.CPOL() {
		v |= regfile.CtrlCPOL
	}
	if mode.CPHA() {
		v |= regfile.CtrlCPHA
	}
	return brd.WriteRegister(regfile.SPICtrl, v)
}

// Transfer exchanges one byte with the SPI slave: write the byte, poll the
// status register until the transaction completes, read the answer back.
func (brd *Board) Transfer(v uint8) (uint8, error) {
	err := brd.WriteRegister(regfile.SPITx, v)
	if err != nil {
		return 0, err
	}

	for i := 0; ; i++ {
		if i >= 100 {
			return 0, curated.Errorf(spiTimeout)
		}

		var status uint8
		status, err = brd.ReadRegister(regfile.Status)
		if err != nil {
			return 0, err
		}
		if status&regfile.StatusSPIRxReady == regfile.StatusSPIRxReady {
			break
		}
	}

	return brd.ReadRegister(regfile.SPIRx)
}
