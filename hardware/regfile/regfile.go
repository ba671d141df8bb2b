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

// Package regfile implements the address-decoded register file reachable
// over the serial link. It is the command channel of the board.
//
// The wire protocol is byte oriented. A write command is two bytes: the
// address with the top bit set, followed by the data byte. A read command
// is a single byte, the address with the top bit clear, and the board
// answers with one data byte. There is no fault signalling: unknown reads
// answer zero and unknown writes land nowhere, both with a log entry.
package regfile

import (
	"github.com/hexaflop/gopherboard/logger"
)

// Register addresses.
const (
	Scratch  = 0x00
	Status   = 0x01
	SPICtrl  = 0x02
	SPITx    = 0x03
	SPIRx    = 0x04
	VGARed   = 0x10
	VGAGreen = 0x11
	VGABlue  = 0x12
)

// Bits of the Status register.
const (
	StatusSPIBusy    = 0x01
	StatusSPIRxReady = 0x02
)

// Bits of the SPICtrl register.
const (
	CtrlCPOL = 0x01
	CtrlCPHA = 0x02
)

// WriteFlag marks a command byte as a write. The remaining seven bits are
// the register address.
const WriteFlag = 0x80

// Inputs are the signals presented to the register file on every cycle.
type Inputs struct {
	// byte strobe from the serial receiver
	RxValid bool
	RxData  uint8

	// serial transmitter state. a read reply is held until the
	// transmitter is free
	TxBusy bool

	// state of the SPI master
	SPIBusy    bool
	SPIRxValid bool
	SPIRxData  uint8
}

// Outputs are the signals driven by the register file. The strobes last a
// single cycle.
type Outputs struct {
	// reply byte for the serial transmitter
	TxValid bool
	TxData  uint8

	// configuration and byte-valid strobes for the SPI master
	SPICfgValid bool
	CPOL        bool
	CPHA        bool
	SPITxValid  bool
	SPITxData   uint16

	// colour levels for the VGA generator, low nibble each
	Red   uint8
	Green uint8
	Blue  uint8
}

// File is the register file and its command decoder. Call Step() once per
// system clock cycle.
type File struct {
	scratch uint8
	ctrl    uint8
	red     uint8
	green   uint8
	blue    uint8

	rxReady bool
	rxData  uint8

	pendingWrite bool
	writeAddr    uint8

	replyPending bool
	reply        uint8

	out Outputs
}

// NewFile is the preferred method of initialisation for the File type.
func NewFile() *File {
	return &File{}
}

// Step advances the register file by one system clock cycle.
func (fl *File) Step(in Inputs) {
	fl.out.TxValid = false
	fl.out.SPICfgValid = false
	fl.out.SPITxValid = false

	// a completed SPI transaction lands in the receive register and sets
	// the ready bit. handled before command decoding so a read on the
	// same cycle sees the fresh byte.
	if in.SPIRxValid {
		fl.rxData = in.SPIRxData
		fl.rxReady = true
	}

	if in.RxValid {
		if fl.pendingWrite {
			fl.pendingWrite = false
			fl.write(fl.writeAddr, in.RxData)
		} else if in.RxData&WriteFlag == WriteFlag {
			fl.pendingWrite = true
			fl.writeAddr = in.RxData & 0x7f
		} else {
			fl.reply = fl.read(in.RxData, in)
			fl.replyPending = true
		}
	}

	// the reply goes out as soon as the transmitter is free
	if fl.replyPending && !in.TxBusy {
		fl.replyPending = false
		fl.out.TxValid = true
		fl.out.TxData = fl.reply
	}

	fl.out.Red = fl.red
	fl.out.Green = fl.green
	fl.out.Blue = fl.blue
}

// Outputs returns the output signals as they stand after the most recent
// call to Step().
func (fl *File) Outputs() Outputs {
	return fl.out
}

func (fl *File) write(addr uint8, data uint8) {
	switch addr {
	case Scratch:
		fl.scratch = data
	case SPICtrl:
		fl.ctrl = data & (CtrlCPOL | CtrlCPHA)
		fl.out.SPICfgValid = true
		fl.out.CPOL = data&CtrlCPOL == CtrlCPOL
		fl.out.CPHA = data&CtrlCPHA == CtrlCPHA
	case SPITx:
		fl.out.SPITxValid = true
		fl.out.SPITxData = uint16(data)
	case VGARed:
		fl.red = data & 0x0f
	case VGAGreen:
		fl.green = data & 0x0f
	case VGABlue:
		fl.blue = data & 0x0f
	default:
		logger.Logf("regfile", "write to unknown register %02x ignored", addr)
	}
}

func (fl *File) read(addr uint8, in Inputs) uint8 {
	switch addr {
	case Scratch:
		return fl.scratch
	case Status:
		var s uint8
		if in.SPIBusy {
			s |= StatusSPIBusy
		}
		if fl.rxReady {
			s |= StatusSPIRxReady
		}
		return s
	case SPICtrl:
		return fl.ctrl
	case SPIRx:
		// reading the receive register acknowledges the byte
		fl.rxReady = false
		return fl.rxData
	case VGARed:
		return fl.red
	case VGAGreen:
		return fl.green
	case VGABlue:
		return fl.blue
	default:
		logger.Logf("regfile", "read of unknown register %02x", addr)
		return 0
	}
}
