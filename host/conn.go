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

// Package host talks to a real board over its USB serial port, speaking the
// same register-file protocol the simulation implements. It is the part of
// the project that runs on the bench PC rather than in the simulator.
package host

import (
	"io"
	"time"

	"github.com/tarm/serial"

	"github.com/hexaflop/gopherboard/curated"
	"github.com/hexaflop/gopherboard/hardware/clocks"
	"github.com/hexaflop/gopherboard/hardware/regfile"
	"github.com/hexaflop/gopherboard/hardware/spi"
	"github.com/hexaflop/gopherboard/logger"
)

// sentinel errors for the host package
const (
	readTimeout = "host: timed out reading from the board"
	spiTimeout  = "host: timed out waiting for the SPI transaction"
)

// Conn is a connection to the board's register file.
type Conn struct {
	port io.ReadWriteCloser
}

// NewConn opens the named serial device at the board's baud rate. Fails if
// the device cannot be opened.
func NewConn(device string) (*Conn, error) {
	cfg := &serial.Config{
		Name:        device,
		Baud:        clocks.Baud,
		ReadTimeout: 500 * time.Millisecond,
	}

	port, err := serial.OpenPort(cfg)
	if err != nil {
		return nil, curated.Errorf("host: %v", err)
	}

	logger.Logf("host", "connected to %s at %d baud", device, clocks.Baud)

	return &Conn{port: port}, nil
}

// NewConnOver wraps an existing byte stream that already speaks the board
// protocol. Used by the tests.
func NewConnOver(rw io.ReadWriteCloser) *Conn {
	return &Conn{port: rw}
}

// Close the connection.
func (con *Conn) Close() error {
	return con.port.Close()
}

func (con *Conn) readByte() (uint8, error) {
	b := make([]byte, 1)

	// a serial read can legitimately return nothing when its timeout
	// lapses, so try a few times before declaring the board absent
	for i := 0; i < 10; i++ {
		n, err := con.port.Read(b)
		if err != nil && err != io.EOF {
			return 0, curated.Errorf("host: %v", err)
		}
		if n == 1 {
			return b[0], nil
		}
	}

	return 0, curated.Errorf(readTimeout)
}

// WriteRegister writes a value to a board register.
func (con *Conn) WriteRegister(addr uint8, v uint8) error {
	_, err := con.port.Write([]byte{regfile.WriteFlag | addr, v})
	if err != nil {
		return curated.Errorf("host: %v", err)
	}
	return nil
}

// ReadRegister reads a board register.
func (con *Conn) ReadRegister(addr uint8) (uint8, error) {
	_, err := con.port.Write([]byte{addr})
	if err != nil {
		return 0, curated.Errorf("host: %v", err)
	}
	return con.readByte()
}

// SetMode latches an SPI mode through the control register.
func (con *Conn) SetMode(mode spi.Mode) error {
	var v uint8
	if mode.CPOL() {
		v |= regfile.CtrlCPOL
	}
	if mode.CPHA() {
		v |= regfile.CtrlCPHA
	}
	return con.WriteRegister(regfile.SPICtrl, v)
}

// SetColour sets the three VGA colour registers.
func (con *Conn) SetColour(red uint8, green uint8, blue uint8) error {
	err := con.WriteRegister(regfile.VGARed, red)
	if err != nil {
		return err
	}
	err = con.WriteRegister(regfile.VGAGreen, green)
	if err != nil {
		return err
	}
	return con.WriteRegister(regfile.VGABlue, blue)
}

// Transfer exchanges one byte with the SPI slave attached to the board.
func (con *Conn) Transfer(v uint8) (uint8, error) {
	err := con.WriteRegister(regfile.SPITx, v)
	if err != nil {
		return 0, err
	}

	for i := 0; ; i++ {
		if i >= 100 {
			return 0, curated.Errorf(spiTimeout)
		}

		var status uint8
		status, err = con.ReadRegister(regfile.Status)
		if err != nil {
			return 0, err
		}
		if status&regfile.StatusSPIRxReady == regfile.StatusSPIRxReady {
			break
		}
	}

	return con.ReadRegister(regfile.SPIRx)
}
