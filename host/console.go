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

package host

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/term"

	"github.com/hexaflop/gopherboard/curated"
)

// Console is an interactive monitor on the board connection, running on a
// raw-mode terminal.
//
// Commands, all values in hex:
//
//	r <addr>          read a register
//	w <addr> <val>    write a register
//	x <byte>          exchange a byte with the SPI slave
//	q                 quit
type Console struct {
	conn *Conn
	term *term.Term
}

// NewConsole is the preferred method of initialisation for the Console
// type.
func NewConsole(conn *Conn) (*Console, error) {
	tm, err := term.Open("/dev/tty")
	if err != nil {
		return nil, curated.Errorf("host: %v", err)
	}

	err = term.RawMode(tm)
	if err != nil {
		tm.Close()
		return nil, curated.Errorf("host: %v", err)
	}

	return &Console{
		conn: conn,
		term: tm,
	}, nil
}

// Run reads commands until the quit command or an unrecoverable error.
// Restores the terminal on the way out.
func (con *Console) Run() error {
	defer func() {
		con.term.Restore()
		con.term.Close()
	}()

	con.print("gopherboard monitor. q to quit\r\n")

	for {
		con.print("> ")
		line, err := con.readLine()
		if err != nil {
			return err
		}

		quit, err := con.dispatch(line)
		if err != nil {
			// command errors are reported, not fatal
			con.print("error: %v\r\n", err)
			continue
		}
		if quit {
			return nil
		}
	}
}

func (con *Console) print(format string, args ...interface{}) {
	fmt.Fprintf(con.term, format, args...)
}

// readLine accumulates keypresses until return, echoing as it goes. only
// the most basic editing, a raw terminal does not need more.
func (con *Console) readLine() (string, error) {
	var line []byte
	b := make([]byte, 1)

	for {
		_, err := con.term.Read(b)
		if err != nil {
			return "", curated.Errorf("host: %v", err)
		}

		switch b[0] {
		case '\r', '\n':
			con.print("\r\n")
			return string(line), nil
		case 0x03, 0x04: // ctrl-c, ctrl-d
			con.print("\r\n")
			return "q", nil
		case 0x7f, 0x08: // backspace
			if len(line) > 0 {
				line = line[:len(line)-1]
				con.print("\b \b")
			}
		default:
			if b[0] >= 0x20 && b[0] < 0x7f {
				line = append(line, b[0])
				con.print("%c", b[0])
			}
		}
	}
}

func (con *Console) dispatch(line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	arg := func(i int) (uint8, error) {
		if i >= len(fields) {
			return 0, curated.Errorf("host: missing argument")
		}
		v, err := strconv.ParseUint(fields[i], 16, 8)
		if err != nil {
			return 0, curated.Errorf("host: bad value %s", fields[i])
		}
		return uint8(v), nil
	}

	switch fields[0] {
	case "q":
		return true, nil

	case "r":
		addr, err := arg(1)
		if err != nil {
			return false, err
		}
		v, err := con.conn.ReadRegister(addr)
		if err != nil {
			return false, err
		}
		con.print("%02x = %02x\r\n", addr, v)

	case "w":
		addr, err := arg(1)
		if err != nil {
			return false, err
		}
		v, err := arg(2)
		if err != nil {
			return false, err
		}
		err = con.conn.WriteRegister(addr, v)
		if err != nil {
			return false, err
		}

	case "x":
		v, err := arg(1)
		if err != nil {
			return false, err
		}
		rx, err := con.conn.Transfer(v)
		if err != nil {
			return false, err
		}
		con.print("sent %02x received %02x\r\n", v, rx)

	default:
		return false, curated.Errorf("host: unknown command %s", fields[0])
	}

	return false, nil
}
