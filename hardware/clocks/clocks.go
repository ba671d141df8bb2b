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

// Package clocks defines the constant values that describe the clocking of
// the board: the crystal feeding the system clock and the rates derived from
// it at synthesis time. Everything on the board is counted in system-clock
// cycles; there is no other time base.
package clocks

const (
	// the system clock. every register on the board updates on this edge
	System = 50_000_000

	// target frequency of the SPI serial clock
	SPI = 500_000

	// baud rate of the UART command channel
	Baud = 115_200

	// the VGA pixel clock is the system clock divided by two, a close enough
	// approximation to the 25.175MHz of the 640x480@60 specification for any
	// monitor made this century
	PixelDiv = 2
)

// SPIRatio is the number of system cycles in half an SPI clock period.
const SPIRatio = System / (SPI * 2)

// BaudRatio is the number of system cycles in one UART bit.
const BaudRatio = System / Baud
