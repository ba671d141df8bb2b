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

// Package spi implements the SPI master peripheral of the board: a
// synchronous protocol engine that exchanges one word with a single slave
// device per transaction, in any of the four standard SPI modes.
//
// The engine is a register-transfer model. All of its registers update once
// per call to Step(), each update reading the register values from the
// previous cycle, so there is a strict one-cycle latency between a condition
// becoming true and its effect being observable. The engines inside the
// master - the state machine, the serial clock generator, the transmit and
// receive shifters and the dead-time counter - each own their registers
// exclusively; the only shared values are the state register and the edge
// pulses, which are single-writer multi-reader.
//
// A transaction is started by presenting a word together with the byte-valid
// strobe while the engine is idle. A strobe presented at any other time is
// ignored: the transaction in flight is never interrupted and at most one
// transaction is ever in flight. There is no error reporting at this layer;
// SPI has no acknowledgement or framing concept, so the only failure mode is
// the silent drop of a strobe.
//
// The serial clock is generated by dividing the system clock. Ratio is the
// number of system cycles in half an SPI clock period, so a full data bit
// occupies 2*Ratio cycles on the wire. After the last bit the engine holds
// chip-select asserted for Ratio/2 cycles of dead time, giving the slave
// room to finish driving its final bit, before raising the received-word
// strobe for exactly one cycle.
package spi
