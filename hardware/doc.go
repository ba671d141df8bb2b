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

// Package hardware is the base package for the board simulation. It and its
// sub-packages contain everything required for a headless simulation.
//
// The Board type is the root of the simulation and contains references to
// all the on-board peripherals: the UART command channel, the register file,
// the SPI master and the VGA timing generator. From here the simulation can
// either be run continuously, with an optional callback to check for
// continuation, or stepped one system clock cycle at a time.
package hardware
