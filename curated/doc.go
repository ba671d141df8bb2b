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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. Unlike fmt.Errorf()
// the formatting pattern is kept alongside the placeholder values, which
// means the pattern can later be used to identify the error. For example:
//
//	e := curated.Errorf("spi: ratio too small (%d)", ratio)
//
//	if curated.Is(e, "spi: ratio too small (%d)") {
//		fmt.Println("true")
//	}
//
// The Has() function is similar but checks whether the pattern occurs
// anywhere in the error chain. IsAny() answers whether the error was created
// by Errorf() at all; an uncurated error is one the program did not expect.
//
// The Error() function normalises the message chain, removing duplicate
// adjacent parts. This means errors can be freely wrapped as they percolate
// up the call stack without the final message stuttering.
package curated
