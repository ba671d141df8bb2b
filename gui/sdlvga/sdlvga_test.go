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

package sdlvga

import (
	"testing"

	"github.com/hexaflop/gopherboard/hardware/vga"
	"github.com/hexaflop/gopherboard/test"
)

// the pixel buffer can be exercised without an SDL context
func TestSetPixelBounds(t *testing.T) {
	scr := &SdlVGA{
		pixels: make([]byte, vga.HVisible*vga.VVisible*pixelDepth),
	}

	// the corner pixels of the visible frame are all writable,
	// including the very last one
	for _, p := range [][2]int{
		{0, 0},
		{vga.HVisible - 1, 0},
		{0, vga.VVisible - 1},
		{vga.HVisible - 1, vga.VVisible - 1},
	} {
		err := scr.SetPixel(p[0], p[1], 0xff, 0x80, 0x01)
		test.ExpectedSuccess(t, err)

		i := (p[1]*vga.HVisible + p[0]) * pixelDepth
		test.Equate(t, scr.pixels[i], 0xff)
		test.Equate(t, scr.pixels[i+1], 0x80)
		test.Equate(t, scr.pixels[i+2], 0x01)
	}

	// out of range coordinates are dropped without panicking
	err := scr.SetPixel(vga.HVisible-1, vga.VVisible, 0xff, 0xff, 0xff)
	test.ExpectedSuccess(t, err)
	err = scr.SetPixel(0, -1, 0xff, 0xff, 0xff)
	test.ExpectedSuccess(t, err)
}
