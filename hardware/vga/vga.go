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

// Package vga implements the VGA timing generator of the board: the
// standard 640x480 at 60Hz mode, with the pixel clock derived from the
// system clock by a small divider.
//
// The colour levels come from registers in the system clock domain and pass
// through a synchronizer before they reach the pixel pipeline, so a colour
// change can never tear inside a pixel.
package vga

import (
	"github.com/hexaflop/gopherboard/curated"
	"github.com/hexaflop/gopherboard/hardware/resync"
)

// sentinel errors for the vga package
const badDivider = "vga: pixel clock divider must be at least 1 (%d)"

// Timing constants for the 640x480@60 mode, in pixel clocks (horizontal)
// and scanlines (vertical). Both sync pulses are active low.
const (
	HVisible    = 640
	HFrontPorch = 16
	HSyncWidth  = 96
	HBackPorch  = 48
	HTotal      = HVisible + HFrontPorch + HSyncWidth + HBackPorch

	VVisible    = 480
	VFrontPorch = 10
	VSyncWidth  = 2
	VBackPorch  = 33
	VTotal      = VVisible + VFrontPorch + VSyncWidth + VBackPorch
)

// Signal is the information attached to a single pixel clock.
type Signal struct {
	HSync bool
	VSync bool
	Blank bool

	// colour levels, expanded from the register nibbles to eight bits
	Red   uint8
	Green uint8
	Blue  uint8
}

// PixelRenderer implementations displays, or otherwise works with, the
// visible portion of the generated frames.
type PixelRenderer interface {
	// NewFrame is called at the top of the frame, before the first
	// SetPixel of that frame.
	NewFrame() error

	// SetPixel is called for every visible pixel, in raster order.
	SetPixel(x int, y int, red uint8, green uint8, blue uint8) error
}

// Generator produces the VGA timing. Call Step() once per system clock
// cycle.
type Generator struct {
	pixelDiv int
	renderer PixelRenderer

	div    int
	hcount int
	vcount int
	frames int

	// colour clock-domain crossing
	sync *resync.Synchronizer

	sig Signal
}

// NewGenerator is the preferred method of initialisation for the Generator
// type. The renderer may be nil for headless operation.
func NewGenerator(pixelDiv int, renderer PixelRenderer) (*Generator, error) {
	if pixelDiv < 1 {
		return nil, curated.Errorf(badDivider, pixelDiv)
	}

	// three colour nibbles cross the clock domain together
	sync, err := resync.NewSynchronizer(12, resync.DefaultDepth)
	if err != nil {
		return nil, curated.Errorf("vga: %v", err)
	}

	return &Generator{
		pixelDiv: pixelDiv,
		renderer: renderer,
		sync:     sync,
		sig: Signal{
			HSync: true,
			VSync: true,
			Blank: false,
		},
	}, nil
}

// Step advances the generator by one system clock cycle. The colour
// arguments are the current levels of the colour registers; only the low
// nibble of each is used.
func (gen *Generator) Step(red uint8, green uint8, blue uint8) error {
	gen.div++
	if gen.div < gen.pixelDiv {
		return nil
	}
	gen.div = 0

	gen.sync.Tick(packColour(red, green, blue))
	r, g, b := unpackColour(gen.sync.Word())

	visible := gen.hcount < HVisible && gen.vcount < VVisible

	gen.sig = Signal{
		HSync: !(gen.hcount >= HVisible+HFrontPorch &&
			gen.hcount < HVisible+HFrontPorch+HSyncWidth),
		VSync: !(gen.vcount >= VVisible+VFrontPorch &&
			gen.vcount < VVisible+VFrontPorch+VSyncWidth),
		Blank: !visible,
	}

	if visible {
		gen.sig.Red = r
		gen.sig.Green = g
		gen.sig.Blue = b
	}

	if gen.renderer != nil {
		if gen.hcount == 0 && gen.vcount == 0 {
			err := gen.renderer.NewFrame()
			if err != nil {
				return curated.Errorf("vga: %v", err)
			}
		}
		if visible {
			err := gen.renderer.SetPixel(gen.hcount, gen.vcount, gen.sig.Red, gen.sig.Green, gen.sig.Blue)
			if err != nil {
				return curated.Errorf("vga: %v", err)
			}
		}
	}

	gen.hcount++
	if gen.hcount == HTotal {
		gen.hcount = 0
		gen.vcount++
		if gen.vcount == VTotal {
			gen.vcount = 0
			gen.frames++
		}
	}

	return nil
}

// Signal returns the signal attached to the most recent pixel clock.
func (gen *Generator) Signal() Signal {
	return gen.sig
}

// Pos returns the current beam position, which may be in the blanking
// regions.
func (gen *Generator) Pos() (int, int) {
	return gen.hcount, gen.vcount
}

// Frames returns the number of complete frames generated so far.
func (gen *Generator) Frames() int {
	return gen.frames
}

func packColour(red uint8, green uint8, blue uint8) uint16 {
	return uint16(red&0x0f)<<8 | uint16(green&0x0f)<<4 | uint16(blue&0x0f)
}

func unpackColour(w uint16) (uint8, uint8, uint8) {
	r := uint8(w>>8) & 0x0f
	g := uint8(w>>4) & 0x0f
	b := uint8(w) & 0x0f

	// expand nibbles to full range
	return r<<4 | r, g<<4 | g, b<<4 | b
}
