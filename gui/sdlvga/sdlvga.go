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

// Package sdlvga is a simple SDL implementation of the vga.PixelRenderer
// interface: a window showing whatever the board's VGA output shows.
package sdlvga

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/hexaflop/gopherboard/curated"
	"github.com/hexaflop/gopherboard/hardware/vga"
)

const pixelDepth = 4

// SdlVGA presents the visible portion of the VGA frame in an SDL window.
type SdlVGA struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	// pixels is the byte array we copy to the texture on every NewFrame()
	pixels []byte

	quit bool
}

// NewSdlVGA is the preferred method of initialisation for the SdlVGA type.
func NewSdlVGA(scale float32) (*SdlVGA, error) {
	scr := &SdlVGA{}

	var err error

	err = sdl.Init(sdl.INIT_VIDEO)
	if err != nil {
		return nil, curated.Errorf("sdlvga: %v", err)
	}

	scr.window, err = sdl.CreateWindow("Gopherboard",
		int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED),
		int32(float32(vga.HVisible)*scale), int32(float32(vga.VVisible)*scale),
		uint32(sdl.WINDOW_SHOWN))
	if err != nil {
		return nil, curated.Errorf("sdlvga: %v", err)
	}

	scr.renderer, err = sdl.CreateRenderer(scr.window, -1, uint32(sdl.RENDERER_ACCELERATED))
	if err != nil {
		return nil, curated.Errorf("sdlvga: %v", err)
	}

	err = scr.renderer.SetScale(scale, scale)
	if err != nil {
		return nil, curated.Errorf("sdlvga: %v", err)
	}

	scr.texture, err = scr.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888),
		int(sdl.TEXTUREACCESS_STREAMING), vga.HVisible, vga.VVisible)
	if err != nil {
		return nil, curated.Errorf("sdlvga: %v", err)
	}

	scr.pixels = make([]byte, vga.HVisible*vga.VVisible*pixelDepth)

	// preset the alpha channel, we never touch it again
	for i := pixelDepth - 1; i < len(scr.pixels); i += pixelDepth {
		scr.pixels[i] = 255
	}

	return scr, nil
}

// NewFrame implements the vga.PixelRenderer interface.
func (scr *SdlVGA) NewFrame() error {
	err := scr.texture.Update(nil, scr.pixels, vga.HVisible*pixelDepth)
	if err != nil {
		return curated.Errorf("sdlvga: %v", err)
	}

	err = scr.renderer.Copy(scr.texture, nil, nil)
	if err != nil {
		return curated.Errorf("sdlvga: %v", err)
	}

	scr.renderer.Present()

	// the window close button and the escape key both end the session
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			scr.quit = true
		case *sdl.KeyboardEvent:
			if ev.Type == sdl.KEYDOWN && ev.Keysym.Sym == sdl.K_ESCAPE {
				scr.quit = true
			}
		}
	}

	return nil
}

// SetPixel implements the vga.PixelRenderer interface.
func (scr *SdlVGA) SetPixel(x int, y int, red uint8, green uint8, blue uint8) error {
	i := (y*vga.HVisible + x) * pixelDepth
	if i < 0 || i+pixelDepth > len(scr.pixels) {
		return nil
	}

	scr.pixels[i] = red
	scr.pixels[i+1] = green
	scr.pixels[i+2] = blue

	return nil
}

// Quit reports whether the user has asked for the window to close.
func (scr *SdlVGA) Quit() bool {
	return scr.quit
}

// Destroy tears the window down.
func (scr *SdlVGA) Destroy() {
	scr.texture.Destroy()
	scr.renderer.Destroy()
	scr.window.Destroy()
	sdl.Quit()
}
