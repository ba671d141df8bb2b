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

package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/soypat/saleae"
	"github.com/soypat/saleae/analyzers"

	"github.com/hexaflop/gopherboard/capture"
	"github.com/hexaflop/gopherboard/gui/sdlvga"
	"github.com/hexaflop/gopherboard/hardware"
	"github.com/hexaflop/gopherboard/hardware/clocks"
	"github.com/hexaflop/gopherboard/hardware/regfile"
	"github.com/hexaflop/gopherboard/hardware/spi"
	"github.com/hexaflop/gopherboard/host"
	"github.com/hexaflop/gopherboard/logger"
	"github.com/hexaflop/gopherboard/modalflag"
	"github.com/hexaflop/gopherboard/performance"
	"github.com/hexaflop/gopherboard/statsview"
	"github.com/hexaflop/gopherboard/version"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "SPI", "TRACE", "ANALYZE", "PERFORMANCE", "HOST", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)
	case "SPI":
		err = spiTransactions(md)
	case "TRACE":
		err = trace(md)
	case "ANALYZE":
		err = analyze(md)
	case "PERFORMANCE":
		err = perform(md)
	case "HOST":
		err = hostConsole(md)
	case "VERSION":
		vrs, rev, _ := version.Version()
		fmt.Fprintf(md.Output, "%s %s (%s)\n", version.ApplicationName, vrs, rev)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		os.Exit(20)
	}
}

// parseColour interprets a three-nibble hex string, eg. "f80".
func parseColour(s string) (uint8, uint8, uint8, error) {
	if len(s) != 3 {
		return 0, 0, 0, fmt.Errorf("colour must be three hex digits, eg. f80")
	}
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("bad colour %s", s)
	}
	return uint8(v >> 8), uint8(v >> 4 & 0x0f), uint8(v & 0x0f), nil
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	display := md.AddBool("display", true, "show the VGA output in a window")
	scale := md.AddFloat64("scale", 1.0, "window scaling")
	colour := md.AddString("colour", "", "preset the colour registers, three hex digits")
	cycles := md.AddInt("cycles", 0, "stop after this many system cycles (0 = run until quit)")
	log := md.AddBool("log", false, "echo debugging log to stdout")
	stats := md.AddBool("stats", false, "launch statistics server")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	if *stats {
		statsview.Launch(md.Output)
	}

	var scr *sdlvga.SdlVGA
	if *display {
		scr, err = sdlvga.NewSdlVGA(float32(*scale))
		if err != nil {
			return err
		}
		defer scr.Destroy()
	}

	var brd *hardware.Board
	if scr != nil {
		brd, err = hardware.NewBoard(scr)
	} else {
		brd, err = hardware.NewBoard(nil)
	}
	if err != nil {
		return err
	}

	if *colour != "" {
		r, g, b, err := parseColour(*colour)
		if err != nil {
			return err
		}
		for addr, v := range map[uint8]uint8{
			regfile.VGARed:   r,
			regfile.VGAGreen: g,
			regfile.VGABlue:  b,
		} {
			if err := brd.WriteRegister(addr, v); err != nil {
				return err
			}
		}
	}

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	check := func() (bool, error) {
		select {
		case <-intChan:
			fmt.Println("\r")
			return false, nil
		default:
		}
		if scr != nil && scr.Quit() {
			return false, nil
		}
		return true, nil
	}

	if *cycles > 0 {
		err = brd.RunForCycles(uint64(*cycles), func(_ uint64) (bool, error) {
			return check()
		})
	} else {
		err = brd.Run(check)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(md.Output, "%d cycles, %d frames\n", brd.Cycles(), brd.VGA.Frames())
	return nil
}

func spiTransactions(md *modalflag.Modes) error {
	md.NewMode()

	mode := md.AddInt("mode", 0, "SPI mode: 0 to 3")
	ratio := md.AddInt("ratio", clocks.SPIRatio, "system cycles per half SPI period")
	width := md.AddInt("width", 8, "bits per transaction")
	slave := md.AddString("slave", "loopback", "slave device: loopback, shift")
	load := md.AddUint("load", 0xa5, "parallel load value for the shift slave")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *mode < 0 || *mode > 3 {
		return fmt.Errorf("SPI mode must be 0 to 3")
	}
	if len(md.RemainingArgs()) == 0 {
		return fmt.Errorf("at least one byte to send required for %s mode", md)
	}

	mas, err := spi.NewMaster(spi.Spec{Ratio: *ratio, Width: *width})
	if err != nil {
		return err
	}

	var sl spi.Slave
	switch *slave {
	case "loopback":
		sl = spi.Loopback{}
	case "shift":
		sl = &spi.ShiftSlave{Load: uint16(*load), Width: *width}
	default:
		return fmt.Errorf("unknown slave device %s", *slave)
	}

	m := spi.Mode(*mode)
	drive, sample := m.Edges()
	fmt.Fprintf(md.Output, "%v: drive on %v edge, sample on %v edge\n", m, drive, sample)

	rec, err := capture.NewRecorder(clocks.System)
	if err != nil {
		return err
	}
	rec.AddWire("sclk", func() bool { return mas.Outputs().SCLK })

	miso := false
	step := func() {
		mas.Step(spi.Inputs{MISO: miso})
		miso = sl.Step(mas.Outputs())
		rec.Step()
	}

	mas.Step(spi.Inputs{CfgValid: true, CPOL: m.CPOL(), CPHA: m.CPHA()})
	rec.Step()

	for _, arg := range md.RemainingArgs() {
		v, err := strconv.ParseUint(arg, 16, 16)
		if err != nil {
			return fmt.Errorf("bad value %s", arg)
		}

		start := 0
		mas.Step(spi.Inputs{TxValid: true, TxData: uint16(v)})
		miso = sl.Step(mas.Outputs())
		rec.Step()
		start++

		for !mas.Outputs().RxValid {
			step()
			start++
		}

		fmt.Fprintf(md.Output, "sent %0*x received %0*x in %d cycles\n",
			(*width+3)/4, v, (*width+3)/4, mas.Outputs().RxData, start)

		for mas.Busy() {
			step()
		}

		// the tail of the clock activity for this transaction
		tr, err := rec.Activity("sclk")
		if err != nil {
			return err
		}
		fmt.Fprintln(md.Output, tr)
	}

	tm, err := rec.Timing("sclk")
	if err != nil {
		return err
	}
	fmt.Fprintln(md.Output, tm)

	return nil
}

func trace(md *modalflag.Modes) error {
	md.NewMode()

	mode := md.AddInt("mode", 0, "SPI mode: 0 to 3")
	out := md.AddString("out", ".", "directory for the capture files")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) == 0 {
		return fmt.Errorf("at least one byte to send required for %s mode", md)
	}

	brd, err := hardware.NewBoard(nil)
	if err != nil {
		return err
	}

	rec, err := capture.NewRecorder(clocks.System)
	if err != nil {
		return err
	}
	rec.AddWire("sclk", func() bool { return brd.SPI.Outputs().SCLK })
	rec.AddWire("mosi", func() bool { return brd.SPI.Outputs().MOSI })
	rec.AddWire("csn", func() bool { return brd.SPI.Outputs().CSn })
	rec.AddWire("uart_tx", func() bool { return brd.TxLine() })

	// the link helpers step the board internally, so the recorder rides
	// along on the step hook
	brd.OnStep = rec.Step

	err = brd.SetMode(spi.Mode(*mode))
	if err != nil {
		return err
	}

	for _, arg := range md.RemainingArgs() {
		v, err := strconv.ParseUint(arg, 16, 8)
		if err != nil {
			return fmt.Errorf("bad value %s", arg)
		}
		rx, err := brd.Transfer(uint8(v))
		if err != nil {
			return err
		}
		fmt.Fprintf(md.Output, "sent %02x received %02x\n", v, rx)
	}

	err = rec.WriteDir(*out)
	if err != nil {
		return err
	}

	tm, err := rec.Timing("sclk")
	if err != nil {
		return err
	}
	fmt.Fprintln(md.Output, tm)

	return nil
}

func analyze(md *modalflag.Modes) error {
	md.NewMode()

	clk := md.AddString("clk", "sclk.bin", "capture file: SPI clock")
	cs := md.AddString("cs", "csn.bin", "capture file: chip select")
	mosi := md.AddString("mosi", "mosi.bin", "capture file: MOSI data")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	open := func(fn string) (*saleae.DigitalFile, error) {
		f, err := os.Open(fn)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return saleae.ReadDigitalFile(f)
	}

	clkF, err := open(*clk)
	if err != nil {
		return err
	}
	csF, err := open(*cs)
	if err != nil {
		return err
	}
	mosiF, err := open(*mosi)
	if err != nil {
		return err
	}

	an := analyzers.SPI{}
	txs, err := an.Scan(clkF, csF, mosiF, mosiF)
	if err != nil {
		return err
	}

	for _, tx := range txs {
		fmt.Fprintf(md.Output, "t=%.6f sent=%#x\n", tx.StartTime(), tx.SDO)
	}
	fmt.Fprintf(md.Output, "%d transactions\n", len(txs))

	return nil
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	duration := md.AddString("duration", "5s", "run duration")
	profile := md.AddString("profile", "none", "profile the run: none, cpu, mem, trace, all")
	stats := md.AddBool("stats", false, "launch statistics server")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	prf, err := performance.ParseProfileString(*profile)
	if err != nil {
		return err
	}

	if *stats {
		statsview.Launch(md.Output)
	}

	return performance.Check(md.Output, prf, *duration)
}

func hostConsole(md *modalflag.Modes) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("serial device required for %s mode", md)
	}

	conn, err := host.NewConn(md.GetArg(0))
	if err != nil {
		return err
	}
	defer conn.Close()

	con, err := host.NewConsole(conn)
	if err != nil {
		return err
	}

	return con.Run()
}
