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

package spi

import (
	"github.com/hexaflop/gopherboard/curated"
)

// sentinel errors for the spi package
const (
	badRatio = "spi: clock ratio must be at least %d (%d)"
	badWidth = "spi: word width must be between 1 and 16 (%d)"
)

// minRatio is the smallest usable clock ratio. The receive sampler runs two
// cycles after the internal clock toggle and the final sample lands inside
// the dead-time window, so half an SPI period must be long enough to keep
// those delays from colliding with the next toggle.
const minRatio = 4

// Spec collects the static parameters of a Master. The zero value is not
// usable; Ratio must be given explicitly.
type Spec struct {
	// Ratio is the number of system clock cycles in half an SPI clock
	// period. A data bit therefore occupies 2*Ratio system cycles.
	Ratio int

	// Width is the number of bits per transaction, most significant bit
	// first. The zero value selects the traditional 8.
	Width int
}

// Inputs are the signals presented to the master on every cycle.
type Inputs struct {
	// CfgValid latches CPOL and CPAH into the master. The latch only
	// operates while the master is idle.
	CfgValid bool
	CPOL     bool
	CPHA     bool

	// TxValid starts a transaction sending TxData. Ignored unless the
	// master is idle.
	TxValid bool
	TxData  uint16

	// MISO is the level of the slave data line during this cycle.
	MISO bool
}

// Outputs are the registered output signals of the master. They hold their
// value until the cycle after the condition that changes them.
type Outputs struct {
	// SCLK is the serial clock wire, idling at the CPOL level.
	SCLK bool

	// MOSI is the master data line. Its value is only meaningful while
	// MOSIDriven is true; at all other times the wire is tri-stated.
	MOSI       bool
	MOSIDriven bool

	// CSn is the active-low chip select.
	CSn bool

	// RxData is the word received during the most recent transaction. It
	// is stable from the cycle RxValid is raised until the end of the
	// following transaction.
	RxData uint16

	// RxValid is raised for exactly one cycle per transaction.
	RxValid bool
}

// Master is the SPI protocol engine. Call Step() once per system clock
// cycle.
//
// The registers of the master are private and only change inside Step(). An
// instance must not be shared between goroutines.
type Master struct {
	ratio      int
	width      int
	deadCycles int
	mask       uint16

	// configuration registers, latched while idle
	pol        bool
	pha        bool
	launchHigh bool
	sampleHigh bool

	// state machine
	state State

	// transmit engine
	txLatch uint16
	txShift uint16
	bitCnt  int
	mosiBit bool

	// receive engine
	rxShift uint16
	rxData  uint16
	rxValid bool

	// serial clock generator. clk is the internal polarity-free clock;
	// edge pulses for one cycle on every toggle and edgeDly is edge
	// delayed by a further cycle, timing the receive sampler against the
	// registered SCLK wire.
	div     int
	clk     bool
	edge    bool
	edgeDly bool

	// dead-time counter
	dead int

	out Outputs
}

// NewMaster is the preferred method of initialisation for the Master type.
func NewMaster(spec Spec) (*Master, error) {
	if spec.Width == 0 {
		spec.Width = 8
	}
	if spec.Ratio < minRatio {
		return nil, curated.Errorf(badRatio, minRatio, spec.Ratio)
	}
	if spec.Width < 1 || spec.Width > 16 {
		return nil, curated.Errorf(badWidth, spec.Width)
	}

	mas := &Master{
		ratio:      spec.Ratio,
		width:      spec.Width,
		deadCycles: spec.Ratio / 2,
		mask:       uint16(1)<<spec.Width - 1,
	}
	mas.Reset()

	return mas, nil
}

// Reset the master to its power-on state. Pending configuration is
// forgotten along with any transaction in flight.
func (mas *Master) Reset() {
	mas.pol = false
	mas.pha = false
	lv := edgeTable[0][0]
	mas.launchHigh = lv.launchHigh
	mas.sampleHigh = lv.sampleHigh

	mas.state = Idle
	mas.txLatch = 0
	mas.txShift = 0
	mas.bitCnt = 0
	mas.mosiBit = false
	mas.rxShift = 0
	mas.rxData = 0
	mas.rxValid = false
	mas.div = 0
	mas.clk = false
	mas.edge = false
	mas.edgeDly = false
	mas.dead = 0

	mas.out = Outputs{
		SCLK: mas.pol,
		CSn:  true,
	}
}

// Spec returns the static parameters the master was built with.
func (mas *Master) Spec() Spec {
	return Spec{Ratio: mas.ratio, Width: mas.width}
}

// Mode returns the currently latched SPI mode.
func (mas *Master) Mode() Mode {
	return ModeFor(mas.pol, mas.pha)
}

// State returns the current state of the transaction engine.
func (mas *Master) State() State {
	return mas.state
}

// Busy is true whenever a transaction is in flight. A TxValid strobe
// presented while Busy is true is dropped.
func (mas *Master) Busy() bool {
	return mas.state != Idle
}

// Outputs returns the output signals as they stand after the most recent
// call to Step().
func (mas *Master) Outputs() Outputs {
	return mas.out
}

// Step advances the master by one system clock cycle. Every register update
// below reads the values the registers held at the end of the previous
// cycle, via the snapshot r.
func (mas *Master) Step(in Inputs) {
	r := *mas

	// configuration latch. only while idle so a reconfiguration can never
	// corrupt a transaction in flight.
	if r.state == Idle && in.CfgValid {
		mas.pol = in.CPOL
		mas.pha = in.CPHA
		lv := edgeTable[boolToInt(in.CPOL)][boolToInt(in.CPHA)]
		mas.launchHigh = lv.launchHigh
		mas.sampleHigh = lv.sampleHigh
	}

	// serial clock generator. the divider only runs while bits are being
	// shifted; in every other state the internal clock is pinned low so
	// the SCLK wire rests at the polarity level.
	mas.edge = false
	if r.state == SendBits {
		if r.div == mas.ratio-1 {
			mas.div = 0
			mas.clk = !r.clk
			mas.edge = true
		} else {
			mas.div = r.div + 1
		}
	} else {
		mas.div = 0
		mas.clk = false
	}
	mas.edgeDly = r.edge

	// transmit engine
	switch r.state {
	case Init:
		mas.txShift = r.txLatch & mas.mask
		mas.rxShift = 0
		mas.bitCnt = 0
		if !mas.pha {
			// phase-0 modes present the first bit half a period
			// before the first clock toggle
			mas.mosiBit = mas.txShift&(1<<(mas.width-1)) != 0
			mas.txShift = (mas.txShift << 1) & mas.mask
			mas.bitCnt = 1
		}
	case SendBits:
		if r.edge && r.clk == mas.launchHigh && r.bitCnt < mas.width {
			mas.mosiBit = r.txShift&(1<<(mas.width-1)) != 0
			mas.txShift = (r.txShift << 1) & mas.mask
			mas.bitCnt = r.bitCnt + 1
		}
	}

	// receive engine. sampling trails the clock toggle by two cycles: one
	// for the SCLK output register and one for the slave's own launch
	// register. deliberately not gated on state because for phase-1 modes
	// the final sample lands just inside the dead-time window.
	if r.edgeDly && r.clk == mas.sampleHigh {
		mas.rxShift = (r.rxShift<<1 | miso(in)) & mas.mask
	}

	// dead-time counter
	if r.state == DeadTime {
		mas.dead = r.dead + 1
	} else {
		mas.dead = 0
	}

	// state machine
	switch r.state {
	case Idle:
		if in.TxValid {
			mas.txLatch = in.TxData
			mas.state = Init
		}
	case Init:
		mas.state = SendBits
	case SendBits:
		// the transaction is over on the falling internal toggle
		// after the last bit has been launched
		if r.edge && !r.clk && r.bitCnt == mas.width {
			mas.bitCnt = r.bitCnt + 1
			mas.state = DeadTime
		}
	case DeadTime:
		if r.dead == mas.deadCycles-1 {
			mas.rxData = mas.rxShift
			mas.state = Done
		}
	case Done:
		mas.state = Idle
	}
	mas.rxValid = mas.state == Done

	// registered outputs. chip select covers the whole transaction except
	// the Done cycle; MOSI is only ever driven under chip select. SCLK is
	// mapped from the previous cycle's internal clock, placing the wire
	// edge on the same cycle as the MOSI update it launched.
	selected := mas.state == Init || mas.state == SendBits || mas.state == DeadTime
	mas.out.CSn = !selected
	mas.out.MOSIDriven = selected
	mas.out.MOSI = mas.mosiBit

	if r.state == SendBits || r.state == DeadTime {
		mas.out.SCLK = r.clk != mas.pol
	} else {
		mas.out.SCLK = mas.pol
	}

	mas.out.RxData = mas.rxData
	mas.out.RxValid = mas.rxValid
}

func miso(in Inputs) uint16 {
	if in.MISO {
		return 1
	}
	return 0
}
