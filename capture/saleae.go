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

package capture

import (
	"os"
	"path/filepath"

	"github.com/hexaflop/gopherboard/curated"
	"github.com/hexaflop/gopherboard/logger"
	"github.com/soypat/saleae"
)

// WriteDir writes the capture as one Saleae Logic 2 binary digital file per
// wire, named after the wire's label. Wires that never transitioned are not
// written (the saleae writer requires at least one data point and the file
// would carry no information anyway).
func (rec *Recorder) WriteDir(dir string) error {
	for _, p := range rec.probes {
		if len(p.transitions) == 0 {
			logger.Logf("capture", "%s: no transitions, not written", p.label)
			continue
		}

		fn := filepath.Join(dir, p.label+".bin")
		f, err := os.Create(fn)
		if err != nil {
			return curated.Errorf("capture: %v", err)
		}

		df := digitalFile(rec, p)
		_, err = df.WriteTo(f)
		if err != nil {
			f.Close()
			return curated.Errorf("capture: %v", err)
		}

		err = f.Close()
		if err != nil {
			return curated.Errorf("capture: %v", err)
		}

		logger.Logf("capture", "%s: %d transitions", fn, len(p.transitions))
	}

	return nil
}

// digitalFile assembles the saleae representation of a single wire.
func digitalFile(rec *Recorder, p *probe) *saleae.DigitalFile {
	initial := uint32(0)
	if p.initial {
		initial = 1
	}

	return &saleae.DigitalFile{
		Header: saleae.DigitalHeader{
			Info: saleae.FileHeader{
				Version: 0,
				Type:    saleae.FileTypeDigital,
			},
			InitialState:   initial,
			Begin:          0,
			End:            rec.Duration(),
			NumTransitions: uint64(len(p.transitions)),
		},
		Data: p.transitions,
	}
}
