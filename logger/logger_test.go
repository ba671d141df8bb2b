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

package logger_test

import (
	"strings"
	"testing"

	"github.com/hexaflop/gopherboard/logger"
	"github.com/hexaflop/gopherboard/test"
)

func TestLogger(t *testing.T) {
	logger.Clear()

	s := &strings.Builder{}
	test.ExpectedFailure(t, logger.Write(s))

	logger.Log("test", "this is a test")
	test.ExpectedSuccess(t, logger.Write(s))
	test.Equate(t, s.String(), "test: this is a test\n")
}

func TestRepeatFolding(t *testing.T) {
	logger.Clear()

	logger.Log("spi", "dropped byte strobe")
	logger.Log("spi", "dropped byte strobe")
	logger.Log("spi", "dropped byte strobe")

	s := &strings.Builder{}
	logger.Write(s)
	test.Equate(t, s.String(), "spi: dropped byte strobe (repeat x3)\n")
}

func TestTail(t *testing.T) {
	logger.Clear()

	logger.Log("test", "one")
	logger.Log("test", "two")
	logger.Log("test", "three")

	s := &strings.Builder{}
	logger.Tail(s, 2)
	test.Equate(t, s.String(), "test: two\ntest: three\n")
}
