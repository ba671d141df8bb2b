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

// Package logger is the central log for the entire application. Log entries
// are made with the Log() and Logf() functions. Every entry is a (tag,
// detail) pair, the tag identifying the sub-system making the entry.
// An entry that exactly repeats the previous entry folds into it, with a
// repeat count, rather than flooding the log.
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Entry represents a single line/entry in the log.
type Entry struct {
	Timestamp time.Time
	Tag       string
	Detail    string
	Repeated  int
}

func (e Entry) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s: %s", e.Tag, e.Detail))
	if e.Repeated > 0 {
		s.WriteString(fmt.Sprintf(" (repeat x%d)", e.Repeated+1))
	}
	s.WriteString("\n")
	return s.String()
}

// maximum number of entries kept in the central log.
const maxCentral = 256

// only allowing one central log for the entire application. there's no need
// for more than one.
var central struct {
	crit    sync.Mutex
	entries []Entry
	echo    io.Writer
}

// Log adds an entry to the central logger.
func Log(tag, detail string) {
	central.crit.Lock()
	defer central.crit.Unlock()

	// newline characters would break the one-line-per-entry principle
	tag = strings.ReplaceAll(tag, "\n", "")
	detail = strings.ReplaceAll(detail, "\n", "")

	if len(central.entries) > 0 {
		e := &central.entries[len(central.entries)-1]
		if e.Tag == tag && e.Detail == detail {
			e.Repeated++
			e.Timestamp = time.Now()
			return
		}
	}

	e := Entry{Timestamp: time.Now(), Tag: tag, Detail: detail}
	central.entries = append(central.entries, e)

	if len(central.entries) > maxCentral {
		central.entries = central.entries[len(central.entries)-maxCentral:]
	}

	if central.echo != nil {
		io.WriteString(central.echo, e.String())
	}
}

// Logf adds a formatted entry to the central logger.
func Logf(tag, detail string, args ...interface{}) {
	Log(tag, fmt.Sprintf(detail, args...))
}

// Clear all entries from the central logger.
func Clear() {
	central.crit.Lock()
	defer central.crit.Unlock()
	central.entries = central.entries[:0]
}

// SetEcho to echo every new entry to output as it arrives. A nil value
// turns echoing off.
func SetEcho(output io.Writer) {
	central.crit.Lock()
	defer central.crit.Unlock()
	central.echo = output
}

// Write contents of central logger to output. Returns false if log is empty.
func Write(output io.Writer) bool {
	central.crit.Lock()
	defer central.crit.Unlock()

	if len(central.entries) == 0 {
		return false
	}
	for _, e := range central.entries {
		io.WriteString(output, e.String())
	}
	return true
}

// Tail writes the last number of entries to output.
func Tail(output io.Writer, number int) {
	central.crit.Lock()
	defer central.crit.Unlock()

	if number > len(central.entries) {
		number = len(central.entries)
	}
	for _, e := range central.entries[len(central.entries)-number:] {
		io.WriteString(output, e.String())
	}
}
