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

// Package test contains helper functions to remove common boilerplate from
// package tests.
//
// Equate tests two values for equality, allowing a literal int where the
// tested value is an unsigned integer type; this keeps tables of expected
// register values readable.
//
// The ExpectedFailure and ExpectedSuccess functions test a bool or an error
// for failure or success. A nil value is treated as a success, consistent
// with how a nil error indicates no error.
package test
