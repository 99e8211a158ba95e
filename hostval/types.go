// --------------------------------------------------------------------------------
// Author: Thomas F McGeehan V
//
// This file is part of a software project developed by Thomas F McGeehan V.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//
// For more information about the MIT License, please visit:
// https://opensource.org/licenses/MIT
//
// Acknowledgment appreciated but not required.
// --------------------------------------------------------------------------------

// Package hostval implements the Host Converter: the only component
// that knows about the dynamically-typed host value system. It is not
// thread-safe; a Converter must be used from a single goroutine, the host
// language binding's single execution thread.
package hostval

import "github.com/arrowarc/arrowarc/strintern"

// Pair is one ordered field/value association, used both for Record
// output (field name -> value) and as the element type of an ordered map.
type Pair struct {
	Key   any // string for a Record field name, any Value for a Map key
	Value any
}

// OrderedPairs is a host-side ordered sequence of key/value pairs, the
// canonical representation for both Struct and Map host values. A plain
// map[string]any is also accepted for Struct input since struct field
// order comes from the schema, not from the input; Map input should use
// OrderedPairs when insertion order must be preserved, since a Go map does
// not preserve one.
type OrderedPairs []Pair

// Converter implements host value <-> Value Model conversion.
// It is not safe for concurrent use.
type Converter struct {
	// Intern opts in to interning String values on the read (ToHost)
	// path only.
	Intern bool
}

// NewConverter constructs a Converter. intern opts in to the read-time
// string intern table; it is false by default.
func NewConverter(intern bool) *Converter {
	return &Converter{Intern: intern}
}

func (c *Converter) internOrPlain(s string) any {
	if c.Intern {
		return strintern.Intern(s)
	}
	return s
}
