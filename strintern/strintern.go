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

// Package strintern provides a process-wide, opt-in string intern table
// used only at read time: a concurrent mapping returning stable
// references valid for the process's lifetime, shared behind
// package-level funcs.
package strintern

import "sync"

var table sync.Map // string -> *string

// Intern returns a stable *string equal to s. Repeated calls with an equal
// s return the same pointer, so callers that hold on to many repeated
// values (e.g. a low-cardinality string column) can share storage.
func Intern(s string) *string {
	if v, ok := table.Load(s); ok {
		return v.(*string)
	}
	owned := s
	actual, _ := table.LoadOrStore(s, &owned)
	return actual.(*string)
}

// Len reports the number of distinct strings currently interned, used for
// the string-cache summary line the Logger contract documents.
func Len() int {
	n := 0
	table.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Reset clears the intern table. Existing *string handles returned by
// Intern remain valid (Go's GC keeps the backing string alive as long as
// any handle references it); Reset only stops new lookups from reusing
// them.
func Reset() {
	table.Range(func(k, _ any) bool {
		table.Delete(k)
		return true
	})
}
