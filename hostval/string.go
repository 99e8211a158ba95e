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

package hostval

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/arrowarc/arrowarc/pqerr"
	"github.com/arrowarc/arrowarc/value"
)

// ToString validates hv as UTF-8. Invalid UTF-8 fails with a Conversion
// error; no bytes are ever emitted for it.
func (c *Converter) ToString(path string, hv any) (value.Value, error) {
	s, ok := hv.(string)
	if !ok {
		if b, ok := hv.([]byte); ok {
			s = string(b)
		} else {
			return value.Value{}, convErr(path, fmt.Sprint(hv))
		}
	}
	if !utf8.ValidString(s) {
		return value.Value{}, pqerr.New(pqerr.Conversion, "to_value", path).WithValue(truncate(s))
	}
	return value.String(s), nil
}

// truncate bounds how much of a potentially huge or binary-garbage string
// is echoed into an error message.
func truncate(s string) string {
	const max = 64
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

func (c *Converter) ToBytes(path string, hv any) (value.Value, error) {
	switch b := hv.(type) {
	case []byte:
		return value.Bytes(b), nil
	case string:
		return value.Bytes([]byte(b)), nil
	default:
		return value.Value{}, convErr(path, fmt.Sprint(hv))
	}
}

// ToUUID accepts canonical hyphenated strings, hyphen-free strings, mixed
// case, a uuid.UUID, or a 16-byte slice, normalizing all forms to 16 raw
// bytes.
func (c *Converter) ToUUID(path string, hv any) (value.Value, error) {
	switch u := hv.(type) {
	case uuid.UUID:
		return value.UUID(u), nil
	case [16]byte:
		return value.UUID(uuid.UUID(u)), nil
	case []byte:
		if len(u) != 16 {
			return value.Value{}, convErr(path, fmt.Sprintf("%x", u))
		}
		var id uuid.UUID
		copy(id[:], u)
		return value.UUID(id), nil
	case string:
		normalized := strings.ToLower(strings.TrimSpace(u))
		id, err := uuid.Parse(normalized)
		if err != nil {
			return value.Value{}, pqerr.Wrap(pqerr.Conversion, "to_value", path, err).WithValue(u)
		}
		return value.UUID(id), nil
	default:
		return value.Value{}, convErr(path, fmt.Sprint(hv))
	}
}
