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
	"math"

	"github.com/arrowarc/arrowarc/pqerr"
	"github.com/arrowarc/arrowarc/value"
)

// asInt64 normalizes any host numeric kind to an int64, for later range
// checking against a signed declared width.
func asInt64(path string, hv any) (int64, bool, error) {
	switch n := hv.(type) {
	case int:
		return int64(n), true, nil
	case int8:
		return int64(n), true, nil
	case int16:
		return int64(n), true, nil
	case int32:
		return int64(n), true, nil
	case int64:
		return n, true, nil
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false, rangeErr(path, fmt.Sprint(n))
		}
		return int64(n), true, nil
	case uint8:
		return int64(n), true, nil
	case uint16:
		return int64(n), true, nil
	case uint32:
		return int64(n), true, nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, false, rangeErr(path, fmt.Sprint(n))
		}
		return int64(n), true, nil
	case float32:
		if float64(n) != math.Trunc(float64(n)) {
			return 0, false, nil
		}
		return int64(n), true, nil
	case float64:
		if n != math.Trunc(n) {
			return 0, false, nil
		}
		return int64(n), true, nil
	default:
		return 0, false, nil
	}
}

// asUint64 normalizes any host numeric kind to a uint64 for unsigned
// declared widths, so the upper half of the uint64 domain stays
// representable instead of being squeezed through int64. Negative values
// are a Range error.
func asUint64(path string, hv any) (uint64, bool, error) {
	switch n := hv.(type) {
	case uint:
		return uint64(n), true, nil
	case uint8:
		return uint64(n), true, nil
	case uint16:
		return uint64(n), true, nil
	case uint32:
		return uint64(n), true, nil
	case uint64:
		return n, true, nil
	case int:
		if n < 0 {
			return 0, false, rangeErr(path, fmt.Sprint(n))
		}
		return uint64(n), true, nil
	case int8:
		if n < 0 {
			return 0, false, rangeErr(path, fmt.Sprint(n))
		}
		return uint64(n), true, nil
	case int16:
		if n < 0 {
			return 0, false, rangeErr(path, fmt.Sprint(n))
		}
		return uint64(n), true, nil
	case int32:
		if n < 0 {
			return 0, false, rangeErr(path, fmt.Sprint(n))
		}
		return uint64(n), true, nil
	case int64:
		if n < 0 {
			return 0, false, rangeErr(path, fmt.Sprint(n))
		}
		return uint64(n), true, nil
	case float32:
		if float64(n) != math.Trunc(float64(n)) || n < 0 {
			return 0, false, nil
		}
		return uint64(n), true, nil
	case float64:
		if n != math.Trunc(n) || n < 0 {
			return 0, false, nil
		}
		return uint64(n), true, nil
	default:
		return 0, false, nil
	}
}

func rangeErr(path, val string) error {
	return pqerr.New(pqerr.Range, "to_value", path).WithValue(val)
}

func convErr(path, val string) error {
	return pqerr.New(pqerr.Conversion, "to_value", path).WithValue(val)
}

// ToInt coerces hv to an integer of the given bit width and signedness,
// failing with a Range error naming the field path when out of bounds.
func (c *Converter) ToInt(path string, hv any, bits int, signed bool) (value.Value, error) {
	if !signed {
		return c.toUint(path, hv, bits)
	}
	i, ok, err := asInt64(path, hv)
	if err != nil {
		return value.Value{}, err
	}
	if !ok {
		return value.Value{}, convErr(path, fmt.Sprint(hv))
	}

	switch bits {
	case 8:
		if i < math.MinInt8 || i > math.MaxInt8 {
			return value.Value{}, rangeErr(path, fmt.Sprint(i))
		}
		return value.Int8(int8(i)), nil
	case 16:
		if i < math.MinInt16 || i > math.MaxInt16 {
			return value.Value{}, rangeErr(path, fmt.Sprint(i))
		}
		return value.Int16(int16(i)), nil
	case 32:
		if i < math.MinInt32 || i > math.MaxInt32 {
			return value.Value{}, rangeErr(path, fmt.Sprint(i))
		}
		return value.Int32(int32(i)), nil
	case 64:
		return value.Int64(i), nil
	default:
		return value.Value{}, pqerr.New(pqerr.Parameter, "to_value", path)
	}
}

func (c *Converter) toUint(path string, hv any, bits int) (value.Value, error) {
	u, ok, err := asUint64(path, hv)
	if err != nil {
		return value.Value{}, err
	}
	if !ok {
		return value.Value{}, convErr(path, fmt.Sprint(hv))
	}

	switch bits {
	case 8:
		if u > math.MaxUint8 {
			return value.Value{}, rangeErr(path, fmt.Sprint(u))
		}
		return value.Uint8(uint8(u)), nil
	case 16:
		if u > math.MaxUint16 {
			return value.Value{}, rangeErr(path, fmt.Sprint(u))
		}
		return value.Uint16(uint16(u)), nil
	case 32:
		if u > math.MaxUint32 {
			return value.Value{}, rangeErr(path, fmt.Sprint(u))
		}
		return value.Uint32(uint32(u)), nil
	case 64:
		return value.Uint64(u), nil
	default:
		return value.Value{}, pqerr.New(pqerr.Parameter, "to_value", path)
	}
}

// ToFloat32 coerces hv to a 32-bit float, rounding float64 input to the
// nearest representable 32-bit value so no spurious double-precision
// fractional bits reach storage.
func (c *Converter) ToFloat32(path string, hv any) (value.Value, error) {
	switch n := hv.(type) {
	case float32:
		return value.Float32(n), nil
	case float64:
		return value.Float32(float32(n)), nil
	case int:
		return value.Float32(float32(n)), nil
	case int64:
		return value.Float32(float32(n)), nil
	default:
		return value.Value{}, convErr(path, fmt.Sprint(hv))
	}
}

// ToFloat16 coerces hv into a Float16 leaf value (carried as float32 in
// memory). This path exists for read symmetry only; the Arrow bridge
// refuses to encode Float16 on write.
func (c *Converter) ToFloat16(path string, hv any) (value.Value, error) {
	v, err := c.ToFloat32(path, hv)
	if err != nil {
		return value.Value{}, err
	}
	return value.Float16(float32(v.Float())), nil
}

func (c *Converter) ToFloat64(path string, hv any) (value.Value, error) {
	switch n := hv.(type) {
	case float64:
		return value.Float64(n), nil
	case float32:
		return value.Float64(float64(n)), nil
	case int:
		return value.Float64(float64(n)), nil
	case int64:
		return value.Float64(float64(n)), nil
	default:
		return value.Value{}, convErr(path, fmt.Sprint(hv))
	}
}

func (c *Converter) ToBool(path string, hv any) (value.Value, error) {
	b, ok := hv.(bool)
	if !ok {
		return value.Value{}, convErr(path, fmt.Sprint(hv))
	}
	return value.Bool(b), nil
}
