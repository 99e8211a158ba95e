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

package arrowbridge

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/arrowarc/arrowarc/pqerr"
	"github.com/arrowarc/arrowarc/schema"
	"github.com/arrowarc/arrowarc/value"
)

func appendPrimitive(bldr array.Builder, n schema.Node, v value.Value) error {
	switch n.Primitive {
	case schema.Bool:
		bldr.(*array.BooleanBuilder).Append(v.Bool())
	case schema.Int8:
		bldr.(*array.Int8Builder).Append(int8(v.Int()))
	case schema.Int16:
		bldr.(*array.Int16Builder).Append(int16(v.Int()))
	case schema.Int32:
		bldr.(*array.Int32Builder).Append(int32(v.Int()))
	case schema.Int64:
		bldr.(*array.Int64Builder).Append(v.Int())
	case schema.Uint8:
		bldr.(*array.Uint8Builder).Append(uint8(v.Uint()))
	case schema.Uint16:
		bldr.(*array.Uint16Builder).Append(uint16(v.Uint()))
	case schema.Uint32:
		bldr.(*array.Uint32Builder).Append(uint32(v.Uint()))
	case schema.Uint64:
		bldr.(*array.Uint64Builder).Append(v.Uint())
	case schema.Float32:
		bldr.(*array.Float32Builder).Append(float32(v.Float()))
	case schema.Float64:
		bldr.(*array.Float64Builder).Append(v.Float())
	case schema.Float16:
		// Float16 is read-only: a Float16 Value (whether coerced by
		// hostval.ToFloat16 or built directly) is refused here.
		return pqerr.New(pqerr.Parameter, "append_value", "").WithValue("float16 values cannot be written")
	case schema.String:
		bldr.(*array.StringBuilder).Append(v.String())
	case schema.Binary:
		bldr.(*array.BinaryBuilder).Append(v.Bytes())
	case schema.Date32:
		bldr.(*array.Date32Builder).Append(arrow.Date32(v.Int()))
	case schema.Date64:
		bldr.(*array.Date64Builder).Append(arrow.Date64(v.Int()))
	case schema.TimeMillis:
		bldr.(*array.Time32Builder).Append(arrow.Time32(v.Int()))
	case schema.TimeMicros:
		bldr.(*array.Time64Builder).Append(arrow.Time64(v.Int()))
	case schema.TimestampSecond, schema.TimestampMillis, schema.TimestampMicros, schema.TimestampNanos:
		bldr.(*array.TimestampBuilder).Append(arrow.Timestamp(v.Int()))
	case schema.UUID:
		id := v.UUID()
		bldr.(*array.FixedSizeBinaryBuilder).Append(id[:])
	case schema.Decimal:
		if n.DecimalPhysicalWidth() <= 128 {
			bldr.(*array.Decimal128Builder).Append(v.Decimal128())
		} else {
			bldr.(*array.Decimal256Builder).Append(v.Decimal256())
		}
	default:
		return pqerr.New(pqerr.Parameter, "append_value", "").WithValue(fmt.Sprintf("unsupported primitive %s", n.Primitive))
	}
	return nil
}
