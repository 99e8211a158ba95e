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
	"github.com/google/uuid"

	"github.com/arrowarc/arrowarc/pqerr"
	"github.com/arrowarc/arrowarc/schema"
	"github.com/arrowarc/arrowarc/value"
)

// ReadValue reads row i of arr as a Value, interpreting it according to n.
func ReadValue(arr arrow.Array, n schema.Node, row int) (value.Value, error) {
	if arr.IsNull(row) {
		return value.Null(), nil
	}
	switch n.Shape {
	case schema.ShapeStruct:
		return readStruct(arr, n, row)
	case schema.ShapeList:
		return readList(arr, n, row)
	case schema.ShapeMap:
		return readMap(arr, n, row)
	default:
		return readPrimitive(arr, n, row)
	}
}

func readStruct(arr arrow.Array, n schema.Node, row int) (value.Value, error) {
	sa, ok := arr.(*array.Struct)
	if !ok {
		return value.Value{}, pqerr.New(pqerr.Parameter, "read_value", "").WithValue(fmt.Sprintf("expected *array.Struct, got %T", arr))
	}
	fields := make([]value.Field, len(n.Fields))
	for i, nf := range n.Fields {
		v, err := ReadValue(sa.Field(i), nf.Node, row)
		if err != nil {
			return value.Value{}, err
		}
		fields[i] = value.Field{Name: nf.Name, Value: v}
	}
	return value.Record(fields), nil
}

func readList(arr arrow.Array, n schema.Node, row int) (value.Value, error) {
	la, ok := arr.(*array.List)
	if !ok {
		return value.Value{}, pqerr.New(pqerr.Parameter, "read_value", "").WithValue(fmt.Sprintf("expected *array.List, got %T", arr))
	}
	start, end := la.ValueOffsets(row)
	items := make([]value.Value, 0, end-start)
	values := la.ListValues()
	for i := start; i < end; i++ {
		v, err := ReadValue(values, *n.Item, int(i))
		if err != nil {
			return value.Value{}, err
		}
		items = append(items, v)
	}
	return value.List(items), nil
}

func readMap(arr arrow.Array, n schema.Node, row int) (value.Value, error) {
	ma, ok := arr.(*array.Map)
	if !ok {
		return value.Value{}, pqerr.New(pqerr.Parameter, "read_value", "").WithValue(fmt.Sprintf("expected *array.Map, got %T", arr))
	}
	start, end := ma.ValueOffsets(row)
	keys := ma.Keys()
	items := ma.Items()
	kvs := make([]value.KV, 0, end-start)
	for i := start; i < end; i++ {
		k, err := ReadValue(keys, *n.Key, int(i))
		if err != nil {
			return value.Value{}, err
		}
		v, err := ReadValue(items, *n.Value, int(i))
		if err != nil {
			return value.Value{}, err
		}
		kvs = append(kvs, value.KV{Key: k, Value: v})
	}
	return value.Map(kvs), nil
}

func readPrimitive(arr arrow.Array, n schema.Node, row int) (value.Value, error) {
	switch n.Primitive {
	case schema.Bool:
		return value.Bool(arr.(*array.Boolean).Value(row)), nil
	case schema.Int8:
		return value.Int8(arr.(*array.Int8).Value(row)), nil
	case schema.Int16:
		return value.Int16(arr.(*array.Int16).Value(row)), nil
	case schema.Int32:
		return value.Int32(arr.(*array.Int32).Value(row)), nil
	case schema.Int64:
		return value.Int64(arr.(*array.Int64).Value(row)), nil
	case schema.Uint8:
		return value.Uint8(arr.(*array.Uint8).Value(row)), nil
	case schema.Uint16:
		return value.Uint16(arr.(*array.Uint16).Value(row)), nil
	case schema.Uint32:
		return value.Uint32(arr.(*array.Uint32).Value(row)), nil
	case schema.Uint64:
		return value.Uint64(arr.(*array.Uint64).Value(row)), nil
	case schema.Float32:
		return value.Float32(arr.(*array.Float32).Value(row)), nil
	case schema.Float64:
		return value.Float64(arr.(*array.Float64).Value(row)), nil
	case schema.Float16:
		return value.Float16(arr.(*array.Float16).Value(row).Float32()), nil
	case schema.String:
		return value.String(arr.(*array.String).Value(row)), nil
	case schema.Binary:
		return value.Bytes(arr.(*array.Binary).Value(row)), nil
	case schema.Date32:
		return value.Date32(int32(arr.(*array.Date32).Value(row))), nil
	case schema.Date64:
		return value.Date64(int64(arr.(*array.Date64).Value(row))), nil
	case schema.TimeMillis:
		return value.TimeMillis(int32(arr.(*array.Time32).Value(row))), nil
	case schema.TimeMicros:
		return value.TimeMicros(int64(arr.(*array.Time64).Value(row))), nil
	case schema.TimestampSecond, schema.TimestampMillis, schema.TimestampMicros, schema.TimestampNanos:
		ts := int64(arr.(*array.Timestamp).Value(row))
		return makeTimestampValue(n.Primitive, ts, n.IsAdjustedToUTC), nil
	case schema.UUID:
		raw := arr.(*array.FixedSizeBinary).Value(row)
		id, err := uuid.FromBytes(raw)
		if err != nil {
			return value.Value{}, pqerr.Wrap(pqerr.Conversion, "read_value", "", err)
		}
		return value.UUID(id), nil
	case schema.Decimal:
		if n.DecimalPhysicalWidth() <= 128 {
			return value.Decimal128(arr.(*array.Decimal128).Value(row), n.Scale), nil
		}
		return value.Decimal256(arr.(*array.Decimal256).Value(row), n.Scale), nil
	default:
		return value.Value{}, pqerr.New(pqerr.Parameter, "read_value", "").WithValue(fmt.Sprintf("unsupported primitive %s", n.Primitive))
	}
}

func makeTimestampValue(unit schema.PrimitiveType, epoch int64, utc bool) value.Value {
	switch unit {
	case schema.TimestampSecond:
		return value.TimestampSecond(epoch, utc)
	case schema.TimestampMillis:
		return value.TimestampMillis(epoch, utc)
	case schema.TimestampMicros:
		return value.TimestampMicros(epoch, utc)
	default:
		return value.TimestampNanos(epoch, utc)
	}
}
