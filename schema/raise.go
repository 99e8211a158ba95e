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

package schema

import (
	"github.com/apache/arrow-go/v18/arrow"
)

// FromArrow raises an Arrow schema back into the internal tree, the
// reverse of ToArrow. It is used when a Parquet file's embedded Arrow
// schema (or its pqarrow-derived equivalent) is the only schema source
// available, as in ReadMetadata and every Reader.
func FromArrow(sch *arrow.Schema) *Node {
	fields := make([]NamedNode, sch.NumFields())
	for i, f := range sch.Fields() {
		fields[i] = NamedNode{Name: f.Name, Node: fromArrowField(f)}
	}
	return &Node{Shape: ShapeStruct, Fields: fields}
}

func fromArrowField(f arrow.Field) Node {
	n := fromArrowType(f.Type)
	n.Nullable = f.Nullable
	return n
}

func fromArrowType(t arrow.DataType) Node {
	switch dt := t.(type) {
	case *arrow.StructType:
		fields := make([]NamedNode, dt.NumFields())
		for i, f := range dt.Fields() {
			fields[i] = NamedNode{Name: f.Name, Node: fromArrowField(f)}
		}
		return Node{Shape: ShapeStruct, Fields: fields}
	case *arrow.ListType:
		item := fromArrowField(dt.ElemField())
		return Node{Shape: ShapeList, Item: &item}
	case *arrow.MapType:
		keyField := dt.KeyField()
		valField := dt.ItemField()
		key := fromArrowField(keyField)
		val := fromArrowField(valField)
		return Node{Shape: ShapeMap, Key: &key, Value: &val}
	case *arrow.TimestampType:
		unit := timestampPrimitive(dt.Unit)
		return Node{Shape: ShapePrimitive, Primitive: unit, IsAdjustedToUTC: dt.TimeZone != ""}
	case *arrow.Decimal128Type:
		return Node{Shape: ShapePrimitive, Primitive: Decimal, Precision: dt.Precision, Scale: dt.Scale}
	case *arrow.Decimal256Type:
		return Node{Shape: ShapePrimitive, Primitive: Decimal, Precision: dt.Precision, Scale: dt.Scale}
	case *arrow.FixedSizeBinaryType:
		if dt.ByteWidth == 16 {
			return Node{Shape: ShapePrimitive, Primitive: UUID}
		}
		return Node{Shape: ShapePrimitive, Primitive: Binary}
	default:
		return Node{Shape: ShapePrimitive, Primitive: fromArrowPrimitive(t)}
	}
}

func timestampPrimitive(unit arrow.TimeUnit) PrimitiveType {
	switch unit {
	case arrow.Second:
		return TimestampSecond
	case arrow.Millisecond:
		return TimestampMillis
	case arrow.Microsecond:
		return TimestampMicros
	default:
		return TimestampNanos
	}
}

func fromArrowPrimitive(t arrow.DataType) PrimitiveType {
	switch t.ID() {
	case arrow.BOOL:
		return Bool
	case arrow.INT8:
		return Int8
	case arrow.INT16:
		return Int16
	case arrow.INT32:
		return Int32
	case arrow.INT64:
		return Int64
	case arrow.UINT8:
		return Uint8
	case arrow.UINT16:
		return Uint16
	case arrow.UINT32:
		return Uint32
	case arrow.UINT64:
		return Uint64
	case arrow.FLOAT16:
		return Float16
	case arrow.FLOAT32:
		return Float32
	case arrow.FLOAT64:
		return Float64
	case arrow.STRING, arrow.LARGE_STRING:
		return String
	case arrow.BINARY, arrow.LARGE_BINARY:
		return Binary
	case arrow.DATE32:
		return Date32
	case arrow.DATE64:
		return Date64
	case arrow.TIME32:
		return TimeMillis
	case arrow.TIME64:
		return TimeMicros
	default:
		return String
	}
}
