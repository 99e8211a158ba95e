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

// ToArrow lowers an internal schema tree to an Arrow schema, the
// representation the Arrow Bridge and pqarrow's writer/reader operate on.
func ToArrow(root *Node) *arrow.Schema {
	fields := make([]arrow.Field, len(root.Fields))
	for i, f := range root.Fields {
		fields[i] = toArrowField(f.Name, f.Node)
	}
	return arrow.NewSchema(fields, nil)
}

func toArrowField(name string, n Node) arrow.Field {
	return arrow.Field{Name: name, Type: toArrowType(n), Nullable: n.Nullable}
}

func toArrowType(n Node) arrow.DataType {
	switch n.Shape {
	case ShapeStruct:
		fields := make([]arrow.Field, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = toArrowField(f.Name, f.Node)
		}
		return arrow.StructOf(fields...)
	case ShapeList:
		return arrow.ListOfField(toArrowField("item", *n.Item))
	case ShapeMap:
		// Arrow's map type fixes key non-null and value nullable; the
		// engine's own Node drives null enforcement, so a value_nullable
		// override still holds on the write path.
		mapType := arrow.MapOf(toArrowType(*n.Key), toArrowType(*n.Value))
		mapType.KeysSorted = false
		return mapType
	default:
		return toArrowPrimitive(n)
	}
}

func toArrowPrimitive(n Node) arrow.DataType {
	switch n.Primitive {
	case Bool:
		return arrow.FixedWidthTypes.Boolean
	case Int8:
		return arrow.PrimitiveTypes.Int8
	case Int16:
		return arrow.PrimitiveTypes.Int16
	case Int32:
		return arrow.PrimitiveTypes.Int32
	case Int64:
		return arrow.PrimitiveTypes.Int64
	case Uint8:
		return arrow.PrimitiveTypes.Uint8
	case Uint16:
		return arrow.PrimitiveTypes.Uint16
	case Uint32:
		return arrow.PrimitiveTypes.Uint32
	case Uint64:
		return arrow.PrimitiveTypes.Uint64
	case Float16:
		return arrow.FixedWidthTypes.Float16
	case Float32:
		return arrow.PrimitiveTypes.Float32
	case Float64:
		return arrow.PrimitiveTypes.Float64
	case String:
		return arrow.BinaryTypes.String
	case Binary:
		return arrow.BinaryTypes.Binary
	case Date32:
		return arrow.FixedWidthTypes.Date32
	case Date64:
		return arrow.FixedWidthTypes.Date64
	case TimeMillis:
		return arrow.FixedWidthTypes.Time32ms
	case TimeMicros:
		return arrow.FixedWidthTypes.Time64us
	case TimestampSecond:
		return timestampType(arrow.Second, n.IsAdjustedToUTC)
	case TimestampMillis:
		return timestampType(arrow.Millisecond, n.IsAdjustedToUTC)
	case TimestampMicros:
		return timestampType(arrow.Microsecond, n.IsAdjustedToUTC)
	case TimestampNanos:
		return timestampType(arrow.Nanosecond, n.IsAdjustedToUTC)
	case UUID:
		return &arrow.FixedSizeBinaryType{ByteWidth: 16}
	case Decimal:
		// The value model carries only Decimal128/Decimal256 variants;
		// precisions that Parquet would store as INT32/INT64 (<=9, <=18)
		// are still exchanged through Arrow's Decimal128 array so a single
		// bridge code path covers every precision.
		if n.DecimalPhysicalWidth() <= 128 {
			return &arrow.Decimal128Type{Precision: n.Precision, Scale: n.Scale}
		}
		return &arrow.Decimal256Type{Precision: n.Precision, Scale: n.Scale}
	default:
		return arrow.Null
	}
}

// timestampType builds an Arrow timestamp type. A UTC-adjusted timestamp
// carries "UTC" as its Arrow timezone so downstream Arrow tooling treats it
// as an instant; a naive timestamp carries no timezone, matching the
// Parquet is_adjusted_to_utc=false semantics.
func timestampType(unit arrow.TimeUnit, isAdjustedToUTC bool) *arrow.TimestampType {
	if isAdjustedToUTC {
		return &arrow.TimestampType{Unit: unit, TimeZone: "UTC"}
	}
	return &arrow.TimestampType{Unit: unit}
}
