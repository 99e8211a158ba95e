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

// Package schema implements the internal schema tree and the parsers that
// build it from the three equivalent user-facing representations. Schema
// nodes are immutable once parsed.
package schema

import "github.com/arrowarc/arrowarc/pqerr"

// PrimitiveType enumerates the primitive leaf types the grammar recognizes.
type PrimitiveType int

const (
	Bool PrimitiveType = iota
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
	Float16
	String
	Binary
	Date32
	Date64
	TimeMillis
	TimeMicros
	TimestampSecond
	TimestampMillis
	TimestampMicros
	TimestampNanos
	Decimal
	UUID
)

var primitiveNames = map[PrimitiveType]string{
	Bool: "bool", Int8: "int8", Int16: "int16", Int32: "int32", Int64: "int64",
	Uint8: "uint8", Uint16: "uint16", Uint32: "uint32", Uint64: "uint64",
	Float32: "float32", Float64: "float64", Float16: "float16",
	String: "string", Binary: "binary",
	Date32: "date32", Date64: "date64",
	TimeMillis: "time_millis", TimeMicros: "time_micros",
	TimestampSecond: "timestamp_second", TimestampMillis: "timestamp_millis",
	TimestampMicros: "timestamp_micros", TimestampNanos: "timestamp_nanos",
	Decimal: "decimal", UUID: "uuid",
}

func (p PrimitiveType) String() string {
	if s, ok := primitiveNames[p]; ok {
		return s
	}
	return "unknown"
}

// Shape identifies whether a Node is a leaf or one of the composite shapes.
type Shape int

const (
	ShapePrimitive Shape = iota
	ShapeStruct
	ShapeList
	ShapeMap
)

// Node is one node of the immutable internal schema tree.
type Node struct {
	Shape    Shape
	Nullable bool

	// Primitive fields, meaningful when Shape == ShapePrimitive.
	Primitive PrimitiveType
	Format    string // parse/format string for date/timestamp strings
	Precision int32  // decimal precision, 1..76
	Scale     int32  // decimal scale, 0..Precision

	// IsAdjustedToUTC is meaningful for TimestampX leaves: true for a
	// UTC-adjusted instant, false for a naive wall-clock value.
	IsAdjustedToUTC bool

	// Struct fields, meaningful when Shape == ShapeStruct.
	Fields []NamedNode

	// List fields, meaningful when Shape == ShapeList.
	Item *Node

	// Map fields, meaningful when Shape == ShapeMap.
	Key   *Node
	Value *Node
}

// NamedNode pairs a field name with its schema, preserving declaration order.
type NamedNode struct {
	Name string
	Node Node
}

// FieldPath formats a dotted path for error messages.
func FieldPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// Validate walks the tree enforcing the structural invariants: unique field
// names per struct level, decimal precision/scale bounds, and (at the
// root) a non-empty, non-nullable struct.
func (n *Node) Validate() error {
	if n.Shape != ShapeStruct {
		return pqerr.Msg(pqerr.Schema, "validate_schema", "", "root schema must be a struct")
	}
	if n.Nullable {
		return pqerr.Msg(pqerr.Schema, "validate_schema", "", "root schema must not be nullable")
	}
	if len(n.Fields) == 0 {
		return pqerr.Msg(pqerr.Schema, "validate_schema", "", "root schema must have at least one field")
	}
	return n.validate("")
}

func (n *Node) validate(path string) error {
	switch n.Shape {
	case ShapePrimitive:
		if n.Primitive == Decimal {
			if n.Precision < 1 || n.Precision > 76 {
				return pqerr.Msg(pqerr.Schema, "validate_schema", path, "decimal precision must be in [1,76]")
			}
			if n.Scale < 0 || n.Scale > n.Precision {
				return pqerr.Msg(pqerr.Schema, "validate_schema", path, "decimal scale must be in [0,precision]")
			}
		}
		return nil
	case ShapeStruct:
		seen := make(map[string]struct{}, len(n.Fields))
		for _, f := range n.Fields {
			if _, dup := seen[f.Name]; dup {
				return pqerr.Msg(pqerr.Schema, "validate_schema", FieldPath(path, f.Name), "duplicate field name")
			}
			seen[f.Name] = struct{}{}
			child := f.Node
			if err := child.validate(FieldPath(path, f.Name)); err != nil {
				return err
			}
		}
		return nil
	case ShapeList:
		if n.Item == nil {
			return pqerr.Msg(pqerr.Schema, "validate_schema", path, "list requires an item type")
		}
		return n.Item.validate(FieldPath(path, "[]"))
	case ShapeMap:
		if n.Key == nil || n.Value == nil {
			return pqerr.Msg(pqerr.Schema, "validate_schema", path, "map requires key and value types")
		}
		if n.Key.Nullable {
			return pqerr.Msg(pqerr.Schema, "validate_schema", path, "map keys must not be nullable")
		}
		if err := n.Key.validate(FieldPath(path, "key")); err != nil {
			return err
		}
		return n.Value.validate(FieldPath(path, "value"))
	default:
		return pqerr.Msg(pqerr.Schema, "validate_schema", path, "unknown node shape")
	}
}

// DecimalPhysicalWidth returns the physical storage Parquet uses for this
// decimal's precision: <=9 -> 32 bits, <=18 -> 64 bits,
// <=38 -> 128 bits, else 256 bits.
func (n *Node) DecimalPhysicalWidth() int {
	switch {
	case n.Precision <= 9:
		return 32
	case n.Precision <= 18:
		return 64
	case n.Precision <= 38:
		return 128
	default:
		return 256
	}
}
