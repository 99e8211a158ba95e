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

// Package arrowbridge implements the Arrow Bridge: bidirectional,
// schema-driven conversion between Value Model instances and Arrow arrays.
// It is the one place where Value trees are built from, and turned into,
// Arrow arrays and records.
package arrowbridge

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/arrowarc/arrowarc/pqerr"
	"github.com/arrowarc/arrowarc/schema"
	"github.com/arrowarc/arrowarc/value"
)

// AppendValue appends v to bldr according to n. bldr must have been built
// from schema.ToArrow(n) (or the equivalent single-field type for a nested
// call), so its concrete type always matches n's Shape/Primitive.
func AppendValue(bldr array.Builder, n schema.Node, v value.Value) error {
	if v.IsNull() {
		if !n.Nullable {
			return pqerr.New(pqerr.Nullability, "append_value", "")
		}
		bldr.AppendNull()
		return nil
	}

	switch n.Shape {
	case schema.ShapeStruct:
		return appendStruct(bldr, n, v)
	case schema.ShapeList:
		return appendList(bldr, n, v)
	case schema.ShapeMap:
		return appendMap(bldr, n, v)
	default:
		return appendPrimitive(bldr, n, v)
	}
}

func appendStruct(bldr array.Builder, n schema.Node, v value.Value) error {
	sb, ok := bldr.(*array.StructBuilder)
	if !ok {
		return pqerr.New(pqerr.Parameter, "append_value", "").WithValue(fmt.Sprintf("expected *array.StructBuilder, got %T", bldr))
	}
	sb.Append(true)
	for i, nf := range n.Fields {
		fv, ok := v.Field(nf.Name)
		if !ok {
			fv = value.Null()
		}
		if err := AppendValue(sb.FieldBuilder(i), nf.Node, fv); err != nil {
			return err
		}
	}
	return nil
}

func appendList(bldr array.Builder, n schema.Node, v value.Value) error {
	lb, ok := bldr.(*array.ListBuilder)
	if !ok {
		return pqerr.New(pqerr.Parameter, "append_value", "").WithValue(fmt.Sprintf("expected *array.ListBuilder, got %T", bldr))
	}
	lb.Append(true)
	vb := lb.ValueBuilder()
	for _, item := range v.List() {
		if err := AppendValue(vb, *n.Item, item); err != nil {
			return err
		}
	}
	return nil
}

func appendMap(bldr array.Builder, n schema.Node, v value.Value) error {
	mb, ok := bldr.(*array.MapBuilder)
	if !ok {
		return pqerr.New(pqerr.Parameter, "append_value", "").WithValue(fmt.Sprintf("expected *array.MapBuilder, got %T", bldr))
	}
	mb.Append(true)
	kb := mb.KeyBuilder()
	vb := mb.ItemBuilder()
	for _, kv := range v.Map() {
		if err := AppendValue(kb, *n.Key, kv.Key); err != nil {
			return err
		}
		if err := AppendValue(vb, *n.Value, kv.Value); err != nil {
			return err
		}
	}
	return nil
}

// BuildRecord appends rows (each a Record-shaped Value) into a fresh set of
// builders for schema root and returns the resulting arrow.Record.
func BuildRecord(mem memory.Allocator, root *schema.Node, rows []value.Value) (arrow.Record, error) {
	sch := schema.ToArrow(root)
	bldr := array.NewRecordBuilder(mem, sch)
	defer bldr.Release()

	for _, row := range rows {
		for i, nf := range root.Fields {
			fv, ok := row.Field(nf.Name)
			if !ok {
				fv = value.Null()
			}
			if err := AppendValue(bldr.Field(i), nf.Node, fv); err != nil {
				return nil, err
			}
		}
	}
	return bldr.NewRecord(), nil
}

// RecordToValues reads every row of rec back into Record-shaped Values,
// using root to interpret each column. rec's schema must be the one
// schema.ToArrow(root) produces.
func RecordToValues(root *schema.Node, rec arrow.Record) ([]value.Value, error) {
	n := int(rec.NumRows())
	out := make([]value.Value, n)
	for row := 0; row < n; row++ {
		fields := make([]value.Field, len(root.Fields))
		for i, nf := range root.Fields {
			v, err := ReadValue(rec.Column(i), nf.Node, row)
			if err != nil {
				return nil, err
			}
			fields[i] = value.Field{Name: nf.Name, Value: v}
		}
		out[row] = value.Record(fields)
	}
	return out, nil
}
