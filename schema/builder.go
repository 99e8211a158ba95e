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

import "github.com/arrowarc/arrowarc/pqerr"

// Builder implements the second user-facing schema form: a
// builder-style declaration that produces the same internal tree as
// ParseFields, with explicit helpers for struct/list/map nesting and
// nullability.
type Builder struct {
	fields []NamedNode
	err    error
}

// NewBuilder starts a new root struct declaration.
func NewBuilder() *Builder { return &Builder{} }

func (b *Builder) add(name string, n Node) *Builder {
	if b.err != nil {
		return b
	}
	b.fields = append(b.fields, NamedNode{Name: name, Node: n})
	return b
}

// Field appends a field built from a type-spec string (reusing the same
// grammar as the other two forms, so list<T> and map<K,V> are accepted),
// with the given nullability.
func (b *Builder) Field(name, typeSpec string, nullable bool) *Builder {
	if b.err != nil {
		return b
	}
	n, err := parseTypeSpec(typeSpec, name)
	if err != nil {
		b.err = err
		return b
	}
	n.Nullable = nullable
	return b.add(name, n)
}

// Decimal appends a decimal field with explicit precision and scale.
func (b *Builder) Decimal(name string, precision, scale int32, nullable bool) *Builder {
	return b.add(name, Node{Shape: ShapePrimitive, Primitive: Decimal, Precision: precision, Scale: scale, Nullable: nullable})
}

// Timestamp appends a timestamp field of the given unit.
func (b *Builder) Timestamp(name string, unit PrimitiveType, isAdjustedToUTC, nullable bool) *Builder {
	return b.add(name, Node{Shape: ShapePrimitive, Primitive: unit, IsAdjustedToUTC: isAdjustedToUTC, Nullable: nullable})
}

// Struct appends a nested struct field, declared via a sub-builder.
func (b *Builder) Struct(name string, nullable bool, build func(*Builder)) *Builder {
	if b.err != nil {
		return b
	}
	sub := NewBuilder()
	build(sub)
	if sub.err != nil {
		b.err = sub.err
		return b
	}
	return b.add(name, Node{Shape: ShapeStruct, Nullable: nullable, Fields: sub.fields})
}

// List appends a list field whose item type is built by itemBuild.
func (b *Builder) List(name string, nullable, itemNullable bool, itemBuild func(*Builder)) *Builder {
	if b.err != nil {
		return b
	}
	item := singleFieldNode(itemBuild, &b.err)
	if b.err != nil {
		return b
	}
	item.Nullable = itemNullable
	return b.add(name, Node{Shape: ShapeList, Nullable: nullable, Item: item})
}

// Map appends a map field. Key and value item types are declared the same
// way as List's item type.
func (b *Builder) Map(name string, nullable, keyNullable, valueNullable bool, keyBuild, valueBuild func(*Builder)) *Builder {
	if b.err != nil {
		return b
	}
	key := singleFieldNode(keyBuild, &b.err)
	val := singleFieldNode(valueBuild, &b.err)
	if b.err != nil {
		return b
	}
	key.Nullable = keyNullable
	val.Nullable = valueNullable
	return b.add(name, Node{Shape: ShapeMap, Nullable: nullable, Key: key, Value: val})
}

// singleFieldNode runs build against a throwaway builder expecting exactly
// one field declaration and extracts its Node, used by List/Map to let
// item/key/value types reuse the same Field/Struct/List/Map vocabulary.
func singleFieldNode(build func(*Builder), errOut *error) *Node {
	sub := NewBuilder()
	build(sub)
	if sub.err != nil {
		*errOut = sub.err
		return nil
	}
	if len(sub.fields) != 1 {
		*errOut = errSingleFieldRequired()
		return nil
	}
	n := sub.fields[0].Node
	return &n
}

func errSingleFieldRequired() error {
	return pqerr.Msg(pqerr.Schema, "parse_schema", "", "list/map item declaration must declare exactly one field")
}

// Build finalizes the root struct and validates it.
func (b *Builder) Build() (*Node, error) {
	if b.err != nil {
		return nil, b.err
	}
	root := &Node{Shape: ShapeStruct, Nullable: false, Fields: b.fields}
	if err := root.Validate(); err != nil {
		return nil, err
	}
	return root, nil
}
