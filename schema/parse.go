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
	"strconv"
	"strings"

	"github.com/arrowarc/arrowarc/pqerr"
)

// FieldSpec is one entry of the first user-facing schema form: an ordered
// list of {name: type-spec} pairs, where type-spec is either a bare
// primitive/compound type string or a configuration map.
type FieldSpec struct {
	Name string
	Type string // type-spec string, e.g. "int64", "list<string>", "decimal(10,2)"

	Nullable       *bool // nil means "default" (true, except at the root)
	Format         string
	Precision      *int32
	Scale          *int32
	Timezone       *string // legacy: any non-nil value forces UTC-adjusted
	HasTimezone    *bool   // explicit UTC-adjusted flag; ignored when Timezone is non-nil
	ItemNullable   *bool
	KeyNullable    *bool
	ValueNullable  *bool
}

// LegacyField is the third user-facing form: flat {name, type, nullable}
// triples with no nested configuration.
type LegacyField struct {
	Name     string
	Type     string
	Nullable bool
}

// ParseFields builds the internal schema tree from the configuration-map
// form. The root struct itself is non-nullable; fields default to
// nullable unless the spec says otherwise.
func ParseFields(fields []FieldSpec) (*Node, error) {
	root, err := buildStructFromSpecs(fields, true, "")
	if err != nil {
		return nil, err
	}
	if err := root.Validate(); err != nil {
		return nil, err
	}
	return root, nil
}

// ParseLegacyFields builds the internal schema tree from the legacy flat
// {name, type, nullable} form.
func ParseLegacyFields(fields []LegacyField) (*Node, error) {
	specs := make([]FieldSpec, len(fields))
	for i, f := range fields {
		nullable := f.Nullable
		specs[i] = FieldSpec{Name: f.Name, Type: f.Type, Nullable: &nullable}
	}
	return ParseFields(specs)
}

func buildStructFromSpecs(fields []FieldSpec, isRoot bool, path string) (*Node, error) {
	if isRoot && len(fields) == 0 {
		return nil, pqerr.Msg(pqerr.Schema, "parse_schema", path, "top-level struct must have at least one field")
	}

	named := make([]NamedNode, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, dup := seen[f.Name]; dup {
			return nil, pqerr.Msg(pqerr.Schema, "parse_schema", FieldPath(path, f.Name), "duplicate field name")
		}
		seen[f.Name] = struct{}{}

		defaultNullable := true
		if isRoot {
			// Only the root struct *itself* is forced non-nullable; its
			// fields still default to nullable=true.
			defaultNullable = true
		}
		nullable := defaultNullable
		if f.Nullable != nil {
			nullable = *f.Nullable
		}

		node, err := parseTypeSpec(f.Type, FieldPath(path, f.Name))
		if err != nil {
			return nil, err
		}
		node.Nullable = nullable
		applyOptions(&node, f)

		named = append(named, NamedNode{Name: f.Name, Node: node})
	}

	return &Node{Shape: ShapeStruct, Nullable: !isRoot, Fields: named}, nil
}

// applyOptions layers the configuration-map options on top of
// a type parsed from its type-spec string.
func applyOptions(n *Node, f FieldSpec) {
	if n.Shape == ShapePrimitive {
		if f.Format != "" {
			n.Format = f.Format
		}
		if f.Precision != nil {
			n.Precision = *f.Precision
		}
		if f.Scale != nil {
			n.Scale = *f.Scale
		}
		if n.Primitive == TimestampSecond || n.Primitive == TimestampMillis ||
			n.Primitive == TimestampMicros || n.Primitive == TimestampNanos {
			n.IsAdjustedToUTC = true // has_timezone defaults to true
			if f.HasTimezone != nil {
				n.IsAdjustedToUTC = *f.HasTimezone
			}
			if f.Timezone != nil {
				// Legacy option: any timezone value forces UTC adjustment,
				// even against an explicit has_timezone=false; the offset
				// itself is discarded.
				n.IsAdjustedToUTC = true
			}
		}
	}
	if n.Shape == ShapeList && f.ItemNullable != nil && n.Item != nil {
		n.Item.Nullable = *f.ItemNullable
	}
	if n.Shape == ShapeMap {
		if f.KeyNullable != nil && n.Key != nil {
			n.Key.Nullable = *f.KeyNullable
		}
		if f.ValueNullable != nil && n.Value != nil {
			n.Value.Nullable = *f.ValueNullable
		}
	}
}

// parseTypeSpec parses one type-spec string: bare
// primitive names, decimal(P,S) with the documented default rules, and
// recursive list<T>/map<K,V> compounds. This is the single grammar shared
// by all three front doors.
func parseTypeSpec(spec, path string) (Node, error) {
	s := strings.TrimSpace(spec)
	lower := strings.ToLower(s)

	switch {
	case strings.HasPrefix(lower, "list<") && strings.HasSuffix(s, ">"):
		inner := s[len("list<") : len(s)-1]
		item, err := parseTypeSpec(inner, FieldPath(path, "[]"))
		if err != nil {
			return Node{}, err
		}
		item.Nullable = true
		return Node{Shape: ShapeList, Item: &item}, nil

	case strings.HasPrefix(lower, "map<") && strings.HasSuffix(s, ">"):
		inner := s[len("map<") : len(s)-1]
		k, v, err := splitMapArgs(inner)
		if err != nil {
			return Node{}, pqerr.Msg(pqerr.Schema, "parse_schema", path, err.Error())
		}
		keyNode, err := parseTypeSpec(k, FieldPath(path, "key"))
		if err != nil {
			return Node{}, err
		}
		valNode, err := parseTypeSpec(v, FieldPath(path, "value"))
		if err != nil {
			return Node{}, err
		}
		keyNode.Nullable = false
		valNode.Nullable = true
		return Node{Shape: ShapeMap, Key: &keyNode, Value: &valNode}, nil

	case strings.HasPrefix(lower, "decimal"):
		precision, scale, err := parseDecimalArgs(s)
		if err != nil {
			return Node{}, pqerr.Msg(pqerr.Schema, "parse_schema", path, err.Error())
		}
		return Node{Shape: ShapePrimitive, Primitive: Decimal, Precision: precision, Scale: scale}, nil

	default:
		prim, ok := primitiveFromName(lower)
		if !ok {
			return Node{}, pqerr.Msg(pqerr.Schema, "parse_schema", path, "unknown primitive type: "+spec)
		}
		n := Node{Shape: ShapePrimitive, Primitive: prim}
		if prim == TimestampSecond || prim == TimestampMillis || prim == TimestampMicros || prim == TimestampNanos {
			n.IsAdjustedToUTC = true
		}
		return n, nil
	}
}

func primitiveFromName(lower string) (PrimitiveType, bool) {
	switch lower {
	case "bool", "boolean":
		return Bool, true
	case "int8":
		return Int8, true
	case "int16":
		return Int16, true
	case "int32":
		return Int32, true
	case "int64":
		return Int64, true
	case "uint8":
		return Uint8, true
	case "uint16":
		return Uint16, true
	case "uint32":
		return Uint32, true
	case "uint64":
		return Uint64, true
	case "float", "float32":
		return Float32, true
	case "double", "float64":
		return Float64, true
	case "float16", "half_float":
		return Float16, true
	case "string", "utf8":
		return String, true
	case "binary", "bytes":
		return Binary, true
	case "date32":
		return Date32, true
	case "date64":
		return Date64, true
	case "time_millis":
		return TimeMillis, true
	case "time_micros":
		return TimeMicros, true
	case "timestamp_second", "timestamp_seconds":
		return TimestampSecond, true
	case "timestamp_millis", "timestamp_milli":
		return TimestampMillis, true
	case "timestamp_micros", "timestamp_micro":
		return TimestampMicros, true
	case "timestamp_nanos", "timestamp_nano":
		return TimestampNanos, true
	case "uuid":
		return UUID, true
	default:
		return 0, false
	}
}

// parseDecimalArgs handles "decimal", "decimal(P)", "decimal(P,S)", and
// "decimal(scale=S)" forms with the documented default rules: both omitted
// -> precision 38, scale 0; precision-only -> scale 0; scale-only ->
// precision 38; both -> as given.
func parseDecimalArgs(s string) (precision, scale int32, err error) {
	open := strings.IndexByte(s, '(')
	if open < 0 {
		return 38, 0, nil
	}
	if !strings.HasSuffix(s, ")") {
		return 0, 0, errMalformedDecimal(s)
	}
	inner := strings.TrimSpace(s[open+1 : len(s)-1])
	if inner == "" {
		return 38, 0, nil
	}

	if strings.HasPrefix(inner, "scale=") {
		sc, convErr := strconv.Atoi(strings.TrimPrefix(inner, "scale="))
		if convErr != nil {
			return 0, 0, errMalformedDecimal(s)
		}
		return 38, int32(sc), nil
	}

	parts := strings.Split(inner, ",")
	switch len(parts) {
	case 1:
		p, convErr := strconv.Atoi(strings.TrimSpace(parts[0]))
		if convErr != nil {
			return 0, 0, errMalformedDecimal(s)
		}
		return int32(p), 0, nil
	case 2:
		p, convErr1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		sc, convErr2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		if convErr1 != nil || convErr2 != nil {
			return 0, 0, errMalformedDecimal(s)
		}
		return int32(p), int32(sc), nil
	default:
		return 0, 0, errMalformedDecimal(s)
	}
}

func errMalformedDecimal(s string) error {
	return pqerr.Msg(pqerr.Schema, "parse_schema", "", "malformed decimal type spec: "+s)
}

// splitMapArgs splits "K,V" respecting one level of nested <...>.
func splitMapArgs(inner string) (key, value string, err error) {
	depth := 0
	for i, r := range inner {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				return strings.TrimSpace(inner[:i]), strings.TrimSpace(inner[i+1:]), nil
			}
		}
	}
	return "", "", errMissingMapArgs(inner)
}

func errMissingMapArgs(inner string) error {
	return pqerr.Msg(pqerr.Schema, "parse_schema", "", "map type requires key and value types: map<"+inner+">")
}
