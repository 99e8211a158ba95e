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

	"github.com/arrowarc/arrowarc/pqerr"
	"github.com/arrowarc/arrowarc/schema"
	"github.com/arrowarc/arrowarc/value"
)

// ToValue converts a host value hv into a Value Model instance matching
// schema node n. path is the dotted field path used in error messages. A nil hv (the Go spelling of the host's "null"/"nil") is
// accepted only when n.Nullable; otherwise it is a Nullability error.
func (c *Converter) ToValue(n schema.Node, path string, hv any) (value.Value, error) {
	if hv == nil {
		if !n.Nullable {
			return value.Value{}, pqerr.New(pqerr.Nullability, "to_value", path)
		}
		return value.Null(), nil
	}

	switch n.Shape {
	case schema.ShapePrimitive:
		return c.toPrimitiveValue(n, path, hv)
	case schema.ShapeList:
		items, ok := hv.([]any)
		if !ok {
			return value.Value{}, convErr(path, fmt.Sprint(hv))
		}
		out := make([]value.Value, len(items))
		for i, item := range items {
			v, err := c.ToValue(*n.Item, schema.FieldPath(path, fmt.Sprintf("[%d]", i)), item)
			if err != nil {
				return value.Value{}, err
			}
			out[i] = v
		}
		return value.List(out), nil
	case schema.ShapeMap:
		pairs, err := c.toOrderedPairs(path, hv)
		if err != nil {
			return value.Value{}, err
		}
		kvs := make([]value.KV, len(pairs))
		for i, p := range pairs {
			k, err := c.ToValue(*n.Key, schema.FieldPath(path, "key"), p.Key)
			if err != nil {
				return value.Value{}, err
			}
			v, err := c.ToValue(*n.Value, schema.FieldPath(path, "value"), p.Value)
			if err != nil {
				return value.Value{}, err
			}
			kvs[i] = value.KV{Key: k, Value: v}
		}
		return value.Map(kvs), nil
	case schema.ShapeStruct:
		fields := make([]value.Field, len(n.Fields))
		for i, nf := range n.Fields {
			child, err := lookupField(hv, nf.Name)
			if err != nil {
				return value.Value{}, convErr(schema.FieldPath(path, nf.Name), fmt.Sprint(hv))
			}
			v, err := c.ToValue(nf.Node, schema.FieldPath(path, nf.Name), child)
			if err != nil {
				return value.Value{}, err
			}
			fields[i] = value.Field{Name: nf.Name, Value: v}
		}
		return value.Record(fields), nil
	default:
		return value.Value{}, pqerr.New(pqerr.Parameter, "to_value", path)
	}
}

func (c *Converter) toPrimitiveValue(n schema.Node, path string, hv any) (value.Value, error) {
	switch n.Primitive {
	case schema.Bool:
		return c.ToBool(path, hv)
	case schema.Int8:
		return c.ToInt(path, hv, 8, true)
	case schema.Int16:
		return c.ToInt(path, hv, 16, true)
	case schema.Int32:
		return c.ToInt(path, hv, 32, true)
	case schema.Int64:
		return c.ToInt(path, hv, 64, true)
	case schema.Uint8:
		return c.ToInt(path, hv, 8, false)
	case schema.Uint16:
		return c.ToInt(path, hv, 16, false)
	case schema.Uint32:
		return c.ToInt(path, hv, 32, false)
	case schema.Uint64:
		return c.ToInt(path, hv, 64, false)
	case schema.Float32:
		return c.ToFloat32(path, hv)
	case schema.Float64:
		return c.ToFloat64(path, hv)
	case schema.Float16:
		return c.ToFloat16(path, hv)
	case schema.String:
		return c.ToString(path, hv)
	case schema.Binary:
		return c.ToBytes(path, hv)
	case schema.Date32:
		return c.ToDate32(path, hv, n)
	case schema.Date64:
		return c.ToDate64(path, hv, n)
	case schema.TimeMillis:
		return c.ToTimeMillis(path, hv, n)
	case schema.TimeMicros:
		return c.ToTimeMicros(path, hv, n)
	case schema.TimestampSecond, schema.TimestampMillis, schema.TimestampMicros, schema.TimestampNanos:
		return c.ToTimestamp(path, hv, n)
	case schema.Decimal:
		return c.ToDecimal(path, hv, n)
	case schema.UUID:
		return c.ToUUID(path, hv)
	default:
		return value.Value{}, pqerr.New(pqerr.Parameter, "to_value", path)
	}
}

// lookupField extracts field name from a struct-shaped host value, which
// may be a map[string]any or an OrderedPairs (field name is compared as a
// string Pair.Key).
func lookupField(hv any, name string) (any, error) {
	switch m := hv.(type) {
	case map[string]any:
		v, ok := m[name]
		if !ok {
			return nil, fmt.Errorf("missing field %q", name)
		}
		return v, nil
	case OrderedPairs:
		for _, p := range m {
			if k, ok := p.Key.(string); ok && k == name {
				return p.Value, nil
			}
		}
		return nil, fmt.Errorf("missing field %q", name)
	default:
		return nil, fmt.Errorf("expected a struct-shaped value, got %T", hv)
	}
}

// toOrderedPairs extracts Map entries from a host value: OrderedPairs
// directly, or a map[string]any (string-keyed convenience form; order is
// not guaranteed to be preserved in that case since Go maps are unordered).
func (c *Converter) toOrderedPairs(path string, hv any) (OrderedPairs, error) {
	switch m := hv.(type) {
	case OrderedPairs:
		return m, nil
	case map[string]any:
		out := make(OrderedPairs, 0, len(m))
		for k, v := range m {
			out = append(out, Pair{Key: k, Value: v})
		}
		return out, nil
	default:
		return nil, convErr(path, fmt.Sprint(hv))
	}
}

// ToHost converts a Value back to a host value, symmetric with ToValue.
func (c *Converter) ToHost(n schema.Node, v value.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	switch v.Kind() {
	case value.KindNull:
		return nil, nil
	case value.KindBool:
		return v.Bool(), nil
	case value.KindInt8:
		return int8(v.Int()), nil
	case value.KindInt16:
		return int16(v.Int()), nil
	case value.KindInt32:
		return int32(v.Int()), nil
	case value.KindInt64:
		return v.Int(), nil
	case value.KindUint8:
		return uint8(v.Uint()), nil
	case value.KindUint16:
		return uint16(v.Uint()), nil
	case value.KindUint32:
		return uint32(v.Uint()), nil
	case value.KindUint64:
		return v.Uint(), nil
	case value.KindFloat16, value.KindFloat32:
		return float32(v.Float()), nil
	case value.KindFloat64:
		return v.Float(), nil
	case value.KindString:
		return c.internOrPlain(v.String()), nil
	case value.KindBytes:
		return v.Bytes(), nil
	case value.KindDate32:
		return DateFromDays(int32(v.Int())), nil
	case value.KindDate64:
		return DateFromMillis(v.Int()), nil
	case value.KindTimeMillis:
		return v.Int(), nil
	case value.KindTimeMicros:
		return v.Int(), nil
	case value.KindTimestampSecond, value.KindTimestampMillis, value.KindTimestampMicros, value.KindTimestampNanos:
		return TimeFromTimestamp(timestampUnitOf(v.Kind()), v.Int()), nil
	case value.KindDecimal128, value.KindDecimal256:
		return decimalToHost(v), nil
	case value.KindUUID:
		return v.UUID(), nil
	case value.KindList:
		items := v.List()
		out := make([]any, len(items))
		for i, item := range items {
			hv, err := c.ToHost(*n.Item, item)
			if err != nil {
				return nil, err
			}
			out[i] = hv
		}
		return out, nil
	case value.KindMap:
		kvs := v.Map()
		out := make(OrderedPairs, len(kvs))
		for i, kv := range kvs {
			k, err := c.ToHost(*n.Key, kv.Key)
			if err != nil {
				return nil, err
			}
			val, err := c.ToHost(*n.Value, kv.Value)
			if err != nil {
				return nil, err
			}
			out[i] = Pair{Key: k, Value: val}
		}
		return out, nil
	case value.KindRecord:
		fields := v.Record()
		out := make(OrderedPairs, len(fields))
		for i, f := range fields {
			childNode := fieldNode(n, f.Name)
			hv, err := c.ToHost(childNode, f.Value)
			if err != nil {
				return nil, err
			}
			out[i] = Pair{Key: f.Name, Value: hv}
		}
		return out, nil
	default:
		return nil, pqerr.New(pqerr.Parameter, "to_host", "")
	}
}

func fieldNode(n schema.Node, name string) schema.Node {
	for _, f := range n.Fields {
		if f.Name == name {
			return f.Node
		}
	}
	return schema.Node{}
}

func timestampUnitOf(k value.Kind) schema.PrimitiveType {
	switch k {
	case value.KindTimestampSecond:
		return schema.TimestampSecond
	case value.KindTimestampMillis:
		return schema.TimestampMillis
	case value.KindTimestampMicros:
		return schema.TimestampMicros
	default:
		return schema.TimestampNanos
	}
}
