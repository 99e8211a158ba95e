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

// Package value implements the canonical, language-neutral Parquet value
// model: a tagged sum type covering every logical/physical type this engine
// supports, with a dedicated Null variant. Values are ephemeral — constructed
// per-row or per-batch and released when the batch is flushed or yielded;
// they never outlive the enclosing batch iteration.
package value

import (
	"math/big"

	"github.com/apache/arrow-go/v18/arrow/decimal128"
	"github.com/apache/arrow-go/v18/arrow/decimal256"
	"github.com/google/uuid"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat16
	KindFloat32
	KindFloat64
	KindString
	KindBytes
	KindDate32
	KindDate64
	KindTimeMillis
	KindTimeMicros
	KindTimestampSecond
	KindTimestampMillis
	KindTimestampMicros
	KindTimestampNanos
	KindDecimal128
	KindDecimal256
	KindUUID
	KindList
	KindMap
	KindRecord
)

//go:generate stringer -type=Kind

var kindNames = map[Kind]string{
	KindNull: "null", KindBool: "bool",
	KindInt8: "int8", KindInt16: "int16", KindInt32: "int32", KindInt64: "int64",
	KindUint8: "uint8", KindUint16: "uint16", KindUint32: "uint32", KindUint64: "uint64",
	KindFloat16: "float16", KindFloat32: "float32", KindFloat64: "float64",
	KindString: "string", KindBytes: "bytes",
	KindDate32: "date32", KindDate64: "date64",
	KindTimeMillis: "time_millis", KindTimeMicros: "time_micros",
	KindTimestampSecond: "timestamp_second", KindTimestampMillis: "timestamp_millis",
	KindTimestampMicros: "timestamp_micros", KindTimestampNanos: "timestamp_nanos",
	KindDecimal128: "decimal128", KindDecimal256: "decimal256",
	KindUUID: "uuid", KindList: "list", KindMap: "map", KindRecord: "record",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Value is the tagged sum. Exactly one of the typed accessor methods is
// meaningful for a given Kind; callers switch on Kind before reading.
type Value struct {
	kind Kind

	b   bool
	i   int64
	u   uint64
	f   float64 // also carries Float16/Float32 payloads, widened
	s   string
	buf []byte

	dec128   decimal128.Num
	dec256   decimal256.Num
	decScale int32
	id       uuid.UUID

	// isAdjustedToUTC is meaningful only for the Timestamp* kinds.
	isAdjustedToUTC bool

	list   []Value
	kvs    []KV
	fields []Field
}

// KV is one insertion-ordered key/value pair of a Map value.
type KV struct {
	Key   Value
	Value Value
}

// Field is one ordered field-name/value pair of a Record value.
type Field struct {
	Name  string
	Value Value
}

// Null returns the Null variant.
func Null() Value { return Value{kind: KindNull} }

// IsNull reports whether v is the Null variant.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Kind returns v's variant tag.
func (v Value) Kind() Kind { return v.kind }

func Bool(b bool) Value { return Value{kind: KindBool, b: b} }
func (v Value) Bool() bool { return v.b }

func Int8(i int8) Value   { return Value{kind: KindInt8, i: int64(i)} }
func Int16(i int16) Value { return Value{kind: KindInt16, i: int64(i)} }
func Int32(i int32) Value { return Value{kind: KindInt32, i: int64(i)} }
func Int64(i int64) Value { return Value{kind: KindInt64, i: i} }

// Int returns the signed integer payload, valid for any IntN kind.
func (v Value) Int() int64 { return v.i }

func Uint8(u uint8) Value   { return Value{kind: KindUint8, u: uint64(u)} }
func Uint16(u uint16) Value { return Value{kind: KindUint16, u: uint64(u)} }
func Uint32(u uint32) Value { return Value{kind: KindUint32, u: uint64(u)} }
func Uint64(u uint64) Value { return Value{kind: KindUint64, u: u} }

// Uint returns the unsigned integer payload, valid for any UintN kind.
func (v Value) Uint() uint64 { return v.u }

// Float16 is carried as a 32-bit float in memory, widened from the 16-bit
// value read from Arrow; the Arrow bridge refuses to encode it.
func Float16(f float32) Value { return Value{kind: KindFloat16, f: float64(f)} }
func Float32(f float32) Value { return Value{kind: KindFloat32, f: float64(f)} }
func Float64(f float64) Value { return Value{kind: KindFloat64, f: f} }

// Float returns the float payload widened to float64, valid for any
// FloatN kind.
func (v Value) Float() float64 { return v.f }

func String(s string) Value { return Value{kind: KindString, s: s} }
func (v Value) String() string { return v.s }

func Bytes(b []byte) Value { return Value{kind: KindBytes, buf: b} }
func (v Value) Bytes() []byte { return v.buf }

// Date32 holds days since the Unix epoch.
func Date32(days int32) Value { return Value{kind: KindDate32, i: int64(days)} }

// Date64 holds milliseconds since the epoch, at midnight.
func Date64(ms int64) Value { return Value{kind: KindDate64, i: ms} }

// TimeMillis/TimeMicros hold a time-of-day offset from midnight.
func TimeMillis(ms int32) Value { return Value{kind: KindTimeMillis, i: int64(ms)} }
func TimeMicros(us int64) Value { return Value{kind: KindTimeMicros, i: us} }

// TimestampSecond/Millis/Micros/Nanos hold an offset from the Unix epoch,
// parameterized by isAdjustedToUTC per the Parquet logical-type spec.
func TimestampSecond(sec int64, isAdjustedToUTC bool) Value {
	return Value{kind: KindTimestampSecond, i: sec, isAdjustedToUTC: isAdjustedToUTC}
}
func TimestampMillis(ms int64, isAdjustedToUTC bool) Value {
	return Value{kind: KindTimestampMillis, i: ms, isAdjustedToUTC: isAdjustedToUTC}
}
func TimestampMicros(us int64, isAdjustedToUTC bool) Value {
	return Value{kind: KindTimestampMicros, i: us, isAdjustedToUTC: isAdjustedToUTC}
}
func TimestampNanos(ns int64, isAdjustedToUTC bool) Value {
	return Value{kind: KindTimestampNanos, i: ns, isAdjustedToUTC: isAdjustedToUTC}
}

// IsAdjustedToUTC is meaningful only for Timestamp* kinds.
func (v Value) IsAdjustedToUTC() bool { return v.isAdjustedToUTC }

// Decimal128 holds a 128-bit unscaled integer and the scale (number of
// fractional digits) it represents, per Decimal128(i128, scale) in the
// value model.
func Decimal128(d decimal128.Num, scale int32) Value {
	return Value{kind: KindDecimal128, dec128: d, decScale: scale}
}
func (v Value) Decimal128() decimal128.Num { return v.dec128 }

func Decimal256(d decimal256.Num, scale int32) Value {
	return Value{kind: KindDecimal256, dec256: d, decScale: scale}
}
func (v Value) Decimal256() decimal256.Num { return v.dec256 }

// Scale returns the decimal scale, valid for Decimal128/Decimal256 kinds.
func (v Value) Scale() int32 { return v.decScale }

func UUID(id uuid.UUID) Value { return Value{kind: KindUUID, id: id} }
func (v Value) UUID() uuid.UUID { return v.id }

func List(items []Value) Value { return Value{kind: KindList, list: items} }
func (v Value) List() []Value { return v.list }

// Map preserves insertion order; it is represented on disk as a list of
// non-nullable key/value structs.
func Map(kvs []KV) Value { return Value{kind: KindMap, kvs: kvs} }
func (v Value) Map() []KV { return v.kvs }

// Record is an ordered mapping from field name to Value.
func Record(fields []Field) Value { return Value{kind: KindRecord, fields: fields} }
func (v Value) Record() []Field { return v.fields }

// Field looks up a field of a Record value by name, returning (Null, false)
// if absent.
func (v Value) Field(name string) (Value, bool) {
	for _, f := range v.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// BigIntUnscaled returns the unscaled integer magnitude of a Decimal128 or
// Decimal256 value as a *big.Int, for host-side exact reconstruction.
func (v Value) BigIntUnscaled() *big.Int {
	switch v.kind {
	case KindDecimal128:
		return v.dec128.BigInt()
	case KindDecimal256:
		return v.dec256.BigInt()
	default:
		return big.NewInt(0)
	}
}
