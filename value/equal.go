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

package value

import (
	"bytes"
	"math"
	"math/big"
)

// floatOrderKey maps a float64 (including NaN and signed zero) onto a
// totally ordered uint64 space, the same bit trick float-ordered sort
// implementations use: flip the sign bit for positive numbers and flip
// every bit for negative numbers. This lets Values holding float leaves be
// used as Map keys or compared deterministically despite NaN != NaN under
// IEEE semantics.
func floatOrderKey(f float64) uint64 {
	bits := math.Float64bits(f)
	if bits&(1<<63) != 0 {
		return ^bits
	}
	return bits | (1 << 63)
}

// Equal reports whether v and o represent the same value under each type's
// documented equivalence: decimals compare by scale and unscaled value
// regardless of in-memory width (so 1.50 at scale 2 and 1.5 at scale 1
// differ), strings by exact bytes, timestamps by (instant, flag),
// UUIDs by 16-byte identity, and floats by total order (so NaN equals NaN
// and +0/-0 are distinct).
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return decimalsEqual(v, o)
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindInt8, KindInt16, KindInt32, KindInt64,
		KindDate32, KindDate64, KindTimeMillis, KindTimeMicros:
		return v.i == o.i
	case KindTimestampSecond, KindTimestampMillis, KindTimestampMicros, KindTimestampNanos:
		return v.i == o.i && v.isAdjustedToUTC == o.isAdjustedToUTC
	case KindUint8, KindUint16, KindUint32, KindUint64:
		return v.u == o.u
	case KindFloat16, KindFloat32, KindFloat64:
		return floatOrderKey(v.f) == floatOrderKey(o.f)
	case KindString:
		return v.s == o.s
	case KindBytes:
		return bytes.Equal(v.buf, o.buf)
	case KindDecimal128, KindDecimal256:
		return v.decScale == o.decScale && decimalBig(v).Cmp(decimalBig(o)) == 0
	case KindUUID:
		return v.id == o.id
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.kvs) != len(o.kvs) {
			return false
		}
		for i := range v.kvs {
			if !v.kvs[i].Key.Equal(o.kvs[i].Key) || !v.kvs[i].Value.Equal(o.kvs[i].Value) {
				return false
			}
		}
		return true
	case KindRecord:
		if len(v.fields) != len(o.fields) {
			return false
		}
		for i := range v.fields {
			if v.fields[i].Name != o.fields[i].Name || !v.fields[i].Value.Equal(o.fields[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// decimalsEqual allows a Decimal128 and Decimal256 with the same scale to
// compare equal by unscaled value when their Kinds differ; this
// supports comparing a written Value against a read-back Value whose
// physical width the schema chose independently of the original variant.
func decimalsEqual(v, o Value) bool {
	vIsDec := v.kind == KindDecimal128 || v.kind == KindDecimal256
	oIsDec := o.kind == KindDecimal128 || o.kind == KindDecimal256
	if !vIsDec || !oIsDec {
		return false
	}
	if v.decScale != o.decScale {
		return false
	}
	return decimalBig(v).Cmp(decimalBig(o)) == 0
}

func decimalBig(v Value) *big.Int {
	switch v.kind {
	case KindDecimal128:
		return v.dec128.BigInt()
	case KindDecimal256:
		return v.dec256.BigInt()
	default:
		return big.NewInt(0)
	}
}

// OrderKey returns a totally ordered uint64 for float-valued Values, usable
// as part of a composite map key when a Value is used as a Map's key slot.
func OrderKey(v Value) uint64 {
	switch v.kind {
	case KindFloat16, KindFloat32, KindFloat64:
		return floatOrderKey(v.f)
	default:
		return 0
	}
}
