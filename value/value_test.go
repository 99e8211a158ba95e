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
	"math"
	"math/big"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/decimal128"
	"github.com/apache/arrow-go/v18/arrow/decimal256"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestScalarAccessorsRoundTrip(t *testing.T) {
	assert.True(t, Null().IsNull())
	assert.Equal(t, KindNull, Null().Kind())

	assert.Equal(t, int64(-7), Int8(-7).Int())
	assert.Equal(t, int64(1000), Int16(1000).Int())
	assert.Equal(t, uint64(42), Uint32(42).Uint())
	assert.Equal(t, "hello", String("hello").String())
	assert.Equal(t, []byte{1, 2, 3}, Bytes([]byte{1, 2, 3}).Bytes())
	assert.True(t, Bool(true).Bool())
}

func TestFloatEqualityTreatsNaNAsEqualToItself(t *testing.T) {
	nan := Float64(math.NaN())
	assert.True(t, nan.Equal(nan))

	posZero := Float64(0)
	negZero := Float64(math.Copysign(0, -1))
	assert.False(t, posZero.Equal(negZero))
}

func TestTimestampEqualityIncludesUTCFlag(t *testing.T) {
	a := TimestampMillis(1000, true)
	b := TimestampMillis(1000, false)
	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(TimestampMillis(1000, true)))
}

func TestDecimalEqualityComparesAcrossWidth(t *testing.T) {
	d128 := decimal128.FromU64(12345)
	d256 := decimal256.FromU64(12345)

	v128 := Decimal128(d128, 2)
	v256 := Decimal256(d256, 2)
	assert.True(t, v128.Equal(v256))

	v256DifferentScale := Decimal256(d256, 3)
	assert.False(t, v128.Equal(v256DifferentScale))
}

func TestBigIntUnscaledReconstructsExactMagnitude(t *testing.T) {
	d, err := decimal128.FromString("123456789.125", 18, 3)
	assert.NoError(t, err)
	v := Decimal128(d, 3)
	assert.Equal(t, big.NewInt(123456789125), v.BigIntUnscaled())
}

func TestUUIDRoundTrip(t *testing.T) {
	id := uuid.New()
	v := UUID(id)
	assert.Equal(t, KindUUID, v.Kind())
	assert.Equal(t, id, v.UUID())
}

func TestListEquality(t *testing.T) {
	a := List([]Value{Int32(1), Int32(2), Null()})
	b := List([]Value{Int32(1), Int32(2), Null()})
	c := List([]Value{Int32(1), Int32(3), Null()})
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestMapPreservesInsertionOrderAndEquality(t *testing.T) {
	m1 := Map([]KV{{Key: String("a"), Value: Int32(1)}, {Key: String("b"), Value: Int32(2)}})
	m2 := Map([]KV{{Key: String("a"), Value: Int32(1)}, {Key: String("b"), Value: Int32(2)}})
	reordered := Map([]KV{{Key: String("b"), Value: Int32(2)}, {Key: String("a"), Value: Int32(1)}})

	assert.True(t, m1.Equal(m2))
	// Equal compares pairs positionally, so reordering is a different Value
	// even though the logical set of pairs is the same.
	assert.False(t, m1.Equal(reordered))
}

func TestRecordFieldLookup(t *testing.T) {
	rec := Record([]Field{
		{Name: "id", Value: Int64(7)},
		{Name: "name", Value: String("ada")},
	})
	v, ok := rec.Field("name")
	assert.True(t, ok)
	assert.Equal(t, "ada", v.String())

	_, ok = rec.Field("missing")
	assert.False(t, ok)
}
