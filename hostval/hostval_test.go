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
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrowarc/arrowarc/schema"
)

func TestToValueRejectsNilForNonNullableField(t *testing.T) {
	c := NewConverter(false)
	n := schema.Node{Shape: schema.ShapePrimitive, Primitive: schema.Int32, Nullable: false}
	_, err := c.ToValue(n, "x", nil)
	assert.Error(t, err)
}

func TestToValueAcceptsNilForNullableField(t *testing.T) {
	c := NewConverter(false)
	n := schema.Node{Shape: schema.ShapePrimitive, Primitive: schema.Int32, Nullable: true}
	v, err := c.ToValue(n, "x", nil)
	require.NoError(t, err)
	assert.True(t, v.IsNull())
}

func TestIntConversionRejectsOutOfRange(t *testing.T) {
	c := NewConverter(false)
	n := schema.Node{Shape: schema.ShapePrimitive, Primitive: schema.Int8}
	_, err := c.ToValue(n, "x", 1000)
	assert.Error(t, err)
}

func TestUint64AcceptsFullUnsignedRange(t *testing.T) {
	c := NewConverter(false)
	n := schema.Node{Shape: schema.ShapePrimitive, Primitive: schema.Uint64}

	v, err := c.ToValue(n, "x", uint64(math.MaxUint64))
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), v.Uint())

	_, err = c.ToValue(n, "x", int64(-1))
	assert.Error(t, err)
}

func TestStructRoundTripViaOrderedPairsAndMap(t *testing.T) {
	c := NewConverter(false)
	n := schema.Node{
		Shape: schema.ShapeStruct,
		Fields: []schema.NamedNode{
			{Name: "id", Node: schema.Node{Shape: schema.ShapePrimitive, Primitive: schema.Int64}},
			{Name: "name", Node: schema.Node{Shape: schema.ShapePrimitive, Primitive: schema.String, Nullable: true}},
		},
	}

	v, err := c.ToValue(n, "", map[string]any{"id": int64(7), "name": "ada"})
	require.NoError(t, err)

	host, err := c.ToHost(n, v)
	require.NoError(t, err)
	pairs, ok := host.(OrderedPairs)
	require.True(t, ok)
	assert.Equal(t, "id", pairs[0].Key)
	assert.Equal(t, int64(7), pairs[0].Value)
	assert.Equal(t, "ada", pairs[1].Value)
}

func TestToTimestampUTCAdjustedNormalizesZone(t *testing.T) {
	c := NewConverter(false)
	n := schema.Node{Shape: schema.ShapePrimitive, Primitive: schema.TimestampMillis, IsAdjustedToUTC: true}

	loc := time.FixedZone("TEST+2", 2*60*60)
	local := time.Date(2024, 1, 1, 10, 0, 0, 0, loc) // 08:00 UTC

	v, err := c.ToValue(n, "", local)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC).UnixMilli(), v.Int())
}

func TestToTimestampNaiveKeepsWallClockComponents(t *testing.T) {
	c := NewConverter(false)
	n := schema.Node{Shape: schema.ShapePrimitive, Primitive: schema.TimestampMillis, IsAdjustedToUTC: false}

	loc := time.FixedZone("TEST+2", 2*60*60)
	local := time.Date(2024, 1, 1, 10, 0, 0, 0, loc)

	v, err := c.ToValue(n, "", local)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC).UnixMilli(), v.Int())
}

func TestDecimalRescalesWithHalfEvenRounding(t *testing.T) {
	c := NewConverter(false)
	n := schema.Node{Shape: schema.ShapePrimitive, Primitive: schema.Decimal, Precision: 10, Scale: 2}

	v, err := c.ToValue(n, "", "1.005")
	require.NoError(t, err)
	host, err := c.ToHost(n, v)
	require.NoError(t, err)
	d, ok := host.(decimal.Decimal)
	require.True(t, ok)
	assert.Equal(t, "1.00", d.StringFixed(2))
	assert.True(t, d.Equal(decimal.New(100, -2)))
}

func TestInternReturnsStableStringOnRead(t *testing.T) {
	c := NewConverter(true)
	n := schema.Node{Shape: schema.ShapePrimitive, Primitive: schema.String}

	v, err := c.ToValue(n, "", "shared")
	require.NoError(t, err)
	h1, err := c.ToHost(n, v)
	require.NoError(t, err)
	h2, err := c.ToHost(n, v)
	require.NoError(t, err)

	p1, ok := h1.(*string)
	require.True(t, ok)
	p2, ok := h2.(*string)
	require.True(t, ok)
	assert.Same(t, p1, p2)
}
