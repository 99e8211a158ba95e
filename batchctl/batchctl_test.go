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

package batchctl

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arrowarc/arrowarc/schema"
	"github.com/arrowarc/arrowarc/value"
)

func TestNewDefaultsTargetRowsToMinBatchRows(t *testing.T) {
	c := New(Params{})
	assert.Equal(t, 10, c.TargetRows())
}

func TestFixedBatchRowsOverridesAdaptiveSizing(t *testing.T) {
	c := New(Params{FixedBatchRows: 5})
	for i := 0; i < 4; i++ {
		assert.False(t, c.Observe(1000))
	}
	assert.True(t, c.Observe(1000))
}

func TestMemoryThresholdShrinksTargetForWideRows(t *testing.T) {
	c := New(Params{MemoryThreshold: 1000, SampleSize: 4, MinBatchRows: 2})
	for i := 0; i < 10; i++ {
		c.Observe(100)
	}
	assert.LessOrEqual(t, c.TargetRows(), 10)
	assert.GreaterOrEqual(t, c.TargetRows(), 2)
}

func TestShouldFlushOnByteThresholdEvenBelowTargetRows(t *testing.T) {
	c := New(Params{MemoryThreshold: 150, MinBatchRows: 1000})
	assert.False(t, c.Observe(100))
	assert.True(t, c.Observe(100))
}

func TestResetBatchClearsCountersNotReservoir(t *testing.T) {
	c := New(Params{FixedBatchRows: 2})
	c.Observe(10)
	c.Observe(10)
	c.ResetBatch()
	assert.False(t, c.Observe(10))
	assert.Len(t, c.reservoir, 3)
}

func TestEstimateRowSizeRecursesThroughComposites(t *testing.T) {
	n := &schema.Node{
		Shape: schema.ShapeStruct,
		Fields: []schema.NamedNode{
			{Name: "id", Node: schema.Node{Shape: schema.ShapePrimitive, Primitive: schema.Int64}},
			{Name: "name", Node: schema.Node{Shape: schema.ShapePrimitive, Primitive: schema.String}},
		},
	}
	row := value.Record([]value.Field{
		{Name: "id", Value: value.Int64(7)},
		{Name: "name", Value: value.String("ada")},
	})
	// id: 8 bytes, name: len("ada")=3 + 4 overhead = 7
	assert.Equal(t, int64(15), EstimateRowSize(n, row))
}

func TestEstimateRowSizeChargesOneByteForNull(t *testing.T) {
	n := &schema.Node{Shape: schema.ShapePrimitive, Primitive: schema.Int64}
	assert.Equal(t, int64(1), EstimateRowSize(n, value.Null()))
}

func TestValidateRejectsNegativeParams(t *testing.T) {
	assert.Error(t, Validate(Params{MemoryThreshold: -1}))
	assert.Error(t, Validate(Params{SampleSize: -1}))
	assert.Error(t, Validate(Params{MinBatchRows: -1}))
	assert.Error(t, Validate(Params{FixedBatchRows: -1}))
	assert.NoError(t, Validate(Params{}))
}
