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

package arrowbridge

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrowarc/arrowarc/schema"
	"github.com/arrowarc/arrowarc/value"
)

func testRoot(t *testing.T) *schema.Node {
	root, err := schema.ParseFields([]schema.FieldSpec{
		{Name: "id", Type: "int64", Nullable: boolPtr(false)},
		{Name: "name", Type: "string", Nullable: boolPtr(true)},
		{Name: "tags", Type: "list<string>"},
	})
	require.NoError(t, err)
	return root
}

func boolPtr(b bool) *bool { return &b }

func TestBuildRecordAndRecordToValuesRoundTrip(t *testing.T) {
	root := testRoot(t)
	rows := []value.Value{
		value.Record([]value.Field{
			{Name: "id", Value: value.Int64(1)},
			{Name: "name", Value: value.String("ada")},
			{Name: "tags", Value: value.List([]value.Value{value.String("a"), value.String("b")})},
		}),
		value.Record([]value.Field{
			{Name: "id", Value: value.Int64(2)},
			{Name: "name", Value: value.Null()},
			{Name: "tags", Value: value.List(nil)},
		}),
	}

	rec, err := BuildRecord(memory.DefaultAllocator, root, rows)
	require.NoError(t, err)
	defer rec.Release()

	assert.EqualValues(t, 2, rec.NumRows())

	back, err := RecordToValues(root, rec)
	require.NoError(t, err)
	require.Len(t, back, 2)

	id0, ok := back[0].Field("id")
	require.True(t, ok)
	assert.Equal(t, int64(1), id0.Int())

	name1, ok := back[1].Field("name")
	require.True(t, ok)
	assert.True(t, name1.IsNull())

	tags0, ok := back[0].Field("tags")
	require.True(t, ok)
	assert.Len(t, tags0.List(), 2)
	assert.Equal(t, "a", tags0.List()[0].String())
}

func TestAppendValueRejectsNullForNonNullableField(t *testing.T) {
	root := testRoot(t)
	rows := []value.Value{
		value.Record([]value.Field{
			{Name: "id", Value: value.Null()},
			{Name: "name", Value: value.String("x")},
			{Name: "tags", Value: value.List(nil)},
		}),
	}
	_, err := BuildRecord(memory.DefaultAllocator, root, rows)
	assert.Error(t, err)
}
