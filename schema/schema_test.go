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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFieldsBuildsStructTree(t *testing.T) {
	root, err := ParseFields([]FieldSpec{
		{Name: "id", Type: "int64"},
		{Name: "tags", Type: "list<string>"},
		{Name: "price", Type: "decimal(10,2)"},
	})
	require.NoError(t, err)
	assert.Equal(t, ShapeStruct, root.Shape)
	assert.False(t, root.Nullable)
	assert.Len(t, root.Fields, 3)

	price := root.Fields[2].Node
	assert.Equal(t, Decimal, price.Primitive)
	assert.EqualValues(t, 10, price.Precision)
	assert.EqualValues(t, 2, price.Scale)

	tags := root.Fields[1].Node
	assert.Equal(t, ShapeList, tags.Shape)
	assert.Equal(t, String, tags.Item.Primitive)
}

func TestParseFieldsDefaultsFieldNullableTrue(t *testing.T) {
	root, err := ParseFields([]FieldSpec{{Name: "id", Type: "int32"}})
	require.NoError(t, err)
	assert.True(t, root.Fields[0].Node.Nullable)
}

func TestParseTypeSpecRejectsOutOfRangePrecision(t *testing.T) {
	_, err := ParseFields([]FieldSpec{{Name: "x", Type: "decimal(77,0)"}})
	assert.Error(t, err)
}

func TestValidateRejectsNullableRoot(t *testing.T) {
	nullable := true
	n := Node{Shape: ShapeStruct, Nullable: nullable, Fields: []NamedNode{{Name: "a", Node: Node{Shape: ShapePrimitive, Primitive: Int32}}}}
	assert.Error(t, n.Validate())
}

func TestValidateRejectsDuplicateFieldNames(t *testing.T) {
	n := Node{Shape: ShapeStruct, Fields: []NamedNode{
		{Name: "a", Node: Node{Shape: ShapePrimitive, Primitive: Int32}},
		{Name: "a", Node: Node{Shape: ShapePrimitive, Primitive: Int64}},
	}}
	assert.Error(t, n.validate(""))
}

func TestValidateRejectsNullableMapKey(t *testing.T) {
	n := Node{
		Shape: ShapeMap,
		Key:   &Node{Shape: ShapePrimitive, Primitive: String, Nullable: true},
		Value: &Node{Shape: ShapePrimitive, Primitive: Int64},
	}
	assert.Error(t, n.validate(""))
}

func TestDecimalPhysicalWidthBuckets(t *testing.T) {
	assert.Equal(t, 32, (&Node{Precision: 9}).DecimalPhysicalWidth())
	assert.Equal(t, 64, (&Node{Precision: 18}).DecimalPhysicalWidth())
	assert.Equal(t, 128, (&Node{Precision: 38}).DecimalPhysicalWidth())
	assert.Equal(t, 256, (&Node{Precision: 39}).DecimalPhysicalWidth())
}

func TestTimezoneOptionForcesUTCAdjustment(t *testing.T) {
	tz := "+09:00"
	naive := false

	root, err := ParseFields([]FieldSpec{
		{Name: "t", Type: "timestamp_millis", Timezone: &tz, HasTimezone: &naive},
	})
	require.NoError(t, err)
	assert.True(t, root.Fields[0].Node.IsAdjustedToUTC)

	root, err = ParseFields([]FieldSpec{
		{Name: "t", Type: "timestamp_millis", HasTimezone: &naive},
	})
	require.NoError(t, err)
	assert.False(t, root.Fields[0].Node.IsAdjustedToUTC)
}

func TestBuilderProducesSameTreeAsParseFields(t *testing.T) {
	viaBuilder := NewBuilder().
		Field("id", "int64", false).
		Decimal("price", 10, 2, true)
	root, err := viaBuilder.Build()
	require.NoError(t, err)

	viaFields, err := ParseFields([]FieldSpec{
		{Name: "id", Type: "int64", Nullable: boolPtr(false)},
		{Name: "price", Type: "decimal(10,2)"},
	})
	require.NoError(t, err)

	assert.Equal(t, viaFields.Fields[0].Node.Primitive, root.Fields[0].Node.Primitive)
	assert.Equal(t, viaFields.Fields[1].Node.Precision, root.Fields[1].Node.Precision)
}

func TestParseLegacyFields(t *testing.T) {
	root, err := ParseLegacyFields([]LegacyField{
		{Name: "id", Type: "int64", Nullable: false},
		{Name: "name", Type: "string", Nullable: true},
	})
	require.NoError(t, err)
	assert.False(t, root.Fields[0].Node.Nullable)
	assert.True(t, root.Fields[1].Node.Nullable)
}

func TestParseYAML(t *testing.T) {
	doc := []byte(`
fields:
  - name: id
    type: int64
  - name: price
    type: decimal
    precision: 10
    scale: 2
`)
	root, err := ParseYAML(doc)
	require.NoError(t, err)
	assert.Len(t, root.Fields, 2)
	assert.EqualValues(t, 10, root.Fields[1].Node.Precision)
}

func TestArrowLowerAndRaiseRoundTrip(t *testing.T) {
	root, err := ParseFields([]FieldSpec{
		{Name: "id", Type: "int64"},
		{Name: "tags", Type: "list<string>"},
	})
	require.NoError(t, err)

	arrowSchema := ToArrow(root)
	back := FromArrow(arrowSchema)

	assert.Equal(t, root.Fields[0].Name, back.Fields[0].Name)
	assert.Equal(t, root.Fields[0].Node.Primitive, back.Fields[0].Node.Primitive)
	assert.Equal(t, ShapeList, back.Fields[1].Node.Shape)
}

func boolPtr(b bool) *bool { return &b }
