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

package arrowarc

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrowarc/arrowarc/hostval"
	"github.com/arrowarc/arrowarc/pqerr"
	"github.com/arrowarc/arrowarc/pqreader"
	"github.com/arrowarc/arrowarc/pqwriter"
	"github.com/arrowarc/arrowarc/schema"
)

func testSchema(t *testing.T) *schema.Node {
	root, err := schema.ParseFields([]schema.FieldSpec{
		{Name: "id", Type: "int64"},
		{Name: "name", Type: "string", Nullable: boolPtrRT(true)},
		{Name: "price", Type: "decimal(10,2)"},
	})
	require.NoError(t, err)
	return root
}

func boolPtrRT(b bool) *bool { return &b }

func TestWriteRowsThenReadRowsRoundTrip(t *testing.T) {
	root := testSchema(t)
	var buf bytes.Buffer

	w, err := pqwriter.New(&buf, root, pqwriter.Options{FixedBatchRows: 2})
	require.NoError(t, err)

	rows := []any{
		hostval.OrderedPairs{{Key: "id", Value: int64(1)}, {Key: "name", Value: "ada"}, {Key: "price", Value: "9.99"}},
		hostval.OrderedPairs{{Key: "id", Value: int64(2)}, {Key: "name", Value: nil}, {Key: "price", Value: "1.50"}},
	}
	require.NoError(t, w.WriteRows(rows))
	require.NoError(t, w.Close())

	assert.Greater(t, buf.Len(), 0)

	rdr, err := pqreader.New(buf.Bytes(), pqreader.Options{})
	require.NoError(t, err)
	defer rdr.Close()

	var got []hostval.OrderedPairs
	err = rdr.ReadRows(func(_ *schema.Node, hv any) error {
		pairs, ok := hv.(hostval.OrderedPairs)
		require.True(t, ok)
		got = append(got, pairs)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, int64(1), got[0][0].Value)
	assert.Equal(t, "ada", got[0][1].Value)
	assert.Nil(t, got[1][1].Value)
}

func TestReadMetadataReportsRowCountAndSchema(t *testing.T) {
	root := testSchema(t)
	var buf bytes.Buffer

	w, err := pqwriter.New(&buf, root, pqwriter.Options{FixedBatchRows: 10})
	require.NoError(t, err)
	require.NoError(t, w.WriteRow(hostval.OrderedPairs{{Key: "id", Value: int64(1)}, {Key: "name", Value: "a"}, {Key: "price", Value: "1.00"}}))
	require.NoError(t, w.Close())

	meta, err := ReadMetadata(buf.Bytes())
	require.NoError(t, err)
	assert.EqualValues(t, 1, meta.RowCount)
	assert.Len(t, meta.Schema.Fields, 3)
}

func TestOpenCorruptArrowIPCFails(t *testing.T) {
	_, err := pqreader.New([]byte("ARROW1\x00\x00garbage"), pqreader.Options{})
	assert.Error(t, err)
}

func TestOpenGarbageBytesFailsAsCodecError(t *testing.T) {
	_, err := pqreader.New([]byte("not a parquet file at all"), pqreader.Options{})
	assert.Error(t, err)
	assert.True(t, pqerr.OfKind(err, pqerr.Codec))
}
