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
	"strings"
	"testing"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrowarc/arrowarc/hostval"
	"github.com/arrowarc/arrowarc/pqreader"
	"github.com/arrowarc/arrowarc/pqwriter"
	"github.com/arrowarc/arrowarc/schema"
)

func readAllRows(t *testing.T, data []byte, opts pqreader.Options) []hostval.OrderedPairs {
	t.Helper()
	rdr, err := pqreader.New(data, opts)
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
	return got
}

func TestNestedTypesRoundTrip(t *testing.T) {
	root, err := schema.NewBuilder().
		Field("tags", "list<string>", true).
		Field("metadata", "map<string,string>", true).
		Struct("address", true, func(b *schema.Builder) {
			b.Field("street", "string", true).
				Field("city", "string", true).
				Field("zip", "int32", true)
		}).
		Build()
	require.NoError(t, err)

	var buf bytes.Buffer
	w, err := pqwriter.New(&buf, root, pqwriter.Options{FixedBatchRows: 10})
	require.NoError(t, err)

	rows := []any{
		map[string]any{
			"tags":     []any{"red", "blue"},
			"metadata": hostval.OrderedPairs{{Key: "k1", Value: "v1"}, {Key: "k2", Value: "v2"}},
			"address":  map[string]any{"street": "1 Main St", "city": "Springfield", "zip": int32(12345)},
		},
		map[string]any{
			"tags":     []any{},
			"metadata": hostval.OrderedPairs{},
			"address":  nil,
		},
	}
	require.NoError(t, w.WriteRows(rows))
	require.NoError(t, w.Close())

	got := readAllRows(t, buf.Bytes(), pqreader.Options{})
	require.Len(t, got, 2)

	tags0, ok := got[0][0].Value.([]any)
	require.True(t, ok)
	assert.Equal(t, []any{"red", "blue"}, tags0)

	meta0, ok := got[0][1].Value.(hostval.OrderedPairs)
	require.True(t, ok)
	require.Len(t, meta0, 2)
	assert.Equal(t, "k1", meta0[0].Key)
	assert.Equal(t, "v1", meta0[0].Value)
	assert.Equal(t, "k2", meta0[1].Key)

	addr0, ok := got[0][2].Value.(hostval.OrderedPairs)
	require.True(t, ok)
	assert.Equal(t, "Springfield", addr0[1].Value)
	assert.Equal(t, int32(12345), addr0[2].Value)

	tags1, ok := got[1][0].Value.([]any)
	require.True(t, ok)
	assert.Empty(t, tags1)
	meta1, ok := got[1][1].Value.(hostval.OrderedPairs)
	require.True(t, ok)
	assert.Empty(t, meta1)
	assert.Nil(t, got[1][2].Value)
}

func TestDecimalPrecisionFormsRoundTrip(t *testing.T) {
	root, err := schema.ParseFields([]schema.FieldSpec{
		{Name: "default_decimal", Type: "decimal"},
		{Name: "precision_only", Type: "decimal(10)"},
		{Name: "scale_only", Type: "decimal(scale=5)"},
		{Name: "both", Type: "decimal(15,4)"},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	w, err := pqwriter.New(&buf, root, pqwriter.Options{FixedBatchRows: 10})
	require.NoError(t, err)
	require.NoError(t, w.WriteRow(map[string]any{
		"default_decimal": "123456",
		"precision_only":  "123.45",
		"scale_only":      "12.34567",
		"both":            "1234.5678",
	}))
	require.NoError(t, w.Close())

	got := readAllRows(t, buf.Bytes(), pqreader.Options{})
	require.Len(t, got, 1)

	expect := []string{"123456", "123", "12.34567", "1234.5678"}
	for i, want := range expect {
		d, ok := got[0][i].Value.(decimal.Decimal)
		require.True(t, ok, "field %d", i)
		wantDec, err := decimal.NewFromString(want)
		require.NoError(t, err)
		assert.True(t, d.Equal(wantDec), "field %d: got %s want %s", i, d, wantDec)
	}
}

func TestTimestampUTCAdjustedDiscardsOriginalOffset(t *testing.T) {
	root, err := schema.ParseFields([]schema.FieldSpec{
		{Name: "t", Type: "timestamp_micros"},
	})
	require.NoError(t, err)

	tokyo := time.FixedZone("UTC+9", 9*60*60)
	input := time.Date(2023, 1, 1, 12, 34, 56, 0, tokyo)

	var buf bytes.Buffer
	w, err := pqwriter.New(&buf, root, pqwriter.Options{FixedBatchRows: 10})
	require.NoError(t, err)
	require.NoError(t, w.WriteRow(map[string]any{"t": input}))
	require.NoError(t, w.Close())

	got := readAllRows(t, buf.Bytes(), pqreader.Options{})
	require.Len(t, got, 1)

	ts, ok := got[0][0].Value.(time.Time)
	require.True(t, ok)
	assert.True(t, ts.Equal(time.Date(2023, 1, 1, 3, 34, 56, 0, time.UTC)))
	_, offset := ts.Zone()
	assert.Zero(t, offset)
}

func TestProjectionDropsUnknownColumns(t *testing.T) {
	root, err := schema.ParseFields([]schema.FieldSpec{
		{Name: "id", Type: "int64"},
		{Name: "name", Type: "string"},
		{Name: "email", Type: "string"},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	w, err := pqwriter.New(&buf, root, pqwriter.Options{FixedBatchRows: 10})
	require.NoError(t, err)
	rows := []any{
		map[string]any{"id": int64(1), "name": "a", "email": "a@x"},
		map[string]any{"id": int64(2), "name": "b", "email": "b@x"},
	}
	require.NoError(t, w.WriteRows(rows))
	require.NoError(t, w.Close())

	got := readAllRows(t, buf.Bytes(), pqreader.Options{Columns: []string{"id", "nonexistent"}})
	require.Len(t, got, 2)
	for _, row := range got {
		require.Len(t, row, 1)
		assert.Equal(t, "id", row[0].Key)
	}
}

func TestTupleResultShapeStripsFieldNames(t *testing.T) {
	root := testSchema(t)
	var buf bytes.Buffer
	w, err := pqwriter.New(&buf, root, pqwriter.Options{FixedBatchRows: 10})
	require.NoError(t, err)
	require.NoError(t, w.WriteRow([]any{int64(9), "tuple", "3.50"}))
	require.NoError(t, w.Close())

	rdr, err := pqreader.New(buf.Bytes(), pqreader.Options{ResultShape: pqreader.Tuple})
	require.NoError(t, err)
	defer rdr.Close()

	var rows [][]any
	err = rdr.ReadRows(func(_ *schema.Node, hv any) error {
		tuple, ok := hv.([]any)
		require.True(t, ok)
		rows = append(rows, tuple)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(9), rows[0][0])
	assert.Equal(t, "tuple", rows[0][1])
}

func TestColumnIterationBatchCount(t *testing.T) {
	root := testSchema(t)
	var buf bytes.Buffer
	w, err := pqwriter.New(&buf, root, pqwriter.Options{FixedBatchRows: 100})
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		require.NoError(t, w.WriteRow([]any{int64(i), "r", "1.00"}))
	}
	require.NoError(t, w.Close())

	var batchRows []int64
	err = ReadColumns(buf.Bytes(), ColumnOptions{BatchRows: 4}, func(rec arrow.Record) error {
		batchRows = append(batchRows, rec.NumRows())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 4, 2}, batchRows)
}

func TestWriteHostColumns(t *testing.T) {
	root := testSchema(t)
	var buf bytes.Buffer

	batch := pqwriter.ColumnBatch{
		{int64(1), int64(2)},
		{"a", nil},
		{"1.00", "2.00"},
	}
	require.NoError(t, WriteHostColumns(&buf, root, WriteOptions{}, []pqwriter.ColumnBatch{batch}))

	got := readAllRows(t, buf.Bytes(), pqreader.Options{})
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[1][0].Value)
	assert.Nil(t, got[1][1].Value)
}

// flushCapture records the per-flush row counts the writer emits on its
// debug channel, so adaptive batching is observable without depending on
// how the codec groups row groups.
type flushCapture struct {
	flushRows []int
}

func (f *flushCapture) Debug(msg string, kv ...any) {
	if !strings.Contains(msg, "flush") {
		return
	}
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i] == "rows" {
			if n, ok := kv[i+1].(int); ok {
				f.flushRows = append(f.flushRows, n)
			}
		}
	}
}
func (f *flushCapture) Info(string, ...any)  {}
func (f *flushCapture) Warn(string, ...any)  {}
func (f *flushCapture) Error(string, ...any) {}

func TestAdaptiveBatchingProducesNonUniformBatches(t *testing.T) {
	root, err := schema.ParseFields([]schema.FieldSpec{
		{Name: "id", Type: "int64"},
		{Name: "payload", Type: "string"},
	})
	require.NoError(t, err)

	capture := &flushCapture{}
	var buf bytes.Buffer
	w, err := pqwriter.New(&buf, root, pqwriter.Options{
		MemoryThreshold: 100_000,
		SampleSize:      30,
		Logger:          capture,
	})
	require.NoError(t, err)

	small := strings.Repeat("x", 4)
	large := strings.Repeat("y", 1012)
	for i := 0; i < 200; i++ {
		payload := small
		if i >= 50 {
			payload = large
		}
		require.NoError(t, w.WriteRow(map[string]any{"id": int64(i), "payload": payload}))
	}
	require.NoError(t, w.Close())

	require.GreaterOrEqual(t, len(capture.flushRows), 2)
	distinct := make(map[int]bool)
	total := 0
	for _, n := range capture.flushRows {
		distinct[n] = true
		total += n
	}
	assert.Equal(t, 200, total)
	assert.GreaterOrEqual(t, len(distinct), 2)

	got := readAllRows(t, buf.Bytes(), pqreader.Options{})
	assert.Len(t, got, 200)
}

func TestReadRowsRecognizesArrowIPCFileBySniffing(t *testing.T) {
	sch := arrow.NewSchema([]arrow.Field{
		{Name: "id", Type: arrow.PrimitiveTypes.Int64},
		{Name: "name", Type: arrow.BinaryTypes.String, Nullable: true},
	}, nil)

	bldr := array.NewRecordBuilder(memory.DefaultAllocator, sch)
	defer bldr.Release()
	bldr.Field(0).(*array.Int64Builder).AppendValues([]int64{1, 2}, nil)
	bldr.Field(1).(*array.StringBuilder).AppendValues([]string{"a", "b"}, nil)
	rec := bldr.NewRecord()
	defer rec.Release()

	var buf bytes.Buffer
	w, err := ipc.NewFileWriter(&buf, ipc.WithSchema(sch))
	require.NoError(t, err)
	require.NoError(t, w.Write(rec))
	require.NoError(t, w.Close())

	got := readAllRows(t, buf.Bytes(), pqreader.Options{})
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0][0].Value)
	assert.Equal(t, "b", got[1][1].Value)

	projected := readAllRows(t, buf.Bytes(), pqreader.Options{Columns: []string{"name"}})
	require.Len(t, projected, 2)
	require.Len(t, projected[0], 1)
	assert.Equal(t, "name", projected[0][0].Key)
}

func TestScientificNotationDecimalsRoundTrip(t *testing.T) {
	root, err := schema.ParseFields([]schema.FieldSpec{
		{Name: "a", Type: "decimal(10)"},
		{Name: "b", Type: "decimal(10,3)"},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	w, err := pqwriter.New(&buf, root, pqwriter.Options{FixedBatchRows: 10})
	require.NoError(t, err)
	require.NoError(t, w.WriteRow(map[string]any{"a": "1.23e2", "b": "5e-3"}))
	require.NoError(t, w.Close())

	got := readAllRows(t, buf.Bytes(), pqreader.Options{})
	require.Len(t, got, 1)

	a := got[0][0].Value.(decimal.Decimal)
	assert.True(t, a.Equal(decimal.NewFromInt(123)), "got %s", a)
	b := got[0][1].Value.(decimal.Decimal)
	assert.True(t, b.Equal(decimal.New(5, -3)), "got %s", b)
}
