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

package pqwriter

import (
	"github.com/apache/arrow-go/v18/arrow"

	"github.com/arrowarc/arrowarc/arrowbridge"
	"github.com/arrowarc/arrowarc/pqerr"
	"github.com/arrowarc/arrowarc/schema"
	"github.com/arrowarc/arrowarc/strintern"
	"github.com/arrowarc/arrowarc/value"
)

// WriteColumns accepts pre-built Arrow record batches directly, writing
// each one through immediately without going through the row buffer or
// Batch Size Controller — the caller already chose the batch boundaries by
// constructing the record.
func (w *Writer) WriteColumns(rec arrow.Record) error {
	if w.closed {
		return pqerr.New(pqerr.Parameter, "write_columns", "").WithValue("writer is closed")
	}
	if err := w.flush(); err != nil {
		return err
	}
	if err := w.fileWriter.Write(rec); err != nil {
		return pqerr.Wrap(pqerr.IO, "write_columns", "", err)
	}
	return nil
}

// ColumnBatch is one columnar input step: an ordered set of equal-length
// columns of host values, indexed [column][row], in schema field order.
type ColumnBatch [][]any

// WriteColumnValues converts one batch of host-value columns in place and
// writes it through as a single record, the columnar input shape of the
// write path. Column count must match the schema's field count and every
// column must have the same length.
func (w *Writer) WriteColumnValues(batch ColumnBatch) error {
	if w.closed {
		return pqerr.New(pqerr.Parameter, "write_columns", "").WithValue("writer is closed")
	}
	if len(batch) != len(w.schemaNode.Fields) {
		return pqerr.New(pqerr.Parameter, "write_columns", "").WithValue("column count does not match schema")
	}
	var rows int
	for i, col := range batch {
		if i == 0 {
			rows = len(col)
		} else if len(col) != rows {
			return pqerr.New(pqerr.Parameter, "write_columns", w.schemaNode.Fields[i].Name).WithValue("columns have unequal lengths")
		}
	}

	buf := make([]value.Value, rows)
	for r := 0; r < rows; r++ {
		fields := make([]value.Field, len(w.schemaNode.Fields))
		for i, nf := range w.schemaNode.Fields {
			v, err := w.conv.ToValue(nf.Node, schema.FieldPath("", nf.Name), batch[i][r])
			if err != nil {
				return err
			}
			fields[i] = value.Field{Name: nf.Name, Value: v}
		}
		buf[r] = value.Record(fields)
	}

	if err := w.flush(); err != nil {
		return err
	}
	rec, err := arrowbridge.BuildRecord(w.mem, w.schemaNode, buf)
	if err != nil {
		return err
	}
	defer rec.Release()
	if err := w.fileWriter.Write(rec); err != nil {
		return pqerr.Wrap(pqerr.IO, "write_columns", "", err)
	}
	return nil
}

// Close flushes any buffered rows and finalizes the Parquet footer. If
// flushing or finalizing fails, Close does not attempt to truncate or
// delete the partially written output: it still closes the underlying
// codec handle and returns the original error, so the caller treats the
// destination as an invalid file.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	flushErr := w.flush()
	closeErr := w.fileWriter.Close()
	if w.intern {
		w.log.Info("string cache summary", "entries", strintern.Len())
	}

	if flushErr != nil {
		return flushErr
	}
	if closeErr != nil {
		return pqerr.Wrap(pqerr.IO, "close_writer", "", closeErr)
	}
	return nil
}
