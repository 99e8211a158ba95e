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
	"github.com/arrowarc/arrowarc/arrowbridge"
	"github.com/arrowarc/arrowarc/batchctl"
	"github.com/arrowarc/arrowarc/hostval"
	"github.com/arrowarc/arrowarc/pqerr"
	"github.com/arrowarc/arrowarc/schema"
)

// WriteRow converts one host row into a Value, validates it against
// non-null fields, and buffers it. When the Batch Size Controller signals
// a flush, the buffered rows are appended to the file as one Arrow record
// batch. The step order is convert, validate, buffer, consult the
// controller, then flush if told to.
func (w *Writer) WriteRow(row any) error {
	if w.closed {
		return pqerr.New(pqerr.Parameter, "write_row", "").WithValue("writer is closed")
	}
	v, err := w.conv.ToValue(*w.schemaNode, "", namedRow(w.schemaNode, row))
	if err != nil {
		return err
	}

	w.buffer = append(w.buffer, v)
	size := batchctl.EstimateRowSize(w.schemaNode, v)
	if w.ctl.Observe(size) {
		return w.flush()
	}
	return nil
}

// WriteRows drains rows (one host value per row, tuple or mapping shaped)
// through WriteRow in order.
func (w *Writer) WriteRows(rows []any) error {
	for _, row := range rows {
		if err := w.WriteRow(row); err != nil {
			return err
		}
	}
	return nil
}

// namedRow accepts either a mapping-shaped row (map[string]any,
// hostval.OrderedPairs) as-is, or a positional tuple ([]any, in schema
// declaration order) which it zips against schemaNode's field names so
// hostval.Converter.ToValue's Struct case can look fields up by name.
func namedRow(schemaNode *schema.Node, row any) any {
	tuple, ok := row.([]any)
	if !ok {
		return row
	}
	out := make(hostval.OrderedPairs, 0, len(tuple))
	for i, v := range tuple {
		if i >= len(schemaNode.Fields) {
			break
		}
		out = append(out, hostval.Pair{Key: schemaNode.Fields[i].Name, Value: v})
	}
	return out
}

func (w *Writer) flush() error {
	if len(w.buffer) == 0 {
		return nil
	}
	w.log.Debug("flush record batch",
		"rows", len(w.buffer),
		"estimated_bytes", w.ctl.BatchBytes(),
		"target_rows", w.ctl.TargetRows())
	rec, err := arrowbridge.BuildRecord(w.mem, w.schemaNode, w.buffer)
	if err != nil {
		return err
	}
	defer rec.Release()

	if err := w.fileWriter.Write(rec); err != nil {
		return pqerr.Wrap(pqerr.IO, "write_rows", "", err)
	}
	w.buffer = w.buffer[:0]
	w.ctl.ResetBatch()
	return nil
}
