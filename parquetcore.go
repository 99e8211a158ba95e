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

// Package arrowarc is the root facade: the five public operations a host
// binding calls (ReadRows, ReadColumns, WriteRows, WriteColumns,
// ReadMetadata), orchestrating schema, hostval, pqreader, pqwriter, and
// ioadapter over any schema.
package arrowarc

import (
	"io"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/arrowarc/arrowarc/logger"
	"github.com/arrowarc/arrowarc/pqerr"
	"github.com/arrowarc/arrowarc/pqmeta"
	"github.com/arrowarc/arrowarc/pqreader"
	"github.com/arrowarc/arrowarc/pqwriter"
	"github.com/arrowarc/arrowarc/schema"
)

// RowOptions configures ReadRows, layered on pqreader.Options.
type RowOptions struct {
	Columns     []string
	ResultShape pqreader.ResultShape
	Intern      bool
	Logger      logger.Logger
}

// ReadRows opens src and calls fn once per row, in file order.
// Passing a nil Logger is a no-op; any non-nil value must already
// implement logger.Logger (the interface is the contract).
func ReadRows(src any, opts RowOptions, fn func(*schema.Node, any) error) error {
	log := logger.Or(opts.Logger)
	r, err := pqreader.New(src, pqreader.Options{
		Columns:     opts.Columns,
		ResultShape: opts.ResultShape,
		Intern:      opts.Intern,
	})
	if err != nil {
		log.Error("open reader failed", "error", err)
		return err
	}
	defer r.Close()

	return r.ReadRows(fn)
}

// ColumnOptions configures ReadColumns.
type ColumnOptions struct {
	Columns   []string
	BatchRows int64
	Logger    logger.Logger
}

// ReadColumns opens src and calls fn once per Arrow record batch.
func ReadColumns(src any, opts ColumnOptions, fn func(arrow.Record) error) error {
	log := logger.Or(opts.Logger)
	r, err := pqreader.New(src, pqreader.Options{
		Columns:   opts.Columns,
		BatchRows: opts.BatchRows,
	})
	if err != nil {
		log.Error("open reader failed", "error", err)
		return err
	}
	defer r.Close()

	return r.ReadColumns(fn)
}

// WriteOptions configures WriteRows/WriteColumns, layered on
// pqwriter.Options.
type WriteOptions struct {
	Compression     pqwriter.Compression
	MemoryThreshold int64
	SampleSize      int
	MinBatchRows    int
	BatchRows       int
	Intern          bool
	Logger          logger.Logger
}

func (o WriteOptions) toPqwriterOptions() pqwriter.Options {
	return pqwriter.Options{
		Compression:     o.Compression,
		MemoryThreshold: o.MemoryThreshold,
		SampleSize:      o.SampleSize,
		MinBatchRows:    o.MinBatchRows,
		FixedBatchRows:  o.BatchRows,
		Intern:          o.Intern,
		Logger:          o.Logger,
	}
}

// WriteRows streams rows (each mapping- or tuple-shaped, per schemaNode)
// through the Writer, finalizing the file when done.
func WriteRows(sink io.Writer, schemaNode *schema.Node, opts WriteOptions, rows []any) error {
	log := logger.Or(opts.Logger)
	w, err := pqwriter.New(sink, schemaNode, opts.toPqwriterOptions())
	if err != nil {
		log.Error("open writer failed", "error", err)
		return err
	}
	if err := w.WriteRows(rows); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// WriteColumns streams pre-built Arrow record batches through the Writer.
func WriteColumns(sink io.Writer, schemaNode *schema.Node, opts WriteOptions, batches []arrow.Record) error {
	log := logger.Or(opts.Logger)
	w, err := pqwriter.New(sink, schemaNode, opts.toPqwriterOptions())
	if err != nil {
		log.Error("open writer failed", "error", err)
		return err
	}
	for _, rec := range batches {
		if err := w.WriteColumns(rec); err != nil {
			w.Close()
			return err
		}
	}
	return w.Close()
}

// WriteHostColumns streams host-value column batches through the Writer:
// each batch is an ordered set of equal-length columns in schema field
// order, converted in place and written as one record per batch.
func WriteHostColumns(sink io.Writer, schemaNode *schema.Node, opts WriteOptions, batches []pqwriter.ColumnBatch) error {
	log := logger.Or(opts.Logger)
	w, err := pqwriter.New(sink, schemaNode, opts.toPqwriterOptions())
	if err != nil {
		log.Error("open writer failed", "error", err)
		return err
	}
	for _, batch := range batches {
		if err := w.WriteColumnValues(batch); err != nil {
			w.Close()
			return err
		}
	}
	return w.Close()
}

// ReadMetadata surfaces row count, writer identity, schema, and
// per-row-group summaries without decoding row data.
func ReadMetadata(src any) (*pqmeta.Metadata, error) {
	return pqmeta.ReadMetadata(src)
}

// Kind re-exports pqerr.Kind at the facade so a caller catching errors
// from any of the five operations above doesn't need to import pqerr
// directly for the common case of branching on error Kind.
type Kind = pqerr.Kind

const (
	SchemaError      = pqerr.Schema
	ConversionError  = pqerr.Conversion
	NullabilityError = pqerr.Nullability
	IOError          = pqerr.IO
	CodecError       = pqerr.Codec
	ParameterError   = pqerr.Parameter
	RangeError       = pqerr.Range
)
