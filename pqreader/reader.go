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

// Package pqreader implements the Reader: row- and column-oriented access
// to a Parquet or Arrow IPC file, with schema-driven Value Model decoding
// and column projection.
package pqreader

import (
	"bytes"
	"context"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"golang.org/x/sync/errgroup"

	"github.com/arrowarc/arrowarc/arrowbridge"
	"github.com/arrowarc/arrowarc/hostval"
	"github.com/arrowarc/arrowarc/internal/arrio"
	"github.com/arrowarc/arrowarc/ioadapter"
	"github.com/arrowarc/arrowarc/pqerr"
	"github.com/arrowarc/arrowarc/schema"
)

// ResultShape selects whether ReadRows yields ordered field/value pairs or
// bare value tuples.
type ResultShape int

const (
	Mapping ResultShape = iota
	Tuple
)

// Options configures a Reader.
type Options struct {
	// Columns projects the read to a subset of top-level field names,
	// emitted in schema order regardless of the order given here. An empty
	// slice reads every column.
	Columns []string

	// BatchRows sets the Arrow record-batch size the underlying pqarrow
	// reader produces internally. Zero means 1000 rows.
	BatchRows int64

	// Intern opts the row-decode path into the process-wide string
	// intern table.
	Intern bool

	// ResultShape selects ReadRows's per-row host representation.
	ResultShape ResultShape

	Allocator memory.Allocator
}

// Reader is a single-use stream: once exhausted (or closed) it cannot be
// rewound or reopened.
type Reader struct {
	source     ioadapter.Source
	closeCodec func() error
	schemaNode *schema.Node
	shape      ResultShape
	conv       *hostval.Converter
	closed     bool

	// prefetch decodes one record batch ahead of the caller: a single
	// background goroutine, coordinated through an errgroup.Group so Close
	// can wait for it to unwind cleanly, keeps pulling from the codec while
	// ReadRows/ReadColumns convert the batch already in hand.
	prefetchCh chan recordOrErr
	cancel     context.CancelFunc
	eg         *errgroup.Group
}

type recordOrErr struct {
	rec arrow.Record
	err error
}

var arrowMagic = []byte("ARROW1")

// New opens src (any type ioadapter.Open accepts). The format is sniffed
// from the leading bytes, not the file extension: the Arrow IPC
// file magic routes to an ipc.FileReader, anything else is handed to the
// Parquet codec.
func New(src any, opts Options) (*Reader, error) {
	if opts.BatchRows < 0 {
		return nil, pqerr.New(pqerr.Parameter, "open_reader", "").WithValue("batch_rows must be >= 1")
	}

	source, err := ioadapter.Open(src)
	if err != nil {
		return nil, err
	}

	isArrow, err := sniffArrowIPC(source)
	if err != nil {
		source.Close()
		return nil, err
	}

	mem := opts.Allocator
	if mem == nil {
		mem = memory.DefaultAllocator
	}

	var (
		recSrc      arrio.Reader
		closeCodec  func() error
		arrowSchema *arrow.Schema
	)
	if isArrow {
		recSrc, closeCodec, arrowSchema, err = openArrowIPC(source, mem)
	} else {
		recSrc, closeCodec, arrowSchema, err = openParquet(source, mem, opts)
	}
	if err != nil {
		source.Close()
		return nil, err
	}

	schemaNode := projectedSchema(schema.FromArrow(arrowSchema), opts.Columns)
	if isArrow && len(opts.Columns) > 0 {
		// The IPC file format has no column pushdown, so projection is
		// applied to each decoded record instead.
		recSrc = &projectingSource{
			src:     recSrc,
			indices: resolveColumns(arrowSchema, opts.Columns),
			sch:     schema.ToArrow(schemaNode),
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	eg, egCtx := errgroup.WithContext(ctx)

	r := &Reader{
		source:     source,
		closeCodec: closeCodec,
		schemaNode: schemaNode,
		shape:      opts.ResultShape,
		conv:       hostval.NewConverter(opts.Intern),
		prefetchCh: make(chan recordOrErr, 1),
		cancel:     cancel,
		eg:         eg,
	}

	eg.Go(func() error {
		defer close(r.prefetchCh)
		for {
			rec, err := recSrc.Read()
			select {
			case r.prefetchCh <- recordOrErr{rec: rec, err: err}:
			case <-egCtx.Done():
				if rec != nil {
					rec.Release()
				}
				return nil
			}
			if err != nil {
				return nil
			}
		}
	})

	return r, nil
}

func openParquet(source ioadapter.Source, mem memory.Allocator, opts Options) (arrio.Reader, func() error, *arrow.Schema, error) {
	parquetRdr, err := file.NewParquetReader(source)
	if err != nil {
		return nil, nil, nil, pqerr.Wrap(pqerr.Codec, "open_reader", "", err)
	}

	batchSize := opts.BatchRows
	if batchSize <= 0 {
		batchSize = 1000
	}
	arrowRdr, err := pqarrow.NewFileReader(parquetRdr, pqarrow.ArrowReadProperties{
		BatchSize: batchSize,
		Parallel:  true,
	}, mem)
	if err != nil {
		parquetRdr.Close()
		return nil, nil, nil, pqerr.Wrap(pqerr.Codec, "open_reader", "", err)
	}

	arrowSchema, err := arrowRdr.Schema()
	if err != nil {
		parquetRdr.Close()
		return nil, nil, nil, pqerr.Wrap(pqerr.Schema, "open_reader", "", err)
	}

	recordRdr, err := arrowRdr.GetRecordReader(context.Background(), resolveColumns(arrowSchema, opts.Columns), nil)
	if err != nil {
		parquetRdr.Close()
		return nil, nil, nil, pqerr.Wrap(pqerr.Codec, "open_reader", "", err)
	}
	return recordSource{rr: recordRdr}, parquetRdr.Close, arrowSchema, nil
}

func openArrowIPC(source ioadapter.Source, mem memory.Allocator) (arrio.Reader, func() error, *arrow.Schema, error) {
	ipcRdr, err := ipc.NewFileReader(source, ipc.WithAllocator(mem))
	if err != nil {
		return nil, nil, nil, pqerr.Wrap(pqerr.Codec, "open_reader", "", err)
	}
	return ipcSource{rdr: ipcRdr}, ipcRdr.Close, ipcRdr.Schema(), nil
}

// sniffArrowIPC inspects the leading bytes of source without disturbing
// its read position.
func sniffArrowIPC(source ioadapter.Source) (bool, error) {
	head := make([]byte, 6)
	n, err := source.ReadAt(head, 0)
	if err != nil && err != io.EOF {
		return false, pqerr.Wrap(pqerr.IO, "open_reader", "", err)
	}
	return n >= 6 && bytes.Equal(head[:6], arrowMagic), nil
}

func resolveColumns(arrowSchema *arrow.Schema, columns []string) []int {
	if len(columns) == 0 {
		return nil
	}
	wanted := make(map[string]bool, len(columns))
	for _, c := range columns {
		wanted[c] = true
	}
	var indices []int
	for i, f := range arrowSchema.Fields() {
		if wanted[f.Name] {
			indices = append(indices, i)
		}
	}
	return indices
}

// projectedSchema restricts schemaNode's top-level fields to the requested
// projection. Row keys always come out in schema declaration order, not
// projection-list order, and unknown projected names are silently dropped.
func projectedSchema(schemaNode *schema.Node, columns []string) *schema.Node {
	if len(columns) == 0 {
		return schemaNode
	}
	wanted := make(map[string]bool, len(columns))
	for _, c := range columns {
		wanted[c] = true
	}
	var fields []schema.NamedNode
	for _, f := range schemaNode.Fields {
		if wanted[f.Name] {
			fields = append(fields, f)
		}
	}
	return &schema.Node{Shape: schema.ShapeStruct, Fields: fields}
}

// Schema returns the (possibly projected) schema this Reader decodes rows
// against.
func (r *Reader) Schema() *schema.Node { return r.schemaNode }

type recordSource struct{ rr pqarrow.RecordReader }

func (s recordSource) Read() (arrow.Record, error) {
	if !s.rr.Next() {
		if err := s.rr.Err(); err != nil && err != io.EOF {
			return nil, err
		}
		return nil, io.EOF
	}
	// The RecordReader invalidates the current record on the next call to
	// Next, and the prefetch goroutine calls Next while the consumer still
	// holds this record; Retain keeps it alive until the consumer's Release.
	rec := s.rr.Record()
	rec.Retain()
	return rec, nil
}

// ipcSource adapts an Arrow IPC file reader to the same arrio.Reader
// contract the Parquet path uses. ipc.FileReader also invalidates the
// current record on the next Read, hence the Retain.
type ipcSource struct{ rdr *ipc.FileReader }

func (s ipcSource) Read() (arrow.Record, error) {
	rec, err := s.rdr.Read()
	if err != nil {
		return nil, err
	}
	rec.Retain()
	return rec, nil
}

// projectingSource restricts each record from src to the projected column
// indices, for formats without native column pushdown.
type projectingSource struct {
	src     arrio.Reader
	indices []int
	sch     *arrow.Schema
}

func (p *projectingSource) Read() (arrow.Record, error) {
	rec, err := p.src.Read()
	if err != nil {
		return nil, err
	}
	cols := make([]arrow.Array, len(p.indices))
	for i, idx := range p.indices {
		cols[i] = rec.Column(idx)
	}
	out := array.NewRecord(p.sch, cols, rec.NumRows())
	rec.Release()
	return out, nil
}

// nextRecord returns the next Arrow record batch, which the prefetch
// goroutine started by New has typically already pulled from the
// underlying codec while the caller was still consuming the previous one.
func (r *Reader) nextRecord() (arrow.Record, error) {
	re, ok := <-r.prefetchCh
	if !ok {
		return nil, io.EOF
	}
	return re.rec, re.err
}

// ReadRows decodes every row of the stream into Record-shaped Values,
// using fn as a per-row callback so the caller doesn't have to hold the
// whole file in memory. Returns when the stream is exhausted or fn
// returns a non-nil error (propagated to the caller unwrapped).
func (r *Reader) ReadRows(fn func(*schema.Node, interface{}) error) error {
	for {
		rec, err := r.nextRecord()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return pqerr.Wrap(pqerr.IO, "read_rows", "", err)
		}
		values, err := arrowbridge.RecordToValues(r.schemaNode, rec)
		rec.Release()
		if err != nil {
			return err
		}
		for _, v := range values {
			hv, err := r.conv.ToHost(*r.schemaNode, v)
			if err != nil {
				return err
			}
			if r.shape == Tuple {
				hv = tupleOf(hv)
			}
			if err := fn(r.schemaNode, hv); err != nil {
				return err
			}
		}
	}
}

// tupleOf strips field names from a Record's OrderedPairs host
// representation, yielding a bare positional []any in schema order.
func tupleOf(hv interface{}) interface{} {
	pairs, ok := hv.(hostval.OrderedPairs)
	if !ok {
		return hv
	}
	out := make([]any, len(pairs))
	for i, p := range pairs {
		out[i] = p.Value
	}
	return out
}

// ReadColumns decodes the stream one record batch at a time, handing each
// arrow.Record to fn directly.
func (r *Reader) ReadColumns(fn func(arrow.Record) error) error {
	for {
		rec, err := r.nextRecord()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return pqerr.Wrap(pqerr.IO, "read_columns", "", err)
		}
		err = fn(rec)
		rec.Release()
		if err != nil {
			return err
		}
	}
}

// Close releases the underlying Parquet reader and I/O source. Safe to
// call more than once.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.cancel()
	for re := range r.prefetchCh {
		// drain so the prefetch goroutine's blocking send can observe
		// cancellation and return, instead of leaking.
		if re.rec != nil {
			re.rec.Release()
		}
	}
	_ = r.eg.Wait()
	cerr := r.closeCodec()
	serr := r.source.Close()
	if cerr != nil {
		return pqerr.Wrap(pqerr.IO, "close_reader", "", cerr)
	}
	if serr != nil {
		return pqerr.Wrap(pqerr.IO, "close_reader", "", serr)
	}
	return nil
}
