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

// Package pqwriter implements the Writer: buffers converted rows or
// columns, consults the Batch Size Controller to decide when to flush, and
// hands finished Arrow record batches to pqarrow.FileWriter.
package pqwriter

import (
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/arrowarc/arrowarc/batchctl"
	"github.com/arrowarc/arrowarc/hostval"
	"github.com/arrowarc/arrowarc/logger"
	"github.com/arrowarc/arrowarc/pqerr"
	"github.com/arrowarc/arrowarc/schema"
	"github.com/arrowarc/arrowarc/value"
)

// Compression names the supported codec family, mapped 1:1 onto
// parquet/compress.Codecs.
type Compression int

const (
	Uncompressed Compression = iota
	Snappy
	Gzip
	Brotli
	LZ4
	Zstd
)

func (c Compression) codec() compress.Compression {
	switch c {
	case Snappy:
		return compress.Codecs.Snappy
	case Gzip:
		return compress.Codecs.Gzip
	case Brotli:
		return compress.Codecs.Brotli
	case LZ4:
		return compress.Codecs.Lz4
	case Zstd:
		return compress.Codecs.Zstd
	default:
		return compress.Codecs.Uncompressed
	}
}

// Options configures a Writer.
type Options struct {
	Compression     Compression
	MemoryThreshold int64
	SampleSize      int
	MinBatchRows    int
	FixedBatchRows  int
	Intern          bool
	Allocator       memory.Allocator
	Logger          logger.Logger
}

// Writer is a single-use, append-only sink: rows/columns are written in
// the order received and the file is finalized by Close.
type Writer struct {
	schemaNode *schema.Node
	arrowSch   *arrow.Schema
	mem        memory.Allocator
	conv       *hostval.Converter
	ctl        *batchctl.Controller
	buffer     []value.Value
	log        logger.Logger
	intern     bool

	fileWriter *pqarrow.FileWriter
	closed     bool
}

// New prepares a Writer against schemaNode, writing the Parquet stream to
// sink as rows/columns accumulate.
func New(sink io.Writer, schemaNode *schema.Node, opts Options) (*Writer, error) {
	if err := schemaNode.Validate(); err != nil {
		return nil, err
	}
	params := batchctl.Params{
		MemoryThreshold: opts.MemoryThreshold,
		SampleSize:      opts.SampleSize,
		MinBatchRows:    opts.MinBatchRows,
		FixedBatchRows:  opts.FixedBatchRows,
	}
	if err := batchctl.Validate(params); err != nil {
		return nil, err
	}

	mem := opts.Allocator
	if mem == nil {
		mem = memory.DefaultAllocator
	}

	arrowSch := schema.ToArrow(schemaNode)

	writerProps := parquet.NewWriterProperties(
		parquet.WithAllocator(mem),
		parquet.WithCompression(opts.Compression.codec()),
	)
	fw, err := pqarrow.NewFileWriter(arrowSch, sink, writerProps, pqarrow.DefaultWriterProps())
	if err != nil {
		return nil, pqerr.Wrap(pqerr.IO, "open_writer", "", err)
	}

	return &Writer{
		schemaNode: schemaNode,
		arrowSch:   arrowSch,
		mem:        mem,
		conv:       hostval.NewConverter(opts.Intern),
		ctl:        batchctl.New(params),
		log:        logger.Or(opts.Logger),
		intern:     opts.Intern,
		fileWriter: fw,
	}, nil
}

// Schema returns the schema this Writer encodes rows against.
func (w *Writer) Schema() *schema.Node { return w.schemaNode }
