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

// Package pqmeta implements ReadMetadata: a read-only inspection of a
// Parquet file's footer, surfaced without decoding any row data.
package pqmeta

import (
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/arrowarc/arrowarc/ioadapter"
	"github.com/arrowarc/arrowarc/pqerr"
	"github.com/arrowarc/arrowarc/schema"
)

// RowGroupSummary describes one row group's shape.
type RowGroupSummary struct {
	RowCount           int64
	TotalByteSize      int64
	ColumnCompressed   []int64
	ColumnUncompressed []int64
}

// Metadata is the descriptor ReadMetadata returns.
type Metadata struct {
	RowCount  int64
	CreatedBy string
	Schema    *schema.Node
	RowGroups []RowGroupSummary
}

// ReadMetadata opens src, reads its footer, and returns a Metadata
// descriptor without materializing any column data.
func ReadMetadata(src any) (*Metadata, error) {
	source, err := ioadapter.Open(src)
	if err != nil {
		return nil, err
	}
	defer source.Close()

	rdr, err := file.NewParquetReader(source)
	if err != nil {
		return nil, pqerr.Wrap(pqerr.IO, "read_metadata", "", err)
	}
	defer rdr.Close()

	fileMeta := rdr.MetaData()

	arrowRdr, err := pqarrow.NewFileReader(rdr, pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	if err != nil {
		return nil, pqerr.Wrap(pqerr.IO, "read_metadata", "", err)
	}
	arrowSchema, err := arrowRdr.Schema()
	if err != nil {
		return nil, pqerr.Wrap(pqerr.Schema, "read_metadata", "", err)
	}
	schemaNode := schema.FromArrow(arrowSchema)

	groups := make([]RowGroupSummary, rdr.NumRowGroups())
	for i := 0; i < rdr.NumRowGroups(); i++ {
		rg := rdr.RowGroup(i)
		rgMeta := rg.MetaData()
		numCols := rgMeta.NumColumns()
		compressed := make([]int64, numCols)
		uncompressed := make([]int64, numCols)
		var totalBytes int64
		for c := 0; c < numCols; c++ {
			colChunk, err := rgMeta.ColumnChunk(c)
			if err != nil {
				continue
			}
			compressed[c] = colChunk.TotalCompressedSize()
			uncompressed[c] = colChunk.TotalUncompressedSize()
			totalBytes += compressed[c]
		}
		groups[i] = RowGroupSummary{
			RowCount:           rgMeta.NumRows(),
			TotalByteSize:      totalBytes,
			ColumnCompressed:   compressed,
			ColumnUncompressed: uncompressed,
		}
	}

	return &Metadata{
		RowCount:  rdr.NumRows(),
		CreatedBy: fileMeta.GetCreatedBy(),
		Schema:    schemaNode,
		RowGroups: groups,
	}, nil
}
