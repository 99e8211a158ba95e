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

// Package batchctl implements the adaptive batch-size controller: it
// watches a reservoir sample of recently written row sizes and recommends
// how many rows the writer should accumulate before flushing a batch, so
// row width (a handful of ints vs. megabyte blobs) drives batch size rather
// than a single fixed row count. Row-size estimation is cheap: primitives
// are fixed-size, variable-length values are charged their length plus a
// constant, and composites recurse into their children.
package batchctl

import (
	"github.com/arrowarc/arrowarc/pqerr"
	"github.com/arrowarc/arrowarc/schema"
	"github.com/arrowarc/arrowarc/value"
)

// Params configures a Controller. A zero Params uses the documented
// defaults: SampleSize 100, MinBatchRows 10.
type Params struct {
	// MemoryThreshold caps the estimated in-memory size of one batch, in
	// bytes. Zero disables the byte-size cap, leaving only row-count
	// driven flushing.
	MemoryThreshold int64

	// SampleSize is the reservoir capacity. Zero means 100.
	SampleSize int

	// MinBatchRows floors the recommended batch size regardless of how
	// wide the sampled rows are. Zero means 10.
	MinBatchRows int

	// FixedBatchRows, when >0, disables adaptive sizing entirely: every
	// batch is exactly this many rows.
	FixedBatchRows int
}

func (p Params) sampleSize() int {
	if p.SampleSize > 0 {
		return p.SampleSize
	}
	return 100
}

func (p Params) minBatchRows() int {
	if p.MinBatchRows > 0 {
		return p.MinBatchRows
	}
	return 10
}

// recomputeEvery bounds how many rows pass between target recalculations.
const recomputeEvery = 10

// initialAvgRowSize stands in for the reservoir mean until the sample has
// at least a tenth of its capacity; early rows are too few to trust.
const initialAvgRowSize = 1024

// Controller tracks a reservoir sample of row byte sizes and the running
// row/byte counts of the batch currently being accumulated. It is not safe
// for concurrent use; one Controller belongs to one writer.
type Controller struct {
	params Params

	reservoir  []int64
	seen       int64 // total rows ever observed, for reservoir replacement
	rngState   uint64
	targetRows int

	rowsSinceRecompute int
	batchRows          int
	batchBytes         int64
}

// New constructs a Controller. A fixed random seed keeps batch boundaries
// reproducible across runs of the same input, which matters for tests that
// assert on row-group layout.
func New(params Params) *Controller {
	c := &Controller{params: params, rngState: 0x9E3779B97F4A7C15}
	c.targetRows = c.params.minBatchRows()
	return c
}

// EstimateRowSize computes the approximate encoded size of row in bytes.
func EstimateRowSize(n *schema.Node, row value.Value) int64 {
	return estimateValueSize(n, row)
}

func estimateValueSize(n *schema.Node, v value.Value) int64 {
	if v.IsNull() {
		return 1
	}
	switch n.Shape {
	case schema.ShapeStruct:
		var total int64
		for _, nf := range n.Fields {
			fv, ok := v.Field(nf.Name)
			if !ok {
				fv = value.Null()
			}
			total += estimateValueSize(&nf.Node, fv)
		}
		return total
	case schema.ShapeList:
		const perItemOverhead = 4
		var total int64
		for _, item := range v.List() {
			total += estimateValueSize(n.Item, item) + perItemOverhead
		}
		return total
	case schema.ShapeMap:
		const perEntryOverhead = 8
		var total int64
		for _, kv := range v.Map() {
			total += estimateValueSize(n.Key, kv.Key) + estimateValueSize(n.Value, kv.Value) + perEntryOverhead
		}
		return total
	default:
		return estimatePrimitiveSize(n, v)
	}
}

const variableLengthOverhead = 4

func estimatePrimitiveSize(n *schema.Node, v value.Value) int64 {
	switch n.Primitive {
	case schema.Bool, schema.Int8, schema.Uint8:
		return 1
	case schema.Int16, schema.Uint16, schema.Float16:
		return 2
	case schema.Int32, schema.Uint32, schema.Float32, schema.Date32, schema.TimeMillis:
		return 4
	case schema.Int64, schema.Uint64, schema.Float64, schema.Date64, schema.TimeMicros,
		schema.TimestampSecond, schema.TimestampMillis, schema.TimestampMicros, schema.TimestampNanos:
		return 8
	case schema.UUID:
		return 16
	case schema.Decimal:
		return int64(n.DecimalPhysicalWidth() / 8)
	case schema.String:
		return int64(len(v.String())) + variableLengthOverhead
	case schema.Binary:
		return int64(len(v.Bytes())) + variableLengthOverhead
	default:
		return 16
	}
}

// Observe records one row's estimated size, admits it into the reservoir
// sample per Algorithm R, and adds it to the batch-in-progress counters.
// It returns whether the caller should flush the batch now.
func (c *Controller) Observe(size int64) bool {
	c.admit(size)

	c.batchRows++
	c.batchBytes += size
	c.rowsSinceRecompute++

	if c.rowsSinceRecompute >= recomputeEvery {
		c.recompute()
		c.rowsSinceRecompute = 0
	}

	return c.shouldFlush()
}

func (c *Controller) admit(size int64) {
	k := c.params.sampleSize()
	c.seen++
	if len(c.reservoir) < k {
		c.reservoir = append(c.reservoir, size)
		return
	}
	j := c.nextRand(c.seen)
	if j < uint64(k) {
		c.reservoir[j] = size
	}
}

// nextRand returns a value in [0, n) using a xorshift64 generator seeded
// once at construction; it needs no external randomness source and is
// deterministic given the sequence of Observe calls.
func (c *Controller) nextRand(n int64) uint64 {
	c.rngState ^= c.rngState << 13
	c.rngState ^= c.rngState >> 7
	c.rngState ^= c.rngState << 17
	if n <= 0 {
		return 0
	}
	return c.rngState % uint64(n)
}

func (c *Controller) recompute() {
	if c.params.FixedBatchRows > 0 {
		c.targetRows = c.params.FixedBatchRows
		return
	}
	if c.params.MemoryThreshold <= 0 {
		c.targetRows = c.params.minBatchRows()
		return
	}
	var avg int64
	if len(c.reservoir) == 0 || len(c.reservoir) < c.params.sampleSize()/10 {
		avg = initialAvgRowSize
	} else {
		var sum int64
		for _, s := range c.reservoir {
			sum += s
		}
		avg = sum / int64(len(c.reservoir))
	}
	if avg <= 0 {
		avg = 1
	}
	target := int(c.params.MemoryThreshold / avg)
	if target < c.params.minBatchRows() {
		target = c.params.minBatchRows()
	}
	c.targetRows = target
}

func (c *Controller) shouldFlush() bool {
	if c.params.FixedBatchRows > 0 {
		return c.batchRows >= c.params.FixedBatchRows
	}
	if c.batchRows >= c.targetRows {
		return true
	}
	return c.params.MemoryThreshold > 0 && c.batchBytes >= c.params.MemoryThreshold
}

// ResetBatch clears the in-progress batch counters after a flush; the
// reservoir sample and target row count persist across batches.
func (c *Controller) ResetBatch() {
	c.batchRows = 0
	c.batchBytes = 0
}

// TargetRows returns the controller's current recommended rows per batch.
func (c *Controller) TargetRows() int { return c.targetRows }

// BatchRows and BatchBytes report the in-progress batch's accumulated row
// count and estimated byte size, for flush-time logging.
func (c *Controller) BatchRows() int    { return c.batchRows }
func (c *Controller) BatchBytes() int64 { return c.batchBytes }

// Validate rejects negative Params before a Controller is built.
func Validate(p Params) error {
	if p.MemoryThreshold < 0 {
		return pqerr.New(pqerr.Parameter, "batch_controller", "memory_threshold")
	}
	if p.SampleSize < 0 {
		return pqerr.New(pqerr.Parameter, "batch_controller", "sample_size")
	}
	if p.MinBatchRows < 0 {
		return pqerr.New(pqerr.Parameter, "batch_controller", "min_batch_rows")
	}
	if p.FixedBatchRows < 0 {
		return pqerr.New(pqerr.Parameter, "batch_controller", "batch_rows")
	}
	return nil
}
