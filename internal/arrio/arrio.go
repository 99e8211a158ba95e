// Package arrio defines the record-stream contract between the reader's
// record sources (Parquet, Arrow IPC, projection wrappers) and the
// prefetch loop that drains them, not unlike the stdlib io.Reader.
package arrio

import "github.com/apache/arrow-go/v18/arrow"

// Reader is the interface that wraps the Read method.
//
// Read returns the next record from the underlying stream, or (nil,
// io.EOF) when the stream is exhausted. The returned record is owned by
// the caller, which must Release it.
type Reader interface {
	Read() (arrow.Record, error)
}
