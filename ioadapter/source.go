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

// Package ioadapter implements the I/O Adapter: it normalizes
// whatever the caller hands in — a path, an io.ReadSeeker, a plain
// io.Reader, or an in-memory buffer — into a single Source interface that
// the Reader and Writer can drive without caring which one it started as.
package ioadapter

import (
	"bytes"
	"io"
	"os"
	"sync"

	"github.com/arrowarc/arrowarc/pqerr"
)

// Source is a random-access byte source, the shape pqarrow's Parquet
// reader needs to decode row groups out of order and in parallel.
type Source interface {
	io.ReaderAt
	io.Reader
	io.Seeker
	// Size returns the total byte length of the underlying data.
	Size() int64
	// Close releases any resources (open file handles, temp files)
	// held by the source.
	Close() error
}

// Open dispatches on the concrete type of src:
//   - string: opened as a file path.
//   - io.ReadSeeker: wrapped directly (mutex-guarded, see below).
//   - io.Reader (non-seekable): spooled to a temp file, deleted on Close.
//   - []byte: wrapped with bytes.NewReader, no I/O performed.
func Open(src any) (Source, error) {
	switch v := src.(type) {
	case string:
		return openFile(v)
	case []byte:
		return newMemSource(v), nil
	case io.ReadSeeker:
		return newSeekSource(v, nil), nil
	case io.Reader:
		return spoolToTemp(v)
	default:
		return nil, pqerr.New(pqerr.Parameter, "open_source", "").WithValue("unsupported source type")
	}
}

func openFile(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pqerr.Wrap(pqerr.IO, "open_source", path, err)
	}
	if _, err := f.Stat(); err != nil {
		f.Close()
		return nil, pqerr.Wrap(pqerr.IO, "open_source", path, err)
	}
	return newSeekSource(f, closerFunc(f.Close)), nil
}

type closerFunc func() error

func (c closerFunc) Close() error { return c() }

// seekSource wraps an io.ReadSeeker (optionally an io.Closer) with a mutex
// so pqarrow's parallel column-chunk reads serialize their Seek+Read pairs
// against a single underlying stream.
type seekSource struct {
	mu     sync.Mutex
	rs     io.ReadSeeker
	closer io.Closer
	size   int64

	// closeOnce makes Close idempotent: the embedded codec may close the
	// source itself, and the owning Reader closes it again on teardown.
	closeOnce sync.Once
	closeErr  error
}

func newSeekSource(rs io.ReadSeeker, closer io.Closer) *seekSource {
	s := &seekSource{rs: rs, closer: closer}
	if size, err := rs.Seek(0, io.SeekEnd); err == nil {
		s.size = size
		_, _ = rs.Seek(0, io.SeekStart)
	}
	return s
}

func (s *seekSource) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rs.Read(p)
}

func (s *seekSource) Seek(offset int64, whence int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rs.Seek(offset, whence)
}

func (s *seekSource) ReadAt(p []byte, off int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.rs.Seek(off, io.SeekStart); err != nil {
		return 0, err
	}
	return io.ReadFull(s.rs, p)
}

func (s *seekSource) Size() int64 { return s.size }

func (s *seekSource) Close() error {
	s.closeOnce.Do(func() {
		if s.closer != nil {
			s.closeErr = s.closer.Close()
		}
	})
	return s.closeErr
}

// memSource wraps an in-memory buffer; Close is a no-op.
type memSource struct {
	*bytes.Reader
	size int64
}

func newMemSource(b []byte) *memSource {
	return &memSource{Reader: bytes.NewReader(b), size: int64(len(b))}
}

func (m *memSource) Size() int64 { return m.size }

func (m *memSource) Close() error { return nil }

// spoolToTemp drains a non-seekable io.Reader into a temp file so it can
// be treated as random-access The temp file is removed when
// Close is called.
func spoolToTemp(r io.Reader) (Source, error) {
	f, err := os.CreateTemp("", "parquetcore-spool-*")
	if err != nil {
		return nil, pqerr.Wrap(pqerr.IO, "open_source", "", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, pqerr.Wrap(pqerr.IO, "open_source", "", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, pqerr.Wrap(pqerr.IO, "open_source", "", err)
	}
	name := f.Name()
	return newSeekSource(f, closerFunc(func() error {
		cerr := f.Close()
		rerr := os.Remove(name)
		if cerr != nil {
			return cerr
		}
		return rerr
	})), nil
}
