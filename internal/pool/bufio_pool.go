package pool

import (
	"bufio"
	"io"
	"sync"
)

// BufferSize is the size of pooled readers and writers.
const BufferSize = 32 * 1024

var (
	readerPool sync.Pool
	writerPool sync.Pool
)

// GetReader returns a buffered reader reading from r from the pool.
//
// Return back the reader to the pool with PutReader.
func GetReader(r io.Reader) *bufio.Reader {
	if v := readerPool.Get(); v != nil {
		br, _ := v.(*bufio.Reader) // only *bufio.Reader is put into the pool
		br.Reset(r)
		return br
	}
	return bufio.NewReaderSize(r, BufferSize)
}

// PutReader returns br to the pool.
//
// br cannot be accessed after returning to the pool.
func PutReader(br *bufio.Reader) {
	// drop the reference to the underlying reader
	br.Reset(nil)
	readerPool.Put(br)
}

// GetWriter returns a buffered writer writing to w from the pool.
//
// Return back the writer to the pool with PutWriter, after flushing it.
func GetWriter(w io.Writer) *bufio.Writer {
	if v := writerPool.Get(); v != nil {
		bw, _ := v.(*bufio.Writer) // only *bufio.Writer is put into the pool
		bw.Reset(w)
		return bw
	}
	return bufio.NewWriterSize(w, BufferSize)
}

// PutWriter returns bw to the pool. Unflushed data is discarded.
//
// bw cannot be accessed after returning to the pool.
func PutWriter(bw *bufio.Writer) {
	bw.Reset(nil)
	writerPool.Put(bw)
}
