package wire

import (
	"encoding/binary"
	"sync"

	"github.com/wippyai/nbt/mutf8"
)

const (
	// Pool limits to prevent memory bloat
	poolMaxCap  = 1 << 20
	poolInitCap = 512
)

var writerPool = sync.Pool{
	New: func() any {
		return &Writer{buf: make([]byte, 0, poolInitCap)}
	},
}

// GetWriter returns an empty pooled Writer configured with order and text.
func GetWriter(order binary.ByteOrder, text mutf8.Mode) *Writer {
	w := writerPool.Get().(*Writer)
	w.Reset(order, text)
	return w
}

// PutWriter returns w to the pool. The caller must not use w or any
// slice obtained from w.Bytes afterwards.
func PutWriter(w *Writer) {
	if w == nil || cap(w.buf) > poolMaxCap {
		return // reject oversized
	}
	w.buf = w.buf[:0]
	writerPool.Put(w)
}
