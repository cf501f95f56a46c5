package protocol

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// Writer builds one packet payload field by field.
type Writer struct {
	buf []byte
}

func NewWriter(capacity int) *Writer {
	return &Writer{buf: make([]byte, 0, capacity)}
}

// Bytes returns the accumulated payload. The slice aliases the writer buffer.
func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) Len() int {
	return len(w.buf)
}

func (w *Writer) WriteVarInt(v int32) *Writer {
	w.buf = AppendVarInt(w.buf, v)
	return w
}

// WriteString writes a varint byte length followed by the UTF-8 bytes of s.
func (w *Writer) WriteString(s string) *Writer {
	w.buf = AppendVarInt(w.buf, int32(len(s)))
	w.buf = append(w.buf, s...)
	return w
}

func (w *Writer) WriteUint16(v uint16) *Writer {
	w.buf = binary.BigEndian.AppendUint16(w.buf, v)
	return w
}

func (w *Writer) WriteUint64(v uint64) *Writer {
	w.buf = binary.BigEndian.AppendUint64(w.buf, v)
	return w
}

func (w *Writer) WriteBool(v bool) *Writer {
	if v {
		w.buf = append(w.buf, 1)
	} else {
		w.buf = append(w.buf, 0)
	}
	return w
}

func (w *Writer) WriteUUID(id uuid.UUID) *Writer {
	w.buf = append(w.buf, id[:]...)
	return w
}

func (w *Writer) WriteBytes(b []byte) *Writer {
	w.buf = append(w.buf, b...)
	return w
}
