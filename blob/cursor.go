package blob

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Reader is a cursor over a byte slice, advancing by exactly the
// number of bytes each primitive consumes. A read that would run past
// the end of the slice fails with ErrCorruptBlob rather than
// returning a short result: there are no partial reads.
type Reader struct {
	data []byte
	pos  int
}

// NewReader wraps data in a Reader starting at offset zero.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
} // func NewReader(data []byte) *Reader

// Remaining returns the number of bytes not yet consumed.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
} // func (r *Reader) Remaining() int

// Done reports whether the cursor has consumed the entire buffer.
func (r *Reader) Done() bool {
	return r.pos >= len(r.data)
} // func (r *Reader) Done() bool

func (r *Reader) need(n int) error {
	if r.Remaining() < n {
		logger.Printf("[ERROR] Blob reader underflow: need %d bytes, have %d\n", n, r.Remaining())
		return fmt.Errorf("%w: need %d bytes, have %d", ErrCorruptBlob, n, r.Remaining())
	}
	return nil
} // func (r *Reader) need(n int) error

// Bytes consumes and returns the next n bytes verbatim.
func (r *Reader) Bytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
} // func (r *Reader) Bytes(n int) ([]byte, error)

// Rest consumes and returns every byte not yet read. It is useful at
// the tail of a blob to assert that no unexpected trailing bytes
// remain.
func (r *Reader) Rest() []byte {
	b := r.data[r.pos:]
	r.pos = len(r.data)
	return b
} // func (r *Reader) Rest() []byte

// Uint8 reads a single byte.
func (r *Reader) Uint8() (uint8, error) {
	b, err := r.Bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
} // func (r *Reader) Uint8() (uint8, error)

// Uint16 reads a big-endian 16-bit unsigned integer.
func (r *Reader) Uint16() (uint16, error) {
	b, err := r.Bytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
} // func (r *Reader) Uint16() (uint16, error)

// Uint32 reads a big-endian 32-bit unsigned integer.
func (r *Reader) Uint32() (uint32, error) {
	b, err := r.Bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
} // func (r *Reader) Uint32() (uint32, error)

// Uint64 reads a big-endian 64-bit unsigned integer.
func (r *Reader) Uint64() (uint64, error) {
	b, err := r.Bytes(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
} // func (r *Reader) Uint64() (uint64, error)

// Int32 reads a big-endian signed 32-bit integer.
func (r *Reader) Int32() (int32, error) {
	u, err := r.Uint32()
	return int32(u), err
} // func (r *Reader) Int32() (int32, error)

// Float64 reads a big-endian IEEE-754 double.
func (r *Reader) Float64() (float64, error) {
	u, err := r.Uint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(u), nil
} // func (r *Reader) Float64() (float64, error)

// String reads a 4-byte big-endian length prefix followed by that
// many bytes of UTF-8 text.
func (r *Reader) String() (string, error) {
	n, err := r.Uint32()
	if err != nil {
		return "", err
	}
	b, err := r.Bytes(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
} // func (r *Reader) String() (string, error)

// Extent reads a 4-byte big-endian length prefix followed by that
// many bytes, and returns a Reader scoped to just that payload. This
// is the "tagged extent" framing used by track-data, the high-res
// waveform and the overview waveform.
func (r *Reader) Extent() (*Reader, error) {
	n, err := r.Uint32()
	if err != nil {
		return nil, err
	}
	b, err := r.Bytes(int(n))
	if err != nil {
		return nil, err
	}
	return NewReader(b), nil
} // func (r *Reader) Extent() (*Reader, error)

// Writer accumulates bytes written by the primitives below, mirroring
// Reader's framing exactly so that encode/decode round-trip.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
} // func NewWriter() *Writer

// Bytes returns the bytes written so far.
func (w *Writer) Bytes() []byte {
	return w.buf
} // func (w *Writer) Bytes() []byte

// PutBytes appends b verbatim.
func (w *Writer) PutBytes(b []byte) {
	w.buf = append(w.buf, b...)
} // func (w *Writer) PutBytes(b []byte)

// PutUint8 appends a single byte.
func (w *Writer) PutUint8(v uint8) {
	w.buf = append(w.buf, v)
} // func (w *Writer) PutUint8(v uint8)

// PutUint16 appends a big-endian 16-bit unsigned integer.
func (w *Writer) PutUint16(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
} // func (w *Writer) PutUint16(v uint16)

// PutUint32 appends a big-endian 32-bit unsigned integer.
func (w *Writer) PutUint32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
} // func (w *Writer) PutUint32(v uint32)

// PutUint64 appends a big-endian 64-bit unsigned integer.
func (w *Writer) PutUint64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
} // func (w *Writer) PutUint64(v uint64)

// PutInt32 appends a big-endian signed 32-bit integer.
func (w *Writer) PutInt32(v int32) {
	w.PutUint32(uint32(v))
} // func (w *Writer) PutInt32(v int32)

// PutFloat64 appends a big-endian IEEE-754 double.
func (w *Writer) PutFloat64(v float64) {
	w.PutUint64(math.Float64bits(v))
} // func (w *Writer) PutFloat64(v float64)

// PutString appends a 4-byte big-endian length prefix followed by s's
// UTF-8 bytes.
func (w *Writer) PutString(s string) {
	w.PutUint32(uint32(len(s)))
	w.buf = append(w.buf, s...)
} // func (w *Writer) PutString(s string)

// PutExtent appends payload framed as a tagged extent: a 4-byte
// big-endian length followed by the payload itself.
func (w *Writer) PutExtent(payload []byte) {
	w.PutUint32(uint32(len(payload)))
	w.buf = append(w.buf, payload...)
} // func (w *Writer) PutExtent(payload []byte)
