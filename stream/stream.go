// Package stream reads and writes the primitive values used by the binary
// map format: big-endian 8, 16 and 32-bit integers and length-prefixed
// strings.
package stream

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// ErrStringTooLong is returned when a string does not fit a 16-bit length prefix.
var ErrStringTooLong = errors.New("string too long")

// Writer writes primitive values to an underlying stream. Writes are
// buffered; call Flush when done.
type Writer struct {
	w   *bufio.Writer
	buf [4]byte
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

func (w *Writer) WriteInt8(v int8) error {
	return w.w.WriteByte(byte(v))
}

func (w *Writer) WriteInt16(v int16) error {
	binary.BigEndian.PutUint16(w.buf[:2], uint16(v))
	_, err := w.w.Write(w.buf[:2])
	return err
}

func (w *Writer) WriteInt32(v int32) error {
	binary.BigEndian.PutUint32(w.buf[:4], uint32(v))
	_, err := w.w.Write(w.buf[:4])
	return err
}

// WriteString writes an unsigned 16-bit byte length followed by the UTF-8 bytes.
func (w *Writer) WriteString(s string) error {
	if len(s) > math.MaxUint16 {
		return fmt.Errorf("write string of %d bytes: %w", len(s), ErrStringTooLong)
	}
	binary.BigEndian.PutUint16(w.buf[:2], uint16(len(s)))
	if _, err := w.w.Write(w.buf[:2]); err != nil {
		return err
	}
	_, err := w.w.WriteString(s)
	return err
}

func (w *Writer) Flush() error {
	return w.w.Flush()
}

// Reader reads primitive values written by Writer.
type Reader struct {
	r   *bufio.Reader
	buf [4]byte
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

func (r *Reader) ReadInt8() (int8, error) {
	b, err := r.r.ReadByte()
	if err != nil {
		return 0, unexpected(err)
	}
	return int8(b), nil
}

func (r *Reader) ReadInt16() (int16, error) {
	if _, err := io.ReadFull(r.r, r.buf[:2]); err != nil {
		return 0, unexpected(err)
	}
	return int16(binary.BigEndian.Uint16(r.buf[:2])), nil
}

func (r *Reader) ReadInt32() (int32, error) {
	if _, err := io.ReadFull(r.r, r.buf[:4]); err != nil {
		return 0, unexpected(err)
	}
	return int32(binary.BigEndian.Uint32(r.buf[:4])), nil
}

func (r *Reader) ReadString() (string, error) {
	if _, err := io.ReadFull(r.r, r.buf[:2]); err != nil {
		return "", unexpected(err)
	}
	n := binary.BigEndian.Uint16(r.buf[:2])
	data := make([]byte, n)
	if _, err := io.ReadFull(r.r, data); err != nil {
		return "", unexpected(err)
	}
	return string(data), nil
}

// unexpected turns a clean EOF in the middle of a value into ErrUnexpectedEOF;
// every read here expects a value to follow.
func unexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
