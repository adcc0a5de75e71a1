// Package persistence implements the versioned binary format for the
// gesture store. The format is big-endian (network order) for
// compatibility with stores written by the original implementation.
package persistence

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
)

// byteOrder is fixed for every reader and writer. Legacy stores were
// written in network order; changing this breaks on-disk compatibility.
var byteOrder = binary.BigEndian

// DecodeError indicates truncated or malformed binary input. Field
// names the value that could not be read.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type DecodeError struct {
	Field string
	cause error
}

func (e *DecodeError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("decode %s: %v", e.Field, e.cause)
	}
	return fmt.Sprintf("decode %s: malformed input", e.Field)
}

func (e *DecodeError) Unwrap() error { return e.cause }

// Writer writes big-endian primitives to an underlying stream.
type Writer struct {
	w   *bufio.Writer
	buf [8]byte
}

// NewWriter creates a new binary writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriterSize(w, 32*1024)}
}

// Flush flushes buffered output to the underlying stream.
func (bw *Writer) Flush() error { return bw.w.Flush() }

// WriteInt16 writes a 16-bit integer.
func (bw *Writer) WriteInt16(v int16) error {
	byteOrder.PutUint16(bw.buf[:2], uint16(v))
	_, err := bw.w.Write(bw.buf[:2])
	return err
}

// WriteInt32 writes a 32-bit integer.
func (bw *Writer) WriteInt32(v int32) error {
	byteOrder.PutUint32(bw.buf[:4], uint32(v))
	_, err := bw.w.Write(bw.buf[:4])
	return err
}

// WriteInt64 writes a 64-bit integer.
func (bw *Writer) WriteInt64(v int64) error {
	byteOrder.PutUint64(bw.buf[:8], uint64(v))
	_, err := bw.w.Write(bw.buf[:8])
	return err
}

// WriteFloat32 writes a 32-bit float using its IEEE 754 bit pattern, so
// values round-trip bit-for-bit.
func (bw *Writer) WriteFloat32(v float32) error {
	byteOrder.PutUint32(bw.buf[:4], math.Float32bits(v))
	_, err := bw.w.Write(bw.buf[:4])
	return err
}

// WriteString writes a UTF-8 string prefixed with its byte length as a
// 16-bit integer.
func (bw *Writer) WriteString(s string) error {
	if len(s) > math.MaxUint16 {
		return fmt.Errorf("string too long: %d bytes", len(s))
	}
	byteOrder.PutUint16(bw.buf[:2], uint16(len(s)))
	if _, err := bw.w.Write(bw.buf[:2]); err != nil {
		return err
	}
	_, err := bw.w.WriteString(s)
	return err
}

// Reader reads big-endian primitives from an underlying stream. Every
// read names the field it is decoding so short reads surface as a
// DecodeError for that field.
type Reader struct {
	r   *bufio.Reader
	buf [8]byte
}

// NewReader creates a new binary reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReaderSize(r, 32*1024)}
}

func (br *Reader) fill(n int, field string) error {
	if _, err := io.ReadFull(br.r, br.buf[:n]); err != nil {
		return &DecodeError{Field: field, cause: err}
	}
	return nil
}

// ReadInt16 reads a 16-bit integer.
func (br *Reader) ReadInt16(field string) (int16, error) {
	if err := br.fill(2, field); err != nil {
		return 0, err
	}
	return int16(byteOrder.Uint16(br.buf[:2])), nil
}

// ReadInt32 reads a 32-bit integer.
func (br *Reader) ReadInt32(field string) (int32, error) {
	if err := br.fill(4, field); err != nil {
		return 0, err
	}
	return int32(byteOrder.Uint32(br.buf[:4])), nil
}

// ReadInt64 reads a 64-bit integer.
func (br *Reader) ReadInt64(field string) (int64, error) {
	if err := br.fill(8, field); err != nil {
		return 0, err
	}
	return int64(byteOrder.Uint64(br.buf[:8])), nil
}

// ReadFloat32 reads a 32-bit float from its IEEE 754 bit pattern.
func (br *Reader) ReadFloat32(field string) (float32, error) {
	if err := br.fill(4, field); err != nil {
		return 0, err
	}
	return math.Float32frombits(byteOrder.Uint32(br.buf[:4])), nil
}

// ReadString reads a UTF-8 string prefixed with its byte length as a
// 16-bit integer.
func (br *Reader) ReadString(field string) (string, error) {
	if err := br.fill(2, field); err != nil {
		return "", err
	}
	n := int(byteOrder.Uint16(br.buf[:2]))
	b := make([]byte, n)
	if _, err := io.ReadFull(br.r, b); err != nil {
		return "", &DecodeError{Field: field, cause: err}
	}
	return string(b), nil
}

// SaveToFile writes a file atomically: the payload goes to a temp file
// in the target directory which is then renamed over the destination,
// so a failed save leaves any prior file untouched. Parent directories
// are created as needed.
func SaveToFile(filename string, writeFunc func(w io.Writer) error) error {
	dir := filepath.Dir(filename)
	base := filepath.Base(filename)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	// Write to a temp file in the same directory to ensure rename is atomic.
	tmp, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	_ = tmp.Chmod(0o644)

	if err := writeFunc(tmp); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmpName, filename); err != nil {
		return err
	}

	// Best-effort: fsync the directory so the rename is durable on POSIX.
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}

	// Success: prevent deferred cleanup from removing the final file.
	tmpName = ""
	return nil
}

// LoadFromFile opens a file and hands it to readFunc.
func LoadFromFile(filename string, readFunc func(r io.Reader) error) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	return readFunc(f)
}
