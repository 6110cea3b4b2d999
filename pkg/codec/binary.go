package codec

import (
	"bytes"
	"encoding/binary"
	"io"
)

const wordSize = 4

// binaryReader reads little-endian primitives from a stream while tracking
// the byte offset for error reporting.
type binaryReader struct {
	r      io.Reader
	offset int64
}

func newBinaryReader(r io.Reader) *binaryReader {
	return &binaryReader{r: r}
}

// readUint32 reads one little-endian dword. what names the field for the
// error message.
func (br *binaryReader) readUint32(what string) (uint32, error) {
	start := br.offset

	var buf [wordSize]byte
	n, err := io.ReadFull(br.r, buf[:])
	br.offset += int64(n)
	if err != nil {
		return 0, decodeErrorf(start, ErrTruncatedInput, "reading %s", what)
	}

	return binary.LittleEndian.Uint32(buf[:]), nil
}

// readBytes reads exactly n bytes. The copy goes through io.CopyN so a
// corrupt length field cannot make us allocate the full declared size before
// the stream runs dry.
func (br *binaryReader) readBytes(n uint32, what string) ([]byte, error) {
	start := br.offset

	var buf bytes.Buffer
	read, err := io.CopyN(&buf, br.r, int64(n))
	br.offset += read
	if err != nil {
		return nil, decodeErrorf(start, ErrTruncatedInput, "reading %s (%d bytes)", what, n)
	}

	return buf.Bytes(), nil
}

// binaryWriter writes little-endian primitives. Write errors are sink
// errors only; the writer keeps no state beyond the destination.
type binaryWriter struct {
	w io.Writer
}

func newBinaryWriter(w io.Writer) *binaryWriter {
	return &binaryWriter{w: w}
}

func (bw *binaryWriter) writeUint32(v uint32) error {
	var buf [wordSize]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := bw.w.Write(buf[:])
	return err
}

func (bw *binaryWriter) writeBytes(b []byte) error {
	_, err := bw.w.Write(b)
	return err
}
