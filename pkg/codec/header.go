package codec

import (
	"encoding/binary"
)

// Signature is the 4-byte tag at the start of every textdb file.
var Signature = [4]byte{'T', 'D', 'B', 0}

// HeaderSize is the fixed size of the file prologue in bytes.
const HeaderSize = 16

// DefaultFlag is the flag value observed in every known file.
const DefaultFlag = 1

// Header is the fixed 16-byte file prologue. Only the signature is
// interpreted; the flag and the reserved bytes are captured verbatim so that
// re-encoding an unmodified database reproduces the header bit for bit.
type Header struct {
	Signature [4]byte
	Flag      uint32
	Reserved  [8]byte
}

// NewHeader returns the header for a freshly built database.
func NewHeader() Header {
	return Header{Signature: Signature, Flag: DefaultFlag}
}

// decodeHeader reads and validates the 16-byte prologue.
func decodeHeader(br *binaryReader) (Header, error) {
	start := br.offset

	raw, err := br.readBytes(HeaderSize, "header")
	if err != nil {
		return Header{}, err
	}

	var h Header
	copy(h.Signature[:], raw[0:4])
	h.Flag = binary.LittleEndian.Uint32(raw[4:8])
	copy(h.Reserved[:], raw[8:16])

	if h.Signature != Signature {
		return Header{}, decodeErrorf(start, ErrBadSignature, "want %q, got %q", Signature[:], raw[0:4])
	}

	return h, nil
}

// encode writes the 16-byte prologue.
func (h Header) encode(bw *binaryWriter) error {
	var buf [HeaderSize]byte
	copy(buf[0:4], h.Signature[:])
	binary.LittleEndian.PutUint32(buf[4:8], h.Flag)
	copy(buf[8:16], h.Reserved[:])
	return bw.writeBytes(buf[:])
}
