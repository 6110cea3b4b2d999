// Package codec implements the textdb binary dictionary format.
//
// A textdb file is a flat, length-prefixed dictionary: a fixed header, a
// stream of key records each carrying an ordered list of string values, and
// a two-word terminator. All integers are little-endian.
//
// # File Layout
//
//	Header (16 bytes):
//	  [Signature(4)] expected "TDB\x00"
//	  [Flag(4)]      observed constant 1, carried verbatim
//	  [Reserved(8)]  undocumented, carried verbatim
//
//	Record, repeated until the terminator:
//	  [KeyLen(4)] [Key(KeyLen)] [ValueCount(4)] ([ValueLen(4)] [Value(ValueLen)])*
//
//	Terminator:
//	  [0xFFFFFFFF] [0xFFFFFFFF]
//
// A record's key length can never legitimately be 0xFFFFFFFF, so a leading
// all-ones word is the unambiguous end-of-stream signal. A single all-ones
// word followed by anything else is corruption, not end of stream.
//
// # Conventions
//
// Producers of the format disagree on whether length fields count a trailing
// NUL byte, and older game files are not UTF-8. Both conventions are
// selectable through Options; the decoder and encoder always mirror each
// other so a decode/encode round trip is byte-identical, reserved header
// bytes included.
//
// # Usage
//
//	c := codec.NewDatabaseCodec(codec.Options{})
//
//	db, err := c.DecodeBytes(data)
//	if err != nil {
//	    return err
//	}
//
//	out, err := c.EncodeBytes(db)
//	if err != nil {
//	    return err
//	}
//
// Decode failures wrap one of the sentinel errors (ErrBadSignature,
// ErrTruncatedInput, ErrInvalidEncoding, ErrMalformedTerminator) in a
// *DecodeError carrying the byte offset of the failure. The format has no
// checksums or redundancy, so nothing is retried or recovered: any violation
// is a definitive failure and no partial database is returned.
//
// # Thread Safety
//
// DatabaseCodec and RecordCodec are stateless and safe for concurrent use.
// Each Decode call owns its cursor, so independent files may be decoded in
// parallel. Entries are read-only once constructed.
package codec
