package codec

import (
	"bytes"
	"fmt"
	"io"
)

// sentinelWord is the all-ones dword. Two in a row close the record stream;
// no record's key length may legitimately take this value.
const sentinelWord = 0xFFFFFFFF

// TextDatabase is a decoded textdb file: the header plus every entry in
// file order. Order is semantically significant and survives a round trip.
type TextDatabase struct {
	Header  Header
	Entries []Entry
}

// NewTextDatabase returns an empty database with a fresh header.
func NewTextDatabase() *TextDatabase {
	return &TextDatabase{Header: NewHeader()}
}

// Lookup returns the values of the first entry with the given key.
func (db *TextDatabase) Lookup(key string) ([]string, bool) {
	for _, e := range db.Entries {
		if e.Key == key {
			return e.Values, true
		}
	}
	return nil, false
}

// LookupAll returns the values of every entry with the given key, in file
// order. Duplicate keys are legal and must stay observable.
func (db *TextDatabase) LookupAll(key string) [][]string {
	var all [][]string
	for _, e := range db.Entries {
		if e.Key == key {
			all = append(all, e.Values)
		}
	}
	return all
}

// decodeState drives the decode loop. Keeping the states explicit separates
// "stopped because done" from "stopped because corrupt".
type decodeState int

const (
	stateReadingHeader decodeState = iota
	stateReadingRecords
	stateDone
	stateFailed
)

// DatabaseCodec decodes and encodes whole textdb files.
type DatabaseCodec struct {
	opts    Options
	records *RecordCodec
}

// NewDatabaseCodec creates a database codec with the given wire conventions.
func NewDatabaseCodec(opts Options) *DatabaseCodec {
	return &DatabaseCodec{
		opts:    opts,
		records: NewRecordCodec(opts),
	}
}

// Decode parses one complete textdb stream: header, records until the
// terminator. On failure no partial database is returned.
func (c *DatabaseCodec) Decode(r io.Reader) (*TextDatabase, error) {
	br := newBinaryReader(r)
	db := &TextDatabase{}

	state := stateReadingHeader
	var err error
	for {
		switch state {
		case stateReadingHeader:
			db.Header, err = decodeHeader(br)
			if err != nil {
				state = stateFailed
				break
			}
			state = stateReadingRecords

		case stateReadingRecords:
			var word uint32
			word, err = br.readUint32("record key length")
			if err != nil {
				state = stateFailed
				break
			}
			if word == sentinelWord {
				if err = consumeTerminator(br); err != nil {
					state = stateFailed
					break
				}
				state = stateDone
				break
			}

			var entry Entry
			entry, err = c.records.decodeRest(br, word)
			if err != nil {
				state = stateFailed
				break
			}
			db.Entries = append(db.Entries, entry)

		case stateDone:
			return db, nil

		case stateFailed:
			return nil, err
		}
	}
}

// DecodeBytes parses a complete in-memory textdb image.
func (c *DatabaseCodec) DecodeBytes(data []byte) (*TextDatabase, error) {
	return c.Decode(bytes.NewReader(data))
}

// consumeTerminator reads the second sentinel word after a leading one has
// been seen. A single sentinel followed by anything else is a corrupt file,
// not end of stream.
func consumeTerminator(br *binaryReader) error {
	start := br.offset
	second, err := br.readUint32("terminator")
	if err != nil {
		return err
	}
	if second != sentinelWord {
		return decodeErrorf(start, ErrMalformedTerminator, "second terminator word is 0x%08X", second)
	}
	return nil
}

// Encode writes db as a complete textdb stream: header, entries in order,
// terminator. A well-formed in-memory database always encodes cleanly; the
// only failure modes are sink errors and strings the configured encoding
// cannot represent.
func (c *DatabaseCodec) Encode(w io.Writer, db *TextDatabase) error {
	bw := newBinaryWriter(w)

	if err := db.Header.encode(bw); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i := range db.Entries {
		if err := c.records.encode(bw, db.Entries[i]); err != nil {
			return fmt.Errorf("writing record %d: %w", i, err)
		}
	}

	if err := bw.writeUint32(sentinelWord); err != nil {
		return fmt.Errorf("writing terminator: %w", err)
	}
	if err := bw.writeUint32(sentinelWord); err != nil {
		return fmt.Errorf("writing terminator: %w", err)
	}

	return nil
}

// EncodeBytes serializes db into a fresh byte slice.
func (c *DatabaseCodec) EncodeBytes(db *TextDatabase) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Encode(&buf, db); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
