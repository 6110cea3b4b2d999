package codec

import (
	"fmt"
)

// Entry is one key record: the key plus its ordered list of string values.
// An empty value list is legal. Two entries may share a key; the codec never
// merges them, since a file may encode duplicates intentionally.
type Entry struct {
	Key    string
	Values []string
}

// RecordCodec reads and writes a single key record. It assumes the caller
// has already ruled out the stream terminator before handing over a key
// length, which is why decodeRest takes the first word pre-consumed.
type RecordCodec struct {
	opts Options
}

// NewRecordCodec creates a record codec with the given wire conventions.
func NewRecordCodec(opts Options) *RecordCodec {
	return &RecordCodec{opts: opts}
}

// decodeRest reads the remainder of a record whose leading key-length word
// keyLen was already consumed by the terminator check.
func (c *RecordCodec) decodeRest(br *binaryReader, keyLen uint32) (Entry, error) {
	keyOffset := br.offset
	raw, err := br.readBytes(keyLen, "key")
	if err != nil {
		return Entry{}, err
	}

	key, err := c.opts.decodeText(raw, keyOffset, "key")
	if err != nil {
		return Entry{}, err
	}

	values, err := c.decodeValues(br)
	if err != nil {
		return Entry{}, err
	}

	return Entry{Key: key, Values: values}, nil
}

// decodeValues reads the count-prefixed value sequence of one record.
func (c *RecordCodec) decodeValues(br *binaryReader) ([]string, error) {
	count, err := br.readUint32("value count")
	if err != nil {
		return nil, err
	}

	var values []string
	for i := uint32(0); i < count; i++ {
		length, err := br.readUint32("value length")
		if err != nil {
			return nil, err
		}

		valueOffset := br.offset
		raw, err := br.readBytes(length, "value")
		if err != nil {
			return nil, err
		}

		value, err := c.opts.decodeText(raw, valueOffset, "value")
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}

	return values, nil
}

// encode writes one complete record: key length, key, value sequence.
func (c *RecordCodec) encode(bw *binaryWriter, e Entry) error {
	raw, err := c.opts.encodeText(e.Key, "key")
	if err != nil {
		return err
	}
	if err := bw.writeUint32(uint32(len(raw))); err != nil {
		return fmt.Errorf("writing key length: %w", err)
	}
	if err := bw.writeBytes(raw); err != nil {
		return fmt.Errorf("writing key: %w", err)
	}

	if err := bw.writeUint32(uint32(len(e.Values))); err != nil {
		return fmt.Errorf("writing value count: %w", err)
	}
	for _, v := range e.Values {
		raw, err := c.opts.encodeText(v, "value")
		if err != nil {
			return err
		}
		if err := bw.writeUint32(uint32(len(raw))); err != nil {
			return fmt.Errorf("writing value length: %w", err)
		}
		if err := bw.writeBytes(raw); err != nil {
			return fmt.Errorf("writing value: %w", err)
		}
	}

	return nil
}
