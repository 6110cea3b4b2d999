// Package export converts between textdb databases and a readable YAML
// tree. The YAML form keeps entry order and duplicate keys (entries are a
// sequence, not a mapping) and carries the opaque header bytes as hex, so
// export → import → encode reproduces the original file byte for byte.
package export

import (
	"encoding/hex"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ptero-tools/textdb/pkg/codec"
)

// Document is the YAML form of a whole textdb file.
type Document struct {
	Header  HeaderDoc  `yaml:"header"`
	Entries []EntryDoc `yaml:"entries"`
}

// HeaderDoc carries the header fields the binary form stores. The signature
// is constant and therefore not exported. Flag is a pointer so a
// hand-written document may omit it and get the observed default, while a
// flag of 0 in a real file still survives the round trip.
type HeaderDoc struct {
	Flag     *uint32 `yaml:"flag,omitempty"`
	Reserved string  `yaml:"reserved"` // 8 bytes as 16 hex digits
}

// EntryDoc is one key record.
type EntryDoc struct {
	Key    string   `yaml:"key"`
	Values []string `yaml:"values,omitempty"`
}

// Marshal renders db as YAML.
func Marshal(db *codec.TextDatabase) ([]byte, error) {
	flag := db.Header.Flag
	doc := Document{
		Header: HeaderDoc{
			Flag:     &flag,
			Reserved: hex.EncodeToString(db.Header.Reserved[:]),
		},
	}
	for _, e := range db.Entries {
		doc.Entries = append(doc.Entries, EntryDoc{Key: e.Key, Values: e.Values})
	}

	return yaml.Marshal(&doc)
}

// Unmarshal rebuilds a database from its YAML form.
func Unmarshal(data []byte) (*codec.TextDatabase, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing export: %w", err)
	}

	db := codec.NewTextDatabase()
	if doc.Header.Flag != nil {
		db.Header.Flag = *doc.Header.Flag
	}

	if doc.Header.Reserved != "" {
		raw, err := hex.DecodeString(doc.Header.Reserved)
		if err != nil {
			return nil, fmt.Errorf("parsing reserved bytes: %w", err)
		}
		if len(raw) != len(db.Header.Reserved) {
			return nil, fmt.Errorf("reserved bytes: want %d bytes, got %d", len(db.Header.Reserved), len(raw))
		}
		copy(db.Header.Reserved[:], raw)
	}

	for _, e := range doc.Entries {
		db.Entries = append(db.Entries, codec.Entry{Key: e.Key, Values: e.Values})
	}

	return db, nil
}
