// Package store provides a file-backed handle around a textdb database.
//
// The format has no incremental mutation: the update path is to edit the
// in-memory database and write the whole file back out. Save does that
// atomically through a temp file and rename, so readers never observe a
// half-written database.
package store

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ptero-tools/textdb/pkg/codec"
)

// TextStore owns one textdb file and its decoded contents.
type TextStore struct {
	config TextStoreConfig
	codec  *codec.DatabaseCodec
	mutex  sync.RWMutex
	db     *codec.TextDatabase
}

// NewTextStore creates a store for the configured file. Nothing is read
// until Open.
func NewTextStore(config TextStoreConfig) *TextStore {
	return &TextStore{
		config: config,
		codec:  codec.NewDatabaseCodec(config.Codec),
	}
}

// Open decodes the backing file into memory. A missing file yields a fresh
// empty database, so a new store can be built and saved in one go.
func (s *TextStore) Open() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	file, err := os.Open(s.config.FilePath)
	if os.IsNotExist(err) {
		s.db = codec.NewTextDatabase()
		return nil
	}
	if err != nil {
		return err
	}
	defer file.Close()

	db, err := s.codec.Decode(bufio.NewReader(file))
	if err != nil {
		return fmt.Errorf("decoding %s: %w", s.config.FilePath, err)
	}

	s.db = db
	return nil
}

// Header returns the file header of the open database.
func (s *TextStore) Header() (codec.Header, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.db == nil {
		return codec.Header{}, ErrNotOpen
	}
	return s.db.Header, nil
}

// Get returns the values of the first entry with the given key.
func (s *TextStore) Get(key string) ([]string, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.db == nil {
		return nil, ErrNotOpen
	}
	values, ok := s.db.Lookup(key)
	if !ok {
		return nil, ErrKeyNotFound
	}
	return values, nil
}

// GetAll returns the values of every entry with the given key, preserving
// file order. Duplicate keys are distinct entries, never merged.
func (s *TextStore) GetAll(key string) ([][]string, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.db == nil {
		return nil, ErrNotOpen
	}
	all := s.db.LookupAll(key)
	if len(all) == 0 {
		return nil, ErrKeyNotFound
	}
	return all, nil
}

// Entries returns a copy of all entries in file order.
func (s *TextStore) Entries() ([]codec.Entry, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.db == nil {
		return nil, ErrNotOpen
	}
	entries := make([]codec.Entry, len(s.db.Entries))
	copy(entries, s.db.Entries)
	return entries, nil
}

// Len returns the number of entries.
func (s *TextStore) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.db == nil {
		return 0
	}
	return len(s.db.Entries)
}

// Append adds a new entry at the end of the database. An existing entry
// with the same key is left alone; the file may carry duplicates.
func (s *TextStore) Append(key string, values ...string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.db == nil {
		return ErrNotOpen
	}
	s.db.Entries = append(s.db.Entries, codec.Entry{Key: key, Values: values})
	return nil
}

// Replace rewrites the values of the first entry with the given key, or
// appends a new entry when the key is absent.
func (s *TextStore) Replace(key string, values ...string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.db == nil {
		return ErrNotOpen
	}
	for i := range s.db.Entries {
		if s.db.Entries[i].Key == key {
			s.db.Entries[i] = codec.Entry{Key: key, Values: values}
			return nil
		}
	}
	s.db.Entries = append(s.db.Entries, codec.Entry{Key: key, Values: values})
	return nil
}

// Delete removes every entry with the given key.
func (s *TextStore) Delete(key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.db == nil {
		return ErrNotOpen
	}

	kept := s.db.Entries[:0]
	found := false
	for _, e := range s.db.Entries {
		if e.Key == key {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return ErrKeyNotFound
	}
	s.db.Entries = kept
	return nil
}

// Save encodes the database to a temp file in the same directory and
// renames it over the target, fsyncing first.
func (s *TextStore) Save() error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.db == nil {
		return ErrNotOpen
	}

	dir := filepath.Dir(s.config.FilePath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.config.FilePath)+".tmp*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	writer := bufio.NewWriter(tmp)
	if err := s.codec.Encode(writer, s.db); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("encoding %s: %w", s.config.FilePath, err)
	}
	if err := writer.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, s.config.FilePath)
}

// Path returns the backing file path.
func (s *TextStore) Path() string {
	return s.config.FilePath
}
