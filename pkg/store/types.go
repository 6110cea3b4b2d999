package store

import (
	"github.com/ptero-tools/textdb/pkg/codec"
)

// TextStoreConfig holds configuration for a file-backed text store.
type TextStoreConfig struct {
	FilePath string        // Path to the textdb file
	Codec    codec.Options // Wire conventions for the file
}

// Errors
var (
	ErrKeyNotFound = &StoreError{"key not found"}
	ErrNotOpen     = &StoreError{"store not open"}
)

// StoreError represents a text store error.
type StoreError struct {
	Message string
}

func (e *StoreError) Error() string {
	return e.Message
}
