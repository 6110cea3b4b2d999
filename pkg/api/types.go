package api

import (
	"github.com/ptero-tools/textdb/pkg/codec"
)

// APIResponse represents a standard API response.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds configuration for the dictionary service.
type ServerConfig struct {
	Port   int
	Bind   string
	APIKey string // empty disables authentication
}

// Dictionary is the read surface the handlers need. *store.TextStore
// satisfies it.
type Dictionary interface {
	Header() (codec.Header, error)
	Entries() ([]codec.Entry, error)
	Get(key string) ([]string, error)
	GetAll(key string) ([][]string, error)
	Len() int
}

// EntryResponse is one key record in API responses.
type EntryResponse struct {
	Key    string   `json:"key"`
	Values []string `json:"values"`
}

// EntriesPage is a paged listing of entries.
type EntriesPage struct {
	Total   int             `json:"total"`
	Offset  int             `json:"offset"`
	Entries []EntryResponse `json:"entries"`
}

// KeyResponse is the answer to a key lookup. Matches carries the value list
// of every entry with the key, in file order, so duplicate keys stay
// observable.
type KeyResponse struct {
	Key     string     `json:"key"`
	Matches [][]string `json:"matches"`
}

// HealthResponse reports service health.
type HealthResponse struct {
	Status  string `json:"status"`
	Entries int    `json:"entries"`
	Flag    uint32 `json:"flag"`
}
