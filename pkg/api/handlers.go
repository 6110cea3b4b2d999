package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ptero-tools/textdb/pkg/store"
)

// defaultPageSize bounds entry listings when the client does not ask for a
// specific limit.
const defaultPageSize = 100

// Server handles the dictionary service endpoints.
type Server struct {
	dict    Dictionary
	config  ServerConfig
	metrics *Metrics
}

// NewServer creates a server over an opened dictionary.
func NewServer(dict Dictionary, config ServerConfig, metrics *Metrics) *Server {
	metrics.SetEntriesTotal(dict.Len())
	return &Server{
		dict:    dict,
		config:  config,
		metrics: metrics,
	}
}

// handleHealth reports service health and basic database facts.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealthCheck()

	header, err := s.dict.Header()
	if err != nil {
		sendError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	sendSuccess(w, HealthResponse{
		Status:  "ok",
		Entries: s.dict.Len(),
		Flag:    header.Flag,
	})
}

// handleListEntries returns a page of entries in file order.
// Query parameters: offset (default 0), limit (default 100).
func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.dict.Entries()
	if err != nil {
		sendError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	offset := queryInt(r, "offset", 0)
	limit := queryInt(r, "limit", defaultPageSize)
	if offset < 0 || limit <= 0 {
		sendError(w, "offset must be >= 0 and limit > 0", http.StatusBadRequest)
		return
	}

	page := EntriesPage{Total: len(entries), Offset: offset}
	for i := offset; i < len(entries) && i < offset+limit; i++ {
		page.Entries = append(page.Entries, EntryResponse{
			Key:    entries[i].Key,
			Values: entries[i].Values,
		})
	}

	sendSuccess(w, page)
}

// handleGetKey returns every match for one key.
func (s *Server) handleGetKey(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	matches, err := s.dict.GetAll(key)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			s.metrics.RecordLookup(false)
			sendError(w, "key not found", http.StatusNotFound)
			return
		}
		sendError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	s.metrics.RecordLookup(true)
	sendSuccess(w, KeyResponse{Key: key, Matches: matches})
}

// handleListKeys returns the keys in file order, duplicates included.
func (s *Server) handleListKeys(w http.ResponseWriter, r *http.Request) {
	entries, err := s.dict.Entries()
	if err != nil {
		sendError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, e.Key)
	}
	sendSuccess(w, keys)
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	return v
}
