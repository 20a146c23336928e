package ui

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dhamidi/jfrag/analysis"
)

type Entry struct {
	ID        string
	CreatedAt time.Time
	Report    *analysis.Report
}

// History keeps the most recent analyses in memory. Once full, adding an
// entry evicts the oldest one.
type History struct {
	mu      sync.RWMutex
	limit   int
	entries map[string]*Entry
	order   []string
}

func NewHistory(limit int) *History {
	if limit < 1 {
		limit = 1
	}
	return &History{
		limit:   limit,
		entries: make(map[string]*Entry),
	}
}

func (h *History) Add(report *analysis.Report) string {
	h.mu.Lock()
	defer h.mu.Unlock()

	entry := &Entry{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		Report:    report,
	}
	h.entries[entry.ID] = entry
	h.order = append(h.order, entry.ID)

	for len(h.order) > h.limit {
		delete(h.entries, h.order[0])
		h.order = h.order[1:]
	}
	return entry.ID
}

func (h *History) Get(id string) (*Entry, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	entry, ok := h.entries[id]
	return entry, ok
}

// List returns the stored entries, newest first.
func (h *History) List() []*Entry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	entries := make([]*Entry, 0, len(h.order))
	for i := len(h.order) - 1; i >= 0; i-- {
		entries = append(entries, h.entries[h.order[i]])
	}
	return entries
}

func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.order)
}
