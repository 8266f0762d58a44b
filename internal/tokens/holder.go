package tokens

import (
	"sync"

	"github.com/agentic-research/lumiere/api"
)

// Holder is a thread-safe wrapper that lets a rebuilt document replace the
// live one while readers keep serving.
type Holder struct {
	mu      sync.RWMutex
	current *api.Document
	version uint64
}

func NewHolder(initial *api.Document) *Holder {
	return &Holder{current: initial}
}

// Swap replaces the current document.
func (h *Holder) Swap(doc *api.Document) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = doc
	h.version++
}

// Current returns the live document. Callers must not mutate it.
func (h *Holder) Current() *api.Document {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Version counts swaps since construction.
func (h *Holder) Version() uint64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.version
}
