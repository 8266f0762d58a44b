// Package blob tracks transient download handles.
//
// A handle is created per download and revoked once the download has been
// handed off. Release is scheduled, not awaited: Release returns at once
// and the handle disappears on the next timer tick.
package blob

import (
	"fmt"
	"sync"
	"time"
)

// URLPrefix starts every handle URL. The remainder is the handle id.
const URLPrefix = "blob:lumiere/"

// Blob is an in-memory body addressed by a handle URL.
type Blob struct {
	URL         string
	ContentType string
	Body        []byte
}

// Registry owns the live handles.
type Registry struct {
	mu    sync.Mutex
	next  uint64
	blobs map[string]*Blob
	// OnRevoke, if set, is called after a handle has been removed.
	OnRevoke func(url string)
}

func NewRegistry() *Registry {
	return &Registry{blobs: make(map[string]*Blob)}
}

// Create registers body and returns its handle.
func (r *Registry) Create(body []byte, contentType string) *Blob {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	b := &Blob{
		URL:         fmt.Sprintf("%s%d", URLPrefix, r.next),
		ContentType: contentType,
		Body:        body,
	}
	r.blobs[b.URL] = b
	return b
}

// Lookup returns a live handle.
func (r *Registry) Lookup(url string) (*Blob, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.blobs[url]
	return b, ok
}

// Revoke invalidates a handle. Revoking an unknown handle is a no-op.
func (r *Registry) Revoke(url string) {
	r.mu.Lock()
	_, ok := r.blobs[url]
	delete(r.blobs, url)
	hook := r.OnRevoke
	r.mu.Unlock()
	if ok && hook != nil {
		hook(url)
	}
}

// Release schedules Revoke on a zero-delay timer so it runs after the
// caller has returned.
func (r *Registry) Release(url string) {
	time.AfterFunc(0, func() { r.Revoke(url) })
}

// Len reports the number of live handles.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.blobs)
}
