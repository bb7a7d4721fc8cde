package sessions

import (
	"context"
	"net/http"
	"sync"
)

const (
	FlashSuccess = "success"
	FlashError   = "error"
)

type Flash struct {
	Kind    string
	Message string
}

func (f Flash) IsError() bool { return f.Kind == FlashError }

// Flasher collects notifications raised while handling one request. The
// handler either renders them directly with Pending or carries them across
// a redirect with Save.
type Flasher struct {
	mu      sync.Mutex
	pending []Flash
}

func NewFlasher() *Flasher { return &Flasher{} }

func (f *Flasher) Success(_ context.Context, msg string) { f.add(FlashSuccess, msg) }

func (f *Flasher) Error(_ context.Context, msg string) { f.add(FlashError, msg) }

func (f *Flasher) add(kind, msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending = append(f.pending, Flash{Kind: kind, Message: msg})
}

func (f *Flasher) Pending() []Flash {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Flash(nil), f.pending...)
}

func (f *Flasher) Save(store SessionStore, w http.ResponseWriter, r *http.Request) error {
	f.mu.Lock()
	pending := f.pending
	f.pending = nil
	f.mu.Unlock()
	return store.AddFlashes(w, r, pending...)
}
