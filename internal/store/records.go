// Package store keeps the in-memory working set of plant records for the
// current session and the query pipeline that views read it through.
//
// The store is the single writer-serialization point: every component goes
// through Upsert/Remove/ReplaceAll, nothing holds a reference to the
// internal map. The remote service stays authoritative; this cache lives
// only as long as the process.
package store

import (
	"sync"

	"plantpulse/internal/plant"
)

// Records is the session cache, a mapping from plant ID to record.
type Records struct {
	mu      sync.RWMutex
	byID    map[string]plant.Plant
	subs    map[int]func()
	nextSub int
}

func NewRecords() *Records {
	return &Records{
		byID: make(map[string]plant.Plant),
		subs: make(map[int]func()),
	}
}

// Upsert inserts or replaces the record under its ID. Applying the same
// record twice leaves the store unchanged.
func (r *Records) Upsert(p plant.Plant) {
	if p.ID == "" {
		return
	}
	r.mu.Lock()
	r.byID[p.ID] = p
	listeners := r.listeners()
	r.mu.Unlock()
	notify(listeners)
}

// Remove deletes the record with the given ID, if present.
func (r *Records) Remove(id string) {
	r.mu.Lock()
	if _, ok := r.byID[id]; !ok {
		r.mu.Unlock()
		return
	}
	delete(r.byID, id)
	listeners := r.listeners()
	r.mu.Unlock()
	notify(listeners)
}

// ReplaceAll swaps the working set for the given records, as after a full
// list fetch. Records whose IDs appear in preserve keep their current local
// version; a refresh must never clobber a record with an in-flight
// mutation.
func (r *Records) ReplaceAll(records []plant.Plant, preserve ...string) {
	set := make(map[string]struct{}, len(preserve))
	for _, id := range preserve {
		set[id] = struct{}{}
	}
	r.ReplaceAllFunc(records, func(id string) bool {
		_, ok := set[id]
		return ok
	})
}

// ReplaceAllFunc is ReplaceAll with the preserve set given as a predicate.
// keep is evaluated under the store lock at swap time, so the caller can
// consult state that may change between fetching the list and applying it.
// A kept ID takes its current local version, including local absence.
func (r *Records) ReplaceAllFunc(records []plant.Plant, keep func(id string) bool) {
	r.mu.Lock()
	next := make(map[string]plant.Plant, len(records))
	for _, p := range records {
		if p.ID != "" {
			next[p.ID] = p
		}
	}
	if keep != nil {
		for id := range next {
			if _, local := r.byID[id]; !local && keep(id) {
				delete(next, id)
			}
		}
		for id, cur := range r.byID {
			if keep(id) {
				next[id] = cur
			}
		}
	}
	r.byID = next
	listeners := r.listeners()
	r.mu.Unlock()
	notify(listeners)
}

// GetAll returns a snapshot copy of every record. Callers may do anything
// with the slice; the store's state changes only through Upsert, Remove and
// ReplaceAll.
func (r *Records) GetAll() []plant.Plant {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]plant.Plant, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	return out
}

// GetByID returns the record with the given ID and whether it exists.
func (r *Records) GetByID(id string) (plant.Plant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	return p, ok
}

// Len returns the number of records held.
func (r *Records) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// Subscribe registers fn to run synchronously after every store change and
// returns the function that removes the subscription.
func (r *Records) Subscribe(fn func()) (unsubscribe func()) {
	r.mu.Lock()
	id := r.nextSub
	r.nextSub++
	r.subs[id] = fn
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.subs, id)
		r.mu.Unlock()
	}
}

// listeners snapshots the current subscribers; called with mu held.
func (r *Records) listeners() []func() {
	out := make([]func(), 0, len(r.subs))
	for _, fn := range r.subs {
		out = append(out, fn)
	}
	return out
}

// notify runs outside the lock so a listener may read the store.
func notify(listeners []func()) {
	for _, fn := range listeners {
		fn()
	}
}
