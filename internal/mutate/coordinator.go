// Package mutate orchestrates plant mutations: optimistic application to
// the record store, the remote round-trip, and rollback when the server
// disagrees. After any error the store matches the last authoritative
// server state for that record.
package mutate

import (
	"context"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"plantpulse/internal/apperr"
	"plantpulse/internal/auth"
	"plantpulse/internal/plant"
	"plantpulse/internal/store"
)

// Remote is the slice of the API client the coordinator needs.
type Remote interface {
	List(ctx context.Context, ownerEmail string) ([]plant.Plant, error)
	Create(ctx context.Context, p plant.Plant) (plant.Plant, error)
	Update(ctx context.Context, id string, p plant.Plant) (plant.Plant, error)
	Delete(ctx context.Context, id string) error
}

// Coordinator serializes mutations per record and keeps the record store
// consistent across optimistic updates, confirmations and rollbacks.
type Coordinator struct {
	remote  Remote
	records *store.Records
	log     *logrus.Logger

	mu       sync.Mutex
	locks    map[string]*recordLock
	watchers []*touchSet // ids touched while a refresh is in flight
}

// touchSet collects the ids mutated while one refresh is in flight.
type touchSet struct {
	ids map[string]struct{}
}

type recordLock struct {
	mu   sync.Mutex
	refs int
}

func New(remote Remote, records *store.Records, log *logrus.Logger) *Coordinator {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Coordinator{
		remote:  remote,
		records: records,
		log:     log,
		locks:   make(map[string]*recordLock),
	}
}

// Create sends a new plant to the server and admits the stored record
// (with its server-assigned id) into the working set. The store is left
// untouched on failure.
func (c *Coordinator) Create(ctx context.Context, draft plant.Plant, pr auth.Principal) (plant.Plant, error) {
	if !pr.Authenticated {
		return plant.Plant{}, apperr.New(apperr.CodeForbidden, "sign in to add plants")
	}
	draft.ID = ""
	draft.OwnerEmail = pr.Email
	draft.OwnerName = pr.DisplayName

	created, err := c.remote.Create(ctx, draft)
	if err != nil {
		return plant.Plant{}, err
	}
	// A list fetched before the create landed does not carry the new id;
	// mark it so an in-flight refresh keeps the record.
	c.mu.Lock()
	c.markTouched(created.ID)
	c.mu.Unlock()
	c.records.Upsert(created)
	c.log.WithField("plant_id", created.ID).Info("plant created")
	return created, nil
}

// Update applies the patch optimistically, confirms it with the server and
// reconciles the authoritative response. On failure the pre-mutation
// snapshot is restored, except NotFound, which evicts the stale record.
func (c *Coordinator) Update(ctx context.Context, id string, patch plant.Patch, pr auth.Principal) (plant.Plant, error) {
	if !pr.Authenticated {
		return plant.Plant{}, apperr.New(apperr.CodeForbidden, "sign in to edit plants")
	}

	unlock := c.acquire(id)
	defer unlock()

	existing, ok := c.records.GetByID(id)
	if !ok {
		return plant.Plant{}, apperr.New(apperr.CodeNotFound, "plant is not in the working set")
	}
	if existing.OwnerEmail != pr.Email {
		return plant.Plant{}, apperr.New(apperr.CodeForbidden, "only the owner can edit this plant")
	}

	merged := patch.Apply(existing)
	c.records.Upsert(merged)

	confirmed, err := c.remote.Update(ctx, id, merged)
	if err != nil {
		if apperr.Is(err, apperr.CodeNotFound) {
			c.records.Remove(id)
		} else {
			c.records.Upsert(existing)
		}
		c.log.WithField("plant_id", id).WithError(err).Warn("update rolled back")
		return plant.Plant{}, err
	}
	c.records.Upsert(confirmed)
	return confirmed, nil
}

// Delete removes the record optimistically and confirms with the server.
// Ownership mismatch fails before any network call or store mutation; a
// remote failure re-admits the removed record.
func (c *Coordinator) Delete(ctx context.Context, id string, pr auth.Principal) error {
	if !pr.Authenticated {
		return apperr.New(apperr.CodeForbidden, "sign in to delete plants")
	}

	unlock := c.acquire(id)
	defer unlock()

	existing, ok := c.records.GetByID(id)
	if !ok {
		return apperr.New(apperr.CodeNotFound, "plant is not in the working set")
	}
	if existing.OwnerEmail != pr.Email {
		return apperr.New(apperr.CodeForbidden, "only the owner can delete this plant")
	}

	c.records.Remove(id)

	if err := c.remote.Delete(ctx, id); err != nil {
		if !apperr.Is(err, apperr.CodeNotFound) {
			c.records.Upsert(existing)
		}
		c.log.WithField("plant_id", id).WithError(err).Warn("delete rolled back")
		return err
	}
	c.log.WithField("plant_id", id).Info("plant deleted")
	return nil
}

// Refresh fetches the full list and swaps the working set. Records mutated
// at any point while the fetch was in flight keep their local state; a
// cancelled or failed fetch applies nothing.
func (c *Coordinator) Refresh(ctx context.Context, ownerEmail string) error {
	touched := &touchSet{ids: make(map[string]struct{})}
	c.mu.Lock()
	c.watchers = append(c.watchers, touched)
	c.mu.Unlock()

	defer c.dropWatcher(touched)

	list, err := c.remote.List(ctx, ownerEmail)
	if err != nil {
		return err
	}

	// The keep decision is made under the store's own lock, so a mutation
	// cannot slip between it and the swap.
	c.records.ReplaceAllFunc(list, func(id string) bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		if _, ok := touched.ids[id]; ok {
			return true
		}
		l, ok := c.locks[id]
		return ok && l.refs > 0
	})
	return nil
}

func (c *Coordinator) dropWatcher(t *touchSet) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, w := range c.watchers {
		if w == t {
			c.watchers = append(c.watchers[:i], c.watchers[i+1:]...)
			return
		}
	}
}

// InFlight returns the ids with a mutation currently holding the record
// lock.
func (c *Coordinator) InFlight() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.locks))
	for id, l := range c.locks {
		if l.refs > 0 {
			out = append(out, id)
		}
	}
	return out
}

// acquire takes the per-record lock, so a second mutation on the same id
// waits for the first to settle. The returned function releases it.
func (c *Coordinator) acquire(id string) (release func()) {
	c.mu.Lock()
	l, ok := c.locks[id]
	if !ok {
		l = &recordLock{}
		c.locks[id] = l
	}
	l.refs++
	c.markTouched(id)
	c.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()
		c.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(c.locks, id)
		}
		c.markTouched(id)
		c.mu.Unlock()
	}
}

// markTouched records id against every in-flight refresh; called with mu
// held.
func (c *Coordinator) markTouched(id string) {
	for _, w := range c.watchers {
		w.ids[id] = struct{}{}
	}
}
