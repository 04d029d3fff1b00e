package mirror

import (
	"sync"
)

// Ticket identifies one request against a Mirror.
type Ticket struct {
	Seq   uint64
	Epoch uint64
	Owner string
}

// Status is what a view needs to render loading and error states.
type Status struct {
	Loading bool
	Err     error
}

// Mirror is safe for concurrent use.
type Mirror[T Keyed] struct {
	mu sync.Mutex

	items []T
	owner string
	epoch uint64

	clock          uint64
	lastMutation   uint64
	lastRefreshSeq uint64

	inflight int
	lastErr  error
}

func New[T Keyed]() *Mirror[T] {
	return &Mirror[T]{items: []T{}}
}

// Items returns a copy of the current items.
func (m *Mirror[T]) Items() []T {
	m.mu.Lock()
	defer m.mu.Unlock()
	return clone(m.items)
}

// Owner is the user the items belong to ("" when nobody is signed in).
func (m *Mirror[T]) Owner() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.owner
}

// Rebind scopes the mirror to owner. When the owner changes the items are
// cleared and the epoch moves on, so every in-flight request becomes stale.
// It reports whether a reset happened.
func (m *Mirror[T]) Rebind(owner string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if owner == m.owner {
		return false
	}
	m.owner = owner
	m.epoch++
	m.items = Apply(m.items, Cleared[T]())
	m.lastMutation = 0
	m.lastRefreshSeq = 0
	m.inflight = 0
	m.lastErr = nil
	return true
}

// Issue hands out a ticket for a request that is about to start and marks
// the mirror as loading until Settle is called with the same ticket.
func (m *Mirror[T]) Issue() Ticket {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clock++
	m.inflight++
	return Ticket{Seq: m.clock, Epoch: m.epoch, Owner: m.owner}
}

// Current reports whether t was issued in the present epoch.
func (m *Mirror[T]) Current(t Ticket) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return t.Epoch == m.epoch
}

// ApplyRefresh replaces the items with a full server listing obtained under
// t. It returns false, leaving the items alone, when the listing is stale:
// issued in an older epoch, overtaken by a mutation that landed after t was
// issued, or older than an already applied refresh.
func (m *Mirror[T]) ApplyRefresh(t Ticket, items []T) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if t.Epoch != m.epoch || t.Seq < m.lastMutation || t.Seq < m.lastRefreshSeq {
		return false
	}
	m.items = Apply(m.items, Replaced(items))
	m.lastRefreshSeq = t.Seq
	return true
}

// ApplyMutation applies the confirmed effect of a create, update or delete
// obtained under t. It returns false when the epoch changed meanwhile.
func (m *Mirror[T]) ApplyMutation(t Ticket, ev Event[T]) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if t.Epoch != m.epoch {
		return false
	}
	m.clock++
	m.lastMutation = m.clock
	m.items = Apply(m.items, ev)
	return true
}

// Settle ends the request started with t and records its outcome for
// Status. Outcomes from an older epoch are ignored.
func (m *Mirror[T]) Settle(t Ticket, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if t.Epoch != m.epoch {
		return
	}
	if m.inflight > 0 {
		m.inflight--
	}
	m.lastErr = err
}

func (m *Mirror[T]) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Status{Loading: m.inflight > 0, Err: m.lastErr}
}
