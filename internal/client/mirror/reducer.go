// Package mirror keeps a local copy of a server-owned collection consistent
// with the order in which operations were issued, not the order in which
// their responses happen to arrive.
//
// Transitions are pure (see Apply); Mirror adds the bookkeeping that decides
// whether a response is still allowed to change the local copy:
//
//   - each request takes a Ticket from a logical clock;
//   - a refresh response is applied only if no mutation landed and no newer
//     refresh was applied since its ticket was issued;
//   - an identity change bumps the epoch, clears the items and turns every
//     in-flight response into a stale one.
package mirror

// Keyed is implemented by items that carry a server-assigned identifier.
type Keyed interface {
	Key() string
}

// EventKind enumerates mirror transitions.
type EventKind int

const (
	EventReplaced EventKind = iota + 1
	EventAdded
	EventUpdated
	EventRemoved
	EventCleared
)

func (k EventKind) String() string {
	switch k {
	case EventReplaced:
		return "replaced"
	case EventAdded:
		return "added"
	case EventUpdated:
		return "updated"
	case EventRemoved:
		return "removed"
	case EventCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// Event describes one transition. Items is used by Replaced, Item by Added
// and Updated, ID by Removed.
type Event[T Keyed] struct {
	Kind  EventKind
	Items []T
	Item  T
	ID    string
}

func Replaced[T Keyed](items []T) Event[T] { return Event[T]{Kind: EventReplaced, Items: items} }
func Added[T Keyed](item T) Event[T]       { return Event[T]{Kind: EventAdded, Item: item} }
func Updated[T Keyed](item T) Event[T]     { return Event[T]{Kind: EventUpdated, Item: item} }
func Removed[T Keyed](id string) Event[T]  { return Event[T]{Kind: EventRemoved, ID: id} }
func Cleared[T Keyed]() Event[T]           { return Event[T]{Kind: EventCleared} }

// Apply returns the items that result from applying ev to current. current is
// never modified; the result never shares its backing array.
//
// Added behaves as an upsert so that an item already delivered by a refresh
// is not duplicated. Updated of an unknown key leaves the items unchanged.
func Apply[T Keyed](current []T, ev Event[T]) []T {
	switch ev.Kind {
	case EventReplaced:
		return clone(ev.Items)

	case EventAdded:
		next := clone(current)
		for i := range next {
			if next[i].Key() == ev.Item.Key() {
				next[i] = ev.Item
				return next
			}
		}
		return append(next, ev.Item)

	case EventUpdated:
		next := clone(current)
		for i := range next {
			if next[i].Key() == ev.Item.Key() {
				next[i] = ev.Item
			}
		}
		return next

	case EventRemoved:
		next := make([]T, 0, len(current))
		for _, it := range current {
			if it.Key() != ev.ID {
				next = append(next, it)
			}
		}
		return next

	case EventCleared:
		return []T{}

	default:
		return clone(current)
	}
}

func clone[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
