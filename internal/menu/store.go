package menu

import "sync"

// Option configures a Store at construction.
type Option func(*State, *Store)

// WithLabel sets the accessible label reflected onto the trigger.
func WithLabel(label string) Option {
	return func(s *State, _ *Store) { s.Label = label }
}

// WithExpanded sets the initial expanded flag.
func WithExpanded(expanded bool) Option {
	return func(s *State, _ *Store) { s.Expanded = expanded }
}

// WithMatcher replaces the type-ahead matcher. The default is PrefixMatcher.
func WithMatcher(m Matcher) Option {
	return func(_ *State, st *Store) {
		if m != nil {
			st.matcher = m
		}
	}
}

// Store owns the menu State. Operations are synchronous and each one publishes
// a full replacement snapshot to every subscriber.
type Store struct {
	mu      sync.Mutex
	state   State
	matcher Matcher

	subs   []*subscriber
	nextID int

	// Publishes triggered from inside a subscriber are queued so every
	// subscriber sees snapshots in publish order.
	notifying bool
	pending   []State
}

type subscriber struct {
	id int
	fn func(State)
}

// NewStore creates a store with no items, Active = -1 and Expanded = false.
func NewStore(opts ...Option) *Store {
	st := &Store{
		state:   State{Active: -1},
		matcher: PrefixMatcher{},
	}
	for _, opt := range opts {
		opt(&st.state, st)
	}
	return st
}

// State returns the current snapshot.
func (st *Store) State() State {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.state
}

// Subscribe registers fn. It is called immediately with the current snapshot
// and again after every publish. The returned func unsubscribes.
func (st *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	st.mu.Lock()
	st.nextID++
	sub := &subscriber{id: st.nextID, fn: fn}
	st.subs = append(st.subs, sub)
	cur := st.state
	st.mu.Unlock()

	fn(cur)

	var once sync.Once
	return func() {
		once.Do(func() {
			st.mu.Lock()
			defer st.mu.Unlock()
			for i, s := range st.subs {
				if s.id == sub.id {
					st.subs = append(st.subs[:i:i], st.subs[i+1:]...)
					break
				}
			}
		})
	}
}

// update applies fn to a copy of the current state and publishes the result.
func (st *Store) update(fn func(next *State)) {
	st.mu.Lock()
	next := st.state
	fn(&next)
	st.state = next
	if st.notifying {
		st.pending = append(st.pending, next)
		st.mu.Unlock()
		return
	}
	st.notifying = true
	st.mu.Unlock()

	st.publish(next)
}

func (st *Store) publish(s State) {
	for {
		st.mu.Lock()
		subs := make([]*subscriber, len(st.subs))
		copy(subs, st.subs)
		st.mu.Unlock()

		for _, sub := range subs {
			sub.fn(s)
		}

		st.mu.Lock()
		if len(st.pending) == 0 {
			st.notifying = false
			st.mu.Unlock()
			return
		}
		s = st.pending[0]
		st.pending = st.pending[1:]
		st.mu.Unlock()
	}
}

// AttachTrigger records the identity of the trigger surface.
func (st *Store) AttachTrigger(id string) {
	st.update(func(s *State) { s.ButtonID = id })
}

// AttachList records the identity of the list surface and makes it the
// element the trigger controls.
func (st *Store) AttachList(id string) {
	st.update(func(s *State) {
		s.MenuID = id
		s.Controls = id
	})
}

// AddItem appends an item. Duplicate ids are not detected.
func (st *Store) AddItem(id, value string) {
	st.update(func(s *State) {
		items := make([]Item, len(s.Items), len(s.Items)+1)
		copy(items, s.Items)
		s.Items = append(items, Item{ID: id, Value: value})
	})
}

// UpdateItemValue replaces the value of the item with the given id. Unknown
// ids leave the items untouched.
func (st *Store) UpdateItemValue(id, value string) {
	st.update(func(s *State) {
		i := s.IndexOf(id)
		if i < 0 {
			return
		}
		items := make([]Item, len(s.Items))
		copy(items, s.Items)
		items[i].Value = value
		s.Items = items
	})
}

// RemoveItem removes the item with the given id. Active keeps its index while
// that index is still valid; past the end it is clamped to the last item (or
// -1 once the list is empty).
func (st *Store) RemoveItem(id string) {
	st.update(func(s *State) {
		i := s.IndexOf(id)
		if i < 0 {
			return
		}
		items := make([]Item, 0, len(s.Items)-1)
		items = append(items, s.Items[:i]...)
		items = append(items, s.Items[i+1:]...)
		s.Items = items
		if s.Active > len(items)-1 {
			s.Active = len(items) - 1
		}
	})
}

// Open expands the menu and resets Active to 0, even on an empty list.
func (st *Store) Open() {
	st.update(func(s *State) {
		s.Expanded = true
		s.Active = 0
	})
}

// Close collapses the menu. Active is kept.
func (st *Store) Close() {
	st.update(func(s *State) { s.Expanded = false })
}

// Toggle closes an expanded menu and opens a collapsed one.
func (st *Store) Toggle() {
	if st.State().Expanded {
		st.Close()
		return
	}
	st.Open()
}

// Focus expands the menu and makes i the active index. i is not clamped;
// the navigation helpers below do that.
func (st *Store) Focus(i int) {
	st.update(func(s *State) {
		s.Expanded = true
		s.Active = i
	})
}

// First focuses index 0.
func (st *Store) First() { st.Focus(0) }

// Last focuses the final item (-1 on an empty list).
func (st *Store) Last() { st.Focus(len(st.State().Items) - 1) }

// None clears the active item while keeping the menu expanded.
func (st *Store) None() { st.Focus(-1) }

// Previous moves Active up by one, stopping at 0.
func (st *Store) Previous() {
	st.Focus(max(st.State().Active-1, 0))
}

// Next moves Active down by one, stopping at the last item.
func (st *Store) Next() {
	s := st.State()
	st.Focus(min(s.Active+1, len(s.Items)-1))
}

// SelectBySurface focuses the item whose surface has the given id. An empty
// or unknown id focuses -1.
func (st *Store) SelectBySurface(id string) {
	st.Focus(st.State().IndexOf(id))
}

// Search moves Active to the next item, in circular order starting after the
// current Active, whose value matches query. Without a match nothing is
// published.
func (st *Store) Search(query string) {
	s := st.State()
	if i := search(s.Items, s.Active, query, st.matcher); i >= 0 {
		st.Focus(i)
	}
}

// Snapshot returns the {active, value} payload used by select notifications.
func (st *Store) Snapshot() Selection {
	return st.State().Selection()
}
