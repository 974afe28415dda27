// Package binder attaches a menu's controllers and behaviors to the host's
// trigger, list and item surfaces, and dispatches confirmed selections.
package binder

import (
	"log/slog"
	"strings"
	"sync"

	"menukit/internal/behavior"
	"menukit/internal/keys"
	"menukit/internal/menu"
	"menukit/internal/pointer"
	"menukit/internal/surface"
)

// Id prefixes for surfaces that arrive without an id.
const (
	PrefixButton = "menu-button"
	PrefixMenu   = "menu"
	PrefixItem   = "menu-item"
)

// EventSelect is the name of the notification emitted on the trigger when a
// selection is confirmed. Its detail is a menu.Selection.
const EventSelect = "select"

// Option configures a Binder.
type Option func(*Binder)

// WithIDGenerator sets the generator for missing surface ids.
func WithIDGenerator(g surface.IDGenerator) Option {
	return func(b *Binder) { b.ids = g }
}

// WithFocuser sets the host's focus mover.
func WithFocuser(f behavior.Focuser) Option {
	return func(b *Binder) { b.focus = f }
}

// WithKeyMap replaces the default key bindings.
func WithKeyMap(km keys.KeyMap) Option {
	return func(b *Binder) { b.keymap = km }
}

// WithTypeahead replaces the default type-ahead buffer.
func WithTypeahead(ta *keys.Typeahead) Option {
	return func(b *Binder) { b.typeahead = ta }
}

// WithObserver adds an observer. It may be given more than once.
func WithObserver(o Observer) Option {
	return func(b *Binder) { b.observers = append(b.observers, o) }
}

// WithLogger sets the logger. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(b *Binder) { b.log = l }
}

type noFocus struct{}

func (noFocus) SetFocus(string) bool { return false }

// Binder wires one menu store to its surfaces.
type Binder struct {
	store     *menu.Store
	ids       surface.IDGenerator
	focus     behavior.Focuser
	keymap    keys.KeyMap
	typeahead *keys.Typeahead
	observers []Observer
	observer  Observer
	log       *slog.Logger

	keys    *keys.Controller
	pointer *pointer.Controller

	mu      sync.Mutex
	trigger surface.Surface
	unsub   func()
}

// New creates a Binder for store.
func New(store *menu.Store, opts ...Option) *Binder {
	b := &Binder{
		store:  store,
		ids:    surface.NewSequence(),
		focus:  noFocus{},
		keymap: keys.DefaultKeyMap(),
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.typeahead == nil {
		b.typeahead = keys.NewTypeahead(0)
	}
	b.observer = NewMultiObserver(b.observers...)
	b.keys = keys.NewController(store, b.keymap, b.typeahead, b.fireSelect)
	b.pointer = pointer.NewController(store, b.fireSelect)
	b.unsub = b.watch()
	return b
}

// Store returns the bound store.
func (b *Binder) Store() *menu.Store { return b.store }

// KeyMap returns the key bindings in use.
func (b *Binder) KeyMap() keys.KeyMap { return b.keymap }

// Close releases the binder's own store subscription. Surfaces stay attached
// until their detach callbacks run.
func (b *Binder) Close() {
	b.mu.Lock()
	unsub := b.unsub
	b.unsub = nil
	b.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}

// watch notifies observers of open and close transitions.
func (b *Binder) watch() func() {
	primed := false
	prev := false
	return b.store.Subscribe(func(st menu.State) {
		if !primed {
			primed, prev = true, st.Expanded
			return
		}
		if st.Expanded == prev {
			return
		}
		prev = st.Expanded
		if st.Expanded {
			b.observer.OnExpand(st)
		} else {
			b.observer.OnCollapse(st)
		}
	})
}

// fireSelect emits the selection for the current active item on the trigger
// and closes the menu.
func (b *Binder) fireSelect() {
	sel := b.store.Snapshot()
	b.typeahead.Reset()

	b.mu.Lock()
	trigger := b.trigger
	b.mu.Unlock()
	if trigger != nil {
		trigger.Emit(EventSelect, sel)
	}
	b.observer.OnSelect(sel)
	b.log.Debug("selection fired", "active", sel.Active, "value", sel.Value)

	b.store.Close()
}

// Button attaches s as the trigger.
func (b *Binder) Button(s surface.Surface) (detach func()) {
	id := surface.EnsureID(s, b.ids, PrefixButton)
	b.store.AttachTrigger(id)

	b.mu.Lock()
	b.trigger = s
	b.mu.Unlock()

	destroy := behavior.Apply(s,
		behavior.SetType("button"),
		behavior.SetRole(surface.RoleButton),
		behavior.SetHasPopup(),
		behavior.SetTabIndex(0),
		behavior.ReflectLabel(b.store),
		behavior.ReflectExpanded(b.store),
		behavior.ReflectControls(b.store),
		behavior.OnClick(b.pointer.ClickTrigger),
		behavior.OnKeydown(b.keys.HandleTrigger),
		behavior.FocusOnClose(b.store, b.focus),
	)
	b.log.Debug("trigger attached", "id", id)

	return b.detacher(func() {
		destroy()
		b.mu.Lock()
		if b.trigger == s {
			b.trigger = nil
		}
		b.mu.Unlock()
		b.log.Debug("trigger detached", "id", id)
	})
}

// Menu attaches s as the list.
func (b *Binder) Menu(s surface.Surface) (detach func()) {
	id := surface.EnsureID(s, b.ids, PrefixMenu)
	b.store.AttachList(id)

	destroy := behavior.Apply(s,
		behavior.SetTabIndex(0),
		behavior.SetRole(surface.RoleMenu),
		behavior.ReflectLabelledBy(b.store),
		behavior.OnClickOutside(b.pointer.ClickOutside, b.inTrigger),
		behavior.OnClickChild(surface.RoleMenuItem, b.pointer.Click),
		behavior.OnHoverChild(b.store, surface.RoleMenuItem, b.pointer.Hover, b.pointer.Leave),
		behavior.OnKeydown(b.keys.HandleList),
		behavior.FocusOnExpanded(b.store, b.focus),
		behavior.ReflectActiveDescendant(b.store),
	)
	b.log.Debug("list attached", "id", id)

	return b.detacher(func() {
		destroy()
		b.log.Debug("list detached", "id", id)
	})
}

// inTrigger reports whether a point is on the currently attached trigger.
func (b *Binder) inTrigger(x, y int) bool {
	b.mu.Lock()
	trigger := b.trigger
	b.mu.Unlock()
	return trigger != nil && trigger.Contains(x, y)
}

// ItemHandle is returned by Item. Update re-registers the item with a new
// value; Destroy removes it.
type ItemHandle struct {
	b       *Binder
	s       surface.Surface
	id      string
	destroy func()
}

// Item attaches s as a menu item with the given value. An empty value falls
// back to the surface's trimmed text.
func (b *Binder) Item(s surface.Surface, value string) *ItemHandle {
	id := surface.EnsureID(s, b.ids, PrefixItem)
	if value == "" {
		value = strings.TrimSpace(s.Text())
	}
	b.store.AddItem(id, value)

	destroy := behavior.Apply(s,
		behavior.SetTabIndex(-1),
		behavior.SetRole(surface.RoleMenuItem),
	)
	h := &ItemHandle{b: b, s: s, id: id}
	h.destroy = b.detacher(func() {
		destroy()
		b.store.RemoveItem(id)
		b.log.Debug("item detached", "id", id)
	})
	return h
}

// ID returns the item's surface id.
func (h *ItemHandle) ID() string { return h.id }

// Update sets a new value. An empty value falls back to the surface's
// trimmed text.
func (h *ItemHandle) Update(value string) {
	if value == "" {
		value = strings.TrimSpace(h.s.Text())
	}
	h.b.store.UpdateItemValue(h.id, value)
}

// Destroy runs the item's cleanups and removes it from the menu. Further
// calls do nothing.
func (h *ItemHandle) Destroy() { h.destroy() }

func (b *Binder) detacher(fn func()) func() {
	var once sync.Once
	return func() { once.Do(fn) }
}
