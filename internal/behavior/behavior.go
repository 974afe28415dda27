// Package behavior composes independent units of surface behavior. A
// Behavior configures a surface, may subscribe to menu state or listen for
// events, and returns a cleanup run when the surface detaches.
package behavior

import (
	"strconv"
	"sync"

	"menukit/internal/menu"
	"menukit/internal/surface"
)

// Behavior attaches to s and returns a cleanup, or nil if there is nothing
// to undo.
type Behavior func(s surface.Surface) (cleanup func())

// Store is the read side of the menu state used by behaviors.
type Store interface {
	State() menu.State
	Subscribe(fn func(menu.State)) (unsubscribe func())
}

// Focuser moves input focus to the surface with the given id.
type Focuser interface {
	SetFocus(id string) bool
}

// Apply attaches bs to s in order. The returned destroy runs the cleanups in
// reverse order; calling it more than once has no further effect.
func Apply(s surface.Surface, bs ...Behavior) (destroy func()) {
	cleanups := make([]func(), 0, len(bs))
	for _, b := range bs {
		if c := b(s); c != nil {
			cleanups = append(cleanups, c)
		}
	}
	var once sync.Once
	return func() {
		once.Do(func() {
			for i := len(cleanups) - 1; i >= 0; i-- {
				cleanups[i]()
			}
		})
	}
}

// SetAttr sets a static attribute and removes it on cleanup.
func SetAttr(name, value string) Behavior {
	return func(s surface.Surface) func() {
		s.SetAttr(name, value)
		return func() { s.RemoveAttr(name) }
	}
}

// SetRole sets the role attribute.
func SetRole(role string) Behavior { return SetAttr(surface.AttrRole, role) }

// SetType sets the type attribute.
func SetType(t string) Behavior { return SetAttr(surface.AttrType, t) }

// SetHasPopup marks the surface as opening a popup.
func SetHasPopup() Behavior { return SetAttr(surface.AttrHasPopup, "true") }

// SetTabIndex sets the tab order position.
func SetTabIndex(i int) Behavior { return SetAttr(surface.AttrTabIndex, strconv.Itoa(i)) }

// reflect subscribes to store and calls apply with every snapshot.
func reflect(store Store, apply func(s surface.Surface, st menu.State)) Behavior {
	return func(s surface.Surface) func() {
		return store.Subscribe(func(st menu.State) { apply(s, st) })
	}
}

// setOrRemove sets name to value, or removes it when value is empty.
func setOrRemove(s surface.Surface, name, value string) {
	if value == "" {
		s.RemoveAttr(name)
		return
	}
	s.SetAttr(name, value)
}
