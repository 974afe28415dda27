// Package surface defines the capability set a rendered element must expose
// to be driven by a menu: identity, attributes, text, pointer targeting,
// event listening and event emission.
//
// Any toolkit binds to Surface. Node is the in-memory implementation used by
// the terminal host and by tests.
package surface

import tea "github.com/charmbracelet/bubbletea"

// Attribute names reflected onto surfaces.
const (
	AttrRole             = "role"
	AttrType             = "type"
	AttrTabIndex         = "tabindex"
	AttrHasPopup         = "aria-haspopup"
	AttrExpanded         = "aria-expanded"
	AttrControls         = "aria-controls"
	AttrActiveDescendant = "aria-activedescendant"
	AttrLabel            = "aria-label"
	AttrLabelledBy       = "aria-labelledby"
)

// Roles used by the menu.
const (
	RoleButton   = "button"
	RoleMenu     = "menu"
	RoleMenuItem = "menuitem"
)

// EventKind identifies an input event delivered to a surface.
type EventKind int

const (
	KeyDown EventKind = iota
	PointerMove
	Click
)

func (k EventKind) String() string {
	switch k {
	case KeyDown:
		return "keydown"
	case PointerMove:
		return "pointermove"
	case Click:
		return "click"
	}
	return "unknown"
}

// Event is an input event. Key is set for KeyDown; X and Y for pointer events.
type Event struct {
	Kind EventKind
	Key  tea.KeyMsg
	X, Y int
}

// Listener handles an event and reports whether it consumed it.
type Listener func(Event) bool

// Surface is an opaque handle to a rendered element.
type Surface interface {
	ID() string
	SetID(id string)

	Attr(name string) (string, bool)
	SetAttr(name, value string)
	RemoveAttr(name string)

	// Text is the surface's own text content.
	Text() string

	// Contains reports whether the point lies inside the surface.
	Contains(x, y int) bool
	// Descendant returns the deepest descendant with the given role that
	// contains the point, or nil.
	Descendant(role string, x, y int) Surface

	// Listen registers l for events delivered to this surface.
	Listen(l Listener) (remove func())
	// Emit dispatches an outward notification from this surface.
	Emit(name string, detail any)
}
