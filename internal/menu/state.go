// Package menu holds the canonical state of a dropdown menu and the operations
// that move it between snapshots.
//
// A Store owns exactly one State value. Every operation builds a new State and
// publishes it to subscribers; nothing is mutated in place, so a reader holding
// a State never observes a half-applied change.
package menu

// Item is one entry of the list. ID is the identity of the item's surface and
// must be unique within the list (caller obligation).
type Item struct {
	ID    string
	Value string
}

// State is an immutable snapshot of the menu.
type State struct {
	Items    []Item
	Active   int // index into Items, or -1 for no active item
	Expanded bool

	ButtonID string // identity of the trigger surface
	MenuID   string // identity of the list surface
	Controls string // id the trigger controls; set together with MenuID
	Label    string // accessible label text, if configured
}

// Value returns the value of the active item. ok is false when there is no
// active item, including Active == 0 on an empty list after Open.
func (s State) Value() (value string, ok bool) {
	if s.Active < 0 || s.Active >= len(s.Items) {
		return "", false
	}
	return s.Items[s.Active].Value, true
}

// ActiveID returns the surface id of the active item, or "" if none.
func (s State) ActiveID() string {
	if s.Active < 0 || s.Active >= len(s.Items) {
		return ""
	}
	return s.Items[s.Active].ID
}

// IndexOf returns the index of the item with the given id, or -1.
func (s State) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, it := range s.Items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// Selection is the read-only payload carried by a select notification.
type Selection struct {
	Active int
	Value  string
	OK     bool // false when Value is undefined
}

// Selection returns the {active, value} view of the snapshot.
func (s State) Selection() Selection {
	v, ok := s.Value()
	return Selection{Active: s.Active, Value: v, OK: ok}
}
