package ui

// FocusManager tracks and rotates focus across surfaces.
type FocusManager struct {
	Current  string   // ID of the focused surface
	Order    []string // Tab order for focus rotation
	OnChange func(from, to string)

	// Enabled reports whether a surface can take focus by rotation. Nil
	// means every surface in Order can.
	Enabled func(id string) bool
}

func (f *FocusManager) enabled(id string) bool {
	return f.Enabled == nil || f.Enabled(id)
}

func (f *FocusManager) index() int {
	for i, id := range f.Order {
		if id == f.Current {
			return i
		}
	}
	return -1
}

// rotate moves focus step positions at a time until it lands on an enabled
// surface. Focus is unchanged when none is enabled.
func (f *FocusManager) rotate(step int) string {
	n := len(f.Order)
	if n == 0 {
		return ""
	}
	idx := f.index()
	if idx < 0 && step < 0 {
		idx = 0
	}
	for range n {
		idx = ((idx+step)%n + n) % n
		if f.enabled(f.Order[idx]) {
			f.set(f.Order[idx])
			break
		}
	}
	return f.Current
}

// Next advances focus to the next enabled surface in order.
// Returns the new current focus ID.
func (f *FocusManager) Next() string { return f.rotate(1) }

// Prev moves focus to the previous enabled surface in order.
func (f *FocusManager) Prev() string { return f.rotate(-1) }

// SetFocus sets focus to the given surface ID, enabled or not.
// Returns true if the ID exists in order.
func (f *FocusManager) SetFocus(id string) bool {
	for _, o := range f.Order {
		if o == id {
			f.set(id)
			return true
		}
	}
	return false
}

func (f *FocusManager) set(id string) {
	from := f.Current
	f.Current = id
	if f.OnChange != nil && from != id {
		f.OnChange(from, id)
	}
}
