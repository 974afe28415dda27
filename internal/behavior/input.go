package behavior

import (
	tea "github.com/charmbracelet/bubbletea"

	"menukit/internal/keys"
	"menukit/internal/menu"
	"menukit/internal/surface"
)

// OnKeydown routes key events to h. Only Consumed keys are reported as
// consumed to the host; Passthrough keys keep their default handling.
func OnKeydown(h func(tea.KeyMsg) keys.Result) Behavior {
	return func(s surface.Surface) func() {
		return s.Listen(func(ev surface.Event) bool {
			if ev.Kind != surface.KeyDown {
				return false
			}
			return h(ev.Key) == keys.Consumed
		})
	}
}

// OnClick calls fn for clicks inside the surface.
func OnClick(fn func()) Behavior {
	return func(s surface.Surface) func() {
		return s.Listen(func(ev surface.Event) bool {
			if ev.Kind != surface.Click || !s.Contains(ev.X, ev.Y) {
				return false
			}
			fn()
			return true
		})
	}
}

// OnClickChild calls fn with the id of the descendant with role that was
// clicked. Clicks inside the surface but off any such descendant are ignored.
func OnClickChild(role string, fn func(id string)) Behavior {
	return func(s surface.Surface) func() {
		return s.Listen(func(ev surface.Event) bool {
			if ev.Kind != surface.Click || !s.Contains(ev.X, ev.Y) {
				return false
			}
			child := s.Descendant(role, ev.X, ev.Y)
			if child == nil {
				return false
			}
			fn(child.ID())
			return true
		})
	}
}

// OnClickOutside calls fn for clicks outside the surface that no exempt hit
// test claims.
func OnClickOutside(fn func(), exempt ...surface.HitFunc) Behavior {
	return func(s surface.Surface) func() {
		return s.Listen(func(ev surface.Event) bool {
			if ev.Kind != surface.Click || s.Contains(ev.X, ev.Y) {
				return false
			}
			for _, hit := range exempt {
				if hit != nil && hit(ev.X, ev.Y) {
					return false
				}
			}
			fn()
			return false
		})
	}
}

// OnHoverChild tracks the pointer over descendants with role. Entering a
// descendant calls hover with its id; moving off every descendant (onto the
// surface's padding or out of it) calls leave once. Moves are ignored while
// the menu is collapsed, so a hidden list never re-expands the menu.
func OnHoverChild(store Store, role string, hover func(id string), leave func()) Behavior {
	return func(s surface.Surface) func() {
		var over string
		inside := false
		return s.Listen(func(ev surface.Event) bool {
			if ev.Kind != surface.PointerMove {
				return false
			}
			if !store.State().Expanded {
				over, inside = "", false
				return false
			}
			nowInside := s.Contains(ev.X, ev.Y)
			id := ""
			if nowInside {
				if child := s.Descendant(role, ev.X, ev.Y); child != nil {
					id = child.ID()
				}
			}
			switch {
			case id != "" && id != over:
				hover(id)
			case id == "" && (over != "" || (inside && !nowInside)):
				leave()
			}
			over, inside = id, nowInside
			return false
		})
	}
}

// FocusOnExpanded moves focus to the surface each time the menu opens.
func FocusOnExpanded(store Store, f Focuser) Behavior {
	return onExpandedChange(store, func(s surface.Surface, expanded bool) {
		if expanded {
			f.SetFocus(s.ID())
		}
	})
}

// FocusOnClose returns focus to the surface each time the menu closes.
func FocusOnClose(store Store, f Focuser) Behavior {
	return onExpandedChange(store, func(s surface.Surface, expanded bool) {
		if !expanded {
			f.SetFocus(s.ID())
		}
	})
}

// onExpandedChange calls fn on every transition of State.Expanded. The
// initial snapshot only primes the previous value.
func onExpandedChange(store Store, fn func(s surface.Surface, expanded bool)) Behavior {
	return func(s surface.Surface) func() {
		primed := false
		prev := false
		return store.Subscribe(func(st menu.State) {
			if !primed {
				primed, prev = true, st.Expanded
				return
			}
			if st.Expanded != prev {
				prev = st.Expanded
				fn(s, st.Expanded)
			}
		})
	}
}
