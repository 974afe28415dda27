package behavior

import (
	"strconv"

	"menukit/internal/menu"
	"menukit/internal/surface"
)

// ReflectExpanded mirrors State.Expanded into aria-expanded.
func ReflectExpanded(store Store) Behavior {
	return reflect(store, func(s surface.Surface, st menu.State) {
		s.SetAttr(surface.AttrExpanded, strconv.FormatBool(st.Expanded))
	})
}

// ReflectControls mirrors the controlled list id into aria-controls.
func ReflectControls(store Store) Behavior {
	return reflect(store, func(s surface.Surface, st menu.State) {
		setOrRemove(s, surface.AttrControls, st.Controls)
	})
}

// ReflectLabel mirrors the configured label text into aria-label.
func ReflectLabel(store Store) Behavior {
	return reflect(store, func(s surface.Surface, st menu.State) {
		setOrRemove(s, surface.AttrLabel, st.Label)
	})
}

// ReflectLabelledBy points the list at the trigger that labels it.
func ReflectLabelledBy(store Store) Behavior {
	return reflect(store, func(s surface.Surface, st menu.State) {
		setOrRemove(s, surface.AttrLabelledBy, st.ButtonID)
	})
}

// ReflectActiveDescendant mirrors the active item's id; the attribute is
// absent while no item is active.
func ReflectActiveDescendant(store Store) Behavior {
	return reflect(store, func(s surface.Surface, st menu.State) {
		setOrRemove(s, surface.AttrActiveDescendant, st.ActiveID())
	})
}
