package binder

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menukit/internal/menu"
	"menukit/internal/surface"
)

type recordingFocuser struct {
	focused []string
}

func (f *recordingFocuser) SetFocus(id string) bool {
	f.focused = append(f.focused, id)
	return true
}

type recordingObserver struct {
	NoopObserver
	events []string
	sels   []menu.Selection
}

func (o *recordingObserver) OnExpand(menu.State)   { o.events = append(o.events, "expand") }
func (o *recordingObserver) OnCollapse(menu.State) { o.events = append(o.events, "collapse") }
func (o *recordingObserver) OnSelect(sel menu.Selection) {
	o.events = append(o.events, "select")
	o.sels = append(o.sels, sel)
}

// fixture lays the trigger out on row 0 and the list on rows 1..4 with one
// item per row starting at row 1.
type fixture struct {
	t       *testing.T
	store   *menu.Store
	binder  *Binder
	focus   *recordingFocuser
	obs     *recordingObserver
	trigger *surface.Node
	list    *surface.Node
	items   []*surface.Node
	handles []*ItemHandle
	emitted []surface.Emitted
}

func newFixture(t *testing.T, values ...string) *fixture {
	t.Helper()
	f := &fixture{
		t:     t,
		store: menu.NewStore(menu.WithLabel("Actions")),
		focus: &recordingFocuser{},
		obs:   &recordingObserver{},
	}
	f.binder = New(f.store, WithFocuser(f.focus), WithObserver(f.obs))
	t.Cleanup(f.binder.Close)

	f.trigger = surface.NewNode("Actions")
	f.trigger.SetHit(surface.Rect{X0: 0, Y0: 0, X1: 9, Y1: 0}.Hit)
	f.trigger.OnEmit = func(e surface.Emitted) { f.emitted = append(f.emitted, e) }
	f.list = surface.NewNode("")
	f.list.SetHit(surface.Rect{X0: 0, Y0: 1, X1: 9, Y1: 4}.Hit)

	f.binder.Button(f.trigger)
	f.binder.Menu(f.list)
	for i, v := range values {
		n := surface.NewNode("  " + v + "  ")
		row := 1 + i
		n.SetHit(surface.Rect{X0: 0, Y0: row, X1: 9, Y1: row}.Hit)
		f.list.Append(n)
		f.items = append(f.items, n)
		f.handles = append(f.handles, f.binder.Item(n, ""))
	}
	return f
}

func (f *fixture) key(n *surface.Node, k tea.KeyMsg) bool {
	return n.Dispatch(surface.Event{Kind: surface.KeyDown, Key: k})
}

func (f *fixture) click(x, y int) {
	ev := surface.Event{Kind: surface.Click, X: x, Y: y}
	f.trigger.Dispatch(ev)
	f.list.Dispatch(ev)
}

func (f *fixture) move(x, y int) {
	ev := surface.Event{Kind: surface.PointerMove, X: x, Y: y}
	f.trigger.Dispatch(ev)
	f.list.Dispatch(ev)
}

func attr(t *testing.T, s surface.Surface, name string) string {
	t.Helper()
	v, ok := s.Attr(name)
	require.Truef(t, ok, "attribute %s not set", name)
	return v
}

func TestBinder_AssignsIDsAndAttributes(t *testing.T) {
	f := newFixture(t, "One", "Two")

	assert.Equal(t, "menu-button-1", f.trigger.ID())
	assert.Equal(t, "menu-1", f.list.ID())
	assert.Equal(t, "menu-item-1", f.items[0].ID())
	assert.Equal(t, "menu-item-2", f.items[1].ID())

	assert.Equal(t, surface.RoleButton, attr(t, f.trigger, surface.AttrRole))
	assert.Equal(t, "button", attr(t, f.trigger, surface.AttrType))
	assert.Equal(t, "true", attr(t, f.trigger, surface.AttrHasPopup))
	assert.Equal(t, "0", attr(t, f.trigger, surface.AttrTabIndex))
	assert.Equal(t, "Actions", attr(t, f.trigger, surface.AttrLabel))
	assert.Equal(t, "false", attr(t, f.trigger, surface.AttrExpanded))
	assert.Equal(t, "menu-1", attr(t, f.trigger, surface.AttrControls))

	assert.Equal(t, surface.RoleMenu, attr(t, f.list, surface.AttrRole))
	assert.Equal(t, "0", attr(t, f.list, surface.AttrTabIndex))
	assert.Equal(t, "menu-button-1", attr(t, f.list, surface.AttrLabelledBy))

	assert.Equal(t, surface.RoleMenuItem, attr(t, f.items[0], surface.AttrRole))
	assert.Equal(t, "-1", attr(t, f.items[0], surface.AttrTabIndex))

	st := f.store.State()
	assert.Equal(t, "menu-button-1", st.ButtonID)
	assert.Equal(t, "menu-1", st.MenuID)
	assert.Equal(t, []menu.Item{{ID: "menu-item-1", Value: "One"}, {ID: "menu-item-2", Value: "Two"}}, st.Items)
}

func TestBinder_KeepsExistingIDs(t *testing.T) {
	store := menu.NewStore()
	b := New(store)
	defer b.Close()
	n := surface.NewNode("")
	n.SetID("custom")
	b.Button(n)
	assert.Equal(t, "custom", n.ID())
	assert.Equal(t, "custom", store.State().ButtonID)
}

func TestBinder_OneTwoThreeScenario(t *testing.T) {
	f := newFixture(t, "One", "Two", "Three")

	f.store.Open()
	st := f.store.State()
	assert.Equal(t, 0, st.Active)
	assert.True(t, st.Expanded)

	f.store.Next()
	f.store.Next()
	sel := f.store.Snapshot()
	assert.Equal(t, 2, sel.Active)
	assert.Equal(t, "Three", sel.Value)

	assert.True(t, f.key(f.list, tea.KeyMsg{Type: tea.KeyEsc}))
	st = f.store.State()
	assert.False(t, st.Expanded)
	assert.Equal(t, 2, st.Active, "closing keeps the active index")

	f.store.Open()
	assert.Equal(t, 0, f.store.State().Active, "opening resets the active index")
	assert.Empty(t, f.emitted, "escape does not select")
}

func TestBinder_KeyboardSelection(t *testing.T) {
	f := newFixture(t, "One", "Two", "Three")

	assert.True(t, f.key(f.trigger, tea.KeyMsg{Type: tea.KeyEnter}))
	assert.True(t, f.store.State().Expanded)
	assert.Equal(t, "menu-item-1", attr(t, f.list, surface.AttrActiveDescendant))

	f.key(f.list, tea.KeyMsg{Type: tea.KeyDown})
	f.key(f.list, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "menu-item-3", attr(t, f.list, surface.AttrActiveDescendant))
	assert.True(t, f.key(f.list, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}))

	require.Len(t, f.emitted, 1)
	assert.Equal(t, EventSelect, f.emitted[0].Name)
	assert.Equal(t, "menu-button-1", f.emitted[0].Source)
	assert.Equal(t, menu.Selection{Active: 2, Value: "Three", OK: true}, f.emitted[0].Detail)
	assert.False(t, f.store.State().Expanded)
	assert.Equal(t, "false", attr(t, f.trigger, surface.AttrExpanded))

	assert.Equal(t, []string{"menu-1", "menu-button-1"}, f.focus.focused)
	assert.Equal(t, []string{"expand", "select", "collapse"}, f.obs.events)
}

func TestBinder_TriggerHomeEndReversed(t *testing.T) {
	f := newFixture(t, "One", "Two", "Three")

	f.key(f.trigger, tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, 2, f.store.State().Active)
	f.key(f.trigger, tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, 0, f.store.State().Active)
}

func TestBinder_TypeaheadOnList(t *testing.T) {
	f := newFixture(t, "apple", "banana", "cherry")
	f.store.Open()

	f.key(f.list, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	assert.Equal(t, 2, f.store.State().Active)
	f.key(f.list, tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, f.emitted, 1)
	assert.Equal(t, "cherry", f.emitted[0].Detail.(menu.Selection).Value)
}

func TestBinder_TabPassesThrough(t *testing.T) {
	f := newFixture(t, "One")
	f.store.Open()
	assert.False(t, f.key(f.list, tea.KeyMsg{Type: tea.KeyTab}))
	assert.True(t, f.store.State().Expanded)
}

func TestBinder_PointerHoverAndClick(t *testing.T) {
	f := newFixture(t, "One", "Two", "Three")

	f.click(2, 0)
	assert.True(t, f.store.State().Expanded, "clicking the trigger opens")

	f.move(3, 2)
	assert.Equal(t, 1, f.store.State().Active)
	f.move(3, 4)
	assert.Equal(t, -1, f.store.State().Active, "padding clears the active item")
	f.move(3, 3)
	assert.Equal(t, 2, f.store.State().Active)

	f.click(3, 2)
	require.Len(t, f.emitted, 1)
	assert.Equal(t, menu.Selection{Active: 1, Value: "Two", OK: true}, f.emitted[0].Detail)
	assert.False(t, f.store.State().Expanded)

	f.move(3, 1)
	assert.False(t, f.store.State().Expanded, "hover on a hidden list does nothing")
}

func TestBinder_ClickTriggerToggles(t *testing.T) {
	f := newFixture(t, "One")
	f.click(0, 0)
	f.click(0, 0)
	assert.False(t, f.store.State().Expanded)
	assert.Empty(t, f.emitted)
}

func TestBinder_ClickOutsideCloses(t *testing.T) {
	f := newFixture(t, "One", "Two")
	f.store.Open()
	f.store.Next()

	f.click(40, 20)
	st := f.store.State()
	assert.False(t, st.Expanded)
	assert.Equal(t, 1, st.Active)
	assert.Empty(t, f.emitted)
}

func TestBinder_ItemValueFallbackAndUpdate(t *testing.T) {
	f := newFixture(t, "One")
	assert.Equal(t, "One", f.store.State().Items[0].Value, "text is trimmed")

	n := surface.NewNode("ignored")
	h := f.binder.Item(n, "Explicit")
	assert.Equal(t, "Explicit", f.store.State().Items[1].Value)

	h.Update("Renamed")
	assert.Equal(t, "Renamed", f.store.State().Items[1].Value)

	n.SetText("  From text ")
	h.Update("")
	assert.Equal(t, "From text", f.store.State().Items[1].Value)
}

func TestBinder_RemoveActiveItem(t *testing.T) {
	t.Run("last item clamps", func(t *testing.T) {
		f := newFixture(t, "One", "Two", "Three")
		f.store.Open()
		f.store.Last()
		f.handles[2].Destroy()

		sel := f.store.Snapshot()
		assert.Equal(t, 1, sel.Active)
		assert.Equal(t, "Two", sel.Value)
		assert.Equal(t, "menu-item-2", attr(t, f.list, surface.AttrActiveDescendant))
	})
	t.Run("middle item keeps the index", func(t *testing.T) {
		f := newFixture(t, "One", "Two", "Three")
		f.store.Open()
		f.store.Next()
		f.handles[1].Destroy()

		sel := f.store.Snapshot()
		assert.Equal(t, 1, sel.Active)
		assert.Equal(t, "Three", sel.Value)
	})
	t.Run("only item empties the list", func(t *testing.T) {
		f := newFixture(t, "One")
		f.store.Open()
		f.handles[0].Destroy()

		sel := f.store.Snapshot()
		assert.Equal(t, -1, sel.Active)
		assert.False(t, sel.OK)
		_, ok := f.list.Attr(surface.AttrActiveDescendant)
		assert.False(t, ok)
	})
}

func TestBinder_DetachOnce(t *testing.T) {
	store := menu.NewStore()
	b := New(store)
	defer b.Close()

	trigger := surface.NewNode("")
	detach := b.Button(trigger)
	assert.Positive(t, trigger.Listeners())

	detach()
	detach()
	assert.Zero(t, trigger.Listeners())
	_, ok := trigger.Attr(surface.AttrRole)
	assert.False(t, ok)

	item := surface.NewNode("A")
	h := b.Item(item, "")
	b.Item(surface.NewNode("B"), "")
	h.Destroy()
	h.Destroy()
	assert.Equal(t, []menu.Item{{ID: "menu-item-2", Value: "B"}}, store.State().Items)
}

func TestBinder_SelectAfterTriggerDetached(t *testing.T) {
	f := newFixture(t, "One")
	detach := f.binder.Button(surface.NewNode(""))
	detach()
	f.store.Open()

	assert.NotPanics(t, func() { f.key(f.list, tea.KeyMsg{Type: tea.KeyEnter}) })
	assert.False(t, f.store.State().Expanded)
}

func TestBinder_CloseStopsObservers(t *testing.T) {
	f := newFixture(t, "One")
	f.binder.Close()
	f.binder.Close()
	f.store.Open()
	assert.Empty(t, f.obs.events)
}
