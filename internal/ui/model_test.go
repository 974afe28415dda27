package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menukit/internal/config"
	"menukit/internal/menu"
	"menukit/internal/surface"
)

func newTestModel(t *testing.T, opts ...Option) *Model {
	t.Helper()
	cfg := config.Default()
	cfg.Label = "Numbers"
	cfg.Items = []string{"One", "Two", "Three"}
	m, err := New(cfg, opts...)
	require.NoError(t, err)
	t.Cleanup(m.Close)
	return m
}

func key(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

// send delivers msg and feeds any resulting SelectedMsg back into the model,
// returning the final command.
func send(m *Model, msg tea.Msg) tea.Cmd {
	_, cmd := m.Update(msg)
	if cmd == nil {
		return nil
	}
	if sel, ok := cmd().(SelectedMsg); ok {
		_, cmd = m.Update(sel)
	}
	return cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(config.Default())
	assert.ErrorIs(t, err, config.ErrNoItems)
}

func TestModel_KeyboardSelection(t *testing.T) {
	m := newTestModel(t, WithQuitOnSelect())

	send(m, key(tea.KeyEnter))
	assert.True(t, m.Store().State().Expanded)
	assert.Equal(t, "menu-1", m.Focused(), "opening moves focus to the list")

	send(m, key(tea.KeyDown))
	send(m, key(tea.KeyDown))
	cmd := send(m, key(tea.KeyEnter))

	sel, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, menu.Selection{Active: 2, Value: "Three", OK: true}, sel)
	assert.True(t, isQuit(cmd))
	assert.Equal(t, "menu-button-1", m.Focused(), "closing returns focus to the trigger")
	assert.Empty(t, m.View())
}

func TestModel_SelectionWithoutQuit(t *testing.T) {
	m := newTestModel(t)
	send(m, key(tea.KeyEnter))
	send(m, runes("t"))
	cmd := send(m, key(tea.KeyEnter))

	assert.False(t, isQuit(cmd))
	sel, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "Two", sel.Value)
}

func TestModel_Quit(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
	}{
		{"q", runes("q")},
		{"esc", key(tea.KeyEsc)},
		{"ctrl+c", key(tea.KeyCtrlC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t)
			assert.True(t, isQuit(send(m, tt.msg)))
			_, ok := m.Selected()
			assert.False(t, ok)
		})
	}
}

func TestModel_EscClosesBeforeQuitting(t *testing.T) {
	m := newTestModel(t)
	send(m, key(tea.KeyEnter))
	assert.False(t, isQuit(send(m, key(tea.KeyEsc))))
	assert.False(t, m.Store().State().Expanded)
	assert.True(t, isQuit(send(m, key(tea.KeyEsc))))
}

func TestModel_TabFocus(t *testing.T) {
	m := newTestModel(t)

	send(m, key(tea.KeyTab))
	assert.Equal(t, "menu-button-1", m.Focused(), "a collapsed list cannot take focus")

	send(m, key(tea.KeyEnter))
	require.Equal(t, "menu-1", m.Focused())
	send(m, key(tea.KeyTab))
	assert.Equal(t, "menu-button-1", m.Focused())
	assert.True(t, m.Store().State().Expanded, "tab leaves the menu open")
	send(m, key(tea.KeyShiftTab))
	assert.Equal(t, "menu-1", m.Focused())
}

func TestModel_View(t *testing.T) {
	m := newTestModel(t)

	v := m.View()
	assert.Contains(t, v, "Numbers ▾")
	assert.NotContains(t, v, "One")

	send(m, key(tea.KeyEnter))
	send(m, key(tea.KeyDown))
	v = m.View()
	assert.Contains(t, v, "Numbers ▴")
	assert.Contains(t, v, "  One")
	assert.Contains(t, v, "› Two")
	assert.Contains(t, v, "  Three")
}

func TestModel_AddRemoveItem(t *testing.T) {
	m := newTestModel(t)
	h := m.AddItem("Four", "")
	assert.Equal(t, "menu-item-4", h.ID())

	send(m, key(tea.KeyEnter))
	send(m, key(tea.KeyEnd))
	require.Equal(t, "Four", m.Store().Snapshot().Value)

	assert.True(t, m.RemoveItem("menu-item-4"))
	assert.False(t, m.RemoveItem("menu-item-4"))
	sel := m.Store().Snapshot()
	assert.Equal(t, 2, sel.Active)
	assert.Equal(t, "Three", sel.Value)
	assert.NotContains(t, m.View(), "Four")
}

func TestModel_IDPrefix(t *testing.T) {
	cfg := config.Default()
	cfg.Items = []string{"a"}
	cfg.IDPrefix = "fruit"
	m, err := New(cfg)
	require.NoError(t, err)
	defer m.Close()

	st := m.Store().State()
	assert.Equal(t, "fruit-menu-button-1", st.ButtonID)
	assert.Equal(t, "fruit-menu-1", st.MenuID)
	assert.Equal(t, "fruit-menu-item-1", st.Items[0].ID)
}

// zoneOf renders the model and waits for the zone of n to be registered.
func zoneOf(t *testing.T, m *Model, n *surface.Node) (x, y int) {
	t.Helper()
	m.View()
	id := m.zoneID(n)
	require.Eventually(t, func() bool {
		z := m.zones.Get(id)
		return z != nil && !z.IsZero()
	}, time.Second, 5*time.Millisecond)
	z := m.zones.Get(id)
	return z.StartX, z.StartY
}

func TestModel_Mouse(t *testing.T) {
	m := newTestModel(t)

	x, y := zoneOf(t, m, m.trigger)
	send(m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	require.True(t, m.Store().State().Expanded)

	zoneOf(t, m, m.list)
	x, y = zoneOf(t, m, m.items[1].node)
	send(m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion})
	assert.Equal(t, 1, m.Store().State().Active)

	send(m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	sel, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "Two", sel.Value)
	assert.False(t, m.Store().State().Expanded)
}

func TestModel_MouseClickOutside(t *testing.T) {
	m := newTestModel(t)
	send(m, key(tea.KeyEnter))
	zoneOf(t, m, m.list)

	send(m, tea.MouseMsg{X: 200, Y: 200, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.False(t, m.Store().State().Expanded)
	_, ok := m.Selected()
	assert.False(t, ok)
}

func TestModel_HelpShown(t *testing.T) {
	m := newTestModel(t)
	send(m, tea.WindowSizeMsg{Width: 80, Height: 24})
	v := m.View()
	assert.True(t, strings.Contains(v, "select") && strings.Contains(v, "close"), v)
}
