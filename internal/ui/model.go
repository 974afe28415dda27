package ui

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"menukit/internal/binder"
	"menukit/internal/config"
	"menukit/internal/keys"
	"menukit/internal/menu"
	"menukit/internal/surface"
	"menukit/internal/ui/textutil"
)

// SelectedMsg reports a confirmed selection.
type SelectedMsg struct {
	Selection menu.Selection
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) { m.log = l }
}

// WithObserver adds a menu observer.
func WithObserver(o binder.Observer) Option {
	return func(m *Model) { m.observers = append(m.observers, o) }
}

// WithQuitOnSelect makes the program quit after the first selection.
func WithQuitOnSelect() Option {
	return func(m *Model) { m.quitOnSelect = true }
}

// WithZoneManager shares a bubblezone manager. By default the Model owns
// one and closes it in Close.
func WithZoneManager(z *zone.Manager) Option {
	return func(m *Model) { m.zones = z }
}

type item struct {
	node   *surface.Node
	handle *binder.ItemHandle
}

// Model is a Bubble Tea model for one menu.
type Model struct {
	store        *menu.Store
	binder       *binder.Binder
	zones        *zone.Manager
	ownZones     bool
	zonePrefix   string
	focus        FocusManager
	help         help.Model
	keys         keys.KeyMap
	log          *slog.Logger
	observers    []binder.Observer
	quitOnSelect bool

	trigger *surface.Node
	list    *surface.Node
	items   []item
	detach  []func()

	pending  []menu.Selection
	selected *menu.Selection
	quitting bool
	width    int
}

var _ tea.Model = (*Model)(nil)

// New builds a menu from cfg.
func New(cfg *config.Config, opts ...Option) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	matcher, err := cfg.Matcher()
	if err != nil {
		return nil, err
	}
	km, err := cfg.KeyMap()
	if err != nil {
		return nil, err
	}

	m := &Model{
		keys: km,
		help: help.New(),
		log:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.zones == nil {
		m.zones = zone.New()
		m.ownZones = true
	}
	m.zonePrefix = m.zones.NewPrefix()

	var ids surface.IDGenerator = surface.NewSequence()
	if cfg.IDPrefix != "" {
		ids = surface.Namespaced(cfg.IDPrefix, ids)
	}

	m.store = menu.NewStore(menu.WithLabel(cfg.Label), menu.WithMatcher(matcher))
	bopts := []binder.Option{
		binder.WithIDGenerator(ids),
		binder.WithFocuser(&m.focus),
		binder.WithKeyMap(km),
		binder.WithTypeahead(keys.NewTypeahead(cfg.TypeaheadTimeout())),
		binder.WithLogger(m.log),
		binder.WithObserver(binder.LogObserver{Logger: m.log}),
	}
	for _, o := range m.observers {
		bopts = append(bopts, binder.WithObserver(o))
	}
	m.binder = binder.New(m.store, bopts...)

	m.trigger = surface.NewNode(cfg.Label)
	m.trigger.OnEmit = m.onEmit
	m.list = surface.NewNode("")
	m.detach = append(m.detach, m.binder.Button(m.trigger), m.binder.Menu(m.list))
	m.trigger.SetHit(m.zoneHit(m.trigger, false))
	m.list.SetHit(m.zoneHit(m.list, true))

	for _, e := range cfg.Entries() {
		m.AddItem(e.Text, e.Value)
	}

	m.focus.Order = []string{m.trigger.ID(), m.list.ID()}
	m.focus.Current = m.trigger.ID()
	m.focus.Enabled = func(id string) bool {
		return id != m.list.ID() || m.store.State().Expanded
	}
	m.focus.OnChange = func(from, to string) {
		m.log.Debug("focus moved", "from", from, "to", to)
	}
	return m, nil
}

// AddItem appends an item showing text. An empty value falls back to the
// trimmed text.
func (m *Model) AddItem(text, value string) *binder.ItemHandle {
	n := surface.NewNode(text)
	m.list.Append(n)
	h := m.binder.Item(n, value)
	n.SetHit(m.zoneHit(n, true))
	m.items = append(m.items, item{node: n, handle: h})
	return h
}

// RemoveItem removes the item with the given surface id.
func (m *Model) RemoveItem(id string) bool {
	for i, it := range m.items {
		if it.node.ID() != id {
			continue
		}
		it.handle.Destroy()
		m.list.Remove(it.node)
		m.zones.Clear(m.zoneID(it.node))
		m.items = append(m.items[:i:i], m.items[i+1:]...)
		return true
	}
	return false
}

// Store returns the menu state store.
func (m *Model) Store() *menu.Store { return m.store }

// Focused returns the id of the surface with input focus.
func (m *Model) Focused() string { return m.focus.Current }

// Selected returns the confirmed selection, if any.
func (m *Model) Selected() (menu.Selection, bool) {
	if m.selected == nil {
		return menu.Selection{}, false
	}
	return *m.selected, true
}

// Close detaches every surface and releases the zone manager if the Model
// owns it.
func (m *Model) Close() {
	for i := len(m.detach) - 1; i >= 0; i-- {
		m.detach[i]()
	}
	m.detach = nil
	for _, it := range m.items {
		it.handle.Destroy()
	}
	m.binder.Close()
	if m.ownZones {
		m.zones.Close()
		m.ownZones = false
	}
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	case SelectedMsg:
		sel := msg.Selection
		m.selected = &sel
		if m.quitOnSelect {
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return tea.Quit
	}

	consumed := false
	if target := m.focused(); target != nil {
		consumed = target.Dispatch(surface.Event{Kind: surface.KeyDown, Key: msg})
	}
	if !consumed {
		switch msg.String() {
		case "tab":
			m.focus.Next()
		case "shift+tab":
			m.focus.Prev()
		case "q", "esc":
			if !m.store.State().Expanded {
				m.quitting = true
				return tea.Quit
			}
		}
	}
	return m.flush()
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	var kind surface.EventKind
	switch {
	case msg.Action == tea.MouseActionMotion:
		kind = surface.PointerMove
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		kind = surface.Click
	default:
		return nil
	}
	ev := surface.Event{Kind: kind, X: msg.X, Y: msg.Y}
	m.trigger.Dispatch(ev)
	m.list.Dispatch(ev)
	return m.flush()
}

func (m *Model) focused() *surface.Node {
	switch m.focus.Current {
	case m.trigger.ID():
		return m.trigger
	case m.list.ID():
		return m.list
	}
	return nil
}

func (m *Model) onEmit(e surface.Emitted) {
	if e.Name != binder.EventSelect {
		return
	}
	if sel, ok := e.Detail.(menu.Selection); ok {
		m.pending = append(m.pending, sel)
	}
}

// flush turns selections emitted during the last event into messages.
func (m *Model) flush() tea.Cmd {
	if len(m.pending) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(m.pending))
	for _, sel := range m.pending {
		cmds = append(cmds, func() tea.Msg { return SelectedMsg{Selection: sel} })
	}
	m.pending = nil
	if len(cmds) == 1 {
		return cmds[0]
	}
	return tea.Sequence(cmds...)
}

func (m *Model) zoneID(n *surface.Node) string {
	return m.zonePrefix + n.ID()
}

// zoneHit hit-tests against the zone n was last rendered into. List
// surfaces are unreachable while the menu is collapsed.
func (m *Model) zoneHit(n *surface.Node, inList bool) surface.HitFunc {
	id := m.zoneID(n)
	return func(x, y int) bool {
		if inList && !m.store.State().Expanded {
			return false
		}
		z := m.zones.Get(id)
		if z == nil || z.IsZero() {
			return false
		}
		return x >= z.StartX && x <= z.EndX && y >= z.StartY && y <= z.EndY
	}
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	st := m.store.State()

	var b strings.Builder
	b.WriteString(m.zones.Mark(m.zoneID(m.trigger), m.renderTrigger(st)))
	b.WriteString("\n")
	if st.Expanded {
		b.WriteString(m.zones.Mark(m.zoneID(m.list), m.renderList(st)))
		b.WriteString("\n")
	}
	b.WriteString(Styles.Hint.Render(m.help.View(m.keys)))
	return m.zones.Scan(b.String())
}

func (m *Model) renderTrigger(st menu.State) string {
	arrow := "▾"
	if st.Expanded {
		arrow = "▴"
	}
	style := Styles.Trigger
	if m.focus.Current == m.trigger.ID() {
		style = Styles.TriggerFocused
	}
	return style.Render(st.Label + " " + arrow)
}

func (m *Model) renderList(st menu.State) string {
	box := Styles.List
	if m.focus.Current == m.list.ID() {
		box = Styles.ListFocused
	}
	if len(m.items) == 0 {
		return box.Render(Styles.Empty.Render("no items"))
	}

	texts := make([]string, len(m.items))
	for i, it := range m.items {
		texts[i] = it.node.Text()
	}
	// Two columns for the active marker.
	width := textutil.MaxWidth(texts...) + 2
	if m.width > 0 {
		// Border and padding take four columns.
		width = max(min(width, m.width-4), 3)
	}

	active := st.ActiveID()
	lines := make([]string, len(m.items))
	for i, it := range m.items {
		marker, style := "  ", Styles.Item
		if it.node.ID() == active {
			marker, style = "› ", Styles.ItemActive
		}
		line := style.Render(textutil.Fit(marker+texts[i], width))
		lines[i] = m.zones.Mark(m.zoneID(it.node), line)
	}
	return box.Render(strings.Join(lines, "\n"))
}
