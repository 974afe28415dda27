package keys

import tea "github.com/charmbracelet/bubbletea"

// Store is the subset of menu operations the controller drives.
type Store interface {
	Toggle()
	Close()
	First()
	Last()
	Previous()
	Next()
	Search(query string)
}

// Controller maps keys to store operations, with one chain for the trigger
// surface and one for the list surface.
type Controller struct {
	store     Store
	keys      KeyMap
	selectFn  func()
	typeahead *Typeahead

	trigger Handler
	list    Handler
}

// NewController builds the trigger and list chains. selectFn fires the
// selection for the current active item and closes the menu.
func NewController(store Store, km KeyMap, ta *Typeahead, selectFn func()) *Controller {
	if ta == nil {
		ta = NewTypeahead(0)
	}
	if selectFn == nil {
		selectFn = func() {}
	}
	c := &Controller{
		store:     store,
		keys:      km,
		selectFn:  selectFn,
		typeahead: ta,
	}

	// The trigger's first/last pair is wired in reverse: the "first" key
	// jumps to the last item and the "last" key to the first.
	c.trigger = Chain(
		On(km.Select, store.Toggle),
		Pair(km.First, store.Last, km.Last, store.First),
	)

	c.list = Chain(
		On(km.Select, c.selectActive),
		On(km.Close, c.close),
		Pair(km.First, store.First, km.Last, store.Last),
		Pair(km.Previous, store.Previous, km.Next, store.Next),
		PassOn(km.Tab, func() {}),
		Character(c.search),
	)
	return c
}

// HandleTrigger offers a key received by the trigger surface.
func (c *Controller) HandleTrigger(msg tea.KeyMsg) Result {
	return c.trigger(msg)
}

// HandleList offers a key received by the list surface.
func (c *Controller) HandleList(msg tea.KeyMsg) Result {
	return c.list(msg)
}

// KeyMap returns the bindings in use.
func (c *Controller) KeyMap() KeyMap {
	return c.keys
}

// Typeahead returns the query buffer.
func (c *Controller) Typeahead() *Typeahead {
	return c.typeahead
}

func (c *Controller) selectActive() {
	c.typeahead.Reset()
	c.selectFn()
}

func (c *Controller) close() {
	c.typeahead.Reset()
	c.store.Close()
}

func (c *Controller) search(s string) {
	c.store.Search(c.typeahead.Append(s))
}
