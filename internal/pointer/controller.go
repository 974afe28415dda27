// Package pointer maps pointer hover and click input to menu operations.
package pointer

// Store is the subset of menu operations driven by the pointer.
type Store interface {
	SelectBySurface(id string)
	None()
	Close()
	Toggle()
}

// Controller translates resolved pointer targets into store operations.
// Hit testing (which item is under the pointer) is done by the caller.
type Controller struct {
	store    Store
	selectFn func()
}

// NewController creates a controller. selectFn fires the selection for the
// current active item and closes the menu.
func NewController(store Store, selectFn func()) *Controller {
	if selectFn == nil {
		selectFn = func() {}
	}
	return &Controller{store: store, selectFn: selectFn}
}

// Hover makes the item under the pointer active.
func (c *Controller) Hover(itemID string) {
	c.store.SelectBySurface(itemID)
}

// Leave clears the active item when the pointer leaves the list.
func (c *Controller) Leave() {
	c.store.None()
}

// Click confirms the clicked item. The click implies a hover, so the clicked
// item is the one selected.
func (c *Controller) Click(itemID string) {
	c.Hover(itemID)
	c.selectFn()
}

// ClickTrigger opens or closes the menu.
func (c *Controller) ClickTrigger() {
	c.store.Toggle()
}

// ClickOutside closes the menu without selecting.
func (c *Controller) ClickOutside() {
	c.store.Close()
}
