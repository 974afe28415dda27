package surface

import "sync"

// Emitted is a notification recorded by Node.Emit.
type Emitted struct {
	Source string // id of the emitting surface
	Name   string
	Detail any
}

// HitFunc reports whether a point is inside a surface.
type HitFunc func(x, y int) bool

// Rect is an inclusive cell rectangle usable as a HitFunc.
type Rect struct {
	X0, Y0, X1, Y1 int
}

// Hit implements HitFunc for r.
func (r Rect) Hit(x, y int) bool {
	return x >= r.X0 && x <= r.X1 && y >= r.Y0 && y <= r.Y1
}

// Node is an in-memory Surface. Children form a tree for pointer targeting;
// bounds come from a HitFunc the host sets after layout.
type Node struct {
	mu       sync.Mutex
	id       string
	text     string
	attrs    map[string]string
	hit      HitFunc
	parent   *Node
	children []*Node

	listeners []listenerEntry
	nextL     int

	// OnEmit receives every notification emitted by this node.
	OnEmit func(Emitted)
}

type listenerEntry struct {
	id int
	fn Listener
}

var _ Surface = (*Node)(nil)

// NewNode creates a node with the given text content.
func NewNode(text string) *Node {
	return &Node{text: text, attrs: make(map[string]string)}
}

// ID implements Surface.
func (n *Node) ID() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.id
}

// SetID implements Surface.
func (n *Node) SetID(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.id = id
}

// Attr implements Surface.
func (n *Node) Attr(name string) (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	v, ok := n.attrs[name]
	return v, ok
}

// SetAttr implements Surface.
func (n *Node) SetAttr(name, value string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.attrs[name] = value
}

// RemoveAttr implements Surface.
func (n *Node) RemoveAttr(name string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.attrs, name)
}

// Text implements Surface.
func (n *Node) Text() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.text
}

// SetText replaces the node's text content.
func (n *Node) SetText(text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.text = text
}

// SetHit sets the hit test used by Contains. A nil HitFunc makes the node
// unreachable by the pointer, which is how hidden nodes are modelled.
func (n *Node) SetHit(hit HitFunc) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.hit = hit
}

// Contains implements Surface.
func (n *Node) Contains(x, y int) bool {
	n.mu.Lock()
	hit := n.hit
	n.mu.Unlock()
	return hit != nil && hit(x, y)
}

// Append adds child as the last child of n.
func (n *Node) Append(child *Node) {
	n.mu.Lock()
	defer n.mu.Unlock()
	child.parent = n
	n.children = append(n.children, child)
}

// Remove detaches child from n. Unknown children are ignored.
func (n *Node) Remove(child *Node) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// Children returns a copy of n's children.
func (n *Node) Children() []*Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Descendant implements Surface.
func (n *Node) Descendant(role string, x, y int) Surface {
	if d := n.descendant(role, x, y); d != nil {
		return d
	}
	return nil
}

func (n *Node) descendant(role string, x, y int) *Node {
	for _, c := range n.Children() {
		if d := c.descendant(role, x, y); d != nil {
			return d
		}
		if r, _ := c.Attr(AttrRole); r == role && c.Contains(x, y) {
			return c
		}
	}
	return nil
}

// Listen implements Surface.
func (n *Node) Listen(l Listener) (remove func()) {
	n.mu.Lock()
	n.nextL++
	id := n.nextL
	n.listeners = append(n.listeners, listenerEntry{id: id, fn: l})
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		for i, e := range n.listeners {
			if e.id == id {
				n.listeners = append(n.listeners[:i:i], n.listeners[i+1:]...)
				return
			}
		}
	}
}

// Listeners returns the number of registered listeners.
func (n *Node) Listeners() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.listeners)
}

// Dispatch delivers ev to every listener in registration order and reports
// whether any of them consumed it.
func (n *Node) Dispatch(ev Event) bool {
	n.mu.Lock()
	ls := make([]listenerEntry, len(n.listeners))
	copy(ls, n.listeners)
	n.mu.Unlock()

	consumed := false
	for _, e := range ls {
		if e.fn(ev) {
			consumed = true
		}
	}
	return consumed
}

// Emit implements Surface.
func (n *Node) Emit(name string, detail any) {
	n.mu.Lock()
	fn := n.OnEmit
	id := n.id
	n.mu.Unlock()
	if fn != nil {
		fn(Emitted{Source: id, Name: name, Detail: detail})
	}
}
