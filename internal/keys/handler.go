// Package keys maps keyboard input to menu operations.
//
// Each surface gets an ordered chain of handlers. The first handler that
// recognises a key wins; later handlers never see it.
package keys

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Result is the outcome of offering a key to a handler.
type Result int

const (
	// Unmatched lets the next handler in the chain try the key.
	Unmatched Result = iota
	// Consumed stops the chain; the host must not act on the key.
	Consumed
	// Passthrough stops the chain but leaves the key to the host's default
	// handling (e.g. focus cycling on tab).
	Passthrough
)

// Handler inspects a key.
type Handler func(tea.KeyMsg) Result

// Chain returns a handler that offers each key to hs in order and stops at
// the first one that matches.
func Chain(hs ...Handler) Handler {
	return func(msg tea.KeyMsg) Result {
		for _, h := range hs {
			if r := h(msg); r != Unmatched {
				return r
			}
		}
		return Unmatched
	}
}

// On calls fn and consumes the key when it matches b.
func On(b key.Binding, fn func()) Handler {
	return func(msg tea.KeyMsg) Result {
		if !key.Matches(msg, b) {
			return Unmatched
		}
		fn()
		return Consumed
	}
}

// Pair handles two bindings at once, e.g. first/last or previous/next.
func Pair(a key.Binding, onA func(), b key.Binding, onB func()) Handler {
	return Chain(On(a, onA), On(b, onB))
}

// PassOn calls fn when msg matches b but leaves the key to the host.
func PassOn(b key.Binding, fn func()) Handler {
	return func(msg tea.KeyMsg) Result {
		if !key.Matches(msg, b) {
			return Unmatched
		}
		fn()
		return Passthrough
	}
}

// Character passes printable input to fn. Alt-modified keys are ignored.
func Character(fn func(string)) Handler {
	return func(msg tea.KeyMsg) Result {
		if msg.Type != tea.KeyRunes || msg.Alt || len(msg.Runes) == 0 {
			return Unmatched
		}
		for _, r := range msg.Runes {
			if r < ' ' || r == 0x7f {
				return Unmatched
			}
		}
		fn(string(msg.Runes))
		return Consumed
	}
}
