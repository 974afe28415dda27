package keys

import (
	"strings"
	"time"
)

// DefaultTypeaheadTimeout is how long the query buffer survives between
// keystrokes.
const DefaultTypeaheadTimeout = 500 * time.Millisecond

// Typeahead accumulates typed characters into a transient query.
type Typeahead struct {
	Timeout time.Duration
	Now     func() time.Time

	buf  strings.Builder
	last time.Time
}

// NewTypeahead creates a buffer with the given idle timeout. A non-positive
// timeout uses DefaultTypeaheadTimeout.
func NewTypeahead(timeout time.Duration) *Typeahead {
	if timeout <= 0 {
		timeout = DefaultTypeaheadTimeout
	}
	return &Typeahead{Timeout: timeout, Now: time.Now}
}

// Append adds s to the buffer, first discarding it if the previous keystroke
// is older than Timeout, and returns the accumulated query.
func (t *Typeahead) Append(s string) string {
	now := t.Now()
	if !t.last.IsZero() && now.Sub(t.last) > t.Timeout {
		t.buf.Reset()
	}
	t.last = now
	t.buf.WriteString(s)
	return t.buf.String()
}

// Reset empties the buffer.
func (t *Typeahead) Reset() {
	t.buf.Reset()
	t.last = time.Time{}
}

// Query returns the current buffer.
func (t *Typeahead) Query() string {
	return t.buf.String()
}
