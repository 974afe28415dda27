package binder

import (
	"log/slog"

	"menukit/internal/menu"
)

// Observer receives menu lifecycle notifications.
type Observer interface {
	OnExpand(s menu.State)
	OnCollapse(s menu.State)
	OnSelect(sel menu.Selection)
}

// NoopObserver implements Observer with no-ops. Embed it to implement only
// the callbacks you need.
type NoopObserver struct{}

func (NoopObserver) OnExpand(menu.State)     {}
func (NoopObserver) OnCollapse(menu.State)   {}
func (NoopObserver) OnSelect(menu.Selection) {}

// MultiObserver fans out notifications to multiple observers.
type MultiObserver struct {
	observers []Observer
}

var _ Observer = (*MultiObserver)(nil)

// NewMultiObserver forwards to every non-nil observer in order.
func NewMultiObserver(observers ...Observer) *MultiObserver {
	filtered := make([]Observer, 0, len(observers))
	for _, obs := range observers {
		if obs != nil {
			filtered = append(filtered, obs)
		}
	}
	return &MultiObserver{observers: filtered}
}

// safeCall calls fn and swallows a panic, so one observer failing does not
// block the rest.
func safeCall(fn func()) {
	defer func() {
		_ = recover()
	}()
	fn()
}

func (m *MultiObserver) OnExpand(s menu.State) {
	for _, obs := range m.observers {
		safeCall(func() { obs.OnExpand(s) })
	}
}

func (m *MultiObserver) OnCollapse(s menu.State) {
	for _, obs := range m.observers {
		safeCall(func() { obs.OnCollapse(s) })
	}
}

func (m *MultiObserver) OnSelect(sel menu.Selection) {
	for _, obs := range m.observers {
		safeCall(func() { obs.OnSelect(sel) })
	}
}

// LogObserver logs menu transitions at debug level.
type LogObserver struct {
	Logger *slog.Logger
}

var _ Observer = LogObserver{}

func (o LogObserver) OnExpand(s menu.State) {
	o.logger().Debug("menu expanded", "menu", s.MenuID, "items", len(s.Items), "active", s.Active)
}

func (o LogObserver) OnCollapse(s menu.State) {
	o.logger().Debug("menu collapsed", "menu", s.MenuID, "active", s.Active)
}

func (o LogObserver) OnSelect(sel menu.Selection) {
	o.logger().Info("menu item selected", "active", sel.Active, "value", sel.Value, "ok", sel.OK)
}

func (o LogObserver) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}
