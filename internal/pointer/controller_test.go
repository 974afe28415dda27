package pointer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeStore struct {
	calls []string
}

func (f *fakeStore) SelectBySurface(id string) { f.calls = append(f.calls, "select:"+id) }
func (f *fakeStore) None()                     { f.calls = append(f.calls, "none") }
func (f *fakeStore) Close()                    { f.calls = append(f.calls, "close") }
func (f *fakeStore) Toggle()                   { f.calls = append(f.calls, "toggle") }

func TestController(t *testing.T) {
	tests := []struct {
		name      string
		act       func(c *Controller)
		wantCalls []string
		wantFired int
	}{
		{"hover", func(c *Controller) { c.Hover("item-2") }, []string{"select:item-2"}, 0},
		{"leave", func(c *Controller) { c.Leave() }, []string{"none"}, 0},
		{"click item", func(c *Controller) { c.Click("item-1") }, []string{"select:item-1"}, 1},
		{"click trigger", func(c *Controller) { c.ClickTrigger() }, []string{"toggle"}, 0},
		{"click outside", func(c *Controller) { c.ClickOutside() }, []string{"close"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			fired := 0
			c := NewController(store, func() {
				fired++
				store.calls = append(store.calls, "fire")
			})
			tt.act(c)
			want := tt.wantCalls
			if tt.wantFired > 0 {
				want = append(want, "fire")
			}
			assert.Equal(t, want, store.calls)
			assert.Equal(t, tt.wantFired, fired)
		})
	}
}

func TestController_NilSelect(t *testing.T) {
	store := &fakeStore{}
	c := NewController(store, nil)
	assert.NotPanics(t, func() { c.Click("x") })
}
