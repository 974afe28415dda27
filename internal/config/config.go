// Package config loads menu definitions from TOML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"menukit/internal/keys"
	"menukit/internal/menu"
)

// ErrNoItems is returned by Validate for a menu without items.
var ErrNoItems = errors.New("config: menu has no items")

// Item is one menu entry. Text is what is shown; Value is what is matched
// by type-ahead and reported on selection. Either may be omitted.
type Item struct {
	Value string `toml:"value"`
	Text  string `toml:"text"`
}

// Trace configures OTLP export.
type Trace struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Endpoint    string `toml:"endpoint"`
}

// Config is a menu definition.
type Config struct {
	Label string `toml:"label"`

	// Items lists plain entries; ItemTables lists [[item]] tables. Plain
	// entries come first.
	Items      []string `toml:"items"`
	ItemTables []Item   `toml:"item"`

	Search             string              `toml:"search"`
	TypeaheadTimeoutMS int                 `toml:"typeahead_timeout_ms"`
	IDPrefix           string              `toml:"id_prefix"`
	LogFile            string              `toml:"log_file"`
	Keys               map[string][]string `toml:"keys"`
	Trace              Trace               `toml:"trace"`
}

// Default returns a configuration with no items and default settings.
func Default() *Config {
	return &Config{
		Label:              "Menu",
		Search:             "prefix",
		TypeaheadTimeoutMS: int(keys.DefaultTypeaheadTimeout / time.Millisecond),
	}
}

// Load reads the TOML file at path on top of Default. Unknown keys are an
// error.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	cfg := Default()
	dec := toml.NewDecoder(f).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			names := make([]string, 0, len(strict.Errors))
			for _, e := range strict.Errors {
				names = append(names, strings.Join(e.Key(), "."))
			}
			return nil, fmt.Errorf("failed to parse config %s: unknown keys %s", path, strings.Join(names, ", "))
		}
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Entries returns every item in display order with blanks filled in: a
// missing Text shows the Value, and a missing Value is the trimmed Text.
func (c *Config) Entries() []Item {
	out := make([]Item, 0, len(c.Items)+len(c.ItemTables))
	for _, s := range c.Items {
		out = append(out, Item{Value: strings.TrimSpace(s), Text: s})
	}
	for _, it := range c.ItemTables {
		if it.Text == "" {
			it.Text = it.Value
		}
		if it.Value == "" {
			it.Value = strings.TrimSpace(it.Text)
		}
		out = append(out, it)
	}
	return out
}

// Matcher returns the configured type-ahead matcher.
func (c *Config) Matcher() (menu.Matcher, error) {
	m, ok := menu.MatcherByName(c.Search)
	if !ok {
		return nil, fmt.Errorf("config: unknown search mode %q", c.Search)
	}
	return m, nil
}

// TypeaheadTimeout returns the idle time after which the type-ahead query
// starts over. Zero selects the default.
func (c *Config) TypeaheadTimeout() time.Duration {
	if c.TypeaheadTimeoutMS <= 0 {
		return keys.DefaultTypeaheadTimeout
	}
	return time.Duration(c.TypeaheadTimeoutMS) * time.Millisecond
}

// KeyMap returns the default bindings with the [keys] overrides applied.
func (c *Config) KeyMap() (keys.KeyMap, error) {
	km := keys.DefaultKeyMap()
	if unknown := km.Override(c.Keys); len(unknown) > 0 {
		slices.Sort(unknown)
		return km, fmt.Errorf("config: unknown key actions %s", strings.Join(unknown, ", "))
	}
	return km, nil
}

// Validate reports the first problem with c.
func (c *Config) Validate() error {
	if len(c.Entries()) == 0 {
		return ErrNoItems
	}
	for i, it := range c.Entries() {
		if it.Value == "" {
			return fmt.Errorf("config: item %d has no value or text", i+1)
		}
	}
	if _, err := c.Matcher(); err != nil {
		return err
	}
	if c.TypeaheadTimeoutMS < 0 {
		return fmt.Errorf("config: typeahead_timeout_ms must not be negative, got %d", c.TypeaheadTimeoutMS)
	}
	if _, err := c.KeyMap(); err != nil {
		return err
	}
	return nil
}
