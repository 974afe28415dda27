package menu

import (
	"strings"

	"github.com/sahilm/fuzzy"
	"golang.org/x/text/cases"
)

// Matcher decides whether an item value matches a type-ahead query.
type Matcher interface {
	Match(value, query string) bool
}

// PrefixMatcher matches when value starts with query, ignoring case. The query
// is a literal; no pattern characters are interpreted.
type PrefixMatcher struct{}

// Match implements Matcher.
func (PrefixMatcher) Match(value, query string) bool {
	return strings.HasPrefix(strings.ToLower(value), strings.ToLower(query))
}

// FoldMatcher is a prefix matcher that compares full Unicode case foldings,
// so "STRASSE" matches "straße".
type FoldMatcher struct{}

// Match implements Matcher.
func (FoldMatcher) Match(value, query string) bool {
	fold := cases.Fold()
	return strings.HasPrefix(fold.String(value), fold.String(query))
}

// FuzzyMatcher matches when the query characters appear in order in value.
type FuzzyMatcher struct{}

// Match implements Matcher. An empty query matches everything, like the
// prefix matchers.
func (FuzzyMatcher) Match(value, query string) bool {
	if query == "" {
		return true
	}
	return len(fuzzy.Find(query, []string{value})) > 0
}

// MatcherByName returns the matcher registered under name: "prefix", "fold"
// or "fuzzy". Unknown names report ok=false.
func MatcherByName(name string) (m Matcher, ok bool) {
	switch name {
	case "", "prefix":
		return PrefixMatcher{}, true
	case "fold":
		return FoldMatcher{}, true
	case "fuzzy":
		return FuzzyMatcher{}, true
	}
	return nil, false
}

// search scans items circularly starting just after active (from 0 when
// active is -1) and returns the index of the first match, or -1.
func search(items []Item, active int, query string, m Matcher) int {
	n := len(items)
	if n == 0 {
		return -1
	}
	start := ((active+1)%n + n) % n
	for k := 0; k < n; k++ {
		i := (start + k) % n
		if m.Match(items[i].Value, query) {
			return i
		}
	}
	return -1
}
