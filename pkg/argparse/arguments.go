package argparse

import (
	"sort"
	"strings"
)

type entry struct {
	key   string
	value string
}

// Arguments maps option keys to their values. Keys are compared case-insensitively: setting a
// key that only differs in case from a stored one replaces its value but keeps the stored key.
// The zero value is ready to use.
type Arguments struct {
	entries map[string]entry
}

// NewArguments returns an empty Arguments sized for capacity keys.
func NewArguments(capacity int) Arguments {
	return Arguments{entries: make(map[string]entry, capacity)}
}

// foldKey maps every rune of key to upper case, one rune to one rune, so that "--straße" and
// "--STRASSE" stay distinct keys.
func foldKey(key string) string {
	return strings.ToUpper(key)
}

// Set stores value for key.
func (a *Arguments) Set(key, value string) {
	if a.entries == nil {
		a.entries = make(map[string]entry)
	}

	folded := foldKey(key)
	if stored, ok := a.entries[folded]; ok {
		key = stored.key
	}
	a.entries[folded] = entry{key: key, value: value}
}

// Get returns the value stored for key, and whether key was found.
func (a Arguments) Get(key string) (string, bool) {
	e, ok := a.entries[foldKey(key)]
	return e.value, ok
}

// Value returns the value stored for key, or an empty string if key was not found.
func (a Arguments) Value(key string) string {
	v, _ := a.Get(key)
	return v
}

// Has reports whether key is stored.
func (a Arguments) Has(key string) bool {
	_, ok := a.Get(key)
	return ok
}

// Len returns the number of stored keys.
func (a Arguments) Len() int {
	return len(a.entries)
}

// Keys returns the stored keys, sorted.
func (a Arguments) Keys() []string {
	keys := make([]string, 0, len(a.entries))
	for _, e := range a.entries {
		keys = append(keys, e.key)
	}
	sort.Strings(keys)

	return keys
}

// Map returns a copy of the arguments as a regular map, indexed by stored keys.
func (a Arguments) Map() map[string]string {
	m := make(map[string]string, len(a.entries))
	for _, e := range a.entries {
		m[e.key] = e.value
	}

	return m
}

// Tokens returns the arguments as "--key=value" tokens, sorted by key. A key holding an "="
// right after its dashes, such as "--=x", can't be written inline: it is followed by its value
// in a separate token instead, or by nothing when the value is empty.
//
// Parsing the tokens of Arguments returned by ParseArguments yields the same arguments.
func (a Arguments) Tokens() []string {
	tokens := make([]string, 0, len(a.entries))
	for _, key := range a.Keys() {
		value := a.Value(key)

		if eq := strings.IndexByte(key, '='); eq < 0 || eq > 2 {
			tokens = append(tokens, key+"="+value)
			continue
		}

		tokens = append(tokens, key)
		if value != "" {
			tokens = append(tokens, value)
		}
	}

	return tokens
}
