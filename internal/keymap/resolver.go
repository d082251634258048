package keymap

import (
	"slices"
	"strings"
)

// Resolver maps key strings to actions.
type Resolver struct {
	byKey    map[string]Action
	byAction map[Action][]string
	help     []Binding
}

// NewResolver creates a resolver from bindings. When two bindings claim
// the same key, the later one wins.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		byKey:    make(map[string]Action),
		byAction: make(map[Action][]string),
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			r.byKey[key] = b.Action
			if !slices.Contains(r.byAction[b.Action], key) {
				r.byAction[b.Action] = append(r.byAction[b.Action], key)
			}
		}
		if b.Short != "" && len(b.Keys) > 0 {
			r.help = append(r.help, b)
		}
	}
	return r
}

// Resolve returns the action for a key, or empty string if not bound.
func (r *Resolver) Resolve(key string) Action {
	return r.byKey[key]
}

// KeysFor returns the keys bound to an action, in binding order.
func (r *Resolver) KeysFor(action Action) []string {
	return r.byAction[action]
}

// Help renders "key label" pairs for every binding with a short label,
// joined by sep. Only the first key of each binding is shown.
func (r *Resolver) Help(sep string) string {
	parts := make([]string, 0, len(r.help))
	for _, b := range r.help {
		parts = append(parts, b.Keys[0]+" "+b.Short)
	}
	return strings.Join(parts, sep)
}
