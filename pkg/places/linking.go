package places

import "sort"

// Linking maps a feature identity to the key of the place produced for it.
type Linking map[string]string

// Lookup returns the key recorded for identity. Empty keys count as missing.
func (l Linking) Lookup(identity string) (string, bool) {
	if l == nil {
		return "", false
	}
	key, ok := l[identity]
	if !ok || key == "" {
		return "", false
	}
	return key, true
}

// Identities returns the linked identities in sorted order.
func (l Linking) Identities() []string {
	ids := make([]string, 0, len(l))
	for id := range l {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Dropped returns the identities of l that next no longer carries, sorted.
func (l Linking) Dropped(next Linking) []string {
	var dropped []string
	for _, id := range l.Identities() {
		if _, ok := next[id]; !ok {
			dropped = append(dropped, id)
		}
	}
	return dropped
}
