package laws

import (
	"sort"
	"strconv"
	"strings"

	"github.com/tmorrow/highroad/internal/model"
)

// ParseKey splits a composite key back into its type and id.
func ParseKey(key string) (model.LawType, int, bool) {
	typ, idStr, ok := strings.Cut(key, "-")
	if !ok {
		return "", 0, false
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		return "", 0, false
	}
	switch t := model.LawType(typ); t {
	case model.LawTypeState, model.LawTypeCountry:
		return t, id, true
	}
	return "", 0, false
}

// Selection is the set of selected composite keys ("type-id"). Keys are
// stable across filter and sort changes, so a record hidden by the current
// filter stays selected. Selection is a value type: operations return a new
// set and never modify the receiver.
type Selection map[string]struct{}

// ParseSelection builds a selection from a comma-separated key list, as
// carried in the admin table's query string.
func ParseSelection(s string) Selection {
	sel := Selection{}
	for _, key := range strings.Split(s, ",") {
		key = strings.TrimSpace(key)
		if key != "" {
			sel[key] = struct{}{}
		}
	}
	return sel
}

// Has reports whether the record's key is selected.
func (s Selection) Has(r model.LawRecord) bool {
	_, ok := s[r.Key()]
	return ok
}

// Count returns the number of selected keys, visible or not.
func (s Selection) Count() int {
	return len(s)
}

// Keys returns the selected keys in sorted order.
func (s Selection) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Encode renders the selection for round-tripping through a query string.
func (s Selection) Encode() string {
	return strings.Join(s.Keys(), ",")
}

// Toggle returns a copy with the record's key added if absent, removed if
// present.
func (s Selection) Toggle(r model.LawRecord) Selection {
	out := s.clone()
	key := r.Key()
	if _, ok := out[key]; ok {
		delete(out, key)
	} else {
		out[key] = struct{}{}
	}
	return out
}

// SelectAllVisible implements the header checkbox: if the selected count
// already equals the visible count the whole set is cleared, otherwise the
// selection becomes exactly the visible records' keys. With zero visible
// records this is a no-op clear.
func (s Selection) SelectAllVisible(visible []model.LawRecord) Selection {
	if len(s) == len(visible) {
		return Selection{}
	}
	out := make(Selection, len(visible))
	for _, r := range visible {
		out[r.Key()] = struct{}{}
	}
	return out
}

// AllVisibleSelected reports whether every visible record is selected; this
// drives the header checkbox state. False when nothing is visible.
func (s Selection) AllVisibleSelected(visible []model.LawRecord) bool {
	if len(visible) == 0 {
		return false
	}
	for _, r := range visible {
		if !s.Has(r) {
			return false
		}
	}
	return true
}

func (s Selection) clone() Selection {
	out := make(Selection, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}
