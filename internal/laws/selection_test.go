package laws

import (
	"testing"

	"github.com/tmorrow/highroad/internal/model"
)

func TestSelection_Toggle(t *testing.T) {
	t.Parallel()

	records := scenario()
	sel := Selection{}

	sel = sel.Toggle(records[0])
	if !sel.Has(records[0]) {
		t.Fatal("record not selected after toggle")
	}
	if sel.Count() != 1 {
		t.Fatalf("count = %d, want 1", sel.Count())
	}

	sel = sel.Toggle(records[0])
	if sel.Has(records[0]) {
		t.Fatal("record still selected after second toggle")
	}
}

func TestSelection_ToggleDoesNotAliasReceiver(t *testing.T) {
	t.Parallel()

	records := scenario()
	before := Selection{}.Toggle(records[0])
	after := before.Toggle(records[1])

	if before.Count() != 1 || after.Count() != 2 {
		t.Fatalf("toggle mutated its receiver: before=%d after=%d", before.Count(), after.Count())
	}
}

func TestSelection_SameIDAcrossTypes(t *testing.T) {
	t.Parallel()

	// Colorado (state id 1) and Portugal (country id 1) share an id; the
	// composite key must keep them distinct
	records := scenario()
	sel := Selection{}.Toggle(records[0]).Toggle(records[2])

	if sel.Count() != 2 {
		t.Fatalf("count = %d, want 2 distinct keys", sel.Count())
	}
}

func TestSelection_SelectAllVisible(t *testing.T) {
	t.Parallel()

	records := scenario()
	visible := ApplyQuery(records, DefaultQuery().WithFilter(FilterStates))

	sel := Selection{}.SelectAllVisible(visible)
	if sel.Count() != len(visible) {
		t.Fatalf("count = %d, want %d", sel.Count(), len(visible))
	}
	if !sel.AllVisibleSelected(visible) {
		t.Fatal("header checkbox should read as all-selected")
	}

	// selecting all again acts as select-none
	sel = sel.SelectAllVisible(visible)
	if sel.Count() != 0 {
		t.Fatalf("count after clear = %d, want 0", sel.Count())
	}
}

func TestSelection_SelectAllWithZeroVisible(t *testing.T) {
	t.Parallel()

	sel := Selection{}.SelectAllVisible(nil)
	if sel.Count() != 0 {
		t.Fatalf("count = %d, want 0", sel.Count())
	}
	if sel.AllVisibleSelected(nil) {
		t.Fatal("empty view must not read as all-selected")
	}
}

func TestSelection_SurvivesFilterChanges(t *testing.T) {
	t.Parallel()

	records := scenario()
	texas := records[1]

	sel := Selection{}.Toggle(texas)

	// hide Texas behind the country filter, then bring it back
	visible := ApplyQuery(records, DefaultQuery().WithFilter(FilterCountries))
	for _, r := range visible {
		if r.Name == "Texas" {
			t.Fatal("filter should have hidden Texas")
		}
	}
	if !sel.Has(texas) {
		t.Fatal("selection lost while record was filtered out")
	}

	visible = ApplyQuery(records, DefaultQuery().WithFilter(FilterAll))
	if !sel.Has(texas) {
		t.Fatal("selection lost after filter restored")
	}
	if sel.AllVisibleSelected(visible) {
		t.Fatal("one of three selected must not read as all-selected")
	}
}

func TestSelection_EncodeParseRoundTrip(t *testing.T) {
	t.Parallel()

	records := scenario()
	sel := Selection{}.Toggle(records[0]).Toggle(records[2])

	parsed := ParseSelection(sel.Encode())
	if parsed.Count() != 2 || !parsed.Has(records[0]) || !parsed.Has(records[2]) {
		t.Fatalf("round trip lost keys: %v", parsed.Keys())
	}

	if got := ParseSelection("").Count(); got != 0 {
		t.Fatalf("parse of empty string = %d keys, want 0", got)
	}
}

func TestParseKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key    string
		typ    model.LawType
		id     int
		wantOK bool
	}{
		{"state-12", model.LawTypeState, 12, true},
		{"country-3", model.LawTypeCountry, 3, true},
		{"planet-1", "", 0, false},
		{"state-", "", 0, false},
		{"nodash", "", 0, false},
		{"", "", 0, false},
	}

	for _, tt := range tests {
		typ, id, ok := ParseKey(tt.key)
		if ok != tt.wantOK || typ != tt.typ || id != tt.id {
			t.Errorf("ParseKey(%q) = (%q, %d, %v), want (%q, %d, %v)",
				tt.key, typ, id, ok, tt.typ, tt.id, tt.wantOK)
		}
	}
}
