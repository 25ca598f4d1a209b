package laws

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/tmorrow/highroad/internal/model"
)

// TypeFilter restricts the table to one record type, or shows all.
type TypeFilter string

const (
	FilterAll       TypeFilter = "all"
	FilterStates    TypeFilter = "state"
	FilterCountries TypeFilter = "country"
)

// SortField is a sortable column of the laws table.
type SortField string

const (
	SortName        SortField = "name"
	SortStatus      SortField = "status"
	SortType        SortField = "type"
	SortLastUpdated SortField = "last_updated"
)

// SortDir is a sort direction.
type SortDir string

const (
	Asc  SortDir = "asc"
	Desc SortDir = "desc"
)

// TableQuery is the complete view state of the laws table. It is an
// immutable value: the With* reducers return a modified copy, so ApplyQuery
// stays a pure function of (records, query).
type TableQuery struct {
	Filter TypeFilter
	Search string
	Sort   SortField
	Dir    SortDir
}

// DefaultQuery is the view state on first load: every record, freshest first.
func DefaultQuery() TableQuery {
	return TableQuery{
		Filter: FilterAll,
		Sort:   SortLastUpdated,
		Dir:    Desc,
	}
}

// WithFilter returns q showing only records of filter type. Unknown values
// fall back to FilterAll.
func (q TableQuery) WithFilter(f TypeFilter) TableQuery {
	switch f {
	case FilterStates, FilterCountries:
		q.Filter = f
	default:
		q.Filter = FilterAll
	}
	return q
}

// WithSearch returns q with the given name search.
func (q TableQuery) WithSearch(s string) TableQuery {
	q.Search = strings.TrimSpace(s)
	return q
}

// WithSort returns q sorted by field. Sorting by the current field flips the
// direction; switching fields resets to ascending.
func (q TableQuery) WithSort(field SortField) TableQuery {
	switch field {
	case SortName, SortStatus, SortType, SortLastUpdated:
	default:
		return q
	}
	if q.Sort == field {
		if q.Dir == Asc {
			q.Dir = Desc
		} else {
			q.Dir = Asc
		}
	} else {
		q.Sort = field
		q.Dir = Asc
	}
	return q
}

// ParseQuery rebuilds a TableQuery from its query-string form. Unknown
// values fall back to the defaults.
func ParseQuery(filter, search, sortField, dir string) TableQuery {
	q := DefaultQuery().WithFilter(TypeFilter(filter)).WithSearch(search)
	switch f := SortField(sortField); f {
	case SortName, SortStatus, SortType, SortLastUpdated:
		q.Sort = f
	}
	switch d := SortDir(dir); d {
	case Asc, Desc:
		q.Dir = d
	}
	return q
}

// ApplyQuery filters and sorts records per q and returns a new slice. The
// input slice is never reordered. The sort is stable, so records that tie on
// the sort key keep their unified order (states before countries).
func ApplyQuery(records []model.LawRecord, q TableQuery) []model.LawRecord {
	out := make([]model.LawRecord, 0, len(records))

	needle := strings.ToLower(q.Search)
	for _, r := range records {
		if q.Filter != FilterAll && string(r.Type) != string(q.Filter) {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(r.Name), needle) {
			continue
		}
		out = append(out, r)
	}

	cmp := comparatorFor(q.Sort)
	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(out[i], out[j])
		if q.Dir == Desc {
			return c > 0
		}
		return c < 0
	})

	return out
}

// comparatorFor returns a three-way comparator for the given field. Name,
// status and type compare with an English collator; last_updated compares
// by time with null pinned below every dated value, so never-updated records
// surface first under asc (oldest first) and last under desc (newest first).
func comparatorFor(field SortField) func(a, b model.LawRecord) int {
	switch field {
	case SortStatus:
		col := collate.New(language.English)
		return func(a, b model.LawRecord) int {
			return col.CompareString(string(a.Status), string(b.Status))
		}
	case SortType:
		col := collate.New(language.English)
		return func(a, b model.LawRecord) int {
			return col.CompareString(string(a.Type), string(b.Type))
		}
	case SortLastUpdated:
		return func(a, b model.LawRecord) int {
			switch {
			case !a.LastUpdated.Valid && !b.LastUpdated.Valid:
				return 0
			case !a.LastUpdated.Valid:
				return -1
			case !b.LastUpdated.Valid:
				return 1
			}
			am, bm := a.LastUpdated.Time.UnixMilli(), b.LastUpdated.Time.UnixMilli()
			switch {
			case am < bm:
				return -1
			case am > bm:
				return 1
			}
			return 0
		}
	default: // SortName
		col := collate.New(language.English)
		return func(a, b model.LawRecord) int {
			return col.CompareString(a.Name, b.Name)
		}
	}
}
