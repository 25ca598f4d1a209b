package templates

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/tmorrow/highroad/internal/laws"
	"github.com/tmorrow/highroad/internal/model"
)

// LawRow is one rendered row of the admin laws table.
type LawRow struct {
	Record    model.LawRecord
	Freshness laws.Freshness
	Selected  bool
}

// AdminLawsView carries the complete state of the admin laws console.
type AdminLawsView struct {
	Rows        []LawRow
	Query       laws.TableQuery
	Selection   laws.Selection
	AllSelected bool
	Notice      string
	Error       string
}

// AdminLaws renders the full admin laws page.
func AdminLaws(view AdminLawsView) templ.Component {
	return layout("Cannabis Laws Admin", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<h1>Cannabis Laws</h1>\n"); err != nil {
			return err
		}
		if view.Notice != "" {
			if _, err := fmt.Fprintf(w, `<p class="notice">%s</p>`+"\n", esc(view.Notice)); err != nil {
				return err
			}
		}
		if view.Error != "" {
			if _, err := fmt.Fprintf(w, `<p class="error">%s</p>`+"\n", esc(view.Error)); err != nil {
				return err
			}
		}
		if err := adminToolbar(view).Render(ctx, w); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<table id="laws-table">
<thead>
<tr>
<th><a href="%s">%s</a></th>
%s</tr>
</thead>
<tbody id="laws-body">
`, esc(selectAllURL(view)), selectAllLabel(view), sortHeaders(view)); err != nil {
			return err
		}
		if err := AdminLawsTableBody(view).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</tbody>\n</table>\n")
		return err
	}))
}

// AdminLawsTableBody renders only the table rows, for HTMX partial swaps.
func AdminLawsTableBody(view AdminLawsView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(view.Rows) == 0 {
			_, err := io.WriteString(w, `<tr><td colspan="6">No records match.</td></tr>`+"\n")
			return err
		}
		for _, row := range view.Rows {
			r := row.Record
			checked := ""
			if row.Selected {
				checked = " checked"
			}
			limits := ""
			if r.PossessionLimits.Valid {
				limits = r.PossessionLimits.String
			}
			updated := "—"
			if r.LastUpdated.Valid {
				updated = r.LastUpdated.Time.Format("2006-01-02")
			}
			toggle := adminLawsURL(view.Query, view.Selection.Toggle(r))
			edit := fmt.Sprintf("/admin/laws/%s/%d/edit", r.Type, r.ID)
			if _, err := fmt.Fprintf(w, `<tr>
<td><a href="%s"><input type="checkbox"%s readonly></a></td>
<td><a href="%s">%s</a></td>
<td>%s</td>
<td>%s</td>
<td>%s</td>
<td>%s <em>%s</em></td>
</tr>
`, esc(toggle), checked, esc(edit), esc(r.Name), esc(string(r.Type)), esc(string(r.Status)), esc(limits), esc(updated), esc(string(row.Freshness))); err != nil {
				return err
			}
		}
		return nil
	})
}

func adminToolbar(view AdminLawsView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		q := view.Query

		filters := make([]string, 0, 3)
		for _, f := range []laws.TypeFilter{laws.FilterAll, laws.FilterStates, laws.FilterCountries} {
			label := string(f)
			if f == q.Filter {
				filters = append(filters, fmt.Sprintf("<strong>%s</strong>", esc(label)))
			} else {
				u := adminLawsURL(q.WithFilter(f), view.Selection)
				filters = append(filters, fmt.Sprintf(`<a href="%s">%s</a>`, esc(u), esc(label)))
			}
		}

		exportURL := strings.Replace(adminLawsURL(q, nil), "/admin/laws?", "/admin/laws/export.csv?", 1)

		deleteDisabled := ""
		if view.Selection.Count() == 0 {
			deleteDisabled = " disabled"
		}

		_, err := fmt.Fprintf(w, `<div class="toolbar">
<form method="get" action="/admin/laws">
<input type="search" name="q" value="%s" placeholder="Search by name">
<input type="hidden" name="type" value="%s">
<input type="hidden" name="sort" value="%s">
<input type="hidden" name="order" value="%s">
<input type="hidden" name="selected" value="%s">
<button type="submit">Search</button>
</form>
<span>%s</span>
<a href="%s">Export CSV</a>
<form method="post" action="/admin/laws/delete" onsubmit="return confirm('Delete %d selected record(s)?')">
<input type="hidden" name="selected" value="%s">
<input type="hidden" name="type" value="%s">
<input type="hidden" name="q" value="%s">
<input type="hidden" name="sort" value="%s">
<input type="hidden" name="order" value="%s">
<input type="hidden" name="confirm" value="true">
<button type="submit"%s>Delete Selected (%d)</button>
</form>
</div>
`,
			esc(q.Search), esc(string(q.Filter)), esc(string(q.Sort)), esc(string(q.Dir)), esc(view.Selection.Encode()),
			strings.Join(filters, " | "),
			esc(exportURL),
			view.Selection.Count(),
			esc(view.Selection.Encode()), esc(string(q.Filter)), esc(q.Search), esc(string(q.Sort)), esc(string(q.Dir)),
			deleteDisabled, view.Selection.Count())
		return err
	})
}

func sortHeaders(view AdminLawsView) string {
	var b strings.Builder
	cols := []struct {
		field laws.SortField
		label string
	}{
		{laws.SortName, "Name"},
		{laws.SortType, "Type"},
		{laws.SortStatus, "Status"},
	}
	for _, col := range cols {
		u := adminLawsURL(view.Query.WithSort(col.field), view.Selection)
		b.WriteString(fmt.Sprintf(`<th><a href="%s" hx-get="%s" hx-target="#laws-body">%s%s</a></th>`+"\n",
			esc(u), esc(u), esc(col.label), sortMarker(view.Query, col.field)))
	}
	b.WriteString(`<th>Possession Limits</th>` + "\n")
	u := adminLawsURL(view.Query.WithSort(laws.SortLastUpdated), view.Selection)
	b.WriteString(fmt.Sprintf(`<th><a href="%s" hx-get="%s" hx-target="#laws-body">Last Updated%s</a></th>`+"\n",
		esc(u), esc(u), sortMarker(view.Query, laws.SortLastUpdated)))
	return b.String()
}

func sortMarker(q laws.TableQuery, field laws.SortField) string {
	if q.Sort != field {
		return ""
	}
	if q.Dir == laws.Asc {
		return " &#9650;"
	}
	return " &#9660;"
}

func selectAllURL(view AdminLawsView) string {
	visible := make([]model.LawRecord, len(view.Rows))
	for i, row := range view.Rows {
		visible[i] = row.Record
	}
	return adminLawsURL(view.Query, view.Selection.SelectAllVisible(visible))
}

func selectAllLabel(view AdminLawsView) string {
	if view.AllSelected {
		return "&#9745;"
	}
	return "&#9744;"
}
