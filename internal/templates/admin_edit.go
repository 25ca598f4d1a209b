package templates

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/tmorrow/highroad/internal/model"
)

// AdminLawEdit renders the edit form for one law record. A non-empty errMsg
// is the failure notification from a previous save attempt; the form keeps
// the submitted values so the user can retry.
func AdminLawEdit(rec model.LawRecord, errMsg string) templ.Component {
	title := fmt.Sprintf("Edit %s", rec.Name)
	return layout(title, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, "<h1>Edit %s (%s)</h1>\n", esc(rec.Name), esc(string(rec.Type))); err != nil {
			return err
		}
		if errMsg != "" {
			if _, err := fmt.Fprintf(w, `<p class="error">%s</p>`+"\n", esc(errMsg)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, `<form method="post" action="/admin/laws/%s/%d">
<label>Status
<select name="status">%s</select>
</label>
%s`, esc(string(rec.Type)), rec.ID, statusOptions(rec.Status), textArea("possession_limits", "Possession Limits", rec.PossessionLimits)); err != nil {
			return err
		}

		switch rec.Type {
		case model.LawTypeState:
			d := rec.State
			if d == nil {
				d = &model.StateDetails{}
			}
			for _, f := range []struct {
				name, label string
				value       sql.NullString
			}{
				{"tourist_notes", "Tourist Notes", d.TouristNotes},
				{"where_to_consume", "Where to Consume", d.WhereToConsume},
				{"driving_rules", "Driving Rules", d.DrivingRules},
				{"airport_rules", "Airport Rules", d.AirportRules},
			} {
				if _, err := io.WriteString(w, textArea(f.name, f.label, f.value)); err != nil {
					return err
				}
			}
		case model.LawTypeCountry:
			d := rec.Country
			if d == nil {
				d = &model.CountryDetails{}
			}
			age := ""
			if d.AgeLimit.Valid {
				age = strconv.FormatInt(d.AgeLimit.Int64, 10)
			}
			if _, err := fmt.Fprintf(w, `<label>Age Limit <input type="number" name="age_limit" value="%s"></label>
`, esc(age)); err != nil {
				return err
			}
			for _, f := range []struct {
				name, label string
				value       sql.NullString
			}{
				{"purchase_limits", "Purchase Limits", d.PurchaseLimits},
				{"consumption_notes", "Consumption Notes", d.ConsumptionNotes},
				{"penalties", "Penalties", d.Penalties},
				{"source_url", "Source URL", d.SourceURL},
				{"airport_rules", "Airport Rules", d.AirportRules},
			} {
				if _, err := io.WriteString(w, textArea(f.name, f.label, f.value)); err != nil {
					return err
				}
			}
		}

		_, err := io.WriteString(w, `<button type="submit">Save</button>
<a href="/admin/laws">Cancel</a>
</form>
`)
		return err
	}))
}

func statusOptions(current model.Status) string {
	out := ""
	for _, s := range []model.Status{
		model.StatusIllegal,
		model.StatusDecriminalized,
		model.StatusMedical,
		model.StatusRecreational,
	} {
		sel := ""
		if s == current {
			sel = " selected"
		}
		out += fmt.Sprintf(`<option value="%s"%s>%s</option>`, esc(string(s)), sel, esc(string(s)))
	}
	return out
}

func textArea(name, label string, value sql.NullString) string {
	v := ""
	if value.Valid {
		v = value.String
	}
	return fmt.Sprintf(`<label>%s <textarea name="%s">%s</textarea></label>
`, esc(label), esc(name), esc(v))
}
