package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/tmorrow/highroad/internal/laws"
	"github.com/tmorrow/highroad/internal/model"
	"github.com/tmorrow/highroad/internal/templates"
)

// AdminLawsHandler renders the unified laws table. The full view state
// (filter, search, sort, selection) travels in the query string.
func AdminLawsHandler(svc *laws.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		q := laws.ParseQuery(c.Query("type"), c.Query("q"), c.Query("sort"), c.Query("order"))
		sel := laws.ParseSelection(c.Query("selected"))

		records, err := svc.Records(ctx)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString("Error loading laws")
		}

		visible := laws.ApplyQuery(records, q)
		now := time.Now()

		rows := make([]templates.LawRow, len(visible))
		for i, r := range visible {
			rows[i] = templates.LawRow{
				Record:    r,
				Freshness: laws.Classify(r.LastUpdated, now),
				Selected:  sel.Has(r),
			}
		}

		view := templates.AdminLawsView{
			Rows:        rows,
			Query:       q,
			Selection:   sel,
			AllSelected: sel.AllVisibleSelected(visible),
			Notice:      c.Query("notice"),
			Error:       c.Query("error"),
		}

		// HTMX requests swap only the table body
		if c.Get("HX-Request") == "true" {
			page := templates.AdminLawsTableBody(view)
			handler := adaptor.HTTPHandler(templ.Handler(page))
			return handler(c)
		}

		page := templates.AdminLaws(view)
		handler := adaptor.HTTPHandler(templ.Handler(page))

		return handler(c)
	}
}

// AdminLawEditHandler renders the edit form for one record.
func AdminLawEditHandler(svc *laws.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		typ, id, ok := parseRecordParams(c)
		if !ok {
			return c.Status(fiber.StatusBadRequest).SendString("Invalid record reference")
		}

		rec, err := svc.FindRecord(ctx, typ, id)
		if errors.Is(err, laws.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).SendString("Record not found")
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString("Error loading record")
		}

		page := templates.AdminLawEdit(rec, "")
		handler := adaptor.HTTPHandler(templ.Handler(page))

		return handler(c)
	}
}

// AdminLawUpdateHandler saves an edit. On failure the form is re-rendered
// with the submitted values and the error message so the user can retry; on
// success the browser returns to the table with a notice.
func AdminLawUpdateHandler(svc *laws.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		typ, id, ok := parseRecordParams(c)
		if !ok {
			return c.Status(fiber.StatusBadRequest).SendString("Invalid record reference")
		}

		current, err := svc.FindRecord(ctx, typ, id)
		if errors.Is(err, laws.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).SendString("Record not found")
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString("Error loading record")
		}

		updated := recordFromForm(c, current)

		if !model.ValidStatus(updated.Status) {
			page := templates.AdminLawEdit(updated, fmt.Sprintf("Unknown status %q", updated.Status))
			handler := adaptor.HTTPHandler(templ.Handler(page, templ.WithStatus(fiber.StatusUnprocessableEntity)))
			return handler(c)
		}

		changed, err := svc.UpdateRecord(ctx, updated)
		if err != nil {
			page := templates.AdminLawEdit(updated, err.Error())
			handler := adaptor.HTTPHandler(templ.Handler(page, templ.WithStatus(fiber.StatusUnprocessableEntity)))
			return handler(c)
		}

		notice := "Record updated"
		if !changed {
			notice = "No changes to save"
		}
		return c.Redirect("/admin/laws?notice=" + url.QueryEscape(notice))
	}
}

// AdminLawsDeleteHandler bulk-deletes the selected records. Without the
// confirmation field the request is a no-op. On failure the selection is
// kept so the delete can be retried; on success it is cleared.
func AdminLawsDeleteHandler(svc *laws.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		back := url.Values{}
		if v := c.FormValue("type"); v != "" {
			back.Set("type", v)
		}
		if v := c.FormValue("q"); v != "" {
			back.Set("q", v)
		}
		back.Set("sort", c.FormValue("sort"))
		back.Set("order", c.FormValue("order"))

		sel := laws.ParseSelection(c.FormValue("selected"))

		if c.FormValue("confirm") != "true" || sel.Count() == 0 {
			back.Set("selected", sel.Encode())
			return c.Redirect("/admin/laws?" + back.Encode())
		}

		records, err := svc.Records(ctx)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString("Error loading laws")
		}

		var targets []model.LawRecord
		for _, key := range sel.Keys() {
			typ, id, ok := laws.ParseKey(key)
			if !ok {
				continue
			}
			for _, r := range records {
				if r.Type == typ && r.ID == id {
					targets = append(targets, r)
					break
				}
			}
		}

		if err := svc.DeleteRecords(ctx, targets); err != nil {
			back.Set("selected", sel.Encode())
			back.Set("error", err.Error())
			return c.Redirect("/admin/laws?" + back.Encode())
		}

		back.Set("notice", fmt.Sprintf("Deleted %d record(s)", len(targets)))
		return c.Redirect("/admin/laws?" + back.Encode())
	}
}

// AdminLawsExportHandler downloads the currently visible rows as CSV.
func AdminLawsExportHandler(svc *laws.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		q := laws.ParseQuery(c.Query("type"), c.Query("q"), c.Query("sort"), c.Query("order"))

		records, err := svc.Records(ctx)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString("Error loading laws")
		}

		visible := laws.ApplyQuery(records, q)
		filename, data := laws.ExportCSV(visible, time.Now())

		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
		return c.Send(data)
	}
}

func parseRecordParams(c *fiber.Ctx) (model.LawType, int, bool) {
	typ := model.LawType(c.Params("type"))
	if typ != model.LawTypeState && typ != model.LawTypeCountry {
		return "", 0, false
	}
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return "", 0, false
	}
	return typ, id, true
}

// recordFromForm overlays the edit form's fields on the current record.
// Blank inputs become nulls.
func recordFromForm(c *fiber.Ctx, current model.LawRecord) model.LawRecord {
	rec := current
	rec.Status = model.Status(c.FormValue("status"))
	rec.PossessionLimits = formNullString(c, "possession_limits")

	switch current.Type {
	case model.LawTypeState:
		rec.State = &model.StateDetails{
			TouristNotes:   formNullString(c, "tourist_notes"),
			WhereToConsume: formNullString(c, "where_to_consume"),
			DrivingRules:   formNullString(c, "driving_rules"),
			AirportRules:   formNullString(c, "airport_rules"),
		}
	case model.LawTypeCountry:
		details := &model.CountryDetails{
			PurchaseLimits:   formNullString(c, "purchase_limits"),
			ConsumptionNotes: formNullString(c, "consumption_notes"),
			Penalties:        formNullString(c, "penalties"),
			SourceURL:        formNullString(c, "source_url"),
			AirportRules:     formNullString(c, "airport_rules"),
		}
		if current.Country != nil {
			details.Region = current.Country.Region
		}
		if v := c.FormValue("age_limit"); v != "" {
			if age, err := strconv.ParseInt(v, 10, 64); err == nil {
				details.AgeLimit = sql.NullInt64{Int64: age, Valid: true}
			}
		}
		rec.Country = details
	}

	return rec
}

func formNullString(c *fiber.Ctx, name string) sql.NullString {
	v := c.FormValue(name)
	return sql.NullString{String: v, Valid: v != ""}
}
