package handlers

import (
	"context"
	"database/sql"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmorrow/highroad/internal/laws"
	"github.com/tmorrow/highroad/internal/model"
)

type stubStates struct {
	laws    []model.StateLaw
	deletes [][]int
	updates []model.StateLaw
}

func (s *stubStates) GetAll(ctx context.Context) ([]model.StateLaw, error) { return s.laws, nil }
func (s *stubStates) Update(ctx context.Context, law *model.StateLaw) error {
	s.updates = append(s.updates, *law)
	return nil
}
func (s *stubStates) DeleteByIDs(ctx context.Context, ids []int) error {
	s.deletes = append(s.deletes, ids)
	return nil
}

type stubCountries struct {
	laws    []model.CountryLaw
	deletes [][]int
}

func (s *stubCountries) GetAll(ctx context.Context) ([]model.CountryLaw, error) { return s.laws, nil }
func (s *stubCountries) Update(ctx context.Context, law *model.CountryLaw) error {
	return nil
}
func (s *stubCountries) DeleteByIDs(ctx context.Context, ids []int) error {
	s.deletes = append(s.deletes, ids)
	return nil
}

func testApp(t *testing.T) (*fiber.App, *stubStates, *stubCountries) {
	t.Helper()

	states := &stubStates{laws: []model.StateLaw{
		{
			ID: 1, Name: "Colorado", Slug: "colorado",
			Status:      model.StatusRecreational,
			LastUpdated: sql.NullTime{Time: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Valid: true},
		},
		{ID: 2, Name: "Texas", Slug: "texas", Status: model.StatusIllegal},
	}}
	countries := &stubCountries{laws: []model.CountryLaw{
		{
			ID: 1, Name: "Portugal", Slug: "portugal",
			Status:      model.StatusDecriminalized,
			LastUpdated: sql.NullTime{Time: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), Valid: true},
		},
	}}

	svc := laws.NewService(states, countries)

	app := fiber.New()
	app.Get("/admin/laws", AdminLawsHandler(svc))
	app.Get("/admin/laws/export.csv", AdminLawsExportHandler(svc))
	app.Post("/admin/laws/delete", AdminLawsDeleteHandler(svc))
	app.Get("/admin/laws/:type/:id/edit", AdminLawEditHandler(svc))
	app.Post("/admin/laws/:type/:id", AdminLawUpdateHandler(svc))

	return app, states, countries
}

func TestAdminLawsTable(t *testing.T) {
	t.Parallel()

	app, _, _ := testApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin/laws", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	for _, name := range []string{"Colorado", "Texas", "Portugal"} {
		assert.Contains(t, string(body), name)
	}
	assert.Contains(t, string(body), "Never Updated", "Texas has no last_updated")
}

func TestAdminLawsTable_TypeFilter(t *testing.T) {
	t.Parallel()

	app, _, _ := testApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin/laws?type=country", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), "Portugal")
	assert.NotContains(t, string(body), "Texas")
}

func TestAdminLawsTable_HTMXPartial(t *testing.T) {
	t.Parallel()

	app, _, _ := testApp(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/laws?q=tex", nil)
	req.Header.Set("HX-Request", "true")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), "Texas")
	assert.NotContains(t, string(body), "<html", "partial must not include the layout")
}

func TestAdminLawsExport(t *testing.T) {
	t.Parallel()

	app, _, _ := testApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin/laws/export.csv?q=tex", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "cannabis-laws-")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(body), "\n"), "\n")
	require.Len(t, lines, 2, "header plus the one matching row")
	assert.Equal(t, `"Name","Type","Status","Possession Limits","Last Updated"`, lines[0])
	assert.Contains(t, lines[1], `"Texas"`)
}

func TestAdminLawsDelete_RequiresConfirmation(t *testing.T) {
	t.Parallel()

	app, states, countries := testApp(t)

	form := url.Values{}
	form.Set("selected", "state-1,country-1")

	req := httptest.NewRequest(http.MethodPost, "/admin/laws/delete", strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Empty(t, states.deletes, "declined confirmation must not delete")
	assert.Empty(t, countries.deletes)
}

func TestAdminLawsDelete_PartitionsSelection(t *testing.T) {
	t.Parallel()

	app, states, countries := testApp(t)

	form := url.Values{}
	form.Set("selected", "state-1,state-2,country-1")
	form.Set("confirm", "true")

	req := httptest.NewRequest(http.MethodPost, "/admin/laws/delete", strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusFound, resp.StatusCode)
	loc := resp.Header.Get(fiber.HeaderLocation)
	assert.NotContains(t, loc, "selected=", "selection must clear after a successful delete")

	require.Len(t, states.deletes, 1)
	require.Len(t, countries.deletes, 1)
	assert.ElementsMatch(t, []int{1, 2}, states.deletes[0])
	assert.ElementsMatch(t, []int{1}, countries.deletes[0])
}

func TestAdminLawUpdate_NoChanges(t *testing.T) {
	t.Parallel()

	app, states, _ := testApp(t)

	// re-submit Texas untouched
	form := url.Values{}
	form.Set("status", string(model.StatusIllegal))

	req := httptest.NewRequest(http.MethodPost, "/admin/laws/state/2", strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderLocation), "No+changes")
	assert.Empty(t, states.updates)
}

func TestAdminLawUpdate_SavesAndRedirects(t *testing.T) {
	t.Parallel()

	app, states, _ := testApp(t)

	form := url.Values{}
	form.Set("status", string(model.StatusMedical))
	form.Set("possession_limits", "Registered patients only")

	req := httptest.NewRequest(http.MethodPost, "/admin/laws/state/2", strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Len(t, states.updates, 1)
	assert.Equal(t, model.StatusMedical, states.updates[0].Status)
	assert.True(t, states.updates[0].LastUpdated.Valid, "save must stamp last_updated")
}

func TestAdminLawUpdate_RejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	app, states, _ := testApp(t)

	form := url.Values{}
	form.Set("status", "galactic")

	req := httptest.NewRequest(http.MethodPost, "/admin/laws/state/1", strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Empty(t, states.updates)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Unknown status", "form must surface the error for retry")
}

func TestAdminLawEdit_NotFound(t *testing.T) {
	t.Parallel()

	app, _, _ := testApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin/laws/state/404/edit", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
