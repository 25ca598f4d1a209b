package laws

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmorrow/highroad/internal/model"
)

type fakeStateSource struct {
	laws      []model.StateLaw
	getErr    error
	updateErr error
	deleteErr error

	getCalls int
	updates  []model.StateLaw
	deletes  [][]int
}

func (f *fakeStateSource) GetAll(ctx context.Context) ([]model.StateLaw, error) {
	f.getCalls++
	return f.laws, f.getErr
}

func (f *fakeStateSource) Update(ctx context.Context, law *model.StateLaw) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = append(f.updates, *law)
	return nil
}

func (f *fakeStateSource) DeleteByIDs(ctx context.Context, ids []int) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletes = append(f.deletes, ids)
	return nil
}

type fakeCountrySource struct {
	laws      []model.CountryLaw
	getErr    error
	updateErr error
	deleteErr error

	getCalls int
	updates  []model.CountryLaw
	deletes  [][]int
}

func (f *fakeCountrySource) GetAll(ctx context.Context) ([]model.CountryLaw, error) {
	f.getCalls++
	return f.laws, f.getErr
}

func (f *fakeCountrySource) Update(ctx context.Context, law *model.CountryLaw) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = append(f.updates, *law)
	return nil
}

func (f *fakeCountrySource) DeleteByIDs(ctx context.Context, ids []int) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletes = append(f.deletes, ids)
	return nil
}

func newTestService(t *testing.T) (*Service, *fakeStateSource, *fakeCountrySource) {
	t.Helper()
	states := &fakeStateSource{laws: testStates()}
	countries := &fakeCountrySource{laws: testCountries()}
	svc := NewService(states, countries)
	svc.now = func() time.Time {
		return time.Date(2025, 8, 28, 9, 0, 0, 0, time.UTC)
	}
	return svc, states, countries
}

func TestService_RecordsCachesUntilRevisionMoves(t *testing.T) {
	t.Parallel()

	svc, states, countries := newTestService(t)
	ctx := context.Background()

	first, err := svc.Records(ctx)
	require.NoError(t, err)
	assert.Len(t, first, 3)

	_, err = svc.Records(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, states.getCalls, "second read should come from cache")
	assert.Equal(t, 1, countries.getCalls)

	// a successful mutation moves the revision and forces a refetch
	rec := first[0]
	rec.Status = model.StatusMedical
	_, err = svc.UpdateRecord(ctx, rec)
	require.NoError(t, err)

	_, err = svc.Records(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, states.getCalls)
	assert.Equal(t, 2, countries.getCalls)
}

func TestService_RecordsFetchFailure(t *testing.T) {
	t.Parallel()

	svc, _, countries := newTestService(t)
	countries.getErr = errors.New("connection refused")

	_, err := svc.Records(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestService_UpdateRecordStampsAndTargetsStateCollection(t *testing.T) {
	t.Parallel()

	svc, states, countries := newTestService(t)
	ctx := context.Background()

	records, err := svc.Records(ctx)
	require.NoError(t, err)

	rec := records[0] // Colorado
	rec.Status = model.StatusMedical

	before := svc.Revision()
	changed, err := svc.UpdateRecord(ctx, rec)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Greater(t, svc.Revision(), before)

	require.Len(t, states.updates, 1)
	assert.Empty(t, countries.updates, "state update must not touch the country collection")

	got := states.updates[0]
	assert.Equal(t, 1, got.ID)
	assert.Equal(t, model.StatusMedical, got.Status)
	require.True(t, got.LastUpdated.Valid)
	assert.Equal(t, svc.now(), got.LastUpdated.Time)
}

func TestService_UpdateRecordTargetsCountryCollection(t *testing.T) {
	t.Parallel()

	svc, states, countries := newTestService(t)
	ctx := context.Background()

	records, err := svc.Records(ctx)
	require.NoError(t, err)

	rec := records[2] // Portugal
	rec.Country.Penalties = sql.NullString{String: "Fines only", Valid: true}

	changed, err := svc.UpdateRecord(ctx, rec)
	require.NoError(t, err)
	assert.True(t, changed)

	require.Len(t, countries.updates, 1)
	assert.Empty(t, states.updates)
	assert.Equal(t, "Fines only", countries.updates[0].Penalties.String)
}

func TestService_TouchOnlyUpdateIsSkipped(t *testing.T) {
	t.Parallel()

	svc, states, _ := newTestService(t)
	ctx := context.Background()

	records, err := svc.Records(ctx)
	require.NoError(t, err)

	before := svc.Revision()
	changed, err := svc.UpdateRecord(ctx, records[0])
	require.NoError(t, err)

	assert.False(t, changed, "no-op save must not count as a change")
	assert.Empty(t, states.updates, "no-op save must not write")
	assert.Equal(t, before, svc.Revision(), "no-op save must not move the revision")
}

func TestService_UpdateUnknownRecord(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)

	_, err := svc.UpdateRecord(context.Background(), model.LawRecord{
		Type: model.LawTypeState,
		ID:   404,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_UpdateFailureKeepsRevision(t *testing.T) {
	t.Parallel()

	svc, states, _ := newTestService(t)
	ctx := context.Background()

	records, err := svc.Records(ctx)
	require.NoError(t, err)

	states.updateErr = errors.New("row locked")

	rec := records[0]
	rec.Status = model.StatusIllegal

	before := svc.Revision()
	_, err = svc.UpdateRecord(ctx, rec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row locked")
	assert.Equal(t, before, svc.Revision())
}

func TestService_DeletePartitionsByType(t *testing.T) {
	t.Parallel()

	svc, states, countries := newTestService(t)
	ctx := context.Background()

	records, err := svc.Records(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRecords(ctx, records))

	require.Len(t, states.deletes, 1, "exactly one call per non-empty partition")
	require.Len(t, countries.deletes, 1)
	assert.ElementsMatch(t, []int{1, 2}, states.deletes[0])
	assert.ElementsMatch(t, []int{1}, countries.deletes[0])
}

func TestService_DeleteSkipsEmptyPartition(t *testing.T) {
	t.Parallel()

	svc, states, countries := newTestService(t)
	ctx := context.Background()

	records, err := svc.Records(ctx)
	require.NoError(t, err)

	onlyStates := ApplyQuery(records, DefaultQuery().WithFilter(FilterStates))
	require.NoError(t, svc.DeleteRecords(ctx, onlyStates))

	assert.Len(t, states.deletes, 1)
	assert.Empty(t, countries.deletes, "empty partition must not issue a call")
}

func TestService_DeleteEmptyInputIsNoOp(t *testing.T) {
	t.Parallel()

	svc, states, countries := newTestService(t)

	before := svc.Revision()
	require.NoError(t, svc.DeleteRecords(context.Background(), nil))

	assert.Empty(t, states.deletes)
	assert.Empty(t, countries.deletes)
	assert.Equal(t, before, svc.Revision())
}

func TestService_DeleteNoRollbackAcrossCollections(t *testing.T) {
	t.Parallel()

	svc, states, countries := newTestService(t)
	ctx := context.Background()

	records, err := svc.Records(ctx)
	require.NoError(t, err)

	countries.deleteErr = errors.New("foreign key violation")

	before := svc.Revision()
	err = svc.DeleteRecords(ctx, records)
	require.Error(t, err)

	// the state partition already committed and stays committed
	assert.Len(t, states.deletes, 1)
	assert.Greater(t, svc.Revision(), before, "committed partition must still invalidate the cache")
}
