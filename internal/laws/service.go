package laws

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tmorrow/highroad/internal/model"
)

// ErrNotFound is returned when a mutation targets a record that is not in
// the catalog.
var ErrNotFound = errors.New("law record not found")

// StateSource is the slice of the state store the catalog needs.
type StateSource interface {
	GetAll(ctx context.Context) ([]model.StateLaw, error)
	Update(ctx context.Context, law *model.StateLaw) error
	DeleteByIDs(ctx context.Context, ids []int) error
}

// CountrySource is the slice of the country store the catalog needs.
type CountrySource interface {
	GetAll(ctx context.Context) ([]model.CountryLaw, error)
	Update(ctx context.Context, law *model.CountryLaw) error
	DeleteByIDs(ctx context.Context, ids []int) error
}

// Service is the law catalog and its mutation gateway. Reads fetch both
// collections concurrently and cache the unified sequence; the cache is
// keyed on a revision counter that every successful mutation bumps, so
// "a mutation happened" and "refetch" stay decoupled.
type Service struct {
	states    StateSource
	countries CountrySource
	now       func() time.Time

	mu        sync.Mutex
	cached    []model.LawRecord
	cachedRev int64

	rev atomic.Int64
}

// NewService creates a catalog over the two collection sources.
func NewService(states StateSource, countries CountrySource) *Service {
	return &Service{
		states:    states,
		countries: countries,
		now:       time.Now,
	}
}

// Revision returns the current invalidation token. It increases after every
// successful mutation.
func (s *Service) Revision() int64 {
	return s.rev.Load()
}

// Records returns the unified catalog, serving a cached copy until the
// revision moves. The two collections are fetched concurrently; the result
// is shared and must not be modified by callers (ApplyQuery copies).
func (s *Service) Records(ctx context.Context) ([]model.LawRecord, error) {
	rev := s.rev.Load()

	s.mu.Lock()
	if s.cached != nil && s.cachedRev == rev {
		records := s.cached
		s.mu.Unlock()
		return records, nil
	}
	s.mu.Unlock()

	var (
		states    []model.StateLaw
		countries []model.CountryLaw
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		states, err = s.states.GetAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		countries, err = s.countries.GetAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load law catalog: %w", err)
	}

	records := Unify(states, countries)

	s.mu.Lock()
	s.cached = records
	s.cachedRev = rev
	s.mu.Unlock()

	return records, nil
}

// UpdateRecord writes rec's editable fields back to the collection matching
// rec.Type, stamping last_updated with the current time. An update whose
// editable fields all match the stored record is skipped entirely, so
// re-saving an untouched edit form does not mark the record fresh. Returns
// whether a write happened.
func (s *Service) UpdateRecord(ctx context.Context, rec model.LawRecord) (bool, error) {
	records, err := s.Records(ctx)
	if err != nil {
		return false, err
	}

	current, ok := findRecord(records, rec.Type, rec.ID)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrNotFound, rec.Key())
	}
	if !editableFieldsChanged(current, rec) {
		return false, nil
	}

	stamp := sql.NullTime{Time: s.now().UTC(), Valid: true}

	switch rec.Type {
	case model.LawTypeState:
		law := &model.StateLaw{
			ID:               rec.ID,
			Status:           rec.Status,
			PossessionLimits: rec.PossessionLimits,
			LastUpdated:      stamp,
		}
		if rec.State != nil {
			law.TouristNotes = rec.State.TouristNotes
			law.WhereToConsume = rec.State.WhereToConsume
			law.DrivingRules = rec.State.DrivingRules
			law.AirportRules = rec.State.AirportRules
		}
		if err := s.states.Update(ctx, law); err != nil {
			return false, fmt.Errorf("failed to update state %d: %w", rec.ID, err)
		}
	case model.LawTypeCountry:
		law := &model.CountryLaw{
			ID:               rec.ID,
			Status:           rec.Status,
			PossessionLimits: rec.PossessionLimits,
			LastUpdated:      stamp,
		}
		if rec.Country != nil {
			law.AgeLimit = rec.Country.AgeLimit
			law.PurchaseLimits = rec.Country.PurchaseLimits
			law.ConsumptionNotes = rec.Country.ConsumptionNotes
			law.Penalties = rec.Country.Penalties
			law.SourceURL = rec.Country.SourceURL
			law.AirportRules = rec.Country.AirportRules
		}
		if err := s.countries.Update(ctx, law); err != nil {
			return false, fmt.Errorf("failed to update country %d: %w", rec.ID, err)
		}
	default:
		return false, fmt.Errorf("unknown law type %q", rec.Type)
	}

	s.rev.Add(1)
	return true, nil
}

// DeleteRecords removes the given records, partitioned by type: one
// delete-by-id-list call per non-empty partition, states first. There is no
// rollback across collections; if the country partition fails after the
// state partition committed, the state rows stay deleted and the revision
// still moves.
func (s *Service) DeleteRecords(ctx context.Context, records []model.LawRecord) error {
	var stateIDs, countryIDs []int
	for _, r := range records {
		switch r.Type {
		case model.LawTypeState:
			stateIDs = append(stateIDs, r.ID)
		case model.LawTypeCountry:
			countryIDs = append(countryIDs, r.ID)
		}
	}

	deleted := false
	if len(stateIDs) > 0 {
		if err := s.states.DeleteByIDs(ctx, stateIDs); err != nil {
			return fmt.Errorf("failed to delete states: %w", err)
		}
		deleted = true
		s.rev.Add(1)
	}
	if len(countryIDs) > 0 {
		if err := s.countries.DeleteByIDs(ctx, countryIDs); err != nil {
			return fmt.Errorf("failed to delete countries: %w", err)
		}
		if !deleted {
			s.rev.Add(1)
		}
	}

	return nil
}

// FindRecord resolves a composite key against the catalog.
func (s *Service) FindRecord(ctx context.Context, typ model.LawType, id int) (model.LawRecord, error) {
	records, err := s.Records(ctx)
	if err != nil {
		return model.LawRecord{}, err
	}
	rec, ok := findRecord(records, typ, id)
	if !ok {
		return model.LawRecord{}, fmt.Errorf("%w: %s-%d", ErrNotFound, typ, id)
	}
	return rec, nil
}

func findRecord(records []model.LawRecord, typ model.LawType, id int) (model.LawRecord, bool) {
	for _, r := range records {
		if r.Type == typ && r.ID == id {
			return r, true
		}
	}
	return model.LawRecord{}, false
}

// editableFieldsChanged compares only the fields the edit dialog can touch.
// Null and empty string compare equal so a blanked-out field matches a null
// column.
func editableFieldsChanged(current, next model.LawRecord) bool {
	if current.Status != next.Status {
		return true
	}
	if nullStr(current.PossessionLimits) != nullStr(next.PossessionLimits) {
		return true
	}
	switch current.Type {
	case model.LawTypeState:
		a, b := current.State, next.State
		if b == nil {
			b = &model.StateDetails{}
		}
		return nullStr(a.TouristNotes) != nullStr(b.TouristNotes) ||
			nullStr(a.WhereToConsume) != nullStr(b.WhereToConsume) ||
			nullStr(a.DrivingRules) != nullStr(b.DrivingRules) ||
			nullStr(a.AirportRules) != nullStr(b.AirportRules)
	case model.LawTypeCountry:
		a, b := current.Country, next.Country
		if b == nil {
			b = &model.CountryDetails{}
		}
		return nullInt(a.AgeLimit) != nullInt(b.AgeLimit) ||
			nullStr(a.PurchaseLimits) != nullStr(b.PurchaseLimits) ||
			nullStr(a.ConsumptionNotes) != nullStr(b.ConsumptionNotes) ||
			nullStr(a.Penalties) != nullStr(b.Penalties) ||
			nullStr(a.SourceURL) != nullStr(b.SourceURL) ||
			nullStr(a.AirportRules) != nullStr(b.AirportRules)
	}
	return false
}

func nullStr(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return ns.String
}

func nullInt(ni sql.NullInt64) int64 {
	if !ni.Valid {
		return 0
	}
	return ni.Int64
}
