package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kargopanel/mng-bridge/internal/core/domain"
	"github.com/kargopanel/mng-bridge/internal/core/ports"
	"github.com/kargopanel/mng-bridge/internal/pkg/turkish"
)

// ReconcileState names the stages of address reconciliation.
type ReconcileState int

const (
	StateUnresolved ReconcileState = iota
	StateCityMatching
	StateCityResolved
	StateDistrictMatching
	StateResolved
)

func (s ReconcileState) String() string {
	switch s {
	case StateCityMatching:
		return "city_matching"
	case StateCityResolved:
		return "city_resolved"
	case StateDistrictMatching:
		return "district_matching"
	case StateResolved:
		return "resolved"
	default:
		return "unresolved"
	}
}

// errStaleDistrictLoad marks a district fetch whose city selection changed
// while the fetch was in flight. Its result must be discarded, not applied.
var errStaleDistrictLoad = errors.New("district load superseded by newer city selection")

// Reconciliation matches one order's free-text address against the carrier
// directory.
//
// Transitions: Unresolved → CityMatching → CityResolved → DistrictMatching →
// Resolved. SelectCity re-enters DistrictMatching for the new city and always
// clears the previous district. Once the operator has made any manual
// selection, automatic matching stops and never overwrites it.
type Reconciliation struct {
	dir  ports.GeoDirectory
	log  zerolog.Logger
	addr domain.OrderAddress

	state     ReconcileState
	city      *domain.GeoEntry
	district  *domain.GeoEntry
	districts []domain.GeoEntry
	manual    bool
	gen       uint64 // bumped on every city change; stale district loads are discarded
}

// NewReconciliation starts a reconciliation session for one address.
func NewReconciliation(dir ports.GeoDirectory, log zerolog.Logger, addr domain.OrderAddress) *Reconciliation {
	return &Reconciliation{dir: dir, log: log, addr: addr, state: StateUnresolved}
}

// Run performs the automatic matching pass: exact normalized equality against
// the city list, then against the district list of the matched city. No fuzzy
// matching; an unmatched name is a dead end that leaves the selection empty
// for the operator, not an error. Run is a no-op after any manual selection.
func (r *Reconciliation) Run(ctx context.Context) error {
	if r.manual || r.state == StateResolved {
		return nil
	}

	cities, err := r.dir.ListCities(ctx)
	if err != nil {
		return fmt.Errorf("reconcile: list cities: %w", err)
	}
	r.state = StateCityMatching

	city := matchEntry(cities, r.addr.City)
	if r.manual {
		// Operator selected a city while the list was loading; their pick wins.
		return nil
	}
	if city == nil {
		r.log.Debug().Str("city", r.addr.City).Msg("no directory match for city")
		return nil
	}
	r.city = city
	r.state = StateCityResolved

	districts, err := r.loadDistricts(ctx, city.Code)
	if err != nil {
		if errors.Is(err, errStaleDistrictLoad) {
			return nil
		}
		return fmt.Errorf("reconcile: list districts: %w", err)
	}
	r.districts = districts
	r.state = StateDistrictMatching

	district := matchEntry(districts, r.addr.Province)
	if r.manual || r.city == nil || r.city.Code != city.Code {
		return nil
	}
	if district == nil {
		r.log.Debug().Str("district", r.addr.Province).Str("city_code", city.Code).Msg("no directory match for district")
		return nil
	}
	r.district = district
	r.state = StateResolved
	return nil
}

// SelectCity applies the operator's manual city choice. The previous district
// selection and district list are always discarded, and the district list for
// the new city is loaded.
func (r *Reconciliation) SelectCity(ctx context.Context, cityCode string) error {
	cities, err := r.dir.ListCities(ctx)
	if err != nil {
		return fmt.Errorf("select city: %w", err)
	}
	var city *domain.GeoEntry
	for i := range cities {
		if cities[i].Code == cityCode {
			city = &cities[i]
			break
		}
	}
	if city == nil {
		return &domain.MissingFieldError{Field: "city"}
	}

	r.manual = true
	r.gen++
	r.city = city
	r.district = nil
	r.districts = nil
	r.state = StateCityResolved

	districts, err := r.loadDistricts(ctx, city.Code)
	if err != nil {
		if errors.Is(err, errStaleDistrictLoad) {
			return nil
		}
		return fmt.Errorf("select city: %w", err)
	}
	r.districts = districts
	r.state = StateDistrictMatching
	return nil
}

// SelectDistrict applies the operator's manual district choice from the
// currently loaded list.
func (r *Reconciliation) SelectDistrict(districtCode string) error {
	if r.city == nil {
		return &domain.MissingFieldError{Field: "city"}
	}
	r.manual = true
	for i := range r.districts {
		if r.districts[i].Code == districtCode {
			r.district = &r.districts[i]
			r.state = StateResolved
			return nil
		}
	}
	return &domain.MissingFieldError{Field: "district"}
}

// loadDistricts fetches the district list and discards the result when the
// city selection changed while the fetch was in flight.
func (r *Reconciliation) loadDistricts(ctx context.Context, cityCode string) ([]domain.GeoEntry, error) {
	gen := r.gen
	entries, err := r.dir.ListDistricts(ctx, cityCode)
	if err != nil {
		return nil, err
	}
	if gen != r.gen {
		r.log.Debug().Str("city_code", cityCode).Msg("discarding stale district load")
		return nil, errStaleDistrictLoad
	}
	return entries, nil
}

// State returns the current reconciliation stage.
func (r *Reconciliation) State() ReconcileState {
	return r.state
}

// Districts returns the loaded district list for the selected city.
func (r *Reconciliation) Districts() []domain.GeoEntry {
	return r.districts
}

// Result returns the current selection. Either entry may be nil.
func (r *Reconciliation) Result() domain.ReconciledAddress {
	return domain.ReconciledAddress{City: r.city, District: r.district}
}

// matchEntry returns the first entry whose normalized name equals the
// normalized free text, or nil.
func matchEntry(entries []domain.GeoEntry, freeText string) *domain.GeoEntry {
	want := turkish.NormalizeForComparison(freeText)
	if want == "" {
		return nil
	}
	for i := range entries {
		if turkish.NormalizeForComparison(entries[i].Name) == want {
			return &entries[i]
		}
	}
	return nil
}
