package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/kargopanel/mng-bridge/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory directory stub
// ---------------------------------------------------------------------------

type stubDirectory struct {
	cities    []domain.GeoEntry
	districts map[string][]domain.GeoEntry

	// districtHook runs on a ListDistricts call, before returning. Used to
	// simulate an operator selection arriving while a load is in flight.
	districtHook func(cityCode string)
}

func newStubDirectory() *stubDirectory {
	return &stubDirectory{
		cities: []domain.GeoEntry{
			{Code: "34", Name: "İSTANBUL"},
			{Code: "41", Name: "KOCAELİ"},
			{Code: "06", Name: "ANKARA"},
		},
		districts: map[string][]domain.GeoEntry{
			"34": {{Code: "3401", Name: "KADIKÖY"}, {Code: "3402", Name: "BEŞİKTAŞ"}},
			"41": {{Code: "4101", Name: "İZMİT"}, {Code: "4105", Name: "DARICA"}},
			"06": {{Code: "0601", Name: "ÇANKAYA"}},
		},
	}
}

func (d *stubDirectory) ListCities(context.Context) ([]domain.GeoEntry, error) {
	return d.cities, nil
}

func (d *stubDirectory) ListDistricts(_ context.Context, cityCode string) ([]domain.GeoEntry, error) {
	if d.districtHook != nil {
		hook := d.districtHook
		d.districtHook = nil
		hook(cityCode)
	}
	return d.districts[cityCode], nil
}

// ---------------------------------------------------------------------------

func TestReconciliation_AutomaticFullMatch(t *testing.T) {
	dir := newStubDirectory()
	rec := NewReconciliation(dir, zerolog.Nop(), domain.OrderAddress{City: "kocaeli", Province: "Darıca"})

	if err := rec.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	result := rec.Result()
	if result.City == nil || result.City.Code != "41" {
		t.Fatalf("expected city 41, got %+v", result.City)
	}
	if result.District == nil || result.District.Code != "4105" {
		t.Fatalf("expected district 4105, got %+v", result.District)
	}
	if rec.State() != StateResolved {
		t.Errorf("expected resolved state, got %s", rec.State())
	}
}

func TestReconciliation_NoCityMatchLeavesSelectionEmpty(t *testing.T) {
	dir := newStubDirectory()
	rec := NewReconciliation(dir, zerolog.Nop(), domain.OrderAddress{City: "Atlantis", Province: "Nowhere"})

	if err := rec.Run(context.Background()); err != nil {
		t.Fatalf("run must not fail on an unmatched name: %v", err)
	}

	result := rec.Result()
	if result.City != nil || result.District != nil {
		t.Fatalf("expected empty selection, got %+v", result)
	}
}

func TestReconciliation_CityMatchWithoutDistrictMatch(t *testing.T) {
	dir := newStubDirectory()
	rec := NewReconciliation(dir, zerolog.Nop(), domain.OrderAddress{City: "Kocaeli", Province: "Merkez"})

	if err := rec.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	result := rec.Result()
	if result.City == nil || result.City.Code != "41" {
		t.Fatalf("expected city 41, got %+v", result.City)
	}
	if result.District != nil {
		t.Fatalf("district must stay empty without a match, got %+v", result.District)
	}
	if len(rec.Districts()) != 2 {
		t.Errorf("district list must stay loaded for the operator, got %d entries", len(rec.Districts()))
	}
}

func TestReconciliation_SelectCityClearsDistrict(t *testing.T) {
	dir := newStubDirectory()
	rec := NewReconciliation(dir, zerolog.Nop(), domain.OrderAddress{City: "Kocaeli", Province: "Darıca"})
	ctx := context.Background()

	if err := rec.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}
	if rec.Result().District == nil {
		t.Fatalf("precondition: district resolved")
	}

	if err := rec.SelectCity(ctx, "34"); err != nil {
		t.Fatalf("select city: %v", err)
	}

	result := rec.Result()
	if result.City == nil || result.City.Code != "34" {
		t.Fatalf("expected city 34, got %+v", result.City)
	}
	if result.District != nil {
		t.Fatalf("district must be cleared on city change, got %+v", result.District)
	}
	if got := rec.Districts(); len(got) != 2 || got[0].Code != "3401" {
		t.Errorf("expected İstanbul districts, got %+v", got)
	}
}

func TestReconciliation_SelectDistrict(t *testing.T) {
	dir := newStubDirectory()
	rec := NewReconciliation(dir, zerolog.Nop(), domain.OrderAddress{City: "İstanbul"})
	ctx := context.Background()

	if err := rec.SelectCity(ctx, "34"); err != nil {
		t.Fatalf("select city: %v", err)
	}
	if err := rec.SelectDistrict("3402"); err != nil {
		t.Fatalf("select district: %v", err)
	}

	result := rec.Result()
	if result.District == nil || result.District.Name != "BEŞİKTAŞ" {
		t.Fatalf("expected Beşiktaş, got %+v", result.District)
	}
	if rec.State() != StateResolved {
		t.Errorf("expected resolved state, got %s", rec.State())
	}
}

func TestReconciliation_SelectDistrictWithoutCity(t *testing.T) {
	dir := newStubDirectory()
	rec := NewReconciliation(dir, zerolog.Nop(), domain.OrderAddress{})

	if err := rec.SelectDistrict("3401"); err == nil {
		t.Fatalf("expected error selecting district without a city")
	}
}

func TestReconciliation_UnknownCityCodeRejected(t *testing.T) {
	dir := newStubDirectory()
	rec := NewReconciliation(dir, zerolog.Nop(), domain.OrderAddress{})

	if err := rec.SelectCity(context.Background(), "99"); err == nil {
		t.Fatalf("expected error for unknown city code")
	}
}

func TestReconciliation_ManualSelectionStopsAutomaticMatching(t *testing.T) {
	dir := newStubDirectory()
	rec := NewReconciliation(dir, zerolog.Nop(), domain.OrderAddress{City: "Kocaeli", Province: "Darıca"})
	ctx := context.Background()

	if err := rec.SelectCity(ctx, "06"); err != nil {
		t.Fatalf("select city: %v", err)
	}
	if err := rec.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}

	result := rec.Result()
	if result.City == nil || result.City.Code != "06" {
		t.Fatalf("manual selection must survive a later automatic pass, got %+v", result.City)
	}
	if result.District != nil {
		t.Fatalf("automatic pass must not fill the district after a manual pick, got %+v", result.District)
	}
}

func TestReconciliation_StaleDistrictLoadDiscarded(t *testing.T) {
	dir := newStubDirectory()
	rec := NewReconciliation(dir, zerolog.Nop(), domain.OrderAddress{City: "Kocaeli", Province: "Darıca"})
	ctx := context.Background()

	// The operator picks İstanbul while the Kocaeli district list is still
	// loading; the in-flight result must be thrown away.
	dir.districtHook = func(cityCode string) {
		if cityCode == "41" {
			if err := rec.SelectCity(ctx, "34"); err != nil {
				t.Fatalf("select city during load: %v", err)
			}
		}
	}

	if err := rec.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}

	result := rec.Result()
	if result.City == nil || result.City.Code != "34" {
		t.Fatalf("expected operator's city to win, got %+v", result.City)
	}
	if got := rec.Districts(); len(got) == 0 || got[0].Code != "3401" {
		t.Fatalf("expected İstanbul district list, got %+v", got)
	}
	if result.District != nil {
		t.Fatalf("stale district data must not be applied, got %+v", result.District)
	}
}
