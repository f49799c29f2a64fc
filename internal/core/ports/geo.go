package ports

import (
	"context"

	"github.com/kargopanel/mng-bridge/internal/core/domain"
)

// GeoDirectory serves the carrier's city/district directory.
type GeoDirectory interface {
	// ListCities returns the full city list.
	ListCities(ctx context.Context) ([]domain.GeoEntry, error)
	// ListDistricts returns the districts scoped to a city code. Callers must
	// re-invoke it whenever the selected city changes; a previously loaded
	// list is never valid for another city.
	ListDistricts(ctx context.Context, cityCode string) ([]domain.GeoEntry, error)
}

// ResolveAddressInput carries a free-text address plus optional manual
// selections. A manual selection always wins over automatic matching.
type ResolveAddressInput struct {
	Address      domain.OrderAddress
	CityCode     string // manual override; empty = match automatically
	DistrictCode string // manual override; only meaningful with a city selection
}

// ResolvedAddress is the API-facing view of a reconciliation outcome.
type ResolvedAddress struct {
	City      *domain.GeoEntry
	District  *domain.GeoEntry
	Districts []domain.GeoEntry // directory for the selected city, for manual pick
}

// GeoService exposes directory lookups and address reconciliation.
type GeoService interface {
	ListCities(ctx context.Context) ([]domain.GeoEntry, error)
	ListDistricts(ctx context.Context, cityCode string) ([]domain.GeoEntry, error)
	ResolveAddress(ctx context.Context, input ResolveAddressInput) (*ResolvedAddress, error)
}
