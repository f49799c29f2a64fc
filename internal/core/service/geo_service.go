package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kargopanel/mng-bridge/internal/api/metrics"
	"github.com/kargopanel/mng-bridge/internal/core/domain"
	"github.com/kargopanel/mng-bridge/internal/core/ports"
)

// GeoCache caches directory lists between carrier calls. A miss is reported
// through ok=false, not an error.
type GeoCache interface {
	GetCities(ctx context.Context) (entries []domain.GeoEntry, ok bool, err error)
	SetCities(ctx context.Context, entries []domain.GeoEntry) error
	GetDistricts(ctx context.Context, cityCode string) (entries []domain.GeoEntry, ok bool, err error)
	SetDistricts(ctx context.Context, cityCode string, entries []domain.GeoEntry) error
}

// GeoService serves the carrier directory through a cache and runs address
// reconciliation. Cache failures degrade to a direct carrier call; only a
// carrier failure is surfaced, and it is recoverable (the caller retries).
type GeoService struct {
	carrier ports.GeoDirectory
	cache   GeoCache
	log     zerolog.Logger
}

func NewGeoService(carrier ports.GeoDirectory, cache GeoCache, log zerolog.Logger) *GeoService {
	return &GeoService{carrier: carrier, cache: cache, log: log}
}

func (s *GeoService) ListCities(ctx context.Context) ([]domain.GeoEntry, error) {
	if s.cache != nil {
		entries, ok, err := s.cache.GetCities(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("city cache read failed, falling back to carrier")
		} else if ok {
			metrics.DirectoryCacheTotal.WithLabelValues("hit").Inc()
			return entries, nil
		}
		metrics.DirectoryCacheTotal.WithLabelValues("miss").Inc()
	}

	entries, err := s.carrier.ListCities(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: cities: %v", domain.ErrDirectoryUnavailable, err)
	}
	if s.cache != nil {
		if err := s.cache.SetCities(ctx, entries); err != nil {
			s.log.Warn().Err(err).Msg("city cache write failed")
		}
	}
	return entries, nil
}

func (s *GeoService) ListDistricts(ctx context.Context, cityCode string) ([]domain.GeoEntry, error) {
	if s.cache != nil {
		entries, ok, err := s.cache.GetDistricts(ctx, cityCode)
		if err != nil {
			s.log.Warn().Err(err).Str("city_code", cityCode).Msg("district cache read failed, falling back to carrier")
		} else if ok {
			metrics.DirectoryCacheTotal.WithLabelValues("hit").Inc()
			return entries, nil
		}
		metrics.DirectoryCacheTotal.WithLabelValues("miss").Inc()
	}

	entries, err := s.carrier.ListDistricts(ctx, cityCode)
	if err != nil {
		return nil, fmt.Errorf("%w: districts for city %s: %v", domain.ErrDirectoryUnavailable, cityCode, err)
	}
	if s.cache != nil {
		if err := s.cache.SetDistricts(ctx, cityCode, entries); err != nil {
			s.log.Warn().Err(err).Str("city_code", cityCode).Msg("district cache write failed")
		}
	}
	return entries, nil
}

// ResolveAddress reconciles a free-text address. Manual codes in the input
// take precedence over automatic matching and stop it entirely.
func (s *GeoService) ResolveAddress(ctx context.Context, input ports.ResolveAddressInput) (*ports.ResolvedAddress, error) {
	rec := NewReconciliation(s, s.log, input.Address)

	if input.CityCode != "" {
		if err := rec.SelectCity(ctx, input.CityCode); err != nil {
			return nil, err
		}
		if input.DistrictCode != "" {
			if err := rec.SelectDistrict(input.DistrictCode); err != nil {
				return nil, err
			}
		}
	} else if err := rec.Run(ctx); err != nil {
		return nil, err
	}

	result := rec.Result()
	return &ports.ResolvedAddress{
		City:      result.City,
		District:  result.District,
		Districts: rec.Districts(),
	}, nil
}
