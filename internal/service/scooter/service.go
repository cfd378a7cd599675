package scooter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/scoot-me/scootme/internal/domain"
	"github.com/scoot-me/scootme/internal/ports"
)

const (
	listCacheTTL       = 30 * time.Second
	listCacheKeyPrefix = "scooters:list:"
)

type Service struct {
	repo  ports.ScooterRepository
	cache ports.Cache
	log   *zap.Logger
}

func NewService(repo ports.ScooterRepository, cache ports.Cache, log *zap.Logger) ports.ScooterService {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// List returns scooters, optionally filtered by status. Listings hit the map
// screen on every pan so results are cached briefly.
func (s *Service) List(ctx context.Context, status string) ([]domain.Scooter, error) {
	cacheKey := listCacheKeyPrefix + status
	if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != "" {
		var scooters []domain.Scooter
		if err := json.Unmarshal([]byte(cached), &scooters); err == nil {
			return scooters, nil
		}
	}

	filter := map[string]interface{}{}
	if status != "" {
		filter["status"] = status
	}

	scooters, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(scooters); err == nil {
		if err := s.cache.Set(ctx, cacheKey, string(data), listCacheTTL); err != nil {
			s.log.Debug("Failed to cache scooter list", zap.Error(err))
		}
	}

	return scooters, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Scooter, error) {
	sc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sc == nil {
		return nil, fmt.Errorf("%w: scooter %s", domain.ErrNotFound, id)
	}
	return sc, nil
}

// Verify backs the QR-scan flow: the app scans a code and asks whether this
// scooter can be booked right now.
func (s *Service) Verify(ctx context.Context, id string) (*domain.Scooter, bool, error) {
	sc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if sc == nil {
		return nil, false, fmt.Errorf("%w: scooter %s", domain.ErrNotFound, id)
	}
	return sc, sc.Bookable(), nil
}

func (s *Service) Reserve(ctx context.Context, id, userID string) (*domain.Scooter, error) {
	ok, err := s.repo.Reserve(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		sc, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if sc == nil {
			return nil, fmt.Errorf("%w: scooter %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: scooter %s is %s", domain.ErrConflict, id, sc.Status)
	}

	s.invalidateListings(ctx)

	sc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sc, nil
}

func (s *Service) Release(ctx context.Context, id string) error {
	if err := s.repo.Release(ctx, id); err != nil {
		return err
	}
	s.invalidateListings(ctx)
	return nil
}

func (s *Service) AttachTrip(ctx context.Context, id, tripID string) error {
	return s.repo.AttachTrip(ctx, id, tripID)
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.ScooterStatus) error {
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.invalidateListings(ctx)
	return nil
}

func (s *Service) invalidateListings(ctx context.Context) {
	for _, status := range []string{
		"",
		string(domain.ScooterStatusAvailable),
		string(domain.ScooterStatusInUse),
		string(domain.ScooterStatusReserved),
	} {
		if err := s.cache.Delete(ctx, listCacheKeyPrefix+status); err != nil {
			s.log.Debug("Failed to invalidate scooter list cache", zap.Error(err))
		}
	}
}
