package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jambotours/jambo-go/internal/domain"
	redisx "github.com/jambotours/jambo-go/internal/redis"
	"github.com/jambotours/jambo-go/internal/repository"
	redisrepo "github.com/jambotours/jambo-go/internal/repository/redis"
	"github.com/jambotours/jambo-go/internal/uow"
)

// upsertChunkSize caps the rows written per transaction so a season-sized
// batch never rides one oversized transaction.
const upsertChunkSize = 100

type Repository interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
	CreateResource(ctx context.Context, kind domain.ResourceKind, name, currency string) (uuid.UUID, error)
	CreatePricingUnit(ctx context.Context, u domain.PricingUnit) (uuid.UUID, error)
	GetResource(ctx context.Context, id uuid.UUID) (*domain.Resource, error)
	GetPricingUnit(ctx context.Context, resourceID uuid.UUID, unitID *uuid.UUID) (*domain.PricingUnit, error)
	ListPricingUnits(ctx context.Context, resourceID uuid.UUID) ([]domain.PricingUnit, error)
	UpsertCapacityEntries(ctx context.Context, unitID uuid.UUID, entries []domain.CapacityEntry) (int64, error)
	BlockDate(ctx context.Context, resourceID uuid.UUID, date time.Time, reason string) error
	UnblockDate(ctx context.Context, resourceID uuid.UUID, date time.Time) error
}

type Service struct {
	repo   Repository
	cache  *redisrepo.Cache
	pubsub *redisx.ResourcesPubSub
	uow    *uow.UoW
}

func New(repo Repository, cache *redisrepo.Cache, pubsub *redisx.ResourcesPubSub) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		pubsub: pubsub,
		uow:    uow.New(repo),
	}
}

func (s *Service) CreateResource(
	ctx context.Context,
	kind domain.ResourceKind,
	name, currency string,
) (uuid.UUID, error) {
	const op = "service.inventory.CreateResource"

	id, err := s.repo.CreateResource(ctx, kind, name, currency)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Service) CreatePricingUnit(ctx context.Context, u domain.PricingUnit) (uuid.UUID, error) {
	const op = "service.inventory.CreatePricingUnit"

	if _, err := s.repo.GetResource(ctx, u.ResourceID); err != nil {
		if errors.Is(err, repository.ErrResourceNotFound) {
			return uuid.Nil, fmt.Errorf("%s: %w", op, ErrResourceNotFound)
		}
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.repo.CreatePricingUnit(ctx, u)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// UpsertCapacity writes per-date capacity rows, creating or overwriting each
// (pricing unit, date) pair. With unitID set only that unit is touched;
// otherwise the items apply to every pricing unit of the resource. Writes go
// out in chunked transactions; re-running the same input is a no-op beyond
// rewriting identical values.
func (s *Service) UpsertCapacity(
	ctx context.Context,
	resourceID uuid.UUID,
	unitID *uuid.UUID,
	items []domain.CapacityEntry,
) (int64, error) {
	const op = "service.inventory.UpsertCapacity"

	if len(items) == 0 {
		return 0, fmt.Errorf("%s: %w", op, ErrNoItems)
	}
	for _, it := range items {
		if it.Capacity < 0 {
			return 0, fmt.Errorf("%s: %w", op, ErrInvalidCapacity)
		}
	}

	units, err := s.targetUnits(ctx, resourceID, unitID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var written int64
	for _, u := range units {
		for start := 0; start < len(items); start += upsertChunkSize {
			end := start + upsertChunkSize
			if end > len(items) {
				end = len(items)
			}
			chunk := items[start:end]

			err := s.uow.Do(ctx, func(ctx context.Context, after func(uow.AfterCommit)) error {
				n, err := s.repo.UpsertCapacityEntries(ctx, u.ID, chunk)
				if err != nil {
					return err
				}
				written += n
				return nil
			})
			if err != nil {
				return written, fmt.Errorf("%s: %w", op, err)
			}
		}
	}

	s.notifyChanged(ctx, resourceID)

	return written, nil
}

// GenerateRange expands every night in [from,to) to a uniform capacity and
// upserts it for every pricing unit of the resource.
func (s *Service) GenerateRange(
	ctx context.Context,
	resourceID uuid.UUID,
	from, to time.Time,
	capacity int,
) (int64, error) {
	const op = "service.inventory.GenerateRange"

	if capacity < 0 {
		return 0, fmt.Errorf("%s: %w", op, ErrInvalidCapacity)
	}

	nights := domain.EachNight(from, to)
	if len(nights) == 0 {
		return 0, fmt.Errorf("%s: %w", op, ErrInvalidRange)
	}

	items := make([]domain.CapacityEntry, 0, len(nights))
	for _, night := range nights {
		items = append(items, domain.CapacityEntry{Date: night, Capacity: capacity})
	}

	return s.UpsertCapacity(ctx, resourceID, nil, items)
}

func (s *Service) BlockDate(ctx context.Context, resourceID uuid.UUID, date time.Time, reason string) error {
	const op = "service.inventory.BlockDate"

	if _, err := s.repo.GetResource(ctx, resourceID); err != nil {
		if errors.Is(err, repository.ErrResourceNotFound) {
			return fmt.Errorf("%s: %w", op, ErrResourceNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.BlockDate(ctx, resourceID, date, reason); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.notifyChanged(ctx, resourceID)

	return nil
}

func (s *Service) UnblockDate(ctx context.Context, resourceID uuid.UUID, date time.Time) error {
	const op = "service.inventory.UnblockDate"

	if err := s.repo.UnblockDate(ctx, resourceID, date); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.notifyChanged(ctx, resourceID)

	return nil
}

func (s *Service) targetUnits(
	ctx context.Context,
	resourceID uuid.UUID,
	unitID *uuid.UUID,
) ([]domain.PricingUnit, error) {
	if unitID != nil {
		u, err := s.repo.GetPricingUnit(ctx, resourceID, unitID)
		if err != nil {
			if errors.Is(err, repository.ErrUnitNotFound) {
				return nil, ErrUnitNotFound
			}
			return nil, err
		}
		return []domain.PricingUnit{*u}, nil
	}

	if _, err := s.repo.GetResource(ctx, resourceID); err != nil {
		if errors.Is(err, repository.ErrResourceNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, err
	}

	units, err := s.repo.ListPricingUnits(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	if len(units) == 0 {
		return nil, ErrNoPricingUnits
	}

	return units, nil
}

func (s *Service) notifyChanged(ctx context.Context, resourceID uuid.UUID) {
	if s.cache != nil {
		_ = s.cache.InvalidateResource(ctx, resourceID)
	}
	if s.pubsub != nil {
		_ = s.pubsub.PublishResourceChanged(ctx, resourceID)
	}
}
