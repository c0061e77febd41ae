package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jambotours/jambo-go/internal/clock"
	"github.com/jambotours/jambo-go/internal/domain"
	redisx "github.com/jambotours/jambo-go/internal/redis"
	"github.com/jambotours/jambo-go/internal/repository"
	redisrepo "github.com/jambotours/jambo-go/internal/repository/redis"
)

type Repository interface {
	GetResource(ctx context.Context, id uuid.UUID) (*domain.Resource, error)
	ListPricingUnits(ctx context.Context, resourceID uuid.UUID) ([]domain.PricingUnit, error)
	CapacityByDate(ctx context.Context, resourceID uuid.UUID, unitID *uuid.UUID, from, to time.Time) (map[time.Time]int, error)
	BlockedDates(ctx context.Context, resourceID uuid.UUID, from, to time.Time) (map[time.Time]string, error)
	ReservedUnitsByDate(ctx context.Context, resourceID uuid.UUID, from, to time.Time, now time.Time) (map[time.Time]int, error)
}

type Config struct {
	SummaryTTL      time.Duration
	CalendarTTL     time.Duration
	MaxCalendarDays int
}

// Service is the read-mostly browse surface. It reads committed data without
// locks and caches aggressively; the hold engine's authoritative re-check is
// what absorbs any staleness served here.
type Service struct {
	repo  Repository
	cache *redisrepo.Cache
	clk   clock.Clock
	cfg   Config
}

func New(repo Repository, cache *redisrepo.Cache, clk clock.Clock, cfg Config) *Service {
	if cfg.SummaryTTL <= 0 {
		cfg.SummaryTTL = 60 * time.Second
	}

	if cfg.CalendarTTL <= 0 {
		cfg.CalendarTTL = 15 * time.Second
	}

	if cfg.MaxCalendarDays <= 0 {
		cfg.MaxCalendarDays = 366
	}

	return &Service{
		repo:  repo,
		cache: cache,
		clk:   clk,
		cfg:   cfg,
	}
}

type ResourceSummary struct {
	Resource domain.Resource      `json:"resource"`
	Units    []domain.PricingUnit `json:"units"`
}

// GetResource returns a resource with its pricing units, through the cache.
func (s *Service) GetResource(ctx context.Context, id uuid.UUID) (*ResourceSummary, error) {
	const op = "service.query.GetResource"

	load := func(ctx context.Context) (ResourceSummary, error) {
		r, err := s.repo.GetResource(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrResourceNotFound) {
				return ResourceSummary{}, ErrResourceNotFound
			}
			return ResourceSummary{}, err
		}

		units, err := s.repo.ListPricingUnits(ctx, id)
		if err != nil {
			return ResourceSummary{}, err
		}

		return ResourceSummary{Resource: *r, Units: units}, nil
	}

	if s.cache == nil {
		summary, err := load(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return &summary, nil
	}

	summary, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		redisx.KeyResourceSummary(id),
		s.cfg.SummaryTTL,
		load,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &summary, nil
}

// DayAvailability is one calendar day as browsers see it. Capacity and
// Remaining are absent for unconstrained dates.
type DayAvailability struct {
	Date      string `json:"date"`
	Capacity  *int   `json:"capacity,omitempty"`
	Reserved  int    `json:"reserved"`
	Remaining *int   `json:"remaining,omitempty"`
	Blocked   bool   `json:"blocked"`
	Reason    string `json:"reason,omitempty"`
}

// Calendar combines capacity, blocks and reservations into a per-day view of
// [from,to). Served from a short-TTL cache keyed by range.
func (s *Service) Calendar(
	ctx context.Context,
	resourceID uuid.UUID,
	from, to time.Time,
) ([]DayAvailability, error) {
	const op = "service.query.Calendar"

	from, to = domain.Day(from), domain.Day(to)

	days := domain.NightsBetween(from, to)
	if days <= 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidRange)
	}
	if days > s.cfg.MaxCalendarDays {
		return nil, fmt.Errorf("%s: %w", op, ErrRangeTooLarge)
	}

	load := func(ctx context.Context) ([]DayAvailability, error) {
		return s.buildCalendar(ctx, resourceID, from, to)
	}

	if s.cache == nil {
		cal, err := load(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return cal, nil
	}

	key := redisx.KeyResourceCalendar(resourceID, domain.FormatDay(from), domain.FormatDay(to))

	cal, err := redisrepo.GetOrSetJSON(ctx, s.cache, key, s.cfg.CalendarTTL, load)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return cal, nil
}

func (s *Service) buildCalendar(
	ctx context.Context,
	resourceID uuid.UUID,
	from, to time.Time,
) ([]DayAvailability, error) {
	if _, err := s.repo.GetResource(ctx, resourceID); err != nil {
		if errors.Is(err, repository.ErrResourceNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, err
	}

	blocked, err := s.repo.BlockedDates(ctx, resourceID, from, to)
	if err != nil {
		return nil, err
	}

	capacity, err := s.repo.CapacityByDate(ctx, resourceID, nil, from, to)
	if err != nil {
		return nil, err
	}

	reserved, err := s.repo.ReservedUnitsByDate(ctx, resourceID, from, to, s.clk.Now())
	if err != nil {
		return nil, err
	}

	nights := domain.EachNight(from, to)
	out := make([]DayAvailability, 0, len(nights))

	for _, night := range nights {
		day := DayAvailability{
			Date:     domain.FormatDay(night),
			Reserved: reserved[night],
		}

		if reason, ok := blocked[night]; ok {
			day.Blocked = true
			day.Reason = reason
		}

		if limit, ok := capacity[night]; ok {
			remaining := limit - day.Reserved
			if remaining < 0 {
				remaining = 0
			}
			day.Capacity = &limit
			day.Remaining = &remaining
		}

		out = append(out, day)
	}

	return out, nil
}
