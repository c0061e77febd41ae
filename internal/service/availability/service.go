package availability

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
	postgresrepo "github.com/jambotours/jambo-go/internal/repository/postgres"
	redisrepo "github.com/jambotours/jambo-go/internal/repository/redis"
	"github.com/jambotours/jambo-go/internal/uow"
)

// Repository is the storage surface of the hold engine. Methods called inside
// an InTx callback observe the transaction, which is what makes the Phase B
// re-reads lock-consistent.
type Repository interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetResource(ctx context.Context, id uuid.UUID) (*domain.Resource, error)
	GetPricingUnit(ctx context.Context, resourceID uuid.UUID, unitID *uuid.UUID) (*domain.PricingUnit, error)
	LockResource(ctx context.Context, id uuid.UUID) error
	CapacityByDate(ctx context.Context, resourceID uuid.UUID, unitID *uuid.UUID, from, to time.Time) (map[time.Time]int, error)
	BlockedDates(ctx context.Context, resourceID uuid.UUID, from, to time.Time) (map[time.Time]string, error)
	ReservedUnitsByDate(ctx context.Context, resourceID uuid.UUID, from, to time.Time, now time.Time) (map[time.Time]int, error)
	CreateBooking(ctx context.Context, b *domain.Booking) error
}

type Config struct {
	HoldTTL time.Duration
}

type Service struct {
	repo    Repository
	cache   *redisrepo.Cache
	pubsub  *redisx.ResourcesPubSub
	limiter *redisrepo.SlidingWindowLimiter
	clk     clock.Clock
	uow     *uow.UoW
	cfg     Config
}

func New(
	repo Repository,
	cache *redisrepo.Cache,
	pubsub *redisx.ResourcesPubSub,
	limiter *redisrepo.SlidingWindowLimiter,
	clk clock.Clock,
	cfg Config,
) *Service {
	if cfg.HoldTTL <= 0 {
		cfg.HoldTTL = 15 * time.Minute
	}

	return &Service{
		repo:    repo,
		cache:   cache,
		pubsub:  pubsub,
		limiter: limiter,
		clk:     clk,
		uow:     uow.New(repo),
		cfg:     cfg,
	}
}

type CheckInput struct {
	ResourceID    uuid.UUID
	PricingUnitID *uuid.UUID
	From, To      time.Time
	Guests        domain.GuestCounts
	CreateHold    bool
	RateKey       string
}

type CheckResult struct {
	Available     bool
	Nights        int
	TotalCents    int64
	Currency      string
	Message       string
	Remaining     *int
	BookingID     uuid.UUID
	HoldToken     string
	HoldExpiresAt *time.Time
}

// shortfall records the first night that cannot be booked and why.
type shortfall struct {
	date      time.Time
	blocked   bool
	reason    string
	remaining int
}

// Check answers whether the requested stay fits and, when asked, reserves it.
//
// Phase A runs against committed data with no locks and exists only to fail
// fast; browse traffic never pays for a resource lock. Phase B, entered only
// when a hold is requested and Phase A passed, re-runs the same per-night
// comparison against the locked view and inserts the hold atomically. Two
// callers racing for the last unit both pass Phase A; exactly one survives
// the re-check.
func (s *Service) Check(ctx context.Context, in CheckInput) (*CheckResult, error) {
	const op = "service.availability.Check"

	from, to := domain.Day(in.From), domain.Day(in.To)

	nights := domain.NightsBetween(from, to)
	if nights <= 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidRange)
	}

	resource, err := s.repo.GetResource(ctx, in.ResourceID)
	if err != nil {
		if errors.Is(err, repository.ErrResourceNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrResourceNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	unit, err := s.repo.GetPricingUnit(ctx, in.ResourceID, in.PricingUnitID)
	if err != nil {
		if errors.Is(err, repository.ErrUnitNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrUnitNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := domain.ValidateGuests(*unit, in.Guests); err != nil {
		return nil, err
	}

	units := in.Guests.Units()
	result := &CheckResult{
		Nights:     nights,
		TotalCents: domain.TotalPriceCents(unit.PriceModel, unit.PriceFromCents, nights, units, in.Guests.TotalGuests()),
		Currency:   domain.ResolveCurrency(*unit, *resource),
	}

	// Phase A: advisory, lock-free. Not the source of correctness.
	short, err := s.checkNights(ctx, in, from, to, units, s.clk.Now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if short != nil {
		return unavailable(result, short), nil
	}

	result.Available = true
	result.Message = "Available"

	if !in.CreateHold {
		return result, nil
	}

	if s.limiter != nil && in.RateKey != "" {
		ok, _, retry, err := s.limiter.Allow(ctx, in.RateKey)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if !ok {
			return nil, fmt.Errorf("%s: %w", op, &RateLimitedError{RetryAfter: retry})
		}
	}

	// Phase B: authoritative, inside a serializable transaction holding the
	// resource row lock.
	var (
		booking   *domain.Booking
		plainTok  string
		lateShort *shortfall
	)

	err = s.uow.Do(ctx, func(ctx context.Context, after func(uow.AfterCommit)) error {
		if err := s.repo.LockResource(ctx, in.ResourceID); err != nil {
			return err
		}

		now := s.clk.Now()
		short, err := s.checkNights(ctx, in, from, to, units, now)
		if err != nil {
			return err
		}
		if short != nil {
			// The race-closing step: lost to a hold committed ahead of us.
			lateShort = short
			return nil
		}

		plain, hash := domain.NewHoldToken()
		expiresAt := now.Add(s.cfg.HoldTTL)

		b := &domain.Booking{
			ID:            uuid.New(),
			ResourceID:    in.ResourceID,
			PricingUnitID: unit.ID,
			FromDate:      from,
			ToDate:        to,
			Nights:        nights,
			Adults:        in.Guests.Adults,
			Children:      in.Guests.Children,
			Infants:       in.Guests.Infants,
			Rooms:         in.Guests.Rooms,
			UnitsBooked:   units,
			TotalCents:    result.TotalCents,
			Currency:      result.Currency,
			Status:        domain.StatusHold,
			HoldTokenHash: hash,
			HoldExpiresAt: &expiresAt,
			CreatedAt:     now,
		}

		if err := s.repo.CreateBooking(ctx, b); err != nil {
			return err
		}

		booking = b
		plainTok = plain

		after(func(ctx context.Context) {
			s.notifyChanged(ctx, in.ResourceID)
		})

		return nil
	})
	if err != nil {
		if postgresrepo.IsRetryable(err) {
			return nil, fmt.Errorf("%s: %w", op, ErrTryAgain)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if lateShort != nil {
		return unavailable(result, lateShort), nil
	}

	result.BookingID = booking.ID
	result.HoldToken = plainTok
	result.HoldExpiresAt = booking.HoldExpiresAt

	return result, nil
}

// checkNights combines the three availability signals for every requested
// night: blocked dates veto outright, then reserved units plus the requested
// units must fit under each night's explicit capacity, where one is defined.
func (s *Service) checkNights(
	ctx context.Context,
	in CheckInput,
	from, to time.Time,
	units int,
	now time.Time,
) (*shortfall, error) {
	blocked, err := s.repo.BlockedDates(ctx, in.ResourceID, from, to)
	if err != nil {
		return nil, err
	}

	capacity, err := s.repo.CapacityByDate(ctx, in.ResourceID, in.PricingUnitID, from, to)
	if err != nil {
		return nil, err
	}

	reserved, err := s.repo.ReservedUnitsByDate(ctx, in.ResourceID, from, to, now)
	if err != nil {
		return nil, err
	}

	for _, night := range domain.EachNight(from, to) {
		if reason, ok := blocked[night]; ok {
			return &shortfall{date: night, blocked: true, reason: reason}, nil
		}

		limit, ok := capacity[night]
		if !ok {
			continue // no capacity entry, night is unconstrained
		}

		if reserved[night]+units > limit {
			remaining := limit - reserved[night]
			if remaining < 0 {
				remaining = 0
			}
			return &shortfall{date: night, remaining: remaining}, nil
		}
	}

	return nil, nil
}

func unavailable(r *CheckResult, short *shortfall) *CheckResult {
	r.Available = false

	day := domain.FormatDay(short.date)
	switch {
	case short.blocked && short.reason != "":
		r.Message = fmt.Sprintf("Date %s is blocked: %s", day, short.reason)
	case short.blocked:
		r.Message = fmt.Sprintf("Date %s is blocked", day)
	case short.remaining > 0:
		remaining := short.remaining
		r.Remaining = &remaining
		r.Message = fmt.Sprintf("Only %d unit(s) left on %s", remaining, day)
	default:
		zero := 0
		r.Remaining = &zero
		r.Message = fmt.Sprintf("No availability on %s", day)
	}

	return r
}

func (s *Service) notifyChanged(ctx context.Context, resourceID uuid.UUID) {
	if s.cache != nil {
		_ = s.cache.InvalidateResource(ctx, resourceID)
	}
	if s.pubsub != nil {
		_ = s.pubsub.PublishResourceChanged(ctx, resourceID)
	}
}
