package holds

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

type Repository interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	FindHoldByTokenHash(ctx context.Context, tokenHash string) (*domain.Booking, error)
	LockResource(ctx context.Context, id uuid.UUID) error
	ConfirmBooking(ctx context.Context, id uuid.UUID, paymentRef string) error
	ReleaseBooking(ctx context.Context, id uuid.UUID) (bool, error)
	ExpireHolds(ctx context.Context, now time.Time) (int64, error)
}

type Service struct {
	repo   Repository
	cache  *redisrepo.Cache
	pubsub *redisx.ResourcesPubSub
	clk    clock.Clock
	uow    *uow.UoW
}

func New(
	repo Repository,
	cache *redisrepo.Cache,
	pubsub *redisx.ResourcesPubSub,
	clk clock.Clock,
) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		pubsub: pubsub,
		clk:    clk,
		uow:    uow.New(repo),
	}
}

// HoldRef identifies a hold by booking id or by the plaintext token handed
// out at creation. Exactly one should be set; id wins when both are.
type HoldRef struct {
	BookingID *uuid.UUID
	Token     string
}

// Confirm promotes a hold to a confirmed booking under the resource lock.
// A second confirm on an already-confirmed booking fails rather than
// silently succeeding, so double-charge bugs upstream stay visible.
func (s *Service) Confirm(ctx context.Context, ref HoldRef, paymentRef string) (*domain.Booking, error) {
	const op = "service.holds.Confirm"

	var confirmed *domain.Booking

	err := s.uow.Do(ctx, func(ctx context.Context, after func(uow.AfterCommit)) error {
		b, err := s.resolve(ctx, ref)
		if err != nil {
			return err
		}

		if err := s.repo.LockResource(ctx, b.ResourceID); err != nil {
			return err
		}

		// Re-read under the lock: a racing confirm or release may have
		// committed between resolution and lock acquisition.
		b, err = s.repo.GetBooking(ctx, b.ID)
		if err != nil {
			return err
		}

		switch {
		case b.Status == domain.StatusConfirmed:
			return ErrAlreadyConfirmed
		case b.Status != domain.StatusHold:
			return ErrHoldExpired
		case b.HoldExpiresAt == nil || !b.HoldExpiresAt.After(s.clk.Now()):
			return ErrHoldExpired
		}

		if err := s.repo.ConfirmBooking(ctx, b.ID, paymentRef); err != nil {
			return err
		}

		b.Status = domain.StatusConfirmed
		b.HoldTokenHash = ""
		b.HoldExpiresAt = nil
		b.PaymentRef = paymentRef
		confirmed = b

		after(func(ctx context.Context) {
			s.notifyChanged(ctx, b.ResourceID)
		})

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrHoldNotFound) ||
			errors.Is(err, ErrHoldExpired) ||
			errors.Is(err, ErrAlreadyConfirmed) {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if postgresrepo.IsRetryable(err) {
			return nil, fmt.Errorf("%s: %w", op, ErrTryAgain)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return confirmed, nil
}

// Release expires a hold, freeing its capacity immediately. Best-effort
// cleanup: an unknown reference or a booking no longer in hold status is a
// no-op reporting released=false, never an error.
func (s *Service) Release(ctx context.Context, ref HoldRef) (bool, error) {
	const op = "service.holds.Release"

	var released bool

	err := s.uow.Do(ctx, func(ctx context.Context, after func(uow.AfterCommit)) error {
		b, err := s.resolve(ctx, ref)
		if err != nil {
			if errors.Is(err, ErrHoldNotFound) {
				return nil
			}
			return err
		}

		if err := s.repo.LockResource(ctx, b.ResourceID); err != nil {
			return err
		}

		ok, err := s.repo.ReleaseBooking(ctx, b.ID)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		released = true
		resourceID := b.ResourceID

		after(func(ctx context.Context) {
			s.notifyChanged(ctx, resourceID)
		})

		return nil
	})
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return released, nil
}

// Expire bulk-flips stale holds to expired. Hygiene only: correctness never
// depends on this running, because every capacity read filters on the expiry
// timestamp.
func (s *Service) Expire(ctx context.Context) (int64, error) {
	const op = "service.holds.Expire"

	n, err := s.repo.ExpireHolds(ctx, s.clk.Now())
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

// Get loads a booking in any state, for voucher and receipt consumers.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	const op = "service.holds.Get"

	b, err := s.repo.GetBooking(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrBookingNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return b, nil
}

func (s *Service) resolve(ctx context.Context, ref HoldRef) (*domain.Booking, error) {
	if ref.BookingID != nil {
		b, err := s.repo.GetBooking(ctx, *ref.BookingID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrHoldNotFound
			}
			return nil, err
		}
		return b, nil
	}

	if ref.Token != "" {
		b, err := s.repo.FindHoldByTokenHash(ctx, domain.HashHoldToken(ref.Token))
		if err != nil {
			if errors.Is(err, repository.ErrHoldNotFound) {
				return nil, ErrHoldNotFound
			}
			return nil, err
		}
		return b, nil
	}

	return nil, ErrHoldNotFound
}

func (s *Service) notifyChanged(ctx context.Context, resourceID uuid.UUID) {
	if s.cache != nil {
		_ = s.cache.InvalidateResource(ctx, resourceID)
	}
	if s.pubsub != nil {
		_ = s.pubsub.PublishResourceChanged(ctx, resourceID)
	}
}
