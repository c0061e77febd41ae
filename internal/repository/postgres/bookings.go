package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jambotours/jambo-go/internal/domain"
	"github.com/jambotours/jambo-go/internal/repository"
)

// ReservedUnitsByDate scans bookings whose range intersects [from,to) and
// still consume capacity at now: confirmed, or held with an unexpired hold.
// Each one is expanded into its own nights and, for nights inside the query
// range, units_booked is accumulated into date -> reserved units. Expiry is a
// predicate here, not a stored state, so stale holds drop out lazily.
func (s *Store) ReservedUnitsByDate(
	ctx context.Context,
	resourceID uuid.UUID,
	from, to time.Time,
	now time.Time,
) (map[time.Time]int, error) {
	const op = "postgres.Store.ReservedUnitsByDate"

	rows, err := s.handle(ctx).Query(ctx,
		`SELECT from_date, to_date, units_booked
		 FROM bookings
		 WHERE resource_id = $1
		   AND from_date < $3
		   AND to_date > $2
		   AND (status = 'confirmed'
		        OR (status = 'hold' AND hold_expires_at > $4))`,
		resourceID, domain.Day(from), domain.Day(to), now,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}
	defer rows.Close()

	queryFrom, queryTo := domain.Day(from), domain.Day(to)
	reserved := make(map[time.Time]int)

	for rows.Next() {
		var (
			bFrom, bTo time.Time
			units      int
		)
		if err := rows.Scan(&bFrom, &bTo, &units); err != nil {
			return nil, wrapDBErr(op, err)
		}
		for _, night := range domain.EachNight(bFrom, bTo) {
			if night.Before(queryFrom) || !night.Before(queryTo) {
				continue
			}
			reserved[night] += units
		}
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return reserved, nil
}

func (s *Store) CreateBooking(ctx context.Context, b *domain.Booking) error {
	const op = "postgres.Store.CreateBooking"

	if _, err := s.handle(ctx).Exec(ctx,
		`INSERT INTO bookings(
			id, resource_id, pricing_unit_id, from_date, to_date, nights,
			adults, children, infants, rooms, units_booked, total_cents,
			currency, status, hold_token_hash, hold_expires_at, payment_ref,
			created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
		         $13, $14, $15, $16, $17, $18)`,
		b.ID, b.ResourceID, b.PricingUnitID,
		domain.Day(b.FromDate), domain.Day(b.ToDate), b.Nights,
		b.Adults, b.Children, b.Infants, b.Rooms, b.UnitsBooked, b.TotalCents,
		b.Currency, b.Status, nullStr(b.HoldTokenHash), b.HoldExpiresAt,
		nullStr(b.PaymentRef), b.CreatedAt,
	); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

const bookingColumns = `id, resource_id, pricing_unit_id, from_date, to_date,
	nights, adults, children, infants, rooms, units_booked, total_cents,
	currency, status, COALESCE(hold_token_hash, ''), hold_expires_at,
	COALESCE(payment_ref, ''), created_at`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(
		&b.ID, &b.ResourceID, &b.PricingUnitID, &b.FromDate, &b.ToDate,
		&b.Nights, &b.Adults, &b.Children, &b.Infants, &b.Rooms,
		&b.UnitsBooked, &b.TotalCents, &b.Currency, &b.Status,
		&b.HoldTokenHash, &b.HoldExpiresAt, &b.PaymentRef, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.FromDate = domain.Day(b.FromDate)
	b.ToDate = domain.Day(b.ToDate)

	return &b, nil
}

func (s *Store) GetBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	const op = "postgres.Store.GetBooking"

	b, err := scanBooking(s.handle(ctx).QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`,
		id,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return b, nil
}

// FindHoldByTokenHash resolves a hold by the hash of the caller's plaintext
// token. Only rows still in hold status match; expiry is the caller's check.
func (s *Store) FindHoldByTokenHash(ctx context.Context, tokenHash string) (*domain.Booking, error) {
	const op = "postgres.Store.FindHoldByTokenHash"

	b, err := scanBooking(s.handle(ctx).QueryRow(ctx,
		`SELECT `+bookingColumns+`
		 FROM bookings
		 WHERE hold_token_hash = $1 AND status = 'hold'`,
		tokenHash,
	))
	if err != nil {
		if errors.Is(wrapDBErr(op, err), repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, repository.ErrHoldNotFound)
		}
		return nil, wrapDBErr(op, err)
	}

	return b, nil
}

// ConfirmBooking flips one hold to confirmed, clearing the token fields and
// recording the payment correlation. Zero rows affected means the row was no
// longer a hold when the update ran.
func (s *Store) ConfirmBooking(ctx context.Context, id uuid.UUID, paymentRef string) error {
	const op = "postgres.Store.ConfirmBooking"

	tag, err := s.handle(ctx).Exec(ctx,
		`UPDATE bookings
		 SET status = 'confirmed',
		     hold_token_hash = NULL,
		     hold_expires_at = NULL,
		     payment_ref = $2
		 WHERE id = $1 AND status = 'hold'`,
		id, nullStr(paymentRef),
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrHoldNotFound)
	}

	return nil
}

// ReleaseBooking expires one hold and clears its token fields. Releasing a
// row that is not a hold affects nothing, which the service reports as a
// no-op rather than an error.
func (s *Store) ReleaseBooking(ctx context.Context, id uuid.UUID) (bool, error) {
	const op = "postgres.Store.ReleaseBooking"

	tag, err := s.handle(ctx).Exec(ctx,
		`UPDATE bookings
		 SET status = 'expired',
		     hold_token_hash = NULL,
		     hold_expires_at = NULL
		 WHERE id = $1 AND status = 'hold'`,
		id,
	)
	if err != nil {
		return false, wrapDBErr(op, err)
	}

	return tag.RowsAffected() > 0, nil
}

// ExpireHolds is storage hygiene only: readers already ignore stale holds via
// the expiry predicate, this just flips their stored status in bulk.
func (s *Store) ExpireHolds(ctx context.Context, now time.Time) (int64, error) {
	const op = "postgres.Store.ExpireHolds"

	tag, err := s.handle(ctx).Exec(ctx,
		`UPDATE bookings
		 SET status = 'expired',
		     hold_token_hash = NULL,
		     hold_expires_at = NULL
		 WHERE status = 'hold' AND hold_expires_at <= $1`,
		now,
	)
	if err != nil {
		return 0, wrapDBErr(op, err)
	}

	return tag.RowsAffected(), nil
}

func nullStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
