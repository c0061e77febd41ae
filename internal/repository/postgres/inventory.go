package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jambotours/jambo-go/internal/domain"
)

// CapacityByDate loads explicit capacity entries for the range [from,to) and
// aggregates them into date -> capacity. With unitID set only that pricing
// unit's rows count; otherwise entries are summed across all units of the
// resource. Dates with no row do not appear: they are unconstrained.
func (s *Store) CapacityByDate(
	ctx context.Context,
	resourceID uuid.UUID,
	unitID *uuid.UUID,
	from, to time.Time,
) (map[time.Time]int, error) {
	const op = "postgres.Store.CapacityByDate"

	var (
		rows pgx.Rows
		err  error
	)

	if unitID != nil {
		rows, err = s.handle(ctx).Query(ctx,
			`SELECT date, capacity
			 FROM capacity_entries
			 WHERE pricing_unit_id = $1 AND date >= $2 AND date < $3`,
			*unitID, domain.Day(from), domain.Day(to),
		)
	} else {
		rows, err = s.handle(ctx).Query(ctx,
			`SELECT ce.date, SUM(ce.capacity)::int
			 FROM capacity_entries ce
			 JOIN pricing_units pu ON pu.id = ce.pricing_unit_id
			 WHERE pu.resource_id = $1 AND ce.date >= $2 AND ce.date < $3
			 GROUP BY ce.date`,
			resourceID, domain.Day(from), domain.Day(to),
		)
	}
	if err != nil {
		return nil, wrapDBErr(op, err)
	}
	defer rows.Close()

	capacity := make(map[time.Time]int)
	for rows.Next() {
		var (
			date  time.Time
			units int
		)
		if err := rows.Scan(&date, &units); err != nil {
			return nil, wrapDBErr(op, err)
		}
		capacity[domain.Day(date)] = units
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return capacity, nil
}

// UpsertCapacityEntries writes one chunk of capacity rows, creating or
// overwriting per (pricing_unit_id, date). Callers chunk large batches; each
// chunk rides one transaction.
func (s *Store) UpsertCapacityEntries(
	ctx context.Context,
	unitID uuid.UUID,
	entries []domain.CapacityEntry,
) (int64, error) {
	const op = "postgres.Store.UpsertCapacityEntries"

	if len(entries) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(
			`INSERT INTO capacity_entries(pricing_unit_id, date, capacity)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (pricing_unit_id, date)
			 DO UPDATE SET capacity = EXCLUDED.capacity`,
			unitID, domain.Day(e.Date), e.Capacity,
		)
	}

	br := s.handle(ctx).SendBatch(ctx, batch)
	defer br.Close()

	var written int64
	for range entries {
		tag, err := br.Exec()
		if err != nil {
			return written, wrapDBErr(op, err)
		}
		written += tag.RowsAffected()
	}

	return written, nil
}

// BlockedDates returns date -> reason for explicit blackout dates in [from,to).
func (s *Store) BlockedDates(
	ctx context.Context,
	resourceID uuid.UUID,
	from, to time.Time,
) (map[time.Time]string, error) {
	const op = "postgres.Store.BlockedDates"

	rows, err := s.handle(ctx).Query(ctx,
		`SELECT date, reason
		 FROM blocked_dates
		 WHERE resource_id = $1 AND date >= $2 AND date < $3`,
		resourceID, domain.Day(from), domain.Day(to),
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}
	defer rows.Close()

	blocked := make(map[time.Time]string)
	for rows.Next() {
		var (
			date   time.Time
			reason string
		)
		if err := rows.Scan(&date, &reason); err != nil {
			return nil, wrapDBErr(op, err)
		}
		blocked[domain.Day(date)] = reason
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return blocked, nil
}

func (s *Store) BlockDate(ctx context.Context, resourceID uuid.UUID, date time.Time, reason string) error {
	const op = "postgres.Store.BlockDate"

	if _, err := s.handle(ctx).Exec(ctx,
		`INSERT INTO blocked_dates(resource_id, date, reason)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (resource_id, date)
		 DO UPDATE SET reason = EXCLUDED.reason`,
		resourceID, domain.Day(date), reason,
	); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

func (s *Store) UnblockDate(ctx context.Context, resourceID uuid.UUID, date time.Time) error {
	const op = "postgres.Store.UnblockDate"

	if _, err := s.handle(ctx).Exec(ctx,
		`DELETE FROM blocked_dates WHERE resource_id = $1 AND date = $2`,
		resourceID, domain.Day(date),
	); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}
