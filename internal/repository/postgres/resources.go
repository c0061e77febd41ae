package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jambotours/jambo-go/internal/domain"
	"github.com/jambotours/jambo-go/internal/repository"
)

// CreateResource inserts a destination or experience and returns its ID.
func (s *Store) CreateResource(
	ctx context.Context,
	kind domain.ResourceKind,
	name string,
	currency string,
) (uuid.UUID, error) {
	const op = "postgres.Store.CreateResource"

	id := uuid.New()
	if _, err := s.handle(ctx).Exec(ctx,
		`INSERT INTO resources(id, kind, name, currency)
		 VALUES ($1, $2, $3, $4)`,
		id, kind, name, currency,
	); err != nil {
		return uuid.Nil, wrapDBErr(op, err)
	}

	return id, nil
}

func (s *Store) GetResource(ctx context.Context, id uuid.UUID) (*domain.Resource, error) {
	const op = "postgres.Store.GetResource"

	var r domain.Resource
	err := s.handle(ctx).QueryRow(ctx,
		`SELECT id, kind, name, currency, created_at
		 FROM resources WHERE id = $1`,
		id,
	).Scan(&r.ID, &r.Kind, &r.Name, &r.Currency, &r.CreatedAt)
	if err != nil {
		if errors.Is(wrapDBErr(op, err), repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, repository.ErrResourceNotFound)
		}
		return nil, wrapDBErr(op, err)
	}

	return &r, nil
}

// LockResource takes the row-level lock that serializes concurrent holders of
// the same resource. Only meaningful inside RunTx.
func (s *Store) LockResource(ctx context.Context, id uuid.UUID) error {
	const op = "postgres.Store.LockResource"

	var got uuid.UUID
	err := s.handle(ctx).QueryRow(ctx,
		`SELECT id FROM resources WHERE id = $1 FOR UPDATE`,
		id,
	).Scan(&got)
	if err != nil {
		if errors.Is(wrapDBErr(op, err), repository.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, repository.ErrResourceNotFound)
		}
		return wrapDBErr(op, err)
	}

	return nil
}

func (s *Store) CreatePricingUnit(ctx context.Context, u domain.PricingUnit) (uuid.UUID, error) {
	const op = "postgres.Store.CreatePricingUnit"

	id := uuid.New()
	if _, err := s.handle(ctx).Exec(ctx,
		`INSERT INTO pricing_units(
			id, resource_id, name, min_guests, max_guests, max_infants,
			max_rooms, price_from_cents, price_model, currency)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		id, u.ResourceID, u.Name, u.MinGuests, u.MaxGuests, u.MaxInfants,
		u.MaxRooms, u.PriceFromCents, u.PriceModel, u.Currency,
	); err != nil {
		return uuid.Nil, wrapDBErr(op, err)
	}

	return id, nil
}

const pricingUnitColumns = `id, resource_id, name, min_guests, max_guests,
	max_infants, max_rooms, price_from_cents, price_model, currency, created_at`

// GetPricingUnit resolves the pricing unit a request books against: the
// explicit one when unitID is set, otherwise the resource's first created.
func (s *Store) GetPricingUnit(
	ctx context.Context,
	resourceID uuid.UUID,
	unitID *uuid.UUID,
) (*domain.PricingUnit, error) {
	const op = "postgres.Store.GetPricingUnit"

	var (
		u   domain.PricingUnit
		err error
	)

	if unitID != nil {
		err = s.handle(ctx).QueryRow(ctx,
			`SELECT `+pricingUnitColumns+`
			 FROM pricing_units
			 WHERE id = $1 AND resource_id = $2`,
			*unitID, resourceID,
		).Scan(
			&u.ID, &u.ResourceID, &u.Name, &u.MinGuests, &u.MaxGuests,
			&u.MaxInfants, &u.MaxRooms, &u.PriceFromCents, &u.PriceModel,
			&u.Currency, &u.CreatedAt,
		)
	} else {
		err = s.handle(ctx).QueryRow(ctx,
			`SELECT `+pricingUnitColumns+`
			 FROM pricing_units
			 WHERE resource_id = $1
			 ORDER BY created_at, id
			 LIMIT 1`,
			resourceID,
		).Scan(
			&u.ID, &u.ResourceID, &u.Name, &u.MinGuests, &u.MaxGuests,
			&u.MaxInfants, &u.MaxRooms, &u.PriceFromCents, &u.PriceModel,
			&u.Currency, &u.CreatedAt,
		)
	}
	if err != nil {
		if errors.Is(wrapDBErr(op, err), repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, repository.ErrUnitNotFound)
		}
		return nil, wrapDBErr(op, err)
	}

	return &u, nil
}

func (s *Store) ListPricingUnits(ctx context.Context, resourceID uuid.UUID) ([]domain.PricingUnit, error) {
	const op = "postgres.Store.ListPricingUnits"

	rows, err := s.handle(ctx).Query(ctx,
		`SELECT `+pricingUnitColumns+`
		 FROM pricing_units
		 WHERE resource_id = $1
		 ORDER BY created_at, id`,
		resourceID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}
	defer rows.Close()

	var units []domain.PricingUnit
	for rows.Next() {
		var u domain.PricingUnit
		if err := rows.Scan(
			&u.ID, &u.ResourceID, &u.Name, &u.MinGuests, &u.MaxGuests,
			&u.MaxInfants, &u.MaxRooms, &u.PriceFromCents, &u.PriceModel,
			&u.Currency, &u.CreatedAt,
		); err != nil {
			return nil, wrapDBErr(op, err)
		}
		units = append(units, u)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return units, nil
}
