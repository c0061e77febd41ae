package availability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jambotours/jambo-go/internal/clock"
	"github.com/jambotours/jambo-go/internal/domain"
	"github.com/jambotours/jambo-go/internal/repository"
)

// fakeRepo is an in-memory Repository. InTx serializes callers with txMu,
// standing in for the resource row lock; mu guards the state itself so
// lock-free advisory reads stay race-safe.
type fakeRepo struct {
	txMu sync.Mutex

	mu       sync.Mutex
	resource *domain.Resource
	units    []domain.PricingUnit
	capacity map[time.Time]int
	blocked  map[time.Time]string
	bookings []*domain.Booking

	onLock func() // runs inside the transaction, after LockResource
}

func newFakeRepo(resource *domain.Resource, units []domain.PricingUnit) *fakeRepo {
	return &fakeRepo{
		resource: resource,
		units:    units,
		capacity: make(map[time.Time]int),
		blocked:  make(map[time.Time]string),
	}
}

func (f *fakeRepo) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.txMu.Lock()
	defer f.txMu.Unlock()
	return fn(ctx)
}

func (f *fakeRepo) GetResource(_ context.Context, id uuid.UUID) (*domain.Resource, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.resource == nil || f.resource.ID != id {
		return nil, repository.ErrResourceNotFound
	}
	r := *f.resource
	return &r, nil
}

func (f *fakeRepo) GetPricingUnit(_ context.Context, resourceID uuid.UUID, unitID *uuid.UUID) (*domain.PricingUnit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.units {
		if u.ResourceID != resourceID {
			continue
		}
		if unitID == nil || u.ID == *unitID {
			unit := u
			return &unit, nil
		}
	}
	return nil, repository.ErrUnitNotFound
}

func (f *fakeRepo) LockResource(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	missing := f.resource == nil || f.resource.ID != id
	hook := f.onLock
	f.mu.Unlock()

	if missing {
		return repository.ErrResourceNotFound
	}
	if hook != nil {
		hook()
	}
	return nil
}

func (f *fakeRepo) CapacityByDate(_ context.Context, _ uuid.UUID, _ *uuid.UUID, from, to time.Time) (map[time.Time]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[time.Time]int)
	for d, c := range f.capacity {
		if !d.Before(from) && d.Before(to) {
			out[d] = c
		}
	}
	return out, nil
}

func (f *fakeRepo) BlockedDates(_ context.Context, _ uuid.UUID, from, to time.Time) (map[time.Time]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[time.Time]string)
	for d, reason := range f.blocked {
		if !d.Before(from) && d.Before(to) {
			out[d] = reason
		}
	}
	return out, nil
}

func (f *fakeRepo) ReservedUnitsByDate(_ context.Context, resourceID uuid.UUID, from, to time.Time, now time.Time) (map[time.Time]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[time.Time]int)
	for _, b := range f.bookings {
		if b.ResourceID != resourceID || !b.ActiveAt(now) {
			continue
		}
		for _, night := range domain.EachNight(b.FromDate, b.ToDate) {
			if night.Before(from) || !night.Before(to) {
				continue
			}
			out[night] += b.UnitsBooked
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateBooking(_ context.Context, b *domain.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *b
	f.bookings = append(f.bookings, &cp)
	return nil
}

func (f *fakeRepo) addBooking(b *domain.Booking) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookings = append(f.bookings, b)
}

func (f *fakeRepo) bookingCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bookings)
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDateOnly(s)
	if err != nil {
		t.Fatalf("bad fixture date %q: %v", s, err)
	}
	return d
}

func TestService_Check(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	ttl := 15 * time.Minute

	resourceID := uuid.New()
	unitID := uuid.New()

	makeSvc := func() (*Service, *fakeRepo) {
		repo := newFakeRepo(
			&domain.Resource{ID: resourceID, Kind: domain.KindDestination, Name: "Diani Beach Lodge"},
			[]domain.PricingUnit{{
				ID:             unitID,
				ResourceID:     resourceID,
				Name:           "Standard",
				MinGuests:      1,
				MaxGuests:      6,
				MaxInfants:     2,
				MaxRooms:       3,
				PriceFromCents: 10_000,
				PriceModel:     domain.PricePerPerson,
				Currency:       "KES",
			}},
		)
		svc := New(repo, nil, nil, nil, clock.NewFixed(now), Config{HoldTTL: ttl})
		return svc, repo
	}

	baseInput := func() CheckInput {
		return CheckInput{
			ResourceID: resourceID,
			From:       day(t, "2026-07-01"),
			To:         day(t, "2026-07-04"),
			Guests:     domain.GuestCounts{Adults: 2},
		}
	}

	t.Run("available stay prices per person per night", func(t *testing.T) {
		svc, _ := makeSvc()

		res, err := svc.Check(context.Background(), baseInput())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !res.Available {
			t.Fatalf("expected available, got message %q", res.Message)
		}
		if res.Nights != 3 {
			t.Fatalf("expected 3 nights, got %d", res.Nights)
		}
		// 10000 * 2 guests * 3 nights
		if res.TotalCents != 60_000 {
			t.Fatalf("expected total 60000, got %d", res.TotalCents)
		}
		if res.Currency != "KES" {
			t.Fatalf("expected KES, got %q", res.Currency)
		}
	})

	t.Run("zero-night range is invalid", func(t *testing.T) {
		svc, _ := makeSvc()

		in := baseInput()
		in.To = in.From
		if _, err := svc.Check(context.Background(), in); !errors.Is(err, ErrInvalidRange) {
			t.Fatalf("expected ErrInvalidRange, got %v", err)
		}
	})

	t.Run("unknown resource", func(t *testing.T) {
		svc, _ := makeSvc()

		in := baseInput()
		in.ResourceID = uuid.New()
		if _, err := svc.Check(context.Background(), in); !errors.Is(err, ErrResourceNotFound) {
			t.Fatalf("expected ErrResourceNotFound, got %v", err)
		}
	})

	t.Run("constraint violation surfaces verbatim", func(t *testing.T) {
		svc, _ := makeSvc()

		in := baseInput()
		in.Guests = domain.GuestCounts{Adults: 7}
		_, err := svc.Check(context.Background(), in)
		var cerr *domain.ConstraintError
		if !errors.As(err, &cerr) {
			t.Fatalf("expected ConstraintError, got %v", err)
		}
		if cerr.Message != "Maximum 6 guest(s) allowed" {
			t.Fatalf("unexpected message %q", cerr.Message)
		}
	})

	t.Run("blocked date vetoes the stay", func(t *testing.T) {
		svc, repo := makeSvc()
		repo.blocked[day(t, "2026-07-02")] = "maintenance"

		res, err := svc.Check(context.Background(), baseInput())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if res.Available {
			t.Fatalf("expected unavailable")
		}
		if res.Message != "Date 2026-07-02 is blocked: maintenance" {
			t.Fatalf("unexpected message %q", res.Message)
		}
	})

	t.Run("capacity shortfall reports remaining units", func(t *testing.T) {
		svc, repo := makeSvc()
		repo.capacity[day(t, "2026-07-02")] = 2
		repo.bookings = append(repo.bookings, &domain.Booking{
			ID:          uuid.New(),
			ResourceID:  resourceID,
			FromDate:    day(t, "2026-07-02"),
			ToDate:      day(t, "2026-07-03"),
			UnitsBooked: 1,
			Status:      domain.StatusConfirmed,
		})

		in := baseInput()
		in.Guests = domain.GuestCounts{Adults: 4, Rooms: 2}

		res, err := svc.Check(context.Background(), in)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if res.Available {
			t.Fatalf("expected unavailable")
		}
		if res.Message != "Only 1 unit(s) left on 2026-07-02" {
			t.Fatalf("unexpected message %q", res.Message)
		}
		if res.Remaining == nil || *res.Remaining != 1 {
			t.Fatalf("expected remaining 1, got %v", res.Remaining)
		}
	})

	t.Run("fully booked night", func(t *testing.T) {
		svc, repo := makeSvc()
		repo.capacity[day(t, "2026-07-01")] = 1
		repo.bookings = append(repo.bookings, &domain.Booking{
			ID:          uuid.New(),
			ResourceID:  resourceID,
			FromDate:    day(t, "2026-07-01"),
			ToDate:      day(t, "2026-07-02"),
			UnitsBooked: 1,
			Status:      domain.StatusConfirmed,
		})

		res, err := svc.Check(context.Background(), baseInput())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if res.Available {
			t.Fatalf("expected unavailable")
		}
		if res.Message != "No availability on 2026-07-01" {
			t.Fatalf("unexpected message %q", res.Message)
		}
		if res.Remaining == nil || *res.Remaining != 0 {
			t.Fatalf("expected remaining 0, got %v", res.Remaining)
		}
	})

	t.Run("expired hold frees capacity", func(t *testing.T) {
		svc, repo := makeSvc()
		repo.capacity[day(t, "2026-07-01")] = 1
		lapsed := now.Add(-time.Minute)
		repo.bookings = append(repo.bookings, &domain.Booking{
			ID:            uuid.New(),
			ResourceID:    resourceID,
			FromDate:      day(t, "2026-07-01"),
			ToDate:        day(t, "2026-07-04"),
			UnitsBooked:   1,
			Status:        domain.StatusHold,
			HoldExpiresAt: &lapsed,
		})

		res, err := svc.Check(context.Background(), baseInput())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !res.Available {
			t.Fatalf("expected available, got %q", res.Message)
		}
	})

	t.Run("createHold persists a hold with hashed token", func(t *testing.T) {
		svc, repo := makeSvc()

		in := baseInput()
		in.CreateHold = true

		res, err := svc.Check(context.Background(), in)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !res.Available {
			t.Fatalf("expected available, got %q", res.Message)
		}
		if res.HoldToken == "" {
			t.Fatalf("expected plaintext token in the response")
		}
		if res.HoldExpiresAt == nil || !res.HoldExpiresAt.Equal(now.Add(ttl)) {
			t.Fatalf("expected expiry %v, got %v", now.Add(ttl), res.HoldExpiresAt)
		}
		if len(repo.bookings) != 1 {
			t.Fatalf("expected 1 booking, got %d", len(repo.bookings))
		}

		b := repo.bookings[0]
		if b.ID != res.BookingID {
			t.Fatalf("booking id mismatch")
		}
		if b.Status != domain.StatusHold {
			t.Fatalf("expected hold status, got %s", b.Status)
		}
		if b.HoldTokenHash == res.HoldToken {
			t.Fatalf("plaintext token must never be persisted")
		}
		if b.HoldTokenHash != domain.HashHoldToken(res.HoldToken) {
			t.Fatalf("stored hash must match the issued token")
		}
		if b.UnitsBooked != 1 {
			t.Fatalf("expected 1 unit booked, got %d", b.UnitsBooked)
		}
		if b.TotalCents != res.TotalCents {
			t.Fatalf("booking total mismatch")
		}
		if !b.CreatedAt.Equal(now) {
			t.Fatalf("expected created_at %v from the clock, got %v", now, b.CreatedAt)
		}
	})

	t.Run("plain check never writes", func(t *testing.T) {
		svc, repo := makeSvc()

		if _, err := svc.Check(context.Background(), baseInput()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(repo.bookings) != 0 {
			t.Fatalf("expected no bookings, got %d", len(repo.bookings))
		}
	})

	t.Run("locked re-check catches a hold committed first", func(t *testing.T) {
		svc, repo := makeSvc()
		repo.capacity[day(t, "2026-07-01")] = 1

		// A competitor's hold lands between the advisory pass and the lock.
		fresh := now.Add(ttl)
		repo.onLock = func() {
			repo.addBooking(&domain.Booking{
				ID:            uuid.New(),
				ResourceID:    resourceID,
				FromDate:      day(t, "2026-07-01"),
				ToDate:        day(t, "2026-07-04"),
				UnitsBooked:   1,
				Status:        domain.StatusHold,
				HoldExpiresAt: &fresh,
			})
		}

		in := baseInput()
		in.CreateHold = true

		res, err := svc.Check(context.Background(), in)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if res.Available {
			t.Fatalf("expected unavailable after losing the race")
		}
		if res.BookingID != uuid.Nil || res.HoldToken != "" {
			t.Fatalf("loser must not receive a hold")
		}
		if len(repo.bookings) != 1 {
			t.Fatalf("expected only the competitor's booking, got %d", len(repo.bookings))
		}
	})

	t.Run("concurrent holds for the last unit admit exactly one", func(t *testing.T) {
		svc, repo := makeSvc()
		repo.capacity[day(t, "2026-07-01")] = 1
		repo.capacity[day(t, "2026-07-02")] = 1
		repo.capacity[day(t, "2026-07-03")] = 1

		const callers = 8
		results := make([]*CheckResult, callers)
		errs := make([]error, callers)

		var wg sync.WaitGroup
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				in := baseInput()
				in.CreateHold = true
				results[i], errs[i] = svc.Check(context.Background(), in)
			}(i)
		}
		wg.Wait()

		var wins int
		for i := 0; i < callers; i++ {
			if errs[i] != nil {
				t.Fatalf("caller %d: unexpected error %v", i, errs[i])
			}
			if results[i].Available {
				wins++
			}
		}
		if wins != 1 {
			t.Fatalf("expected exactly 1 winner, got %d", wins)
		}
		if repo.bookingCount() != 1 {
			t.Fatalf("expected exactly 1 booking, got %d", repo.bookingCount())
		}
	})
}
