package domain

import (
	"time"

	"github.com/google/uuid"
)

type ResourceKind string

const (
	KindDestination ResourceKind = "destination"
	KindExperience  ResourceKind = "experience"
)

type PriceModel string

const (
	PricePerPerson  PriceModel = "per_person"
	PricePerRoom    PriceModel = "per_room"
	PricePerBooking PriceModel = "per_booking"
)

type BookingStatus string

const (
	StatusHold      BookingStatus = "hold"
	StatusConfirmed BookingStatus = "confirmed"
	StatusExpired   BookingStatus = "expired"
	StatusCancelled BookingStatus = "cancelled"
)

// Resource is a bookable destination or experience. It owns pricing units and
// per-date inventory, and its row is the mutual-exclusion anchor for holds.
type Resource struct {
	ID        uuid.UUID
	Kind      ResourceKind
	Name      string
	Currency  string
	CreatedAt time.Time
}

// PricingUnit is a purchasable configuration of a resource (a package or
// duration option) with its own price and guest/room limits.
type PricingUnit struct {
	ID             uuid.UUID
	ResourceID     uuid.UUID
	Name           string
	MinGuests      int
	MaxGuests      int // zero maximums mean no limit
	MaxInfants     int
	MaxRooms       int
	PriceFromCents int64
	PriceModel     PriceModel
	Currency       string
	CreatedAt      time.Time
}

// CapacityEntry caps the units bookable for one pricing unit on one date.
// Dates without an entry are unconstrained.
type CapacityEntry struct {
	PricingUnitID uuid.UUID
	Date          time.Time
	Capacity      int
}

type BlockedDate struct {
	ResourceID uuid.UUID
	Date       time.Time
	Reason     string
}

type GuestCounts struct {
	Adults   int
	Children int
	Infants  int
	Rooms    int
}

// TotalGuests counts the guests that price and capacity care about.
// Infants are limited separately and never count toward guest totals.
func (g GuestCounts) TotalGuests() int {
	return g.Adults + g.Children
}

// Units is the capacity-consuming quantity per night: room count, minimum 1.
// Day experiences carry rooms=0 and consume exactly one unit.
func (g GuestCounts) Units() int {
	if g.Rooms > 1 {
		return g.Rooms
	}
	return 1
}

// Booking is a reservation in any lifecycle state. While Status is hold the
// booking carries a hashed token and an expiry; once the expiry passes the
// booking stops counting against capacity even before a sweeper flips Status.
type Booking struct {
	ID            uuid.UUID
	ResourceID    uuid.UUID
	PricingUnitID uuid.UUID
	FromDate      time.Time
	ToDate        time.Time
	Nights        int
	Adults        int
	Children      int
	Infants       int
	Rooms         int
	UnitsBooked   int
	TotalCents    int64
	Currency      string
	Status        BookingStatus
	HoldTokenHash string
	HoldExpiresAt *time.Time
	PaymentRef    string
	CreatedAt     time.Time
}

// ActiveAt reports whether the booking consumes capacity at the given instant.
func (b *Booking) ActiveAt(now time.Time) bool {
	switch b.Status {
	case StatusConfirmed:
		return true
	case StatusHold:
		return b.HoldExpiresAt != nil && b.HoldExpiresAt.After(now)
	default:
		return false
	}
}
