package httpgin

import (
	"time"

	"github.com/jambotours/jambo-go/internal/domain"
)

type GuestsInput struct {
	Adults   int `json:"adults" binding:"gte=0"`
	Children int `json:"children" binding:"gte=0"`
	Infants  int `json:"infants" binding:"gte=0"`
	Rooms    int `json:"rooms" binding:"gte=0"`
}

type CheckRequest struct {
	DestinationID    string       `json:"destinationId"`
	ExperienceID     string       `json:"experienceId"`
	DurationOptionID string       `json:"durationOptionId"`
	From             string       `json:"from" binding:"required"`
	To               string       `json:"to" binding:"required"`
	Guests           *GuestsInput `json:"guests" binding:"required"`
	CreateHold       bool         `json:"createHold"`
}

type CheckResponse struct {
	Available      bool   `json:"available"`
	Nights         int    `json:"nights"`
	TotalPrice     int64  `json:"totalPrice"` // minor units
	Currency       string `json:"currency"`
	Message        string `json:"message"`
	RemainingUnits *int   `json:"remainingUnits,omitempty"`
	BookingID      string `json:"bookingId,omitempty"`
	HoldToken      string `json:"holdToken,omitempty"`
	HoldExpiresAt  string `json:"holdExpiresAt,omitempty"`
}

type PaymentInfo struct {
	Reference string `json:"reference"`
	Method    string `json:"method"`
}

type ConfirmRequest struct {
	BookingID   string       `json:"bookingId"`
	HoldToken   string       `json:"holdToken"`
	PaymentInfo *PaymentInfo `json:"paymentInfo"`
}

type BookingView struct {
	ID               string `json:"id"`
	ResourceID       string `json:"resourceId"`
	DurationOptionID string `json:"durationOptionId"`
	From             string `json:"from"`
	To               string `json:"to"`
	Nights           int    `json:"nights"`
	Adults           int    `json:"adults"`
	Children         int    `json:"children"`
	Infants          int    `json:"infants"`
	Rooms            int    `json:"rooms"`
	UnitsBooked      int    `json:"unitsBooked"`
	TotalPrice       int64  `json:"totalPrice"`
	Currency         string `json:"currency"`
	Status           string `json:"status"`
	HoldExpiresAt    string `json:"holdExpiresAt,omitempty"`
	CreatedAt        string `json:"createdAt"`
}

func toBookingView(b *domain.Booking) BookingView {
	v := BookingView{
		ID:               b.ID.String(),
		ResourceID:       b.ResourceID.String(),
		DurationOptionID: b.PricingUnitID.String(),
		From:             domain.FormatDay(b.FromDate),
		To:               domain.FormatDay(b.ToDate),
		Nights:           b.Nights,
		Adults:           b.Adults,
		Children:         b.Children,
		Infants:          b.Infants,
		Rooms:            b.Rooms,
		UnitsBooked:      b.UnitsBooked,
		TotalPrice:       b.TotalCents,
		Currency:         b.Currency,
		Status:           string(b.Status),
		CreatedAt:        b.CreatedAt.Format(time.RFC3339),
	}
	if b.HoldExpiresAt != nil {
		v.HoldExpiresAt = b.HoldExpiresAt.Format(time.RFC3339)
	}
	return v
}

type ConfirmResponse struct {
	Success bool        `json:"success"`
	Booking BookingView `json:"booking"`
}

type ReleaseRequest struct {
	BookingID string `json:"bookingId"`
	HoldToken string `json:"holdToken"`
}

type ReleaseResponse struct {
	Released bool `json:"released"`
}

type CapacityItem struct {
	Date     string `json:"date" binding:"required"`
	Capacity int    `json:"capacity" binding:"gte=0"`
}

type UpsertInventoryRequest struct {
	DestinationID    string         `json:"destinationId"`
	ExperienceID     string         `json:"experienceId"`
	DurationOptionID string         `json:"durationOptionId"`
	Items            []CapacityItem `json:"items" binding:"required,min=1,dive"`
}

type GenerateRangeRequest struct {
	DestinationID string `json:"destinationId"`
	ExperienceID  string `json:"experienceId"`
	From          string `json:"from" binding:"required"`
	To            string `json:"to" binding:"required"`
	Capacity      int    `json:"capacity" binding:"gte=0"`
}

type InventoryResponse struct {
	OK      bool  `json:"ok"`
	Created int64 `json:"created"`
}

type CreateResourceRequest struct {
	Kind     string `json:"kind" binding:"required,oneof=destination experience"`
	Name     string `json:"name" binding:"required"`
	Currency string `json:"currency"`
}

type CreateResourceResponse struct {
	ResourceID string `json:"resourceId"`
}

type CreatePricingUnitRequest struct {
	Name       string `json:"name" binding:"required"`
	MinGuests  int    `json:"minGuests" binding:"gte=0"`
	MaxGuests  int    `json:"maxGuests" binding:"gte=0"`
	MaxInfants int    `json:"maxInfants" binding:"gte=0"`
	MaxRooms   int    `json:"maxRooms" binding:"gte=0"`
	PriceFrom  int64  `json:"priceFrom" binding:"gte=0"` // minor units
	PriceModel string `json:"priceModel" binding:"required,oneof=per_person per_room per_booking"`
	Currency   string `json:"currency"`
}

type CreatePricingUnitResponse struct {
	DurationOptionID string `json:"durationOptionId"`
}

type BlockDateRequest struct {
	DestinationID string `json:"destinationId"`
	ExperienceID  string `json:"experienceId"`
	Date          string `json:"date" binding:"required"`
	Reason        string `json:"reason"`
}

type UnblockDateRequest struct {
	DestinationID string `json:"destinationId"`
	ExperienceID  string `json:"experienceId"`
	Date          string `json:"date" binding:"required"`
}

type ExpireHoldsResponse struct {
	Expired int64 `json:"expired"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
