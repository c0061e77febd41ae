package domain

import (
	"errors"
	"testing"
)

func TestValidateGuests(t *testing.T) {
	t.Parallel()

	unit := PricingUnit{
		MinGuests:  2,
		MaxGuests:  6,
		MaxInfants: 1,
		MaxRooms:   3,
	}

	tests := []struct {
		name    string
		guests  GuestCounts
		wantMsg string
	}{
		{"fits", GuestCounts{Adults: 2, Children: 2, Infants: 1, Rooms: 2}, ""},
		{"below minimum", GuestCounts{Adults: 1}, "Minimum 2 guest(s) required"},
		{"above maximum", GuestCounts{Adults: 5, Children: 2}, "Maximum 6 guest(s) allowed"},
		{"too many infants", GuestCounts{Adults: 2, Infants: 2}, "Maximum 1 infant(s) allowed"},
		{"too many rooms", GuestCounts{Adults: 2, Rooms: 4}, "Maximum 3 room(s) allowed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGuests(unit, tt.guests)
			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			var cerr *ConstraintError
			if !errors.As(err, &cerr) {
				t.Fatalf("expected ConstraintError, got %v", err)
			}
			if cerr.Message != tt.wantMsg {
				t.Fatalf("expected %q, got %q", tt.wantMsg, cerr.Message)
			}
		})
	}

	t.Run("infants do not count toward guest totals", func(t *testing.T) {
		// 2 adults + 1 infant against max 2 guests passes.
		u := PricingUnit{MaxGuests: 2, MaxInfants: 1}
		if err := ValidateGuests(u, GuestCounts{Adults: 2, Infants: 1}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("zero limits mean unlimited", func(t *testing.T) {
		u := PricingUnit{} // no limits configured
		if err := ValidateGuests(u, GuestCounts{Adults: 40, Infants: 3, Rooms: 20}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})
}

func TestGuestCountsUnits(t *testing.T) {
	t.Parallel()

	if got := (GuestCounts{Adults: 2}).Units(); got != 1 {
		t.Fatalf("expected 1 unit for rooms=0, got %d", got)
	}
	if got := (GuestCounts{Adults: 2, Rooms: 1}).Units(); got != 1 {
		t.Fatalf("expected 1 unit for rooms=1, got %d", got)
	}
	if got := (GuestCounts{Adults: 6, Rooms: 3}).Units(); got != 3 {
		t.Fatalf("expected 3 units for rooms=3, got %d", got)
	}
}
