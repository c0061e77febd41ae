package domain

import "fmt"

// ConstraintError reports a request that violates a pricing unit's configured
// guest/room limits. The message is safe to return to the caller verbatim.
type ConstraintError struct {
	Message string
}

func (e *ConstraintError) Error() string {
	return e.Message
}

// ValidateGuests checks the requested party against the pricing unit's limits.
// A zero maximum leaves that dimension unconstrained.
func ValidateGuests(unit PricingUnit, g GuestCounts) error {
	total := g.TotalGuests()

	if total < unit.MinGuests {
		return &ConstraintError{
			Message: fmt.Sprintf("Minimum %d guest(s) required", unit.MinGuests),
		}
	}

	if unit.MaxGuests > 0 && total > unit.MaxGuests {
		return &ConstraintError{
			Message: fmt.Sprintf("Maximum %d guest(s) allowed", unit.MaxGuests),
		}
	}

	if unit.MaxInfants > 0 && g.Infants > unit.MaxInfants {
		return &ConstraintError{
			Message: fmt.Sprintf("Maximum %d infant(s) allowed", unit.MaxInfants),
		}
	}

	if unit.MaxRooms > 0 && g.Rooms > unit.MaxRooms {
		return &ConstraintError{
			Message: fmt.Sprintf("Maximum %d room(s) allowed", unit.MaxRooms),
		}
	}

	return nil
}
