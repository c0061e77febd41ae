package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseDateOnly(t *testing.T) {
	t.Parallel()

	t.Run("parses as midnight UTC", func(t *testing.T) {
		got, err := ParseDateOnly("2026-03-15")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		for _, s := range []string{"", "2026-3-15", "15-03-2026", "2026-03-15T00:00:00Z", "tomorrow"} {
			if _, err := ParseDateOnly(s); !errors.Is(err, ErrInvalidDate) {
				t.Fatalf("ParseDateOnly(%q): expected ErrInvalidDate, got %v", s, err)
			}
		}
	})
}

func TestDay(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+5", 5*60*60)
	in := time.Date(2026, 3, 16, 2, 30, 0, 0, loc) // 2026-03-15 21:30 UTC
	got := Day(in)
	want := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	// Normalized days must work as map keys.
	m := map[time.Time]int{Day(in): 1}
	if m[want] != 1 {
		t.Fatalf("expected normalized day to hit the same map key")
	}
}

func TestNightsBetween(t *testing.T) {
	t.Parallel()

	day := func(s string) time.Time {
		d, err := ParseDateOnly(s)
		if err != nil {
			t.Fatalf("bad fixture date %q: %v", s, err)
		}
		return d
	}

	tests := []struct {
		name     string
		from, to time.Time
		want     int
	}{
		{"three nights", day("2026-07-01"), day("2026-07-04"), 3},
		{"single night", day("2026-07-01"), day("2026-07-02"), 1},
		{"same day", day("2026-07-01"), day("2026-07-01"), 0},
		{"inverted", day("2026-07-04"), day("2026-07-01"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NightsBetween(tt.from, tt.to); got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestEachNight(t *testing.T) {
	t.Parallel()

	from, _ := ParseDateOnly("2026-07-01")
	to, _ := ParseDateOnly("2026-07-04")

	nights := EachNight(from, to)
	if len(nights) != 3 {
		t.Fatalf("expected 3 nights, got %d", len(nights))
	}
	if !nights[0].Equal(from) {
		t.Fatalf("expected first night %v, got %v", from, nights[0])
	}
	// Checkout date is excluded.
	last := nights[len(nights)-1]
	if last.Equal(to) {
		t.Fatalf("checkout date must not be a night")
	}

	if got := EachNight(to, from); got != nil {
		t.Fatalf("expected nil for inverted range, got %v", got)
	}
	if got := EachNight(from, from); got != nil {
		t.Fatalf("expected nil for empty range, got %v", got)
	}
}

func TestRangesOverlap(t *testing.T) {
	t.Parallel()

	d := func(s string) time.Time {
		v, _ := ParseDateOnly(s)
		return v
	}

	// Back-to-back stays share a checkout/checkin date but no night.
	if RangesOverlap(d("2026-07-01"), d("2026-07-04"), d("2026-07-04"), d("2026-07-07")) {
		t.Fatalf("adjacent ranges must not overlap")
	}
	if !RangesOverlap(d("2026-07-01"), d("2026-07-04"), d("2026-07-03"), d("2026-07-07")) {
		t.Fatalf("expected overlapping ranges to overlap")
	}
	if !RangesOverlap(d("2026-07-01"), d("2026-07-10"), d("2026-07-03"), d("2026-07-04")) {
		t.Fatalf("expected contained range to overlap")
	}
}
