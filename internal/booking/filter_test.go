package booking_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/catering-rentals/internal/booking"
	"github.com/iliyamo/catering-rentals/internal/model"
)

func sampleSet() []model.BookingWithDetails {
	mk := func(id string, s model.Status) model.BookingWithDetails {
		return model.BookingWithDetails{Rental: model.Rental{ID: id, Status: s}}
	}
	return []model.BookingWithDetails{
		mk("1", model.StatusActive),
		mk("2", model.StatusReturned),
		mk("3", model.StatusActive),
		mk("4", model.StatusOverdue),
	}
}

func TestFilter(t *testing.T) {
	all := sampleSet()

	require.Equal(t, all, booking.Filter(all, model.FilterAll))

	for _, s := range model.Statuses {
		got := booking.Filter(all, model.StatusFilter(s))
		for _, b := range got {
			require.Equal(t, s, b.Status)
		}
		want := 0
		for _, b := range all {
			if b.Status == s {
				want++
			}
		}
		require.Len(t, got, want, "status %s", s)
	}
}

func TestCount_UsesFullSet(t *testing.T) {
	all := sampleSet()
	c := booking.Count(all)

	require.Equal(t, booking.Counts{Total: 4, Active: 2, Overdue: 1, Returned: 1}, c)
	require.Equal(t, 4, c.Of(model.FilterAll))
	require.Equal(t, 2, c.Of(model.StatusFilter(model.StatusActive)))

	// counts do not change with the filter applied to the list
	filtered := booking.Filter(all, model.StatusFilter(model.StatusReturned))
	require.Len(t, filtered, 1)
	require.Equal(t, c, booking.Count(all))
}
