package wizard_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/catering-rentals/internal/wizard"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	st := wizard.NewMemoryStore(time.Hour)
	now := today
	st.Now = func() time.Time { return now }

	_, err := st.Get(ctx, "w1")
	require.ErrorIs(t, err, wizard.ErrNotFound)

	w := wizard.NewEdit("w1", editBooking(), today)
	require.NoError(t, st.Put(ctx, w))

	got, err := st.Get(ctx, "w1")
	require.NoError(t, err)
	require.Equal(t, w.Details, got.Details)
	require.Equal(t, itemIDs(w.Selection.Items()), itemIDs(got.Selection.Items()))
	require.Equal(t, w.Selection.TotalPrice().String(), got.Selection.TotalPrice().String())

	// the store hands out copies
	got.Details.Notes = "changed"
	again, err := st.Get(ctx, "w1")
	require.NoError(t, err)
	require.Equal(t, "deliver by 6", again.Details.Notes)

	now = now.Add(2 * time.Hour)
	_, err = st.Get(ctx, "w1")
	require.ErrorIs(t, err, wizard.ErrNotFound)

	now = today
	require.NoError(t, st.Put(ctx, w))
	require.NoError(t, st.Delete(ctx, "w1"))
	_, err = st.Get(ctx, "w1")
	require.ErrorIs(t, err, wizard.ErrNotFound)
}
