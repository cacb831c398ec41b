package wizard_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/catering-rentals/internal/wizard"
)

func sel(id string, qty int, price int64) wizard.SelectedItem {
	return wizard.SelectedItem{ItemID: id, Name: id, Price: decimal.NewFromInt(price), Quantity: qty}
}

func TestSelection_ImmutableUpdates(t *testing.T) {
	empty := wizard.NewSelection()
	one := empty.With(sel("chair", 2, 50))
	two := one.With(sel("table", 1, 300))

	require.Equal(t, 0, empty.Len())
	require.Equal(t, 1, one.Len())
	require.Equal(t, 2, two.Len())

	updated := two.With(sel("chair", 4, 50))
	require.Equal(t, 2, two.Quantity("chair"), "With must not touch the receiver")
	require.Equal(t, 4, updated.Quantity("chair"))
	require.Equal(t, []string{"chair", "table"}, itemIDs(updated.Items()), "upsert keeps position")

	removed := updated.Without("chair")
	require.Equal(t, 0, removed.Quantity("chair"))
	require.Equal(t, 2, updated.Len())
	require.Equal(t, []string{"table"}, itemIDs(removed.Items()))
	require.Equal(t, removed, removed.Without("missing"))
}

func TestSelection_Totals(t *testing.T) {
	s := wizard.NewSelection(sel("chair", 2, 50), sel("table", 1, 300))
	require.Equal(t, 3, s.TotalQuantity())
	require.True(t, decimal.NewFromInt(400).Equal(s.TotalPrice()))
	require.Equal(t, 0, wizard.NewSelection().TotalQuantity())
}

func TestSelection_JSONKeepsOrder(t *testing.T) {
	s := wizard.NewSelection(sel("b", 1, 10), sel("a", 2, 20))
	raw, err := json.Marshal(s)
	require.NoError(t, err)

	var back wizard.Selection
	require.NoError(t, json.Unmarshal(raw, &back))
	require.Equal(t, []string{"b", "a"}, itemIDs(back.Items()))
	require.Equal(t, 2, back.Quantity("a"))
}

func itemIDs(items []wizard.SelectedItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ItemID)
	}
	return out
}
