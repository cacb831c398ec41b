package wizard_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/catering-rentals/internal/wizard"
)

func TestPicker_SeedAndStep(t *testing.T) {
	s := wizard.NewSelection(sel("chr", 3, 50))

	p := wizard.Picker{}.Open("chr", s)
	require.True(t, p.IsOpen())
	require.Equal(t, "3", p.Input)

	p = wizard.Picker{}.Open("tbl", s)
	require.Equal(t, "0", p.Input)

	p = p.Decrement()
	require.Equal(t, "0", p.Input, "decrement below zero is a no-op")
	p = p.Increment().Increment()
	require.Equal(t, 2, p.Value())
	p = p.Decrement()
	require.Equal(t, 1, p.Value())
}

func TestPicker_SetInput(t *testing.T) {
	p := wizard.Picker{ActiveID: "chr"}
	require.Equal(t, "7", p.SetInput("007").Input)
	require.Equal(t, "0", p.SetInput("0").Input)
	require.Equal(t, "0", p.SetInput("000").Input)
	require.Equal(t, "12", p.SetInput("1a2").Input)
	require.Equal(t, "", p.SetInput("").Input)
	require.Equal(t, 0, p.SetInput("").Value())
}

func TestPicker_ConfirmAddsWithCatalogPrice(t *testing.T) {
	cat := catalog()
	p := wizard.Picker{}.Open("chr", wizard.NewSelection()).SetInput("4")

	p, s := p.Confirm(wizard.NewSelection(), cat, cat)
	got, ok := s.Get("chr")
	require.True(t, ok)
	require.Equal(t, 4, got.Quantity)
	require.Equal(t, "50", got.Price.String())
	require.Equal(t, "Chair", got.Name)

	// advances to the next visible item
	require.Equal(t, "plt", p.ActiveID)
	require.Equal(t, "0", p.Input)
}

func TestPicker_ConfirmZeroRemoves(t *testing.T) {
	cat := catalog()
	s := wizard.NewSelection(sel("chr", 2, 50))
	p := wizard.Picker{}.Open("chr", s).SetInput("0")

	_, s = p.Confirm(s, cat, cat)
	_, ok := s.Get("chr")
	require.False(t, ok)
}

func TestPicker_ConfirmFollowsFilteredOrder(t *testing.T) {
	cat := catalog()
	visible := wizard.FilterItems(cat, "", "Furniture")

	p := wizard.Picker{}.Open("tbl", wizard.NewSelection()).SetInput("1")
	p, s := p.Confirm(wizard.NewSelection(), cat, visible)
	require.Equal(t, "chr", p.ActiveID)

	p, s = p.SetInput("2").Confirm(s, cat, visible)
	require.False(t, p.IsOpen(), "last filtered item closes the picker")
	require.Equal(t, 3, s.TotalQuantity())
}

func TestPicker_DeleteAndClose(t *testing.T) {
	s := wizard.NewSelection(sel("chr", 2, 50))
	p := wizard.Picker{}.Open("chr", s).SetInput("9")

	closed := p.Close()
	require.False(t, closed.IsOpen())

	p, s = p.Delete(s)
	require.False(t, p.IsOpen())
	require.Equal(t, 0, s.Len())
}

func TestPicker_ClampsLargeQuantities(t *testing.T) {
	cat := catalog()
	s := wizard.NewSelection(sel("chr", 2, 50))
	p := wizard.Picker{}.Open("chr", s).SetInput("99999999999999999999")
	require.Equal(t, "99999", p.Input)
	require.Equal(t, wizard.MaxQuantity, p.Value())

	_, s = p.Confirm(s, cat, cat)
	got, ok := s.Get("chr")
	require.True(t, ok, "an oversized value must not remove the item")
	require.Equal(t, wizard.MaxQuantity, got.Quantity)

	p = wizard.Picker{ActiveID: "chr"}.SetInput("9223372036854775807").Increment()
	require.Equal(t, "99999", p.Input)

	p = wizard.Picker{ActiveID: "chr", Input: "9223372036854775807"}
	require.Equal(t, wizard.MaxQuantity, p.Value())
	require.Equal(t, "99999", p.Increment().Input)
	require.Equal(t, "99998", p.Decrement().Input)
}
