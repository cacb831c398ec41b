package wizard

import (
	"errors"
	"strconv"
	"strings"

	"github.com/iliyamo/catering-rentals/internal/model"
)

// MaxQuantity caps the picker field.  Longer input is clamped to it.
const MaxQuantity = 99999

// Picker is the quantity dialog for a single catalog item.  ActiveID is
// empty while the dialog is closed.  Input holds the raw text of the
// quantity field.
type Picker struct {
	ActiveID string `json:"active_id,omitempty"`
	Input    string `json:"input"`
}

// IsOpen reports whether an item is being edited.
func (p Picker) IsOpen() bool { return p.ActiveID != "" }

// Open starts editing itemID, seeding the field with its selected
// quantity.
func (p Picker) Open(itemID string, sel Selection) Picker {
	return Picker{ActiveID: itemID, Input: strconv.Itoa(sel.Quantity(itemID))}
}

// Value parses the field.  Text that is not a number counts as 0 and
// values above MaxQuantity count as MaxQuantity.
func (p Picker) Value() int {
	n, err := strconv.Atoi(p.Input)
	if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(p.Input, "-") {
		return MaxQuantity
	}
	if err != nil || n < 0 {
		return 0
	}
	return min(n, MaxQuantity)
}

// Increment adds one to the field value, stopping at MaxQuantity.
func (p Picker) Increment() Picker {
	p.Input = strconv.Itoa(min(p.Value()+1, MaxQuantity))
	return p
}

// Decrement subtracts one from the field value.  At 0 it does nothing.
func (p Picker) Decrement() Picker {
	if v := p.Value(); v > 0 {
		p.Input = strconv.Itoa(v - 1)
	}
	return p
}

// SetInput replaces the field text.  Non-digits are dropped and leading
// zeros are stripped ("007" becomes "7", "0" stays "0").  Values above
// MaxQuantity are clamped.
func (p Picker) SetInput(text string) Picker {
	var b strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	v := b.String()
	if len(v) > 1 && strings.HasPrefix(v, "0") {
		v = strings.TrimLeft(v, "0")
		if v == "" {
			v = "0"
		}
	}
	if n, err := strconv.Atoi(v); v != "" && (err != nil || n > MaxQuantity) {
		v = strconv.Itoa(MaxQuantity)
	}
	p.Input = v
	return p
}

// Confirm applies the field value to sel.  Zero removes the item; a
// positive value upserts it with its current catalog price.  The picker
// then moves on to the item after the confirmed one in visible, or
// closes when there is none.
func (p Picker) Confirm(sel Selection, catalog, visible []model.Item) (Picker, Selection) {
	if !p.IsOpen() {
		return p, sel
	}
	if q := p.Value(); q == 0 {
		sel = sel.Without(p.ActiveID)
	} else if it, ok := findItem(catalog, p.ActiveID); ok {
		sel = sel.With(SelectedItem{ItemID: it.ID, Name: it.Name, Price: it.Price, Quantity: q})
	}

	for i, it := range visible {
		if it.ID == p.ActiveID && i < len(visible)-1 {
			return p.Open(visible[i+1].ID, sel), sel
		}
	}
	return Picker{}, sel
}

// Delete removes the active item from sel, whatever its quantity, and
// closes the picker.
func (p Picker) Delete(sel Selection) (Picker, Selection) {
	if !p.IsOpen() {
		return p, sel
	}
	return Picker{}, sel.Without(p.ActiveID)
}

// Close discards the field without touching the selection.
func (p Picker) Close() Picker { return Picker{} }

func findItem(catalog []model.Item, id string) (model.Item, bool) {
	for _, it := range catalog {
		if it.ID == id {
			return it, true
		}
	}
	return model.Item{}, false
}
