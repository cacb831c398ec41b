package wizard

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// SelectedItem is one chosen catalog item.  Price is the catalog price at
// the moment the quantity was confirmed and becomes price_at_booking on
// submit.
type SelectedItem struct {
	ItemID   string          `json:"item_id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// LineTotal is Quantity × Price.
func (s SelectedItem) LineTotal() decimal.Decimal {
	return s.Price.Mul(decimal.NewFromInt(int64(s.Quantity)))
}

// Selection maps item id to SelectedItem and remembers insertion order.
// An item that is absent has quantity 0.  Selection values are never
// changed in place: With and Without return a new Selection.
type Selection struct {
	order []string
	items map[string]SelectedItem
}

// NewSelection builds a selection from items in order.  Later entries for
// the same item id replace earlier ones.
func NewSelection(items ...SelectedItem) Selection {
	s := Selection{}
	for _, it := range items {
		s = s.With(it)
	}
	return s
}

// Len is the number of selected items.
func (s Selection) Len() int { return len(s.order) }

// Get returns the entry for itemID.
func (s Selection) Get(itemID string) (SelectedItem, bool) {
	it, ok := s.items[itemID]
	return it, ok
}

// Quantity returns the selected quantity of itemID, 0 if not selected.
func (s Selection) Quantity(itemID string) int {
	return s.items[itemID].Quantity
}

// With returns a copy of s with it upserted.  An item already present
// keeps its position.
func (s Selection) With(it SelectedItem) Selection {
	items := make(map[string]SelectedItem, len(s.items)+1)
	for k, v := range s.items {
		items[k] = v
	}
	order := make([]string, len(s.order), len(s.order)+1)
	copy(order, s.order)
	if _, ok := items[it.ItemID]; !ok {
		order = append(order, it.ItemID)
	}
	items[it.ItemID] = it
	return Selection{order: order, items: items}
}

// Without returns a copy of s with itemID removed.
func (s Selection) Without(itemID string) Selection {
	if _, ok := s.items[itemID]; !ok {
		return s
	}
	items := make(map[string]SelectedItem, len(s.items))
	order := make([]string, 0, len(s.order))
	for _, id := range s.order {
		if id == itemID {
			continue
		}
		order = append(order, id)
		items[id] = s.items[id]
	}
	return Selection{order: order, items: items}
}

// Items returns the selected items in insertion order.
func (s Selection) Items() []SelectedItem {
	out := make([]SelectedItem, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out
}

// TotalQuantity sums the quantities of all selected items.
func (s Selection) TotalQuantity() int {
	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

// TotalPrice sums quantity × price over the selection.
func (s Selection) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, id := range s.order {
		total = total.Add(s.items[id].LineTotal())
	}
	return total
}

// MarshalJSON encodes the selection as an ordered array.
func (s Selection) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Items())
}

// UnmarshalJSON decodes an array produced by MarshalJSON.
func (s *Selection) UnmarshalJSON(b []byte) error {
	var items []SelectedItem
	if err := json.Unmarshal(b, &items); err != nil {
		return err
	}
	*s = NewSelection(items...)
	return nil
}
