package wizard_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/catering-rentals/internal/model"
	"github.com/iliyamo/catering-rentals/internal/wizard"
)

func item(id, name, category string, price int64) model.Item {
	it := model.Item{ID: id, Name: name, Price: decimal.NewFromInt(price), IsActive: true}
	if category != "" {
		it.Category = &category
	}
	return it
}

func catalog() []model.Item {
	return []model.Item{
		item("deg", "Degh", "Cooking", 500),
		item("tbl", "Table", "Furniture", 300),
		item("chr", "Chair", "Furniture", 50),
		item("plt", "Plate", "Serving", 5),
		item("mat", "Floor mat", "", 20),
	}
}

func TestFilterItems(t *testing.T) {
	cat := catalog()

	require.Len(t, wizard.FilterItems(cat, "", wizard.AllCategories), 5)
	require.Len(t, wizard.FilterItems(cat, "", ""), 5)

	got := wizard.FilterItems(cat, "CHA", wizard.AllCategories)
	require.Equal(t, []string{"chr"}, catalogIDs(got))

	got = wizard.FilterItems(cat, "", "Furniture")
	require.Equal(t, []string{"tbl", "chr"}, catalogIDs(got))

	got = wizard.FilterItems(cat, "a", "Furniture")
	require.Equal(t, []string{"tbl", "chr"}, catalogIDs(got))

	require.Empty(t, wizard.FilterItems(cat, "zzz", wizard.AllCategories))
	require.Empty(t, wizard.FilterItems(cat, "chair ", wizard.AllCategories), "search text is matched as typed")
	require.Equal(t, []string{"mat"}, catalogIDs(wizard.FilterItems(cat, " ", wizard.AllCategories)))
	require.Empty(t, wizard.FilterItems(cat, "", "furniture"), "category match is exact")
}

func TestCategoriesAndGrouping(t *testing.T) {
	cat := catalog()
	require.Equal(t, []string{"all", "Cooking", "Furniture", "Serving"}, wizard.Categories(cat))

	groups := wizard.GroupByCategory(cat)
	require.Len(t, groups, 4)
	require.Equal(t, "Cooking", groups[0].Name)
	require.Equal(t, "🍲", groups[0].Icon)
	require.Equal(t, "Furniture", groups[1].Name)
	require.Len(t, groups[1].Items, 2)
	require.Equal(t, wizard.OtherCategory, groups[3].Name)
	require.Equal(t, "📦", groups[3].Icon)
}

func catalogIDs(items []model.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}
