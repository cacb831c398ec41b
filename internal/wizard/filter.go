package wizard

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/iliyamo/catering-rentals/internal/model"
)

// AllCategories is the category filter value matching every item.
const AllCategories = "all"

// OtherCategory groups items without a category.
const OtherCategory = "Other"

var categoryIcons = map[string]string{
	"Cooking":    "🍲",
	"Utensils":   "🍴",
	"Serving":    "🍽️",
	"Storage":    "📦",
	"Facilities": "🚿",
	"Seating":    "🪑",
	"Furniture":  "🪑",
	"Decoration": "🎨",
	"Equipment":  "🔧",
	"Comfort":    "🛏️",
}

// CategoryIcon returns the display icon for a category.
func CategoryIcon(category string) string {
	if icon, ok := categoryIcons[category]; ok {
		return icon
	}
	return "📦"
}

// FilterItems returns the catalog items whose name contains search
// (case-insensitively) and whose category equals category.  An empty
// category or AllCategories matches every item.  Catalog order is kept.
func FilterItems(catalog []model.Item, search, category string) []model.Item {
	fold := cases.Fold()
	needle := fold.String(search)
	out := make([]model.Item, 0, len(catalog))
	for _, it := range catalog {
		if category != "" && category != AllCategories {
			if it.Category == nil || *it.Category != category {
				continue
			}
		}
		if needle != "" && !strings.Contains(fold.String(it.Name), needle) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Categories lists AllCategories followed by every distinct non-empty
// category in catalog order.
func Categories(catalog []model.Item) []string {
	out := []string{AllCategories}
	seen := map[string]bool{}
	for _, it := range catalog {
		if it.Category == nil || *it.Category == "" || seen[*it.Category] {
			continue
		}
		seen[*it.Category] = true
		out = append(out, *it.Category)
	}
	return out
}

// CategoryGroup is a run of items sharing a category.
type CategoryGroup struct {
	Name  string       `json:"name"`
	Icon  string       `json:"icon"`
	Items []model.Item `json:"items"`
}

// GroupByCategory groups items by category in order of first appearance.
// Items without a category go to OtherCategory.
func GroupByCategory(items []model.Item) []CategoryGroup {
	var groups []CategoryGroup
	index := map[string]int{}
	for _, it := range items {
		name := it.CategoryOr(OtherCategory)
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, CategoryGroup{Name: name, Icon: CategoryIcon(name)})
		}
		groups[i].Items = append(groups[i].Items, it)
	}
	return groups
}
