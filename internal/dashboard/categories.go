package dashboard

import (
	"math"
	"strings"

	"github.com/botpanel/botpanel/internal/models"
)

const (
	OtherCategory     = "Other"
	NoCategoriesLabel = "No categories yet"
)

type categoryRule struct {
	name     string
	keywords []string
}

// Evaluated in order, first match wins.
var categoryRules = []categoryRule{
	{name: "Electronics", keywords: []string{"phone", "electronic"}},
	{name: "Food", keywords: []string{"food", "drink"}},
	{name: "Clothing", keywords: []string{"cloth", "shirt"}},
}

var categoryPalette = []string{"#6366F1", "#8B5CF6", "#00D4FF", "#22C55E"}

// Classify maps an item descriptor to its category name.
func Classify(item string) string {
	lowered := strings.ToLower(item)
	for _, rule := range categoryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lowered, keyword) {
				return rule.name
			}
		}
	}
	return OtherCategory
}

// TopCategories tallies every item of every order into category shares,
// keeping categories in first-seen order.
func TopCategories(orders []models.Order) []models.CategoryShare {
	counts := make(map[string]int)
	var seen []string
	total := 0

	for _, order := range orders {
		for _, item := range order.Items {
			name := Classify(item)
			if _, ok := counts[name]; !ok {
				seen = append(seen, name)
			}
			counts[name]++
			total++
		}
	}

	if total == 0 {
		return []models.CategoryShare{{
			Name:       NoCategoriesLabel,
			Percentage: 100,
			Color:      categoryPalette[0],
		}}
	}

	shares := make([]models.CategoryShare, 0, len(seen))
	for i, name := range seen {
		shares = append(shares, models.CategoryShare{
			Name:       name,
			Percentage: int(math.Floor(float64(counts[name])*100/float64(total) + 0.5)),
			Color:      categoryPalette[i%len(categoryPalette)],
		})
	}
	return shares
}
