package domain

import (
	"strings"
	"time"
)

type Category string

const (
	CategoryTractor    Category = "Tractor"
	CategoryHarvester  Category = "Harvester"
	CategoryImplement  Category = "Implement"
	CategorySeeder     Category = "Seeder"
	CategoryIrrigation Category = "Irrigation"
	CategoryOther      Category = "Other"
)

// Categories is the fixed, ordered set offered by the add-equipment form.
var Categories = []Category{
	CategoryTractor,
	CategoryHarvester,
	CategoryImplement,
	CategorySeeder,
	CategoryIrrigation,
	CategoryOther,
}

// ParseCategory matches s against the known categories, ignoring case.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, true
		}
	}
	return "", false
}

// MaxPricePerDayCents caps listing prices at 1,000,000.00 a day so totals stay
// well inside int64.
const MaxPricePerDayCents int64 = 100_000_000

type Equipment struct {
	ID               string    `json:"id"`
	OwnerID          string    `json:"owner_id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Category         Category  `json:"category"`
	PricePerDayCents int64     `json:"price_per_day_cents"`
	Location         string    `json:"location"`
	ImageURL         *string   `json:"image_url"`
	IsAvailable      bool      `json:"is_available"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// EquipmentFilter is the browse view's search state. Zero values match everything.
type EquipmentFilter struct {
	Query    string
	Location string
	Category Category
}

// Matches applies the browse rules: query against name or description, location substring,
// and exact category when one is selected. Text matches are case-insensitive.
func (f EquipmentFilter) Matches(e Equipment) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(e.Name), q) &&
			!strings.Contains(strings.ToLower(e.Description), q) {
			return false
		}
	}
	if loc := strings.ToLower(strings.TrimSpace(f.Location)); loc != "" {
		if !strings.Contains(strings.ToLower(e.Location), loc) {
			return false
		}
	}
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	return true
}

// Apply returns the subset of items matching f, preserving order.
func (f EquipmentFilter) Apply(items []Equipment) []Equipment {
	out := make([]Equipment, 0, len(items))
	for _, e := range items {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}
