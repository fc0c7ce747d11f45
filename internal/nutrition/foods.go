package nutrition

import "strings"

// Food is one entry of the per-serving nutrition table.
type Food struct {
	Name   string `json:"name"`
	Macros Macros `json:"macros"`
}

// DefaultEstimate is returned for labels that match nothing in the table.
var DefaultEstimate = Macros{Calories: 200, Protein: 8, Carbs: 30, Fat: 6}

// foodTable holds per-serving values keyed by the classifier's label set.
// Order matters: substring matching returns the first hit.
var foodTable = []Food{
	{"Biriyani", Macros{480, 15, 65, 16}},
	{"Cake", Macros{320, 4, 48, 13}},
	{"Cha", Macros{100, 1, 20, 2}},
	{"Chicken_curry", Macros{300, 22, 12, 18}},
	{"Chicken_wings", Macros{100, 10, 0, 7}},
	{"Chocolate_cake", Macros{350, 5, 48, 17}},
	{"Chow_mein", Macros{350, 12, 45, 12}},
	{"Crab_Dish_Kakra", Macros{250, 28, 8, 12}},
	{"Doi", Macros{150, 8, 18, 6}},
	{"Fish_Bhuna_Mach_Bhuna", Macros{250, 25, 6, 14}},
	{"French_fries", Macros{365, 4, 48, 17}},
	{"Fried_fish_Mach_Bhaja", Macros{300, 24, 12, 18}},
	{"Fried_rice", Macros{400, 10, 55, 14}},
	{"Khichuri", Macros{280, 12, 45, 6}},
	{"Meat_Curry_Gosht_Bhuna", Macros{380, 28, 10, 26}},
	{"Misti", Macros{120, 2, 26, 2}},
	{"Momos", Macros{45, 2, 7, 1}},
	{"Salad", Macros{80, 3, 15, 1}},
	{"Sandwich", Macros{250, 10, 35, 8}},
	{"Shik_kabab", Macros{180, 18, 3, 11}},
	{"Singgara", Macros{140, 3, 18, 6}},
	{"bakorkhani", Macros{200, 5, 35, 5}},
	{"cheesecake", Macros{350, 6, 35, 20}},
	{"cup_cakes", Macros{200, 2, 30, 8}},
	{"fuchka", Macros{40, 1, 8, 1}},
	{"haleem", Macros{350, 22, 30, 16}},
	{"ice_cream", Macros{210, 4, 24, 11}},
	{"jilapi", Macros{150, 1, 35, 2}},
	{"nehari", Macros{400, 24, 12, 28}},
	{"pakora", Macros{75, 2, 10, 3}},
	{"pizza", Macros{285, 12, 36, 11}},
	{"poached_egg", Macros{70, 6, 0.4, 5}},
	{"porota", Macros{180, 4, 25, 7}},
}

// Foods returns a copy of the nutrition table in lookup order.
func Foods() []Food {
	out := make([]Food, len(foodTable))
	copy(out, foodTable)
	return out
}

// Lookup resolves a food label to its per-serving macros. It tries an exact
// key match, then a case-insensitive match, then a case-insensitive substring
// match in either direction, and finally falls back to DefaultEstimate.
// The bool result reports whether the table produced the value.
func Lookup(label string) (Macros, bool) {
	// An empty needle is a substring of every key.
	if strings.TrimSpace(label) == "" {
		return DefaultEstimate, false
	}

	for _, f := range foodTable {
		if f.Name == label {
			return f.Macros, true
		}
	}

	lower := strings.ToLower(label)
	for _, f := range foodTable {
		if strings.ToLower(f.Name) == lower {
			return f.Macros, true
		}
	}

	for _, f := range foodTable {
		key := strings.ToLower(f.Name)
		if strings.Contains(key, lower) || strings.Contains(lower, key) {
			return f.Macros, true
		}
	}

	return DefaultEstimate, false
}
