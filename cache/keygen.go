package cache

import "strings"

// CategoriesKey holds the ordered category list
const CategoriesKey = "categories"

// CategoryMealsKey is the meal list of a category filter
func CategoryMealsKey(category string) string {
	return "meals:category:" + normalize(category)
}

// SearchMealsKey is the meal list of a name search
func SearchMealsKey(term string) string {
	return "meals:search:" + normalize(term)
}

// MealKey is the detail record of one meal
func MealKey(id string) string {
	return "meal:" + strings.TrimSpace(id)
}

// normalize makes "  Beef ", "beef" and "BEEF" share one entry
func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
