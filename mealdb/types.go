package mealdb

import (
	"fmt"
	"strings"
)

// CategoriesBody is the categories.php envelope.
type CategoriesBody struct {
	Categories []CategoryJSON `json:"categories"`
}

type CategoryJSON struct {
	ID          string `json:"idCategory"`
	Name        string `json:"strCategory"`
	Thumb       string `json:"strCategoryThumb"`
	Description string `json:"strCategoryDescription"`
}

// MealsBody is the envelope shared by filter, search, lookup and random.
// The API answers {"meals": null} when nothing matches, which leaves Meals nil.
type MealsBody struct {
	Meals []MealJSON `json:"meals"`
}

// MealJSON is a meal record exactly as returned. Filter responses only carry
// strMeal, strMealThumb and idMeal; lookup and search carry the full record
// including the numbered strIngredientN / strMeasureN slots.
type MealJSON map[string]any

// Field returns the trimmed string value of name, or "" when the field is
// missing, null or not a string.
func (m MealJSON) Field(name string) string {
	if s, ok := m[name].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func (m MealJSON) ID() string           { return m.Field("idMeal") }
func (m MealJSON) Name() string         { return m.Field("strMeal") }
func (m MealJSON) Thumb() string        { return m.Field("strMealThumb") }
func (m MealJSON) Category() string     { return m.Field("strCategory") }
func (m MealJSON) Area() string         { return m.Field("strArea") }
func (m MealJSON) Instructions() string { return m.Field("strInstructions") }
func (m MealJSON) Tags() string         { return m.Field("strTags") }
func (m MealJSON) Source() string       { return m.Field("strSource") }
func (m MealJSON) YouTube() string      { return m.Field("strYoutube") }

// MaxIngredients is the number of numbered ingredient slots in a meal record.
const MaxIngredients = 20

// Ingredient returns slot i (1-based) as (ingredient, measure).
func (m MealJSON) Ingredient(i int) (string, string) {
	return m.Field(fmt.Sprintf("strIngredient%d", i)), m.Field(fmt.Sprintf("strMeasure%d", i))
}
