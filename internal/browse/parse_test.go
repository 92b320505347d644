package browse

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/briangreenhill/recipebox/mealdb"
)

func TestParseIngredientsSingleSlot(t *testing.T) {
	m := mealdb.MealJSON{"idMeal": "1", "strMeal": "Salted"}
	for i := 1; i <= mealdb.MaxIngredients; i++ {
		m[ingredientKey(i)] = ""
		m[measureKey(i)] = " "
	}
	m["strIngredient3"] = "Salt"
	m["strMeasure3"] = "1 tsp"

	assert.Equal(t, []Ingredient{{Name: "Salt", Measure: "1 tsp"}}, ParseIngredients(m))
}

func TestParseIngredientsOrderAndNulls(t *testing.T) {
	m := mealdb.MealJSON{
		"strIngredient1":  "flour",
		"strMeasure1":     "200g",
		"strIngredient2":  nil,
		"strIngredient5":  "  eggs ",
		"strMeasure5":     nil,
		"strIngredient20": "salt",
		"strMeasure20":    "pinch",
		"strIngredient21": "ignored",
	}

	assert.Equal(t, []Ingredient{
		{Name: "flour", Measure: "200g"},
		{Name: "eggs", Measure: ""},
		{Name: "salt", Measure: "pinch"},
	}, ParseIngredients(m))
}

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{"Meat", "Pie"}, SplitTags("Meat, Pie"))
	assert.Equal(t, []string{"Meat", "Casserole"}, SplitTags("Meat,Casserole,"))
	assert.Nil(t, SplitTags(""))
	assert.Nil(t, SplitTags(" , "))
}

func TestSplitInstructions(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "line breaks and blank lines",
			in:   "Preheat oven to 350 F.\r\nCombine soy sauce and sugar.\r\n\r\nBake for 15 minutes.",
			want: []string{"Preheat oven to 350 F.", "Combine soy sauce and sugar.", "Bake for 15 minutes."},
		},
		{
			name: "single paragraph",
			in:   "Sear the beef. Wrap it in pastry! Bake until golden.",
			want: []string{"Sear the beef.", "Wrap it in pastry!", "Bake until golden."},
		},
		{
			name: "step labels",
			in:   "STEP 1\r\nBrown the beef.\r\nSTEP 2\r\nAdd mustard and bake.",
			want: []string{"Brown the beef.", "Add mustard and bake."},
		},
		{
			name: "numbered lines",
			in:   "1. Boil water.\n2) Add pasta.\nStep 3: Drain.",
			want: []string{"Boil water.", "Add pasta.", "Drain."},
		},
		{
			name: "lower case after full stop stays together",
			in:   "Cook approx. ten minutes, then serve.",
			want: []string{"Cook approx. ten minutes, then serve."},
		},
		{
			name: "quoted sentence end",
			in:   `Say "done." Then rest.`,
			want: []string{`Say "done."`, "Then rest."},
		},
		{
			name: "empty",
			in:   " \r\n ",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitInstructions(tt.in))
		})
	}
}

func TestToDetail(t *testing.T) {
	d := toDetail(mealdb.MealJSON{
		"idMeal":          "7",
		"strMeal":         "Toast",
		"strMealThumb":    "https://img/toast.jpg",
		"strCategory":     "Breakfast",
		"strArea":         "British",
		"strTags":         "Quick",
		"strSource":       nil,
		"strInstructions": "Toast the bread.",
		"strIngredient1":  "bread",
		"strMeasure1":     "2 slices",
	})

	assert.Equal(t, MealDetail{
		ID:               "7",
		Name:             "Toast",
		ThumbnailURL:     "https://img/toast.jpg",
		Category:         "Breakfast",
		Area:             "British",
		Tags:             []string{"Quick"},
		Ingredients:      []Ingredient{{Name: "bread", Measure: "2 slices"}},
		InstructionSteps: []string{"Toast the bread."},
	}, d)
}

func ingredientKey(i int) string { return "strIngredient" + strconv.Itoa(i) }
func measureKey(i int) string    { return "strMeasure" + strconv.Itoa(i) }
