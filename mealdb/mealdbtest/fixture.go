package mealdbtest

import "github.com/briangreenhill/recipebox/mealdb"

// Categories is the default category fixture, in API order.
func Categories() []mealdb.CategoryJSON {
	return []mealdb.CategoryJSON{
		{ID: "1", Name: "Beef", Thumb: "https://www.themealdb.com/images/category/beef.png", Description: "Beef is the culinary name for meat from cattle."},
		{ID: "2", Name: "Chicken", Thumb: "https://www.themealdb.com/images/category/chicken.png", Description: "Chicken is a type of domesticated fowl."},
		{ID: "3", Name: "Dessert", Thumb: "https://www.themealdb.com/images/category/dessert.png", Description: ""},
	}
}

// Meals is the default full-record fixture.
func Meals() []mealdb.MealJSON {
	return []mealdb.MealJSON{
		{
			"idMeal":          "52772",
			"strMeal":         "Teriyaki Chicken Casserole",
			"strCategory":     "Chicken",
			"strArea":         "Japanese",
			"strMealThumb":    "https://www.themealdb.com/images/media/meals/wvpsxx1468256321.jpg",
			"strTags":         "Meat,Casserole",
			"strSource":       "https://example.com/teriyaki",
			"strYoutube":      "https://www.youtube.com/watch?v=4aZr5hZXP_s",
			"strInstructions": "Preheat oven to 350 F.\r\nCombine soy sauce and sugar.\r\n\r\nBake for 15 minutes.",
			"strIngredient1":  "soy sauce",
			"strMeasure1":     "3/4 cup",
			"strIngredient2":  "water",
			"strMeasure2":     "1/2 cup",
			"strIngredient3":  "",
			"strMeasure3":     "",
			"strIngredient4":  nil,
			"strMeasure4":     nil,
		},
		{
			"idMeal":          "52803",
			"strMeal":         "Beef Wellington",
			"strCategory":     "Beef",
			"strArea":         "British",
			"strMealThumb":    "https://www.themealdb.com/images/media/meals/vvpprx1487325699.jpg",
			"strTags":         nil,
			"strSource":       nil,
			"strYoutube":      "",
			"strInstructions": "Sear the beef. Wrap it in pastry! Bake until golden.",
			"strIngredient1":  "beef fillet",
			"strMeasure1":     "400g",
			"strIngredient2":  "puff pastry",
			"strMeasure2":     "500g",
		},
		{
			"idMeal":          "52874",
			"strMeal":         "Beef and Mustard Pie",
			"strCategory":     "Beef",
			"strArea":         "British",
			"strMealThumb":    "https://www.themealdb.com/images/media/meals/sytuqu1511553755.jpg",
			"strTags":         "Meat, Pie",
			"strInstructions": "STEP 1\r\nBrown the beef.\r\nSTEP 2\r\nAdd mustard and bake.",
			"strIngredient1":  "beef",
			"strMeasure1":     "1kg",
		},
	}
}

// Summary reduces a full record to what filter.php returns.
func Summary(m mealdb.MealJSON) mealdb.MealJSON {
	return mealdb.MealJSON{
		"strMeal":      m.Name(),
		"strMealThumb": m.Thumb(),
		"idMeal":       m.ID(),
	}
}
