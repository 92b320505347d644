package main

import (
	"fmt"
	"strings"

	"github.com/briangreenhill/recipebox/internal/browse"
)

// message is what the user sees for err: the notice for expected conditions,
// the error itself otherwise.
func message(err error) string {
	if browse.Expected(err) {
		return browse.Notice(err)
	}
	return err.Error()
}

func formatCategories(cats []browse.Category) string {
	if len(cats) == 0 {
		return "No categories found.\n"
	}
	var b strings.Builder
	b.WriteString("Categories:\n")
	for _, c := range cats {
		fmt.Fprintf(&b, "- %s\n", c.Name)
	}
	return b.String()
}

func formatCategory(v browse.CategoryView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n", v.Category.Name)
	fmt.Fprintf(&b, "%s\n", v.Description)
	writeMeals(&b, v.Meals)
	return b.String()
}

func formatSearch(r browse.SearchResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Results for %q (by %s):\n", r.Query, r.Source)
	writeMeals(&b, r.Meals)
	return b.String()
}

func writeMeals(b *strings.Builder, meals []browse.MealSummary) {
	b.WriteString("Meals:\n")
	if len(meals) == 0 {
		b.WriteString("  (none)\n")
		return
	}
	for _, m := range meals {
		if m.ID != "" {
			fmt.Fprintf(b, "- %s [%s]\n", m.Name, m.ID)
			continue
		}
		fmt.Fprintf(b, "- %s\n", m.Name)
	}
}

// formatMeal renders the detail as markdown-ish plain text
func formatMeal(d browse.MealDetail) string {
	var output string

	output += fmt.Sprintf("## %s\n", d.Name)
	output += fmt.Sprintf("Category: %s\n", d.Category)
	if d.Area != "" {
		output += fmt.Sprintf("Area: %s\n", d.Area)
	}
	if len(d.Tags) > 0 {
		output += fmt.Sprintf("Tags: %s\n", strings.Join(d.Tags, ", "))
	}

	output += "Ingredients:\n"
	for _, ing := range d.Ingredients {
		if ing.Measure == "" {
			output += fmt.Sprintf("- %s\n", ing.Name)
			continue
		}
		output += fmt.Sprintf("- %s: %s\n", ing.Name, ing.Measure)
	}

	output += "Instructions:\n"
	for i, step := range d.InstructionSteps {
		output += fmt.Sprintf("%d. %s\n", i+1, step)
	}

	if d.Source != "" {
		output += fmt.Sprintf("Source: %s\n", d.Source)
	}
	if d.YouTube != "" {
		output += fmt.Sprintf("Video: %s\n", d.YouTube)
	}
	return output
}

func formatWarm(s browse.WarmStats) string {
	return fmt.Sprintf("Warmed %d categories, %d meal lists, %d meals\n", s.Categories, s.MealLists, s.Meals)
}
