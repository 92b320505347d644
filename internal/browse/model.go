// Package browse is the view controller: it turns TheMealDB responses into the
// records the pages render and keeps them in the session caches.
package browse

import (
	"context"

	"github.com/briangreenhill/recipebox/mealdb"
)

// MealAPI is the part of the TheMealDB client the controller depends on.
//
//go:generate mockgen -source=model.go -destination=mocks/mock_api.go -package=mocks
type MealAPI interface {
	Categories(ctx context.Context) ([]mealdb.CategoryJSON, error)
	FilterByCategory(ctx context.Context, category string) ([]mealdb.MealJSON, error)
	SearchByName(ctx context.Context, name string) ([]mealdb.MealJSON, error)
	LookupByID(ctx context.Context, id string) (mealdb.MealJSON, error)
	Random(ctx context.Context) (mealdb.MealJSON, error)
}

type Category struct {
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

type MealSummary struct {
	Name         string `json:"name"`
	ThumbnailURL string `json:"thumbnail_url"`
	ID           string `json:"id,omitempty"`
}

type Ingredient struct {
	Name    string `json:"name"`
	Measure string `json:"measure"`
}

type MealDetail struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	ThumbnailURL     string       `json:"thumbnail_url"`
	Category         string       `json:"category"`
	Area             string       `json:"area,omitempty"`
	Source           string       `json:"source,omitempty"`
	YouTube          string       `json:"youtube,omitempty"`
	Tags             []string     `json:"tags"`
	Ingredients      []Ingredient `json:"ingredients"`
	InstructionSteps []string     `json:"instruction_steps"`
}

// CategoryView is the category summary block plus its meal grid.
type CategoryView struct {
	Category    Category
	Description string
	Meals       []MealSummary
}

// Search sources, in the order they are tried.
const (
	SourceCategory = "category"
	SourceName     = "name"
)

type SearchResult struct {
	Query  string
	Source string
	Meals  []MealSummary
}

// WarmStats reports what a warm-up run loaded.
type WarmStats struct {
	Categories int
	MealLists  int
	Meals      int
}
