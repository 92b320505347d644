package browse

import (
	"context"
	"strings"

	"github.com/briangreenhill/recipebox/cache"
)

// State is the set of session caches. It is built once when the controller
// starts and dropped with it; nothing in it expires.
type State struct {
	store      cache.Store
	categories *cache.Typed[[]Category]
	meals      *cache.Typed[[]MealSummary]
	details    *cache.Typed[MealDetail]
}

func NewState(store cache.Store) *State {
	return &State{
		store:      store,
		categories: cache.NewTyped[[]Category](store),
		meals:      cache.NewTyped[[]MealSummary](store),
		details:    cache.NewTyped[MealDetail](store),
	}
}

// Categories returns the cached category list in API order.
func (s *State) Categories(ctx context.Context) ([]Category, bool, error) {
	return s.categories.Get(ctx, cache.CategoriesKey)
}

func (s *State) PutCategories(ctx context.Context, c []Category) error {
	return s.categories.Put(ctx, cache.CategoriesKey, c)
}

// Category finds name (case-insensitively) in the cached category list.
func (s *State) Category(ctx context.Context, name string) (Category, bool, error) {
	cats, ok, err := s.Categories(ctx)
	if err != nil || !ok {
		return Category{}, false, err
	}
	for _, c := range cats {
		if strings.EqualFold(c.Name, strings.TrimSpace(name)) {
			return c, true, nil
		}
	}
	return Category{}, false, nil
}

// Meals returns the meal list cached under key (see cache.CategoryMealsKey and
// cache.SearchMealsKey).
func (s *State) Meals(ctx context.Context, key string) ([]MealSummary, bool, error) {
	return s.meals.Get(ctx, key)
}

func (s *State) PutMeals(ctx context.Context, key string, m []MealSummary) error {
	return s.meals.Put(ctx, key, m)
}

func (s *State) Meal(ctx context.Context, id string) (MealDetail, bool, error) {
	return s.details.Get(ctx, cache.MealKey(id))
}

func (s *State) PutMeal(ctx context.Context, m MealDetail) error {
	return s.details.Put(ctx, cache.MealKey(m.ID), m)
}

// Reset discards every cached entry.
func (s *State) Reset(ctx context.Context) error {
	return s.store.Clear(ctx)
}
