package browse

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/briangreenhill/recipebox/cache"
	"github.com/briangreenhill/recipebox/mealdb"
)

// NoDescription is shown for categories without a cached description.
const NoDescription = "No description available."

// Controller runs the browse flows against the API and the session caches.
// Failed fetches are never cached, and a cache that cannot be read or written
// is logged and treated as a miss.
type Controller struct {
	api   MealAPI
	state *State
	log   zerolog.Logger
}

func New(api MealAPI, state *State, logger zerolog.Logger) *Controller {
	return &Controller{
		api:   api,
		state: state,
		log:   logger.With().Str("component", "browse").Logger(),
	}
}

// State exposes the session caches the controller writes to.
func (c *Controller) State() *State { return c.state }

// Categories returns the category list, fetching it only when the cache is empty.
func (c *Controller) Categories(ctx context.Context) ([]Category, error) {
	cats, ok, err := c.state.Categories(ctx)
	c.cacheErr("read", cache.CategoriesKey, err)
	if ok && len(cats) > 0 {
		return cats, nil
	}

	raw, err := c.api.Categories(ctx)
	if err != nil {
		return nil, err
	}
	cats = make([]Category, 0, len(raw))
	for _, rc := range raw {
		if cat := toCategory(rc); cat.Name != "" {
			cats = append(cats, cat)
		}
	}
	if len(cats) > 0 {
		c.cacheErr("write", cache.CategoriesKey, c.state.PutCategories(ctx, cats))
	}
	c.log.Debug().Int("count", len(cats)).Msg("categories fetched")
	return cats, nil
}

// CategoryDetail builds the summary block for name from the cached category
// list, without fetching it, then loads the category's meals.
func (c *Controller) CategoryDetail(ctx context.Context, name string) (CategoryView, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return CategoryView{}, ErrEmptyCategory
	}

	view := CategoryView{Category: Category{Name: name}, Description: NoDescription}
	cat, ok, err := c.state.Category(ctx, name)
	c.cacheErr("read", cache.CategoriesKey, err)
	if ok {
		view.Category = cat
		if cat.Description != "" {
			view.Description = cat.Description
		}
	}

	meals, err := c.CategoryMeals(ctx, name)
	if err != nil {
		return view, fmt.Errorf("category %s: %w", name, err)
	}
	view.Meals = meals
	return view, nil
}

// CategoryMeals returns the meals filed under category. Empty answers are not
// cached so a later request asks again.
func (c *Controller) CategoryMeals(ctx context.Context, category string) ([]MealSummary, error) {
	key := cache.CategoryMealsKey(category)
	return c.mealList(ctx, key, func(ctx context.Context) ([]mealdb.MealJSON, error) {
		return c.api.FilterByCategory(ctx, strings.TrimSpace(category))
	})
}

// Search tries query as a category first and falls back to a name search.
// An empty query fails with ErrEmptyQuery before any request is made.
func (c *Controller) Search(ctx context.Context, query string) (SearchResult, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return SearchResult{}, ErrEmptyQuery
	}

	meals, err := c.CategoryMeals(ctx, q)
	if err != nil {
		return SearchResult{}, fmt.Errorf("search %q by category: %w", q, err)
	}
	if len(meals) > 0 {
		return SearchResult{Query: q, Source: SourceCategory, Meals: meals}, nil
	}

	meals, err = c.mealList(ctx, cache.SearchMealsKey(q), func(ctx context.Context) ([]mealdb.MealJSON, error) {
		return c.api.SearchByName(ctx, q)
	})
	if err != nil {
		return SearchResult{}, fmt.Errorf("search %q by name: %w", q, err)
	}
	if len(meals) == 0 {
		return SearchResult{}, &NoResultsError{Query: q}
	}
	return SearchResult{Query: q, Source: SourceName, Meals: meals}, nil
}

func (c *Controller) mealList(ctx context.Context, key string, fetch func(context.Context) ([]mealdb.MealJSON, error)) ([]MealSummary, error) {
	meals, ok, err := c.state.Meals(ctx, key)
	c.cacheErr("read", key, err)
	if ok && len(meals) > 0 {
		return meals, nil
	}

	raw, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	meals = toSummaries(raw)
	if len(meals) > 0 {
		c.cacheErr("write", key, c.state.PutMeals(ctx, key, meals))
	}
	return meals, nil
}

// ResolveMealID returns id when it is set. Otherwise it searches by name and
// picks the exact (case-insensitive) match, or the first hit with an id.
func (c *Controller) ResolveMealID(ctx context.Context, id, name string) (string, error) {
	if id = strings.TrimSpace(id); id != "" {
		return id, nil
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrUnresolvedMeal
	}

	hits, err := c.api.SearchByName(ctx, name)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnresolvedMeal, err)
	}
	var first string
	for _, h := range hits {
		if h == nil || h.ID() == "" {
			continue
		}
		if strings.EqualFold(h.Name(), name) {
			return h.ID(), nil
		}
		if first == "" {
			first = h.ID()
		}
	}
	if first == "" {
		return "", fmt.Errorf("%w: %q", ErrUnresolvedMeal, name)
	}
	return first, nil
}

// MealDetail returns the full record for id, from the cache when present.
func (c *Controller) MealDetail(ctx context.Context, id string) (MealDetail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return MealDetail{}, ErrMealNotFound
	}

	key := cache.MealKey(id)
	d, ok, err := c.state.Meal(ctx, id)
	c.cacheErr("read", key, err)
	if ok {
		return d, nil
	}

	raw, err := c.api.LookupByID(ctx, id)
	if errors.Is(err, mealdb.ErrNotFound) {
		return MealDetail{}, fmt.Errorf("meal %s: %w", id, ErrMealNotFound)
	}
	if err != nil {
		return MealDetail{}, fmt.Errorf("lookup meal %s: %w", id, err)
	}

	d = toDetail(raw)
	if d.ID == "" {
		d.ID = id
	}
	c.cacheErr("write", key, c.state.PutMeal(ctx, d))
	return d, nil
}

// ResolveMeal resolves the meal behind a card and loads its detail.
func (c *Controller) ResolveMeal(ctx context.Context, id, name string) (MealDetail, error) {
	mid, err := c.ResolveMealID(ctx, id, name)
	if err != nil {
		return MealDetail{}, err
	}
	return c.MealDetail(ctx, mid)
}

// RandomMeal fetches a random meal on every call and caches it under its id.
func (c *Controller) RandomMeal(ctx context.Context) (MealDetail, error) {
	raw, err := c.api.Random(ctx)
	if errors.Is(err, mealdb.ErrNotFound) {
		return MealDetail{}, ErrMealNotFound
	}
	if err != nil {
		return MealDetail{}, fmt.Errorf("random meal: %w", err)
	}
	d := toDetail(raw)
	if d.ID != "" {
		c.cacheErr("write", cache.MealKey(d.ID), c.state.PutMeal(ctx, d))
	}
	return d, nil
}

// Warm loads the category list and then every category's meals, at most limit
// at a time. The first failure cancels the remaining fetches.
func (c *Controller) Warm(ctx context.Context, limit int) (WarmStats, error) {
	cats, err := c.Categories(ctx)
	if err != nil {
		return WarmStats{}, fmt.Errorf("warm categories: %w", err)
	}
	if limit < 1 {
		limit = 1
	}

	var (
		mu    sync.Mutex
		stats = WarmStats{Categories: len(cats)}
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, cat := range cats {
		cat := cat
		g.Go(func() error {
			meals, err := c.CategoryMeals(gctx, cat.Name)
			if err != nil {
				return fmt.Errorf("warm category %s: %w", cat.Name, err)
			}
			mu.Lock()
			stats.MealLists++
			stats.Meals += len(meals)
			mu.Unlock()
			return nil
		})
	}
	err = g.Wait()

	c.log.Info().
		Int("categories", stats.Categories).
		Int("meal_lists", stats.MealLists).
		Int("meals", stats.Meals).
		Err(err).
		Msg("warm-up finished")
	return stats, err
}

func (c *Controller) cacheErr(op, key string, err error) {
	if err != nil {
		c.log.Warn().Err(err).Str("op", op).Str("key", key).Msg("session cache unavailable")
	}
}
