package browse

import (
	"context"
	"errors"
	"net/url"
	"sort"
)

// Page slots that regions render into.
const (
	PanelTarget     = "#panel-list"
	GridTarget      = "#grid"
	GridErrorTarget = "#grid-error"
	ResultsTarget   = "#results"
	DetailTarget    = "#detail"
	NoticeTarget    = "#notice"
)

// Region binds a named part of the page to the flow that loads it and the
// template that renders the result.
type Region struct {
	Name     string
	Target   string
	Template string
	Load     func(ctx context.Context, q url.Values) (any, error)
	Fail     func(err error) Failure
}

// Failure is what a region shows when its flow fails. An empty Target means
// the region's own slot.
type Failure struct {
	Message string
	Target  string
}

// Failure maps err through Fail, defaulting to a notice.
func (r Region) Failure(err error) Failure {
	if r.Fail == nil {
		return Failure{Message: Notice(err), Target: NoticeTarget}
	}
	return r.Fail(err)
}

// Registry manages the regions the page can load
type Registry struct {
	regions map[string]Region
}

func NewRegistry() *Registry {
	return &Registry{regions: make(map[string]Region)}
}

// Register adds a region, replacing any region of the same name
func (r *Registry) Register(region Region) {
	r.regions[region.Name] = region
}

func (r *Registry) Get(name string) (Region, bool) {
	region, ok := r.regions[name]
	return region, ok
}

// List returns the registered region names, sorted
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.regions))
	for name := range r.regions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Regions is the page's region table.
func (c *Controller) Regions() *Registry {
	r := NewRegistry()

	r.Register(Region{
		Name:     "panel",
		Target:   PanelTarget,
		Template: "panel",
		Load: func(ctx context.Context, _ url.Values) (any, error) {
			return c.Categories(ctx)
		},
		Fail: func(err error) Failure {
			return Failure{Message: "Could not load categories: " + err.Error()}
		},
	})

	r.Register(Region{
		Name:     "grid",
		Target:   GridTarget,
		Template: "grid",
		Load: func(ctx context.Context, _ url.Values) (any, error) {
			return c.Categories(ctx)
		},
		Fail: func(error) Failure {
			return Failure{Message: "Failed to load categories.", Target: GridErrorTarget}
		},
	})

	r.Register(Region{
		Name:     "category",
		Target:   ResultsTarget,
		Template: "category",
		Load: func(ctx context.Context, q url.Values) (any, error) {
			return c.CategoryDetail(ctx, q.Get("name"))
		},
	})

	r.Register(Region{
		Name:     "search",
		Target:   ResultsTarget,
		Template: "search",
		Load: func(ctx context.Context, q url.Values) (any, error) {
			return c.Search(ctx, q.Get("q"))
		},
		Fail: func(err error) Failure {
			if errors.Is(err, ErrNoResults) {
				return Failure{Message: Notice(err)}
			}
			return Failure{Message: Notice(err), Target: NoticeTarget}
		},
	})

	r.Register(Region{
		Name:     "meal",
		Target:   DetailTarget,
		Template: "meal",
		Load: func(ctx context.Context, q url.Values) (any, error) {
			if q.Get("random") != "" {
				return c.RandomMeal(ctx)
			}
			return c.MealDetail(ctx, q.Get("id"))
		},
	})

	r.Register(Region{
		Name:     "resolve",
		Target:   DetailTarget,
		Template: "meal",
		Load: func(ctx context.Context, q url.Values) (any, error) {
			return c.ResolveMeal(ctx, q.Get("id"), q.Get("name"))
		},
	})

	return r
}
