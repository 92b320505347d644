// Package mealdbtest provides an in-process fake of the TheMealDB API for tests.
package mealdbtest

import (
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/briangreenhill/recipebox/mealdb"
)

// BasePath mirrors the version prefix of the real API.
const BasePath = "/api/json/v1/1"

// Server is a fake TheMealDB. It counts calls per endpoint and can be told to
// fail an endpoint with a given status.
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	categories []mealdb.CategoryJSON
	meals      []mealdb.MealJSON
	summaries  map[string][]mealdb.MealJSON // overrides filter.php per lowercased category
	failures   map[string]int
	calls      map[string]int
}

// NewServer starts a fake loaded with the default fixture.
func NewServer() *Server {
	s := &Server{
		categories: Categories(),
		meals:      Meals(),
		summaries:  map[string][]mealdb.MealJSON{},
		failures:   map[string]int{},
		calls:      map[string]int{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc(BasePath+"/categories.php", s.handle("categories.php", s.categoriesBody))
	mux.HandleFunc(BasePath+"/filter.php", s.handle("filter.php", s.filterBody))
	mux.HandleFunc(BasePath+"/search.php", s.handle("search.php", s.searchBody))
	mux.HandleFunc(BasePath+"/lookup.php", s.handle("lookup.php", s.lookupBody))
	mux.HandleFunc(BasePath+"/random.php", s.handle("random.php", s.randomBody))

	s.Server = httptest.NewServer(mux)
	return s
}

// BaseURL is the value to hand to mealdb.WithBaseURL.
func (s *Server) BaseURL() string {
	return s.URL + BasePath
}

// Calls reports how many requests endpoint (e.g. "lookup.php") has served.
func (s *Server) Calls(endpoint string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[endpoint]
}

// TotalCalls reports the number of requests across all endpoints.
func (s *Server) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		n += c
	}
	return n
}

// Fail makes endpoint answer with status until Fail is called again with 0.
func (s *Server) Fail(endpoint string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.failures, endpoint)
		return
	}
	s.failures[endpoint] = status
}

func (s *Server) SetCategories(c []mealdb.CategoryJSON) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = c
}

func (s *Server) SetMeals(m []mealdb.MealJSON) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meals = m
}

// SetCategoryMeals replaces the filter.php answer for one category.
func (s *Server) SetCategoryMeals(category string, m []mealdb.MealJSON) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summaries[strings.ToLower(category)] = m
}

func (s *Server) handle(endpoint string, body func(r *http.Request) any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls[endpoint]++
		status := s.failures[endpoint]
		s.mu.Unlock()

		if status != 0 {
			http.Error(w, http.StatusText(status), status)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(body(r)); err != nil {
			log.Printf("mealdbtest: encode %s: %v", endpoint, err)
		}
	}
}

func (s *Server) categoriesBody(*http.Request) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return mealdb.CategoriesBody{Categories: s.categories}
}

func (s *Server) filterBody(r *http.Request) any {
	c := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("c")))
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.summaries[c]; ok {
		return mealsBody(m)
	}
	var out []mealdb.MealJSON
	for _, m := range s.meals {
		if strings.ToLower(m.Category()) == c {
			out = append(out, Summary(m))
		}
	}
	return mealsBody(out)
}

func (s *Server) searchBody(r *http.Request) any {
	q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("s")))
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []mealdb.MealJSON
	for _, m := range s.meals {
		if strings.Contains(strings.ToLower(m.Name()), q) {
			out = append(out, m)
		}
	}
	return mealsBody(out)
}

func (s *Server) lookupBody(r *http.Request) any {
	id := r.URL.Query().Get("i")
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.meals {
		if m.ID() == id {
			return mealsBody([]mealdb.MealJSON{m})
		}
	}
	return mealsBody(nil)
}

func (s *Server) randomBody(*http.Request) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.meals) == 0 {
		return mealsBody(nil)
	}
	return mealsBody(s.meals[:1])
}

// mealsBody keeps the API's habit of answering "meals": null for no matches.
func mealsBody(m []mealdb.MealJSON) map[string]any {
	if len(m) == 0 {
		return map[string]any{"meals": nil}
	}
	return map[string]any{"meals": m}
}
