package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	scs "github.com/alexedwards/scs/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briangreenhill/recipebox/cache"
	"github.com/briangreenhill/recipebox/internal/browse"
	"github.com/briangreenhill/recipebox/internal/config"
	"github.com/briangreenhill/recipebox/mealdb"
	"github.com/briangreenhill/recipebox/mealdb/mealdbtest"
	"github.com/briangreenhill/recipebox/web"
)

type testEnv struct {
	h   http.Handler
	api *mealdbtest.Server
}

func setup(t *testing.T) testEnv {
	t.Helper()
	api := mealdbtest.NewServer()
	t.Cleanup(api.Close)

	tmpl, err := web.Templates()
	require.NoError(t, err)

	client := mealdb.New(mealdb.WithBaseURL(api.BaseURL()), mealdb.WithHTTPClient(api.Client()))
	ctrl := browse.New(client, browse.NewState(cache.NewMemoryStore()), zerolog.Nop())
	s := New(ServerOptions{
		Sess:   scs.New(),
		Tmpl:   tmpl,
		Browse: ctrl,
		Cfg:    config.Config{GridDelay: 500 * time.Millisecond},
		Logger: zerolog.Nop(),
	})
	return testEnv{h: s.Handler(), api: api}
}

type reqOpt func(*http.Request)

func htmx(r *http.Request) { r.Header.Set("HX-Request", "true") }

func withCookies(cs []*http.Cookie) reqOpt {
	return func(r *http.Request) {
		for _, c := range cs {
			r.AddCookie(c)
		}
	}
}

func (e testEnv) do(t *testing.T, method, target string, opts ...reqOpt) (*httptest.ResponseRecorder, *goquery.Document) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for _, o := range opts {
		o(req)
	}
	rec := httptest.NewRecorder()
	e.h.ServeHTTP(rec, req)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rec.Body.String()))
	require.NoError(t, err)
	return rec, doc
}

func texts(sel *goquery.Selection) []string {
	var out []string
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, strings.TrimSpace(s.Text()))
	})
	return out
}

func TestHealthz(t *testing.T) {
	e := setup(t)
	rec, _ := e.do(t, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestStatic(t *testing.T) {
	e := setup(t)
	rec, _ := e.do(t, http.MethodGet, "/static/app.js")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "panel")
}

func TestHome(t *testing.T) {
	e := setup(t)
	rec, doc := e.do(t, http.MethodGet, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	grid := doc.Find("#grid")
	assert.Equal(t, "/regions/grid", grid.AttrOr("hx-get", ""))
	assert.Equal(t, "load delay:500ms", grid.AttrOr("hx-trigger", ""))
	assert.False(t, doc.Find("#panel").HasClass("open"))
	assert.Equal(t, 1, doc.Find("#notice").Length())
	assert.Zero(t, e.api.TotalCalls(), "the page itself fetches nothing")
}

func TestGridRegion(t *testing.T) {
	e := setup(t)
	rec, doc := e.do(t, http.MethodGet, "/regions/grid", htmx)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Beef", "Chicken", "Dessert"}, texts(doc.Find(".category-card h3")))
	link := doc.Find(".category-card a").First()
	assert.Equal(t, "/regions/category?name=Beef", link.AttrOr("hx-get", ""))
	assert.Equal(t, "#results", link.AttrOr("hx-target", ""))
	assert.Equal(t, "https://www.themealdb.com/images/category/beef.png", doc.Find(".category-card img").First().AttrOr("src", ""))
	assert.Zero(t, doc.Find("html head title").Length(), "htmx gets the bare fragment")
}

func TestGridFailureGoesToGridError(t *testing.T) {
	e := setup(t)
	e.api.Fail("categories.php", http.StatusServiceUnavailable)

	rec, doc := e.do(t, http.MethodGet, "/regions/grid", htmx)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "#grid-error", rec.Header().Get("HX-Retarget"))
	assert.Equal(t, "Failed to load categories.", strings.TrimSpace(doc.Find(".failure").Text()))
}

func TestPanelFailureInPlace(t *testing.T) {
	e := setup(t)
	e.api.Fail("categories.php", http.StatusServiceUnavailable)

	rec, doc := e.do(t, http.MethodGet, "/regions/panel", htmx)
	assert.Empty(t, rec.Header().Get("HX-Retarget"))
	assert.Equal(t, "Could not load categories: GET categories.php: 503 Service Unavailable",
		strings.TrimSpace(doc.Find(".failure").Text()))

	// errors are not cached; the next open retries
	e.api.Fail("categories.php", 0)
	_, doc = e.do(t, http.MethodGet, "/regions/panel", htmx)
	assert.Len(t, texts(doc.Find("li a")), 3)
}

func TestPanelOpenCloseIsRemembered(t *testing.T) {
	e := setup(t)

	rec, doc := e.do(t, http.MethodPost, "/panel/open", htmx)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Beef", "Chicken", "Dessert"}, texts(doc.Find("li a")))
	assert.Equal(t, "/regions/category?name=Chicken", doc.Find("li a").Eq(1).AttrOr("hx-get", ""))
	_, closes := doc.Find("li a").First().Attr("data-close-panel")
	assert.True(t, closes)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	_, doc = e.do(t, http.MethodGet, "/", withCookies(cookies))
	assert.True(t, doc.Find("#panel").HasClass("open"))
	assert.Equal(t, "/regions/panel", doc.Find("#panel-list li").AttrOr("hx-get", ""))

	rec, _ = e.do(t, http.MethodPost, "/panel/close", htmx, withCookies(cookies))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	_, doc = e.do(t, http.MethodGet, "/", withCookies(cookies))
	assert.False(t, doc.Find("#panel").HasClass("open"))
}

func TestPanelAndGridShareCategories(t *testing.T) {
	e := setup(t)
	e.do(t, http.MethodPost, "/panel/open", htmx)
	e.do(t, http.MethodGet, "/regions/grid", htmx)
	e.do(t, http.MethodGet, "/regions/panel", htmx)
	assert.Equal(t, 1, e.api.Calls("categories.php"))
}

func TestCategoryRegion(t *testing.T) {
	e := setup(t)
	e.do(t, http.MethodGet, "/regions/grid", htmx)

	rec, doc := e.do(t, http.MethodGet, "/regions/category?name=Beef", htmx)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Beef", strings.TrimSpace(doc.Find(".category-summary h2").Text()))
	assert.Equal(t, "Beef is the culinary name for meat from cattle.", strings.TrimSpace(doc.Find(".description").Text()))
	assert.Equal(t, []string{"Beef Wellington", "Beef and Mustard Pie"}, texts(doc.Find(".meal-card h3")))

	link := doc.Find(".meal-card a").First()
	assert.Equal(t, "/regions/resolve?id=52803&name=Beef+Wellington", link.AttrOr("hx-get", ""))
	assert.Equal(t, "#detail", link.AttrOr("hx-target", ""))
	assert.Equal(t, "innerHTML show:top", link.AttrOr("hx-swap", ""))

	_, doc = e.do(t, http.MethodGet, "/regions/category?name=Dessert", htmx)
	assert.Equal(t, browse.NoDescription, strings.TrimSpace(doc.Find(".description").Text()))

	// meal lists are cached per category
	e.do(t, http.MethodGet, "/regions/category?name=Beef", htmx)
	assert.Equal(t, 2, e.api.Calls("filter.php"))
	assert.Equal(t, 1, e.api.Calls("categories.php"), "the detail view never fetches categories")
}

func TestCategoryRegionWithoutCachedCategories(t *testing.T) {
	e := setup(t)
	_, doc := e.do(t, http.MethodGet, "/regions/category?name=Beef", htmx)
	assert.Equal(t, browse.NoDescription, strings.TrimSpace(doc.Find(".description").Text()))
	assert.Zero(t, e.api.Calls("categories.php"))
}

func TestCategoryFailureIsANotice(t *testing.T) {
	e := setup(t)
	e.api.Fail("filter.php", http.StatusBadGateway)

	rec, doc := e.do(t, http.MethodGet, "/regions/category?name=Beef", htmx)
	assert.Equal(t, "#notice", rec.Header().Get("HX-Retarget"))
	assert.Equal(t, "Something went wrong loading recipes. Please try again.", strings.TrimSpace(doc.Find(".failure").Text()))
	assert.Zero(t, doc.Find(".category-summary").Length())
}

func TestSearchFallsBackToName(t *testing.T) {
	e := setup(t)

	rec, doc := e.do(t, http.MethodGet, "/regions/search?q=Wellington", htmx)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Beef Wellington"}, texts(doc.Find(".meal-card h3")))
	assert.Equal(t, "/regions/resolve?id=52803&name=Beef+Wellington", doc.Find(".meal-card a").AttrOr("hx-get", ""))
	assert.Equal(t, 1, e.api.Calls("filter.php"))
	assert.Equal(t, 1, e.api.Calls("search.php"))
}

func TestSearchByCategory(t *testing.T) {
	e := setup(t)

	_, doc := e.do(t, http.MethodGet, "/regions/search?q=chicken", htmx)
	assert.Equal(t, []string{"Teriyaki Chicken Casserole"}, texts(doc.Find(".meal-card h3")))
	assert.Zero(t, e.api.Calls("search.php"))
}

func TestSearchEmptyQuery(t *testing.T) {
	e := setup(t)

	for _, q := range []string{"/regions/search", "/regions/search?q=", "/regions/search?q=++"} {
		rec, doc := e.do(t, http.MethodGet, q, htmx)
		assert.Equal(t, "#notice", rec.Header().Get("HX-Retarget"))
		assert.Equal(t, "Please enter a recipe name!", strings.TrimSpace(doc.Find(".failure").Text()))
	}
	assert.Zero(t, e.api.TotalCalls())
}

func TestSearchNoResults(t *testing.T) {
	e := setup(t)

	rec, doc := e.do(t, http.MethodGet, "/regions/search?q=zzz", htmx)
	assert.Empty(t, rec.Header().Get("HX-Retarget"), "rendered in the results region")
	assert.Equal(t, `No results for "zzz".`, strings.TrimSpace(doc.Find(".failure").Text()))
}

func TestMealRegionCachesDetail(t *testing.T) {
	e := setup(t)

	for i := 0; i < 3; i++ {
		rec, doc := e.do(t, http.MethodGet, "/regions/meal?id=52772", htmx)
		require.Equal(t, http.StatusOK, rec.Code)

		d := doc.Find(".meal-detail")
		require.Equal(t, 1, d.Length())
		assert.Equal(t, "52772", d.AttrOr("data-meal-id", ""))
		assert.Equal(t, "Teriyaki Chicken Casserole", strings.TrimSpace(d.Find("h2").Text()))
		assert.Equal(t, []string{"Meat", "Casserole"}, texts(d.Find(".tag")))
		assert.Equal(t, []string{"soy sauce", "water"}, texts(d.Find(".ingredient-names li")))
		assert.Equal(t, []string{"3/4 cup", "1/2 cup"}, texts(d.Find(".measures li")))
		assert.Equal(t, []string{
			"Preheat oven to 350 F.",
			"Combine soy sauce and sugar.",
			"Bake for 15 minutes.",
		}, texts(d.Find(".steps li")))
		assert.Equal(t, "https://example.com/teriyaki", d.Find("a.source").AttrOr("href", ""))
	}
	assert.Equal(t, 1, e.api.Calls("lookup.php"))
}

func TestMealNotFound(t *testing.T) {
	e := setup(t)

	rec, doc := e.do(t, http.MethodGet, "/regions/meal?id=1", htmx)
	assert.Equal(t, "#notice", rec.Header().Get("HX-Retarget"))
	assert.Equal(t, "innerHTML", rec.Header().Get("HX-Reswap"))
	assert.Equal(t, "Meal not found.", strings.TrimSpace(doc.Find(".failure").Text()))
	assert.Zero(t, doc.Find(".meal-detail").Length())
}

func TestRandomMeal(t *testing.T) {
	e := setup(t)

	_, doc := e.do(t, http.MethodGet, "/regions/meal?random=1", htmx)
	assert.Equal(t, "Teriyaki Chicken Casserole", strings.TrimSpace(doc.Find(".meal-detail h2").Text()))

	// the random pick is now in the detail cache
	e.do(t, http.MethodGet, "/regions/meal?id=52772", htmx)
	assert.Zero(t, e.api.Calls("lookup.php"))
}

func TestResolveByName(t *testing.T) {
	e := setup(t)

	_, doc := e.do(t, http.MethodGet, "/regions/resolve?name=beef+wellington", htmx)
	assert.Equal(t, "52803", doc.Find(".meal-detail").AttrOr("data-meal-id", ""))
	assert.Equal(t, []string{"Sear the beef.", "Wrap it in pastry!", "Bake until golden."}, texts(doc.Find(".steps li")))
	assert.Zero(t, doc.Find(".tags").Length())
	assert.Equal(t, 1, e.api.Calls("search.php"))
	assert.Equal(t, 1, e.api.Calls("lookup.php"))
}

func TestResolveWithIDSkipsSearch(t *testing.T) {
	e := setup(t)

	e.do(t, http.MethodGet, "/regions/resolve?id=52874&name=Beef+and+Mustard+Pie", htmx)
	assert.Zero(t, e.api.Calls("search.php"))
	assert.Equal(t, 1, e.api.Calls("lookup.php"))
}

func TestResolveUnresolvedAborts(t *testing.T) {
	e := setup(t)

	rec, doc := e.do(t, http.MethodGet, "/regions/resolve?name=Ghost+Stew", htmx)
	assert.Equal(t, "#notice", rec.Header().Get("HX-Retarget"))
	assert.Equal(t, "Could not find that meal.", strings.TrimSpace(doc.Find(".failure").Text()))
	assert.Zero(t, doc.Find(".meal-detail").Length())
	assert.Zero(t, e.api.Calls("lookup.php"))
}

func TestRegionFullPage(t *testing.T) {
	e := setup(t)

	rec, doc := e.do(t, http.MethodGet, "/regions/category?name=Beef")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, doc.Find("head title").Length())
	assert.Equal(t, "Beef", strings.TrimSpace(doc.Find("#results .category-summary h2").Text()))
	assert.Equal(t, "/regions/grid", doc.Find("#grid").AttrOr("hx-get", ""), "the grid still loads itself")
	assert.Empty(t, strings.TrimSpace(doc.Find("#detail").Text()))
}

func TestRegionFullPageFailure(t *testing.T) {
	e := setup(t)

	_, doc := e.do(t, http.MethodGet, "/regions/search?q=")
	assert.Equal(t, "Please enter a recipe name!", strings.TrimSpace(doc.Find("#notice .failure").Text()))

	_, doc = e.do(t, http.MethodGet, "/regions/search?q=Wellington")
	assert.Equal(t, "Wellington", doc.Find("#search input[name=q]").AttrOr("value", ""))
	assert.Equal(t, []string{"Beef Wellington"}, texts(doc.Find("#results .meal-card h3")))
}

func TestUnknownRegion(t *testing.T) {
	e := setup(t)
	rec, _ := e.do(t, http.MethodGet, "/regions/nope", htmx)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
