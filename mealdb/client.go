package mealdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/gregjones/httpcache"
)

const DefaultBaseURL = "https://www.themealdb.com/api/json/v1/1"

// ErrNotFound is returned by lookups that the API answers with an empty meal list.
var ErrNotFound = errors.New("mealdb: meal not found")

// StatusError is returned for any non-200 answer.
type StatusError struct {
	Endpoint string
	Code     int
	Status   string
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %s", e.Endpoint, e.Status)
}

type Client struct {
	http    *http.Client
	baseURL *url.URL
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithBaseURL(raw string) Option {
	return func(c *Client) {
		if u, err := url.Parse(raw); err == nil {
			c.baseURL = u
		}
	}
}

func New(opts ...Option) *Client {
	u, _ := url.Parse(DefaultBaseURL)
	c := &Client{
		http:    http.DefaultClient,
		baseURL: u,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// NewHTTPClient builds the client used against the API. With cached set, responses
// are kept by an in-memory RFC 7234 cache in front of the default transport.
func NewHTTPClient(timeout time.Duration, cached bool) *http.Client {
	h := &http.Client{Timeout: timeout}
	if cached {
		h.Transport = httpcache.NewMemoryCacheTransport()
	}
	return h
}

func (c *Client) newReq(ctx context.Context, endpoint string, q map[string]string) (*http.Request, error) {
	u := *c.baseURL
	u.Path = path.Join(u.Path, endpoint)
	qq := u.Query()
	for k, v := range q {
		qq.Set(k, v)
	}
	u.RawQuery = qq.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) doJSON(ctx context.Context, endpoint string, q map[string]string, out any) error {
	req, err := c.newReq(ctx, endpoint, q)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", endpoint, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Endpoint: endpoint, Code: resp.StatusCode, Status: resp.Status, Body: string(b)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", endpoint, err)
	}
	return nil
}

// Categories returns every category with its thumbnail and description.
func (c *Client) Categories(ctx context.Context) ([]CategoryJSON, error) {
	var b CategoriesBody
	if err := c.doJSON(ctx, "categories.php", nil, &b); err != nil {
		return nil, err
	}
	return b.Categories, nil
}

// FilterByCategory returns the meal summaries of a category. Unknown categories
// yield an empty list, not an error.
func (c *Client) FilterByCategory(ctx context.Context, category string) ([]MealJSON, error) {
	var b MealsBody
	if err := c.doJSON(ctx, "filter.php", map[string]string{"c": category}, &b); err != nil {
		return nil, err
	}
	return b.Meals, nil
}

// SearchByName returns full meal records whose name contains name.
func (c *Client) SearchByName(ctx context.Context, name string) ([]MealJSON, error) {
	var b MealsBody
	if err := c.doJSON(ctx, "search.php", map[string]string{"s": name}, &b); err != nil {
		return nil, err
	}
	return b.Meals, nil
}

// LookupByID returns the full record of one meal or ErrNotFound.
func (c *Client) LookupByID(ctx context.Context, id string) (MealJSON, error) {
	var b MealsBody
	if err := c.doJSON(ctx, "lookup.php", map[string]string{"i": id}, &b); err != nil {
		return nil, err
	}
	if len(b.Meals) == 0 || b.Meals[0] == nil {
		return nil, ErrNotFound
	}
	return b.Meals[0], nil
}

// Random returns the full record of a random meal.
func (c *Client) Random(ctx context.Context) (MealJSON, error) {
	var b MealsBody
	if err := c.doJSON(ctx, "random.php", nil, &b); err != nil {
		return nil, err
	}
	if len(b.Meals) == 0 || b.Meals[0] == nil {
		return nil, ErrNotFound
	}
	return b.Meals[0], nil
}
