package browse

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyQuery     = errors.New("empty search query")
	ErrEmptyCategory  = errors.New("empty category name")
	ErrNoResults      = errors.New("no results")
	ErrMealNotFound   = errors.New("meal not found")
	ErrUnresolvedMeal = errors.New("meal id could not be resolved")
)

// NoResultsError carries the query that matched nothing. It matches ErrNoResults.
type NoResultsError struct {
	Query string
}

func (e *NoResultsError) Error() string {
	return fmt.Sprintf("no results for %q", e.Query)
}

func (e *NoResultsError) Is(target error) bool {
	return target == ErrNoResults
}

// Notice is the user-facing text for a flow error.
func Notice(err error) string {
	var nr *NoResultsError
	switch {
	case errors.Is(err, ErrEmptyQuery):
		return "Please enter a recipe name!"
	case errors.Is(err, ErrEmptyCategory):
		return "Pick a category first."
	case errors.As(err, &nr):
		return fmt.Sprintf("No results for %q.", nr.Query)
	case errors.Is(err, ErrNoResults):
		return "No results."
	case errors.Is(err, ErrUnresolvedMeal):
		return "Could not find that meal."
	case errors.Is(err, ErrMealNotFound):
		return "Meal not found."
	default:
		return "Something went wrong loading recipes. Please try again."
	}
}

// Expected reports whether err is one of the user-facing conditions above
// rather than a failure of the API or the cache.
func Expected(err error) bool {
	return errors.Is(err, ErrEmptyQuery) ||
		errors.Is(err, ErrEmptyCategory) ||
		errors.Is(err, ErrNoResults) ||
		errors.Is(err, ErrMealNotFound) ||
		errors.Is(err, ErrUnresolvedMeal)
}
