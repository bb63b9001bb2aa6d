// Package directory binds the generic search primitives to the three
// directory listings: the student directory, the admin student table and the
// mentor directory. Each listing has its own filter state and option sets.
package directory

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/khrees2412/campuslink/internal/search"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrInvalidFilter is returned when a filter holds a value outside its option set
var ErrInvalidFilter = errors.New("invalid filter")

// Listing is implemented by every page filter
type Listing[T any] interface {
	Validate() error
	Query() search.Query[T]
	SortKey() search.SortKey
	Orderings() search.Orderings[T]
}

// Apply validates the filter, then filters and sorts records
func Apply[T any](records []T, l Listing[T]) ([]T, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return search.Sort(search.Filter(records, l.Query()), l.SortKey(), l.Orderings()), nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("year_or_all", validateYearOrAll)
	v.RegisterValidation("completeness", validateCompleteness)
	return v
}

// validateYearOrAll accepts "", "all" or a four digit year
func validateYearOrAll(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	if search.IsAll(s) {
		return true
	}
	year, err := strconv.Atoi(s)
	return err == nil && year >= 1900 && year <= 2100
}

// validateCompleteness accepts "all", "complete" or "incomplete" in any case
func validateCompleteness(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	return search.IsAll(s) ||
		strings.EqualFold(s, CompletenessComplete) ||
		strings.EqualFold(s, CompletenessIncomplete)
}

func validateFilter(f interface{}) error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s=%q", strings.ToLower(fe.Field()), fe.Value()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidFilter, strings.Join(msgs, ", "))
}

func yearString(year int) (string, bool) {
	if year == 0 {
		return "", false
	}
	return strconv.Itoa(year), true
}

// yearLess orders ascending with unknown years last
func yearLess(a, b int) bool {
	if a == 0 {
		return false
	}
	return b == 0 || a < b
}

func nameLess(a, b string) bool {
	return foldCompare(a) < foldCompare(b)
}

func foldCompare(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

func newestLess(a, b time.Time) bool {
	return a.After(b)
}

// Label turns a facet key such as "graduation_year" into "Graduation Year"
func Label(key string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(key, "_", " "))
}

// SplitList parses a comma separated flag value into trimmed, non-empty items
func SplitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
