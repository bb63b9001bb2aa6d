package directory

import (
	"time"

	"github.com/khrees2412/campuslink/internal/search"
	"github.com/khrees2412/campuslink/pkg/models"
)

// MentorFilter is the filter state of the mentorship directory. Unlike the
// student listings it defaults to substring matching.
type MentorFilter struct {
	Text           string
	Mode           search.MatchMode `validate:"omitempty,oneof=fuzzy substring"`
	Industry       string
	Location       string
	ActiveRecently bool
	RecentWindow   time.Duration
	Now            func() time.Time `validate:"-"`
	SortBy         search.SortKey   `validate:"omitempty,oneof=name graduation_year newest"`
}

func (f MentorFilter) Validate() error { return validateFilter(f) }

func (f MentorFilter) SortKey() search.SortKey { return f.SortBy }

func (f MentorFilter) Orderings() search.Orderings[*models.Mentor] { return mentorOrderings }

// Query searches name, title, company, industry and expertise tags
func (f MentorFilter) Query() search.Query[*models.Mentor] {
	mode := f.Mode
	if mode == "" {
		mode = search.ModeSubstring
	}
	return search.Query[*models.Mentor]{
		Text: f.Text,
		Mode: mode,
		Fields: func(m *models.Mentor) []interface{} {
			return []interface{}{m.FullName, m.CurrentTitle, m.CurrentCompany, m.Industry, m.Expertise}
		},
		Facets: []search.Facet[*models.Mentor]{
			search.Equal[*models.Mentor]{Label: "industry", Selected: f.Industry, Value: mentorIndustry},
			search.Equal[*models.Mentor]{Label: "location", Selected: f.Location, Value: mentorLocation},
			search.Recent[*models.Mentor]{
				Label:     "active_recently",
				Enabled:   f.ActiveRecently,
				Window:    f.RecentWindow,
				Now:       f.Now,
				Timestamp: func(m *models.Mentor) *time.Time { return m.LastActiveDate },
			},
		},
	}
}

// MentorOptions lists the choices for each mentor facet
type MentorOptions struct {
	Industries []string
	Locations  []string
}

// OptionsForMentors derives facet option sets from the loaded records
func OptionsForMentors(mentors []*models.Mentor) MentorOptions {
	return MentorOptions{
		Industries: search.Options(mentors, func(m *models.Mentor) []string { return []string{m.Industry} }),
		Locations:  search.Options(mentors, func(m *models.Mentor) []string { return []string{m.Location} }),
	}
}

func mentorIndustry(m *models.Mentor) (string, bool) { return m.Industry, m.Industry != "" }

func mentorLocation(m *models.Mentor) (string, bool) { return m.Location, m.Location != "" }

var mentorOrderings = search.Orderings[*models.Mentor]{
	search.SortName: func(a, b *models.Mentor) bool { return nameLess(a.FullName, b.FullName) },
	search.SortGraduationYear: func(a, b *models.Mentor) bool {
		return yearLess(a.GraduationYear, b.GraduationYear)
	},
	search.SortNewest: func(a, b *models.Mentor) bool { return newestLess(a.CreatedDate, b.CreatedDate) },
}
