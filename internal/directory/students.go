package directory

import (
	"strings"
	"time"

	"github.com/khrees2412/campuslink/internal/search"
	"github.com/khrees2412/campuslink/pkg/models"
)

// StudentFilter is the filter state of the student directory that companies
// and alumni browse.
type StudentFilter struct {
	Text           string
	Mode           search.MatchMode `validate:"omitempty,oneof=fuzzy substring"`
	Major          string
	GraduationYear string `validate:"year_or_all"`
	Industries     []string
	JobTypes       []string
	Locations      []string
	SortBy         search.SortKey `validate:"omitempty,oneof=name graduation_year newest"`
}

func (f StudentFilter) Validate() error { return validateFilter(f) }

func (f StudentFilter) SortKey() search.SortKey { return f.SortBy }

func (f StudentFilter) Orderings() search.Orderings[*models.Student] { return studentOrderings }

// Query builds the composite predicate: text over name, major, skills,
// preferred industries and preferred job types, plus one facet per dimension.
func (f StudentFilter) Query() search.Query[*models.Student] {
	mode := f.Mode
	if mode == "" {
		mode = search.ModeFuzzy
	}
	return search.Query[*models.Student]{
		Text:   f.Text,
		Mode:   mode,
		Fields: studentFields,
		Facets: []search.Facet[*models.Student]{
			search.Equal[*models.Student]{Label: "major", Selected: f.Major, Value: studentMajor},
			search.Equal[*models.Student]{Label: "graduation_year", Selected: f.GraduationYear, Value: studentYear},
			search.AnyOf[*models.Student]{Label: "industry", Selected: f.Industries, Values: studentIndustries},
			search.AnyOf[*models.Student]{Label: "job_type", Selected: f.JobTypes, Values: studentJobTypes},
			search.AnyOf[*models.Student]{Label: "location", Selected: f.Locations, Values: studentLocations},
		},
	}
}

// Completeness values for the admin filter
const (
	CompletenessComplete   = "complete"
	CompletenessIncomplete = "incomplete"
)

// AdminStudentFilter is the filter state of the admin student table
type AdminStudentFilter struct {
	Text           string
	Mode           search.MatchMode `validate:"omitempty,oneof=fuzzy substring"`
	Major          string
	GraduationYear string `validate:"year_or_all"`
	Completeness   string `validate:"completeness"`
	ActiveRecently bool
	RecentWindow   time.Duration
	Now            func() time.Time `validate:"-"`
	SortBy         search.SortKey   `validate:"omitempty,oneof=name graduation_year newest"`
}

func (f AdminStudentFilter) Validate() error { return validateFilter(f) }

func (f AdminStudentFilter) SortKey() search.SortKey { return f.SortBy }

func (f AdminStudentFilter) Orderings() search.Orderings[*models.Student] { return studentOrderings }

// Query builds the admin predicate: text over name, email, major and skills,
// plus major, year, completeness and recency facets.
func (f AdminStudentFilter) Query() search.Query[*models.Student] {
	mode := f.Mode
	if mode == "" {
		mode = search.ModeFuzzy
	}
	completeness := search.Predicate[*models.Student]{
		Label:   "completeness",
		Enabled: !search.IsAll(f.Completeness),
		Fn: func(s *models.Student) bool {
			return s.HasProfile() == strings.EqualFold(strings.TrimSpace(f.Completeness), CompletenessComplete)
		},
	}
	return search.Query[*models.Student]{
		Text: f.Text,
		Mode: mode,
		Fields: func(s *models.Student) []interface{} {
			return append([]interface{}{s.Email}, studentFields(s)[:3]...)
		},
		Facets: []search.Facet[*models.Student]{
			search.Equal[*models.Student]{Label: "major", Selected: f.Major, Value: studentMajor},
			search.Equal[*models.Student]{Label: "graduation_year", Selected: f.GraduationYear, Value: studentYear},
			completeness,
			search.Recent[*models.Student]{
				Label:     "active_recently",
				Enabled:   f.ActiveRecently,
				Window:    f.RecentWindow,
				Now:       f.Now,
				Timestamp: func(s *models.Student) *time.Time { return s.LastActiveDate },
			},
		},
	}
}

// StudentOptions lists the choices for each student facet
type StudentOptions struct {
	Majors          []string
	GraduationYears []string
	Industries      []string
	JobTypes        []string
	Locations       []string
}

// OptionsForStudents derives facet option sets from the loaded records
func OptionsForStudents(students []*models.Student) StudentOptions {
	single := func(get func(*models.Student) (string, bool)) func(*models.Student) []string {
		return func(s *models.Student) []string {
			if v, ok := get(s); ok {
				return []string{v}
			}
			return nil
		}
	}
	return StudentOptions{
		Majors:          search.Options(students, single(studentMajor)),
		GraduationYears: search.Options(students, single(studentYear)),
		Industries:      search.Options(students, studentIndustries),
		JobTypes:        search.Options(students, studentJobTypes),
		Locations:       search.Options(students, studentLocations),
	}
}

// studentFields returns name, major, skills, industries and job types. The
// first three are shared with the admin listing.
func studentFields(s *models.Student) []interface{} {
	if s.Profile == nil {
		return []interface{}{s.FullName, nil, nil, nil, nil}
	}
	p := s.Profile
	return []interface{}{
		s.FullName,
		p.Major,
		p.Skills,
		p.CareerPreferences.Industries,
		p.CareerPreferences.JobTypes,
	}
}

func studentMajor(s *models.Student) (string, bool) {
	if s.Profile == nil || s.Profile.Major == "" {
		return "", false
	}
	return s.Profile.Major, true
}

func studentYear(s *models.Student) (string, bool) {
	if s.Profile == nil {
		return "", false
	}
	return yearString(s.Profile.GraduationYear)
}

func studentIndustries(s *models.Student) []string {
	if s.Profile == nil {
		return nil
	}
	return s.Profile.CareerPreferences.Industries
}

func studentJobTypes(s *models.Student) []string {
	if s.Profile == nil {
		return nil
	}
	return s.Profile.CareerPreferences.JobTypes
}

func studentLocations(s *models.Student) []string {
	if s.Profile == nil {
		return nil
	}
	return s.Profile.CareerPreferences.Locations
}

func graduationYear(s *models.Student) int {
	if s.Profile == nil {
		return 0
	}
	return s.Profile.GraduationYear
}

var studentOrderings = search.Orderings[*models.Student]{
	search.SortName: func(a, b *models.Student) bool { return nameLess(a.FullName, b.FullName) },
	search.SortGraduationYear: func(a, b *models.Student) bool {
		return yearLess(graduationYear(a), graduationYear(b))
	},
	search.SortNewest: func(a, b *models.Student) bool { return newestLess(a.CreatedDate, b.CreatedDate) },
}
