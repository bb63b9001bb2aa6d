package directory

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/khrees2412/campuslink/internal/search"
	"github.com/khrees2412/campuslink/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

func at(d time.Duration) *time.Time {
	t := now.Add(-d)
	return &t
}

func student(name, email string, created time.Time, active *time.Time, p *models.StudentProfile) *models.Student {
	return &models.Student{
		User: models.User{
			ID:             name,
			FullName:       name,
			Email:          email,
			UserType:       models.UserTypeStudent,
			CreatedDate:    created,
			LastActiveDate: active,
		},
		Profile: p,
	}
}

func sampleStudents() []*models.Student {
	return []*models.Student{
		student("Jordan Lee", "jlee@example.edu", now.Add(-72*time.Hour), at(time.Hour), &models.StudentProfile{
			Major:          "Marketing",
			GraduationYear: 2026,
			Skills:         []string{"SEO", "Copywriting"},
			CareerPreferences: models.CareerPreferences{
				Industries: []string{"Advertising"},
				JobTypes:   []string{"Internship"},
				Locations:  []string{"Chicago"},
			},
		}),
		student("Jill Parker", "jparker@example.edu", now.Add(-48*time.Hour), at(9*24*time.Hour), &models.StudentProfile{
			Major:          "Computer Science",
			GraduationYear: 2025,
			Skills:         []string{"Go", "React"},
			CareerPreferences: models.CareerPreferences{
				Industries: []string{"Technology", "Finance"},
				JobTypes:   []string{"Full-time"},
				Locations:  []string{"Remote", "New York"},
			},
		}),
		student("Sam Ortiz", "sortiz@example.edu", now.Add(-24*time.Hour), nil, nil),
	}
}

func ids(students []*models.Student) []string {
	out := []string{}
	for _, s := range students {
		out = append(out, s.ID)
	}
	return out
}

func TestStudentFilterText(t *testing.T) {
	tests := []struct {
		name string
		f    StudentFilter
		want []string
	}{
		{"empty query keeps everyone", StudentFilter{}, []string{"Jordan Lee", "Jill Parker", "Sam Ortiz"}},
		{"fuzzy over names", StudentFilter{Text: "jr"}, []string{"Jordan Lee", "Jill Parker"}},
		{"skills", StudentFilter{Text: "react"}, []string{"Jill Parker"}},
		{"industries", StudentFilter{Text: "advert"}, []string{"Jordan Lee"}},
		{"job types", StudentFilter{Text: "full"}, []string{"Jill Parker"}},
		{"missing profile never matches profile text", StudentFilter{Text: "marketing"}, []string{"Jordan Lee"}},
		{"substring mode", StudentFilter{Text: "jr", Mode: search.ModeSubstring}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(sampleStudents(), tt.f)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
				t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStudentFilterFacets(t *testing.T) {
	tests := []struct {
		name string
		f    StudentFilter
		want []string
	}{
		{"major", StudentFilter{Major: "computer science"}, []string{"Jill Parker"}},
		{"major all", StudentFilter{Major: "all"}, []string{"Jordan Lee", "Jill Parker", "Sam Ortiz"}},
		{"year", StudentFilter{GraduationYear: "2026"}, []string{"Jordan Lee"}},
		{"industry intersection", StudentFilter{Industries: []string{"Finance", "Healthcare"}}, []string{"Jill Parker"}},
		{"job type", StudentFilter{JobTypes: []string{"internship"}}, []string{"Jordan Lee"}},
		{"location", StudentFilter{Locations: []string{"remote"}}, []string{"Jill Parker"}},
		{"text and facet", StudentFilter{Text: "j", Major: "Marketing"}, []string{"Jordan Lee"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(sampleStudents(), tt.f)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestStudentFilterSort(t *testing.T) {
	got, err := Apply(sampleStudents(), StudentFilter{SortBy: search.SortName})
	require.NoError(t, err)
	assert.Equal(t, []string{"Jill Parker", "Jordan Lee", "Sam Ortiz"}, ids(got))

	got, err = Apply(sampleStudents(), StudentFilter{SortBy: search.SortGraduationYear})
	require.NoError(t, err)
	assert.Equal(t, []string{"Jill Parker", "Jordan Lee", "Sam Ortiz"}, ids(got), "unknown year sorts last")

	got, err = Apply(sampleStudents(), StudentFilter{SortBy: search.SortNewest})
	require.NoError(t, err)
	assert.Equal(t, []string{"Sam Ortiz", "Jill Parker", "Jordan Lee"}, ids(got))
}

func TestFilterValidation(t *testing.T) {
	_, err := Apply(sampleStudents(), StudentFilter{GraduationYear: "next year"})
	assert.True(t, errors.Is(err, ErrInvalidFilter), "got %v", err)

	_, err = Apply(sampleStudents(), StudentFilter{SortBy: "salary"})
	assert.True(t, errors.Is(err, ErrInvalidFilter), "got %v", err)

	_, err = Apply(sampleStudents(), AdminStudentFilter{Completeness: "half"})
	assert.True(t, errors.Is(err, ErrInvalidFilter), "got %v", err)

	_, err = Apply(sampleStudents(), StudentFilter{GraduationYear: "All"})
	assert.NoError(t, err)

	for _, c := range []string{"All", "ALL", ""} {
		got, err := Apply(sampleStudents(), AdminStudentFilter{Completeness: c})
		require.NoError(t, err, "completeness %q", c)
		assert.Len(t, got, 3, "completeness %q", c)
	}
	got, err := Apply(sampleStudents(), AdminStudentFilter{Completeness: "Incomplete"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Sam Ortiz"}, ids(got))
}

func TestAdminStudentFilter(t *testing.T) {
	clock := func() time.Time { return now }
	tests := []struct {
		name string
		f    AdminStudentFilter
		want []string
	}{
		{"email search", AdminStudentFilter{Text: "sortiz"}, []string{"Sam Ortiz"}},
		{"complete", AdminStudentFilter{Completeness: "complete"}, []string{"Jordan Lee", "Jill Parker"}},
		{"incomplete", AdminStudentFilter{Completeness: "incomplete"}, []string{"Sam Ortiz"}},
		{"all", AdminStudentFilter{Completeness: "all"}, []string{"Jordan Lee", "Jill Parker", "Sam Ortiz"}},
		{"active in last 7 days", AdminStudentFilter{ActiveRecently: true, Now: clock}, []string{"Jordan Lee"}},
		{"wider window", AdminStudentFilter{ActiveRecently: true, RecentWindow: 10 * 24 * time.Hour, Now: clock}, []string{"Jordan Lee", "Jill Parker"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(sampleStudents(), tt.f)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestOptionsForStudents(t *testing.T) {
	opts := OptionsForStudents(sampleStudents())
	assert.Equal(t, []string{"all", "Computer Science", "Marketing"}, opts.Majors)
	assert.Equal(t, []string{"all", "2025", "2026"}, opts.GraduationYears)
	assert.Equal(t, []string{"all", "Advertising", "Finance", "Technology"}, opts.Industries)
}

func sampleMentors() []*models.Mentor {
	return []*models.Mentor{
		{
			User: models.User{ID: "m1", FullName: "Avery Chen", LastActiveDate: at(2 * 24 * time.Hour)},
			AlumniProfile: models.AlumniProfile{
				GraduationYear: 2015, CurrentTitle: "Staff Engineer", CurrentCompany: "Globex",
				Industry: "Technology", Location: "Seattle", Expertise: []string{"Distributed Systems"},
			},
		},
		{
			User: models.User{ID: "m2", FullName: "Blake Rivera"},
			AlumniProfile: models.AlumniProfile{
				GraduationYear: 2010, CurrentTitle: "Brand Director", CurrentCompany: "Initech",
				Industry: "Advertising", Location: "Chicago",
			},
		},
	}
}

func mentorIDs(ms []*models.Mentor) []string {
	out := []string{}
	for _, m := range ms {
		out = append(out, m.ID)
	}
	return out
}

func TestMentorFilter(t *testing.T) {
	tests := []struct {
		name string
		f    MentorFilter
		want []string
	}{
		{"substring by default", MentorFilter{Text: "sfe"}, []string{}},
		{"title", MentorFilter{Text: "director"}, []string{"m2"}},
		{"expertise", MentorFilter{Text: "systems"}, []string{"m1"}},
		{"fuzzy when configured", MentorFilter{Text: "sfe", Mode: search.ModeFuzzy}, []string{"m1"}},
		{"industry", MentorFilter{Industry: "advertising"}, []string{"m2"}},
		{"location", MentorFilter{Location: "Seattle"}, []string{"m1"}},
		{"recent", MentorFilter{ActiveRecently: true, Now: func() time.Time { return now }}, []string{"m1"}},
		{"sort by year", MentorFilter{SortBy: search.SortGraduationYear}, []string{"m2", "m1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(sampleMentors(), tt.f)
			require.NoError(t, err)
			assert.Equal(t, tt.want, mentorIDs(got))
		})
	}
}

func TestLabelAndSplitList(t *testing.T) {
	assert.Equal(t, "Graduation Year", Label("graduation_year"))
	assert.Equal(t, []string{"Finance", "Tech"}, SplitList(" Finance, ,Tech "))
	assert.Nil(t, SplitList(""))
}
