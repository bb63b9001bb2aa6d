package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/khrees2412/campuslink/internal/database"
	"github.com/khrees2412/campuslink/internal/matcher"
	"github.com/khrees2412/campuslink/internal/search"
	"github.com/khrees2412/campuslink/pkg/models"
)

// Student shows profile completeness, open tasks, unread messages and the
// best matching jobs.
type Student struct {
	RecommendLimit int
	MinScore       float64
}

func (d *Student) Role() models.UserType { return models.UserTypeStudent }

func (d *Student) Build(ctx context.Context, src Source, user *models.User) (*Summary, error) {
	student, err := src.GetStudent(ctx, user.ID)
	if errors.Is(err, database.ErrNotFound) {
		// acting as a student through a role override
		student = &models.Student{User: *user}
	} else if err != nil {
		return nil, fmt.Errorf("load student: %w", err)
	}

	tasks, err := src.ListTasks(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	open := 0
	for _, t := range tasks {
		if !t.Done {
			open++
		}
	}
	msgs, err := unread(ctx, src, user.ID)
	if err != nil {
		return nil, err
	}
	jobs, err := activeJobs(ctx, src)
	if err != nil {
		return nil, err
	}

	s := &Summary{Title: "Welcome back, " + user.FullName}
	s.add("Profile", "%d%% complete", Completeness(student.Profile))
	s.add("Open tasks", "%d", open)
	s.add("Unread messages", "%d", msgs)

	if student.Profile == nil {
		s.Items = append(s.Items, "Complete your profile to get job recommendations")
		return s, nil
	}
	for _, rec := range matcher.Recommend(jobs, student, d.MinScore, d.RecommendLimit) {
		s.Items = append(s.Items, fmt.Sprintf("%s (%s) %.0f%% match", rec.Job.Title, rec.Job.Location, rec.Score*100))
	}
	return s, nil
}

// Completeness is the share of optional profile fields that are filled in
func Completeness(p *models.StudentProfile) int {
	if p == nil {
		return 0
	}
	filled := []bool{
		p.Major != "",
		p.Minor != "",
		p.GraduationYear != 0,
		len(p.CareerInterests) > 0,
		len(p.LookingForOptions) > 0,
		len(p.Skills) > 0,
		len(p.CareerPreferences.Locations) > 0,
		len(p.CareerPreferences.Industries) > 0,
		len(p.CareerPreferences.JobTypes) > 0,
		p.ResumeURL != "",
		p.ProfileImageURL != "",
	}
	n := 0
	for _, ok := range filled {
		if ok {
			n++
		}
	}
	return n * 100 / len(filled)
}

// Alumni shows mentorship standing
type Alumni struct{}

func (d *Alumni) Role() models.UserType { return models.UserTypeAlumni }

func (d *Alumni) Build(ctx context.Context, src Source, user *models.User) (*Summary, error) {
	msgs, err := unread(ctx, src, user.ID)
	if err != nil {
		return nil, err
	}
	s := &Summary{Title: "Mentorship hub"}
	profile, err := src.GetAlumniProfile(ctx, user.ID)
	if errors.Is(err, database.ErrNotFound) {
		s.add("Unread messages", "%d", msgs)
		s.Items = append(s.Items, "Set up your alumni profile to appear in the mentor directory")
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load alumni profile: %w", err)
	}

	availability := "not accepting mentees"
	if profile.AvailableForMentorship {
		availability = "accepting mentees"
	}
	s.add("Availability", "%s", availability)
	s.add("Unread messages", "%d", msgs)
	s.add("Sessions held", "%d", profile.SessionsHeld)
	s.add("Response streak", "%d days", profile.ResponseStreak)
	if len(profile.Badges) > 0 {
		s.add("Badges", "%s", strings.Join(profile.Badges, ", "))
	}
	return s, nil
}

// Parent shows an overview of the platform
type Parent struct{}

func (d *Parent) Role() models.UserType { return models.UserTypeParent }

func (d *Parent) Build(ctx context.Context, src Source, user *models.User) (*Summary, error) {
	jobs, err := activeJobs(ctx, src)
	if err != nil {
		return nil, err
	}
	students, err := src.ListStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("load students: %w", err)
	}
	msgs, err := unread(ctx, src, user.ID)
	if err != nil {
		return nil, err
	}

	s := &Summary{Title: "Family overview"}
	s.add("Open positions", "%d", len(jobs))
	s.add("Students on campuslink", "%d", len(students))
	s.add("Unread messages", "%d", msgs)
	return s, nil
}

// Company shows posting performance
type Company struct{}

func (d *Company) Role() models.UserType { return models.UserTypeCompany }

func (d *Company) Build(ctx context.Context, src Source, user *models.User) (*Summary, error) {
	jobs, err := src.FilterJobs(ctx, database.Criteria{"company_id": user.ID})
	if err != nil {
		return nil, fmt.Errorf("load jobs: %w", err)
	}

	active, views := 0, 0
	var top *models.Job
	for _, j := range jobs {
		if j.Status == models.JobStatusActive {
			active++
		}
		views += j.ViewCount
		if top == nil || j.ViewCount > top.ViewCount {
			top = j
		}
	}

	s := &Summary{Title: "Recruiting"}
	s.add("Active postings", "%d", active)
	s.add("Closed postings", "%d", len(jobs)-active)
	s.add("Total views", "%d", views)
	if top != nil && top.ViewCount > 0 {
		s.Items = append(s.Items, fmt.Sprintf("Most viewed: %s (%d views)", top.Title, top.ViewCount))
	}
	return s, nil
}

// Admin shows platform health. Now and Window default to the wall clock and
// the seven day activity window.
type Admin struct {
	Now    func() time.Time
	Window time.Duration
}

func (d *Admin) Role() models.UserType { return models.UserTypeAdmin }

func (d *Admin) Build(ctx context.Context, src Source, user *models.User) (*Summary, error) {
	users, err := src.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	students, err := src.ListStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("load students: %w", err)
	}

	perRole := make(map[models.UserType]int)
	for _, u := range users {
		perRole[u.UserType]++
	}
	incomplete := 0
	for _, st := range students {
		if !st.HasProfile() {
			incomplete++
		}
	}
	window := d.Window
	if window <= 0 {
		window = search.DefaultRecentWindow
	}
	recent := search.Filter(users, search.Query[*models.User]{
		Facets: []search.Facet[*models.User]{
			search.Recent[*models.User]{
				Label:     "active_recently",
				Enabled:   true,
				Window:    window,
				Now:       d.Now,
				Timestamp: func(u *models.User) *time.Time { return u.LastActiveDate },
			},
		},
	})

	s := &Summary{Title: "Administration"}
	s.add("Users", "%d", len(users))
	s.add("Students without a profile", "%d", incomplete)
	s.add(fmt.Sprintf("Active in the last %d days", int(window.Hours()/24)), "%d", len(recent))
	roles := make([]string, 0, len(perRole))
	for role, n := range perRole {
		roles = append(roles, fmt.Sprintf("%s: %d", role, n))
	}
	sort.Strings(roles)
	s.Items = roles
	return s, nil
}
