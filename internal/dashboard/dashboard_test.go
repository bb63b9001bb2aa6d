package dashboard

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/khrees2412/campuslink/internal/database"
	"github.com/khrees2412/campuslink/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource serves fixed records and fails with err when set
type fakeSource struct {
	users    []*models.User
	students []*models.Student
	alumni   map[string]*models.AlumniProfile
	tasks    []*models.Task
	inbox    []*models.Message
	jobs     []*models.Job
	err      error
}

func (f *fakeSource) GetStudent(ctx context.Context, id string) (*models.Student, error) {
	for _, s := range f.students {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, fmt.Errorf("student %s: %w", id, database.ErrNotFound)
}

func (f *fakeSource) GetAlumniProfile(ctx context.Context, id string) (*models.AlumniProfile, error) {
	if p, ok := f.alumni[id]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("alumni profile %s: %w", id, database.ErrNotFound)
}

func (f *fakeSource) ListUsers(ctx context.Context) ([]*models.User, error) { return f.users, f.err }

func (f *fakeSource) ListStudents(ctx context.Context) ([]*models.Student, error) {
	return f.students, f.err
}

func (f *fakeSource) ListTasks(ctx context.Context, userID string) ([]*models.Task, error) {
	return f.tasks, f.err
}

func (f *fakeSource) Inbox(ctx context.Context, userID string) ([]*models.Message, error) {
	return f.inbox, f.err
}

func (f *fakeSource) FilterJobs(ctx context.Context, criteria database.Criteria) ([]*models.Job, error) {
	out := []*models.Job{}
	for _, j := range f.jobs {
		if v, ok := criteria["status"]; ok && string(j.Status) != v {
			continue
		}
		if v, ok := criteria["company_id"]; ok && j.CompanyID != v {
			continue
		}
		out = append(out, j)
	}
	return out, f.err
}

func stat(t *testing.T, s *Summary, label string) string {
	t.Helper()
	for _, st := range s.Stats {
		if st.Label == label {
			return st.Value
		}
	}
	t.Fatalf("stat %q not found in %+v", label, s.Stats)
	return ""
}

func TestFor(t *testing.T) {
	for _, role := range models.UserTypes {
		d, err := For(role)
		require.NoError(t, err)
		assert.Equal(t, role, d.Role())
	}

	_, err := For("visitor")
	assert.True(t, errors.Is(err, ErrUnknownRole))
}

func TestStudentDashboard(t *testing.T) {
	read := time.Now()
	user := models.User{ID: "s1", FullName: "Jill Parker", UserType: models.UserTypeStudent}
	src := &fakeSource{
		students: []*models.Student{{
			User: user,
			Profile: &models.StudentProfile{
				Major:  "Computer Science",
				Skills: []string{"Go"},
				CareerPreferences: models.CareerPreferences{
					Industries: []string{"Technology"},
				},
			},
		}},
		tasks: []*models.Task{{Title: "Upload resume"}, {Title: "RSVP", Done: true}},
		inbox: []*models.Message{{Body: "hi"}, {Body: "seen", ReadAt: &read}},
		jobs: []*models.Job{
			{Title: "Go Engineer", Industry: "Technology", Status: models.JobStatusActive},
			{Title: "Closed Go role", Industry: "Technology", Status: models.JobStatusClosed},
		},
	}

	d, _ := For(models.UserTypeStudent)
	s, err := d.Build(context.Background(), src, &user)
	require.NoError(t, err)

	assert.Equal(t, "27% complete", stat(t, s, "Profile"))
	assert.Equal(t, "1", stat(t, s, "Open tasks"))
	assert.Equal(t, "1", stat(t, s, "Unread messages"))
	require.Len(t, s.Items, 1)
	assert.Contains(t, s.Items[0], "Go Engineer")
}

func TestStudentDashboardWithoutProfile(t *testing.T) {
	user := models.User{ID: "s2", FullName: "Sam Ortiz", UserType: models.UserTypeStudent}
	src := &fakeSource{students: []*models.Student{{User: user}}}

	s, err := (&Student{}).Build(context.Background(), src, &user)
	require.NoError(t, err)
	assert.Equal(t, "0% complete", stat(t, s, "Profile"))
	assert.Equal(t, []string{"Complete your profile to get job recommendations"}, s.Items)
}

func TestAlumniDashboard(t *testing.T) {
	user := models.User{ID: "a1", FullName: "Avery Chen", UserType: models.UserTypeAlumni}
	src := &fakeSource{alumni: map[string]*models.AlumniProfile{
		"a1": {UserID: "a1", AvailableForMentorship: true, SessionsHeld: 4, ResponseStreak: 3, Badges: []string{"Top Mentor"}},
	}}

	s, err := (&Alumni{}).Build(context.Background(), src, &user)
	require.NoError(t, err)
	assert.Equal(t, "accepting mentees", stat(t, s, "Availability"))
	assert.Equal(t, "4", stat(t, s, "Sessions held"))
	assert.Equal(t, "3 days", stat(t, s, "Response streak"))
	assert.Equal(t, "Top Mentor", stat(t, s, "Badges"))

	other := models.User{ID: "a2", UserType: models.UserTypeAlumni}
	s, err = (&Alumni{}).Build(context.Background(), src, &other)
	require.NoError(t, err)
	assert.Len(t, s.Items, 1)
}

func TestParentDashboard(t *testing.T) {
	src := &fakeSource{
		students: []*models.Student{{}, {}},
		jobs:     []*models.Job{{Status: models.JobStatusActive}, {Status: models.JobStatusClosed}},
	}
	s, err := (&Parent{}).Build(context.Background(), src, &models.User{ID: "p1"})
	require.NoError(t, err)
	assert.Equal(t, "1", stat(t, s, "Open positions"))
	assert.Equal(t, "2", stat(t, s, "Students on campuslink"))
}

func TestCompanyDashboard(t *testing.T) {
	src := &fakeSource{jobs: []*models.Job{
		{CompanyID: "c1", Title: "Intern", Status: models.JobStatusActive, ViewCount: 12},
		{CompanyID: "c1", Title: "Analyst", Status: models.JobStatusClosed, ViewCount: 30},
		{CompanyID: "c2", Title: "Other", Status: models.JobStatusActive, ViewCount: 99},
	}}
	s, err := (&Company{}).Build(context.Background(), src, &models.User{ID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, "1", stat(t, s, "Active postings"))
	assert.Equal(t, "1", stat(t, s, "Closed postings"))
	assert.Equal(t, "42", stat(t, s, "Total views"))
	assert.Equal(t, []string{"Most viewed: Analyst (30 views)"}, s.Items)
}

func TestAdminDashboard(t *testing.T) {
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	recent := now.Add(-48 * time.Hour)
	stale := now.Add(-8 * 24 * time.Hour)
	src := &fakeSource{
		users: []*models.User{
			{ID: "s1", UserType: models.UserTypeStudent, LastActiveDate: &recent},
			{ID: "s2", UserType: models.UserTypeStudent, LastActiveDate: &stale},
			{ID: "a1", UserType: models.UserTypeAdmin},
		},
		students: []*models.Student{
			{User: models.User{ID: "s1"}, Profile: &models.StudentProfile{}},
			{User: models.User{ID: "s2"}},
		},
	}

	d := &Admin{Now: func() time.Time { return now }}
	s, err := d.Build(context.Background(), src, &models.User{ID: "a1"})
	require.NoError(t, err)
	assert.Equal(t, "3", stat(t, s, "Users"))
	assert.Equal(t, "1", stat(t, s, "Students without a profile"))
	assert.Equal(t, "1", stat(t, s, "Active in the last 7 days"))
	assert.Equal(t, []string{"admin: 1", "student: 2"}, s.Items)
}

func TestBuildPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	src := &fakeSource{err: boom}
	for _, role := range models.UserTypes {
		d, _ := For(role)
		if role == models.UserTypeAlumni {
			src.alumni = map[string]*models.AlumniProfile{"u": {UserID: "u"}}
		}
		_, err := d.Build(context.Background(), src, &models.User{ID: "u"})
		assert.True(t, errors.Is(err, boom), "%s: got %v", role, err)
	}
}
