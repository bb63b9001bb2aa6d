package matcher

import (
	"math"
	"testing"

	"github.com/khrees2412/campuslink/pkg/models"
)

func testStudent() *models.Student {
	return &models.Student{
		User: models.User{ID: "s1", FullName: "Jill Parker"},
		Profile: &models.StudentProfile{
			Skills: []string{"Go", "React"},
			CareerPreferences: models.CareerPreferences{
				Industries: []string{"Technology"},
				JobTypes:   []string{"Full-time"},
				Locations:  []string{"Remote"},
			},
		},
	}
}

func testJobs() []*models.Job {
	return []*models.Job{
		{ID: "analyst", Title: "Analyst Intern", Description: "Excel modeling", Industry: "Financial Services",
			JobType: "Internship", Location: "Chicago, IL", Status: models.JobStatusActive},
		{ID: "backend", Title: "Backend Engineer (Go)", Description: "Some React on the side", Industry: "Technology",
			JobType: "Full-time", Location: "Remote", Status: models.JobStatusActive},
		{ID: "closed", Title: "Go Developer", Industry: "Technology", JobType: "Full-time",
			Location: "Remote", Status: models.JobStatusClosed},
	}
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestScore(t *testing.T) {
	jobs := testJobs()
	student := testStudent()

	if got := Score(jobs[1], student); !approx(got, 1.0) {
		t.Errorf("Score(backend) = %v, want 1.0", got)
	}
	if got := Score(jobs[0], student); !approx(got, 0.06) {
		t.Errorf("Score(analyst) = %v, want 0.06", got)
	}
	if got := Score(jobs[1], &models.Student{}); got != 0 {
		t.Errorf("Score without profile = %v, want 0", got)
	}
}

func TestScoreRange(t *testing.T) {
	student := testStudent()
	for _, job := range append(testJobs(), &models.Job{Title: ""}) {
		s := Score(job, student)
		if s < 0 || s > 1 {
			t.Errorf("Score(%q) = %v, out of range", job.ID, s)
		}
	}
}

func TestRecommend(t *testing.T) {
	tests := []struct {
		name  string
		min   float64
		limit int
		want  []string
	}{
		{"threshold", 0.1, 0, []string{"backend"}},
		{"everything active", 0, 0, []string{"backend", "analyst"}},
		{"limit", 0, 1, []string{"backend"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := Recommend(testJobs(), testStudent(), tt.min, tt.limit)
			if len(recs) != len(tt.want) {
				t.Fatalf("Recommend() returned %d jobs, want %d", len(recs), len(tt.want))
			}
			for i, id := range tt.want {
				if recs[i].Job.ID != id {
					t.Errorf("recs[%d] = %s, want %s", i, recs[i].Job.ID, id)
				}
			}
		})
	}
}

func TestMatchPreference(t *testing.T) {
	tests := []struct {
		value     string
		preferred []string
		want      float64
	}{
		{"Technology", []string{"technology"}, 1.0},
		{"Financial Services", []string{"Finance"}, 0.6},
		{"Healthcare", []string{"Technology"}, 0.0},
		{"", []string{"Technology"}, 0.5},
		{"Technology", nil, 0.5},
	}

	for _, tt := range tests {
		if got := matchPreference(tt.value, tt.preferred); got != tt.want {
			t.Errorf("matchPreference(%q, %v) = %v, want %v", tt.value, tt.preferred, got, tt.want)
		}
	}
}

func TestMatchLocation(t *testing.T) {
	tests := []struct {
		location  string
		preferred []string
		want      float64
	}{
		{"New York, NY", []string{"new york"}, 1.0},
		{"Remote (US)", []string{"Boston"}, 0.8},
		{"Austin, Texas", []string{"Dallas, Texas"}, 0.6},
		{"Denver, CO", []string{"Miami"}, 0.3},
		{"", []string{"Miami"}, 0.5},
	}

	for _, tt := range tests {
		job := &models.Job{Location: tt.location}
		if got := matchLocation(job, tt.preferred); got != tt.want {
			t.Errorf("matchLocation(%q, %v) = %v, want %v", tt.location, tt.preferred, got, tt.want)
		}
	}
}
