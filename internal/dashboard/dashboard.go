// Package dashboard builds the role-specific landing summaries. Each role has
// its own Dashboard variant; For selects one from the session's effective role.
package dashboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/khrees2412/campuslink/internal/database"
	"github.com/khrees2412/campuslink/pkg/models"
)

// ErrUnknownRole is returned by For when no dashboard exists for a role
var ErrUnknownRole = errors.New("unknown role")

// Source is the read side of the store the dashboards draw from
type Source interface {
	GetStudent(ctx context.Context, userID string) (*models.Student, error)
	GetAlumniProfile(ctx context.Context, userID string) (*models.AlumniProfile, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	ListStudents(ctx context.Context) ([]*models.Student, error)
	ListTasks(ctx context.Context, userID string) ([]*models.Task, error)
	Inbox(ctx context.Context, userID string) ([]*models.Message, error)
	FilterJobs(ctx context.Context, criteria database.Criteria) ([]*models.Job, error)
}

// Stat is one labelled figure on a dashboard
type Stat struct {
	Label string
	Value string
}

// Summary is what a dashboard renders
type Summary struct {
	Title string
	Stats []Stat
	Items []string
}

func (s *Summary) add(label string, format string, args ...interface{}) {
	s.Stats = append(s.Stats, Stat{Label: label, Value: fmt.Sprintf(format, args...)})
}

// Dashboard builds the summary for one role
type Dashboard interface {
	Role() models.UserType
	Build(ctx context.Context, src Source, user *models.User) (*Summary, error)
}

// For returns the dashboard for role
func For(role models.UserType) (Dashboard, error) {
	switch role {
	case models.UserTypeStudent:
		return &Student{RecommendLimit: 3}, nil
	case models.UserTypeAlumni:
		return &Alumni{}, nil
	case models.UserTypeParent:
		return &Parent{}, nil
	case models.UserTypeCompany:
		return &Company{}, nil
	case models.UserTypeAdmin:
		return &Admin{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
}

func unread(ctx context.Context, src Source, userID string) (int, error) {
	msgs, err := src.Inbox(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("load inbox: %w", err)
	}
	n := 0
	for _, m := range msgs {
		if m.ReadAt == nil {
			n++
		}
	}
	return n, nil
}

func activeJobs(ctx context.Context, src Source) ([]*models.Job, error) {
	jobs, err := src.FilterJobs(ctx, database.Criteria{"status": string(models.JobStatusActive)})
	if err != nil {
		return nil, fmt.Errorf("load jobs: %w", err)
	}
	return jobs, nil
}
