// Package seed loads a YAML fixture of users, profiles, jobs and tasks into
// the store. Records reference each other by email since IDs are assigned
// on insert.
package seed

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/khrees2412/campuslink/pkg/models"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// File is the top level of a seed document
type File struct {
	Users []User `yaml:"users"`
	Jobs  []Job  `yaml:"jobs"`
	Tasks []Task `yaml:"tasks"`
}

// User is a user record with an optional profile matching its role
type User struct {
	models.User    `yaml:",inline"`
	StudentProfile *models.StudentProfile `yaml:"student_profile"`
	AlumniProfile  *models.AlumniProfile  `yaml:"alumni_profile"`
	CompanyProfile *models.CompanyProfile `yaml:"company_profile"`
}

// Job is a posting owned by the company with the given email
type Job struct {
	models.Job `yaml:",inline"`
	Company    string `yaml:"company"`
}

// Task is a to-do for the user with the given email
type Task struct {
	models.Task `yaml:",inline"`
	Owner       string `yaml:"owner"`
}

// Store is the write side of the database the importer needs
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	UpsertStudentProfile(ctx context.Context, p *models.StudentProfile) error
	UpsertAlumniProfile(ctx context.Context, p *models.AlumniProfile) error
	UpsertCompanyProfile(ctx context.Context, p *models.CompanyProfile) error
	CreateJob(ctx context.Context, job *models.Job) error
	CreateTask(ctx context.Context, task *models.Task) error
}

// Result counts what an import created
type Result struct {
	Users    int
	Profiles int
	Jobs     int
	Tasks    int
}

// Decode parses a seed document. Unknown keys are rejected.
func Decode(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	f := &File{}
	if err := dec.Decode(f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return f, nil
}

// ReadFile decodes the seed document at path
func ReadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer fh.Close()
	return Decode(fh)
}

// Import writes f to the store in dependency order: users and their profiles,
// then jobs, then tasks. It stops at the first failure and reports what was
// created up to that point.
func Import(ctx context.Context, store Store, f *File, logger *zap.Logger) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var res Result
	byEmail := make(map[string]string, len(f.Users))

	for i := range f.Users {
		u := &f.Users[i]
		if err := store.CreateUser(ctx, &u.User); err != nil {
			return res, fmt.Errorf("user %q: %w", u.Email, err)
		}
		byEmail[strings.ToLower(u.Email)] = u.ID
		res.Users++

		n, err := importProfiles(ctx, store, u)
		if err != nil {
			return res, fmt.Errorf("profile for %q: %w", u.Email, err)
		}
		res.Profiles += n
		logger.Debug("seeded user", zap.String("email", u.Email), zap.String("user_type", string(u.UserType)))
	}

	for i := range f.Jobs {
		j := &f.Jobs[i]
		id, ok := byEmail[strings.ToLower(j.Company)]
		if !ok {
			return res, fmt.Errorf("job %q: unknown company %q", j.Title, j.Company)
		}
		j.CompanyID = id
		if err := store.CreateJob(ctx, &j.Job); err != nil {
			return res, fmt.Errorf("job %q: %w", j.Title, err)
		}
		res.Jobs++
	}

	for i := range f.Tasks {
		t := &f.Tasks[i]
		id, ok := byEmail[strings.ToLower(t.Owner)]
		if !ok {
			return res, fmt.Errorf("task %q: unknown owner %q", t.Title, t.Owner)
		}
		t.UserID = id
		if err := store.CreateTask(ctx, &t.Task); err != nil {
			return res, fmt.Errorf("task %q: %w", t.Title, err)
		}
		res.Tasks++
	}

	logger.Info("seed imported",
		zap.Int("users", res.Users),
		zap.Int("profiles", res.Profiles),
		zap.Int("jobs", res.Jobs),
		zap.Int("tasks", res.Tasks))
	return res, nil
}

func importProfiles(ctx context.Context, store Store, u *User) (int, error) {
	n := 0
	if p := u.StudentProfile; p != nil {
		p.UserID = u.ID
		if err := store.UpsertStudentProfile(ctx, p); err != nil {
			return n, err
		}
		n++
	}
	if p := u.AlumniProfile; p != nil {
		p.UserID = u.ID
		if err := store.UpsertAlumniProfile(ctx, p); err != nil {
			return n, err
		}
		n++
	}
	if p := u.CompanyProfile; p != nil {
		p.UserID = u.ID
		if err := store.UpsertCompanyProfile(ctx, p); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
