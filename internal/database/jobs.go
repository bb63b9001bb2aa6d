package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/khrees2412/campuslink/pkg/models"
	"go.uber.org/zap"
)

var jobColumns = map[string]bool{
	"id":         true,
	"company_id": true,
	"status":     true,
	"industry":   true,
	"job_type":   true,
	"location":   true,
}

const jobSelect = `SELECT id, company_id, title, description, location, industry, job_type,
	status, created_date, view_count FROM jobs`

// CreateJob inserts a job posting owned by a company user
func (s *Store) CreateJob(ctx context.Context, job *models.Job) error {
	if job.Status == "" {
		job.Status = models.JobStatusActive
	}
	if err := models.Validate(job); err != nil {
		return err
	}
	if err := s.requireRole(ctx, job.CompanyID, models.UserTypeCompany); err != nil {
		return err
	}
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.CreatedDate.IsZero() {
		job.CreatedDate = time.Now().UTC()
	}

	query := `INSERT INTO jobs (id, company_id, title, description, location, industry, job_type,
			  status, created_date, view_count) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query, job.ID, job.CompanyID, job.Title, job.Description, job.Location,
		job.Industry, job.JobType, string(job.Status), job.CreatedDate, job.ViewCount)
	if isUniqueViolation(err) {
		return fmt.Errorf("job %s: %w", job.ID, ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	s.logger.Debug("job created", zap.String("id", job.ID), zap.String("company_id", job.CompanyID))
	return nil
}

func scanJob(row interface{ Scan(...interface{}) error }) (*models.Job, error) {
	job := &models.Job{}
	var status string
	err := row.Scan(&job.ID, &job.CompanyID, &job.Title, &job.Description, &job.Location,
		&job.Industry, &job.JobType, &status, &job.CreatedDate, &job.ViewCount)
	if err != nil {
		return nil, err
	}
	job.Status = models.JobStatus(status)
	return job, nil
}

// GetJob returns a job by ID or ErrNotFound
func (s *Store) GetJob(ctx context.Context, id string) (*models.Job, error) {
	job, err := scanJob(s.db.QueryRowContext(ctx, jobSelect+` WHERE id=?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("job %s: %w", id, ErrNotFound)
	}
	return job, err
}

// ListJobs returns every job, newest first
func (s *Store) ListJobs(ctx context.Context) ([]*models.Job, error) {
	return s.FilterJobs(ctx, nil)
}

// FilterJobs returns jobs matching every criteria key exactly
func (s *Store) FilterJobs(ctx context.Context, criteria Criteria) ([]*models.Job, error) {
	where, args, err := criteria.where(jobColumns, "")
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, jobSelect+where+` ORDER BY created_date DESC, id`, args...)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}
	defer rows.Close()

	jobs := []*models.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// SetJobStatus opens or closes a posting
func (s *Store) SetJobStatus(ctx context.Context, id string, status models.JobStatus) error {
	if status != models.JobStatusActive && status != models.JobStatusClosed {
		return fmt.Errorf("invalid job status %q", status)
	}
	res, err := s.db.ExecContext(ctx, `UPDATE jobs SET status=? WHERE id=?`, string(status), id)
	if err != nil {
		return fmt.Errorf("update job status: %w", err)
	}
	return expectOne(res, "job", id)
}

// RecordJobView increments a posting's view counter
func (s *Store) RecordJobView(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE jobs SET view_count = view_count + 1 WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("record job view: %w", err)
	}
	return expectOne(res, "job", id)
}

// DeleteJob removes a posting
func (s *Store) DeleteJob(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM jobs WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	return expectOne(res, "job", id)
}
