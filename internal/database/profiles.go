package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/khrees2412/campuslink/pkg/models"
	"go.uber.org/zap"
)

// requireRole checks that userID exists and has the expected role
func (s *Store) requireRole(ctx context.Context, userID string, role models.UserType) error {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if user.UserType != role {
		return fmt.Errorf("user %s is a %s, expected %s", userID, user.UserType, role)
	}
	return nil
}

// Student profile operations

// UpsertStudentProfile creates or replaces a student's profile
func (s *Store) UpsertStudentProfile(ctx context.Context, p *models.StudentProfile) error {
	if err := models.Validate(p); err != nil {
		return err
	}
	if err := s.requireRole(ctx, p.UserID, models.UserTypeStudent); err != nil {
		return err
	}
	prefs, err := json.Marshal(p.CareerPreferences)
	if err != nil {
		return fmt.Errorf("encode career preferences: %w", err)
	}

	query := `INSERT OR REPLACE INTO student_profiles (user_id, major, minor, graduation_year,
			  career_interests, looking_for_options, skills, career_preferences, resume_url, profile_image_url)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = s.db.ExecContext(ctx, query, p.UserID, p.Major, p.Minor, p.GraduationYear,
		encodeList(p.CareerInterests), encodeList(p.LookingForOptions), encodeList(p.Skills),
		string(prefs), p.ResumeURL, p.ProfileImageURL)
	if err != nil {
		return fmt.Errorf("save student profile: %w", err)
	}
	s.logger.Debug("student profile saved", zap.String("user_id", p.UserID))
	return nil
}

// GetStudentProfile returns a student's profile or ErrNotFound
func (s *Store) GetStudentProfile(ctx context.Context, userID string) (*models.StudentProfile, error) {
	query := `SELECT user_id, major, minor, graduation_year, career_interests, looking_for_options,
			  skills, career_preferences, resume_url, profile_image_url
			  FROM student_profiles WHERE user_id=?`
	p := &models.StudentProfile{}
	var interests, lookingFor, skills, prefs string
	err := s.db.QueryRowContext(ctx, query, userID).Scan(&p.UserID, &p.Major, &p.Minor, &p.GraduationYear,
		&interests, &lookingFor, &skills, &prefs, &p.ResumeURL, &p.ProfileImageURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("student profile %s: %w", userID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if err := decodeStudentLists(p, interests, lookingFor, skills, prefs); err != nil {
		return nil, err
	}
	return p, nil
}

// Alumni profile operations

// UpsertAlumniProfile creates or replaces an alumni profile
func (s *Store) UpsertAlumniProfile(ctx context.Context, p *models.AlumniProfile) error {
	if err := models.Validate(p); err != nil {
		return err
	}
	if err := s.requireRole(ctx, p.UserID, models.UserTypeAlumni); err != nil {
		return err
	}

	query := `INSERT OR REPLACE INTO alumni_profiles (user_id, graduation_year, current_title, current_company,
			  industry, location, expertise, available_for_mentorship, response_streak, sessions_held, badges)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query, p.UserID, p.GraduationYear, p.CurrentTitle, p.CurrentCompany,
		p.Industry, p.Location, encodeList(p.Expertise), p.AvailableForMentorship, p.ResponseStreak,
		p.SessionsHeld, encodeList(p.Badges))
	if err != nil {
		return fmt.Errorf("save alumni profile: %w", err)
	}
	return nil
}

const alumniColumns = `a.user_id, a.graduation_year, a.current_title, a.current_company, a.industry,
	a.location, a.expertise, a.available_for_mentorship, a.response_streak, a.sessions_held, a.badges`

func scanAlumni(row interface{ Scan(...interface{}) error }, dest ...interface{}) (*models.AlumniProfile, error) {
	p := &models.AlumniProfile{}
	var expertise, badges string
	fields := append(dest, &p.UserID, &p.GraduationYear, &p.CurrentTitle, &p.CurrentCompany, &p.Industry,
		&p.Location, &expertise, &p.AvailableForMentorship, &p.ResponseStreak, &p.SessionsHeld, &badges)
	if err := row.Scan(fields...); err != nil {
		return nil, err
	}
	var err error
	if p.Expertise, err = decodeList(expertise); err != nil {
		return nil, fmt.Errorf("decode expertise for %s: %w", p.UserID, err)
	}
	if p.Badges, err = decodeList(badges); err != nil {
		return nil, fmt.Errorf("decode badges for %s: %w", p.UserID, err)
	}
	return p, nil
}

// GetAlumniProfile returns an alumni profile or ErrNotFound
func (s *Store) GetAlumniProfile(ctx context.Context, userID string) (*models.AlumniProfile, error) {
	p, err := scanAlumni(s.db.QueryRowContext(ctx, `SELECT `+alumniColumns+` FROM alumni_profiles a WHERE a.user_id=?`, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("alumni profile %s: %w", userID, ErrNotFound)
	}
	return p, err
}

// ListMentors returns alumni who are available for mentorship
func (s *Store) ListMentors(ctx context.Context) ([]*models.Mentor, error) {
	query := `SELECT u.id, u.full_name, u.email, u.user_type, u.created_date, u.last_active_date, ` + alumniColumns + `
			  FROM users u JOIN alumni_profiles a ON a.user_id = u.id
			  WHERE u.user_type = 'alumni' AND a.available_for_mentorship = 1
			  ORDER BY u.full_name, u.id`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query mentors: %w", err)
	}
	defer rows.Close()

	mentors := []*models.Mentor{}
	for rows.Next() {
		var m models.Mentor
		var userType string
		var lastActive sql.NullTime
		p, err := scanAlumni(rows, &m.ID, &m.FullName, &m.Email, &userType, &m.CreatedDate, &lastActive)
		if err != nil {
			return nil, err
		}
		m.UserType = models.UserType(userType)
		m.LastActiveDate = timePtr(lastActive)
		m.AlumniProfile = *p
		mentors = append(mentors, &m)
	}
	return mentors, rows.Err()
}

// Company profile operations

// UpsertCompanyProfile creates or replaces a company profile
func (s *Store) UpsertCompanyProfile(ctx context.Context, p *models.CompanyProfile) error {
	if err := models.Validate(p); err != nil {
		return err
	}
	if err := s.requireRole(ctx, p.UserID, models.UserTypeCompany); err != nil {
		return err
	}
	query := `INSERT OR REPLACE INTO company_profiles (user_id, company_name, industry, location, website)
			  VALUES (?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query, p.UserID, p.CompanyName, p.Industry, p.Location, p.Website)
	if err != nil {
		return fmt.Errorf("save company profile: %w", err)
	}
	return nil
}

// GetCompanyProfile returns a company profile or ErrNotFound
func (s *Store) GetCompanyProfile(ctx context.Context, userID string) (*models.CompanyProfile, error) {
	p := &models.CompanyProfile{}
	err := s.db.QueryRowContext(ctx, `SELECT user_id, company_name, industry, location, website
			  FROM company_profiles WHERE user_id=?`, userID).
		Scan(&p.UserID, &p.CompanyName, &p.Industry, &p.Location, &p.Website)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("company profile %s: %w", userID, ErrNotFound)
	}
	return p, err
}
