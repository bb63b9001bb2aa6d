package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/khrees2412/campuslink/pkg/models"
	"go.uber.org/zap"
)

// Criteria is a plain key/value filter, e.g. {"user_type": "student"}.
// Keys are column names and must be allowed for the table being queried.
type Criteria map[string]interface{}

var userColumns = map[string]bool{
	"id":        true,
	"email":     true,
	"full_name": true,
	"user_type": true,
}

// where renders criteria as a deterministic AND-ed clause
func (c Criteria) where(allowed map[string]bool, prefix string) (string, []interface{}, error) {
	if len(c) == 0 {
		return "", nil, nil
	}
	keys := make([]string, 0, len(c))
	for k := range c {
		if !allowed[k] {
			return "", nil, fmt.Errorf("%w: unknown field %q", ErrInvalidCriteria, k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	clauses := make([]string, 0, len(keys))
	args := make([]interface{}, 0, len(keys))
	for _, k := range keys {
		clauses = append(clauses, prefix+k+" = ?")
		args = append(args, c[k])
	}
	return " WHERE " + strings.Join(clauses, " AND "), args, nil
}

func encodeList(values []string) string {
	if values == nil {
		values = []string{}
	}
	b, _ := json.Marshal(values)
	return string(b)
}

func decodeList(raw string) ([]string, error) {
	var out []string
	if raw == "" {
		return nil, nil
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// decodeStudentLists fills the JSON-encoded columns of a student profile
func decodeStudentLists(p *models.StudentProfile, interests, lookingFor, skills, prefs string) error {
	var err error
	if p.CareerInterests, err = decodeList(interests); err != nil {
		return fmt.Errorf("decode career interests for %s: %w", p.UserID, err)
	}
	if p.LookingForOptions, err = decodeList(lookingFor); err != nil {
		return fmt.Errorf("decode looking for options for %s: %w", p.UserID, err)
	}
	if p.Skills, err = decodeList(skills); err != nil {
		return fmt.Errorf("decode skills for %s: %w", p.UserID, err)
	}
	if prefs != "" {
		if err := json.Unmarshal([]byte(prefs), &p.CareerPreferences); err != nil {
			return fmt.Errorf("decode career preferences for %s: %w", p.UserID, err)
		}
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func nullTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}

// User operations

// CreateUser validates and inserts a user, assigning an ID and creation date
// when missing.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if err := models.Validate(user); err != nil {
		return err
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedDate.IsZero() {
		user.CreatedDate = time.Now().UTC()
	}

	query := `INSERT INTO users (id, full_name, email, user_type, created_date, last_active_date)
			  VALUES (?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query, user.ID, user.FullName, user.Email, string(user.UserType),
		user.CreatedDate, nullTime(user.LastActiveDate))
	if isUniqueViolation(err) {
		return fmt.Errorf("user %s: %w", user.Email, ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	s.logger.Debug("user created", zap.String("id", user.ID), zap.String("user_type", string(user.UserType)))
	return nil
}

const userSelect = `SELECT id, full_name, email, user_type, created_date, last_active_date FROM users`

func scanUser(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	user := &models.User{}
	var userType string
	var lastActive sql.NullTime
	if err := row.Scan(&user.ID, &user.FullName, &user.Email, &userType, &user.CreatedDate, &lastActive); err != nil {
		return nil, err
	}
	user.UserType = models.UserType(userType)
	user.LastActiveDate = timePtr(lastActive)
	return user, nil
}

// GetUser returns a user by ID or ErrNotFound
func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx, userSelect+` WHERE id=?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return user, err
}

// ListUsers returns every user, newest first
func (s *Store) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.FilterUsers(ctx, nil)
}

// FilterUsers returns users matching every criteria key exactly
func (s *Store) FilterUsers(ctx context.Context, criteria Criteria) ([]*models.User, error) {
	where, args, err := criteria.where(userColumns, "")
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, userSelect+where+` ORDER BY created_date DESC, id`, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// UpdateUser rewrites a user's name, email and role
func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	if err := models.Validate(user); err != nil {
		return err
	}
	query := `UPDATE users SET full_name=?, email=?, user_type=? WHERE id=?`
	res, err := s.db.ExecContext(ctx, query, user.FullName, user.Email, string(user.UserType), user.ID)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return expectOne(res, "user", user.ID)
}

// Touch records user activity at the given time
func (s *Store) Touch(ctx context.Context, userID string, at time.Time) error {
	res, err := s.db.ExecContext(ctx, `UPDATE users SET last_active_date=? WHERE id=?`, at, userID)
	if err != nil {
		return fmt.Errorf("touch user: %w", err)
	}
	return expectOne(res, "user", userID)
}

// DeleteUser removes a user and, through cascades, everything it owns
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return expectOne(res, "user", id)
}

func expectOne(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	return nil
}

// Student operations

// ListStudents returns every student joined with its profile. Students who
// never created a profile carry a nil Profile.
func (s *Store) ListStudents(ctx context.Context) ([]*models.Student, error) {
	query := `SELECT u.id, u.full_name, u.email, u.user_type, u.created_date, u.last_active_date,
			  p.user_id, p.major, p.minor, p.graduation_year, p.career_interests, p.looking_for_options,
			  p.skills, p.career_preferences, p.resume_url, p.profile_image_url
			  FROM users u LEFT JOIN student_profiles p ON p.user_id = u.id
			  WHERE u.user_type = 'student'
			  ORDER BY u.created_date DESC, u.id`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		var (
			st                                   models.Student
			userType                             string
			lastActive                           sql.NullTime
			profileUserID, major, minor          sql.NullString
			gradYear                             sql.NullInt64
			interests, lookingFor, skills, prefs sql.NullString
			resumeURL, imageURL                  sql.NullString
		)
		err := rows.Scan(&st.ID, &st.FullName, &st.Email, &userType, &st.CreatedDate, &lastActive,
			&profileUserID, &major, &minor, &gradYear, &interests, &lookingFor,
			&skills, &prefs, &resumeURL, &imageURL)
		if err != nil {
			return nil, err
		}
		st.UserType = models.UserType(userType)
		st.LastActiveDate = timePtr(lastActive)

		if profileUserID.Valid {
			p := &models.StudentProfile{
				UserID:          profileUserID.String,
				Major:           major.String,
				Minor:           minor.String,
				GraduationYear:  int(gradYear.Int64),
				ResumeURL:       resumeURL.String,
				ProfileImageURL: imageURL.String,
			}
			if err := decodeStudentLists(p, interests.String, lookingFor.String, skills.String, prefs.String); err != nil {
				return nil, err
			}
			st.Profile = p
		}
		students = append(students, &st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	s.logger.Debug("students loaded", zap.Int("count", len(students)))
	return students, nil
}

// GetStudent returns one student with its profile, or ErrNotFound
func (s *Store) GetStudent(ctx context.Context, userID string) (*models.Student, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.UserType != models.UserTypeStudent {
		return nil, fmt.Errorf("user %s is a %s, not a student: %w", userID, user.UserType, ErrNotFound)
	}
	profile, err := s.GetStudentProfile(ctx, userID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return &models.Student{User: *user, Profile: profile}, nil
}
