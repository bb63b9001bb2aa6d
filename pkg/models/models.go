package models

import (
	"fmt"
	"strings"
	"time"
)

// UserType is the role a user plays on the platform
type UserType string

const (
	UserTypeStudent UserType = "student"
	UserTypeAlumni  UserType = "alumni"
	UserTypeParent  UserType = "parent"
	UserTypeCompany UserType = "company"
	UserTypeAdmin   UserType = "admin"
)

// UserTypes lists every role in display order
var UserTypes = []UserType{UserTypeStudent, UserTypeAlumni, UserTypeParent, UserTypeCompany, UserTypeAdmin}

// ParseUserType converts a raw string into a UserType
func ParseUserType(s string) (UserType, error) {
	t := UserType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range UserTypes {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown user type %q", s)
}

// User is the account record every role shares
type User struct {
	ID             string     `json:"id" yaml:"id"`
	FullName       string     `json:"full_name" yaml:"full_name" validate:"required"`
	Email          string     `json:"email" yaml:"email" validate:"required,email"`
	UserType       UserType   `json:"user_type" yaml:"user_type" validate:"required,oneof=student alumni parent company admin"`
	CreatedDate    time.Time  `json:"created_date" yaml:"created_date"`
	LastActiveDate *time.Time `json:"last_active_date" yaml:"last_active_date"` // nullable
}

// CareerPreferences holds a student's job search preferences
type CareerPreferences struct {
	Locations  []string `json:"locations" yaml:"locations"`
	JobTypes   []string `json:"job_types" yaml:"job_types"`
	Industries []string `json:"industries" yaml:"industries"`
}

// StudentProfile is the optional one-to-one extension of a student User
type StudentProfile struct {
	UserID            string            `json:"user_id" yaml:"user_id" validate:"required"`
	Major             string            `json:"major" yaml:"major"`
	Minor             string            `json:"minor" yaml:"minor"`
	GraduationYear    int               `json:"graduation_year" yaml:"graduation_year" validate:"omitempty,min=1900,max=2100"`
	CareerInterests   []string          `json:"career_interests" yaml:"career_interests"`
	LookingForOptions []string          `json:"looking_for_options" yaml:"looking_for_options"`
	Skills            []string          `json:"skills" yaml:"skills"`
	CareerPreferences CareerPreferences `json:"career_preferences" yaml:"career_preferences"`
	ResumeURL         string            `json:"resume_url" yaml:"resume_url" validate:"omitempty,url"`
	ProfileImageURL   string            `json:"profile_image_url" yaml:"profile_image_url" validate:"omitempty,url"`
}

// Student is a student User joined with its profile. Profile is nil when the
// student never finished onboarding.
type Student struct {
	User
	Profile *StudentProfile `json:"profile"`
}

// HasProfile reports whether the student completed onboarding
func (s *Student) HasProfile() bool {
	return s.Profile != nil
}

// AlumniProfile extends an alumni User with career and mentorship details
type AlumniProfile struct {
	UserID                 string   `json:"user_id" yaml:"user_id" validate:"required"`
	GraduationYear         int      `json:"graduation_year" yaml:"graduation_year" validate:"omitempty,min=1900,max=2100"`
	CurrentTitle           string   `json:"current_title" yaml:"current_title"`
	CurrentCompany         string   `json:"current_company" yaml:"current_company"`
	Industry               string   `json:"industry" yaml:"industry"`
	Location               string   `json:"location" yaml:"location"`
	Expertise              []string `json:"expertise" yaml:"expertise"`
	AvailableForMentorship bool     `json:"available_for_mentorship" yaml:"available_for_mentorship"`
	ResponseStreak         int      `json:"response_streak" yaml:"response_streak" validate:"min=0"`
	SessionsHeld           int      `json:"sessions_held" yaml:"sessions_held" validate:"min=0"`
	Badges                 []string `json:"badges" yaml:"badges"`
}

// Mentor is an alumni User who is available for mentorship
type Mentor struct {
	User
	AlumniProfile
}

// CompanyProfile extends a company User
type CompanyProfile struct {
	UserID      string `json:"user_id" yaml:"user_id" validate:"required"`
	CompanyName string `json:"company_name" yaml:"company_name" validate:"required"`
	Industry    string `json:"industry" yaml:"industry"`
	Location    string `json:"location" yaml:"location"`
	Website     string `json:"website" yaml:"website" validate:"omitempty,url"`
}

// JobStatus is the lifecycle state of a job posting
type JobStatus string

const (
	JobStatusActive JobStatus = "active"
	JobStatusClosed JobStatus = "closed"
)

// Job represents a job posting owned by a company user
type Job struct {
	ID          string    `json:"id" yaml:"id"`
	CompanyID   string    `json:"company_id" yaml:"company_id" validate:"required"`
	Title       string    `json:"title" yaml:"title" validate:"required"`
	Description string    `json:"description" yaml:"description"`
	Location    string    `json:"location" yaml:"location"`
	Industry    string    `json:"industry" yaml:"industry"`
	JobType     string    `json:"job_type" yaml:"job_type"` // internship, full-time, part-time, ...
	Status      JobStatus `json:"status" yaml:"status" validate:"required,oneof=active closed"`
	CreatedDate time.Time `json:"created_date" yaml:"created_date"`
	ViewCount   int       `json:"view_count" yaml:"view_count" validate:"min=0"`
}

// Task is a to-do item shown on a user's dashboard
type Task struct {
	ID          string     `json:"id" yaml:"id"`
	UserID      string     `json:"user_id" yaml:"user_id" validate:"required"`
	Title       string     `json:"title" yaml:"title" validate:"required"`
	Done        bool       `json:"done" yaml:"done"`
	DueDate     *time.Time `json:"due_date" yaml:"due_date"`
	CreatedDate time.Time  `json:"created_date" yaml:"created_date"`
}

// Message is a direct message between two users
type Message struct {
	ID          string     `json:"id"`
	SenderID    string     `json:"sender_id" validate:"required"`
	RecipientID string     `json:"recipient_id" validate:"required,nefield=SenderID"`
	Body        string     `json:"body" validate:"required,max=4000"`
	CreatedDate time.Time  `json:"created_date"`
	ReadAt      *time.Time `json:"read_at"` // nil until the recipient opens it
}
