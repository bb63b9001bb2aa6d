package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUserType(t *testing.T) {
	for _, raw := range []string{"student", "Alumni", " parent ", "COMPANY", "admin"} {
		_, err := ParseUserType(raw)
		assert.NoError(t, err, raw)
	}

	_, err := ParseUserType("wizard")
	assert.Error(t, err)
	_, err = ParseUserType("")
	assert.Error(t, err)
}

func TestValidateUser(t *testing.T) {
	tests := []struct {
		name    string
		user    User
		wantErr bool
	}{
		{
			name: "valid",
			user: User{FullName: "Jordan Lee", Email: "jordan@example.edu", UserType: UserTypeStudent},
		},
		{
			name:    "bad email",
			user:    User{FullName: "Jordan Lee", Email: "not-an-email", UserType: UserTypeStudent},
			wantErr: true,
		},
		{
			name:    "unknown role",
			user:    User{FullName: "Jordan Lee", Email: "jordan@example.edu", UserType: "wizard"},
			wantErr: true,
		},
		{
			name:    "missing name",
			user:    User{Email: "jordan@example.edu", UserType: UserTypeAdmin},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.user)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateStudentProfileGraduationYear(t *testing.T) {
	require.NoError(t, Validate(&StudentProfile{UserID: "u1"}))
	require.NoError(t, Validate(&StudentProfile{UserID: "u1", GraduationYear: 2026}))
	require.Error(t, Validate(&StudentProfile{UserID: "u1", GraduationYear: 26}))
}

func TestValidateMessageRejectsSelfMessage(t *testing.T) {
	err := Validate(&Message{SenderID: "a", RecipientID: "a", Body: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RecipientID")
}

func TestStudentHasProfile(t *testing.T) {
	s := Student{User: User{ID: "u1"}}
	assert.False(t, s.HasProfile())
	s.Profile = &StudentProfile{UserID: "u1"}
	assert.True(t, s.HasProfile())
}
