package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubsequence(t *testing.T) {
	tests := []struct {
		query  string
		target string
		want   bool
	}{
		{"", "anything", true},
		{"jr", "Jordan Lee", true},
		{"jr", "Jill Parker", true},
		{"jr", "Computer Science", false},
		{"JDN", "jordan", true},
		{"nj", "jordan", false},
		{"jordan lee", "Jordan Lee", true},
		{"jordann", "Jordan", false},
		{"cs", "Computer Science", true},
	}

	for _, tt := range tests {
		t.Run(tt.query+"/"+tt.target, func(t *testing.T) {
			assert.Equal(t, tt.want, Subsequence(tt.query, tt.target))
		})
	}
}

func TestSubstring(t *testing.T) {
	assert.True(t, Substring("eng", "Software Engineer"))
	assert.False(t, Substring("sfe", "Software Engineer"))
	assert.True(t, Substring("", "x"))
}

func TestTextMatchEmptyQueryAlwaysMatches(t *testing.T) {
	assert.True(t, TextMatch(ModeFuzzy, ""))
	assert.True(t, TextMatch(ModeFuzzy, "   ", nil))
	assert.True(t, TextMatch(ModeSubstring, "", "x", 3))
}

func TestTextMatchFieldsAreIndependent(t *testing.T) {
	// "jm" spans name and major only when concatenated.
	assert.False(t, TextMatch(ModeFuzzy, "jm", "Jo", "Marketing"))
	assert.True(t, TextMatch(ModeFuzzy, "jm", "Jo", "Jim"))
}

func TestTextMatchMissingValues(t *testing.T) {
	var nilString *string
	var nilInt *int

	require.NotPanics(t, func() {
		TextMatch(ModeFuzzy, "a", nil, nilString, nilInt, []string(nil), struct{}{})
	})
	assert.False(t, TextMatch(ModeFuzzy, "a", nil, nilString, nilInt, ""))
	// a zero graduation year is "unknown" and must not match "0"
	assert.False(t, TextMatch(ModeSubstring, "0", 0))
}

func TestTextMatchCoercesNumbers(t *testing.T) {
	year := 2026
	assert.True(t, TextMatch(ModeSubstring, "2026", 2026))
	assert.True(t, TextMatch(ModeFuzzy, "226", &year))
	assert.False(t, TextMatch(ModeSubstring, "2025", &year))
}

func TestTextMatchSliceElements(t *testing.T) {
	skills := []string{"Go", "Postgres", "React"}
	assert.True(t, TextMatch(ModeSubstring, "gres", skills))
	assert.False(t, TextMatch(ModeSubstring, "goPost", skills))
}

func TestTextMatchModes(t *testing.T) {
	assert.True(t, TextMatch(ModeFuzzy, "sfwr", "Software"))
	assert.False(t, TextMatch(ModeSubstring, "sfwr", "Software"))
}

func TestParseMatchMode(t *testing.T) {
	m, err := ParseMatchMode("Fuzzy")
	require.NoError(t, err)
	assert.Equal(t, ModeFuzzy, m)

	m, err = ParseMatchMode("substring")
	require.NoError(t, err)
	assert.Equal(t, ModeSubstring, m)

	_, err = ParseMatchMode("regex")
	assert.Error(t, err)
}
