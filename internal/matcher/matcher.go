package matcher

import (
	"sort"
	"strings"

	"github.com/khrees2412/campuslink/pkg/models"
)

// Recommendation is a job paired with its match score
type Recommendation struct {
	Job   *models.Job
	Score float64
}

// Score calculates how well a job matches a student's profile
// Returns a score between 0.0 and 1.0
func Score(job *models.Job, student *models.Student) float64 {
	if student == nil || student.Profile == nil {
		return 0
	}
	p := student.Profile

	score := 0.0

	// Factor 1: Skills mentioned in the posting (35% weight)
	score += matchSkills(job, p.Skills) * 0.35

	// Factor 2: Preferred industries (25% weight)
	score += matchPreference(job.Industry, p.CareerPreferences.Industries) * 0.25

	// Factor 3: Preferred job types (20% weight)
	score += matchPreference(job.JobType, p.CareerPreferences.JobTypes) * 0.2

	// Factor 4: Location preference (20% weight)
	score += matchLocation(job, p.CareerPreferences.Locations) * 0.2

	return score
}

// Recommend scores active jobs for a student and returns those scoring at
// least min, best first. limit <= 0 means no limit.
func Recommend(jobs []*models.Job, student *models.Student, min float64, limit int) []Recommendation {
	recs := []Recommendation{}
	for _, job := range jobs {
		if job.Status != models.JobStatusActive {
			continue
		}
		if s := Score(job, student); s >= min {
			recs = append(recs, Recommendation{Job: job, Score: s})
		}
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}

// matchSkills checks how many of the student's skills appear in the posting
func matchSkills(job *models.Job, skills []string) float64 {
	text := strings.ToLower(job.Title + " " + job.Description)
	if strings.TrimSpace(text) == "" || len(skills) == 0 {
		return 0.5 // Neutral if nothing to compare
	}

	matched := 0
	for _, skill := range skills {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if skill != "" && strings.Contains(text, skill) {
			matched++
		}
	}

	return float64(matched) / float64(len(skills))
}

// matchPreference compares a single job attribute with the student's
// preferred values
func matchPreference(value string, preferred []string) float64 {
	if value == "" || len(preferred) == 0 {
		return 0.5
	}

	valueLower := strings.ToLower(value)
	for _, p := range preferred {
		if strings.EqualFold(strings.TrimSpace(p), value) {
			return 1.0
		}
	}

	// Keyword overlap, e.g. "Financial Services" vs "Finance"
	for _, keyword := range extractKeywords(valueLower) {
		for _, p := range preferred {
			if strings.Contains(strings.ToLower(p), keyword) {
				return 0.6
			}
		}
	}

	return 0.0
}

// matchLocation checks if job location matches the preferred locations
func matchLocation(job *models.Job, preferred []string) float64 {
	if job.Location == "" || len(preferred) == 0 {
		return 0.5 // Neutral if no location specified
	}

	jobLocLower := strings.ToLower(job.Location)
	best := 0.3 // Low match if no overlap

	for _, loc := range preferred {
		userLocLower := strings.ToLower(strings.TrimSpace(loc))
		if userLocLower == "" {
			continue
		}

		// Check for exact match
		if strings.Contains(jobLocLower, userLocLower) || strings.Contains(userLocLower, jobLocLower) {
			return 1.0
		}

		// Partial match (same city/state)
		for _, jobPart := range strings.Fields(jobLocLower) {
			for _, userPart := range strings.Fields(userLocLower) {
				if len(jobPart) > 3 && len(userPart) > 3 && strings.Trim(jobPart, ",") == strings.Trim(userPart, ",") {
					best = max(best, 0.6)
				}
			}
		}
	}

	// Check for remote
	if strings.Contains(jobLocLower, "remote") {
		best = max(best, 0.8) // Slight preference for remote
	}

	return best
}

// extractKeywords extracts meaningful keywords from a title or label
func extractKeywords(title string) []string {
	// Common stop words to ignore
	stopWords := map[string]bool{
		"the": true, "a": true, "an": true, "and": true, "or": true,
		"but": true, "in": true, "on": true, "at": true, "to": true,
		"for": true, "of": true, "with": true, "by": true,
	}

	words := strings.Fields(title)
	keywords := []string{}

	for _, word := range words {
		word = strings.Trim(word, ".,!?;:")
		if len(word) > 3 && !stopWords[word] {
			// Stem to the first five letters so "financial" meets "finance"
			if len(word) > 5 {
				word = word[:5]
			}
			keywords = append(keywords, word)
		}
	}

	return keywords
}
