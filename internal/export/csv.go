// Package export renders directory records as CSV for download.
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/khrees2412/campuslink/pkg/models"
)

// DefaultFilename is the name the admin export is saved under
const DefaultFilename = "students_export.csv"

// ListSeparator joins multi-value fields inside one cell
const ListSeparator = "; "

// Header is the fixed column order of the student export
var Header = []string{
	"Name", "Email", "Major", "Minor", "Graduation Year", "Skills", "Career Interests",
	"Looking For", "Preferred Locations", "Preferred Industries", "Job Types", "Resume URL", "Joined",
}

// Options controls the CSV dialect
type Options struct {
	// EscapeQuotes doubles embedded double quotes (RFC 4180). When false
	// values are wrapped as-is.
	EscapeQuotes bool
}

// Students writes the header and one row per student to w and returns the
// number of rows written, header included.
func Students(w io.Writer, students []*models.Student, opts Options) (int, error) {
	bw := bufio.NewWriter(w)
	rows := 0
	if err := writeRow(bw, Header, opts); err != nil {
		return rows, err
	}
	rows++
	for _, s := range students {
		if err := writeRow(bw, Row(s), opts); err != nil {
			return rows, err
		}
		rows++
	}
	if err := bw.Flush(); err != nil {
		return rows, fmt.Errorf("flush export: %w", err)
	}
	return rows, nil
}

// StudentsToFile writes the export to path, creating parent directories. An
// empty path writes DefaultFilename in the working directory.
func StudentsToFile(path string, students []*models.Student, opts Options) (string, int, error) {
	if path == "" {
		path = DefaultFilename
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return path, 0, fmt.Errorf("failed to create export directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return path, 0, fmt.Errorf("failed to create export file: %w", err)
	}
	rows, err := Students(f, students, opts)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = cerr
	}
	return path, rows, err
}

// Row flattens one student into the Header column order. Profile columns are
// empty for a student without a profile.
func Row(s *models.Student) []string {
	row := make([]string, len(Header))
	row[0] = s.FullName
	row[1] = s.Email
	if p := s.Profile; p != nil {
		row[2] = p.Major
		row[3] = p.Minor
		if p.GraduationYear != 0 {
			row[4] = strconv.Itoa(p.GraduationYear)
		}
		row[5] = strings.Join(p.Skills, ListSeparator)
		row[6] = strings.Join(p.CareerInterests, ListSeparator)
		row[7] = strings.Join(p.LookingForOptions, ListSeparator)
		row[8] = strings.Join(p.CareerPreferences.Locations, ListSeparator)
		row[9] = strings.Join(p.CareerPreferences.Industries, ListSeparator)
		row[10] = strings.Join(p.CareerPreferences.JobTypes, ListSeparator)
		row[11] = p.ResumeURL
	}
	if !s.CreatedDate.IsZero() {
		row[12] = s.CreatedDate.Format("2006-01-02")
	}
	return row
}

func writeRow(w *bufio.Writer, fields []string, opts Options) error {
	for i, field := range fields {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		if opts.EscapeQuotes {
			field = strings.ReplaceAll(field, `"`, `""`)
		}
		if _, err := w.WriteString(`"` + field + `"`); err != nil {
			return err
		}
	}
	return w.WriteByte('\n')
}
