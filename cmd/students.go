package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/khrees2412/campuslink/internal/directory"
	"github.com/khrees2412/campuslink/internal/search"
	"github.com/khrees2412/campuslink/pkg/models"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var studentsCmd = &cobra.Command{
	Use:   "students",
	Short: "Browse the student directory",
}

var listStudentsCmd = &cobra.Command{
	Use:   "list",
	Short: "Search and filter students",
	Long: `Search the student directory. --query matches name, major, skills, preferred
industries and preferred job types. Facet flags narrow the result; "all" or an
empty value leaves a facet unconstrained. List facets take comma separated values
and match students sharing at least one of them.`,
	Example: `  campuslink students list --query jr
  campuslink students list --major "Computer Science" --year 2026 --sort name
  campuslink students list --industry Finance,Technology --job-type Internship
  campuslink students list --options`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		if _, err := a.RequireRole(models.UserTypeCompany, models.UserTypeAlumni, models.UserTypeAdmin); err != nil {
			return err
		}

		students, err := a.Store.ListStudents(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetch students: %w", err)
		}

		if showOptions, _ := cmd.Flags().GetBool("options"); showOptions {
			opts := directory.OptionsForStudents(students)
			printOptions(cmd, "major", opts.Majors)
			printOptions(cmd, "graduation_year", opts.GraduationYears)
			printOptions(cmd, "industry", opts.Industries)
			printOptions(cmd, "job_type", opts.JobTypes)
			printOptions(cmd, "location", opts.Locations)
			return nil
		}

		mode, err := matchMode(cmd, a.Config.Search.StudentMode)
		if err != nil {
			return err
		}
		f := directory.StudentFilter{Mode: mode}
		f.Text, _ = cmd.Flags().GetString("query")
		f.Major, _ = cmd.Flags().GetString("major")
		f.GraduationYear, _ = cmd.Flags().GetString("year")
		f.Industries = listFlag(cmd, "industry")
		f.JobTypes = listFlag(cmd, "job-type")
		f.Locations = listFlag(cmd, "location")
		f.SortBy = sortFlag(cmd)

		visible, err := directory.Apply(students, f)
		if err != nil {
			return err
		}
		a.Logger.Debug("student directory filtered",
			zap.Int("total", len(students)),
			zap.Int("visible", len(visible)),
			zap.Strings("facets", f.Query().ActiveFacets()))

		printStudents(cmd, visible, len(students))
		return nil
	},
}

func printStudents(cmd *cobra.Command, visible []*models.Student, total int) {
	cmd.Println(titleStyle.Render(fmt.Sprintf("Students (%d of %d)", len(visible), total)))
	if len(visible) == 0 {
		cmd.Println("No students match these filters.")
		return
	}
	for _, s := range visible {
		cmd.Printf("%s %s\n", valueStyle.Render(s.FullName), mutedStyle.Render(s.ID))
		if s.Profile == nil {
			cmd.Printf("   %s\n", mutedStyle.Render("profile not completed"))
			continue
		}
		p := s.Profile
		line := p.Major
		if p.GraduationYear != 0 {
			line = strings.TrimSpace(line + " '" + strconv.Itoa(p.GraduationYear%100))
		}
		if line != "" {
			cmd.Printf("   %s\n", line)
		}
		if len(p.Skills) > 0 {
			cmd.Printf("   %s %s\n", labelStyle.Render("Skills:"), strings.Join(p.Skills, ", "))
		}
		if len(p.CareerPreferences.Industries) > 0 {
			cmd.Printf("   %s %s\n", labelStyle.Render("Industries:"), strings.Join(p.CareerPreferences.Industries, ", "))
		}
	}
}

func printOptions(cmd *cobra.Command, facet string, values []string) {
	cmd.Printf("%s %s\n", labelStyle.Render(directory.Label(facet)+":"), strings.Join(values, " | "))
}

// matchMode returns the --mode flag when set, otherwise the configured mode
func matchMode(cmd *cobra.Command, configured string) (search.MatchMode, error) {
	raw := configured
	if cmd.Flags().Changed("mode") {
		raw, _ = cmd.Flags().GetString("mode")
	}
	return search.ParseMatchMode(raw)
}

func sortFlag(cmd *cobra.Command) search.SortKey {
	v, _ := cmd.Flags().GetString("sort")
	return search.SortKey(strings.ToLower(strings.TrimSpace(v)))
}

func listFlag(cmd *cobra.Command, name string) []string {
	v, _ := cmd.Flags().GetString(name)
	return directory.SplitList(v)
}

func init() {
	rootCmd.AddCommand(studentsCmd)
	studentsCmd.AddCommand(listStudentsCmd)

	f := listStudentsCmd.Flags()
	f.StringP("query", "q", "", "Search text")
	f.String("mode", "", "Text matching: fuzzy or substring (default from config)")
	f.String("major", search.All, "Major")
	f.String("year", search.All, "Graduation year")
	f.String("industry", "", "Preferred industries")
	f.String("job-type", "", "Preferred job types")
	f.String("location", "", "Preferred locations")
	f.String("sort", "", "Sort by name, graduation_year or newest")
	f.Bool("options", false, "Print the values available for each filter")
}
