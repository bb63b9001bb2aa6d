package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/khrees2412/campuslink/internal/dashboard"
	"github.com/khrees2412/campuslink/internal/database"
	"github.com/khrees2412/campuslink/internal/directory"
	"github.com/khrees2412/campuslink/pkg/models"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage your profile",
	Long:  "View and update the profile of the signed-in user. The fields available depend on the role.",
}

var showProfileCmd = &cobra.Command{
	Use:   "show",
	Short: "Display your profile information",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		sess, err := a.RequireSession()
		if err != nil {
			return err
		}

		user, err := a.Store.GetUser(cmd.Context(), sess.UserID)
		if err != nil {
			return fmt.Errorf("fetch profile: %w", err)
		}
		printUser(cmd, user)
		return printProfile(cmd, a.Store, user)
	},
}

var setProfileCmd = &cobra.Command{
	Use:   "set",
	Short: "Update your profile",
	Long: `Update profile fields of the signed-in user. Only the flags you pass are
changed. List flags take comma separated values.`,
	Example: `  campuslink profile set --major "Computer Science" --year 2026 --skills "Go,React"
  campuslink profile set --title "Staff Engineer" --company Globex --available
  campuslink profile set --company-name Globex --website https://globex.example.com`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		sess, err := a.RequireSession()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		flags := cmd.Flags()

		// Profiles belong to the stored role; an override cannot create one
		switch sess.UserType {
		case models.UserTypeStudent:
			p, err := a.Store.GetStudentProfile(ctx, sess.UserID)
			if errors.Is(err, database.ErrNotFound) {
				p = &models.StudentProfile{UserID: sess.UserID}
			} else if err != nil {
				return fmt.Errorf("fetch profile: %w", err)
			}
			setString(cmd, "major", &p.Major)
			setString(cmd, "minor", &p.Minor)
			if flags.Changed("year") {
				p.GraduationYear, _ = flags.GetInt("year")
			}
			setList(cmd, "skills", &p.Skills)
			setList(cmd, "interests", &p.CareerInterests)
			setList(cmd, "looking-for", &p.LookingForOptions)
			setList(cmd, "locations", &p.CareerPreferences.Locations)
			setList(cmd, "industries", &p.CareerPreferences.Industries)
			setList(cmd, "job-types", &p.CareerPreferences.JobTypes)
			setString(cmd, "resume-url", &p.ResumeURL)
			setString(cmd, "image-url", &p.ProfileImageURL)
			if err := a.Store.UpsertStudentProfile(ctx, p); err != nil {
				return fmt.Errorf("save profile: %w", err)
			}
			cmd.Printf("✓ Profile saved (%d%% complete)\n", dashboard.Completeness(p))

		case models.UserTypeAlumni:
			p, err := a.Store.GetAlumniProfile(ctx, sess.UserID)
			if errors.Is(err, database.ErrNotFound) {
				p = &models.AlumniProfile{UserID: sess.UserID}
			} else if err != nil {
				return fmt.Errorf("fetch profile: %w", err)
			}
			if flags.Changed("year") {
				p.GraduationYear, _ = flags.GetInt("year")
			}
			setString(cmd, "title", &p.CurrentTitle)
			setString(cmd, "company", &p.CurrentCompany)
			setString(cmd, "industry", &p.Industry)
			setString(cmd, "location", &p.Location)
			setList(cmd, "expertise", &p.Expertise)
			if flags.Changed("available") {
				p.AvailableForMentorship, _ = flags.GetBool("available")
			}
			if err := a.Store.UpsertAlumniProfile(ctx, p); err != nil {
				return fmt.Errorf("save profile: %w", err)
			}
			cmd.Println("✓ Alumni profile saved")

		case models.UserTypeCompany:
			p, err := a.Store.GetCompanyProfile(ctx, sess.UserID)
			if errors.Is(err, database.ErrNotFound) {
				p = &models.CompanyProfile{UserID: sess.UserID}
			} else if err != nil {
				return fmt.Errorf("fetch profile: %w", err)
			}
			setString(cmd, "company-name", &p.CompanyName)
			setString(cmd, "industry", &p.Industry)
			setString(cmd, "location", &p.Location)
			setString(cmd, "website", &p.Website)
			if err := a.Store.UpsertCompanyProfile(ctx, p); err != nil {
				return fmt.Errorf("save profile: %w", err)
			}
			cmd.Println("✓ Company profile saved")

		default:
			return fmt.Errorf("%s accounts have no profile fields", sess.UserType)
		}
		return nil
	},
}

func setString(cmd *cobra.Command, name string, dst *string) {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetString(name)
		*dst = strings.TrimSpace(v)
	}
}

func setList(cmd *cobra.Command, name string, dst *[]string) {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetString(name)
		*dst = directory.SplitList(v)
	}
}

// printProfile prints the role-specific profile of user, if any
func printProfile(cmd *cobra.Command, store *database.Store, user *models.User) error {
	ctx := cmd.Context()
	switch user.UserType {
	case models.UserTypeStudent:
		p, err := store.GetStudentProfile(ctx, user.ID)
		if errors.Is(err, database.ErrNotFound) {
			cmd.Println(mutedStyle.Render("\nNo student profile yet. Run 'campuslink profile set'."))
			return nil
		}
		if err != nil {
			return fmt.Errorf("fetch profile: %w", err)
		}
		cmd.Println(labelStyle.Render("\nStudent Profile"))
		field(cmd, "Major", p.Major)
		field(cmd, "Minor", p.Minor)
		if p.GraduationYear != 0 {
			field(cmd, "Graduation Year", fmt.Sprint(p.GraduationYear))
		}
		listField(cmd, "Skills", p.Skills)
		listField(cmd, "Career Interests", p.CareerInterests)
		listField(cmd, "Looking For", p.LookingForOptions)
		listField(cmd, "Preferred Locations", p.CareerPreferences.Locations)
		listField(cmd, "Preferred Industries", p.CareerPreferences.Industries)
		listField(cmd, "Job Types", p.CareerPreferences.JobTypes)
		field(cmd, "Resume", p.ResumeURL)
		field(cmd, "Completeness", fmt.Sprintf("%d%%", dashboard.Completeness(p)))

	case models.UserTypeAlumni:
		p, err := store.GetAlumniProfile(ctx, user.ID)
		if errors.Is(err, database.ErrNotFound) {
			cmd.Println(mutedStyle.Render("\nNo alumni profile yet. Run 'campuslink profile set'."))
			return nil
		}
		if err != nil {
			return fmt.Errorf("fetch profile: %w", err)
		}
		cmd.Println(labelStyle.Render("\nAlumni Profile"))
		field(cmd, "Title", p.CurrentTitle)
		field(cmd, "Company", p.CurrentCompany)
		field(cmd, "Industry", p.Industry)
		field(cmd, "Location", p.Location)
		listField(cmd, "Expertise", p.Expertise)
		field(cmd, "Mentoring", fmt.Sprint(p.AvailableForMentorship))
		listField(cmd, "Badges", p.Badges)

	case models.UserTypeCompany:
		p, err := store.GetCompanyProfile(ctx, user.ID)
		if errors.Is(err, database.ErrNotFound) {
			cmd.Println(mutedStyle.Render("\nNo company profile yet. Run 'campuslink profile set'."))
			return nil
		}
		if err != nil {
			return fmt.Errorf("fetch profile: %w", err)
		}
		cmd.Println(labelStyle.Render("\nCompany Profile"))
		field(cmd, "Company", p.CompanyName)
		field(cmd, "Industry", p.Industry)
		field(cmd, "Location", p.Location)
		field(cmd, "Website", p.Website)
	}
	return nil
}

func field(cmd *cobra.Command, label, value string) {
	if value != "" {
		cmd.Printf("%s %s\n", labelStyle.Render(label+":"), valueStyle.Render(value))
	}
}

func listField(cmd *cobra.Command, label string, values []string) {
	field(cmd, label, strings.Join(values, ", "))
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(showProfileCmd)
	profileCmd.AddCommand(setProfileCmd)

	f := setProfileCmd.Flags()
	// student
	f.String("major", "", "Major")
	f.String("minor", "", "Minor")
	f.Int("year", 0, "Graduation year (students and alumni)")
	f.String("skills", "", "Skills")
	f.String("interests", "", "Career interests")
	f.String("looking-for", "", "What you are looking for (internship, mentorship, ...)")
	f.String("locations", "", "Preferred locations")
	f.String("industries", "", "Preferred industries")
	f.String("job-types", "", "Preferred job types")
	f.String("resume-url", "", "Resume URL")
	f.String("image-url", "", "Profile image URL")
	// alumni
	f.String("title", "", "Current title")
	f.String("company", "", "Current company")
	f.String("industry", "", "Industry (alumni and companies)")
	f.String("location", "", "Location (alumni and companies)")
	f.String("expertise", "", "Expertise tags")
	f.Bool("available", false, "Available for mentorship")
	// company
	f.String("company-name", "", "Company name")
	f.String("website", "", "Company website")
}
