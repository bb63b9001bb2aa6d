package cmd

import (
	"fmt"
	"strings"

	"github.com/khrees2412/campuslink/internal/directory"
	"github.com/khrees2412/campuslink/internal/search"
	"github.com/khrees2412/campuslink/pkg/models"
	"github.com/spf13/cobra"
)

var mentorsCmd = &cobra.Command{
	Use:   "mentors",
	Short: "Browse the mentorship directory",
}

var listMentorsCmd = &cobra.Command{
	Use:   "list",
	Short: "Search and filter mentors",
	Long: `List alumni available for mentorship. --query matches name, title, company,
industry and expertise.`,
	Example: `  campuslink mentors list --query engineer
  campuslink mentors list --industry Technology --location Seattle --active`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		mentors, err := a.Store.ListMentors(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetch mentors: %w", err)
		}

		if showOptions, _ := cmd.Flags().GetBool("options"); showOptions {
			opts := directory.OptionsForMentors(mentors)
			printOptions(cmd, "industry", opts.Industries)
			printOptions(cmd, "location", opts.Locations)
			return nil
		}

		mode, err := matchMode(cmd, a.Config.Search.MentorMode)
		if err != nil {
			return err
		}
		f := directory.MentorFilter{
			Mode:         mode,
			RecentWindow: a.Config.RecentWindow(),
			Now:          a.Now,
		}
		f.Text, _ = cmd.Flags().GetString("query")
		f.Industry, _ = cmd.Flags().GetString("industry")
		f.Location, _ = cmd.Flags().GetString("location")
		f.ActiveRecently, _ = cmd.Flags().GetBool("active")
		f.SortBy = sortFlag(cmd)

		visible, err := directory.Apply(mentors, f)
		if err != nil {
			return err
		}

		cmd.Println(titleStyle.Render(fmt.Sprintf("Mentors (%d of %d)", len(visible), len(mentors))))
		if len(visible) == 0 {
			cmd.Println("No mentors match these filters.")
			return nil
		}
		for _, m := range visible {
			cmd.Printf("%s %s\n", valueStyle.Render(m.FullName), mutedStyle.Render(m.ID))
			if role := joinNonEmpty(" at ", m.CurrentTitle, m.CurrentCompany); role != "" {
				cmd.Printf("   %s\n", role)
			}
			if where := joinNonEmpty(" · ", m.Industry, m.Location); where != "" {
				cmd.Printf("   %s\n", mutedStyle.Render(where))
			}
			if len(m.Expertise) > 0 {
				cmd.Printf("   %s %s\n", labelStyle.Render("Expertise:"), strings.Join(m.Expertise, ", "))
			}
		}
		return nil
	},
}

var messageMentorCmd = &cobra.Command{
	Use:     "message <mentor-id>",
	Short:   "Send a message to a mentor",
	Args:    cobra.ExactArgs(1),
	Example: `  campuslink mentors message 3f2c... --body "Could we talk about product roles?"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		sess, err := a.RequireSession()
		if err != nil {
			return err
		}

		mentor, err := a.Store.GetAlumniProfile(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("fetch mentor: %w", err)
		}
		if !mentor.AvailableForMentorship {
			return fmt.Errorf("this alumnus is not accepting mentees right now")
		}

		body, _ := cmd.Flags().GetString("body")
		msg := &models.Message{SenderID: sess.UserID, RecipientID: mentor.UserID, Body: strings.TrimSpace(body)}
		if err := a.Store.SendMessage(cmd.Context(), msg); err != nil {
			return fmt.Errorf("send message: %w", err)
		}
		cmd.Println("✓ Message sent")
		return nil
	},
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func init() {
	rootCmd.AddCommand(mentorsCmd)
	mentorsCmd.AddCommand(listMentorsCmd)
	mentorsCmd.AddCommand(messageMentorCmd)

	f := listMentorsCmd.Flags()
	f.StringP("query", "q", "", "Search text")
	f.String("mode", "", "Text matching: fuzzy or substring (default from config)")
	f.String("industry", search.All, "Industry")
	f.String("location", search.All, "Location")
	f.Bool("active", false, "Only mentors active within the recent window")
	f.String("sort", "", "Sort by name, graduation_year or newest")
	f.Bool("options", false, "Print the values available for each filter")

	messageMentorCmd.Flags().String("body", "", "Message text")
	messageMentorCmd.MarkFlagRequired("body")
}
