package cmd

import (
	"fmt"

	"github.com/khrees2412/campuslink/internal/dashboard"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show your dashboard",
	Long:  "Display the summary for your role: profile, tasks, messages, postings or platform health",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		sess, err := a.RequireSession()
		if err != nil {
			return err
		}

		d, err := dashboard.For(sess.Role())
		if err != nil {
			return err
		}
		if admin, ok := d.(*dashboard.Admin); ok {
			admin.Now = a.Now
			admin.Window = a.Config.RecentWindow()
		}

		user, err := a.Store.GetUser(cmd.Context(), sess.UserID)
		if err != nil {
			return fmt.Errorf("fetch user: %w", err)
		}
		summary, err := d.Build(cmd.Context(), a.Store, user)
		if err != nil {
			return err
		}

		cmd.Println(titleStyle.Render(summary.Title))
		for _, s := range summary.Stats {
			cmd.Printf("  %s %s\n", labelStyle.Render(s.Label+":"), valueStyle.Render(s.Value))
		}
		if len(summary.Items) > 0 {
			cmd.Println()
			for _, item := range summary.Items {
				cmd.Printf("  • %s\n", item)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
