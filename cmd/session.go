package cmd

import (
	"errors"
	"fmt"

	"github.com/khrees2412/campuslink/internal/session"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Choose which user you act as",
	Long: `Start a session to act as a user. The session persists between commands
until ended. Pass --as <role> to any command to act as another role once.`,
}

var startSessionCmd = &cobra.Command{
	Use:   "start <user-id>",
	Short: "Sign in as a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		sess, err := session.Start(cmd.Context(), a.Store, args[0], a.Now().UTC())
		if err != nil {
			return err
		}
		cmd.Printf("✓ Signed in as %s (%s)\n", sess.FullName, sess.UserType)
		return nil
	},
}

var endSessionCmd = &cobra.Command{
	Use:   "end",
	Short: "Sign out",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		if err := session.End(cmd.Context(), a.Store); err != nil {
			return err
		}
		cmd.Println("✓ Signed out")
		return nil
	},
}

var showSessionCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		sess, err := a.RequireSession()
		if errors.Is(err, session.ErrNoSession) {
			cmd.Println("Not signed in.")
			return nil
		}
		if err != nil {
			return err
		}

		cmd.Println(titleStyle.Render("Session"))
		field(cmd, "User", fmt.Sprintf("%s (%s)", sess.FullName, sess.UserID))
		field(cmd, "Role", string(sess.UserType))
		if sess.Override != "" {
			field(cmd, "Acting As", string(sess.Override))
		}
		field(cmd, "Since", sess.StartedAt.Local().Format("Jan 2, 2006 15:04"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(startSessionCmd)
	sessionCmd.AddCommand(endSessionCmd)
	sessionCmd.AddCommand(showSessionCmd)
}
