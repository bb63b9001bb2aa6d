package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/khrees2412/campuslink/internal/app"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "campuslink",
	Short: "Campus networking directory for students, alumni and employers",
	Long: `campuslink connects students, alumni mentors, parents and employers.
Browse and filter the student and mentor directories, post jobs, track tasks
and export student data from the command line or the interactive browser.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("config-dir")
		as, _ := cmd.Flags().GetString("as")

		// Initialize app with all dependencies
		application, err := app.NewApp(cmd.Context(), app.Options{Dir: dir, As: as})
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}

		// Store app in command context
		cmd.SetContext(app.WithApp(cmd.Context(), application))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if application, err := app.FromContext(cmd.Context()); err == nil {
			return application.Close()
		}
		return nil
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error:"), err)
		stop()
		os.Exit(1)
	}
}

// appFrom returns the App the pre-run hook stored on the command context
func appFrom(cmd *cobra.Command) (*app.App, error) {
	return app.FromContext(cmd.Context())
}

func init() {
	rootCmd.PersistentFlags().String("as", "", "act as another role for this command (student, alumni, parent, company, admin)")
	rootCmd.PersistentFlags().String("config-dir", "", "directory holding config.yaml (default ~/.campuslink)")
}
