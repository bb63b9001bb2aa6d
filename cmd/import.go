package cmd

import (
	"fmt"

	"github.com/khrees2412/campuslink/internal/seed"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Load users, profiles, jobs and tasks from a YAML file",
	Long: `Import a seed file. Users are created first with their profiles, then jobs
(referencing the posting company by email) and tasks (referencing the owner by
email). The import stops at the first invalid record.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		f, err := seed.ReadFile(args[0])
		if err != nil {
			return err
		}
		res, err := seed.Import(cmd.Context(), a.Store, f, a.Logger)
		if err != nil {
			return fmt.Errorf("import stopped after %d users, %d jobs, %d tasks: %w", res.Users, res.Jobs, res.Tasks, err)
		}

		cmd.Printf("✓ Imported %d users (%d profiles), %d jobs, %d tasks\n", res.Users, res.Profiles, res.Jobs, res.Tasks)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
