package cmd

import (
	"errors"
	"fmt"

	"github.com/khrees2412/campuslink/internal/database"
	"github.com/khrees2412/campuslink/pkg/models"
	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user accounts",
	Long:  "Add, list, and inspect students, alumni, parents, companies and admins",
}

var addUserCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a user account",
	Example: `  campuslink users add --name "Jordan Lee" --email jlee@example.edu --type student
  campuslink users add --name "Globex Recruiting" --email jobs@globex.com --type company`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		rawType, _ := cmd.Flags().GetString("type")

		userType, err := models.ParseUserType(rawType)
		if err != nil {
			return err
		}

		user := &models.User{FullName: name, Email: email, UserType: userType}
		if err := a.Store.CreateUser(cmd.Context(), user); err != nil {
			if errors.Is(err, database.ErrDuplicate) {
				return fmt.Errorf("a user with email %s already exists", email)
			}
			return fmt.Errorf("create user: %w", err)
		}

		cmd.Printf("✓ Created %s %s (ID: %s)\n", user.UserType, user.FullName, user.ID)
		return nil
	},
}

var listUsersCmd = &cobra.Command{
	Use:   "list",
	Short: "List user accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		criteria := database.Criteria{}
		if rawType, _ := cmd.Flags().GetString("type"); rawType != "" {
			userType, err := models.ParseUserType(rawType)
			if err != nil {
				return err
			}
			criteria["user_type"] = string(userType)
		}

		users, err := a.Store.FilterUsers(cmd.Context(), criteria)
		if err != nil {
			return fmt.Errorf("fetch users: %w", err)
		}
		if len(users) == 0 {
			cmd.Println("No users found. Add one with 'campuslink users add' or 'campuslink import'")
			return nil
		}

		cmd.Println(titleStyle.Render(fmt.Sprintf("Users (%d)", len(users))))
		for _, u := range users {
			cmd.Printf("%s %s %s\n", valueStyle.Render(u.FullName), mutedStyle.Render("<"+u.Email+">"),
				labelStyle.Render(string(u.UserType)))
			cmd.Printf("   %s %s\n", labelStyle.Render("ID:"), u.ID)
		}
		return nil
	},
}

var showUserCmd = &cobra.Command{
	Use:   "show <user-id>",
	Short: "Show a user account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		user, err := a.Store.GetUser(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("fetch user: %w", err)
		}
		printUser(cmd, user)
		return printProfile(cmd, a.Store, user)
	},
}

func printUser(cmd *cobra.Command, user *models.User) {
	cmd.Println(titleStyle.Render(user.FullName))
	cmd.Printf("%s %s\n", labelStyle.Render("ID:"), valueStyle.Render(user.ID))
	cmd.Printf("%s %s\n", labelStyle.Render("Email:"), valueStyle.Render(user.Email))
	cmd.Printf("%s %s\n", labelStyle.Render("Role:"), valueStyle.Render(string(user.UserType)))
	cmd.Printf("%s %s\n", labelStyle.Render("Joined:"), valueStyle.Render(user.CreatedDate.Format("Jan 2, 2006")))
	if user.LastActiveDate != nil {
		cmd.Printf("%s %s\n", labelStyle.Render("Last Active:"), valueStyle.Render(user.LastActiveDate.Format("Jan 2, 2006 15:04")))
	}
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(addUserCmd)
	usersCmd.AddCommand(listUsersCmd)
	usersCmd.AddCommand(showUserCmd)

	addUserCmd.Flags().String("name", "", "Full name")
	addUserCmd.Flags().String("email", "", "Email address")
	addUserCmd.Flags().String("type", "student", "Role: student, alumni, parent, company or admin")
	addUserCmd.MarkFlagRequired("name")
	addUserCmd.MarkFlagRequired("email")

	listUsersCmd.Flags().String("type", "", "Only list users with this role")
}
