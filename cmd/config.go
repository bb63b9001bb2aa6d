package cmd

import (
	"fmt"
	"strconv"

	"github.com/khrees2412/campuslink/internal/config"
	"github.com/khrees2412/campuslink/internal/search"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  "View and update configuration settings",
}

var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		cfg := a.Config

		cmd.Println(titleStyle.Render("Configuration"))
		cmd.Printf("%s %s\n", labelStyle.Render("Config File:"), a.Viper.ConfigFileUsed())
		cmd.Printf("%s %s\n", labelStyle.Render("Database:"), cfg.DatabasePath())
		cmd.Printf("%s %s (%s)\n", labelStyle.Render("Log Level:"), cfg.LogLevel, cfg.LogFormat)
		cmd.Printf("%s %s\n", labelStyle.Render("Search Debounce:"), cfg.DebounceWindow())
		cmd.Printf("%s %d days\n", labelStyle.Render("Active Window:"), cfg.Search.RecentDays)
		cmd.Printf("%s %s\n", labelStyle.Render("Student Match:"), cfg.Search.StudentMode)
		cmd.Printf("%s %s\n", labelStyle.Render("Mentor Match:"), cfg.Search.MentorMode)
		cmd.Printf("%s %s\n", labelStyle.Render("Export File:"), cfg.Export.Filename)

		quotes := "wrap only"
		if cfg.Export.EscapeQuotes {
			quotes = "RFC 4180 escaping"
		}
		cmd.Printf("%s %s\n", labelStyle.Render("Export Quotes:"), quotes)
		return nil
	},
}

var setConfigCmd = &cobra.Command{
	Use:   "set",
	Short: "Update a configuration value",
	Example: `  campuslink config set --key search.debounce_ms --value 250
  campuslink config set --key search.mentor_mode --value fuzzy
  campuslink config set --key export.escape_quotes --value true`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		key, _ := cmd.Flags().GetString("key")
		value, _ := cmd.Flags().GetString("value")

		if key == "" || value == "" {
			return fmt.Errorf("both --key and --value are required")
		}
		if err := checkConfigValue(key, value); err != nil {
			return err
		}

		if err := config.Set(a.Viper, key, value); err != nil {
			return fmt.Errorf("update config: %w", err)
		}

		cmd.Printf("✓ Configuration updated: %s\n", key)
		return nil
	},
}

// checkConfigValue rejects values Load would refuse on the next run
func checkConfigValue(key, value string) error {
	switch key {
	case "search.debounce_ms", "search.recent_days":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive integer", key)
		}
	case "search.student_mode", "search.mentor_mode":
		if _, err := search.ParseMatchMode(value); err != nil {
			return err
		}
	case "export.escape_quotes":
		if _, err := strconv.ParseBool(value); err != nil {
			return fmt.Errorf("%s must be true or false", key)
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(showConfigCmd)
	configCmd.AddCommand(setConfigCmd)

	// Flags for set command
	setConfigCmd.Flags().String("key", "", "Configuration key")
	setConfigCmd.Flags().String("value", "", "Configuration value")
}
