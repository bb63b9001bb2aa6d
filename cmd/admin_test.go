package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminStudentsTestCmd() *cobra.Command {
	c := &cobra.Command{Use: adminStudentsCmd.Use, Args: adminStudentsCmd.Args}
	adminStudentsFlags(c)
	return c
}

func TestExportTarget(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		enabled bool
	}{
		{"no export", nil, "", false},
		{"bare export uses config", []string{"--export"}, "students_export.csv", true},
		{"export with output", []string{"--export", "--output", "reports/marketing.csv"}, "reports/marketing.csv", true},
		{"short output implies export", []string{"-o", "reports/marketing.csv"}, "reports/marketing.csv", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newAdminStudentsTestCmd()
			require.NoError(t, c.ParseFlags(tt.args))
			require.NoError(t, c.ValidateArgs(c.Flags().Args()))

			path, ok := exportTarget(c, "students_export.csv")
			assert.Equal(t, tt.enabled, ok)
			assert.Equal(t, tt.want, path)
		})
	}
}

func TestAdminStudentsRejectsStrayPath(t *testing.T) {
	c := newAdminStudentsTestCmd()
	require.NoError(t, c.ParseFlags([]string{"--export", "reports/marketing.csv"}))
	assert.Equal(t, []string{"reports/marketing.csv"}, c.Flags().Args())
	assert.Error(t, c.ValidateArgs(c.Flags().Args()))
}
