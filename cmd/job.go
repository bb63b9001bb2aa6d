package cmd

import (
	"fmt"

	"github.com/khrees2412/campuslink/internal/app"
	"github.com/khrees2412/campuslink/internal/database"
	"github.com/khrees2412/campuslink/internal/matcher"
	"github.com/khrees2412/campuslink/pkg/models"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var jobCmd = &cobra.Command{
	Use:     "jobs",
	Aliases: []string{"job"},
	Short:   "Manage job postings",
	Long:    "Post, list, view, close, and remove job postings",
}

var addJobCmd = &cobra.Command{
	Use:   "add",
	Short: "Post a job",
	Example: `  campuslink jobs add --title "Marketing Intern" --location Chicago --industry Advertising --type Internship
  campuslink jobs add --title "Backend Engineer" --location Remote --description "Go, PostgreSQL"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		sess, err := a.RequireRole(models.UserTypeCompany)
		if err != nil {
			return err
		}

		job := &models.Job{CompanyID: sess.UserID}
		job.Title, _ = cmd.Flags().GetString("title")
		job.Description, _ = cmd.Flags().GetString("description")
		job.Location, _ = cmd.Flags().GetString("location")
		job.Industry, _ = cmd.Flags().GetString("industry")
		job.JobType, _ = cmd.Flags().GetString("type")

		if err := a.Store.CreateJob(cmd.Context(), job); err != nil {
			return fmt.Errorf("save job: %w", err)
		}

		cmd.Printf("✓ Job posted: %s (ID: %s)\n", job.Title, job.ID)
		return nil
	},
}

var listJobsCmd = &cobra.Command{
	Use:   "list",
	Short: "List job postings",
	Example: `  campuslink jobs list
  campuslink jobs list --status closed --company 3f2c...
  campuslink jobs list --recommend --min-score 0.5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		criteria := database.Criteria{}
		if status, _ := cmd.Flags().GetString("status"); status != "" {
			criteria["status"] = status
		}
		if company, _ := cmd.Flags().GetString("company"); company != "" {
			criteria["company_id"] = company
		}

		jobs, err := a.Store.FilterJobs(cmd.Context(), criteria)
		if err != nil {
			return fmt.Errorf("fetch jobs: %w", err)
		}

		if recommend, _ := cmd.Flags().GetBool("recommend"); recommend {
			return listRecommendations(cmd, a, jobs)
		}

		if len(jobs) == 0 {
			cmd.Println("No jobs found. Companies can post with 'campuslink jobs add'")
			return nil
		}

		cmd.Println(titleStyle.Render("Job Board"))
		for i, job := range jobs {
			printJobSummary(cmd, i+1, job)
		}
		return nil
	},
}

func listRecommendations(cmd *cobra.Command, a *app.App, jobs []*models.Job) error {
	sess, err := a.RequireRole(models.UserTypeStudent)
	if err != nil {
		return err
	}
	student, err := a.Store.GetStudent(cmd.Context(), sess.UserID)
	if err != nil {
		return fmt.Errorf("fetch student: %w", err)
	}
	if !student.HasProfile() {
		cmd.Println("Complete your profile with 'campuslink profile set' to get recommendations.")
		return nil
	}

	minScore, _ := cmd.Flags().GetFloat64("min-score")
	limit, _ := cmd.Flags().GetInt("limit")
	recs := matcher.Recommend(jobs, student, minScore, limit)
	a.Logger.Debug("jobs scored", zap.Int("jobs", len(jobs)), zap.Int("recommended", len(recs)))

	if len(recs) == 0 {
		cmd.Println("No jobs match your profile yet.")
		return nil
	}
	cmd.Println(titleStyle.Render("Recommended Jobs"))
	for i, rec := range recs {
		printJobSummary(cmd, i+1, rec.Job)
		cmd.Printf("   %s %.0f%%\n", labelStyle.Render("Match:"), rec.Score*100)
	}
	return nil
}

func printJobSummary(cmd *cobra.Command, n int, job *models.Job) {
	cmd.Printf("\n%s. %s\n", labelStyle.Render(fmt.Sprintf("%d", n)), job.Title)
	if job.Location != "" {
		cmd.Printf("   %s %s\n", labelStyle.Render("Location:"), job.Location)
	}
	if job.JobType != "" {
		cmd.Printf("   %s %s\n", labelStyle.Render("Type:"), job.JobType)
	}
	cmd.Printf("   %s %s\n", labelStyle.Render("ID:"), job.ID)
	cmd.Printf("   %s %s (%s)\n", labelStyle.Render("Posted:"), job.CreatedDate.Format("Jan 2, 2006"), job.Status)
}

var showJobCmd = &cobra.Command{
	Use:   "show <job-id>",
	Short: "Show details of a specific job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		job, err := a.Store.GetJob(ctx, args[0])
		if err != nil {
			return fmt.Errorf("fetch job: %w", err)
		}

		// Views by the owning company are not counted
		if a.Session == nil || a.Session.UserID != job.CompanyID {
			if err := a.Store.RecordJobView(ctx, job.ID); err != nil {
				a.Logger.Warn("failed to record job view", zap.String("job_id", job.ID), zap.Error(err))
			} else {
				job.ViewCount++
			}
		}

		cmd.Println(titleStyle.Render(job.Title))
		if company, err := a.Store.GetCompanyProfile(ctx, job.CompanyID); err == nil {
			field(cmd, "Company", company.CompanyName)
		}
		field(cmd, "Location", job.Location)
		field(cmd, "Industry", job.Industry)
		field(cmd, "Type", job.JobType)
		field(cmd, "Status", string(job.Status))
		field(cmd, "Views", fmt.Sprint(job.ViewCount))
		field(cmd, "Posted", job.CreatedDate.Format("Jan 2, 2006 15:04"))

		if job.Description != "" {
			cmd.Println(labelStyle.Render("\nDescription:"))
			cmd.Println(job.Description)
		}
		return nil
	},
}

// ownedJob loads a job the session user may change: its company or an admin
func ownedJob(cmd *cobra.Command, a *app.App, id string) (*models.Job, error) {
	sess, err := a.RequireRole(models.UserTypeCompany, models.UserTypeAdmin)
	if err != nil {
		return nil, err
	}
	job, err := a.Store.GetJob(cmd.Context(), id)
	if err != nil {
		return nil, fmt.Errorf("fetch job: %w", err)
	}
	if sess.Role() != models.UserTypeAdmin && job.CompanyID != sess.UserID {
		return nil, fmt.Errorf("%w: job %s belongs to another company", app.ErrForbidden, id)
	}
	return job, nil
}

var closeJobCmd = &cobra.Command{
	Use:   "close <job-id>",
	Short: "Close a job posting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		job, err := ownedJob(cmd, a, args[0])
		if err != nil {
			return err
		}

		status := models.JobStatusClosed
		if reopen, _ := cmd.Flags().GetBool("reopen"); reopen {
			status = models.JobStatusActive
		}
		if err := a.Store.SetJobStatus(cmd.Context(), job.ID, status); err != nil {
			return fmt.Errorf("update job: %w", err)
		}

		cmd.Printf("✓ %s is now %s\n", job.Title, status)
		return nil
	},
}

var removeJobCmd = &cobra.Command{
	Use:   "remove <job-id>",
	Short: "Remove a job posting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		job, err := ownedJob(cmd, a, args[0])
		if err != nil {
			return err
		}

		if err := a.Store.DeleteJob(cmd.Context(), job.ID); err != nil {
			return fmt.Errorf("remove job: %w", err)
		}

		cmd.Printf("✓ Removed job: %s\n", job.Title)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(jobCmd)
	jobCmd.AddCommand(addJobCmd)
	jobCmd.AddCommand(listJobsCmd)
	jobCmd.AddCommand(showJobCmd)
	jobCmd.AddCommand(closeJobCmd)
	jobCmd.AddCommand(removeJobCmd)

	// Flags for add command
	addJobCmd.Flags().String("title", "", "Job title")
	addJobCmd.Flags().String("description", "", "Job description")
	addJobCmd.Flags().String("location", "", "Job location")
	addJobCmd.Flags().String("industry", "", "Industry")
	addJobCmd.Flags().String("type", "", "Job type (internship, full-time, ...)")
	addJobCmd.MarkFlagRequired("title")

	listJobsCmd.Flags().String("status", "", "Only jobs with this status (active or closed)")
	listJobsCmd.Flags().String("company", "", "Only jobs posted by this company ID")
	listJobsCmd.Flags().Bool("recommend", false, "Rank jobs against your student profile")
	listJobsCmd.Flags().Float64("min-score", 0.5, "Minimum match score for --recommend")
	listJobsCmd.Flags().Int("limit", 10, "Maximum recommendations")

	closeJobCmd.Flags().Bool("reopen", false, "Reopen a closed posting instead")
}
