package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/khrees2412/campuslink/internal/debounce"
	"github.com/khrees2412/campuslink/internal/directory"
	"github.com/khrees2412/campuslink/internal/search"
	"github.com/khrees2412/campuslink/pkg/models"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse [students|mentors]",
	Short: "Launch interactive directory browser",
	Long: `Browse the student or mentor directory interactively. Typing updates the
search once input pauses for the configured debounce window; enter applies it
immediately. Facet flags fix the remaining filters for the session.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"students", "mentors"},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		page := "students"
		if len(args) == 1 {
			page = args[0]
		}

		var m browseModel
		switch page {
		case "students":
			if _, err := a.RequireRole(models.UserTypeCompany, models.UserTypeAlumni, models.UserTypeAdmin); err != nil {
				return err
			}
			students, err := a.Store.ListStudents(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetch students: %w", err)
			}
			mode, err := matchMode(cmd, a.Config.Search.StudentMode)
			if err != nil {
				return err
			}
			base := directory.StudentFilter{Mode: mode}
			base.Major, _ = cmd.Flags().GetString("major")
			base.GraduationYear, _ = cmd.Flags().GetString("year")
			base.Industries = listFlag(cmd, "industry")
			base.JobTypes = listFlag(cmd, "job-type")
			base.Locations = listFlag(cmd, "location")
			if err := base.Validate(); err != nil {
				return err
			}
			m = newBrowseModel("Student Directory", studentColumns, len(students), a.Config.DebounceWindow(),
				func(q string, key search.SortKey) ([]table.Row, error) {
					f := base
					f.Text, f.SortBy = q, key
					visible, err := directory.Apply(students, f)
					return studentRows(visible), err
				})

		case "mentors":
			mentors, err := a.Store.ListMentors(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetch mentors: %w", err)
			}
			mode, err := matchMode(cmd, a.Config.Search.MentorMode)
			if err != nil {
				return err
			}
			base := directory.MentorFilter{Mode: mode, RecentWindow: a.Config.RecentWindow(), Now: a.Now}
			base.Industry, _ = cmd.Flags().GetString("industry")
			base.Location, _ = cmd.Flags().GetString("location")
			base.ActiveRecently, _ = cmd.Flags().GetBool("active")
			if err := base.Validate(); err != nil {
				return err
			}
			m = newBrowseModel("Mentorship Directory", mentorColumns, len(mentors), a.Config.DebounceWindow(),
				func(q string, key search.SortKey) ([]table.Row, error) {
					f := base
					f.Text, f.SortBy = q, key
					visible, err := directory.Apply(mentors, f)
					return mentorRows(visible), err
				})

		default:
			return fmt.Errorf("unknown directory %q (want students or mentors)", page)
		}

		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
		_, err = p.Run()
		m.query.Stop()
		return err
	},
}

// settledMsg carries the search text once typing pauses
type settledMsg string

// browseModel is a filterable table. Keystrokes only update the raw query;
// the table is recomputed when the debouncer reports a settled value.
type browseModel struct {
	title   string
	input   textinput.Model
	table   table.Model
	query   *debounce.Value[string]
	notify  chan struct{}
	apply   func(query string, key search.SortKey) ([]table.Row, error)
	sorts   []search.SortKey
	sortIdx int
	total   int
	shown   int
	last    string
	err     error
}

var browseSorts = []search.SortKey{search.SortNone, search.SortName, search.SortGraduationYear, search.SortNewest}

func newBrowseModel(title string, columns []table.Column, total int, window time.Duration,
	apply func(string, search.SortKey) ([]table.Row, error)) browseModel {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	fi := textinput.New()
	fi.Placeholder = "Search..."
	fi.CharLimit = 80
	fi.Width = 40
	fi.Focus()

	notify := make(chan struct{}, 1)
	m := browseModel{
		title:  title,
		input:  fi,
		table:  t,
		notify: notify,
		apply:  apply,
		sorts:  browseSorts,
		total:  total,
		query: debounce.New(window, func(string) {
			select {
			case notify <- struct{}{}:
			default:
			}
		}),
	}
	m.refresh("")
	return m
}

// waitForSettle blocks until the debouncer settles and reports the settled
// text. It returns nil once the debouncer is stopped.
func waitForSettle(notify <-chan struct{}, query *debounce.Value[string]) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-notify:
			return settledMsg(query.Settled())
		case <-query.Done():
			return nil
		}
	}
}

func (m browseModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForSettle(m.notify, m.query))
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.query.Stop()
			return m, tea.Quit
		case "enter":
			m.query.Flush()
			return m, nil
		case "tab":
			m.sortIdx = (m.sortIdx + 1) % len(m.sorts)
			m.refresh(m.query.Settled())
			return m, nil
		case "up", "down", "pgup", "pgdown", "home", "end":
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

		m.input, cmd = m.input.Update(msg)
		if v := m.input.Value(); v != m.last {
			m.last = v
			m.query.Set(v)
		}
		return m, cmd

	case settledMsg:
		m.refresh(string(msg))
		return m, waitForSettle(m.notify, m.query)

	case tea.WindowSizeMsg:
		m.table.SetWidth(msg.Width - 4)
		m.table.SetHeight(max(5, msg.Height-8))
		return m, nil
	}

	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *browseModel) refresh(query string) {
	rows, err := m.apply(query, m.sorts[m.sortIdx])
	m.err = err
	if err != nil {
		return
	}
	m.shown = len(rows)
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m browseModel) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(m.title) + "\n")

	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("12")).
		Padding(0, 1)
	sb.WriteString(inputStyle.Render(m.input.View()))

	sort := string(m.sorts[m.sortIdx])
	if sort == "" {
		sort = "default"
	}
	status := "  sort: " + sort
	if m.query.Pending() {
		status += "  typing..."
	}
	sb.WriteString(mutedStyle.Render(status) + "\n\n")

	if m.err != nil {
		sb.WriteString(errorStyle.Render(m.err.Error()) + "\n")
	}
	sb.WriteString(m.table.View())
	sb.WriteString(mutedStyle.Render(fmt.Sprintf("\nShowing %d of %d · enter: search now · tab: sort · esc: quit",
		m.shown, m.total)))
	return sb.String()
}

var studentColumns = []table.Column{
	{Title: "Name", Width: 22},
	{Title: "Major", Width: 20},
	{Title: "Year", Width: 6},
	{Title: "Skills", Width: 28},
	{Title: "Industries", Width: 24},
}

func studentRows(students []*models.Student) []table.Row {
	rows := make([]table.Row, 0, len(students))
	for _, s := range students {
		row := table.Row{s.FullName, "", "", "", ""}
		if p := s.Profile; p != nil {
			row[1] = p.Major
			if p.GraduationYear != 0 {
				row[2] = strconv.Itoa(p.GraduationYear)
			}
			row[3] = strings.Join(p.Skills, ", ")
			row[4] = strings.Join(p.CareerPreferences.Industries, ", ")
		}
		rows = append(rows, row)
	}
	return rows
}

var mentorColumns = []table.Column{
	{Title: "Name", Width: 22},
	{Title: "Title", Width: 24},
	{Title: "Company", Width: 18},
	{Title: "Industry", Width: 16},
	{Title: "Location", Width: 14},
}

func mentorRows(mentors []*models.Mentor) []table.Row {
	rows := make([]table.Row, 0, len(mentors))
	for _, m := range mentors {
		rows = append(rows, table.Row{m.FullName, m.CurrentTitle, m.CurrentCompany, m.Industry, m.Location})
	}
	return rows
}

func init() {
	rootCmd.AddCommand(browseCmd)

	f := browseCmd.Flags()
	f.String("mode", "", "Text matching: fuzzy or substring (default from config)")
	f.String("major", search.All, "Major (students)")
	f.String("year", search.All, "Graduation year (students)")
	f.String("industry", "", "Industry")
	f.String("job-type", "", "Preferred job types (students)")
	f.String("location", "", "Location")
	f.Bool("active", false, "Only mentors active within the recent window")
}
