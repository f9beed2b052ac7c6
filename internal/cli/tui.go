package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// RepoListModel - Interactive repository selection
// =============================================================================

// repoItem is one registered repository with its cached release, if any.
type repoItem struct {
	Slug          string
	LatestVersion string
	LastChecked   time.Time
}

// RepoListModel is the bubbletea model for picking a registered repository.
type RepoListModel struct {
	Repos    []repoItem
	Cursor   int
	Selected string
	Height   int
	Offset   int

	now time.Time
}

// NewRepoListModel creates a new repo list model. now anchors the relative
// "checked" column.
func NewRepoListModel(repos []repoItem, now time.Time) RepoListModel {
	return RepoListModel{
		Repos:  repos,
		Height: 15,
		now:    now,
	}
}

func (m RepoListModel) Init() tea.Cmd {
	return nil
}

func (m RepoListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Repos)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Repos) == 0 {
				return m, tea.Quit
			}
			m.Selected = m.Repos[m.Cursor].Slug
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m RepoListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Repository"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ check  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Repos) {
		end = len(m.Repos)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Repos[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		latest, checked := "—", "never"
		if r.LatestVersion != "" {
			latest = r.LatestVersion
			checked = formatRelativeTime(r.LastChecked, m.now)
		}
		rows = append(rows, []string{cursor, r.Slug, latest, checked})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Repository", "Cached", "Checked").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Repos) {
				return lipgloss.NewStyle()
			}
			cached := m.Repos[actualIdx].LatestVersion != ""

			base := lipgloss.NewStyle()
			switch {
			case col == 3:
				base = base.Foreground(colorDim)
			case cached:
				base = base.Foreground(colorGreen)
			}
			if actualIdx == m.Cursor {
				return base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Repos))))

	return b.String()
}

// pickRepository runs the picker and returns the chosen slug, or "" when the
// user quit without choosing.
func pickRepository(items []repoItem, now time.Time) (string, error) {
	if len(items) == 0 {
		return "", errNoRepository
	}
	final, err := tea.NewProgram(NewRepoListModel(items, now)).Run()
	if err != nil {
		return "", err
	}
	return final.(RepoListModel).Selected, nil
}

// formatRelativeTime renders t relative to now, falling back to a date after a week.
func formatRelativeTime(t, now time.Time) string {
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
