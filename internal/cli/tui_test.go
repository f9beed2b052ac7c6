package cli

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var pickerNow = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func pickerModel() RepoListModel {
	return NewRepoListModel([]repoItem{
		{Slug: "tool", LatestVersion: "v1.2.0", LastChecked: pickerNow.Add(-2 * time.Hour)},
		{Slug: "other"},
		{Slug: "third"},
	}, pickerNow)
}

func press(m tea.Model, key string) (tea.Model, tea.Cmd) {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	return m.Update(msg)
}

func TestRepoListNavigateAndSelect(t *testing.T) {
	var m tea.Model = pickerModel()

	m, _ = press(m, "down")
	m, _ = press(m, "j")
	m, _ = press(m, "j") // already at the bottom
	m, _ = press(m, "up")
	m, cmd := press(m, "enter")

	got := m.(RepoListModel)
	if got.Selected != "other" {
		t.Errorf("Selected = %q, want other", got.Selected)
	}
	if cmd == nil {
		t.Error("enter should quit the program")
	}
}

func TestRepoListQuitWithoutSelection(t *testing.T) {
	var m tea.Model = pickerModel()

	m, cmd := press(m, "q")

	if got := m.(RepoListModel).Selected; got != "" {
		t.Errorf("Selected = %q, want empty", got)
	}
	if cmd == nil {
		t.Error("q should quit the program")
	}
}

func TestRepoListScrollsWithCursor(t *testing.T) {
	m := pickerModel()
	m.Height = 1

	var model tea.Model = m
	model, _ = press(model, "down")
	model, _ = press(model, "down")

	got := model.(RepoListModel)
	if got.Cursor != 2 || got.Offset != 2 {
		t.Errorf("Cursor, Offset = %d, %d, want 2, 2", got.Cursor, got.Offset)
	}
	if view := got.View(); !strings.Contains(view, "third") || strings.Contains(view, "tool") {
		t.Errorf("view should only show the cursor row:\n%s", view)
	}
}

func TestRepoListView(t *testing.T) {
	view := pickerModel().View()

	for _, want := range []string{"Select Repository", "tool", "v1.2.0", "2h ago", "other", "never", "[1/3]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q:\n%s", want, view)
		}
	}
}

func TestWindowSizeClampsHeight(t *testing.T) {
	m, _ := pickerModel().Update(tea.WindowSizeMsg{Width: 80, Height: 3})
	if got := m.(RepoListModel).Height; got != 5 {
		t.Errorf("Height = %d, want 5", got)
	}
}

func TestFormatRelativeTime(t *testing.T) {
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "just now"},
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
		{2 * 24 * time.Hour, "2d ago"},
		{30 * 24 * time.Hour, "May 2, 2024"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := formatRelativeTime(pickerNow.Add(-tt.ago), pickerNow); got != tt.want {
				t.Errorf("formatRelativeTime(-%s) = %q, want %q", tt.ago, got, tt.want)
			}
		})
	}
}

func TestPickRepositoryWithoutItems(t *testing.T) {
	if _, err := pickRepository(nil, pickerNow); err != errNoRepository {
		t.Errorf("err = %v, want errNoRepository", err)
	}
}
