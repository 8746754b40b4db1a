package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jayesh820/AWS-TASK/internal/ui/picker"
)

// optionSelector is a searchable overlay over a picker list.
type optionSelector struct {
	title  string
	list   picker.List
	active bool
	input  textinput.Model
}

func newOptionSelector(title string) optionSelector {
	in := textinput.New()
	in.Placeholder = "type to filter"
	return optionSelector{title: title, input: in}
}

// open shows items with the cursor on current and focuses the filter.
func (s *optionSelector) open(items []string, current string) tea.Cmd {
	s.list.SetItems(items, current)
	s.input.SetValue("")
	s.active = true
	return s.input.Focus()
}

func (s *optionSelector) close() {
	s.active = false
	s.input.Blur()
}

// update returns the chosen item once enter is pressed on a match.
func (s *optionSelector) update(msg tea.KeyMsg) (string, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		s.close()
		return "", nil
	case tea.KeyEnter:
		choice := s.current()
		if choice != "" {
			s.close()
		}
		return choice, nil
	case tea.KeyUp:
		s.list.Move(-1, s.input.Value())
		return "", nil
	case tea.KeyDown:
		s.list.Move(1, s.input.Value())
		return "", nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	s.list.Clamp(s.input.Value())
	return "", cmd
}

func (s *optionSelector) blink(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

func (s optionSelector) current() string {
	return s.list.Current(s.input.Value())
}

// View draws at most rows items, scrolled to keep the cursor visible.
func (s optionSelector) View(width, rows int) string {
	box := lipgloss.NewStyle().Width(width).Padding(0, 1).Border(lipgloss.RoundedBorder())
	query := s.input.Value()
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", s.title, dimText.Render(fmt.Sprintf("(%d/%d)", len(s.list.Filtered(query)), s.list.Len())))
	fmt.Fprintf(&b, "%s\n\n", s.input.View())
	items, start := s.list.Window(query, rows)
	if len(items) == 0 {
		fmt.Fprintln(&b, "No matches")
	}
	for i, item := range items {
		cursor := "  "
		if start+i == s.list.Cursor() {
			cursor = "> "
		}
		fmt.Fprintf(&b, "%s%s\n", cursor, picker.Truncate(item, width-4))
	}
	fmt.Fprint(&b, dimText.Render("↑/↓ move, type to filter, enter select, esc cancel"))
	return box.Render(b.String())
}

func (m Model) overlayView(header, overlay string) string {
	if m.width == 0 || m.height == 0 {
		return overlay
	}
	containerHeight := m.height - 1 // reserve a line for the header already printed
	if containerHeight < 4 {
		containerHeight = m.height
	}
	container := lipgloss.NewStyle().Width(m.width).Height(containerHeight)
	popup := lipgloss.Place(m.width, containerHeight, lipgloss.Center, lipgloss.Center, overlay)
	return fmt.Sprintf("%s\n%s", header, container.Render(popup))
}

// overlayRows is how many list rows fit in the region overlay: the box border,
// the title, filter and hint lines take eight.
func overlayRows(height int) int {
	if height <= 0 {
		return 10
	}
	rows := height - 1 - 8
	if rows < 1 {
		return 1
	}
	return rows
}

func minWidth(actual, limit int) int {
	switch {
	case actual <= 0:
		return limit
	case actual < limit:
		if actual-2 > 10 {
			return actual - 2
		}
		return actual
	}
	return limit
}

var awsRegions = []string{
	"af-south-1", "ap-east-1", "ap-south-1", "ap-south-2",
	"ap-southeast-1", "ap-southeast-2", "ap-southeast-3", "ap-northeast-1",
	"ap-northeast-2", "ap-northeast-3", "ca-central-1", "ca-west-1",
	"eu-central-1", "eu-central-2", "eu-west-1", "eu-west-2",
	"eu-west-3", "eu-north-1", "eu-south-1", "eu-south-2",
	"il-central-1", "me-south-1", "me-central-1",
	"sa-east-1", "us-east-1", "us-east-2", "us-west-1", "us-west-2",
}
