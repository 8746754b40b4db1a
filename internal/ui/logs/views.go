package logs

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jayesh820/AWS-TASK/internal/ui/picker"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("213")).
			Bold(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("51"))

	dimText = lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))
)

func (m Model) renderGroups(width, height int) string {
	b := &strings.Builder{}
	header := titleStyle.Render("Select Log Group")
	if m.loadingGroups {
		header += " " + dimText.Render("(loading...)")
	}
	fmt.Fprintln(b, header)
	if m.groupsErr != nil {
		fmt.Fprintln(b, errorStyle.Render(picker.Truncate(m.groupsErr.Error(), width)))
		return b.String()
	}
	if m.loadingGroups {
		return b.String()
	}
	m.renderList(b, m.groups, groupsPane, m.selectedGroup, "no log groups", width, height-2)
	return b.String()
}

func (m Model) renderStreams(width, height int) string {
	b := &strings.Builder{}
	header := titleStyle.Render("Select Log Stream")
	if m.loadingStreams {
		header += " " + dimText.Render("(loading...)")
	}
	fmt.Fprintln(b, header)
	switch {
	case m.groups.Len() == 0:
		fmt.Fprintln(b, dimText.Render("no log groups to choose from"))
	case m.selectedGroup == "":
		fmt.Fprintln(b, dimText.Render("press enter on a log group"))
	case !m.loadingStreams:
		fmt.Fprintln(b, dimText.Render(picker.Truncate(m.selectedGroup, width)))
		m.renderList(b, m.streams, streamsPane, m.selectedStream, "no log streams", width, height-3)
	}
	return b.String()
}

func (m Model) renderList(b *strings.Builder, l picker.List, p pane, selected, empty string, width, rows int) {
	focused := m.focus == p
	query := ""
	if focused {
		query = m.search.Value()
		if m.searching || query != "" {
			fmt.Fprintln(b, m.search.View())
			rows--
		}
	}
	items, start := l.Window(query, rows)
	if len(items) == 0 {
		fmt.Fprintln(b, empty)
		return
	}
	for i, name := range items {
		line := picker.Truncate(name, width)
		switch {
		case focused && start+i == l.Cursor():
			line = cursorStyle.Render(line)
		case name == selected:
			line = selectedStyle.Render(line)
		}
		fmt.Fprintln(b, line)
	}
}

func (m Model) renderOutput() string {
	if m.outputTitle == "" {
		hint := "Press f to fetch logs from the selected stream"
		if m.fetching {
			hint = "fetching..."
		}
		return fmt.Sprintf("%s\n%s", titleStyle.Render("Log Output"), dimText.Render(hint))
	}
	header := fmt.Sprintf("%s %s", titleStyle.Render(m.outputTitle), dimText.Render("(pgup/pgdown scroll)"))
	return fmt.Sprintf("%s\n%s", header, m.view.View())
}

// Status is the last message worth showing in the app's status line.
func (m Model) Status() string {
	return m.statusLine
}
