package logs

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jayesh820/AWS-TASK/internal/logs"
	"github.com/jayesh820/AWS-TASK/internal/ui/picker"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type pane int

const (
	groupsPane pane = iota
	streamsPane
)

type logGroupsLoadedMsg struct {
	client *logs.Client
	groups []string
	err    error
}

type logStreamsLoadedMsg struct {
	client  *logs.Client
	group   string
	streams []string
	err     error
}

type logEventsLoadedMsg struct {
	client *logs.Client
	group  string
	stream string
	lines  []string
}

// Model browses groups, then streams of the chosen group, and shows the first
// page of events of the chosen stream on request.
type Model struct {
	browser *logs.Browser
	client  *logs.Client
	logger  zerolog.Logger

	width  int
	height int

	focus pane

	groups        picker.List
	loadingGroups bool
	groupsErr     error
	wantGroup     string

	streams        picker.List
	loadingStreams bool
	selectedGroup  string
	selectedStream string

	searching  bool
	search     textinput.Model
	statusLine string

	fetching    bool
	outputTitle string
	view        viewport.Model
}

// NewModel returns a browser view over client. lastGroup, when it is listed,
// gets the cursor once groups arrive.
func NewModel(browser *logs.Browser, client *logs.Client, lastGroup string, logger zerolog.Logger) Model {
	ti := textinput.New()
	ti.Placeholder = "filter"
	ti.Prompt = "/ "
	return Model{
		browser:       browser,
		client:        client,
		logger:        logger,
		loadingGroups: true,
		wantGroup:     lastGroup,
		search:        ti,
		view:          viewport.New(0, 0),
	}
}

func (m Model) Init() tea.Cmd {
	return m.loadLogGroupsCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.setViewportSize()
	case logGroupsLoadedMsg:
		if msg.client != m.client {
			return m, nil
		}
		m.loadingGroups = false
		if msg.err != nil {
			m.groupsErr = msg.err
			m.statusLine = msg.err.Error()
			return m, nil
		}
		m.groups.SetItems(msg.groups, m.wantGroup)
		m.statusLine = fmt.Sprintf("loaded %d log groups", len(msg.groups))
	case logStreamsLoadedMsg:
		if msg.client != m.client || msg.group != m.selectedGroup {
			return m, nil
		}
		m.loadingStreams = false
		if msg.err != nil {
			m.statusLine = msg.err.Error()
			return m, nil
		}
		m.streams.SetItems(msg.streams, "")
		m.statusLine = fmt.Sprintf("loaded %d log streams in %s", len(msg.streams), msg.group)
	case logEventsLoadedMsg:
		if msg.client != m.client {
			return m, nil
		}
		m.fetching = false
		m.outputTitle = "Logs from " + msg.stream
		m.view.SetContent(strings.Join(msg.lines, "\n"))
		m.view.GotoTop()
		m.statusLine = fmt.Sprintf("fetched %d lines from %s", len(msg.lines), msg.stream)
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		if m.searching {
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		switch msg.Type {
		case tea.KeyEnter, tea.KeyEscape:
			m.searching = false
			m.search.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.activeList().Clamp(m.search.Value())
		return m, cmd
	}

	switch msg.String() {
	case "up", "k":
		m.activeList().Move(-1, m.search.Value())
	case "down", "j":
		m.activeList().Move(1, m.search.Value())
	case "tab", "left", "right", "h", "l":
		m.switchPane()
	case "/":
		m.searching = true
		cmd := m.search.Focus()
		return m, cmd
	case "esc":
		m.clearQuery()
	case "enter":
		return m.choose()
	case "f":
		return m.fetch()
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.view, cmd = m.view.Update(msg)
		return m, cmd
	case "home":
		m.view.GotoTop()
	case "end":
		m.view.GotoBottom()
	}
	return m, nil
}

// choose acts on the cursor of the focused pane. Choosing a group loads its
// streams; there is nothing to choose while a list is empty.
func (m Model) choose() (tea.Model, tea.Cmd) {
	query := m.search.Value()
	switch m.focus {
	case groupsPane:
		group := m.groups.Current(query)
		if group == "" {
			return m, nil
		}
		m.clearQuery()
		m.selectedGroup = group
		m.selectedStream = ""
		m.streams.SetItems(nil, "")
		m.loadingStreams = true
		m.focus = streamsPane
		m.logger.Debug().Str("group", group).Msg("log group selected")
		return m, m.loadLogStreamsCmd(group)
	case streamsPane:
		stream := m.streams.Current(query)
		if stream == "" {
			return m, nil
		}
		m.selectedStream = stream
		m.statusLine = "press f to fetch logs from " + stream
	}
	return m, nil
}

func (m Model) fetch() (tea.Model, tea.Cmd) {
	if m.selectedStream == "" && m.focus == streamsPane {
		m.selectedStream = m.streams.Current(m.search.Value())
	}
	if m.selectedGroup == "" || m.selectedStream == "" || m.fetching {
		return m, nil
	}
	m.fetching = true
	m.statusLine = "fetching " + m.selectedStream
	return m, m.loadLogEventsCmd(m.selectedGroup, m.selectedStream)
}

func (m *Model) switchPane() {
	if m.focus == groupsPane && m.selectedGroup == "" {
		return
	}
	m.clearQuery()
	if m.focus == groupsPane {
		m.focus = streamsPane
	} else {
		m.focus = groupsPane
	}
}

// clearQuery drops the filter and keeps the cursor on the item it was on.
func (m *Model) clearQuery() {
	list := m.activeList()
	current := list.Current(m.search.Value())
	m.search.SetValue("")
	list.Clamp("")
	list.Select(current, "")
}

func (m *Model) activeList() *picker.List {
	if m.focus == streamsPane {
		return &m.streams
	}
	return &m.groups
}

func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	leftWidth := m.width / 3
	rightWidth := m.width - leftWidth
	bodyHeight := m.bodyHeight()
	groupsHeight := bodyHeight / 2
	streamsHeight := bodyHeight - groupsHeight

	groups := panelStyle.Width(leftWidth - 2).Height(groupsHeight - 2).Render(m.renderGroups(leftWidth-4, groupsHeight-2))
	streams := panelStyle.Width(leftWidth - 2).Height(streamsHeight - 2).Render(m.renderStreams(leftWidth-4, streamsHeight-2))
	output := panelStyle.Width(rightWidth - 2).Height(bodyHeight - 2).Render(m.renderOutput())

	return lipgloss.JoinHorizontal(lipgloss.Top, lipgloss.JoinVertical(lipgloss.Left, groups, streams), output)
}

func (m Model) loadLogGroupsCmd() tea.Cmd {
	browser, client := m.browser, m.client
	return func() tea.Msg {
		groups, err := browser.LogGroups(context.Background(), client)
		return logGroupsLoadedMsg{client: client, groups: groups, err: err}
	}
}

func (m Model) loadLogStreamsCmd(group string) tea.Cmd {
	browser, client := m.browser, m.client
	return func() tea.Msg {
		streams, err := browser.LogStreams(context.Background(), client, group)
		return logStreamsLoadedMsg{client: client, group: group, streams: streams, err: err}
	}
}

func (m Model) loadLogEventsCmd(group, stream string) tea.Cmd {
	browser, client := m.browser, m.client
	return func() tea.Msg {
		lines := browser.Events(context.Background(), client, group, stream)
		return logEventsLoadedMsg{client: client, group: group, stream: stream, lines: lines}
	}
}

// SelectedGroup is the group the user last chose, if any.
func (m Model) SelectedGroup() string {
	return m.selectedGroup
}

// Typing reports whether keys are going to the filter input.
func (m Model) Typing() bool {
	return m.searching
}

func (m *Model) setViewportSize() {
	rightWidth := m.width - m.width/3
	innerWidth := rightWidth - 4 // border and padding
	if innerWidth < 1 {
		innerWidth = 1
	}
	innerHeight := m.bodyHeight() - 3 // borders and title line
	if innerHeight < 1 {
		innerHeight = 1
	}
	m.view.Width = innerWidth
	m.view.Height = innerHeight
}

func (m Model) bodyHeight() int {
	h := m.height - 2 // header and status line in app view
	if h < 8 {
		return 8
	}
	return h
}
