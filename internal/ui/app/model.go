package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	awsx "github.com/jayesh820/AWS-TASK/internal/aws"
	"github.com/jayesh820/AWS-TASK/internal/config"
	"github.com/jayesh820/AWS-TASK/internal/logs"
	logsui "github.com/jayesh820/AWS-TASK/internal/ui/logs"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("213")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	dimText = lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("44"))
)

// Deps are the long-lived collaborators shared by every view of the session.
type Deps struct {
	Factory  *logs.Factory
	Browser  *logs.Browser
	Loader   awsx.Loader
	Identity awsx.IdentityChecker
	Logger   zerolog.Logger
}

type identityMsg struct {
	client *logs.Client
	id     awsx.CallerIdentity
	err    error
}

// Model starts on the credential form, or directly on the browser when a shared
// profile is configured.
type Model struct {
	deps    Deps
	runtime config.RuntimeConfig

	form      credentialForm
	client    *logs.Client
	browse    logsui.Model
	connected bool

	regions optionSelector

	width    int
	height   int
	showHelp bool
	status   string
}

func NewModel(deps Deps, runtime config.RuntimeConfig) (Model, error) {
	m := Model{
		deps:    deps,
		runtime: runtime,
		form:    newCredentialForm(runtime.Region),
		regions: newOptionSelector("Select region"),
	}
	if runtime.Profile != "" {
		if _, err := m.connectProfile(runtime.Region); err != nil {
			return Model{}, err
		}
	}
	return m, nil
}

func (m Model) Init() tea.Cmd {
	if m.connected {
		return m.browse.Init()
	}
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case identityMsg:
		if msg.client != m.client {
			return m, nil
		}
		if msg.err != nil {
			m.status = msg.err.Error()
		} else {
			m.status = "signed in as " + msg.id.String()
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.forward(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.regions.active {
		region, cmd := m.regions.update(msg)
		if region == "" {
			return m, cmd
		}
		next, err := m.changeRegion(region)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		return m, next
	}

	if !m.connected {
		submit, cmd := m.form.update(msg)
		if !submit {
			return m, cmd
		}
		return m, m.connect(m.form.credentials())
	}

	if m.browse.Typing() {
		return m.forward(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "r":
		cmd := m.regions.open(awsRegions, m.runtime.Region)
		return m, cmd
	case "i":
		m.status = "checking identity..."
		return m, m.identityCmd()
	case "c":
		if m.runtime.Profile == "" {
			m.connected = false
			m.client = nil
			m.status = ""
			m.form.clear()
			return m, nil
		}
	case "?":
		m.showHelp = !m.showHelp
		return m, nil
	}

	m.status = ""
	return m.forward(msg)
}

// forward hands msg to the browser. Cursor blink messages also go to whichever
// text input is showing.
func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if _, isKey := msg.(tea.KeyMsg); !isKey {
		if m.regions.active {
			cmds = append(cmds, m.regions.blink(msg))
		}
		if !m.connected {
			cmds = append(cmds, m.form.blink(msg))
		}
	}
	if m.connected {
		next, cmd := m.browse.Update(msg)
		m.browse = next.(logsui.Model)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	header := fmt.Sprintf("CloudWatch Logs Viewer | region: %s | auth: %s", m.runtime.Region, m.authLabel())
	if m.showHelp {
		return header + "\n" + helpView()
	}
	if m.regions.active {
		return m.overlayView(header, m.regions.View(minWidth(m.width, 48), overlayRows(m.height)))
	}
	if !m.connected {
		return header + "\n\n" + m.form.View()
	}

	status := m.status
	if status == "" {
		status = m.browse.Status()
	}
	if status == "" {
		status = "Keys: arrows/jk move, / filter, enter select, f fetch, r region, i identity, c credentials, ? help, q quit"
	}
	return fmt.Sprintf("%s\n%s\n%s", header, m.browse.View(), statusStyle.Render(status))
}

// connect opens the browser on the handle for creds. The factory returns the
// same handle for a triple it has seen, so cached listings are reused.
func (m *Model) connect(creds awsx.Credentials) tea.Cmd {
	m.deps.Logger.Info().Object("creds", creds).Msg("connecting")
	m.runtime.Region = creds.Region
	return m.open(m.deps.Factory.Client(creds))
}

func (m *Model) connectProfile(region string) (tea.Cmd, error) {
	cfg, err := m.deps.Loader.Load(context.Background(), m.runtime.Profile, region)
	if err != nil {
		return nil, err
	}
	m.deps.Logger.Info().Str("profile", m.runtime.Profile).Str("region", cfg.Region).Msg("connecting")
	m.runtime.Region = cfg.Region
	return m.open(m.deps.Factory.FromConfig(cfg)), nil
}

func (m *Model) open(client *logs.Client) tea.Cmd {
	lastGroup := m.runtime.LogGroup
	if m.connected && m.browse.SelectedGroup() != "" {
		lastGroup = m.browse.SelectedGroup()
	}
	m.client = client
	m.browse = logsui.NewModel(m.deps.Browser, client, lastGroup, m.deps.Logger)
	m.connected = true
	m.status = ""

	cmds := []tea.Cmd{m.browse.Init()}
	if m.width > 0 && m.height > 0 {
		width, height := m.width, m.height
		cmds = append(cmds, func() tea.Msg {
			return tea.WindowSizeMsg{Width: width, Height: height}
		})
	}
	return tea.Batch(cmds...)
}

func (m *Model) changeRegion(region string) (tea.Cmd, error) {
	if m.runtime.Profile != "" {
		return m.connectProfile(region)
	}
	m.form.setRegion(region)
	return m.connect(m.form.credentials()), nil
}

func (m Model) identityCmd() tea.Cmd {
	checker, client := m.deps.Identity, m.client
	return func() tea.Msg {
		id, err := checker.Check(context.Background(), client.Config())
		return identityMsg{client: client, id: id, err: err}
	}
}

func (m Model) authLabel() string {
	switch {
	case m.runtime.Profile != "":
		return "profile " + m.runtime.Profile
	case m.connected:
		return "access key " + m.form.credentials().MaskedAccessKey()
	default:
		return "not signed in"
	}
}

func helpView() string {
	return "Navigation: arrows/j/k, tab switch list | Filter: / | Select: enter | Fetch logs: f | Scroll: pgup/pgdown | Region: r | Identity: i | Credentials: c | Quit: q or ctrl+c"
}

// Runtime exposes the current runtime configuration after user interaction.
func (m Model) Runtime() config.RuntimeConfig {
	rt := m.runtime
	if m.connected && m.browse.SelectedGroup() != "" {
		rt.LogGroup = m.browse.SelectedGroup()
	}
	return rt
}
