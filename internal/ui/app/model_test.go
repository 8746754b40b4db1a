package app

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	awsx "github.com/jayesh820/AWS-TASK/internal/aws"
	"github.com/jayesh820/AWS-TASK/internal/config"
	"github.com/jayesh820/AWS-TASK/internal/logs"
)

const (
	testAccessKey = "AKIAEXAMPLE12345678"
	testSecretKey = "wJalrXUtnFEMI/K7MDENG/bPxRfiCYEXAMPLEKEY"
)

func newTestModel(t *testing.T, logOut *bytes.Buffer) (Model, *logs.Factory) {
	t.Helper()
	logger := zerolog.New(logOut).Level(zerolog.DebugLevel)
	factory := logs.NewFactory(logger)
	deps := Deps{
		Factory:  factory,
		Browser:  logs.NewBrowser(logs.WithLogger(logger)),
		Loader:   awsx.NewLoader(),
		Identity: awsx.NewIdentityChecker(),
		Logger:   logger,
	}
	m, err := NewModel(deps, config.RuntimeConfig{Region: "us-east-1"})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return update(m, tea.WindowSizeMsg{Width: 120, Height: 40}), factory
}

// update feeds msg without running the returned command, so nothing reaches AWS.
func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func signIn(m Model) Model {
	m = typeText(m, testAccessKey)
	m = update(m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(m, testSecretKey)
	return update(m, tea.KeyMsg{Type: tea.KeyEnter})
}

func TestFormWarnsUntilKeysEntered(t *testing.T) {
	m, _ := newTestModel(t, &bytes.Buffer{})
	warning := "Please enter your AWS credentials to continue."

	if !strings.Contains(m.View(), warning) {
		t.Fatalf("expected warning on empty form:\n%s", m.View())
	}

	m = typeText(m, testAccessKey)
	m = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.connected {
		t.Fatalf("connected with no secret key")
	}
	if !strings.Contains(m.View(), warning) {
		t.Fatalf("warning should remain while the secret is empty")
	}

	m = typeText(m, testSecretKey)
	if strings.Contains(m.View(), warning) {
		t.Fatalf("warning shown for a complete form")
	}
}

func TestSubmitUsesFactoryHandle(t *testing.T) {
	m, factory := newTestModel(t, &bytes.Buffer{})
	m = signIn(m)

	if !m.connected {
		t.Fatalf("expected to be connected after submit")
	}
	creds := awsx.Credentials{AccessKeyID: testAccessKey, SecretAccessKey: testSecretKey, Region: "us-east-1"}
	if m.client != factory.Client(creds) {
		t.Fatalf("model client is not the factory handle for the same credentials")
	}

	first := m.client
	m = update(m, key("c"))
	if m.connected {
		t.Fatalf("c should return to the credential form")
	}
	m = signIn(m)
	if m.client != first {
		t.Fatalf("same credentials should reuse the client")
	}
}

func TestSecretNeverRenderedOrLogged(t *testing.T) {
	var logOut bytes.Buffer
	m, _ := newTestModel(t, &logOut)

	m = typeText(m, testAccessKey)
	m = update(m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(m, testSecretKey)
	if v := m.View(); strings.Contains(v, testSecretKey) || strings.Contains(v, testAccessKey) {
		t.Fatalf("keys visible on the form:\n%s", v)
	}

	m = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	if v := m.View(); strings.Contains(v, testSecretKey) || strings.Contains(v, testAccessKey) {
		t.Fatalf("keys visible after connecting:\n%s", v)
	}
	if !strings.Contains(m.View(), "access key ***************5678") {
		t.Fatalf("expected masked key in header:\n%s", m.View())
	}
	if strings.Contains(logOut.String(), testSecretKey) || strings.Contains(logOut.String(), testAccessKey) {
		t.Fatalf("keys leaked into log output: %s", logOut.String())
	}
}

func TestIdentityResultShownInStatus(t *testing.T) {
	m, _ := newTestModel(t, &bytes.Buffer{})
	m = signIn(m)

	m = update(m, identityMsg{client: m.client, id: awsx.CallerIdentity{Account: "123456789012", Arn: "arn:aws:iam::123456789012:user/dev"}})
	if !strings.Contains(m.View(), "signed in as account 123456789012") {
		t.Fatalf("identity not shown:\n%s", m.View())
	}

	m = update(m, identityMsg{client: m.client, err: errors.New("get caller identity: InvalidClientTokenId")})
	if !strings.Contains(m.View(), "InvalidClientTokenId") {
		t.Fatalf("identity error not shown:\n%s", m.View())
	}
}

func TestIdentityForOldClientIgnored(t *testing.T) {
	m, factory := newTestModel(t, &bytes.Buffer{})
	m = signIn(m)

	other := factory.Client(awsx.Credentials{AccessKeyID: "AKIAOTHER", SecretAccessKey: "x", Region: "eu-west-1"})
	m = update(m, identityMsg{client: other, id: awsx.CallerIdentity{Account: "999"}})
	if strings.Contains(m.View(), "999") {
		t.Fatalf("identity of another client rendered")
	}
}

func TestRegionChangeReconnects(t *testing.T) {
	m, factory := newTestModel(t, &bytes.Buffer{})
	m = signIn(m)
	before := m.client

	m = update(m, key("r"))
	if !m.regions.active {
		t.Fatalf("region picker should be open")
	}
	m = typeText(m, "eu-west-1")
	m = update(m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.regions.active {
		t.Fatalf("region picker should close on enter")
	}
	if m.Runtime().Region != "eu-west-1" {
		t.Fatalf("region = %q", m.Runtime().Region)
	}
	if m.client == before {
		t.Fatalf("a new region needs a new client")
	}
	want := factory.Client(awsx.Credentials{AccessKeyID: testAccessKey, SecretAccessKey: testSecretKey, Region: "eu-west-1"})
	if m.client != want {
		t.Fatalf("client is not the factory handle for the new region")
	}
}

func TestRegionPickerEscapeKeepsClient(t *testing.T) {
	m, _ := newTestModel(t, &bytes.Buffer{})
	m = signIn(m)
	before := m.client

	m = update(m, key("r"))
	m = update(m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.regions.active || m.client != before {
		t.Fatalf("escape should close the picker without reconnecting")
	}
}

func TestFormCursorReceivesBlink(t *testing.T) {
	m, _ := newTestModel(t, &bytes.Buffer{})

	_, cmd := m.Update(m.Init()())
	if cmd == nil {
		t.Fatalf("focused form field should schedule its next blink")
	}
}

func TestReturningToFormFocusesAccessKey(t *testing.T) {
	m, _ := newTestModel(t, &bytes.Buffer{})
	m = signIn(m)

	next, cmd := m.Update(key("c"))
	m = next.(Model)
	if cmd == nil {
		t.Fatalf("refocusing the access key should start its cursor")
	}
	if m.form.focus != fieldAccessKey {
		t.Fatalf("focus = %d, want the access key field", m.form.focus)
	}
	if m.form.credentials().SecretAccessKey != "" {
		t.Fatalf("secret should be cleared")
	}
}
