package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	awsx "github.com/jayesh820/AWS-TASK/internal/aws"
)

const (
	fieldAccessKey = iota
	fieldSecretKey
	fieldRegion
	fieldCount
)

// credentialForm collects the access key, secret key and region. The keys are
// masked on screen and only leave the form through credentials().
type credentialForm struct {
	inputs [fieldCount]textinput.Model
	focus  int
}

func newCredentialForm(region string) credentialForm {
	var f credentialForm

	access := textinput.New()
	access.Placeholder = "AKIA..."
	access.EchoMode = textinput.EchoPassword
	access.EchoCharacter = '•'
	f.inputs[fieldAccessKey] = access

	secret := textinput.New()
	secret.EchoMode = textinput.EchoPassword
	secret.EchoCharacter = '•'
	f.inputs[fieldSecretKey] = secret

	reg := textinput.New()
	reg.Placeholder = awsx.DefaultRegion
	reg.SetValue(region)
	f.inputs[fieldRegion] = reg

	f.inputs[fieldAccessKey].Focus()
	return f
}

// update returns submit=true when enter is pressed on a complete form.
func (f *credentialForm) update(msg tea.KeyMsg) (submit bool, cmd tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab, tea.KeyDown:
		return false, f.setFocus((f.focus + 1) % fieldCount)
	case tea.KeyShiftTab, tea.KeyUp:
		return false, f.setFocus((f.focus + fieldCount - 1) % fieldCount)
	case tea.KeyEnter:
		if f.credentials().Validate() == nil {
			return true, nil
		}
		if f.focus < fieldCount-1 {
			return false, f.setFocus(f.focus + 1)
		}
		return false, nil
	}
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return false, cmd
}

func (f *credentialForm) setFocus(i int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = i
	return f.inputs[i].Focus()
}

func (f credentialForm) credentials() awsx.Credentials {
	region := strings.TrimSpace(f.inputs[fieldRegion].Value())
	if region == "" {
		region = awsx.DefaultRegion
	}
	return awsx.Credentials{
		AccessKeyID:     strings.TrimSpace(f.inputs[fieldAccessKey].Value()),
		SecretAccessKey: strings.TrimSpace(f.inputs[fieldSecretKey].Value()),
		Region:          region,
	}
}

func (f *credentialForm) setRegion(region string) {
	f.inputs[fieldRegion].SetValue(region)
}

// clear drops the keys, keeping the region, and focuses the access key.
func (f *credentialForm) clear() tea.Cmd {
	f.inputs[fieldAccessKey].SetValue("")
	f.inputs[fieldSecretKey].SetValue("")
	return f.setFocus(fieldAccessKey)
}

// blink passes cursor messages to the focused field.
func (f *credentialForm) blink(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f credentialForm) View() string {
	var b strings.Builder
	fmt.Fprintln(&b, titleStyle.Render("AWS Credentials"))
	fmt.Fprintln(&b)
	labels := [fieldCount]string{"AWS Access Key ID", "AWS Secret Access Key", "AWS Region"}
	for i, label := range labels {
		fmt.Fprintln(&b, label)
		fmt.Fprintln(&b, f.inputs[i].View())
		fmt.Fprintln(&b)
	}
	if err := f.credentials().Validate(); err != nil {
		fmt.Fprintln(&b, warnStyle.Render("Please enter your AWS credentials to continue."))
	} else {
		fmt.Fprintln(&b, dimText.Render("Press Enter to connect"))
	}
	fmt.Fprintln(&b, dimText.Render("tab/↑/↓ move between fields, ctrl+c quit"))
	return b.String()
}
