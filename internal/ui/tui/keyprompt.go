package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrPromptCancelled is returned when the user leaves the prompt without a key.
var ErrPromptCancelled = errors.New("api key prompt cancelled")

type keyPromptModel struct {
	theme Theme
	input textinput.Model
	home  string

	value     string
	done      bool
	cancelled bool
	errMsg    string
}

func newKeyPrompt(home string) keyPromptModel {
	ti := textinput.New()
	ti.Placeholder = "paste your GLM API key"
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.CharLimit = 256
	ti.Width = 48
	ti.Focus()

	return keyPromptModel{
		theme: DefaultTheme(),
		input: ti,
		home:  home,
	}
}

func (m keyPromptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m keyPromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyEnter:
			v := strings.TrimSpace(m.input.Value())
			if v == "" {
				m.errMsg = "API key cannot be empty (esc to skip)"
				return m, nil
			}
			m.value = v
			m.done = true
			return m, tea.Quit
		}
		m.errMsg = ""
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m keyPromptModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	lines := []string{
		m.theme.Title.Render("predictor setup"),
		m.theme.Subtitle.Render("Home: " + m.home),
		"",
		m.input.View(),
	}
	if m.errMsg != "" {
		lines = append(lines, "", m.theme.Error.Render(m.errMsg))
	}
	lines = append(lines, "", m.theme.Help.Render("enter: save • esc: skip"))

	return m.theme.Card.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)) + "\n"
}

// PromptAPIKey asks for an API key on the terminal. It returns
// ErrPromptCancelled when the user skips the prompt.
func PromptAPIKey(ctx context.Context, home string, in io.Reader, out io.Writer, log *slog.Logger) (string, error) {
	p := tea.NewProgram(
		wrapSafe(newKeyPrompt(home), log),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)

	final, err := p.Run()
	if err != nil {
		return "", err
	}

	sm, ok := final.(safeModel)
	if !ok || sm.m.cancelled || sm.m.value == "" {
		return "", ErrPromptCancelled
	}
	return sm.m.value, nil
}
