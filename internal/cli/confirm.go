package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// confirmModel - yes/no prompt shown by --confirm
// =============================================================================

// confirmModel is the bubbletea model for a single yes/no question.
// Anything but an explicit "y" declines.
type confirmModel struct {
	prompt   string
	accepted bool
	answered bool
}

func newConfirmModel(prompt string) confirmModel {
	return confirmModel{prompt: prompt}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "y", "Y":
		m.accepted = true
	case "n", "N", "enter", "esc", "q", "ctrl+c":
	default:
		return m, nil
	}
	m.answered = true
	return m, tea.Quit
}

func (m confirmModel) View() string {
	if m.answered {
		answer := styleOff.Render("no")
		if m.accepted {
			answer = StyleSuccess.Render("yes")
		}
		return StyleHighlight.Render("? ") + m.prompt + " " + answer + "\n"
	}
	return StyleHighlight.Render("? ") + m.prompt + " " + StyleDim.Render("[y/N]") + " "
}

// runConfirm asks prompt on the terminal and reports whether the user agreed.
func (c *CLI) runConfirm(ctx context.Context, prompt string) (bool, error) {
	p := tea.NewProgram(newConfirmModel(prompt),
		tea.WithContext(ctx),
		tea.WithInput(c.in),
		tea.WithOutput(c.errOut),
	)
	final, err := p.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return false, ctxErr
	}
	if err != nil {
		return false, err
	}
	return final.(confirmModel).accepted, nil
}
