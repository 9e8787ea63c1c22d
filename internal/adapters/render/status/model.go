package status

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/bnema/telecom-usage-monitor/internal/application"
	"github.com/bnema/telecom-usage-monitor/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

// frameMsg carries the fully rendered account list.
type frameMsg string

type model struct {
	statuses []application.AccountStatus
	opts     RenderOptions
	styles   styles
	frame    string
	done     bool
}

// newModel orders restricted accounts first so they are not lost below a
// long list of healthy ones; the rest keep account id order.
func newModel(statuses []application.AccountStatus, opts RenderOptions) model {
	ordered := make([]application.AccountStatus, len(statuses))
	copy(ordered, statuses)
	sort.SliceStable(ordered, func(i, j int) bool {
		ri := ordered[i].Gate == domain.GateRestricted
		rj := ordered[j].Gate == domain.GateRestricted
		if ri != rj {
			return ri
		}
		return ordered[i].AccountID < ordered[j].AccountID
	})

	return model{
		statuses: ordered,
		opts:     opts,
		styles:   newStyles(),
	}
}

func (m model) Init() tea.Cmd {
	statuses, opts, s := m.statuses, m.opts, m.styles
	return func() tea.Msg {
		frame := renderView(statuses, opts, s)
		if hint := restrictedHint(statuses, s); hint != "" {
			frame = lipgloss.JoinVertical(lipgloss.Left, frame, hint)
		}
		return frameMsg(frame)
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.frame = string(msg)
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	if !m.done {
		return ""
	}
	return m.frame
}

func restrictedHint(statuses []application.AccountStatus, s styles) string {
	restricted := 0
	for _, status := range statuses {
		if status.Gate == domain.GateRestricted {
			restricted++
		}
	}
	if restricted == 0 {
		return ""
	}
	return s.warning.Render(fmt.Sprintf("%d restricted; run `telemon reset --account <id>` after checking the password", restricted))
}

// Render runs a one-shot bubbletea program and returns the final frame.
func Render(statuses []application.AccountStatus, opts RenderOptions) (string, error) {
	p := tea.NewProgram(
		newModel(statuses, opts),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}
