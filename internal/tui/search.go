// Package tui provides the interactive search screen: a live progress bar
// with a cancel key, wrapping a reconciliation running in the background.
package tui

import (
	"context"
	"fmt"

	"github.com/collectiontools/stagehand/internal/model"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ProgressMsg carries a reconciliation completion fraction.
type ProgressMsg float64

// DoneMsg signals that the reconciliation finished, successfully or not.
type DoneMsg struct {
	Outcome *model.ReconciliationOutcome
	Err     error
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	cancelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D"))
)

// SearchModel is the bubbletea model for a running search.
type SearchModel struct {
	cancel    context.CancelFunc
	outcome   *model.ReconciliationOutcome
	err       error
	bar       progress.Model
	targets   int
	dirs      int
	fraction  float64
	cancelled bool
	done      bool
}

// NewSearchModel builds the search screen. cancel is the reconciliation
// context's cancel function; pressing the cancel key invokes it, and the
// running batch stops at its next polling point.
func NewSearchModel(cancel context.CancelFunc, targets, dirs int) SearchModel {
	return SearchModel{
		cancel:  cancel,
		bar:     progress.New(progress.WithDefaultGradient()),
		targets: targets,
		dirs:    dirs,
	}
}

// Init implements tea.Model.
func (m SearchModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			if !m.cancelled {
				m.cancelled = true
				m.cancel()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		width := msg.Width - 8
		if width > 60 {
			width = 60
		}
		if width > 0 {
			m.bar.Width = width
		}
		return m, nil

	case ProgressMsg:
		m.fraction = float64(msg)
		return m, nil

	case DoneMsg:
		m.done = true
		m.outcome = msg.Outcome
		m.err = msg.Err
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model.
func (m SearchModel) View() string {
	if m.done {
		return ""
	}

	title := titleStyle.Render(fmt.Sprintf("Searching %d directories for %d targets", m.dirs, m.targets))
	bar := m.bar.ViewAs(m.fraction)

	status := helpStyle.Render("press q to cancel")
	if m.cancelled {
		status = cancelStyle.Render("cancelling, finishing current target...")
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, bar, "", status) + "\n"
}

// Result returns the finished reconciliation outcome, or the error that
// ended it (context.Canceled after a cancel keypress).
func (m SearchModel) Result() (*model.ReconciliationOutcome, error) {
	return m.outcome, m.err
}
