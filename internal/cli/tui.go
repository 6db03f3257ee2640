package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cverad/connectome/pkg/store"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ResultListModel - Interactive result selection
// =============================================================================

// ResultListModel is the bubbletea model for browsing stored analysis results.
type ResultListModel struct {
	Results  []store.Summary
	Cursor   int
	Selected *store.Summary
	Height   int
	Offset   int
}

// NewResultListModel creates a new result list model.
func NewResultListModel(results []store.Summary) ResultListModel {
	return ResultListModel{
		Results: results,
		Cursor:  0,
		Height:  15,
		Offset:  0,
	}
}

func (m ResultListModel) Init() tea.Cmd {
	return nil
}

func (m ResultListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Results)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			selected := m.Results[m.Cursor]
			m.Selected = &selected
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m ResultListModel) View() string {
	if len(m.Results) == 0 {
		return listDimStyle.Render("No results stored.") + "\n"
	}

	s := StyleTitle.Render("Stored analyses") + "\n\n"

	end := m.Offset + m.Height
	if end > len(m.Results) {
		end = len(m.Results)
	}

	for i := m.Offset; i < end; i++ {
		r := m.Results[i]
		name := r.Name
		if name == "" {
			name = r.ID[:8]
		}
		line := fmt.Sprintf("%-24s %-18s %s", name, r.Method, r.CreatedAt.Local().Format("2006-01-02 15:04"))

		if i == m.Cursor {
			s += listSelectedStyle.Render("> "+line) + "\n"
		} else {
			s += listNormalStyle.Render("  "+line) + "\n"
		}
	}

	s += "\n" + listDimStyle.Render("↑/↓ navigate · enter select · q quit") + "\n"
	return s
}
