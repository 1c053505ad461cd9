package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/themefont/pkg/integrations/googlefonts"
	"github.com/matzehuels/themefont/pkg/webfont"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// FamilyListModel - Interactive font family selection
// =============================================================================

// FamilyListModel is the bubbletea model for interactive family selection.
// Families without any embeddable style are shown dimmed and cannot be chosen.
type FamilyListModel struct {
	Families []googlefonts.Family
	Current  string
	Cursor   int
	Selected *googlefonts.Family
	Height   int
	Offset   int
}

// NewFamilyListModel creates a new family list model with the cursor on
// current when it is listed.
func NewFamilyListModel(families []googlefonts.Family, current string) FamilyListModel {
	m := FamilyListModel{
		Families: families,
		Current:  current,
		Height:   15,
	}
	for i, f := range families {
		if f.Family == current {
			m.Cursor = i
			if m.Cursor >= m.Height {
				m.Offset = m.Cursor - m.Height + 1
			}
			break
		}
	}
	return m
}

func (m FamilyListModel) Init() tea.Cmd {
	return nil
}

func (m FamilyListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Families)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Families) == 0 {
				return m, nil
			}
			f := m.Families[m.Cursor]
			if embeddableStyles(f) == 0 {
				return m, nil
			}
			m.Selected = &f
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m FamilyListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Font Family"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Families) {
		end = len(m.Families)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		f := m.Families[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		active := ""
		if f.Family == m.Current {
			active = "✓"
		}
		category := f.Category
		if category == "" {
			category = "—"
		}
		styles := fmt.Sprintf("%d/%d", embeddableStyles(f), len(f.Files))
		rows = append(rows, []string{cursor, f.Family, category, styles, active, formatRelativeTime(f.LastModified)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Family", "Category", "Styles", "Active", "Updated").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Families) {
				return lipgloss.NewStyle()
			}
			embeddable := embeddableStyles(m.Families[actualIdx]) > 0
			isCurrent := actualIdx == m.Cursor

			base := lipgloss.NewStyle()
			if col >= 3 {
				if isCurrent {
					base = base.Foreground(colorGray)
				} else {
					base = base.Foreground(colorDim)
				}
			}

			if isCurrent {
				if embeddable {
					if col < 3 {
						return base.Foreground(colorGreen).Bold(true)
					}
					return base.Bold(true)
				}
				return base.Foreground(colorDim).Bold(true)
			} else if embeddable {
				if col < 3 {
					return base.Foreground(colorGreen)
				}
				return base
			}
			return base.Foreground(colorDim)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Families))))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// embeddableStyles counts the family's files that pass the style allow-list.
func embeddableStyles(f googlefonts.Family) int {
	n := 0
	for _, key := range webfont.AllowedStyles {
		if _, ok := f.Files[key]; ok {
			n++
		}
	}
	return n
}

// formatRelativeTime renders a catalog date ("2006-01-02") relative to now.
func formatRelativeTime(s string) string {
	if s == "" {
		return "—"
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return s
	}

	diff := time.Since(t)
	switch {
	case diff < 24*time.Hour:
		return "today"
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	case diff < 30*24*time.Hour:
		return fmt.Sprintf("%dw ago", int(diff.Hours()/24/7))
	case diff < 365*24*time.Hour:
		return fmt.Sprintf("%dmo ago", int(diff.Hours()/24/30))
	default:
		return t.Format("Jan 2006")
	}
}
