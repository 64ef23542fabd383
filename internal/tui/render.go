package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/deskhide/internal/errors"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	currentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	messageStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	toggleStyle   = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("39"))
	emptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyles  = map[errors.MessageType]lipgloss.Style{
		errors.MessageTypeError:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		errors.MessageTypeWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		errors.MessageTypeInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		errors.MessageTypeSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	}
)

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Virtual desktops"))
	b.WriteString("\n\n")

	if len(m.views) == 0 {
		b.WriteString(emptyStyle.Render("No desktops found"))
		b.WriteString("\n")
	}
	for i, v := range m.views {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		marker := "  "
		name := v.Name
		if v.IsCurrent {
			marker = currentStyle.Render("● ")
			name = currentStyle.Render(name)
		}
		line := fmt.Sprintf("%s%s%d. %s", cursor, marker, i+1, name)
		if v.Message != "" {
			line += "  " + messageStyle.Render(v.Message)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(toggleStyle.Render("h: " + m.indicator))
	b.WriteString("\n")

	if latest, ok := m.status.GetLatest(); ok {
		b.WriteString(statusStyles[latest.Type].Render(latest.Text))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
