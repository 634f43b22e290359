package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/gophtodo/internal/client/models"
)

var (
	indexStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	openStyle  = lipgloss.NewStyle()
	doneStyle  = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("244"))
	hintStyle  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))
)

// renderTask formats one list row; n is the 1-based display position.
func renderTask(n int, t models.Task) string {
	mark, style := "[ ]", openStyle
	if t.Completed {
		mark, style = "[x]", doneStyle
	}
	return fmt.Sprintf("%s %s %s", indexStyle.Render(fmt.Sprintf("%2d.", n)), mark, style.Render(t.Title))
}

func renderList(list []models.Task, query string) string {
	if len(list) == 0 {
		if query != "" {
			return hintStyle.Render(fmt.Sprintf("No tasks match %q", query))
		}
		return hintStyle.Render("No tasks yet. Use 'add <title>' to create one.")
	}

	var b strings.Builder
	for i, t := range list {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(renderTask(i+1, t))
	}
	if query != "" {
		b.WriteByte('\n')
		b.WriteString(hintStyle.Render(fmt.Sprintf("filtered by %q, 'search' to clear", query)))
	}
	return b.String()
}
