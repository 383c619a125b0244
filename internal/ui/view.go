package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/styleselect/internal/style"
)

const (
	dropdownMinWidth = 24
	activeMark       = "✓"
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := make([]styledLine, 0, 16)
	lines = append(lines, styledLine{text: m.headerText(), style: styles.Header})
	lines = append(lines, m.dropdownLine())
	if m.mode == ModeExpanded {
		lines = append(lines, m.listLines()...)
		if m.list.Filter != "" {
			lines = append(lines, m.filterLine())
		}
	}
	if status := m.statusLine(); status.text != "" {
		lines = append(lines, status)
	}
	if m.showFooter {
		bindings := m.keys.collapsedHelp()
		if m.mode == ModeExpanded {
			bindings = m.keys.expandedHelp()
		}
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: m.help.ShortHelpView(bindings)})
	}
	lines = applyWidth(lines, m.width)
	return renderLines(lines)
}

func (m *Model) headerText() string {
	parts := []string{m.title}
	if m.docType != "" {
		parts = append(parts, string(m.docType))
	}
	if !m.sel.Enabled() {
		parts = append(parts, "read-only")
	}
	return strings.Join(parts, " · ")
}

// dropdownLine renders the closed control: the active label and an arrow.
func (m *Model) dropdownLine() styledLine {
	arrow := "▾"
	if m.mode == ModeExpanded {
		arrow = "▴"
	}
	label := m.sel.ActiveEntry().Label
	width := dropdownMinWidth
	if w := lipgloss.Width(label) + 4; w > width {
		width = w
	}
	if m.width > 0 && width > m.width {
		width = m.width
	}
	inner := width - 3
	if inner < 1 {
		inner = 1
	}
	label = fit(label, inner)
	text := " " + label
	if pad := inner - lipgloss.Width(label); pad > 0 {
		text += strings.Repeat(" ", pad)
	}
	text += " " + arrow

	lineStyle := styles.Dropdown
	switch {
	case !m.sel.Enabled():
		lineStyle = styles.Disabled
	case !m.canvasFocused:
		lineStyle = styles.DropdownFocused
	}
	return styledLine{text: text, style: lineStyle}
}

func (m *Model) listLines() []styledLine {
	if len(m.list.Items) == 0 {
		msg := "(no styles)"
		if m.list.Filter != "" {
			msg = fmt.Sprintf("No matches for %q", m.list.Filter)
		}
		return []styledLine{{text: msg, style: styles.Info}}
	}
	m.syncViewport()
	start := 0
	visible := m.list.Items
	if maxRows := m.maxVisibleRows(); maxRows > 0 && len(visible) > maxRows {
		start = m.list.ViewportOffset
		if start+maxRows > len(visible) {
			start = len(visible) - maxRows
		}
		visible = visible[start : start+maxRows]
	}
	lines := make([]styledLine, 0, len(visible))
	for i, entry := range visible {
		lines = append(lines, m.buildRowLine(entry, start+i))
	}
	return lines
}

// buildRowLine renders one list row. Separators carry no indicator and are
// never highlighted.
func (m *Model) buildRowLine(entry style.Entry, idx int) styledLine {
	if entry.Kind == style.KindSeparator {
		return styledLine{text: "  " + entry.Label, style: styles.Separator}
	}
	lineStyle := styles.Item
	switch entry.Kind {
	case style.KindPlaceholder:
		lineStyle = styles.Placeholder
	case style.KindCommand:
		lineStyle = styles.Command
	}
	indicatorStyle := styles.ItemIndicator
	if idx == m.list.Cursor {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	mark := " "
	if entry.ID == m.sel.Active() {
		mark = activeMark
	}
	text := "▌ " + mark + " " + entry.Label
	if m.width > 0 {
		if pad := m.width - lipgloss.Width(text); pad > 0 {
			text += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          text,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1,
	}
}

func (m *Model) filterLine() styledLine {
	prompt := "» "
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}
	text := m.list.Filter
	if styles.Filter != nil {
		text = styles.Filter.Render(text)
	}
	return styledLine{text: prompt + text}
}

func (m *Model) statusLine() styledLine {
	switch {
	case m.errMsg != "":
		return styledLine{text: "Error: " + m.errMsg, style: styles.Error}
	case m.engineDone:
		return styledLine{text: "engine disconnected", style: styles.Info}
	case m.canvasFocused && m.mode == ModeCollapsed:
		return styledLine{text: "document canvas focused", style: styles.Info}
	}
	return styledLine{}
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		line.text = fit(line.text, width)
		result[i] = line
	}
	return result
}

// fit truncates text wider than width, keeping ANSI sequences intact.
func fit(text string, width int) string {
	if width <= 0 || lipgloss.Width(text) <= width {
		return text
	}
	return truncate.StringWithTail(text, uint(width), "…")
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}
