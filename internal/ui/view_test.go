package ui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atomicstack/styleselect/internal/engine"
	"github.com/atomicstack/styleselect/internal/selector"
	"github.com/atomicstack/styleselect/internal/style"
	"github.com/atomicstack/styleselect/internal/testutil"
)

func manyStyles(n int) engine.FixtureSpec {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("Style %d", i)
	}
	return engine.FixtureSpec{DocType: "text", Catalog: style.Catalog{ParagraphStyles: names}}
}

func TestListScrollsWithinViewport(t *testing.T) {
	h, _, _ := newFixtureHarness(t, manyStyles(19), Options{Height: 10}, selector.Options{})

	h.Key("enter")
	view := h.View()
	if !strings.Contains(view, "Style 0") || strings.Contains(view, "Style 18") {
		t.Fatalf("expected first page only:\n%s", view)
	}

	h.Send(tea.KeyMsg{Type: tea.KeyEnd})
	view = h.View()
	if !strings.Contains(view, "Style 18") || strings.Contains(view, "Style 0\n") {
		t.Fatalf("expected last page after end:\n%s", view)
	}
	if got := strings.Count(view, "▌"); got > h.Model().maxVisibleRows() {
		t.Fatalf("expected at most %d rows, got %d", h.Model().maxVisibleRows(), got)
	}
}

func TestViewRespectsWidth(t *testing.T) {
	spec := engine.FixtureSpec{
		DocType: "text",
		Catalog: style.Catalog{ParagraphStyles: []string{"A very long paragraph style name that overflows"}},
		States:  []string{"A very long paragraph style name that overflows"},
	}
	h, _, _ := newFixtureHarness(t, spec, Options{}, selector.Options{})
	h.Send(tea.WindowSizeMsg{Width: 30, Height: 12})
	h.Key("enter")

	for _, line := range strings.Split(h.View(), "\n") {
		if w := lipgloss.Width(line); w > 30 {
			t.Fatalf("line wider than terminal (%d): %q", w, line)
		}
	}
	if !strings.Contains(h.View(), "…") {
		t.Fatalf("expected truncated labels")
	}
}

func TestDropdownSizesWideLabels(t *testing.T) {
	label := "見出し見出し見出し見出し見出し見出し"
	spec := engine.FixtureSpec{
		DocType: "text",
		Catalog: style.Catalog{ParagraphStyles: []string{label}},
		States:  []string{label},
	}
	h, _, _ := newFixtureHarness(t, spec, Options{}, selector.Options{})

	lines := strings.Split(h.View(), "\n")
	if len(lines) < 2 {
		t.Fatalf("expected a dropdown line:\n%s", h.View())
	}
	dropdown := lines[1]
	if !strings.Contains(dropdown, label) {
		t.Fatalf("expected the full label, got %q", dropdown)
	}
	if w := lipgloss.Width(dropdown); w != lipgloss.Width(label)+4 {
		t.Fatalf("expected dropdown width %d, got %d", lipgloss.Width(label)+4, w)
	}
}

func TestFooterShowsKeyHelp(t *testing.T) {
	h, _, _ := newFixtureHarness(t, textSpec(), Options{ShowFooter: true}, selector.Options{})
	if view := h.View(); !strings.Contains(view, "open") || !strings.Contains(view, "quit") {
		t.Fatalf("expected collapsed key help:\n%s", view)
	}
	h.Key("enter")
	if view := h.View(); !strings.Contains(view, "apply") || !strings.Contains(view, "close") {
		t.Fatalf("expected expanded key help:\n%s", view)
	}
}

func TestSeparatorsRenderWithoutIndicator(t *testing.T) {
	h, _, _ := newFixtureHarness(t, textSpec(), Options{}, selector.Options{})
	h.Key("enter")
	for _, line := range strings.Split(h.View(), "\n") {
		if strings.Contains(line, "────") && strings.Contains(line, "▌") {
			t.Fatalf("separator rendered as a selectable row: %q", line)
		}
	}
}

func TestExpandedViewGolden(t *testing.T) {
	h, _, _ := newFixtureHarness(t, textSpec("Heading 1"), Options{}, selector.Options{})

	h.Key("enter")
	testutil.AssertGolden(t, "expanded_text.golden", h.View())
}
