package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/language"

	"github.com/atomicstack/styleselect/internal/data/dispatcher"
	"github.com/atomicstack/styleselect/internal/engine"
	"github.com/atomicstack/styleselect/internal/l10n"
	"github.com/atomicstack/styleselect/internal/selector"
	"github.com/atomicstack/styleselect/internal/ui"
)

const (
	dialTimeout  = 15 * time.Second
	sendInterval = 50 * time.Millisecond
)

// Config describes user-provided application options.
type Config struct {
	Server     string
	Document   string
	Fixture    string
	Locale     string
	Strings    string
	ReadOnly   bool
	Width      int
	Height     int
	ShowFooter bool
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	labels, err := localizer(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	eng, err := openEngine(ctx, cfg)
	cancel()
	if err != nil {
		return err
	}
	defer eng.Close()

	model := newModel(eng, labels, cfg)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

func localizer(cfg Config) (l10n.Localizer, error) {
	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		return l10n.Localizer{}, fmt.Errorf("parse locale %q: %w", cfg.Locale, err)
	}
	var extra []string
	if cfg.Strings != "" {
		extra = append(extra, cfg.Strings)
	}
	translator, err := l10n.NewDefault(extra...)
	if err != nil {
		return l10n.Localizer{}, fmt.Errorf("load strings: %w", err)
	}
	return translator.For(tag), nil
}

func newModel(eng engine.Engine, labels l10n.Localizer, cfg Config) *ui.Model {
	sel := selector.New(dispatcher.Track(eng), selector.Options{Labels: labels})
	return ui.NewModel(sel, eng.Events(), ui.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
	})
}

// openEngine connects to the configured server, or loads the offline fixture
// when no server is set.
func openEngine(ctx context.Context, cfg Config) (engine.Engine, error) {
	if cfg.Server == "" {
		f, err := engine.LoadFixture(cfg.Fixture)
		if err != nil {
			return nil, fmt.Errorf("open fixture: %w", err)
		}
		return f, nil
	}
	s, err := engine.Dial(ctx, cfg.Server, engine.Options{
		Document:     cfg.Document,
		ReadOnly:     cfg.ReadOnly,
		SendInterval: sendInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("connect engine: %w", err)
	}
	return s, nil
}
