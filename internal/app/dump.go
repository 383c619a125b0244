package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/atomicstack/styleselect/internal/data/dispatcher"
	"github.com/atomicstack/styleselect/internal/engine"
	"github.com/atomicstack/styleselect/internal/format/table"
	"github.com/atomicstack/styleselect/internal/selector"
	"github.com/atomicstack/styleselect/internal/style"
)

// settleDelay is how long Dump keeps reading state changes after the catalog
// has arrived.
const settleDelay = 250 * time.Millisecond

// Dump connects like Run but prints the dropdown rows as a table instead of
// starting the interactive program.
func Dump(ctx context.Context, cfg Config, w io.Writer) error {
	labels, err := localizer(cfg)
	if err != nil {
		return err
	}
	dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	eng, err := openEngine(dialCtx, cfg)
	cancel()
	if err != nil {
		return err
	}
	defer eng.Close()

	sel := selector.New(dispatcher.Track(eng), selector.Options{Labels: labels})
	if err := collect(ctx, eng.Events(), dispatcher.New(sel)); err != nil {
		return err
	}
	for _, line := range dumpLines(sel) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// collect feeds engine events into the dispatcher until the catalog has been
// received and the stream goes quiet.
func collect(ctx context.Context, events <-chan engine.Event, d *dispatcher.Dispatcher) error {
	var settle <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for style catalog: %w", ctx.Err())
		case <-settle:
			return nil
		case evt, ok := <-events:
			if !ok {
				if settle != nil {
					return nil
				}
				return errors.New("engine closed before sending the style catalog")
			}
			res := d.Handle(evt)
			if res.Err != nil {
				return res.Err
			}
			if evt.Kind == engine.KindCommandValues && settle == nil {
				settle = time.After(settleDelay)
			}
		}
	}
}

func dumpLines(sel *selector.Selector) []string {
	rows := [][]string{{"KIND", "ID", "LABEL", "ACTIVE"}}
	for _, entry := range sel.Rows() {
		if entry.Kind == style.KindSeparator {
			continue
		}
		active := ""
		if entry.ID == sel.Active() {
			active = "*"
		}
		rows = append(rows, []string{entry.Kind.String(), entry.ID, entry.Label, active})
	}
	return table.Format(rows, nil)
}
