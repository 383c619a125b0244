package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/styleselect/internal/protocol"
	"github.com/atomicstack/styleselect/internal/style"
)

const textFixture = `
doctype: text
permission: edit
catalog:
  paragraph_styles: [Standard, Heading 1, Heading 2]
  commands:
    - id: .uno:StyleUpdateByExample
      text: Update Style
states:
  - Heading 1
`

func drain(t *testing.T, f *Fixture, n int) []Event {
	t.Helper()
	out := make([]Event, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, nextEvent(t, f.Events()))
	}
	return out
}

func TestFixtureOpeningEvents(t *testing.T) {
	spec, err := ParseFixture([]byte(textFixture))
	require.NoError(t, err)
	f := NewFixture(spec)
	defer f.Close()

	evts := drain(t, f, 4)
	assert.Equal(t, KindStatus, evts[0].Kind)
	assert.Equal(t, style.DocText, evts[0].Data.(protocol.Status).Type)
	assert.Equal(t, PermEdit, evts[1].Data)

	values := evts[2].Data.(protocol.CommandValues)
	assert.Equal(t, style.ApplyCommand, values.CommandName)
	assert.Equal(t, []string{"Standard", "Heading 1", "Heading 2"}, values.CommandValues.ParagraphStyles)
	assert.Equal(t, []style.Command{{ID: ".uno:StyleUpdateByExample", Text: "Update Style"}}, values.CommandValues.Commands)

	assert.Equal(t, protocol.StateChange{Command: style.ApplyCommand, Value: "Heading 1"}, evts[3].Data)
	assert.Equal(t, style.DocText, f.DocumentType())
}

func TestFixtureRecordsAndEchoes(t *testing.T) {
	spec, err := ParseFixture([]byte(textFixture))
	require.NoError(t, err)
	f := NewFixture(spec)
	defer f.Close()
	drain(t, f, 4)

	require.NoError(t, f.SendCommand(".uno:StyleUpdateByExample"))
	require.NoError(t, f.ApplyStyle("Heading 2", "ParagraphStyles"))

	assert.Equal(t, []string{".uno:StyleUpdateByExample"}, f.Commands())
	assert.Equal(t, []Applied{{Name: "Heading 2", Family: "ParagraphStyles"}}, f.Applied())
	evt := nextEvent(t, f.Events())
	assert.Equal(t, "Heading 2", evt.Data.(protocol.StateChange).Value)
}

func TestFixturePresentationEchoUsesEngineLabels(t *testing.T) {
	f := NewFixture(FixtureSpec{DocType: "presentation", Catalog: style.Catalog{Default: []string{"title", "outline2"}}})
	defer f.Close()
	evts := drain(t, f, 3)
	assert.Equal(t, PermEdit, evts[1].Data, "permission defaults to edit")

	require.NoError(t, f.ApplyStyle("outline2", "Default"))
	evt := nextEvent(t, f.Events())
	assert.Equal(t, "Default~LT~Gliederung 2", evt.Data.(protocol.StateChange).Value)
}

func TestFixtureClosed(t *testing.T) {
	f := NewFixture(FixtureSpec{DocType: "text"})
	require.NoError(t, f.Close())
	require.NoError(t, f.Close())
	assert.ErrorIs(t, f.SendCommand(".uno:Bold"), ErrClosed)
	assert.ErrorIs(t, f.ApplyStyle("Standard", "ParagraphStyles"), ErrClosed)
}

func TestLoadFixture(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(textFixture), 0o644))

	f, err := LoadFixture(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, style.DocText, f.DocumentType())

	_, err = LoadFixture(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("permission: edit\n"), 0o644))
	_, err = LoadFixture(path)
	assert.Error(t, err)
}
