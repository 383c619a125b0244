package engine

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"

	"github.com/atomicstack/styleselect/internal/protocol"
	"github.com/atomicstack/styleselect/internal/style"
)

type fakeConn struct {
	in   chan []byte
	done chan struct{}

	// gate, when set, holds every Write until it is closed.
	gate chan struct{}

	mu       sync.Mutex
	written  []string
	writeErr error
	closes   int
	once     sync.Once
}

func newFakeConn() *fakeConn {
	return &fakeConn{in: make(chan []byte, 16), done: make(chan struct{})}
}

func (c *fakeConn) Read(ctx context.Context) (websocket.MessageType, []byte, error) {
	select {
	case <-ctx.Done():
		return 0, nil, ctx.Err()
	case <-c.done:
		return 0, nil, io.EOF
	case data := <-c.in:
		return websocket.MessageText, data, nil
	}
}

func (c *fakeConn) Write(ctx context.Context, typ websocket.MessageType, p []byte) error {
	if c.gate != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.gate:
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.writeErr != nil {
		return c.writeErr
	}
	c.written = append(c.written, string(p))
	return nil
}

func (c *fakeConn) Close(code websocket.StatusCode, reason string) error {
	c.mu.Lock()
	c.closes++
	c.mu.Unlock()
	c.once.Do(func() { close(c.done) })
	return nil
}

func (c *fakeConn) Ping(ctx context.Context) error {
	return nil
}

func (c *fakeConn) frames() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.written...)
}

func waitFrames(t *testing.T, c *fakeConn, n int) []string {
	t.Helper()
	require.Eventually(t, func() bool { return len(c.frames()) >= n }, 2*time.Second, 5*time.Millisecond)
	return c.frames()
}

func nextEvent(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case evt, ok := <-ch:
		require.True(t, ok, "events channel closed")
		return evt
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for engine event")
	}
	return Event{}
}

func TestSessionDecodesFrames(t *testing.T) {
	c := newFakeConn()
	s := newSession(c, Options{})
	t.Cleanup(func() { _ = s.Close() })

	c.in <- []byte("status: type=presentation parts=3 current=0 width=1 height=1")
	evt := nextEvent(t, s.Events())
	require.Equal(t, KindStatus, evt.Kind)
	assert.Equal(t, style.DocPresentation, evt.Data.(protocol.Status).Type)
	assert.Equal(t, style.DocPresentation, s.DocumentType())

	evt = nextEvent(t, s.Events())
	require.Equal(t, KindPermission, evt.Kind)
	assert.Equal(t, PermEdit, evt.Data)

	c.in <- []byte(`commandvalues: {"commandName":".uno:StyleApply","commandValues":{"Default":["title"]}}`)
	evt = nextEvent(t, s.Events())
	require.Equal(t, KindCommandValues, evt.Kind)
	assert.Equal(t, []string{"title"}, evt.Data.(protocol.CommandValues).CommandValues.Default)

	c.in <- []byte("invalidatetiles: EMPTY")
	c.in <- []byte("no prefix here")
	c.in <- []byte("statechanged: .uno:StyleApply=title~LT~Titel")
	evt = nextEvent(t, s.Events())
	require.Equal(t, KindStateChanged, evt.Kind)
	assert.Equal(t, protocol.StateChange{Command: style.ApplyCommand, Value: "title~LT~Titel"}, evt.Data)

	c.in <- []byte("error: cmd=load kind=faileddocloading")
	evt = nextEvent(t, s.Events())
	require.Equal(t, KindError, evt.Kind)
	var engineErr protocol.EngineError
	require.True(t, errors.As(evt.Err, &engineErr))
	assert.Equal(t, "faileddocloading", engineErr.Kind)
}

func TestSessionReadOnlyOverridesPermission(t *testing.T) {
	c := newFakeConn()
	s := newSession(c, Options{ReadOnly: true})
	t.Cleanup(func() { _ = s.Close() })

	c.in <- []byte("perm: edit")
	evt := nextEvent(t, s.Events())
	require.Equal(t, KindPermission, evt.Kind)
	assert.Equal(t, PermReadOnly, evt.Data)
}

func TestSessionStatusKeepsServerPermission(t *testing.T) {
	c := newFakeConn()
	s := newSession(c, Options{})
	t.Cleanup(func() { _ = s.Close() })

	c.in <- []byte("perm: view")
	evt := nextEvent(t, s.Events())
	require.Equal(t, KindPermission, evt.Kind)
	assert.Equal(t, PermView, evt.Data)

	// Status frames repeat after part changes; they must not re-enable editing.
	for i := 0; i < 2; i++ {
		c.in <- []byte("status: type=text parts=2 current=1 width=1 height=1")
		require.Equal(t, KindStatus, nextEvent(t, s.Events()).Kind)
		evt = nextEvent(t, s.Events())
		require.Equal(t, KindPermission, evt.Kind)
		assert.Equal(t, PermView, evt.Data)
	}

	c.in <- []byte("perm: edit")
	evt = nextEvent(t, s.Events())
	assert.Equal(t, PermEdit, evt.Data)
	c.in <- []byte("status: type=text parts=2 current=0 width=1 height=1")
	nextEvent(t, s.Events())
	assert.Equal(t, PermEdit, nextEvent(t, s.Events()).Data)
}

func TestSessionMalformedFramesBecomeErrors(t *testing.T) {
	c := newFakeConn()
	s := newSession(c, Options{})
	t.Cleanup(func() { _ = s.Close() })

	c.in <- []byte("commandvalues: {broken")
	evt := nextEvent(t, s.Events())
	assert.Equal(t, KindError, evt.Kind)
	assert.Error(t, evt.Err)

	c.in <- []byte("status: parts=2")
	evt = nextEvent(t, s.Events())
	assert.Equal(t, KindError, evt.Kind)
}

func TestSessionSendsCommands(t *testing.T) {
	c := newFakeConn()
	s := newSession(c, Options{Document: "file:///tmp/a.odt"})
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.open())
	require.NoError(t, s.SendCommand(".uno:Bold"))
	require.NoError(t, s.ApplyStyle("Heading 1", "ParagraphStyles"))
	require.NoError(t, s.RequestCatalog())

	frames := waitFrames(t, c, 6)
	require.Len(t, frames, 6)
	assert.Equal(t, "load url=file:///tmp/a.odt", frames[0])
	assert.Equal(t, "status", frames[1])
	assert.Equal(t, "commandvalues command=.uno:StyleApply", frames[2])
	assert.Equal(t, "uno .uno:Bold", frames[3])
	assert.True(t, strings.HasPrefix(frames[4], "uno .uno:StyleApply {"), frames[4])
	assert.Contains(t, frames[4], `"value":"Heading 1"`)
	assert.Equal(t, "commandvalues command=.uno:StyleApply", frames[5])
}

func TestSessionWriteErrorIsReportedAsEvent(t *testing.T) {
	c := newFakeConn()
	c.writeErr = errors.New("broken pipe")
	s := newSession(c, Options{})
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.SendCommand(".uno:Bold"))

	evt := nextEvent(t, s.Events())
	require.Equal(t, KindError, evt.Kind)
	assert.Contains(t, evt.Err.Error(), "broken pipe")
	assert.Contains(t, evt.Err.Error(), "uno .uno:Bold")
}

func TestSessionSendDoesNotWaitForThrottle(t *testing.T) {
	c := newFakeConn()
	s := newSession(c, Options{SendInterval: 300 * time.Millisecond})
	t.Cleanup(func() { _ = s.Close() })

	start := time.Now()
	for _, name := range []string{"Standard", "Heading 1", "Heading 2"} {
		require.NoError(t, s.ApplyStyle(name, "ParagraphStyles"))
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)

	frames := waitFrames(t, c, 3)
	assert.Contains(t, frames[0], `"value":"Standard"`)
	assert.Contains(t, frames[2], `"value":"Heading 2"`)
}

func TestSessionSendDoesNotWaitForStalledSocket(t *testing.T) {
	c := newFakeConn()
	c.gate = make(chan struct{})
	s := newSession(c, Options{})
	t.Cleanup(func() { _ = s.Close() })

	var err error
	start := time.Now()
	for i := 0; i < sendQueue+2 && err == nil; i++ {
		err = s.SendCommand(".uno:Bold")
	}
	assert.Less(t, time.Since(start), time.Second)
	require.ErrorIs(t, err, ErrQueueFull)

	close(c.gate)
	waitFrames(t, c, sendQueue)
}

func TestSessionCloseIsIdempotent(t *testing.T) {
	c := newFakeConn()
	s := newSession(c, Options{})

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.Equal(t, 1, c.closes)

	_, ok := <-s.Events()
	assert.False(t, ok, "events channel should be closed")
	assert.ErrorIs(t, s.RequestCatalog(), ErrClosed)
	assert.ErrorIs(t, s.SendCommand(".uno:Bold"), ErrClosed)
	assert.ErrorIs(t, s.ApplyStyle("Standard", "ParagraphStyles"), ErrClosed)
}

func TestSessionPeerDisconnectClosesEvents(t *testing.T) {
	c := newFakeConn()
	s := newSession(c, Options{})
	t.Cleanup(func() { _ = s.Close() })

	c.once.Do(func() { close(c.done) })

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt, ok := <-s.Events():
			if !ok {
				assert.ErrorIs(t, s.SendCommand(".uno:Bold"), ErrClosed)
				return
			}
			assert.Equal(t, KindError, evt.Kind)
		case <-deadline:
			t.Fatal("timed out waiting for events to close")
		}
	}
}

func TestDialHandshake(t *testing.T) {
	received := make(chan string, 8)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer c.Close(websocket.StatusInternalError, "handler exit")

		ctx := r.Context()
		for i := 0; i < 3; i++ {
			_, data, err := c.Read(ctx)
			if err != nil {
				return
			}
			received <- string(data)
		}
		frames := []string{
			"status: type=text parts=1 current=0 width=100 height=100",
			`commandvalues: {"commandName":".uno:StyleApply","commandValues":{"ParagraphStyles":["Standard","Heading 1"]}}`,
			"statechanged: .uno:StyleApply=Heading 1",
		}
		for _, frame := range frames {
			if err := c.Write(ctx, websocket.MessageText, []byte(frame)); err != nil {
				return
			}
		}
		for {
			if _, _, err := c.Read(ctx); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	s, err := Dial(ctx, url, Options{Document: "file:///srv/doc.odt"})
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, "load url=file:///srv/doc.odt", <-received)
	assert.Equal(t, "status", <-received)
	assert.Equal(t, "commandvalues command=.uno:StyleApply", <-received)

	kinds := []Kind{KindStatus, KindPermission, KindCommandValues, KindStateChanged}
	for _, want := range kinds {
		evt := nextEvent(t, s.Events())
		require.Equal(t, want, evt.Kind, "got %s", evt.Kind)
	}
	assert.Equal(t, style.DocText, s.DocumentType())
	assert.NotEmpty(t, s.ID())
}
