package engine

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"nhooyr.io/websocket"

	"github.com/atomicstack/styleselect/internal/logging/events"
	"github.com/atomicstack/styleselect/internal/protocol"
	"github.com/atomicstack/styleselect/internal/style"
)

const (
	readLimit    = 8 << 20
	writeTimeout = 10 * time.Second
	pingInterval = 20 * time.Second
	pingTimeout  = 5 * time.Second
	sendQueue    = 64
)

// ErrQueueFull is returned when outbound frames arrive faster than the
// writer can deliver them.
var ErrQueueFull = errors.New("send queue full")

// conn is the subset of *websocket.Conn a Session uses.
type conn interface {
	Read(ctx context.Context) (websocket.MessageType, []byte, error)
	Write(ctx context.Context, typ websocket.MessageType, p []byte) error
	Close(code websocket.StatusCode, reason string) error
	Ping(ctx context.Context) error
}

// Options configure a Session.
type Options struct {
	// Document is the URL passed to the engine's load command.
	Document string
	// ReadOnly reports the document as not editable regardless of the engine.
	ReadOnly bool
	// SendInterval is the minimum spacing between outbound commands.
	SendInterval time.Duration
	// PingInterval overrides the keep-alive period; negative disables pings.
	PingInterval time.Duration
	Header       http.Header
}

// Session is a live connection to a document engine over a websocket.
type Session struct {
	id   string
	conn conn
	opts Options

	ctx    context.Context
	cancel context.CancelFunc

	events   chan Event
	out      chan string
	wg       sync.WaitGroup
	throttle *throttle

	mu      sync.RWMutex
	docType style.DocType
	perm    string

	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// Dial connects to the engine at url, loads the configured document and
// requests its status and style catalog.
func Dial(ctx context.Context, url string, opts Options) (*Session, error) {
	c, _, err := websocket.Dial(ctx, url, &websocket.DialOptions{HTTPHeader: opts.Header})
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	c.SetReadLimit(readLimit)

	s := newSession(c, opts)
	events.Engine.Connect(s.id, url)
	if err := s.open(); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

func newSession(c conn, opts Options) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		id:       uuid.NewString(),
		conn:     c,
		opts:     opts,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
		out:      make(chan string, sendQueue),
		throttle: newThrottle(opts.SendInterval),
	}

	s.wg.Add(2)
	go s.read()
	go s.write()

	go func() {
		s.wg.Wait()
		close(s.events)
	}()

	return s
}

// open sends the handshake frames that make the engine describe the document.
func (s *Session) open() error {
	frames := []string{
		protocol.Load(s.opts.Document),
		protocol.StatusRequest(),
		protocol.CommandValuesRequest(style.ApplyCommand),
	}
	for _, frame := range frames {
		if err := s.send(frame); err != nil {
			return err
		}
	}
	return nil
}

// ID returns the session identifier used in traces.
func (s *Session) ID() string {
	return s.id
}

// Events returns a channel of engine events. It is closed once the session
// stops reading.
func (s *Session) Events() <-chan Event {
	return s.events
}

// DocumentType returns the type from the most recent status frame read off
// the wire, which may be ahead of the events already consumed.
func (s *Session) DocumentType() style.DocType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.docType
}

// SendCommand runs a dispatchable command such as ".uno:Bold".
func (s *Session) SendCommand(command string) error {
	return s.send(protocol.Uno(command))
}

// ApplyStyle applies the named style from family to the current selection.
func (s *Session) ApplyStyle(name, family string) error {
	frame, err := protocol.ApplyStyle(name, family)
	if err != nil {
		return err
	}
	return s.send(frame)
}

// RequestCatalog asks the engine to resend the style catalog.
func (s *Session) RequestCatalog() error {
	return s.send(protocol.CommandValuesRequest(style.ApplyCommand))
}

// Close ends the session. It is safe to call more than once.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		err := s.conn.Close(websocket.StatusNormalClosure, "session closed")
		s.cancel()
		s.wg.Wait()
		if err != nil && !isClosedError(err) {
			s.closeErr = fmt.Errorf("close session: %w", err)
		}
	})
	return s.closeErr
}

// send queues frame for the writer goroutine. It never waits for the socket;
// delivery failures arrive later as KindError events.
func (s *Session) send(frame string) error {
	if s.closed.Load() || s.ctx.Err() != nil {
		return ErrClosed
	}
	select {
	case s.out <- frame:
		return nil
	default:
		return fmt.Errorf("send %q: %w", protocol.Abbreviate([]byte(frame), 40), ErrQueueFull)
	}
}

// write drains the outbound queue, pacing frames with the throttle and
// pinging the peer while idle.
func (s *Session) write() {
	defer s.wg.Done()

	var ping <-chan time.Time
	interval := s.opts.PingInterval
	if interval == 0 {
		interval = pingInterval
	}
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		ping = ticker.C
	}

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ping:
			ctx, cancel := context.WithTimeout(s.ctx, pingTimeout)
			_ = s.conn.Ping(ctx)
			cancel()
		case frame := <-s.out:
			if err := s.throttle.wait(s.ctx); err != nil {
				return
			}
			if err := s.writeFrame(frame); err != nil {
				if s.closed.Load() || s.ctx.Err() != nil {
					return
				}
				s.emit(Event{Kind: KindError, Err: err})
			}
		}
	}
}

func (s *Session) writeFrame(frame string) error {
	ctx, cancel := context.WithTimeout(s.ctx, writeTimeout)
	defer cancel()
	events.Engine.Send(s.id, protocol.Abbreviate([]byte(frame), 120))
	if err := s.conn.Write(ctx, websocket.MessageText, []byte(frame)); err != nil {
		return fmt.Errorf("send %q: %w", protocol.Abbreviate([]byte(frame), 40), err)
	}
	return nil
}

func (s *Session) read() {
	defer s.wg.Done()
	// A dead reader means a dead connection; stop the writer too.
	defer s.cancel()
	for {
		typ, data, err := s.conn.Read(s.ctx)
		if err != nil {
			if !s.closed.Load() && !isClosedError(err) {
				s.emit(Event{Kind: KindError, Err: fmt.Errorf("read frame: %w", err)})
			}
			events.Engine.Closed(s.id, err)
			return
		}
		if typ != websocket.MessageText {
			continue
		}
		s.handle(data)
	}
}

func (s *Session) handle(data []byte) {
	msg, err := protocol.Parse(data)
	if err != nil {
		events.Engine.Frame(s.id, "", len(data))
		return
	}
	events.Engine.Frame(s.id, msg.Prefix, len(data))

	switch msg.Prefix {
	case protocol.PrefixStatus:
		st, err := protocol.ParseStatus(msg.Payload)
		if err != nil {
			s.emit(Event{Kind: KindError, Err: err})
			return
		}
		s.mu.Lock()
		s.docType = st.Type
		perm := s.perm
		s.mu.Unlock()
		s.emit(Event{Kind: KindStatus, Data: st})
		if perm == "" {
			perm = permissionFor(s.opts.ReadOnly)
		}
		s.emit(Event{Kind: KindPermission, Data: perm})
	case protocol.PrefixPerm:
		perm := strings.TrimSpace(msg.Payload)
		if s.opts.ReadOnly {
			perm = PermReadOnly
		}
		s.mu.Lock()
		s.perm = perm
		s.mu.Unlock()
		s.emit(Event{Kind: KindPermission, Data: perm})
	case protocol.PrefixCommandValues:
		values, err := protocol.ParseCommandValues(msg.Payload)
		if err != nil {
			s.emit(Event{Kind: KindError, Err: err})
			return
		}
		s.emit(Event{Kind: KindCommandValues, Data: values})
	case protocol.PrefixStateChanged:
		change, err := protocol.ParseStateChange(msg.Payload)
		if err != nil {
			s.emit(Event{Kind: KindError, Err: err})
			return
		}
		s.emit(Event{Kind: KindStateChanged, Data: change})
	case protocol.PrefixError:
		s.emit(Event{Kind: KindError, Err: protocol.ParseError(msg.Payload)})
	}
}

func (s *Session) emit(evt Event) {
	select {
	case <-s.ctx.Done():
	case s.events <- evt:
	}
}

func isClosedError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return true
	}
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return true
	}
	return strings.Contains(err.Error(), "already wrote close") ||
		strings.Contains(err.Error(), "closed")
}
