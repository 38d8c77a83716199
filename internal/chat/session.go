package chat

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"
)

// ErrBusy is returned by Submit while a previous input is still running.
var ErrBusy = errors.New("chat: previous input still in progress")

// ErrClosed is returned by Submit after Close.
var ErrClosed = errors.New("chat: session closed")

type job struct {
	ctx   context.Context
	in    Input
	reply chan []Message
}

// Session runs one conversation on a dedicated worker goroutine. At most one
// input is admitted at a time so state changes never interleave.
type Session struct {
	engine *Engine
	log    zerolog.Logger

	slot *semaphore.Weighted
	jobs chan job
	done chan struct{}
	once sync.Once

	mu      sync.Mutex
	state   State
	history []Message
}

// NewSession starts the worker and records the opening greeting.
func NewSession(engine *Engine, log zerolog.Logger) *Session {
	s := &Session{
		engine:  engine,
		log:     log,
		slot:    semaphore.NewWeighted(1),
		jobs:    make(chan job),
		done:    make(chan struct{}),
		state:   NewState(),
		history: []Message{engine.Greeting()},
	}
	go s.run()
	return s
}

func (s *Session) run() {
	for {
		select {
		case <-s.done:
			return
		case j := <-s.jobs:
			s.mu.Lock()
			st := s.state
			s.mu.Unlock()

			next, out := s.engine.Dispatch(j.ctx, st, j.in)

			s.mu.Lock()
			s.state = next
			s.history = append(s.history, out...)
			s.mu.Unlock()
			j.reply <- out
		}
	}
}

// Submit hands one input to the worker and waits for its replies. It
// returns ErrBusy without queueing when another input is in flight.
func (s *Session) Submit(ctx context.Context, in Input) ([]Message, error) {
	if !s.slot.TryAcquire(1) {
		return nil, ErrBusy
	}
	defer s.slot.Release(1)

	s.record(in)
	j := job{ctx: ctx, in: in, reply: make(chan []Message, 1)}
	select {
	case <-s.done:
		return nil, ErrClosed
	case s.jobs <- j:
	}
	select {
	case out := <-j.reply:
		return out, nil
	case <-s.done:
		return nil, ErrClosed
	}
}

func (s *Session) record(in Input) {
	text := strings.TrimSpace(in.Text)
	if in.Upload != nil {
		text = "📎 " + in.Upload.Filename
	}
	if text == "" {
		return
	}
	s.mu.Lock()
	s.history = append(s.history, Message{Sender: SenderUser, Text: text, Time: s.engine.now()})
	s.mu.Unlock()
}

// State returns a snapshot of the conversation state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// History returns a copy of the message log.
func (s *Session) History() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.history))
	copy(out, s.history)
	return out
}

// Close stops the worker. In-flight Submit calls return ErrClosed.
func (s *Session) Close() {
	s.once.Do(func() {
		close(s.done)
		s.log.Debug().Msg("session closed")
	})
}
