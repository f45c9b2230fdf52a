package mutation

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todo-upload/internal/logging"
	"github.com/idilsaglam/todo-upload/internal/model"
)

// Params is one submission: the record plus the caller's callbacks.
type Params struct {
	Todo      model.Todo
	OnSuccess func()
	OnError   func()
}

// Result is either Succeeded or Failed.
type Result interface {
	settled()
}

type Succeeded struct {
	Response *Response
}

type Failed struct {
	Err error
}

func (Succeeded) settled() {}
func (Failed) settled()    {}

// SettledMsg carries a finished request back to the Bubble Tea loop.
// Hand it to Mutation.Settle from Update.
type SettledMsg struct {
	Result Result
	Params Params
}

// Mutation performs one write per submit and tracks the outcome of the
// most recently settled call. Requests are independent: no retry, no
// queueing, no cancellation of an earlier call.
type Mutation struct {
	poster Poster
	log    *logging.Logger

	mu       sync.Mutex
	success  bool
	data     *Response
	inFlight int
}

type Option func(*Mutation)

func WithLogger(l *logging.Logger) Option {
	return func(m *Mutation) { m.log = l }
}

func New(p Poster, opts ...Option) *Mutation {
	m := &Mutation{poster: p, log: logging.Discard()}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Submit returns a command that sends p.Todo in its wire shape and
// yields a SettledMsg. The outcome is applied only once Settle runs.
func (m *Mutation) Submit(ctx context.Context, p Params) tea.Cmd {
	m.mu.Lock()
	m.inFlight++
	m.mu.Unlock()

	wire := model.ToRequestModel(p.Todo)
	return func() tea.Msg {
		return SettledMsg{Result: m.send(ctx, wire), Params: p}
	}
}

// Settle records the outcome and fires exactly one of the callbacks.
func (m *Mutation) Settle(msg SettledMsg) Result {
	m.mu.Lock()
	if m.inFlight > 0 {
		m.inFlight--
	}
	switch r := msg.Result.(type) {
	case Succeeded:
		m.success = true
		m.data = r.Response
	case Failed:
		m.success = false
		m.data = nil
	}
	m.mu.Unlock()

	switch r := msg.Result.(type) {
	case Succeeded:
		m.log.Debug("todo submitted", "id", msg.Params.Todo.ID, "status", r.Response.StatusCode)
		if msg.Params.OnSuccess != nil {
			msg.Params.OnSuccess()
		}
	case Failed:
		m.log.WithError(r.Err).Debug("todo submit failed", "id", msg.Params.Todo.ID)
		if msg.Params.OnError != nil {
			msg.Params.OnError()
		}
	}
	return msg.Result
}

// Do submits and settles in one blocking call.
func (m *Mutation) Do(ctx context.Context, p Params) Result {
	msg := m.Submit(ctx, p)()
	return m.Settle(msg.(SettledMsg))
}

// IsSuccess reports whether the last settled call succeeded.
func (m *Mutation) IsSuccess() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.success
}

// Data is the response of the last settled call, nil if it failed.
func (m *Mutation) Data() *Response {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data
}

// InFlight counts submits that have not settled yet.
func (m *Mutation) InFlight() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inFlight
}

func (m *Mutation) send(ctx context.Context, wire model.NewTodo) Result {
	resp, err := m.poster.Post(ctx, wire)
	if err != nil {
		return Failed{Err: err}
	}
	if resp == nil {
		return Failed{Err: fmt.Errorf("%w: no response", ErrTransport)}
	}
	return Succeeded{Response: resp}
}
