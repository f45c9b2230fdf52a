package mutation

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todo-upload/internal/model"
)

var taro = model.Todo{ID: 1, FirstName: "Taro", LastName: "Yamada"}

// endpoint mocks the write endpoint with a fixed status and records bodies.
type endpoint struct {
	mu     sync.Mutex
	bodies []model.NewTodo
	srv    *httptest.Server
}

func newEndpoint(t *testing.T, status int) *endpoint {
	t.Helper()
	e := &endpoint{}
	e.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type = %q", ct)
		}
		var nt model.NewTodo
		b, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(b, &nt); err != nil {
			t.Errorf("decode request: %v", err)
		}
		e.mu.Lock()
		e.bodies = append(e.bodies, nt)
		e.mu.Unlock()
		w.WriteHeader(status)
		if status < 300 {
			_, _ = w.Write([]byte(`{"id":101}`))
		}
	}))
	t.Cleanup(e.srv.Close)
	return e
}

func (e *endpoint) requests() []model.NewTodo {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]model.NewTodo(nil), e.bodies...)
}

type counters struct{ success, failure int }

func (c *counters) params() Params {
	return Params{
		Todo:      taro,
		OnSuccess: func() { c.success++ },
		OnError:   func() { c.failure++ },
	}
}

func TestDoSuccess(t *testing.T) {
	e := newEndpoint(t, http.StatusOK)
	m := New(NewClient(e.srv.URL, 0))
	var c counters

	res := m.Do(context.Background(), c.params())

	ok, isOK := res.(Succeeded)
	if !isOK {
		t.Fatalf("result = %T, want Succeeded", res)
	}
	if !m.IsSuccess() {
		t.Fatal("IsSuccess = false after 200")
	}
	if c.success != 1 || c.failure != 0 {
		t.Fatalf("callbacks success=%d failure=%d", c.success, c.failure)
	}
	if m.Data() != ok.Response || m.Data().StatusCode != http.StatusOK {
		t.Fatalf("Data not exposed: %+v", m.Data())
	}
}

func TestDoServerError(t *testing.T) {
	e := newEndpoint(t, http.StatusInternalServerError)
	m := New(NewClient(e.srv.URL, 0))
	var c counters

	res := m.Do(context.Background(), c.params())

	failed, isFailed := res.(Failed)
	if !isFailed {
		t.Fatalf("result = %T, want Failed", res)
	}
	if m.IsSuccess() {
		t.Fatal("IsSuccess = true after 500")
	}
	if c.failure != 1 || c.success != 0 {
		t.Fatalf("callbacks success=%d failure=%d", c.success, c.failure)
	}
	var apiErr *APIError
	if !errors.As(failed.Err, &apiErr) || apiErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("err = %v, want APIError 500", failed.Err)
	}
	if !errors.Is(failed.Err, ErrTransport) {
		t.Fatal("APIError should match ErrTransport")
	}
}

func TestDoNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	m := New(NewClient(url, 0))
	var c counters
	res := m.Do(context.Background(), c.params())

	failed, ok := res.(Failed)
	if !ok || !errors.Is(failed.Err, ErrTransport) {
		t.Fatalf("result = %#v, want Failed wrapping ErrTransport", res)
	}
	if c.failure != 1 || c.success != 0 {
		t.Fatalf("callbacks success=%d failure=%d", c.success, c.failure)
	}
}

func TestSubmitSendsWireRecord(t *testing.T) {
	e := newEndpoint(t, http.StatusCreated)
	m := New(NewClient(e.srv.URL, 0))

	cmd := m.Submit(context.Background(), Params{Todo: taro})
	if m.InFlight() != 1 {
		t.Fatalf("InFlight = %d before settle", m.InFlight())
	}
	if m.IsSuccess() {
		t.Fatal("success flag flipped before settle")
	}
	msg, ok := cmd().(SettledMsg)
	if !ok {
		t.Fatalf("command returned %T", msg)
	}
	m.Settle(msg)
	if m.InFlight() != 0 {
		t.Fatalf("InFlight = %d after settle", m.InFlight())
	}

	want := model.ToRequestModel(taro)
	got := e.requests()
	if len(got) != 1 || got[0] != want {
		t.Fatalf("requests = %+v, want [%+v]", got, want)
	}
	var sent model.NewTodo
	if err := json.Unmarshal(m.Data().RequestBody, &sent); err != nil || sent != want {
		t.Fatalf("RequestBody = %s (%v)", m.Data().RequestBody, err)
	}
}

func TestLastSettledWins(t *testing.T) {
	okSrv := newEndpoint(t, http.StatusOK)
	badSrv := newEndpoint(t, http.StatusInternalServerError)
	bad := New(NewClient(badSrv.srv.URL, 0))

	// two independent requests from one mutation, settled out of order
	m := New(NewClient(okSrv.srv.URL, 0))
	first := m.Submit(context.Background(), Params{Todo: taro})
	second := m.Submit(context.Background(), Params{Todo: taro})
	if m.InFlight() != 2 {
		t.Fatalf("InFlight = %d, want 2", m.InFlight())
	}
	failedMsg := bad.Submit(context.Background(), Params{Todo: taro})().(SettledMsg)

	m.Settle(second().(SettledMsg))
	if !m.IsSuccess() {
		t.Fatal("want success after first settle")
	}
	m.Settle(failedMsg)
	if m.IsSuccess() || m.Data() != nil {
		t.Fatal("a failed settle must clear the success flag and data")
	}
	m.Settle(first().(SettledMsg))
	if !m.IsSuccess() {
		t.Fatal("want success after last settle")
	}
	if n := len(okSrv.requests()); n != 2 {
		t.Fatalf("endpoint saw %d requests, want 2 (no dedup)", n)
	}
}

func TestResponseDecode(t *testing.T) {
	r := &Response{Body: []byte(`{"id":101}`)}
	var out struct{ ID int }
	if err := r.Decode(&out); err != nil || out.ID != 101 {
		t.Fatalf("Decode = %+v, %v", out, err)
	}
	if err := (&Response{Body: []byte("nope")}).Decode(&out); err == nil {
		t.Fatal("want decode error")
	}
}

func TestConcurrentSubmitsShareClient(t *testing.T) {
	e := newEndpoint(t, http.StatusOK)
	for _, c := range []*Client{NewClient(e.srv.URL, 0), {Endpoint: e.srv.URL}} {
		m := New(c)
		cmds := []tea.Cmd{
			m.Submit(context.Background(), Params{Todo: taro}),
			m.Submit(context.Background(), Params{Todo: taro}),
		}

		// Bubble Tea runs each command on its own goroutine
		msgs := make(chan tea.Msg, len(cmds))
		var wg sync.WaitGroup
		for _, cmd := range cmds {
			wg.Add(1)
			go func() {
				defer wg.Done()
				msgs <- cmd()
			}()
		}
		wg.Wait()
		close(msgs)

		for msg := range msgs {
			if _, ok := m.Settle(msg.(SettledMsg)).(Succeeded); !ok {
				t.Fatalf("concurrent submit failed: %+v", msg)
			}
		}
		if m.InFlight() != 0 || !m.IsSuccess() {
			t.Fatalf("InFlight = %d, IsSuccess = %v", m.InFlight(), m.IsSuccess())
		}
	}
	if n := len(e.requests()); n != 4 {
		t.Fatalf("endpoint saw %d requests, want 4", n)
	}
}

// nilPoster reports neither a response nor an error.
type nilPoster struct{}

func (nilPoster) Post(context.Context, any) (*Response, error) { return nil, nil }

func TestNilResponseIsFailure(t *testing.T) {
	m := New(nilPoster{})
	var c counters

	res := m.Do(context.Background(), c.params())

	failed, ok := res.(Failed)
	if !ok || !errors.Is(failed.Err, ErrTransport) {
		t.Fatalf("result = %#v, want Failed wrapping ErrTransport", res)
	}
	if m.IsSuccess() || m.Data() != nil {
		t.Fatal("nil response counted as success")
	}
	if c.failure != 1 || c.success != 0 {
		t.Fatalf("callbacks success=%d failure=%d", c.success, c.failure)
	}
}
