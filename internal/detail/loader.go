// Package detail loads full detail records on demand: one open record at a
// time for the detail view, and batches for the favorites view.
package detail

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/joestump/dexview/internal/catalog"
	"github.com/joestump/dexview/internal/logging"
)

// ErrSuperseded is returned by Open when a later Open or a Close replaced it
// before its fetch resolved. The loader state belongs to the newer call.
var ErrSuperseded = errors.New("detail open superseded")

// Fetcher fetches one detail record by ID.
type Fetcher interface {
	FetchDetailByID(ctx context.Context, id int) (*catalog.Detail, error)
}

// Status is the phase of the loader.
type Status string

const (
	StatusClosed   Status = "closed"
	StatusLoading  Status = "loading"
	StatusLoaded   Status = "loaded"
	StatusNotFound Status = "not_found"
)

// State is what the detail view renders.
type State struct {
	Status Status          `json:"status"`
	ID     int             `json:"id,omitempty"`
	Token  string          `json:"token,omitempty"`
	Record *catalog.Detail `json:"record,omitempty"`
}

func (s State) Loading() bool { return s.Status == StatusLoading }
func (s State) NotFound() bool { return s.Status == StatusNotFound }

// Loader holds at most one open detail record. There is no cache; every Open
// fetches again.
type Loader struct {
	fetch Fetcher
	log   *zap.Logger

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	state  State
}

// NewLoader creates a closed Loader.
func NewLoader(fetch Fetcher, log *zap.Logger) *Loader {
	return &Loader{fetch: fetch, log: logging.OrNop(log), state: State{Status: StatusClosed}}
}

// State returns the current state.
func (l *Loader) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Open enters the loading state for id, cancelling any open still in flight,
// and blocks until the fetch resolves. A failed fetch leaves the loader in
// StatusNotFound and returns the error.
func (l *Loader) Open(ctx context.Context, id int) (*catalog.Detail, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.gen++
	gen := l.gen
	l.cancel = cancel
	l.state = State{Status: StatusLoading, ID: id, Token: uuid.NewString()}
	token := l.state.Token
	l.mu.Unlock()

	d, err := l.fetch.FetchDetailByID(ctx, id)

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		l.log.Debug("discarding stale detail", zap.Int("id", id), zap.String("token", token))
		return nil, ErrSuperseded
	}
	l.cancel = nil
	if err != nil {
		l.log.Warn("open detail", zap.Int("id", id), zap.String("token", token), zap.Error(err))
		l.state.Status = StatusNotFound
		return nil, err
	}
	l.state.Status = StatusLoaded
	l.state.Record = d
	return d, nil
}

// Close discards the open record and cancels a fetch in flight.
func (l *Loader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.gen++
	l.state = State{Status: StatusClosed}
}
