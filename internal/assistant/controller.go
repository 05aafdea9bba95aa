// Package assistant orchestrates a single conversation: it validates user
// input, drives the backend round trip and degrades to the local
// classifier/catalog path when the backend is unreachable.
package assistant

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/vmelnikov/kinosovetnik/internal/backend"
	"github.com/vmelnikov/kinosovetnik/internal/catalog"
	"github.com/vmelnikov/kinosovetnik/internal/chatcontext"
	"github.com/vmelnikov/kinosovetnik/internal/intent"
	"github.com/vmelnikov/kinosovetnik/internal/logging"
	"github.com/vmelnikov/kinosovetnik/internal/observability"
	"github.com/vmelnikov/kinosovetnik/internal/session"
	"github.com/vmelnikov/kinosovetnik/internal/snapshot"
)

// State identifies where the controller is in its request cycle.
type State string

const (
	StateIdle        State = "idle"
	StateSending     State = "sending"
	StateResponding  State = "responding"
	StateFallingBack State = "falling_back"
)

const historyWindow = 10

var (
	// ErrBusy rejects a submission while a round trip is still in flight.
	ErrBusy = errors.New("a request is already in flight")
	// ErrClosed rejects interaction with a torn-down controller.
	ErrClosed = errors.New("controller is closed")
)

// Presenter is the capability surface the controller renders into. The core
// depends only on these operations, not on any rendering technology.
type Presenter interface {
	ShowMessage(text, sender string)
	ShowRecommendations(items []catalog.Item)
	ShowContext(snap chatcontext.Snapshot)
	SetBusy(busy bool)
}

// Controller owns one session and processes one submission at a time.
type Controller struct {
	mu     sync.Mutex
	state  State
	closed bool

	store     *session.Store
	ctxModel  *chatcontext.Model
	sender    backend.Sender
	catalog   *catalog.Catalog
	presenter Presenter
	snapshots snapshot.Store
	metrics   *observability.Metrics

	now func() time.Time
}

func NewController(
	store *session.Store,
	ctxModel *chatcontext.Model,
	sender backend.Sender,
	cat *catalog.Catalog,
	presenter Presenter,
	snapshots snapshot.Store,
	metrics *observability.Metrics,
) *Controller {
	if snapshots == nil {
		snapshots = snapshot.NewNoopStore()
	}
	return &Controller{
		state:     StateIdle,
		store:     store,
		ctxModel:  ctxModel,
		sender:    sender,
		catalog:   cat,
		presenter: presenter,
		snapshots: snapshots,
		metrics:   metrics,
		now:       time.Now,
	}
}

func (c *Controller) SessionID() string {
	return c.store.ID()
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit processes one user message end to end. Empty input is a silent
// no-op with no side effects. A submission while another is in flight fails
// with ErrBusy; the user retries by submitting again.
func (c *Controller) Submit(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.state != StateIdle {
		c.mu.Unlock()
		c.metrics.ObserveTurn("rejected")
		return ErrBusy
	}
	if _, err := c.store.Append(session.SenderUser, text); err != nil {
		c.mu.Unlock()
		return err
	}
	c.state = StateSending
	c.mu.Unlock()

	c.presenter.ShowMessage(text, session.SenderUser)
	c.presenter.SetBusy(true)

	req := backend.ChatRequest{
		Message:   text,
		SessionID: c.store.ID(),
		Context:   c.ctxModel.Snapshot(c.now()),
		History:   c.store.RecentWindow(historyWindow),
	}

	started := c.now()
	resp, err := c.sender.Send(ctx, req)
	c.metrics.ObserveBackendLatency(c.now().Sub(started))

	c.mu.Lock()
	if c.closed {
		// The controller was torn down while the request was outstanding;
		// drop the result without touching the discarded session.
		c.mu.Unlock()
		return nil
	}
	if err != nil {
		c.state = StateFallingBack
	} else {
		c.state = StateResponding
	}
	c.mu.Unlock()

	c.presenter.SetBusy(false)

	if err != nil {
		c.fallback(text, err)
	} else {
		c.respond(resp)
	}

	c.mu.Lock()
	c.state = StateIdle
	c.mu.Unlock()

	c.emitSnapshot(ctx, req.Context)
	return nil
}

func (c *Controller) respond(resp backend.ChatResponse) {
	if _, err := c.store.Append(session.SenderAssistant, resp.Answer); err != nil {
		logging.Warn().Err(err).Msg("drop unusable assistant reply")
		return
	}
	c.presenter.ShowMessage(resp.Answer, session.SenderAssistant)
	if len(resp.Recommendations) > 0 {
		c.presenter.ShowRecommendations(resp.Recommendations)
	}
	c.metrics.ObserveTurn("backend")
}

// fallback serves the local keyword-driven path. The backend error is logged
// and never surfaces to the user; the reply is always substantive.
func (c *Controller) fallback(text string, cause error) {
	genre := intent.Classify(text)
	items := c.catalog.Lookup(genre)
	reply := fallbackReply(genre)

	logging.Warn().
		Err(cause).
		Str("session_id", c.store.ID()).
		Str("genre", string(genre)).
		Msg("backend unavailable, serving local recommendations")

	if _, err := c.store.Append(session.SenderAssistant, reply); err != nil {
		logging.Warn().Err(err).Msg("drop unusable fallback reply")
		return
	}
	c.presenter.ShowMessage(reply, session.SenderAssistant)
	c.presenter.ShowRecommendations(items)
	c.metrics.ObserveTurn("fallback")
	c.metrics.ObserveFallbackGenre(string(genre))
}

func (c *Controller) emitSnapshot(ctx context.Context, snap chatcontext.Snapshot) {
	rec := snapshot.Record{
		SessionID: c.store.ID(),
		History:   c.store.History(),
		Context:   snap,
		CreatedAt: c.now().UTC(),
	}
	if err := c.snapshots.Save(ctx, rec); err != nil {
		c.metrics.ObserveSnapshotError()
		logging.Warn().Err(err).Str("session_id", rec.SessionID).Msg("session snapshot save failed")
	}
}

// SetMood updates the viewer mood and re-displays the context. It is
// serviced even while a round trip is in flight.
func (c *Controller) SetMood(mood chatcontext.Mood) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	c.ctxModel.SetMood(mood)
	c.presenter.ShowContext(c.ctxModel.Snapshot(c.now()))
}

// RefreshContext re-derives the context snapshot and re-displays it. No I/O,
// cannot fail.
func (c *Controller) RefreshContext() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	c.presenter.ShowContext(c.ctxModel.Snapshot(c.now()))
}

// StartContextTicker refreshes the displayed context on a fixed interval
// until ctx is cancelled.
func (c *Controller) StartContextTicker(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.RefreshContext()
			}
		}
	}()
}

// Close tears down the controller. Any outstanding backend result is dropped
// when it eventually arrives. Idempotent.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}
