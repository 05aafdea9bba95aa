// Package httpapi exposes the assistant over HTTP: health and metrics
// endpoints plus the websocket chat gateway that acts as the concrete
// presentation surface for a browser client.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/vmelnikov/kinosovetnik/internal/assistant"
	"github.com/vmelnikov/kinosovetnik/internal/backend"
	"github.com/vmelnikov/kinosovetnik/internal/catalog"
	"github.com/vmelnikov/kinosovetnik/internal/chatcontext"
	"github.com/vmelnikov/kinosovetnik/internal/config"
	"github.com/vmelnikov/kinosovetnik/internal/logging"
	"github.com/vmelnikov/kinosovetnik/internal/observability"
	"github.com/vmelnikov/kinosovetnik/internal/protocol"
	"github.com/vmelnikov/kinosovetnik/internal/session"
	"github.com/vmelnikov/kinosovetnik/internal/snapshot"
)

type Server struct {
	cfg       config.Config
	sender    backend.Sender
	catalog   *catalog.Catalog
	snapshots snapshot.Store
	metrics   *observability.Metrics
	upgrader  websocket.Upgrader
}

func New(cfg config.Config, sender backend.Sender, cat *catalog.Catalog, snapshots snapshot.Store, metrics *observability.Metrics) *Server {
	return &Server{
		cfg:       cfg,
		sender:    sender,
		catalog:   cat,
		snapshots: snapshots,
		metrics:   metrics,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				// Only allow browser websocket connections from the same
				// origin unless explicitly opened up.
				if cfg.AllowAnyOrigin {
					return true
				}
				origin := strings.TrimSpace(r.Header.Get("Origin"))
				if origin == "" {
					// Non-browser clients often omit Origin. Allow them.
					return true
				}
				u, err := url.Parse(origin)
				if err != nil {
					return false
				}
				if u.Scheme != "http" && u.Scheme != "https" {
					return false
				}
				return strings.EqualFold(u.Host, r.Host)
			},
		},
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealth)
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		observability.MetricsHandler().ServeHTTP(w, r)
	})
	r.Get("/v1/chat/ws", s.handleChatWS)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
	})
}

// handleChatWS owns one conversation per websocket connection. The outbound
// write loop doubles as the Presenter implementation, so everything the
// controller renders travels through one channel.
func (s *Server) handleChatWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	s.metrics.ConnectionOpened()
	defer s.metrics.ConnectionClosed()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	outbound := make(chan any, 64)
	presenter := &wsPresenter{outbound: outbound}

	store := session.NewStore()
	ctxModel := chatcontext.NewModel(s.cfg.WeatherSummary, s.cfg.LocationName)
	controller := assistant.NewController(store, ctxModel, s.sender, s.catalog, presenter, s.snapshots, s.metrics)
	defer controller.Close()

	controller.RefreshContext()
	controller.StartContextTicker(ctx, s.cfg.ContextRefreshInterval)

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-outbound:
				if !ok {
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
				if err := conn.WriteJSON(msg); err != nil {
					cancel()
					return
				}
			}
		}
	}()

	conn.SetReadLimit(64 << 10)

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		if msgType != websocket.TextMessage {
			continue
		}
		parsed, err := protocol.ParseClientMessage(data)
		if err != nil {
			presenter.send(protocol.ErrorEvent{
				Type:   protocol.TypeErrorEvent,
				Code:   "invalid_client_message",
				Detail: err.Error(),
			})
			continue
		}

		switch msg := parsed.(type) {
		case protocol.UserMessage:
			// Run the round trip off the read loop so mood selection stays
			// responsive while the backend call is in flight.
			go func(text string) {
				if err := controller.Submit(ctx, text); err != nil {
					code := "submit_failed"
					if err == assistant.ErrBusy {
						code = "busy"
					}
					presenter.send(protocol.ErrorEvent{
						Type:   protocol.TypeErrorEvent,
						Code:   code,
						Detail: err.Error(),
					})
				}
			}(msg.Text)
		case protocol.SetMood:
			controller.SetMood(chatcontext.Mood(msg.Mood))
		}
	}

	cancel()
	<-writerDone
}

// wsPresenter renders controller output as websocket envelopes. Sends never
// block the controller: if the outbound queue is saturated the envelope is
// dropped.
type wsPresenter struct {
	outbound chan<- any
}

func (p *wsPresenter) send(msg any) {
	select {
	case p.outbound <- msg:
	default:
		logging.Warn().Msg("outbound queue full, dropping message")
	}
}

func (p *wsPresenter) ShowMessage(text, sender string) {
	p.send(protocol.AssistantMessage{Type: protocol.TypeAssistantMessage, Text: text, Sender: sender})
}

func (p *wsPresenter) ShowRecommendations(items []catalog.Item) {
	p.send(protocol.Recommendations{Type: protocol.TypeRecommendations, Items: items})
}

func (p *wsPresenter) ShowContext(snap chatcontext.Snapshot) {
	p.send(protocol.ContextUpdate{Type: protocol.TypeContextUpdate, Context: snap})
}

func (p *wsPresenter) SetBusy(busy bool) {
	p.send(protocol.Busy{Type: protocol.TypeBusy, Busy: busy})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
