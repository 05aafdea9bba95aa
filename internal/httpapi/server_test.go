package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vmelnikov/kinosovetnik/internal/backend"
	"github.com/vmelnikov/kinosovetnik/internal/catalog"
	"github.com/vmelnikov/kinosovetnik/internal/config"
	"github.com/vmelnikov/kinosovetnik/internal/protocol"
	"github.com/vmelnikov/kinosovetnik/internal/snapshot"
)

type stubSender struct {
	resp backend.ChatResponse
	err  error
}

func (s *stubSender) Send(_ context.Context, _ backend.ChatRequest) (backend.ChatResponse, error) {
	return s.resp, s.err
}

func testConfig() config.Config {
	return config.Config{
		AllowAnyOrigin:         true,
		WeatherSummary:         "Солнечно, +15°C",
		LocationName:           "Москва",
		ContextRefreshInterval: time.Minute,
	}
}

func newTestServer(t *testing.T, sender backend.Sender) *httptest.Server {
	t.Helper()
	srv := New(testConfig(), sender, catalog.New(), snapshot.NewInMemoryStore(), nil)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func dialWS(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/v1/chat/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", wsURL, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) (protocol.MessageType, []byte) {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read message: %v", err)
	}
	var env protocol.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	return env.Type, data
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, &stubSender{})

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("get healthz: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("status field = %q, want %q", body["status"], "ok")
	}
}

func TestChatWSInitialContext(t *testing.T) {
	ts := newTestServer(t, &stubSender{})
	conn := dialWS(t, ts)

	typ, data := readEnvelope(t, conn)
	if typ != protocol.TypeContextUpdate {
		t.Fatalf("first message type = %q, want %q", typ, protocol.TypeContextUpdate)
	}
	var update protocol.ContextUpdate
	if err := json.Unmarshal(data, &update); err != nil {
		t.Fatalf("unmarshal context update: %v", err)
	}
	if update.Context.Weather != "Солнечно, +15°C" {
		t.Fatalf("weather = %q", update.Context.Weather)
	}
	if update.Context.Location != "Москва" {
		t.Fatalf("location = %q", update.Context.Location)
	}
}

func TestChatWSRoundTrip(t *testing.T) {
	sender := &stubSender{resp: backend.ChatResponse{Answer: "Конечно, держите подборку."}}
	ts := newTestServer(t, sender)
	conn := dialWS(t, ts)

	// Skip the initial context update.
	readEnvelope(t, conn)

	err := conn.WriteJSON(protocol.UserMessage{Type: protocol.TypeUserMessage, Text: "посоветуй фильм"})
	if err != nil {
		t.Fatalf("write user message: %v", err)
	}

	var types []protocol.MessageType
	var texts []string
	for len(types) < 4 {
		typ, data := readEnvelope(t, conn)
		types = append(types, typ)
		if typ == protocol.TypeAssistantMessage {
			var msg protocol.AssistantMessage
			if err := json.Unmarshal(data, &msg); err != nil {
				t.Fatalf("unmarshal assistant message: %v", err)
			}
			texts = append(texts, msg.Text)
		}
	}

	want := []protocol.MessageType{
		protocol.TypeAssistantMessage,
		protocol.TypeBusy,
		protocol.TypeBusy,
		protocol.TypeAssistantMessage,
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("message %d type = %q, want %q (got sequence %v)", i, types[i], want[i], types)
		}
	}
	if texts[0] != "посоветуй фильм" {
		t.Fatalf("echoed text = %q", texts[0])
	}
	if texts[1] != "Конечно, держите подборку." {
		t.Fatalf("reply text = %q", texts[1])
	}
}

func TestChatWSFallbackSendsRecommendations(t *testing.T) {
	sender := &stubSender{err: &backend.TransportError{Status: http.StatusBadGateway}}
	ts := newTestServer(t, sender)
	conn := dialWS(t, ts)

	readEnvelope(t, conn)

	err := conn.WriteJSON(protocol.UserMessage{Type: protocol.TypeUserMessage, Text: "хочу комедию"})
	if err != nil {
		t.Fatalf("write user message: %v", err)
	}

	var recs protocol.Recommendations
	found := false
	for i := 0; i < 10 && !found; i++ {
		typ, data := readEnvelope(t, conn)
		if typ == protocol.TypeRecommendations {
			if err := json.Unmarshal(data, &recs); err != nil {
				t.Fatalf("unmarshal recommendations: %v", err)
			}
			found = true
		}
	}
	if !found {
		t.Fatal("no recommendations message received")
	}
	if len(recs.Items) == 0 {
		t.Fatal("recommendations are empty")
	}
}

func TestChatWSSetMood(t *testing.T) {
	ts := newTestServer(t, &stubSender{})
	conn := dialWS(t, ts)

	readEnvelope(t, conn)

	err := conn.WriteJSON(protocol.SetMood{Type: protocol.TypeSetMood, Mood: "romantic"})
	if err != nil {
		t.Fatalf("write set_mood: %v", err)
	}

	typ, data := readEnvelope(t, conn)
	if typ != protocol.TypeContextUpdate {
		t.Fatalf("message type = %q, want %q", typ, protocol.TypeContextUpdate)
	}
	var update protocol.ContextUpdate
	if err := json.Unmarshal(data, &update); err != nil {
		t.Fatalf("unmarshal context update: %v", err)
	}
	if string(update.Context.Mood) != "romantic" {
		t.Fatalf("mood = %q, want %q", update.Context.Mood, "romantic")
	}
}

func TestChatWSRejectsUnknownType(t *testing.T) {
	ts := newTestServer(t, &stubSender{})
	conn := dialWS(t, ts)

	readEnvelope(t, conn)

	err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"mystery"}`))
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	typ, data := readEnvelope(t, conn)
	if typ != protocol.TypeErrorEvent {
		t.Fatalf("message type = %q, want %q", typ, protocol.TypeErrorEvent)
	}
	var ev protocol.ErrorEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		t.Fatalf("unmarshal error event: %v", err)
	}
	if ev.Code != "invalid_client_message" {
		t.Fatalf("code = %q", ev.Code)
	}
}
