package bridge

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pathstack-dev/pathstack/pkg/history"
	"github.com/pathstack-dev/pathstack/pkg/router"
)

func newTestServer(t *testing.T, initial string) (*Server, *httptest.Server) {
	t.Helper()
	r := router.New(history.NewMemory(initial))
	s := New(r)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func TestHealthz(t *testing.T) {
	_, ts := newTestServer(t, "/")

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestRouteEndpoint(t *testing.T) {
	_, ts := newTestServer(t, "/users/user/=123?tab=1#top")

	resp, err := http.Get(ts.URL + "/route")
	if err != nil {
		t.Fatalf("GET /route: %v", err)
	}
	defer resp.Body.Close()

	var snap RouteSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.Type != MessageRoute {
		t.Errorf("Type = %q", snap.Type)
	}
	if len(snap.Blocks) != 1 || len(snap.Blocks[0]) != 2 {
		t.Fatalf("Blocks = %#v", snap.Blocks)
	}
	if snap.Blocks[0][1].Name != "user" || snap.Blocks[0][1].Properties[""] != "123" {
		t.Errorf("second context = %#v", snap.Blocks[0][1])
	}
	if snap.Search["tab"] != "1" || snap.Hash != "top" {
		t.Errorf("search/hash = %v / %q", snap.Search, snap.Hash)
	}
}

func TestNavigateEndpoint(t *testing.T) {
	s, ts := newTestServer(t, "/")

	resp, err := http.Post(ts.URL+"/navigate", "application/json",
		strings.NewReader(`{"type":"navigate","path":"/users"}`))
	if err != nil {
		t.Fatalf("POST /navigate: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if got := s.router.Route().Path(); got != "/users" {
		t.Errorf("router path = %q", got)
	}

	// Missing path is rejected.
	resp, err = http.Post(ts.URL+"/navigate", "application/json", strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("POST /navigate: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func dialWS(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readSnapshot(t *testing.T, conn *websocket.Conn) RouteSnapshot {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var snap RouteSnapshot
	if err := conn.ReadJSON(&snap); err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	return snap
}

func TestWebSocketSnapshots(t *testing.T) {
	_, ts := newTestServer(t, "/start")
	conn := dialWS(t, ts)

	// Initial snapshot arrives without any navigation.
	snap := readSnapshot(t, conn)
	if snap.Path != "/start" {
		t.Fatalf("initial snapshot path = %q", snap.Path)
	}

	cmd := Command{Type: CommandNavigate, Path: "/users/~/edit"}
	if err := conn.WriteJSON(cmd); err != nil {
		t.Fatalf("write command: %v", err)
	}

	snap = readSnapshot(t, conn)
	if snap.Path != "/users/~/edit" {
		t.Errorf("snapshot path = %q", snap.Path)
	}
	if len(snap.Blocks) != 2 {
		t.Errorf("Blocks = %#v", snap.Blocks)
	}
}

func TestWebSocketBackForward(t *testing.T) {
	_, ts := newTestServer(t, "/")
	conn := dialWS(t, ts)
	readSnapshot(t, conn) // initial

	conn.WriteJSON(Command{Type: CommandNavigate, Path: "/a"})
	if snap := readSnapshot(t, conn); snap.Path != "/a" {
		t.Fatalf("path = %q", snap.Path)
	}

	conn.WriteJSON(Command{Type: CommandBack})
	if snap := readSnapshot(t, conn); snap.Path != "/" {
		t.Errorf("after back, path = %q", snap.Path)
	}

	conn.WriteJSON(Command{Type: CommandForward})
	if snap := readSnapshot(t, conn); snap.Path != "/a" {
		t.Errorf("after forward, path = %q", snap.Path)
	}
}

func TestWebSocketUnknownCommand(t *testing.T) {
	_, ts := newTestServer(t, "/")
	conn := dialWS(t, ts)
	readSnapshot(t, conn) // initial

	conn.WriteJSON(Command{Type: "bogus"})

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg ErrorMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read error message: %v", err)
	}
	if msg.Type != MessageError {
		t.Errorf("message = %+v", msg)
	}
}

func TestSessionCount(t *testing.T) {
	s, ts := newTestServer(t, "/")
	conn := dialWS(t, ts)
	readSnapshot(t, conn)

	if got := s.SessionCount(); got != 1 {
		t.Errorf("SessionCount = %d, want 1", got)
	}

	conn.Close()
	deadline := time.Now().Add(2 * time.Second)
	for s.SessionCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("session was not removed after close")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
