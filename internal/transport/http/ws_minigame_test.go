package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestMiniGameWebSocketFlow(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws/minigame", NewMiniGameHandler(testAPIKey, 3).ServeWS)
	server := httptest.NewServer(mux)
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/ws/minigame?apiKey=" + testAPIKey
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	start := map[string]any{
		"type": "start",
		"payload": map[string]any{
			"id":   "g1",
			"type": "intruder",
			"data": map[string]any{
				"items":    []string{"HC", "MS", "MI"},
				"intruder": "Usucapião",
			},
		},
	}
	if err := conn.WriteJSON(start); err != nil {
		t.Fatalf("write start: %v", err)
	}

	msgType, payload := readNext(t, conn)
	if msgType != "started" {
		t.Fatalf("expected started, got %s (%v)", msgType, payload)
	}
	prompts, _ := payload["prompts"].([]any)
	if len(prompts) != 4 {
		t.Fatalf("expected 4 shuffled prompts, got %v", prompts)
	}

	// Wrong pick counts an error.
	if err := conn.WriteJSON(map[string]any{"type": "move", "payload": map[string]any{"item": "HC"}}); err != nil {
		t.Fatalf("write move: %v", err)
	}
	msgType, payload = readNext(t, conn)
	if msgType != "moveResult" || payload["correct"] == true {
		t.Fatalf("expected wrong moveResult, got %s %v", msgType, payload)
	}

	// Right pick completes the game.
	if err := conn.WriteJSON(map[string]any{"type": "move", "payload": map[string]any{"item": "Usucapião"}}); err != nil {
		t.Fatalf("write move: %v", err)
	}
	resultSeen := false
	completeSeen := false
	for i := 0; i < 2; i++ {
		switch msgType, _ := readNext(t, conn); msgType {
		case "moveResult":
			resultSeen = true
		case "complete":
			completeSeen = true
		}
	}
	if !resultSeen || !completeSeen {
		t.Fatalf("expected moveResult and complete, got moveResult=%v complete=%v", resultSeen, completeSeen)
	}
}

func TestMiniGameWebSocketRejectsBadKey(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws/minigame", NewMiniGameHandler(testAPIKey, 3).ServeWS)
	server := httptest.NewServer(mux)
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/ws/minigame?apiKey=wrong"
	_, resp, err := websocket.DefaultDialer.Dial(u, nil)
	if err == nil {
		t.Fatalf("expected dial to fail on bad key")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 handshake response, got %+v", resp)
	}
}

func readNext(t *testing.T, conn *websocket.Conn) (string, map[string]any) {
	t.Helper()
	var msg struct {
		Type    string         `json:"type"`
		Payload map[string]any `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	return msg.Type, msg.Payload
}
