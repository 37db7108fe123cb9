package http

import (
	"encoding/json"
	"log"
	"math/rand"
	"net/http"
	"time"

	"concurseiro-challenge-service/internal/minigame"
	"github.com/gorilla/websocket"
)

// MiniGameHandler drives one mini-game session per websocket connection.
// The session lives only as long as the connection; games are stateless
// between visits.
type MiniGameHandler struct {
	apiKey    string
	maxErrors int
	upgrader  websocket.Upgrader
}

func NewMiniGameHandler(apiKey string, maxErrors int) *MiniGameHandler {
	return &MiniGameHandler{
		apiKey:    apiKey,
		maxErrors: maxErrors,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type movePayload struct {
	Left     string   `json:"left,omitempty"`
	Right    string   `json:"right,omitempty"`
	Order    []string `json:"order,omitempty"`
	Item     string   `json:"item,omitempty"`
	Category string   `json:"category,omitempty"`
}

type startedPayload struct {
	GameID  string   `json:"gameId"`
	Prompts []string `json:"prompts"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the request and runs the mini-game protocol: the client
// sends "start" with the game definition, then "move" messages until the
// session completes or the connection drops.
func (h *MiniGameHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	if !keyMatches(r.URL.Query().Get("apiKey"), h.apiKey) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	var session *minigame.Session
	game := minigame.MiniGame{}
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}

		switch inbound.Type {
		case "start":
			if err := json.Unmarshal(inbound.Payload, &game); err != nil {
				writeWS(conn, "error", errorPayload{Message: "invalid game payload: " + err.Error()})
				continue
			}
			session, err = minigame.NewSession(game, h.maxErrors, rnd)
			if err != nil {
				writeWS(conn, "error", errorPayload{Message: err.Error()})
				continue
			}
			writeWS(conn, "started", startedPayload{GameID: game.ID, Prompts: session.Prompts()})

		case "move":
			if session == nil {
				writeWS(conn, "error", errorPayload{Message: "no game started"})
				continue
			}
			var move movePayload
			if err := json.Unmarshal(inbound.Payload, &move); err != nil {
				writeWS(conn, "error", errorPayload{Message: "invalid move payload"})
				continue
			}
			result, err := h.applyMove(session, game.Type, move)
			if err != nil {
				writeWS(conn, "error", errorPayload{Message: err.Error()})
				continue
			}
			writeWS(conn, "moveResult", result)
			if result.WasReset {
				writeWS(conn, "started", startedPayload{GameID: game.ID, Prompts: session.Prompts()})
			}
			if result.Status == minigame.StatusComplete {
				writeWS(conn, "complete", result)
			}

		case "reset":
			if session == nil {
				writeWS(conn, "error", errorPayload{Message: "no game started"})
				continue
			}
			session.Reset()
			writeWS(conn, "started", startedPayload{GameID: game.ID, Prompts: session.Prompts()})

		default:
			writeWS(conn, "error", errorPayload{Message: "unsupported message type"})
		}
	}
}

func (h *MiniGameHandler) applyMove(session *minigame.Session, gameType minigame.GameType, move movePayload) (minigame.MoveResult, error) {
	switch gameType {
	case minigame.TypeMemory, minigame.TypeAssociation:
		return session.MatchPair(move.Left, move.Right)
	case minigame.TypeOrder:
		return session.SubmitOrder(move.Order)
	case minigame.TypeIntruder:
		return session.PickIntruder(move.Item)
	case minigame.TypeCategorize:
		return session.PlaceItem(move.Item, move.Category)
	}
	return minigame.MoveResult{}, nil
}

func writeWS[T any](conn *websocket.Conn, msgType string, payload T) {
	if err := conn.WriteJSON(outboundMessage[T]{Type: msgType, Payload: payload}); err != nil {
		log.Printf("ws write error: %v", err)
	}
}
