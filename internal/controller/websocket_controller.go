package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/benbeisheim/setachess-backend/internal/service"
	"github.com/benbeisheim/setachess-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// lockedConn serialises writes; broadcasts from other requests share the
// connection with this handler's replies.
type lockedConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (l *lockedConn) WriteJSON(v interface{}) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.conn.WriteJSON(v)
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID, _ := c.Locals("wsGameID").(string)
	connID, _ := c.Locals("wsConnID").(string)
	conn := &lockedConn{conn: c}

	if err := wsc.gameService.Subscribe(gameID, connID, conn); err != nil {
		log.Warnf("failed to register connection %s for game %s: %v", connID, gameID, err)
		c.Close()
		return
	}
	defer wsc.gameService.Unsubscribe(gameID, connID)

	view, err := wsc.gameService.GetGameState(gameID)
	if err != nil {
		return
	}
	if err := conn.WriteJSON(stateMessage(view)); err != nil {
		log.Warnf("failed to send initial state to %s: %v", connID, err)
		return
	}

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugf("connection %s closed: %v", connID, err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			conn.WriteJSON(ws.NewTextMessage(ws.MessageTypeError, "malformed message"))
			continue
		}
		wsc.dispatch(conn, gameID, msg)
	}
}

func (wsc *WebSocketController) dispatch(conn service.Subscriber, gameID string, msg ws.Message) {
	if err := wsc.handleMessage(conn, gameID, msg); err != nil {
		wsc.sendError(conn, err)
	}
}

// handleMessage applies one inbound message. State changes reach conn
// through the session broadcast, so only notices are written here.
func (wsc *WebSocketController) handleMessage(conn service.Subscriber, gameID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeSelect:
		var sel ws.SelectPayload
		if err := json.Unmarshal(msg.Payload, &sel); err != nil {
			return fmt.Errorf("invalid select payload: %w", err)
		}
		if sel.Row == nil || sel.Col == nil {
			return errors.New("invalid select payload: row and col are required")
		}
		pos, err := boardPosition(*sel.Row, *sel.Col)
		if err != nil {
			return err
		}
		_, err = wsc.gameService.Select(gameID, pos)
		return err

	case ws.MessageTypeReset:
		_, err := wsc.gameService.Reset(gameID)
		return err

	case ws.MessageTypeNewGame:
		_, err := wsc.gameService.NewGame(gameID)
		return err

	case ws.MessageTypeSave:
		slot, err := slotOf(msg)
		if err != nil {
			return err
		}
		slot, err = wsc.gameService.Save(context.Background(), gameID, slot)
		if err != nil {
			return err
		}
		return conn.WriteJSON(ws.NewTextMessage(ws.MessageTypeNotice, fmt.Sprintf("saved to %s", slot)))

	case ws.MessageTypeLoad:
		slot, err := slotOf(msg)
		if err != nil {
			return err
		}
		_, err = wsc.gameService.Load(context.Background(), gameID, slot)
		return err
	}
	return fmt.Errorf("unknown message type: %s", msg.Type)
}

// slotOf returns the requested slot, or "" for the default when the payload
// is absent or names no slot.
func slotOf(msg ws.Message) (string, error) {
	var p ws.SlotPayload
	if len(msg.Payload) == 0 || string(msg.Payload) == "null" {
		return "", nil
	}
	if err := json.Unmarshal(msg.Payload, &p); err != nil {
		return "", fmt.Errorf("invalid slot payload: %w", err)
	}
	return p.Slot, nil
}

// sendError reports persistence failures as notices and everything else as
// errors.
func (wsc *WebSocketController) sendError(conn service.Subscriber, err error) {
	t := ws.MessageTypeError
	if errors.Is(err, service.ErrPersistence) {
		t = ws.MessageTypeNotice
	}
	if werr := conn.WriteJSON(ws.NewTextMessage(t, err.Error())); werr != nil {
		log.Warnf("failed to send %s message: %v", t, werr)
	}
}

func stateMessage(view service.View) ws.Message {
	payload, _ := json.Marshal(view)
	return ws.Message{Type: ws.MessageTypeGameState, Payload: payload}
}
