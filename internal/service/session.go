package service

import (
	"encoding/json"
	"sync"

	"github.com/benbeisheim/setachess-backend/internal/model"
	"github.com/benbeisheim/setachess-backend/internal/notation"
	"github.com/benbeisheim/setachess-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
)

// Subscriber receives every state change of a session. *websocket.Conn
// satisfies it.
type Subscriber interface {
	WriteJSON(v interface{}) error
}

// View is what clients see of a session. Seq grows with every state change,
// so a client can discard a view older than one it already has.
type View struct {
	ID     string             `json:"id"`
	Name   string             `json:"name"`
	Seq    uint64             `json:"seq"`
	FEN    string             `json:"fen"`
	Clocks model.ClientClocks `json:"clocks"`
	model.GameState
}

// Session owns one game. All game operations hold mu, so each runs to
// completion before the next starts. Views reach subscribers in the order
// they were produced: sendMu is taken before mu is released.
type Session struct {
	ID   string
	Name string

	mu     sync.Mutex
	seq    uint64
	game   *model.Game
	clocks model.Clocks

	sendMu      sync.Mutex
	subMu       sync.RWMutex
	subscribers map[string]Subscriber
}

func newSession(id, name string) *Session {
	game := model.NewGame()
	return &Session{
		ID:          id,
		Name:        name,
		game:        game,
		clocks:      model.NewClocks(game.ToMove()),
		subscribers: make(map[string]Subscriber),
	}
}

func (s *Session) view() View {
	return View{
		ID:        s.ID,
		Name:      s.Name,
		Seq:       s.seq,
		FEN:       notation.FEN(s.game.Board(), s.game.ToMove()),
		Clocks:    s.clocks.Client(),
		GameState: s.game.State(),
	}
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

// update runs change under mu and, if it succeeds, stamps and publishes the
// resulting view.
func (s *Session) update(change func() error) (View, error) {
	s.mu.Lock()
	if err := change(); err != nil {
		v := s.view()
		s.mu.Unlock()
		return v, err
	}
	s.seq++
	v := s.view()
	s.sendMu.Lock()
	s.mu.Unlock()

	defer s.sendMu.Unlock()
	s.broadcast(v)
	return v, nil
}

func (s *Session) Select(pos model.Position) (model.Outcome, View, error) {
	var outcome model.Outcome
	v, err := s.update(func() error {
		var err error
		outcome, err = s.game.Select(pos)
		if err == nil && outcome == model.Moved {
			s.clocks.Switch(s.game.ToMove())
		}
		return err
	})
	return outcome, v, err
}

func (s *Session) Reset() View {
	v, _ := s.update(func() error {
		s.game.Reset()
		return nil
	})
	return v
}

// NewGame replaces the board wholesale with the starting position.
func (s *Session) NewGame() View {
	v, _ := s.update(func() error {
		s.game = model.NewGame()
		s.restartClocks()
		return nil
	})
	return v
}

func (s *Session) Snapshot() model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Snapshot()
}

// Restore swaps in a loaded snapshot. On error nothing changes and nothing
// is sent.
func (s *Session) Restore(snap model.Snapshot) (View, error) {
	return s.update(func() error {
		if err := s.game.Restore(snap); err != nil {
			return err
		}
		s.restartClocks()
		return nil
	})
}

func (s *Session) restartClocks() {
	s.clocks.White.Stop()
	s.clocks.Black.Stop()
	s.clocks = model.NewClocks(s.game.ToMove())
}

func (s *Session) Subscribe(key string, sub Subscriber) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subscribers[key] = sub
}

func (s *Session) Unsubscribe(key string) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	delete(s.subscribers, key)
}

func (s *Session) SubscriberCount() int {
	s.subMu.RLock()
	defer s.subMu.RUnlock()
	return len(s.subscribers)
}

// broadcast sends the view to every subscriber, dropping those that fail.
// Callers hold sendMu.
func (s *Session) broadcast(v View) {
	payload, err := json.Marshal(v)
	if err != nil {
		log.Errorf("failed to marshal state of game %s: %v", s.ID, err)
		return
	}
	msg := ws.Message{Type: ws.MessageTypeGameState, Payload: payload}

	s.subMu.RLock()
	active := make(map[string]Subscriber, len(s.subscribers))
	for key, sub := range s.subscribers {
		active[key] = sub
	}
	s.subMu.RUnlock()

	for key, sub := range active {
		if err := sub.WriteJSON(msg); err != nil {
			log.Warnf("failed to send state of game %s to %s: %v", s.ID, key, err)
			s.Unsubscribe(key)
		}
	}
}
