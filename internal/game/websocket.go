package game

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/sketchdash/sketchdash-backend/internal"
)

// Inbound message types accepted on the websocket.
const (
	actChat       = "chat_message"
	actStartGame  = "start_game"
	actSelectWord = "select_word"
	actGiveHint   = "give_hint"
	actDraw       = "draw"
	actKickPlayer = "kick_player"
	actAddBot     = "add_bot"
	actRemoveBot  = "remove_bot"
	actListRooms  = "list_rooms"
)

// Gateway owns the websocket edge: upgrading connections, joining players
// into rooms, decoding inbound frames into registry calls, and fanning the
// public room list out to every live session.
type Gateway struct {
	reg      *Registry
	upgrader websocket.Upgrader

	mu       sync.RWMutex
	sessions map[string]*session
}

func NewGateway(reg *Registry) *Gateway {
	gw := &Gateway{
		reg:      reg,
		sessions: make(map[string]*session),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
	reg.RoomListChanged = gw.BroadcastRoomList
	return gw
}

// session is one live websocket connection. The write mutex serializes
// frames because gorilla/websocket allows only one concurrent writer.
type session struct {
	id   string
	conn *websocket.Conn

	writeMu sync.Mutex
}

func (s *session) SendJSON(v any) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteJSON(v)
}

func (s *session) Close() error {
	return s.conn.Close()
}

// inboundFrame defers payload decoding until the type is known.
type inboundFrame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// HandleWebSocket upgrades the request and runs the connection's read loop
// until the client goes away. The room id comes from the path; player name
// and room settings come from query parameters, the same shape as the
// join form submits them.
func (gw *Gateway) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	roomId := mux.Vars(r)["roomId"]
	query := r.URL.Query()
	name := query.Get("name")
	if roomId == "" || name == "" {
		http.Error(w, "room id and name are required", http.StatusBadRequest)
		return
	}

	conn, err := gw.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	sess := &session{id: uuid.NewString(), conn: conn}

	params := JoinParams{
		RoomId:     roomId,
		PlayerId:   sess.id,
		Name:       name,
		Password:   query.Get("password"),
		AvatarSeed: query.Get("avatar"),
		Theme:      query.Get("theme"),
	}
	if v, err := strconv.Atoi(query.Get("max_players")); err == nil {
		params.MaxPlayers = v
	}
	if v, err := strconv.Atoi(query.Get("score_target")); err == nil {
		params.ScoreTarget = v
	}

	room, player, err := gw.reg.JoinOrCreateRoom(params, sess)
	if err != nil {
		sess.SendJSON(internal.Message[string]{Type: internal.EvtError, Data: err.Error()})
		conn.Close()
		return
	}

	gw.mu.Lock()
	gw.sessions[sess.id] = sess
	gw.mu.Unlock()

	sess.SendJSON(internal.Message[[]internal.RoomInfo]{
		Type: internal.EvtRoomListUpdate,
		Data: gw.reg.ListRooms(),
	})

	gw.readLoop(sess, room, player)
}

func (gw *Gateway) readLoop(sess *session, room *internal.Room, player *internal.Player) {
	defer func() {
		gw.mu.Lock()
		delete(gw.sessions, sess.id)
		gw.mu.Unlock()
		sess.conn.Close()
		gw.reg.RemovePlayer(room, player.Id, false)
	}()

	for {
		_, raw, err := sess.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("player", player.Id).Msg("websocket closed unexpectedly")
			}
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			sess.SendJSON(internal.Message[string]{Type: internal.EvtError, Data: "malformed message"})
			continue
		}
		gw.dispatch(sess, room, player, frame)
	}
}

func (gw *Gateway) dispatch(sess *session, room *internal.Room, player *internal.Player, frame inboundFrame) {
	var err error
	switch frame.Type {
	case actChat:
		var text string
		if err = json.Unmarshal(frame.Data, &text); err == nil {
			err = gw.reg.HandleChat(room, player.Id, text)
		}
	case actStartGame:
		err = gw.reg.StartGame(room, player.Id)
	case actSelectWord:
		var word string
		if err = json.Unmarshal(frame.Data, &word); err == nil {
			err = gw.reg.SelectWord(room, player.Id, word)
		}
	case actGiveHint:
		err = gw.reg.GiveHint(room, player.Id)
	case actDraw:
		var action internal.StrokeAction
		if err = json.Unmarshal(frame.Data, &action); err == nil {
			gw.reg.HandleDraw(room, player.Id, action)
		}
	case actKickPlayer:
		var targetId string
		if err = json.Unmarshal(frame.Data, &targetId); err == nil {
			err = gw.reg.KickPlayer(room, player.Id, targetId)
		}
	case actAddBot:
		err = gw.reg.AddBot(room, player.Id)
	case actRemoveBot:
		var botId string
		if err = json.Unmarshal(frame.Data, &botId); err == nil {
			err = gw.reg.RemoveBot(room, player.Id, botId)
		}
	case actListRooms:
		sess.SendJSON(internal.Message[[]internal.RoomInfo]{
			Type: internal.EvtRoomListUpdate,
			Data: gw.reg.ListRooms(),
		})
	default:
		sess.SendJSON(internal.Message[string]{Type: internal.EvtError, Data: "unknown message type: " + frame.Type})
	}

	// Action errors never tear down the session. Tell the client what went
	// wrong and resend its state so it cannot drift.
	if err != nil {
		sess.SendJSON(internal.Message[string]{Type: internal.EvtError, Data: err.Error()})
		gw.reg.SendRoomState(room, player)
	}
}

// BroadcastRoomList pushes the current public listing to every connected
// session, in rooms or not.
func (gw *Gateway) BroadcastRoomList() {
	msg := internal.Message[[]internal.RoomInfo]{
		Type: internal.EvtRoomListUpdate,
		Data: gw.reg.ListRooms(),
	}

	gw.mu.RLock()
	sessions := make([]*session, 0, len(gw.sessions))
	for _, s := range gw.sessions {
		sessions = append(sessions, s)
	}
	gw.mu.RUnlock()

	for _, s := range sessions {
		if err := s.SendJSON(msg); err != nil {
			log.Warn().Err(err).Str("session", s.id).Msg("room list write failed")
		}
	}
}
