package game

import (
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sketchdash/sketchdash-backend/internal"
	"github.com/sketchdash/sketchdash-backend/internal/words"
)

// Registry owns every live room. All game actions go through it so that
// the clock and randomness stay injectable for tests.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*internal.Room

	bank *words.Bank

	// Now and the rng default to the wall clock and a time-seeded source.
	// Tests overwrite them before any room exists.
	Now func() time.Time

	rngMu sync.Mutex
	rng   *rand.Rand

	// RoomListChanged, when set, is invoked (outside any lock) after every
	// change that affects the public room listing.
	RoomListChanged func()
}

func NewRegistry(bank *words.Bank) *Registry {
	return &Registry{
		rooms: make(map[string]*internal.Room),
		bank:  bank,
		Now:   time.Now,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetRand replaces the registry's random source. Callers do this once at
// startup or in tests, before the registry is shared between goroutines.
func (g *Registry) SetRand(rng *rand.Rand) {
	g.rng = rng
}

func (g *Registry) intn(n int) int {
	g.rngMu.Lock()
	defer g.rngMu.Unlock()
	return g.rng.Intn(n)
}

func (g *Registry) pickWords(theme string, count int) []string {
	g.rngMu.Lock()
	defer g.rngMu.Unlock()
	return g.bank.PickWords(g.rng, theme, count)
}

func (g *Registry) Room(roomId string) (*internal.Room, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	room, ok := g.rooms[roomId]
	return room, ok
}

// ListRooms returns a public summary of every room, used by the REST
// listing and the room_list_update broadcast.
func (g *Registry) ListRooms() []internal.RoomInfo {
	g.mu.RLock()
	roomList := make([]*internal.Room, 0, len(g.rooms))
	for _, room := range g.rooms {
		roomList = append(roomList, room)
	}
	g.mu.RUnlock()

	infos := make([]internal.RoomInfo, 0, len(roomList))
	for _, room := range roomList {
		room.Mu.RLock()
		infos = append(infos, internal.RoomInfo{
			RoomId:      room.Id,
			PlayerCount: len(room.Players),
			MaxPlayers:  room.MaxPlayers,
			ScoreTarget: room.ScoreTarget,
			GameStarted: room.Phase.Started(),
			IsLocked:    room.Password != "",
		})
		room.Mu.RUnlock()
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].RoomId < infos[j].RoomId })
	return infos
}

// JoinParams carries everything a connecting client supplies. Room
// settings are only honored when the join creates the room.
type JoinParams struct {
	RoomId      string
	PlayerId    string
	Name        string
	Password    string
	AvatarSeed  string
	MaxPlayers  int
	Theme       string
	ScoreTarget int
}

// JoinOrCreateRoom adds the player to the room, creating it first if it
// does not exist. The first player to ever join becomes the creator.
func (g *Registry) JoinOrCreateRoom(params JoinParams, conn internal.Sink) (*internal.Room, *internal.Player, error) {
	now := g.Now()

	var room *internal.Room
	var exists bool
	for {
		g.mu.Lock()
		room, exists = g.rooms[params.RoomId]
		if !exists {
			room = g.newRoom(params)
			g.rooms[params.RoomId] = room
		}
		g.mu.Unlock()

		room.Mu.Lock()

		// The last player can disconnect between the lookup and the room
		// lock, tearing the room down. Joining that orphan would strand
		// the player in a room the scheduler never scans, so look up
		// again instead.
		g.mu.RLock()
		registered := g.rooms[params.RoomId] == room
		g.mu.RUnlock()
		if registered {
			break
		}
		room.Mu.Unlock()
	}

	if exists {
		if room.Password != "" && room.Password != params.Password {
			room.Mu.Unlock()
			return nil, nil, ErrWrongPassword
		}
		if len(room.Players) >= room.MaxPlayers {
			room.Mu.Unlock()
			return nil, nil, ErrRoomFull
		}
		if room.PlayerById(params.PlayerId) != nil {
			room.Mu.Unlock()
			return nil, nil, ErrAlreadyInRoom
		}
	}

	player := &internal.Player{
		Id:          params.PlayerId,
		Conn:        conn,
		Name:        params.Name,
		AvatarSeed:  params.AvatarSeed,
		Seat:        len(room.Players),
		IsConnected: true,
		JoinedAt:    now,
	}
	if player.AvatarSeed == "" {
		player.AvatarSeed = uuid.NewString()
	}
	room.Players = append(room.Players, player)

	if room.CreatorId == "" {
		room.CreatorId = player.Id
		room.AppendSystemChat(now, player.Name+" created the room. Type /start to begin!", internal.ChatColorGold)
	}
	room.AppendSystemChat(now, player.Name+" joined the room", internal.ChatColorGreen)
	room.Mu.Unlock()

	log.Info().Str("room", room.Id).Str("player", player.Name).Msg("player joined")

	g.broadcastRoomState(room)
	g.notifyRoomList()
	return room, player, nil
}

func (g *Registry) newRoom(params JoinParams) *internal.Room {
	maxPlayers := params.MaxPlayers
	if maxPlayers < internal.MinPlayersToStart || maxPlayers > internal.DefaultMaxPlayers {
		maxPlayers = internal.DefaultMaxPlayers
	}
	theme := params.Theme
	if !g.bank.HasTheme(theme) {
		theme = internal.DefaultTheme
	}
	scoreTarget := params.ScoreTarget
	if scoreTarget <= 0 {
		scoreTarget = internal.DefaultScoreTarget
	}
	return &internal.Room{
		Id:          params.RoomId,
		Password:    params.Password,
		MaxPlayers:  maxPlayers,
		Theme:       theme,
		ScoreTarget: scoreTarget,
		Phase:       internal.PhaseLobby,
		Players:     make([]*internal.Player, 0, maxPlayers),
	}
}

// RemovePlayer takes a player out of the room, handling seat reindexing,
// creator handoff, drawer departure and room teardown. It is the single
// exit path for disconnects and kicks.
func (g *Registry) RemovePlayer(room *internal.Room, playerId string, kicked bool) {
	now := g.Now()

	room.Mu.Lock()
	player := room.PlayerById(playerId)
	if player == nil {
		room.Mu.Unlock()
		return
	}
	seat := player.Seat

	room.Players = append(room.Players[:seat], room.Players[seat+1:]...)
	for i, p := range room.Players {
		p.Seat = i
	}
	for i, id := range room.CorrectGuessers {
		if id == playerId {
			room.CorrectGuessers = append(room.CorrectGuessers[:i], room.CorrectGuessers[i+1:]...)
			break
		}
	}

	wasDrawer := room.Phase.Started() && seat == room.DrawerSeat
	if seat < room.DrawerSeat {
		room.DrawerSeat--
	}

	if kicked {
		room.AppendSystemChat(now, player.Name+" was kicked from the room", internal.ChatColorRed)
	} else {
		room.AppendSystemChat(now, player.Name+" left the room", internal.ChatColorRed)
	}

	if len(room.Players) == 0 {
		room.Mu.Unlock()
		g.mu.Lock()
		delete(g.rooms, room.Id)
		g.mu.Unlock()
		log.Info().Str("room", room.Id).Msg("room deleted, no players left")
		g.notifyRoomList()
		return
	}

	if room.CreatorId == playerId {
		room.CreatorId = room.Players[0].Id
		room.AppendSystemChat(now, room.Players[0].Name+" is now the room creator", internal.ChatColorGold)
	}

	var endsRound, drawerLeft, gameOver bool
	switch {
	case room.Phase.Started() && len(room.Players) < internal.MinPlayersToStart:
		gameOver = true
	case room.Phase == internal.PhaseDrawing && wasDrawer && room.Word != "":
		// Point the drawer seat at the previous seat so the cooldown
		// rotation lands on the player who would have drawn next.
		if seat > 0 {
			room.DrawerSeat = seat - 1
		} else {
			room.DrawerSeat = len(room.Players) - 1
		}
		endsRound = true
		drawerLeft = true
	case wasDrawer && room.Phase == internal.PhaseCooldown:
		// Same predecessor fixup as above: the pending rotation increment
		// must land on the departed drawer's successor, not skip it.
		if seat > 0 {
			room.DrawerSeat = seat - 1
		} else {
			room.DrawerSeat = len(room.Players) - 1
		}
	case wasDrawer:
		room.DrawerSeat = seat % len(room.Players)
	case room.Phase == internal.PhaseDrawing && room.Word != "" && room.AllGuessersFinished():
		endsRound = true
	}
	room.Mu.Unlock()

	log.Info().Str("room", room.Id).Str("player", player.Name).Bool("kicked", kicked).Msg("player removed")

	switch {
	case gameOver:
		g.finishGame(room, "Game ended (not enough players).")
	case endsRound:
		g.endRound(room, drawerLeft)
	}
	g.broadcastRoomState(room)
	g.notifyRoomList()
}

// KickPlayer removes another player on the creator's behalf. The target's
// connection is closed by the gateway once the removal lands.
func (g *Registry) KickPlayer(room *internal.Room, actorId, targetId string) error {
	room.Mu.Lock()
	if room.CreatorId != actorId {
		room.Mu.Unlock()
		return ErrNotCreator
	}
	target := room.PlayerById(targetId)
	if target == nil {
		room.Mu.Unlock()
		return ErrPlayerNotFound
	}
	room.Mu.Unlock()

	target.SendJSON(internal.Message[string]{
		Type: internal.EvtError,
		Data: "you were kicked from the room",
	})
	g.RemovePlayer(room, targetId, true)
	if target.Conn != nil {
		target.Conn.Close()
	}
	return nil
}

func (g *Registry) notifyRoomList() {
	if g.RoomListChanged != nil {
		g.RoomListChanged()
	}
}
