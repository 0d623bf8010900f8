package game

import (
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/sketchdash/sketchdash-backend/internal"
)

// broadcastToRoom fans a message out to every connected player. The sink
// list is snapshotted under the read lock so writes happen lock-free.
func broadcastToRoom[T any](room *internal.Room, msg internal.Message[T]) {
	room.Mu.RLock()
	sinks := make([]internal.Sink, 0, len(room.Players))
	for _, p := range room.Players {
		if p.Conn != nil {
			sinks = append(sinks, p.Conn)
		}
	}
	room.Mu.RUnlock()

	for _, sink := range sinks {
		if err := sink.SendJSON(msg); err != nil {
			log.Warn().Err(err).Str("room", room.Id).Str("event", msg.Type).Msg("broadcast write failed")
		}
	}
}

// broadcastRoomState sends each connected player its own masked snapshot.
func (g *Registry) broadcastRoomState(room *internal.Room) {
	type delivery struct {
		sink internal.Sink
		msg  internal.Message[internal.RoomStateData]
	}

	room.Mu.RLock()
	deliveries := make([]delivery, 0, len(room.Players))
	for _, p := range room.Players {
		if p.Conn == nil {
			continue
		}
		deliveries = append(deliveries, delivery{
			sink: p.Conn,
			msg: internal.Message[internal.RoomStateData]{
				Type: internal.EvtStateUpdate,
				Data: buildStateLocked(room, p),
			},
		})
	}
	room.Mu.RUnlock()

	for _, d := range deliveries {
		if err := d.sink.SendJSON(d.msg); err != nil {
			log.Warn().Err(err).Str("room", room.Id).Msg("state update write failed")
		}
	}
}

// SendRoomState pushes a fresh masked snapshot to a single player, used to
// resync a client after a rejected action.
func (g *Registry) SendRoomState(room *internal.Room, player *internal.Player) {
	room.Mu.RLock()
	msg := internal.Message[internal.RoomStateData]{
		Type: internal.EvtStateUpdate,
		Data: buildStateLocked(room, player),
	}
	room.Mu.RUnlock()

	if err := player.SendJSON(msg); err != nil {
		log.Warn().Err(err).Str("room", room.Id).Str("player", player.Id).Msg("state resync write failed")
	}
}

// buildStateLocked assembles the snapshot for one recipient. Callers hold
// the room lock. The secret word goes out only to the drawer while a game
// is running; everyone else reads the hint pattern.
func buildStateLocked(r *internal.Room, recipient *internal.Player) internal.RoomStateData {
	word := r.Word
	if r.Phase.Started() && r.Word != "" && (recipient == nil || recipient.Seat != r.DrawerSeat) {
		word = ""
	}

	players := make([]internal.PublicPlayer, 0, len(r.Players))
	for _, p := range r.Players {
		players = append(players, p.ToPublic())
	}

	state := internal.RoomStateData{
		RoomId:          r.Id,
		Phase:           r.Phase,
		CreatorId:       r.CreatorId,
		MaxPlayers:      r.MaxPlayers,
		Theme:           r.Theme,
		ScoreTarget:     r.ScoreTarget,
		IsLocked:        r.Password != "",
		Players:         players,
		Chat:            append([]internal.ChatEntry(nil), r.Chat...),
		DrawerSeat:      r.DrawerSeat,
		RoundNumber:     r.RoundNumber,
		Word:            word,
		HintPattern:     r.HintPattern(),
		WordChoices:     append([]string(nil), r.WordChoices...),
		HintsGiven:      r.HintsGiven,
		CorrectGuessers: append([]string(nil), r.CorrectGuessers...),
		Strokes:         append([]internal.StrokeAction(nil), r.Strokes...),
	}
	if !r.SelectionDeadline.IsZero() {
		state.SelectionEndsAt = r.SelectionDeadline.UnixMilli()
	}
	if !r.RoundDeadline.IsZero() {
		state.RoundEndsAt = r.RoundDeadline.UnixMilli()
	}
	return state
}

// scoreboardLocked returns the scoreboard sorted by score descending, ties
// broken by join order. Callers hold the room lock.
func scoreboardLocked(r *internal.Room) []internal.ScoreEntry {
	entries := make([]internal.ScoreEntry, 0, len(r.Players))
	for _, p := range r.Players {
		entries = append(entries, internal.ScoreEntry{
			Name:       p.Name,
			Score:      p.Score,
			AvatarSeed: p.AvatarSeed,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Score > entries[j].Score })
	return entries
}
