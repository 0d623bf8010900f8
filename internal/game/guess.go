package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sketchdash/sketchdash-backend/internal"
)

// HandleChat processes one chat line from a player. During a drawing phase
// a non-drawer's line doubles as a guess: an exact case-insensitive match
// scores, anything else burns an attempt and lands in chat. "/start" is
// the lobby shortcut for starting the game.
func (g *Registry) HandleChat(room *internal.Room, actorId, text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	if trimmed == "/start" {
		return g.StartGame(room, actorId)
	}

	now := g.Now()

	room.Mu.Lock()
	actor := room.PlayerById(actorId)
	if actor == nil {
		room.Mu.Unlock()
		return ErrPlayerNotFound
	}

	guessing := room.Phase == internal.PhaseDrawing && room.Word != "" && actor.Seat != room.DrawerSeat

	if guessing && strings.EqualFold(trimmed, room.Word) && !room.HasGuessedCorrectly(actorId) {
		payload, allDone := g.scoreCorrectGuessLocked(room, actor, now)
		room.Mu.Unlock()

		broadcastToRoom(room, internal.Message[internal.CorrectGuessData]{
			Type: internal.EvtCorrectGuess,
			Data: payload,
		})
		g.broadcastRoomState(room)
		if allDone {
			g.endRound(room, false)
		}
		return nil
	}

	if guessing {
		if actor.GuessAttempts >= internal.MaxGuessAttempts {
			room.Mu.Unlock()
			return ErrGuessLimitReached
		}
		actor.GuessAttempts++
	}

	room.AppendChat(internal.ChatEntry{
		Sender:    actor.Name,
		Text:      trimmed,
		Timestamp: now,
	})

	endsRound := guessing && room.AllGuessersFinished()
	room.Mu.Unlock()

	g.broadcastRoomState(room)
	if endsRound {
		g.endRound(room, false)
	}
	return nil
}

// scoreCorrectGuessLocked credits a correct guess: the guesser by order and
// elapsed time, the drawer by the delta against the ceil-fraction total.
// Callers hold the room lock. Returns the broadcast payload and whether
// every guesser is now done.
func (g *Registry) scoreCorrectGuessLocked(room *internal.Room, actor *internal.Player, now time.Time) (internal.CorrectGuessData, bool) {
	order := len(room.CorrectGuessers)
	elapsed := internal.RoundDuration - room.RoundDeadline.Sub(now)

	penalty := 0
	switch {
	case elapsed > 45*time.Second:
		penalty = 3
	case elapsed > 30*time.Second:
		penalty = 2
	case elapsed > 15*time.Second:
		penalty = 1
	}

	points := (10 - order) - penalty
	if points < 1 {
		points = 1
	}
	actor.Score += points
	actor.HasGuessed = true
	room.CorrectGuessers = append(room.CorrectGuessers, actor.Id)

	if drawer := room.Drawer(); drawer != nil {
		nonDrawers := room.NonDrawerCount()
		if nonDrawers < 1 {
			nonDrawers = 1
		}
		total := (10*len(room.CorrectGuessers) + nonDrawers - 1) / nonDrawers
		drawer.Score += total - room.DrawerAwarded
		room.DrawerAwarded = total
	}

	room.AppendSystemChat(now, fmt.Sprintf("%s guessed the word! (+%d)", actor.Name, points), internal.ChatColorGreen)

	log.Debug().
		Str("room", room.Id).
		Str("player", actor.Name).
		Int("points", points).
		Int("order", order).
		Msg("correct guess")

	payload := internal.CorrectGuessData{
		PlayerId: actor.Id,
		Name:     actor.Name,
		Points:   points,
		Order:    order,
	}
	return payload, len(room.CorrectGuessers) >= room.NonDrawerCount()
}
