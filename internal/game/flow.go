package game

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sketchdash/sketchdash-backend/internal"
)

// StartGame moves the room from the lobby (or post-game screen) into the
// first selection phase. Creator only.
func (g *Registry) StartGame(room *internal.Room, actorId string) error {
	now := g.Now()

	room.Mu.Lock()
	if room.CreatorId != actorId {
		room.Mu.Unlock()
		return ErrNotCreator
	}
	if room.Phase.Started() {
		room.Mu.Unlock()
		return ErrGameAlreadyStarted
	}
	if len(room.Players) < internal.MinPlayersToStart {
		room.Mu.Unlock()
		return ErrNotEnoughPlayers
	}

	for _, p := range room.Players {
		p.Score = 0
	}
	room.DrawerSeat = 0
	room.RoundNumber = 1
	room.AppendSystemChat(now, "Game started! First round beginning...", internal.ChatColorGold)
	g.enterSelectingLocked(room, now)
	room.Mu.Unlock()

	log.Info().Str("room", room.Id).Msg("game started")

	broadcastToRoom(room, internal.Message[struct{}]{Type: internal.EvtCanvasClear})
	g.broadcastRoomState(room)
	g.notifyRoomList()
	return nil
}

// enterSelectingLocked arms a fresh selection phase for the current drawer.
// Callers hold the room lock.
func (g *Registry) enterSelectingLocked(room *internal.Room, now time.Time) {
	room.Phase = internal.PhaseSelecting
	room.ClearWordState()
	room.Strokes = nil
	room.CorrectGuessers = nil
	room.ResetRoundFlags()
	room.WordChoices = g.pickWords(room.Theme, 3)
	room.SelectionDeadline = now.Add(internal.SelectionDuration)
	room.RoundDeadline = time.Time{}
	room.CooldownDeadline = time.Time{}
}

// SelectWord is the drawer committing to one of the offered choices, which
// starts the drawing phase.
func (g *Registry) SelectWord(room *internal.Room, actorId, word string) error {
	now := g.Now()

	room.Mu.Lock()
	drawer := room.Drawer()
	if room.Phase != internal.PhaseSelecting || drawer == nil || drawer.Id != actorId {
		room.Mu.Unlock()
		return ErrNotYourTurn
	}
	valid := false
	for _, choice := range room.WordChoices {
		if choice == word {
			valid = true
			break
		}
	}
	if !valid {
		room.Mu.Unlock()
		return ErrInvalidWordChoice
	}
	g.beginDrawingLocked(room, word, now)
	room.AppendSystemChat(now, drawer.Name+" is drawing now!", internal.ChatColorBlue)
	room.Mu.Unlock()

	broadcastToRoom(room, internal.Message[struct{}]{Type: internal.EvtCanvasClear})
	g.broadcastRoomState(room)
	return nil
}

// beginDrawingLocked commits the word and arms the round timer. Callers
// hold the room lock.
func (g *Registry) beginDrawingLocked(room *internal.Room, word string, now time.Time) {
	room.Phase = internal.PhaseDrawing
	room.Word = word
	room.WordChoices = nil
	room.Revealed = make(map[int]bool)
	room.HintsGiven = 0
	room.DrawerAwarded = 0
	room.Strokes = nil
	room.CorrectGuessers = nil
	room.ResetRoundFlags()
	room.SelectionDeadline = time.Time{}
	room.RoundDeadline = now.Add(internal.RoundDuration)
}

// endRound closes a drawing phase: reveal the word, settle the drawer's
// consolation if nobody guessed, and enter cooldown. Safe to call from both
// the guess path and the scheduler; whoever loses the race no-ops on the
// phase guard. drawerLeft suppresses the consolation because the seat now
// points at a player who never drew.
func (g *Registry) endRound(room *internal.Room, drawerLeft bool) {
	now := g.Now()

	room.Mu.Lock()
	if room.Phase != internal.PhaseDrawing {
		room.Mu.Unlock()
		return
	}
	if len(room.Players) < internal.MinPlayersToStart {
		room.Mu.Unlock()
		g.finishGame(room, "Game ended (not enough players).")
		return
	}

	if !drawerLeft && len(room.CorrectGuessers) == 0 && room.NonDrawerCount() > 0 {
		g.awardConsolationLocked(room, now)
	}

	word := room.Word
	room.Phase = internal.PhaseCooldown
	room.RoundDeadline = time.Time{}
	room.SelectionDeadline = time.Time{}
	room.CooldownDeadline = now.Add(internal.CooldownDuration)
	room.AppendSystemChat(now, "The word was: "+word, internal.ChatColorBlue)
	payload := internal.RoundEndData{
		Word:   word,
		Scores: scoreboardLocked(room),
	}
	room.Mu.Unlock()

	log.Debug().Str("room", room.Id).Str("word", word).Msg("round ended")

	broadcastToRoom(room, internal.Message[internal.RoundEndData]{
		Type: internal.EvtRoundEnd,
		Data: payload,
	})
	g.broadcastRoomState(room)
}

// awardConsolationLocked credits the drawer when the round ends with zero
// correct guesses. Harder words draw more attempts, so the bonus scales
// with the average attempt count. Callers hold the room lock.
func (g *Registry) awardConsolationLocked(room *internal.Room, now time.Time) {
	drawer := room.Drawer()
	if drawer == nil {
		return
	}
	totalAttempts := 0
	for seat, p := range room.Players {
		if seat == room.DrawerSeat {
			continue
		}
		totalAttempts += p.GuessAttempts
	}
	avg := float64(totalAttempts) / float64(room.NonDrawerCount())
	bonus := int(math.Ceil(3 + avg/5*2))
	drawer.Score += bonus
	room.AppendSystemChat(now, fmt.Sprintf("%s earned %d points for drawing!", drawer.Name, bonus), internal.ChatColorGold)
}

// advanceAfterCooldown rotates the drawer seat and either starts the next
// selection phase or ends the game when someone has hit the score target.
func (g *Registry) advanceAfterCooldown(room *internal.Room) {
	now := g.Now()

	room.Mu.Lock()
	if room.Phase != internal.PhaseCooldown {
		room.Mu.Unlock()
		return
	}
	room.CooldownDeadline = time.Time{}
	if len(room.Players) < internal.MinPlayersToStart {
		room.Mu.Unlock()
		g.finishGame(room, "Game ended (not enough players).")
		return
	}

	var winner *internal.Player
	for _, p := range room.Players {
		if p.Score >= room.ScoreTarget {
			winner = p
			break
		}
	}
	if winner != nil {
		room.Mu.Unlock()
		g.finishGame(room, fmt.Sprintf("Game Over! %s reached the target score!", winner.Name))
		return
	}

	room.DrawerSeat = (room.DrawerSeat + 1) % len(room.Players)
	room.RoundNumber++
	g.enterSelectingLocked(room, now)
	room.Mu.Unlock()

	broadcastToRoom(room, internal.Message[struct{}]{Type: internal.EvtCanvasClear})
	g.broadcastRoomState(room)
}

// finishGame puts the room on the post-game screen and resets it so the
// creator can /start again. reasonPrefix is the human-readable cause shown
// in chat and the game_over payload.
func (g *Registry) finishGame(room *internal.Room, reasonPrefix string) {
	now := g.Now()

	room.Mu.Lock()
	if !room.Phase.Started() {
		room.Mu.Unlock()
		return
	}
	payload := internal.GameOverData{
		Winners: scoreboardLocked(room),
		Reason:  reasonPrefix,
	}
	host := ""
	if len(room.Players) > 0 {
		host = room.Players[0].Name
	}
	room.AppendSystemChat(now, fmt.Sprintf("%s %s can type /start to play again!", reasonPrefix, host), internal.ChatColorGold)

	room.Phase = internal.PhaseGameOver
	room.ClearWordState()
	room.Strokes = nil
	room.CorrectGuessers = nil
	room.RoundNumber = 0
	room.DrawerSeat = 0
	room.SelectionDeadline = time.Time{}
	room.RoundDeadline = time.Time{}
	room.CooldownDeadline = time.Time{}
	room.ResetRoundFlags()
	for _, p := range room.Players {
		p.Score = 0
	}
	room.Mu.Unlock()

	log.Info().Str("room", room.Id).Str("reason", reasonPrefix).Msg("game over")

	broadcastToRoom(room, internal.Message[struct{}]{Type: internal.EvtCanvasClear})
	broadcastToRoom(room, internal.Message[internal.GameOverData]{
		Type: internal.EvtGameOver,
		Data: payload,
	})
	g.broadcastRoomState(room)
	g.notifyRoomList()
}
