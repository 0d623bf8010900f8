package game

import (
	"github.com/sketchdash/sketchdash-backend/internal"
)

// GiveHint reveals one random hidden letter of the current word. Drawer
// only, mid-drawing only, capped per round.
func (g *Registry) GiveHint(room *internal.Room, actorId string) error {
	now := g.Now()

	room.Mu.Lock()
	drawer := room.Drawer()
	if room.Phase != internal.PhaseDrawing || room.Word == "" || drawer == nil || drawer.Id != actorId {
		room.Mu.Unlock()
		return ErrNotYourTurn
	}
	hidden := internal.UnrevealedPositions(room.Word, room.Revealed)
	if len(hidden) == 0 {
		room.Mu.Unlock()
		return ErrAllLettersRevealed
	}
	if room.HintsGiven >= internal.MaxHintsPerRound {
		room.Mu.Unlock()
		return ErrHintCapReached
	}

	pos := hidden[g.intn(len(hidden))]
	if room.Revealed == nil {
		room.Revealed = make(map[int]bool)
	}
	room.Revealed[pos] = true
	room.HintsGiven++
	room.AppendSystemChat(now, drawer.Name+" revealed a letter!", internal.ChatColorBlue)
	room.Mu.Unlock()

	g.broadcastRoomState(room)
	return nil
}
