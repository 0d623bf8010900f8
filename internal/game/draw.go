package game

import (
	"github.com/sketchdash/sketchdash-backend/internal"
)

// HandleDraw appends a stroke to the room's log and relays it to everyone,
// the sender included, so all canvases replay the same event stream.
// Strokes from anyone but the current drawer are dropped without an error;
// a stale client spamming strokes after its turn is routine, not abuse.
func (g *Registry) HandleDraw(room *internal.Room, actorId string, action internal.StrokeAction) {
	room.Mu.Lock()
	actor := room.PlayerById(actorId)
	if room.Phase != internal.PhaseDrawing || actor == nil || actor.Seat != room.DrawerSeat {
		room.Mu.Unlock()
		return
	}
	room.Strokes = append(room.Strokes, action)
	room.Mu.Unlock()

	broadcastToRoom(room, internal.Message[internal.StrokeAction]{
		Type: internal.EvtDraw,
		Data: action,
	})
}
