package game

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sketchdash/sketchdash-backend/internal"
)

// DefaultTickInterval is how often the scheduler scans rooms for elapsed
// deadlines. Deadlines are absolute timestamps, so a late tick fires the
// transition late but never skips it.
const DefaultTickInterval = time.Second

// Scheduler drives every time-based transition from a single polling loop.
// Nothing in the game core sleeps or arms timers; phases record absolute
// deadlines and the scheduler fires whichever have elapsed on each tick.
type Scheduler struct {
	reg      *Registry
	interval time.Duration
}

func NewScheduler(reg *Registry) *Scheduler {
	return &Scheduler{reg: reg, interval: DefaultTickInterval}
}

// Run ticks until the context is canceled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Info().Dur("interval", s.interval).Msg("round scheduler running")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("round scheduler stopped")
			return
		case <-ticker.C:
			s.reg.Tick(s.reg.Now())
		}
	}
}

// Tick fires every elapsed deadline across all rooms. Exported so tests
// can step time without the ticker. A room emptied and deleted between the
// snapshot and its transition is harmless: the transitions guard on phase
// and broadcast to whoever is left, which is nobody.
func (g *Registry) Tick(now time.Time) {
	g.mu.RLock()
	rooms := make([]*internal.Room, 0, len(g.rooms))
	for _, room := range g.rooms {
		rooms = append(rooms, room)
	}
	g.mu.RUnlock()

	for _, room := range rooms {
		g.tickRoom(room, now)
	}
}

func (g *Registry) tickRoom(room *internal.Room, now time.Time) {
	room.Mu.Lock()
	var (
		autoSelect bool
		endsRound  bool
		advances   bool
	)
	switch {
	case room.Phase == internal.PhaseSelecting &&
		!room.SelectionDeadline.IsZero() && !now.Before(room.SelectionDeadline):
		room.SelectionDeadline = time.Time{}
		if len(room.WordChoices) > 0 {
			word := room.WordChoices[g.intn(len(room.WordChoices))]
			g.beginDrawingLocked(room, word, now)
			room.AppendSystemChat(now, "Word picked automatically, drawing begins!", internal.ChatColorBlue)
			autoSelect = true
		}
	case room.Phase == internal.PhaseDrawing &&
		!room.RoundDeadline.IsZero() && !now.Before(room.RoundDeadline):
		room.RoundDeadline = time.Time{}
		endsRound = true
	case room.Phase == internal.PhaseCooldown &&
		!room.CooldownDeadline.IsZero() && !now.Before(room.CooldownDeadline):
		advances = true
	}
	room.Mu.Unlock()

	switch {
	case autoSelect:
		log.Debug().Str("room", room.Id).Msg("selection timed out, word auto-picked")
		broadcastToRoom(room, internal.Message[struct{}]{Type: internal.EvtCanvasClear})
		g.broadcastRoomState(room)
	case endsRound:
		g.endRound(room, false)
	case advances:
		g.advanceAfterCooldown(room)
	}
}
