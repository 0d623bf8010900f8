package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sketchdash/sketchdash-backend/internal"
)

func TestTickOnDeletedRoomIsNoOp(t *testing.T) {
	reg, clock := newTestRegistry(t)
	players, _ := joinPlayers(t, reg, "alpha", 2)
	room, _ := reg.Room("alpha")
	startDrawing(t, reg, room)

	reg.RemovePlayer(room, players[0].Id, false)
	reg.RemovePlayer(room, players[1].Id, false)
	_, ok := reg.Room("alpha")
	require.False(t, ok)

	// Deadlines that were armed before deletion must not resurrect anything.
	clock.Advance(internal.RoundDuration + internal.CooldownDuration)
	reg.Tick(clock.Now())
	require.Empty(t, reg.ListRooms())
}

func TestLateTickStillFires(t *testing.T) {
	reg, clock := newTestRegistry(t)
	joinPlayers(t, reg, "alpha", 2)
	room, _ := reg.Room("alpha")
	startDrawing(t, reg, room)

	// A stalled scheduler catching up long after the deadline still ends
	// the round exactly once.
	clock.Advance(internal.RoundDuration + 30*time.Second)
	reg.Tick(clock.Now())
	require.Equal(t, internal.PhaseCooldown, roomPhase(room))
}

func TestTickScansAllRooms(t *testing.T) {
	reg, clock := newTestRegistry(t)
	joinPlayers(t, reg, "alpha", 2)
	alpha, _ := reg.Room("alpha")
	startDrawing(t, reg, alpha)

	for i := 0; i < 2; i++ {
		sink := &fakeSink{}
		_, _, err := reg.JoinOrCreateRoom(JoinParams{RoomId: "beta", PlayerId: playerId(i + 4), Name: "b"}, sink)
		require.NoError(t, err)
	}
	beta, _ := reg.Room("beta")
	require.NoError(t, reg.StartGame(beta, beta.CreatorId))

	clock.Advance(internal.SelectionDuration)
	reg.Tick(clock.Now())

	// beta's selection timed out; alpha is mid-round and untouched.
	require.Equal(t, internal.PhaseDrawing, roomPhase(beta))
	require.Equal(t, internal.PhaseDrawing, roomPhase(alpha))
}
