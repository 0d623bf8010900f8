package game

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sketchdash/sketchdash-backend/internal"
)

func TestStartGameGating(t *testing.T) {
	reg, _ := newTestRegistry(t)
	players, _ := joinPlayers(t, reg, "alpha", 1)
	room, _ := reg.Room("alpha")

	assert.ErrorIs(t, reg.StartGame(room, players[0].Id), ErrNotEnoughPlayers)

	_, _, err := reg.JoinOrCreateRoom(JoinParams{RoomId: "alpha", PlayerId: "p2", Name: "p2"}, &fakeSink{})
	require.NoError(t, err)

	assert.ErrorIs(t, reg.StartGame(room, "p2"), ErrNotCreator)

	require.NoError(t, reg.StartGame(room, players[0].Id))
	assert.ErrorIs(t, reg.StartGame(room, players[0].Id), ErrGameAlreadyStarted)
}

func TestStartGameEntersSelecting(t *testing.T) {
	reg, clock := newTestRegistry(t)
	players, _ := joinPlayers(t, reg, "alpha", 3)
	room, _ := reg.Room("alpha")
	players[1].Score = 40

	require.NoError(t, reg.StartGame(room, players[0].Id))

	room.Mu.RLock()
	defer room.Mu.RUnlock()
	assert.Equal(t, internal.PhaseSelecting, room.Phase)
	assert.Equal(t, 0, room.DrawerSeat)
	assert.Equal(t, 1, room.RoundNumber)
	assert.Len(t, room.WordChoices, 3)
	assert.Empty(t, room.Word)
	assert.Equal(t, clock.Now().Add(internal.SelectionDuration), room.SelectionDeadline)
	assert.Equal(t, 0, players[1].Score)
}

func TestStartGameViaChatCommand(t *testing.T) {
	reg, _ := newTestRegistry(t)
	players, sinks := joinPlayers(t, reg, "alpha", 2)
	room, _ := reg.Room("alpha")

	assert.ErrorIs(t, reg.HandleChat(room, players[1].Id, "/start"), ErrNotCreator)
	require.NoError(t, reg.HandleChat(room, players[0].Id, "/start"))
	assert.Equal(t, internal.PhaseSelecting, roomPhase(room))
	assert.Equal(t, 1, sinks[1].countEvent(internal.EvtCanvasClear))
}

func TestSelectWordStartsDrawing(t *testing.T) {
	reg, clock := newTestRegistry(t)
	players, _ := joinPlayers(t, reg, "alpha", 2)
	room, _ := reg.Room("alpha")
	require.NoError(t, reg.StartGame(room, players[0].Id))

	room.Mu.RLock()
	choices := append([]string(nil), room.WordChoices...)
	room.Mu.RUnlock()

	assert.ErrorIs(t, reg.SelectWord(room, players[1].Id, choices[0]), ErrNotYourTurn)
	assert.ErrorIs(t, reg.SelectWord(room, players[0].Id, "not-a-choice"), ErrInvalidWordChoice)

	require.NoError(t, reg.SelectWord(room, players[0].Id, choices[1]))

	room.Mu.RLock()
	defer room.Mu.RUnlock()
	assert.Equal(t, internal.PhaseDrawing, room.Phase)
	assert.Equal(t, choices[1], room.Word)
	assert.Empty(t, room.WordChoices)
	assert.True(t, room.SelectionDeadline.IsZero())
	assert.Equal(t, clock.Now().Add(internal.RoundDuration), room.RoundDeadline)
}

func TestSelectionTimeoutAutoPicks(t *testing.T) {
	reg, clock := newTestRegistry(t)
	players, _ := joinPlayers(t, reg, "alpha", 2)
	room, _ := reg.Room("alpha")
	require.NoError(t, reg.StartGame(room, players[0].Id))

	clock.Advance(internal.SelectionDuration - time.Second)
	reg.Tick(clock.Now())
	assert.Equal(t, internal.PhaseSelecting, roomPhase(room))

	clock.Advance(time.Second)
	reg.Tick(clock.Now())

	room.Mu.RLock()
	defer room.Mu.RUnlock()
	assert.Equal(t, internal.PhaseDrawing, room.Phase)
	assert.NotEmpty(t, room.Word)
	assert.Empty(t, room.WordChoices)
}

func TestRoundTimeoutEntersCooldown(t *testing.T) {
	reg, clock := newTestRegistry(t)
	_, sinks := joinPlayers(t, reg, "alpha", 2)
	room, _ := reg.Room("alpha")
	word := startDrawing(t, reg, room)

	clock.Advance(internal.RoundDuration)
	reg.Tick(clock.Now())

	assert.Equal(t, internal.PhaseCooldown, roomPhase(room))

	raw, ok := sinks[1].lastFrame(internal.EvtRoundEnd)
	require.True(t, ok)
	var payload internal.RoundEndData
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, word, payload.Word)

	// The very next tick must not fire the round end again.
	before := sinks[1].countEvent(internal.EvtRoundEnd)
	reg.Tick(clock.Now())
	assert.Equal(t, before, sinks[1].countEvent(internal.EvtRoundEnd))
}

func TestCooldownAdvancesRotation(t *testing.T) {
	reg, clock := newTestRegistry(t)
	players, _ := joinPlayers(t, reg, "alpha", 3)
	room, _ := reg.Room("alpha")
	startDrawing(t, reg, room)
	players[1].GuessAttempts = 3

	clock.Advance(internal.RoundDuration)
	reg.Tick(clock.Now())
	require.Equal(t, internal.PhaseCooldown, roomPhase(room))

	clock.Advance(internal.CooldownDuration)
	reg.Tick(clock.Now())

	room.Mu.RLock()
	defer room.Mu.RUnlock()
	assert.Equal(t, internal.PhaseSelecting, room.Phase)
	assert.Equal(t, 1, room.DrawerSeat)
	assert.Equal(t, 2, room.RoundNumber)
	assert.Len(t, room.WordChoices, 3)
	assert.Empty(t, room.Strokes)
	assert.Equal(t, 0, players[1].GuessAttempts)
	assert.False(t, players[1].HasGuessed)
}

func TestScoreTargetEndsGame(t *testing.T) {
	reg, clock := newTestRegistry(t)
	players, sinks := joinPlayers(t, reg, "alpha", 2)
	room, _ := reg.Room("alpha")
	startDrawing(t, reg, room)

	room.Mu.Lock()
	players[1].Score = room.ScoreTarget
	room.Mu.Unlock()

	clock.Advance(internal.RoundDuration)
	reg.Tick(clock.Now())
	clock.Advance(internal.CooldownDuration)
	reg.Tick(clock.Now())

	assert.Equal(t, internal.PhaseGameOver, roomPhase(room))

	raw, ok := sinks[0].lastFrame(internal.EvtGameOver)
	require.True(t, ok)
	var payload internal.GameOverData
	require.NoError(t, json.Unmarshal(raw, &payload))
	require.Len(t, payload.Winners, 2)
	assert.Equal(t, "p2", payload.Winners[0].Name)
	assert.GreaterOrEqual(t, payload.Winners[0].Score, payload.Winners[1].Score)
	assert.Contains(t, payload.Reason, "p2")

	room.Mu.RLock()
	assert.Equal(t, 0, room.RoundNumber)
	assert.Equal(t, 0, players[0].Score)
	assert.Equal(t, 0, players[1].Score)
	room.Mu.RUnlock()

	// Creator can restart straight from the post-game screen.
	require.NoError(t, reg.StartGame(room, players[0].Id))
	assert.Equal(t, internal.PhaseSelecting, roomPhase(room))
}

func TestGameOverWhenTooFewPlayersRemain(t *testing.T) {
	reg, _ := newTestRegistry(t)
	players, sinks := joinPlayers(t, reg, "alpha", 2)
	room, _ := reg.Room("alpha")
	startDrawing(t, reg, room)

	reg.RemovePlayer(room, players[1].Id, false)

	assert.Equal(t, internal.PhaseGameOver, roomPhase(room))
	assert.Equal(t, 1, sinks[0].countEvent(internal.EvtGameOver))
}

func TestDrawerLeavingEndsRoundAndFixesRotation(t *testing.T) {
	reg, clock := newTestRegistry(t)
	players, _ := joinPlayers(t, reg, "alpha", 3)
	room, _ := reg.Room("alpha")
	startDrawing(t, reg, room)

	reg.RemovePlayer(room, players[0].Id, false)

	room.Mu.RLock()
	assert.Equal(t, internal.PhaseCooldown, room.Phase)
	assert.Equal(t, 1, room.DrawerSeat)
	room.Mu.RUnlock()

	clock.Advance(internal.CooldownDuration)
	reg.Tick(clock.Now())

	// Rotation lands on the departed drawer's successor.
	room.Mu.RLock()
	defer room.Mu.RUnlock()
	assert.Equal(t, internal.PhaseSelecting, room.Phase)
	assert.Equal(t, 0, room.DrawerSeat)
	assert.Equal(t, "p2", room.Drawer().Id)
}

func TestDrawerLeavingGrantsNoConsolation(t *testing.T) {
	reg, _ := newTestRegistry(t)
	players, _ := joinPlayers(t, reg, "alpha", 3)
	room, _ := reg.Room("alpha")
	startDrawing(t, reg, room)
	players[1].GuessAttempts = 4

	reg.RemovePlayer(room, players[0].Id, false)

	room.Mu.RLock()
	defer room.Mu.RUnlock()
	for _, p := range room.Players {
		assert.Equal(t, 0, p.Score)
	}
}

func TestDrawerLeavingDuringCooldownKeepsRotationOrder(t *testing.T) {
	reg, clock := newTestRegistry(t)
	players, _ := joinPlayers(t, reg, "alpha", 3)
	room, _ := reg.Room("alpha")
	startDrawing(t, reg, room)

	clock.Advance(internal.RoundDuration)
	reg.Tick(clock.Now())
	require.Equal(t, internal.PhaseCooldown, roomPhase(room))

	reg.RemovePlayer(room, players[0].Id, false)

	room.Mu.RLock()
	assert.Equal(t, 1, room.DrawerSeat)
	room.Mu.RUnlock()

	clock.Advance(internal.CooldownDuration)
	reg.Tick(clock.Now())

	// p2 was next in the rotation before p1 left; it still draws next.
	room.Mu.RLock()
	defer room.Mu.RUnlock()
	require.Equal(t, internal.PhaseSelecting, room.Phase)
	assert.Equal(t, "p2", room.Drawer().Id)
}

func TestNonDrawerLeavingMidSelectingKeepsDrawer(t *testing.T) {
	reg, _ := newTestRegistry(t)
	players, _ := joinPlayers(t, reg, "alpha", 3)
	room, _ := reg.Room("alpha")
	require.NoError(t, reg.StartGame(room, players[0].Id))

	reg.RemovePlayer(room, players[1].Id, false)

	room.Mu.RLock()
	defer room.Mu.RUnlock()
	assert.Equal(t, internal.PhaseSelecting, room.Phase)
	assert.Equal(t, 0, room.DrawerSeat)
	assert.Equal(t, "p1", room.Drawer().Id)
}
