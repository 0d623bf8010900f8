package game

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sketchdash/sketchdash-backend/internal"
	"github.com/sketchdash/sketchdash-backend/internal/words"
)

// fakeSink records every outbound frame the way a websocket would see it,
// as a type tag plus raw JSON payload.
type fakeSink struct {
	mu     sync.Mutex
	frames []frame
	closed bool
}

type frame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func (f *fakeSink) SendJSON(v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var fr frame
	if err := json.Unmarshal(raw, &fr); err != nil {
		return err
	}
	f.mu.Lock()
	f.frames = append(f.frames, fr)
	f.mu.Unlock()
	return nil
}

func (f *fakeSink) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	return nil
}

func (f *fakeSink) eventTypes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	types := make([]string, 0, len(f.frames))
	for _, fr := range f.frames {
		types = append(types, fr.Type)
	}
	return types
}

func (f *fakeSink) countEvent(eventType string) int {
	n := 0
	for _, t := range f.eventTypes() {
		if t == eventType {
			n++
		}
	}
	return n
}

func (f *fakeSink) lastFrame(eventType string) (json.RawMessage, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.frames) - 1; i >= 0; i-- {
		if f.frames[i].Type == eventType {
			return f.frames[i].Data, true
		}
	}
	return nil, false
}

// fakeClock makes the registry's time fully test-controlled.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func testBank() *words.Bank {
	return words.NewBank(map[string][]string{
		"general": {"apple", "bridge", "candle", "dragon", "engine", "falcon"},
	}, "general")
}

func newTestRegistry(t *testing.T) (*Registry, *fakeClock) {
	t.Helper()
	reg := NewRegistry(testBank())
	clock := newFakeClock()
	reg.Now = clock.Now
	reg.SetRand(rand.New(rand.NewSource(7)))
	return reg, clock
}

// joinPlayers seats n players named p1..pN in the given room and returns
// them alongside their sinks, indexed identically.
func joinPlayers(t *testing.T, reg *Registry, roomId string, n int) ([]*internal.Player, []*fakeSink) {
	t.Helper()
	players := make([]*internal.Player, n)
	sinks := make([]*fakeSink, n)
	for i := 0; i < n; i++ {
		sinks[i] = &fakeSink{}
		_, p, err := reg.JoinOrCreateRoom(JoinParams{
			RoomId:   roomId,
			PlayerId: playerId(i),
			Name:     playerId(i),
		}, sinks[i])
		require.NoError(t, err)
		players[i] = p
	}
	return players, sinks
}

func playerId(i int) string {
	return fmt.Sprintf("p%d", i+1)
}

// startDrawing walks a room from the lobby into a drawing phase: start the
// game and have the drawer pick the first offered word. Returns the word.
func startDrawing(t *testing.T, reg *Registry, room *internal.Room) string {
	t.Helper()
	require.NoError(t, reg.StartGame(room, room.CreatorId))

	room.Mu.RLock()
	require.Equal(t, internal.PhaseSelecting, room.Phase)
	drawer := room.Drawer()
	choice := room.WordChoices[0]
	room.Mu.RUnlock()

	require.NoError(t, reg.SelectWord(room, drawer.Id, choice))
	return choice
}

func roomPhase(room *internal.Room) internal.GamePhase {
	room.Mu.RLock()
	defer room.Mu.RUnlock()
	return room.Phase
}
