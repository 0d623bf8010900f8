package game

import (
	"fmt"

	"github.com/sketchdash/sketchdash-backend/internal"
)

// AddBot seats a passive filler player. Creator only, lobby only. Bots
// never guess or draw; they exist so small groups can test rooms and pad
// the drawer rotation.
func (g *Registry) AddBot(room *internal.Room, actorId string) error {
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
	if len(room.Players) >= room.MaxPlayers {
		room.Mu.Unlock()
		return ErrRoomFull
	}

	bot := &internal.Player{
		Id:          fmt.Sprintf("bot-%d-%d", now.UnixMilli(), len(room.Players)),
		Name:        fmt.Sprintf("Bot %d", len(room.Players)+1),
		AvatarSeed:  fmt.Sprintf("bot-%d", len(room.Players)+1),
		Seat:        len(room.Players),
		IsBot:       true,
		IsConnected: true,
		JoinedAt:    now,
	}
	room.Players = append(room.Players, bot)
	room.AppendSystemChat(now, bot.Name+" joined the room", internal.ChatColorGreen)
	room.Mu.Unlock()

	g.broadcastRoomState(room)
	g.notifyRoomList()
	return nil
}

// RemoveBot unseats a bot and reindexes the remaining seats. Creator only,
// lobby only.
func (g *Registry) RemoveBot(room *internal.Room, actorId, botId string) error {
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
	bot := room.PlayerById(botId)
	if bot == nil || !bot.IsBot {
		room.Mu.Unlock()
		return ErrBotNotFound
	}

	room.Players = append(room.Players[:bot.Seat], room.Players[bot.Seat+1:]...)
	for i, p := range room.Players {
		p.Seat = i
	}
	room.AppendSystemChat(now, bot.Name+" left the room", internal.ChatColorRed)
	room.Mu.Unlock()

	g.broadcastRoomState(room)
	g.notifyRoomList()
	return nil
}
