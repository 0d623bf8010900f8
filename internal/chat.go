package internal

import "time"

// Display colors for system chat lines, matching the client palette.
const (
	ChatColorGold  = "gold"
	ChatColorGreen = "green"
	ChatColorRed   = "red"
	ChatColorBlue  = "blue"
)

// ChatEntry is one line of the room's chat/guess log.
type ChatEntry struct {
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	IsSystem  bool      `json:"is_system,omitempty"`
	Color     string    `json:"color,omitempty"`
}

// AppendChat pushes an entry onto the room's log, trimming the oldest lines
// once the ring cap is exceeded.
func (r *Room) AppendChat(entry ChatEntry) {
	r.Chat = append(r.Chat, entry)
	if overflow := len(r.Chat) - ChatLogCap; overflow > 0 {
		r.Chat = append(r.Chat[:0], r.Chat[overflow:]...)
	}
}

// AppendSystemChat appends a system line with an optional display color.
func (r *Room) AppendSystemChat(now time.Time, text, color string) {
	r.AppendChat(ChatEntry{
		Sender:    "System",
		Text:      text,
		Timestamp: now,
		IsSystem:  true,
		Color:     color,
	})
}
