package internal

import "time"

// Player is owned exclusively by its Room and destroyed on leave or kick.
// Conn is nil for bots.
type Player struct {
	Id         string `json:"id"`
	Conn       Sink   `json:"-"`
	Name       string `json:"name"`
	AvatarSeed string `json:"avatar_seed"`

	Seat  int  `json:"seat"`
	IsBot bool `json:"is_bot"`

	Score         int  `json:"score"`
	HasGuessed    bool `json:"has_guessed"`
	GuessAttempts int  `json:"guess_attempts"`

	IsConnected bool      `json:"is_connected"`
	JoinedAt    time.Time `json:"joined_at"`
}

// PublicPlayer is the value snapshot of a Player carried by state updates.
// Snapshots are taken while the room lock is held, so encoding them later
// never reads live player fields.
type PublicPlayer struct {
	Id            string `json:"id"`
	Name          string `json:"name"`
	AvatarSeed    string `json:"avatar_seed"`
	Seat          int    `json:"seat"`
	IsBot         bool   `json:"is_bot"`
	Score         int    `json:"score"`
	HasGuessed    bool   `json:"has_guessed"`
	GuessAttempts int    `json:"guess_attempts"`
	IsConnected   bool   `json:"is_connected"`
}

// ToPublic copies the player's shareable fields into a snapshot.
func (p *Player) ToPublic() PublicPlayer {
	return PublicPlayer{
		Id:            p.Id,
		Name:          p.Name,
		AvatarSeed:    p.AvatarSeed,
		Seat:          p.Seat,
		IsBot:         p.IsBot,
		Score:         p.Score,
		HasGuessed:    p.HasGuessed,
		GuessAttempts: p.GuessAttempts,
		IsConnected:   p.IsConnected,
	}
}

// SendJSON writes to the player's connection; a nil connection (bot) is a
// no-op.
func (p *Player) SendJSON(v any) error {
	if p.Conn == nil {
		return nil
	}
	return p.Conn.SendJSON(v)
}

// ScoreEntry is one scoreboard line in round-end and game-over summaries.
type ScoreEntry struct {
	Name       string `json:"name"`
	Score      int    `json:"score"`
	AvatarSeed string `json:"avatar_seed,omitempty"`
}
