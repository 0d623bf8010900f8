package internal

import (
	"sync"
	"time"
)

const (
	SelectionDuration = 20 * time.Second
	RoundDuration     = 80 * time.Second
	CooldownDuration  = 5 * time.Second

	MaxHintsPerRound  = 2
	MaxGuessAttempts  = 5
	MinPlayersToStart = 2

	DefaultMaxPlayers  = 8
	DefaultScoreTarget = 120
	DefaultTheme       = "general"

	// Chat log is a ring; joiners replay at most this many entries.
	ChatLogCap = 200
)

type GamePhase string

const (
	PhaseLobby     GamePhase = "lobby"
	PhaseSelecting GamePhase = "selecting"
	PhaseDrawing   GamePhase = "drawing"
	PhaseCooldown  GamePhase = "cooldown"
	PhaseGameOver  GamePhase = "game_over"
)

// Started reports whether a game is in progress, i.e. the phase is neither
// the lobby nor the post-game screen.
func (p GamePhase) Started() bool {
	return p != PhaseLobby && p != PhaseGameOver
}

// Room is one independent game instance. All fields are guarded by Mu; the
// game package locks at the operation level and never inside helpers.
type Room struct {
	Id        string `json:"room_id"`
	Password  string `json:"-"`
	CreatorId string `json:"creator_id"`

	// Settings, fixed at creation by the first joiner.
	MaxPlayers  int    `json:"max_players"`
	Theme       string `json:"theme"`
	ScoreTarget int    `json:"score_target"`

	// Join order; a player's seat index always equals its slice position.
	Players []*Player   `json:"players"`
	Chat    []ChatEntry `json:"chat"`

	Phase       GamePhase `json:"phase"`
	DrawerSeat  int       `json:"drawer_seat"`
	RoundNumber int       `json:"round_number"`

	// Exactly one of Word / WordChoices is non-empty outside the lobby.
	Word        string       `json:"-"`
	WordChoices []string     `json:"word_choices,omitempty"`
	Revealed    map[int]bool `json:"-"`
	HintsGiven  int          `json:"hints_given"`

	// Last drawer credit applied this round, so each correct guess only
	// applies the delta against the ceil-fraction total.
	DrawerAwarded int `json:"-"`

	SelectionDeadline time.Time `json:"-"`
	RoundDeadline     time.Time `json:"-"`
	CooldownDeadline  time.Time `json:"-"`

	Strokes         []StrokeAction `json:"-"`
	CorrectGuessers []string       `json:"correct_guessers"`

	Mu sync.RWMutex `json:"-"`
}

// RoomInfo is the public listing entry for the lobby browser.
type RoomInfo struct {
	RoomId      string `json:"room_id"`
	PlayerCount int    `json:"player_count"`
	MaxPlayers  int    `json:"max_players"`
	ScoreTarget int    `json:"score_target"`
	GameStarted bool   `json:"game_started"`
	IsLocked    bool   `json:"is_locked"`
}

// PlayerById returns the player with the given id, or nil.
func (r *Room) PlayerById(id string) *Player {
	for _, p := range r.Players {
		if p.Id == id {
			return p
		}
	}
	return nil
}

// PlayerBySeat returns the player at the given seat, or nil if out of range.
func (r *Room) PlayerBySeat(seat int) *Player {
	if seat < 0 || seat >= len(r.Players) {
		return nil
	}
	return r.Players[seat]
}

// Drawer returns the current drawer, or nil outside an active game.
func (r *Room) Drawer() *Player {
	if !r.Phase.Started() {
		return nil
	}
	return r.PlayerBySeat(r.DrawerSeat)
}

// NonDrawerCount is the number of seats competing to guess this round.
func (r *Room) NonDrawerCount() int {
	n := len(r.Players) - 1
	if n < 0 {
		return 0
	}
	return n
}

// HasGuessedCorrectly reports whether the player id is already credited for
// this round.
func (r *Room) HasGuessedCorrectly(id string) bool {
	for _, g := range r.CorrectGuessers {
		if g == id {
			return true
		}
	}
	return false
}

// AllGuessersFinished reports whether every non-drawer has either guessed
// the word or exhausted their attempts.
func (r *Room) AllGuessersFinished() bool {
	for seat, p := range r.Players {
		if seat == r.DrawerSeat {
			continue
		}
		if !p.HasGuessed && p.GuessAttempts < MaxGuessAttempts {
			return false
		}
	}
	return true
}

// ResetRoundFlags clears per-round player state at the start of a drawing
// phase.
func (r *Room) ResetRoundFlags() {
	for _, p := range r.Players {
		p.HasGuessed = false
		p.GuessAttempts = 0
	}
}

// HintPattern renders the reveal mask for the current word: one token per
// character, spaces passed through, revealed letters shown literally, the
// rest as underscores, joined by single spaces. Index i of the word is
// always token i, so client and server agree on reveal addressing.
func (r *Room) HintPattern() string {
	return RenderHint(r.Word, r.Revealed)
}

// ClearWordState drops both the secret word and any pending choices.
func (r *Room) ClearWordState() {
	r.Word = ""
	r.WordChoices = nil
	r.Revealed = nil
	r.HintsGiven = 0
	r.DrawerAwarded = 0
}
