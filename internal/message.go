package internal

// Message is the wire envelope for every websocket frame, inbound and
// outbound.
type Message[T any] struct {
	Type string `json:"type"`
	Data T      `json:"data"`
}

// Outbound event types.
const (
	EvtStateUpdate    = "state_update"
	EvtRoomListUpdate = "room_list_update"
	EvtDraw           = "draw"
	EvtCanvasClear    = "canvas_clear"
	EvtCorrectGuess   = "correct_guess"
	EvtRoundEnd       = "round_end"
	EvtGameOver       = "game_over"
	EvtError          = "error"
)

// RoomStateData is the per-recipient masked room snapshot. Word carries the
// real word only for the drawer (or before the game starts); everyone else
// gets an empty word and the hint pattern.
type RoomStateData struct {
	RoomId      string      `json:"room_id"`
	Phase       GamePhase   `json:"phase"`
	CreatorId   string      `json:"creator_id"`
	MaxPlayers  int         `json:"max_players"`
	Theme       string      `json:"theme"`
	ScoreTarget int         `json:"score_target"`
	IsLocked    bool           `json:"is_locked"`
	Players     []PublicPlayer `json:"players"`
	Chat        []ChatEntry    `json:"chat"`

	DrawerSeat  int      `json:"drawer_seat"`
	RoundNumber int      `json:"round_number"`
	Word        string   `json:"word"`
	HintPattern string   `json:"hint_pattern"`
	WordChoices []string `json:"word_choices,omitempty"`
	HintsGiven  int      `json:"hints_given"`

	CorrectGuessers []string       `json:"correct_guessers"`
	Strokes         []StrokeAction `json:"strokes"`

	// Unix milliseconds; zero when the deadline is not armed.
	SelectionEndsAt int64 `json:"selection_ends_at,omitempty"`
	RoundEndsAt     int64 `json:"round_ends_at,omitempty"`
}

type CorrectGuessData struct {
	PlayerId string `json:"player_id"`
	Name     string `json:"name"`
	Points   int    `json:"points"`
	Order    int    `json:"order"`
}

type RoundEndData struct {
	Word   string       `json:"word"`
	Scores []ScoreEntry `json:"scores"`
}

type GameOverData struct {
	Winners []ScoreEntry `json:"winners"`
	Reason  string       `json:"reason,omitempty"`
}

// Response wraps REST replies with request timing, matching the websocket
// clients' latency probes.
type Response struct {
	StatusCode    int   `json:"status_code"`
	RespStartTime int64 `json:"resp_time_start_ms"`
	RespEndTime   int64 `json:"resp_time_end_ms"`
	NetRespTime   int64 `json:"net_resp_time_ms"`
	Data          any   `json:"data"`
}
