package internal

// StrokeAction is one drawing event. The room's stroke log replayed in order
// reconstructs the canvas for late joiners; the server never interprets
// coordinates beyond relaying them.
type StrokeAction struct {
	Type  StrokeType `json:"type"`
	X     float64    `json:"x,omitempty"`
	Y     float64    `json:"y,omitempty"`
	PrevX float64    `json:"prev_x,omitempty"`
	PrevY float64    `json:"prev_y,omitempty"`
	Color string     `json:"color,omitempty"`
	Size  float64    `json:"size,omitempty"`
}

type StrokeType string

const (
	StrokeStart   StrokeType = "start"
	StrokeSegment StrokeType = "draw"
	StrokeEnd     StrokeType = "end"
	StrokeClear   StrokeType = "clear"
)
