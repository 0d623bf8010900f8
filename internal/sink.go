package internal

// Sink is the outbound half of a client connection. The game core only ever
// publishes through it, so the transport stays swappable (and fakeable in
// tests).
type Sink interface {
	SendJSON(v any) error
	Close() error
}
