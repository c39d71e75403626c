package session

// UsageError is caller misuse of the spin sequence. It is answered locally and never crashes the game.
type UsageError struct {
	Op     string
	Reason string
}

func (e *UsageError) Error() string {
	return e.Op + ": " + e.Reason
}

var (
	// ErrBusy rejects a spin while a spin or a free-spin chain is still in flight.
	ErrBusy = &UsageError{Op: "spin", Reason: "a spin is already in progress"}
	// ErrIdle rejects a finish signal when nothing is spinning.
	ErrIdle = &UsageError{Op: "finish", Reason: "no spin in progress"}
)
