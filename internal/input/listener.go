package input

// Key identifies one of the two control keys the recorder watches.
type Key string

const (
	KeyRecord Key = "record"
	KeyQuit   Key = "quit"
)

// Event is a press/release edge for one of the control keys. The OS key
// hook delivers these asynchronously; consumers own flag bookkeeping.
type Event struct {
	Key     Key
	Pressed bool
}

type Listener interface {
	// Events starts the hook and returns the edge event channel.
	Events() (<-chan Event, error)
	Close() error
}
