package input

import (
	"unicode"
	"unicode/utf8"

	hook "github.com/robotn/gohook"

	"github.com/foxseedlab/kikitori/internal/faults"
	"github.com/foxseedlab/kikitori/internal/input"
)

const eventChannelDepth = 64

// GohookListener translates global keyboard hook events into record/quit
// edge events. Key-repeat KeyHold events are forwarded as presses; the
// consumer treats a repeated press as a no-op.
type GohookListener struct {
	recordKey rune
	quitKey   rune
	out       chan input.Event
}

func NewGohookListener(recordKey, quitKey string) (input.Listener, error) {
	rk, _ := utf8.DecodeRuneInString(recordKey)
	qk, _ := utf8.DecodeRuneInString(quitKey)
	if rk == utf8.RuneError || qk == utf8.RuneError {
		return nil, faults.Config("record/quit keys must be printable characters", nil)
	}
	return &GohookListener{
		recordKey: unicode.ToLower(rk),
		quitKey:   unicode.ToLower(qk),
		out:       make(chan input.Event, eventChannelDepth),
	}, nil
}

func (l *GohookListener) Events() (<-chan input.Event, error) {
	raw := hook.Start()
	go l.translate(raw)
	return l.out, nil
}

func (l *GohookListener) Close() error {
	hook.End()
	return nil
}

func (l *GohookListener) translate(raw chan hook.Event) {
	defer close(l.out)
	for ev := range raw {
		var pressed bool
		switch ev.Kind {
		case hook.KeyDown, hook.KeyHold:
			pressed = true
		case hook.KeyUp:
			pressed = false
		default:
			continue
		}
		switch unicode.ToLower(ev.Keychar) {
		case l.recordKey:
			l.out <- input.Event{Key: input.KeyRecord, Pressed: pressed}
		case l.quitKey:
			if pressed {
				l.out <- input.Event{Key: input.KeyQuit, Pressed: true}
			}
		}
	}
}
