// Package faults classifies the failures this tool can surface: the audio
// device, the input audio file, the recognition service, and configuration.
// Nothing here is retryable; callers report and abort.
package faults

import (
	"errors"
	"fmt"
)

type Kind string

const (
	// KindDevice covers audio hardware that is unavailable or busy.
	KindDevice Kind = "device"
	// KindInput covers unreadable or corrupt audio files.
	KindInput Kind = "input"
	// KindRecognition covers failures from the external speech service.
	KindRecognition Kind = "recognition"
	// KindConfig covers missing or invalid configuration values.
	KindConfig Kind = "config"
)

type Fault struct {
	Kind  Kind
	Msg   string
	Cause error
}

func (f *Fault) Error() string {
	if f.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", f.Kind, f.Msg, f.Cause)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Msg)
}

func (f *Fault) Unwrap() error { return f.Cause }

func Device(msg string, cause error) error {
	return &Fault{Kind: KindDevice, Msg: msg, Cause: cause}
}

func Input(msg string, cause error) error {
	return &Fault{Kind: KindInput, Msg: msg, Cause: cause}
}

func Recognition(msg string, cause error) error {
	return &Fault{Kind: KindRecognition, Msg: msg, Cause: cause}
}

func Config(msg string, cause error) error {
	return &Fault{Kind: KindConfig, Msg: msg, Cause: cause}
}

// Is reports whether err or anything it wraps is a Fault of the given kind.
func Is(err error, kind Kind) bool {
	var f *Fault
	if !errors.As(err, &f) {
		return false
	}
	return f.Kind == kind
}
