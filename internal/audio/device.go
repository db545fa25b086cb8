package audio

// Fixed capture format for push-to-talk recordings.
const (
	SampleRate    = 44100
	Channels      = 1
	BitsPerSample = 16
	// FrameSize is the number of samples delivered per capture callback.
	FrameSize = 8192
)

type CaptureConfig struct {
	SampleRate int
	Channels   int
	FrameSize  int
}

func DefaultCaptureConfig() CaptureConfig {
	return CaptureConfig{
		SampleRate: SampleRate,
		Channels:   Channels,
		FrameSize:  FrameSize,
	}
}

// FrameFunc receives one frame of 16-bit PCM samples from the capture
// driver's own thread. Ownership of the slice passes to the receiver.
type FrameFunc func(pcm []int16)

type Stream interface {
	Stop() error
	Close() error
}

type Device interface {
	Open(cfg CaptureConfig, onFrame FrameFunc) (Stream, error)
	Close() error
}
