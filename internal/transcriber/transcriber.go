package transcriber

import "context"

// Word is one recognized word with the speaker it was attributed to.
type Word struct {
	Text       string
	SpeakerTag int
}

// Result is a single recognition result: the plain transcript plus the
// word-level speaker annotations.
type Result struct {
	Transcript string
	Words      []Word
}

// ChannelResult is the reduced per-channel output of the remote-URI path,
// which runs without diarization or hints.
type ChannelResult struct {
	ChannelTag int
	Transcript string
}

// Request describes one synchronous recognition call against a local file
// that has already been normalized to linear PCM.
type Request struct {
	Content      []byte
	SampleRate   int
	Channels     int
	SpeakerCount int
	Language     string
	Phrases      []string
}

// Recognizer is the external speech service. Calls block until the full
// result is returned or the call fails; failures are not retried.
type Recognizer interface {
	// Recognize returns the ordered recognition results. The last result's
	// word list cumulatively contains every word with its final speaker tag.
	Recognize(ctx context.Context, req Request) ([]Result, error)
	// RecognizeURI transcribes audio already stored at a remote URI. This
	// path assumes stereo 44.1kHz linear PCM and supports neither
	// diarization nor hint phrases.
	RecognizeURI(ctx context.Context, uri, language string) ([]ChannelResult, error)
}
