package webhook

import "context"

const TranscriptPayloadSchemaVersion = "2026-08-26"

// TranscriptPayload is the JSON body posted after a transcript is written.
type TranscriptPayload struct {
	SchemaVersion  string `json:"schema_version"`
	AudioPath      string `json:"audio_path"`
	TranscriptPath string `json:"transcript_path"`
	SpeakerCount   int    `json:"speaker_count"`
	Transcript     string `json:"transcript"`
	FinishedAt     string `json:"finished_at"`
}

type Sender interface {
	SendTranscript(ctx context.Context, payload TranscriptPayload) error
}
