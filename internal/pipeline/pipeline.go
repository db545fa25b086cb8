// Package pipeline runs one audio file through normalization, vocabulary
// merge, recognition and transcript persistence.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/foxseedlab/kikitori/internal/audio"
	"github.com/foxseedlab/kikitori/internal/transcriber"
	"github.com/foxseedlab/kikitori/internal/vocab"
	"github.com/foxseedlab/kikitori/internal/webhook"
)

// maxClipDuration is the recognition service's single-request ceiling.
// Longer clips are truncated before the call.
const maxClipDuration = 59 * time.Second

const transcriptNameLayout = "20060102-150405"

// Normalizer converts an input file to 16-bit PCM WAV when it is not one
// already, returning the path to the WAV to transcribe.
type Normalizer interface {
	NormalizeToWAV(ctx context.Context, path string) (string, error)
}

type Runner struct {
	normalizer Normalizer
	recognizer transcriber.Recognizer
	vocabulary *vocab.Store
	webhook    webhook.Sender
	language   string
	outputDir  string
	now        func() time.Time
}

func NewRunner(normalizer Normalizer, recognizer transcriber.Recognizer, vocabulary *vocab.Store, wh webhook.Sender, language, outputDir string) *Runner {
	return &Runner{
		normalizer: normalizer,
		recognizer: recognizer,
		vocabulary: vocabulary,
		webhook:    wh,
		language:   language,
		outputDir:  outputDir,
		now:        time.Now,
	}
}

// Run transcribes the file at path with the requested speaker count and
// hint words, and returns the path of the written transcript. No transcript
// file is written when recognition fails.
func (r *Runner) Run(ctx context.Context, path string, speakerCount int, hints []string) (string, error) {
	wavPath, err := r.normalizer.NormalizeToWAV(ctx, path)
	if err != nil {
		return "", err
	}

	info, err := audio.ReadInfo(wavPath)
	if err != nil {
		return "", err
	}
	slog.Info("audio metadata read", "path", wavPath, "sample_rate", info.SampleRate, "channels", info.Channels, "duration", info.Duration)

	truncated, err := audio.ClampDuration(wavPath, maxClipDuration)
	if err != nil {
		return "", err
	}
	if truncated {
		slog.Info("audio truncated to recognition ceiling", "path", wavPath, "max", maxClipDuration)
	}

	phrases, err := r.vocabulary.Merge(hints)
	if err != nil {
		return "", err
	}

	content, err := os.ReadFile(wavPath)
	if err != nil {
		return "", fmt.Errorf("read audio file: %w", err)
	}

	slog.Info("waiting for recognition to complete", "path", wavPath, "speakers", speakerCount, "hint_phrases", len(phrases))
	results, err := r.recognizer.Recognize(ctx, transcriber.Request{
		Content:      content,
		SampleRate:   info.SampleRate,
		Channels:     info.Channels,
		SpeakerCount: speakerCount,
		Language:     r.language,
		Phrases:      phrases,
	})
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", fmt.Errorf("recognition returned no results for %s", wavPath)
	}

	// The word list of the last result cumulatively carries every word of
	// the clip with its final speaker tag.
	text := transcriber.FormatSpeakerTurns(results[len(results)-1].Words)

	finishedAt := r.now()
	outPath := filepath.Join(r.outputDir, finishedAt.Format(transcriptNameLayout)+".txt")
	if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("write transcript file: %w", err)
	}
	slog.Info("transcript saved", "path", outPath)

	if err := r.webhook.SendTranscript(ctx, webhook.TranscriptPayload{
		SchemaVersion:  webhook.TranscriptPayloadSchemaVersion,
		AudioPath:      wavPath,
		TranscriptPath: outPath,
		SpeakerCount:   speakerCount,
		Transcript:     text,
		FinishedAt:     finishedAt.Format(time.RFC3339),
	}); err != nil {
		slog.Error("failed to send webhook transcript", "error", err, "path", outPath)
	}
	return outPath, nil
}

// RunURI handles remote-storage URIs. The recognition service reads the
// object itself, so there is no local normalization, diarization or hint
// support on this path; results are returned per channel instead of being
// written to a transcript file.
func (r *Runner) RunURI(ctx context.Context, uri string) ([]transcriber.ChannelResult, error) {
	slog.Info("waiting for recognition to complete", "uri", uri)
	return r.recognizer.RecognizeURI(ctx, uri, r.language)
}
