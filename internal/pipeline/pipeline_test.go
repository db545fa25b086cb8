package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/foxseedlab/kikitori/internal/audio"
	"github.com/foxseedlab/kikitori/internal/faults"
	"github.com/foxseedlab/kikitori/internal/transcriber"
	"github.com/foxseedlab/kikitori/internal/vocab"
	"github.com/foxseedlab/kikitori/internal/webhook"
)

type passthroughNormalizer struct {
	calls int
}

func (n *passthroughNormalizer) NormalizeToWAV(_ context.Context, path string) (string, error) {
	n.calls++
	return path, nil
}

type fakeRecognizer struct {
	results []transcriber.Result
	err     error
	lastReq transcriber.Request
}

func (f *fakeRecognizer) Recognize(_ context.Context, req transcriber.Request) ([]transcriber.Result, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func (f *fakeRecognizer) RecognizeURI(context.Context, string, string) ([]transcriber.ChannelResult, error) {
	return nil, errors.New("not used in these tests")
}

type discardSender struct{}

func (discardSender) SendTranscript(context.Context, webhook.TranscriptPayload) error { return nil }

func writeClip(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "clip.wav")
	frame := make([]int16, 8000)
	if err := audio.WriteFile(path, [][]int16{frame, frame}, 8000, 1); err != nil {
		t.Fatalf("failed to write clip: %v", err)
	}
	return path
}

func countTranscripts(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read output dir: %v", err)
	}
	n := 0
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".txt") {
			n++
		}
	}
	return n
}

func newTestRunner(dir string, rec *fakeRecognizer) (*Runner, *passthroughNormalizer) {
	norm := &passthroughNormalizer{}
	r := NewRunner(norm, rec, vocab.NewStore(filepath.Join(dir, "vocab.txt")), discardSender{}, "en-US", dir)
	r.now = func() time.Time { return time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC) }
	return r, norm
}

func TestRun_WritesGroupedTranscript(t *testing.T) {
	dir := t.TempDir()
	clip := writeClip(t, dir)
	rec := &fakeRecognizer{
		results: []transcriber.Result{
			{Words: []transcriber.Word{{Text: "partial", SpeakerTag: 1}}},
			{Words: []transcriber.Word{
				{Text: "hi", SpeakerTag: 1},
				{Text: "there", SpeakerTag: 1},
				{Text: "yo", SpeakerTag: 2},
			}},
		},
	}
	r, norm := newTestRunner(dir, rec)

	outPath, err := r.Run(context.Background(), clip, 2, []string{"runway"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if norm.calls != 1 {
		t.Fatalf("expected one normalization call, got %d", norm.calls)
	}
	if filepath.Base(outPath) != "20260826-120000.txt" {
		t.Fatalf("unexpected transcript name: %s", outPath)
	}
	body, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read transcript: %v", err)
	}
	if string(body) != "Speaker 1: hi there\nSpeaker 2: yo\n" {
		t.Fatalf("unexpected transcript body: %q", body)
	}
	if rec.lastReq.SampleRate != 8000 || rec.lastReq.Channels != 1 {
		t.Fatalf("request did not use header metadata: %+v", rec.lastReq)
	}
	if len(rec.lastReq.Phrases) != 1 || rec.lastReq.Phrases[0] != "runway" {
		t.Fatalf("merged hints missing from request: %v", rec.lastReq.Phrases)
	}
}

func TestRun_RecognitionFailureWritesNothing(t *testing.T) {
	dir := t.TempDir()
	clip := writeClip(t, dir)
	rec := &fakeRecognizer{err: faults.Recognition("recognize call failed", errors.New("quota exceeded"))}
	r, _ := newTestRunner(dir, rec)

	_, err := r.Run(context.Background(), clip, 1, []string{"runway"})
	if !faults.Is(err, faults.KindRecognition) {
		t.Fatalf("expected recognition fault, got %v", err)
	}
	if n := countTranscripts(t, dir); n != 0 {
		t.Fatalf("expected no transcript files, found %d", n)
	}

	// The vocabulary merged before the failed call must survive intact.
	phrases, err := vocab.NewStore(filepath.Join(dir, "vocab.txt")).Load()
	if err != nil {
		t.Fatalf("failed to load vocabulary: %v", err)
	}
	if len(phrases) != 1 || phrases[0] != "runway" {
		t.Fatalf("vocabulary corrupted after recognition failure: %v", phrases)
	}
}

func TestRun_UnreadableInput(t *testing.T) {
	dir := t.TempDir()
	bogus := filepath.Join(dir, "bogus.wav")
	if err := os.WriteFile(bogus, []byte("not audio"), 0o644); err != nil {
		t.Fatalf("failed to write bogus file: %v", err)
	}
	r, _ := newTestRunner(dir, &fakeRecognizer{})

	_, err := r.Run(context.Background(), bogus, 1, nil)
	if !faults.Is(err, faults.KindInput) {
		t.Fatalf("expected input fault, got %v", err)
	}
}

func TestRun_NoResults(t *testing.T) {
	dir := t.TempDir()
	clip := writeClip(t, dir)
	r, _ := newTestRunner(dir, &fakeRecognizer{})

	if _, err := r.Run(context.Background(), clip, 1, nil); err == nil {
		t.Fatal("expected error when recognition returns no results")
	}
	if n := countTranscripts(t, dir); n != 0 {
		t.Fatalf("expected no transcript files, found %d", n)
	}
}
