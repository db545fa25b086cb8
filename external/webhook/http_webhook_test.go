package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/foxseedlab/kikitori/internal/webhook"
)

func testPayload() webhook.TranscriptPayload {
	return webhook.TranscriptPayload{
		SchemaVersion:  webhook.TranscriptPayloadSchemaVersion,
		AudioPath:      "20260826-120000.wav",
		TranscriptPath: "20260826-120001.txt",
		SpeakerCount:   2,
		Transcript:     "Speaker 1: hello\n",
		FinishedAt:     "2026-08-26T12:00:01Z",
	}
}

func TestSendTranscript_EmptyWebhookURL(t *testing.T) {
	sender := NewHTTPSender("")
	if err := sender.SendTranscript(context.Background(), testPayload()); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestSendTranscript_Success(t *testing.T) {
	var got webhook.TranscriptPayload

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
			t.Fatalf("unexpected content type: %s", r.Header.Get("Content-Type"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("failed to decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	sender := NewHTTPSender(server.URL)
	if err := sender.SendTranscript(context.Background(), testPayload()); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got.TranscriptPath != "20260826-120001.txt" {
		t.Fatalf("unexpected transcript path: %s", got.TranscriptPath)
	}
	if got.Transcript != "Speaker 1: hello\n" {
		t.Fatalf("unexpected transcript body: %s", got.Transcript)
	}
	if got.SpeakerCount != 2 {
		t.Fatalf("unexpected speaker count: %d", got.SpeakerCount)
	}
}

func TestSendTranscript_Non2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	sender := NewHTTPSender(server.URL)
	if err := sender.SendTranscript(context.Background(), testPayload()); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}
