package audio

import (
	"path/filepath"
	"testing"
	"time"
)

func writeTestWAV(t *testing.T, path string, seconds, rate int) {
	t.Helper()
	frame := make([]int16, rate)
	for i := range frame {
		frame[i] = int16(i % 128)
	}
	frames := make([][]int16, seconds)
	for i := range frames {
		frames[i] = frame
	}
	if err := WriteFile(path, frames, rate, 1); err != nil {
		t.Fatalf("failed to write test wav: %v", err)
	}
}

func TestWriteFileAndReadInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.wav")
	writeTestWAV(t, path, 2, 8000)

	info, err := ReadInfo(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if info.SampleRate != 8000 {
		t.Fatalf("unexpected sample rate: %d", info.SampleRate)
	}
	if info.Channels != 1 {
		t.Fatalf("unexpected channel count: %d", info.Channels)
	}
	if info.Duration != 2*time.Second {
		t.Fatalf("unexpected duration: %s", info.Duration)
	}
}

func TestReadInfo_NotWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.wav")
	if _, err := ReadInfo(path); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestClampDuration_TruncatesLongFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "long.wav")
	writeTestWAV(t, path, 10, 8000)

	rewritten, err := ClampDuration(path, 3*time.Second)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !rewritten {
		t.Fatal("expected file to be rewritten")
	}
	info, err := ReadInfo(path)
	if err != nil {
		t.Fatalf("failed to re-read clamped file: %v", err)
	}
	if info.Duration != 3*time.Second {
		t.Fatalf("expected exactly 3s after clamp, got %s", info.Duration)
	}
}

func TestClampDuration_ShortFileUnchanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.wav")
	writeTestWAV(t, path, 2, 8000)

	rewritten, err := ClampDuration(path, 3*time.Second)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rewritten {
		t.Fatal("file at or under the limit must not be rewritten")
	}
	info, err := ReadInfo(path)
	if err != nil {
		t.Fatalf("failed to re-read file: %v", err)
	}
	if info.Duration != 2*time.Second {
		t.Fatalf("duration changed unexpectedly: %s", info.Duration)
	}
}
