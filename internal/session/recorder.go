// Package session holds the push-to-talk recording state machine.
package session

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/foxseedlab/kikitori/internal/audio"
	"github.com/foxseedlab/kikitori/internal/config"
	"github.com/foxseedlab/kikitori/internal/input"
)

const wavNameLayout = "20060102-150405"

// TranscribeFunc receives each finished recording. Depending on
// configuration the recorder either blocks on it or fires it off and keeps
// polling.
type TranscribeFunc func(ctx context.Context, wavPath string) error

// Recorder owns the capture device, the stream handle, the key flags and
// the frame buffer for its whole lifetime. Key events update the flags
// asynchronously; transitions are evaluated on the poll tick.
type Recorder struct {
	cfg        *config.Config
	device     audio.Device
	listener   input.Listener
	transcribe TranscribeFunc

	writeWAV func(path string, frames [][]int16, sampleRate, channels int) error
	now      func() time.Time

	keyHeld       bool
	quitRequested bool
	recording     bool
	stream        audio.Stream

	// frames is appended to by the capture driver's thread and only read
	// by the poll loop after Stream.Stop has returned.
	mu     sync.Mutex
	frames [][]int16

	handoffs sync.WaitGroup
}

func NewRecorder(cfg *config.Config, device audio.Device, listener input.Listener, transcribe TranscribeFunc) *Recorder {
	return &Recorder{
		cfg:        cfg,
		device:     device,
		listener:   listener,
		transcribe: transcribe,
		writeWAV:   audio.WriteFile,
		now:        time.Now,
	}
}

// Run polls the key flags on the configured interval until the quit key is
// honored or ctx is canceled. A failure to open the capture device is fatal
// and propagates.
func (r *Recorder) Run(ctx context.Context) error {
	events, err := r.listener.Events()
	if err != nil {
		return err
	}
	printUsage(r.cfg.RecordKey, r.cfg.QuitKey)

	ticker := time.NewTicker(r.cfg.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			r.shutdown()
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			r.apply(ev)
		case <-ticker.C:
			quit, err := r.step(ctx)
			if err != nil {
				r.shutdown()
				return err
			}
			if quit {
				r.handoffs.Wait()
				return nil
			}
		}
	}
}

// apply folds one key edge into the session flags. Re-setting an already
// held key is a no-op, so key repeat changes nothing.
func (r *Recorder) apply(ev input.Event) {
	switch ev.Key {
	case input.KeyRecord:
		r.keyHeld = ev.Pressed
	case input.KeyQuit:
		if ev.Pressed {
			r.quitRequested = true
		}
	}
}

// step evaluates one poll tick. Quit is only honored while idle; a quit
// requested during an active recording waits for the release to bring the
// session back to idle first.
func (r *Recorder) step(ctx context.Context) (quit bool, err error) {
	switch {
	case r.keyHeld && !r.recording:
		return false, r.startRecording()
	case !r.keyHeld && r.recording:
		return false, r.finishRecording(ctx)
	case !r.keyHeld && !r.recording && r.quitRequested:
		r.shutdown()
		return true, nil
	}
	return false, nil
}

func (r *Recorder) startRecording() error {
	stream, err := r.device.Open(audio.DefaultCaptureConfig(), r.appendFrame)
	if err != nil {
		return err
	}
	r.stream = stream
	r.recording = true
	slog.Info("recording started")
	return nil
}

// appendFrame runs on the capture driver's thread.
func (r *Recorder) appendFrame(pcm []int16) {
	r.mu.Lock()
	r.frames = append(r.frames, pcm)
	r.mu.Unlock()
}

func (r *Recorder) finishRecording(ctx context.Context) error {
	slog.Info("recording stopped")
	if err := r.stream.Stop(); err != nil {
		return err
	}
	// The driver delivers no frames after Stop returns, so the buffer is
	// safe to take and reset here.
	r.mu.Lock()
	frames := r.frames
	r.frames = nil
	r.mu.Unlock()
	_ = r.stream.Close()
	r.stream = nil
	r.recording = false

	path := filepath.Join(r.cfg.OutputDir, r.now().Format(wavNameLayout)+".wav")
	if err := r.writeWAV(path, frames, audio.SampleRate, audio.Channels); err != nil {
		return err
	}
	slog.Info("recording saved", "path", path, "frames", len(frames))

	if r.cfg.BlockOnTranscribe {
		r.runHandoff(ctx, path)
	} else {
		r.handoffs.Add(1)
		go func() {
			defer r.handoffs.Done()
			r.runHandoff(ctx, path)
		}()
	}
	printUsage(r.cfg.RecordKey, r.cfg.QuitKey)
	return nil
}

// runHandoff reports transcription failures without ending the recording
// session; the captured WAV stays on disk either way.
func (r *Recorder) runHandoff(ctx context.Context, path string) {
	if err := r.transcribe(ctx, path); err != nil {
		slog.Error("transcription failed", "error", err, "path", path)
	}
}

func (r *Recorder) shutdown() {
	if r.stream != nil {
		_ = r.stream.Close()
		r.stream = nil
	}
	if err := r.device.Close(); err != nil {
		slog.Error("failed to release audio device", "error", err)
	}
	_ = r.listener.Close()
	slog.Info("quitting session")
}
