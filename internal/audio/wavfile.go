package audio

import (
	"fmt"
	"os"
	"time"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/foxseedlab/kikitori/internal/faults"
)

// Info is the subset of WAV header metadata the recognizer needs.
type Info struct {
	SampleRate int
	Channels   int
	Duration   time.Duration
}

// WriteFile serializes captured frames as a 16-bit PCM WAV file.
func WriteFile(path string, frames [][]int16, sampleRate, channels int) error {
	total := 0
	for _, fr := range frames {
		total += len(fr)
	}
	data := make([]int, 0, total)
	for _, fr := range frames {
		for _, s := range fr {
			data = append(data, int(s))
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create wav file: %w", err)
	}
	enc := wav.NewEncoder(f, sampleRate, BitsPerSample, channels, 1)
	buf := &gaudio.IntBuffer{
		Format:         &gaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: BitsPerSample,
	}
	if err := enc.Write(buf); err != nil {
		_ = f.Close()
		return fmt.Errorf("write wav samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("finalize wav file: %w", err)
	}
	return f.Close()
}

// ReadInfo reads sample rate, channel count and duration from the WAV header.
func ReadInfo(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, faults.Input("open audio file", err)
	}
	defer func() {
		_ = f.Close()
	}()

	d := wav.NewDecoder(f)
	d.ReadInfo()
	if !d.IsValidFile() {
		return Info{}, faults.Input(fmt.Sprintf("%s is not a valid WAV file", path), d.Err())
	}
	dur, err := d.Duration()
	if err != nil {
		return Info{}, faults.Input("read audio duration", err)
	}
	return Info{
		SampleRate: int(d.SampleRate),
		Channels:   int(d.NumChans),
		Duration:   dur,
	}, nil
}

// ClampDuration rewrites the file truncated to the first max of audio when
// it is longer, and leaves it untouched otherwise. Reports whether the file
// was rewritten.
func ClampDuration(path string, max time.Duration) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, faults.Input("open audio file", err)
	}
	d := wav.NewDecoder(f)
	buf, err := d.FullPCMBuffer()
	if err != nil {
		_ = f.Close()
		return false, faults.Input("decode audio samples", err)
	}
	bitDepth := int(d.BitDepth)
	if err := f.Close(); err != nil {
		return false, faults.Input("close audio file", err)
	}

	channels := buf.Format.NumChannels
	rate := buf.Format.SampleRate
	if channels <= 0 || rate <= 0 {
		return false, faults.Input(fmt.Sprintf("%s has no usable format header", path), nil)
	}
	totalFrames := len(buf.Data) / channels
	keepFrames := int(max.Seconds() * float64(rate))
	if totalFrames <= keepFrames {
		return false, nil
	}
	buf.Data = buf.Data[:keepFrames*channels]

	out, err := os.Create(path)
	if err != nil {
		return false, fmt.Errorf("rewrite audio file: %w", err)
	}
	enc := wav.NewEncoder(out, rate, bitDepth, channels, 1)
	if err := enc.Write(buf); err != nil {
		_ = out.Close()
		return false, fmt.Errorf("write truncated samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		_ = out.Close()
		return false, fmt.Errorf("finalize truncated file: %w", err)
	}
	return true, out.Close()
}
