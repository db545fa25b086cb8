package audio

import (
	"encoding/binary"
	"sync"

	"github.com/gen2brain/malgo"

	"github.com/foxseedlab/kikitori/internal/audio"
	"github.com/foxseedlab/kikitori/internal/faults"
)

// MalgoDevice captures microphone input through miniaudio. One context is
// shared across streams and released by Close.
type MalgoDevice struct {
	ctx *malgo.AllocatedContext
}

func NewMalgoDevice() (audio.Device, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, faults.Device("initialize audio backend", err)
	}
	return &MalgoDevice{ctx: ctx}, nil
}

func (d *MalgoDevice) Open(cfg audio.CaptureConfig, onFrame audio.FrameFunc) (audio.Stream, error) {
	s := &captureStream{
		frameSize: cfg.FrameSize,
		onFrame:   onFrame,
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Capture)
	deviceConfig.Capture.Format = malgo.FormatS16
	deviceConfig.Capture.Channels = uint32(cfg.Channels)
	deviceConfig.SampleRate = uint32(cfg.SampleRate)
	deviceConfig.PeriodSizeInFrames = uint32(cfg.FrameSize)

	callbacks := malgo.DeviceCallbacks{
		Data: func(_, input []byte, frameCount uint32) {
			s.ingest(input)
		},
	}
	dev, err := malgo.InitDevice(d.ctx.Context, deviceConfig, callbacks)
	if err != nil {
		return nil, faults.Device("open capture device", err)
	}
	if err := dev.Start(); err != nil {
		dev.Uninit()
		return nil, faults.Device("start capture stream", err)
	}
	s.dev = dev
	return s, nil
}

func (d *MalgoDevice) Close() error {
	if err := d.ctx.Uninit(); err != nil {
		return faults.Device("release audio backend", err)
	}
	d.ctx.Free()
	return nil
}

type captureStream struct {
	dev       *malgo.Device
	frameSize int
	onFrame   audio.FrameFunc

	mu      sync.Mutex
	pending []int16
}

// ingest runs on the miniaudio driver thread. It accumulates samples and
// emits them in fixed-size frames.
func (s *captureStream) ingest(input []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i+1 < len(input); i += 2 {
		s.pending = append(s.pending, int16(binary.LittleEndian.Uint16(input[i:])))
	}
	for len(s.pending) >= s.frameSize {
		frame := make([]int16, s.frameSize)
		copy(frame, s.pending[:s.frameSize])
		s.pending = s.pending[s.frameSize:]
		s.onFrame(frame)
	}
}

// Stop halts capture and flushes the partial trailing frame. After Stop
// returns, no further frames are delivered.
func (s *captureStream) Stop() error {
	if err := s.dev.Stop(); err != nil {
		return faults.Device("stop capture stream", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pending) > 0 {
		frame := make([]int16, len(s.pending))
		copy(frame, s.pending)
		s.pending = s.pending[:0]
		s.onFrame(frame)
	}
	return nil
}

func (s *captureStream) Close() error {
	s.dev.Uninit()
	return nil
}
