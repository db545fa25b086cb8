package session

import (
	"context"

	"github.com/foxseedlab/kikitori/internal/audio"
	"github.com/foxseedlab/kikitori/internal/config"
	"github.com/foxseedlab/kikitori/internal/input"
	"github.com/foxseedlab/kikitori/internal/pipeline"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Recorder, error) {
		cfg := do.MustInvoke[*config.Config](i)
		device := do.MustInvoke[audio.Device](i)
		listener := do.MustInvoke[input.Listener](i)
		runner := do.MustInvoke[*pipeline.Runner](i)
		transcribe := func(ctx context.Context, wavPath string) error {
			_, err := runner.Run(ctx, wavPath, cfg.DefaultSpeakerCount, nil)
			return err
		}
		return NewRecorder(cfg, device, listener, transcribe), nil
	})
}
