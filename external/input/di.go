package input

import (
	"github.com/foxseedlab/kikitori/internal/config"
	"github.com/foxseedlab/kikitori/internal/input"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (input.Listener, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return NewGohookListener(cfg.RecordKey, cfg.QuitKey)
	})
}
