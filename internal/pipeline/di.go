package pipeline

import (
	"github.com/foxseedlab/kikitori/internal/config"
	"github.com/foxseedlab/kikitori/internal/transcriber"
	"github.com/foxseedlab/kikitori/internal/vocab"
	"github.com/foxseedlab/kikitori/internal/webhook"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Runner, error) {
		cfg := do.MustInvoke[*config.Config](i)
		normalizer := do.MustInvoke[Normalizer](i)
		recognizer := do.MustInvoke[transcriber.Recognizer](i)
		wh := do.MustInvoke[webhook.Sender](i)
		return NewRunner(normalizer, recognizer, vocab.NewStore(cfg.VocabularyPath), wh, cfg.TranscribeLanguage, cfg.OutputDir), nil
	})
}
