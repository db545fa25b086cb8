package media

import (
	"github.com/foxseedlab/kikitori/internal/pipeline"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (pipeline.Normalizer, error) {
		return NewFFmpegNormalizer(), nil
	})
}
