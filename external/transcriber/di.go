package transcriber

import (
	"github.com/foxseedlab/kikitori/internal/config"
	"github.com/foxseedlab/kikitori/internal/transcriber"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (transcriber.Recognizer, error) {
		c := do.MustInvoke[*config.Config](i)
		return NewCloudSpeechRecognizer(CloudSpeechConfig{
			CredentialsJSON: c.GoogleCloudCredentialsJSON,
		}), nil
	})
}
