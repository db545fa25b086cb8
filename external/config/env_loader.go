package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	internalconfig "github.com/foxseedlab/kikitori/internal/config"
)

type envConfig struct {
	Env                        string        `env:"ENV" envDefault:"production"`
	RecordKey                  string        `env:"RECORD_KEY" envDefault:"r"`
	QuitKey                    string        `env:"QUIT_KEY" envDefault:"q"`
	PollInterval               time.Duration `env:"POLL_INTERVAL" envDefault:"100ms"`
	OutputDir                  string        `env:"OUTPUT_DIR" envDefault:"."`
	VocabularyPath             string        `env:"VOCABULARY_PATH" envDefault:"vocab.txt"`
	TranscribeLanguage         string        `env:"TRANSCRIBE_LANGUAGE" envDefault:"en-US"`
	DefaultSpeakerCount        int           `env:"DEFAULT_SPEAKER_COUNT" envDefault:"1"`
	GoogleCloudCredentialsJSON string        `env:"GOOGLE_CLOUD_CREDENTIALS_JSON"`
	BlockOnTranscribe          bool          `env:"RECORDER_BLOCK_ON_TRANSCRIBE" envDefault:"true"`
	TranscriptWebhookURL       string        `env:"TRANSCRIPT_WEBHOOK_URL"`
}

func Load() (*internalconfig.Config, error) {
	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("environment variables are invalid or missing: %w", err)
	}

	cfg := &internalconfig.Config{
		Env:                        raw.Env,
		RecordKey:                  raw.RecordKey,
		QuitKey:                    raw.QuitKey,
		PollInterval:               raw.PollInterval,
		OutputDir:                  raw.OutputDir,
		VocabularyPath:             raw.VocabularyPath,
		TranscribeLanguage:         raw.TranscribeLanguage,
		DefaultSpeakerCount:        raw.DefaultSpeakerCount,
		GoogleCloudCredentialsJSON: raw.GoogleCloudCredentialsJSON,
		BlockOnTranscribe:          raw.BlockOnTranscribe,
		TranscriptWebhookURL:       raw.TranscriptWebhookURL,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
