package config

import (
	"fmt"
	"time"
)

type Config struct {
	Env                        string
	RecordKey                  string
	QuitKey                    string
	PollInterval               time.Duration
	OutputDir                  string
	VocabularyPath             string
	TranscribeLanguage         string
	DefaultSpeakerCount        int
	GoogleCloudCredentialsJSON string
	BlockOnTranscribe          bool
	TranscriptWebhookURL       string
}

func (c *Config) Validate() error {
	if len(c.RecordKey) != 1 {
		return fmt.Errorf("RECORD_KEY must be a single character, got %q", c.RecordKey)
	}
	if len(c.QuitKey) != 1 {
		return fmt.Errorf("QUIT_KEY must be a single character, got %q", c.QuitKey)
	}
	if c.RecordKey == c.QuitKey {
		return fmt.Errorf("RECORD_KEY and QUIT_KEY must differ, both are %q", c.RecordKey)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("POLL_INTERVAL must be positive, got %s", c.PollInterval)
	}
	if c.TranscribeLanguage == "" {
		return fmt.Errorf("TRANSCRIBE_LANGUAGE is required")
	}
	if c.DefaultSpeakerCount <= 0 {
		return fmt.Errorf("DEFAULT_SPEAKER_COUNT must be positive, got %d", c.DefaultSpeakerCount)
	}
	if c.VocabularyPath == "" {
		return fmt.Errorf("VOCABULARY_PATH is required")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
