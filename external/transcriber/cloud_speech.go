package transcriber

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/auth/credentials"
	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"
	"google.golang.org/grpc/status"

	"github.com/foxseedlab/kikitori/internal/faults"
	"github.com/foxseedlab/kikitori/internal/transcriber"
)

// Fixed format assumed for remote-storage objects. The URI path cannot read
// the object's header, so the service is told what the recorder writes.
const (
	uriSampleRateHertz = 44100
	uriChannelCount    = 2
)

type CloudSpeechConfig struct {
	CredentialsJSON string
}

type CloudSpeechRecognizer struct {
	credentialsJSON string
}

func NewCloudSpeechRecognizer(cfg CloudSpeechConfig) transcriber.Recognizer {
	return &CloudSpeechRecognizer{credentialsJSON: cfg.CredentialsJSON}
}

func (r *CloudSpeechRecognizer) Recognize(ctx context.Context, req transcriber.Request) ([]transcriber.Result, error) {
	client, err := r.newClient(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = client.Close()
	}()

	cfg := &speechpb.RecognitionConfig{
		Encoding:                            speechpb.RecognitionConfig_LINEAR16,
		SampleRateHertz:                     int32(req.SampleRate),
		LanguageCode:                        req.Language,
		AudioChannelCount:                   int32(req.Channels),
		EnableSeparateRecognitionPerChannel: true,
		EnableAutomaticPunctuation:          true,
		DiarizationConfig: &speechpb.SpeakerDiarizationConfig{
			EnableSpeakerDiarization: true,
			MinSpeakerCount:          int32(req.SpeakerCount),
			MaxSpeakerCount:          int32(req.SpeakerCount),
		},
	}
	if len(req.Phrases) > 0 {
		cfg.SpeechContexts = []*speechpb.SpeechContext{{Phrases: req.Phrases}}
	}

	slog.Info("calling cloud speech recognize", "sample_rate", req.SampleRate, "channels", req.Channels, "speakers", req.SpeakerCount, "language", req.Language)
	resp, err := client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: cfg,
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: req.Content},
		},
	})
	if err != nil {
		return nil, faults.Recognition(describeCallFailure(err), err)
	}

	results := make([]transcriber.Result, 0, len(resp.GetResults()))
	for _, res := range resp.GetResults() {
		alts := res.GetAlternatives()
		if len(alts) == 0 {
			continue
		}
		words := make([]transcriber.Word, 0, len(alts[0].GetWords()))
		for _, w := range alts[0].GetWords() {
			words = append(words, transcriber.Word{
				Text:       w.GetWord(),
				SpeakerTag: int(w.GetSpeakerTag()),
			})
		}
		results = append(results, transcriber.Result{
			Transcript: alts[0].GetTranscript(),
			Words:      words,
		})
	}
	return results, nil
}

func (r *CloudSpeechRecognizer) RecognizeURI(ctx context.Context, uri, language string) ([]transcriber.ChannelResult, error) {
	client, err := r.newClient(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = client.Close()
	}()

	slog.Info("calling cloud speech recognize for remote object", "uri", uri, "language", language)
	resp, err := client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                            speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:                     uriSampleRateHertz,
			LanguageCode:                        language,
			AudioChannelCount:                   uriChannelCount,
			EnableSeparateRecognitionPerChannel: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Uri{Uri: uri},
		},
	})
	if err != nil {
		return nil, faults.Recognition(describeCallFailure(err), err)
	}

	results := make([]transcriber.ChannelResult, 0, len(resp.GetResults()))
	for _, res := range resp.GetResults() {
		alts := res.GetAlternatives()
		if len(alts) == 0 {
			continue
		}
		results = append(results, transcriber.ChannelResult{
			ChannelTag: int(res.GetChannelTag()),
			Transcript: alts[0].GetTranscript(),
		})
	}
	return results, nil
}

func (r *CloudSpeechRecognizer) newClient(ctx context.Context) (*speech.Client, error) {
	var opts []option.ClientOption
	if r.credentialsJSON != "" {
		creds, err := credentials.DetectDefault(&credentials.DetectOptions{
			CredentialsJSON: []byte(r.credentialsJSON),
			Scopes:          []string{"https://www.googleapis.com/auth/cloud-platform"},
		})
		if err != nil {
			return nil, faults.Recognition("detect credentials", err)
		}
		opts = append(opts, option.WithAuthCredentials(creds))
	}
	client, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, faults.Recognition("create speech client", err)
	}
	return client, nil
}

func describeCallFailure(err error) string {
	if st, ok := status.FromError(err); ok {
		return fmt.Sprintf("recognize call failed with status %s", st.Code())
	}
	return "recognize call failed"
}
