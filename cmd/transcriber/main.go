package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	configloader "github.com/foxseedlab/kikitori/external/config"
	mediaimpl "github.com/foxseedlab/kikitori/external/media"
	transcriberimpl "github.com/foxseedlab/kikitori/external/transcriber"
	webhookimpl "github.com/foxseedlab/kikitori/external/webhook"
	"github.com/foxseedlab/kikitori/internal/config"
	"github.com/foxseedlab/kikitori/internal/pipeline"
	"github.com/samber/do/v2"
)

const remoteURIPrefix = "gs://"

type stringSlice []string

func (s *stringSlice) String() string { return strings.Join(*s, ",") }
func (s *stringSlice) Set(v string) error {
	if v != "" {
		*s = append(*s, v)
	}
	return nil
}

func main() {
	var (
		speakers int
		hints    stringSlice
	)
	flag.IntVar(&speakers, "s", 0, "Number of speakers (defaults to configured count)")
	flag.Var(&hints, "w", "Word to add as a recognizer hint (repeatable)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	cfg := mustLoadConfig()
	initLogger(cfg)
	if speakers <= 0 {
		speakers = cfg.DefaultSpeakerCount
	}

	injector := setupDI(cfg)
	runner, err := do.Invoke[*pipeline.Runner](injector)
	if err != nil {
		slog.Error("failed to resolve pipeline", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if strings.HasPrefix(path, remoteURIPrefix) {
		// Remote objects go through the reduced path: fixed stereo 44.1kHz,
		// no diarization, no hints, results printed instead of filed.
		runRemote(ctx, runner, path)
		return
	}
	runLocal(ctx, runner, path, speakers, hints)
}

func runLocal(ctx context.Context, runner *pipeline.Runner, path string, speakers int, hints []string) {
	outPath, err := runner.Run(ctx, path, speakers, hints)
	if err != nil {
		slog.Error("transcription failed", "error", err, "path", path)
		os.Exit(1)
	}
	body, err := os.ReadFile(outPath)
	if err != nil {
		slog.Error("failed to read transcript back", "error", err, "path", outPath)
		os.Exit(1)
	}
	fmt.Print(string(body))
	fmt.Printf("Transcript saved to %s\n", outPath)
}

func runRemote(ctx context.Context, runner *pipeline.Runner, uri string) {
	results, err := runner.RunURI(ctx, uri)
	if err != nil {
		slog.Error("transcription failed", "error", err, "uri", uri)
		os.Exit(1)
	}
	for _, res := range results {
		fmt.Printf("Channel %d: %s\n", res.ChannelTag, res.Transcript)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: %s [flags] <path>

Transcribes a local audio file (or gs:// object) with speaker diarization.

  <path>   Local audio file or gs:// URI
  -s       Number of speakers (default 1)
  -w       Hint word for the recognizer, repeatable: -w runway -w delay
`, os.Args[0])
}

func mustLoadConfig() *config.Config {
	cfg, err := configloader.Load()
	if err != nil {
		slog.Error("config validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

func initLogger(cfg *config.Config) {
	logLevel := slog.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))
}

func setupDI(cfg *config.Config) do.Injector {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	mediaimpl.RegisterDI(injector)
	transcriberimpl.RegisterDI(injector)
	webhookimpl.RegisterDI(injector)
	pipeline.RegisterDI(injector)

	return injector
}
