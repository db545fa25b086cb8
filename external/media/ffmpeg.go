package media

import (
	"context"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/foxseedlab/kikitori/internal/faults"
)

// FFmpegNormalizer converts compressed inputs to 16-bit PCM WAV with an
// ffmpeg subprocess. WAV inputs pass through unchanged.
type FFmpegNormalizer struct {
	binary string
}

func NewFFmpegNormalizer() *FFmpegNormalizer {
	return &FFmpegNormalizer{binary: "ffmpeg"}
}

func (n *FFmpegNormalizer) NormalizeToWAV(ctx context.Context, path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".wav" {
		return path, nil
	}

	out := strings.TrimSuffix(path, filepath.Ext(path)) + ".wav"
	slog.Info("converting audio to wav", "input", path, "output", out)
	cmd := exec.CommandContext(ctx, n.binary,
		"-y", "-i", path,
		"-acodec", "pcm_s16le",
		"-f", "wav",
		out,
	)
	if combined, err := cmd.CombinedOutput(); err != nil {
		return "", faults.Input("convert audio to wav: "+strings.TrimSpace(string(combined)), err)
	}
	return out, nil
}
