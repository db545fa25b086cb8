package transcriber

import (
	"fmt"
	"strings"
)

// FormatSpeakerTurns renders word-level speaker tags as one "Speaker N:"
// line per contiguous run of same-tagged words. The input is expected to be
// the last result's word list, which carries every word of the clip.
func FormatSpeakerTurns(words []Word) string {
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	tag := words[0].SpeakerTag
	turn := make([]string, 0, len(words))
	for _, w := range words {
		if w.SpeakerTag != tag {
			writeTurn(&b, tag, turn)
			tag = w.SpeakerTag
			turn = turn[:0]
		}
		turn = append(turn, w.Text)
	}
	// The final run never sees a tag change, so it is flushed here even
	// when only one speaker occurred.
	writeTurn(&b, tag, turn)
	return b.String()
}

func writeTurn(b *strings.Builder, tag int, words []string) {
	fmt.Fprintf(b, "Speaker %d: %s\n", tag, strings.Join(words, " "))
}
