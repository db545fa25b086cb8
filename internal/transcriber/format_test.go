package transcriber

import "testing"

func TestFormatSpeakerTurns(t *testing.T) {
	tests := []struct {
		name  string
		words []Word
		want  string
	}{
		{
			name: "two speakers",
			words: []Word{
				{Text: "hi", SpeakerTag: 1},
				{Text: "there", SpeakerTag: 1},
				{Text: "yo", SpeakerTag: 2},
			},
			want: "Speaker 1: hi there\nSpeaker 2: yo\n",
		},
		{
			name: "single speaker still flushes one line",
			words: []Word{
				{Text: "just", SpeakerTag: 1},
				{Text: "me", SpeakerTag: 1},
			},
			want: "Speaker 1: just me\n",
		},
		{
			name: "speaker returns after interruption",
			words: []Word{
				{Text: "one", SpeakerTag: 1},
				{Text: "two", SpeakerTag: 2},
				{Text: "three", SpeakerTag: 1},
			},
			want: "Speaker 1: one\nSpeaker 2: two\nSpeaker 1: three\n",
		},
		{
			name:  "no words",
			words: nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatSpeakerTurns(tt.words); got != tt.want {
				t.Fatalf("unexpected transcript:\ngot  %q\nwant %q", got, tt.want)
			}
		})
	}
}
