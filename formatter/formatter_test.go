package formatter

import "testing"

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "basic contraction and casing", in: "i cant do this", want: "I can't do this."},
		{name: "stutter with ellipsis", in: "i... i... i... i'm actually ready", want: "I'm actually ready."},
		{name: "repeated words", in: "the the the thing", want: "The thing."},
		{name: "repeated phrase", in: "we can we can do this", want: "We can do this."},
		{name: "fillers removed but verb like kept", in: "um I like it, like, a lot, you know,", want: "I like it, a lot."},
		{name: "false start with restart keyword", in: "I want to— actually let me fix that", want: "Actually let me fix that."},
		{name: "uh huh pair dropped", in: "uh huh yes", want: "Yes."},
		{name: "hmm dropped", in: "hmm maybe later", want: "Maybe later."},
		{name: "were left alone", in: "we were there", want: "We were there."},
		{name: "existing punctuation kept", in: "is that right?", want: "Is that right?"},
		{name: "sentence capitalization after period", in: "done. next step", want: "Done. Next step."},
		{name: "whitespace collapsed", in: "  hello   world  ", want: "Hello world."},
		{name: "empty input", in: "", want: ""},
		{name: "punctuation only", in: "... --- ...", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.in); got != tt.want {
				t.Fatalf("Format(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatIsFixedPoint(t *testing.T) {
	inputs := []string{
		"i cant do this",
		"the the the thing",
		"I want to— actually let me fix that",
	}
	for _, in := range inputs {
		once := Format(in)
		if twice := Format(once); twice != once {
			t.Fatalf("Format not stable: %q then %q", once, twice)
		}
	}
}

func TestCleanupFalseStart(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "restart keyword wins regardless of length", in: "this is a very long sentence with many many words here— wait start over", want: "wait start over"},
		{name: "short before discarded without keyword", in: "send the— send the full report", want: "send the full report"},
		{name: "long before without keyword kept", in: "one two three four five six seven eight nine— keep going forward now", want: "one two three four five six seven eight nine— keep going forward now"},
		{name: "no marker", in: "plain text", want: "plain text"},
		{name: "marker at end ignored", in: "trailing dash—", want: "trailing dash—"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanupFalseStart(tt.in); got != tt.want {
				t.Fatalf("cleanupFalseStart(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCollapseRepeatedPhrases(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want int
	}{
		{name: "single word run", in: []string{"the", "the", "the", "thing"}, want: 2},
		{name: "two word phrase", in: []string{"we", "can", "we", "can", "do", "this"}, want: 4},
		{name: "no repeats", in: []string{"all", "distinct", "words"}, want: 3},
		{name: "punctuation only cores never match", in: []string{"...", "...", "ok"}, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := collapseRepeatedPhrases(tt.in); len(got) != tt.want {
				t.Fatalf("len = %d (%v), want %d", len(got), got, tt.want)
			}
		})
	}
}

func TestApplyReplacements(t *testing.T) {
	rules := []Replacement{
		{From: "kube", To: "Kubernetes"},
		{From: "gh", To: "GitHub"},
		{From: "kube", To: "never-reached"},
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "case-insensitive match", in: "deploy to KUBE now", want: "deploy to Kubernetes now"},
		{name: "trailing punctuation kept", in: "push to gh.", want: "push to GitHub."},
		{name: "first rule wins", in: "kube", want: "Kubernetes"},
		{name: "unmatched pass through", in: "nothing to do", want: "nothing to do"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApplyReplacements(tt.in, rules); got != tt.want {
				t.Fatalf("ApplyReplacements(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	t.Run("no rules returns input unchanged", func(t *testing.T) {
		in := "  spacing   preserved "
		if got := ApplyReplacements(in, nil); got != in {
			t.Fatalf("got %q, want %q", got, in)
		}
	})
}
