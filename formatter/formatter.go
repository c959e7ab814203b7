// Package formatter cleans up raw speech transcripts.
//
// Format runs the full cleanup pipeline: false-start removal, filler
// stripping, repeated-phrase collapsing, contraction repair, sentence
// capitalization and trailing punctuation. ApplyReplacements performs
// whole-word dictionary substitution and is meant to run after Format so
// replacements see the cleaned output.
//
// Most passes compare "token cores": the token with leading and trailing
// non-alphanumeric characters (except apostrophes) stripped, lowercased.
// That lets filler detection and deduplication handle tokens carrying
// punctuation such as "like," or "um.".
package formatter

import (
	"strings"
	"unicode"
)

// contractionFixes restores apostrophes in unambiguous contractions.
// "were" is deliberately absent: it is a real word far more often than a
// broken "we're".
var contractionFixes = [][2]string{
	{"dont", "don't"},
	{"cant", "can't"},
	{"wont", "won't"},
	{"didnt", "didn't"},
	{"doesnt", "doesn't"},
	{"isnt", "isn't"},
	{"wasnt", "wasn't"},
	{"werent", "weren't"},
	{"wouldnt", "wouldn't"},
	{"couldnt", "couldn't"},
	{"shouldnt", "shouldn't"},
	{"hasnt", "hasn't"},
	{"havent", "haven't"},
	{"hadnt", "hadn't"},
	{"youre", "you're"},
	{"theyre", "they're"},
	{"thats", "that's"},
	{"whats", "what's"},
	{"heres", "here's"},
	{"theres", "there's"},
	{"lets", "let's"},
}

// Format runs the full cleanup pipeline over a raw transcript.
func Format(input string) string {
	text := strings.TrimSpace(smartCleanup(input))
	if text == "" {
		return ""
	}

	result := capitalizeIForms(text)

	for _, fix := range contractionFixes {
		result = replaceWholeWordCI(result, fix[0], fix[1])
	}

	result = capitalizeSentences(result)

	if !strings.HasSuffix(result, ".") && !strings.HasSuffix(result, "!") && !strings.HasSuffix(result, "?") {
		result += "."
	}

	return result
}

func smartCleanup(input string) string {
	text := collapseWhitespace(strings.TrimSpace(input))
	text = cleanupFalseStart(text)

	tokens := strings.Fields(text)
	tokens = removeFillers(tokens)
	tokens = collapseRepeatedPhrases(tokens)
	tokens = removeStutterBeforeContraction(tokens)

	return normalizeSpacing(strings.Join(tokens, " "))
}

func collapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// ── Cleanup sub-passes ──────────────────────────────────────────────────────

// cleanupFalseStart drops everything before the last dash marker when the
// speaker restarted the sentence, either via a restart keyword ("actually",
// "let me", ...) or when the abandoned part is short.
func cleanupFalseStart(input string) string {
	for _, marker := range []string{"—", "–", "--"} {
		index := strings.LastIndex(input, marker)
		if index < 0 {
			continue
		}

		before := strings.TrimSpace(input[:index])
		after := strings.TrimSpace(strings.TrimLeft(input[index+len(marker):], "-—–"))

		if before == "" || after == "" {
			continue
		}

		lowerAfter := strings.ToLower(after)
		restart := strings.HasPrefix(lowerAfter, "actually") ||
			strings.HasPrefix(lowerAfter, "let me") ||
			strings.HasPrefix(lowerAfter, "sorry") ||
			strings.HasPrefix(lowerAfter, "i mean") ||
			strings.HasPrefix(lowerAfter, "wait") ||
			strings.HasPrefix(lowerAfter, "no ")

		if restart || len(strings.Fields(before)) <= 8 {
			return after
		}
	}

	return input
}

// removeFillers strips filler tokens. "um", "uh" and "hmm" always go;
// "you know", "i mean" and "like" only go when a pause (punctuation on an
// adjacent token) marks them as verbal tics rather than content words.
func removeFillers(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	i := 0

	for i < len(tokens) {
		if isPunctuationOnly(tokens[i]) {
			i++
			continue
		}

		current := tokenCore(tokens[i])
		next := ""
		if i+1 < len(tokens) {
			next = tokenCore(tokens[i+1])
		}
		prevHasPause := len(out) > 0 && tokenHasPause(out[len(out)-1])

		switch current {
		case "um", "uh", "hmm":
			if current == "uh" && next == "huh" {
				i += 2
				continue
			}
			i++
			continue
		}

		if current == "you" && next == "know" {
			if prevHasPause || tokenHasPause(tokens[i+1]) {
				i += 2
				continue
			}
		}

		if current == "i" && next == "mean" {
			if prevHasPause || tokenHasPause(tokens[i+1]) {
				i += 2
				continue
			}
		}

		if current == "like" {
			if prevHasPause || tokenHasPause(tokens[i]) {
				i++
				continue
			}
		}

		out = append(out, tokens[i])
		i++
	}

	return out
}

// collapseRepeatedPhrases deduplicates consecutive repeats of words and
// phrases up to three tokens long, preferring the longest match.
func collapseRepeatedPhrases(tokens []string) []string {
	if len(tokens) < 2 {
		return tokens
	}

	cores := make([]string, len(tokens))
	for i, token := range tokens {
		cores[i] = tokenCore(token)
	}

	out := make([]string, 0, len(tokens))
	i := 0

	for i < len(tokens) {
		remaining := len(tokens) - i
		maxPhraseLen := remaining / 2
		if maxPhraseLen > 3 {
			maxPhraseLen = 3
		}

		matchedLen := 0
		for phraseLen := maxPhraseLen; phraseLen >= 1; phraseLen-- {
			if repeatedPhraseAt(cores, i, phraseLen) {
				matchedLen = phraseLen
				break
			}
		}

		if matchedLen == 0 {
			out = append(out, tokens[i])
			i++
			continue
		}

		phrase := cores[i : i+matchedLen]
		out = append(out, tokens[i:i+matchedLen]...)
		i += matchedLen

		for i+matchedLen <= len(tokens) && coresEqual(cores[i:i+matchedLen], phrase) {
			i += matchedLen
		}
	}

	return out
}

func repeatedPhraseAt(cores []string, start, phraseLen int) bool {
	if phraseLen == 0 || start+phraseLen*2 > len(cores) {
		return false
	}

	left := cores[start : start+phraseLen]
	right := cores[start+phraseLen : start+phraseLen*2]

	for _, core := range left {
		if core == "" {
			return false
		}
	}
	for _, core := range right {
		if core == "" {
			return false
		}
	}

	return coresEqual(left, right)
}

func coresEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// removeStutterBeforeContraction drops a single-letter stutter immediately
// followed by its own contraction, as in "i... i'm ready".
func removeStutterBeforeContraction(tokens []string) []string {
	out := make([]string, 0, len(tokens))

	for index, token := range tokens {
		core := tokenCore(token)
		if len(core) == 1 && index+1 < len(tokens) {
			if strings.HasPrefix(tokenCore(tokens[index+1]), core+"'") {
				continue
			}
		}
		out = append(out, token)
	}

	return out
}

// ── Capitalization and spacing ──────────────────────────────────────────────

// capitalizeIForms uppercases standalone "i" and "i'" contractions.
func capitalizeIForms(text string) string {
	words := strings.Fields(text)
	out := make([]string, 0, len(words))

	for _, word := range words {
		lower := strings.ToLower(word)
		core := strings.TrimRight(lower, ",.!?")

		var fixed string
		switch {
		case core == "i":
			fixed = strings.Replace(lower, "i", "I", 1)
		case strings.HasPrefix(core, "i'") || strings.HasPrefix(core, "i’"):
			fixed = "I" + lower[1:]
		default:
			fixed = word
		}

		// Trailing punctuation from the original survives the rewrite.
		trailing := trailingPunct(word)
		if trailing != "" && trailingPunct(fixed) == "" {
			fixed += trailing
		}
		out = append(out, fixed)
	}

	return strings.Join(out, " ")
}

func trailingPunct(word string) string {
	end := len(word)
	for end > 0 {
		switch word[end-1] {
		case ',', '.', '!', '?':
			end--
		default:
			return word[end:]
		}
	}
	return word
}

// replaceWholeWordCI replaces whole words case-insensitively, keeping any
// trailing punctuation.
func replaceWholeWordCI(text, from, to string) string {
	words := strings.Fields(text)
	out := make([]string, 0, len(words))

	for _, word := range words {
		stripped := strings.TrimRight(word, ",.!?")
		trailing := word[len(stripped):]

		if strings.EqualFold(stripped, from) {
			out = append(out, to+trailing)
		} else {
			out = append(out, word)
		}
	}

	return strings.Join(out, " ")
}

// capitalizeSentences uppercases the first letter of the text and of every
// sentence after ".", "!" or "?".
func capitalizeSentences(text string) string {
	var result strings.Builder
	result.Grow(len(text))
	capitalizeNext := true

	for _, c := range text {
		if capitalizeNext && unicode.IsLetter(c) {
			result.WriteRune(unicode.ToUpper(c))
			capitalizeNext = false
			continue
		}
		result.WriteRune(c)
		if c == '.' || c == '!' || c == '?' {
			capitalizeNext = true
		}
	}

	return result.String()
}

// ── Token utilities ─────────────────────────────────────────────────────────

func tokenCore(token string) string {
	core := strings.TrimFunc(token, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	return strings.ToLower(core)
}

func tokenHasPause(token string) bool {
	for _, suffix := range []string{",", ";", ":", ".", "!", "?", "—", "–"} {
		if strings.HasSuffix(token, suffix) {
			return true
		}
	}
	return false
}

func isPunctuationOnly(token string) bool {
	for _, r := range token {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func normalizeSpacing(text string) string {
	out := text
	for _, pair := range [][2]string{
		{" ,", ","},
		{" .", "."},
		{" !", "!"},
		{" ?", "?"},
		{" ;", ";"},
		{" :", ":"},
	} {
		out = strings.ReplaceAll(out, pair[0], pair[1])
	}

	out = collapseWhitespace(out)
	out = strings.Trim(out, ",")
	return strings.TrimSpace(out)
}
