package formatter

import "strings"

// Replacement is one user dictionary substitution rule.
type Replacement struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ApplyReplacements substitutes whole words using the user's dictionary.
// Matching is case-insensitive against From; the output uses the exact To
// spelling. Trailing sentence punctuation on the matched word is kept. Rules
// are tried in order and the first match wins.
func ApplyReplacements(text string, replacements []Replacement) string {
	if len(replacements) == 0 {
		return text
	}

	words := strings.Fields(text)
	out := make([]string, 0, len(words))

	for _, word := range words {
		stripped := strings.TrimRight(word, ",.!?")
		trailing := word[len(stripped):]

		replaced := false
		for _, entry := range replacements {
			if strings.EqualFold(stripped, entry.From) {
				out = append(out, entry.To+trailing)
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, word)
		}
	}

	return strings.Join(out, " ")
}
