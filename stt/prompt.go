package stt

import "strings"

// Whisper's hard prompt limit is ~224 tokens (~890 characters). 850 leaves
// margin to avoid mid-word truncation.
const maxPromptChars = 850

// stylePrompt establishes output style by example: proper capitalization and
// punctuation. The model treats the prompt as previous transcript context,
// not as instructions.
const stylePrompt = "I discussed the project requirements with the team, then reviewed the implementation details and pushed the changes."

// BuildInitialPrompt builds the conditioning prompt fed to the transcription
// model: the style sentence plus a "Glossary: term1, term2, ..." suffix that
// biases recognition toward the user's vocabulary. The glossary is truncated
// at a word boundary so the prompt never exceeds the model limit.
func BuildInitialPrompt(glossary []string) string {
	if len(glossary) == 0 {
		return stylePrompt
	}

	prompt := stylePrompt + " Glossary: " + strings.Join(glossary, ", ")
	if len(prompt) <= maxPromptChars {
		return prompt
	}

	available := maxPromptChars - len(stylePrompt) - len(" Glossary: ")
	var truncated strings.Builder
	for _, word := range glossary {
		next := word
		if truncated.Len() > 0 {
			next = ", " + word
		}
		if truncated.Len()+len(next) > available {
			break
		}
		truncated.WriteString(next)
	}

	return stylePrompt + " Glossary: " + truncated.String()
}
