package debate

import (
	"regexp"
	"strings"

	"github.com/neurosnap/sentences"
)

var htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

// cleanForSpeech removes markdown and special characters that are not
// suitable for TTS.
func cleanForSpeech(text string) string {
	for _, marker := range []string{"*", "#", "_", "~", "`", "[", "]"} {
		text = strings.ReplaceAll(text, marker, "")
	}
	text = htmlTagRegex.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// trimSentences cuts the bot off after max sentences; the prompt asks for a
// short reply but the model does not always listen.
func trimSentences(tokenizer *sentences.DefaultSentenceTokenizer, text string, max int) string {
	text = strings.TrimSpace(text)
	if max <= 0 || tokenizer == nil {
		return text
	}
	sents := tokenizer.Tokenize(text)
	if len(sents) <= max {
		return text
	}
	parts := make([]string, max)
	for i := 0; i < max; i++ {
		parts[i] = strings.TrimSpace(sents[i].Text)
	}
	return strings.Join(parts, " ")
}
