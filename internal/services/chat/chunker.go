package chat

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// chunkThreshold bounds how many characters of consecutive sentences are
// grouped into one chunk. A single sentence longer than this is never
// split; the threshold bounds grouping, not sentence length. Measured in
// runes, not bytes, so currency symbols and accents count as one.
const chunkThreshold = 120

// ChunkSentences splits text into bounded-length chunks for incremental
// delivery. Sentences end where '.', '!' or '?' is immediately followed
// by whitespace; the terminator stays with its sentence. Consecutive
// sentences are packed greedily until the threshold would be reached.
func ChunkSentences(text string) []string {
	sentences := splitSentences(text)
	chunks := make([]string, 0, len(sentences))

	current := ""
	currentLen := 0
	for _, sentence := range sentences {
		if currentLen+utf8.RuneCountInString(sentence) < chunkThreshold {
			current += sentence + " "
			currentLen += utf8.RuneCountInString(sentence) + 1
			continue
		}
		if trimmed := strings.TrimSpace(current); trimmed != "" {
			chunks = append(chunks, trimmed)
		}
		current = sentence + " "
		currentLen = utf8.RuneCountInString(sentence) + 1
	}

	if trimmed := strings.TrimSpace(current); trimmed != "" {
		chunks = append(chunks, trimmed)
	}

	return chunks
}

func splitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var sentences []string
	runes := []rune(text)
	start := 0

	for i := 0; i < len(runes)-1; i++ {
		if !isTerminator(runes[i]) || !unicode.IsSpace(runes[i+1]) {
			continue
		}

		if sentence := strings.TrimSpace(string(runes[start : i+1])); sentence != "" {
			sentences = append(sentences, sentence)
		}

		j := i + 1
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		start = j
		i = j - 1
	}

	if start < len(runes) {
		if sentence := strings.TrimSpace(string(runes[start:])); sentence != "" {
			sentences = append(sentences, sentence)
		}
	}

	return sentences
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
