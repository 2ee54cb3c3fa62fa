// Package lexical provides the low-level text statistics shared by the SEO,
// quality and originality analyzers. Every function is pure.
package lexical

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	sentenceDelimiter = regexp.MustCompile(`[.!?]+`)
	headingLine       = regexp.MustCompile(`(?m)^#{1,6}\s+.+$`)
)

// Words splits text on whitespace.
func Words(text string) []string {
	return strings.Fields(text)
}

// WordCount returns the number of whitespace separated tokens in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// Sentences splits text on runs of '.', '!' and '?'. Fragments are returned
// untrimmed and may be empty at the boundaries; callers filter.
func Sentences(text string) []string {
	return sentenceDelimiter.Split(text, -1)
}

// NonEmptySentences returns the trimmed, non-empty fragments of Sentences.
func NonEmptySentences(text string) []string {
	parts := Sentences(text)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Headings returns the markdown heading lines of text in source order.
func Headings(text string) []string {
	return headingLine.FindAllString(text, -1)
}

// Paragraphs splits text on blank lines and drops whitespace-only blocks.
func Paragraphs(text string) []string {
	var out []string
	for _, p := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

// FirstParagraph returns the text before the first blank line, or the first
// 500 characters when there is no blank line.
func FirstParagraph(text string) string {
	if i := strings.Index(text, "\n\n"); i >= 0 {
		return text[:i]
	}
	return Truncate(text, 500)
}

// Truncate returns at most n characters of s.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

// Length returns the character (rune) length of s.
func Length(s string) int {
	return utf8.RuneCountInString(s)
}

// CountOccurrences counts the non-overlapping, case-insensitive occurrences
// of needle in text. An empty needle never occurs.
func CountOccurrences(text, needle string) int {
	if needle == "" {
		return 0
	}
	return strings.Count(strings.ToLower(text), strings.ToLower(needle))
}

// ContainsFold reports whether needle occurs in text ignoring case. An empty
// needle is never contained.
func ContainsFold(text, needle string) bool {
	if needle == "" {
		return false
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(needle))
}

// Ngrams returns the set of contiguous n-word tuples of the lowercased text.
// Tuples are keyed by their words joined with a single space. Repeated
// tuples collapse into one entry.
func Ngrams(text string, n int) map[string]struct{} {
	words := strings.Fields(strings.ToLower(text))
	set := make(map[string]struct{})
	if n <= 0 {
		return set
	}
	for i := 0; i+n <= len(words); i++ {
		set[strings.Join(words[i:i+n], " ")] = struct{}{}
	}
	return set
}

// SyllableCount estimates the syllables of word by counting vowel groups.
// A trailing 'e' is silent and every word has at least one syllable.
func SyllableCount(word string) int {
	word = strings.ToLower(word)
	count := 0
	prevVowel := false
	for _, r := range word {
		vowel := strings.ContainsRune("aeiouy", r)
		if vowel && !prevVowel {
			count++
		}
		prevVowel = vowel
	}
	if strings.HasSuffix(word, "e") {
		count--
	}
	if count <= 0 {
		count = 1
	}
	return count
}

// Readability returns the Flesch Reading Ease of text clamped to [0, 100],
// or 0 when text has no words or no sentences.
func Readability(text string) float64 {
	words := strings.Fields(text)
	sentences := NonEmptySentences(text)
	if len(words) == 0 || len(sentences) == 0 {
		return 0
	}

	syllables := 0
	for _, w := range words {
		syllables += SyllableCount(w)
	}

	wordsPerSentence := float64(len(words)) / float64(len(sentences))
	syllablesPerWord := float64(syllables) / float64(len(words))
	score := 206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord
	return max(0, min(100, score))
}
