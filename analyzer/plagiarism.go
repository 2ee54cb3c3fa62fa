package analyzer

import (
	"fmt"
	"strings"
	"time"

	"github.com/seo-optimizer/contentgate/lexical"
)

const (
	// DefaultOriginalityThreshold is the minimum originality score needed to
	// publish.
	DefaultOriginalityThreshold = 95.0

	// unreferencedOriginality is reported when there is nothing to compare
	// the content against.
	unreferencedOriginality = 98.5

	ngramSize         = 3
	minSentenceLength = 30
	phraseWindow      = 6
	maxFlagged        = 5
)

var rewriteRecommendations = []string{
	"Rephrase flagged sections using different vocabulary",
	"Add unique insights and perspectives",
	"Include original examples and case studies",
	"Restructure sentences for better originality",
}

// PlagiarismChecker compares content against reference texts with n-gram
// overlap, TF-IDF cosine similarity and sentence duplication.
type PlagiarismChecker struct {
	threshold float64
	now       func() time.Time
}

// NewPlagiarismChecker creates a checker that passes content whose
// originality score reaches threshold.
func NewPlagiarismChecker(threshold float64, now func() time.Time) *PlagiarismChecker {
	if now == nil {
		now = time.Now
	}
	return &PlagiarismChecker{threshold: threshold, now: now}
}

// Threshold returns the originality score required to pass.
func (p *PlagiarismChecker) Threshold() float64 {
	return p.threshold
}

// Check scores the originality of content against references.
func (p *PlagiarismChecker) Check(content string, references []string) PlagiarismReport {
	ngram := NgramSimilarity(content, references)
	cosine := CosineSimilarity(content, references)
	duplication := SentenceDuplication(content, references)

	originality := 100 - max(ngram, cosine, duplication)
	if len(references) == 0 {
		originality = unreferencedOriginality
	}
	originality, passed := gateScore(originality, p.threshold)

	recommendations := []string{}
	if !passed {
		recommendations = append(recommendations, rewriteRecommendations...)
	}

	return PlagiarismReport{
		OriginalityScore:       originality,
		Passed:                 passed,
		Threshold:              p.threshold,
		NgramSimilarity:        round2(ngram),
		CosineSimilarity:       round2(cosine),
		SentenceDuplication:    round2(duplication),
		FlaggedSections:        FlaggedSections(content, references),
		RewriteRecommendations: recommendations,
		AnalyzedAt:             p.now(),
	}
}

// NgramSimilarity returns the largest share, over all references, of the
// content's distinct trigrams that also occur in a reference, as 0-100.
func NgramSimilarity(content string, references []string) float64 {
	if len(references) == 0 {
		return 0
	}
	grams := lexical.Ngrams(content, ngramSize)
	if len(grams) == 0 {
		return 0
	}

	best := 0.0
	for _, ref := range references {
		refGrams := lexical.Ngrams(ref, ngramSize)
		if len(refGrams) == 0 {
			continue
		}
		shared := 0
		for g := range grams {
			if _, ok := refGrams[g]; ok {
				shared++
			}
		}
		best = max(best, float64(shared)/float64(len(grams))*100)
	}
	return clampScore(best)
}

// CosineSimilarity returns the largest TF-IDF cosine similarity between the
// content and any reference, as 0-100.
func CosineSimilarity(content string, references []string) float64 {
	if len(references) == 0 {
		return 0
	}
	corpus := lexical.NewCorpus(append([]string{content}, references...)...)
	vec := corpus.Vector(content)

	best := 0.0
	for _, ref := range references {
		best = max(best, lexical.Cosine(vec, corpus.Vector(ref))*100)
	}
	return clampScore(best)
}

// SentenceDuplication returns the percentage of the content's distinct
// sentences longer than 30 characters that appear verbatim, ignoring case,
// in some reference.
func SentenceDuplication(content string, references []string) float64 {
	if len(references) == 0 {
		return 0
	}
	sentences := make(map[string]struct{})
	for _, s := range lexical.Sentences(content) {
		s = strings.ToLower(strings.TrimSpace(s))
		if lexical.Length(s) > minSentenceLength {
			sentences[s] = struct{}{}
		}
	}
	if len(sentences) == 0 {
		return 0
	}

	lowered := make([]string, len(references))
	for i, ref := range references {
		lowered[i] = strings.ToLower(ref)
	}

	duplicates := 0
	for s := range sentences {
		for _, ref := range lowered {
			if strings.Contains(ref, s) {
				duplicates++
				break
			}
		}
	}
	return float64(duplicates) / float64(len(sentences)) * 100
}

// FlaggedSections slides a six-word window over content and records windows
// that appear verbatim, ignoring case, in a reference. At most five matches
// are returned.
func FlaggedSections(content string, references []string) []PlagiarismMatch {
	flagged := []PlagiarismMatch{}
	words := strings.Fields(content)

	for i, ref := range references {
		lowerRef := strings.ToLower(ref)
		for start := 0; start+phraseWindow <= len(words); start++ {
			phrase := strings.Join(words[start:start+phraseWindow], " ")
			if !strings.Contains(lowerRef, strings.ToLower(phrase)) {
				continue
			}
			flagged = append(flagged, PlagiarismMatch{
				Text:       phrase,
				Source:     fmt.Sprintf("Reference %d", i+1),
				Similarity: 100,
				MatchType:  MatchExactPhrase,
			})
			if len(flagged) >= maxFlagged {
				break
			}
		}
		if len(flagged) >= maxFlagged {
			break
		}
	}
	return flagged
}
