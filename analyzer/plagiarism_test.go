package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	reviewSentence = "The quarterly roadmap review starts on Monday"
	riskSentence   = "Every team presents its delivery risks first"
)

func TestNgramSimilarity_MaxOverReferences(t *testing.T) {
	content := "alpha beta gamma delta epsilon zeta"

	tests := []struct {
		name       string
		references []string
		want       float64
	}{
		{"half overlap then unrelated", []string{"alpha beta gamma delta", "one two three four"}, 50},
		{"unrelated then half overlap", []string{"one two three four", "alpha beta gamma delta"}, 50},
		{"disjoint halves are not summed", []string{"alpha beta gamma delta", "gamma delta epsilon zeta"}, 50},
		{"case is ignored", []string{"ALPHA Beta GAMMA delta epsilon zeta"}, 100},
		{"reference shorter than a trigram", []string{"alpha beta"}, 0},
		{"no references", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, NgramSimilarity(content, tt.references), 1e-9)
		})
	}

	assert.Zero(t, NgramSimilarity("too short", []string{"too short"}))
}

func TestCosineSimilarity_MaxOverReferences(t *testing.T) {
	content := "apple banana cherry"

	tests := []struct {
		name       string
		references []string
		want       float64
	}{
		{"identical then unrelated", []string{"apple banana cherry", "xylophone zebra quartz"}, 100},
		{"unrelated then identical", []string{"xylophone zebra quartz", "apple banana cherry"}, 100},
		{"unrelated only", []string{"xylophone zebra quartz"}, 0},
		{"no references", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CosineSimilarity(content, tt.references), 1e-6)
		})
	}
}

func TestSentenceDuplication(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		references []string
		want       float64
	}{
		{
			name:       "repeated sentence counts once",
			content:    reviewSentence + ". " + reviewSentence + ". " + riskSentence + ".",
			references: []string{reviewSentence + "."},
			want:       50,
		},
		{
			name:       "short sentences are ignored",
			content:    reviewSentence + ". " + riskSentence + ". Keep it brief.",
			references: []string{"Keep it brief. " + reviewSentence + "."},
			want:       50,
		},
		{
			name:       "match in a later reference",
			content:    reviewSentence + ". " + riskSentence + ".",
			references: []string{"Nothing in common here at all.", "every team presents its delivery risks first, always."},
			want:       50,
		},
		{
			name:       "only short sentences",
			content:    "Keep it brief. Ship it.",
			references: []string{"Keep it brief. Ship it."},
			want:       0,
		},
		{
			name:    "no references",
			content: reviewSentence + ".",
			want:    0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SentenceDuplication(tt.content, tt.references), 1e-9)
		})
	}
}

func TestPlagiarismChecker_PartialCopy(t *testing.T) {
	content := reviewSentence + ". " + riskSentence + "."
	report := NewPlagiarismChecker(DefaultOriginalityThreshold, fixedClock).
		Check(content, []string{"Unrelated notes about lunch.", reviewSentence + "."})

	assert.Equal(t, 50.0, report.SentenceDuplication)
	assert.LessOrEqual(t, report.OriginalityScore, 50.0)
	assert.False(t, report.Passed)
	assert.Equal(t, "Reference 2", report.FlaggedSections[0].Source)
}
