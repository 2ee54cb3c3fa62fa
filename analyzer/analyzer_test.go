package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seo-optimizer/contentgate/lexical"
)

var seoCheckNames = []string{
	"Word Count",
	"Keyword Density",
	"Keyword in Title",
	"Keyword in Introduction",
	"Heading Structure",
	"Keyword in Headings",
	"Meta Title Length",
	"Meta Description",
	"URL Slug",
	"Internal Linking",
	"External Linking",
	"Image Optimization",
	"Paragraph Length",
	"Sentence Length",
	"Readability",
	"Content Freshness",
	"LSI Keywords",
	"Question Content",
	"List Usage",
	"Numbered Lists",
	"Text Emphasis",
	"Content Depth",
	"Topic Coverage",
	"Call to Action",
	"Mobile Friendliness",
	"Featured Snippet Ready",
	"FAQ Schema Ready",
	"Semantic Structure",
	"Vocabulary Diversity",
	"SERP Competitiveness",
}

func checkByName(t *testing.T, checks []CheckResult, name string) CheckResult {
	t.Helper()
	for _, c := range checks {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("check %q not found", name)
	return CheckResult{}
}

func TestAnalyze_PublishableGuide(t *testing.T) {
	content := buildGuide(2200, 2.0)
	require.Equal(t, 2200, lexical.WordCount(content))
	require.Equal(t, 53, lexical.Length(guideTitle))

	a := New(WithClock(fixedClock), WithOriginalityThreshold(80))
	report := a.Analyze(Submission{
		Content: content,
		Keyword: guideKeyword,
		Title:   guideTitle,
	})

	seo := report.SEO
	assert.Equal(t, 2200, seo.WordCount)
	assert.InDelta(t, 2.0, seo.KeywordDensity, 0.001)
	assert.Equal(t, 6, seo.HeadingCount)
	assert.True(t, seo.Passed)
	assert.GreaterOrEqual(t, seo.OverallScore, DefaultSEOPassScore)

	assert.Equal(t, 100.0, checkByName(t, seo.Checks, "Word Count").Score)
	assert.Equal(t, 100.0, checkByName(t, seo.Checks, "Keyword Density").Score)
	assert.Equal(t, 100.0, checkByName(t, seo.Checks, "Heading Structure").Score)
	assert.Equal(t, 100.0, checkByName(t, seo.Checks, "Keyword in Headings").Score)
	assert.Equal(t, 100.0, checkByName(t, seo.Checks, "Content Freshness").Score)
	assert.Equal(t, 100.0, checkByName(t, seo.Checks, "SERP Competitiveness").Score)

	assert.True(t, report.Quality.Passed, "quality %.1f", report.Quality.OverallScore)
	assert.Equal(t, 100.0, report.Quality.HumanLikeness)
	assert.Equal(t, 0.0, report.Quality.PassiveVoicePercentage)

	assert.Equal(t, 98.5, report.Plagiarism.OriginalityScore)
	assert.True(t, report.Plagiarism.Passed)

	assert.True(t, report.CanPublish)
	assert.Empty(t, report.BlockingIssues)

	allowed, msg := CanExport(report)
	assert.True(t, allowed)
	assert.Equal(t, "All checks passed. Export enabled.", msg)
}

func TestSEOAnalyzer_CheckOrder(t *testing.T) {
	s := NewSEOAnalyzer(DefaultSEOPassScore, fixedClock)

	for _, content := range []string{"", "one line", buildGuide(2200, 2.0)} {
		report := s.Analyze(content, "roadmap", "")
		require.Len(t, report.Checks, len(seoCheckNames))
		for i, c := range report.Checks {
			assert.Equal(t, seoCheckNames[i], c.Name)
		}
	}
}

func TestSEOAnalyzer_NoHeadingsNoKeyword(t *testing.T) {
	s := NewSEOAnalyzer(DefaultSEOPassScore, fixedClock)
	content := "Plain text without any structure. Just a few short sentences here.\n\nAnother block follows."

	report := s.Analyze(content, "roadmap", "")

	assert.Equal(t, 0, report.HeadingCount)
	assert.Equal(t, 40.0, checkByName(t, report.Checks, "Heading Structure").Score)
	assert.Equal(t, 0.0, checkByName(t, report.Checks, "Keyword in Title").Score)
	assert.Equal(t, 30.0, checkByName(t, report.Checks, "Keyword in Introduction").Score)
	assert.Equal(t, 30.0, checkByName(t, report.Checks, "Keyword in Headings").Score)
	assert.Equal(t, 0.0, report.KeywordDensity)
	assert.False(t, report.Passed)
}

func TestSEOAnalyzer_EmptyKeyword(t *testing.T) {
	s := NewSEOAnalyzer(DefaultSEOPassScore, fixedClock)

	report := s.Analyze("# Title\n\nSome body text.", "", "Some title")

	assert.Equal(t, 0.0, report.KeywordDensity)
	assert.False(t, checkByName(t, report.Checks, "Keyword in Title").Passed)
	assert.False(t, checkByName(t, report.Checks, "Keyword in Introduction").Passed)
	assert.Equal(t, 60.0, checkByName(t, report.Checks, "URL Slug").Score)
}

func TestSEOAnalyzer_MetaFallbacks(t *testing.T) {
	s := NewSEOAnalyzer(DefaultSEOPassScore, fixedClock)

	report := s.Analyze("## Short Heading\nbody", "heading", "")

	assert.Equal(t, len("Short Heading"), report.MetaTitleLength)
	assert.Equal(t, len("## Short Heading\nbody"), report.MetaDescriptionLength)
}

func TestSEOAnalyzer_Freshness(t *testing.T) {
	s := NewSEOAnalyzer(DefaultSEOPassScore, fixedClock)

	tests := []struct {
		name    string
		content string
		want    float64
	}{
		{"current year", "Updated for 2026.", 100},
		{"previous year", "Numbers from 2025.", 100},
		{"stale", "Numbers from 2019.", 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := s.Analyze(tt.content, "numbers", "")
			assert.Equal(t, tt.want, checkByName(t, report.Checks, "Content Freshness").Score)
		})
	}
}

func TestQualityAnalyzer_Metrics(t *testing.T) {
	q := NewQualityAnalyzer(DefaultQualityPassScore, fixedClock)

	t.Run("ai phrases", func(t *testing.T) {
		report := q.Analyze("We delve into robust synergy today. Nothing else to say here.", "")
		assert.Equal(t, 85.0, report.HumanLikeness)
	})

	t.Run("passive voice", func(t *testing.T) {
		report := q.Analyze("The plan was approved. The code is tested.", "")
		assert.Equal(t, 100.0, report.PassiveVoicePercentage)
		metric := checkByName(t, report.Metrics, "Active Voice")
		assert.False(t, metric.Passed)
		assert.Len(t, metric.Recommendations, 1)
	})

	t.Run("redundancy", func(t *testing.T) {
		s := "The product team reviews the backlog every week"
		report := q.Analyze(s+". "+s+". "+s+".", "")
		assert.Equal(t, 70.0, report.RedundancyScore)
	})

	t.Run("flow and relevance", func(t *testing.T) {
		report := q.Analyze("However, the roadmap shows each feature. Therefore, the customer wins.", "")
		assert.Equal(t, 16.0, report.LogicalFlowScore)
		assert.Equal(t, 18.0, report.DomainRelevanceScore)
	})

	t.Run("empty content", func(t *testing.T) {
		report := q.Analyze("", "")
		assert.Equal(t, 0.0, report.PassiveVoicePercentage)
		assert.Len(t, report.Metrics, 5)
	})
}

func TestPlagiarismChecker_NoReferences(t *testing.T) {
	p := NewPlagiarismChecker(DefaultOriginalityThreshold, fixedClock)

	for _, content := range []string{"", copiedPassage, buildGuide(2200, 2.0)} {
		report := p.Check(content, nil)
		assert.Equal(t, 98.5, report.OriginalityScore)
		assert.True(t, report.Passed)
		assert.Empty(t, report.FlaggedSections)
		assert.Empty(t, report.RewriteRecommendations)
	}
}

func TestPlagiarismChecker_VerbatimCopy(t *testing.T) {
	p := NewPlagiarismChecker(DefaultOriginalityThreshold, fixedClock)

	report := p.Check(copiedPassage, []string{copiedPassage})

	assert.LessOrEqual(t, report.OriginalityScore, 5.0)
	assert.GreaterOrEqual(t, report.OriginalityScore, 0.0)
	assert.False(t, report.Passed)
	assert.GreaterOrEqual(t, report.NgramSimilarity, 95.0)
	assert.GreaterOrEqual(t, report.SentenceDuplication, 95.0)
	assert.Len(t, report.RewriteRecommendations, 4)

	require.Len(t, report.FlaggedSections, maxFlagged)
	for _, m := range report.FlaggedSections {
		assert.Equal(t, "Reference 1", m.Source)
		assert.Equal(t, MatchExactPhrase, m.MatchType)
		assert.Equal(t, 100.0, m.Similarity)
		assert.Len(t, strings.Fields(m.Text), phraseWindow)
	}
}

func TestPlagiarismChecker_UnrelatedReference(t *testing.T) {
	p := NewPlagiarismChecker(DefaultOriginalityThreshold, fixedClock)

	report := p.Check(copiedPassage, []string{"Bananas ripen faster next to apples in a paper bag."})

	assert.Equal(t, 0.0, report.NgramSimilarity)
	assert.Equal(t, 0.0, report.SentenceDuplication)
	assert.Empty(t, report.FlaggedSections)
	assert.Greater(t, report.OriginalityScore, 50.0)
}

func TestFlaggedSections_LabelsReference(t *testing.T) {
	refs := []string{"nothing shared here at all", "the quick brown fox jumps over the lazy dog"}

	flagged := FlaggedSections("Yesterday the quick brown fox jumps over the lazy dog again", refs)

	require.NotEmpty(t, flagged)
	assert.Equal(t, "Reference 2", flagged[0].Source)
	assert.Equal(t, "the quick brown fox jumps over", flagged[0].Text)
}

func TestAnalyze_CanPublishRequiresAllThree(t *testing.T) {
	sub := Submission{Content: copiedPassage, Keyword: "discovery", Title: "Discovery"}

	tests := []struct {
		name       string
		thresholds Thresholds
		wantIssue  string
	}{
		{
			name:       "seo fails",
			thresholds: Thresholds{SEOPassScore: 101, QualityPassScore: 0, OriginalityThreshold: 0},
			wantIssue:  "SEO score",
		},
		{
			name:       "quality fails",
			thresholds: Thresholds{SEOPassScore: 0, QualityPassScore: 101, OriginalityThreshold: 0},
			wantIssue:  "Quality score",
		},
		{
			name:       "originality fails",
			thresholds: Thresholds{SEOPassScore: 0, QualityPassScore: 0, OriginalityThreshold: 99},
			wantIssue:  "PUBLISHING BLOCKED",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := New(WithClock(fixedClock), WithThresholds(tt.thresholds)).Analyze(sub)
			assert.False(t, report.CanPublish)
			require.Len(t, report.BlockingIssues, 1)
			assert.Contains(t, report.BlockingIssues[0], tt.wantIssue)
		})
	}

	t.Run("all pass", func(t *testing.T) {
		report := New(WithClock(fixedClock), WithThresholds(Thresholds{})).Analyze(sub)
		assert.True(t, report.CanPublish)
		assert.Empty(t, report.BlockingIssues)
	})
}

func TestAnalyze_Deterministic(t *testing.T) {
	a := New(WithClock(fixedClock))
	sub := Submission{
		Content:    buildGuide(2200, 2.0),
		Keyword:    guideKeyword,
		Title:      guideTitle,
		References: []string{copiedPassage},
	}

	first := a.Analyze(sub)
	second := a.Analyze(sub)

	assert.Equal(t, first, second)
	assert.Equal(t, fixedNow, first.AnalyzedAt)
}

func TestAnalyze_ScoresBounded(t *testing.T) {
	a := New(WithClock(fixedClock))
	inputs := []Submission{
		{},
		{Content: "?!?!...", Keyword: "x"},
		{Content: strings.Repeat("keyword ", 500), Keyword: "keyword"},
		{Content: copiedPassage, References: []string{copiedPassage, ""}},
		{Content: "**a** **b** ![](x.png) [l](http://x)", Keyword: "a", Title: strings.Repeat("t", 200)},
	}

	for _, sub := range inputs {
		report := a.Analyze(sub)
		scores := []float64{
			report.SEO.OverallScore,
			report.Quality.OverallScore,
			report.Plagiarism.OriginalityScore,
		}
		for _, c := range append(report.SEO.Checks, report.Quality.Metrics...) {
			scores = append(scores, c.Score)
			if c.Passed {
				assert.Empty(t, c.Recommendations, c.Name)
			}
		}
		for _, s := range scores {
			assert.GreaterOrEqual(t, s, 0.0)
			assert.LessOrEqual(t, s, 100.0)
		}
	}
}

func TestCanExport(t *testing.T) {
	passing := func() *FullAnalysisReport {
		return &FullAnalysisReport{
			SEO:        SEOReport{OverallScore: 80, Passed: true},
			Quality:    QualityReport{OverallScore: 40, Passed: false},
			Plagiarism: PlagiarismReport{OriginalityScore: 97, Threshold: 95, Passed: true},
		}
	}

	t.Run("quality does not block export", func(t *testing.T) {
		allowed, msg := CanExport(passing())
		assert.True(t, allowed)
		assert.Equal(t, "All checks passed. Export enabled.", msg)
	})

	t.Run("originality reported before seo", func(t *testing.T) {
		r := passing()
		r.SEO.Passed = false
		r.Plagiarism = PlagiarismReport{OriginalityScore: 62.5, Threshold: 95}
		allowed, msg := CanExport(r)
		assert.False(t, allowed)
		assert.Equal(t, "BLOCKED: Originality score (62.5%) is below 95.0% threshold", msg)
	})

	t.Run("seo", func(t *testing.T) {
		r := passing()
		r.SEO = SEOReport{OverallScore: 55.4}
		allowed, msg := CanExport(r)
		assert.False(t, allowed)
		assert.Equal(t, "SEO score (55.4) needs improvement", msg)
	})

	t.Run("nil report", func(t *testing.T) {
		allowed, _ := CanExport(nil)
		assert.False(t, allowed)
	})

	t.Run("status", func(t *testing.T) {
		status := NewExportStatus(passing())
		assert.True(t, status.CanExport)
		assert.Equal(t, 97.0, status.OriginalityScore)
		assert.Equal(t, 95.0, status.OriginalityThreshold)
		assert.False(t, status.QualityPassed)
	})
}
