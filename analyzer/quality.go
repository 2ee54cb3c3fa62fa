package analyzer

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/seo-optimizer/contentgate/lexical"
)

// DefaultQualityPassScore is the mean metric score an article needs to pass.
const DefaultQualityPassScore = 75.0

var aiPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bdelve\b`),
	regexp.MustCompile(`\bunlock\b`),
	regexp.MustCompile(`\bevergreen\b`),
	regexp.MustCompile(`\bseamlessly\b`),
	regexp.MustCompile(`\brobust\b`),
	regexp.MustCompile(`\bpivot\b`),
	regexp.MustCompile(`\bsynergy\b`),
	regexp.MustCompile(`\bholistic\b`),
	regexp.MustCompile(`in conclusion`),
	regexp.MustCompile(`in summary`),
	regexp.MustCompile(`it's worth noting`),
}

var passivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bis\s+\w+ed\b`),
	regexp.MustCompile(`\bwas\s+\w+ed\b`),
	regexp.MustCompile(`\bwere\s+\w+ed\b`),
	regexp.MustCompile(`\bbeen\s+\w+ed\b`),
	regexp.MustCompile(`\bbe\s+\w+ed\b`),
	regexp.MustCompile(`\bare\s+\w+ed\b`),
}

var transitionWords = []string{
	"however", "therefore", "furthermore", "additionally", "moreover",
	"consequently", "thus", "hence", "first", "second", "third",
	"finally", "in addition", "as a result", "for example", "specifically",
}

var domainTerms = []string{
	"product", "feature", "roadmap", "stakeholder", "user", "customer",
	"requirement", "sprint", "backlog", "priority", "metric", "kpi",
	"release", "mvp", "iteration", "feedback", "research", "discovery",
}

// QualityAnalyzer scores the non-SEO properties of an article: tone,
// redundancy, voice, flow and product-management relevance.
type QualityAnalyzer struct {
	passScore float64
	now       func() time.Time
}

// NewQualityAnalyzer creates a QualityAnalyzer.
func NewQualityAnalyzer(passScore float64, now func() time.Time) *QualityAnalyzer {
	if now == nil {
		now = time.Now
	}
	return &QualityAnalyzer{passScore: passScore, now: now}
}

// Analyze runs the five quality metrics over content.
//
// The redundancy metric compares every pair of sentences, so its cost grows
// quadratically with the sentence count.
func (q *QualityAnalyzer) Analyze(content, keyword string) QualityReport {
	lower := strings.ToLower(content)

	human := q.checkHumanLikeness(lower)
	redundancy := q.checkRedundancy(content)
	active := q.checkActiveVoice(lower, content)
	flow := q.checkLogicalFlow(lower)
	relevance := q.checkDomainRelevance(lower)

	metrics := []CheckResult{human, redundancy, active, flow, relevance}
	overall, passed := gateScore(meanScore(metrics), q.passScore)

	return QualityReport{
		OverallScore:           overall,
		Passed:                 passed,
		HumanLikeness:          human.Score,
		RedundancyScore:        redundancy.Score,
		PassiveVoicePercentage: 100 - active.Score,
		LogicalFlowScore:       flow.Score,
		DomainRelevanceScore:   relevance.Score,
		Metrics:                metrics,
		AnalyzedAt:             q.now(),
	}
}

func (q *QualityAnalyzer) checkHumanLikeness(lower string) CheckResult {
	matches := 0
	for _, p := range aiPatterns {
		matches += len(p.FindAllStringIndex(lower, -1))
	}
	score := max(0, 100-float64(matches*5))
	return newCheck("Human-Likeness", score, score >= 80,
		fmt.Sprintf("Found %d AI-typical phrases", matches),
		"Replace stock phrases with plain, specific wording")
}

// jaccard returns |a ∩ b| / |a ∪ b| over the word sets of two sentences.
func jaccard(s1, s2 string) float64 {
	w1 := wordSet(s1)
	w2 := wordSet(s2)
	if len(w1) == 0 || len(w2) == 0 {
		return 0
	}
	shared := 0
	for w := range w1 {
		if _, ok := w2[w]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(w1)+len(w2)-shared)
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		set[w] = struct{}{}
	}
	return set
}

func (q *QualityAnalyzer) checkRedundancy(content string) CheckResult {
	var sentences []string
	for _, s := range lexical.Sentences(content) {
		s = strings.ToLower(strings.TrimSpace(s))
		if lexical.Length(s) > 20 {
			sentences = append(sentences, s)
		}
	}

	similar := 0
	for i := range sentences {
		for j := i + 1; j < len(sentences); j++ {
			if jaccard(sentences[i], sentences[j]) > 0.8 {
				similar++
			}
		}
	}

	score := max(0, 100-float64(similar*10))
	return newCheck("Redundancy Detection", score, score >= 85,
		fmt.Sprintf("Found %d potentially redundant sections", similar),
		"Merge or remove sentences that repeat the same point")
}

func (q *QualityAnalyzer) checkActiveVoice(lower, content string) CheckResult {
	passive := 0
	for _, p := range passivePatterns {
		passive += len(p.FindAllStringIndex(lower, -1))
	}

	ratio := 0.0
	if sentences := len(lexical.NonEmptySentences(content)); sentences > 0 {
		ratio = float64(passive) / float64(sentences)
	}

	score := max(0, 100-ratio*200)
	return newCheck("Active Voice", score, score >= 75,
		fmt.Sprintf("%.1f%% passive constructions", ratio*100),
		"Rewrite passive constructions in the active voice")
}

func (q *QualityAnalyzer) checkLogicalFlow(lower string) CheckResult {
	found := countTerms(lower, transitionWords)
	score := min(100, float64(found*8))
	return newCheck("Logical Flow", score, score >= 70,
		fmt.Sprintf("Found %d transition indicators", found),
		"Connect sections with transition words")
}

func (q *QualityAnalyzer) checkDomainRelevance(lower string) CheckResult {
	found := countTerms(lower, domainTerms)
	score := min(100, float64(found*6))
	return newCheck("Domain Relevance", score, score >= 80,
		fmt.Sprintf("Found %d product-management terms", found),
		"Ground the article in product-management practice")
}
