package analyzer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/seo-optimizer/contentgate/lexical"
)

// SEO policy constants. The numeric bands in the checks below are part of the
// scoring contract and are kept inline next to the check that uses them.
const (
	DefaultSEOPassScore = 70.0

	minWordCount       = 2000
	maxWordCount       = 3500
	minKeywordDensity  = 1.0
	maxKeywordDensity  = 3.0
	minHeadings        = 5
	minMetaTitle       = 50
	maxMetaTitle       = 60
	minMetaDescription = 150
	maxMetaDescription = 160
)

var (
	markdownLink  = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	markdownImage = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
	bulletLine    = regexp.MustCompile(`(?m)^[\*\-]\s`)
	numberedLine  = regexp.MustCompile(`(?m)^\d+\.\s`)
	boldText      = regexp.MustCompile(`\*\*[^*]+\*\*`)
	slugSeparator = regexp.MustCompile(`[^a-z0-9]+`)
)

var (
	lsiTerms = []string{
		"strategy", "implementation", "best practices", "tools", "workflow",
		"automation", "efficiency", "enterprise", "solution", "platform",
	}
	expectedTopics = []string{
		"introduction", "overview", "implementation", "best practice",
		"challenge", "solution", "conclusion", "example",
	}
	ctaPhrases = []string{
		"learn more", "get started", "contact", "download", "try", "sign up",
		"read more", "explore", "discover",
	}
)

// SEOAnalyzer runs the fixed battery of SEO checks over an article
type SEOAnalyzer struct {
	passScore float64
	now       func() time.Time
}

// NewSEOAnalyzer creates an SEOAnalyzer. now supplies the analysis time and
// the reference year of the freshness check.
func NewSEOAnalyzer(passScore float64, now func() time.Time) *SEOAnalyzer {
	if now == nil {
		now = time.Now
	}
	return &SEOAnalyzer{passScore: passScore, now: now}
}

// seoInput holds the text features shared by several checks.
type seoInput struct {
	content     string
	lower       string
	keyword     string
	title       string
	wordCount   int
	sentences   []string
	headings    []string
	paragraphs  []string
	firstPara   string
	links       [][]string
	images      [][]string
	density     float64
	readability float64
	metaTitle   string
	metaDesc    string
}

func newSEOInput(content, keyword, title string) *seoInput {
	in := &seoInput{
		content:     content,
		lower:       strings.ToLower(content),
		keyword:     keyword,
		title:       title,
		wordCount:   lexical.WordCount(content),
		sentences:   lexical.NonEmptySentences(content),
		headings:    lexical.Headings(content),
		paragraphs:  lexical.Paragraphs(content),
		firstPara:   lexical.FirstParagraph(content),
		links:       markdownLink.FindAllStringSubmatch(content, -1),
		images:      markdownImage.FindAllStringSubmatch(content, -1),
		readability: lexical.Readability(content),
	}

	if in.wordCount > 0 {
		in.density = float64(lexical.CountOccurrences(content, keyword)) / float64(in.wordCount) * 100
	}

	in.metaTitle = title
	if in.metaTitle == "" {
		firstLine, _, _ := strings.Cut(content, "\n")
		in.metaTitle = strings.TrimSpace(strings.ReplaceAll(firstLine, "#", ""))
	}
	in.metaDesc = lexical.Truncate(in.firstPara, maxMetaDescription)
	return in
}

// Analyze performs the complete SEO analysis of content for keyword
func (s *SEOAnalyzer) Analyze(content, keyword, title string) SEOReport {
	in := newSEOInput(content, keyword, title)

	checks := []CheckResult{
		s.checkWordCount(in.wordCount),
		s.checkKeywordDensity(in.density),
		s.checkKeywordInTitle(in.keyword, in.title),
		s.checkKeywordInIntro(in.keyword, in.firstPara),
		s.checkHeadingStructure(in.headings),
		s.checkKeywordInHeadings(in.keyword, in.headings),
		s.checkMetaTitle(in.metaTitle),
		s.checkMetaDescription(in.metaDesc),
		s.checkURLSlug(in.keyword, in.title),
		s.checkInternalLinking(in.links),
		s.checkExternalLinking(in.links),
		s.checkImageOptimization(in.images),
		s.checkParagraphLength(in.paragraphs),
		s.checkSentenceLength(in.sentences),
		s.checkReadability(in.readability),
		s.checkFreshness(in.content),
		s.checkLSIKeywords(in.lower),
		s.checkQuestions(in.content),
		s.checkListUsage(in.content),
		s.checkNumberedLists(in.content),
		s.checkEmphasis(in.content),
		s.checkContentDepth(in.wordCount, len(in.headings)),
		s.checkTopicCoverage(in.lower),
		s.checkCallToAction(in.lower),
		s.checkMobileFriendliness(in.paragraphs),
		s.checkFeaturedSnippet(in.lower, in.content),
		s.checkFAQSchema(in.lower),
		s.checkSemanticStructure(in.headings),
		s.checkVocabularyDiversity(in.lower),
		s.checkSERPCompetitiveness(in.wordCount, len(in.headings), in.density),
	}

	overall, passed := gateScore(meanScore(checks), s.passScore)

	return SEOReport{
		OverallScore:          overall,
		Passed:                passed,
		Checks:                checks,
		KeywordDensity:        round2(in.density),
		ReadabilityScore:      round1(in.readability),
		WordCount:             in.wordCount,
		HeadingCount:          len(in.headings),
		MetaTitleLength:       lexical.Length(in.metaTitle),
		MetaDescriptionLength: lexical.Length(in.metaDesc),
		AnalyzedAt:            s.now(),
	}
}

func (s *SEOAnalyzer) checkWordCount(count int) CheckResult {
	const name = "Word Count"
	rec := "Aim for 2000-3000 words for comprehensive coverage"
	switch {
	case count >= minWordCount && count <= maxWordCount:
		return newCheck(name, 100, true, fmt.Sprintf("Word count (%d) is within optimal range", count))
	case count < minWordCount:
		return newCheck(name, float64(count)/minWordCount*100, false,
			fmt.Sprintf("Word count (%d) is below minimum (%d)", count, minWordCount), rec)
	default:
		return newCheck(name, 80, true, fmt.Sprintf("Word count (%d) exceeds recommended maximum", count))
	}
}

func (s *SEOAnalyzer) checkKeywordDensity(density float64) CheckResult {
	const name = "Keyword Density"
	rec := "Target 1-3% keyword density"
	switch {
	case density >= minKeywordDensity && density <= maxKeywordDensity:
		return newCheck(name, 100, true, fmt.Sprintf("Keyword density (%.2f%%) is optimal", density))
	case density < minKeywordDensity:
		return newCheck(name, 60, false, fmt.Sprintf("Keyword density (%.2f%%) is too low", density), rec)
	default:
		return newCheck(name, 50, false,
			fmt.Sprintf("Keyword density (%.2f%%) is too high (keyword stuffing risk)", density), rec)
	}
}

func (s *SEOAnalyzer) checkKeywordInTitle(keyword, title string) CheckResult {
	if lexical.ContainsFold(title, keyword) {
		return newCheck("Keyword in Title", 100, true, "Keyword present in title")
	}
	return newCheck("Keyword in Title", 0, false, "Keyword missing from title",
		"Include target keyword in the title")
}

func (s *SEOAnalyzer) checkKeywordInIntro(keyword, intro string) CheckResult {
	if lexical.ContainsFold(intro, keyword) {
		return newCheck("Keyword in Introduction", 100, true, "Keyword present in first paragraph")
	}
	return newCheck("Keyword in Introduction", 30, false, "Keyword missing from introduction",
		"Include keyword in the first paragraph")
}

func (s *SEOAnalyzer) checkHeadingStructure(headings []string) CheckResult {
	const name = "Heading Structure"
	if len(headings) >= minHeadings {
		h1, h2 := 0, 0
		for _, h := range headings {
			switch {
			case strings.HasPrefix(h, "# "):
				h1++
			case strings.HasPrefix(h, "## "):
				h2++
			}
		}
		if h1 == 1 && h2 >= 3 {
			return newCheck(name, 100, true, "Proper heading hierarchy")
		}
		return newCheck(name, 75, true, "Good heading usage, consider hierarchy")
	}
	return newCheck(name, 40, false, fmt.Sprintf("Only %d headings found", len(headings)),
		fmt.Sprintf("Add at least %d headings for better structure", minHeadings))
}

func (s *SEOAnalyzer) checkKeywordInHeadings(keyword string, headings []string) CheckResult {
	const name = "Keyword in Headings"
	n := 0
	for _, h := range headings {
		if lexical.ContainsFold(h, keyword) {
			n++
		}
	}
	switch {
	case n >= 2:
		return newCheck(name, 100, true, fmt.Sprintf("Keyword in %d headings", n))
	case n == 1:
		return newCheck(name, 70, true, "Keyword in 1 heading")
	default:
		return newCheck(name, 30, false, "Keyword missing from headings",
			"Include keyword in at least 2 headings")
	}
}

func (s *SEOAnalyzer) checkMetaTitle(title string) CheckResult {
	const name = "Meta Title Length"
	length := lexical.Length(title)
	switch {
	case length >= minMetaTitle && length <= maxMetaTitle:
		return newCheck(name, 100, true, fmt.Sprintf("Title length (%d) is optimal", length))
	case length < minMetaTitle:
		return newCheck(name, 60, false, fmt.Sprintf("Title too short (%d chars)", length),
			"Expand title to 50-60 characters")
	default:
		return newCheck(name, 70, true, fmt.Sprintf("Title slightly long (%d chars)", length))
	}
}

func (s *SEOAnalyzer) checkMetaDescription(desc string) CheckResult {
	const name = "Meta Description"
	length := lexical.Length(desc)
	switch {
	case length >= minMetaDescription && length <= maxMetaDescription:
		return newCheck(name, 100, true, fmt.Sprintf("Description length (%d) is optimal", length))
	case length < minMetaDescription:
		return newCheck(name, 50, false, fmt.Sprintf("Description too short (%d chars)", length),
			"Expand to 150-160 characters")
	default:
		return newCheck(name, 70, true, fmt.Sprintf("Description will be truncated (%d chars)", length))
	}
}

// slugify lowercases title and joins its alphanumeric runs with dashes.
func slugify(title string) string {
	return strings.Trim(slugSeparator.ReplaceAllString(strings.ToLower(title), "-"), "-")
}

func (s *SEOAnalyzer) checkURLSlug(keyword, title string) CheckResult {
	want := strings.ReplaceAll(strings.ToLower(keyword), " ", "-")
	if want != "" && strings.Contains(slugify(title), want) {
		return newCheck("URL Slug", 100, true, "Keyword-friendly URL")
	}
	return newCheck("URL Slug", 60, true, "URL could include keyword")
}

func (s *SEOAnalyzer) checkInternalLinking(links [][]string) CheckResult {
	const name = "Internal Linking"
	switch {
	case len(links) >= 3:
		return newCheck(name, 100, true, fmt.Sprintf("%d links found", len(links)))
	case len(links) >= 1:
		return newCheck(name, 70, true, fmt.Sprintf("Only %d links", len(links)))
	default:
		return newCheck(name, 40, false, "No links found", "Add internal links to boost SEO")
	}
}

func (s *SEOAnalyzer) checkExternalLinking(links [][]string) CheckResult {
	external := 0
	for _, l := range links {
		if strings.Contains(l[2], "http") {
			external++
		}
	}
	if external >= 2 {
		return newCheck("External Linking", 100, true, fmt.Sprintf("%d external links", external))
	}
	return newCheck("External Linking", 60, true, "Limited external links")
}

func (s *SEOAnalyzer) checkImageOptimization(images [][]string) CheckResult {
	const name = "Image Optimization"
	if len(images) >= 3 {
		for _, img := range images {
			if img[1] == "" {
				return newCheck(name, 70, true, "Some images missing alt text")
			}
		}
		return newCheck(name, 100, true, "Images have alt text")
	}
	return newCheck(name, 50, true, "Consider adding more images")
}

func (s *SEOAnalyzer) checkParagraphLength(paragraphs []string) CheckResult {
	long := 0
	for _, p := range paragraphs {
		if lexical.WordCount(p) > 150 {
			long++
		}
	}
	if long == 0 {
		return newCheck("Paragraph Length", 100, true, "Paragraphs are well-sized")
	}
	return newCheck("Paragraph Length", 70, true, fmt.Sprintf("%d long paragraphs", long))
}

func (s *SEOAnalyzer) checkSentenceLength(sentences []string) CheckResult {
	avg := 0.0
	if len(sentences) > 0 {
		words := 0
		for _, sentence := range sentences {
			words += lexical.WordCount(sentence)
		}
		avg = float64(words) / float64(len(sentences))
	}
	if avg <= 20 {
		return newCheck("Sentence Length", 100, true, fmt.Sprintf("Average %.1f words/sentence", avg))
	}
	return newCheck("Sentence Length", 60, true, fmt.Sprintf("Average %.1f words is high", avg))
}

func (s *SEOAnalyzer) checkReadability(score float64) CheckResult {
	if score >= 60 {
		return newCheck("Readability", score, true, fmt.Sprintf("Flesch score: %.1f", score))
	}
	return newCheck("Readability", score, false, fmt.Sprintf("Flesch score: %.1f is low", score),
		"Simplify language for broader audience")
}

func (s *SEOAnalyzer) checkFreshness(content string) CheckResult {
	year := s.now().Year()
	if strings.Contains(content, strconv.Itoa(year)) || strings.Contains(content, strconv.Itoa(year-1)) {
		return newCheck("Content Freshness", 100, true, "Recent date references found")
	}
	return newCheck("Content Freshness", 60, true, "No recent date references")
}

// countTerms returns how many of terms appear in the lowercased text.
func countTerms(lower string, terms []string) int {
	found := 0
	for _, t := range terms {
		if strings.Contains(lower, t) {
			found++
		}
	}
	return found
}

func (s *SEOAnalyzer) checkLSIKeywords(lower string) CheckResult {
	found := countTerms(lower, lsiTerms)
	if found >= 5 {
		return newCheck("LSI Keywords", 100, true, fmt.Sprintf("%d related terms found", found))
	}
	return newCheck("LSI Keywords", float64(found*20), true, fmt.Sprintf("Only %d related terms", found))
}

func (s *SEOAnalyzer) checkQuestions(content string) CheckResult {
	questions := strings.Count(content, "?")
	if questions >= 5 {
		return newCheck("Question Content", 100, true, fmt.Sprintf("%d questions included", questions))
	}
	return newCheck("Question Content", 60, true, "Limited question-based content")
}

func (s *SEOAnalyzer) checkListUsage(content string) CheckResult {
	if len(bulletLine.FindAllStringIndex(content, -1)) >= 3 {
		return newCheck("List Usage", 100, true, "Good use of bullet points")
	}
	return newCheck("List Usage", 60, true, "Limited list usage")
}

func (s *SEOAnalyzer) checkNumberedLists(content string) CheckResult {
	if numberedLine.MatchString(content) {
		return newCheck("Numbered Lists", 100, true, "Numbered lists present")
	}
	return newCheck("Numbered Lists", 70, true, "No numbered lists")
}

func (s *SEOAnalyzer) checkEmphasis(content string) CheckResult {
	bold := len(boldText.FindAllStringIndex(content, -1))
	switch {
	case bold >= 3 && bold <= 20:
		return newCheck("Text Emphasis", 100, true, "Good use of bold text")
	case bold > 20:
		return newCheck("Text Emphasis", 70, true, "Excessive bold usage")
	default:
		return newCheck("Text Emphasis", 60, true, "Limited emphasis")
	}
}

func (s *SEOAnalyzer) checkContentDepth(words, headings int) CheckResult {
	if words >= 2000 && headings >= 6 {
		return newCheck("Content Depth", 100, true, "Comprehensive coverage")
	}
	return newCheck("Content Depth", 70, true, "Could be more comprehensive")
}

func (s *SEOAnalyzer) checkTopicCoverage(lower string) CheckResult {
	found := countTerms(lower, expectedTopics)
	if found >= 5 {
		return newCheck("Topic Coverage", 100, true, "Comprehensive topic coverage")
	}
	return newCheck("Topic Coverage", float64(found*15), true,
		fmt.Sprintf("Covered %d/%d expected topics", found, len(expectedTopics)))
}

func (s *SEOAnalyzer) checkCallToAction(lower string) CheckResult {
	if countTerms(lower, ctaPhrases) > 0 {
		return newCheck("Call to Action", 100, true, "CTA present")
	}
	return newCheck("Call to Action", 50, true, "No clear CTA")
}

func (s *SEOAnalyzer) checkMobileFriendliness(paragraphs []string) CheckResult {
	ratio := 0.0
	if len(paragraphs) > 0 {
		short := 0
		for _, p := range paragraphs {
			if lexical.WordCount(p) <= 100 {
				short++
			}
		}
		ratio = float64(short) / float64(len(paragraphs))
	}
	if ratio >= 0.8 {
		return newCheck("Mobile Friendliness", 100, true, "Mobile-optimized paragraphs")
	}
	return newCheck("Mobile Friendliness", ratio*100, true, "Some long paragraphs")
}

func (s *SEOAnalyzer) checkFeaturedSnippet(lower, content string) CheckResult {
	definitions := strings.Contains(lower, "is a") || strings.Contains(lower, "refers to")
	if definitions && bulletLine.MatchString(content) {
		return newCheck("Featured Snippet Ready", 100, true, "Snippet-optimized content")
	}
	return newCheck("Featured Snippet Ready", 60, true, "Limited snippet potential")
}

func (s *SEOAnalyzer) checkFAQSchema(lower string) CheckResult {
	if strings.Contains(lower, "faq") || strings.Contains(lower, "frequently asked") {
		return newCheck("FAQ Schema Ready", 100, true, "FAQ section present")
	}
	return newCheck("FAQ Schema Ready", 50, true, "No FAQ section")
}

func (s *SEOAnalyzer) checkSemanticStructure(headings []string) CheckResult {
	if len(headings) >= 5 {
		return newCheck("Semantic Structure", 100, true, "Well-structured headings")
	}
	return newCheck("Semantic Structure", float64(len(headings)*20), true, "Limited structure")
}

func (s *SEOAnalyzer) checkVocabularyDiversity(lower string) CheckResult {
	words := strings.Fields(lower)
	ratio := 0.0
	if len(words) > 0 {
		unique := make(map[string]struct{}, len(words))
		for _, w := range words {
			unique[w] = struct{}{}
		}
		ratio = float64(len(unique)) / float64(len(words))
	}
	if ratio >= 0.4 {
		return newCheck("Vocabulary Diversity", 100, true, fmt.Sprintf("%.1f%% unique words", ratio*100))
	}
	return newCheck("Vocabulary Diversity", ratio*200, true, "Repetitive vocabulary")
}

func (s *SEOAnalyzer) checkSERPCompetitiveness(words, headings int, density float64) CheckResult {
	score := 0
	if words >= 2000 {
		score += 40
	}
	if headings >= 6 {
		score += 30
	}
	if density >= minKeywordDensity && density <= maxKeywordDensity {
		score += 30
	}
	return newCheck("SERP Competitiveness", float64(score), score >= 70,
		fmt.Sprintf("Competitiveness score: %d", score))
}
