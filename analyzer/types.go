package analyzer

import "time"

// CheckResult is the outcome of one SEO check or quality metric
type CheckResult struct {
	Name            string   `json:"name" yaml:"name"`
	Score           float64  `json:"score" yaml:"score"`
	Passed          bool     `json:"passed" yaml:"passed"`
	Details         string   `json:"details" yaml:"details"`
	Recommendations []string `json:"recommendations" yaml:"recommendations"`
}

// SEOReport represents the complete SEO analysis of an article
type SEOReport struct {
	OverallScore          float64       `json:"overallScore" yaml:"overallScore"`
	Passed                bool          `json:"passed" yaml:"passed"`
	Checks                []CheckResult `json:"checks" yaml:"checks"`
	KeywordDensity        float64       `json:"keywordDensity" yaml:"keywordDensity"`
	ReadabilityScore      float64       `json:"readabilityScore" yaml:"readabilityScore"`
	WordCount             int           `json:"wordCount" yaml:"wordCount"`
	HeadingCount          int           `json:"headingCount" yaml:"headingCount"`
	MetaTitleLength       int           `json:"metaTitleLength" yaml:"metaTitleLength"`
	MetaDescriptionLength int           `json:"metaDescriptionLength" yaml:"metaDescriptionLength"`
	AnalyzedAt            time.Time     `json:"analyzedAt" yaml:"analyzedAt"`
}

// QualityReport represents the non-SEO quality heuristics of an article
type QualityReport struct {
	OverallScore           float64       `json:"overallScore" yaml:"overallScore"`
	Passed                 bool          `json:"passed" yaml:"passed"`
	HumanLikeness          float64       `json:"humanLikeness" yaml:"humanLikeness"`
	RedundancyScore        float64       `json:"redundancyScore" yaml:"redundancyScore"`
	PassiveVoicePercentage float64       `json:"passiveVoicePercentage" yaml:"passiveVoicePercentage"`
	LogicalFlowScore       float64       `json:"logicalFlowScore" yaml:"logicalFlowScore"`
	DomainRelevanceScore   float64       `json:"domainRelevanceScore" yaml:"domainRelevanceScore"`
	Metrics                []CheckResult `json:"metrics" yaml:"metrics"`
	AnalyzedAt             time.Time     `json:"analyzedAt" yaml:"analyzedAt"`
}

// MatchType identifies the measure that flagged a plagiarism match
type MatchType string

const (
	MatchNgram       MatchType = "ngram"
	MatchCosine      MatchType = "cosine"
	MatchSentence    MatchType = "sentence"
	MatchExactPhrase MatchType = "exact_phrase"
)

// PlagiarismMatch is a passage of the content found in a reference text
type PlagiarismMatch struct {
	Text       string    `json:"text" yaml:"text"`
	Source     string    `json:"source" yaml:"source"`
	Similarity float64   `json:"similarity" yaml:"similarity"`
	MatchType  MatchType `json:"matchType" yaml:"matchType"`
}

// PlagiarismReport represents the originality analysis of an article
type PlagiarismReport struct {
	OriginalityScore       float64           `json:"originalityScore" yaml:"originalityScore"`
	Passed                 bool              `json:"passed" yaml:"passed"`
	Threshold              float64           `json:"threshold" yaml:"threshold"`
	NgramSimilarity        float64           `json:"ngramSimilarity" yaml:"ngramSimilarity"`
	CosineSimilarity       float64           `json:"cosineSimilarity" yaml:"cosineSimilarity"`
	SentenceDuplication    float64           `json:"sentenceDuplication" yaml:"sentenceDuplication"`
	FlaggedSections        []PlagiarismMatch `json:"flaggedSections" yaml:"flaggedSections"`
	RewriteRecommendations []string          `json:"rewriteRecommendations" yaml:"rewriteRecommendations"`
	AnalyzedAt             time.Time         `json:"analyzedAt" yaml:"analyzedAt"`
}

// FullAnalysisReport combines the three reports with the publishing decision
type FullAnalysisReport struct {
	SEO            SEOReport        `json:"seoReport" yaml:"seoReport"`
	Quality        QualityReport    `json:"qualityReport" yaml:"qualityReport"`
	Plagiarism     PlagiarismReport `json:"plagiarismReport" yaml:"plagiarismReport"`
	CanPublish     bool             `json:"canPublish" yaml:"canPublish"`
	BlockingIssues []string         `json:"blockingIssues" yaml:"blockingIssues"`
	AnalyzedAt     time.Time        `json:"analyzedAt" yaml:"analyzedAt"`
}

// ExportStatus summarizes whether a report may be exported
type ExportStatus struct {
	CanExport            bool    `json:"canExport" yaml:"canExport"`
	Message              string  `json:"message" yaml:"message"`
	OriginalityScore     float64 `json:"originalityScore" yaml:"originalityScore"`
	OriginalityThreshold float64 `json:"originalityThreshold" yaml:"originalityThreshold"`
	SEOPassed            bool    `json:"seoPassed" yaml:"seoPassed"`
	QualityPassed        bool    `json:"qualityPassed" yaml:"qualityPassed"`
	PlagiarismPassed     bool    `json:"plagiarismPassed" yaml:"plagiarismPassed"`
}

// Submission is the article handed to the gate by the content generator
type Submission struct {
	Content    string   `json:"content" yaml:"content"`
	Keyword    string   `json:"keyword" yaml:"keyword"`
	Title      string   `json:"title" yaml:"title"`
	References []string `json:"references" yaml:"references"`
}
