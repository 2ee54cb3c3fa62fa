package analyzer

import (
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// Thresholds are the pass marks of the three reports
type Thresholds struct {
	SEOPassScore         float64 `json:"seoPassScore" yaml:"seoPassScore"`
	QualityPassScore     float64 `json:"qualityPassScore" yaml:"qualityPassScore"`
	OriginalityThreshold float64 `json:"originalityThreshold" yaml:"originalityThreshold"`
}

// DefaultThresholds returns the standard publishing thresholds
func DefaultThresholds() Thresholds {
	return Thresholds{
		SEOPassScore:         DefaultSEOPassScore,
		QualityPassScore:     DefaultQualityPassScore,
		OriginalityThreshold: DefaultOriginalityThreshold,
	}
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithThresholds overrides the default thresholds
func WithThresholds(t Thresholds) Option {
	return func(a *Analyzer) {
		a.thresholds = t
	}
}

// WithOriginalityThreshold overrides only the originality threshold
func WithOriginalityThreshold(threshold float64) Option {
	return func(a *Analyzer) {
		a.thresholds.OriginalityThreshold = threshold
	}
}

// WithClock sets the time source used for report timestamps and the
// freshness check
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		if now != nil {
			a.now = now
		}
	}
}

// Analyzer is the publishing gate: it runs the SEO, quality and originality
// analyses over a submission and decides whether the article may be published
type Analyzer struct {
	thresholds Thresholds
	now        func() time.Time
	seo        *SEOAnalyzer
	quality    *QualityAnalyzer
	plagiarism *PlagiarismChecker
}

// New creates a new Analyzer instance
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		thresholds: DefaultThresholds(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	a.seo = NewSEOAnalyzer(a.thresholds.SEOPassScore, a.now)
	a.quality = NewQualityAnalyzer(a.thresholds.QualityPassScore, a.now)
	a.plagiarism = NewPlagiarismChecker(a.thresholds.OriginalityThreshold, a.now)
	return a
}

// Thresholds returns the thresholds the analyzer gates on
func (a *Analyzer) Thresholds() Thresholds {
	return a.thresholds
}

// Analyze performs the complete analysis of a submission. The three
// analyses share no state and run concurrently.
func (a *Analyzer) Analyze(sub Submission) *FullAnalysisReport {
	var (
		seo        SEOReport
		quality    QualityReport
		plagiarism PlagiarismReport
		g          errgroup.Group
	)

	g.Go(func() error {
		seo = a.seo.Analyze(sub.Content, sub.Keyword, sub.Title)
		return nil
	})
	g.Go(func() error {
		quality = a.quality.Analyze(sub.Content, sub.Keyword)
		return nil
	})
	g.Go(func() error {
		plagiarism = a.plagiarism.Check(sub.Content, sub.References)
		return nil
	})
	// The evaluators cannot fail; Wait only joins them.
	g.Wait()

	blocking := a.blockingIssues(seo, quality, plagiarism)

	return &FullAnalysisReport{
		SEO:            seo,
		Quality:        quality,
		Plagiarism:     plagiarism,
		CanPublish:     seo.Passed && quality.Passed && plagiarism.Passed,
		BlockingIssues: blocking,
		AnalyzedAt:     a.now(),
	}
}

// blockingIssues lists one reason per failing report, in SEO, quality,
// originality order.
func (a *Analyzer) blockingIssues(seo SEOReport, quality QualityReport, plagiarism PlagiarismReport) []string {
	issues := []string{}
	if !seo.Passed {
		issues = append(issues, fmt.Sprintf("SEO score (%.1f) below threshold (%.1f)",
			seo.OverallScore, a.thresholds.SEOPassScore))
	}
	if !quality.Passed {
		issues = append(issues, fmt.Sprintf("Quality score (%.1f) below threshold (%.1f)",
			quality.OverallScore, a.thresholds.QualityPassScore))
	}
	if !plagiarism.Passed {
		issues = append(issues, fmt.Sprintf(
			"Originality score (%.1f%%) below threshold (%.1f%%). PUBLISHING BLOCKED.",
			plagiarism.OriginalityScore, plagiarism.Threshold))
	}
	return issues
}
