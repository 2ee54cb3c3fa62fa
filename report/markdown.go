package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/seo-optimizer/contentgate/analyzer"
)

// MarkdownWriter outputs reports as GitHub-flavoured markdown
type MarkdownWriter struct {
	output io.Writer
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{output: output}
}

// Write outputs the report in Markdown format
func (w *MarkdownWriter) Write(report *analyzer.FullAnalysisReport) (int, error) {
	cw := &countingWriter{w: w.output}
	md := markdown.NewMarkdown(cw)

	w.writeSummary(md, report)
	w.writeSEO(md, report.SEO)
	w.writeQuality(md, report.Quality)
	w.writeOriginality(md, report.Plagiarism)

	err := md.Build()
	return cw.n, err
}

func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *analyzer.FullAnalysisReport) {
	md.H1("Content Analysis Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Analyzed At", report.AnalyzedAt.Format("2006-01-02 15:04:05 MST")},
			{"SEO Score", score(report.SEO.OverallScore, report.SEO.Passed)},
			{"Quality Score", score(report.Quality.OverallScore, report.Quality.Passed)},
			{"Originality", score(report.Plagiarism.OriginalityScore, report.Plagiarism.Passed) + "%"},
			{"Can Publish", yesNo(report.CanPublish)},
		},
	})
	md.PlainText("")

	if report.CanPublish {
		md.Tip("All checks passed. The article is ready to publish.")
	} else {
		md.Cautionf("Publishing blocked: %s", strings.Join(report.BlockingIssues, "; "))
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writeSEO(md *markdown.Markdown, seo analyzer.SEOReport) {
	md.H2("SEO")
	md.PlainText("")
	md.PlainTextf("Words: %d, headings: %d, keyword density: %.2f%%, readability: %.1f",
		seo.WordCount, seo.HeadingCount, seo.KeywordDensity, seo.ReadabilityScore)
	md.PlainText("")

	w.writeChecks(md, seo.Checks)
}

func (w *MarkdownWriter) writeQuality(md *markdown.Markdown, quality analyzer.QualityReport) {
	md.H2("Quality")
	md.PlainText("")
	md.PlainTextf("Passive voice: %.1f%%", quality.PassiveVoicePercentage)
	md.PlainText("")

	w.writeChecks(md, quality.Metrics)
}

// writeChecks writes one row per check and lists the recommendations of the
// failing ones below the table.
func (w *MarkdownWriter) writeChecks(md *markdown.Markdown, checks []analyzer.CheckResult) {
	rows := make([][]string, len(checks))
	var recommendations []string
	for i, c := range checks {
		rows[i] = []string{c.Name, strconv.FormatFloat(c.Score, 'f', 1, 64), passFail(c.Passed), c.Details}
		for _, r := range c.Recommendations {
			recommendations = append(recommendations, c.Name+": "+r)
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Check", "Score", "Result", "Details"},
		Rows:   rows,
	})
	md.PlainText("")

	if len(recommendations) > 0 {
		md.H3("Recommendations")
		md.PlainText("")
		md.BulletList(recommendations...)
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeOriginality(md *markdown.Markdown, plag analyzer.PlagiarismReport) {
	md.H2("Originality")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Measure", "Value"},
		Rows: [][]string{
			{"Originality Score", fmt.Sprintf("%.1f%%", plag.OriginalityScore)},
			{"Threshold", fmt.Sprintf("%.1f%%", plag.Threshold)},
			{"N-gram Similarity", fmt.Sprintf("%.2f%%", plag.NgramSimilarity)},
			{"Cosine Similarity", fmt.Sprintf("%.2f%%", plag.CosineSimilarity)},
			{"Sentence Duplication", fmt.Sprintf("%.2f%%", plag.SentenceDuplication)},
		},
	})
	md.PlainText("")

	if !plag.Passed {
		md.Warningf("Originality %.1f%% is below the %.1f%% threshold.", plag.OriginalityScore, plag.Threshold)
		md.PlainText("")
	}

	if len(plag.FlaggedSections) > 0 {
		md.H3("Flagged Sections")
		md.PlainText("")
		rows := make([][]string, len(plag.FlaggedSections))
		for i, m := range plag.FlaggedSections {
			rows[i] = []string{m.Text, m.Source, fmt.Sprintf("%.0f%%", m.Similarity), matchLabel(m.MatchType)}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Text", "Source", "Similarity", "Match"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	if len(plag.RewriteRecommendations) > 0 {
		md.H3("Rewrite Recommendations")
		md.PlainText("")
		md.BulletList(plag.RewriteRecommendations...)
		md.PlainText("")
	}
}

// matchLabel turns a match type such as "exact_phrase" into "Exact Phrase".
func matchLabel(t analyzer.MatchType) string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(t), "_", " "))
}

func score(v float64, passed bool) string {
	return fmt.Sprintf("%.1f (%s)", v, passFail(passed))
}

func passFail(passed bool) string {
	if passed {
		return "pass"
	}
	return "fail"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
