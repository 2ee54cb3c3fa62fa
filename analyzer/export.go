package analyzer

import "fmt"

// CanExport is the export-time gate. Originality is checked first so a
// plagiarism failure is always the reason reported, then SEO. Quality does
// not block export.
func CanExport(report *FullAnalysisReport) (bool, string) {
	if report == nil {
		return false, "BLOCKED: no analysis report"
	}
	plag := report.Plagiarism
	if !plag.Passed {
		return false, fmt.Sprintf("BLOCKED: Originality score (%.1f%%) is below %.1f%% threshold",
			plag.OriginalityScore, plag.Threshold)
	}
	if !report.SEO.Passed {
		return false, fmt.Sprintf("SEO score (%.1f) needs improvement", report.SEO.OverallScore)
	}
	return true, "All checks passed. Export enabled."
}

// NewExportStatus summarizes the export decision for report
func NewExportStatus(report *FullAnalysisReport) ExportStatus {
	allowed, message := CanExport(report)
	if report == nil {
		return ExportStatus{CanExport: allowed, Message: message}
	}
	return ExportStatus{
		CanExport:            allowed,
		Message:              message,
		OriginalityScore:     report.Plagiarism.OriginalityScore,
		OriginalityThreshold: report.Plagiarism.Threshold,
		SEOPassed:            report.SEO.Passed,
		QualityPassed:        report.Quality.Passed,
		PlagiarismPassed:     report.Plagiarism.Passed,
	}
}
