// Package api exposes the publishing gate over HTTP.
package api

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/seo-optimizer/contentgate/analyzer"
	"github.com/seo-optimizer/contentgate/htmltext"
	"github.com/seo-optimizer/contentgate/logging"
	"github.com/seo-optimizer/contentgate/middleware"
	"github.com/seo-optimizer/contentgate/report"
	"github.com/seo-optimizer/contentgate/stats"
)

const maxBodyBytes = 10 << 20

// Input formats accepted in AnalyzeRequest.Format
const (
	InputMarkdown = "markdown"
	InputHTML     = "html"
)

// AnalyzeRequest is the body of /api/analyze and /api/export
type AnalyzeRequest struct {
	Content    string   `json:"content" binding:"required"`
	Keyword    string   `json:"keyword"`
	Title      string   `json:"title"`
	References []string `json:"references"`
	// Format is "markdown" (default) or "html". HTML content and references
	// are converted to text before analysis.
	Format string `json:"format"`
}

// AnalyzeResponse is returned by /api/analyze
type AnalyzeResponse struct {
	Report       *analyzer.FullAnalysisReport `json:"report"`
	ExportStatus analyzer.ExportStatus        `json:"exportStatus"`
}

// Server holds the dependencies of the HTTP handlers
type Server struct {
	analyzer *analyzer.Analyzer
	stats    *stats.Storage
	limiter  *middleware.RateLimiter
	logger   *slog.Logger
}

// NewServer creates a Server. limiter may be nil to disable rate limiting and
// store may be nil to disable statistics.
func NewServer(a *analyzer.Analyzer, store *stats.Storage, limiter *middleware.RateLimiter, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Server{
		analyzer: a,
		stats:    store,
		limiter:  limiter,
		logger:   logger,
	}
}

// Router builds the gin engine with all middlewares and routes
func (s *Server) Router() *gin.Engine {
	r := gin.New()

	r.Use(middleware.ErrorHandler(s.logger))
	r.Use(logging.RequestLogger(s.logger))
	r.Use(middleware.CORS())
	if s.limiter != nil {
		r.Use(s.limiter.RateLimit())
	}
	if s.stats != nil {
		r.Use(middleware.StatsMiddleware(s.stats))
	}

	api := r.Group("/api")
	{
		api.GET("/health", s.health)
		api.POST("/analyze", s.analyze)
		api.POST("/export", s.export)
		api.GET("/statistics", s.statistics)
	}

	return r
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// submission binds and normalizes the request body. It writes the 400
// response itself and returns false on failure.
func (s *Server) submission(c *gin.Context) (analyzer.Submission, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: content is required",
		})
		return analyzer.Submission{}, false
	}

	sub, err := toSubmission(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return analyzer.Submission{}, false
	}
	return sub, true
}

func toSubmission(req AnalyzeRequest) (analyzer.Submission, error) {
	sub := analyzer.Submission{
		Content:    req.Content,
		Keyword:    strings.TrimSpace(req.Keyword),
		Title:      strings.TrimSpace(req.Title),
		References: req.References,
	}

	switch strings.ToLower(strings.TrimSpace(req.Format)) {
	case "", InputMarkdown:
		return sub, nil
	case InputHTML:
	default:
		return sub, fmt.Errorf("unsupported input format %q, must be markdown or html", req.Format)
	}

	doc, err := htmltext.ExtractString(req.Content)
	if err != nil {
		return sub, fmt.Errorf("failed to read HTML content: %w", err)
	}
	sub.Content = doc.Text
	if sub.Title == "" {
		sub.Title = doc.Title
	}

	sub.References = make([]string, len(req.References))
	for i, ref := range req.References {
		refDoc, err := htmltext.ExtractString(ref)
		if err != nil {
			return sub, fmt.Errorf("failed to read HTML reference %d: %w", i+1, err)
		}
		sub.References[i] = refDoc.Text
	}
	return sub, nil
}

func (s *Server) runAnalysis(c *gin.Context, sub analyzer.Submission) *analyzer.FullAnalysisReport {
	result := s.analyzer.Analyze(sub)
	if s.stats != nil {
		s.stats.RecordAnalysis(result)
	}

	s.logger.Info("analysis completed",
		"client_ip", c.ClientIP(),
		"words", result.SEO.WordCount,
		"seo", result.SEO.OverallScore,
		"quality", result.Quality.OverallScore,
		"originality", result.Plagiarism.OriginalityScore,
		"can_publish", result.CanPublish,
	)
	return result
}

func (s *Server) analyze(c *gin.Context) {
	sub, ok := s.submission(c)
	if !ok {
		return
	}

	result := s.runAnalysis(c, sub)
	c.JSON(http.StatusOK, AnalyzeResponse{
		Report:       result,
		ExportStatus: analyzer.NewExportStatus(result),
	})
}

func (s *Server) export(c *gin.Context) {
	format := c.DefaultQuery("format", report.FormatJSON)
	var buf bytes.Buffer
	writer, err := report.NewWriter(format, &buf)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, report.ErrUnknownFormat) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{
			"error": fmt.Sprintf("%v (supported: %s)", err, strings.Join(report.Formats(), ", ")),
		})
		return
	}

	sub, ok := s.submission(c)
	if !ok {
		return
	}

	result := s.runAnalysis(c, sub)
	status := analyzer.NewExportStatus(result)
	if s.stats != nil {
		s.stats.RecordExport(status.CanExport)
	}

	if !status.CanExport {
		s.logger.Warn("export blocked", "client_ip", c.ClientIP(), "reason", status.Message)
		c.JSON(http.StatusForbidden, gin.H{
			"error":        status.Message,
			"exportStatus": status,
		})
		return
	}

	if _, err := writer.Write(result); err != nil {
		s.logger.Error("failed to render report", "format", format, "error", err)
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to render report",
		})
		return
	}

	c.Data(http.StatusOK, report.ContentType(format), buf.Bytes())
}

func (s *Server) statistics(c *gin.Context) {
	if s.stats == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Statistics are disabled",
		})
		return
	}

	month := c.Query("month")
	if month == "" {
		c.JSON(http.StatusOK, gin.H{
			"current": s.stats.GetCurrentStats(),
			"months":  s.stats.GetAllMonths(),
		})
		return
	}

	monthly, ok := s.stats.GetMonthlyStats(month)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No statistics for month " + month,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"month": month,
		"stats": monthly,
	})
}
