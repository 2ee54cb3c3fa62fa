package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/seo-optimizer/contentgate/analyzer"
	"github.com/seo-optimizer/contentgate/api"
	"github.com/seo-optimizer/contentgate/htmltext"
	"github.com/seo-optimizer/contentgate/middleware"
	"github.com/seo-optimizer/contentgate/report"
	"github.com/seo-optimizer/contentgate/stats"
)

// exitNotPublishable is the status of analyze when the gate blocks publishing
const exitNotPublishable = 2

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
			}
			return serve(cmd.Context(), a)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides server.port)")
	return cmd
}

func serve(ctx context.Context, a *app) error {
	cfg := a.cfg
	gin.SetMode(cfg.Server.Mode)

	store, err := stats.NewStorage(cfg.Storage.DataDir, stats.WithLogger(a.logger))
	if err != nil {
		return fmt.Errorf("failed to open statistics: %w", err)
	}
	store.Cleanup()

	limiter := middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateBurst)
	gate := analyzer.New(analyzer.WithThresholds(cfg.Gate.Thresholds()))

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Server.Port),
		Handler:           api.NewServer(gate, store, limiter, a.logger).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server starting", "addr", "http://localhost"+srv.Addr, "mode", cfg.Server.Mode,
			"originality_threshold", cfg.Gate.OriginalityThreshold)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			_ = store.Shutdown()
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		a.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("graceful shutdown failed", "error", err)
		}
	}

	if err := store.Shutdown(); err != nil {
		return fmt.Errorf("failed to flush statistics: %w", err)
	}
	return nil
}

// analysisFlags are the inputs shared by analyze and export
type analysisFlags struct {
	keyword   string
	title     string
	refs      []string
	html      bool
	threshold float64
	format    string
}

func (f *analysisFlags) register(cmd *cobra.Command, defaultFormat string) {
	cmd.Flags().StringVarP(&f.keyword, "keyword", "k", "", "target keyword")
	cmd.Flags().StringVarP(&f.title, "title", "t", "", "article title (defaults to the first line or the HTML <title>)")
	cmd.Flags().StringArrayVarP(&f.refs, "ref", "r", nil, "reference text file to compare against (repeatable)")
	cmd.Flags().BoolVar(&f.html, "html", false, "treat the article and references as HTML")
	cmd.Flags().Float64Var(&f.threshold, "threshold", 0, "originality threshold (overrides gate.originality_threshold)")
	cmd.Flags().StringVarP(&f.format, "format", "f", defaultFormat, "report format: json, yaml or markdown")
}

// gate builds the analyzer from the config and the flags.
func (f *analysisFlags) gate(cmd *cobra.Command, a *app) (*analyzer.Analyzer, error) {
	gate := a.cfg.Gate
	if cmd.Flags().Changed("threshold") {
		gate.OriginalityThreshold = f.threshold
		if err := gate.Validate(); err != nil {
			return nil, fmt.Errorf("invalid --threshold: %w", err)
		}
	}
	return analyzer.New(analyzer.WithThresholds(gate.Thresholds())), nil
}

// readText returns the file's content, converted from HTML when asked.
func readText(path string, html bool) (htmltext.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return htmltext.Document{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if !html {
		return htmltext.Document{Text: string(data)}, nil
	}
	doc, err := htmltext.Extract(bytes.NewReader(data))
	if err != nil {
		return htmltext.Document{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}

func (f *analysisFlags) submission(path string) (analyzer.Submission, error) {
	doc, err := readText(path, f.html)
	if err != nil {
		return analyzer.Submission{}, err
	}

	sub := analyzer.Submission{
		Content: doc.Text,
		Keyword: f.keyword,
		Title:   f.title,
	}
	if sub.Title == "" {
		sub.Title = doc.Title
	}

	for _, ref := range f.refs {
		refDoc, err := readText(ref, f.html)
		if err != nil {
			return analyzer.Submission{}, err
		}
		sub.References = append(sub.References, refDoc.Text)
	}
	return sub, nil
}

func newAnalyzeCmd(a *app) *cobra.Command {
	flags := &analysisFlags{}

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Analyze an article and print the report",
		Long: "Analyze an article and print the report. The command exits with status 2 " +
			"when the article may not be published.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			writer, err := report.NewWriter(flags.format, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			gate, err := flags.gate(cmd, a)
			if err != nil {
				return err
			}
			sub, err := flags.submission(args[0])
			if err != nil {
				return err
			}

			result := gate.Analyze(sub)
			if _, err := writer.Write(result); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}

			if !result.CanPublish {
				return &exitError{code: exitNotPublishable}
			}
			return nil
		},
	}

	flags.register(cmd, report.FormatMarkdown)
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	flags := &analysisFlags{}
	var out string

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write the report only when the export gate allows it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gate, err := flags.gate(cmd, a)
			if err != nil {
				return err
			}
			sub, err := flags.submission(args[0])
			if err != nil {
				return err
			}

			result := gate.Analyze(sub)
			allowed, msg := analyzer.CanExport(result)
			if !allowed {
				return fmt.Errorf("export blocked: %s", msg)
			}

			var buf bytes.Buffer
			writer, err := report.NewWriter(flags.format, &buf)
			if err != nil {
				return err
			}
			if _, err := writer.Write(result); err != nil {
				return fmt.Errorf("failed to render report: %w", err)
			}

			if err := writeOutput(cmd.OutOrStdout(), out, buf.Bytes()); err != nil {
				return err
			}
			a.logger.Info("report exported", "file", args[0], "out", out, "format", flags.format)
			return nil
		},
	}

	flags.register(cmd, report.FormatJSON)
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file, - for stdout")
	return cmd
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
