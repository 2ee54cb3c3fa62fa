// Package report renders analysis reports for export.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/seo-optimizer/contentgate/analyzer"
)

// ErrUnknownFormat is returned by NewWriter for unsupported formats
var ErrUnknownFormat = errors.New("unknown report format")

// Supported formats
const (
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatMarkdown = "markdown"
)

// Writer outputs a full analysis report to its destination
type Writer interface {
	// Write renders report and returns the number of bytes written.
	Write(report *analyzer.FullAnalysisReport) (int, error)
}

// Formats lists the names accepted by NewWriter
func Formats() []string {
	return []string{FormatJSON, FormatYAML, FormatMarkdown}
}

// NewWriter returns the Writer for format. Format names are case
// insensitive; "yml" and "md" are accepted as aliases.
func NewWriter(format string, output io.Writer) (Writer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatJSON:
		return NewJSONWriter(output), nil
	case FormatYAML, "yml":
		return NewYAMLWriter(output), nil
	case FormatMarkdown, "md":
		return NewMarkdownWriter(output), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// ContentType returns the MIME type of a format's output
func ContentType(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatYAML, "yml":
		return "application/yaml; charset=utf-8"
	case FormatMarkdown, "md":
		return "text/markdown; charset=utf-8"
	default:
		return "application/json; charset=utf-8"
	}
}

// countingWriter records how many bytes pass through it.
type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}
