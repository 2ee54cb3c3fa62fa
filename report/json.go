package report

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/seo-optimizer/contentgate/analyzer"
)

// JSONWriter outputs reports as indented JSON
type JSONWriter struct {
	output io.Writer
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer
func NewJSONWriter(output io.Writer) *JSONWriter {
	return &JSONWriter{output: output}
}

// Write outputs the report in JSON format
func (w *JSONWriter) Write(report *analyzer.FullAnalysisReport) (int, error) {
	cw := &countingWriter{w: w.output}
	encoder := json.NewEncoder(cw)
	encoder.SetIndent("", "  ")
	err := encoder.Encode(report)
	return cw.n, err
}

// YAMLWriter outputs reports as YAML
type YAMLWriter struct {
	output io.Writer
}

// NewYAMLWriter creates a YAMLWriter that outputs to the given writer
func NewYAMLWriter(output io.Writer) *YAMLWriter {
	return &YAMLWriter{output: output}
}

// Write outputs the report in YAML format
func (w *YAMLWriter) Write(report *analyzer.FullAnalysisReport) (int, error) {
	cw := &countingWriter{w: w.output}
	encoder := yaml.NewEncoder(cw)
	encoder.SetIndent(2)
	if err := encoder.Encode(report); err != nil {
		return cw.n, err
	}
	return cw.n, encoder.Close()
}
