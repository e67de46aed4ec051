package render

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Formats accepted by Write.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Write encodes chart to w in the given format.
func (r *Renderer) Write(w io.Writer, chart *Chart, format string) error {
	switch strings.ToLower(format) {
	case FormatSVG, "":
		if _, err := io.WriteString(w, r.SVG(chart)); err != nil {
			return fmt.Errorf("error writing SVG: %w", err)
		}
		return nil
	case FormatJSON:
		return WriteJSON(w, chart)
	case FormatYAML:
		return WriteYAML(w, chart)
	}
	return fmt.Errorf("unsupported output format %q", format)
}

// WriteJSON writes the chart model as indented JSON.
func WriteJSON(w io.Writer, chart *Chart) error {
	data, err := json.MarshalIndent(chart, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding chart as JSON: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("error writing JSON: %w", err)
	}
	return nil
}

// WriteYAML writes the chart model as YAML.
func WriteYAML(w io.Writer, chart *Chart) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(chart); err != nil {
		return fmt.Errorf("error encoding chart as YAML: %w", err)
	}
	return enc.Close()
}

// OutputFilename determines the output file for a chart. An explicit
// outputFile wins; otherwise the CSV name gets the format's extension
// (e.g. "plan.csv" becomes "plan.svg").
func OutputFilename(csvFile, outputFile, format string) string {
	if outputFile != "" {
		return outputFile
	}
	if format == "" {
		format = FormatSVG
	}
	base := filepath.Base(csvFile)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + "." + strings.ToLower(format)
}
