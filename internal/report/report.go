// Package report writes cleanup results as an HTML page or a JSON document.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"

	"github.com/lakshaymaurya-felt/dirclean/internal/clean"
	"github.com/lakshaymaurya-felt/dirclean/internal/core"
)

// ErrWriteFailed is returned when neither the requested path nor the
// fallback location could be written.
var ErrWriteFailed = errors.New("report could not be written")

// Item is one row of a section.
type Item struct {
	Path   string `json:"path"`
	Size   string `json:"size"`
	Bytes  int64  `json:"bytes"`
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// Section groups the outcomes of one operation.
type Section struct {
	Title string `json:"title"`
	Items []Item `json:"items"`
}

// Data is a full report.
type Data struct {
	Generated  time.Time `json:"generated"`
	DryRun     bool      `json:"dry_run"`
	Sections   []Section `json:"sections"`
	TotalBytes int64     `json:"total_bytes"`
	TotalSpace string    `json:"total_space"`
}

// FromRecords builds a section from outcome records, keeping their order.
func FromRecords(title string, recs []clean.OutcomeRecord) Section {
	s := Section{Title: title, Items: make([]Item, 0, len(recs))}
	for _, r := range recs {
		it := Item{
			Path:   r.Path,
			Size:   core.FormatSize(r.Bytes),
			Bytes:  r.Bytes,
			Status: r.StatusText(),
		}
		if r.Reason != nil {
			it.Reason = r.Reason.Error()
		}
		s.Items = append(s.Items, it)
	}
	return s
}

// TotalItems counts rows across all sections.
func (d Data) TotalItems() int {
	n := 0
	for _, s := range d.Sections {
		n += len(s.Items)
	}
	return n
}

// Render encodes d as JSON when path ends in .json and as HTML otherwise.
func Render(path string, d Data) ([]byte, error) {
	if d.TotalSpace == "" {
		d.TotalSpace = core.FormatSize(d.TotalBytes)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return sonic.ConfigStd.MarshalIndent(d, "", "  ")
	}
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write renders d to path, creating parent directories. If that fails the
// report is written once more under its base name in fallbackDir (the
// working directory when empty). It returns the path actually written.
func Write(path, fallbackDir string, d Data) (string, error) {
	path = core.NormalizePath(path)
	body, err := Render(path, d)
	if err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}

	err = writeFile(path, body)
	if err == nil {
		log.Info().Str("path", path).Msg("report written")
		return path, nil
	}
	log.Warn().Str("path", path).Err(err).Msg("cannot write report, trying fallback location")

	fallback := filepath.Base(path)
	if fallbackDir != "" {
		fallback = filepath.Join(fallbackDir, fallback)
	}
	fallback = core.NormalizePath(fallback)
	if fallback == path {
		return "", fmt.Errorf("%s: %w", path, ErrWriteFailed)
	}
	if err := writeFile(fallback, body); err != nil {
		return "", fmt.Errorf("%s: %w: %v", fallback, ErrWriteFailed, err)
	}
	log.Info().Str("path", fallback).Msg("report written to fallback location")
	return fallback, nil
}

func writeFile(path string, body []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, body, 0o644)
}

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>Directory Cleanup Report</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        h1, h2 { color: #333; }
        table { border-collapse: collapse; width: 100%; margin-bottom: 20px; }
        th, td { text-align: left; padding: 8px; border-bottom: 1px solid #ddd; }
        th { background-color: #f2f2f2; }
        tr:hover { background-color: #f5f5f5; }
        .summary { background-color: #e9f7ef; padding: 15px; border-radius: 5px; margin-bottom: 20px; }
        .timestamp { color: #666; font-size: 0.9em; }
        .reason { color: #a33; font-size: 0.9em; }
    </style>
</head>
<body>
    <h1>Directory Cleanup Report</h1>
    <div class="timestamp">Generated on: {{.Generated.Format "2006-01-02 15:04:05"}}</div>

    <div class="summary">
        <h2>Summary</h2>
        <p>Total items processed: {{.TotalItems}}</p>
        <p>Total space {{if .DryRun}}that would be saved{{else}}saved{{end}}: {{.TotalSpace}}</p>
    </div>
{{range .Sections}}
    <h2>{{.Title}}</h2>
{{- if .Items}}
    <table>
        <tr>
            <th>Path</th>
            <th>Size</th>
            <th>Status</th>
        </tr>
{{- range .Items}}
        <tr>
            <td>{{.Path}}</td>
            <td>{{.Size}}</td>
            <td>{{.Status}}{{if .Reason}} <span class="reason">({{.Reason}})</span>{{end}}</td>
        </tr>
{{- end}}
    </table>
{{- else}}
    <p>No items found.</p>
{{- end}}
{{end}}
</body>
</html>
`))
