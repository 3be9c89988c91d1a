package export

import (
	"fmt"
	"strings"
	"time"
)

// Dataset defines tabular export content.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// CSVExporter renders Dataset records into CSV bytes. The header row is
// written bare; every data field is double-quoted with embedded quotes
// doubled, regardless of content.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// ContentType is the MIME type of rendered output.
func (e *CSVExporter) ContentType() string {
	return "text/csv;charset=utf-8"
}

// Extension is the file extension of rendered output.
func (e *CSVExporter) Extension() string {
	return "csv"
}

// Render produces CSV encoded bytes for the dataset.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}
	lines := make([]string, 0, len(data.Rows)+1)
	lines = append(lines, strings.Join(data.Headers, ","))
	for _, row := range data.Rows {
		fields := make([]string, len(data.Headers))
		for i, header := range data.Headers {
			fields[i] = Quote(row[header])
		}
		lines = append(lines, strings.Join(fields, ","))
	}
	return []byte(strings.Join(lines, "\n")), nil
}

// Quote wraps a field in double quotes, doubling any embedded quote.
func Quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// Artifact is a rendered export ready to be handed to the user.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Filename builds "<prefix>-YYYY-MM-DD.<ext>" for the given day.
func Filename(prefix, ext string, day time.Time) string {
	return fmt.Sprintf("%s-%s.%s", prefix, day.Format("2006-01-02"), ext)
}
