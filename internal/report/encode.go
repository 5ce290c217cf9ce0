package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects a report encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists the supported encodings.
var Formats = []Format{FormatText, FormatJSON, FormatYAML}

// ParseFormat resolves a user supplied format name. Empty means text.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q: expected one of text, json, yaml", name)
	}
}

// Ext returns the file extension for the format.
func (f Format) Ext() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatYAML:
		return ".yaml"
	default:
		return ".txt"
	}
}

// Encode writes a single report to w.
func (r *Report) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		return encodeYAML(w, r)
	case FormatText, "":
		return renderText(w, r)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// EncodeAll writes reports to w as a JSON array, a YAML sequence or text
// blocks separated by blank lines.
func EncodeAll(w io.Writer, format Format, reports []*Report) error {
	switch format {
	case FormatJSON:
		if reports == nil {
			reports = []*Report{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	case FormatYAML:
		if reports == nil {
			reports = []*Report{}
		}
		return encodeYAML(w, reports)
	case FormatText, "":
		for i, r := range reports {
			if i > 0 {
				if _, err := io.WriteString(w, "\n"); err != nil {
					return err
				}
			}
			if err := renderText(w, r); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// Bytes returns the encoded report.
func (r *Report) Bytes(format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Encode(&buf, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile encodes the report into path, replacing any existing file.
func (r *Report) WriteFile(path string, format Format) error {
	data, err := r.Bytes(format)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// DumpToTmpFile encodes the report into a new temporary file and returns its
// name.
func (r *Report) DumpToTmpFile(format Format) (string, error) {
	file, err := os.CreateTemp("", "resume_report_*"+format.Ext())
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := r.Encode(file, format); err != nil {
		return "", err
	}
	return file.Name(), nil
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
