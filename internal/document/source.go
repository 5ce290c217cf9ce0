// Package document turns resume inputs (inline text or PDF/DOCX/TXT files) into
// plain text.
package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrInputNotFound is returned when the requested resume file does not exist.
	ErrInputNotFound = errors.New("input not found")
	// ErrUnsupportedFormat is matched by every UnsupportedFormatError.
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// UnsupportedFormatError reports a file extension or MIME type outside the
// supported set.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format %q: only pdf, docx and txt are supported", e.Format)
}

func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// Source describes where resume text comes from.
type Source struct {
	// Name is used in logs and reports. Defaults to the file base name or "text".
	Name string
	// Text is inline resume content.
	Text string
	// File points to a resume document. When set it takes precedence over Text.
	File string
}

// Label returns a human readable name for the source.
func (s Source) Label() string {
	if name := strings.TrimSpace(s.Name); name != "" {
		return name
	}
	if file := strings.TrimSpace(s.File); file != "" {
		return filepath.Base(file)
	}
	return "text"
}

// IsFile reports whether the source resolves through a document on disk.
func (s Source) IsFile() bool {
	return strings.TrimSpace(s.File) != ""
}

// Load returns the plain text of the source. Inline text is returned trimmed
// and never fails; files are checked for existence and parsed by extension.
func Load(src Source) (string, error) {
	file := strings.TrimSpace(src.File)
	if file == "" {
		return strings.TrimSpace(src.Text), nil
	}

	info, err := os.Stat(file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrInputNotFound, file)
		}
		return "", fmt.Errorf("stat %q: %w", file, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrInputNotFound, file)
	}

	text, err := extractFile(file)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(text), nil
}

func extractFile(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pdf":
		return extractPDFFile(path)
	case ".docx":
		return extractDocxFile(path)
	case ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading %q: %w", path, err)
		}
		return string(data), nil
	default:
		if ext == "" {
			ext = filepath.Base(path)
		}
		return "", &UnsupportedFormatError{Format: ext}
	}
}
