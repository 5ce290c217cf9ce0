package document

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	MimeText = "text/plain"
	MimePDF  = "application/pdf"
	MimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>`)
	docxTag          = regexp.MustCompile(`<[^>]*>`)
	spaces           = regexp.MustCompile(`[ \t]+`)
)

// ExtractBytes extracts text from an in-memory document identified by MIME type.
func ExtractBytes(mime string, data []byte) (string, error) {
	mime = strings.ToLower(strings.TrimSpace(mime))
	if i := strings.Index(mime, ";"); i != -1 {
		mime = strings.TrimSpace(mime[:i])
	}

	switch mime {
	case MimeText:
		return strings.TrimSpace(string(data)), nil
	case MimePDF:
		text, err := extractPDF(bytes.NewReader(data), int64(len(data)))
		return strings.TrimSpace(text), err
	case MimeDocx:
		d, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return "", fmt.Errorf("failed to parse docx: %w", err)
		}
		defer d.Close()
		return strings.TrimSpace(docxText(d.Editable().GetContent())), nil
	default:
		return "", &UnsupportedFormatError{Format: mime}
	}
}

func extractPDFFile(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to read pdf %q: %w", path, err)
	}
	defer f.Close()

	return pdfText(r), nil
}

func extractPDF(reader io.ReaderAt, size int64) (string, error) {
	r, err := pdf.NewReader(reader, size)
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}
	return pdfText(r), nil
}

// pdfText joins the text of every non-empty page with a single space.
func pdfText(r *pdf.Reader) string {
	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil || strings.TrimSpace(text) == "" {
			continue
		}
		pages = append(pages, text)
	}
	return strings.Join(pages, " ")
}

func extractDocxFile(path string) (string, error) {
	d, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to parse docx %q: %w", path, err)
	}
	defer d.Close()

	return docxText(d.Editable().GetContent()), nil
}

// docxText converts the raw document.xml body into paragraph text joined by
// spaces.
func docxText(content string) string {
	content = docxParagraphEnd.ReplaceAllString(content, " ")
	content = docxTag.ReplaceAllString(content, "")
	content = html.UnescapeString(content)
	return strings.TrimSpace(spaces.ReplaceAllString(content, " "))
}
