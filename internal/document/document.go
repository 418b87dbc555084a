// Package document turns resume files into ordered, trimmed text lines.
package document

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	FormatPDF  = "pdf"
	FormatDOCX = "docx"
)

var (
	docxTags = regexp.MustCompile(`<[^>]+>`)
	newlines = regexp.MustCompile(`\r\n?`)
)

// Document holds the non-empty lines of a resume in reading order.
type Document struct {
	Source string
	Lines  []string
}

// FullText joins the lines with newline separators.
func (d *Document) FullText() string {
	if d == nil {
		return ""
	}
	return strings.Join(d.Lines, "\n")
}

// Len returns the number of extracted lines.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Lines)
}

// ReadFile reads and parses a resume from the local filesystem.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ReadError{Source: path, Cause: err}
	}

	return Parse(path, data)
}

// Parse extracts lines from the raw file contents. The format is picked by the
// extension of name; anything that is not .docx is treated as a PDF.
func Parse(name string, data []byte) (*Document, error) {
	var (
		text []string
		err  error
	)

	switch FormatOf(name) {
	case FormatDOCX:
		text, err = docxPages(data)
	default:
		text, err = pdfPages(data)
	}
	if err != nil {
		return nil, &ReadError{Source: name, Cause: err}
	}

	doc := &Document{Source: name, Lines: make([]string, 0)}
	for _, page := range text {
		doc.Lines = append(doc.Lines, SplitLines(page)...)
	}

	return doc, nil
}

// FormatOf reports the document format for the given file name.
func FormatOf(name string) string {
	if strings.EqualFold(filepath.Ext(name), ".docx") {
		return FormatDOCX
	}
	return FormatPDF
}

// SplitLines splits text into lines, trims them and drops the empty ones.
func SplitLines(text string) []string {
	text = newlines.ReplaceAllString(text, "\n")

	lines := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// pdfPages returns the text of every page in document order.
// The pdf package panics on some malformed inputs, so the panic is turned into an error.
func pdfPages(data []byte) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	total := reader.NumPage()
	pages = make([]string, 0, total)
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		pages = append(pages, pageText(page.Content().Text))
	}

	return pages, nil
}

// pageText lays glyphs out in content order and starts a new line whenever
// the baseline moves or the pen jumps back to the left.
func pageText(glyphs []pdf.Text) string {
	var (
		b     strings.Builder
		prev  pdf.Text
		start = true
		space bool
	)

	for _, g := range glyphs {
		if g.S == "\n" {
			space = true
			continue
		}

		if !start {
			size := max(prev.FontSize, g.FontSize, 1)
			end := prev.X + prev.W
			switch {
			case math.Abs(g.Y-prev.Y) > size/2 || g.X < end-size:
				b.WriteByte('\n')
			case space || g.X-end > size/4:
				if prev.S != " " && g.S != " " {
					b.WriteByte(' ')
				}
			}
		}

		b.WriteString(g.S)
		prev, start, space = g, false, false
	}

	return b.String()
}

func docxPages(data []byte) ([]string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}
	defer doc.Close()

	return []string{docxText(doc.Editable().GetContent())}, nil
}

// docxText converts WordprocessingML into plain text, one paragraph per line.
func docxText(xml string) string {
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
	xml = strings.ReplaceAll(xml, "<w:br/>", "\n")
	text := docxTags.ReplaceAllString(xml, "")

	return xmlUnescape.Replace(text)
}

var xmlUnescape = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
)
