// Package documenttest builds small, valid PDF files for tests.
package documenttest

import (
	"bytes"
	"fmt"
	"strings"
)

var pdfEscaper = strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)

// PDF renders one page per element of pages; every string becomes a separate
// text line on that page. A nil or empty page produces a page without text.
// Lines are advanced with T* and a 14pt leading.
func PDF(pages ...[]string) []byte {
	return render(pages, "T*")
}

// OffsetPDF is PDF with every line placed by a relative "0 -14 Td" move, the
// way most PDF producers position text.
func OffsetPDF(pages ...[]string) []byte {
	return render(pages, "0 -14 Td")
}

func render(pages [][]string, nextLine string) []byte {
	var buf bytes.Buffer
	offsets := make([]int, 0)

	object := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")

	kids := make([]string, 0, len(pages))
	for i := range pages {
		kids = append(kids, fmt.Sprintf("%d 0 R", 4+2*i))
	}

	object("<< /Type /Catalog /Pages 2 0 R >>")
	object(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)))
	object("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	for i, lines := range pages {
		object(fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>",
			5+2*i,
		))
		content := pageContent(lines, nextLine)
		object(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, offset := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offset)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)

	return buf.Bytes()
}

func pageContent(lines []string, nextLine string) string {
	if len(lines) == 0 {
		return "BT\nET"
	}

	var b strings.Builder
	b.WriteString("BT\n/F1 12 Tf\n14 TL\n72 720 Td\n")
	for i, line := range lines {
		if i > 0 {
			b.WriteString(nextLine + "\n")
		}
		fmt.Fprintf(&b, "(%s) Tj\n", pdfEscaper.Replace(line))
	}
	b.WriteString("ET")
	return b.String()
}
