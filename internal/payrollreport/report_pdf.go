package payrollreport

import (
	"bytes"
	"fmt"
	"strings"
)

const (
	pdfLinesPerPage = 60
	pdfFontSize     = 9
	pdfLeading      = 12
	pdfPageWidth    = 595
	pdfPageHeight   = 842
	pdfMargin       = 40
	pdfTextTop      = 800
)

// pdfMaxLineChars is how many Courier glyphs (600/1000 em each) fit between
// the side margins.
const pdfMaxLineChars = (pdfPageWidth - 2*pdfMargin) * 1000 / (600 * pdfFontSize)

// buildReportPDF lays out lines top to bottom on A4 pages in a monospace font,
// starting a new page every pdfLinesPerPage lines.
func buildReportPDF(lines []string) []byte {
	if len(lines) == 0 {
		lines = []string{"Salary Report"}
	}

	var pages [][]string
	for start := 0; start < len(lines); start += pdfLinesPerPage {
		end := min(start+pdfLinesPerPage, len(lines))
		pages = append(pages, lines[start:end])
	}

	// 1 catalog, 2 pages, 3 font, then a page object and its content per page.
	const firstPageObj = 4
	kids := make([]string, 0, len(pages))
	for i := range pages {
		kids = append(kids, fmt.Sprintf("%d 0 R", firstPageObj+2*i))
	}

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Courier >>",
	}
	for i, page := range pages {
		stream := pageStream(page)
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %d %d] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>",
				pdfPageWidth, pdfPageHeight, firstPageObj+2*i+1),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		)
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objects))
	for i, obj := range objects {
		offsets = append(offsets, out.Len())
		fmt.Fprintf(&out, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xrefStart := out.Len()
	fmt.Fprintf(&out, "xref\n0 %d\n", len(objects)+1)
	out.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&out, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&out, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(objects)+1, xrefStart)
	return out.Bytes()
}

func pageStream(lines []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "BT\n/F1 %d Tf\n%d TL\n%d %d Td\n", pdfFontSize, pdfLeading, pdfMargin, pdfTextTop)
	for i, line := range lines {
		if i > 0 {
			b.WriteString("T* ")
		}
		fmt.Fprintf(&b, "(%s) Tj\n", pdfEscape(line))
	}
	b.WriteString("ET")
	return b.String()
}

// pdfEscape keeps the text inside a literal string; non-ASCII runes are
// replaced since the base font only covers Latin-1.
func pdfEscape(v string) string {
	v = strings.Map(func(r rune) rune {
		if r > 126 || (r < 32 && r != '\t') {
			return '?'
		}
		return r
	}, v)
	return strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)").Replace(v)
}
