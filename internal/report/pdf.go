package report

import (
	"bufio"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/hyperifyio/filingcheck/internal/validation"
)

// WritePDF renders the text report into a minimal PDF for distribution to
// filers. Layout is intentionally simple: headings bold, everything else
// body text.
func WritePDF(res *validation.Result, outPath string) error {
	text := Render(res)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			pdf.Ln(5)
			continue
		}
		if strings.HasPrefix(line, "#") {
			heading := strings.TrimSpace(strings.TrimLeft(line, "#"))
			if heading == "" {
				continue
			}
			pdf.SetFont("Helvetica", "B", 13)
			pdf.CellFormat(0, 8, heading, "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 11)
			continue
		}
		pdf.MultiCell(0, 5, line, "", "L", false)
	}
	return pdf.OutputFileAndClose(outPath)
}
