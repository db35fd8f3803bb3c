package ocr

import (
	"bytes"
	"context"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/rotisserie/eris"
)

// PdfCPU extracts text from PDFs in pure Go by walking content streams.
// It needs no external binary but handles fewer encodings than pdftotext,
// so it is the fallback provider, not the default.
type PdfCPU struct{}

// NewPdfCPU creates a PdfCPU extractor.
func NewPdfCPU() *PdfCPU {
	return &PdfCPU{}
}

// ExtractText reads every page's content stream and returns the decoded text.
// Line structure is preserved: row parsers downstream match per line.
func (p *PdfCPU) ExtractText(ctx context.Context, pdfPath string) (string, error) {
	f, err := os.Open(pdfPath)
	if err != nil {
		return "", eris.Wrapf(err, "ocr: open %s", pdfPath)
	}
	defer f.Close() //nolint:errcheck

	conf := model.NewDefaultConfiguration()
	pdfCtx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return "", eris.Wrapf(err, "ocr: pdfcpu read %s", pdfPath)
	}

	var sb strings.Builder
	for pageNr := 1; pageNr <= pdfCtx.PageCount; pageNr++ {
		if ctx.Err() != nil {
			return "", eris.Wrap(ctx.Err(), "ocr: pdfcpu cancelled")
		}
		pageText := extractPageText(pdfCtx, pageNr)
		if pageText == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(pageText)
	}

	if sb.Len() == 0 {
		return "", eris.Errorf("ocr: no text content found in %s", pdfPath)
	}
	return sb.String(), nil
}

func extractPageText(pdfCtx *model.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(pdfCtx, pageNr)
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return ""
	}
	return textFromStream(data)
}

// pdfStringRe matches PDF string literals in parentheses: (text here)
var pdfStringRe = regexp.MustCompile(`\(([^)]*)\)`)

// textFromStream walks PDF content stream operators. Tj/TJ append show-text
// strings to the current line; ' and T* start a new line; Td/TD insert a
// column gap within the line.
func textFromStream(data []byte) string {
	var lines []string
	var line strings.Builder

	endLine := func() {
		if s := strings.TrimSpace(line.String()); s != "" {
			lines = append(lines, s)
		}
		line.Reset()
	}

	for _, op := range bytes.Split(data, []byte{'\n'}) {
		op = bytes.TrimSpace(op)
		if len(op) == 0 {
			continue
		}

		switch {
		case bytes.HasSuffix(op, []byte("Tj")), bytes.HasSuffix(op, []byte("TJ")):
			for _, m := range pdfStringRe.FindAllSubmatch(op, -1) {
				line.WriteString(decodePDFString(m[1]))
			}
		case bytes.HasSuffix(op, []byte("'")) && bytes.Contains(op, []byte("(")):
			endLine()
			for _, m := range pdfStringRe.FindAllSubmatch(op, -1) {
				line.WriteString(decodePDFString(m[1]))
			}
		case bytes.HasSuffix(op, []byte("Td")), bytes.HasSuffix(op, []byte("TD")):
			if line.Len() > 0 {
				line.WriteByte(' ')
			}
		case bytes.Equal(op, []byte("T*")):
			endLine()
		case bytes.HasSuffix(op, []byte("ET")):
			endLine()
		}
	}
	endLine()

	return strings.Join(lines, "\n")
}

// decodePDFString handles basic PDF escape sequences, including octal escapes.
func decodePDFString(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(raw[i])
		default:
			if raw[i] >= '0' && raw[i] <= '7' {
				val := int(raw[i] - '0')
				for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
					i++
					val = val*8 + int(raw[i]-'0')
				}
				sb.WriteByte(byte(val))
			} else {
				sb.WriteByte(raw[i])
			}
		}
	}
	return sb.String()
}
