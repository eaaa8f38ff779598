package extract

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"

	"access-review/extract/pdfalt"
)

// PDFExtractor extracts text from .pdf attachments. The PDF library panics
// on some malformed inputs, so every call into it is guarded; a file that
// yields nothing degrades to empty text.
type PDFExtractor struct{}

// ExtractText implements the Extractor interface for PDF files.
func (e *PDFExtractor) ExtractText(data []byte) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = "", nil
		}
	}()

	reader, rerr := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if rerr != nil {
		return e.fallback(data)
	}

	pages := 0
	func() {
		defer func() { _ = recover() }()
		pages = reader.NumPage()
	}()
	if pages <= 0 {
		return e.fallback(data)
	}

	var b strings.Builder
	for i := 1; i <= pages; i++ {
		func() {
			defer func() { _ = recover() }()
			page := reader.Page(i)
			if page.V.IsNull() {
				return
			}
			content := page.Content()
			for _, item := range content.Text {
				b.WriteString(item.S)
				b.WriteByte(' ')
			}
			b.WriteByte('\n')
		}()
	}

	extracted := strings.TrimSpace(b.String())
	if extracted == "" {
		return e.fallback(data)
	}
	return extracted, nil
}

// fallback tries the pdfcpu-backed path, which is a no-op stub unless the
// binary was built with the "pdfcpu" tag.
func (e *PDFExtractor) fallback(data []byte) (string, error) {
	text, err := pdfalt.ExtractAllTextCapped(data, 0, 0)
	if err != nil {
		return "", nil
	}
	return text, nil
}
