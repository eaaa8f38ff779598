package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/richardlehane/mscfb"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DOCXExtractor extracts text from .docx attachments (Office Open XML).
type DOCXExtractor struct{}

// ExtractText implements the Extractor interface for DOCX files.
func (e *DOCXExtractor) ExtractText(data []byte) (string, error) {
	zipReader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx container: %w", err)
	}

	for _, file := range zipReader.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("open document.xml: %w", err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("read document.xml: %w", err)
		}
		return strings.TrimSpace(htmlTagRegex.ReplaceAllString(string(content), " ")), nil
	}

	return "", fmt.Errorf("docx has no word/document.xml")
}

// XLSXExtractor extracts cell text from .xlsx attachments, all sheets joined
// with spaces.
type XLSXExtractor struct{}

// ExtractText implements the Extractor interface for XLSX files.
func (e *XLSXExtractor) ExtractText(data []byte) (string, error) {
	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("open xlsx: %w", err)
	}
	defer wb.Close()

	var b strings.Builder
	for _, sheet := range wb.GetSheetList() {
		rows, err := wb.GetRows(sheet)
		if err != nil {
			continue
		}
		for _, row := range rows {
			for _, cell := range row {
				if cell == "" {
					continue
				}
				if b.Len() > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(cell)
			}
		}
	}
	return b.String(), nil
}

// OLEExtractor salvages text from legacy OLE compound documents (.doc,
// .xls) by reading the named streams and decoding them best effort: UTF-16
// when the stream looks like it, printable ASCII otherwise.
type OLEExtractor struct {
	Streams []string
}

// ExtractText implements the Extractor interface for OLE compound files.
func (e *OLEExtractor) ExtractText(data []byte) (string, error) {
	cf, err := mscfb.New(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("open compound file: %w", err)
	}

	wanted := make(map[string]bool, len(e.Streams))
	for _, name := range e.Streams {
		wanted[name] = true
	}

	var b strings.Builder
	for ent, err := cf.Next(); err == nil; ent, err = cf.Next() {
		if !wanted[ent.Name] {
			continue
		}
		raw, _ := io.ReadAll(ent)
		if len(raw) == 0 {
			continue
		}
		text := salvageText(raw)
		if text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(text)
	}
	return strings.TrimSpace(b.String()), nil
}

// salvageText decodes a stream as UTF-16LE when it looks like wide text,
// otherwise keeps printable ASCII and blanks the rest.
func salvageText(data []byte) string {
	if looksUTF16LE(data) {
		dec := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
		if out, _, err := transform.Bytes(dec, data); err == nil {
			return strings.TrimSpace(string(out))
		}
	}

	buf := make([]rune, 0, len(data))
	for _, c := range data {
		if c == 0x09 || c == 0x0a || c == 0x0d || (c >= 0x20 && c <= 0x7e) {
			buf = append(buf, rune(c))
		} else {
			buf = append(buf, ' ')
		}
	}
	return strings.TrimSpace(strings.Join(strings.Fields(string(buf)), " "))
}

// looksUTF16LE reports whether a majority of odd-position bytes are zero,
// the signature of UTF-16LE encoded Latin-range text.
func looksUTF16LE(data []byte) bool {
	if len(data) < 4 || len(data)%2 != 0 {
		return false
	}
	zeros := 0
	for i := 1; i < len(data); i += 2 {
		if data[i] == 0 {
			zeros++
		}
	}
	return zeros*2 > len(data)/2
}
