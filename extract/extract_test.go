package extract

import (
	"archive/zip"
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func testRegistry(t *testing.T, maxSize int64) *Registry {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	exts := []string{"txt", "html", "csv", "docx", "xlsx", "pdf", "doc", "xls"}
	return NewRegistry(exts, maxSize, logger)
}

func TestRegistryAllowed(t *testing.T) {
	reg := testRegistry(t, 1<<20)

	tests := []struct {
		filename string
		want     bool
	}{
		{"roster.txt", true},
		{"roster.TXT", true},
		{"report.xlsx", true},
		{"scan.pdf", true},
		{"legacy.doc", true},
		{"archive.zip", false},
		{"tool.exe", false},
		{"noextension", false},
	}

	for _, tt := range tests {
		if got := reg.Allowed(tt.filename); got != tt.want {
			t.Errorf("Allowed(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestExtractDisallowedAndOversize(t *testing.T) {
	reg := testRegistry(t, 10)

	if got := reg.Extract("tool.exe", []byte("hello")); got != "" {
		t.Errorf("disallowed extension extracted %q, want empty", got)
	}
	if got := reg.Extract("big.txt", bytes.Repeat([]byte("x"), 11)); got != "" {
		t.Errorf("oversize attachment extracted %q, want empty", got)
	}
	if got := reg.Extract("ok.txt", []byte("small")); got != "small" {
		t.Errorf("within-cap attachment = %q, want small", got)
	}
}

func TestExtractFailureYieldsEmpty(t *testing.T) {
	reg := testRegistry(t, 1<<20)

	// Garbage for structured formats must come back as empty text, never an
	// error or a panic.
	for _, filename := range []string{"a.docx", "a.xlsx", "a.pdf", "a.doc", "a.xls"} {
		if got := reg.Extract(filename, []byte("not a real document")); got != "" {
			t.Errorf("Extract(%q, garbage) = %q, want empty", filename, got)
		}
	}
}

func TestTextExtractorEncodings(t *testing.T) {
	e := &TextExtractor{}

	utf8Text, err := e.ExtractText([]byte("plain UTF-8 中文"))
	if err != nil || utf8Text != "plain UTF-8 中文" {
		t.Errorf("UTF-8 passthrough = (%q, %v)", utf8Text, err)
	}

	// GBK bytes for 中文.
	gbkText, err := e.ExtractText([]byte{0xD6, 0xD0, 0xCE, 0xC4})
	if err != nil || gbkText != "中文" {
		t.Errorf("GBK decode = (%q, %v), want 中文", gbkText, err)
	}
}

func TestHTMLText(t *testing.T) {
	got := HTMLText("<html><body><p>Access <b>granted</b> to ZhangSan</p></body></html>")
	if !strings.Contains(got, "Access") || !strings.Contains(got, "granted") || !strings.Contains(got, "ZhangSan") {
		t.Errorf("HTMLText() = %q, missing expected words", got)
	}
	if strings.Contains(got, "<") {
		t.Errorf("HTMLText() = %q, contains markup", got)
	}
}

func TestDOCXExtractor(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	_, _ = w.Write([]byte(`<?xml version="1.0"?><w:document><w:body><w:p><w:t>新增权限 for E1001</w:t></w:p></w:body></w:document>`))
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	got, err := (&DOCXExtractor{}).ExtractText(buf.Bytes())
	if err != nil {
		t.Fatalf("ExtractText() error = %v", err)
	}
	if !strings.Contains(got, "新增权限 for E1001") {
		t.Errorf("ExtractText() = %q, missing document text", got)
	}
}

func TestDOCXExtractorMissingDocument(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("unrelated.xml")
	_, _ = w.Write([]byte("<x/>"))
	_ = zw.Close()

	if _, err := (&DOCXExtractor{}).ExtractText(buf.Bytes()); err == nil {
		t.Error("expected error for docx without word/document.xml")
	}
}

func TestXLSXExtractor(t *testing.T) {
	wb := excelize.NewFile()
	if err := wb.SetCellValue("Sheet1", "A1", "employee"); err != nil {
		t.Fatal(err)
	}
	if err := wb.SetCellValue("Sheet1", "B2", "张三"); err != nil {
		t.Fatal(err)
	}
	buf, err := wb.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	wb.Close()

	got, err := (&XLSXExtractor{}).ExtractText(buf.Bytes())
	if err != nil {
		t.Fatalf("ExtractText() error = %v", err)
	}
	if !strings.Contains(got, "employee") || !strings.Contains(got, "张三") {
		t.Errorf("ExtractText() = %q, missing cell text", got)
	}
}

func TestSalvageText(t *testing.T) {
	// UTF-16LE "approved".
	wide := []byte{'a', 0, 'p', 0, 'p', 0, 'r', 0, 'o', 0, 'v', 0, 'e', 0, 'd', 0}
	if got := salvageText(wide); got != "approved" {
		t.Errorf("salvageText(utf16) = %q, want approved", got)
	}

	// Binary noise around ASCII words collapses to the words.
	noisy := append([]byte{0x01, 0x02, 0xff}, []byte("grant access")...)
	noisy = append(noisy, 0x00, 0x7f)
	if got := salvageText(noisy); got != "grant access" {
		t.Errorf("salvageText(noisy) = %q, want %q", got, "grant access")
	}
}

func TestLooksUTF16LE(t *testing.T) {
	if looksUTF16LE([]byte{'h', 0, 'i', 0, '!'}) {
		t.Error("odd-length input should not look like UTF-16LE")
	}
	if !looksUTF16LE([]byte{'h', 0, 'i', 0, '!', 0}) {
		t.Error("zero-interleaved input should look like UTF-16LE")
	}
	if looksUTF16LE([]byte("plain ascii text")) {
		t.Error("plain ASCII should not look like UTF-16LE")
	}
}
