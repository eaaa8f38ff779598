//go:build pdfcpu

package pdfalt

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Default caps for PDF text extraction.
const (
	DefaultPageCap    = 200        // maximum number of pages to process
	DefaultPerPageCap = 128 * 1024 // 128 KiB per-page text cap
)

// ExtractAllTextCapped extracts text from a PDF using pdfcpu and returns a
// single normalized string composed of per-page text (joined with newlines).
// - pageCap: maximum number of pages to include (use <=0 for default)
// - perPageCap: maximum bytes of text per page (use <=0 for default)
//
// This function is guarded by the 'pdfcpu' build tag.
func ExtractAllTextCapped(data []byte, pageCap, perPageCap int) (string, error) {
	if pageCap <= 0 {
		pageCap = DefaultPageCap
	}
	if perPageCap <= 0 {
		perPageCap = DefaultPerPageCap
	}

	// Panic protection around library calls.
	defer func() { _ = recover() }()

	// pdfcpu's content extraction works on files, so the attachment bytes
	// are staged in a run-scoped temp directory, removed on every path.
	tmpDir, err := os.MkdirTemp("", "access-review-pdf-*")
	if err != nil {
		return "", fmt.Errorf("temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	srcPath := filepath.Join(tmpDir, "attachment.pdf")
	if err := os.WriteFile(srcPath, data, 0o600); err != nil {
		return "", fmt.Errorf("stage pdf: %w", err)
	}

	outDir := filepath.Join(tmpDir, "content")
	if err := os.MkdirAll(outDir, 0o700); err != nil {
		return "", fmt.Errorf("temp content dir: %w", err)
	}

	// Dump content streams (PDF syntax) for all pages.
	if err := api.ExtractContentFile(srcPath, outDir, nil, nil); err != nil {
		return "", fmt.Errorf("pdfcpu ExtractContentFile: %w", err)
	}

	ents, err := os.ReadDir(outDir)
	if err != nil {
		return "", fmt.Errorf("read dir: %w", err)
	}
	sort.Slice(ents, func(i, j int) bool { return ents[i].Name() < ents[j].Name() })

	var b strings.Builder
	pagesProcessed := 0
	for _, de := range ents {
		if de.IsDir() {
			continue
		}
		if pagesProcessed >= pageCap {
			break
		}
		raw, _ := os.ReadFile(filepath.Join(outDir, de.Name()))
		if len(raw) == 0 {
			continue
		}

		txt := normalize(parseStringLiterals(string(raw), perPageCap))
		if len(txt) > perPageCap {
			txt = txt[:perPageCap]
		}
		if txt == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(txt)
		pagesProcessed++
	}

	return b.String(), nil
}

// parseStringLiterals collects text within balanced parentheses in a PDF
// content stream, honoring backslash escapes, and caps output size.
func parseStringLiterals(s string, maxOut int) string {
	var out strings.Builder
	depth := 0
	escape := false
	in := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !in {
			if c == '(' {
				in = true
				depth = 1
			}
			continue
		}
		if escape {
			out.WriteByte(c)
			escape = false
			if out.Len() >= maxOut {
				return out.String()
			}
			continue
		}
		switch c {
		case '\\':
			escape = true
		case '(':
			depth++
			out.WriteByte(c)
		case ')':
			depth--
			if depth == 0 {
				in = false
				out.WriteByte(' ')
			} else {
				out.WriteByte(c)
			}
		default:
			out.WriteByte(c)
		}
		if out.Len() >= maxOut {
			return out.String()
		}
	}
	return out.String()
}

// normalize blanks non-printable runes and collapses whitespace.
func normalize(s string) string {
	clean := strings.Map(func(r rune) rune {
		if !unicode.IsPrint(r) {
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(clean), " ")
}
