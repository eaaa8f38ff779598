package extract

import (
	"regexp"
	"strings"

	"github.com/jaytaylor/html2text"
)

var htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

// HTMLExtractor extracts text from .html attachments.
type HTMLExtractor struct{}

// ExtractText implements the Extractor interface for HTML files.
func (e *HTMLExtractor) ExtractText(data []byte) (string, error) {
	return HTMLText(string(data)), nil
}

// HTMLText converts HTML markup to plain text. Malformed markup falls back
// to tag stripping rather than failing.
func HTMLText(html string) string {
	text, err := html2text.FromString(html, html2text.Options{TextOnly: true})
	if err != nil {
		text = htmlTagRegex.ReplaceAllString(html, " ")
	}
	return strings.TrimSpace(text)
}
