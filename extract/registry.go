// Package extract turns attachment bytes into plain text. The registry is
// the only entry point the pipeline uses: it applies the extension
// allow-list and size cap, dispatches to the per-format extractor, and
// absorbs every failure into empty text so callers never see an error.
package extract

import (
	"log/slog"
	"path/filepath"
	"strings"
)

// Extractor converts one attachment's raw bytes into plain text.
type Extractor interface {
	ExtractText(data []byte) (string, error)
}

// Registry holds extractors for the allowed attachment formats.
type Registry struct {
	extractors map[string]Extractor
	allowed    map[string]bool
	maxSize    int64
	logger     *slog.Logger
}

// NewRegistry creates a registry with the built-in extractors, restricted to
// the given extensions (without dots) and attachment size cap.
func NewRegistry(allowedExts []string, maxSize int64, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	reg := &Registry{
		extractors: make(map[string]Extractor),
		allowed:    make(map[string]bool, len(allowedExts)),
		maxSize:    maxSize,
		logger:     logger,
	}
	for _, ext := range allowedExts {
		reg.allowed[strings.ToLower(strings.TrimPrefix(ext, "."))] = true
	}
	reg.registerBuiltIns()
	return reg
}

func (r *Registry) registerBuiltIns() {
	r.extractors["txt"] = &TextExtractor{}
	r.extractors["csv"] = &TextExtractor{}
	r.extractors["html"] = &HTMLExtractor{}
	r.extractors["docx"] = &DOCXExtractor{}
	r.extractors["xlsx"] = &XLSXExtractor{}
	r.extractors["pdf"] = &PDFExtractor{}

	// Legacy OLE formats, salvaged stream by stream.
	r.extractors["doc"] = &OLEExtractor{Streams: []string{"WordDocument", "1Table", "0Table"}}
	r.extractors["xls"] = &OLEExtractor{Streams: []string{"Workbook", "Book"}}
}

// Allowed reports whether the filename's extension is on the allow-list.
func (r *Registry) Allowed(filename string) bool {
	return r.allowed[extOf(filename)]
}

// Extract returns the plain text of an attachment, or empty text when the
// format is disallowed, the data exceeds the size cap, or extraction fails
// for any reason. It never returns an error and never panics.
func (r *Registry) Extract(filename string, data []byte) (text string) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Warn("extractor panic", "file", filename, "panic", rec)
			text = ""
		}
	}()

	ext := extOf(filename)
	if !r.allowed[ext] {
		r.logger.Debug("attachment type not allowed", "file", filename)
		return ""
	}
	if int64(len(data)) > r.maxSize {
		r.logger.Debug("attachment over size cap", "file", filename, "size", len(data))
		return ""
	}

	extractor, ok := r.extractors[ext]
	if !ok {
		return ""
	}
	out, err := extractor.ExtractText(data)
	if err != nil {
		r.logger.Warn("extraction failed", "file", filename, "err", err)
		return ""
	}
	return out
}

func extOf(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}
