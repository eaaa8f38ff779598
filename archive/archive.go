// Package archive loads message corpora: zip archives of .eml files, mbox
// files, bare .eml files, or directories of .eml files. Malformed messages
// are dropped from the corpus with a warning; they never abort the run.
package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	mboxlib "github.com/emersion/go-mbox"
	"github.com/jhillyerd/enmime"

	"access-review/extract"
	"access-review/model"
)

// Loader parses archives into messages, extracting attachment text through
// the registry.
type Loader struct {
	registry *extract.Registry
	logger   *slog.Logger
}

// NewLoader creates a Loader. A nil logger falls back to the default.
func NewLoader(registry *extract.Registry, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{registry: registry, logger: logger}
}

// Load reads all messages from the archive at path. The container format is
// chosen by extension: .zip, .mbox, .eml, or a directory of .eml files.
func (l *Loader) Load(path string) ([]model.Message, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	if info.IsDir() {
		return l.loadDir(path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		return l.loadZip(path)
	case ".mbox":
		return l.loadMbox(path)
	case ".eml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read message file: %w", err)
		}
		msg, err := l.parseMessage(filepath.Base(path), data)
		if err != nil {
			return nil, err
		}
		return []model.Message{msg}, nil
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", path)
	}
}

func (l *Loader) loadZip(path string) ([]model.Message, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open zip archive: %w", err)
	}
	defer zr.Close()

	var messages []model.Message
	for _, entry := range zr.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		name := filepath.Base(entry.Name)
		if !strings.HasSuffix(strings.ToLower(name), ".eml") {
			continue
		}

		rc, err := entry.Open()
		if err != nil {
			l.logger.Warn("skipping unreadable archive entry", "entry", entry.Name, "err", err)
			continue
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			l.logger.Warn("skipping unreadable archive entry", "entry", entry.Name, "err", err)
			continue
		}

		msg, err := l.parseMessage(name, data)
		if err != nil {
			l.logger.Warn("dropping malformed message", "entry", entry.Name, "err", err)
			continue
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

func (l *Loader) loadMbox(path string) ([]model.Message, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mbox: %w", err)
	}
	defer file.Close()

	reader := mboxlib.NewReader(file)
	var messages []model.Message
	for idx := 0; ; idx++ {
		msgReader, err := reader.NextMessage()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return messages, nil
			}
			return nil, fmt.Errorf("mbox message %d: %w", idx, err)
		}

		raw, err := io.ReadAll(msgReader)
		if err != nil {
			l.logger.Warn("dropping unreadable mbox message", "index", idx, "err", err)
			continue
		}

		name := fmt.Sprintf("%s#%d", filepath.Base(path), idx)
		msg, err := l.parseMessage(name, raw)
		if err != nil {
			l.logger.Warn("dropping malformed message", "index", idx, "err", err)
			continue
		}
		messages = append(messages, msg)
	}
}

func (l *Loader) loadDir(path string) ([]model.Message, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("read archive directory: %w", err)
	}

	var messages []model.Message
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".eml") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(path, entry.Name()))
		if err != nil {
			l.logger.Warn("skipping unreadable message file", "file", entry.Name(), "err", err)
			continue
		}
		msg, err := l.parseMessage(entry.Name(), data)
		if err != nil {
			l.logger.Warn("dropping malformed message", "file", entry.Name(), "err", err)
			continue
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// parseMessage turns one raw MIME message into a Message. The body prefers
// plain text; an HTML-only body is converted to text. Attachments outside
// the allow-list are ignored; allowed attachments that fail extraction are
// kept with empty text.
func (l *Loader) parseMessage(name string, raw []byte) (model.Message, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return model.Message{}, fmt.Errorf("parse message: %w", err)
	}

	var date *time.Time
	if header := env.GetHeader("Date"); header != "" {
		if t, err := mail.ParseDate(header); err == nil {
			utc := t.UTC()
			date = &utc
		}
	}

	body := env.Text
	if body == "" && env.HTML != "" {
		body = extract.HTMLText(env.HTML)
	}

	var attachments []model.AttachmentUnit
	for _, part := range env.Attachments {
		if part.FileName == "" || !l.registry.Allowed(part.FileName) {
			continue
		}
		attachments = append(attachments, model.AttachmentUnit{
			Filename: part.FileName,
			Text:     l.registry.Extract(part.FileName, part.Content),
		})
	}

	return model.Message{
		File:        name,
		Subject:     env.GetHeader("Subject"),
		Body:        body,
		Date:        date,
		Attachments: attachments,
	}, nil
}
