package extract

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// TextExtractor decodes plain-text attachments (.txt, .csv). UTF-8 input is
// passed through; everything else is tried as GBK and then Latin-1.
type TextExtractor struct{}

// ExtractText implements the Extractor interface for text files.
func (e *TextExtractor) ExtractText(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	if out, err := decodeWith(simplifiedchinese.GBK, data); err == nil {
		return out, nil
	}
	// Latin-1 accepts any byte sequence.
	out, err := decodeWith(charmap.ISO8859_1, data)
	if err != nil {
		return "", fmt.Errorf("decode text attachment: %w", err)
	}
	return out, nil
}

func decodeWith(enc encoding.Encoding, data []byte) (string, error) {
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
