//go:build !pdfcpu

package pdfalt

import "errors"

// ErrNotBuilt is returned when the binary was built without the "pdfcpu"
// build tag.
var ErrNotBuilt = errors.New("pdf content extraction requires a build with the pdfcpu tag")

// ExtractAllTextCapped is a stub used for default builds without the
// "pdfcpu" tag. For pdfcpu-enabled builds, see the implementation in
// simple.go.
func ExtractAllTextCapped(data []byte, pageCap, perPageCap int) (string, error) {
	return "", ErrNotBuilt
}
