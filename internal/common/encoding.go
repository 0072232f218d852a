package common

import (
	"io"

	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/transform"
)

// Big5Reader wraps a legacy Big5-encoded byte stream with a UTF-8 decoder.
// Several upstream endpoints still serve Big5.
func Big5Reader(r io.Reader) io.Reader {
	return transform.NewReader(r, traditionalchinese.Big5.NewDecoder())
}
