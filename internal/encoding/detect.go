// Package encoding turns uploaded statement files of unknown charset into
// UTF-8 text.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	xencoding "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const sniffSize = 4096

// Charset names reported by ToUTF8.
const (
	UTF8        = "utf-8"
	UTF16LE     = "utf-16le"
	UTF16BE     = "utf-16be"
	Windows1252 = "windows-1252"
	ISO8859_9   = "iso-8859-9"
	ISO8859_15  = "iso-8859-15"
)

var boms = []struct {
	prefix  []byte
	charset string
	enc     xencoding.Encoding
}{
	{[]byte{0xEF, 0xBB, 0xBF}, UTF8, unicode.UTF8BOM},
	{[]byte{0xFF, 0xFE}, UTF16LE, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)},
	{[]byte{0xFE, 0xFF}, UTF16BE, unicode.UTF16(unicode.BigEndian, unicode.UseBOM)},
}

// detected maps chardet results to the single-byte charsets bank exports
// actually use. Anything else is decoded as Windows-1252.
var detected = map[string]struct {
	charset string
	enc     xencoding.Encoding
}{
	"ISO-8859-1":   {Windows1252, charmap.Windows1252},
	"windows-1252": {Windows1252, charmap.Windows1252},
	"ISO-8859-9":   {ISO8859_9, charmap.ISO8859_9},
	"ISO-8859-15":  {ISO8859_15, charmap.ISO8859_15},
}

// ToUTF8 sniffs the start of r and returns a reader that yields its content
// as UTF-8, along with the charset it was decoded from. A byte order mark
// decides first, then UTF-8 validity, then chardet.
func ToUTF8(r io.Reader) (io.Reader, string, error) {
	br := bufio.NewReaderSize(r, sniffSize)

	buf, err := br.Peek(sniffSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, "", fmt.Errorf("peek: %w", err)
	}

	for _, b := range boms {
		if bytes.HasPrefix(buf, b.prefix) {
			return transform.NewReader(br, b.enc.NewDecoder()), b.charset, nil
		}
	}

	if len(buf) == sniffSize {
		buf = trimPartialRune(buf)
	}

	if utf8.Valid(buf) {
		return br, UTF8, nil
	}

	if result, err := chardet.NewTextDetector().DetectBest(buf); err == nil {
		if d, ok := detected[result.Charset]; ok {
			return transform.NewReader(br, d.enc.NewDecoder()), d.charset, nil
		}
	}

	return transform.NewReader(br, charmap.Windows1252.NewDecoder()), Windows1252, nil
}

// trimPartialRune drops a multi-byte sequence cut off at the end of buf.
func trimPartialRune(buf []byte) []byte {
	for i := 1; i < utf8.UTFMax && i <= len(buf); i++ {
		if utf8.RuneStart(buf[len(buf)-i]) {
			if !utf8.FullRune(buf[len(buf)-i:]) {
				return buf[:len(buf)-i]
			}

			break
		}
	}

	return buf
}
