package ass

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

const detectLimit = 4096

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

type charset struct {
	name     string
	encoding encoding.Encoding
}

func (c *charset) isUTF16() bool {
	return strings.HasPrefix(c.name, "utf-16")
}

// lookupCharset resolves a WHATWG encoding label, e.g. "gbk", "big5", "utf-16le".
func lookupCharset(label string) (*charset, error) {
	enc, err := htmlindex.Get(strings.TrimSpace(label))
	if err != nil {
		return nil, fmt.Errorf("unknown charset name: %v", label)
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		name = strings.ToLower(label)
	}
	return &charset{name: name, encoding: enc}, nil
}

// detectCharset sniffs a byte order mark, then accepts valid UTF-8, then runs
// statistical detection over the leading bytes.
func detectCharset(data []byte) (*charset, error) {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return &charset{name: "utf-8", encoding: unicode.UTF8}, nil
	case bytes.HasPrefix(data, bomUTF16LE):
		return &charset{name: "utf-16le", encoding: unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)}, nil
	case bytes.HasPrefix(data, bomUTF16BE):
		return &charset{name: "utf-16be", encoding: unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)}, nil
	}
	sample := data
	if len(sample) > detectLimit {
		sample = sample[:detectLimit]
		// a multi-byte rune may be cut at the boundary
		for i := 0; i < utf8.UTFMax-1 && len(sample) > 0; i++ {
			if r, size := utf8.DecodeLastRune(sample); r != utf8.RuneError || size != 1 {
				break
			}
			sample = sample[:len(sample)-1]
		}
	}
	if utf8.Valid(sample) {
		return &charset{name: "utf-8", encoding: unicode.UTF8}, nil
	}
	result, err := chardet.NewTextDetector().DetectBest(sample)
	if err != nil || result == nil {
		return nil, fmt.Errorf("fail to detect ASS charset")
	}
	ret, err := detectedCharset(result.Charset)
	if err != nil {
		return nil, fmt.Errorf("fail to detect ASS charset")
	}
	return ret, nil
}

// detectedCharset maps a detector charset name, e.g. "GB-18030" or
// "Shift_JIS", onto a WHATWG encoding.
func detectedCharset(name string) (*charset, error) {
	if ret, err := lookupCharset(name); err == nil {
		return ret, nil
	}
	return lookupCharset(strings.ReplaceAll(name, "-", ""))
}

func (c *charset) decode(data []byte) (string, error) {
	decoded, err := c.encoding.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("fail to decode: %w", err)
	}
	return strings.TrimPrefix(string(decoded), "\uFEFF"), nil
}

func (c *charset) encode(text string) ([]byte, error) {
	if c.isUTF16() {
		text = "\uFEFF" + text
	}
	encoded, err := encoding.ReplaceUnsupported(c.encoding.NewEncoder()).Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("fail to encode: %w", err)
	}
	return encoded, nil
}
