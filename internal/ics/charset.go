package ics

import (
	"bufio"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

type Encoding int

const (
	EncodingUTF8 Encoding = iota
	EncodingUTF16LE
	EncodingUTF16BE
	EncodingCP1252
	EncodingLatin1
)

func (e Encoding) String() string {
	switch e {
	case EncodingUTF16LE:
		return "UTF-16LE"
	case EncodingUTF16BE:
		return "UTF-16BE"
	case EncodingCP1252:
		return "Windows-1252"
	case EncodingLatin1:
		return "Latin-1"
	default:
		return "UTF-8"
	}
}

// DetectEncoding sniffs leading bytes to classify the encoding of an
// exported calendar file.
func DetectEncoding(data []byte) Encoding {
	if len(data) >= 2 {
		if data[0] == 0xFF && data[1] == 0xFE {
			return EncodingUTF16LE
		}
		if data[0] == 0xFE && data[1] == 0xFF {
			return EncodingUTF16BE
		}
	}
	if utf8.Valid(data) {
		return EncodingUTF8
	}
	// Bytes in 0x80-0x9F are assigned in CP1252 but undefined in Latin-1.
	for _, b := range data {
		if b >= 0x80 && b <= 0x9F {
			return EncodingCP1252
		}
	}
	return EncodingLatin1
}

// TranscodeToUTF8 wraps r so the returned reader yields UTF-8 regardless of
// the source encoding. Detection looks at up to the first 1KB.
func TranscodeToUTF8(r io.Reader) (io.Reader, Encoding, error) {
	buf := bufio.NewReader(r)
	peek, err := buf.Peek(1024)
	if err != nil && err != io.EOF {
		return nil, EncodingUTF8, err
	}

	enc := DetectEncoding(peek)
	switch enc {
	case EncodingUTF16LE:
		dec := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
		return transform.NewReader(buf, dec), enc, nil
	case EncodingUTF16BE:
		dec := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
		return transform.NewReader(buf, dec), enc, nil
	case EncodingCP1252:
		return transform.NewReader(buf, charmap.Windows1252.NewDecoder()), enc, nil
	case EncodingLatin1:
		return transform.NewReader(buf, charmap.ISO8859_1.NewDecoder()), enc, nil
	default:
		return buf, enc, nil
	}
}
