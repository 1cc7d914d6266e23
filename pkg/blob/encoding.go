package blob

import "bytes"

// Encoding names the text encoding detected for a blob's content.
type Encoding string

// Recognized encodings, detected by byte-order-mark and, failing that,
// UTF-8 validity.
const (
	EncodingUTF8    Encoding = "UTF-8"
	EncodingUTF16LE Encoding = "UTF-16LE"
	EncodingUTF16BE Encoding = "UTF-16BE"
	EncodingUTF32LE Encoding = "UTF-32LE"
	EncodingUTF32BE Encoding = "UTF-32BE"
	EncodingBinary  Encoding = "binary"
)

var boms = []struct {
	prefix   []byte
	encoding Encoding
}{
	{[]byte{0xFF, 0xFE, 0x00, 0x00}, EncodingUTF32LE},
	{[]byte{0x00, 0x00, 0xFE, 0xFF}, EncodingUTF32BE},
	{[]byte{0xEF, 0xBB, 0xBF}, EncodingUTF8},
	{[]byte{0xFF, 0xFE}, EncodingUTF16LE},
	{[]byte{0xFE, 0xFF}, EncodingUTF16BE},
}

// Encoding sniffs the blob's content for a byte-order mark and falls back
// to reporting EncodingUTF8 for valid UTF-8 text or EncodingBinary
// otherwise. The bool result reports whether an explicit BOM was found.
func (d *Derived) Encoding() (Encoding, bool) {
	data, err := d.bytes()
	if err != nil {
		return EncodingBinary, false
	}

	for _, b := range boms {
		if bytes.HasPrefix(data, b.prefix) {
			return b.encoding, true
		}
	}

	if d.IsBinary() {
		return EncodingBinary, false
	}

	return EncodingUTF8, false
}
