// Package envelope wraps bit-packed identifier lists in the printable CAC code
// format:
//
//	<version>v<bitWidth>b<base64url-payload>
//
// The payload uses the standard base64 alphabet with '+' mapped to '-', '/'
// mapped to '_', and trailing '=' padding stripped. An empty identifier list
// encodes as "<version>v1b" with no payload characters.
package envelope

import (
	"encoding/base64"
	"regexp"
	"strconv"
	"strings"

	"github.com/xiv-cac/cac/internal/bitpack"
	"github.com/xiv-cac/cac/internal/cacerr"
)

// FormatVersion identifies the packing scheme generation written by Encode.
const FormatVersion = 1

// emptyWidth is the bit width written for an empty identifier list.
const emptyWidth = 1

var codePattern = regexp.MustCompile(`^(\d+)v(\d+)b(.*)$`)

var (
	toURLSafe   = strings.NewReplacer("+", "-", "/", "_")
	fromURLSafe = strings.NewReplacer("-", "+", "_", "/")
)

// Packed is the binary form of a code: version, bit width, payload bytes.
// It only exists between packing and rendering.
type Packed struct {
	Version  int
	BitWidth int
	Payload  []byte
}

// String renders the packed code in envelope form.
func (p Packed) String() string {
	return strconv.Itoa(p.Version) + "v" + strconv.Itoa(p.BitWidth) + "b" + encodePayload(p.Payload)
}

// Decoded is the result of parsing an envelope.
type Decoded struct {
	Version  int   `json:"version"`
	BitWidth int   `json:"bit_width"`
	IDs      []int `json:"ids"`
}

// Current reports whether the code was written by the current scheme.
// Other versions decode best-effort with the current bit layout.
func (d Decoded) Current() bool {
	return d.Version == FormatVersion
}

// Pack bit-packs ids under the given version.
func Pack(version int, ids []int) (Packed, error) {
	payload, width, err := bitpack.Encode(ids)
	if err != nil {
		return Packed{}, err
	}
	if len(ids) == 0 {
		width = emptyWidth
	}
	return Packed{Version: version, BitWidth: width, Payload: payload}, nil
}

// Encode renders ids as a code under FormatVersion.
func Encode(ids []int) (string, error) {
	return EncodeVersion(FormatVersion, ids)
}

// EncodeVersion renders ids as a code under an explicit version.
func EncodeVersion(version int, ids []int) (string, error) {
	p, err := Pack(version, ids)
	if err != nil {
		return "", err
	}
	return p.String(), nil
}

// Decode parses a code and unpacks its identifiers.
//
// Decode does not branch on the version: every version is read with the
// current bit layout.
//
// The payload parser is lenient. Besides the URL-safe alphabet it accepts
// the standard '+' and '/' characters and trailing '=' padding, so codes
// copied from tools that emit standard base64 still decode.
func Decode(code string) (Decoded, error) {
	m := codePattern.FindStringSubmatch(code)
	if m == nil {
		return Decoded{}, cacerr.New(cacerr.CodeInvalidCodeFormat, code,
			"code must match <version>v<bitWidth>b<payload>")
	}

	version, err := strconv.Atoi(m[1])
	if err != nil || version < 0 {
		return Decoded{}, cacerr.New(cacerr.CodeInvalidVersion, m[1],
			"version must be a non-negative integer")
	}

	width, err := strconv.Atoi(m[2])
	if err != nil || width <= 0 || width > bitpack.MaxWidth {
		return Decoded{}, cacerr.New(cacerr.CodeInvalidBitWidth, m[2],
			"bit width must be an integer in [1, %d]", bitpack.MaxWidth)
	}

	d := Decoded{Version: version, BitWidth: width, IDs: []int{}}
	if m[3] == "" {
		return d, nil
	}

	payload, err := decodePayload(m[3])
	if err != nil {
		return Decoded{}, cacerr.New(cacerr.CodeInvalidCodeFormat, m[3],
			"payload is not base64url: %v", err)
	}
	d.IDs = bitpack.Decode(payload, width)
	return d, nil
}

func encodePayload(payload []byte) string {
	s := base64.StdEncoding.EncodeToString(payload)
	return strings.TrimRight(toURLSafe.Replace(s), "=")
}

func decodePayload(s string) ([]byte, error) {
	s = fromURLSafe.Replace(s)
	if r := len(s) % 4; r != 0 {
		s += strings.Repeat("=", 4-r)
	}
	return base64.StdEncoding.DecodeString(s)
}
