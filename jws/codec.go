package jws

import (
	"encoding/base64"
	"strings"

	"github.com/cockroachdb/errors"
)

// segmentEncoding is the padded alphabet used to decode once padding is restored
var segmentEncoding = base64.URLEncoding.Strict()

// EncodeSegment returns base64url encoding with padding stripped
func EncodeSegment(seg []byte) string {
	return base64.RawURLEncoding.EncodeToString(seg)
}

// DecodeSegment decodes unpadded base64url segment.
// Any character outside of the base64url alphabet, including `=`,
// is rejected with ErrMalformedSegment.
func DecodeSegment(seg string) ([]byte, error) {
	if len(seg)%4 == 1 {
		return nil, errors.Wrapf(ErrMalformedSegment, "invalid length %d", len(seg))
	}
	for i := 0; i < len(seg); i++ {
		if !isSegmentChar(seg[i]) {
			return nil, errors.Wrapf(ErrMalformedSegment, "invalid character at offset %d", i)
		}
	}

	if pad := len(seg) % 4; pad > 0 {
		seg += strings.Repeat("=", 4-pad)
	}
	b, err := segmentEncoding.DecodeString(seg)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedSegment, "%s", err.Error())
	}
	return b, nil
}

func isSegmentChar(c byte) bool {
	return (c >= 'A' && c <= 'Z') ||
		(c >= 'a' && c <= 'z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '_'
}

// BuildSigningInput returns BASE64URL(header) || '.' || BASE64URL(payload)
func BuildSigningInput(header, payload []byte) []byte {
	enc := base64.RawURLEncoding
	hl := enc.EncodedLen(len(header))
	pl := enc.EncodedLen(len(payload))

	input := make([]byte, hl+1+pl)
	enc.Encode(input[:hl], header)
	input[hl] = '.'
	enc.Encode(input[hl+1:], payload)
	return input
}

// Assemble returns compact serialization of the signed input
func Assemble(signingInput, signature []byte) string {
	var b strings.Builder
	b.Grow(len(signingInput) + 1 + base64.RawURLEncoding.EncodedLen(len(signature)))
	b.Write(signingInput)
	b.WriteByte('.')
	b.WriteString(EncodeSegment(signature))
	return b.String()
}

// Split returns the three segments of the compact serialization
func Split(token string) (header, payload, signature string, err error) {
	if strings.Count(token, ".") != 2 {
		return "", "", "", errors.Wrapf(ErrMalformedToken, "expected 3 segments")
	}

	parts := strings.SplitN(token, ".", 3)
	for _, p := range parts {
		if p == "" {
			return "", "", "", errors.Wrapf(ErrMalformedToken, "empty segment")
		}
	}
	return parts[0], parts[1], parts[2], nil
}
