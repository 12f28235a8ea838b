package jws

import (
	"github.com/cockroachdb/errors"
)

// Message is a decoded compact JWS
type Message struct {
	// Header is the decoded protected header
	Header Header
	// RawHeader is the header bytes as transmitted
	RawHeader []byte
	// Payload is the decoded payload
	Payload []byte
	// Signature is the decoded signature
	Signature []byte

	// signingInput is the first two segments, as transmitted
	signingInput []byte
}

// SigningInput returns the signing input as transmitted
func (m *Message) SigningInput() []byte {
	return m.signingInput
}

// SignCompact returns compact serialization of header and payload,
// signed with alg and key. The header must be serialized by the caller,
// its `alg` is not inspected.
func SignCompact(alg Algorithm, key any, header, payload []byte) (string, error) {
	if len(header) == 0 {
		return "", errors.Wrapf(ErrMalformedSegment, "empty header")
	}
	if len(payload) == 0 {
		return "", errors.Wrapf(ErrMalformedSegment, "empty payload")
	}

	input := BuildSigningInput(header, payload)
	sig, err := Sign(alg, key, input)
	if err != nil {
		return "", err
	}
	return Assemble(input, sig), nil
}

// ParseCompact decodes the token without verifying the signature.
// It is only useful to find the key before calling VerifyCompact,
// for instance by `kid` header.
// WARNING: the returned message is not authenticated.
func ParseCompact(token string) (*Message, error) {
	hs, ps, ss, err := Split(token)
	if err != nil {
		return nil, err
	}

	m := &Message{
		signingInput: []byte(token[:len(hs)+1+len(ps)]),
	}
	if m.RawHeader, err = DecodeSegment(hs); err != nil {
		return nil, errors.WithMessage(err, "header")
	}
	if m.Payload, err = DecodeSegment(ps); err != nil {
		return nil, errors.WithMessage(err, "payload")
	}
	if m.Signature, err = DecodeSegment(ss); err != nil {
		return nil, errors.WithMessage(err, "signature")
	}
	if m.Header, err = ParseHeader(m.RawHeader); err != nil {
		return nil, err
	}
	return m, nil
}

// VerifyCompact decodes the token and verifies its signature with alg and key.
// The `alg` header of the token must be equal to alg,
// otherwise ErrAlgorithmMismatch is returned.
func VerifyCompact(alg Algorithm, key any, token string) (*Message, error) {
	if alg.Hash() == 0 {
		return nil, errors.Wrapf(ErrUnsupportedAlgorithm, "%q", string(alg))
	}

	m, err := ParseCompact(token)
	if err != nil {
		return nil, err
	}

	headerAlg, ok := m.Header.Get(HeaderAlgorithm)
	if !ok {
		return nil, errors.Wrapf(ErrMalformedToken, "missing alg header")
	}
	if s, _ := headerAlg.(string); s != string(alg) {
		return nil, errors.Wrapf(ErrAlgorithmMismatch, "expected %s", alg)
	}

	if err = Verify(alg, key, m.signingInput, m.Signature); err != nil {
		return nil, err
	}
	return m, nil
}
