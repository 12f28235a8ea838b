package jws

import "github.com/cockroachdb/errors"

var (
	// ErrMalformedSegment is returned when a segment is not valid unpadded base64url
	ErrMalformedSegment = errors.New("malformed segment")
	// ErrMalformedToken is returned when a token is not made of three non-empty segments
	ErrMalformedToken = errors.New("malformed token")
	// ErrUnsupportedAlgorithm is returned for an unknown `alg` identifier
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")
	// ErrInvalidKeyType is returned when the key does not match the algorithm family or curve
	ErrInvalidKeyType = errors.New("invalid key type")
	// ErrSigningFailure is returned when the key is too small or the signing primitive fails
	ErrSigningFailure = errors.New("signing failure")
	// ErrInvalidSignature is returned when a well-formed signature does not verify
	ErrInvalidSignature = errors.New("invalid signature")
	// ErrAlgorithmMismatch is returned when the token header names a different algorithm
	// than the one expected by the caller
	ErrAlgorithmMismatch = errors.New("algorithm mismatch")
)
