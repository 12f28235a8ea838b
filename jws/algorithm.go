package jws

import (
	"crypto"
	_ "crypto/sha256" // register SHA-256
	_ "crypto/sha512" // register SHA-384 and SHA-512

	"github.com/cockroachdb/errors"
)

// Algorithm is a JOSE `alg` identifier
type Algorithm string

// Supported algorithms, RFC 7518 section 3.1
const (
	HS256 Algorithm = "HS256"
	HS384 Algorithm = "HS384"
	HS512 Algorithm = "HS512"
	RS256 Algorithm = "RS256"
	RS384 Algorithm = "RS384"
	RS512 Algorithm = "RS512"
	ES256 Algorithm = "ES256"
)

// Family of the algorithm
type Family string

// Algorithm families
const (
	FamilyHMAC  Family = "HMAC"
	FamilyRSA   Family = "RSA"
	FamilyECDSA Family = "ECDSA"
)

// Algorithms returns the list of supported algorithms
func Algorithms() []Algorithm {
	return []Algorithm{HS256, HS384, HS512, RS256, RS384, RS512, ES256}
}

// ParseAlgorithm returns Algorithm for the `alg` identifier
func ParseAlgorithm(alg string) (Algorithm, error) {
	a := Algorithm(alg)
	if a.Hash() == 0 {
		return "", errors.Wrapf(ErrUnsupportedAlgorithm, "%q", alg)
	}
	return a, nil
}

// String returns the `alg` identifier
func (a Algorithm) String() string {
	return string(a)
}

// Hash returns the digest named by the algorithm,
// or zero if the algorithm is not supported
func (a Algorithm) Hash() crypto.Hash {
	switch a {
	case HS256, RS256, ES256:
		return crypto.SHA256
	case HS384, RS384:
		return crypto.SHA384
	case HS512, RS512:
		return crypto.SHA512
	}
	return 0
}

// Family returns the cryptographic family of the algorithm,
// or empty string if the algorithm is not supported
func (a Algorithm) Family() Family {
	switch a {
	case HS256, HS384, HS512:
		return FamilyHMAC
	case RS256, RS384, RS512:
		return FamilyRSA
	case ES256:
		return FamilyECDSA
	}
	return ""
}

// IsSymmetric returns true for HMAC algorithms
func (a Algorithm) IsSymmetric() bool {
	return a.Family() == FamilyHMAC
}
