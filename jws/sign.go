package jws

import (
	"crypto"
	"crypto/elliptic"
	"crypto/hmac"
	"crypto/rand"
	"math/big"

	"github.com/cockroachdb/errors"
	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

// pkcs1v15Overhead is the minimum PKCS#1 v1.5 padding: 0x00 0x01 PS(>=8) 0x00
const pkcs1v15Overhead = 11

// digestInfoPrefixLen is the length of DER DigestInfo prefix for SHA-2 digests
const digestInfoPrefixLen = 19

// es256KeySize is the byte size of P-256 scalars
const es256KeySize = 32

// Sign returns the signature over signingInput.
//
// The key must be:
//   - []byte secret for HS256, HS384, HS512
//   - *rsa.PrivateKey, or crypto.Signer with RSA public key for RS256, RS384, RS512
//   - *ecdsa.PrivateKey on P-256, or crypto.Signer with P-256 public key for ES256
//
// ES256 signature is returned as 64 bytes r||s, not ASN.1.
func Sign(alg Algorithm, key any, signingInput []byte) ([]byte, error) {
	switch alg {
	case HS256, HS384, HS512:
		return signHMAC(alg, key, signingInput)
	case RS256, RS384, RS512:
		return signRSA(alg, key, signingInput)
	case ES256:
		return signECDSA(alg, key, signingInput)
	}
	return nil, errors.Wrapf(ErrUnsupportedAlgorithm, "%q", string(alg))
}

func signHMAC(alg Algorithm, key any, signingInput []byte) ([]byte, error) {
	secret, err := hmacSecret(alg, key)
	if err != nil {
		return nil, err
	}
	return hmacSum(alg.Hash(), secret, signingInput), nil
}

func hmacSecret(alg Algorithm, key any) ([]byte, error) {
	secret, ok := key.([]byte)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidKeyType, "%T for %s", key, alg)
	}
	if len(secret) == 0 {
		return nil, errors.Wrapf(ErrInvalidKeyType, "empty secret for %s", alg)
	}
	return secret, nil
}

func hmacSum(hash crypto.Hash, secret, signingInput []byte) []byte {
	h := hmac.New(hash.New, secret)
	h.Write(signingInput)
	return h.Sum(nil)
}

func digest(hash crypto.Hash, signingInput []byte) []byte {
	h := hash.New()
	h.Write(signingInput)
	return h.Sum(nil)
}

func signRSA(alg Algorithm, key any, signingInput []byte) ([]byte, error) {
	signer, ok := asSigner(key)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidKeyType, "%T for %s", key, alg)
	}
	pub, ok := rsaPublicKey(signer.Public())
	if !ok {
		return nil, errors.Wrapf(ErrInvalidKeyType, "%T for %s", signer.Public(), alg)
	}

	hash := alg.Hash()
	if minSize := digestInfoPrefixLen + hash.Size() + pkcs1v15Overhead; pub.Size() < minSize {
		return nil, errors.Wrapf(ErrSigningFailure,
			"RSA key of %d bits is too small for %s", pub.N.BitLen(), alg)
	}

	sig, err := signer.Sign(rand.Reader, digest(hash, signingInput), hash)
	if err != nil {
		return nil, errors.Wrapf(ErrSigningFailure, "%s: %s", alg, err.Error())
	}
	return sig, nil
}

func signECDSA(alg Algorithm, key any, signingInput []byte) ([]byte, error) {
	signer, ok := asSigner(key)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidKeyType, "%T for %s", key, alg)
	}
	pub, ok := ecdsaPublicKey(signer.Public())
	if !ok {
		return nil, errors.Wrapf(ErrInvalidKeyType, "%T for %s", signer.Public(), alg)
	}
	if pub.Curve != elliptic.P256() {
		return nil, errors.Wrapf(ErrInvalidKeyType, "curve %s for %s", pub.Curve.Params().Name, alg)
	}

	hash := alg.Hash()
	der, err := signer.Sign(rand.Reader, digest(hash, signingInput), hash)
	if err != nil {
		return nil, errors.Wrapf(ErrSigningFailure, "%s: %s", alg, err.Error())
	}

	// crypto.Signer returns ASN.1 SEQUENCE{r, s}
	var (
		r, s  = &big.Int{}, &big.Int{}
		inner cryptobyte.String
	)
	input := cryptobyte.String(der)
	if !input.ReadASN1(&inner, asn1.SEQUENCE) ||
		!input.Empty() ||
		!inner.ReadASN1Integer(r) ||
		!inner.ReadASN1Integer(s) ||
		!inner.Empty() ||
		r.BitLen() > 8*es256KeySize ||
		s.BitLen() > 8*es256KeySize {
		return nil, errors.Wrapf(ErrSigningFailure, "unable to decode ECDSA signature")
	}

	// r and s are big-endian, left padded with zeros
	out := make([]byte, 2*es256KeySize)
	r.FillBytes(out[:es256KeySize])
	s.FillBytes(out[es256KeySize:])
	return out, nil
}
