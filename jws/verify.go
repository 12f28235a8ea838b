package jws

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/hmac"
	"crypto/rsa"
	"math/big"

	"github.com/cockroachdb/errors"
)

// Verify returns nil if signature is valid for signingInput.
//
// A signature that does not match, including a signature of invalid length
// or encoding, returns ErrInvalidSignature. ErrUnsupportedAlgorithm and
// ErrInvalidKeyType are returned for caller errors.
//
// The key must be:
//   - []byte secret for HS256, HS384, HS512
//   - *rsa.PublicKey, or RSA private key or crypto.Signer for RS256, RS384, RS512
//   - *ecdsa.PublicKey on P-256, or EC private key or crypto.Signer for ES256
func Verify(alg Algorithm, key any, signingInput, signature []byte) error {
	switch alg {
	case HS256, HS384, HS512:
		return verifyHMAC(alg, key, signingInput, signature)
	case RS256, RS384, RS512:
		return verifyRSA(alg, key, signingInput, signature)
	case ES256:
		return verifyECDSA(alg, key, signingInput, signature)
	}
	return errors.Wrapf(ErrUnsupportedAlgorithm, "%q", string(alg))
}

func verifyHMAC(alg Algorithm, key any, signingInput, signature []byte) error {
	secret, err := hmacSecret(alg, key)
	if err != nil {
		return err
	}
	expected := hmacSum(alg.Hash(), secret, signingInput)
	if !hmac.Equal(expected, signature) {
		return errors.WithStack(ErrInvalidSignature)
	}
	return nil
}

func verifyRSA(alg Algorithm, key any, signingInput, signature []byte) error {
	pub, ok := rsaPublicKey(publicKey(key))
	if !ok {
		return errors.Wrapf(ErrInvalidKeyType, "%T for %s", key, alg)
	}
	if len(signature) != pub.Size() {
		return errors.Wrapf(ErrInvalidSignature, "invalid RSA signature length")
	}

	hash := alg.Hash()
	if err := rsa.VerifyPKCS1v15(pub, hash, digest(hash, signingInput), signature); err != nil {
		return errors.WithStack(ErrInvalidSignature)
	}
	return nil
}

func verifyECDSA(alg Algorithm, key any, signingInput, signature []byte) error {
	pub, ok := ecdsaPublicKey(publicKey(key))
	if !ok {
		return errors.Wrapf(ErrInvalidKeyType, "%T for %s", key, alg)
	}
	if pub.Curve != elliptic.P256() {
		return errors.Wrapf(ErrInvalidKeyType, "curve %s for %s", pub.Curve.Params().Name, alg)
	}
	if len(signature) != 2*es256KeySize {
		return errors.Wrapf(ErrInvalidSignature, "invalid ECDSA signature length")
	}

	r := new(big.Int).SetBytes(signature[:es256KeySize])
	s := new(big.Int).SetBytes(signature[es256KeySize:])
	if !ecdsa.Verify(pub, digest(alg.Hash(), signingInput), r, s) {
		return errors.WithStack(ErrInvalidSignature)
	}
	return nil
}

// publicKey returns the public half of a private key or crypto.Signer
func publicKey(key any) any {
	if s, ok := asSigner(key); ok {
		return s.Public()
	}
	return key
}

// asSigner returns the key as crypto.Signer.
// Nil RSA and EC private keys are rejected, their Public method panics.
func asSigner(key any) (crypto.Signer, bool) {
	switch k := key.(type) {
	case *rsa.PrivateKey:
		if k == nil {
			return nil, false
		}
	case *ecdsa.PrivateKey:
		if k == nil {
			return nil, false
		}
	}
	s, ok := key.(crypto.Signer)
	return s, ok
}

// rsaPublicKey returns the RSA public key, if it has a modulus
func rsaPublicKey(key any) (*rsa.PublicKey, bool) {
	pub, ok := key.(*rsa.PublicKey)
	if !ok || pub == nil || pub.N == nil || pub.N.Sign() <= 0 {
		return nil, false
	}
	return pub, true
}

// ecdsaPublicKey returns the EC public key, if it has a curve and a point
func ecdsaPublicKey(key any) (*ecdsa.PublicKey, bool) {
	pub, ok := key.(*ecdsa.PublicKey)
	if !ok || pub == nil || pub.Curve == nil || pub.X == nil || pub.Y == nil {
		return nil, false
	}
	return pub, true
}
