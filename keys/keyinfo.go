package keys

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rsa"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/jws/jws"
	jose "github.com/go-jose/go-jose/v3"
)

// Key types
const (
	TypeRSA   = "RSA"
	TypeECDSA = "ECDSA"
	TypeHMAC  = "HMAC"
)

// KeyInfo provides information about the key
type KeyInfo struct {
	KeySize   int
	Type      string
	IsPrivate bool
	// Algorithm is the default JWS algorithm for the key
	Algorithm jws.Algorithm
	Key       any
}

// NewKeyInfo returns *KeyInfo for a secret, private or public key
func NewKeyInfo(k any) (*KeyInfo, error) {
	ki := &KeyInfo{Key: k}
	var pubKey crypto.PublicKey

	switch typ := k.(type) {
	case []byte:
		if len(typ) == 0 {
			return nil, errors.Wrap(jws.ErrInvalidKeyType, "empty secret")
		}
		ki.Type = TypeHMAC
		ki.IsPrivate = true
		ki.KeySize = len(typ) * 8
		switch {
		case len(typ) >= 64:
			ki.Algorithm = jws.HS512
		case len(typ) >= 48:
			ki.Algorithm = jws.HS384
		default:
			ki.Algorithm = jws.HS256
		}
		return ki, nil
	case *jose.JSONWebKey:
		return NewKeyInfo(typ.Key)
	case crypto.Signer:
		ki.IsPrivate = true
		pubKey = typ.Public()
	default:
		pubKey = k
	}

	switch typ := pubKey.(type) {
	case *rsa.PublicKey:
		ki.Type = TypeRSA
		ki.KeySize = typ.N.BitLen()
		switch {
		case ki.KeySize >= 4096:
			ki.Algorithm = jws.RS512
		case ki.KeySize >= 3072:
			ki.Algorithm = jws.RS384
		default:
			ki.Algorithm = jws.RS256
		}
	case *ecdsa.PublicKey:
		ki.Type = TypeECDSA
		ki.KeySize = typ.Curve.Params().BitSize
		if typ.Curve != elliptic.P256() {
			return nil, errors.Wrapf(jws.ErrInvalidKeyType, "unsupported curve %s", typ.Curve.Params().Name)
		}
		ki.Algorithm = jws.ES256
	default:
		return nil, errors.Wrapf(jws.ErrInvalidKeyType, "key not supported: %T", typ)
	}
	return ki, nil
}

// PublicKey returns the public key, or the secret for HMAC keys
func (ki *KeyInfo) PublicKey() any {
	if s, ok := ki.Key.(crypto.Signer); ok {
		return s.Public()
	}
	if jwk, ok := ki.Key.(*jose.JSONWebKey); ok {
		return (&KeyInfo{Key: jwk.Key}).PublicKey()
	}
	return ki.Key
}
