package keys

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/jws/jws"
)

// LoadPrivateKey returns private key loaded from PEM file
func LoadPrivateKey(file string) (crypto.Signer, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.WithMessagef(err, "load key file")
	}
	s, err := ParsePrivateKeyPEM(b)
	if err != nil {
		return nil, errors.WithMessagef(err, "load key from file: %s", file)
	}
	return s, nil
}

// LoadPublicKey returns public key loaded from PEM file
func LoadPublicKey(file string) (crypto.PublicKey, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.WithMessagef(err, "load key file")
	}
	k, err := ParsePublicKeyPEM(b)
	if err != nil {
		return nil, errors.WithMessagef(err, "load key from file: %s", file)
	}
	return k, nil
}

// ParsePrivateKeyPEM parses and returns a PEM-encoded private
// key. The private key may be either an unencrypted PKCS#8, PKCS#1,
// or elliptic private key.
func ParsePrivateKeyPEM(keyPEM []byte) (crypto.Signer, error) {
	keyDER, err := GetKeyDERFromPEM(keyPEM)
	if err != nil {
		return nil, err
	}
	return ParsePrivateKeyDER(keyDER)
}

// GetKeyDERFromPEM returns DER bytes of the first private key block.
// EC PARAMETERS blocks written by openssl are skipped.
func GetKeyDERFromPEM(in []byte) ([]byte, error) {
	for {
		var block *pem.Block
		block, in = pem.Decode(in)
		switch {
		case block == nil:
			return nil, errors.Errorf("private key must be PEM encoded")
		case block.Type == "EC PARAMETERS":
			continue
		case strings.Contains(block.Headers["Proc-Type"], "ENCRYPTED"):
			return nil, errors.Errorf("encrypted private key is not supported")
		}
		return block.Bytes, nil
	}
}

// ParsePrivateKeyDER returns RSA or EC private key from PKCS#8, PKCS#1 or SEC1 DER.
// Other key types, such as Ed25519, return jws.ErrInvalidKeyType.
func ParsePrivateKeyDER(der []byte) (crypto.Signer, error) {
	var (
		key any
		err error
	)
	if key, err = x509.ParsePKCS8PrivateKey(der); err != nil {
		if key, err = x509.ParsePKCS1PrivateKey(der); err != nil {
			if key, err = x509.ParseECPrivateKey(der); err != nil {
				// the parse error may leak information about the key
				return nil, errors.Errorf("unable to parse private key")
			}
		}
	}

	switch k := key.(type) {
	case *rsa.PrivateKey:
		return k, nil
	case *ecdsa.PrivateKey:
		return k, nil
	}
	return nil, errors.Wrapf(jws.ErrInvalidKeyType, "private key %T: RSA or ECDSA expected", key)
}

// ParsePublicKeyPEM parses PEM encoded PKIX or PKCS#1 public key,
// or returns the public key of PEM encoded certificate
func ParsePublicKeyPEM(keyPEM []byte) (crypto.PublicKey, error) {
	block, _ := pem.Decode(keyPEM)
	if block == nil {
		return nil, errors.New("key must be PEM encoded")
	}

	switch block.Type {
	case "CERTIFICATE":
		crt, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, errors.WithMessagef(err, "unable to parse certificate")
		}
		return crt.PublicKey, nil
	case "RSA PUBLIC KEY":
		pub, err := x509.ParsePKCS1PublicKey(block.Bytes)
		if err != nil {
			return nil, errors.New("unable to parse RSA Public Key")
		}
		return pub, nil
	}

	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, errors.New("unable to parse Public Key")
	}
	return pub, nil
}

// EncodePublicKeyToPEM returns PEM encoded public key
func EncodePublicKeyToPEM(pubKey crypto.PublicKey) ([]byte, error) {
	asn1Bytes, err := x509.MarshalPKIXPublicKey(pubKey)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: asn1Bytes,
	}), nil
}

// EncodePrivateKeyToPEM returns PEM encoded private key
func EncodePrivateKeyToPEM(priv crypto.PrivateKey) ([]byte, error) {
	var block *pem.Block
	switch priv := priv.(type) {
	case *rsa.PrivateKey:
		block = &pem.Block{
			Type:  "RSA PRIVATE KEY",
			Bytes: x509.MarshalPKCS1PrivateKey(priv),
		}
	case *ecdsa.PrivateKey:
		der, err := x509.MarshalECPrivateKey(priv)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		block = &pem.Block{
			Type:  "EC PRIVATE KEY",
			Bytes: der,
		}
	default:
		return nil, errors.Errorf("unsupported key: %T", priv)
	}
	return pem.EncodeToMemory(block), nil
}
