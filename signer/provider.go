package signer

import (
	"context"
	"crypto"
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/jws/jws"
	"github.com/effective-security/jws/keys"
	"github.com/effective-security/jws/metricskey"
	"github.com/effective-security/x/configloader"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/jws", "signer")

// DefaultType is the default `typ` header
const DefaultType = "JWT"

// Provider signs and verifies compact JWS with a configured algorithm and key.
// Provider is immutable and safe for concurrent use.
type Provider struct {
	alg jws.Algorithm
	kid string
	typ string

	// signingKey is nil for verification only provider
	signingKey any
	verifyKey  any
}

// Load returns new provider from configuration file
func Load(cfgfile string) (*Provider, error) {
	cfg, err := LoadConfig(cfgfile)
	if err != nil {
		return nil, err
	}
	return New(cfg)
}

// MustNew returns new provider, and panics on error
func MustNew(cfg *Config) *Provider {
	p, err := New(cfg)
	if err != nil {
		logger.Panicf("unable to create provider: %+v", err)
	}
	return p
}

// New returns new provider
func New(cfg *Config) (*Provider, error) {
	p := &Provider{
		kid: cfg.KeyID,
		typ: cfg.Type,
	}
	if p.typ == "" {
		p.typ = DefaultType
	}

	configured := 0
	for _, v := range []string{cfg.Secret, cfg.PrivateKey, cfg.PublicKey} {
		if v != "" {
			configured++
		}
	}
	switch configured {
	case 0:
		return nil, errors.Errorf("key not configured")
	case 1:
	default:
		return nil, errors.Errorf("only one of secret, private_key or public_key can be configured")
	}

	var key any
	switch {
	case cfg.Secret != "":
		secret, err := configloader.ResolveValue(cfg.Secret)
		if err != nil {
			return nil, errors.WithMessage(err, "unable to load secret")
		}
		key = []byte(secret)
		p.signingKey = key
		p.verifyKey = key
	case cfg.PrivateKey != "":
		pemKey, err := configloader.ResolveValue(cfg.PrivateKey)
		if err != nil {
			return nil, errors.WithMessage(err, "unable to load private key")
		}
		signer, err := keys.ParsePrivateKeyPEM([]byte(pemKey))
		if err != nil {
			return nil, errors.WithMessage(err, "failed to load private key")
		}
		key = signer
		p.signingKey = signer
		p.verifyKey = signer.Public()
	default:
		pemKey, err := configloader.ResolveValue(cfg.PublicKey)
		if err != nil {
			return nil, errors.WithMessage(err, "unable to load public key")
		}
		pub, err := keys.ParsePublicKeyPEM([]byte(pemKey))
		if err != nil {
			return nil, errors.WithMessage(err, "failed to load public key")
		}
		key = pub
		p.verifyKey = pub
	}

	ki, err := keys.NewKeyInfo(key)
	if err != nil {
		return nil, err
	}

	p.alg = ki.Algorithm
	if cfg.Algorithm != "" {
		if p.alg, err = jws.ParseAlgorithm(cfg.Algorithm); err != nil {
			return nil, err
		}
		if p.alg.Family() != ki.Algorithm.Family() {
			return nil, errors.Wrapf(jws.ErrInvalidKeyType, "%s key for %s", ki.Type, p.alg)
		}
	}

	logger.KV(xlog.DEBUG, "alg", p.alg, "kid", p.kid, "key_type", ki.Type, "key_size", ki.KeySize)
	return p, nil
}

// Algorithm returns the signing algorithm
func (p *Provider) Algorithm() jws.Algorithm {
	return p.alg
}

// KeyID returns the `kid` header, if configured
func (p *Provider) KeyID() string {
	return p.kid
}

// PublicKey returns the verification key.
// For HMAC the secret is returned.
func (p *Provider) PublicKey() crypto.PublicKey {
	return p.verifyKey
}

// CanSign returns true if the provider has a signing key
func (p *Provider) CanSign() bool {
	return p.signingKey != nil
}

// Header returns the protected header used for signing
func (p *Provider) Header() jws.Header {
	h := jws.NewHeader(p.alg, p.typ)
	if p.kid != "" {
		h.Set(jws.HeaderKeyID, p.kid)
	}
	return h
}

// Sign returns compact JWS of the payload
func (p *Provider) Sign(ctx context.Context, payload []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.WithStack(err)
	}
	if p.signingKey == nil {
		return "", errors.Errorf("signing key not configured")
	}

	header, err := p.Header().MarshalJSON()
	if err != nil {
		return "", err
	}

	defer metricskey.PerfJWSOperation.MeasureSince(time.Now(), p.alg.String(), "sign")

	token, err := jws.SignCompact(p.alg, p.signingKey, header, payload)
	if err != nil {
		logger.KV(xlog.ERROR, "reason", "sign", "alg", p.alg, "kid", p.kid, "err", err.Error())
		return "", errors.WithMessage(err, "failed to sign")
	}
	return token, nil
}

// SignJSON returns compact JWS of JSON encoded value
func (p *Provider) SignJSON(ctx context.Context, v any) (string, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return "", errors.WithMessage(err, "unable to encode payload")
	}
	return p.Sign(ctx, payload)
}

// Verify returns the message of verified token
func (p *Provider) Verify(ctx context.Context, token string) (*jws.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	defer metricskey.PerfJWSOperation.MeasureSince(time.Now(), p.alg.String(), "verify")

	m, err := jws.VerifyCompact(p.alg, p.verifyKey, token)
	if err != nil {
		reason := failureReason(err)
		metricskey.StatsJWSVerifyFailed.IncrCounter(1, p.alg.String(), reason)
		logger.KV(xlog.DEBUG, "reason", reason, "alg", p.alg, "err", err.Error())
		return nil, errors.WithMessage(err, "unable to verify token")
	}
	return m, nil
}

// VerifyJSON verifies token and decodes JSON payload into v
func (p *Provider) VerifyJSON(ctx context.Context, token string, v any) (jws.Header, error) {
	m, err := p.Verify(ctx, token)
	if err != nil {
		return nil, err
	}
	if err = json.Unmarshal(m.Payload, v); err != nil {
		return nil, errors.WithMessage(err, "unable to decode payload")
	}
	return m.Header, nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, jws.ErrInvalidSignature):
		return "signature"
	case errors.Is(err, jws.ErrAlgorithmMismatch):
		return "alg"
	case errors.Is(err, jws.ErrMalformedToken), errors.Is(err, jws.ErrMalformedSegment):
		return "malformed"
	case errors.Is(err, jws.ErrInvalidKeyType):
		return "key"
	}
	return "other"
}
