// Package jws provides JSON Web Signature (JWS) compact serialization,
// as defined by RFC 7515, for a closed set of algorithms:
//   - HS256, HS384, HS512: HMAC with SHA-2
//   - RS256, RS384, RS512: RSASSA-PKCS1-v1_5 with SHA-2
//   - ES256: ECDSA using P-256 and SHA-256
//
// The package is split in two layers. The codec maps header and payload
// bytes to the three-segment wire string, and the signer/verifier produces
// or checks the signature over the signing input
// BASE64URL(header) || "." || BASE64URL(payload).
//
// All functions are pure and safe for concurrent use. Key material is only
// read for the duration of a call.
//
// The algorithm used for verification is always supplied by the caller.
// The `alg` header of a received token is never used to select the
// verification algorithm.
package jws
