// Package keys loads key material for JWS signing and verification
// from PEM and DER encodings, and describes keys with KeyInfo.
package keys
