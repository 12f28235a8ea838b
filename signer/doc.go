// Package signer provides a configured JWS Provider, that binds a single
// algorithm and key to sign payloads and verify compact tokens.
//
// The configuration is loaded from YAML or JSON file. Key values support
// `env://` and `file://` schemas, so secrets are not stored in the file.
package signer
