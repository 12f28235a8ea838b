package signer

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Config provides JWS signer configuration
type Config struct {
	// Algorithm specifies JWS algorithm, if not set the algorithm is derived from the key
	Algorithm string `json:"alg" yaml:"alg"`
	// KeyID specifies optional `kid` header
	KeyID string `json:"kid" yaml:"kid"`
	// Type specifies `typ` header, JWT by default
	Type string `json:"typ" yaml:"typ"`
	// Secret specifies HMAC secret
	Secret string `json:"secret" yaml:"secret"`
	// PrivateKey specifies PEM encoded private key
	PrivateKey string `json:"private_key" yaml:"private_key"`
	// PublicKey specifies PEM encoded public key, for verification only provider
	PublicKey string `json:"public_key" yaml:"public_key"`
}

// LoadConfig returns configuration loaded from a file
func LoadConfig(file string) (*Config, error) {
	if file == "" {
		return &Config{}, nil
	}

	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.WithMessage(err, "unable to read file")
	}

	var config Config
	if strings.HasSuffix(file, ".json") {
		err = json.Unmarshal(raw, &config)
		if err != nil {
			return nil, errors.WithMessagef(err, "unable parse JSON: %s", file)
		}
	} else {
		err = yaml.Unmarshal(raw, &config)
		if err != nil {
			return nil, errors.WithMessagef(err, "unable parse YAML: %s", file)
		}
	}

	if config.Secret == "" && config.PrivateKey == "" && config.PublicKey == "" {
		return nil, errors.Errorf("missing key: %q", file)
	}
	return &config, nil
}
