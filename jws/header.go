package jws

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/cockroachdb/errors"
)

// Header parameter names
const (
	HeaderAlgorithm = "alg"
	HeaderType      = "typ"
	HeaderKeyID     = "kid"
)

// HeaderParam is a single JOSE header parameter
type HeaderParam struct {
	Name  string
	Value any
}

// Header is an ordered set of JOSE header parameters.
// The JSON encoding preserves the order of parameters.
type Header []HeaderParam

// NewHeader returns Header with `typ`, if not empty, followed by `alg`
func NewHeader(alg Algorithm, typ string) Header {
	h := make(Header, 0, 2)
	if typ != "" {
		h = append(h, HeaderParam{Name: HeaderType, Value: typ})
	}
	return append(h, HeaderParam{Name: HeaderAlgorithm, Value: string(alg)})
}

// ParseHeader returns Header decoded from JSON object
func ParseHeader(b []byte) (Header, error) {
	var h Header
	if err := h.UnmarshalJSON(b); err != nil {
		return nil, err
	}
	return h, nil
}

// Get returns the value of the parameter
func (h Header) Get(name string) (any, bool) {
	for _, p := range h {
		if p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}

// GetString returns the value of the parameter, if it is a string
func (h Header) GetString(name string) string {
	v, _ := h.Get(name)
	s, _ := v.(string)
	return s
}

// Set replaces the value of the parameter in place,
// or appends it if not present
func (h *Header) Set(name string, value any) {
	for i := range *h {
		if (*h)[i].Name == name {
			(*h)[i].Value = value
			return
		}
	}
	*h = append(*h, HeaderParam{Name: name, Value: value})
}

// Algorithm returns the `alg` parameter
func (h Header) Algorithm() (Algorithm, error) {
	v, ok := h.Get(HeaderAlgorithm)
	if !ok {
		return "", errors.Wrapf(ErrMalformedToken, "missing alg header")
	}
	s, ok := v.(string)
	if !ok {
		return "", errors.Wrapf(ErrMalformedToken, "invalid alg header")
	}
	return ParseAlgorithm(s)
}

// MarshalJSON implements json.Marshaler
func (h Header) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, p := range h {
		if i > 0 {
			b.WriteByte(',')
		}
		name, err := json.Marshal(p.Name)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		value, err := json.Marshal(p.Value)
		if err != nil {
			return nil, errors.WithMessagef(err, "unable to encode %q header", p.Name)
		}
		b.Write(name)
		b.WriteByte(':')
		b.Write(value)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (h *Header) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	if t, err := dec.Token(); err != nil || t != json.Delim('{') {
		return errors.Wrapf(ErrMalformedToken, "header must be JSON object")
	}

	list := Header{}
	for dec.More() {
		t, err := dec.Token()
		if err != nil {
			return errors.Wrapf(ErrMalformedToken, "invalid header: %s", err.Error())
		}
		name, ok := t.(string)
		if !ok {
			return errors.Wrapf(ErrMalformedToken, "invalid header name")
		}
		if _, dup := list.Get(name); dup {
			return errors.Wrapf(ErrMalformedToken, "duplicate header: %q", name)
		}

		var value any
		if err = dec.Decode(&value); err != nil {
			return errors.Wrapf(ErrMalformedToken, "invalid %q header: %s", name, err.Error())
		}
		list = append(list, HeaderParam{Name: name, Value: value})
	}

	if t, err := dec.Token(); err != nil || t != json.Delim('}') {
		return errors.Wrapf(ErrMalformedToken, "header must be JSON object")
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.Wrapf(ErrMalformedToken, "unexpected data after header")
	}

	*h = list
	return nil
}
