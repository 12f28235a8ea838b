package jws_test

import (
	"encoding/json"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/jws/jws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeader(t *testing.T) {
	h := jws.NewHeader(jws.ES256, "")
	b, err := h.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"alg":"ES256"}`, string(b))

	h.Set(jws.HeaderKeyID, "k1")
	h.Set(jws.HeaderAlgorithm, "RS256")
	b, err = json.Marshal(h)
	require.NoError(t, err)
	assert.Equal(t, `{"alg":"RS256","kid":"k1"}`, string(b))

	alg, err := h.Algorithm()
	require.NoError(t, err)
	assert.Equal(t, jws.RS256, alg)
	assert.Equal(t, "k1", h.GetString(jws.HeaderKeyID))
	assert.Empty(t, h.GetString(jws.HeaderType))

	_, ok := h.Get("x5c")
	assert.False(t, ok)
}

func TestParseHeader(t *testing.T) {
	h, err := jws.ParseHeader([]byte(" {\n \"typ\":\"JWT\",\n \"alg\":\"HS256\", \"n\": 1, \"crit\":[\"b64\"]} "))
	require.NoError(t, err)
	require.Len(t, h, 4)
	assert.Equal(t, "typ", h[0].Name)
	assert.Equal(t, "alg", h[1].Name)
	assert.Equal(t, json.Number("1"), h[2].Value)

	b, err := h.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"typ":"JWT","alg":"HS256","n":1,"crit":["b64"]}`, string(b))

	var h2 jws.Header
	require.NoError(t, json.Unmarshal(b, &h2))
	assert.Equal(t, h, h2)

	for _, tc := range []string{
		``,
		`null`,
		`"alg"`,
		`[]`,
		`{"alg":"HS256"`,
		`{"alg":"HS256"}x`,
		`{"alg":"HS256"}{}`,
		`{"alg":"HS256","alg":"none"}`,
		`{"alg":}`,
	} {
		_, err = jws.ParseHeader([]byte(tc))
		require.Error(t, err, "header %q", tc)
		assert.True(t, errors.Is(err, jws.ErrMalformedToken), "header %q: %v", tc, err)
	}
}

func TestHeader_Algorithm(t *testing.T) {
	_, err := jws.Header{}.Algorithm()
	assert.True(t, errors.Is(err, jws.ErrMalformedToken))

	_, err = jws.Header{{Name: "alg", Value: 256}}.Algorithm()
	assert.True(t, errors.Is(err, jws.ErrMalformedToken))

	_, err = jws.Header{{Name: "alg", Value: "none"}}.Algorithm()
	assert.True(t, errors.Is(err, jws.ErrUnsupportedAlgorithm))
}

func TestAlgorithm(t *testing.T) {
	for _, alg := range jws.Algorithms() {
		a, err := jws.ParseAlgorithm(alg.String())
		require.NoError(t, err)
		assert.Equal(t, alg, a)
		assert.NotZero(t, a.Hash())
		assert.NotEmpty(t, a.Family())
	}
	assert.True(t, jws.HS384.IsSymmetric())
	assert.False(t, jws.RS384.IsSymmetric())
	assert.Equal(t, jws.FamilyECDSA, jws.ES256.Family())

	for _, alg := range []string{"", "none", "hs256", "PS256", "ES384", "EdDSA"} {
		_, err := jws.ParseAlgorithm(alg)
		assert.True(t, errors.Is(err, jws.ErrUnsupportedAlgorithm), alg)
	}
}
