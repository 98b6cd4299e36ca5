package totp

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rfcSecret is the RFC 6238 reference secret "12345678901234567890" in base32.
const rfcSecret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"

// Reference vectors from RFC 6238 Appendix B (SHA-1 column), reduced to the
// 6 low-order digits of the published 8-digit codes.
func TestGenerateAt_ReferenceVectors(t *testing.T) {
	vectors := []struct {
		unix int64
		code string
	}{
		{59, "287082"},          // 94287082
		{1111111109, "081804"},  // 07081804
		{1111111111, "050471"},  // 14050471
		{1234567890, "005924"},  // 89005924
		{2000000000, "279037"},  // 69279037
		{20000000000, "353130"}, // 65353130
	}

	for _, v := range vectors {
		code, err := GenerateAt(rfcSecret, time.Unix(v.unix, 0), DefaultPeriod)
		require.NoError(t, err)
		assert.Equal(t, v.code, code, "unix time %d", v.unix)
	}
}

func TestGenerateAt_StableWithinWindow(t *testing.T) {
	// Unix times 30..59 share counter 1, so every second in the window must
	// yield the code published for t=59.
	for unix := int64(30); unix < 60; unix++ {
		code, err := GenerateAt(rfcSecret, time.Unix(unix, 0), DefaultPeriod)
		require.NoError(t, err)
		assert.Equal(t, "287082", code, "unix time %d", unix)
	}
}

func TestGenerateAt_ChangesAcrossWindows(t *testing.T) {
	first, err := GenerateAt(rfcSecret, time.Unix(59, 0), DefaultPeriod)
	require.NoError(t, err)
	second, err := GenerateAt(rfcSecret, time.Unix(1111111109, 0), DefaultPeriod)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestGenerateAt_SecretNormalization(t *testing.T) {
	reference, err := GenerateAt(rfcSecret, time.Unix(59, 0), DefaultPeriod)
	require.NoError(t, err)

	// Lowercase and trailing padding must decode to the same key.
	lower, err := GenerateAt("gezdgnbvgy3tqojqgezdgnbvgy3tqojq", time.Unix(59, 0), DefaultPeriod)
	require.NoError(t, err)
	assert.Equal(t, reference, lower)

	padded, err := GenerateAt(rfcSecret+"======", time.Unix(59, 0), DefaultPeriod)
	require.NoError(t, err)
	assert.Equal(t, reference, padded)
}

func TestGenerateAt_InvalidSecret(t *testing.T) {
	_, err := GenerateAt("not!valid!base32", time.Unix(59, 0), DefaultPeriod)
	require.Error(t, err)

	var encErr *EncodingError
	assert.True(t, errors.As(err, &encErr))
}

func TestGenerate_SixDigits(t *testing.T) {
	code, err := Generate("JBSWY3DPEHPK3PXP")
	require.NoError(t, err)
	assert.Len(t, code, Digits)
	assert.Regexp(t, `^\d{6}$`, code)
}
