package secretbox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSealer(t *testing.T) *AESGCM {
	t.Helper()

	key := bytes.Repeat([]byte{0x42}, 32)
	return NewAESGCM(StaticKeyProvider{KeyBytes: key})
}

func TestAESGCM_SealOpenRoundTrip(t *testing.T) {
	e := testSealer(t)
	scope := Scope{UserID: 7, Purpose: PurposeLoginSeed}

	ct, err := e.Seal([]byte("JBSWY3DPEHPK3PXP"), scope)
	require.NoError(t, err)
	assert.NotContains(t, string(ct), "JBSWY3DPEHPK3PXP")

	pt, err := e.Open(ct, scope)
	require.NoError(t, err)
	assert.Equal(t, []byte("JBSWY3DPEHPK3PXP"), pt)
}

func TestAESGCM_OpenWrongUser(t *testing.T) {
	e := testSealer(t)

	ct, err := e.Seal([]byte("seed"), Scope{UserID: 7, Purpose: PurposeLoginSeed})
	require.NoError(t, err)

	_, err = e.Open(ct, Scope{UserID: 8, Purpose: PurposeLoginSeed})
	assert.ErrorIs(t, err, ErrOpenFailed)
}

func TestAESGCM_OpenWrongPurpose(t *testing.T) {
	e := testSealer(t)

	ct, err := e.Seal([]byte("seed"), Scope{UserID: 7, Purpose: PurposeLoginSeed})
	require.NoError(t, err)

	_, err = e.Open(ct, Scope{UserID: 7, Purpose: PurposeVaultToken})
	assert.ErrorIs(t, err, ErrOpenFailed)
}

func TestAESGCM_OpenTampered(t *testing.T) {
	e := testSealer(t)
	scope := Scope{UserID: 7, Purpose: PurposeVaultToken}

	ct, err := e.Seal([]byte("seed"), scope)
	require.NoError(t, err)

	ct[len(ct)-1] ^= 0xFF
	_, err = e.Open(ct, scope)
	assert.ErrorIs(t, err, ErrOpenFailed)
}

func TestAESGCM_SealEmptyPlaintext(t *testing.T) {
	e := testSealer(t)

	_, err := e.Seal(nil, Scope{UserID: 1, Purpose: PurposeLoginSeed})
	assert.ErrorIs(t, err, ErrPlaintextEmpty)
}

func TestAESGCM_OpenTooShort(t *testing.T) {
	e := testSealer(t)

	_, err := e.Open([]byte{0, 1, 2}, Scope{UserID: 1, Purpose: PurposeLoginSeed})
	assert.ErrorIs(t, err, ErrCiphertextTooShort)
}

func TestAESGCM_InvalidKeyLength(t *testing.T) {
	e := NewAESGCM(StaticKeyProvider{KeyBytes: []byte("short")})

	_, err := e.Seal([]byte("seed"), Scope{UserID: 1, Purpose: PurposeLoginSeed})
	assert.ErrorIs(t, err, ErrInvalidKeyLength)
}
