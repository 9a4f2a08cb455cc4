package service

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "secret-uji-123"

func TestEncodeDecodePayload_RoundTrip(t *testing.T) {
	payload := QrPayload{
		OrganizationID: "org_abc",
		LocationID:     "2f1c1a34-9c1f-4f9a-8a51-7f1d2e3c4b5a",
	}

	token, err := EncodePayload(payload, testSecret)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	// Token harus hex murni.
	_, err = hex.DecodeString(token)
	require.NoError(t, err)

	got, err := DecodePayload(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestDecodePayload_WrongSecret(t *testing.T) {
	token, err := EncodePayload(QrPayload{OrganizationID: "org_abc", LocationID: "loc"}, testSecret)
	require.NoError(t, err)

	_, err = DecodePayload(token, "secret-lain")
	require.Error(t, err)

	var decodeErr *DecodeError
	assert.True(t, errors.As(err, &decodeErr))
}

func TestDecodePayload_TamperedToken(t *testing.T) {
	token, err := EncodePayload(QrPayload{OrganizationID: "org_abc", LocationID: "loc"}, testSecret)
	require.NoError(t, err)

	// Ganti satu nibble di tengah token.
	b := []byte(token)
	if b[4] == '0' {
		b[4] = '1'
	} else {
		b[4] = '0'
	}

	_, err = DecodePayload(string(b), testSecret)
	require.Error(t, err)

	var decodeErr *DecodeError
	assert.True(t, errors.As(err, &decodeErr))
}

func TestDeobfuscate_InvalidHex(t *testing.T) {
	_, err := Deobfuscate("zz-bukan-hex", testSecret)
	require.Error(t, err)

	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Contains(t, decodeErr.Error(), "hex")
}

func TestDecodePayload_InvalidJSON(t *testing.T) {
	// Payload valid secara hex+secret, tapi isinya bukan JSON.
	token, err := Obfuscate("bukan json sama sekali", testSecret)
	require.NoError(t, err)

	_, err = DecodePayload(token, testSecret)
	require.Error(t, err)

	var decodeErr *DecodeError
	assert.True(t, errors.As(err, &decodeErr))
}

func TestObfuscate_EmptySecret(t *testing.T) {
	_, err := Obfuscate("payload", "")
	assert.ErrorIs(t, err, ErrSecretRequired)

	_, err = Deobfuscate("deadbeef", "")
	assert.ErrorIs(t, err, ErrSecretRequired)
}

func TestDeobfuscate_TrimsWhitespace(t *testing.T) {
	token, err := Obfuscate("isi", testSecret)
	require.NoError(t, err)

	got, err := Deobfuscate("  "+token+"\n", testSecret)
	require.NoError(t, err)
	assert.Equal(t, "isi", got)
}
