package vault_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tarjetas-api/internal/domain"
	"github.com/jhoicas/Tarjetas-api/internal/infrastructure/vault"
)

func testKey(t *testing.T, b byte) []byte {
	t.Helper()
	key := make([]byte, 32)
	for i := range key {
		key[i] = b
	}
	return key
}

func TestVault_CifrarYDescifrar(t *testing.T) {
	v, err := vault.New(testKey(t, 0x01))
	require.NoError(t, err)

	stored, err := v.Encrypt("4111111111111111")
	require.NoError(t, err)
	assert.NotEqual(t, "4111111111111111", stored, "el PAN almacenado nunca es el PAN en claro")

	pan, err := v.Decrypt(stored)
	require.NoError(t, err)
	assert.Equal(t, "4111111111111111", pan)
}

// Dos cifrados del mismo PAN no deben producir el mismo ciphertext
// (nonce aleatorio: el modo no filtra igualdad).
func TestVault_CifradoNoDeterminista(t *testing.T) {
	v, err := vault.New(testKey(t, 0x02))
	require.NoError(t, err)

	a, err := v.Encrypt("4111111111111111")
	require.NoError(t, err)
	b, err := v.Encrypt("4111111111111111")
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "cifrar dos veces el mismo PAN debe dar ciphertexts distintos")
}

func TestVault_Mask(t *testing.T) {
	v, err := vault.New(testKey(t, 0x03))
	require.NoError(t, err)

	cases := []struct {
		nombre string
		pan    string
		want   string
	}{
		{"pan de 16 dígitos", "4111111111111111", "**** **** **** 1111"},
		{"otro pan", "5500000000004321", "**** **** **** 4321"},
		{"cuatro caracteres justos", "1234", "**** **** **** 1234"},
		{"menos de cuatro caracteres se devuelve igual", "123", "123"},
	}
	for _, tc := range cases {
		t.Run(tc.nombre, func(t *testing.T) {
			stored, err := v.Encrypt(tc.pan)
			require.NoError(t, err)
			masked, err := v.Mask(stored)
			require.NoError(t, err)
			assert.Equal(t, tc.want, masked)
		})
	}
}

func TestVault_DescifrarDatoManipulado(t *testing.T) {
	v, err := vault.New(testKey(t, 0x04))
	require.NoError(t, err)

	stored, err := v.Encrypt("4111111111111111")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(stored)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xFF
	tampered := base64.StdEncoding.EncodeToString(raw)

	_, err = v.Decrypt(tampered)
	assert.ErrorIs(t, err, domain.ErrVaultFailure, "un ciphertext manipulado debe fallar la autenticación")
}

func TestVault_DescifrarConOtraLlave(t *testing.T) {
	v1, err := vault.New(testKey(t, 0x05))
	require.NoError(t, err)
	v2, err := vault.New(testKey(t, 0x06))
	require.NoError(t, err)

	stored, err := v1.Encrypt("4111111111111111")
	require.NoError(t, err)

	_, err = v2.Decrypt(stored)
	assert.ErrorIs(t, err, domain.ErrVaultFailure)
}

func TestVault_DescifrarEntradasInvalidas(t *testing.T) {
	v, err := vault.New(testKey(t, 0x07))
	require.NoError(t, err)

	_, err = v.Decrypt("no-es-base64!!!")
	assert.ErrorIs(t, err, domain.ErrVaultFailure)

	_, err = v.Decrypt(base64.StdEncoding.EncodeToString([]byte("corto")))
	assert.ErrorIs(t, err, domain.ErrVaultFailure, "un dato más corto que el nonce debe fallar")
}

func TestVault_LlaveInvalida(t *testing.T) {
	_, err := vault.New([]byte("demasiado-corta"))
	assert.Error(t, err, "una llave que no es de 16/24/32 bytes debe rechazarse")
}
