// Package vault protege el PAN (número de tarjeta) en reposo. Es el único
// componente autorizado a tener PANs en claro en memoria y nunca los registra
// en logs. El formato almacenado es base64(nonce || ciphertext AES-256-GCM):
// modo autenticado con nonce aleatorio por cifrado, de forma que dos PANs
// iguales no producen el mismo ciphertext.
package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/jhoicas/Tarjetas-api/internal/domain"
)

// PanVault cifra, descifra y enmascara números de tarjeta con una llave
// simétrica cargada al inicio del proceso. La llave es inmutable después de
// la carga; el uso concurrente es seguro.
type PanVault struct {
	aead cipher.AEAD
}

// New construye el vault con la llave AES-256 (32 bytes).
func New(key []byte) (*PanVault, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("crear cipher AES: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("crear AES-GCM: %w", err)
	}
	return &PanVault{aead: aead}, nil
}

// Encrypt cifra el PAN en claro y devuelve el formato almacenado.
func (v *PanVault) Encrypt(pan string) (string, error) {
	nonce := make([]byte, v.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("%w: generar nonce: %v", domain.ErrVaultFailure, err)
	}
	ciphertext := v.aead.Seal(nil, nonce, []byte(pan), nil)
	return base64.StdEncoding.EncodeToString(append(nonce, ciphertext...)), nil
}

// Decrypt descifra el formato almacenado y devuelve el PAN en claro.
// Retorna domain.ErrVaultFailure si el dato está manipulado, truncado o la
// llave no corresponde.
func (v *PanVault) Decrypt(stored string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		return "", fmt.Errorf("%w: base64 inválido", domain.ErrVaultFailure)
	}
	if len(raw) < v.aead.NonceSize() {
		return "", fmt.Errorf("%w: dato truncado", domain.ErrVaultFailure)
	}
	nonce, ciphertext := raw[:v.aead.NonceSize()], raw[v.aead.NonceSize():]
	plaintext, err := v.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: autenticación fallida", domain.ErrVaultFailure)
	}
	return string(plaintext), nil
}

// Mask devuelve la forma de presentación "**** **** **** DDDD" con los
// últimos cuatro dígitos del PAN. Si el PAN en claro tiene menos de cuatro
// caracteres se devuelve sin cambios.
func (v *PanVault) Mask(stored string) (string, error) {
	pan, err := v.Decrypt(stored)
	if err != nil {
		return "", err
	}
	if len(pan) < 4 {
		return pan, nil
	}
	return "**** **** **** " + pan[len(pan)-4:], nil
}
