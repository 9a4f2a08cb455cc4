// Obfuscation payload QR. Ini BUKAN tanda tangan kriptografis: siapapun
// yang tahu secret bisa membuat maupun membaca token. Validitas QR selalu
// dicek ulang ke state geofence di DB, bukan ke token itu sendiri.
package service

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

type QrPayload struct {
	OrganizationID string `json:"organization_id"`
	LocationID     string `json:"location_id"`
}

var ErrSecretRequired = errors.New("secret wajib diisi")

// DecodeError: token tidak bisa dibaca — hex rusak, secret tidak cocok,
// atau JSON di dalamnya tidak valid.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode payload gagal: %s: %v", e.Reason, e.Err)
	}
	return "decode payload gagal: " + e.Reason
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Obfuscate: hex(payload + secret).
func Obfuscate(payload, secret string) (string, error) {
	if secret == "" {
		return "", ErrSecretRequired
	}
	return hex.EncodeToString([]byte(payload + secret)), nil
}

// Deobfuscate membalik Obfuscate dan memverifikasi suffix secret
// (deteksi tamper / secret salah).
func Deobfuscate(token, secret string) (string, error) {
	if secret == "" {
		return "", ErrSecretRequired
	}

	raw, err := hex.DecodeString(strings.TrimSpace(token))
	if err != nil {
		return "", &DecodeError{Reason: "bukan hex valid", Err: err}
	}

	payloadWithSecret := string(raw)
	if !strings.HasSuffix(payloadWithSecret, secret) {
		return "", &DecodeError{Reason: "secret tidak cocok"}
	}

	return strings.TrimSuffix(payloadWithSecret, secret), nil
}

// EncodePayload men-serialize payload ke JSON lalu meng-obfuscate-nya.
func EncodePayload(p QrPayload, secret string) (string, error) {
	if secret == "" {
		return "", ErrSecretRequired
	}
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return Obfuscate(string(b), secret)
}

// DecodePayload membalik EncodePayload.
func DecodePayload(token, secret string) (QrPayload, error) {
	jsonStr, err := Deobfuscate(token, secret)
	if err != nil {
		return QrPayload{}, err
	}

	var p QrPayload
	if err := json.Unmarshal([]byte(jsonStr), &p); err != nil {
		return QrPayload{}, &DecodeError{Reason: "JSON tidak valid", Err: err}
	}
	return p, nil
}
