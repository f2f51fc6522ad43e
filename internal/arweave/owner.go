package arweave

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"
)

// DecodeBase64URL decodes unpadded or padded base64url.
func DecodeBase64URL(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
}

// EncodeBase64URL encodes b as unpadded base64url.
func EncodeBase64URL(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// OwnerToAddress derives a wallet address from the base64url owner modulus.
func OwnerToAddress(owner string) (string, error) {
	raw, err := DecodeBase64URL(owner)
	if err != nil {
		return "", fmt.Errorf("%w: owner: %v", ErrMalformed, err)
	}
	if len(raw) == 0 {
		return "", fmt.Errorf("%w: empty owner", ErrMalformed)
	}
	sum := sha256.Sum256(raw)
	return EncodeBase64URL(sum[:]), nil
}
