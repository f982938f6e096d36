package crypto

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// ivSize is fixed by the token format for both cipher modes.
const ivSize = 16

func formatToken(iv, ciphertext []byte) string {
	return hex.EncodeToString(iv) + ":" + hex.EncodeToString(ciphertext)
}

func parseToken(token string) (iv, ciphertext []byte, err error) {
	ivHex, ctHex, found := strings.Cut(token, ":")
	if !found || strings.Contains(ctHex, ":") {
		return nil, nil, fmt.Errorf("%w: expected exactly one separator", ErrMalformedToken)
	}

	iv, err = hex.DecodeString(ivHex)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: iv: %w", ErrMalformedToken, err)
	}
	if len(iv) != ivSize {
		return nil, nil, fmt.Errorf("%w: iv must be %d bytes, got %d", ErrMalformedToken, ivSize, len(iv))
	}

	ciphertext, err = hex.DecodeString(ctHex)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: ciphertext: %w", ErrMalformedToken, err)
	}
	if len(ciphertext) == 0 {
		return nil, nil, fmt.Errorf("%w: empty ciphertext", ErrMalformedToken)
	}

	return iv, ciphertext, nil
}
