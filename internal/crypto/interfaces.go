package crypto

import "github.com/shopspring/decimal"

//go:generate mockgen -source=interfaces.go -destination=../mock/codec_mock.go -package=mock

// Codec turns ledger amounts into opaque ciphertext tokens and back.
//
// A token has the shape hex(IV) ":" hex(CIPHERTEXT) where IV is 16 random
// bytes drawn for every call, so equal amounts never produce equal tokens.
type Codec interface {
	// Encrypt renders amount in canonical decimal form and encrypts it under
	// a fresh IV.
	Encrypt(amount decimal.Decimal) (string, error)

	// Decrypt reverses Encrypt. It returns ErrMalformedToken when the token
	// does not have the documented shape, ErrDecryption when the cipher
	// rejects it (wrong key, truncation, tampering), and ErrInvalidPlaintext
	// when the plaintext is not a number.
	Decrypt(token string) (decimal.Decimal, error)
}
