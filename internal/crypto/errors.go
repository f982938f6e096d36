package crypto

import "errors"

var (
	// ErrEmptySecret is returned when a codec is built without a secret.
	ErrEmptySecret = errors.New("encryption secret is empty")
	// ErrUnknownMode is returned for a cipher mode other than gcm or cbc.
	ErrUnknownMode = errors.New("unknown cipher mode")
	// ErrMalformedToken is returned when a token is not hex(16 bytes):hex(...).
	ErrMalformedToken = errors.New("malformed ciphertext token")
	// ErrDecryption is returned when the cipher rejects a well-formed token.
	ErrDecryption = errors.New("ciphertext could not be decrypted")
	// ErrInvalidPlaintext is returned when a token decrypts to something
	// that is not a decimal number.
	ErrInvalidPlaintext = errors.New("decrypted value is not a number")
)
