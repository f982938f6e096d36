// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto implements the ledger's cipher codec: amounts are stored
// and shown to clients only as hex(IV):hex(CIPHERTEXT) tokens produced with
// AES-256 under a key derived from the shared deployment secret.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// Supported cipher modes.
const (
	// ModeGCM authenticates the ciphertext, so tampering is always detected.
	// It runs AES-GCM with a 16-byte nonce to keep the token shape.
	ModeGCM = "gcm"
	// ModeCBC is AES-256-CBC with PKCS#7 padding. It reads and writes tokens
	// of deployments that predate GCM support.
	ModeCBC = "cbc"
)

// Key is the 256-bit AES key. It is immutable once derived.
type Key [sha256.Size]byte

// DeriveKey hashes secret with SHA-256.
func DeriveKey(secret string) (Key, error) {
	if secret == "" {
		return Key{}, ErrEmptySecret
	}

	return sha256.Sum256([]byte(secret)), nil
}

// NewCodec derives the key from secret and returns the codec for mode.
// An empty mode selects [ModeGCM].
func NewCodec(secret, mode string) (Codec, error) {
	key, err := DeriveKey(secret)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	switch mode {
	case ModeGCM, "":
		aead, err := cipher.NewGCMWithNonceSize(block, ivSize)
		if err != nil {
			return nil, fmt.Errorf("create gcm: %w", err)
		}
		return &gcmCodec{aead: aead, random: rand.Reader}, nil
	case ModeCBC:
		return &cbcCodec{block: block, random: rand.Reader}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

type gcmCodec struct {
	aead   cipher.AEAD
	random io.Reader
}

func (c *gcmCodec) Encrypt(amount decimal.Decimal) (string, error) {
	iv := make([]byte, ivSize)
	if _, err := io.ReadFull(c.random, iv); err != nil {
		return "", fmt.Errorf("generate iv: %w", err)
	}

	ciphertext := c.aead.Seal(nil, iv, []byte(amount.String()), nil)
	return formatToken(iv, ciphertext), nil
}

func (c *gcmCodec) Decrypt(token string) (decimal.Decimal, error) {
	iv, ciphertext, err := parseToken(token)
	if err != nil {
		return decimal.Zero, err
	}

	if len(ciphertext) < c.aead.Overhead() {
		return decimal.Zero, fmt.Errorf("%w: ciphertext shorter than tag", ErrMalformedToken)
	}

	plaintext, err := c.aead.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %w", ErrDecryption, err)
	}

	return parseAmount(plaintext)
}

type cbcCodec struct {
	block  cipher.Block
	random io.Reader
}

func (c *cbcCodec) Encrypt(amount decimal.Decimal) (string, error) {
	iv := make([]byte, ivSize)
	if _, err := io.ReadFull(c.random, iv); err != nil {
		return "", fmt.Errorf("generate iv: %w", err)
	}

	plaintext := pkcs7Pad([]byte(amount.String()), aes.BlockSize)
	ciphertext := make([]byte, len(plaintext))
	cipher.NewCBCEncrypter(c.block, iv).CryptBlocks(ciphertext, plaintext)

	return formatToken(iv, ciphertext), nil
}

func (c *cbcCodec) Decrypt(token string) (decimal.Decimal, error) {
	iv, ciphertext, err := parseToken(token)
	if err != nil {
		return decimal.Zero, err
	}

	if len(ciphertext)%aes.BlockSize != 0 {
		return decimal.Zero, fmt.Errorf("%w: ciphertext is not a whole number of blocks", ErrMalformedToken)
	}

	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(c.block, iv).CryptBlocks(padded, ciphertext)

	plaintext, err := pkcs7Unpad(padded, aes.BlockSize)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %w", ErrDecryption, err)
	}

	return parseAmount(plaintext)
}

func parseAmount(plaintext []byte) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(string(plaintext))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %w", ErrInvalidPlaintext, err)
	}

	return amount, nil
}
