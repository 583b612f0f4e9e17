// Copyright 2023 Contributors to the RISC Go client project.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
)

// keyHexLen is the number of hex characters taken from the doubled secret,
// i.e. one AES-128 key.
const keyHexLen = 32

var (
	ErrMalformedEnvelope = errors.New("malformed encrypted snapshot")
	ErrKeyDerivation     = errors.New("snapshot key derivation failed")
	ErrInvalidIV         = errors.New("invalid snapshot IV")
	ErrInvalidCiphertext = errors.New("invalid snapshot ciphertext")
	ErrDecryption        = errors.New("snapshot decryption failed")
	ErrMalformedSnapshot = errors.New("malformed decrypted snapshot")
)

// ParseEncrypted decodes the JSON encrypted snapshot object.
func ParseEncrypted(raw []byte) (*Encrypted, error) {
	var enc Encrypted

	if err := json.Unmarshal(raw, &enc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}

	return &enc, nil
}

// DecryptJSON parses and decrypts a JSON encrypted snapshot object.
func DecryptJSON(raw []byte, secret string) (*Snapshot, error) {
	enc, err := ParseEncrypted(raw)
	if err != nil {
		return nil, err
	}

	return Decrypt(enc, secret)
}

// Decrypt recovers the snapshot using the shared API secret. Each stage
// (key, IV, ciphertext, cipher, JSON) fails with its own sentinel error.
func Decrypt(enc *Encrypted, secret string) (*Snapshot, error) {
	if enc == nil {
		return nil, fmt.Errorf("%w: nil snapshot", ErrMalformedEnvelope)
	}

	key, err := DeriveKey(secret, enc.Ix)
	if err != nil {
		return nil, err
	}

	iv, err := hex.DecodeString(enc.IV)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIV, err)
	}

	if len(iv) != aes.BlockSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidIV, len(iv), aes.BlockSize)
	}

	data, err := base64.StdEncoding.DecodeString(enc.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCiphertext, err)
	}

	if len(data) == 0 || len(data)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: length %d is not a positive multiple of %d",
			ErrInvalidCiphertext, len(data), aes.BlockSize)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryption, err)
	}

	plain := make([]byte, len(data))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, data)

	plain, err = unpad(plain)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryption, err)
	}

	var s Snapshot
	if err := json.Unmarshal(plain, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}

	s.Classify()

	return &s, nil
}

// DeriveKey takes the 32 hex characters of secret+secret starting at ix and
// returns them as a 16 byte AES key.
func DeriveKey(secret string, ix int) ([]byte, error) {
	doubled := secret + secret

	if ix < 0 || ix+keyHexLen > len(doubled) {
		return nil, fmt.Errorf("%w: offset %d out of range for a %d character secret",
			ErrKeyDerivation, ix, len(secret))
	}

	key, err := hex.DecodeString(doubled[ix : ix+keyHexLen])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyDerivation, err)
	}

	return key, nil
}

// unpad strips PKCS#7 padding.
func unpad(b []byte) ([]byte, error) {
	if len(b) == 0 {
		return nil, errors.New("empty plaintext")
	}

	n := int(b[len(b)-1])
	if n == 0 || n > aes.BlockSize || n > len(b) {
		return nil, errors.New("bad padding")
	}

	if !bytes.Equal(b[len(b)-n:], bytes.Repeat([]byte{byte(n)}, n)) {
		return nil, errors.New("bad padding")
	}

	return b[:len(b)-n], nil
}
