// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package titan

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"

	"github.com/btsuite/btsledger/internal/zero"
)

const (
	// memoKeySize and memoIVSize split the 64-byte shared secret into
	// the AES-256 key and the CBC initialization vector.
	memoKeySize = 32
	memoIVSize  = aes.BlockSize
)

var (
	errBadCiphertext = errors.New("ciphertext is not a positive " +
		"multiple of the block size")
	errBadPadding = errors.New("invalid padding")
)

// encryptMemo encrypts plaintext with AES-256-CBC keyed by the first 32
// bytes of secret, using the next 16 bytes as the IV, and PKCS#7 padding.
func encryptMemo(secret *[64]byte, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(secret[:memoKeySize])
	if err != nil {
		return nil, err
	}

	padLen := aes.BlockSize - len(plaintext)%aes.BlockSize
	padded := make([]byte, len(plaintext)+padLen)
	copy(padded, plaintext)
	copy(padded[len(plaintext):], bytes.Repeat([]byte{byte(padLen)}, padLen))

	iv := secret[memoKeySize : memoKeySize+memoIVSize]
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)
	zero.Bytes(padded)
	return ciphertext, nil
}

// decryptMemo reverses encryptMemo.
func decryptMemo(secret *[64]byte, ciphertext []byte) ([]byte, error) {
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes", errBadCiphertext,
			len(ciphertext))
	}

	block, err := aes.NewCipher(secret[:memoKeySize])
	if err != nil {
		return nil, err
	}

	iv := secret[memoKeySize : memoKeySize+memoIVSize]
	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	padLen := int(plaintext[len(plaintext)-1])
	if padLen == 0 || padLen > aes.BlockSize {
		zero.Bytes(plaintext)
		return nil, errBadPadding
	}
	for _, b := range plaintext[len(plaintext)-padLen:] {
		if int(b) != padLen {
			zero.Bytes(plaintext)
			return nil, errBadPadding
		}
	}
	return plaintext[:len(plaintext)-padLen], nil
}
