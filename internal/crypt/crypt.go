// Package crypt reverses the fixed section obfuscation of project files and
// detects whether a buffer is still ciphertext.
//
// Sections are AES-128-CBC encrypted with PKCS#5 padding. Key and IV are
// constants of the format, so this is obfuscation rather than secrecy.
package crypt

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"

	"github.com/papapumpkin/asperge/internal/decodeerr"
	"github.com/papapumpkin/asperge/internal/section"
)

// formatKey is used as both key and IV.
const formatKey = "sketchwaresecure"

// Decrypt reverses the section transform and verifies the result is UTF-8.
func Decrypt(buf []byte) (string, error) {
	if len(buf) == 0 || len(buf)%aes.BlockSize != 0 {
		return "", failed("ciphertext length %d is not a positive multiple of %d", len(buf), aes.BlockSize)
	}
	block, err := aes.NewCipher([]byte(formatKey))
	if err != nil {
		return "", failed("initialising cipher: %v", err)
	}
	out := make([]byte, len(buf))
	cipher.NewCBCDecrypter(block, []byte(formatKey)).CryptBlocks(out, buf)

	out, err = unpad(out)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(out) {
		return "", failed("decrypted data is not valid UTF-8")
	}
	return string(out), nil
}

// Encrypt applies the section transform to text. It is the exact inverse of
// Decrypt.
func Encrypt(text string) []byte {
	block, err := aes.NewCipher([]byte(formatKey))
	if err != nil {
		// The key is a 16-byte constant; NewCipher cannot reject it.
		panic(err)
	}
	plain := pad([]byte(text))
	out := make([]byte, len(plain))
	cipher.NewCBCEncrypter(block, []byte(formatKey)).CryptBlocks(out, plain)
	return out
}

// LooksEncrypted reports whether buf is ciphertext. The buffer is decoded as
// UTF-8 with invalid sequences replaced, then re-encoded; any difference from
// the original bytes means the buffer is not text.
func LooksEncrypted(buf []byte) bool {
	decoded, err := unicode.UTF8.NewDecoder().Bytes(buf)
	if err != nil {
		return true
	}
	reencoded, err := unicode.UTF8.NewEncoder().Bytes(decoded)
	if err != nil {
		return true
	}
	return !bytes.Equal(buf, reencoded)
}

// DecryptProject turns every raw section into text. Each buffer is probed
// first; plaintext passes through untouched so it is never decrypted twice.
func DecryptProject(raw section.Raw) (section.Decrypted, error) {
	if err := raw.Validate(); err != nil {
		return nil, err
	}
	out := make(section.Decrypted, len(raw))
	for _, name := range section.Names {
		buf := raw[name]
		if !LooksEncrypted(buf) {
			out[name] = string(buf)
			continue
		}
		text, err := Decrypt(buf)
		if err != nil {
			var de *decodeerr.Error
			if errors.As(err, &de) {
				de.Section = name
			}
			return nil, err
		}
		out[name] = text
	}
	return out, nil
}

func pad(b []byte) []byte {
	n := aes.BlockSize - len(b)%aes.BlockSize
	return append(b, bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(b []byte) ([]byte, error) {
	n := int(b[len(b)-1])
	if n == 0 || n > aes.BlockSize || n > len(b) {
		return nil, failed("invalid padding length %d", n)
	}
	for _, c := range b[len(b)-n:] {
		if int(c) != n {
			return nil, failed("invalid padding byte %#x", c)
		}
	}
	return b[:len(b)-n], nil
}

func failed(format string, args ...any) *decodeerr.Error {
	return &decodeerr.Error{Kind: decodeerr.KindDecryptionFailed, Err: fmt.Errorf(format, args...)}
}
