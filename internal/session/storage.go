// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package session

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/crypto/scrypt"
)

// Storage persists the raw session document. Implementations must make Write
// atomic: a reader never observes a half-written document.
type Storage interface {
	// Read returns the stored document, or nil when none exists.
	Read() ([]byte, error)
	// Write replaces the stored document.
	Write(data []byte) error
	// Delete removes the stored document. Deleting an absent document is not
	// an error.
	Delete() error
}

// sealMagic prefixes encrypted session files so plain and sealed documents
// can be told apart.
var sealMagic = []byte("EDUSEAL1")

const (
	saltLength = 16

	// scrypt parameters (interactive profile).
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

// FileStorage keeps the session document in a single file, written via a
// temp-file rename so the swap is atomic. With a non-empty passphrase the
// document is sealed with AES-256-GCM under an scrypt-derived key, so the
// access token is never readable at rest.
type FileStorage struct {
	path       string
	passphrase string
}

// NewFileStorage creates a file-backed storage at path. passphrase may be
// empty, in which case the document is stored as plain JSON with 0600 mode.
func NewFileStorage(path, passphrase string) *FileStorage {
	return &FileStorage{path: path, passphrase: passphrase}
}

// Read implements Storage.
func (f *FileStorage) Read() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if len(data) >= len(sealMagic) && string(data[:len(sealMagic)]) == string(sealMagic) {
		if f.passphrase == "" {
			return nil, fmt.Errorf("session file is sealed but SESSION_KEY is not set")
		}
		return f.unseal(data[len(sealMagic):])
	}
	return data, nil
}

// Write implements Storage.
func (f *FileStorage) Write(data []byte) error {
	if f.passphrase != "" {
		sealed, err := f.seal(data)
		if err != nil {
			return err
		}
		data = append(append([]byte{}, sealMagic...), sealed...)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	tmpName := tmp.Name()

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("chmod session file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close session file: %w", err)
	}

	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("swap session file: %w", err)
	}
	return nil
}

// Delete implements Storage.
func (f *FileStorage) Delete() error {
	err := os.Remove(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// seal encrypts data with AES-256-GCM. Output layout: salt | nonce | ciphertext.
func (f *FileStorage) seal(data []byte) ([]byte, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("seal salt: %w", err)
	}

	gcm, err := f.aead(salt)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("seal nonce: %w", err)
	}

	out := append(append([]byte{}, salt...), nonce...)
	return gcm.Seal(out, nonce, data, nil), nil
}

// unseal reverses seal.
func (f *FileStorage) unseal(data []byte) ([]byte, error) {
	if len(data) < saltLength {
		return nil, fmt.Errorf("sealed session file too short")
	}
	salt, rest := data[:saltLength], data[saltLength:]

	gcm, err := f.aead(salt)
	if err != nil {
		return nil, err
	}
	if len(rest) < gcm.NonceSize() {
		return nil, fmt.Errorf("sealed session file too short")
	}
	nonce, ciphertext := rest[:gcm.NonceSize()], rest[gcm.NonceSize():]

	plain, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("unseal session file: %w", err)
	}
	return plain, nil
}

// aead derives the AES-GCM cipher from the passphrase and salt.
func (f *FileStorage) aead(salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key([]byte(f.passphrase), salt, scryptN, scryptR, scryptP, 32)
	if err != nil {
		return nil, fmt.Errorf("derive session key: %w", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("session cipher: %w", err)
	}
	return cipher.NewGCM(block)
}
