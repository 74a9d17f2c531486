package storage

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aaravmahajanofficial/storefront-client/internal/models"
	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"
)

const (
	saltSize  = 16
	nonceSize = 24
	keySize   = 32
)

var ErrDecrypt = errors.New("failed to decrypt session file")

type fileStore struct {
	mu         sync.Mutex
	path       string
	passphrase string
	kdf        func(passphrase, salt []byte) ([]byte, error)

	// last sealed file contents and their plaintext; scrypt runs only when
	// the file changes
	sealed []byte
	plain  []byte
}

func scryptKey(passphrase, salt []byte) ([]byte, error) {
	return scrypt.Key(passphrase, salt, 1<<15, 8, 1, keySize)
}

// NewFileStore keeps the session in a 0600 file under the user's home. When
// passphrase is set the file is sealed with NaCl secretbox under a
// scrypt-derived key.
func NewFileStore(path, profile, passphrase string) TokenStore {
	return &fileStore{
		path:       profilePath(path, profile),
		passphrase: passphrase,
		kdf:        scryptKey,
	}
}

// session.json -> session.<profile>.json for non-default profiles
func profilePath(path, profile string) string {
	if profile == "" || profile == "default" {
		return path
	}

	ext := filepath.Ext(path)

	return strings.TrimSuffix(path, ext) + "." + profile + ext
}

func (f *fileStore) Load(_ context.Context) (*models.StoredSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	if f.passphrase != "" {
		if data, err = f.openCached(data); err != nil {
			return nil, err
		}
	}

	var session models.StoredSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session file: %w", err)
	}

	if session.Token == "" {
		return nil, ErrNoSession
	}

	return &session, nil
}

func (f *fileStore) Save(_ context.Context, session *models.StoredSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	plain := data

	if f.passphrase != "" {
		if data, err = f.seal(data); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		f.sealed, f.plain = nil, nil
		return fmt.Errorf("failed to replace session file: %w", err)
	}

	if f.passphrase != "" {
		f.sealed, f.plain = data, plain
	}

	return nil
}

func (f *fileStore) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sealed, f.plain = nil, nil

	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}

	return nil
}

func (f *fileStore) Close() error {
	return nil
}

func (f *fileStore) deriveKey(salt []byte) (*[keySize]byte, error) {
	derived, err := f.kdf([]byte(f.passphrase), salt)
	if err != nil {
		return nil, fmt.Errorf("failed to derive session key: %w", err)
	}

	var key [keySize]byte
	copy(key[:], derived)

	return &key, nil
}

// layout: salt | nonce | sealed box
func (f *fileStore) seal(plain []byte) ([]byte, error) {
	var salt [saltSize]byte
	var nonce [nonceSize]byte

	if _, err := rand.Read(salt[:]); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	key, err := f.deriveKey(salt[:])
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, saltSize+nonceSize+len(plain)+secretbox.Overhead)
	out = append(out, salt[:]...)
	out = append(out, nonce[:]...)

	return secretbox.Seal(out, plain, &nonce, key), nil
}

// openCached reuses the last plaintext while the file is unchanged.
func (f *fileStore) openCached(sealed []byte) ([]byte, error) {
	if f.sealed != nil && bytes.Equal(f.sealed, sealed) {
		return f.plain, nil
	}

	plain, err := f.open(sealed)
	if err != nil {
		f.sealed, f.plain = nil, nil
		return nil, err
	}

	f.sealed, f.plain = sealed, plain

	return plain, nil
}

func (f *fileStore) open(sealed []byte) ([]byte, error) {
	if len(sealed) < saltSize+nonceSize+secretbox.Overhead {
		return nil, ErrDecrypt
	}

	key, err := f.deriveKey(sealed[:saltSize])
	if err != nil {
		return nil, err
	}

	var nonce [nonceSize]byte
	copy(nonce[:], sealed[saltSize:saltSize+nonceSize])

	plain, ok := secretbox.Open(nil, sealed[saltSize+nonceSize:], &nonce, key)
	if !ok {
		return nil, ErrDecrypt
	}

	return plain, nil
}
