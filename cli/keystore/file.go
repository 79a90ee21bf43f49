package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/crypto/argon2"
)

// File format: [magic (4)] [version (1)] [salt (16)] [nonce (12)] [ciphertext].
const (
	magicHeader = "SBKS"
	version1    = byte(0x01)
	saltLength  = 16
	nonceLength = 12
)

// Argon2id parameters (OWASP recommended).
const (
	argon2Time    = 3
	argon2Memory  = 64 * 1024
	argon2Threads = 4
	argon2KeyLen  = 32
)

// FileKeystore stores a JSON name→key map encrypted with AES-256-GCM. The
// encryption key is derived per write from a master key and a fresh salt
// via Argon2id.
type FileKeystore struct {
	path      string
	masterKey []byte
	mu        sync.RWMutex
}

// NewFileKeystore creates a keystore backed by the given file. The master
// key derives from machine-specific data, so the file is only readable on
// the machine that wrote it.
func NewFileKeystore(path string) (*FileKeystore, error) {
	return &FileKeystore{path: path, masterKey: machineKey()}, nil
}

// Set stores a key for a provider name.
func (f *FileKeystore) Set(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.load()
	if err != nil {
		return err
	}
	data[name] = value
	return f.save(data)
}

// Get retrieves a key by provider name.
func (f *FileKeystore) Get(name string) (string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	data, err := f.load()
	if err != nil {
		return "", err
	}
	value, ok := data[name]
	if !ok {
		return "", &ErrKeyNotFound{Name: name}
	}
	return value, nil
}

// Delete removes a key by provider name.
func (f *FileKeystore) Delete(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.load()
	if err != nil {
		return err
	}
	if _, ok := data[name]; !ok {
		return &ErrKeyNotFound{Name: name}
	}
	delete(data, name)
	return f.save(data)
}

// List returns all stored provider names, sorted.
func (f *FileKeystore) List() ([]string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	data, err := f.load()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(data))
	for name := range data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (f *FileKeystore) load() (map[string]string, error) {
	data := make(map[string]string)

	ciphertext, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return data, nil
		}
		return nil, err
	}
	if len(ciphertext) == 0 {
		return data, nil
	}

	plaintext, err := f.decrypt(ciphertext)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(plaintext, &data); err != nil {
		return nil, err
	}
	return data, nil
}

func (f *FileKeystore) save(data map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return err
	}
	plaintext, err := json.Marshal(data)
	if err != nil {
		return err
	}
	ciphertext, err := f.encrypt(plaintext)
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, ciphertext, 0600)
}

func deriveKey(masterKey, salt []byte) []byte {
	return argon2.IDKey(masterKey, salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)
}

func (f *FileKeystore) encrypt(plaintext []byte) ([]byte, error) {
	salt := make([]byte, saltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(deriveKey(f.masterKey, salt))
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	header := make([]byte, 0, len(magicHeader)+1+saltLength+nonceLength)
	header = append(header, []byte(magicHeader)...)
	header = append(header, version1)
	header = append(header, salt...)
	header = append(header, nonce...)

	// The header is bound as additional data so tampering with it fails
	// decryption.
	ciphertext := gcm.Seal(nil, nonce, plaintext, header)
	return append(header, ciphertext...), nil
}

func (f *FileKeystore) decrypt(ciphertext []byte) ([]byte, error) {
	headerLen := len(magicHeader) + 1 + saltLength + nonceLength
	if len(ciphertext) < headerLen {
		return nil, errors.New("keystore file truncated")
	}
	if string(ciphertext[:len(magicHeader)]) != magicHeader || ciphertext[len(magicHeader)] != version1 {
		return nil, errors.New("unrecognized keystore format")
	}

	offset := len(magicHeader) + 1
	salt := ciphertext[offset : offset+saltLength]
	offset += saltLength
	nonce := ciphertext[offset : offset+nonceLength]
	offset += nonceLength
	encrypted := ciphertext[offset:]
	header := ciphertext[:offset]

	block, err := aes.NewCipher(deriveKey(f.masterKey, salt))
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return gcm.Open(nil, nonce, encrypted, header)
}

// machineKey builds the master key from machine-specific data.
func machineKey() []byte {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	username := os.Getenv("USER")
	if username == "" {
		username = os.Getenv("USERNAME")
	}
	hash := sha256.Sum256([]byte(hostname + ":" + username + ":scenebrush-keystore"))
	return hash[:]
}

var _ Keystore = (*FileKeystore)(nil)
