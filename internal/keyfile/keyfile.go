/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package keyfile reads and writes the YAML key files the didsuite tools sign with.
// Seeds and public keys are stored multibase encoded (base58btc).
package keyfile

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/multiformats/go-multibase"
	"gopkg.in/yaml.v3"

	"github.com/workprotocol/signaturesuite/pkg/doc/did"
)

const filePerm = 0o600

var (
	// ErrInvalidSeed is returned when the stored seed is not a 32 byte Ed25519 seed.
	ErrInvalidSeed = errors.New("keyfile: invalid seed")

	// ErrInconsistent is returned when the stored public key, DID or key reference does not match the seed.
	ErrInconsistent = errors.New("keyfile: stored values do not match the seed")
)

// Key is an Ed25519 key pair together with its derived DID and key reference.
type Key struct {
	DID        string
	KeyRef     string
	PrivateKey ed25519.PrivateKey
	PublicKey  ed25519.PublicKey
}

type fileFormat struct {
	DID       string `yaml:"did"`
	KeyRef    string `yaml:"keyRef"`
	Seed      string `yaml:"seed"`
	PublicKey string `yaml:"publicKey"`
}

// FromSeed derives the key pair, DID and key-1 reference from a 32 byte seed.
func FromSeed(seed []byte) (*Key, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("%w: got %d bytes, need %d", ErrInvalidSeed, len(seed), ed25519.SeedSize)
	}

	privKey := ed25519.NewKeyFromSeed(seed)
	pubKey := privKey.Public().(ed25519.PublicKey)

	id, err := did.GenerateDID(pubKey)
	if err != nil {
		return nil, err
	}

	return &Key{
		DID:        id,
		KeyRef:     did.KeyRef(id, did.InitialKey),
		PrivateKey: privKey,
		PublicKey:  pubKey,
	}, nil
}

// Generate creates a key from a seed read from r, or from crypto/rand when r is nil.
func Generate(r io.Reader) (*Key, error) {
	if r == nil {
		r = rand.Reader
	}

	seed := make([]byte, ed25519.SeedSize)

	if _, err := io.ReadFull(r, seed); err != nil {
		return nil, fmt.Errorf("keyfile: read seed: %w", err)
	}

	return FromSeed(seed)
}

// Marshal encodes k as YAML.
func Marshal(k *Key) ([]byte, error) {
	seed, err := multibase.Encode(multibase.Base58BTC, k.PrivateKey.Seed())
	if err != nil {
		return nil, fmt.Errorf("keyfile: encode seed: %w", err)
	}

	pubKey, err := multibase.Encode(multibase.Base58BTC, k.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("keyfile: encode public key: %w", err)
	}

	return yaml.Marshal(&fileFormat{DID: k.DID, KeyRef: k.KeyRef, Seed: seed, PublicKey: pubKey})
}

// Unmarshal decodes a YAML key file and checks the stored values against the seed.
// The public key and DID may be omitted; an omitted key reference defaults to key-1.
func Unmarshal(data []byte) (*Key, error) {
	var f fileFormat

	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("keyfile: parse: %w", err)
	}

	if f.Seed == "" {
		return nil, fmt.Errorf("%w: seed is missing", ErrInvalidSeed)
	}

	_, seed, err := multibase.Decode(f.Seed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}

	k, err := FromSeed(seed)
	if err != nil {
		return nil, err
	}

	if f.PublicKey != "" {
		_, pubKey, err := multibase.Decode(f.PublicKey)
		if err != nil {
			return nil, fmt.Errorf("keyfile: decode public key: %w", err)
		}

		if !k.PublicKey.Equal(ed25519.PublicKey(pubKey)) {
			return nil, fmt.Errorf("%w: public key", ErrInconsistent)
		}
	}

	if f.DID != "" && f.DID != k.DID {
		return nil, fmt.Errorf("%w: did %s, expected %s", ErrInconsistent, f.DID, k.DID)
	}

	if f.KeyRef != "" {
		k.KeyRef = f.KeyRef
	}

	return k, nil
}

// Load reads the key file at path.
func Load(path string) (*Key, error) {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("keyfile: read %s: %w", path, err)
	}

	return Unmarshal(data)
}

// Save writes k to path, readable by the owner only.
func Save(path string, k *Key) error {
	data, err := Marshal(k)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("keyfile: write %s: %w", path, err)
	}

	return nil
}
