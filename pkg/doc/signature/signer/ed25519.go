/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package signer provides the Ed25519 signer used by the signature suite.
package signer

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/workprotocol/signaturesuite/pkg/doc/signature/api"
)

const (
	alg = "EdDSA"
)

// GetEd25519Signer creates a new Ed25519 signer with passed Ed25519 key pair.
func GetEd25519Signer(privKey ed25519.PrivateKey, pubKey ed25519.PublicKey) *Ed25519Signer {
	return &Ed25519Signer{privateKey: privKey, PubKey: pubKey}
}

// Ed25519Signer makes Ed25519 based signatures.
type Ed25519Signer struct {
	privateKey ed25519.PrivateKey
	PubKey     ed25519.PublicKey
}

// Alg return alg.
func (s *Ed25519Signer) Alg() string {
	return alg
}

// Sign signs a message.
func (s *Ed25519Signer) Sign(msg []byte) ([]byte, error) {
	if l := len(s.privateKey); l != ed25519.PrivateKeySize {
		return nil, errors.Wrapf(api.ErrInvalidKey, "ed25519: bad private key length %d", l)
	}

	return ed25519.Sign(s.privateKey, msg), nil
}
