/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package verifier checks raw signatures against public keys.
package verifier

import (
	"crypto/ed25519"

	"filippo.io/edwards25519"
	"github.com/pkg/errors"

	"github.com/workprotocol/signaturesuite/pkg/doc/signature/api"
)

// Ed25519SignatureVerifier verifies a Ed25519 signature taking Ed25519 public key bytes as input.
type Ed25519SignatureVerifier struct {
	algorithm string
}

// NewEd25519SignatureVerifier creates a new Ed25519SignatureVerifier.
func NewEd25519SignatureVerifier() *Ed25519SignatureVerifier {
	return &Ed25519SignatureVerifier{algorithm: "EdDSA"}
}

// Algorithm returns the signature algorithm this verifier accepts.
func (sv *Ed25519SignatureVerifier) Algorithm() string {
	return sv.algorithm
}

// Verify verifies the signature.
func (sv *Ed25519SignatureVerifier) Verify(pubKey *api.PublicKey, msg, signature []byte) error {
	if pubKey == nil {
		return errors.Wrap(api.ErrInvalidKey, "ed25519: public key is not defined")
	}

	if err := ValidateEd25519PublicKey(pubKey.Value); err != nil {
		return err
	}

	if !ed25519.Verify(pubKey.Value, msg, signature) {
		return errors.Wrap(api.ErrSignatureMismatch, "ed25519: invalid signature")
	}

	return nil
}

// ValidateEd25519PublicKey returns api.ErrInvalidKey unless pub is 32 bytes encoding a point on the curve.
func ValidateEd25519PublicKey(pub []byte) error {
	// ed25519 panics if key size is wrong
	if len(pub) != ed25519.PublicKeySize {
		return errors.Wrapf(api.ErrInvalidKey, "ed25519: bad public key length %d", len(pub))
	}

	if _, err := new(edwards25519.Point).SetBytes(pub); err != nil {
		return errors.Wrapf(api.ErrInvalidKey, "ed25519: public key is not a curve point")
	}

	return nil
}
