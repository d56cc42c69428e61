/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package api holds the types and errors shared by the signature packages.
package api

import "errors"

// PublicKey contains a result of public key resolution.
type PublicKey struct {
	Type  string
	Value []byte
}

var (
	// ErrInvalidKey is returned when key material is malformed or has the wrong length.
	ErrInvalidKey = errors.New("invalid key material")

	// ErrDecoding is returned when an encoded payload such as a Base58 signature is malformed.
	ErrDecoding = errors.New("decoding error")

	// ErrSignature is returned when the underlying signature primitive fails.
	ErrSignature = errors.New("signature failure")

	// ErrSignatureMismatch is returned by verifiers when the signature does not match the message.
	ErrSignatureMismatch = errors.New("signature does not match")
)
