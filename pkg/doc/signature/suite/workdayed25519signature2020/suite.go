/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

// Package workdayed25519signature2020 implements the WorkdayEd25519Signature2020 signature suite.
// Documents are canonicalized by sorting object keys, the nonce is appended after a "." separator
// and the result is signed with Ed25519. Signatures are carried Base58 encoded.
package workdayed25519signature2020

import (
	"crypto/ed25519"

	"github.com/workprotocol/signaturesuite/pkg/doc/signature/signer"
	"github.com/workprotocol/signaturesuite/pkg/doc/signature/suite"
	"github.com/workprotocol/signaturesuite/pkg/doc/signature/verifier"
)

// Suite implements the Workday ed25519 signature suite.
type Suite struct {
	suite.SignatureSuite
}

const (
	// SignatureType is the proof type produced and accepted by this suite.
	SignatureType = "WorkdayEd25519Signature2020"
	// VerificationKeyType is the key type of verification keys listed in DID documents.
	VerificationKeyType = "WorkdayEd25519VerificationKey2020"
)

// New an instance of the Workday ed25519 signature suite.
func New(opts ...suite.Opt) *Suite {
	s := &Suite{}

	suite.InitSuiteOptions(&s.SignatureSuite, opts...)

	return s
}

// NewEd25519 returns the suite wired with the Ed25519 signer for privKey and the Ed25519 verifier.
// A nil privKey yields a verify-only suite.
func NewEd25519(privKey ed25519.PrivateKey) *Suite {
	opts := []suite.Opt{suite.WithVerifier(verifier.NewEd25519SignatureVerifier())}

	if privKey != nil {
		var pubKey ed25519.PublicKey
		if len(privKey) == ed25519.PrivateKeySize {
			pubKey, _ = privKey.Public().(ed25519.PublicKey)
		}

		opts = append(opts, suite.WithSigner(signer.GetEd25519Signer(privKey, pubKey)))
	}

	return New(opts...)
}

// ProofType returns the proof type written into created proofs.
func (s *Suite) ProofType() string {
	return SignatureType
}

// Accept will accept only the Workday ed25519 signature type.
func (s *Suite) Accept(t string) bool {
	return t == SignatureType
}
