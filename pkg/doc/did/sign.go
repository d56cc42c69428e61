/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package did

import (
	"crypto/ed25519"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/workprotocol/signaturesuite/pkg/doc/canonical"
	"github.com/workprotocol/signaturesuite/pkg/doc/signature/api"
	"github.com/workprotocol/signaturesuite/pkg/doc/signature/proof"
)

type signOpts struct {
	nonce   func() string
	created *time.Time
}

// SignOpt configures SignDocument.
type SignOpt func(opts *signOpts)

// WithNonceSource replaces the random UUID nonce generator.
func WithNonceSource(nonce func() string) SignOpt {
	return func(opts *signOpts) {
		opts.nonce = nonce
	}
}

// WithCreated sets the proof creation time.
func WithCreated(t time.Time) SignOpt {
	return func(opts *signOpts) {
		opts.created = &t
	}
}

// SignDocument signs the canonical form of unsigned with privKey under a fresh nonce.
// An empty document ID is set to the DID of the signing key, and an empty keyRef to its key-1 reference.
func SignDocument(unsigned UnsignedDoc, privKey ed25519.PrivateKey, keyRef string, opts ...SignOpt) (*Doc, error) {
	if len(privKey) != ed25519.PrivateKeySize {
		return nil, errors.Wrapf(api.ErrInvalidKey, "ed25519: bad private key length %d", len(privKey))
	}

	o := &signOpts{nonce: func() string { return uuid.New().String() }}

	for _, opt := range opts {
		opt(o)
	}

	if unsigned.ID == "" {
		did, err := GenerateDID(privKey.Public().(ed25519.PublicKey))
		if err != nil {
			return nil, err
		}

		unsigned.ID = did
	}

	if keyRef == "" {
		keyRef = KeyRef(unsigned.ID, InitialKey)
	}

	docBytes, err := canonical.Marshal(&unsigned)
	if err != nil {
		return nil, errors.Wrap(err, "canonicalize unsigned DID document")
	}

	var proofOpts []proof.Opt
	if o.created != nil {
		proofOpts = append(proofOpts, proof.WithCreated(*o.created))
	}

	p, err := proof.CreateEd25519Proof(docBytes, keyRef, privKey, o.nonce(), proofOpts...)
	if err != nil {
		return nil, err
	}

	return &Doc{UnsignedDoc: unsigned, Proof: *p}, nil
}

// VerifyDocument verifies the proof of doc over its canonical unsigned form with pubKey.
// A proof of another type or a signature mismatch yields false with no error.
func VerifyDocument(doc *Doc, pubKey ed25519.PublicKey) (bool, error) {
	if doc == nil {
		return false, errors.New("verify DID document: document is not defined")
	}

	docBytes, err := canonical.Marshal(&doc.UnsignedDoc)
	if err != nil {
		return false, errors.Wrap(err, "canonicalize unsigned DID document")
	}

	return proof.VerifyEd25519Proof(pubKey, &doc.Proof, docBytes)
}

// VerifyDocumentWithEmbeddedKey verifies doc with the key its proof creator references.
func VerifyDocumentWithEmbeddedKey(doc *Doc) (bool, error) {
	if doc == nil {
		return false, errors.New("verify DID document: document is not defined")
	}

	key, err := doc.PublicKeyByRef(doc.Proof.Creator)
	if err != nil {
		return false, err
	}

	pubKey, err := DecodePublicKey(*key)
	if err != nil {
		return false, err
	}

	return VerifyDocument(doc, pubKey)
}

// CheckIdentity returns ErrIdentityMismatch unless doc.ID is the DID derived from pubKey.
func CheckIdentity(doc *Doc, pubKey []byte) error {
	did, err := GenerateDID(pubKey)
	if err != nil {
		return err
	}

	if doc.ID != did {
		return errors.Wrapf(ErrIdentityMismatch, "id %s, key DID %s", doc.ID, did)
	}

	return nil
}

// VerifyRawDocument verifies a signed document given as JSON.
// The proof member is removed from the raw bytes before canonicalization, so members unknown to
// UnsignedDoc stay covered by the signature.
func VerifyRawDocument(data []byte, pubKey ed25519.PublicKey) (bool, error) {
	if !gjson.ValidBytes(data) {
		return false, canonical.ErrInvalidJSON
	}

	rawProof := gjson.GetBytes(data, jsonldProof)
	if !rawProof.IsObject() {
		return false, ErrMissingProof
	}

	emap, ok := rawProof.Value().(map[string]interface{})
	if !ok {
		return false, ErrMissingProof
	}

	p, err := proof.NewProof(emap)
	if err != nil {
		return false, err
	}

	unsigned, err := sjson.DeleteBytes(data, jsonldProof)
	if err != nil {
		return false, errors.Wrap(err, "remove proof")
	}

	docBytes, err := canonical.CanonicalizeBytes(unsigned)
	if err != nil {
		return false, err
	}

	return proof.VerifyEd25519Proof(pubKey, p, docBytes)
}
